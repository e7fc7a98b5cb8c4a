package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/structpb"
)

func TestParsePayload(t *testing.T) {
	t.Run("valid object", func(t *testing.T) {
		p, err := ParsePayload([]byte(`{"amount": 1000, "reference": "aref"}`))
		require.NoError(t, err)
		assert.Equal(t, 2, p.Len())
		assert.Equal(t, []string{"amount", "reference"}, p.Keys())
	})

	t.Run("empty and null input yield empty payload", func(t *testing.T) {
		for _, raw := range []string{"", "null"} {
			p, err := ParsePayload([]byte(raw))
			require.NoError(t, err)
			assert.Equal(t, 0, p.Len())
		}
	})

	t.Run("non-object is malformed", func(t *testing.T) {
		_, err := ParsePayload([]byte(`[1,2,3]`))
		assert.True(t, errors.Is(err, ErrMalformedPayload))
	})
}

func TestPayload_Accessors(t *testing.T) {
	p, err := ParsePayload([]byte(`{
		"amount": 1000,
		"fraction": 10.5,
		"huge": 1e300,
		"reference": "aref",
		"live": true,
		"captured_date": "2018-03-12T16:25:01.123456Z",
		"bad_date": "yesterday",
		"nothing": null,
		"external_metadata": {"key": "value"}
	}`))
	require.NoError(t, err)

	t.Run("int64", func(t *testing.T) {
		v, ok := p.Int64("amount")
		assert.True(t, ok)
		assert.Equal(t, int64(1000), v)

		_, ok = p.Int64("fraction")
		assert.False(t, ok, "fractions are not integers")
		_, ok = p.Int64("huge")
		assert.False(t, ok, "out of range")
		_, ok = p.Int64("reference")
		assert.False(t, ok, "wrong kind")
		_, ok = p.Int64("missing")
		assert.False(t, ok)
	})

	t.Run("string and bool", func(t *testing.T) {
		s, ok := p.String("reference")
		assert.True(t, ok)
		assert.Equal(t, "aref", s)

		b, ok := p.Bool("live")
		assert.True(t, ok)
		assert.True(t, b)

		_, ok = p.Bool("reference")
		assert.False(t, ok)
	})

	t.Run("time", func(t *testing.T) {
		ts, ok := p.Time("captured_date")
		assert.True(t, ok)
		assert.Equal(t, fixtureDate, ts)

		_, ok = p.Time("bad_date")
		assert.False(t, ok)
	})

	t.Run("null counts as absent for Has", func(t *testing.T) {
		assert.False(t, p.Has("nothing"))
		assert.True(t, p.Has("amount"))
	})

	t.Run("nested struct", func(t *testing.T) {
		md, ok := p.Struct(FieldExternalMetadata)
		require.True(t, ok)
		v, ok := md.String("key")
		assert.True(t, ok)
		assert.Equal(t, "value", v)

		_, ok = p.Struct("reference")
		assert.False(t, ok)
	})
}

func TestPayload_CanonicalIsKeyOrderIndependent(t *testing.T) {
	a, err := ParsePayload([]byte(`{"b": 1, "a": {"y": true, "x": "s"}}`))
	require.NoError(t, err)
	b, err := ParsePayload([]byte(`{"a": {"x": "s", "y": true}, "b": 1}`))
	require.NoError(t, err)

	assert.Equal(t, a.Canonical(), b.Canonical())
	assert.Equal(t, `{"a":{"x":"s","y":true},"b":1}`, a.Canonical())
}

func TestNormalizeMetadataValue(t *testing.T) {
	tests := []struct {
		name  string
		value *structpb.Value
		want  string
		ok    bool
	}{
		{"string", structpb.NewStringValue("data1"), "data1", true},
		{"true", structpb.NewBoolValue(true), "true", true},
		{"false", structpb.NewBoolValue(false), "false", true},
		{"integer", structpb.NewNumberValue(1000), "1000", true},
		{"fraction", structpb.NewNumberValue(10.5), "10.5", true},
		{"null", structpb.NewNullValue(), "", false},
		{"nil", nil, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizeMetadataValue(tt.value)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("object renders as sorted JSON", func(t *testing.T) {
		v, err := structpb.NewValue(map[string]interface{}{"z": 1, "a": "b"})
		require.NoError(t, err)
		got, ok := NormalizeMetadataValue(v)
		assert.True(t, ok)
		assert.Equal(t, `{"a":"b","z":1}`, got)
	})
}

func TestNewEvent(t *testing.T) {
	payload := EmptyPayload()

	t.Run("assigns deterministic id", func(t *testing.T) {
		e1, err := NewEvent(ResourceTypePayment, "ext-1", "", EventPaymentCreated, fixtureDate, payload)
		require.NoError(t, err)
		e2, err := NewEvent(ResourceTypePayment, "ext-1", "", EventPaymentCreated, fixtureDate, payload)
		require.NoError(t, err)
		assert.NotEmpty(t, e1.ID)
		assert.Equal(t, e1.ID, e2.ID)

		e3, err := NewEvent(ResourceTypePayment, "ext-1", "", EventPaymentStarted, fixtureDate, payload)
		require.NoError(t, err)
		assert.NotEqual(t, e1.ID, e3.ID)
	})

	t.Run("normalises event date to UTC", func(t *testing.T) {
		loc := time.FixedZone("BST", 3600)
		e, err := NewEvent(ResourceTypePayment, "ext-1", "", EventPaymentCreated, fixtureDate.In(loc), payload)
		require.NoError(t, err)
		assert.Equal(t, time.UTC, e.EventDate.Location())
		assert.True(t, e.EventDate.Equal(fixtureDate))
	})

	t.Run("validation", func(t *testing.T) {
		_, err := NewEvent("CHARGEBACK", "ext-1", "", EventPaymentCreated, fixtureDate, payload)
		assert.ErrorIs(t, err, ErrInvalidResourceType)

		_, err = NewEvent(ResourceTypePayment, "  ", "", EventPaymentCreated, fixtureDate, payload)
		assert.ErrorIs(t, err, ErrMissingExternalID)

		_, err = NewEvent(ResourceTypePayment, "ext-1", "", "", fixtureDate, payload)
		assert.ErrorIs(t, err, ErrMissingEventType)

		_, err = NewEvent(ResourceTypePayment, "ext-1", "", EventPaymentCreated, time.Time{}, payload)
		assert.ErrorIs(t, err, ErrMissingEventDate)
	})

	t.Run("unknown event types are accepted", func(t *testing.T) {
		_, err := NewEvent(ResourceTypePayment, "ext-1", "", "SOMETHING_NEW", fixtureDate, payload)
		assert.NoError(t, err)
	})
}

func TestParseResourceType(t *testing.T) {
	rt, err := ParseResourceType("refund")
	require.NoError(t, err)
	assert.Equal(t, ResourceTypeRefund, rt)

	_, err = ParseResourceType("dispute")
	assert.ErrorIs(t, err, ErrInvalidResourceType)
}
