package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"

	"google.golang.org/protobuf/types/known/structpb"
)

// FieldExternalMetadata is the payload key holding free-form service metadata.
const FieldExternalMetadata = "external_metadata"

// Payload is the structured body of an event. Every accessor is fallible:
// a missing key or a value of the wrong kind reports absent rather than failing.
type Payload struct {
	s *structpb.Struct
}

// NewPayload builds a Payload from a decoded JSON object.
func NewPayload(fields map[string]interface{}) (Payload, error) {
	if fields == nil {
		return EmptyPayload(), nil
	}
	s, err := structpb.NewStruct(fields)
	if err != nil {
		return Payload{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	return Payload{s: s}, nil
}

// EmptyPayload returns a payload with no fields.
func EmptyPayload() Payload {
	return Payload{s: &structpb.Struct{Fields: map[string]*structpb.Value{}}}
}

// ParsePayload decodes a JSON object. Empty input yields an empty payload.
func ParsePayload(raw []byte) (Payload, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return EmptyPayload(), nil
	}
	var fields map[string]interface{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return Payload{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	return NewPayload(fields)
}

func (p Payload) fields() map[string]*structpb.Value {
	if p.s == nil {
		return nil
	}
	return p.s.GetFields()
}

// Len returns the number of top-level fields.
func (p Payload) Len() int { return len(p.fields()) }

// Keys returns the top-level field names in sorted order.
func (p Payload) Keys() []string {
	keys := make([]string, 0, len(p.fields()))
	for k := range p.fields() {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Value returns the raw value of a field.
func (p Payload) Value(name string) (*structpb.Value, bool) {
	v, ok := p.fields()[name]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// Has reports whether the field is present and not null.
func (p Payload) Has(name string) bool {
	v, ok := p.Value(name)
	if !ok {
		return false
	}
	_, isNull := v.GetKind().(*structpb.Value_NullValue)
	return !isNull
}

// String returns a string field.
func (p Payload) String(name string) (string, bool) {
	v, ok := p.Value(name)
	if !ok {
		return "", false
	}
	s, ok := v.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return "", false
	}
	return s.StringValue, true
}

// Int64 returns an integral number field. Fractions and out-of-range
// values are reported as absent.
func (p Payload) Int64(name string) (int64, bool) {
	v, ok := p.Value(name)
	if !ok {
		return 0, false
	}
	return int64Value(v)
}

func int64Value(v *structpb.Value) (int64, bool) {
	n, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, false
	}
	f := n.NumberValue
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || math.Abs(f) > 1<<53 {
		return 0, false
	}
	return int64(f), true
}

// Bool returns a boolean field.
func (p Payload) Bool(name string) (bool, bool) {
	v, ok := p.Value(name)
	if !ok {
		return false, false
	}
	b, ok := v.GetKind().(*structpb.Value_BoolValue)
	if !ok {
		return false, false
	}
	return b.BoolValue, true
}

// Time returns an RFC 3339 timestamp field in UTC.
func (p Payload) Time(name string) (time.Time, bool) {
	s, ok := p.String(name)
	if !ok {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, false
	}
	return t.UTC(), true
}

// Struct returns a nested object field as a Payload.
func (p Payload) Struct(name string) (Payload, bool) {
	v, ok := p.Value(name)
	if !ok {
		return Payload{}, false
	}
	s, ok := v.GetKind().(*structpb.Value_StructValue)
	if !ok || s.StructValue == nil {
		return Payload{}, false
	}
	return Payload{s: s.StructValue}, true
}

// Map returns the payload as plain Go values.
func (p Payload) Map() map[string]interface{} {
	if p.s == nil {
		return map[string]interface{}{}
	}
	return p.s.AsMap()
}

// Canonical renders the payload as compact JSON with sorted keys.
func (p Payload) Canonical() string {
	b, err := json.Marshal(p.Map())
	if err != nil {
		return "{}"
	}
	return string(b)
}

// MarshalJSON implements json.Marshaler.
func (p Payload) MarshalJSON() ([]byte, error) {
	return []byte(p.Canonical()), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Payload) UnmarshalJSON(raw []byte) error {
	parsed, err := ParsePayload(raw)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// payloadBuilder accumulates fields while folding events.
type payloadBuilder struct {
	fields map[string]*structpb.Value
}

func newPayloadBuilder() *payloadBuilder {
	return &payloadBuilder{fields: make(map[string]*structpb.Value)}
}

func (b *payloadBuilder) set(name string, v *structpb.Value) {
	b.fields[name] = v
}

func (b *payloadBuilder) build() Payload {
	return Payload{s: &structpb.Struct{Fields: b.fields}}
}

// NormalizeMetadataValue renders a metadata value as literal text.
// Null values have no textual form and report false.
func NormalizeMetadataValue(v *structpb.Value) (string, bool) {
	if v == nil {
		return "", false
	}
	switch kind := v.GetKind().(type) {
	case *structpb.Value_StringValue:
		return kind.StringValue, true
	case *structpb.Value_BoolValue:
		return strconv.FormatBool(kind.BoolValue), true
	case *structpb.Value_NumberValue:
		return strconv.FormatFloat(kind.NumberValue, 'f', -1, 64), true
	case *structpb.Value_StructValue, *structpb.Value_ListValue:
		b, err := json.Marshal(v.AsInterface())
		if err != nil {
			return "", false
		}
		return string(b), true
	default:
		return "", false
	}
}
