package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadataPolicy_Default(t *testing.T) {
	p := DefaultMetadataPolicy()

	tests := []struct {
		name   string
		digest *EventDigest
		want   bool
	}{
		{
			name:   "created payment",
			digest: &EventDigest{ResourceType: ResourceTypePayment, State: StateCreated, EventTypes: []string{EventPaymentCreated}},
			want:   true,
		},
		{
			name:   "created refund",
			digest: &EventDigest{ResourceType: ResourceTypeRefund, State: StateCreated, EventTypes: []string{EventRefundCreatedByUser}},
			want:   true,
		},
		{
			name:   "started payment",
			digest: &EventDigest{ResourceType: ResourceTypePayment, State: StateStarted, EventTypes: []string{EventPaymentStarted}},
			want:   false,
		},
		{
			name:   "capture submitted",
			digest: &EventDigest{ResourceType: ResourceTypePayment, State: StateSubmitted, EventTypes: []string{EventCaptureSubmitted}},
			want:   false,
		},
		{
			name: "admin correction bypasses state",
			digest: &EventDigest{ResourceType: ResourceTypePayment, State: StateSuccess,
				EventTypes: []string{"ADMIN_MANUALLY_DID_AN_UPDATE", EventCaptureConfirmed}},
			want: true,
		},
		{
			name: "telephone notification bypasses state",
			digest: &EventDigest{ResourceType: ResourceTypePayment, State: StateSuccess,
				EventTypes: []string{EventPaymentNotificationCreated}},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Allows(tt.digest))
		})
	}
}

func TestNewMetadataPolicy(t *testing.T) {
	t.Run("custom states", func(t *testing.T) {
		p, err := NewMetadataPolicy(map[ResourceType][]TransactionState{
			ResourceTypePayment: {StateCreated, StateStarted},
		}, nil)
		require.NoError(t, err)
		assert.True(t, p.IsAuthoritative(ResourceTypePayment, StateStarted))
		assert.False(t, p.IsAuthoritative(ResourceTypeRefund, StateCreated))
		assert.False(t, p.IsCorrection("ADMIN_MANUALLY_DID_AN_UPDATE"))
	})

	t.Run("rejects unknown resource type", func(t *testing.T) {
		_, err := NewMetadataPolicy(map[ResourceType][]TransactionState{"DISPUTE": {StateCreated}}, nil)
		assert.ErrorIs(t, err, ErrInvalidPolicy)
	})

	t.Run("rejects unknown state", func(t *testing.T) {
		_, err := NewMetadataPolicy(map[ResourceType][]TransactionState{ResourceTypePayment: {"SETTLED"}}, nil)
		assert.ErrorIs(t, err, ErrInvalidPolicy)
	})

	t.Run("rejects empty correction type", func(t *testing.T) {
		_, err := NewMetadataPolicy(nil, []string{""})
		assert.ErrorIs(t, err, ErrInvalidPolicy)
	})
}
