package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/light-bringer/ledger-service/internal/app/ledger/domain"
)

// BaseDate anchors fixture event dates.
var BaseDate = time.Date(2020, time.January, 1, 12, 0, 0, 0, time.UTC)

// NewPaymentEvent builds a payment event offset from BaseDate.
func NewPaymentEvent(t *testing.T, externalID, eventType string, offset time.Duration, fields map[string]interface{}) *domain.Event {
	t.Helper()
	return newEvent(t, domain.ResourceTypePayment, externalID, "", eventType, offset, fields)
}

// NewRefundEvent builds a refund event for parentID offset from BaseDate.
func NewRefundEvent(t *testing.T, externalID, parentID, eventType string, offset time.Duration, fields map[string]interface{}) *domain.Event {
	t.Helper()
	return newEvent(t, domain.ResourceTypeRefund, externalID, parentID, eventType, offset, fields)
}

func newEvent(t *testing.T, resourceType domain.ResourceType, externalID, parentID, eventType string, offset time.Duration, fields map[string]interface{}) *domain.Event {
	t.Helper()
	if fields == nil {
		fields = map[string]interface{}{}
	}
	payload, err := domain.NewPayload(fields)
	require.NoError(t, err, "failed to build payload")

	event, err := domain.NewEvent(resourceType, externalID, parentID, eventType, BaseDate.Add(offset), payload)
	require.NoError(t, err, "failed to build event")
	return event
}

// Int64 returns a pointer to v.
func Int64(v int64) *int64 {
	return &v
}

// NewSnapshot builds a stored snapshot created at BaseDate plus offset.
func NewSnapshot(externalID string, resourceType domain.ResourceType, state domain.TransactionState, account string, amount int64, offset time.Duration) *domain.Transaction {
	created := BaseDate.Add(offset)
	return &domain.Transaction{
		ID:                 domain.TransactionID(externalID),
		ExternalID:         externalID,
		ResourceType:       resourceType,
		State:              state,
		Amount:             Int64(amount),
		GatewayAccountID:   account,
		CreatedDate:        created,
		StateChangedDate:   created,
		EventCount:         1,
		TransactionDetails: "{}",
	}
}
