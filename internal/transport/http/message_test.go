package http

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/ledger-service/internal/app/ledger/domain"
)

func TestEventMessage_ToEvent(t *testing.T) {
	var msg EventMessage
	require.NoError(t, json.Unmarshal([]byte(`{
	  "resource_type": "REFUND",
	  "resource_external_id": "refund-1",
	  "parent_resource_external_id": "payment-1",
	  "timestamp": "2020-01-01T10:00:00+02:00",
	  "event_type": "REFUND_SUBMITTED",
	  "source": "CARD_CONNECTOR"
	}`), &msg))

	e, err := msg.ToEvent()
	require.NoError(t, err)

	assert.Equal(t, domain.ResourceTypeRefund, e.ResourceType)
	assert.Equal(t, "payment-1", e.ParentResourceExternalID)
	assert.Equal(t, "2020-01-01T08:00:00Z", e.EventDate.Format("2006-01-02T15:04:05Z07:00"))
	assert.Equal(t, 0, e.Payload.Len())
	assert.NotEmpty(t, e.QueueMessageID, "a queue id is assigned when missing")
	assert.NotEmpty(t, e.ID)
}

func TestEventMessage_IDIgnoresQueueMessageID(t *testing.T) {
	base := EventMessage{
		ResourceType:       "PAYMENT",
		ResourceExternalID: "tx-1",
		EventType:          domain.EventPaymentCreated,
		EventDetails:       json.RawMessage(`{"amount":1}`),
	}
	require.NoError(t, base.Timestamp.UnmarshalText([]byte("2020-01-01T00:00:00Z")))

	first, second := base, base
	first.MessageID = "a"
	second.MessageID = "b"

	e1, err := first.ToEvent()
	require.NoError(t, err)
	e2, err := second.ToEvent()
	require.NoError(t, err)
	assert.Equal(t, e1.ID, e2.ID, "redeliveries collapse onto one event")
}

func TestEventMessage_NullDetails(t *testing.T) {
	msg := EventMessage{
		ResourceType:       "PAYMENT",
		ResourceExternalID: "tx-1",
		EventType:          domain.EventPaymentCreated,
		EventDetails:       json.RawMessage(`null`),
	}
	require.NoError(t, msg.Timestamp.UnmarshalText([]byte("2020-01-01T00:00:00Z")))

	e, err := msg.ToEvent()
	require.NoError(t, err)
	assert.Equal(t, 0, e.Payload.Len())
}
