package http

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/light-bringer/ledger-service/internal/app/ledger/domain"
)

// EventMessage is the queue wire form of an event.
type EventMessage struct {
	MessageID                string          `json:"sqs_message_id,omitempty"`
	ResourceType             string          `json:"resource_type"`
	ResourceExternalID       string          `json:"resource_external_id"`
	ParentResourceExternalID string          `json:"parent_resource_external_id,omitempty"`
	Timestamp                time.Time       `json:"timestamp"`
	EventType                string          `json:"event_type"`
	EventDetails             json.RawMessage `json:"event_details,omitempty"`
	Source                   string          `json:"source,omitempty"`
}

// ToEvent validates the message and converts it into a domain event.
// Messages without a queue id get a random one.
func (m *EventMessage) ToEvent() (*domain.Event, error) {
	rt, err := domain.ParseResourceType(m.ResourceType)
	if err != nil {
		return nil, err
	}

	payload := domain.EmptyPayload()
	if details := bytes.TrimSpace(m.EventDetails); len(details) > 0 {
		if payload, err = domain.ParsePayload(details); err != nil {
			return nil, err
		}
	}

	e, err := domain.NewEvent(rt, m.ResourceExternalID, m.ParentResourceExternalID, m.EventType, m.Timestamp, payload)
	if err != nil {
		return nil, err
	}

	e.QueueMessageID = m.MessageID
	if e.QueueMessageID == "" {
		e.QueueMessageID = uuid.NewString()
	}
	e.Source = domain.Source(m.Source)
	return e, nil
}
