package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ResourceType identifies the kind of resource an event describes.
type ResourceType string

const (
	ResourceTypePayment ResourceType = "PAYMENT"
	ResourceTypeRefund  ResourceType = "REFUND"
)

// ParseResourceType accepts resource type names case-insensitively.
func ParseResourceType(s string) (ResourceType, error) {
	switch ResourceType(strings.ToUpper(strings.TrimSpace(s))) {
	case ResourceTypePayment:
		return ResourceTypePayment, nil
	case ResourceTypeRefund:
		return ResourceTypeRefund, nil
	default:
		return "", ErrInvalidResourceType
	}
}

// Source names the component that emitted an event.
type Source string

const (
	SourceCardAPI       Source = "CARD_API"
	SourceCardConnector Source = "CARD_PAYMENT_CONNECTOR"
	SourceLedgerAdmin   Source = "LEDGER_ADMIN"
)

// eventNamespace scopes deterministic event ids.
var eventNamespace = uuid.MustParse("0f5c8a34-3f51-4b7e-9d52-1c3be0d7a9e1")

// Event is an immutable fact about a payment or refund.
type Event struct {
	ID                       string
	QueueMessageID           string
	ResourceType             ResourceType
	ResourceExternalID       string
	ParentResourceExternalID string
	EventDate                time.Time
	EventType                string
	Payload                  Payload
	Source                   Source
}

// NewEvent validates the required attributes and assigns the event id.
func NewEvent(
	resourceType ResourceType,
	resourceExternalID string,
	parentResourceExternalID string,
	eventType string,
	eventDate time.Time,
	payload Payload,
) (*Event, error) {
	if resourceType != ResourceTypePayment && resourceType != ResourceTypeRefund {
		return nil, ErrInvalidResourceType
	}
	resourceExternalID = strings.TrimSpace(resourceExternalID)
	if resourceExternalID == "" {
		return nil, ErrMissingExternalID
	}
	eventType = strings.TrimSpace(eventType)
	if eventType == "" {
		return nil, ErrMissingEventType
	}
	if eventDate.IsZero() {
		return nil, ErrMissingEventDate
	}
	if payload.s == nil {
		payload = EmptyPayload()
	}

	e := &Event{
		ResourceType:             resourceType,
		ResourceExternalID:       resourceExternalID,
		ParentResourceExternalID: strings.TrimSpace(parentResourceExternalID),
		EventDate:                eventDate.UTC(),
		EventType:                eventType,
		Payload:                  payload,
	}
	e.ID = e.identity()
	return e, nil
}

// identity derives a stable id from the event content so redelivered
// duplicates map to the same stored row.
func (e *Event) identity() string {
	name := strings.Join([]string{
		string(e.ResourceType),
		e.ResourceExternalID,
		e.EventType,
		e.EventDate.Format(time.RFC3339Nano),
		e.Payload.Canonical(),
	}, "|")
	return uuid.NewSHA1(eventNamespace, []byte(name)).String()
}

// Metadata returns the external_metadata object carried by the event.
func (e *Event) Metadata() (Payload, bool) {
	return e.Payload.Struct(FieldExternalMetadata)
}
