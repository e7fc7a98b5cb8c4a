package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var fixtureDate = time.Date(2018, time.March, 12, 16, 25, 1, 123456000, time.UTC)

// eventFixture builds events for tests with a fluent interface.
type eventFixture struct {
	resourceType ResourceType
	externalID   string
	parentID     string
	eventType    string
	eventDate    time.Time
	source       Source
	payload      map[string]interface{}
	metadata     map[string]interface{}
}

func anEvent() *eventFixture {
	return &eventFixture{
		resourceType: ResourceTypePayment,
		externalID:   "transaction-id",
		eventType:    EventPaymentCreated,
		eventDate:    fixtureDate,
		payload:      map[string]interface{}{"event_data": "event data"},
	}
}

func (f *eventFixture) withType(eventType string) *eventFixture {
	f.eventType = eventType
	return f
}

func (f *eventFixture) withResourceType(rt ResourceType) *eventFixture {
	f.resourceType = rt
	return f
}

func (f *eventFixture) withExternalID(id string) *eventFixture {
	f.externalID = id
	return f
}

func (f *eventFixture) withParent(id string) *eventFixture {
	f.parentID = id
	return f
}

func (f *eventFixture) at(t time.Time) *eventFixture {
	f.eventDate = t
	return f
}

func (f *eventFixture) withSource(s Source) *eventFixture {
	f.source = s
	return f
}

func (f *eventFixture) withPayload(p map[string]interface{}) *eventFixture {
	f.payload = p
	return f
}

func (f *eventFixture) withMetadata(key string, value interface{}) *eventFixture {
	if f.metadata == nil {
		f.metadata = map[string]interface{}{}
	}
	f.metadata[key] = value
	return f
}

// withDefaultPayloadFor sets the payload a real emitter sends for the type.
func (f *eventFixture) withDefaultPayloadFor(eventType string) *eventFixture {
	switch eventType {
	case EventPaymentCreated:
		f.payload = map[string]interface{}{
			"amount":             1000,
			"description":        "a description",
			"language":           "en",
			"reference":          "aref",
			"return_url":         "https://example.org",
			"gateway_account_id": "3",
			"payment_provider":   "sandbox",
			"delayed_capture":    false,
			"live":               true,
			"email":              "j.doe@example.org",
			"cardholder_name":    "J citizen",
			"address_line1":      "12 Rouge Avenue",
			"address_postcode":   "N1 3QU",
			"address_city":       "London",
			"address_country":    "GB",
		}
	case EventPaymentDetailsEntered:
		f.payload = map[string]interface{}{
			"email":                    "j.doe@example.org",
			"last_digits_card_number":  "4242",
			"first_digits_card_number": "424242",
			"cardholder_name":          "J citizen",
			"expiry_date":              "11/21",
			"card_type":                "DEBIT",
			"card_brand":               "visa",
			"gateway_transaction_id":   "gateway-tx",
			"corporate_surcharge":      5,
			"total_amount":             1005,
		}
	case EventCaptureConfirmed:
		f.payload = map[string]interface{}{
			"gateway_event_date": f.eventDate.Format(time.RFC3339Nano),
			"captured_date":      f.eventDate.Format(time.RFC3339Nano),
			"fee":                5,
			"net_amount":         1069,
		}
	case EventCaptureSubmitted:
		f.payload = map[string]interface{}{
			"capture_submitted_date": f.eventDate.Format(time.RFC3339Nano),
		}
	default:
		f.payload = map[string]interface{}{"event_data": "event_data"}
	}
	return f
}

func (f *eventFixture) build(t *testing.T) *Event {
	t.Helper()
	fields := make(map[string]interface{}, len(f.payload)+1)
	for k, v := range f.payload {
		fields[k] = v
	}
	if f.metadata != nil {
		fields[FieldExternalMetadata] = f.metadata
	}
	payload, err := NewPayload(fields)
	require.NoError(t, err)

	e, err := NewEvent(f.resourceType, f.externalID, f.parentID, f.eventType, f.eventDate, payload)
	require.NoError(t, err)
	e.Source = f.source
	return e
}
