package domain

import (
	"strings"
)

// Known event types.
const (
	EventPaymentCreated                            = "PAYMENT_CREATED"
	EventPaymentNotificationCreated                = "PAYMENT_NOTIFICATION_CREATED"
	EventPaymentStarted                            = "PAYMENT_STARTED"
	EventPaymentDetailsEntered                     = "PAYMENT_DETAILS_ENTERED"
	EventAuthorisationSucceeded                    = "AUTHORISATION_SUCCEEDED"
	EventUserApprovedForCaptureAwaitingService     = "USER_APPROVED_FOR_CAPTURE_AWAITING_SERVICE_APPROVAL"
	EventAuthorisationRejected                     = "AUTHORISATION_REJECTED"
	EventAuthorisationCancelled                    = "AUTHORISATION_CANCELLED"
	EventGatewayErrorDuringAuthorisation           = "GATEWAY_ERROR_DURING_AUTHORISATION"
	EventGatewayTimeoutDuringAuthorisation         = "GATEWAY_TIMEOUT_DURING_AUTHORISATION"
	EventUnexpectedGatewayErrorDuringAuthorisation = "UNEXPECTED_GATEWAY_ERROR_DURING_AUTHORISATION"
	EventUserApprovedForCapture                    = "USER_APPROVED_FOR_CAPTURE"
	EventServiceApprovedForCapture                 = "SERVICE_APPROVED_FOR_CAPTURE"
	EventCaptureSubmitted                          = "CAPTURE_SUBMITTED"
	EventCaptureConfirmed                          = "CAPTURE_CONFIRMED"
	EventCaptureErrored                            = "CAPTURE_ERRORED"
	EventCaptureAbandoned                          = "CAPTURE_ABANDONED_AFTER_TOO_MANY_RETRIES"
	EventPaymentExpired                            = "PAYMENT_EXPIRED"
	EventCancelByExpiration                        = "CANCEL_BY_EXPIRATION"
	EventCancelByUser                              = "CANCEL_BY_USER"
	EventCancelByExternalService                   = "CANCEL_BY_EXTERNAL_SERVICE"

	EventRefundAvailabilityUpdated = "REFUND_AVAILABILITY_UPDATED"
	EventRefundCreatedByService    = "REFUND_CREATED_BY_SERVICE"
	EventRefundCreatedByUser       = "REFUND_CREATED_BY_USER"
	EventRefundSubmitted           = "REFUND_SUBMITTED"
	EventRefundSucceeded           = "REFUND_SUCCEEDED"
	EventRefundError               = "REFUND_ERROR"
)

// Salience describes how an event type competes with others.
// State is empty for types that carry data without moving the state machine.
type Salience struct {
	Rank  int
	State TransactionState
}

// SalienceTable is the fixed precedence order over known event types.
// It is built once and never mutated; share it by reference.
type SalienceTable struct {
	entries map[string]Salience
}

// NewSalienceTable builds a table from explicit entries.
func NewSalienceTable(entries map[string]Salience) *SalienceTable {
	copied := make(map[string]Salience, len(entries))
	for k, v := range entries {
		copied[k] = v
	}
	return &SalienceTable{entries: copied}
}

var defaultSalienceTable = NewSalienceTable(map[string]Salience{
	EventRefundAvailabilityUpdated: {Rank: 5},

	EventPaymentCreated:                            {Rank: 10, State: StateCreated},
	EventPaymentNotificationCreated:                {Rank: 15, State: StateSuccess},
	EventPaymentStarted:                            {Rank: 20, State: StateStarted},
	EventPaymentDetailsEntered:                     {Rank: 25},
	EventAuthorisationSucceeded:                    {Rank: 30, State: StateSubmitted},
	EventUserApprovedForCaptureAwaitingService:     {Rank: 32, State: StateCapturable},
	EventAuthorisationRejected:                     {Rank: 35, State: StateFailedRejected},
	EventAuthorisationCancelled:                    {Rank: 36, State: StateFailedRejected},
	EventGatewayErrorDuringAuthorisation:           {Rank: 37, State: StateErrorGateway},
	EventGatewayTimeoutDuringAuthorisation:         {Rank: 38, State: StateErrorGateway},
	EventUnexpectedGatewayErrorDuringAuthorisation: {Rank: 39, State: StateErrorGateway},
	EventUserApprovedForCapture:                    {Rank: 40, State: StateSubmitted},
	EventServiceApprovedForCapture:                 {Rank: 41, State: StateSubmitted},
	EventCaptureSubmitted:                          {Rank: 45, State: StateSubmitted},
	EventCaptureConfirmed:                          {Rank: 48, State: StateSuccess},
	EventCaptureErrored:                            {Rank: 50, State: StateError},
	EventCaptureAbandoned:                          {Rank: 51, State: StateError},
	EventPaymentExpired:                            {Rank: 60, State: StateFailedExpired},
	EventCancelByExpiration:                        {Rank: 61, State: StateFailedExpired},
	EventCancelByUser:                              {Rank: 62, State: StateFailedCancelled},
	EventCancelByExternalService:                   {Rank: 63, State: StateCancelled},

	EventRefundCreatedByService: {Rank: 10, State: StateCreated},
	EventRefundCreatedByUser:    {Rank: 10, State: StateCreated},
	EventRefundSubmitted:        {Rank: 20, State: StateSubmitted},
	EventRefundSucceeded:        {Rank: 30, State: StateSuccess},
	EventRefundError:            {Rank: 40, State: StateError},
})

// DefaultSalienceTable returns the process-wide ranking table.
func DefaultSalienceTable() *SalienceTable {
	return defaultSalienceTable
}

// Rank returns the precedence of a known event type.
// Unknown types rank zero and report false.
func (t *SalienceTable) Rank(eventType string) (int, bool) {
	s, ok := t.entries[eventType]
	return s.Rank, ok
}

// Known reports whether the event type belongs to the vocabulary.
func (t *SalienceTable) Known(eventType string) bool {
	_, ok := t.entries[eventType]
	return ok
}

// StateFor returns the state an event type moves a transaction into.
func (t *SalienceTable) StateFor(eventType string) (TransactionState, bool) {
	s, ok := t.entries[eventType]
	if !ok || s.State == "" {
		return "", false
	}
	return s.State, true
}

// IsSalient reports whether the event type defines transaction state.
func (t *SalienceTable) IsSalient(eventType string) bool {
	_, ok := t.StateFor(eventType)
	return ok
}

// Compare orders two events by rank, then event date, then event type and
// finally the canonical payload, so the order never depends on arrival.
func (t *SalienceTable) Compare(a, b *Event) int {
	ra, _ := t.Rank(a.EventType)
	rb, _ := t.Rank(b.EventType)
	switch {
	case ra < rb:
		return -1
	case ra > rb:
		return 1
	}
	if c := a.EventDate.Compare(b.EventDate); c != 0 {
		return c
	}
	if c := strings.Compare(a.EventType, b.EventType); c != 0 {
		return c
	}
	return strings.Compare(a.Payload.Canonical(), b.Payload.Canonical())
}
