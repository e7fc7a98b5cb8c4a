package domain

import "strings"

// TransactionState is the lifecycle state of a payment or refund.
type TransactionState string

const (
	StateUndefined       TransactionState = "UNDEFINED"
	StateCreated         TransactionState = "CREATED"
	StateStarted         TransactionState = "STARTED"
	StateSubmitted       TransactionState = "SUBMITTED"
	StateCapturable      TransactionState = "CAPTURABLE"
	StateSuccess         TransactionState = "SUCCESS"
	StateFailedRejected  TransactionState = "FAILED_REJECTED"
	StateFailedExpired   TransactionState = "FAILED_EXPIRED"
	StateFailedCancelled TransactionState = "FAILED_CANCELLED"
	StateCancelled       TransactionState = "CANCELLED"
	StateError           TransactionState = "ERROR"
	StateErrorGateway    TransactionState = "ERROR_GATEWAY"
)

// allStates lists every state in declaration order.
var allStates = []TransactionState{
	StateUndefined,
	StateCreated,
	StateStarted,
	StateSubmitted,
	StateCapturable,
	StateSuccess,
	StateFailedRejected,
	StateFailedExpired,
	StateFailedCancelled,
	StateCancelled,
	StateError,
	StateErrorGateway,
}

// statusLabels maps states to the external status they report as.
// Several states share a label.
var statusLabels = map[TransactionState]string{
	StateUndefined:       "undefined",
	StateCreated:         "created",
	StateStarted:         "started",
	StateSubmitted:       "submitted",
	StateCapturable:      "capturable",
	StateSuccess:         "success",
	StateFailedRejected:  "declined",
	StateFailedExpired:   "timedout",
	StateFailedCancelled: "cancelled",
	StateCancelled:       "cancelled",
	StateError:           "error",
	StateErrorGateway:    "error",
}

// AllStates returns every declared state.
func AllStates() []TransactionState {
	out := make([]TransactionState, len(allStates))
	copy(out, allStates)
	return out
}

// ParseTransactionState resolves a state by name.
func ParseTransactionState(name string) (TransactionState, error) {
	s := TransactionState(strings.ToUpper(strings.TrimSpace(name)))
	if _, ok := statusLabels[s]; !ok {
		return "", ErrUnknownState
	}
	return s, nil
}

// StatusLabel returns the lower-case external status of the state.
func (s TransactionState) StatusLabel() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return statusLabels[StateUndefined]
}

// IsFinished reports whether no further state change is expected.
func (s TransactionState) IsFinished() bool {
	switch s {
	case StateSuccess, StateFailedRejected, StateFailedExpired, StateFailedCancelled,
		StateCancelled, StateError, StateErrorGateway:
		return true
	}
	return false
}

// StatusLabels returns the distinct status labels in declaration order.
func StatusLabels() []string {
	seen := make(map[string]bool, len(allStates))
	labels := make([]string, 0, len(allStates))
	for _, s := range allStates {
		label := statusLabels[s]
		if seen[label] {
			continue
		}
		seen[label] = true
		labels = append(labels, label)
	}
	return labels
}
