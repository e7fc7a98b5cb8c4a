package domain

import "fmt"

// MetadataPolicy decides when a digest's metadata may be written.
//
// Metadata is authoritative only while a transaction sits in one of the
// listed states for its resource type. Correction event types carry
// out-of-band updates and are accepted in any state.
type MetadataPolicy struct {
	authoritative   map[ResourceType]map[TransactionState]bool
	correctionTypes map[string]bool
}

// NewMetadataPolicy validates and builds a policy.
func NewMetadataPolicy(authoritative map[ResourceType][]TransactionState, correctionTypes []string) (*MetadataPolicy, error) {
	p := &MetadataPolicy{
		authoritative:   make(map[ResourceType]map[TransactionState]bool),
		correctionTypes: make(map[string]bool),
	}
	for rt, states := range authoritative {
		if rt != ResourceTypePayment && rt != ResourceTypeRefund {
			return nil, fmt.Errorf("%w: resource type %q", ErrInvalidPolicy, rt)
		}
		set := make(map[TransactionState]bool, len(states))
		for _, s := range states {
			if _, err := ParseTransactionState(string(s)); err != nil {
				return nil, fmt.Errorf("%w: state %q", ErrInvalidPolicy, s)
			}
			set[s] = true
		}
		p.authoritative[rt] = set
	}
	for _, t := range correctionTypes {
		if t == "" {
			return nil, fmt.Errorf("%w: empty correction event type", ErrInvalidPolicy)
		}
		p.correctionTypes[t] = true
	}
	return p, nil
}

// DefaultMetadataPolicy treats CREATED as authoritative for payments and
// refunds, and accepts admin corrections and telephone payment notifications.
func DefaultMetadataPolicy() *MetadataPolicy {
	p, _ := NewMetadataPolicy(
		map[ResourceType][]TransactionState{
			ResourceTypePayment: {StateCreated},
			ResourceTypeRefund:  {StateCreated},
		},
		[]string{"ADMIN_MANUALLY_DID_AN_UPDATE", EventPaymentNotificationCreated},
	)
	return p
}

// IsAuthoritative reports whether metadata may be written in the state.
func (p *MetadataPolicy) IsAuthoritative(rt ResourceType, s TransactionState) bool {
	return p.authoritative[rt][s]
}

// IsCorrection reports whether the event type bypasses the state check.
func (p *MetadataPolicy) IsCorrection(eventType string) bool {
	return p.correctionTypes[eventType]
}

// Allows reports whether the digest's metadata may be upserted.
func (p *MetadataPolicy) Allows(d *EventDigest) bool {
	if p.IsAuthoritative(d.ResourceType, d.State) {
		return true
	}
	for _, t := range d.EventTypes {
		if p.IsCorrection(t) {
			return true
		}
	}
	return false
}
