package domain

import (
	"slices"
	"sort"
	"time"
)

// EventDigest is the folded view of every event observed for one resource.
type EventDigest struct {
	ResourceExternalID       string
	ResourceType             ResourceType
	ParentResourceExternalID string

	// MostRecentSalientEventType is empty when no event moved the state machine.
	MostRecentSalientEventType string
	SalientEventDate           time.Time
	State                      TransactionState
	Source                     Source

	FirstEventDate      time.Time
	MostRecentEventDate time.Time
	EventCount          int
	EventTypes          []string

	// Fields holds, per payload key, the value from the highest-ranked event
	// carrying a usable one. Nulls and wrongly typed snapshot columns lose.
	Fields   Payload
	Metadata map[string]string
}

// FromEventList folds events for a single resource into a digest.
// Callers must pass events sharing one resource external id. The result
// does not depend on the order of the input.
func FromEventList(table *SalienceTable, events []*Event) (*EventDigest, error) {
	if len(events) == 0 {
		return nil, ErrEmptyEventList
	}
	if table == nil {
		table = DefaultSalienceTable()
	}

	ordered := make([]*Event, 0, len(events))
	for _, e := range events {
		if e != nil {
			ordered = append(ordered, e)
		}
	}
	if len(ordered) == 0 {
		return nil, ErrEmptyEventList
	}
	slices.SortStableFunc(ordered, table.Compare)

	last := ordered[len(ordered)-1]
	digest := &EventDigest{
		ResourceExternalID:  last.ResourceExternalID,
		ResourceType:        last.ResourceType,
		State:               StateUndefined,
		Source:              last.Source,
		FirstEventDate:      ordered[0].EventDate,
		MostRecentEventDate: ordered[0].EventDate,
		EventCount:          len(ordered),
		Metadata:            make(map[string]string),
	}

	fields := newPayloadBuilder()
	types := make(map[string]bool)
	var salient *Event
	var late []*Event

	for _, e := range ordered {
		types[e.EventType] = true
		if e.EventDate.Before(digest.FirstEventDate) {
			digest.FirstEventDate = e.EventDate
		}
		if e.EventDate.After(digest.MostRecentEventDate) {
			digest.MostRecentEventDate = e.EventDate
		}
		if e.ParentResourceExternalID != "" {
			digest.ParentResourceExternalID = e.ParentResourceExternalID
		}
		if table.IsSalient(e.EventType) {
			salient = e
		}

		// Unknown types, admin corrections among them, only contribute
		// metadata, and only after every ranked event.
		if !table.Known(e.EventType) {
			late = append(late, e)
			continue
		}
		digest.mergeMetadata(e)
		for _, key := range e.Payload.Keys() {
			if key == FieldExternalMetadata {
				continue
			}
			v, _ := e.Payload.Value(key)
			if contributes(key, v) {
				fields.set(key, v)
			}
		}
	}

	// Unknown types all rank zero, so Compare already left them in date order.
	for _, e := range late {
		digest.mergeMetadata(e)
	}

	if salient != nil {
		digest.MostRecentSalientEventType = salient.EventType
		digest.SalientEventDate = salient.EventDate
		digest.State, _ = table.StateFor(salient.EventType)
		digest.ResourceExternalID = salient.ResourceExternalID
		digest.ResourceType = salient.ResourceType
		if salient.Source != "" {
			digest.Source = salient.Source
		}
	}

	digest.EventTypes = make([]string, 0, len(types))
	for t := range types {
		digest.EventTypes = append(digest.EventTypes, t)
	}
	sort.Strings(digest.EventTypes)
	digest.Fields = fields.build()

	return digest, nil
}

func (d *EventDigest) mergeMetadata(e *Event) {
	md, ok := e.Metadata()
	if !ok {
		return
	}
	for _, key := range md.Keys() {
		v, _ := md.Value(key)
		if s, ok := NormalizeMetadataValue(v); ok {
			d.Metadata[key] = s
		}
	}
}

// HasEventType reports whether any folded event had the given type.
func (d *EventDigest) HasEventType(eventType string) bool {
	_, found := slices.BinarySearch(d.EventTypes, eventType)
	return found
}

// MetadataKeys returns the metadata keys in sorted order.
func (d *EventDigest) MetadataKeys() []string {
	keys := make([]string, 0, len(d.Metadata))
	for k := range d.Metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
