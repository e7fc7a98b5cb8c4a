package m_event

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the events table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertOrUpdateMut creates a mutation storing an event. Event ids are
// derived from content, so rewriting an existing row changes nothing but
// created_at.
func (m *Model) InsertOrUpdateMut(data *Data) *spanner.Mutation {
	return spanner.InsertOrUpdate(
		TableName,
		[]string{
			EventID,
			QueueMessageID,
			ResourceType,
			ResourceExternalID,
			ParentResourceExternalID,
			EventDate,
			EventType,
			EventData,
			Source,
			CreatedAt,
		},
		[]interface{}{
			data.EventID,
			data.QueueMessageID,
			data.ResourceType,
			data.ResourceExternalID,
			data.ParentResourceExternalID,
			data.EventDate,
			data.EventType,
			data.EventData,
			data.Source,
			spanner.CommitTimestamp,
		},
	)
}

// DeleteMut creates a mutation deleting an event.
func (m *Model) DeleteMut(eventID string) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{eventID})
}
