package m_event

// Field name constants for the events table.
const (
	TableName = "events"

	// IndexByResource covers lookups of a resource's full history.
	IndexByResource = "events_by_resource_external_id"

	EventID                  = "event_id"
	QueueMessageID           = "queue_message_id"
	ResourceType             = "resource_type"
	ResourceExternalID       = "resource_external_id"
	ParentResourceExternalID = "parent_resource_external_id"
	EventDate                = "event_date"
	EventType                = "event_type"
	EventData                = "event_data"
	Source                   = "source"
	CreatedAt                = "created_at"
)

// Columns lists every column in read order.
var Columns = []string{
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
}
