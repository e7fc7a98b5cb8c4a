package m_event

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents the database model for the events table.
type Data struct {
	EventID                  string             `spanner:"event_id"`
	QueueMessageID           spanner.NullString `spanner:"queue_message_id"`
	ResourceType             string             `spanner:"resource_type"`
	ResourceExternalID       string             `spanner:"resource_external_id"`
	ParentResourceExternalID spanner.NullString `spanner:"parent_resource_external_id"`
	EventDate                time.Time          `spanner:"event_date"`
	EventType                string             `spanner:"event_type"`
	EventData                spanner.NullJSON   `spanner:"event_data"`
	Source                   spanner.NullString `spanner:"source"`
	CreatedAt                spanner.NullTime   `spanner:"created_at"`
}
