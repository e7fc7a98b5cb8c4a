package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/light-bringer/ledger-service/internal/app/ledger/contracts"
	"github.com/light-bringer/ledger-service/internal/app/ledger/domain"
	"github.com/light-bringer/ledger-service/internal/models/m_event"
	"github.com/light-bringer/ledger-service/internal/pkg/query"
)

var _ contracts.EventRepository = (*EventStore)(nil)

// EventStore implements EventRepository on SQLite.
type EventStore struct {
	store *Store
}

// Insert stores the event. Duplicates of an already stored id are ignored.
func (s *EventStore) Insert(ctx context.Context, event *domain.Event) error {
	_, err := s.store.sqlDB.ExecContext(ctx, `
INSERT OR IGNORE INTO events (
    event_id, queue_message_id, resource_type, resource_external_id,
    parent_resource_external_id, event_date, event_type, event_data, source, created_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		event.ID,
		nullString(event.QueueMessageID),
		string(event.ResourceType),
		event.ResourceExternalID,
		nullString(event.ParentResourceExternalID),
		toNanos(event.EventDate),
		event.EventType,
		event.Payload.Canonical(),
		nullString(string(event.Source)),
		toNanos(s.store.now()),
	)
	if err != nil {
		return fmt.Errorf("failed to insert event %s: %w", event.ID, err)
	}
	return nil
}

// ListByResourceExternalID returns the stored history of a resource.
func (s *EventStore) ListByResourceExternalID(ctx context.Context, externalID string) ([]*domain.Event, error) {
	stmt := query.From(m_event.TableName).
		Select(m_event.EventID, m_event.QueueMessageID, m_event.ResourceType, m_event.ResourceExternalID,
			m_event.ParentResourceExternalID, m_event.EventDate, m_event.EventType, m_event.EventData, m_event.Source).
		Where(query.Eq(m_event.ResourceExternalID, externalID)).
		OrderBy(m_event.EventDate, query.Asc).
		Build()

	rows, err := s.store.sqlDB.QueryContext(ctx, stmt.SQL, statementArgs(stmt)...)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []*domain.Event
	for rows.Next() {
		var (
			e                        domain.Event
			queueMessageID, parentID sql.NullString
			source                   sql.NullString
			resourceType             string
			eventDate                int64
			eventData                string
		)
		if err := rows.Scan(&e.ID, &queueMessageID, &resourceType, &e.ResourceExternalID,
			&parentID, &eventDate, &e.EventType, &eventData, &source); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		payload, err := domain.ParsePayload([]byte(eventData))
		if err != nil {
			return nil, fmt.Errorf("event %s: %w", e.ID, err)
		}
		e.QueueMessageID = queueMessageID.String
		e.ResourceType = domain.ResourceType(resourceType)
		e.ParentResourceExternalID = parentID.String
		e.EventDate = fromNanos(eventDate)
		e.Payload = payload
		e.Source = domain.Source(source.String)
		events = append(events, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate events: %w", err)
	}
	return events, nil
}
