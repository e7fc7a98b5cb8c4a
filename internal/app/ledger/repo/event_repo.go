package repo

import (
	"context"
	"encoding/json"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/ledger-service/internal/app/ledger/contracts"
	"github.com/light-bringer/ledger-service/internal/app/ledger/domain"
	"github.com/light-bringer/ledger-service/internal/models/m_event"
	"github.com/light-bringer/ledger-service/internal/pkg/committer"
	"github.com/light-bringer/ledger-service/internal/pkg/query"
)

var _ contracts.EventRepository = (*EventRepo)(nil)

// EventRepo implements EventRepository for Spanner.
type EventRepo struct {
	client    *spanner.Client
	committer *committer.Committer
	model     *m_event.Model
}

// NewEventRepo creates a new EventRepo.
func NewEventRepo(client *spanner.Client, comm *committer.Committer) *EventRepo {
	return &EventRepo{
		client:    client,
		committer: comm,
		model:     m_event.NewModel(),
	}
}

// Insert stores the event keyed by its content-derived id.
func (r *EventRepo) Insert(ctx context.Context, event *domain.Event) error {
	plan := committer.NewPlan()
	plan.Add(r.model.InsertOrUpdateMut(eventToData(event)))
	if err := r.committer.Apply(ctx, plan); err != nil {
		return fmt.Errorf("failed to insert event %s: %w", event.ID, err)
	}
	return nil
}

// ListByResourceExternalID returns every event stored for the resource.
func (r *EventRepo) ListByResourceExternalID(ctx context.Context, externalID string) ([]*domain.Event, error) {
	stmt := query.From(m_event.TableName).
		Select(m_event.Columns...).
		Where(query.Eq(m_event.ResourceExternalID, externalID)).
		OrderBy(m_event.EventDate, query.Asc).
		Build()

	iter := r.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	var events []*domain.Event
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to query events: %w", err)
		}

		var data m_event.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, fmt.Errorf("failed to parse event: %w", err)
		}
		event, err := dataToEvent(&data)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, nil
}

func eventToData(e *domain.Event) *m_event.Data {
	return &m_event.Data{
		EventID:                  e.ID,
		QueueMessageID:           nullString(e.QueueMessageID),
		ResourceType:             string(e.ResourceType),
		ResourceExternalID:       e.ResourceExternalID,
		ParentResourceExternalID: nullString(e.ParentResourceExternalID),
		EventDate:                e.EventDate,
		EventType:                e.EventType,
		EventData:                spanner.NullJSON{Value: e.Payload.Map(), Valid: true},
		Source:                   nullString(string(e.Source)),
	}
}

func dataToEvent(data *m_event.Data) (*domain.Event, error) {
	payload := domain.EmptyPayload()
	if data.EventData.Valid {
		raw, err := json.Marshal(data.EventData.Value)
		if err != nil {
			return nil, fmt.Errorf("failed to encode event data for %s: %w", data.EventID, err)
		}
		if payload, err = domain.ParsePayload(raw); err != nil {
			return nil, fmt.Errorf("event %s: %w", data.EventID, err)
		}
	}

	return &domain.Event{
		ID:                       data.EventID,
		QueueMessageID:           data.QueueMessageID.StringVal,
		ResourceType:             domain.ResourceType(data.ResourceType),
		ResourceExternalID:       data.ResourceExternalID,
		ParentResourceExternalID: data.ParentResourceExternalID.StringVal,
		EventDate:                data.EventDate.UTC(),
		EventType:                data.EventType,
		Payload:                  payload,
		Source:                   domain.Source(data.Source.StringVal),
	}, nil
}

func nullString(s string) spanner.NullString {
	return spanner.NullString{StringVal: s, Valid: s != ""}
}

func nullInt64(v *int64) spanner.NullInt64 {
	if v == nil {
		return spanner.NullInt64{}
	}
	return spanner.NullInt64{Int64: *v, Valid: true}
}

func int64Ptr(v spanner.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}
