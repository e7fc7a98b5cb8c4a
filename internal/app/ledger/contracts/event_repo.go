package contracts

import (
	"context"

	"github.com/light-bringer/ledger-service/internal/app/ledger/domain"
)

// EventRepository persists the append-only event log.
type EventRepository interface {
	// Insert stores the event. Re-inserting an event with the same id is a no-op.
	Insert(ctx context.Context, event *domain.Event) error

	// ListByResourceExternalID returns every stored event for the resource.
	// Order is unspecified; callers fold with the salience table.
	ListByResourceExternalID(ctx context.Context, externalID string) ([]*domain.Event, error)
}
