package project_event

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/light-bringer/ledger-service/internal/app/ledger/contracts"
	"github.com/light-bringer/ledger-service/internal/app/ledger/domain"
	"github.com/light-bringer/ledger-service/internal/metrics"
	"github.com/light-bringer/ledger-service/internal/pkg/clock"
)

var tracer = otel.Tracer("github.com/light-bringer/ledger-service/internal/app/ledger/usecases/project_event")

// MetadataUpserter writes digest metadata onto its transaction.
type MetadataUpserter interface {
	UpsertMetadataFor(ctx context.Context, digest *domain.EventDigest) error
}

// Interactor records an incoming event and re-projects its transaction.
type Interactor struct {
	events       contracts.EventRepository
	transactions contracts.TransactionRepository
	metadata     MetadataUpserter
	table        *domain.SalienceTable
	clock        clock.Clock
	logger       *slog.Logger
}

// NewInteractor creates a new project event interactor.
func NewInteractor(
	events contracts.EventRepository,
	transactions contracts.TransactionRepository,
	metadata MetadataUpserter,
	table *domain.SalienceTable,
	clock clock.Clock,
	logger *slog.Logger,
) *Interactor {
	if table == nil {
		table = domain.DefaultSalienceTable()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Interactor{
		events:       events,
		transactions: transactions,
		metadata:     metadata,
		table:        table,
		clock:        clock,
		logger:       logger,
	}
}

// Execute stores the event and folds every event of its resource into a
// fresh snapshot. Redelivered events collapse onto the stored copy, so
// processing the same event twice yields the same snapshot.
func (i *Interactor) Execute(ctx context.Context, event *domain.Event) (*domain.Transaction, error) {
	ctx, span := tracer.Start(ctx, "ProjectEvent", trace.WithSpanKind(trace.SpanKindConsumer))
	defer span.End()
	span.SetAttributes(
		attribute.String("ledger.resource_type", string(event.ResourceType)),
		attribute.String("ledger.resource_external_id", event.ResourceExternalID),
		attribute.String("ledger.event_type", event.EventType),
	)

	start := i.clock.Now()
	tx, err := i.project(ctx, event)
	metrics.ProjectionDuration.Observe(float64(i.clock.Since(start).Milliseconds()))

	outcome := metrics.OutcomeOK
	if err != nil {
		outcome = metrics.OutcomeError
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	metrics.EventsProjected.WithLabelValues(string(event.ResourceType), outcome).Inc()
	return tx, err
}

func (i *Interactor) project(ctx context.Context, event *domain.Event) (*domain.Transaction, error) {
	// 1. Append to the event log
	if err := i.events.Insert(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to insert event: %w", err)
	}

	// 2. Load the full history of the resource
	history, err := i.events.ListByResourceExternalID(ctx, event.ResourceExternalID)
	if err != nil {
		return nil, fmt.Errorf("failed to list events for %s: %w", event.ResourceExternalID, err)
	}
	if !containsEvent(history, event.ID) {
		history = append(history, event)
	}

	// 3. Fold and project
	digest, err := domain.FromEventList(i.table, history)
	if err != nil {
		return nil, err
	}
	tx := domain.TransactionFromDigest(digest)

	if err := i.transactions.Upsert(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to upsert transaction %s: %w", tx.ExternalID, err)
	}

	// 4. Metadata goes last so it can resolve the snapshot just written
	if err := i.metadata.UpsertMetadataFor(ctx, digest); err != nil {
		return nil, err
	}

	i.logger.DebugContext(ctx, "event projected",
		"external_id", tx.ExternalID,
		"event_type", event.EventType,
		"state", tx.State,
		"event_count", tx.EventCount,
	)
	return tx, nil
}

func containsEvent(events []*domain.Event, id string) bool {
	for _, e := range events {
		if e != nil && e.ID == id {
			return true
		}
	}
	return false
}
