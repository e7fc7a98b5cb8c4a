package replay_transaction

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/light-bringer/ledger-service/internal/app/ledger/contracts"
	"github.com/light-bringer/ledger-service/internal/app/ledger/domain"
)

// MetadataUpserter writes digest metadata onto its transaction.
type MetadataUpserter interface {
	UpsertMetadataFor(ctx context.Context, digest *domain.EventDigest) error
}

// Interactor rebuilds a transaction snapshot from its stored events.
type Interactor struct {
	events       contracts.EventRepository
	transactions contracts.TransactionRepository
	metadata     MetadataUpserter
	table        *domain.SalienceTable
	logger       *slog.Logger
}

// NewInteractor creates a new replay transaction interactor.
func NewInteractor(
	events contracts.EventRepository,
	transactions contracts.TransactionRepository,
	metadata MetadataUpserter,
	table *domain.SalienceTable,
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
		logger:       logger,
	}
}

// Execute recomputes and stores the snapshot of the given resource.
func (i *Interactor) Execute(ctx context.Context, externalID string) (*domain.Transaction, error) {
	digest, err := i.digest(ctx, externalID)
	if err != nil {
		return nil, err
	}
	tx := domain.TransactionFromDigest(digest)

	if err := i.transactions.Upsert(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to upsert transaction %s: %w", externalID, err)
	}
	if err := i.metadata.UpsertMetadataFor(ctx, digest); err != nil {
		return nil, err
	}

	i.logger.InfoContext(ctx, "transaction replayed",
		"external_id", externalID,
		"state", tx.State,
		"event_count", tx.EventCount,
	)
	return tx, nil
}

// Preview recomputes the snapshot without writing anything.
func (i *Interactor) Preview(ctx context.Context, externalID string) (*domain.Transaction, *domain.EventDigest, error) {
	digest, err := i.digest(ctx, externalID)
	if err != nil {
		return nil, nil, err
	}
	return domain.TransactionFromDigest(digest), digest, nil
}

func (i *Interactor) digest(ctx context.Context, externalID string) (*domain.EventDigest, error) {
	history, err := i.events.ListByResourceExternalID(ctx, externalID)
	if err != nil {
		return nil, fmt.Errorf("failed to list events for %s: %w", externalID, err)
	}
	if len(history) == 0 {
		return nil, domain.ErrTransactionNotFound
	}
	return domain.FromEventList(i.table, history)
}
