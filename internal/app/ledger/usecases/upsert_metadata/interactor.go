package upsert_metadata

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/light-bringer/ledger-service/internal/app/ledger/contracts"
	"github.com/light-bringer/ledger-service/internal/app/ledger/domain"
	"github.com/light-bringer/ledger-service/internal/metrics"
)

// Interactor writes the metadata carried by a digest onto its transaction.
type Interactor struct {
	transactions contracts.TransactionRepository
	keys         contracts.MetadataKeyRepository
	values       contracts.TransactionMetadataRepository
	policy       contracts.PolicySource
	logger       *slog.Logger
}

// NewInteractor creates a new upsert metadata interactor.
func NewInteractor(
	transactions contracts.TransactionRepository,
	keys contracts.MetadataKeyRepository,
	values contracts.TransactionMetadataRepository,
	policy contracts.PolicySource,
	logger *slog.Logger,
) *Interactor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Interactor{
		transactions: transactions,
		keys:         keys,
		values:       values,
		policy:       policy,
		logger:       logger,
	}
}

// UpsertMetadataFor stores every metadata entry of the digest when the
// policy allows it. A digest whose transaction has not been projected yet
// is skipped without error.
func (i *Interactor) UpsertMetadataFor(ctx context.Context, digest *domain.EventDigest) error {
	// 1. Policy guard
	if !i.policy.Policy().Allows(digest) {
		metrics.MetadataUpserts.WithLabelValues(metrics.MetadataSkippedPolicy).Inc()
		return nil
	}

	// 2. Nothing to write
	if len(digest.Metadata) == 0 {
		metrics.MetadataUpserts.WithLabelValues(metrics.MetadataSkippedEmpty).Inc()
		return nil
	}

	// 3. Resolve the owning transaction
	tx, err := i.transactions.FindByExternalID(ctx, digest.ResourceExternalID)
	if errors.Is(err, domain.ErrTransactionNotFound) {
		i.logger.DebugContext(ctx, "metadata skipped, transaction not projected",
			"external_id", digest.ResourceExternalID)
		metrics.MetadataUpserts.WithLabelValues(metrics.MetadataSkippedMissing).Inc()
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to find transaction %s: %w", digest.ResourceExternalID, err)
	}

	// 4. Register keys and values in a stable order
	for _, key := range digest.MetadataKeys() {
		if err := i.keys.InsertIfNotExists(ctx, key); err != nil {
			return fmt.Errorf("failed to register metadata key %q: %w", key, err)
		}
		if err := i.values.Upsert(ctx, tx.ID, key, digest.Metadata[key]); err != nil {
			return fmt.Errorf("failed to upsert metadata %q for %s: %w", key, tx.ExternalID, err)
		}
	}

	metrics.MetadataUpserts.WithLabelValues(metrics.MetadataWritten).Inc()
	return nil
}
