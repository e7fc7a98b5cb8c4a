package contracts

import (
	"context"

	"github.com/light-bringer/ledger-service/internal/app/ledger/domain"
)

// TransactionRepository persists transaction snapshots.
type TransactionRepository interface {
	// FindByExternalID returns domain.ErrTransactionNotFound when no snapshot exists.
	FindByExternalID(ctx context.Context, externalID string) (*domain.Transaction, error)

	// Upsert replaces the snapshot keyed by its id. A snapshot folded from
	// fewer events than the stored one is dropped without error, so a
	// concurrent projection that read an older history cannot win.
	Upsert(ctx context.Context, tx *domain.Transaction) error
}
