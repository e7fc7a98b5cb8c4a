package sqlite

import (
	"context"
	"fmt"

	"github.com/light-bringer/ledger-service/internal/app/ledger/contracts"
	"github.com/light-bringer/ledger-service/internal/app/ledger/domain"
	"github.com/light-bringer/ledger-service/internal/models/m_transaction_metadata"
	"github.com/light-bringer/ledger-service/internal/pkg/query"
)

var (
	_ contracts.MetadataKeyRepository         = (*MetadataKeyStore)(nil)
	_ contracts.TransactionMetadataRepository = (*TransactionMetadataStore)(nil)
)

// MetadataKeyStore implements MetadataKeyRepository on SQLite.
type MetadataKeyStore struct {
	store *Store
}

// InsertIfNotExists registers the key, leaving an existing row untouched.
func (s *MetadataKeyStore) InsertIfNotExists(ctx context.Context, key string) error {
	_, err := s.store.sqlDB.ExecContext(ctx,
		`INSERT OR IGNORE INTO metadata_keys (metadata_key, created_at) VALUES (?, ?)`,
		key, toNanos(s.store.now()),
	)
	if err != nil {
		return fmt.Errorf("failed to register metadata key %q: %w", key, err)
	}
	return nil
}

// TransactionMetadataStore implements TransactionMetadataRepository on SQLite.
type TransactionMetadataStore struct {
	store *Store
}

// Upsert sets one metadata value. The transaction and key must already exist.
func (s *TransactionMetadataStore) Upsert(ctx context.Context, transactionID, key, value string) error {
	_, err := s.store.sqlDB.ExecContext(ctx, `
INSERT INTO transaction_metadata (transaction_id, metadata_key, value, updated_at)
VALUES (?, ?, ?, ?)
ON CONFLICT(transaction_id, metadata_key) DO UPDATE SET
    value = excluded.value,
    updated_at = excluded.updated_at`,
		transactionID, key, value, toNanos(s.store.now()),
	)
	if err != nil {
		if isConstraintViolation(err) {
			return fmt.Errorf("failed to upsert metadata %q: %w", key, domain.ErrTransactionNotFound)
		}
		return fmt.Errorf("failed to upsert metadata %q: %w", key, err)
	}
	return nil
}

// ListByTransactionID returns all metadata of a transaction.
func (s *TransactionMetadataStore) ListByTransactionID(ctx context.Context, transactionID string) (map[string]string, error) {
	stmt := query.From(m_transaction_metadata.TableName).
		Select(m_transaction_metadata.MetadataKey, m_transaction_metadata.Value).
		Where(query.Eq(m_transaction_metadata.TransactionID, transactionID)).
		Build()

	rows, err := s.store.sqlDB.QueryContext(ctx, stmt.SQL, statementArgs(stmt)...)
	if err != nil {
		return nil, fmt.Errorf("failed to query metadata: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan metadata: %w", err)
		}
		out[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate metadata: %w", err)
	}
	return out, nil
}
