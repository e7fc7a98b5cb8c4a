package contracts

import "context"

// MetadataKeyRepository maintains the catalogue of known metadata keys.
type MetadataKeyRepository interface {
	// InsertIfNotExists registers the key. Existing keys are left untouched.
	InsertIfNotExists(ctx context.Context, key string) error
}

// TransactionMetadataRepository stores metadata values per transaction.
type TransactionMetadataRepository interface {
	// Upsert sets the value for (transactionID, key), replacing any previous value.
	Upsert(ctx context.Context, transactionID, key, value string) error

	// ListByTransactionID returns all metadata of a transaction keyed by metadata key.
	ListByTransactionID(ctx context.Context, transactionID string) (map[string]string, error)
}
