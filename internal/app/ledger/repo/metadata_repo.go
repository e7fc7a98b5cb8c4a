package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/ledger-service/internal/app/ledger/contracts"
	"github.com/light-bringer/ledger-service/internal/models/m_metadata_key"
	"github.com/light-bringer/ledger-service/internal/models/m_transaction_metadata"
	"github.com/light-bringer/ledger-service/internal/pkg/committer"
	"github.com/light-bringer/ledger-service/internal/pkg/query"
)

var (
	_ contracts.MetadataKeyRepository         = (*MetadataKeyRepo)(nil)
	_ contracts.TransactionMetadataRepository = (*TransactionMetadataRepo)(nil)
)

// MetadataKeyRepo implements MetadataKeyRepository for Spanner.
type MetadataKeyRepo struct {
	committer *committer.Committer
	model     *m_metadata_key.Model
}

// NewMetadataKeyRepo creates a new MetadataKeyRepo.
func NewMetadataKeyRepo(comm *committer.Committer) *MetadataKeyRepo {
	return &MetadataKeyRepo{
		committer: comm,
		model:     m_metadata_key.NewModel(),
	}
}

// InsertIfNotExists registers the key inside a read-write transaction so
// concurrent registrations of the same key do not fail.
func (r *MetadataKeyRepo) InsertIfNotExists(ctx context.Context, key string) error {
	err := r.committer.ApplyWithReadWriteTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		_, err := txn.ReadRow(ctx, m_metadata_key.TableName, spanner.Key{key}, []string{m_metadata_key.Key})
		if err == nil {
			return nil
		}
		if spanner.ErrCode(err) != codes.NotFound {
			return err
		}
		return txn.BufferWrite([]*spanner.Mutation{r.model.InsertMut(key)})
	})
	if err != nil {
		return fmt.Errorf("failed to register metadata key %q: %w", key, err)
	}
	return nil
}

// TransactionMetadataRepo implements TransactionMetadataRepository for Spanner.
type TransactionMetadataRepo struct {
	client    *spanner.Client
	committer *committer.Committer
	model     *m_transaction_metadata.Model
}

// NewTransactionMetadataRepo creates a new TransactionMetadataRepo.
func NewTransactionMetadataRepo(client *spanner.Client, comm *committer.Committer) *TransactionMetadataRepo {
	return &TransactionMetadataRepo{
		client:    client,
		committer: comm,
		model:     m_transaction_metadata.NewModel(),
	}
}

// Upsert sets the value of one metadata key on a transaction.
func (r *TransactionMetadataRepo) Upsert(ctx context.Context, transactionID, key, value string) error {
	plan := committer.NewPlan()
	plan.Add(r.model.InsertOrUpdateMut(&m_transaction_metadata.Data{
		TransactionID: transactionID,
		MetadataKey:   key,
		Value:         value,
	}))
	if err := r.committer.Apply(ctx, plan); err != nil {
		return fmt.Errorf("failed to upsert metadata %q: %w", key, err)
	}
	return nil
}

// ListByTransactionID returns all metadata of a transaction.
func (r *TransactionMetadataRepo) ListByTransactionID(ctx context.Context, transactionID string) (map[string]string, error) {
	stmt := query.From(m_transaction_metadata.TableName).
		Select(m_transaction_metadata.TransactionID, m_transaction_metadata.MetadataKey, m_transaction_metadata.Value).
		Where(query.Eq(m_transaction_metadata.TransactionID, transactionID)).
		Build()

	iter := r.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	out := make(map[string]string)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to query metadata: %w", err)
		}
		var data m_transaction_metadata.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, fmt.Errorf("failed to parse metadata: %w", err)
		}
		out[data.MetadataKey] = data.Value
	}
	return out, nil
}
