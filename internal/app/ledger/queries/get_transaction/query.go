package get_transaction

import (
	"context"
	"fmt"

	"github.com/light-bringer/ledger-service/internal/app/ledger/contracts"
	"github.com/light-bringer/ledger-service/internal/app/ledger/domain"
)

// Result is a snapshot together with its metadata.
type Result struct {
	Transaction *domain.Transaction
	Metadata    map[string]string
}

// Query handles the get transaction query use case.
type Query struct {
	transactions contracts.TransactionRepository
	metadata     contracts.TransactionMetadataRepository
}

// NewQuery creates a new get transaction query.
func NewQuery(transactions contracts.TransactionRepository, metadata contracts.TransactionMetadataRepository) *Query {
	return &Query{
		transactions: transactions,
		metadata:     metadata,
	}
}

// Execute retrieves a transaction by external id.
func (q *Query) Execute(ctx context.Context, externalID string) (*Result, error) {
	tx, err := q.transactions.FindByExternalID(ctx, externalID)
	if err != nil {
		return nil, err
	}
	md, err := q.metadata.ListByTransactionID(ctx, tx.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load metadata for %s: %w", externalID, err)
	}
	if md == nil {
		md = map[string]string{}
	}
	return &Result{Transaction: tx, Metadata: md}, nil
}
