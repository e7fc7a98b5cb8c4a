package contracts

import (
	"context"
	"time"

	"github.com/light-bringer/ledger-service/internal/app/ledger/domain"
)

// ReportFilter narrows report queries. Zero values leave a bound open.
type ReportFilter struct {
	AccountID string
	FromDate  time.Time
	ToDate    time.Time
}

// StateCount is one row of a grouped count.
type StateCount struct {
	State string
	Count int64
}

// TransactionsStatistics is the count and summed amount of a set of transactions.
type TransactionsStatistics struct {
	Count       int64 `json:"count"`
	TotalAmount int64 `json:"total_amount"`
}

// ReportRepository answers aggregate questions over stored snapshots.
type ReportRepository interface {
	// PaymentCountsByState groups payment snapshots by their raw state name.
	PaymentCountsByState(ctx context.Context, filter ReportFilter) ([]StateCount, error)

	// TransactionSummaryStatistics counts successful transactions of one type
	// and sums their amounts. Payments sum total_amount falling back to amount.
	TransactionSummaryStatistics(ctx context.Context, filter ReportFilter, resourceType domain.ResourceType) (TransactionsStatistics, error)
}
