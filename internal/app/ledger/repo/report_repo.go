package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/ledger-service/internal/app/ledger/contracts"
	"github.com/light-bringer/ledger-service/internal/app/ledger/domain"
	"github.com/light-bringer/ledger-service/internal/models/m_transaction"
	"github.com/light-bringer/ledger-service/internal/pkg/query"
)

var _ contracts.ReportRepository = (*ReportRepo)(nil)

// ReportRepo implements ReportRepository for Spanner.
type ReportRepo struct {
	client *spanner.Client
}

// NewReportRepo creates a new ReportRepo.
func NewReportRepo(client *spanner.Client) *ReportRepo {
	return &ReportRepo{client: client}
}

// PaymentCountsByState groups payments by state.
func (r *ReportRepo) PaymentCountsByState(ctx context.Context, filter contracts.ReportFilter) ([]contracts.StateCount, error) {
	iter := r.client.Single().Query(ctx, paymentCountsStatement(filter))
	defer iter.Stop()

	var out []contracts.StateCount
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to query payment counts: %w", err)
		}
		var sc contracts.StateCount
		if err := row.Columns(&sc.State, &sc.Count); err != nil {
			return nil, fmt.Errorf("failed to parse payment count: %w", err)
		}
		out = append(out, sc)
	}
	return out, nil
}

// TransactionSummaryStatistics counts and sums successful transactions of one type.
func (r *ReportRepo) TransactionSummaryStatistics(ctx context.Context, filter contracts.ReportFilter, resourceType domain.ResourceType) (contracts.TransactionsStatistics, error) {
	iter := r.client.Single().Query(ctx, summaryStatement(filter, resourceType))
	defer iter.Stop()

	var stats contracts.TransactionsStatistics
	row, err := iter.Next()
	if err == iterator.Done {
		return stats, nil
	}
	if err != nil {
		return stats, fmt.Errorf("failed to query %s summary: %w", resourceType, err)
	}
	if err := row.Columns(&stats.Count, &stats.TotalAmount); err != nil {
		return stats, fmt.Errorf("failed to parse %s summary: %w", resourceType, err)
	}
	return stats, nil
}

func filtered(b *query.Builder, filter contracts.ReportFilter) *query.Builder {
	return b.
		WhereIf(filter.AccountID != "", query.Eq(m_transaction.GatewayAccountID, filter.AccountID)).
		WhereIf(!filter.FromDate.IsZero(), query.Gte(m_transaction.CreatedDate, filter.FromDate)).
		WhereIf(!filter.ToDate.IsZero(), query.Lt(m_transaction.CreatedDate, filter.ToDate))
}

func paymentCountsStatement(filter contracts.ReportFilter) spanner.Statement {
	b := query.From(m_transaction.TableName).
		Select(m_transaction.State, "COUNT(*) AS state_count").
		Where(query.Eq(m_transaction.ResourceType, string(domain.ResourceTypePayment)))
	return filtered(b, filter).
		GroupBy(m_transaction.State).
		OrderBy(m_transaction.State, query.Asc).
		Build()
}

func summaryStatement(filter contracts.ReportFilter, resourceType domain.ResourceType) spanner.Statement {
	total := "COALESCE(SUM(amount), 0)"
	if resourceType == domain.ResourceTypePayment {
		total = "COALESCE(SUM(COALESCE(total_amount, amount)), 0)"
	}
	b := query.From(m_transaction.TableName).
		Select("COUNT(*)", total).
		Where(query.Eq(m_transaction.ResourceType, string(resourceType))).
		Where(query.Eq(m_transaction.State, string(domain.StateSuccess)))
	return filtered(b, filter).Build()
}
