package sqlite

import (
	"context"
	"fmt"

	"github.com/light-bringer/ledger-service/internal/app/ledger/contracts"
	"github.com/light-bringer/ledger-service/internal/app/ledger/domain"
	"github.com/light-bringer/ledger-service/internal/models/m_transaction"
	"github.com/light-bringer/ledger-service/internal/pkg/query"
)

var _ contracts.ReportRepository = (*ReportStore)(nil)

// ReportStore implements ReportRepository on SQLite.
type ReportStore struct {
	store *Store
}

// PaymentCountsByState groups payments by their stored state.
func (s *ReportStore) PaymentCountsByState(ctx context.Context, filter contracts.ReportFilter) ([]contracts.StateCount, error) {
	b := query.From(m_transaction.TableName).
		Select(m_transaction.State, "COUNT(*) AS state_count").
		Where(query.Eq(m_transaction.ResourceType, string(domain.ResourceTypePayment)))
	stmt := filtered(b, filter).
		GroupBy(m_transaction.State).
		OrderBy(m_transaction.State, query.Asc).
		Build()

	rows, err := s.store.sqlDB.QueryContext(ctx, stmt.SQL, statementArgs(stmt)...)
	if err != nil {
		return nil, fmt.Errorf("failed to query payment counts: %w", err)
	}
	defer rows.Close()

	var out []contracts.StateCount
	for rows.Next() {
		var sc contracts.StateCount
		if err := rows.Scan(&sc.State, &sc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan payment count: %w", err)
		}
		out = append(out, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payment counts: %w", err)
	}
	return out, nil
}

// TransactionSummaryStatistics counts and sums successful transactions of one type.
func (s *ReportStore) TransactionSummaryStatistics(ctx context.Context, filter contracts.ReportFilter, resourceType domain.ResourceType) (contracts.TransactionsStatistics, error) {
	total := "COALESCE(SUM(amount), 0)"
	if resourceType == domain.ResourceTypePayment {
		total = "COALESCE(SUM(COALESCE(total_amount, amount)), 0)"
	}
	b := query.From(m_transaction.TableName).
		Select("COUNT(*)", total).
		Where(query.Eq(m_transaction.ResourceType, string(resourceType))).
		Where(query.Eq(m_transaction.State, string(domain.StateSuccess)))
	stmt := filtered(b, filter).Build()

	var stats contracts.TransactionsStatistics
	err := s.store.sqlDB.QueryRowContext(ctx, stmt.SQL, statementArgs(stmt)...).Scan(&stats.Count, &stats.TotalAmount)
	if err != nil {
		return contracts.TransactionsStatistics{}, fmt.Errorf("failed to query %s summary: %w", resourceType, err)
	}
	return stats, nil
}

func filtered(b *query.Builder, filter contracts.ReportFilter) *query.Builder {
	return b.
		WhereIf(filter.AccountID != "", query.Eq(m_transaction.GatewayAccountID, filter.AccountID)).
		WhereIf(!filter.FromDate.IsZero(), query.Gte(m_transaction.CreatedDate, toNanos(filter.FromDate))).
		WhereIf(!filter.ToDate.IsZero(), query.Lt(m_transaction.CreatedDate, toNanos(filter.ToDate)))
}
