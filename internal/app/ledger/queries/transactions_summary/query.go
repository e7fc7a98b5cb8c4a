package transactions_summary

import (
	"context"
	"fmt"

	"github.com/light-bringer/ledger-service/internal/app/ledger/contracts"
	"github.com/light-bringer/ledger-service/internal/app/ledger/domain"
	"github.com/light-bringer/ledger-service/internal/metrics"
)

const reportName = "transactions_summary"

// TransactionSummary pairs successful payment and refund statistics.
type TransactionSummary struct {
	Payments contracts.TransactionsStatistics `json:"payments"`
	Refunds  contracts.TransactionsStatistics `json:"refunds"`
	NetTotal int64                            `json:"net_total"`
}

// Query handles the transactions summary report.
type Query struct {
	reports contracts.ReportRepository
}

// NewQuery creates a new transactions summary query.
func NewQuery(reports contracts.ReportRepository) *Query {
	return &Query{reports: reports}
}

// Execute summarises successful payments and refunds matching the filter.
func (q *Query) Execute(ctx context.Context, filter contracts.ReportFilter) (*TransactionSummary, error) {
	payments, err := q.reports.TransactionSummaryStatistics(ctx, filter, domain.ResourceTypePayment)
	if err != nil {
		metrics.ReportQueries.WithLabelValues(reportName, metrics.OutcomeError).Inc()
		return nil, fmt.Errorf("failed to summarise payments: %w", err)
	}
	refunds, err := q.reports.TransactionSummaryStatistics(ctx, filter, domain.ResourceTypeRefund)
	if err != nil {
		metrics.ReportQueries.WithLabelValues(reportName, metrics.OutcomeError).Inc()
		return nil, fmt.Errorf("failed to summarise refunds: %w", err)
	}

	metrics.ReportQueries.WithLabelValues(reportName, metrics.OutcomeOK).Inc()
	return &TransactionSummary{
		Payments: payments,
		Refunds:  refunds,
		NetTotal: payments.TotalAmount - refunds.TotalAmount,
	}, nil
}
