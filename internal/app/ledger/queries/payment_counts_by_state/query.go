package payment_counts_by_state

import (
	"context"
	"fmt"

	"github.com/light-bringer/ledger-service/internal/app/ledger/contracts"
	"github.com/light-bringer/ledger-service/internal/app/ledger/domain"
	"github.com/light-bringer/ledger-service/internal/metrics"
)

const reportName = "payment_counts_by_state"

// Query handles the payment counts by state report.
type Query struct {
	reports contracts.ReportRepository
}

// NewQuery creates a new payment counts by state query.
func NewQuery(reports contracts.ReportRepository) *Query {
	return &Query{reports: reports}
}

// Execute returns the number of payments per external status label.
// Every label is present, at zero when nothing matched.
func (q *Query) Execute(ctx context.Context, filter contracts.ReportFilter) (map[string]int64, error) {
	rows, err := q.reports.PaymentCountsByState(ctx, filter)
	if err != nil {
		metrics.ReportQueries.WithLabelValues(reportName, metrics.OutcomeError).Inc()
		return nil, fmt.Errorf("failed to count payments by state: %w", err)
	}

	counts := make(map[string]int64, len(domain.StatusLabels()))
	for _, label := range domain.StatusLabels() {
		counts[label] = 0
	}
	for _, row := range rows {
		// Unrecognised states report as undefined.
		counts[domain.TransactionState(row.State).StatusLabel()] += row.Count
	}

	metrics.ReportQueries.WithLabelValues(reportName, metrics.OutcomeOK).Inc()
	return counts, nil
}
