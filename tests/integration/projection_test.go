//go:build integration

package integration

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/ledger-service/internal/app/ledger/contracts"
	"github.com/light-bringer/ledger-service/internal/app/ledger/domain"
	"github.com/light-bringer/ledger-service/internal/services"
	"github.com/light-bringer/ledger-service/tests/testutil"
)

func TestProjection_SpannerEndToEnd(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	ctx := context.Background()
	svc := services.NewWithRepositories(services.SpannerRepositories(client), nil, testutil.NewFixedClock(), nil)

	created := testutil.NewPaymentEvent(t, "pay-1", domain.EventPaymentCreated, 0, map[string]interface{}{
		"amount":             2000,
		"gateway_account_id": "9",
		"reference":          "ref-abc",
		domain.FieldExternalMetadata: map[string]interface{}{
			"ledger_code": 42,
		},
	})
	captured := testutil.NewPaymentEvent(t, "pay-1", domain.EventCaptureConfirmed, 10*time.Minute, map[string]interface{}{
		"fee":        20,
		"net_amount": 1980,
	})
	refund := testutil.NewRefundEvent(t, "ref-1", "pay-1", domain.EventRefundSucceeded, time.Hour, map[string]interface{}{
		"amount":             500,
		"gateway_account_id": "9",
	})

	for _, e := range []*domain.Event{created, captured, created, refund} {
		_, err := svc.ProjectEvent.Execute(ctx, e)
		require.NoError(t, err)
	}

	res, err := svc.GetTransaction.Execute(ctx, "pay-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StateSuccess, res.Transaction.State)
	assert.Equal(t, int64(2), res.Transaction.EventCount)
	require.NotNil(t, res.Transaction.Fee)
	assert.Equal(t, int64(20), *res.Transaction.Fee)
	assert.Equal(t, map[string]string{"ledger_code": "42"}, res.Metadata)

	summary, err := svc.TransactionsSummary.Execute(ctx, contracts.ReportFilter{AccountID: "9"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), summary.Payments.Count)
	assert.Equal(t, int64(2000), summary.Payments.TotalAmount)
	assert.Equal(t, int64(500), summary.Refunds.TotalAmount)
	assert.Equal(t, int64(1500), summary.NetTotal)

	replayed, err := svc.ReplayTransaction.Execute(ctx, "pay-1")
	require.NoError(t, err)
	assert.Equal(t, res.Transaction.State, replayed.State)
	assert.Equal(t, res.Transaction.EventCount, replayed.EventCount)
}
