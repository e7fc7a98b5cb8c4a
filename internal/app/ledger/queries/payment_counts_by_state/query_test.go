package payment_counts_by_state

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/ledger-service/internal/app/ledger/contracts"
	"github.com/light-bringer/ledger-service/internal/app/ledger/contracts/mocks"
)

func TestExecute_FillsEveryLabel(t *testing.T) {
	ctx := context.Background()
	filter := contracts.ReportFilter{
		AccountID: "1",
		FromDate:  time.Date(2019, time.September, 1, 0, 0, 0, 0, time.UTC),
		ToDate:    time.Date(2019, time.September, 30, 0, 0, 0, 0, time.UTC),
	}
	reports := &mocks.ReportRepository{}
	reports.On("PaymentCountsByState", ctx, filter).Return([]contracts.StateCount{
		{State: "CREATED", Count: 2},
		{State: "SUCCESS", Count: 1},
		{State: "ERROR", Count: 3},
	}, nil).Once()

	counts, err := NewQuery(reports).Execute(ctx, filter)
	require.NoError(t, err)

	assert.Equal(t, map[string]int64{
		"undefined":  0,
		"created":    2,
		"started":    0,
		"submitted":  0,
		"capturable": 0,
		"success":    1,
		"declined":   0,
		"timedout":   0,
		"cancelled":  0,
		"error":      3,
	}, counts)
	reports.AssertExpectations(t)
}

func TestExecute_MergesStatesSharingALabel(t *testing.T) {
	ctx := context.Background()
	reports := &mocks.ReportRepository{}
	reports.On("PaymentCountsByState", ctx, contracts.ReportFilter{}).Return([]contracts.StateCount{
		{State: "ERROR", Count: 1},
		{State: "ERROR_GATEWAY", Count: 4},
		{State: "FAILED_CANCELLED", Count: 2},
		{State: "CANCELLED", Count: 1},
		{State: "SOMETHING_ELSE", Count: 7},
	}, nil).Once()

	counts, err := NewQuery(reports).Execute(ctx, contracts.ReportFilter{})
	require.NoError(t, err)
	assert.Len(t, counts, 10)
	assert.Equal(t, int64(5), counts["error"])
	assert.Equal(t, int64(3), counts["cancelled"])
	assert.Equal(t, int64(7), counts["undefined"])
}

func TestExecute_EmptyResult(t *testing.T) {
	ctx := context.Background()
	reports := &mocks.ReportRepository{}
	reports.On("PaymentCountsByState", ctx, contracts.ReportFilter{}).Return(nil, nil).Once()

	counts, err := NewQuery(reports).Execute(ctx, contracts.ReportFilter{})
	require.NoError(t, err)
	assert.Len(t, counts, 10)
	for label, n := range counts {
		assert.Zero(t, n, label)
	}
}

func TestExecute_StorageError(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("query failed")
	reports := &mocks.ReportRepository{}
	reports.On("PaymentCountsByState", ctx, contracts.ReportFilter{}).Return(nil, boom).Once()

	_, err := NewQuery(reports).Execute(ctx, contracts.ReportFilter{})
	assert.ErrorIs(t, err, boom)
}
