package replay_transaction

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/ledger-service/internal/app/ledger/contracts/mocks"
	"github.com/light-bringer/ledger-service/internal/app/ledger/domain"
)

type metadataUpserter struct{ mock.Mock }

func (m *metadataUpserter) UpsertMetadataFor(ctx context.Context, digest *domain.EventDigest) error {
	return m.Called(ctx, digest).Error(0)
}

func storedHistory(t *testing.T) []*domain.Event {
	t.Helper()
	at := time.Date(2020, time.January, 1, 12, 0, 0, 0, time.UTC)
	var out []*domain.Event
	for n, eventType := range []string{domain.EventPaymentCreated, domain.EventPaymentStarted, domain.EventCancelByUser} {
		e, err := domain.NewEvent(domain.ResourceTypePayment, "external-id", "", eventType,
			at.Add(time.Duration(n)*time.Minute), domain.EmptyPayload())
		require.NoError(t, err)
		out = append(out, e)
	}
	return out
}

func TestExecute_RebuildsSnapshot(t *testing.T) {
	ctx := context.Background()
	events := &mocks.EventRepository{}
	transactions := &mocks.TransactionRepository{}
	metadata := &metadataUpserter{}

	events.On("ListByResourceExternalID", ctx, "external-id").Return(storedHistory(t), nil).Once()
	transactions.On("Upsert", ctx, mock.Anything).Return(nil).Once()
	metadata.On("UpsertMetadataFor", ctx, mock.Anything).Return(nil).Once()

	tx, err := NewInteractor(events, transactions, metadata, nil, nil).Execute(ctx, "external-id")
	require.NoError(t, err)
	assert.Equal(t, domain.StateFailedCancelled, tx.State)
	assert.Equal(t, "cancelled", tx.State.StatusLabel())
	assert.Equal(t, int64(3), tx.EventCount)

	events.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	transactions.AssertExpectations(t)
	metadata.AssertExpectations(t)
}

func TestExecute_NoEvents(t *testing.T) {
	ctx := context.Background()
	events := &mocks.EventRepository{}
	transactions := &mocks.TransactionRepository{}

	events.On("ListByResourceExternalID", ctx, "missing").Return([]*domain.Event{}, nil).Once()

	_, err := NewInteractor(events, transactions, &metadataUpserter{}, nil, nil).Execute(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrTransactionNotFound)
	transactions.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestPreview_WritesNothing(t *testing.T) {
	ctx := context.Background()
	events := &mocks.EventRepository{}
	transactions := &mocks.TransactionRepository{}
	metadata := &metadataUpserter{}

	events.On("ListByResourceExternalID", ctx, "external-id").Return(storedHistory(t), nil).Once()

	tx, digest, err := NewInteractor(events, transactions, metadata, nil, nil).Preview(ctx, "external-id")
	require.NoError(t, err)
	assert.Equal(t, domain.StateFailedCancelled, tx.State)
	assert.Equal(t, domain.EventCancelByUser, digest.MostRecentSalientEventType)

	transactions.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	metadata.AssertNotCalled(t, "UpsertMetadataFor", mock.Anything, mock.Anything)
}
