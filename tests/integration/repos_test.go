//go:build integration

package integration

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/ledger-service/internal/app/ledger/domain"
	"github.com/light-bringer/ledger-service/internal/app/ledger/repo"
	"github.com/light-bringer/ledger-service/internal/models/m_event"
	"github.com/light-bringer/ledger-service/internal/pkg/committer"
	"github.com/light-bringer/ledger-service/tests/testutil"
)

func TestEventRepo_InsertIsIdempotent(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	ctx := context.Background()
	events := repo.NewEventRepo(client, committer.NewCommitter(client))

	created := testutil.NewPaymentEvent(t, "tx-1", domain.EventPaymentCreated, 0, map[string]interface{}{"amount": 1000})
	started := testutil.NewPaymentEvent(t, "tx-1", domain.EventPaymentStarted, time.Minute, nil)

	require.NoError(t, events.Insert(ctx, started))
	require.NoError(t, events.Insert(ctx, created))
	require.NoError(t, events.Insert(ctx, created))

	testutil.AssertRowCount(t, client, m_event.TableName, 2)

	listed, err := events.ListByResourceExternalID(ctx, "tx-1")
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, domain.EventPaymentCreated, listed[0].EventType)
	assert.Equal(t, domain.EventPaymentStarted, listed[1].EventType)
	assert.Equal(t, created.Payload.Canonical(), listed[0].Payload.Canonical())
}

func TestTransactionRepo_UpsertAndFind(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	ctx := context.Background()
	transactions := repo.NewTransactionRepo(client, committer.NewCommitter(client))

	_, err := transactions.FindByExternalID(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrTransactionNotFound)

	tx := testutil.NewSnapshot("tx-1", domain.ResourceTypePayment, domain.StateStarted, "3", 1000, 0)
	require.NoError(t, transactions.Upsert(ctx, tx))

	tx.State = domain.StateSuccess
	tx.EventCount = 2
	require.NoError(t, transactions.Upsert(ctx, tx))

	found, err := transactions.FindByExternalID(ctx, "tx-1")
	require.NoError(t, err)
	assert.Equal(t, tx.ID, found.ID)
	assert.Equal(t, domain.StateSuccess, found.State)
	assert.Equal(t, int64(2), found.EventCount)
	require.NotNil(t, found.Amount)
	assert.Equal(t, int64(1000), *found.Amount)
	assert.Nil(t, found.Fee)
	assert.Equal(t, "3", found.GatewayAccountID)
	assert.Equal(t, testutil.BaseDate, found.CreatedDate)
}

func TestMetadataRepos(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	ctx := context.Background()
	comm := committer.NewCommitter(client)
	transactions := repo.NewTransactionRepo(client, comm)
	keys := repo.NewMetadataKeyRepo(comm)
	values := repo.NewTransactionMetadataRepo(client, comm)

	tx := testutil.NewSnapshot("tx-1", domain.ResourceTypePayment, domain.StateCreated, "3", 1000, 0)
	require.NoError(t, transactions.Upsert(ctx, tx))

	require.NoError(t, keys.InsertIfNotExists(ctx, "reconciled"))
	require.NoError(t, keys.InsertIfNotExists(ctx, "reconciled"))
	testutil.AssertRowCount(t, client, "metadata_keys", 1)

	require.NoError(t, values.Upsert(ctx, tx.ID, "reconciled", "false"))
	require.NoError(t, values.Upsert(ctx, tx.ID, "reconciled", "true"))

	md, err := values.ListByTransactionID(ctx, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"reconciled": "true"}, md)

	empty, err := values.ListByTransactionID(ctx, domain.TransactionID("nobody"))
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestTransactionRepo_StaleSnapshotDoesNotOverwrite(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	ctx := context.Background()
	transactions := repo.NewTransactionRepo(client, committer.NewCommitter(client))

	newer := testutil.NewSnapshot("tx-1", domain.ResourceTypePayment, domain.StateSuccess, "3", 1000, 0)
	newer.EventCount = 2
	require.NoError(t, transactions.Upsert(ctx, newer))

	older := testutil.NewSnapshot("tx-1", domain.ResourceTypePayment, domain.StateCreated, "3", 1000, 0)
	require.NoError(t, transactions.Upsert(ctx, older))

	found, err := transactions.FindByExternalID(ctx, "tx-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StateSuccess, found.State)
	assert.Equal(t, int64(2), found.EventCount)
}
