package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/ledger-service/internal/config"
)

func newSQLiteOptions(t *testing.T) *ServiceOptions {
	t.Helper()
	cfg := config.Config{
		Backend:    config.BackendSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "ledger.db"),
		Workers:    2,
		QueueSize:  16,
		LogLevel:   "info",
	}
	opts, err := NewServiceOptions(context.Background(), cfg, nil)
	require.NoError(t, err)
	t.Cleanup(opts.Close)
	return opts
}

func post(t *testing.T, h http.Handler, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, target, strings.NewReader(body)))
	return rec
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestNewServiceOptions_UnknownBackend(t *testing.T) {
	_, err := NewServiceOptions(context.Background(), config.Config{Backend: "postgres"}, nil)
	assert.Error(t, err)
}

func TestNewServiceOptions_BadPolicyFile(t *testing.T) {
	cfg := config.Config{
		Backend:    config.BackendSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "ledger.db"),
		PolicyFile: filepath.Join(t.TempDir(), "missing.yaml"),
	}
	_, err := NewServiceOptions(context.Background(), cfg, nil)
	assert.Error(t, err)
}

func TestServiceOptions_SQLiteEndToEnd(t *testing.T) {
	ctx := context.Background()
	opts := newSQLiteOptions(t)
	consumer := opts.NewConsumer(ctx, 2, 16)
	h := opts.HTTPHandler(consumer)

	rec := post(t, h, "/v1/events", `{
	  "resource_type": "PAYMENT",
	  "resource_external_id": "tx-1",
	  "timestamp": "2020-01-01T10:00:00Z",
	  "event_type": "PAYMENT_CREATED",
	  "event_details": {"amount": 1000, "gateway_account_id": "3", "external_metadata": {"ref": "abc"}}
	}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = post(t, h, "/v1/events/batch", `[
	  {"resource_type": "PAYMENT", "resource_external_id": "tx-1", "timestamp": "2020-01-01T10:05:00Z",
	   "event_type": "CAPTURE_CONFIRMED", "event_details": {"fee": 5, "net_amount": 995}},
	  {"resource_type": "REFUND", "resource_external_id": "refund-1", "parent_resource_external_id": "tx-1",
	   "timestamp": "2020-01-02T10:00:00Z", "event_type": "REFUND_SUCCEEDED", "event_details": {"amount": 200, "gateway_account_id": "3"}}
	]`)
	require.Equal(t, http.StatusAccepted, rec.Code, rec.Body.String())
	consumer.Drain()

	rec = get(t, h, "/v1/transactions/tx-1")
	require.Equal(t, http.StatusOK, rec.Code)
	var tx map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tx))
	assert.Equal(t, "SUCCESS", tx["state"])
	assert.Equal(t, float64(2), tx["event_count"])
	assert.Equal(t, map[string]interface{}{"ref": "abc"}, tx["metadata"])

	rec = get(t, h, "/v1/report/transactions-summary?account_id=3")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`{"payments":{"count":1,"total_amount":1000},"refunds":{"count":1,"total_amount":200},"net_total":800}`,
		rec.Body.String())

	rec = get(t, h, "/v1/report/payments/by-state")
	require.Equal(t, http.StatusOK, rec.Code)
	var counts map[string]int64
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &counts))
	assert.Len(t, counts, 10)
	assert.Equal(t, int64(1), counts["success"])
	assert.Equal(t, int64(0), counts["created"])

	replayed, err := opts.ReplayTransaction.Execute(ctx, "refund-1")
	require.NoError(t, err)
	assert.Equal(t, "tx-1", replayed.ParentExternalID)
}

func TestNewWithRepositories_DefaultPolicy(t *testing.T) {
	opts := newSQLiteOptions(t)
	wired := NewWithRepositories(opts.Repositories, nil, nil, nil)

	require.NotNil(t, wired.Policy)
	assert.NotNil(t, wired.Policy.Policy())
	assert.NotNil(t, wired.ProjectEvent)
}
