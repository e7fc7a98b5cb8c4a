package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/light-bringer/ledger-service/internal/app/ledger/contracts"
	"github.com/light-bringer/ledger-service/internal/app/ledger/domain"
	"github.com/light-bringer/ledger-service/internal/app/ledger/queries/get_transaction"
	"github.com/light-bringer/ledger-service/internal/app/ledger/queries/transactions_summary"
	"github.com/light-bringer/ledger-service/internal/ingest"
)

const (
	maxBatchSize = 100
	maxBodyBytes = 1 << 20
)

// Projector projects one event synchronously.
type Projector interface {
	Execute(ctx context.Context, event *domain.Event) (*domain.Transaction, error)
}

// BatchSubmitter queues events for asynchronous projection.
type BatchSubmitter interface {
	Submit(events []*domain.Event) ingest.SubmitResult
}

// TransactionGetter loads a snapshot with its metadata.
type TransactionGetter interface {
	Execute(ctx context.Context, externalID string) (*get_transaction.Result, error)
}

// PaymentCounter reports payment counts per status label.
type PaymentCounter interface {
	Execute(ctx context.Context, filter contracts.ReportFilter) (map[string]int64, error)
}

// SummaryReporter reports payment and refund totals.
type SummaryReporter interface {
	Execute(ctx context.Context, filter contracts.ReportFilter) (*transactions_summary.TransactionSummary, error)
}

// Deps are the use cases served over HTTP.
type Deps struct {
	Projector    Projector
	Batch        BatchSubmitter
	Transactions TransactionGetter
	PaymentCount PaymentCounter
	Summary      SummaryReporter
}

// Handler holds all HTTP handler dependencies.
type Handler struct {
	deps   Deps
	logger *slog.Logger
	mux    *http.ServeMux
}

// New creates an HTTP handler and registers all routes.
func New(deps Deps, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Handler{deps: deps, logger: logger, mux: http.NewServeMux()}

	h.mux.HandleFunc("POST /v1/events", h.projectEvent)
	h.mux.HandleFunc("POST /v1/events/batch", h.ingestBatch)
	h.mux.HandleFunc("GET /v1/transactions/{externalID}", h.getTransaction)
	h.mux.HandleFunc("GET /v1/report/payments/by-state", h.paymentsByState)
	h.mux.HandleFunc("GET /v1/report/transactions-summary", h.transactionsSummary)
	h.mux.HandleFunc("GET /healthz", h.healthz)
	h.mux.Handle("GET /metrics", promhttp.Handler())

	return loggingMiddleware(logger, h.mux)
}

// POST /v1/events projects a single event and returns the new snapshot.
func (h *Handler) projectEvent(w http.ResponseWriter, r *http.Request) {
	var msg EventMessage
	if err := decode(w, r, &msg); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %s", err))
		return
	}
	event, err := msg.ToEvent()
	if err != nil {
		writeDomainError(w, err)
		return
	}

	tx, err := h.deps.Projector.Execute(r.Context(), event)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "projection failed",
			slog.String("external_id", event.ResourceExternalID),
			slog.Any("error", err),
		)
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTransactionResponse(tx, nil))
}

// POST /v1/events/batch queues up to maxBatchSize events. The batch is
// rejected as a whole if any message is invalid.
func (h *Handler) ingestBatch(w http.ResponseWriter, r *http.Request) {
	var msgs []EventMessage
	if err := decode(w, r, &msgs); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %s", err))
		return
	}
	if len(msgs) == 0 {
		writeError(w, http.StatusBadRequest, "batch must contain at least one event")
		return
	}
	if len(msgs) > maxBatchSize {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("batch size %d exceeds max %d", len(msgs), maxBatchSize))
		return
	}

	events := make([]*domain.Event, 0, len(msgs))
	for i := range msgs {
		e, err := msgs[i].ToEvent()
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("event %d: %s", i, err))
			return
		}
		events = append(events, e)
	}

	res := h.deps.Batch.Submit(events)
	writeJSON(w, http.StatusAccepted, map[string]interface{}{
		"total":    len(events),
		"queued":   res.Accepted,
		"rejected": res.Rejected,
	})
}

// GET /v1/transactions/{externalID}
func (h *Handler) getTransaction(w http.ResponseWriter, r *http.Request) {
	externalID := strings.TrimSpace(r.PathValue("externalID"))
	res, err := h.deps.Transactions.Execute(r.Context(), externalID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, fromResult(res))
}

// GET /v1/report/payments/by-state
func (h *Handler) paymentsByState(w http.ResponseWriter, r *http.Request) {
	filter, err := parseReportFilter(r.URL.Query())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	counts, err := h.deps.PaymentCount.Execute(r.Context(), filter)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "payment counts failed", slog.Any("error", err))
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, counts)
}

// GET /v1/report/transactions-summary
func (h *Handler) transactionsSummary(w http.ResponseWriter, r *http.Request) {
	filter, err := parseReportFilter(r.URL.Query())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	summary, err := h.deps.Summary.Execute(r.Context(), filter)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "transactions summary failed", slog.Any("error", err))
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// GET /healthz is the liveness probe.
func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func decode(w http.ResponseWriter, r *http.Request, v interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	return dec.Decode(v)
}
