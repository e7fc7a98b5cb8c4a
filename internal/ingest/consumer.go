// Package ingest projects batches of events asynchronously.
package ingest

import (
	"context"
	"log/slog"

	"github.com/light-bringer/ledger-service/internal/app/ledger/domain"
	"github.com/light-bringer/ledger-service/internal/metrics"
)

// Projector folds one event into its transaction snapshot.
type Projector interface {
	Execute(ctx context.Context, event *domain.Event) (*domain.Transaction, error)
}

// Consumer feeds events to a projector through a worker pool. Failed
// projections are logged and dropped; redelivery belongs to the queue.
type Consumer struct {
	pool      *Pool[*domain.Event]
	projector Projector
	logger    *slog.Logger
}

// NewConsumer starts a consumer with the given number of workers.
func NewConsumer(ctx context.Context, projector Projector, workers, queueSize int, logger *slog.Logger) *Consumer {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Consumer{projector: projector, logger: logger}
	c.pool = NewPool(ctx, workers, queueSize, c.handle)
	return c
}

// SubmitResult reports how many events of a batch were queued.
type SubmitResult struct {
	Accepted int `json:"accepted"`
	Rejected int `json:"rejected"`
}

// Submit queues every event it can without blocking.
func (c *Consumer) Submit(events []*domain.Event) SubmitResult {
	var res SubmitResult
	for _, e := range events {
		if c.pool.Submit(e.ResourceExternalID, e) {
			res.Accepted++
			metrics.EventsEnqueued.Inc()
		} else {
			res.Rejected++
			metrics.EventsRejected.Inc()
		}
	}
	c.observeQueue()
	if res.Rejected > 0 {
		c.logger.Warn("ingest queue full",
			slog.Int("accepted", res.Accepted),
			slog.Int("rejected", res.Rejected),
		)
	}
	return res
}

// Drain waits for queued events to be projected. Later submits are rejected.
func (c *Consumer) Drain() {
	c.pool.Drain()
	c.observeQueue()
}

func (c *Consumer) handle(ctx context.Context, e *domain.Event) {
	defer c.observeQueue()
	if _, err := c.projector.Execute(ctx, e); err != nil {
		c.logger.ErrorContext(ctx, "failed to project event",
			slog.String("event_id", e.ID),
			slog.String("external_id", e.ResourceExternalID),
			slog.String("event_type", e.EventType),
			slog.Any("error", err),
		)
	}
}

func (c *Consumer) observeQueue() {
	if capacity := c.pool.QueueCap(); capacity > 0 {
		metrics.QueueUtilization.Set(float64(c.pool.QueueLen()) / float64(capacity))
	}
}
