package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	EventsProjected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_events_projected_total",
		Help: "Total number of events folded into a transaction snapshot, labelled by resource type and outcome.",
	}, []string{"resource_type", "outcome"})

	EventsEnqueued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ledger_events_enqueued_total",
		Help: "Total number of events accepted by the ingest pool.",
	})

	EventsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ledger_events_rejected_total",
		Help: "Total number of events rejected because the ingest queue was full.",
	})

	MetadataUpserts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_metadata_upserts_total",
		Help: "Metadata upsert decisions, labelled by result (written, skipped_policy, skipped_empty, skipped_missing).",
	}, []string{"result"})

	ProjectionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "ledger_projection_duration_ms",
		Help:    "Time to insert an event and re-project its transaction, in milliseconds.",
		Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
	})

	ReportQueries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_report_queries_total",
		Help: "Total number of report queries served, labelled by report and status.",
	}, []string{"report", "status"})

	QueueUtilization = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "ledger_ingest_queue_utilization_ratio",
		Help: "Current ingest queue utilization (0 to 1).",
	})
)

// Outcome labels for EventsProjected and ReportQueries.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Result labels for MetadataUpserts.
const (
	MetadataWritten        = "written"
	MetadataSkippedPolicy  = "skipped_policy"
	MetadataSkippedEmpty   = "skipped_empty"
	MetadataSkippedMissing = "skipped_missing"
)
