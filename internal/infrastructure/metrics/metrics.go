package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Engine metrics
	TransactionsRecorded *prometheus.CounterVec
	OperationsRejected   *prometheus.CounterVec

	// Statement store metrics
	AppendDuration prometheus.Histogram
	AppendErrors   prometheus.Counter
	StatementScans prometheus.Counter
	RowsSkipped    prometheus.Counter
}

// New creates and registers all Prometheus metrics against reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		TransactionsRecorded: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bankbook_transactions_recorded_total",
				Help: "Total transactions durably recorded, by account kind and type",
			},
			[]string{"kind", "type"},
		),
		OperationsRejected: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bankbook_operations_rejected_total",
				Help: "Total operations rejected by validation, by account kind and reason",
			},
			[]string{"kind", "reason"},
		),
		AppendDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "bankbook_statement_append_duration_seconds",
			Help:    "Duration of durable statement appends",
			Buckets: prometheus.DefBuckets,
		}),
		AppendErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "bankbook_statement_append_errors_total",
			Help: "Total statement append failures",
		}),
		StatementScans: factory.NewCounter(prometheus.CounterOpts{
			Name: "bankbook_statement_scans_total",
			Help: "Total full statement replays (totals and audits)",
		}),
		RowsSkipped: factory.NewCounter(prometheus.CounterOpts{
			Name: "bankbook_statement_rows_skipped_total",
			Help: "Total statement rows skipped as malformed or unrecognized",
		}),
	}
}

// ObserveTransaction records a durably persisted transaction. Safe on a nil
// receiver so callers without metrics wired can pass nil.
func (m *Metrics) ObserveTransaction(kind, txType string) {
	if m == nil {
		return
	}
	m.TransactionsRecorded.WithLabelValues(kind, txType).Inc()
}

// ObserveRejection records a validation rejection.
func (m *Metrics) ObserveRejection(kind, reason string) {
	if m == nil {
		return
	}
	m.OperationsRejected.WithLabelValues(kind, reason).Inc()
}

// ObserveAppend records the outcome of one durable append attempt.
func (m *Metrics) ObserveAppend(duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.AppendDuration.Observe(duration.Seconds())
	if err != nil {
		m.AppendErrors.Inc()
	}
}

// ObserveScan records one full statement replay.
func (m *Metrics) ObserveScan() {
	if m == nil {
		return
	}
	m.StatementScans.Inc()
}

// ObserveSkippedRow records one row ignored by the lenient read path.
func (m *Metrics) ObserveSkippedRow() {
	if m == nil {
		return
	}
	m.RowsSkipped.Inc()
}
