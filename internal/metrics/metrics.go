package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for the ingestion path.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	EventsIngested prometheus.Counter
	EventsRejected *prometheus.CounterVec
	StoreErrors    *prometheus.CounterVec
	IngestDuration prometheus.Histogram
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		EventsIngested: factory.NewCounter(prometheus.CounterOpts{
			Name: "tracking_events_ingested_total",
			Help: "Total number of tracking events committed to the store",
		}),
		EventsRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tracking_events_rejected_total",
			Help: "Total number of tracking event submissions rejected by validation",
		}, []string{"field"}),
		StoreErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tracking_store_errors_total",
			Help: "Total number of failed event store operations",
		}, []string{"operation"}),
		IngestDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "tracking_ingest_duration_seconds",
			Help:    "Time from receiving a valid submission to its commit",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

func (m *Metrics) IncrementIngested() {
	if m == nil {
		return
	}
	m.EventsIngested.Inc()
}

func (m *Metrics) IncrementRejected(field string) {
	if m == nil {
		return
	}
	m.EventsRejected.WithLabelValues(field).Inc()
}

func (m *Metrics) IncrementStoreErrors(operation string) {
	if m == nil {
		return
	}
	m.StoreErrors.WithLabelValues(operation).Inc()
}

func (m *Metrics) ObserveIngestDuration(d time.Duration) {
	if m == nil {
		return
	}
	m.IngestDuration.Observe(d.Seconds())
}
