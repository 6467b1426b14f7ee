// Package metric defines the Prometheus instrumentation for the query
// planning pipeline.
package metric

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics contains the pipeline-level metrics.
type Metrics struct {
	QueriesTotal             *prometheus.CounterVec
	QueryDuration            *prometheus.HistogramVec
	ClassificationConfidence prometheus.Histogram
	CacheHits                prometheus.Counter
	CacheMisses              prometheus.Counter
	PatternEnhancements      prometheus.Counter
	StoreErrors              *prometheus.CounterVec
}

// NewMetrics creates a Metrics instance with all pipeline metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		QueriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "orchestration",
				Subsystem: "queries",
				Name:      "total",
				Help:      "Total number of natural language queries processed",
			},
			[]string{"query_type", "outcome"},
		),

		QueryDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "orchestration",
				Subsystem: "queries",
				Name:      "duration_seconds",
				Help:      "End-to-end query processing duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"query_type"},
		),

		ClassificationConfidence: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "orchestration",
				Subsystem: "classifier",
				Name:      "confidence",
				Help:      "Confidence scores produced by intent classification",
				Buckets:   prometheus.LinearBuckets(0.5, 0.05, 11),
			},
		),

		CacheHits: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "orchestration",
				Subsystem: "cache",
				Name:      "hits_total",
				Help:      "Total number of result cache hits",
			},
		),

		CacheMisses: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "orchestration",
				Subsystem: "cache",
				Name:      "misses_total",
				Help:      "Total number of result cache misses",
			},
		),

		PatternEnhancements: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "orchestration",
				Subsystem: "classifier",
				Name:      "pattern_enhancements_total",
				Help:      "Total number of filters added from learned patterns",
			},
		),

		StoreErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "orchestration",
				Subsystem: "memory",
				Name:      "store_errors_total",
				Help:      "Total number of pattern and history store failures",
			},
			[]string{"store"},
		),
	}
}

// NewRegistry creates a Prometheus registry with the pipeline metrics and
// Go runtime collectors registered.
func NewRegistry(m *Metrics) *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		m.QueriesTotal,
		m.QueryDuration,
		m.ClassificationConfidence,
		m.CacheHits,
		m.CacheMisses,
		m.PatternEnhancements,
		m.StoreErrors,
	)
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return registry
}
