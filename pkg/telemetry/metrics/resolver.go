package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/GoReal-AI/echo-pdk-sub001/pkg/config"
)

// ResolverMetrics tracks context reference resolution metrics.
//
// Metrics:
//   - echo_pdk_context_lookups_total: Total lookups by backend and outcome
//   - echo_pdk_context_batch_size: Histogram of batch sizes per resolution round trip
type ResolverMetrics struct {
	// Lookup counter by outcome ("resolved", "not_found", "invalid", "error")
	lookupsTotal *prometheus.CounterVec

	// Batch size histogram
	batchSize *prometheus.HistogramVec
}

// NewResolverMetrics creates and registers resolver metrics with the provided registry.
func NewResolverMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *ResolverMetrics {
	rm := &ResolverMetrics{
		lookupsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "context_lookups_total",
				Help:      "Total number of context path lookups",
			},
			[]string{"backend", "outcome"},
		),

		batchSize: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "context_batch_size",
				Help:      "Number of paths resolved per batch round trip",
				Buckets:   []float64{1, 2, 5, 10, 25, 50, 100},
			},
			[]string{"backend"},
		),
	}

	registry.MustRegister(rm.lookupsTotal, rm.batchSize)

	return rm
}

// RecordLookup records a single path lookup outcome.
func (rm *ResolverMetrics) RecordLookup(backend, outcome string) {
	rm.lookupsTotal.WithLabelValues(backend, outcome).Inc()
}

// RecordBatch records the size of a batched resolution round trip.
func (rm *ResolverMetrics) RecordBatch(backend string, size int) {
	rm.batchSize.WithLabelValues(backend).Observe(float64(size))
}
