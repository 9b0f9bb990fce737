package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/GoReal-AI/echo-pdk-sub001/pkg/config"
)

// EvalMetrics tracks document evaluation metrics.
//
// Metrics:
//   - echo_pdk_evaluations_total: Total document evaluations by status
//   - echo_pdk_evaluation_duration_seconds: End-to-end evaluation latency
type EvalMetrics struct {
	// Evaluation counter by status ("success", "error")
	evaluationsTotal *prometheus.CounterVec

	// Evaluation duration histogram
	evalDuration *prometheus.HistogramVec
}

// NewEvalMetrics creates and registers evaluation metrics with the provided registry.
func NewEvalMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *EvalMetrics {
	em := &EvalMetrics{
		evaluationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "evaluations_total",
				Help:      "Total number of document evaluations",
			},
			[]string{"status"},
		),

		evalDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "evaluation_duration_seconds",
				Help:      "End-to-end document evaluation latency",
				// Evaluations without judge calls finish in microseconds;
				// with judge calls they track provider latency.
				Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1.0, 2.0, 5.0, 10.0, 30.0},
			},
			[]string{},
		),
	}

	registry.MustRegister(em.evaluationsTotal, em.evalDuration)

	return em
}

// RecordEvaluation records a completed document evaluation.
func (em *EvalMetrics) RecordEvaluation(status string, duration time.Duration) {
	em.evaluationsTotal.WithLabelValues(status).Inc()
	em.evalDuration.WithLabelValues().Observe(duration.Seconds())
}
