package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/GoReal-AI/echo-pdk-sub001/pkg/config"
)

// JudgeMetrics tracks AI judge call metrics.
//
// Metrics:
//   - echo_pdk_judge_calls_total: Total judge calls by provider, model, and outcome
//   - echo_pdk_judge_call_duration_seconds: Judge call latency histogram
type JudgeMetrics struct {
	// Judge call counter by outcome ("yes", "no", "error")
	callsTotal *prometheus.CounterVec

	// Judge call duration histogram
	callDuration *prometheus.HistogramVec
}

// NewJudgeMetrics creates and registers judge metrics with the provided registry.
func NewJudgeMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *JudgeMetrics {
	jm := &JudgeMetrics{
		callsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "judge_calls_total",
				Help:      "Total number of AI judge calls",
			},
			[]string{"provider", "model", "outcome"},
		),

		callDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "judge_call_duration_seconds",
				Help:      "Latency of AI judge calls",
				// Judge calls are single-token completions; latencies sit well
				// below general LLM request latencies.
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.0, 5.0, 10.0},
			},
			[]string{"provider", "model"},
		),
	}

	registry.MustRegister(jm.callsTotal, jm.callDuration)

	return jm
}

// RecordCall records a completed judge call.
//
// Parameters:
//   - provider: provider name (e.g., "openai")
//   - model: model identifier
//   - outcome: "yes", "no", or "error"
//   - duration: wall-clock call duration
func (jm *JudgeMetrics) RecordCall(provider, model, outcome string, duration time.Duration) {
	jm.callsTotal.WithLabelValues(provider, model, outcome).Inc()
	jm.callDuration.WithLabelValues(provider, model).Observe(duration.Seconds())
}
