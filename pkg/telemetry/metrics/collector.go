package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/GoReal-AI/echo-pdk-sub001/pkg/config"
)

// Collector is the main orchestrator for all Prometheus metrics in Echo PDK.
// It manages metric registration and provides a unified interface for
// recording metrics across all components. Every Record method no-ops when
// metrics are disabled, so callers never need to check the configuration.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	// Judge call metrics
	judgeMetrics *JudgeMetrics

	// Cache metrics (judge answer cache)
	cacheMetrics *CacheMetrics

	// Context resolution metrics
	resolverMetrics *ResolverMetrics

	// Evaluation metrics
	evalMetrics *EvalMetrics
}

// NewCollector creates a new metrics collector with the specified configuration
// and Prometheus registry. If registry is nil, a fresh registry is created.
//
// Example:
//
//	cfg := &config.MetricsConfig{
//		Enabled:   true,
//		Namespace: "echo",
//		Subsystem: "pdk",
//	}
//	collector := metrics.NewCollector(cfg, nil)
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	if cfg.Namespace == "" {
		cfg.Namespace = "echo"
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = "pdk"
	}

	c := &Collector{
		config:   cfg,
		registry: registry,
	}

	c.judgeMetrics = NewJudgeMetrics(cfg, registry)
	c.cacheMetrics = NewCacheMetrics(cfg, registry)
	c.resolverMetrics = NewResolverMetrics(cfg, registry)
	c.evalMetrics = NewEvalMetrics(cfg, registry)

	return c
}

// RecordJudgeCall records a completed AI judge call.
func (c *Collector) RecordJudgeCall(provider, model, outcome string, duration time.Duration) {
	if !c.config.Enabled {
		return
	}
	c.judgeMetrics.RecordCall(provider, model, outcome, duration)
}

// RecordCacheHit records a cache hit.
func (c *Collector) RecordCacheHit(cacheName string) {
	if !c.config.Enabled {
		return
	}
	c.cacheMetrics.RecordHit(cacheName)
}

// RecordCacheMiss records a cache miss.
func (c *Collector) RecordCacheMiss(cacheName string) {
	if !c.config.Enabled {
		return
	}
	c.cacheMetrics.RecordMiss(cacheName)
}

// RecordCacheEviction records a cache eviction.
func (c *Collector) RecordCacheEviction(cacheName string) {
	if !c.config.Enabled {
		return
	}
	c.cacheMetrics.RecordEviction(cacheName)
}

// UpdateCacheSize updates the current size of a cache.
func (c *Collector) UpdateCacheSize(cacheName string, size int) {
	if !c.config.Enabled {
		return
	}
	c.cacheMetrics.UpdateSize(cacheName, size)
}

// RecordContextLookup records a single context path lookup outcome.
func (c *Collector) RecordContextLookup(backend, outcome string) {
	if !c.config.Enabled {
		return
	}
	c.resolverMetrics.RecordLookup(backend, outcome)
}

// RecordContextBatch records the size of a batched context resolution.
func (c *Collector) RecordContextBatch(backend string, size int) {
	if !c.config.Enabled {
		return
	}
	c.resolverMetrics.RecordBatch(backend, size)
}

// RecordEvaluation records a completed document evaluation.
func (c *Collector) RecordEvaluation(status string, duration time.Duration) {
	if !c.config.Enabled {
		return
	}
	c.evalMetrics.RecordEvaluation(status, duration)
}

// Registry returns the Prometheus registry used by this collector.
// This can be used to create an HTTP handler for the /metrics endpoint.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
