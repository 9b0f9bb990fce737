// Package metrics defines the Prometheus instrumentation for Echo PDK.
//
// A Collector bundles the per-concern metric groups (judge calls, judge answer
// cache, context resolution, evaluations) behind a single registry and a set
// of Record helpers that no-op when metrics are disabled. The registry is
// exposed over HTTP with Handler, typically on a dedicated metrics port.
package metrics
