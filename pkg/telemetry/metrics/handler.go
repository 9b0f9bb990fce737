package metrics

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler returns an http.Handler that serves the collector's registry in
// Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Serve starts an HTTP server exposing the metrics endpoint on the configured
// port. It blocks until the server stops, so it is usually run in a goroutine:
//
//	go collector.Serve()
//
// It returns immediately with nil if metrics are disabled or no port is
// configured.
func (c *Collector) Serve() error {
	if !c.config.Enabled || c.config.Port == 0 {
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle(c.config.Path, c.Handler())

	addr := fmt.Sprintf(":%d", c.config.Port)
	slog.Info("metrics endpoint listening", "addr", addr, "path", c.config.Path)

	return http.ListenAndServe(addr, mux)
}
