package main

import (
	"errors"
	"testing"

	"github.com/GoReal-AI/echo-pdk-sub001/pkg/cli"
	"github.com/GoReal-AI/echo-pdk-sub001/pkg/config"
)

func TestBuildResolverBackends(t *testing.T) {
	p := &pipeline{}

	cfg := config.NewDefault()
	if _, err := p.buildResolver(cfg); err != nil {
		t.Errorf("memory backend failed: %v", err)
	}

	cfg.Context.Backend = "http"
	cfg.Context.HTTP.BaseURL = "http://localhost:9999"
	if _, err := p.buildResolver(cfg); err != nil {
		t.Errorf("http backend failed: %v", err)
	}
}

// A backend name validation missed must still come back as a configuration
// error pointing at the offending field, not a generic failure.
func TestBuildResolverUnknownBackend(t *testing.T) {
	p := &pipeline{}
	cfg := config.NewDefault()
	cfg.Context.Backend = "redis"

	_, err := p.buildResolver(cfg)
	if err == nil {
		t.Fatal("expected error for unknown backend")
	}

	var cerr *cli.ConfigError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected *cli.ConfigError, got %T: %v", err, err)
	}
	if cerr.Field != "context.backend" {
		t.Errorf("Field = %q, want context.backend", cerr.Field)
	}
}
