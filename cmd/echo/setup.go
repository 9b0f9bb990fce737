package main

import (
	"context"
	"fmt"

	"github.com/GoReal-AI/echo-pdk-sub001/pkg/cli"
	"github.com/GoReal-AI/echo-pdk-sub001/pkg/config"
	"github.com/GoReal-AI/echo-pdk-sub001/pkg/contextref"
	"github.com/GoReal-AI/echo-pdk-sub001/pkg/eval"
	"github.com/GoReal-AI/echo-pdk-sub001/pkg/judge"
	"github.com/GoReal-AI/echo-pdk-sub001/pkg/providers"
	"github.com/GoReal-AI/echo-pdk-sub001/pkg/providers/factory"
	"github.com/GoReal-AI/echo-pdk-sub001/pkg/telemetry/metrics"
	"github.com/GoReal-AI/echo-pdk-sub001/pkg/telemetry/tracing"
)

// pipeline bundles the components behind the render and send commands.
// Close releases the backend connections and flushes telemetry.
type pipeline struct {
	evaluator *eval.Evaluator
	config    *config.Config
	metrics   *metrics.Collector
	tracer    *tracing.Tracer

	judgeProvider providers.Provider
	judgeCache    *judge.CachedJudge
	closers       []func() error
}

// startSweeper begins scheduled judge-cache sweeping for long-lived commands
// (render --watch). One-shot commands exit before a sweep would matter.
func (p *pipeline) startSweeper(ctx context.Context) error {
	if p.judgeCache == nil {
		return nil
	}
	return judge.NewSweeper(p.judgeCache, p.config.Judge.SweepSchedule).Start(ctx)
}

func (p *pipeline) Close() error {
	var first error
	for _, c := range p.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	if p.tracer != nil {
		if err := p.tracer.Shutdown(context.Background()); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// newPipeline wires resolver, judge, evaluator, and telemetry from
// configuration.
func newPipeline(ctx context.Context, cfg *config.Config) (*pipeline, error) {
	p := &pipeline{
		config:  cfg,
		metrics: metrics.NewCollector(&cfg.Telemetry.Metrics, nil),
	}

	tracer, err := tracing.New(ctx, &cfg.Telemetry.Tracing)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}
	p.tracer = tracer

	resolver, err := p.buildResolver(cfg)
	if err != nil {
		return nil, err
	}

	j, err := p.buildJudge(cfg)
	if err != nil {
		return nil, err
	}

	p.evaluator = eval.New(resolver, j, eval.Options{
		Loader:  eval.NewLoader(cfg.Templates),
		Metrics: p.metrics,
		Backend: cfg.Context.Backend,
	})
	return p, nil
}

func (p *pipeline) buildResolver(cfg *config.Config) (contextref.Resolver, error) {
	switch cfg.Context.Backend {
	case "", "memory":
		return contextref.NewMemoryResolver(), nil

	case "sqlite":
		store, err := newSQLiteStore(cfg)
		if err != nil {
			return nil, err
		}
		p.closers = append(p.closers, store.Close)
		return store, nil

	case "http":
		r := contextref.NewHTTPResolver(contextref.HTTPResolverConfig{
			BaseURL:    cfg.Context.HTTP.BaseURL,
			APIKey:     cfg.Context.HTTP.APIKey,
			Timeout:    cfg.Context.HTTP.Timeout,
			MaxRetries: cfg.Context.HTTP.MaxRetries,
		})
		return r, nil

	default:
		return nil, cli.NewConfigError("context.backend",
			fmt.Sprintf("unknown backend %q, expected memory, sqlite, or http", cfg.Context.Backend))
	}
}

// newSQLiteStore opens the configured SQLite context store.
func newSQLiteStore(cfg *config.Config) (*contextref.SQLiteResolver, error) {
	return contextref.NewSQLiteResolver(&contextref.SQLiteResolverConfig{
		Path:         cfg.Context.SQLite.Path,
		MaxOpenConns: cfg.Context.SQLite.MaxOpenConns,
		MaxIdleConns: cfg.Context.SQLite.MaxIdleConns,
		WALMode:      cfg.Context.SQLite.WALMode,
		BusyTimeout:  cfg.Context.SQLite.BusyTimeout,
	})
}

// buildJudge constructs the cached AI judge from the configured judge
// provider. Documents without judge() predicates work with a nil judge, so a
// missing provider config is not an error here.
func (p *pipeline) buildJudge(cfg *config.Config) (judge.Judge, error) {
	providerCfg, ok := cfg.Providers[cfg.Judge.Provider]
	if !ok || providerCfg.APIKey == "" {
		return nil, nil
	}

	provider, err := newProvider(cfg.Judge.Provider, providerCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build judge provider: %w", err)
	}
	p.judgeProvider = provider
	p.closers = append(p.closers, provider.Close)

	inner := judge.NewProviderJudge(provider, cfg.Judge, p.metrics)
	p.judgeCache = judge.NewCachedJudge(inner, provider, cfg.Judge, p.metrics)
	return p.judgeCache, nil
}

// newProvider builds one completion provider from its config section.
func newProvider(name string, cfg config.ProviderConfig) (providers.Provider, error) {
	return factory.New(providers.ProviderConfig{
		Name:       name,
		Type:       cfg.Type,
		BaseURL:    cfg.BaseURL,
		APIKey:     cfg.APIKey,
		Timeout:    cfg.Timeout,
		MaxRetries: cfg.MaxRetries,
	})
}
