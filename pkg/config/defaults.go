package config

import "time"

// Default values for configuration fields.
const (
	// Provider defaults
	DefaultProviderTimeout    = 60 * time.Second
	DefaultProviderMaxRetries = 3

	// Judge defaults
	DefaultJudgeProvider      = "openai"
	DefaultJudgeModel         = "gpt-4o-mini"
	DefaultJudgeMaxTokens     = 8
	DefaultJudgeCacheTTL      = 5 * time.Minute
	DefaultJudgeSweepSchedule = "@every 1m"

	// Context defaults
	DefaultContextBackend           = "memory"
	DefaultContextSQLitePath        = "data/context.db"
	DefaultContextSQLiteOpenConns   = 10
	DefaultContextSQLiteIdleConns   = 5
	DefaultContextSQLiteWALMode     = true
	DefaultContextSQLiteBusyTimeout = 5 * time.Second
	DefaultContextHTTPTimeout       = 10 * time.Second
	DefaultContextHTTPMaxRetries    = 2
	DefaultContextGitBranch         = "main"
	DefaultContextGitDepth          = 1
	DefaultContextGitSyncTimeout    = 60 * time.Second

	// Template defaults
	DefaultTemplateRoot     = "."
	DefaultTemplateMaxDepth = 16

	// Render defaults
	DefaultRenderTrim             = true
	DefaultRenderCollapseNewlines = true
	DefaultRenderMissingVariables = "error"

	// Telemetry defaults
	DefaultLoggingLevel         = "info"
	DefaultLoggingFormat        = "json"
	DefaultMetricsEnabled       = true
	DefaultPrometheusPath       = "/metrics"
	DefaultMetricsNamespace     = "echo"
	DefaultMetricsSubsystem     = "pdk"
	DefaultTracingSampler       = "ratio"
	DefaultTracingSampleRatio   = 0.1
	DefaultTracingServiceName   = "echo-pdk"
	DefaultTracingExportTimeout = 10 * time.Second
)

// NewDefault returns a Config populated with defaults, suitable for running
// without a configuration file. Boolean defaults live here, not in
// ApplyDefaults: a bool's zero value is indistinguishable from an explicit
// false, so they are seeded up front and YAML is unmarshaled over them.
func NewDefault() *Config {
	cfg := &Config{
		Context: ContextConfig{
			SQLite: SQLiteContextConfig{
				WALMode: DefaultContextSQLiteWALMode,
			},
		},
		Render: RenderConfig{
			Trim:             DefaultRenderTrim,
			CollapseNewlines: DefaultRenderCollapseNewlines,
		},
		Telemetry: TelemetryConfig{
			Metrics: MetricsConfig{
				Enabled: DefaultMetricsEnabled,
			},
			Tracing: TracingConfig{
				Insecure: true,
			},
		},
	}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults applies default values to any non-boolean fields that have
// zero values. This function is idempotent and safe to call multiple times.
func ApplyDefaults(cfg *Config) {
	// Provider defaults - applied to each provider
	for name, provider := range cfg.Providers {
		if provider.Type == "" {
			provider.Type = name
		}
		if provider.Timeout == 0 {
			provider.Timeout = DefaultProviderTimeout
		}
		if provider.MaxRetries == 0 {
			provider.MaxRetries = DefaultProviderMaxRetries
		}
		cfg.Providers[name] = provider
	}

	// Judge defaults
	if cfg.Judge.Provider == "" {
		cfg.Judge.Provider = DefaultJudgeProvider
	}
	if cfg.Judge.Model == "" {
		cfg.Judge.Model = DefaultJudgeModel
	}
	if cfg.Judge.MaxTokens == 0 {
		cfg.Judge.MaxTokens = DefaultJudgeMaxTokens
	}
	if cfg.Judge.CacheTTL == 0 {
		cfg.Judge.CacheTTL = DefaultJudgeCacheTTL
	}
	if cfg.Judge.SweepSchedule == "" {
		cfg.Judge.SweepSchedule = DefaultJudgeSweepSchedule
	}

	// Context defaults
	if cfg.Context.Backend == "" {
		cfg.Context.Backend = DefaultContextBackend
	}
	if cfg.Context.SQLite.Path == "" {
		cfg.Context.SQLite.Path = DefaultContextSQLitePath
	}
	if cfg.Context.SQLite.MaxOpenConns == 0 {
		cfg.Context.SQLite.MaxOpenConns = DefaultContextSQLiteOpenConns
	}
	if cfg.Context.SQLite.MaxIdleConns == 0 {
		cfg.Context.SQLite.MaxIdleConns = DefaultContextSQLiteIdleConns
	}
	if cfg.Context.SQLite.BusyTimeout == 0 {
		cfg.Context.SQLite.BusyTimeout = DefaultContextSQLiteBusyTimeout
	}
	if cfg.Context.HTTP.Timeout == 0 {
		cfg.Context.HTTP.Timeout = DefaultContextHTTPTimeout
	}
	if cfg.Context.HTTP.MaxRetries == 0 {
		cfg.Context.HTTP.MaxRetries = DefaultContextHTTPMaxRetries
	}
	if cfg.Context.Git.Branch == "" {
		cfg.Context.Git.Branch = DefaultContextGitBranch
	}
	if cfg.Context.Git.Depth == 0 {
		cfg.Context.Git.Depth = DefaultContextGitDepth
	}
	if cfg.Context.Git.SyncTimeout == 0 {
		cfg.Context.Git.SyncTimeout = DefaultContextGitSyncTimeout
	}

	// Template defaults
	if cfg.Templates.Root == "" {
		cfg.Templates.Root = DefaultTemplateRoot
	}
	if cfg.Templates.MaxDepth == 0 {
		cfg.Templates.MaxDepth = DefaultTemplateMaxDepth
	}

	// Render defaults (Trim and CollapseNewlines are seeded in NewDefault).
	if cfg.Render.MissingVariables == "" {
		cfg.Render.MissingVariables = DefaultRenderMissingVariables
	}

	// Telemetry defaults
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = DefaultPrometheusPath
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Telemetry.Metrics.Subsystem == "" {
		cfg.Telemetry.Metrics.Subsystem = DefaultMetricsSubsystem
	}
	if cfg.Telemetry.Tracing.Sampler == "" {
		cfg.Telemetry.Tracing.Sampler = DefaultTracingSampler
	}
	if cfg.Telemetry.Tracing.SampleRatio == 0 {
		cfg.Telemetry.Tracing.SampleRatio = DefaultTracingSampleRatio
	}
	if cfg.Telemetry.Tracing.ServiceName == "" {
		cfg.Telemetry.Tracing.ServiceName = DefaultTracingServiceName
	}
	if cfg.Telemetry.Tracing.ExportTimeout == 0 {
		cfg.Telemetry.Tracing.ExportTimeout = DefaultTracingExportTimeout
	}
}
