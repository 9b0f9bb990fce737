package config

import "time"

// Config is the root configuration structure for Echo PDK.
// It contains all configuration sections for providers, the judge capability,
// context resolution, template loading, rendering, and telemetry.
type Config struct {
	// Providers contains configuration for all LLM provider integrations.
	// Keys are provider names (e.g., "openai", "anthropic").
	Providers map[string]ProviderConfig `yaml:"providers"`

	// Judge contains configuration for AI-judged conditions including the
	// backing provider, model, and answer cache.
	Judge JudgeConfig `yaml:"judge"`

	// Context contains configuration for context reference resolution
	// including the store backend and optional git asset sync.
	Context ContextConfig `yaml:"context"`

	// Templates contains configuration for template loading (imports and
	// includes).
	Templates TemplateConfig `yaml:"templates"`

	// Render contains configuration for output rendering.
	Render RenderConfig `yaml:"render"`

	// Telemetry contains configuration for observability including logging,
	// metrics, and distributed tracing.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ProviderConfig contains configuration for a single LLM provider.
type ProviderConfig struct {
	// Type is the adapter type for this provider.
	// Options: "openai", "anthropic", "generic"
	// Default: the provider's map key
	Type string `yaml:"type"`

	// BaseURL is the base URL for the provider's API endpoint.
	// Example: "https://api.openai.com"
	BaseURL string `yaml:"base_url"`

	// APIKey is the authentication key for the provider.
	// This should typically be loaded from an environment variable.
	// Required for most providers.
	APIKey string `yaml:"api_key"`

	// Timeout is the maximum duration for requests to this provider.
	// Default: 60s
	Timeout time.Duration `yaml:"timeout"`

	// MaxRetries is the maximum number of retry attempts for failed requests.
	// Default: 3
	MaxRetries int `yaml:"max_retries"`
}

// JudgeConfig contains configuration for the AI judge capability.
type JudgeConfig struct {
	// Provider is the name of the provider (key in Providers) used for
	// judge calls.
	// Default: "openai"
	Provider string `yaml:"provider"`

	// Model is the model identifier used for judge calls.
	// Default: "gpt-4o-mini"
	Model string `yaml:"model"`

	// MaxTokens bounds the judge's answer. Judge answers are a single
	// yes/no token, so this stays small.
	// Default: 8
	MaxTokens int `yaml:"max_tokens"`

	// CacheTTL is how long a judged answer remains valid in the cache.
	// Default: 5m
	CacheTTL time.Duration `yaml:"cache_ttl"`

	// SweepSchedule is a cron expression controlling when expired cache
	// entries are swept. Expired entries are also evicted lazily on read;
	// the sweep reclaims memory for keys that are never read again.
	// Default: "@every 1m"
	SweepSchedule string `yaml:"sweep_schedule"`
}

// ContextConfig contains configuration for context reference resolution.
type ContextConfig struct {
	// Backend selects the context store.
	// Options: "memory", "sqlite", "http"
	// Default: "memory"
	Backend string `yaml:"backend"`

	// SQLite contains settings for the sqlite backend.
	SQLite SQLiteContextConfig `yaml:"sqlite"`

	// HTTP contains settings for the http backend.
	HTTP HTTPContextConfig `yaml:"http"`

	// Git contains settings for syncing context assets from a git
	// repository into the store.
	Git GitContextConfig `yaml:"git"`
}

// SQLiteContextConfig configures the sqlite context store.
type SQLiteContextConfig struct {
	// Path is the database file path.
	// Default: "data/context.db"
	Path string `yaml:"path"`

	// MaxOpenConns is the maximum number of open connections.
	// Default: 10
	MaxOpenConns int `yaml:"max_open_conns"`

	// MaxIdleConns is the maximum number of idle connections.
	// Default: 5
	MaxIdleConns int `yaml:"max_idle_conns"`

	// WALMode enables Write-Ahead Logging mode for better concurrency.
	// Default: true
	WALMode bool `yaml:"wal_mode"`

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`
}

// HTTPContextConfig configures the remote context service backend.
type HTTPContextConfig struct {
	// BaseURL is the context service endpoint.
	// Example: "https://context.internal:8443"
	BaseURL string `yaml:"base_url"`

	// APIKey is the bearer token sent on every request, if set.
	APIKey string `yaml:"api_key"`

	// Timeout is the per-request timeout.
	// Default: 10s
	Timeout time.Duration `yaml:"timeout"`

	// MaxRetries is how many times transient failures are retried.
	// Default: 2
	MaxRetries int `yaml:"max_retries"`
}

// GitContextConfig configures git-based context asset sync.
type GitContextConfig struct {
	// Enabled determines if git sync is active.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Repository URL (HTTPS).
	// Example: "https://github.com/company/context-assets.git"
	Repository string `yaml:"repository"`

	// Branch to track.
	// Default: "main"
	Branch string `yaml:"branch"`

	// Path within repository to asset collections.
	// Default: "" (root directory)
	Path string `yaml:"path"`

	// LocalPath is where the repository is cloned.
	// Default: a directory under the system temp dir
	LocalPath string `yaml:"local_path"`

	// Depth enables shallow clones when greater than zero.
	// Default: 1
	Depth int `yaml:"depth"`

	// Token is an access token for private repositories.
	Token string `yaml:"token"`

	// SyncTimeout bounds each clone or pull operation.
	// Default: 60s
	SyncTimeout time.Duration `yaml:"sync_timeout"`
}

// TemplateConfig contains configuration for template loading.
type TemplateConfig struct {
	// Root is the directory import and include paths are resolved against.
	// Default: "." (current directory)
	Root string `yaml:"root"`

	// MaxDepth bounds transitive import/include nesting.
	// Default: 16
	MaxDepth int `yaml:"max_depth"`
}

// RenderConfig contains configuration for output rendering.
type RenderConfig struct {
	// Trim removes leading and trailing whitespace from the final output.
	// Default: true
	Trim bool `yaml:"trim"`

	// CollapseNewlines reduces runs of three or more newlines to two.
	// Default: true
	CollapseNewlines bool `yaml:"collapse_newlines"`

	// MissingVariables controls what happens when a variable has no binding.
	// Options: "error", "empty", "keep"
	// Default: "error"
	MissingVariables string `yaml:"missing_variables"`
}

// TelemetryConfig contains configuration for observability.
type TelemetryConfig struct {
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains metrics collection configuration.
	Metrics MetricsConfig `yaml:"metrics"`

	// Tracing contains distributed tracing configuration.
	Tracing TracingConfig `yaml:"tracing"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "info"
	Level string `yaml:"level"`

	// Format controls the log output format.
	// Options: "json", "text"
	// Default: "json"
	Format string `yaml:"format"`

	// AddSource includes file and line number in log entries.
	// Default: false
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig contains metrics collection configuration.
type MetricsConfig struct {
	// Enabled controls whether metrics collection is active.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Path is the HTTP path for the Prometheus metrics endpoint.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// Port is an optional port to serve metrics on (0 = disabled).
	// Default: 0
	Port int `yaml:"port"`

	// Namespace is the metric name prefix.
	// Default: "echo"
	Namespace string `yaml:"namespace"`

	// Subsystem is the metric subsystem name.
	// Default: "pdk"
	Subsystem string `yaml:"subsystem"`
}

// TracingConfig contains distributed tracing configuration.
type TracingConfig struct {
	// Enabled controls whether distributed tracing is active.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Sampler determines the sampling strategy.
	// Options: "always", "never", "ratio"
	// Default: "ratio"
	Sampler string `yaml:"sampler"`

	// SampleRatio is the fraction of traces to sample (0.0 to 1.0).
	// Only used when Sampler is "ratio".
	// Default: 0.1
	SampleRatio float64 `yaml:"sample_ratio"`

	// Endpoint is the OTLP collector endpoint.
	// Example: "localhost:4317"
	Endpoint string `yaml:"endpoint"`

	// ServiceName is the service name in traces.
	// Default: "echo-pdk"
	ServiceName string `yaml:"service_name"`

	// Insecure disables TLS for the OTLP connection.
	// Default: true
	Insecure bool `yaml:"insecure"`

	// ExportTimeout is the timeout for OTLP exports.
	// Default: 10s
	ExportTimeout time.Duration `yaml:"export_timeout"`
}
