package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file at the specified path.
// It applies default values, validates the configuration, and returns any errors.
// The configuration is not modified by environment variables; use
// LoadConfigWithEnvOverrides for that functionality.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	// Unmarshal over a defaults-populated config: omitted fields keep their
	// defaults, and an explicit false in the file is preserved.
	cfg := NewDefault()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides. Environment variables follow the naming
// convention ECHO_SECTION_FIELD (e.g., ECHO_JUDGE_MODEL). Environment
// variables always take precedence over file-based configuration.
//
// The loading sequence is:
// 1. Load YAML from file
// 2. Apply default values
// 3. Apply environment variable overrides
// 4. Validate final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables use the format ECHO_SECTION_FIELD.
func applyEnvOverrides(cfg *Config) {
	// Provider overrides - we need to handle dynamic provider names
	// For now, we support common providers: openai, anthropic, generic
	applyProviderEnvOverrides(cfg, "openai")
	applyProviderEnvOverrides(cfg, "anthropic")
	applyProviderEnvOverrides(cfg, "generic")

	// Judge overrides
	if val := os.Getenv("ECHO_JUDGE_PROVIDER"); val != "" {
		cfg.Judge.Provider = val
	}
	if val := os.Getenv("ECHO_JUDGE_MODEL"); val != "" {
		cfg.Judge.Model = val
	}
	if val := os.Getenv("ECHO_JUDGE_MAX_TOKENS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Judge.MaxTokens = i
		}
	}
	if val := os.Getenv("ECHO_JUDGE_CACHE_TTL"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Judge.CacheTTL = d
		}
	}
	if val := os.Getenv("ECHO_JUDGE_SWEEP_SCHEDULE"); val != "" {
		cfg.Judge.SweepSchedule = val
	}

	// Context overrides
	if val := os.Getenv("ECHO_CONTEXT_BACKEND"); val != "" {
		cfg.Context.Backend = val
	}
	if val := os.Getenv("ECHO_CONTEXT_SQLITE_PATH"); val != "" {
		cfg.Context.SQLite.Path = val
	}
	if val := os.Getenv("ECHO_CONTEXT_HTTP_BASE_URL"); val != "" {
		cfg.Context.HTTP.BaseURL = val
	}
	if val := os.Getenv("ECHO_CONTEXT_HTTP_API_KEY"); val != "" {
		cfg.Context.HTTP.APIKey = val
	}
	if val := os.Getenv("ECHO_CONTEXT_GIT_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Context.Git.Enabled = b
		}
	}
	if val := os.Getenv("ECHO_CONTEXT_GIT_REPOSITORY"); val != "" {
		cfg.Context.Git.Repository = val
	}
	if val := os.Getenv("ECHO_CONTEXT_GIT_BRANCH"); val != "" {
		cfg.Context.Git.Branch = val
	}
	if val := os.Getenv("ECHO_CONTEXT_GIT_TOKEN"); val != "" {
		cfg.Context.Git.Token = val
	}

	// Template overrides
	if val := os.Getenv("ECHO_TEMPLATES_ROOT"); val != "" {
		cfg.Templates.Root = val
	}
	if val := os.Getenv("ECHO_TEMPLATES_MAX_DEPTH"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Templates.MaxDepth = i
		}
	}

	// Render overrides
	if val := os.Getenv("ECHO_RENDER_TRIM"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Render.Trim = b
		}
	}
	if val := os.Getenv("ECHO_RENDER_COLLAPSE_NEWLINES"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Render.CollapseNewlines = b
		}
	}
	if val := os.Getenv("ECHO_RENDER_MISSING_VARIABLES"); val != "" {
		cfg.Render.MissingVariables = val
	}

	// Telemetry overrides
	if val := os.Getenv("ECHO_TELEMETRY_LOGGING_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("ECHO_TELEMETRY_LOGGING_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := os.Getenv("ECHO_TELEMETRY_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Metrics.Enabled = b
		}
	}
	if val := os.Getenv("ECHO_TELEMETRY_METRICS_PORT"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Telemetry.Metrics.Port = i
		}
	}
	if val := os.Getenv("ECHO_TELEMETRY_TRACING_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Tracing.Enabled = b
		}
	}
	if val := os.Getenv("ECHO_TELEMETRY_TRACING_ENDPOINT"); val != "" {
		cfg.Telemetry.Tracing.Endpoint = val
	}
	if val := os.Getenv("ECHO_TELEMETRY_TRACING_SAMPLE_RATIO"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			cfg.Telemetry.Tracing.SampleRatio = f
		}
	}
}

// applyProviderEnvOverrides applies environment variable overrides for a specific provider.
// Provider environment variables follow the format ECHO_PROVIDERS_<NAME>_<FIELD>
// where NAME is the uppercase provider name.
func applyProviderEnvOverrides(cfg *Config, providerName string) {
	if cfg.Providers == nil {
		cfg.Providers = make(map[string]ProviderConfig)
	}

	provider, exists := cfg.Providers[providerName]
	if !exists {
		provider = ProviderConfig{}
	}

	prefix := fmt.Sprintf("ECHO_PROVIDERS_%s_", strings.ToUpper(providerName))

	modified := false

	if val := os.Getenv(prefix + "TYPE"); val != "" {
		provider.Type = val
		modified = true
	}
	if val := os.Getenv(prefix + "BASE_URL"); val != "" {
		provider.BaseURL = val
		modified = true
	}
	if val := os.Getenv(prefix + "API_KEY"); val != "" {
		provider.APIKey = val
		modified = true
	}
	if val := os.Getenv(prefix + "TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			provider.Timeout = d
			modified = true
		}
	}
	if val := os.Getenv(prefix + "MAX_RETRIES"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			provider.MaxRetries = i
			modified = true
		}
	}

	// Only update the map if we found at least one override
	if modified || exists {
		if provider.Type == "" {
			provider.Type = providerName
		}
		if provider.Timeout == 0 {
			provider.Timeout = DefaultProviderTimeout
		}
		if provider.MaxRetries == 0 {
			provider.MaxRetries = DefaultProviderMaxRetries
		}
		cfg.Providers[providerName] = provider
	}
}
