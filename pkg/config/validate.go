package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/robfig/cron/v3"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g., "judge.provider").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a configuration.
// It implements the error interface and provides access to all field errors.
type ValidationError struct {
	// Errors contains all validation errors found in the configuration.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate validates the entire configuration and returns a ValidationError
// if any validation rules fail. It returns nil if the configuration is valid.
// All validation errors are collected and returned together.
func Validate(cfg *Config) error {
	var errs []FieldError

	errs = append(errs, validateProviders(cfg.Providers)...)
	errs = append(errs, validateJudge(cfg)...)
	errs = append(errs, validateContext(&cfg.Context)...)
	errs = append(errs, validateRender(&cfg.Render)...)
	errs = append(errs, validateTelemetry(&cfg.Telemetry)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}

	return nil
}

// validateProviders validates provider configurations.
func validateProviders(providers map[string]ProviderConfig) []FieldError {
	var errs []FieldError

	for name, provider := range providers {
		switch provider.Type {
		case "openai", "anthropic", "generic":
		default:
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("providers.%s.type", name),
				Message: fmt.Sprintf("unknown provider type %q (supported: openai, anthropic, generic)", provider.Type),
			})
		}

		if provider.BaseURL != "" {
			if _, err := url.Parse(provider.BaseURL); err != nil {
				errs = append(errs, FieldError{
					Field:   fmt.Sprintf("providers.%s.base_url", name),
					Message: fmt.Sprintf("invalid URL: %v", err),
				})
			}
		}

		if provider.Timeout < 0 {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("providers.%s.timeout", name),
				Message: "timeout must be positive",
			})
		}
		if provider.MaxRetries < 0 {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("providers.%s.max_retries", name),
				Message: "max retries must not be negative",
			})
		}
	}

	return errs
}

// validateJudge validates the judge configuration.
func validateJudge(cfg *Config) []FieldError {
	var errs []FieldError

	// The judge provider must exist when any providers are configured at all.
	// A provider-less config is still valid for parse/lint-only use.
	if len(cfg.Providers) > 0 {
		if _, ok := cfg.Providers[cfg.Judge.Provider]; !ok {
			errs = append(errs, FieldError{
				Field:   "judge.provider",
				Message: fmt.Sprintf("provider %q is not configured", cfg.Judge.Provider),
			})
		}
	}

	if cfg.Judge.Model == "" {
		errs = append(errs, FieldError{
			Field:   "judge.model",
			Message: "model is required",
		})
	}
	if cfg.Judge.MaxTokens <= 0 {
		errs = append(errs, FieldError{
			Field:   "judge.max_tokens",
			Message: "max tokens must be positive",
		})
	}
	if cfg.Judge.CacheTTL < 0 {
		errs = append(errs, FieldError{
			Field:   "judge.cache_ttl",
			Message: "cache TTL must not be negative",
		})
	}
	if cfg.Judge.SweepSchedule != "" {
		parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
		if _, err := parser.Parse(cfg.Judge.SweepSchedule); err != nil {
			errs = append(errs, FieldError{
				Field:   "judge.sweep_schedule",
				Message: fmt.Sprintf("invalid cron expression: %v", err),
			})
		}
	}

	return errs
}

// validateContext validates the context resolution configuration.
func validateContext(cfg *ContextConfig) []FieldError {
	var errs []FieldError

	switch cfg.Backend {
	case "memory", "sqlite", "http":
	default:
		errs = append(errs, FieldError{
			Field:   "context.backend",
			Message: fmt.Sprintf("unknown backend %q (supported: memory, sqlite, http)", cfg.Backend),
		})
	}

	if cfg.Backend == "sqlite" && cfg.SQLite.Path == "" {
		errs = append(errs, FieldError{
			Field:   "context.sqlite.path",
			Message: "path is required for the sqlite backend",
		})
	}

	if cfg.Backend == "http" {
		if cfg.HTTP.BaseURL == "" {
			errs = append(errs, FieldError{
				Field:   "context.http.base_url",
				Message: "base URL is required for the http backend",
			})
		} else if _, err := url.Parse(cfg.HTTP.BaseURL); err != nil {
			errs = append(errs, FieldError{
				Field:   "context.http.base_url",
				Message: fmt.Sprintf("invalid URL: %v", err),
			})
		}
	}

	if cfg.Git.Enabled {
		if cfg.Git.Repository == "" {
			errs = append(errs, FieldError{
				Field:   "context.git.repository",
				Message: "repository is required when git sync is enabled",
			})
		}
		if cfg.Backend == "http" {
			errs = append(errs, FieldError{
				Field:   "context.git.enabled",
				Message: "git sync requires a writable backend (memory or sqlite)",
			})
		}
	}

	return errs
}

// validateRender validates the render configuration.
func validateRender(cfg *RenderConfig) []FieldError {
	var errs []FieldError

	switch cfg.MissingVariables {
	case "error", "empty", "keep":
	default:
		errs = append(errs, FieldError{
			Field:   "render.missing_variables",
			Message: fmt.Sprintf("unknown mode %q (supported: error, empty, keep)", cfg.MissingVariables),
		})
	}

	return errs
}

// validateTelemetry validates the telemetry configuration.
func validateTelemetry(cfg *TelemetryConfig) []FieldError {
	var errs []FieldError

	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: fmt.Sprintf("unknown level %q (supported: debug, info, warn, error)", cfg.Logging.Level),
		})
	}

	switch cfg.Logging.Format {
	case "json", "text":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: fmt.Sprintf("unknown format %q (supported: json, text)", cfg.Logging.Format),
		})
	}

	switch cfg.Tracing.Sampler {
	case "always", "never", "ratio":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.tracing.sampler",
			Message: fmt.Sprintf("unknown sampler %q (supported: always, never, ratio)", cfg.Tracing.Sampler),
		})
	}

	if cfg.Tracing.SampleRatio < 0 || cfg.Tracing.SampleRatio > 1 {
		errs = append(errs, FieldError{
			Field:   "telemetry.tracing.sample_ratio",
			Message: "sample ratio must be between 0.0 and 1.0",
		})
	}

	if cfg.Tracing.Enabled && cfg.Tracing.Endpoint == "" {
		errs = append(errs, FieldError{
			Field:   "telemetry.tracing.endpoint",
			Message: "endpoint is required when tracing is enabled",
		})
	}

	return errs
}
