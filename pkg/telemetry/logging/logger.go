// Package logging configures the process-wide structured logger.
//
// All components log through log/slog with a component attribute:
//
//	logger := slog.Default().With("component", "judge")
//
// Setup installs a handler built from the telemetry configuration as the
// slog default, so component loggers created before or after Setup share the
// same sink.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/GoReal-AI/echo-pdk-sub001/pkg/config"
)

// LogFormat represents the output format for logs.
type LogFormat string

const (
	// FormatJSON outputs logs in JSON format.
	FormatJSON LogFormat = "json"
	// FormatText outputs logs in plain text format.
	FormatText LogFormat = "text"
)

// Setup builds a slog.Logger from the logging configuration and installs it
// as the process default. The returned logger can also be used directly.
func Setup(cfg config.LoggingConfig, writer io.Writer) (*slog.Logger, error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	format, err := parseFormat(cfg.Format)
	if err != nil {
		return nil, fmt.Errorf("invalid log format: %w", err)
	}

	if writer == nil {
		writer = os.Stderr
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: cfg.AddSource,
	}

	var handler slog.Handler
	switch format {
	case FormatJSON:
		handler = slog.NewJSONHandler(writer, opts)
	case FormatText:
		handler = slog.NewTextHandler(writer, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger, nil
}

// ForComponent returns a logger scoped to a named component.
func ForComponent(name string) *slog.Logger {
	return slog.Default().With("component", name)
}

// parseLevel parses a log level string into a slog.Level.
func parseLevel(level string) (slog.Level, error) {
	switch level {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown level %q (supported: debug, info, warn, error)", level)
	}
}

// parseFormat parses a log format string into a LogFormat.
func parseFormat(format string) (LogFormat, error) {
	switch format {
	case "json", "":
		return FormatJSON, nil
	case "text":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown format %q (supported: json, text)", format)
	}
}
