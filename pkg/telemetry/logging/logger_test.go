package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/GoReal-AI/echo-pdk-sub001/pkg/config"
)

func TestSetupJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := Setup(config.LoggingConfig{Level: "info", Format: "json"}, &buf)
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}

	logger.Info("hello", "key", "value")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if entry["msg"] != "hello" || entry["key"] != "value" {
		t.Errorf("unexpected entry: %v", entry)
	}
}

func TestSetupLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger, err := Setup(config.LoggingConfig{Level: "warn", Format: "text"}, &buf)
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}

	logger.Info("quiet")
	logger.Warn("loud")

	out := buf.String()
	if strings.Contains(out, "quiet") {
		t.Error("info entry should be filtered at warn level")
	}
	if !strings.Contains(out, "loud") {
		t.Error("warn entry should pass at warn level")
	}
}

func TestSetupRejectsUnknownLevel(t *testing.T) {
	if _, err := Setup(config.LoggingConfig{Level: "verbose"}, nil); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestForComponent(t *testing.T) {
	var buf bytes.Buffer
	if _, err := Setup(config.LoggingConfig{Level: "info", Format: "json"}, &buf); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	defer slog.SetDefault(slog.Default())

	ForComponent("judge").Info("cached")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if entry["component"] != "judge" {
		t.Errorf("component = %v, want judge", entry["component"])
	}
}
