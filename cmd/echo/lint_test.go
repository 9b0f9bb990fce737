package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempTemplate(t *testing.T, source string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prompt.epl")
	if err := os.WriteFile(path, []byte(source), 0o644); err != nil {
		t.Fatalf("failed to write template: %v", err)
	}
	return path
}

func TestLintFileValid(t *testing.T) {
	path := writeTempTemplate(t, "Hello {{name}}!")

	result := lintFile(path)
	if !result.Valid {
		t.Errorf("expected valid result, got diagnostics: %+v", result.Diagnostics)
	}
}

func TestLintFileCollectsAllErrors(t *testing.T) {
	// Two independent problems: an unterminated variable and an unclosed if.
	path := writeTempTemplate(t, "{{broken\n{{#if flag}}text")

	result := lintFile(path)
	if result.Valid {
		t.Fatal("expected invalid result")
	}
	if len(result.Diagnostics) < 2 {
		t.Errorf("expected multiple diagnostics from one pass, got %d", len(result.Diagnostics))
	}
	for _, d := range result.Diagnostics {
		if d.Line == 0 {
			t.Errorf("diagnostic missing location: %+v", d)
		}
	}
}

func TestLintFileMissing(t *testing.T) {
	result := lintFile(filepath.Join(t.TempDir(), "absent.epl"))
	if result.Valid {
		t.Error("missing file must not lint as valid")
	}
}

func TestParseBindings(t *testing.T) {
	bindings, err := parseBindings([]string{"name=World", "flag=true", "off=false", "n=3"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if bindings["name"] != "World" {
		t.Errorf("name = %v", bindings["name"])
	}
	if bindings["flag"] != true {
		t.Errorf("flag = %v, want bool true", bindings["flag"])
	}
	if bindings["off"] != false {
		t.Errorf("off = %v, want bool false", bindings["off"])
	}
	if bindings["n"] != "3" {
		t.Errorf("n = %v, want string", bindings["n"])
	}

	if _, err := parseBindings([]string{"novalue"}); err == nil {
		t.Error("expected error for malformed binding")
	}
	if _, err := parseBindings([]string{"=x"}); err == nil {
		t.Error("expected error for empty key")
	}
}
