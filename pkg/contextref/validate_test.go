package contextref

import (
	"testing"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"simple path", "plp://snippets/onboarding", false},
		{"nested asset id", "plp://docs/guides/setup", false},
		{"dots and dashes", "plp://team-a/notes.v2", false},
		{"underscores", "plp://shared_assets/intro_text", false},
		{"missing scheme", "snippets/onboarding", true},
		{"wrong scheme", "http://snippets/onboarding", true},
		{"no asset id", "plp://snippets", true},
		{"empty asset id", "plp://snippets/", true},
		{"empty collection", "plp:///onboarding", true},
		{"empty middle segment", "plp://docs//setup", true},
		{"space in segment", "plp://snippets/on boarding", true},
		{"parent traversal", "plp://snippets/../secrets", true},
		{"empty string", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if err != nil && !IsInvalidPath(err) {
				t.Errorf("ValidatePath(%q) returned %T, want *InvalidPathError", tt.path, err)
			}
		})
	}
}

func TestValidatePathTooLong(t *testing.T) {
	long := Scheme + "c/"
	for len(long) <= maxPathLength {
		long += "a"
	}
	if err := ValidatePath(long); err == nil {
		t.Error("expected error for over-length path")
	}
}

func TestSplitPath(t *testing.T) {
	collection, assetID, err := SplitPath("plp://docs/guides/setup")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if collection != "docs" {
		t.Errorf("collection = %q, want %q", collection, "docs")
	}
	if assetID != "guides/setup" {
		t.Errorf("assetID = %q, want %q", assetID, "guides/setup")
	}

	if _, _, err := SplitPath("plp://docs"); err == nil {
		t.Error("expected error for path without asset id")
	}
}

func TestIsReference(t *testing.T) {
	if !IsReference("plp://a/b") {
		t.Error("IsReference should accept plp:// prefix")
	}
	if IsReference("literal text") {
		t.Error("IsReference should reject plain text")
	}
	// Shape only: an invalid reference is still reference-shaped.
	if !IsReference("plp://not valid") {
		t.Error("IsReference is prefix-only and should accept malformed references")
	}
}
