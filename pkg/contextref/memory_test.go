package contextref

import (
	"context"
	"testing"
)

func TestMemoryResolver(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryResolver()

	if err := m.Put(ctx, "plp://snippets/greeting", "Hello from context."); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	res, err := m.Resolve(ctx, "plp://snippets/greeting")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if res.Err != nil {
		t.Fatalf("unexpected resolution error: %v", res.Err)
	}
	if res.Content != "Hello from context." {
		t.Errorf("Content = %q, want %q", res.Content, "Hello from context.")
	}
}

func TestMemoryResolverNotFound(t *testing.T) {
	m := NewMemoryResolver()

	res, err := m.Resolve(context.Background(), "plp://snippets/missing")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if !IsNotFound(res.Err) {
		t.Errorf("expected NotFoundError, got %v", res.Err)
	}
}

func TestMemoryResolverInvalidPath(t *testing.T) {
	m := NewMemoryResolver()

	res, err := m.Resolve(context.Background(), "not-a-reference")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if !IsInvalidPath(res.Err) {
		t.Errorf("expected InvalidPathError, got %v", res.Err)
	}

	if err := m.Put(context.Background(), "bad path", "x"); err == nil {
		t.Error("Put should reject an invalid path")
	}
}

// Batched resolution must agree with independent single lookups for every
// path, including the failing ones.
func TestResolveBatchMatchesSingleLookups(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryResolver()
	m.Put(ctx, "plp://snippets/a", "alpha")
	m.Put(ctx, "plp://snippets/b", "beta")

	paths := []string{
		"plp://snippets/a",
		"plp://snippets/b",
		"plp://snippets/missing",
		"invalid path",
	}

	batch, err := m.ResolveBatch(ctx, paths)
	if err != nil {
		t.Fatalf("ResolveBatch failed: %v", err)
	}
	if len(batch) != len(paths) {
		t.Fatalf("batch has %d entries, want %d", len(batch), len(paths))
	}

	for _, path := range paths {
		single, err := m.Resolve(ctx, path)
		if err != nil {
			t.Fatalf("Resolve(%q) failed: %v", path, err)
		}
		got, ok := batch[path]
		if !ok {
			t.Errorf("batch missing entry for %q", path)
			continue
		}
		if got.Content != single.Content {
			t.Errorf("path %q: batch content %q, single content %q", path, got.Content, single.Content)
		}
		if (got.Err == nil) != (single.Err == nil) {
			t.Errorf("path %q: batch err %v, single err %v", path, got.Err, single.Err)
		}
		if IsNotFound(got.Err) != IsNotFound(single.Err) {
			t.Errorf("path %q: not-found classification differs", path)
		}
	}
}

func TestResolvedLookupAndApply(t *testing.T) {
	resolved := Resolved{
		"plp://snippets/bio": {Path: "plp://snippets/bio", Content: "A short bio."},
		"plp://snippets/gone": {
			Path: "plp://snippets/gone",
			Err:  &NotFoundError{Path: "plp://snippets/gone"},
		},
	}

	if !resolved.Present("plp://snippets/bio") {
		t.Error("Present should be true for resolved content")
	}
	if resolved.Present("plp://snippets/gone") {
		t.Error("Present should be false for a not-found path")
	}
	if resolved.Present("plp://snippets/never-asked") {
		t.Error("Present should be false for a path the batch never covered")
	}

	bindings := map[string]any{
		"bio":     "plp://snippets/bio",
		"gone":    "plp://snippets/gone",
		"literal": "just text",
		"count":   3,
	}
	applied := ApplyResolved(bindings, resolved)

	if applied["bio"] != "A short bio." {
		t.Errorf("bio = %v, want resolved content", applied["bio"])
	}
	if applied["gone"] != "plp://snippets/gone" {
		t.Errorf("gone = %v, want original reference left in place", applied["gone"])
	}
	if applied["literal"] != "just text" || applied["count"] != 3 {
		t.Error("non-reference bindings must pass through unchanged")
	}
	if bindings["bio"] != "plp://snippets/bio" {
		t.Error("ApplyResolved must not mutate the input map")
	}
}
