package contextref

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *SQLiteResolver {
	t.Helper()
	store, err := NewSQLiteResolver(&SQLiteResolverConfig{
		Path:         filepath.Join(t.TempDir(), "context.db"),
		MaxOpenConns: 2,
		MaxIdleConns: 1,
		WALMode:      true,
	})
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLitePutResolve(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Put(ctx, "plp://docs/intro", "Welcome aboard."); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	res, err := store.Resolve(ctx, "plp://docs/intro")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if res.Err != nil {
		t.Fatalf("resolution error: %v", res.Err)
	}
	if res.Content != "Welcome aboard." {
		t.Errorf("content = %q", res.Content)
	}
}

func TestSQLitePutOverwrites(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Put(ctx, "plp://docs/intro", "first"); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	if err := store.Put(ctx, "plp://docs/intro", "second"); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}

	res, err := store.Resolve(ctx, "plp://docs/intro")
	if err != nil || res.Err != nil {
		t.Fatalf("resolve failed: %v / %v", err, res.Err)
	}
	if res.Content != "second" {
		t.Errorf("content = %q, want %q", res.Content, "second")
	}
}

func TestSQLiteResolveNotFound(t *testing.T) {
	store := newTestStore(t)

	res, err := store.Resolve(context.Background(), "plp://docs/absent")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	var nf *NotFoundError
	if !errors.As(res.Err, &nf) {
		t.Errorf("resolution error = %v, want NotFoundError", res.Err)
	}
}

func TestSQLiteDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Put(ctx, "plp://docs/tmp", "x"); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	if err := store.Delete(ctx, "plp://docs/tmp"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	res, _ := store.Resolve(ctx, "plp://docs/tmp")
	if !IsNotFound(res.Err) {
		t.Errorf("resolution error = %v, want not-found", res.Err)
	}

	// Deleting an absent path is not an error.
	if err := store.Delete(ctx, "plp://docs/tmp"); err != nil {
		t.Errorf("repeated delete failed: %v", err)
	}
}

func TestSQLiteResolveBatch(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	assets := map[string]string{
		"plp://style/tone":  "Keep it short.",
		"plp://docs/refund": "30-day policy.",
	}
	for path, content := range assets {
		if err := store.Put(ctx, path, content); err != nil {
			t.Fatalf("put %s failed: %v", path, err)
		}
	}

	paths := []string{
		"plp://style/tone",
		"plp://docs/refund",
		"plp://docs/absent",
		"not-a-context-path",
	}
	result, err := store.ResolveBatch(ctx, paths)
	if err != nil {
		t.Fatalf("batch failed: %v", err)
	}
	if len(result) != len(paths) {
		t.Fatalf("result size = %d, want %d", len(result), len(paths))
	}

	for path, content := range assets {
		res := result[path]
		if res.Err != nil {
			t.Errorf("%s: %v", path, res.Err)
		}
		if res.Content != content {
			t.Errorf("%s content = %q, want %q", path, res.Content, content)
		}
	}

	if !IsNotFound(result["plp://docs/absent"].Err) {
		t.Errorf("absent path error = %v, want not-found", result["plp://docs/absent"].Err)
	}
	if result["not-a-context-path"].Err == nil {
		t.Error("invalid path must carry a validation error")
	}
}

func TestSQLitePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "context.db")
	cfg := &SQLiteResolverConfig{Path: path, MaxOpenConns: 2, MaxIdleConns: 1, WALMode: true}
	ctx := context.Background()

	store, err := NewSQLiteResolver(cfg)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	if err := store.Put(ctx, "plp://docs/keep", "survives"); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	reopened, err := NewSQLiteResolver(cfg)
	if err != nil {
		t.Fatalf("failed to reopen store: %v", err)
	}
	defer reopened.Close()

	res, err := reopened.Resolve(ctx, "plp://docs/keep")
	if err != nil || res.Err != nil {
		t.Fatalf("resolve failed: %v / %v", err, res.Err)
	}
	if res.Content != "survives" {
		t.Errorf("content = %q", res.Content)
	}
}
