package eval

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/GoReal-AI/echo-pdk-sub001/pkg/config"
	"github.com/GoReal-AI/echo-pdk-sub001/pkg/contextref"
)

func writeTemplate(t *testing.T, dir, name, source string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create template dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(source), 0o644); err != nil {
		t.Fatalf("failed to write template: %v", err)
	}
}

func newTestEvaluator(t *testing.T, root string) *Evaluator {
	t.Helper()
	loader := NewLoader(config.TemplateConfig{Root: root, MaxDepth: 8})
	return New(nil, nil, Options{Loader: loader})
}

func TestIncludeSplicesInline(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "footer.epl", "-- {{signature}}")

	doc := mustParse(t, `body text {{#include "footer.epl"}}`)
	e := newTestEvaluator(t, dir)

	result, err := e.Evaluate(context.Background(), doc, map[string]any{"signature": "Echo"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := flatten(t, result.Document.Nodes, result.Bindings); got != "body text -- Echo" {
		t.Errorf("got %q", got)
	}
}

func TestImportContributesOnlySections(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "library.epl",
		"stray text{{#section rules}}rule content{{#endsection}}more stray text")

	doc := mustParse(t, `{{#import "library.epl"}}main`)
	e := newTestEvaluator(t, dir)

	result, err := e.Evaluate(context.Background(), doc, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := flatten(t, result.Document.Nodes, result.Bindings); got != "rule contentmain" {
		t.Errorf("import must contribute sections only, got %q", got)
	}
}

func TestIncludedContextPathsJoinTheBatch(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "guard.epl",
		`{{#if context("plp://guides/style")}}guarded{{#endif}}`)

	mem := contextref.NewMemoryResolver()
	ctx := context.Background()
	mem.Put(ctx, "plp://guides/style", "content")
	resolver := &countingResolver{inner: mem}

	loader := NewLoader(config.TemplateConfig{Root: dir, MaxDepth: 8})
	e := New(resolver, nil, Options{Loader: loader})

	doc := mustParse(t, `{{#include "guard.epl"}}`)
	result, err := e.Evaluate(ctx, doc, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := flatten(t, result.Document.Nodes, result.Bindings); got != "guarded" {
		t.Errorf("got %q", got)
	}
	if resolver.batchCalls != 1 {
		t.Errorf("included paths must join the single batch, got %d round trips", resolver.batchCalls)
	}
}

func TestIncludeCycleDetected(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "a.epl", `A {{#include "b.epl"}}`)
	writeTemplate(t, dir, "b.epl", `B {{#include "a.epl"}}`)

	doc := mustParse(t, `{{#include "a.epl"}}`)
	e := newTestEvaluator(t, dir)

	if _, err := e.Evaluate(context.Background(), doc, nil); err == nil {
		t.Fatal("expected cycle error")
	}
}

func TestIncludeEscapingRootRejected(t *testing.T) {
	dir := t.TempDir()

	doc := mustParse(t, `{{#include "../outside.epl"}}`)
	e := newTestEvaluator(t, dir)

	if _, err := e.Evaluate(context.Background(), doc, nil); err == nil {
		t.Fatal("expected error for path escaping the template root")
	}
}

func TestIncludeWithoutLoaderFails(t *testing.T) {
	doc := mustParse(t, `{{#include "any.epl"}}`)
	e := New(nil, nil, Options{})

	if _, err := e.Evaluate(context.Background(), doc, nil); err == nil {
		t.Fatal("expected error when no loader is configured")
	}
}

func TestNestedIncludeDepthBounded(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "deep.epl", `{{#include "deep2.epl"}}`)
	writeTemplate(t, dir, "deep2.epl", "bottom")

	loader := NewLoader(config.TemplateConfig{Root: dir, MaxDepth: 1})
	e := New(nil, nil, Options{Loader: loader})

	doc := mustParse(t, `{{#include "deep.epl"}}`)
	if _, err := e.Evaluate(context.Background(), doc, nil); err == nil {
		t.Fatal("expected depth-limit error")
	}
}
