package eval

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/GoReal-AI/echo-pdk-sub001/pkg/config"
	"github.com/GoReal-AI/echo-pdk-sub001/pkg/contextref"
	"github.com/GoReal-AI/echo-pdk-sub001/pkg/epl/ast"
	eplerrors "github.com/GoReal-AI/echo-pdk-sub001/pkg/epl/errors"
	"github.com/GoReal-AI/echo-pdk-sub001/pkg/epl/parser"
	"github.com/GoReal-AI/echo-pdk-sub001/pkg/telemetry/metrics"
)

// scriptedJudge answers by question lookup and counts every invocation.
type scriptedJudge struct {
	answers map[string]bool
	calls   []string
}

func (j *scriptedJudge) Evaluate(_ context.Context, _, question string) (bool, error) {
	j.calls = append(j.calls, question)
	return j.answers[question], nil
}

// countingResolver wraps a MemoryResolver and counts round trips.
type countingResolver struct {
	inner        *contextref.MemoryResolver
	resolveCalls int
	batchCalls   int
}

func (r *countingResolver) Resolve(ctx context.Context, path string) (contextref.Resolution, error) {
	r.resolveCalls++
	return r.inner.Resolve(ctx, path)
}

func (r *countingResolver) ResolveBatch(ctx context.Context, paths []string) (contextref.BatchResult, error) {
	r.batchCalls++
	return r.inner.ResolveBatch(ctx, paths)
}

func mustParse(t *testing.T, source string) *ast.Document {
	t.Helper()
	result := parser.ParseString(source, "test.epl")
	if !result.Success() {
		t.Fatalf("parse failed: %v", result.Errors)
	}
	return result.Document
}

// flatten renders the pruned tree's text and variable nodes for assertions.
func flatten(t *testing.T, nodes []ast.Node, bindings map[string]any) string {
	t.Helper()
	var sb strings.Builder
	for _, n := range nodes {
		switch node := n.(type) {
		case *ast.TextNode:
			sb.WriteString(node.Content)
		case *ast.VariableNode:
			sb.WriteString(ast.FormatValue(bindings[node.Name], node.Hint))
		case *ast.SectionNode:
			sb.WriteString(flatten(t, node.Children, bindings))
		default:
			t.Fatalf("unexpected node kind %q in evaluated tree", n.Kind())
		}
	}
	return sb.String()
}

func TestEvaluatePureInterpolation(t *testing.T) {
	doc := mustParse(t, "Hello {{name}}!")
	e := New(nil, nil, Options{})

	result, err := e.Evaluate(context.Background(), doc, map[string]any{"name": "World"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := flatten(t, result.Document.Nodes, result.Bindings); got != "Hello World!" {
		t.Errorf("got %q, want %q", got, "Hello World!")
	}
}

func TestEvaluateBooleanConditional(t *testing.T) {
	source := "{{#if flag}}then-branch{{#else}}else-branch{{#endif}}"

	tests := []struct {
		name string
		flag any
		want string
	}{
		{"true bool", true, "then-branch"},
		{"false bool", false, "else-branch"},
		{"true string", "true", "then-branch"},
		{"false string", "false", "else-branch"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustParse(t, source)
			e := New(nil, nil, Options{})
			result, err := e.Evaluate(context.Background(), doc, map[string]any{"flag": tt.flag})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := flatten(t, result.Document.Nodes, result.Bindings); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEvaluateUnknownVariableAborts(t *testing.T) {
	doc := mustParse(t, "{{#if missing}}x{{#endif}}")
	e := New(nil, nil, Options{})

	result, err := e.Evaluate(context.Background(), doc, nil)
	if err == nil {
		t.Fatal("expected error for unknown condition variable")
	}
	if result != nil {
		t.Error("no partial result may be returned on failure")
	}

	var evalErr *eplerrors.Error
	if !asEplError(err, &evalErr) || evalErr.Type != eplerrors.ErrorTypeEvaluation {
		t.Errorf("expected evaluation error, got %v", err)
	}
}

func asEplError(err error, target **eplerrors.Error) bool {
	e, ok := err.(*eplerrors.Error)
	if ok {
		*target = e
	}
	return ok
}

func TestEvaluateBranchSkipsNestedJudge(t *testing.T) {
	source := `{{#if judge(draft, "Is the draft polite?")}}` +
		`{{#if judge(draft, "Is the draft concise?")}}inner{{#endif}}` +
		`{{#else}}fallback{{#endif}}`

	j := &scriptedJudge{answers: map[string]bool{"Is the draft polite?": false}}
	doc := mustParse(t, source)
	e := New(nil, j, Options{})

	result, err := e.Evaluate(context.Background(), doc, map[string]any{"draft": "some text"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := flatten(t, result.Document.Nodes, result.Bindings); got != "fallback" {
		t.Errorf("got %q, want %q", got, "fallback")
	}

	if len(j.calls) != 1 {
		t.Fatalf("expected exactly 1 judge call, got %d: %v", len(j.calls), j.calls)
	}
	if j.calls[0] != "Is the draft polite?" {
		t.Errorf("nested predicate leaked: %v", j.calls)
	}
}

func TestEvaluateShortCircuitSkipsJudge(t *testing.T) {
	source := `{{#if flag && judge(draft, "Is it fine?")}}yes{{#else}}no{{#endif}}`

	j := &scriptedJudge{answers: map[string]bool{"Is it fine?": true}}
	doc := mustParse(t, source)
	e := New(nil, j, Options{})

	result, err := e.Evaluate(context.Background(), doc, map[string]any{
		"flag":  false,
		"draft": "text",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := flatten(t, result.Document.Nodes, result.Bindings); got != "no" {
		t.Errorf("got %q, want %q", got, "no")
	}
	if len(j.calls) != 0 {
		t.Errorf("right-hand judge must not run after a false left operand, got %v", j.calls)
	}
}

func TestEvaluateSingleBatchRoundTrip(t *testing.T) {
	mem := contextref.NewMemoryResolver()
	ctx := context.Background()
	mem.Put(ctx, "plp://guides/style", "style guide content")
	mem.Put(ctx, "plp://guides/tone", "tone guide content")

	resolver := &countingResolver{inner: mem}

	source := `{{#if context("plp://guides/style")}}styled{{#endif}}` +
		`{{#if context("plp://guides/tone")}}toned{{#endif}}` +
		`{{#if context("plp://guides/absent")}}ghost{{#else}}no-ghost{{#endif}}`

	doc := mustParse(t, source)
	e := New(resolver, nil, Options{})

	result, err := e.Evaluate(ctx, doc, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := flatten(t, result.Document.Nodes, result.Bindings); got != "styledtonedno-ghost" {
		t.Errorf("got %q, want %q", got, "styledtonedno-ghost")
	}

	if resolver.batchCalls != 1 {
		t.Errorf("expected exactly 1 batch round trip, got %d", resolver.batchCalls)
	}
	if resolver.resolveCalls != 0 {
		t.Errorf("single lookups must not happen during evaluation, got %d", resolver.resolveCalls)
	}
}

// Every path in the pre-resolution batch lands on the per-lookup counter
// with its outcome label.
func TestEvaluateRecordsLookupOutcomes(t *testing.T) {
	mem := contextref.NewMemoryResolver()
	ctx := context.Background()
	mem.Put(ctx, "plp://guides/style", "style guide content")

	collector := metrics.NewCollector(&config.MetricsConfig{
		Enabled:   true,
		Namespace: "echo",
		Subsystem: "pdk",
		Path:      "/metrics",
	}, nil)

	source := `{{#if context("plp://guides/style")}}styled{{#endif}}` +
		`{{#if context("plp://guides/absent")}}ghost{{#else}}no-ghost{{#endif}}`

	doc := mustParse(t, source)
	e := New(mem, nil, Options{Metrics: collector, Backend: "memory"})

	if _, err := e.Evaluate(ctx, doc, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	server := httptest.NewServer(collector.Handler())
	defer server.Close()
	resp, err := http.Get(server.URL)
	if err != nil {
		t.Fatalf("failed to scrape metrics: %v", err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read metrics: %v", err)
	}
	body := string(raw)

	for _, want := range []string{
		`echo_pdk_context_lookups_total{backend="memory",outcome="resolved"} 1`,
		`echo_pdk_context_lookups_total{backend="memory",outcome="not_found"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}

func TestEvaluateResolvesReferenceBindings(t *testing.T) {
	mem := contextref.NewMemoryResolver()
	ctx := context.Background()
	mem.Put(ctx, "plp://docs/intro", "Welcome aboard.")

	doc := mustParse(t, "{{greeting}}")
	e := New(mem, nil, Options{})

	result, err := e.Evaluate(ctx, doc, map[string]any{"greeting": "plp://docs/intro"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := flatten(t, result.Document.Nodes, result.Bindings); got != "Welcome aboard." {
		t.Errorf("got %q, want %q", got, "Welcome aboard.")
	}
}

func TestEvaluateAtomicOnJudgeFailure(t *testing.T) {
	source := `before {{#if judge(v, "q?")}}x{{#endif}} after`
	doc := mustParse(t, source)
	e := New(nil, &failingJudge{}, Options{})

	result, err := e.Evaluate(context.Background(), doc, map[string]any{"v": "value"})
	if err == nil {
		t.Fatal("expected error from failing judge")
	}
	if result != nil {
		t.Error("no partial evaluated tree may be returned")
	}
}

type failingJudge struct{}

func (failingJudge) Evaluate(context.Context, string, string) (bool, error) {
	return false, context.DeadlineExceeded
}

func TestEvaluateCancelledContext(t *testing.T) {
	doc := mustParse(t, "Hello {{name}}!")
	e := New(nil, nil, Options{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := e.Evaluate(ctx, doc, map[string]any{"name": "World"})
	if err == nil {
		t.Fatal("expected cancellation error")
	}
	if result != nil {
		t.Error("no partial result on cancellation")
	}
}

func TestEvaluateInputDocumentUnchanged(t *testing.T) {
	source := "{{#if flag}}then{{#else}}else{{#endif}}"
	doc := mustParse(t, source)
	before := ast.PrettyPrint(doc)

	e := New(nil, nil, Options{})
	if _, err := e.Evaluate(context.Background(), doc, map[string]any{"flag": true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if after := ast.PrettyPrint(doc); after != before {
		t.Error("evaluation must not mutate the input document")
	}
}
