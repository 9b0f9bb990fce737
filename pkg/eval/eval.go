package eval

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/GoReal-AI/echo-pdk-sub001/pkg/contextref"
	"github.com/GoReal-AI/echo-pdk-sub001/pkg/epl/ast"
	eplerrors "github.com/GoReal-AI/echo-pdk-sub001/pkg/epl/errors"
	"github.com/GoReal-AI/echo-pdk-sub001/pkg/judge"
	"github.com/GoReal-AI/echo-pdk-sub001/pkg/telemetry/metrics"
)

// Options configures an Evaluator beyond its two required capabilities.
type Options struct {
	// Loader loads templates referenced by import/include. Documents without
	// those directives evaluate fine with a nil loader.
	Loader *Loader

	// Metrics records evaluation and batch metrics when non-nil.
	Metrics *metrics.Collector

	// Backend labels context-batch metrics with the resolver backend name
	// ("memory", "sqlite", "http").
	Backend string
}

// Result is the outcome of a successful evaluation.
type Result struct {
	// ID uniquely identifies this evaluation run in logs and traces.
	ID string

	// Document is the fully evaluated tree: every conditional reduced to one
	// branch, imports and includes spliced in.
	Document *ast.Document

	// Bindings are the context-augmented variable bindings the renderer
	// should substitute from. Reference-valued bindings that resolved are
	// replaced by their content.
	Bindings map[string]any

	// Duration is the wall-clock evaluation time.
	Duration time.Duration
}

// Evaluator reduces parsed documents against variable bindings. The context
// resolver and AI judge are injected capabilities; the evaluator never
// constructs network clients itself.
type Evaluator struct {
	resolver contextref.Resolver
	judge    judge.Judge
	loader   *Loader
	metrics  *metrics.Collector
	backend  string
	logger   *slog.Logger
}

// New creates an Evaluator. Either capability may be nil when the documents
// being evaluated do not need it; reaching a judge() predicate or a context
// path without the matching capability is an evaluation error.
func New(resolver contextref.Resolver, j judge.Judge, opts Options) *Evaluator {
	backend := opts.Backend
	if backend == "" {
		backend = "memory"
	}
	return &Evaluator{
		resolver: resolver,
		judge:    j,
		loader:   opts.Loader,
		metrics:  opts.Metrics,
		backend:  backend,
		logger:   slog.Default().With("component", "evaluator"),
	}
}

// Evaluate reduces the document against the bindings.
//
// Phase one expands imports/includes, scans the whole tree for context paths,
// and resolves them in one batched round trip. Phase two walks the tree
// depth-first in document order, selecting exactly one branch per conditional
// before its children are visited. On any error no partial tree is returned.
func (e *Evaluator) Evaluate(ctx context.Context, doc *ast.Document, bindings map[string]any) (*Result, error) {
	start := time.Now()
	id := uuid.NewString()
	logger := e.logger.With("evaluation_id", id, "document", doc.Name)

	result, err := e.evaluate(ctx, logger, doc, bindings)
	duration := time.Since(start)

	status := "success"
	if err != nil {
		status = "error"
		logger.Error("evaluation failed", "error", err, "duration_ms", duration.Milliseconds())
	} else {
		result.ID = id
		result.Duration = duration
		logger.Debug("evaluation completed", "duration_ms", duration.Milliseconds())
	}
	if e.metrics != nil {
		e.metrics.RecordEvaluation(status, duration)
	}

	return result, err
}

func (e *Evaluator) evaluate(ctx context.Context, logger *slog.Logger, doc *ast.Document, bindings map[string]any) (*Result, error) {
	exp := &expander{loader: e.loader, active: make(map[string]bool)}
	expanded, err := exp.expand(doc)
	if err != nil {
		return nil, err
	}

	resolved, working, err := e.preResolve(ctx, logger, expanded, bindings)
	if err != nil {
		return nil, err
	}

	nodes, err := e.reduceNodes(ctx, expanded.Nodes, working, resolved)
	if err != nil {
		return nil, err
	}

	return &Result{
		Document: &ast.Document{Name: doc.Name, Nodes: nodes, Location: doc.Location},
		Bindings: working,
	}, nil
}

// preResolve is phase one: collect every context path in the expanded tree
// and resolve the whole set in one round trip. Per-path failures are carried
// in the resolution map and surface later only if the path is actually needed
// by a selected branch.
func (e *Evaluator) preResolve(ctx context.Context, logger *slog.Logger, doc *ast.Document, bindings map[string]any) (contextref.Resolved, map[string]any, error) {
	paths := contextref.CollectPaths(doc, bindings)
	if len(paths) == 0 {
		// Pure interpolation path: no network round trip at all.
		return contextref.Resolved{}, bindings, nil
	}

	if e.resolver == nil {
		return nil, nil, &eplerrors.Error{
			Type:       eplerrors.ErrorTypeResolution,
			Message:    fmt.Sprintf("document references %d context path(s) but no resolver is configured", len(paths)),
			Location:   doc.Location,
			Suggestion: "configure a context backend",
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	batch, err := e.resolver.ResolveBatch(ctx, paths)
	if err != nil {
		return nil, nil, &eplerrors.Error{
			Type:     eplerrors.ErrorTypeResolution,
			Message:  fmt.Sprintf("batched context resolution failed: %v", err),
			Location: doc.Location,
		}
	}
	if e.metrics != nil {
		e.metrics.RecordContextBatch(e.backend, len(paths))
		for _, res := range batch {
			e.metrics.RecordContextLookup(e.backend, lookupOutcome(res.Err))
		}
	}
	logger.Debug("context pre-resolution completed", "paths", len(paths))

	resolved := contextref.Resolved(batch)
	return resolved, contextref.ApplyResolved(bindings, resolved), nil
}

// lookupOutcome classifies a per-path resolution result for the lookup counter.
func lookupOutcome(err error) string {
	switch {
	case err == nil:
		return "resolved"
	case contextref.IsNotFound(err):
		return "not_found"
	case contextref.IsInvalidPath(err):
		return "invalid"
	default:
		return "error"
	}
}

// reduceNodes is phase two: depth-first, document-order reduction. A
// conditional contributes exactly one branch's children; everything else
// passes through, untouched subtrees shared by reference.
func (e *Evaluator) reduceNodes(ctx context.Context, nodes []ast.Node, bindings map[string]any, resolved contextref.Resolved) ([]ast.Node, error) {
	out := make([]ast.Node, 0, len(nodes))
	for _, n := range nodes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		switch node := n.(type) {
		case *ast.ConditionalNode:
			taken, err := e.evalCondition(ctx, node.Condition, bindings, resolved)
			if err != nil {
				return nil, err
			}
			branch := node.Then
			if !taken {
				branch = node.Else
			}
			reduced, err := e.reduceNodes(ctx, branch, bindings, resolved)
			if err != nil {
				return nil, err
			}
			out = append(out, reduced...)

		case *ast.SectionNode:
			children, err := e.reduceNodes(ctx, node.Children, bindings, resolved)
			if err != nil {
				return nil, err
			}
			out = append(out, &ast.SectionNode{
				Name:     node.Name,
				Children: children,
				Location: node.Location,
			})

		default:
			out = append(out, n)
		}
	}
	return out, nil
}
