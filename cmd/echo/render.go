package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/GoReal-AI/echo-pdk-sub001/pkg/cli"
	"github.com/GoReal-AI/echo-pdk-sub001/pkg/config"
	"github.com/GoReal-AI/echo-pdk-sub001/pkg/epl/parser"
	"github.com/GoReal-AI/echo-pdk-sub001/pkg/render"
	"github.com/GoReal-AI/echo-pdk-sub001/pkg/telemetry/tracing"
	"github.com/GoReal-AI/echo-pdk-sub001/pkg/watch"
)

var renderFlags struct {
	file      string
	vars      []string
	watchMode bool
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render an EPL template",
	Long: `Run the full pipeline on a template: parse, evaluate conditionals
(including AI-judged predicates and context-presence checks), and print the
rendered prompt to stdout.

Variable bindings are passed with repeated --var flags. A binding value of
the form plp://collection/asset-id is resolved through the configured context
backend before evaluation.

Examples:
  # Render with bindings
  echo render --file prompt.epl --var name=World --var tier=pro

  # Re-render on every template save
  echo render --file prompt.epl --var name=World --watch`,
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVarP(&renderFlags.file, "file", "f", "", "template file to render (required)")
	renderCmd.Flags().StringArrayVar(&renderFlags.vars, "var", nil, "variable binding key=value (repeatable)")
	renderCmd.Flags().BoolVarP(&renderFlags.watchMode, "watch", "w", false, "re-render when the template changes")
	renderCmd.MarkFlagRequired("file")
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	bindings, err := parseBindings(renderFlags.vars)
	if err != nil {
		return err
	}

	ctx := cli.SetupSignalHandler()

	p, err := newPipeline(ctx, cfg)
	if err != nil {
		return err
	}
	defer p.Close()

	if !renderFlags.watchMode {
		out, err := renderOnce(ctx, p, cfg, renderFlags.file, bindings)
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	}

	return watchAndRender(ctx, p, cfg, renderFlags.file, bindings)
}

// renderOnce runs parse, evaluate, render for one template.
func renderOnce(ctx context.Context, p *pipeline, cfg *config.Config, file string, bindings map[string]any) (string, error) {
	ctx, span := p.tracer.Start(ctx, "render")
	defer span.End()

	parsed := parser.ParseFile(file)
	if !parsed.Success() {
		return "", parsed.Errors
	}

	evaluated, err := p.evaluator.Evaluate(ctx, parsed.Document, bindings)
	if err != nil {
		tracing.RecordError(span, err)
		return "", err
	}

	out, err := render.Render(evaluated.Document, evaluated.Bindings, render.FromConfig(cfg.Render))
	if err != nil {
		tracing.RecordError(span, err)
	}
	return out, err
}

// watchAndRender renders immediately, then re-renders after each debounced
// change to the template's directory. Render failures are printed but keep
// the watch alive.
func watchAndRender(ctx context.Context, p *pipeline, cfg *config.Config, file string, bindings map[string]any) error {
	emit := func() error {
		out, err := renderOnce(ctx, p, cfg, file, bindings)
		if err != nil {
			fmt.Fprintf(os.Stderr, "render failed: %v\n", err)
			return err
		}
		fmt.Println(out)
		return nil
	}

	// First render up front; a broken template still enters watch mode so
	// the author can fix it and save.
	_ = emit()

	if err := p.startSweeper(ctx); err != nil {
		return err
	}
	go func() {
		if err := p.metrics.Serve(); err != nil {
			fmt.Fprintf(os.Stderr, "metrics endpoint failed: %v\n", err)
		}
	}()

	w, err := watch.New(watch.DefaultConfig(filepath.Dir(file)))
	if err != nil {
		return err
	}
	defer w.Stop()

	return w.Watch(ctx, emit)
}

// parseBindings turns repeated key=value flags into a bindings map. Values
// "true"/"false" bind as booleans so they work directly in conditions.
func parseBindings(pairs []string) (map[string]any, error) {
	bindings := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid --var %q: expected key=value", pair)
		}
		switch value {
		case "true":
			bindings[key] = true
		case "false":
			bindings[key] = false
		default:
			bindings[key] = value
		}
	}
	return bindings, nil
}
