// Package render linearizes an evaluated EPL document into the final prompt
// string. Rendering is a pure function of the pruned tree, the bindings, and
// the options: no I/O and no suspension.
package render

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/GoReal-AI/echo-pdk-sub001/pkg/config"
	"github.com/GoReal-AI/echo-pdk-sub001/pkg/epl/ast"
	eplerrors "github.com/GoReal-AI/echo-pdk-sub001/pkg/epl/errors"
)

// Missing-variable policies.
const (
	MissingError = "error" // a missing binding fails the render
	MissingEmpty = "empty" // a missing binding renders as the empty string
	MissingKeep  = "keep"  // a missing binding renders as its {{name}} form
)

// Options controls output normalization and the missing-variable policy.
type Options struct {
	// Trim removes leading and trailing whitespace from the final string.
	Trim bool

	// CollapseNewlines reduces runs of three or more newlines to exactly
	// two. Directive removal routinely leaves extra blank lines behind;
	// this folds them into a single blank line.
	CollapseNewlines bool

	// MissingVariables is one of MissingError, MissingEmpty, MissingKeep.
	// Empty defaults to MissingError.
	MissingVariables string
}

// FromConfig maps the render configuration section to Options.
func FromConfig(cfg config.RenderConfig) Options {
	return Options{
		Trim:             cfg.Trim,
		CollapseNewlines: cfg.CollapseNewlines,
		MissingVariables: cfg.MissingVariables,
	}
}

var newlineRuns = regexp.MustCompile(`\n{3,}`)

// Render walks the evaluated tree in document order and produces the final
// string. The document must already be evaluated: conditionals, imports, and
// includes remaining in the tree are render errors, not silently skipped.
func Render(doc *ast.Document, bindings map[string]any, opts Options) (string, error) {
	policy := opts.MissingVariables
	if policy == "" {
		policy = MissingError
	}

	var sb strings.Builder
	if err := renderNodes(&sb, doc.Nodes, bindings, policy); err != nil {
		return "", err
	}

	out := sb.String()
	if opts.CollapseNewlines {
		out = newlineRuns.ReplaceAllString(out, "\n\n")
	}
	if opts.Trim {
		out = strings.TrimSpace(out)
	}
	return out, nil
}

func renderNodes(sb *strings.Builder, nodes []ast.Node, bindings map[string]any, policy string) error {
	for _, n := range nodes {
		switch node := n.(type) {
		case *ast.TextNode:
			sb.WriteString(node.Content)

		case *ast.VariableNode:
			value, ok := bindings[node.Name]
			if !ok {
				switch policy {
				case MissingEmpty:
					continue
				case MissingKeep:
					sb.WriteString("{{" + node.Name + "}}")
					continue
				default:
					return &eplerrors.Error{
						Type:       eplerrors.ErrorTypeRender,
						Message:    fmt.Sprintf("no binding for variable %q", node.Name),
						Location:   node.Location,
						Suggestion: fmt.Sprintf("bind %q or set render.missing_variables to \"empty\"", node.Name),
					}
				}
			}
			sb.WriteString(ast.FormatValue(value, node.Hint))

		case *ast.SectionNode:
			if err := renderNodes(sb, node.Children, bindings, policy); err != nil {
				return err
			}

		default:
			return &eplerrors.Error{
				Type:     eplerrors.ErrorTypeRender,
				Message:  fmt.Sprintf("cannot render unevaluated %s node", node.Kind()),
				Location: node.Loc(),
			}
		}
	}
	return nil
}
