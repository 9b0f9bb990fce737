package eval

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/GoReal-AI/echo-pdk-sub001/pkg/config"
	"github.com/GoReal-AI/echo-pdk-sub001/pkg/epl/ast"
	eplerrors "github.com/GoReal-AI/echo-pdk-sub001/pkg/epl/errors"
	"github.com/GoReal-AI/echo-pdk-sub001/pkg/epl/parser"
)

// Loader loads templates referenced by import and include directives.
// Paths are resolved against a root directory and may not escape it.
type Loader struct {
	root     string
	maxDepth int
}

// NewLoader creates a loader rooted at cfg.Root.
func NewLoader(cfg config.TemplateConfig) *Loader {
	root := cfg.Root
	if root == "" {
		root = config.DefaultTemplateRoot
	}
	maxDepth := cfg.MaxDepth
	if maxDepth <= 0 {
		maxDepth = config.DefaultTemplateMaxDepth
	}
	return &Loader{root: root, maxDepth: maxDepth}
}

// MaxDepth returns the import/include nesting bound.
func (l *Loader) MaxDepth() int { return l.maxDepth }

// Load reads and parses the template at the given path, relative to the
// loader's root. A parse with errors fails the load; importing a broken
// template is never silently tolerated.
func (l *Loader) Load(path string, loc ast.Location) (*ast.Document, error) {
	resolved, err := l.resolve(path)
	if err != nil {
		return nil, &eplerrors.Error{
			Type:     eplerrors.ErrorTypeIO,
			Message:  err.Error(),
			Location: loc,
		}
	}

	source, err := os.ReadFile(resolved)
	if err != nil {
		return nil, &eplerrors.Error{
			Type:       eplerrors.ErrorTypeIO,
			Message:    fmt.Sprintf("cannot read template %q: %v", path, err),
			Location:   loc,
			Suggestion: fmt.Sprintf("check that %q exists under the template root", path),
		}
	}

	result := parser.ParseString(string(source), path)
	if result.Errors.HasErrors() {
		return nil, result.Errors
	}
	return result.Document, nil
}

// resolve maps a template-relative path to a filesystem path, rejecting
// escapes from the root.
func (l *Loader) resolve(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("empty template path")
	}
	if filepath.IsAbs(path) {
		return "", fmt.Errorf("template path %q must be relative to the template root", path)
	}

	cleaned := filepath.Clean(filepath.FromSlash(path))
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("template path %q escapes the template root", path)
	}

	return filepath.Join(l.root, cleaned), nil
}
