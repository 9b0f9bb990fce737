package eval

import (
	"fmt"
	"path"

	"github.com/GoReal-AI/echo-pdk-sub001/pkg/epl/ast"
	eplerrors "github.com/GoReal-AI/echo-pdk-sub001/pkg/epl/errors"
)

// expander splices imported and included templates into a document before
// resolution begins, so their context paths join the batched pre-scan.
type expander struct {
	loader *Loader

	// active tracks templates on the current expansion path for cycle
	// detection; keys are cleaned template paths.
	active map[string]bool
	depth  int
}

// expand returns the document with every import and include directive
// replaced by the loaded template's content. Include splices the whole
// template inline; import contributes only its named sections. The input
// document is not modified.
func (e *expander) expand(doc *ast.Document) (*ast.Document, error) {
	nodes, err := e.expandNodes(doc.Nodes)
	if err != nil {
		return nil, err
	}
	return &ast.Document{Name: doc.Name, Nodes: nodes, Location: doc.Location}, nil
}

func (e *expander) expandNodes(nodes []ast.Node) ([]ast.Node, error) {
	out := make([]ast.Node, 0, len(nodes))
	for _, n := range nodes {
		switch node := n.(type) {
		case *ast.IncludeNode:
			spliced, err := e.load(node.Path, node.Loc(), false)
			if err != nil {
				return nil, err
			}
			out = append(out, spliced...)

		case *ast.ImportNode:
			spliced, err := e.load(node.Path, node.Loc(), true)
			if err != nil {
				return nil, err
			}
			out = append(out, spliced...)

		case *ast.ConditionalNode:
			then, err := e.expandNodes(node.Then)
			if err != nil {
				return nil, err
			}
			els, err := e.expandNodes(node.Else)
			if err != nil {
				return nil, err
			}
			out = append(out, &ast.ConditionalNode{
				Condition: node.Condition,
				Then:      then,
				Else:      els,
				Location:  node.Location,
			})

		case *ast.SectionNode:
			children, err := e.expandNodes(node.Children)
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

// load loads one referenced template and returns the nodes to splice. When
// sectionsOnly is set (import), only named sections are contributed; an
// include splices everything.
func (e *expander) load(templatePath string, loc ast.Location, sectionsOnly bool) ([]ast.Node, error) {
	if e.loader == nil {
		return nil, &eplerrors.Error{
			Type:       eplerrors.ErrorTypeIO,
			Message:    fmt.Sprintf("cannot load %q: no template loader configured", templatePath),
			Location:   loc,
			Suggestion: "configure templates.root or evaluate documents without import/include",
		}
	}

	key := path.Clean(templatePath)
	if e.active[key] {
		return nil, &eplerrors.Error{
			Type:     eplerrors.ErrorTypeIO,
			Message:  fmt.Sprintf("import cycle detected at %q", templatePath),
			Location: loc,
		}
	}
	if e.depth >= e.loader.MaxDepth() {
		return nil, &eplerrors.Error{
			Type:     eplerrors.ErrorTypeIO,
			Message:  fmt.Sprintf("import nesting exceeds %d levels at %q", e.loader.MaxDepth(), templatePath),
			Location: loc,
		}
	}

	doc, err := e.loader.Load(templatePath, loc)
	if err != nil {
		return nil, err
	}

	e.active[key] = true
	e.depth++
	nodes, err := e.expandNodes(doc.Nodes)
	e.depth--
	delete(e.active, key)
	if err != nil {
		return nil, err
	}

	if !sectionsOnly {
		return nodes, nil
	}

	var sections []ast.Node
	for _, n := range nodes {
		if _, ok := n.(*ast.SectionNode); ok {
			sections = append(sections, n)
		}
	}
	return sections, nil
}
