package ast

// NodeKind identifies the variant of an AST node.
type NodeKind string

const (
	KindDocument    NodeKind = "document"
	KindText        NodeKind = "text"
	KindVariable    NodeKind = "variable"
	KindConditional NodeKind = "conditional"
	KindSection     NodeKind = "section"
	KindImport      NodeKind = "import"
	KindInclude     NodeKind = "include"
)

// TypeHint is the advisory rendering hint attached to a variable interpolation
// ({{name:hint}}). It guides output formatting only; resolution never depends on it.
type TypeHint string

const (
	HintNone    TypeHint = ""
	HintText    TypeHint = "text"
	HintNumber  TypeHint = "number"
	HintBoolean TypeHint = "boolean"
)

// Node is implemented by every EPL AST node variant.
// Children are exclusively owned by their parent; the tree contains no
// back-references and no cycles.
type Node interface {
	Kind() NodeKind
	Loc() Location
}

// Document is the root of a parsed EPL template.
type Document struct {
	// Name is the source name the document was parsed from.
	Name string

	// Nodes is the top-level node sequence in document order.
	Nodes []Node

	Location Location
}

func (d *Document) Kind() NodeKind { return KindDocument }
func (d *Document) Loc() Location  { return d.Location }

// TextNode is a run of literal template text.
type TextNode struct {
	Content  string
	Location Location
}

func (n *TextNode) Kind() NodeKind { return KindText }
func (n *TextNode) Loc() Location  { return n.Location }

// VariableNode is a {{name}} or {{name:typeHint}} interpolation.
type VariableNode struct {
	Name     string
	Hint     TypeHint
	Location Location
}

func (n *VariableNode) Kind() NodeKind { return KindVariable }
func (n *VariableNode) Loc() Location  { return n.Location }

// ConditionalNode is a {{#if}}/{{#else}}/{{#endif}} block.
//
// Invariant: Condition is non-nil and Then is non-empty. An absent else branch is
// represented by a nil Else slice and is semantically an empty sequence.
type ConditionalNode struct {
	Condition ConditionExpr
	Then      []Node
	Else      []Node
	Location  Location
}

func (n *ConditionalNode) Kind() NodeKind { return KindConditional }
func (n *ConditionalNode) Loc() Location  { return n.Location }

// SectionNode is a named {{#section}}/{{#endsection}} block.
type SectionNode struct {
	Name     string
	Children []Node
	Location Location
}

func (n *SectionNode) Kind() NodeKind { return KindSection }
func (n *SectionNode) Loc() Location  { return n.Location }

// ImportNode is a {{#import "path"}} directive. The referenced template is loaded
// during evaluation and contributes its named sections.
type ImportNode struct {
	Path     string
	Location Location
}

func (n *ImportNode) Kind() NodeKind { return KindImport }
func (n *ImportNode) Loc() Location  { return n.Location }

// IncludeNode is a {{#include "path"}} directive. The referenced template is loaded
// during evaluation and spliced inline.
type IncludeNode struct {
	Path     string
	Location Location
}

func (n *IncludeNode) Kind() NodeKind { return KindInclude }
func (n *IncludeNode) Loc() Location  { return n.Location }
