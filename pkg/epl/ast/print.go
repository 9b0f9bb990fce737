package ast

import (
	"fmt"
	"strings"
)

// PrettyPrint returns an indented debug serialization of the tree rooted at node.
// The output is for diagnostics only and is not a stable format.
func PrettyPrint(node Node) string {
	var sb strings.Builder
	printNode(&sb, node, 0)
	return sb.String()
}

func printNode(sb *strings.Builder, node Node, depth int) {
	indent := strings.Repeat("  ", depth)

	switch n := node.(type) {
	case nil:
		return
	case *Document:
		fmt.Fprintf(sb, "%sDocument(%s)\n", indent, n.Name)
		printNodes(sb, n.Nodes, depth+1)
	case *TextNode:
		fmt.Fprintf(sb, "%sText(%q)\n", indent, truncate(n.Content, 40))
	case *VariableNode:
		if n.Hint != HintNone {
			fmt.Fprintf(sb, "%sVariable(%s:%s)\n", indent, n.Name, n.Hint)
		} else {
			fmt.Fprintf(sb, "%sVariable(%s)\n", indent, n.Name)
		}
	case *ConditionalNode:
		fmt.Fprintf(sb, "%sConditional(%s)\n", indent, FormatCondition(n.Condition))
		fmt.Fprintf(sb, "%s  then:\n", indent)
		printNodes(sb, n.Then, depth+2)
		if n.Else != nil {
			fmt.Fprintf(sb, "%s  else:\n", indent)
			printNodes(sb, n.Else, depth+2)
		}
	case *SectionNode:
		fmt.Fprintf(sb, "%sSection(%s)\n", indent, n.Name)
		printNodes(sb, n.Children, depth+1)
	case *ImportNode:
		fmt.Fprintf(sb, "%sImport(%q)\n", indent, n.Path)
	case *IncludeNode:
		fmt.Fprintf(sb, "%sInclude(%q)\n", indent, n.Path)
	}
}

func printNodes(sb *strings.Builder, nodes []Node, depth int) {
	for _, n := range nodes {
		printNode(sb, n, depth)
	}
}

// FormatCondition renders a condition expression as EPL-like source text.
func FormatCondition(expr ConditionExpr) string {
	switch c := expr.(type) {
	case nil:
		return "<nil>"
	case *LiteralCond:
		return fmt.Sprintf("%t", c.Value)
	case *VariableRefCond:
		return c.Name
	case *NotCond:
		return "!" + FormatCondition(c.Expr)
	case *AndCond:
		return "(" + FormatCondition(c.Left) + " && " + FormatCondition(c.Right) + ")"
	case *OrCond:
		return "(" + FormatCondition(c.Left) + " || " + FormatCondition(c.Right) + ")"
	case *JudgeCond:
		if c.ValueIsRef {
			return fmt.Sprintf("judge(%s, %q)", c.Value, c.Question)
		}
		return fmt.Sprintf("judge(%q, %q)", c.Value, c.Question)
	case *ContextPresenceCond:
		return fmt.Sprintf("context(%q)", c.Path)
	}
	return "<unknown>"
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
