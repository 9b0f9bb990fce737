package ast

// Clone returns a deep, structure-preserving copy of the tree rooted at node.
// The evaluator clones surviving subtrees instead of mutating the parser's tree,
// so a parsed document can be evaluated repeatedly against different bindings.
func Clone(node Node) Node {
	switch n := node.(type) {
	case nil:
		return nil
	case *Document:
		return &Document{Name: n.Name, Nodes: CloneAll(n.Nodes), Location: n.Location}
	case *TextNode:
		c := *n
		return &c
	case *VariableNode:
		c := *n
		return &c
	case *ConditionalNode:
		return &ConditionalNode{
			Condition: CloneCondition(n.Condition),
			Then:      CloneAll(n.Then),
			Else:      CloneAll(n.Else),
			Location:  n.Location,
		}
	case *SectionNode:
		return &SectionNode{Name: n.Name, Children: CloneAll(n.Children), Location: n.Location}
	case *ImportNode:
		c := *n
		return &c
	case *IncludeNode:
		c := *n
		return &c
	}
	return nil
}

// CloneAll deep-copies a node sequence. A nil slice stays nil.
func CloneAll(nodes []Node) []Node {
	if nodes == nil {
		return nil
	}
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		out[i] = Clone(n)
	}
	return out
}

// CloneCondition deep-copies a condition expression tree.
func CloneCondition(expr ConditionExpr) ConditionExpr {
	switch c := expr.(type) {
	case nil:
		return nil
	case *LiteralCond:
		cp := *c
		return &cp
	case *VariableRefCond:
		cp := *c
		return &cp
	case *NotCond:
		return &NotCond{Expr: CloneCondition(c.Expr), Location: c.Location}
	case *AndCond:
		return &AndCond{Left: CloneCondition(c.Left), Right: CloneCondition(c.Right), Location: c.Location}
	case *OrCond:
		return &OrCond{Left: CloneCondition(c.Left), Right: CloneCondition(c.Right), Location: c.Location}
	case *JudgeCond:
		cp := *c
		return &cp
	case *ContextPresenceCond:
		cp := *c
		return &cp
	}
	return nil
}
