package ast

// Visitor receives every node during a pre-order traversal.
// Returning a non-nil error stops the walk and propagates the error.
type Visitor interface {
	Visit(Node) error
}

// VisitorFunc adapts a plain function to the Visitor interface.
type VisitorFunc func(Node) error

// Visit implements Visitor.
func (f VisitorFunc) Visit(n Node) error { return f(n) }

// Walk traverses the tree rooted at node in pre-order, document order, calling the
// visitor for each node. Both branches of a conditional are visited; Walk is a
// static traversal and knows nothing about branch selection.
func Walk(node Node, visitor Visitor) error {
	if node == nil {
		return nil
	}
	if err := visitor.Visit(node); err != nil {
		return err
	}

	switch n := node.(type) {
	case *Document:
		return WalkAll(n.Nodes, visitor)
	case *ConditionalNode:
		if err := WalkAll(n.Then, visitor); err != nil {
			return err
		}
		return WalkAll(n.Else, visitor)
	case *SectionNode:
		return WalkAll(n.Children, visitor)
	}
	return nil
}

// WalkAll traverses a node sequence in order.
func WalkAll(nodes []Node, visitor Visitor) error {
	for _, n := range nodes {
		if err := Walk(n, visitor); err != nil {
			return err
		}
	}
	return nil
}

// WalkConditions traverses a condition expression tree in pre-order, calling fn for
// every expression node.
func WalkConditions(expr ConditionExpr, fn func(ConditionExpr) error) error {
	if expr == nil {
		return nil
	}
	if err := fn(expr); err != nil {
		return err
	}

	switch c := expr.(type) {
	case *NotCond:
		return WalkConditions(c.Expr, fn)
	case *AndCond:
		if err := WalkConditions(c.Left, fn); err != nil {
			return err
		}
		return WalkConditions(c.Right, fn)
	case *OrCond:
		if err := WalkConditions(c.Left, fn); err != nil {
			return err
		}
		return WalkConditions(c.Right, fn)
	}
	return nil
}

// CollectJudgeConditions gathers every AI-judged predicate reachable from node,
// independent of whether its enclosing branch will ultimately be taken.
// The result is in document order.
func CollectJudgeConditions(node Node) []*JudgeCond {
	var out []*JudgeCond
	_ = Walk(node, VisitorFunc(func(n Node) error {
		cond, ok := n.(*ConditionalNode)
		if !ok {
			return nil
		}
		return WalkConditions(cond.Condition, func(e ConditionExpr) error {
			if j, ok := e.(*JudgeCond); ok {
				out = append(out, j)
			}
			return nil
		})
	}))
	return out
}

// CollectVariables gathers the distinct variable names interpolated anywhere in the
// tree, in first-occurrence document order.
func CollectVariables(node Node) []string {
	seen := make(map[string]struct{})
	var out []string
	_ = Walk(node, VisitorFunc(func(n Node) error {
		if v, ok := n.(*VariableNode); ok {
			if _, dup := seen[v.Name]; !dup {
				seen[v.Name] = struct{}{}
				out = append(out, v.Name)
			}
		}
		return nil
	}))
	return out
}
