package contextref

import (
	"github.com/GoReal-AI/echo-pdk-sub001/pkg/epl/ast"
)

// CollectPaths walks the full document tree — both branches of every
// conditional, whether or not they will be selected — and returns every
// distinct context path it can discover, in first-occurrence order. The scan
// covers context(...) presence predicates and any bound variable value that is
// shaped like a reference.
//
// This is the pre-scan for batched resolution: one call here, one
// ResolveBatch, and evaluation proceeds with everything already in hand.
func CollectPaths(doc *ast.Document, bindings map[string]any) []string {
	seen := make(map[string]bool)
	var paths []string

	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}

	_ = ast.Walk(doc, ast.VisitorFunc(func(n ast.Node) error {
		switch node := n.(type) {
		case *ast.ConditionalNode:
			_ = ast.WalkConditions(node.Condition, func(expr ast.ConditionExpr) error {
				switch cond := expr.(type) {
				case *ast.ContextPresenceCond:
					add(cond.Path)
				case *ast.JudgeCond:
					if cond.ValueIsRef {
						if v, ok := bindings[cond.Value]; ok {
							if s, ok := v.(string); ok && IsReference(s) {
								add(s)
							}
						}
					} else if IsReference(cond.Value) {
						add(cond.Value)
					}
				}
				return nil
			})
		case *ast.VariableNode:
			if v, ok := bindings[node.Name]; ok {
				if s, ok := v.(string); ok && IsReference(s) {
					add(s)
				}
			}
		}
		return nil
	}))

	return paths
}
