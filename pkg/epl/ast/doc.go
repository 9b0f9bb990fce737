// Package ast provides Abstract Syntax Tree (AST) definitions for the Echo Prompt
// Language (EPL).
//
// The AST represents the parsed structure of an EPL document, enabling evaluation,
// transformation, and rendering. All AST nodes preserve source location information
// for precise error reporting.
//
// # Core Types
//
// Document: Root AST node containing the node sequence of a parsed template
//
// Node: Interface implemented by every node variant (Text, Variable, Conditional,
// Section, Import, Include)
//
// ConditionExpr: Condition expression tree (literals, variable references, boolean
// combinators, AI-judged predicates, context-presence predicates)
//
// Location: Source location (file, line, column, byte offset)
//
// # Basic Usage
//
// Parse a document and traverse the AST:
//
//	result := parser.ParseString(source, "prompt.epl")
//	if result.Errors.HasErrors() {
//	    log.Fatal(result.Errors)
//	}
//
//	for _, node := range result.Document.Nodes {
//	    fmt.Println(node.Kind())
//	}
//
// Use the visitor for AST traversal:
//
//	ast.Walk(doc, ast.VisitorFunc(func(n ast.Node) error {
//	    if v, ok := n.(*ast.VariableNode); ok {
//	        fmt.Println("variable:", v.Name)
//	    }
//	    return nil
//	}))
//
// # Immutability
//
// AST nodes are treated as immutable after construction. The parser builds the tree
// once; the evaluator never mutates it and instead produces a new pruned tree via
// Clone, sharing untouched subtrees by reference. This allows the same parsed
// document to be evaluated repeatedly against different bindings without re-parsing.
package ast
