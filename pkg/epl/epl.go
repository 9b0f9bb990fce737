package epl

import (
	"github.com/GoReal-AI/echo-pdk-sub001/pkg/epl/ast"
	"github.com/GoReal-AI/echo-pdk-sub001/pkg/epl/parser"
)

// Parse parses an EPL document from disk and returns its AST, or the aggregated
// parse errors.
func Parse(path string) (*ast.Document, error) {
	result := parser.ParseFile(path)
	if !result.Success() {
		return nil, result.Errors
	}
	return result.Document, nil
}

// ParseString parses in-memory EPL source. The name is used in diagnostics.
func ParseString(source, name string) (*ast.Document, error) {
	result := parser.ParseString(source, name)
	if !result.Success() {
		return nil, result.Errors
	}
	return result.Document, nil
}
