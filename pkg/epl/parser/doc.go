// Package parser parses EPL source into Abstract Syntax Trees.
//
// The parser is a recursive-descent parser over the token sequence produced by
// the lexer. Literal runs become TextNodes, {{name}} tags become VariableNodes,
// and #-prefixed directive tags are parsed into conditional, section, import,
// and include nodes.
//
// # Error Recovery
//
// Syntax errors are collected into an ErrorList rather than aborting the parse,
// so one pass reports as many diagnostics as possible. A block directive missing
// its close ({{#endif}}, {{#endsection}}) is a fatal structural error for that
// directive only: its subtree is dropped, an error is recorded, and parsing
// resumes after the nearest plausible boundary.
//
// # Condition Expressions
//
// Conditions use conventional precedence (NOT > AND > OR) with both symbolic
// (!, &&, ||) and keyword (not, and, or) operators, plus two special predicate
// forms:
//
//	{{#if judge(bio, "Is this person an engineer?")}}
//	{{#if context("plp://snippets/onboarding")}}
//
// judge(...) is an AI-judged predicate resolved through the judge capability
// during evaluation; context(...) tests presence of a pre-resolved context
// reference.
package parser
