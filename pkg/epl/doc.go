// Package epl is the facade for the Echo Prompt Language compiler pipeline.
//
// EPL is a small templating and control-flow language for assembling LLM
// prompts. A document mixes literal text, variable interpolation, structural
// directives (imports, includes, named sections), and conditional branches whose
// predicates may require external evaluation: an AI-judged yes/no question over
// a value, or a presence check on remotely-stored context.
//
// The pipeline is lexer -> parser -> AST -> evaluator -> renderer:
//
//	doc, err := epl.Parse("prompt.epl")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	evaluated, err := eval.New(opts).Evaluate(ctx, doc, bindings)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	out, err := render.Render(evaluated, render.Options{CollapseNewlines: true})
//
// Subpackages hold the pieces: ast (node definitions, visitor, clone), lexer,
// parser, and errors (taxonomy + error aggregation). Evaluation and rendering
// live in pkg/eval and pkg/render; the judge and context-resolution capabilities
// they depend on live in pkg/judge and pkg/contextref.
package epl
