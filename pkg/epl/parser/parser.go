package parser

import (
	"fmt"
	"os"

	"github.com/GoReal-AI/echo-pdk-sub001/pkg/epl/ast"
	eplerrors "github.com/GoReal-AI/echo-pdk-sub001/pkg/epl/errors"
	"github.com/GoReal-AI/echo-pdk-sub001/pkg/epl/lexer"
)

// Directive name constants.
const (
	dirIf         = "if"
	dirElse       = "else"
	dirEndif      = "endif"
	dirSection    = "section"
	dirEndsection = "endsection"
	dirImport     = "import"
	dirInclude    = "include"
)

// ParseResult is the outcome of parsing one EPL document. Errors are collected,
// not thrown, to support partial diagnostics: Document may be non-nil even when
// Errors is non-empty, containing every subtree that parsed cleanly.
type ParseResult struct {
	Document *ast.Document
	Errors   *eplerrors.ErrorList
}

// Success reports whether parsing completed without any errors.
func (r *ParseResult) Success() bool {
	return r.Errors == nil || !r.Errors.HasErrors()
}

// Parser parses EPL source into an AST via recursive descent over the token
// sequence produced by the lexer.
type Parser struct {
	tokens []lexer.Token
	pos    int
	file   string
	errors *eplerrors.ErrorList
}

// ParseString parses in-memory EPL source. The source name is attached to every
// location for diagnostics.
func ParseString(source, name string) *ParseResult {
	p := &Parser{
		tokens: lexer.Tokenize(source, name),
		file:   name,
		errors: eplerrors.NewErrorList(),
	}
	doc := p.parseDocument(name)
	return &ParseResult{Document: doc, Errors: p.errors}
}

// ParseFile reads and parses an EPL document from disk.
func ParseFile(path string) *ParseResult {
	data, err := os.ReadFile(path)
	if err != nil {
		el := eplerrors.NewErrorList()
		el.AddError(eplerrors.ErrorTypeIO,
			fmt.Sprintf("failed to read template: %v", err),
			ast.Location{File: path, Line: 1, Column: 1})
		return &ParseResult{Errors: el}
	}
	return ParseString(string(data), path)
}

// parseDocument parses the whole token stream into a Document.
func (p *Parser) parseDocument(name string) *ast.Document {
	nodes := p.parseNodes(nil)

	// Anything left over at this point is a stray close directive.
	for !p.atEOF() {
		tok := p.current()
		if tok.Kind == lexer.TokenOpen {
			next := p.peekAt(1)
			p.errorf(next.Location, "unexpected directive #%s without matching open", next.Lexeme)
			p.skipTag()
			continue
		}
		p.errorf(tok.Location, "unexpected token %s", tok.Kind)
		p.pos++
	}

	return &ast.Document{
		Name:     name,
		Nodes:    nodes,
		Location: ast.Location{File: name, Line: 1, Column: 1},
	}
}

// parseNodes parses a node sequence until EOF or until the next tag opens one of
// the stop directives (which is left unconsumed for the caller).
func (p *Parser) parseNodes(stop map[string]bool) []ast.Node {
	var nodes []ast.Node

	for !p.atEOF() {
		tok := p.current()

		switch tok.Kind {
		case lexer.TokenText:
			p.pos++
			nodes = append(nodes, &ast.TextNode{Content: tok.Lexeme, Location: tok.Location})

		case lexer.TokenError:
			p.pos++
			p.errors.AddError(eplerrors.ErrorTypeSyntax, tok.Lexeme, tok.Location)

		case lexer.TokenOpen:
			next := p.peekAt(1)
			if next.Kind == lexer.TokenDirective && stop[next.Lexeme] {
				return nodes
			}
			if node := p.parseTag(); node != nil {
				nodes = append(nodes, node)
			}

		default:
			p.pos++
			p.errorf(tok.Location, "unexpected token %s", tok.Kind)
		}
	}

	return nodes
}

// parseTag parses one {{ ... }} tag: either a variable interpolation or a
// directive. It returns nil when the tag failed to parse; an error has been
// recorded and the parser has advanced past the nearest plausible boundary.
func (p *Parser) parseTag() ast.Node {
	open := p.current()
	p.pos++ // consume {{

	tok := p.current()
	switch tok.Kind {
	case lexer.TokenIdent:
		return p.parseVariable(open)
	case lexer.TokenDirective:
		return p.parseDirective(open, tok)
	case lexer.TokenError:
		p.pos++
		p.errors.AddError(eplerrors.ErrorTypeSyntax, tok.Lexeme, tok.Location)
		p.skipToTagEnd()
		return nil
	default:
		p.errorf(tok.Location, "expected variable name or directive after '{{', got %s", tok.Kind)
		p.skipToTagEnd()
		return nil
	}
}

// parseVariable parses {{name}} or {{name:typeHint}}.
func (p *Parser) parseVariable(open lexer.Token) ast.Node {
	name := p.current()
	p.pos++

	hint := ast.HintNone
	if p.current().Kind == lexer.TokenColon {
		p.pos++
		hintTok := p.current()
		if hintTok.Kind != lexer.TokenIdent {
			p.errorf(hintTok.Location, "expected type hint after ':'")
			p.skipToTagEnd()
			return nil
		}
		p.pos++
		switch ast.TypeHint(hintTok.Lexeme) {
		case ast.HintText, ast.HintNumber, ast.HintBoolean:
			hint = ast.TypeHint(hintTok.Lexeme)
		default:
			p.errors.AddErrorWithSuggestion(eplerrors.ErrorTypeSyntax,
				fmt.Sprintf("unknown type hint %q", hintTok.Lexeme), hintTok.Location,
				"use one of: text, number, boolean")
		}
	}

	if !p.expectClose() {
		return nil
	}
	return &ast.VariableNode{Name: name.Lexeme, Hint: hint, Location: open.Location}
}

// parseDirective dispatches on the directive name. The open token has been
// consumed; the directive token has not.
func (p *Parser) parseDirective(open lexer.Token, dir lexer.Token) ast.Node {
	p.pos++ // consume directive token

	switch dir.Lexeme {
	case dirIf:
		return p.parseConditional(open)
	case dirSection:
		return p.parseSection(open)
	case dirImport, dirInclude:
		return p.parsePathDirective(open, dir.Lexeme)
	case dirElse, dirEndif, dirEndsection:
		p.errorf(dir.Location, "unexpected directive #%s without matching open", dir.Lexeme)
		p.skipToTagEnd()
		return nil
	default:
		p.errors.AddErrorWithSuggestion(eplerrors.ErrorTypeSyntax,
			fmt.Sprintf("unknown directive #%s", dir.Lexeme), dir.Location,
			"supported directives: #if, #else, #endif, #section, #endsection, #import, #include")
		p.skipToTagEnd()
		return nil
	}
}

// parseConditional parses {{#if cond}} ... [{{#else}} ...] {{#endif}}.
// A missing #endif is a fatal structural error for this directive: the subtree is
// dropped, an error recorded, and parsing resumes where the body scan stopped.
func (p *Parser) parseConditional(open lexer.Token) ast.Node {
	cond := p.parseCondition()
	if cond == nil {
		p.skipToTagEnd()
		cond = &ast.LiteralCond{Value: false, Location: open.Location}
	} else if !p.expectClose() {
		return nil
	}

	thenNodes := p.parseNodes(map[string]bool{dirElse: true, dirEndif: true})

	var elseNodes []ast.Node
	hasElse := false
	if p.nextDirectiveIs(dirElse) {
		hasElse = true
		p.pos += 2 // {{ #else
		if !p.expectClose() {
			return nil
		}
		elseNodes = p.parseNodes(map[string]bool{dirEndif: true})
	}

	if !p.nextDirectiveIs(dirEndif) {
		p.errors.AddErrorWithSuggestion(eplerrors.ErrorTypeSyntax,
			"missing {{#endif}} for conditional", open.Location,
			"close every {{#if}} block with {{#endif}}")
		return nil
	}
	p.pos += 2 // {{ #endif
	if !p.expectClose() {
		return nil
	}

	if len(thenNodes) == 0 {
		p.errors.AddErrorWithSuggestion(eplerrors.ErrorTypeSyntax,
			"conditional has an empty then-branch", open.Location,
			"negate the condition instead of leaving the then-branch empty")
		return nil
	}
	if !hasElse {
		elseNodes = nil
	}

	return &ast.ConditionalNode{
		Condition: cond,
		Then:      thenNodes,
		Else:      elseNodes,
		Location:  open.Location,
	}
}

// parseSection parses {{#section name}} ... {{#endsection}}.
func (p *Parser) parseSection(open lexer.Token) ast.Node {
	nameTok := p.current()
	if nameTok.Kind != lexer.TokenIdent {
		p.errorf(nameTok.Location, "expected section name after #section")
		p.skipToTagEnd()
		return nil
	}
	p.pos++
	if !p.expectClose() {
		return nil
	}

	children := p.parseNodes(map[string]bool{dirEndsection: true})

	if !p.nextDirectiveIs(dirEndsection) {
		p.errors.AddErrorWithSuggestion(eplerrors.ErrorTypeSyntax,
			fmt.Sprintf("missing {{#endsection}} for section %q", nameTok.Lexeme), open.Location,
			"close every {{#section}} block with {{#endsection}}")
		return nil
	}
	p.pos += 2
	if !p.expectClose() {
		return nil
	}

	return &ast.SectionNode{Name: nameTok.Lexeme, Children: children, Location: open.Location}
}

// parsePathDirective parses {{#import "path"}} / {{#include "path"}}.
func (p *Parser) parsePathDirective(open lexer.Token, name string) ast.Node {
	pathTok := p.current()
	if pathTok.Kind != lexer.TokenString {
		p.errorf(pathTok.Location, "expected quoted path after #%s", name)
		p.skipToTagEnd()
		return nil
	}
	p.pos++
	if !p.expectClose() {
		return nil
	}

	if name == dirImport {
		return &ast.ImportNode{Path: pathTok.Lexeme, Location: open.Location}
	}
	return &ast.IncludeNode{Path: pathTok.Lexeme, Location: open.Location}
}

// expectClose consumes the }} terminating the current tag, recording an error and
// recovering when it is absent.
func (p *Parser) expectClose() bool {
	tok := p.current()
	if tok.Kind == lexer.TokenClose {
		p.pos++
		return true
	}
	if tok.Kind == lexer.TokenError {
		p.errors.AddError(eplerrors.ErrorTypeSyntax, tok.Lexeme, tok.Location)
	} else {
		p.errorf(tok.Location, "expected '}}', got %s", tok.Kind)
	}
	p.skipToTagEnd()
	return false
}

// nextDirectiveIs reports whether the parser sits on {{#name ...}}.
func (p *Parser) nextDirectiveIs(name string) bool {
	return p.current().Kind == lexer.TokenOpen &&
		p.peekAt(1).Kind == lexer.TokenDirective &&
		p.peekAt(1).Lexeme == name
}

// skipTag consumes a whole {{ ... }} tag without interpreting it.
func (p *Parser) skipTag() {
	if p.current().Kind == lexer.TokenOpen {
		p.pos++
	}
	p.skipToTagEnd()
}

// skipToTagEnd advances past the nearest plausible boundary after a malformed
// tag: the next close delimiter, or the start of the next tag or text run,
// whichever comes first. This maximizes the diagnostics recovered per pass.
func (p *Parser) skipToTagEnd() {
	for !p.atEOF() {
		switch p.current().Kind {
		case lexer.TokenClose:
			p.pos++
			return
		case lexer.TokenOpen, lexer.TokenText:
			return
		default:
			p.pos++
		}
	}
}

func (p *Parser) current() lexer.Token {
	return p.peekAt(0)
}

func (p *Parser) peekAt(n int) lexer.Token {
	if p.pos+n >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // EOF token
	}
	return p.tokens[p.pos+n]
}

func (p *Parser) atEOF() bool {
	return p.current().Kind == lexer.TokenEOF
}

func (p *Parser) errorf(loc ast.Location, format string, args ...any) {
	p.errors.AddError(eplerrors.ErrorTypeSyntax, fmt.Sprintf(format, args...), loc)
}
