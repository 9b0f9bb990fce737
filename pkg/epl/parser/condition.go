package parser

import (
	"github.com/GoReal-AI/echo-pdk-sub001/pkg/epl/ast"
	"github.com/GoReal-AI/echo-pdk-sub001/pkg/epl/lexer"
)

// Condition keyword constants. Keywords are lexed as plain identifiers and
// classified here.
const (
	kwTrue    = "true"
	kwFalse   = "false"
	kwNot     = "not"
	kwAnd     = "and"
	kwOr      = "or"
	kwJudge   = "judge"
	kwContext = "context"
)

// parseCondition parses a condition expression with conventional precedence:
// NOT binds tighter than AND, which binds tighter than OR. Returns nil after
// recording an error when the expression is malformed.
func (p *Parser) parseCondition() ast.ConditionExpr {
	return p.parseOr()
}

func (p *Parser) parseOr() ast.ConditionExpr {
	left := p.parseAnd()
	if left == nil {
		return nil
	}

	for p.current().Kind == lexer.TokenOr || p.currentKeyword(kwOr) {
		loc := p.current().Location
		p.pos++
		right := p.parseAnd()
		if right == nil {
			return nil
		}
		left = &ast.OrCond{Left: left, Right: right, Location: loc}
	}
	return left
}

func (p *Parser) parseAnd() ast.ConditionExpr {
	left := p.parseUnary()
	if left == nil {
		return nil
	}

	for p.current().Kind == lexer.TokenAnd || p.currentKeyword(kwAnd) {
		loc := p.current().Location
		p.pos++
		right := p.parseUnary()
		if right == nil {
			return nil
		}
		left = &ast.AndCond{Left: left, Right: right, Location: loc}
	}
	return left
}

func (p *Parser) parseUnary() ast.ConditionExpr {
	tok := p.current()
	if tok.Kind == lexer.TokenNot || p.currentKeyword(kwNot) {
		p.pos++
		expr := p.parseUnary()
		if expr == nil {
			return nil
		}
		return &ast.NotCond{Expr: expr, Location: tok.Location}
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() ast.ConditionExpr {
	tok := p.current()

	switch tok.Kind {
	case lexer.TokenLParen:
		p.pos++
		expr := p.parseCondition()
		if expr == nil {
			return nil
		}
		if p.current().Kind != lexer.TokenRParen {
			p.errorf(p.current().Location, "expected ')' in condition")
			return nil
		}
		p.pos++
		return expr

	case lexer.TokenIdent:
		switch tok.Lexeme {
		case kwTrue:
			p.pos++
			return &ast.LiteralCond{Value: true, Location: tok.Location}
		case kwFalse:
			p.pos++
			return &ast.LiteralCond{Value: false, Location: tok.Location}
		case kwJudge:
			return p.parseJudge(tok)
		case kwContext:
			return p.parseContextPresence(tok)
		default:
			p.pos++
			return &ast.VariableRefCond{Name: tok.Lexeme, Location: tok.Location}
		}

	default:
		p.errorf(tok.Location, "expected condition expression, got %s", tok.Kind)
		return nil
	}
}

// parseJudge parses judge(value, "question") where value is a variable reference
// or a string literal.
func (p *Parser) parseJudge(kw lexer.Token) ast.ConditionExpr {
	p.pos++ // consume 'judge'
	if p.current().Kind != lexer.TokenLParen {
		p.errorf(p.current().Location, "expected '(' after judge")
		return nil
	}
	p.pos++

	valTok := p.current()
	var value string
	var valueIsRef bool
	switch valTok.Kind {
	case lexer.TokenIdent:
		value = valTok.Lexeme
		valueIsRef = true
	case lexer.TokenString:
		value = valTok.Lexeme
	default:
		p.errorf(valTok.Location, "expected judged value (variable or string) in judge(...)")
		return nil
	}
	p.pos++

	if p.current().Kind != lexer.TokenComma {
		p.errorf(p.current().Location, "expected ',' between value and question in judge(...)")
		return nil
	}
	p.pos++

	qTok := p.current()
	if qTok.Kind != lexer.TokenString {
		p.errorf(qTok.Location, "expected quoted question in judge(...)")
		return nil
	}
	p.pos++

	if p.current().Kind != lexer.TokenRParen {
		p.errorf(p.current().Location, "expected ')' to close judge(...)")
		return nil
	}
	p.pos++

	return &ast.JudgeCond{
		Value:      value,
		ValueIsRef: valueIsRef,
		Question:   qTok.Lexeme,
		Location:   kw.Location,
	}
}

// parseContextPresence parses context("plp://...").
func (p *Parser) parseContextPresence(kw lexer.Token) ast.ConditionExpr {
	p.pos++ // consume 'context'
	if p.current().Kind != lexer.TokenLParen {
		p.errorf(p.current().Location, "expected '(' after context")
		return nil
	}
	p.pos++

	pathTok := p.current()
	if pathTok.Kind != lexer.TokenString {
		p.errorf(pathTok.Location, "expected quoted context path in context(...)")
		return nil
	}
	p.pos++

	if p.current().Kind != lexer.TokenRParen {
		p.errorf(p.current().Location, "expected ')' to close context(...)")
		return nil
	}
	p.pos++

	return &ast.ContextPresenceCond{Path: pathTok.Lexeme, Location: kw.Location}
}

func (p *Parser) currentKeyword(kw string) bool {
	tok := p.current()
	return tok.Kind == lexer.TokenIdent && tok.Lexeme == kw
}
