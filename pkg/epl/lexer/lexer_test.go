package lexer

import (
	"testing"
)

func kinds(tokens []Token) []TokenKind {
	out := make([]TokenKind, len(tokens))
	for i, t := range tokens {
		out[i] = t.Kind
	}
	return out
}

func assertKinds(t *testing.T, tokens []Token, want []TokenKind) {
	t.Helper()
	got := kinds(tokens)
	if len(got) != len(want) {
		t.Fatalf("token kinds = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d = %s, want %s (full: %v)", i, got[i], want[i], got)
		}
	}
}

func TestTokenizePlainText(t *testing.T) {
	tokens := Tokenize("You are a helpful assistant.", "test.epl")
	assertKinds(t, tokens, []TokenKind{TokenText, TokenEOF})
	if tokens[0].Lexeme != "You are a helpful assistant." {
		t.Errorf("text lexeme = %q", tokens[0].Lexeme)
	}
}

func TestTokenizeVariableTag(t *testing.T) {
	tokens := Tokenize("Hi {{name}}!", "test.epl")
	assertKinds(t, tokens, []TokenKind{
		TokenText, TokenOpen, TokenIdent, TokenClose, TokenText, TokenEOF,
	})
	if tokens[2].Lexeme != "name" {
		t.Errorf("ident lexeme = %q, want %q", tokens[2].Lexeme, "name")
	}
}

func TestTokenizeTypeHint(t *testing.T) {
	tokens := Tokenize("{{count:number}}", "test.epl")
	assertKinds(t, tokens, []TokenKind{
		TokenOpen, TokenIdent, TokenColon, TokenIdent, TokenClose, TokenEOF,
	})
	if tokens[1].Lexeme != "count" || tokens[3].Lexeme != "number" {
		t.Errorf("lexemes = %q, %q", tokens[1].Lexeme, tokens[3].Lexeme)
	}
}

func TestTokenizeDirectiveWithCondition(t *testing.T) {
	tokens := Tokenize(`{{#if judge(bio, "Is this an engineer?")}}`, "test.epl")
	assertKinds(t, tokens, []TokenKind{
		TokenOpen, TokenDirective, TokenIdent, TokenLParen, TokenIdent,
		TokenComma, TokenString, TokenRParen, TokenClose, TokenEOF,
	})
	if tokens[1].Lexeme != "if" {
		t.Errorf("directive lexeme = %q, want %q", tokens[1].Lexeme, "if")
	}
	if tokens[6].Lexeme != "Is this an engineer?" {
		t.Errorf("string lexeme = %q", tokens[6].Lexeme)
	}
}

func TestTokenizeOperators(t *testing.T) {
	tokens := Tokenize("{{#if !a && b || c}}", "test.epl")
	assertKinds(t, tokens, []TokenKind{
		TokenOpen, TokenDirective, TokenNot, TokenIdent, TokenAnd,
		TokenIdent, TokenOr, TokenIdent, TokenClose, TokenEOF,
	})
}

func TestTokenizeStringEscapes(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"escaped quote", `{{#include "a\"b"}}`, `a"b`},
		{"newline escape", `{{#include "a\nb"}}`, "a\nb"},
		{"tab escape", `{{#include "a\tb"}}`, "a\tb"},
		{"escaped backslash", `{{#include "a\\b"}}`, `a\b`},
		{"unknown escape kept verbatim", `{{#include "a\qb"}}`, `a\qb`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := Tokenize(tt.source, "test.epl")
			var str *Token
			for i := range tokens {
				if tokens[i].Kind == TokenString {
					str = &tokens[i]
					break
				}
			}
			if str == nil {
				t.Fatalf("no string token in %v", tokens)
			}
			if str.Lexeme != tt.want {
				t.Errorf("string lexeme = %q, want %q", str.Lexeme, tt.want)
			}
		})
	}
}

func TestTokenizeUnterminatedTag(t *testing.T) {
	tokens := Tokenize("before {{name", "test.epl")

	var errTok *Token
	for i := range tokens {
		if tokens[i].Kind == TokenError {
			errTok = &tokens[i]
			break
		}
	}
	if errTok == nil {
		t.Fatalf("expected an error token, got %v", tokens)
	}
	// The error is located at the opening delimiter so the diagnostic points
	// at the tag the author needs to fix.
	if errTok.Location.Column != 8 {
		t.Errorf("error column = %d, want 8", errTok.Location.Column)
	}
}

// One broken tag yields one diagnostic; the tag after it still lexes cleanly.
func TestTokenizeRecoversAtNextTag(t *testing.T) {
	tokens := Tokenize("{{broken\n{{name}}", "test.epl")

	errCount := 0
	sawName := false
	for _, tok := range tokens {
		if tok.Kind == TokenError {
			errCount++
		}
		if tok.Kind == TokenIdent && tok.Lexeme == "name" {
			sawName = true
		}
	}
	if errCount != 1 {
		t.Errorf("error count = %d, want 1 (tokens: %v)", errCount, tokens)
	}
	if !sawName {
		t.Errorf("second tag not lexed: %v", tokens)
	}
}

func TestTokenizeUnterminatedString(t *testing.T) {
	tokens := Tokenize("{{#include \"broken\n}}", "test.epl")

	found := false
	for _, tok := range tokens {
		if tok.Kind == TokenError && tok.Lexeme == "unterminated string literal" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected unterminated string error, got %v", tokens)
	}
}

func TestTokenizeTracksLinesAndColumns(t *testing.T) {
	tokens := Tokenize("line one\nline two {{name}}", "test.epl")

	var ident *Token
	for i := range tokens {
		if tokens[i].Kind == TokenIdent {
			ident = &tokens[i]
			break
		}
	}
	if ident == nil {
		t.Fatal("no ident token")
	}
	if ident.Location.Line != 2 {
		t.Errorf("ident line = %d, want 2", ident.Location.Line)
	}
	if ident.Location.Column != 12 {
		t.Errorf("ident column = %d, want 12", ident.Location.Column)
	}
	if ident.Location.File != "test.epl" {
		t.Errorf("ident file = %q", ident.Location.File)
	}
}

func TestTokenizeAlwaysEndsWithEOF(t *testing.T) {
	for _, source := range []string{"", "text", "{{", "{{name}}", "{{#if"} {
		tokens := Tokenize(source, "test.epl")
		if len(tokens) == 0 || tokens[len(tokens)-1].Kind != TokenEOF {
			t.Errorf("Tokenize(%q) does not end with EOF: %v", source, tokens)
		}
	}
}

func TestTokenizeDottedAndDashedIdents(t *testing.T) {
	tokens := Tokenize("{{user.profile.name}}{{#section style-guide}}", "test.epl")

	var idents []string
	for _, tok := range tokens {
		if tok.Kind == TokenIdent {
			idents = append(idents, tok.Lexeme)
		}
	}
	if len(idents) != 2 || idents[0] != "user.profile.name" || idents[1] != "style-guide" {
		t.Errorf("idents = %v", idents)
	}
}

func TestTokenizeSingleAmpersandIsError(t *testing.T) {
	tokens := Tokenize("{{#if a & b}}", "test.epl")

	found := false
	for _, tok := range tokens {
		if tok.Kind == TokenError && tok.Lexeme == "expected '&&'" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected error token for single '&', got %v", tokens)
	}
}
