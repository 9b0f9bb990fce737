package lexer

import (
	"fmt"

	"github.com/GoReal-AI/echo-pdk-sub001/pkg/epl/ast"
)

// TokenKind identifies the lexical class of a token.
type TokenKind string

const (
	TokenText      TokenKind = "text"      // Literal template text
	TokenOpen      TokenKind = "open"      // {{
	TokenClose     TokenKind = "close"     // }}
	TokenDirective TokenKind = "directive" // #if, #else, #endif, #section, ...
	TokenIdent     TokenKind = "ident"     // variable names, keywords (and/or/not/true/false), judge, context
	TokenString    TokenKind = "string"    // "double-quoted literal"
	TokenColon     TokenKind = "colon"     // : (type hint separator)
	TokenLParen    TokenKind = "lparen"    // (
	TokenRParen    TokenKind = "rparen"    // )
	TokenComma     TokenKind = "comma"     // ,
	TokenNot       TokenKind = "not"       // !
	TokenAnd       TokenKind = "and"       // &&
	TokenOr        TokenKind = "or"        // ||
	TokenError     TokenKind = "error"     // lexical error; Lexeme holds the message
	TokenEOF       TokenKind = "eof"
)

// Token is a single located lexical unit. Tokens are produced once by Tokenize,
// are immutable, and are owned solely by the parser during AST construction.
type Token struct {
	Kind     TokenKind
	Lexeme   string
	Location ast.Location
}

// String returns a compact debug representation of the token.
func (t Token) String() string {
	switch t.Kind {
	case TokenText, TokenIdent, TokenString, TokenDirective, TokenError:
		return fmt.Sprintf("%s(%q)@%s", t.Kind, t.Lexeme, t.Location)
	default:
		return fmt.Sprintf("%s@%s", t.Kind, t.Location)
	}
}
