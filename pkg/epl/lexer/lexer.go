package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/GoReal-AI/echo-pdk-sub001/pkg/epl/ast"
)

const (
	openDelim  = "{{"
	closeDelim = "}}"
)

// Lexer converts EPL source text into a finite token sequence. Documents are
// bounded prompt templates, so the whole sequence is materialized before parsing
// begins; there is no streaming mode.
type Lexer struct {
	source string
	file   string

	pos    int // byte offset of the next rune
	line   int // 1-based
	column int // 1-based

	tokens []Token
}

// New creates a lexer for the given source. The file name is attached to token
// locations for diagnostics and may be a synthetic name for in-memory sources.
func New(source, file string) *Lexer {
	return &Lexer{
		source: source,
		file:   file,
		line:   1,
		column: 1,
	}
}

// Tokenize scans the whole source and returns the token sequence, always
// terminated by an EOF token. Lexical problems (an unterminated {{ tag, an
// unterminated string literal) produce error tokens rather than failing the scan,
// so the parser can still report a location-accurate diagnostic.
func Tokenize(source, file string) []Token {
	return New(source, file).Run()
}

// Run performs the scan. It must be called at most once per Lexer.
func (l *Lexer) Run() []Token {
	for {
		if l.eof() {
			break
		}
		if strings.HasPrefix(l.rest(), openDelim) {
			l.lexTag()
			continue
		}
		l.lexText()
	}
	l.emit(TokenEOF, "", l.here())
	return l.tokens
}

// lexText consumes literal text up to the next open delimiter or EOF.
func (l *Lexer) lexText() {
	start := l.here()
	var sb strings.Builder

	for !l.eof() && !strings.HasPrefix(l.rest(), openDelim) {
		sb.WriteRune(l.next())
	}

	if sb.Len() > 0 {
		l.emit(TokenText, sb.String(), start)
	}
}

// lexTag consumes a {{ ... }} tag, emitting the open delimiter, the interior
// tokens, and the close delimiter. Reaching EOF before }} emits an error token
// located at the opening delimiter.
func (l *Lexer) lexTag() {
	open := l.here()
	l.advanceBy(len(openDelim))
	l.emit(TokenOpen, openDelim, open)

	for {
		l.skipSpace()

		if l.eof() {
			l.emit(TokenError, "unterminated directive or variable tag", open)
			return
		}
		// A new open delimiter means the current tag was never closed. Leave it
		// for the next scan so one broken tag costs one diagnostic, not many.
		if strings.HasPrefix(l.rest(), openDelim) {
			l.emit(TokenError, "unterminated directive or variable tag", open)
			return
		}
		if strings.HasPrefix(l.rest(), closeDelim) {
			close := l.here()
			l.advanceBy(len(closeDelim))
			l.emit(TokenClose, closeDelim, close)
			return
		}

		start := l.here()
		r := l.peek()
		switch {
		case r == '#':
			l.next()
			name := l.lexIdentRun()
			if name == "" {
				l.emit(TokenError, "expected directive name after '#'", start)
				continue
			}
			l.emit(TokenDirective, name, start)
		case r == '"':
			l.lexString(start)
		case r == ':':
			l.next()
			l.emit(TokenColon, ":", start)
		case r == '(':
			l.next()
			l.emit(TokenLParen, "(", start)
		case r == ')':
			l.next()
			l.emit(TokenRParen, ")", start)
		case r == ',':
			l.next()
			l.emit(TokenComma, ",", start)
		case r == '!':
			l.next()
			l.emit(TokenNot, "!", start)
		case r == '&':
			l.next()
			if l.peek() == '&' {
				l.next()
				l.emit(TokenAnd, "&&", start)
			} else {
				l.emit(TokenError, "expected '&&'", start)
			}
		case r == '|':
			l.next()
			if l.peek() == '|' {
				l.next()
				l.emit(TokenOr, "||", start)
			} else {
				l.emit(TokenError, "expected '||'", start)
			}
		case isIdentStart(r):
			name := l.lexIdentRun()
			l.emit(TokenIdent, name, start)
		default:
			l.next()
			l.emit(TokenError, "unexpected character "+string(r)+" inside tag", start)
		}
	}
}

// lexString consumes a double-quoted string literal with backslash escapes.
func (l *Lexer) lexString(start ast.Location) {
	l.next() // opening quote
	var sb strings.Builder

	for {
		if l.eof() {
			l.emit(TokenError, "unterminated string literal", start)
			return
		}
		r := l.next()
		switch r {
		case '"':
			l.emit(TokenString, sb.String(), start)
			return
		case '\\':
			if l.eof() {
				l.emit(TokenError, "unterminated string literal", start)
				return
			}
			esc := l.next()
			switch esc {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case '"', '\\':
				sb.WriteRune(esc)
			default:
				sb.WriteByte('\\')
				sb.WriteRune(esc)
			}
		case '\n':
			l.emit(TokenError, "unterminated string literal", start)
			return
		default:
			sb.WriteRune(r)
		}
	}
}

// lexIdentRun consumes an identifier run (letters, digits, underscore, dot, dash).
// Dots allow dotted binding names; dashes appear in section names.
func (l *Lexer) lexIdentRun() string {
	var sb strings.Builder
	for !l.eof() {
		r := l.peek()
		if !isIdentPart(r) {
			break
		}
		sb.WriteRune(l.next())
	}
	return sb.String()
}

func (l *Lexer) skipSpace() {
	for !l.eof() {
		r := l.peek()
		if r != ' ' && r != '\t' && r != '\r' && r != '\n' {
			return
		}
		l.next()
	}
}

func (l *Lexer) emit(kind TokenKind, lexeme string, loc ast.Location) {
	l.tokens = append(l.tokens, Token{Kind: kind, Lexeme: lexeme, Location: loc})
}

func (l *Lexer) here() ast.Location {
	return ast.Location{File: l.file, Offset: l.pos, Line: l.line, Column: l.column}
}

func (l *Lexer) eof() bool {
	return l.pos >= len(l.source)
}

func (l *Lexer) rest() string {
	return l.source[l.pos:]
}

func (l *Lexer) peek() rune {
	if l.eof() {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.source[l.pos:])
	return r
}

// next consumes one rune, tracking line and column.
func (l *Lexer) next() rune {
	r, width := utf8.DecodeRuneInString(l.source[l.pos:])
	l.pos += width
	if r == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return r
}

// advanceBy consumes n bytes of known-ASCII delimiter text.
func (l *Lexer) advanceBy(n int) {
	for i := 0; i < n; i++ {
		l.next()
	}
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || r == '.' || r == '-' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
