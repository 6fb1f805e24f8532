// Package lexer tokenizes TypeSpec-flavored IDL source.
package lexer

import (
	"strings"
	"unicode/utf8"

	"github.com/adi-family/tsp-gen/internal/ast"
)

type Kind int

const (
	EOF Kind = iota
	Ident
	Decorator // @name, possibly dotted (@Foo.bar)
	StringLit
	IntLit
	FloatLit

	// punctuation
	LBrace
	RBrace
	LParen
	RParen
	LBracket
	RBracket
	LAngle
	RAngle
	Colon
	Semicolon
	Comma
	Dot
	DotDotDot
	Question
	Equals
	Pipe
	Amp
	Star

	// keywords
	KwImport
	KwUsing
	KwNamespace
	KwModel
	KwEnum
	KwUnion
	KwScalar
	KwAlias
	KwInterface
	KwExtends
	KwOp
	KwTrue
	KwFalse
)

var keywords = map[string]Kind{
	"import":    KwImport,
	"using":     KwUsing,
	"namespace": KwNamespace,
	"model":     KwModel,
	"enum":      KwEnum,
	"union":     KwUnion,
	"scalar":    KwScalar,
	"alias":     KwAlias,
	"interface": KwInterface,
	"extends":   KwExtends,
	"op":        KwOp,
	"true":      KwTrue,
	"false":     KwFalse,
}

type Token struct {
	Kind Kind
	Text string // identifier/decorator name, unescaped string value, or raw numeral text
	Span ast.Span
}

// Error reports an unrecognized or malformed token.
type Error struct {
	Span    ast.Span
	Message string
}

func (e *Error) Error() string { return e.Message }

// Lex tokenizes src in full, stopping at the first lexical error.
func Lex(src string) ([]Token, error) {
	l := &lexer{src: src}
	var toks []Token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Kind == EOF {
			break
		}
	}
	return toks, nil
}

type lexer struct {
	src string
	pos int
}

func (l *lexer) next() (Token, error) {
	l.skipTrivia()
	start := l.pos
	if l.pos >= len(l.src) {
		return Token{Kind: EOF, Span: ast.Span{Start: start, End: start}}, nil
	}

	c := l.src[l.pos]

	switch {
	case c == '@':
		return l.lexDecorator()
	case c == '"':
		return l.lexString()
	case isDigit(c):
		return l.lexNumber()
	case isIdentStart(c):
		return l.lexIdentOrKeyword()
	}

	single := func(k Kind) (Token, error) {
		l.pos++
		return Token{Kind: k, Span: ast.Span{Start: start, End: l.pos}}, nil
	}

	switch c {
	case '{':
		return single(LBrace)
	case '}':
		return single(RBrace)
	case '(':
		return single(LParen)
	case ')':
		return single(RParen)
	case '[':
		return single(LBracket)
	case ']':
		return single(RBracket)
	case '<':
		return single(LAngle)
	case '>':
		return single(RAngle)
	case ':':
		return single(Colon)
	case ';':
		return single(Semicolon)
	case ',':
		return single(Comma)
	case '?':
		return single(Question)
	case '=':
		return single(Equals)
	case '|':
		return single(Pipe)
	case '&':
		return single(Amp)
	case '*':
		return single(Star)
	case '.':
		if strings.HasPrefix(l.src[l.pos:], "...") {
			l.pos += 3
			return Token{Kind: DotDotDot, Span: ast.Span{Start: start, End: l.pos}}, nil
		}
		return single(Dot)
	}

	r, size := utf8.DecodeRuneInString(l.src[l.pos:])
	return Token{}, &Error{
		Span:    ast.Span{Start: start, End: start + size},
		Message: "unexpected character " + string(r),
	}
}

func (l *lexer) skipTrivia() {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			l.pos++
		case c == '/' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '/':
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.pos++
			}
		case c == '/' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '*':
			l.pos += 2
			for l.pos < len(l.src) && !strings.HasPrefix(l.src[l.pos:], "*/") {
				l.pos++
			}
			if l.pos < len(l.src) {
				l.pos += 2
			}
		default:
			return
		}
	}
}

func (l *lexer) lexDecorator() (Token, error) {
	start := l.pos
	l.pos++ // consume '@'
	nameStart := l.pos
	if l.pos >= len(l.src) || !isIdentStart(l.src[l.pos]) {
		return Token{}, &Error{Span: ast.Span{Start: start, End: l.pos}, Message: "expected decorator name after '@'"}
	}
	for l.pos < len(l.src) && (isIdentPart(l.src[l.pos]) || l.src[l.pos] == '.') {
		l.pos++
	}
	name := l.src[nameStart:l.pos]
	return Token{Kind: Decorator, Text: name, Span: ast.Span{Start: start, End: l.pos}}, nil
}

func (l *lexer) lexString() (Token, error) {
	start := l.pos
	l.pos++ // opening quote
	var sb strings.Builder
	for {
		if l.pos >= len(l.src) {
			return Token{}, &Error{Span: ast.Span{Start: start, End: l.pos}, Message: "unterminated string literal"}
		}
		c := l.src[l.pos]
		if c == '"' {
			l.pos++
			break
		}
		if c == '\\' && l.pos+1 < len(l.src) {
			l.pos++
			esc := l.src[l.pos]
			switch esc {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case '"':
				sb.WriteByte('"')
			case '\\':
				sb.WriteByte('\\')
			default:
				sb.WriteByte(esc)
			}
			l.pos++
			continue
		}
		sb.WriteByte(c)
		l.pos++
	}
	return Token{Kind: StringLit, Text: sb.String(), Span: ast.Span{Start: start, End: l.pos}}, nil
}

func (l *lexer) lexNumber() (Token, error) {
	start := l.pos
	for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
		l.pos++
	}
	isFloat := false
	if l.pos < len(l.src) && l.src[l.pos] == '.' && l.pos+1 < len(l.src) && isDigit(l.src[l.pos+1]) {
		isFloat = true
		l.pos++
		for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			l.pos++
		}
	}
	text := l.src[start:l.pos]
	kind := IntLit
	if isFloat {
		kind = FloatLit
	}
	return Token{Kind: kind, Text: text, Span: ast.Span{Start: start, End: l.pos}}, nil
}

func (l *lexer) lexIdentOrKeyword() (Token, error) {
	start := l.pos
	for l.pos < len(l.src) && isIdentPart(l.src[l.pos]) {
		l.pos++
	}
	text := l.src[start:l.pos]
	if kw, ok := keywords[text]; ok {
		return Token{Kind: kw, Text: text, Span: ast.Span{Start: start, End: l.pos}}, nil
	}
	return Token{Kind: Ident, Text: text, Span: ast.Span{Start: start, End: l.pos}}, nil
}

func isDigit(c byte) bool      { return c >= '0' && c <= '9' }
func isIdentStart(c byte) bool { return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }
func isIdentPart(c byte) bool  { return isIdentStart(c) || isDigit(c) }
