package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexPunctuationAndKeywords(t *testing.T) {
	toks, err := Lex(`model Foo { bar?: string }`)
	require.NoError(t, err)

	var kinds []Kind
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
	}
	assert.Equal(t, []Kind{
		KwModel, Ident, LBrace, Ident, Question, Colon, Ident, RBrace, EOF,
	}, kinds)
}

func TestLexDecoratorWithArgs(t *testing.T) {
	toks, err := Lex(`@route("/users") @doc("hi")`)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(toks), 2)
	assert.Equal(t, Decorator, toks[0].Kind)
	assert.Equal(t, "route", toks[0].Text)
	assert.Equal(t, LParen, toks[1].Kind)
	assert.Equal(t, StringLit, toks[2].Kind)
	assert.Equal(t, "/users", toks[2].Text)
}

func TestLexStringEscapes(t *testing.T) {
	toks, err := Lex(`"line1\nline2\t\"quoted\""`)
	require.NoError(t, err)
	require.Equal(t, StringLit, toks[0].Kind)
	assert.Equal(t, "line1\nline2\t\"quoted\"", toks[0].Text)
}

func TestLexNumbers(t *testing.T) {
	toks, err := Lex(`42 3.14`)
	require.NoError(t, err)
	assert.Equal(t, IntLit, toks[0].Kind)
	assert.Equal(t, "42", toks[0].Text)
	assert.Equal(t, FloatLit, toks[1].Kind)
	assert.Equal(t, "3.14", toks[1].Text)
}

func TestLexSkipsComments(t *testing.T) {
	toks, err := Lex("// line comment\nmodel /* block */ Foo {}")
	require.NoError(t, err)
	var kinds []Kind
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
	}
	assert.Equal(t, []Kind{KwModel, Ident, LBrace, RBrace, EOF}, kinds)
}

func TestLexUnterminatedStringErrors(t *testing.T) {
	_, err := Lex(`"unterminated`)
	require.Error(t, err)
	var lexErr *Error
	require.ErrorAs(t, err, &lexErr)
}

func TestLexUnexpectedCharacterErrors(t *testing.T) {
	_, err := Lex(`model Foo { bar: string # }`)
	require.Error(t, err)
}

func TestLexDotDotDotVsDot(t *testing.T) {
	toks, err := Lex(`a.b ...c`)
	require.NoError(t, err)
	assert.Equal(t, []Kind{Ident, Dot, Ident, DotDotDot, Ident, EOF}, kindsOf(toks))
}

func kindsOf(toks []Token) []Kind {
	out := make([]Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}
