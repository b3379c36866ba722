package lexer

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kristofer/som/pkg/token"
)

func readAll(t *testing.T, source string) []Item {
	t.Helper()
	l := New(strings.NewReader(source))
	var items []Item
	for {
		item, err := l.ReadToken()
		if errors.Is(err, io.EOF) {
			return items
		}
		require.NoError(t, err)
		items = append(items, item)
	}
}

func assertToken(t *testing.T, l *Lexer, symbol token.Symbol, text string) {
	t.Helper()
	item, err := l.ReadToken()
	require.NoError(t, err)
	assert.Equal(t, symbol, item.Token.Symbol)
	assert.Equal(t, text, item.Token.Text)
}

func TestSkippingWhitespace(t *testing.T) {
	l := New(strings.NewReader("\n Hello \n Test"))
	assertToken(t, l, token.Identifier, "Hello")
	assertToken(t, l, token.Identifier, "Test")
}

func TestSkippingComments(t *testing.T) {
	l := New(strings.NewReader(`"Test" Hello "123" Test`))
	assertToken(t, l, token.Identifier, "Hello")
	assertToken(t, l, token.Identifier, "Test")
}

func TestUnterminatedCommentEndsAtEOF(t *testing.T) {
	l := New(strings.NewReader(`"unterminated`))
	_, err := l.ReadToken()
	assert.ErrorIs(t, err, io.EOF)
}

func TestIdentifier(t *testing.T) {
	l := New(strings.NewReader("Hello"))
	assertToken(t, l, token.Identifier, "Hello")
}

func TestKeyword(t *testing.T) {
	l := New(strings.NewReader("foo:"))
	assertToken(t, l, token.Keyword, "foo:")
}

func TestTwoKeywordSequence(t *testing.T) {
	l := New(strings.NewReader("foo:bar:"))
	assertToken(t, l, token.KeywordSequence, "foo:bar:")
}

func TestThreeKeywordSequence(t *testing.T) {
	l := New(strings.NewReader("foo:bar:baz:"))
	assertToken(t, l, token.KeywordSequence, "foo:bar:baz:")
}

func TestKeywordSequenceAllowsDigitsAfterFirstColon(t *testing.T) {
	l := New(strings.NewReader("at:put1:"))
	assertToken(t, l, token.KeywordSequence, "at:put1:")
}

func TestKeywordSequenceExcludesUnderscore(t *testing.T) {
	l := New(strings.NewReader("foo:ba_r:"))
	assertToken(t, l, token.KeywordSequence, "foo:ba")

	_, err := l.ReadToken()
	var illegal *IllegalCharError
	require.ErrorAs(t, err, &illegal)
	assert.Equal(t, '_', illegal.Char)
}

func TestPrimitiveIsReservedWord(t *testing.T) {
	l := New(strings.NewReader("primitive"))
	assertToken(t, l, token.Primitive, "")
}

func TestPrimitiveColonIsKeywordNotPrimitive(t *testing.T) {
	l := New(strings.NewReader("primitive:"))
	assertToken(t, l, token.Keyword, "primitive:")
}

func TestOneMinus(t *testing.T) {
	l := New(strings.NewReader("-"))
	assertToken(t, l, token.Minus, "")
}

func TestTwoMinus(t *testing.T) {
	l := New(strings.NewReader("--"))
	assertToken(t, l, token.Minus, "")
	assertToken(t, l, token.Minus, "")
}

func TestThreeMinus(t *testing.T) {
	l := New(strings.NewReader("---"))
	assertToken(t, l, token.Minus, "")
	assertToken(t, l, token.Minus, "")
	assertToken(t, l, token.Minus, "")
}

func TestFourMinusIsSeparator(t *testing.T) {
	l := New(strings.NewReader("----"))
	assertToken(t, l, token.Separator, "")
}

func TestLongSeparatorIsSingleToken(t *testing.T) {
	l := New(strings.NewReader("----------------\ntest"))
	assertToken(t, l, token.Separator, "")
	assertToken(t, l, token.Identifier, "test")
}

func TestMinusRunLocationsAreDistinct(t *testing.T) {
	items := readAll(t, "---")
	require.Len(t, items, 3)
	assert.Equal(t, token.Location{Line: 1, Column: 1}, items[0].Location)
	assert.Equal(t, token.Location{Line: 1, Column: 2}, items[1].Location)
	assert.Equal(t, token.Location{Line: 1, Column: 3}, items[2].Location)
}

func TestIntegerLiteral(t *testing.T) {
	l := New(strings.NewReader("1"))
	assertToken(t, l, token.Integer, "1")
}

func TestIntegerThenPeriod(t *testing.T) {
	l := New(strings.NewReader("1."))
	assertToken(t, l, token.Integer, "1")
	assertToken(t, l, token.Period, "")
}

func TestDoubleLiteral(t *testing.T) {
	l := New(strings.NewReader("3.14"))
	assertToken(t, l, token.Double, "3.14")
}

func TestDoubleWithoutExponentSyntax(t *testing.T) {
	items := readAll(t, "1.5e")
	require.Len(t, items, 2)
	assert.Equal(t, token.Double, items[0].Token.Symbol)
	assert.Equal(t, "1.5", items[0].Token.Text)
	assert.Equal(t, token.Identifier, items[1].Token.Symbol)
	assert.Equal(t, "e", items[1].Token.Text)
}

func TestColon(t *testing.T) {
	l := New(strings.NewReader(":"))
	assertToken(t, l, token.Colon, "")
}

func TestAssignment(t *testing.T) {
	l := New(strings.NewReader("foo := 'Hello'"))
	assertToken(t, l, token.Identifier, "foo")
	assertToken(t, l, token.Assign, "")
	assertToken(t, l, token.String, "Hello")
}

func TestSimpleSymbols(t *testing.T) {
	l := New(strings.NewReader("[]()#^."))
	assertToken(t, l, token.NewBlock, "")
	assertToken(t, l, token.EndBlock, "")
	assertToken(t, l, token.NewTerm, "")
	assertToken(t, l, token.EndTerm, "")
	assertToken(t, l, token.Pound, "")
	assertToken(t, l, token.Exit, "")
	assertToken(t, l, token.Period, "")
}

func TestSimpleOperators(t *testing.T) {
	l := New(strings.NewReader("~ & | * / \\ + = < > , @ %"))
	for _, symbol := range []token.Symbol{
		token.Not, token.And, token.Or, token.Star, token.Divide, token.Modulus,
		token.Plus, token.Equal, token.Less, token.More, token.Comma, token.At, token.Percent,
	} {
		assertToken(t, l, symbol, "")
	}
}

func TestOperatorSequence(t *testing.T) {
	l := New(strings.NewReader("<="))
	assertToken(t, l, token.OperatorSequence, "<=")
}

func TestUnterminatedStringEndsAtEOF(t *testing.T) {
	l := New(strings.NewReader("'unterminated"))
	assertToken(t, l, token.String, "unterminated")
	_, err := l.ReadToken()
	assert.ErrorIs(t, err, io.EOF)
}

func TestLocation(t *testing.T) {
	l := New(strings.NewReader(" \n  World"))
	item, err := l.ReadToken()
	require.NoError(t, err)
	assert.Equal(t, token.Location{Line: 2, Column: 3}, item.Location)
}

func TestIllegalCharacterIsFatal(t *testing.T) {
	l := New(strings.NewReader("$"))
	_, err := l.ReadToken()
	var illegal *IllegalCharError
	require.ErrorAs(t, err, &illegal)
	assert.Equal(t, '$', illegal.Char)
}

func TestFullClassSkeleton(t *testing.T) {
	source := `
        Hello = (
            "The 'run' method is called when initializing the system"
            run = ('Hello, World from SOM' println)
        )
        `
	l := New(strings.NewReader(source))
	assertToken(t, l, token.Identifier, "Hello")
	assertToken(t, l, token.Equal, "")
	assertToken(t, l, token.NewTerm, "")
	assertToken(t, l, token.Identifier, "run")
	assertToken(t, l, token.Equal, "")
	assertToken(t, l, token.NewTerm, "")
	assertToken(t, l, token.String, "Hello, World from SOM")
	assertToken(t, l, token.Identifier, "println")
	assertToken(t, l, token.EndTerm, "")
	assertToken(t, l, token.EndTerm, "")
}

func TestMixedExpressionTokenSequence(t *testing.T) {
	items := readAll(t, "1 + 2 foo:bar: 'x'")
	want := []token.Token{
		token.NewWithText(token.Integer, "1"),
		token.New(token.Plus),
		token.NewWithText(token.Integer, "2"),
		token.NewWithText(token.KeywordSequence, "foo:bar:"),
		token.NewWithText(token.String, "x"),
	}
	require.Len(t, items, len(want))
	for i, w := range want {
		assert.Equal(t, w, items[i].Token)
	}
}
