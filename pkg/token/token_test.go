package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocationString(t *testing.T) {
	loc := Location{Line: 2, Column: 7}
	assert.Equal(t, "2:7", loc.String())
}

func TestSymbolStringKnownVariant(t *testing.T) {
	assert.Equal(t, "Identifier", Identifier.String())
	assert.Equal(t, "KeywordSequence", KeywordSequence.String())
}

func TestSymbolStringUnknownVariant(t *testing.T) {
	assert.Equal(t, "Symbol(999)", Symbol(999).String())
}

func TestFormatSymbols(t *testing.T) {
	assert.Equal(t, "[Double]", FormatSymbols([]Symbol{Double}))
	assert.Equal(t, "[Identifier, Keyword]", FormatSymbols([]Symbol{Identifier, Keyword}))
	assert.Equal(t, "[]", FormatSymbols(nil))
}

func TestNewHasNoText(t *testing.T) {
	tok := New(Period)
	assert.Equal(t, Period, tok.Symbol)
	assert.Empty(t, tok.Text)
}

func TestNewWithText(t *testing.T) {
	tok := NewWithText(Integer, "42")
	assert.Equal(t, Integer, tok.Symbol)
	assert.Equal(t, "42", tok.Text)
}

func TestTokenIsIgnoresText(t *testing.T) {
	tok := NewWithText(Identifier, "foo")
	assert.True(t, tok.Is(Identifier))
	assert.False(t, tok.Is(Keyword))
}
