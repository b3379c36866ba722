// Package token defines the lexical vocabulary shared by the lexer and
// parser: source locations, the closed set of token kinds, and the Token
// type that pairs a kind with its optional lexeme text.
package token

import "fmt"

// Location identifies a source position for diagnostics. Line and Column
// are both 1-indexed; Column counts characters within the current line,
// restarting at 1 after each line break. A line's own terminator
// character occupies the column after its last other character.
type Location struct {
	Line   int
	Column int
}

func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}

// Symbol is the closed enumeration of token kinds.
type Symbol int

const (
	// Structural
	NewTerm Symbol = iota
	EndTerm
	NewBlock
	EndBlock
	Period
	Pound
	Exit
	Separator
	Primitive

	// Assignment / punctuation
	Assign
	Colon
	Comma

	// Binary operator primitives (single character)
	And
	Or
	Star
	Divide
	Modulus
	Plus
	Equal
	More
	Less
	At
	Percent
	Minus
	Not

	// Multi-char operator
	OperatorSequence

	// Identifier-class
	Identifier
	Keyword
	KeywordSequence

	// Literals
	Integer
	Double
	String
)

var symbolNames = map[Symbol]string{
	NewTerm:          "NewTerm",
	EndTerm:          "EndTerm",
	NewBlock:         "NewBlock",
	EndBlock:         "EndBlock",
	Period:           "Period",
	Pound:            "Pound",
	Exit:             "Exit",
	Separator:        "Separator",
	Primitive:        "Primitive",
	Assign:           "Assign",
	Colon:            "Colon",
	Comma:            "Comma",
	And:              "And",
	Or:               "Or",
	Star:             "Star",
	Divide:           "Divide",
	Modulus:          "Modulus",
	Plus:             "Plus",
	Equal:            "Equal",
	More:             "More",
	Less:             "Less",
	At:               "At",
	Percent:          "Percent",
	Minus:            "Minus",
	Not:              "Not",
	OperatorSequence: "OperatorSequence",
	Identifier:       "Identifier",
	Keyword:          "Keyword",
	KeywordSequence:  "KeywordSequence",
	Integer:          "Integer",
	Double:           "Double",
	String:           "String",
}

// String returns the symbol's name, matching the bare-variant form used
// in diagnostic descriptions (e.g. "Identifier", not "token.Identifier").
func (s Symbol) String() string {
	if name, ok := symbolNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Symbol(%d)", int(s))
}

// FormatSymbols renders a set of expected symbols the way a diagnostic
// expects them: a bracketed, comma-separated list, e.g. "[Double]" or
// "[Identifier, Keyword]".
func FormatSymbols(symbols []Symbol) string {
	out := "["
	for i, s := range symbols {
		if i > 0 {
			out += ", "
		}
		out += s.String()
	}
	return out + "]"
}

// Token pairs a Symbol with its optional lexeme text. Symbols that never
// carry lexeme data (structural tokens, operators) leave Text empty.
type Token struct {
	Symbol Symbol
	Text   string
}

// New constructs a Token with no text payload.
func New(symbol Symbol) Token {
	return Token{Symbol: symbol}
}

// NewWithText constructs a Token carrying lexeme text.
func NewWithText(symbol Symbol, text string) Token {
	return Token{Symbol: symbol, Text: text}
}

// Is reports whether the token's symbol matches, ignoring any text
// payload — the parser's peek helpers compare a Token to a bare Symbol
// this way.
func (t Token) Is(symbol Symbol) bool {
	return t.Symbol == symbol
}
