package parser

import (
	"fmt"
	"io"

	"github.com/kristofer/som/pkg/token"
)

// ErrEndOfInput signals that the token stream was exhausted while the
// parser still needed a lookahead token. It is identical to io.EOF —
// the lexer's own end-of-input signal — so that peek/consume can simply
// propagate whatever the lexer returns.
var ErrEndOfInput = io.EOF

// mismatchError is raised internally by acceptOneOf when the next token
// does not match. It is caught wherever a token is optional or ends a
// loop: superclass defaulting, the optional Separator, the primitive
// marker, keyword-pattern and keyword-message loop termination,
// locals-list termination, and the period between statements;
// everywhere else it is promoted to a *ParseError by expect/expectOneOf.
type mismatchError struct {
	expected []token.Symbol
	found    token.Symbol
	location token.Location
}

func (e *mismatchError) Error() string {
	return fmt.Sprintf("expected %s, found %s", token.FormatSymbols(e.expected), e.found)
}

func isMismatch(err error) bool {
	_, ok := err.(*mismatchError)
	return ok
}

// ParseError is the single user-visible diagnostic this package ever
// produces. Parsing halts at the first one; there is no recovery and no
// partial AST.
type ParseError struct {
	Description string
	Filename    string
	Line        int
	Column      int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.Filename, e.Line, e.Column, e.Description)
}

// promoteMismatch turns a *mismatchError into the user-visible
// *ParseError shape; any other error (ErrEndOfInput, an already-promoted
// *ParseError) passes through unchanged.
func (p *Parser) promoteMismatch(err error) error {
	mismatch, ok := err.(*mismatchError)
	if !ok {
		return err
	}
	return &ParseError{
		Description: fmt.Sprintf("Expected %s, found %s", token.FormatSymbols(mismatch.expected), mismatch.found),
		Filename:    p.filename,
		Line:        mismatch.location.Line,
		Column:      mismatch.location.Column,
	}
}
