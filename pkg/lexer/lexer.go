// Package lexer implements the character-addressable streaming lexer for
// SOM source. It consumes runes from a buffer.PeekableBuffer and produces
// a sequence of classified (token.Token, token.Location) items.
package lexer

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/kristofer/som/pkg/buffer"
	"github.com/kristofer/som/pkg/token"
)

// Item pairs a Token with the source location of its first character.
type Item struct {
	Token    token.Token
	Location token.Location
}

// IllegalCharError reports a leading character the lexer does not
// understand. It is the lexer's only fatal failure; every other
// condition either produces a token or signals clean end-of-input.
type IllegalCharError struct {
	Char     rune
	Location token.Location
}

func (e *IllegalCharError) Error() string {
	return fmt.Sprintf("unexpected character %q", e.Char)
}

const operatorChars = "~&|*/\\+=><,@%"

func isOperatorChar(c rune) bool {
	return strings.ContainsRune(operatorChars, c)
}

func isIdentifierChar(c rune) bool {
	return c <= unicode.MaxASCII && (unicode.IsLetter(c) || unicode.IsDigit(c) || c == '_')
}

func isIdentifierStart(c rune) bool {
	return c <= unicode.MaxASCII && unicode.IsLetter(c)
}

// isKeywordSequenceChar reports whether c may continue a keyword
// sequence after its first colon: letters, digits, and ':' only —
// unlike isIdentifierChar, '_' is not admitted here.
func isKeywordSequenceChar(c rune) bool {
	return c == ':' || (c <= unicode.MaxASCII && (unicode.IsLetter(c) || unicode.IsDigit(c)))
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

// Lexer reads tokens from a PeekableBuffer. Besides the buffer, its only
// state is a small FIFO of tokens produced but not yet delivered — used
// when a single lexical decision yields more than one token (e.g. "1."
// splitting into Integer + Period, or a short run of "-" characters).
type Lexer struct {
	buffer *buffer.PeekableBuffer
	queue  []Item
}

// New creates a Lexer reading from source.
func New(source io.Reader) *Lexer {
	return &Lexer{buffer: buffer.New(source)}
}

// ReadToken returns the next (Token, Location) item. It returns io.EOF
// once the underlying source is exhausted, and an *IllegalCharError if
// the next character cannot start any valid token.
func (l *Lexer) ReadToken() (Item, error) {
	if len(l.queue) > 0 {
		item := l.queue[0]
		l.queue = l.queue[1:]
		return item, nil
	}

	l.skipWhitespaceAndComments()

	location := l.buffer.Location()
	c, ok := l.buffer.Peek()
	if !ok {
		return Item{}, io.EOF
	}

	var tok token.Token
	switch {
	case c == '[':
		l.buffer.Consume()
		tok = token.New(token.NewBlock)
	case c == ']':
		l.buffer.Consume()
		tok = token.New(token.EndBlock)
	case c == '(':
		l.buffer.Consume()
		tok = token.New(token.NewTerm)
	case c == ')':
		l.buffer.Consume()
		tok = token.New(token.EndTerm)
	case c == '#':
		l.buffer.Consume()
		tok = token.New(token.Pound)
	case c == '^':
		l.buffer.Consume()
		tok = token.New(token.Exit)
	case c == '.':
		l.buffer.Consume()
		tok = token.New(token.Period)
	case c == '-':
		tok = l.readMinus()
	case c == ':':
		tok = l.readColon()
	case isIdentifierStart(c):
		tok = l.readIdentifier()
	case isDigit(c):
		tok = l.readNumber()
	case c == '\'':
		tok = l.readString()
	case isOperatorChar(c):
		tok = l.readOperator()
	default:
		l.buffer.Consume()
		return Item{}, &IllegalCharError{Char: c, Location: location}
	}

	return Item{Token: tok, Location: location}, nil
}

// skipWhitespaceAndComments skips runs of whitespace and paired `"…"`
// comments, alternating between the two until neither applies.
func (l *Lexer) skipWhitespaceAndComments() {
	for {
		skippedSpace := false
		for {
			c, ok := l.buffer.Peek()
			if !ok || !unicode.IsSpace(c) {
				break
			}
			l.buffer.Consume()
			skippedSpace = true
		}

		skippedComment := false
		if c, ok := l.buffer.Peek(); ok && c == '"' {
			l.buffer.Consume()
			for {
				c, ok := l.buffer.Next()
				if !ok || c == '"' {
					break
				}
			}
			skippedComment = true
		}

		if !skippedSpace && !skippedComment {
			return
		}
	}
}

func (l *Lexer) readIdentifier() token.Token {
	var text strings.Builder
	for {
		c, ok := l.buffer.Peek()
		if !ok || !isIdentifierChar(c) {
			break
		}
		text.WriteRune(c)
		l.buffer.Consume()
	}

	if c, ok := l.buffer.Peek(); ok && c == ':' {
		l.buffer.Consume()
		text.WriteByte(':')

		if next, ok := l.buffer.Peek(); ok && isIdentifierStart(next) {
			for {
				c, ok := l.buffer.Peek()
				if !ok {
					break
				}
				if isKeywordSequenceChar(c) {
					text.WriteRune(c)
					l.buffer.Consume()
					continue
				}
				break
			}
			return token.NewWithText(token.KeywordSequence, text.String())
		}

		return token.NewWithText(token.Keyword, text.String())
	}

	lexeme := text.String()
	if lexeme == "primitive" {
		return token.New(token.Primitive)
	}
	return token.NewWithText(token.Identifier, lexeme)
}

func (l *Lexer) readNumber() token.Token {
	var text strings.Builder
	for {
		c, ok := l.buffer.Peek()
		if !ok || !isDigit(c) {
			break
		}
		text.WriteRune(c)
		l.buffer.Consume()
	}

	c, ok := l.buffer.Peek()
	if !ok || c != '.' {
		return token.NewWithText(token.Integer, text.String())
	}

	periodLocation := l.buffer.Location()
	l.buffer.Consume() // the '.'

	next, ok := l.buffer.Peek()
	if !ok || !isDigit(next) {
		// Rewind: the period was a statement terminator, not a decimal
		// point. Emit the integer now and enqueue the Period.
		l.queue = append(l.queue, Item{Token: token.New(token.Period), Location: periodLocation})
		return token.NewWithText(token.Integer, text.String())
	}

	text.WriteByte('.')
	for {
		c, ok := l.buffer.Peek()
		if !ok || !isDigit(c) {
			break
		}
		text.WriteRune(c)
		l.buffer.Consume()
	}

	return token.NewWithText(token.Double, text.String())
}

func (l *Lexer) readString() token.Token {
	var text strings.Builder
	l.buffer.Consume() // opening quote

	for {
		c, ok := l.buffer.Next()
		if !ok || c == '\'' {
			break
		}
		text.WriteRune(c)
	}

	return token.NewWithText(token.String, text.String())
}

func (l *Lexer) readColon() token.Token {
	l.buffer.Consume()
	if c, ok := l.buffer.Peek(); ok && c == '=' {
		l.buffer.Consume()
		return token.New(token.Assign)
	}
	return token.New(token.Colon)
}

func (l *Lexer) readMinus() token.Token {
	l.buffer.Consume() // the first '-'; its location is already the token's own

	count := 1
	var extraLocations []token.Location
	for {
		loc := l.buffer.Location()
		c, ok := l.buffer.Peek()
		if !ok || c != '-' {
			break
		}
		l.buffer.Consume()
		count++
		extraLocations = append(extraLocations, loc)
	}

	if count >= 4 {
		return token.New(token.Separator)
	}

	for _, loc := range extraLocations {
		l.queue = append(l.queue, Item{Token: token.New(token.Minus), Location: loc})
	}
	return token.New(token.Minus)
}

var singleOperatorSymbols = map[rune]token.Symbol{
	'~':  token.Not,
	'&':  token.And,
	'|':  token.Or,
	'*':  token.Star,
	'/':  token.Divide,
	'\\': token.Modulus,
	'+':  token.Plus,
	'=':  token.Equal,
	'>':  token.More,
	'<':  token.Less,
	',':  token.Comma,
	'@':  token.At,
	'%':  token.Percent,
}

func (l *Lexer) readOperator() token.Token {
	c, _ := l.buffer.Next()
	var sequence strings.Builder
	sequence.WriteRune(c)
	count := 1

	for {
		next, ok := l.buffer.Peek()
		if !ok || !isOperatorChar(next) {
			break
		}
		l.buffer.Consume()
		sequence.WriteRune(next)
		count++
	}

	if count > 1 {
		return token.NewWithText(token.OperatorSequence, sequence.String())
	}
	return token.New(singleOperatorSymbols[c])
}
