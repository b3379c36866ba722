// Package buffer implements a line-buffered, peekable character source
// with source-location tracking.
//
// PeekableBuffer is the leaf of the parsing pipeline: the lexer reads
// runes from it one at a time, and it in turn reads whole lines from an
// underlying io.Reader so that Location() can report the (line, column)
// of the next unread character without re-scanning the input.
package buffer

import (
	"bufio"
	"io"

	"github.com/kristofer/som/pkg/token"
)

// PeekableBuffer offers single-rune peek, single-rune consume, and the
// source location of the rune that Peek would return.
//
// It holds the most recently read line as a rune slice with an index
// into it; when the index reaches the end of the line, one more line is
// read and the index reset. A one-rune peek slot decouples the location
// reported by Location from the buffer's post-advance read position, so
// Location always refers to the rune Peek last produced.
type PeekableBuffer struct {
	source *bufio.Reader
	line   []rune
	pos    int
	lineNo int

	peeked    *rune
	peekedLoc token.Location

	eof bool
}

// New wraps source in a PeekableBuffer. source is treated as a stream of
// lines delimited by '\n'; no BOM handling is performed.
func New(source io.Reader) *PeekableBuffer {
	return &PeekableBuffer{source: bufio.NewReader(source)}
}

// Peek returns the next rune without consuming it, or (0, false) at
// end-of-input.
func (b *PeekableBuffer) Peek() (rune, bool) {
	if b.peeked != nil {
		return *b.peeked, true
	}

	ch, loc, ok := b.advance()
	if !ok {
		return 0, false
	}

	b.peeked = &ch
	b.peekedLoc = loc
	return ch, true
}

// Consume advances past the current character (the one Peek would
// return). It is a no-op at end-of-input.
func (b *PeekableBuffer) Consume() {
	if b.peeked != nil {
		b.peeked = nil
		return
	}
	b.advance()
}

// Next peeks and consumes in one step, returning (0, false) at
// end-of-input.
func (b *PeekableBuffer) Next() (rune, bool) {
	ch, ok := b.Peek()
	if !ok {
		return 0, false
	}
	b.Consume()
	return ch, true
}

// Location returns the position of the character that Peek would
// return, or the position immediately past the end of input once
// end-of-input has been reached.
func (b *PeekableBuffer) Location() token.Location {
	if _, ok := b.Peek(); !ok {
		return token.Location{Line: b.lineNo, Column: len(b.line) + 1}
	}
	return b.peekedLoc
}

// advance pulls the next raw rune out of the currently loaded line,
// refilling from the underlying reader as needed. It reports the
// location the rune occupied before the read position moved past it.
func (b *PeekableBuffer) advance() (rune, token.Location, bool) {
	if b.pos >= len(b.line) {
		if !b.fill() {
			return 0, token.Location{}, false
		}
	}

	loc := token.Location{Line: b.lineNo, Column: b.pos + 1}
	ch := b.line[b.pos]
	b.pos++
	return ch, loc, true
}

// fill reads one more line from the source, resetting pos and
// incrementing the line counter. It reports false once the source is
// permanently exhausted.
func (b *PeekableBuffer) fill() bool {
	if b.eof {
		return false
	}

	text, err := b.source.ReadString('\n')
	if len(text) == 0 {
		b.eof = true
		return false
	}

	b.line = []rune(text)
	b.pos = 0
	b.lineNo++

	if err != nil && err != io.EOF {
		b.eof = true
	}

	return true
}
