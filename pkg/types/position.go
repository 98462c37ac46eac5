package types

import "fmt"

// Position is a point in source text.
// Cursor is a 0-based byte offset, Line is 1-based, Column is a 0-based
// byte offset within the current line.
type Position struct {
	Cursor int
	Line   int
	Column int
}

// StartPosition returns the position of the first byte of any source.
func StartPosition() Position {
	return Position{Cursor: 0, Line: 1, Column: 0}
}

// NewPosition creates a Position, rejecting line numbers below 1 and
// negative offsets.
func NewPosition(cursor, line, column int) (Position, error) {
	if line < 1 {
		return Position{}, fmt.Errorf("line must be at least 1, got %d", line)
	}
	if cursor < 0 || column < 0 {
		return Position{}, fmt.Errorf("cursor and column must not be negative (cursor %d, column %d)", cursor, column)
	}
	return Position{Cursor: cursor, Line: line, Column: column}, nil
}

// PositionAt computes the position of byteOffset within src.
// Offsets beyond the end of src are clamped to len(src).
func PositionAt(src string, byteOffset int) Position {
	if byteOffset > len(src) {
		byteOffset = len(src)
	}
	if byteOffset < 0 {
		byteOffset = 0
	}
	return StartPosition().Advance(src[:byteOffset])
}

// AddColumns moves the position n bytes to the right on the current line.
func (p Position) AddColumns(n int) Position {
	p.Cursor += n
	p.Column += n
	return p
}

// Advance returns the position reached after consuming s.
// "\r\n", "\n\r" and a bare "\n" each count as one line break; after the
// last break the column is the length of the remaining text.
func (p Position) Advance(s string) Position {
	breaks, tail := lineBreaks(s)
	if breaks == 0 {
		return p.AddColumns(len(s))
	}
	p.Cursor += len(s)
	p.Line += breaks
	p.Column = tail
	return p
}

// Before reports whether p is strictly before other in the source.
func (p Position) Before(other Position) bool {
	return p.Cursor < other.Cursor
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// lineBreaks counts the line break units in s and returns the number of
// bytes following the last one.
func lineBreaks(s string) (count, tail int) {
	end := 0
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == '\r' && i+1 < len(s) && s[i+1] == '\n':
			i++
		case s[i] == '\n':
			if i+1 < len(s) && s[i+1] == '\r' {
				i++
			}
		default:
			continue
		}
		count++
		end = i + 1
	}
	if count == 0 {
		return 0, 0
	}
	return count, len(s) - end
}
