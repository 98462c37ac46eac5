package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmptySpan(t *testing.T) {
	s := EmptySpan()
	assert.Equal(t, StartPosition(), s.Start)
	assert.Equal(t, StartPosition(), s.End)
	assert.True(t, s.IsEmpty())
	assert.Equal(t, 0, s.Len())
}

func TestCollapsedSpan(t *testing.T) {
	p := Position{Cursor: 7, Line: 2, Column: 3}
	s := CollapsedSpan(p)
	assert.Equal(t, p, s.Start)
	assert.Equal(t, p, s.End)
	assert.True(t, s.IsEmpty())
}

func TestSpan_Slice(t *testing.T) {
	src := `{"k": null}`
	s := NewSpan(Position{Cursor: 6, Line: 1, Column: 6}, Position{Cursor: 10, Line: 1, Column: 10})

	assert.Equal(t, "null", s.Slice(src))
	assert.Equal(t, 4, s.Len())
	assert.False(t, s.IsEmpty())

	// Mismatched sources are clamped instead of panicking.
	assert.Equal(t, "", s.Slice("short"))
	assert.Equal(t, "ll", NewSpan(Position{Cursor: 2, Line: 1}, Position{Cursor: 50, Line: 1}).Slice("null"))
}

func TestSpan_Contains(t *testing.T) {
	outer := NewSpan(Position{Cursor: 0, Line: 1}, Position{Cursor: 10, Line: 1, Column: 10})
	inner := NewSpan(Position{Cursor: 2, Line: 1, Column: 2}, Position{Cursor: 4, Line: 1, Column: 4})

	assert.True(t, outer.Contains(inner))
	assert.True(t, outer.Contains(outer))
	assert.False(t, inner.Contains(outer))
}

func TestSpan_String(t *testing.T) {
	s := NewSpan(Position{Cursor: 0, Line: 1, Column: 0}, Position{Cursor: 12, Line: 2, Column: 3})
	assert.Equal(t, "1:0-2:3", s.String())
}
