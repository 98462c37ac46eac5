package types

import "fmt"

// Span is the half-open byte range [Start.Cursor, End.Cursor) together with
// line/column coordinates at both ends.
type Span struct {
	Start Position
	End   Position
}

// NewSpan creates a span from start to end.
func NewSpan(start, end Position) Span {
	return Span{Start: start, End: end}
}

// EmptySpan returns a span collapsed at the start of the source.
func EmptySpan() Span {
	return CollapsedSpan(StartPosition())
}

// CollapsedSpan returns a zero-length span at p.
// Used for synthetic tokens such as end of input.
func CollapsedSpan(p Position) Span {
	return Span{Start: p, End: p}
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	return s.End.Cursor - s.Start.Cursor
}

// IsEmpty reports whether the span covers no bytes.
func (s Span) IsEmpty() bool {
	return s.Len() <= 0
}

// Slice returns the text of src covered by the span.
// Out of range bounds are clamped so a mismatched source never panics.
func (s Span) Slice(src string) string {
	start, end := s.Start.Cursor, s.End.Cursor
	if start < 0 {
		start = 0
	}
	if end > len(src) {
		end = len(src)
	}
	if start >= end {
		return ""
	}
	return src[start:end]
}

// Contains reports whether other lies entirely within s.
func (s Span) Contains(other Span) bool {
	return s.Start.Cursor <= other.Start.Cursor && other.End.Cursor <= s.End.Cursor
}

func (s Span) String() string {
	return fmt.Sprintf("%s-%s", s.Start, s.End)
}
