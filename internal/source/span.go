package source

import (
	"fmt"

	"fortio.org/safecast"
)

// Span is a half-open byte range [Start, End) over the UTF-8 encoding of a text.
// Spans come from the engine; boundaries are expected on rune starts but are
// not re-validated here.
type Span struct {
	Start uint32 // в байтах включительно
	End   uint32 // в байтах не включительно
}

// NewSpan builds a span from int offsets. Negative offsets clamp to zero and
// offsets beyond uint32 saturate, so host numbers never panic.
func NewSpan(start, end int) Span {
	return Span{Start: clampUint32(start), End: clampUint32(end)}
}

func clampUint32(n int) uint32 {
	if n < 0 {
		return 0
	}
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		return ^uint32(0)
	}
	return v
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

// Len returns the byte length, or 0 for an inverted span.
func (s Span) Len() uint32 {
	if s.End < s.Start {
		return 0
	}
	return s.End - s.Start
}

// Valid reports whether Start <= End.
func (s Span) Valid() bool {
	return s.Start <= s.End
}

// Within reports whether the span fits into a text of n bytes.
func (s Span) Within(n int) bool {
	return s.Valid() && int(s.End) <= n
}

// Overlaps reports whether two spans share at least one byte.
// Spans that only touch at a boundary do not overlap.
func (s Span) Overlaps(other Span) bool {
	return s.Start < other.End && other.Start < s.End
}

func (s Span) String() string {
	return fmt.Sprintf("%d-%d", s.Start, s.End)
}

// Cover returns the smallest span containing both s and other.
func (s Span) Cover(other Span) Span {
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

// Slice returns text[s.Start:s.End], clamped to the text length.
func (s Span) Slice(text string) string {
	n := clampUint32(len(text))
	start, end := s.Start, s.End
	if start > n {
		start = n
	}
	if end > n {
		end = n
	}
	if end < start {
		return ""
	}
	return text[start:end]
}
