package offset

import (
	"slices"

	"grsbridge/internal/source"
)

// Index is a precomputed boundary table for one text.
// It is immutable after construction and safe for concurrent use.
type Index struct {
	t       Translator
	textLen int
	starts  []int // байтовые смещения начала каждого символа
	pos     []int // позиция символа в единицах хоста
	total   int
}

// NewIndex scans text once and records every rune boundary.
func (t Translator) NewIndex(text string) *Index {
	ix := &Index{
		t:       t,
		textLen: len(text),
		starts:  make([]int, 0, len(text)),
		pos:     make([]int, 0, len(text)),
	}
	idx := 0
	for off, r := range text {
		ix.starts = append(ix.starts, off)
		ix.pos = append(ix.pos, idx)
		idx += t.Units.width(r)
	}
	ix.total = idx
	return ix
}

// Count returns the text length in host units.
func (ix *Index) Count() int {
	return ix.total
}

func (ix *Index) lookup(off int) (int, bool) {
	i, found := slices.BinarySearch(ix.starts, off)
	if !found {
		return 0, false
	}
	return ix.pos[i], true
}

// TranslateChecked gives the same result as the linear scan over the same text.
func (ix *Index) TranslateChecked(span source.Span) (Range, bool) {
	start, end := int(span.Start), int(span.End)
	charStart, startOK := ix.lookup(start)
	charEnd, endOK := ix.lookup(end)

	if endOK {
		// линейный проход остановился бы на end; start должен встретиться не позже
		if !startOK || start > end {
			return Range{}, false
		}
		return Range{Start: charStart, End: charEnd}, true
	}
	if startOK {
		return Range{Start: charStart, End: ix.total}, true
	}
	if start == ix.textLen {
		return Range{Start: ix.total, End: ix.total}, true
	}
	return Range{}, false
}

// Map implements Mapper.
func (ix *Index) Map(span source.Span) Range {
	r, ok := ix.TranslateChecked(span)
	if !ok {
		ix.t.warn(span, ix.textLen)
	}
	return r
}
