package offset

import (
	"fmt"

	"github.com/rs/zerolog"

	"grsbridge/internal/source"
)

// Range is a half-open character range [Start, End) in host units.
type Range struct {
	Start int `json:"start" msgpack:"start"`
	End   int `json:"end" msgpack:"end"`
}

func (r Range) String() string {
	return fmt.Sprintf("%d..%d", r.Start, r.End)
}

// Len returns the number of host units covered.
func (r Range) Len() int {
	return r.End - r.Start
}

// Translate converts span to a code point range. See TranslateChecked.
func Translate(text string, span source.Span) Range {
	r, _ := TranslateChecked(text, span)
	return r
}

// TranslateChecked converts span to a code point range over text.
// It reports false when the span had to be replaced by [0,0).
func TranslateChecked(text string, span source.Span) (Range, bool) {
	return translate(text, span, UnitsCodepoints)
}

// translate walks text once, remembering the character index of the rune
// boundaries equal to span.Start and span.End.
//
// An unresolved End means the span runs to the end of text and resolves to the
// total count. A Start equal to len(text) is the end-of-text boundary too. Any
// other unresolved Start degrades to [0,0).
func translate(text string, span source.Span, units Units) (Range, bool) {
	start, end := int(span.Start), int(span.End)
	charStart, charEnd := -1, -1
	idx := 0
	broke := false
	for off, r := range text {
		if off == start {
			charStart = idx
		}
		if off == end {
			charEnd = idx
			broke = true
			break
		}
		idx += units.width(r)
	}

	// Только многосложное без ударения: "καλη": конец совпадает с EOF,
	// цикл заканчивается раньше, чем находим charEnd.
	if !broke {
		charEnd = idx
		if charStart < 0 && start == len(text) {
			charStart = idx
		}
	}

	if charStart < 0 {
		return Range{}, false
	}
	return Range{Start: charStart, End: charEnd}, true
}

// Translator converts spans and logs degraded ones.
type Translator struct {
	Units Units
	Log   zerolog.Logger
}

// NewTranslator returns a Translator that logs to log.
func NewTranslator(units Units, log zerolog.Logger) Translator {
	return Translator{Units: units, Log: log}
}

// Translate converts span over text, emitting a warning when the span is
// unusable. It never fails.
func (t Translator) Translate(text string, span source.Span) Range {
	r, ok := translate(text, span, t.Units)
	if !ok {
		t.warn(span, len(text))
	}
	return r
}

func (t Translator) warn(span source.Span, textLen int) {
	t.Log.Warn().
		Uint32("start", span.Start).
		Uint32("end", span.End).
		Int("text_len", textLen).
		Msg("invalid range, using default 0..0")
}

// Mapper converts spans over one fixed text.
type Mapper interface {
	Map(span source.Span) Range
}

// IndexThreshold is the number of spans per text from which For builds an Index.
const IndexThreshold = 16

// For returns a Mapper over text sized for n lookups: a linear scanner for
// few spans, an Index otherwise.
func (t Translator) For(text string, n int) Mapper {
	if n >= IndexThreshold {
		return t.NewIndex(text)
	}
	return linearMapper{t: t, text: text}
}

type linearMapper struct {
	t    Translator
	text string
}

func (m linearMapper) Map(span source.Span) Range {
	return m.t.Translate(m.text, span)
}
