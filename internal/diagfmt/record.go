package diagfmt

import (
	"strings"
	"unicode"

	"github.com/rs/zerolog"

	"grsbridge/internal/grs"
	"grsbridge/internal/offset"
)

// Record is one diagnostic as the host sees it.
type Record struct {
	Kind  string       `json:"kind" msgpack:"kind"`
	Range offset.Range `json:"range" msgpack:"range"`
	// Only the replacement at the moment.
	Fix *string `json:"fix" msgpack:"fix"`
}

// Encoder converts engine output using one Translator.
type Encoder struct {
	Translator offset.Translator
}

// NewEncoder returns an Encoder over tr.
func NewEncoder(tr offset.Translator) Encoder {
	return Encoder{Translator: tr}
}

// Encode converts one diagnostic with code point ranges and no logging.
func Encode(text string, d grs.Diagnostic) Record {
	return encodeWith(offset.NewTranslator(offset.UnitsCodepoints, zerolog.Nop()).For(text, 1), d)
}

// Encode converts one diagnostic over text.
func (e Encoder) Encode(text string, d grs.Diagnostic) Record {
	return encodeWith(e.Translator.For(text, 1), d)
}

// EncodeAll converts diagnostics in order; the result has the same length.
func (e Encoder) EncodeAll(text string, diagnostics []grs.Diagnostic) []Record {
	out := make([]Record, 0, len(diagnostics))
	if len(diagnostics) == 0 {
		return out
	}
	m := e.Translator.For(text, len(diagnostics))
	for _, d := range diagnostics {
		out = append(out, encodeWith(m, d))
	}
	return out
}

func encodeWith(m offset.Mapper, d grs.Diagnostic) Record {
	return Record{
		Kind:  SnakeCase(d.Kind.String()),
		Range: m.Map(d.Span),
		Fix:   fixText(d.Fix),
	}
}

func fixText(f *grs.Fix) *string {
	if f == nil {
		return nil
	}
	// правка движка может приходить с пробелами по краям
	s := strings.TrimSpace(f.Replacement)
	return &s
}

// SnakeCase converts an upper camel identifier to lower snake case by putting
// an underscore before every uppercase letter except the first character.
// Acronyms are not detected: "ABC" becomes "a_b_c".
func SnakeCase(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	i := 0
	for _, c := range s {
		if unicode.IsUpper(c) {
			if i != 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(c))
		} else {
			b.WriteRune(c)
		}
		i++
	}
	return b.String()
}
