package proc

import (
	"fmt"

	"grsbridge/internal/grs"
	"grsbridge/internal/source"
)

type op string

const (
	opCheck       op = "check"
	opFix         op = "fix"
	opTokenize    op = "tokenize"
	opToMonotonic op = "to_monotonic"
	opSyllabify   op = "syllabify"
)

// errUnsupported is the error text a child uses for an op it does not implement.
const errUnsupported = "unsupported"

type request struct {
	Op    op       `msgpack:"op"`
	Text  string   `msgpack:"text"`
	Rules []string `msgpack:"rules,omitempty"`
}

type response struct {
	Diagnostics []wireDiagnostic `msgpack:"diagnostics"`
	Text        string           `msgpack:"text"`
	Tokens      []wireToken      `msgpack:"tokens"`
	Syllables   []string         `msgpack:"syllables"`
	Error       string           `msgpack:"error"`
}

type wireSpan struct {
	Start uint32 `msgpack:"start" json:"start"`
	End   uint32 `msgpack:"end" json:"end"`
}

func (s wireSpan) span() source.Span {
	return source.Span{Start: s.Start, End: s.End}
}

type wireFix struct {
	Span        wireSpan `msgpack:"span" json:"span"`
	Replacement string   `msgpack:"replacement" json:"replacement"`
}

type wireDiagnostic struct {
	Kind string   `msgpack:"kind" json:"kind"`
	Span wireSpan `msgpack:"span" json:"span"`
	Fix  *wireFix `msgpack:"fix,omitempty" json:"fix,omitempty"`
}

type wireToken struct {
	Text       string   `msgpack:"text" json:"text"`
	Whitespace string   `msgpack:"whitespace" json:"whitespace"`
	Index      int      `msgpack:"index" json:"index"`
	Span       wireSpan `msgpack:"span" json:"span"`
	Punct      bool     `msgpack:"punct" json:"punct"`
	Greek      bool     `msgpack:"greek" json:"greek"`
}

func ruleNames(rules []grs.Rule) []string {
	out := make([]string, 0, len(rules))
	for _, r := range rules {
		out = append(out, r.String())
	}
	return out
}

func (d wireDiagnostic) diagnostic() (grs.Diagnostic, error) {
	kind, ok := grs.LookupName(d.Kind)
	if !ok {
		return grs.Diagnostic{}, fmt.Errorf("%w: unknown diagnostic kind %q", ErrProtocol, d.Kind)
	}
	out := grs.Diagnostic{Kind: kind, Span: d.Span.span()}
	if d.Fix != nil {
		out.Fix = &grs.Fix{Span: d.Fix.Span.span(), Replacement: d.Fix.Replacement}
	}
	return out, nil
}

func (t wireToken) token() grs.Token {
	return grs.Token{
		Text:       t.Text,
		Whitespace: t.Whitespace,
		Index:      t.Index,
		Span:       t.Span.span(),
		Punct:      t.Punct,
		Greek:      t.Greek,
	}
}
