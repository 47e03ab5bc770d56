package diagfmt

import (
	"fmt"
	"strings"

	"grsbridge/internal/grs"
	"grsbridge/internal/offset"
)

// TokenRanges selects the coordinate space of token ranges.
type TokenRanges uint8

const (
	// TokenRangesBytes passes the engine's byte offsets through unchanged.
	TokenRangesBytes TokenRanges = iota
	// TokenRangesChars translates token spans like diagnostic spans.
	TokenRangesChars
)

func (m TokenRanges) String() string {
	if m == TokenRangesChars {
		return "chars"
	}
	return "bytes"
}

// ParseTokenRanges accepts "bytes" (or empty) and "chars".
func ParseTokenRanges(s string) (TokenRanges, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "bytes":
		return TokenRangesBytes, nil
	case "chars", "characters":
		return TokenRangesChars, nil
	}
	return TokenRangesBytes, fmt.Errorf("unknown token range mode %q", s)
}

// TokenRecord is one token as the host sees it.
type TokenRecord struct {
	Text       string       `json:"text" msgpack:"text"`
	Whitespace string       `json:"whitespace" msgpack:"whitespace"`
	Index      int          `json:"index" msgpack:"index"`
	Range      offset.Range `json:"range" msgpack:"range"`
	Punct      bool         `json:"punct" msgpack:"punct"`
	Greek      bool         `json:"greek" msgpack:"greek"`
}

// EncodeTokens converts tokens in order.
func (e Encoder) EncodeTokens(text string, tokens []grs.Token, mode TokenRanges) []TokenRecord {
	out := make([]TokenRecord, 0, len(tokens))
	var m offset.Mapper
	if mode == TokenRangesChars && len(tokens) > 0 {
		m = e.Translator.For(text, len(tokens))
	}
	for _, tok := range tokens {
		rec := TokenRecord{
			Text:       tok.Text,
			Whitespace: tok.Whitespace,
			Index:      tok.Index,
			Punct:      tok.Punct,
			Greek:      tok.Greek,
		}
		if m != nil {
			rec.Range = m.Map(tok.Span)
		} else {
			rec.Range = offset.Range{Start: int(tok.Span.Start), End: int(tok.Span.End)}
		}
		out = append(out, rec)
	}
	return out
}
