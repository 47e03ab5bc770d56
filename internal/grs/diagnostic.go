package grs

import "grsbridge/internal/source"

// Fix is one proposed correction: replace Span with Replacement.
type Fix struct {
	Span        source.Span
	Replacement string
}

// Diagnostic is one issue the engine found in a text.
type Diagnostic struct {
	Kind Rule
	Span source.Span
	Fix  *Fix
}

// Token is a lexical unit produced by the engine tokenizer.
type Token struct {
	Text       string
	Whitespace string // whitespace that follows the token
	Index      int
	Span       source.Span
	Punct      bool
	Greek      bool
}
