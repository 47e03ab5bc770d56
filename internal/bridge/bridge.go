package bridge

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/text/unicode/norm"

	"grsbridge/internal/diagfmt"
	"grsbridge/internal/grs"
	"grsbridge/internal/offset"
	"grsbridge/internal/rules"
)

var (
	// ErrSerialization wraps failures to encode or decode host values.
	ErrSerialization = errors.New("serialization failed")
	// ErrEngine wraps failures reported by the engine transport.
	ErrEngine = errors.New("engine failed")
)

// Bridge exposes scan, fix, tokenize and the accent utilities to a host.
// It holds no per-call state and is safe for concurrent use.
type Bridge struct {
	engine      grs.Engine
	encoder     diagfmt.Encoder
	selector    rules.Selector
	tokenRanges diagfmt.TokenRanges
	defaults    any
	log         zerolog.Logger
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithUnits sets how host characters are counted.
func WithUnits(u offset.Units) Option {
	return func(b *Bridge) { b.encoder.Translator.Units = u }
}

// WithTokenRanges sets the coordinate space of token ranges.
func WithTokenRanges(m diagfmt.TokenRanges) Option {
	return func(b *Bridge) { b.tokenRanges = m }
}

// WithLogger sets the logger for degraded ranges and ignored options.
func WithLogger(log zerolog.Logger) Option {
	return func(b *Bridge) { b.log = log }
}

// WithDefaultOptions sets the options used when a call passes none.
// nil keeps the engine's full default rule list.
func WithDefaultOptions(options any) Option {
	return func(b *Bridge) { b.defaults = options }
}

// New returns a Bridge over engine.
func New(engine grs.Engine, opts ...Option) *Bridge {
	b := &Bridge{
		engine:      engine,
		tokenRanges: diagfmt.TokenRangesBytes,
		log:         zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.encoder.Translator.Log = b.log
	b.selector = rules.NewSelector(b.log)
	return b
}

// Units reports the configured character units.
func (b *Bridge) Units() offset.Units {
	return b.encoder.Translator.Units
}

// Rules resolves options into the selection a call would use.
func (b *Bridge) Rules(options any) []grs.Rule {
	if options == nil {
		options = b.defaults
	}
	return b.selector.Select(options)
}

// Scan returns one record per engine diagnostic, in engine order.
func (b *Bridge) Scan(ctx context.Context, text string, options any) ([]diagfmt.Record, error) {
	selection := b.Rules(options)
	b.noteInput(text)
	diagnostics, err := b.engine.Check(ctx, text, selection)
	if err != nil {
		return nil, fmt.Errorf("%w: check: %w", ErrEngine, err)
	}
	return b.encoder.EncodeAll(text, diagnostics), nil
}

// Fix returns text rewritten by the engine with every fix of the selected rules.
func (b *Bridge) Fix(ctx context.Context, text string, options any) (string, error) {
	selection := b.Rules(options)
	b.noteInput(text)
	fixed, err := b.engine.Fix(ctx, text, selection)
	if err != nil {
		return "", fmt.Errorf("%w: fix: %w", ErrEngine, err)
	}
	return fixed, nil
}

// Tokenize returns the engine tokens. Ranges are engine byte offsets unless
// the Bridge was built WithTokenRanges(diagfmt.TokenRangesChars).
func (b *Bridge) Tokenize(ctx context.Context, text string) ([]diagfmt.TokenRecord, error) {
	tokens, err := b.engine.Tokenize(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("%w: tokenize: %w", ErrEngine, err)
	}
	return b.encoder.EncodeTokens(text, tokens, b.tokenRanges), nil
}

// ToMonotonic converts polytonic text to the monotonic system.
func (b *Bridge) ToMonotonic(ctx context.Context, text string) (string, error) {
	out, err := b.engine.ToMonotonic(ctx, text)
	if err != nil {
		return "", fmt.Errorf("%w: to_monotonic: %w", ErrEngine, err)
	}
	return out, nil
}

// Syllabify joins the engine's syllables with separator.
func (b *Bridge) Syllabify(ctx context.Context, text, separator string) (string, error) {
	syllables, err := b.engine.Syllabify(ctx, text)
	if err != nil {
		return "", fmt.Errorf("%w: syllabify: %w", ErrEngine, err)
	}
	return strings.Join(syllables, separator), nil
}

// noteInput logs texts whose ranges a host may misread: offsets always refer
// to the text exactly as passed, never to a normalized form.
func (b *Bridge) noteInput(text string) {
	if b.log.GetLevel() > zerolog.DebugLevel {
		return
	}
	if !norm.NFC.IsNormalString(text) {
		b.log.Debug().Int("bytes", len(text)).Msg("input is not NFC; ranges refer to the raw text")
	}
}
