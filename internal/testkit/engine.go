// Package testkit provides a scripted engine and invariant checks for tests.
package testkit

import (
	"context"
	"errors"
	"slices"
	"sync"

	"grsbridge/internal/fix"
	"grsbridge/internal/grs"
)

// Call records one engine invocation.
type Call struct {
	Op    string
	Text  string
	Rules []grs.Rule
}

// Engine is a grs.Engine that replays scripted results.
//
// Check returns the scripted diagnostics whose kind is among the requested
// rules, in script order. Fix applies their fixes with internal/fix.
// ToMonotonic and Syllabify look up their input in the maps and fall back to
// the identity / a single syllable.
type Engine struct {
	Diagnostics []grs.Diagnostic
	Tokens      []grs.Token
	Monotonic   map[string]string
	Syllables   map[string][]string
	Err         error

	mu    sync.Mutex
	calls []Call
}

var _ grs.Engine = (*Engine)(nil)

func (e *Engine) record(op, text string, rules []grs.Rule) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls = append(e.calls, Call{Op: op, Text: text, Rules: slices.Clone(rules)})
}

// Calls returns a copy of the recorded invocations.
func (e *Engine) Calls() []Call {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.calls)
}

func (e *Engine) Check(_ context.Context, text string, rules []grs.Rule) ([]grs.Diagnostic, error) {
	e.record("check", text, rules)
	if e.Err != nil {
		return nil, e.Err
	}
	return e.selected(rules), nil
}

func (e *Engine) selected(rules []grs.Rule) []grs.Diagnostic {
	out := make([]grs.Diagnostic, 0, len(e.Diagnostics))
	for _, d := range e.Diagnostics {
		if slices.Contains(rules, d.Kind) {
			out = append(out, d)
		}
	}
	return out
}

func (e *Engine) Fix(_ context.Context, text string, rules []grs.Rule) (string, error) {
	e.record("fix", text, rules)
	if e.Err != nil {
		return "", e.Err
	}
	fixed, _, err := fix.Apply(text, e.selected(rules))
	if err != nil && !errors.Is(err, fix.ErrNoFixes) {
		return "", err
	}
	return fixed, nil
}

func (e *Engine) Tokenize(_ context.Context, text string) ([]grs.Token, error) {
	e.record("tokenize", text, nil)
	if e.Err != nil {
		return nil, e.Err
	}
	return slices.Clone(e.Tokens), nil
}

func (e *Engine) ToMonotonic(_ context.Context, text string) (string, error) {
	e.record("to_monotonic", text, nil)
	if e.Err != nil {
		return "", e.Err
	}
	if out, ok := e.Monotonic[text]; ok {
		return out, nil
	}
	return text, nil
}

func (e *Engine) Syllabify(_ context.Context, text string) ([]string, error) {
	e.record("syllabify", text, nil)
	if e.Err != nil {
		return nil, e.Err
	}
	if out, ok := e.Syllables[text]; ok {
		return slices.Clone(out), nil
	}
	return []string{text}, nil
}
