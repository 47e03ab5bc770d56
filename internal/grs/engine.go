package grs

import "context"

// Engine is the orthography engine as seen from the boundary layer.
// Implementations must not retain text or rules between calls.
type Engine interface {
	// Check runs the selected rules and returns diagnostics in engine order.
	Check(ctx context.Context, text string, rules []Rule) ([]Diagnostic, error)
	// Fix applies every fix of the selected rules and returns the rewritten text.
	Fix(ctx context.Context, text string, rules []Rule) (string, error)
	Tokenize(ctx context.Context, text string) ([]Token, error)
	ToMonotonic(ctx context.Context, text string) (string, error)
	// Syllabify splits text into syllables; whitespace handling is the engine's.
	Syllabify(ctx context.Context, text string) ([]string, error)
}
