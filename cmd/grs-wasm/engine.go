//go:build js && wasm

package main

import (
	"context"
	"errors"
	"fmt"
	"syscall/js"

	"grsbridge/internal/engine/proc"
	"grsbridge/internal/grs"
)

var errNoEngine = errors.New("globalThis.grsEngine is not defined")

// jsEngine adapts a JavaScript engine object to grs.Engine. Results are read
// back through JSON.stringify, so a malformed value is an error, never a
// runtime panic.
type jsEngine struct {
	obj js.Value
}

func newJSEngine(obj js.Value) (*jsEngine, error) {
	if obj.IsUndefined() || obj.IsNull() {
		return nil, errNoEngine
	}
	for _, method := range []string{"check", "fix", "tokenize", "to_monotonic", "syllabify"} {
		if obj.Get(method).Type() != js.TypeFunction {
			return nil, fmt.Errorf("grsEngine.%s is not a function", method)
		}
	}
	return &jsEngine{obj: obj}, nil
}

func ruleArray(rules []grs.Rule) []any {
	out := make([]any, 0, len(rules))
	for _, r := range rules {
		out = append(out, r.String())
	}
	return out
}

func (e *jsEngine) Check(_ context.Context, text string, rules []grs.Rule) ([]grs.Diagnostic, error) {
	data, err := callJSON(e.obj, "check", text, ruleArray(rules))
	if err != nil {
		return nil, err
	}
	out, err := proc.DecodeDiagnostics(data)
	if err != nil {
		return nil, fmt.Errorf("grsEngine.check: %w", err)
	}
	return out, nil
}

func (e *jsEngine) Fix(_ context.Context, text string, rules []grs.Rule) (string, error) {
	return callString(e.obj, "fix", text, ruleArray(rules))
}

func (e *jsEngine) Tokenize(_ context.Context, text string) ([]grs.Token, error) {
	data, err := callJSON(e.obj, "tokenize", text)
	if err != nil {
		return nil, err
	}
	out, err := proc.DecodeTokens(data)
	if err != nil {
		return nil, fmt.Errorf("grsEngine.tokenize: %w", err)
	}
	return out, nil
}

func (e *jsEngine) ToMonotonic(_ context.Context, text string) (string, error) {
	return callString(e.obj, "to_monotonic", text)
}

func (e *jsEngine) Syllabify(_ context.Context, text string) ([]string, error) {
	data, err := callJSON(e.obj, "syllabify", text)
	if err != nil {
		return nil, err
	}
	out, err := proc.DecodeSyllables(data)
	if err != nil {
		return nil, fmt.Errorf("grsEngine.syllabify: %w", err)
	}
	return out, nil
}

func callString(obj js.Value, method string, args ...any) (string, error) {
	res, err := callEngine(obj, method, args...)
	if err != nil {
		return "", err
	}
	if res.Type() != js.TypeString {
		return "", fmt.Errorf("grsEngine.%s: %w: expected a string, got %s", method, proc.ErrProtocol, res.Type())
	}
	return res.String(), nil
}

func callJSON(obj js.Value, method string, args ...any) ([]byte, error) {
	res, err := callEngine(obj, method, args...)
	if err != nil {
		return nil, err
	}
	data, err := stringify(res)
	if err != nil {
		return nil, fmt.Errorf("grsEngine.%s: %w", method, err)
	}
	return data, nil
}
