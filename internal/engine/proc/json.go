package proc

import (
	"bytes"
	"encoding/json"
	"fmt"

	"grsbridge/internal/grs"
)

// DecodeDiagnostics decodes a JSON array of check records.
func DecodeDiagnostics(data []byte) ([]grs.Diagnostic, error) {
	var wire []wireDiagnostic
	if err := decodeArray(data, "diagnostics", &wire); err != nil {
		return nil, err
	}
	out := make([]grs.Diagnostic, 0, len(wire))
	for _, wd := range wire {
		d, err := wd.diagnostic()
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// DecodeTokens decodes a JSON array of token records.
func DecodeTokens(data []byte) ([]grs.Token, error) {
	var wire []wireToken
	if err := decodeArray(data, "tokens", &wire); err != nil {
		return nil, err
	}
	out := make([]grs.Token, 0, len(wire))
	for _, t := range wire {
		out = append(out, t.token())
	}
	return out, nil
}

// DecodeSyllables decodes a JSON array of strings.
func DecodeSyllables(data []byte) ([]string, error) {
	var out []string
	if err := decodeArray(data, "syllables", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func decodeArray(data []byte, what string, v any) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '[' {
		return fmt.Errorf("%w: %s: expected an array", ErrProtocol, what)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrProtocol, what, err)
	}
	return nil
}
