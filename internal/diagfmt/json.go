package diagfmt

import (
	"encoding/json"
	"io"
)

// DiagnosticsOutput is the root of `scan --format json` for one input.
type DiagnosticsOutput struct {
	Path        string   `json:"path,omitempty"`
	Diagnostics []Record `json:"diagnostics"`
	Count       int      `json:"count"`
}

// BuildDiagnosticsOutput wraps records without serializing them.
func BuildDiagnosticsOutput(path string, records []Record) DiagnosticsOutput {
	if records == nil {
		records = []Record{}
	}
	return DiagnosticsOutput{Path: path, Diagnostics: records, Count: len(records)}
}

// WriteJSON writes v as indented JSON without HTML escaping.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
