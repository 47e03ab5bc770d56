// Package rules resolves host configuration into the engine's rule selection.
package rules

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"sort"

	"github.com/rs/zerolog"

	"grsbridge/internal/diagfmt"
	"grsbridge/internal/grs"
)

var errNotObject = errors.New("options are not a JSON object")

// kindAliases maps the snake_case kind a host sees in scan results back to the rule.
var kindAliases = func() map[string]grs.Rule {
	m := make(map[string]grs.Rule)
	for _, r := range grs.AllRules() {
		m[diagfmt.SnakeCase(r.String())] = r
	}
	return m
}()

// Selector decodes options and logs what it had to ignore.
type Selector struct {
	Log zerolog.Logger
}

// NewSelector returns a Selector that logs to log.
func NewSelector(log zerolog.Logger) Selector {
	return Selector{Log: log}
}

// Select resolves options without logging. See Selector.Select.
func Select(options any) []grs.Rule {
	return NewSelector(zerolog.Nop()).Select(options)
}

// Select turns host options into a rule selection.
//
// nil means "all rules" and yields grs.DefaultRules. Otherwise options must be a
// mapping from rule code to bool: map[string]bool, map[string]any with bool
// values, or a JSON object in []byte / json.RawMessage form. Any other shape,
// or a mapping with a non-bool value, selects nothing. Codes set to true are
// resolved through the registry; unknown codes are dropped. The result keeps
// input order (sorted keys for Go maps) without duplicates.
func (s Selector) Select(options any) []grs.Rule {
	keys, enabled, absent := s.decode(options)
	if absent {
		return grs.Defaults()
	}
	out := make([]grs.Rule, 0, len(keys))
	seen := make(map[grs.Rule]struct{}, len(keys))
	for _, key := range keys {
		if !enabled[key] {
			continue
		}
		r, ok := Lookup(key)
		if !ok {
			s.Log.Debug().Str("code", key).Msg("unknown rule code ignored")
			continue
		}
		if _, dup := seen[r]; dup {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out
}

// Lookup resolves a short code ("MDA") or a snake_case kind
// ("missing_double_accents") to its rule.
func Lookup(key string) (grs.Rule, bool) {
	if r, ok := grs.LookupCode(key); ok {
		return r, true
	}
	r, ok := kindAliases[key]
	return r, ok
}

func (s Selector) decode(options any) (keys []string, enabled map[string]bool, absent bool) {
	switch v := options.(type) {
	case nil:
		return nil, nil, true
	case map[string]bool:
		return sortedKeys(v), v, false
	case map[string]any:
		m := make(map[string]bool, len(v))
		for key, raw := range v {
			b, ok := raw.(bool)
			if !ok {
				s.Log.Debug().Str("code", key).Msg("non-boolean rule flag, ignoring options")
				return nil, nil, false
			}
			m[key] = b
		}
		return sortedKeys(m), m, false
	case json.RawMessage:
		return s.decodeJSON(v)
	case []byte:
		return s.decodeJSON(v)
	}
	s.Log.Debug().Str("type", typeName(options)).Msg("options are not a mapping, ignoring")
	return nil, nil, false
}

// decodeJSON reads a flat JSON object, keeping key order.
// A literal null counts as absent options.
func (s Selector) decodeJSON(data []byte) ([]string, map[string]bool, bool) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil, true
	}
	keys, m, err := readObject(trimmed)
	if err != nil {
		s.Log.Debug().Err(err).Msg("malformed options, ignoring")
		return nil, nil, false
	}
	return keys, m, false
}

func readObject(data []byte) ([]string, map[string]bool, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, nil, errNotObject
	}
	var keys []string
	m := make(map[string]bool)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, nil, errNotObject
		}
		var value bool
		if err := dec.Decode(&value); err != nil {
			return nil, nil, err
		}
		if _, seen := m[key]; !seen {
			keys = append(keys, key)
		}
		m[key] = value
	}
	if _, err := dec.Token(); err != nil { // закрывающая '}'
		return nil, nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, nil, errors.New("trailing data after options object")
	}
	return keys, m, nil
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func typeName(v any) string {
	switch v.(type) {
	case []any:
		return "list"
	case string:
		return "string"
	case float64, int, int64:
		return "number"
	case bool:
		return "bool"
	}
	return "other"
}
