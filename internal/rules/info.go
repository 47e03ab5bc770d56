package rules

import (
	"slices"

	"grsbridge/internal/diagfmt"
	"grsbridge/internal/grs"
)

// Info describes one registered rule for listings.
type Info struct {
	Code    string `json:"code" msgpack:"code"`
	Kind    string `json:"kind" msgpack:"kind"`
	Title   string `json:"title" msgpack:"title"`
	Default bool   `json:"default" msgpack:"default"`
}

// Describe lists every registered rule in declaration order.
func Describe() []Info {
	all := grs.AllRules()
	out := make([]Info, 0, len(all))
	for _, r := range all {
		out = append(out, Info{
			Code:    r.Code(),
			Kind:    diagfmt.SnakeCase(r.String()),
			Title:   r.Title(),
			Default: slices.Contains(grs.DefaultRules[:], r),
		})
	}
	return out
}

// Codes returns the short codes of rules, in order.
func Codes(rules []grs.Rule) []string {
	out := make([]string, 0, len(rules))
	for _, r := range rules {
		out = append(out, r.Code())
	}
	return out
}
