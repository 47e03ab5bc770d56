package grs

import "fmt"

// Rule identifies one orthographic rule of the engine.
type Rule uint8

const (
	UnknownRule Rule = iota
	MissingDoubleAccents
	MissingAccentCapital
	DuplicatedWord
	AddFinalN
	RemoveFinalN
	OutdatedSpelling
	MonosyllableAccented
	MultisyllableNotAccented
	MixedScripts
	AmbiguousChar

	ruleCount
)

type ruleInfo struct {
	name  string // upper camel, as the engine spells it
	code  string // short stable code for host configuration
	title string
}

var registry = [ruleCount]ruleInfo{
	UnknownRule:              {name: "UnknownRule", title: "Unknown rule"},
	MissingDoubleAccents:     {name: "MissingDoubleAccents", code: "MDA", title: "Missing double accent"},
	MissingAccentCapital:     {name: "MissingAccentCapital", code: "MAC", title: "Missing accent on capital letter"},
	DuplicatedWord:           {name: "DuplicatedWord", code: "DW", title: "Duplicated word"},
	AddFinalN:                {name: "AddFinalN", code: "AFN", title: "Final n should be added"},
	RemoveFinalN:             {name: "RemoveFinalN", code: "RFN", title: "Final n should be removed"},
	OutdatedSpelling:         {name: "OutdatedSpelling", code: "OS", title: "Outdated spelling"},
	MonosyllableAccented:     {name: "MonosyllableAccented", code: "MA", title: "Accented monosyllable"},
	MultisyllableNotAccented: {name: "MultisyllableNotAccented", code: "MNA", title: "Unaccented multisyllable"},
	MixedScripts:             {name: "MixedScripts", code: "MS", title: "Mixed scripts in word"},
	AmbiguousChar:            {name: "AmbiguousChar", code: "AC", title: "Ambiguous character"},
}

// DefaultRules is the canonical rule list used when the host passes no options.
// Order is the engine's declared order and must stay stable.
var DefaultRules = [...]Rule{
	MissingDoubleAccents,
	MissingAccentCapital,
	DuplicatedWord,
	AddFinalN,
	RemoveFinalN,
	OutdatedSpelling,
	MonosyllableAccented,
	MultisyllableNotAccented,
	MixedScripts,
	AmbiguousChar,
}

var (
	byCode = make(map[string]Rule, ruleCount)
	byName = make(map[string]Rule, ruleCount)
)

func init() {
	for r := UnknownRule + 1; r < ruleCount; r++ {
		byCode[registry[r].code] = r
		byName[registry[r].name] = r
	}
}

// String returns the engine's upper camel name, e.g. "MissingDoubleAccents".
func (r Rule) String() string {
	if r >= ruleCount {
		return fmt.Sprintf("Rule(%d)", uint8(r))
	}
	return registry[r].name
}

// Code returns the short host code, "" for unknown rules.
func (r Rule) Code() string {
	if r >= ruleCount {
		return ""
	}
	return registry[r].code
}

func (r Rule) Title() string {
	if r >= ruleCount {
		return registry[UnknownRule].title
	}
	return registry[r].title
}

// Known reports whether r is a registered rule.
func (r Rule) Known() bool {
	return r > UnknownRule && r < ruleCount
}

// LookupCode maps a short code ("MDA") to its rule.
func LookupCode(code string) (Rule, bool) {
	r, ok := byCode[code]
	return r, ok
}

// LookupName maps an upper camel name ("MissingDoubleAccents") to its rule.
func LookupName(name string) (Rule, bool) {
	r, ok := byName[name]
	return r, ok
}

// AllRules returns every registered rule in declaration order.
func AllRules() []Rule {
	out := make([]Rule, 0, ruleCount-1)
	for r := UnknownRule + 1; r < ruleCount; r++ {
		out = append(out, r)
	}
	return out
}

// Defaults returns a fresh copy of DefaultRules.
func Defaults() []Rule {
	out := make([]Rule, len(DefaultRules))
	copy(out, DefaultRules[:])
	return out
}
