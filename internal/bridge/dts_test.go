package bridge

import (
	"strings"
	"testing"
)

func TestTypeScriptDeclarations(t *testing.T) {
	got := TypeScriptDeclarations()
	for _, want := range []string{
		`| "missing_double_accents"`,
		`| "add_final_n"`,
		`| "MDA"`,
		"fix: string | null;",
		"export function scan_text(",
		"export function syllabify(text: string, separator: string)",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("declarations missing %q", want)
		}
	}
}
