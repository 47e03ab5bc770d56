package grs

import "testing"

func TestLookupCode(t *testing.T) {
	tests := []struct {
		code string
		want Rule
		ok   bool
	}{
		{code: "MDA", want: MissingDoubleAccents, ok: true},
		{code: "AFN", want: AddFinalN, ok: true},
		{code: "AC", want: AmbiguousChar, ok: true},
		{code: "mda", ok: false},
		{code: "ZZZ", ok: false},
		{code: "", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			got, ok := LookupCode(tt.code)
			if ok != tt.ok || got != tt.want {
				t.Fatalf("LookupCode(%q) = %v, %v; want %v, %v", tt.code, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestRegistryRoundTrip(t *testing.T) {
	for _, r := range AllRules() {
		byC, ok := LookupCode(r.Code())
		if !ok || byC != r {
			t.Errorf("code %q does not map back to %v", r.Code(), r)
		}
		byN, ok := LookupName(r.String())
		if !ok || byN != r {
			t.Errorf("name %q does not map back to %v", r.String(), r)
		}
	}
}

func TestDefaultsAreFreshCopies(t *testing.T) {
	a := Defaults()
	a[0] = UnknownRule
	b := Defaults()
	if b[0] != MissingDoubleAccents {
		t.Fatalf("Defaults() shares storage: got %v", b[0])
	}
	if len(b) != 10 {
		t.Fatalf("expected 10 default rules, got %d", len(b))
	}
}

func TestRuleStringOutOfRange(t *testing.T) {
	if got := Rule(200).String(); got != "Rule(200)" {
		t.Fatalf("unexpected name: %q", got)
	}
	if Rule(200).Known() || UnknownRule.Known() {
		t.Fatal("unregistered rules must not be known")
	}
}
