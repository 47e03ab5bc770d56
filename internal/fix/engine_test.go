package fix

import (
	"errors"
	"testing"

	"grsbridge/internal/grs"
	"grsbridge/internal/source"
)

func withFix(kind grs.Rule, start, end int, repl string) grs.Diagnostic {
	span := source.NewSpan(start, end)
	return grs.Diagnostic{Kind: kind, Span: span, Fix: &grs.Fix{Span: span, Replacement: repl}}
}

func TestApply(t *testing.T) {
	text := "το σπιτι του"
	// "σπιτι" занимает байты 5..15
	diags := []grs.Diagnostic{
		withFix(grs.MultisyllableNotAccented, 5, 15, "σπίτι"),
		{Kind: grs.DuplicatedWord, Span: source.NewSpan(0, 4)},
	}
	got, res, err := Apply(text, diags)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got != "το σπίτι του" {
		t.Fatalf("unexpected text %q", got)
	}
	if len(res.Applied) != 1 || res.Applied[0].ID != "MNA-5-0" {
		t.Fatalf("unexpected applied %+v", res.Applied)
	}
}

func TestApply_OrderIndependentOfInput(t *testing.T) {
	text := "αα ββ γγ"
	diags := []grs.Diagnostic{
		withFix(grs.MixedScripts, 10, 14, "Γ"),
		withFix(grs.MixedScripts, 0, 4, "Α"),
		withFix(grs.MixedScripts, 5, 9, "Β"),
	}
	got, res, err := Apply(text, diags)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got != "Α Β Γ" {
		t.Fatalf("unexpected text %q", got)
	}
	if len(res.Applied) != 3 || len(res.Skipped) != 0 {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestApply_SkipsConflictsAndBadSpans(t *testing.T) {
	text := "καλημέρα"
	diags := []grs.Diagnostic{
		withFix(grs.AddFinalN, 0, 8, "ΚΑΛΗ"),
		withFix(grs.AddFinalN, 4, 10, "x"),  // пересекается с первым
		withFix(grs.AddFinalN, 11, 12, "y"), // середина символа
		withFix(grs.AddFinalN, 10, 99, "z"), // за концом
	}
	got, res, err := Apply(text, diags)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got != "ΚΑΛΗμέρα" {
		t.Fatalf("unexpected text %q", got)
	}
	if len(res.Skipped) != 3 {
		t.Fatalf("expected 3 skipped, got %+v", res.Skipped)
	}
	reasons := map[string]bool{}
	for _, s := range res.Skipped {
		reasons[s.Reason] = true
	}
	for _, want := range []string{"conflicts with previously applied edits", "edit span not on a character boundary", "edit span out of range"} {
		if !reasons[want] {
			t.Errorf("missing skip reason %q in %+v", want, res.Skipped)
		}
	}
}

func TestApply_NoFixes(t *testing.T) {
	text := "λόγος"
	got, _, err := Apply(text, []grs.Diagnostic{{Kind: grs.DuplicatedWord, Span: source.NewSpan(0, 2)}})
	if !errors.Is(err, ErrNoFixes) {
		t.Fatalf("expected ErrNoFixes, got %v", err)
	}
	if got != text {
		t.Fatalf("text changed: %q", got)
	}
}

func TestSpansConflict(t *testing.T) {
	tests := []struct {
		name string
		a, b source.Span
		want bool
	}{
		{name: "disjoint", a: source.NewSpan(0, 2), b: source.NewSpan(3, 4), want: false},
		{name: "touching", a: source.NewSpan(0, 2), b: source.NewSpan(2, 4), want: false},
		{name: "overlap", a: source.NewSpan(0, 3), b: source.NewSpan(2, 4), want: true},
		{name: "same insertion point", a: source.NewSpan(2, 2), b: source.NewSpan(2, 2), want: true},
		{name: "insertion at edge", a: source.NewSpan(2, 2), b: source.NewSpan(2, 5), want: false},
		{name: "insertion inside", a: source.NewSpan(3, 3), b: source.NewSpan(2, 5), want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := spansConflict(tt.a, tt.b); got != tt.want {
				t.Fatalf("spansConflict(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			if got := spansConflict(tt.b, tt.a); got != tt.want {
				t.Fatalf("spansConflict is not symmetric for %v, %v", tt.a, tt.b)
			}
		})
	}
}
