// Package fix applies the Fix records of engine diagnostics to a text.
//
// Engines own conflict resolution for their native fix operation. This
// package is the fallback used when an engine only reports diagnostics: it
// applies every fix whose span does not overlap one already applied, in
// document order.
package fix

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"grsbridge/internal/grs"
	"grsbridge/internal/source"
)

// ErrNoFixes is returned when no fixes were applied.
var ErrNoFixes = errors.New("no applicable fixes found")

// AppliedFix records a successfully applied fix.
type AppliedFix struct {
	ID   string
	Kind grs.Rule
	Span source.Span
}

// SkippedFix captures a skipped fix with a reason.
type SkippedFix struct {
	ID     string
	Reason string
}

// ApplyResult aggregates applied and skipped fixes.
type ApplyResult struct {
	Applied []AppliedFix
	Skipped []SkippedFix
}

type candidate struct {
	id    string
	kind  grs.Rule
	fix   grs.Fix
	order int
}

// Apply rewrites text with the fixes of diagnostics and returns the new text.
// The text is returned unchanged together with ErrNoFixes when nothing applied.
func Apply(text string, diagnostics []grs.Diagnostic) (string, *ApplyResult, error) {
	result := &ApplyResult{
		Applied: make([]AppliedFix, 0),
		Skipped: make([]SkippedFix, 0),
	}

	candidates := gatherCandidates(diagnostics)
	if len(candidates) == 0 {
		return text, result, ErrNoFixes
	}
	sortCandidates(candidates)

	selected := make([]candidate, 0, len(candidates))
	for _, cand := range candidates {
		if reason := validate(text, cand.fix.Span); reason != "" {
			result.Skipped = append(result.Skipped, SkippedFix{ID: cand.id, Reason: reason})
			continue
		}
		if conflictsWithSelected(selected, cand) {
			result.Skipped = append(result.Skipped, SkippedFix{ID: cand.id, Reason: "conflicts with previously applied edits"})
			continue
		}
		selected = append(selected, cand)
	}
	if len(selected) == 0 {
		return text, result, ErrNoFixes
	}

	var b strings.Builder
	b.Grow(len(text))
	prev := 0
	for _, cand := range selected {
		b.WriteString(text[prev:cand.fix.Span.Start])
		b.WriteString(cand.fix.Replacement)
		prev = int(cand.fix.Span.End)
		result.Applied = append(result.Applied, AppliedFix{ID: cand.id, Kind: cand.kind, Span: cand.fix.Span})
	}
	b.WriteString(text[prev:])
	return b.String(), result, nil
}

// gatherCandidates collects fixes in diagnostic order. IDs are synthesized
// from the rule code, the start offset and the position in the input.
func gatherCandidates(diagnostics []grs.Diagnostic) []candidate {
	cands := make([]candidate, 0)
	for idx, d := range diagnostics {
		if d.Fix == nil {
			continue
		}
		cands = append(cands, candidate{
			id:    fmt.Sprintf("%s-%d-%d", d.Kind.Code(), d.Fix.Span.Start, idx),
			kind:  d.Kind,
			fix:   *d.Fix,
			order: len(cands),
		})
	}
	return cands
}

// sortCandidates orders by span start, span end, then insertion order.
func sortCandidates(candidates []candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		fi, fj := candidates[i].fix.Span, candidates[j].fix.Span
		if fi.Start != fj.Start {
			return fi.Start < fj.Start
		}
		if fi.End != fj.End {
			return fi.End < fj.End
		}
		return candidates[i].order < candidates[j].order
	})
}

func validate(text string, span source.Span) string {
	if !span.Within(len(text)) {
		return "edit span out of range"
	}
	if !onBoundary(text, int(span.Start)) || !onBoundary(text, int(span.End)) {
		return "edit span not on a character boundary"
	}
	return ""
}

func onBoundary(text string, off int) bool {
	return off == len(text) || utf8.RuneStart(text[off])
}

func conflictsWithSelected(selected []candidate, cand candidate) bool {
	for _, prev := range selected {
		if spansConflict(prev.fix.Span, cand.fix.Span) {
			return true
		}
	}
	return false
}

// spansConflict reports whether two edit spans overlap.
// Spans are half-open. Two insertions (Start == End) at the same point
// conflict, since their relative order would be ambiguous. An insertion
// conflicts with a non-empty span if it lies strictly inside it.
func spansConflict(a, b source.Span) bool {
	if a.Empty() && b.Empty() {
		return a.Start == b.Start
	}
	if a.Empty() {
		return b.Start < a.Start && a.Start < b.End
	}
	if b.Empty() {
		return a.Start < b.Start && b.Start < a.End
	}
	return a.Overlaps(b)
}
