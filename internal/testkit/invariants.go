package testkit

import (
	"fmt"
	"unicode/utf8"

	"grsbridge/internal/diagfmt"
	"grsbridge/internal/grs"
)

// CheckRecordInvariants verifies records produced for diagnostics over text:
//  1. one record per diagnostic, same order (kinds line up);
//  2. every range is ordered and inside the text's code point count;
//  3. a fix is present exactly when the diagnostic carries one.
func CheckRecordInvariants(text string, diagnostics []grs.Diagnostic, records []diagfmt.Record) error {
	if len(records) != len(diagnostics) {
		return fmt.Errorf("cardinality: %d records for %d diagnostics", len(records), len(diagnostics))
	}
	total := utf8.RuneCountInString(text)
	for i, rec := range records {
		d := diagnostics[i]
		if want := diagfmt.SnakeCase(d.Kind.String()); rec.Kind != want {
			return fmt.Errorf("record %d: kind %q, want %q", i, rec.Kind, want)
		}
		if rec.Range.Start < 0 || rec.Range.End < rec.Range.Start {
			return fmt.Errorf("record %d: bad range %v", i, rec.Range)
		}
		if rec.Range.End > total {
			return fmt.Errorf("record %d: range %v beyond text length %d", i, rec.Range, total)
		}
		if (rec.Fix == nil) != (d.Fix == nil) {
			return fmt.Errorf("record %d: fix presence mismatch", i)
		}
	}
	return nil
}
