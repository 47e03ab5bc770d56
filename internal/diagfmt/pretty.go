package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
)

// PrettyOpts configures pretty-printing of records.
type PrettyOpts struct {
	Path  string
	Color bool
}

var (
	kindColor  = color.New(color.FgYellow, color.Bold)
	fixColor   = color.New(color.FgGreen)
	caretColor = color.New(color.FgRed, color.Bold)
	pathColor  = color.New(color.Bold)
)

// Pretty prints one block per record:
//
//	<path>:<line>:<col>: <kind> -> "<fix>"
//	   | <source line>
//	   | ^~~~
//
// Ranges must be in code points.
func Pretty(w io.Writer, text string, records []Record, opts PrettyOpts) error {
	runes := []rune(text)
	lines := lineStarts(runes)
	path := opts.Path
	if path == "" {
		path = "<input>"
	}
	paint := func(c *color.Color, s string) string {
		if !opts.Color {
			return s
		}
		c.EnableColor()
		return c.Sprint(s)
	}

	for _, rec := range records {
		start := clamp(rec.Range.Start, 0, len(runes))
		end := clamp(rec.Range.End, start, len(runes))
		line := lineOf(lines, start)
		lineStart := lines[line]
		lineEnd := len(runes)
		if line+1 < len(lines) {
			lineEnd = lines[line+1] - 1 // без '\n'
		}

		header := fmt.Sprintf("%s:%d:%d: %s", paint(pathColor, path), line+1, start-lineStart+1, paint(kindColor, rec.Kind))
		if rec.Fix != nil {
			header += " -> " + paint(fixColor, fmt.Sprintf("%q", *rec.Fix))
		}
		if _, err := fmt.Fprintln(w, header); err != nil {
			return err
		}

		src := string(runes[lineStart:lineEnd])
		pad := runewidth.StringWidth(string(runes[lineStart:start]))
		underEnd := min(end, lineEnd)
		width := 1
		if underEnd > start {
			width = max(runewidth.StringWidth(string(runes[start:underEnd])), 1)
		}
		caret := "^" + strings.Repeat("~", width-1)
		if _, err := fmt.Fprintf(w, "   | %s\n   | %s%s\n", src, strings.Repeat(" ", pad), paint(caretColor, caret)); err != nil {
			return err
		}
	}
	return nil
}

// lineStarts returns the rune index of the first rune of every line.
func lineStarts(runes []rune) []int {
	out := []int{0}
	for i, r := range runes {
		if r == '\n' {
			out = append(out, i+1)
		}
	}
	return out
}

func lineOf(starts []int, pos int) int {
	lo, hi := 0, len(starts)-1
	for lo < hi {
		mid := (lo + hi + 1) >> 1
		if starts[mid] <= pos {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
