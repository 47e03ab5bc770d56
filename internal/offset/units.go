package offset

import (
	"fmt"
	"strings"
	"unicode/utf16"
)

// Units selects how host characters are counted.
type Units uint8

const (
	// UnitsCodepoints counts Unicode scalar values.
	UnitsCodepoints Units = iota
	// UnitsUTF16 counts UTF-16 code units; runes outside the BMP count twice.
	UnitsUTF16
)

func (u Units) String() string {
	switch u {
	case UnitsCodepoints:
		return "codepoints"
	case UnitsUTF16:
		return "utf16"
	}
	return "unknown"
}

// ParseUnits accepts "codepoints" (or "chars") and "utf16". Empty means codepoints.
func ParseUnits(s string) (Units, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "codepoints", "chars":
		return UnitsCodepoints, nil
	case "utf16", "utf-16":
		return UnitsUTF16, nil
	}
	return UnitsCodepoints, fmt.Errorf("unknown range units %q", s)
}

// width returns how many host units rune r occupies.
func (u Units) width(r rune) int {
	if u == UnitsUTF16 {
		if n := utf16.RuneLen(r); n > 0 {
			return n
		}
	}
	return 1
}
