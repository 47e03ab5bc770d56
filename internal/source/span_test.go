package source

import (
	"math"
	"testing"
)

func TestNewSpan_Clamps(t *testing.T) {
	tests := []struct {
		name       string
		start, end int
		expected   Span
	}{
		{name: "plain", start: 2, end: 8, expected: Span{Start: 2, End: 8}},
		{name: "negative start", start: -4, end: 3, expected: Span{Start: 0, End: 3}},
		{name: "both negative", start: -1, end: -1, expected: Span{}},
		{name: "saturates", start: 0, end: math.MaxInt64, expected: Span{Start: 0, End: math.MaxUint32}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewSpan(tt.start, tt.end); got != tt.expected {
				t.Errorf("NewSpan(%d, %d) = %+v, want %+v", tt.start, tt.end, got, tt.expected)
			}
		})
	}
}

func TestSpan_LenAndValid(t *testing.T) {
	if got := (Span{Start: 3, End: 9}).Len(); got != 6 {
		t.Fatalf("Len() = %d, want 6", got)
	}
	inverted := Span{Start: 9, End: 3}
	if inverted.Valid() {
		t.Fatal("inverted span reported valid")
	}
	if inverted.Len() != 0 {
		t.Fatalf("inverted Len() = %d, want 0", inverted.Len())
	}
	if !(Span{Start: 4, End: 4}).Empty() {
		t.Fatal("zero-length span should be empty")
	}
}

func TestSpan_Overlaps(t *testing.T) {
	a := Span{Start: 0, End: 4}
	tests := []struct {
		name  string
		other Span
		want  bool
	}{
		{name: "touching", other: Span{Start: 4, End: 6}, want: false},
		{name: "inside", other: Span{Start: 1, End: 2}, want: true},
		{name: "crossing", other: Span{Start: 3, End: 10}, want: true},
		{name: "disjoint", other: Span{Start: 7, End: 9}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Overlaps(tt.other); got != tt.want {
				t.Errorf("Overlaps(%v) = %v, want %v", tt.other, got, tt.want)
			}
		})
	}
}

func TestSpan_Slice(t *testing.T) {
	text := "Καλημέρα"
	if got := (Span{Start: 0, End: 4}).Slice(text); got != "Κα" {
		t.Fatalf("Slice = %q, want %q", got, "Κα")
	}
	if got := (Span{Start: 10, End: 100}).Slice(text); got != "έρα" {
		t.Fatalf("clamped Slice = %q, want %q", got, "έρα")
	}
	if got := (Span{Start: 8, End: 2}).Slice(text); got != "" {
		t.Fatalf("inverted Slice = %q, want empty", got)
	}
}

func TestSpan_Cover(t *testing.T) {
	got := Span{Start: 4, End: 6}.Cover(Span{Start: 1, End: 5})
	if got != (Span{Start: 1, End: 6}) {
		t.Fatalf("Cover = %+v", got)
	}
}
