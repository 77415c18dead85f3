package source

import (
	"testing"
)

func TestSpan_Intersects(t *testing.T) {
	node := Span{Start: 10, End: 20}
	tests := []struct {
		name  string
		other Span
		want  bool
	}{
		{"caret inside", Span{Start: 15, End: 15}, true},
		{"caret at start", Span{Start: 10, End: 10}, true},
		{"caret at end", Span{Start: 20, End: 20}, true},
		{"caret before", Span{Start: 9, End: 9}, false},
		{"caret after", Span{Start: 21, End: 21}, false},
		{"overlaps left", Span{Start: 5, End: 12}, true},
		{"touches left", Span{Start: 5, End: 10}, true},
		{"covers", Span{Start: 0, End: 30}, true},
		{"disjoint right", Span{Start: 21, End: 30}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := node.Intersects(tt.other); got != tt.want {
				t.Errorf("Intersects(%v) = %v, want %v", tt.other, got, tt.want)
			}
		})
	}
}

func TestSpan_ContainsAndString(t *testing.T) {
	s := Span{File: 2, Start: 4, End: 8}
	if !s.Contains(4) || s.Contains(8) {
		t.Error("Contains must be half-open")
	}
	if s.Len() != 4 || s.Empty() {
		t.Error("Len/Empty mismatch")
	}
	if got := s.String(); got != "2:[4,8)" {
		t.Errorf("String() = %q", got)
	}
}
