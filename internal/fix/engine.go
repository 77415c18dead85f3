package fix

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"localtofield/internal/diag"
	"localtofield/internal/source"
)

var (
	// ErrConflict is returned when two edits overlap.
	ErrConflict = errors.New("conflicting edits")
	// ErrOutOfRange is returned when an edit does not fit the text.
	ErrOutOfRange = errors.New("edit span out of range")
	// ErrGuardMismatch is returned when OldText does not match the text under the edit.
	ErrGuardMismatch = errors.New("existing text does not match expected content")
)

// ApplyEdits applies edits to content in one pass. Spans are in content's
// coordinates. Insertions at the same offset keep their relative order and
// land before a deletion starting there.
func ApplyEdits(content string, edits []diag.FixEdit) (string, error) {
	sorted := sortEdits(edits)
	for i := 1; i < len(sorted); i++ {
		if spansConflict(sorted[i-1], sorted[i]) {
			return "", fmt.Errorf("%w: [%d,%d) and [%d,%d)", ErrConflict,
				sorted[i-1].Span.Start, sorted[i-1].Span.End, sorted[i].Span.Start, sorted[i].Span.End)
		}
	}

	var b strings.Builder
	b.Grow(len(content) + growth(sorted))
	cursor := 0
	for _, e := range sorted {
		start, end := int(e.Span.Start), int(e.Span.End)
		if end < start || end > len(content) {
			return "", fmt.Errorf("%w: [%d,%d) in %d bytes", ErrOutOfRange, start, end, len(content))
		}
		if e.OldText != "" && content[start:end] != e.OldText {
			return "", fmt.Errorf("%w at [%d,%d)", ErrGuardMismatch, start, end)
		}
		b.WriteString(content[cursor:start])
		b.WriteString(e.NewText)
		cursor = end
	}
	b.WriteString(content[cursor:])
	return b.String(), nil
}

// Splice removes the remove span and inserts text at insertAt. Both positions
// are in the coordinates of the original text.
func Splice(content string, remove source.Span, insertAt uint32, inserted string) (string, error) {
	edits := []diag.FixEdit{Delete(remove, "")}
	if inserted != "" {
		edits = append(edits, Insert(remove.File, insertAt, inserted))
	}
	return ApplyEdits(content, edits)
}

// MapOffset translates pos from original coordinates into the coordinates of
// the text produced by ApplyEdits(edits). A position inside a replaced span
// maps to where the replacement starts; text inserted at pos lands before it.
func MapOffset(edits []diag.FixEdit, pos uint32) uint32 {
	sorted := sortEdits(edits)
	for _, e := range sorted {
		if e.Span.Start < pos && pos < e.Span.End {
			pos = e.Span.Start
			break
		}
	}
	return uint32(int(pos) + cumulativeDelta(sorted, int(pos)))
}

// sortEdits orders edits by start; at equal starts insertions come first and
// keep their input order.
func sortEdits(edits []diag.FixEdit) []diag.FixEdit {
	sorted := slices.Clone(edits)
	slices.SortStableFunc(sorted, func(a, b diag.FixEdit) int {
		if a.Span.Start != b.Span.Start {
			return cmpUint(a.Span.Start, b.Span.Start)
		}
		return cmpUint(a.Span.End, b.Span.End)
	})
	return sorted
}

func cmpUint(a, b uint32) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// spansConflict reports whether two edits overlap. a must not start after b.
// Zero-length edits conflict only when they fall strictly inside a non-empty
// span.
func spansConflict(a, b diag.FixEdit) bool {
	aStart, aEnd := a.Span.Start, a.Span.End
	bStart, bEnd := b.Span.Start, b.Span.End

	if aStart == aEnd && bStart == bEnd {
		return false
	}
	if aStart == aEnd {
		return bStart < aStart && aStart < bEnd
	}
	if bStart == bEnd {
		return aStart < bStart && bStart < aEnd
	}
	return aStart < bEnd && bStart < aEnd
}

func growth(edits []diag.FixEdit) int {
	n := 0
	for _, e := range edits {
		if d := len(e.NewText) - int(e.Span.End-e.Span.Start); d > 0 {
			n += d
		}
	}
	return n
}

// cumulativeDelta sums the length changes of sorted edits that end at or before pos.
func cumulativeDelta(edits []diag.FixEdit, pos int) int {
	delta := 0
	for _, e := range edits {
		eStart := int(e.Span.Start)
		if eStart > pos {
			break
		}
		eEnd := int(e.Span.End)
		if eEnd <= pos {
			delta += len(e.NewText) - (eEnd - eStart)
		}
	}
	return delta
}
