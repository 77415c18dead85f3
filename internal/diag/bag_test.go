package diag

import (
	"testing"

	"localtofield/internal/source"
)

func TestBagLimitAndSort(t *testing.T) {
	b := NewBag(3)
	b.Add(NewError(SynExpectSemicolon, source.Span{Start: 10, End: 11}, "b"))
	b.Add(New(SevWarning, RefNoEnclosingType, source.Span{Start: 2, End: 3}, "w"))
	b.Add(NewError(LexUnknownChar, source.Span{Start: 2, End: 3}, "e"))
	if b.Add(NewError(LexBadNumber, source.Span{}, "dropped")) {
		t.Fatal("bag must refuse items past its limit")
	}

	b.Sort()
	items := b.Items()
	if items[0].Code != LexUnknownChar || items[1].Code != RefNoEnclosingType || items[2].Code != SynExpectSemicolon {
		t.Fatalf("unexpected order: %v %v %v", items[0].Code, items[1].Code, items[2].Code)
	}
	if !b.HasErrors() || !b.HasWarnings() {
		t.Fatal("expected errors and warnings")
	}

	b.Filter(func(d Diagnostic) bool { return d.Severity == SevError })
	if b.Len() != 2 {
		t.Fatalf("expected 2 errors after filter, got %d", b.Len())
	}
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	bag := NewBag(10)
	r := NewDedupReporter(BagReporter{Bag: bag})

	rb := ReportError(r, SynExpectType, source.Span{Start: 1, End: 2}, "expected type").
		WithNote(source.Span{Start: 0, End: 1}, "declaration starts here")
	rb.Emit()
	rb.Emit()
	ReportError(r, SynExpectType, source.Span{Start: 1, End: 2}, "expected type").Emit()

	if bag.Len() != 1 {
		t.Fatalf("expected one diagnostic, got %d", bag.Len())
	}
	if len(bag.Items()[0].Notes) != 1 {
		t.Fatal("note lost")
	}
}

func TestDedupReporterIgnoresWording(t *testing.T) {
	bag := NewBag(10)
	r := NewDedupReporter(BagReporter{Bag: bag})
	sp := source.Span{Start: 4, End: 5}

	r.Report(SynExpectType, SevError, sp, "expected type", nil, nil)
	r.Report(SynExpectType, SevError, sp, "expected a type name", nil, nil)
	r.Report(SynExpectType, SevError, source.Span{Start: 6, End: 7}, "expected type", nil, nil)

	if bag.Len() != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", bag.Len())
	}
	if r.Suppressed() != 1 {
		t.Fatalf("Suppressed() = %d, want 1", r.Suppressed())
	}
}

func TestSeverityNames(t *testing.T) {
	if SevError.String() != "ERROR" || SevWarning.Label() != "warning" {
		t.Fatal("unexpected severity names")
	}
	if Severity(9).String() != "UNKNOWN" {
		t.Fatal("out-of-range severity")
	}
	if !SevError.AtLeast(SevWarning) || SevInfo.AtLeast(SevWarning) {
		t.Fatal("AtLeast ordering")
	}
}
