package diag

import "localtofield/internal/source"

// dedupKey ignores the message: parser recovery can report the same problem
// at the same span twice with different wording.
type dedupKey struct {
	code Code
	span source.Span
}

// DedupReporter forwards the first diagnostic per code and primary span and
// drops the rest.
type DedupReporter struct {
	next       Reporter
	seen       map[dedupKey]struct{}
	suppressed int
}

func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{next: next, seen: make(map[dedupKey]struct{})}
}

func (r *DedupReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note, fixes []Fix) {
	if r == nil || r.next == nil {
		return
	}
	key := dedupKey{code: code, span: primary}
	if _, dup := r.seen[key]; dup {
		r.suppressed++
		return
	}
	r.seen[key] = struct{}{}
	r.next.Report(code, sev, primary, msg, notes, fixes)
}

// Suppressed returns how many duplicates were dropped.
func (r *DedupReporter) Suppressed() int { return r.suppressed }
