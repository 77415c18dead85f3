package diag

import (
	"localtofield/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

// FixEdit replaces Span with NewText. OldText, when set, guards the edit:
// the fix engine refuses to apply it if the source no longer matches.
type FixEdit struct {
	Span    source.Span
	NewText string
	OldText string
}

type Fix struct {
	Title string
	Edits []FixEdit
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
	Fixes    []Fix
}
