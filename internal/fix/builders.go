package fix

import (
	"localtofield/internal/diag"
	"localtofield/internal/source"
)

// Insert creates an edit that inserts text at a single offset.
func Insert(file source.FileID, at uint32, text string) diag.FixEdit {
	return diag.FixEdit{
		Span:    source.Span{File: file, Start: at, End: at},
		NewText: text,
	}
}

// Delete removes text covered by span. expect, when non-empty, guards the edit.
func Delete(span source.Span, expect string) diag.FixEdit {
	return diag.FixEdit{
		Span:    span,
		OldText: expect,
	}
}

// Replace replaces text covered by span with newText.
func Replace(span source.Span, newText, expect string) diag.FixEdit {
	return diag.FixEdit{
		Span:    span,
		NewText: newText,
		OldText: expect,
	}
}
