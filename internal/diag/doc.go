// Package diag defines the diagnostic model shared by the lexer, the parser
// and the refactoring driver.
//
// Diagnostic is the central record: Severity, a numeric Code with a stable
// string form (LEX1xxx, SYN2xxx, REF3xxx, IO4xxx), a Message, the Primary span
// and optional Notes and Fixes.
//
// Producers emit through a Reporter, usually wrapped in a ReportBuilder:
//
//	diag.ReportError(r, diag.SynExpectSemicolon, sp, "expected ';'").
//		WithNote(other, "statement starts here").
//		Emit()
//
// BagReporter collects into a Bag, which supports sorting and filtering.
// Package diag performs no formatting; rendering lives in internal/diagfmt
// and edit application in internal/fix.
package diag
