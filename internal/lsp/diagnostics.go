package lsp

import (
	"localtofield/internal/diag"
	"localtofield/internal/refactor"
)

// publishSyntaxDiagnostics reparses an open document and reports its lexer
// and parser diagnostics.
func (s *Server) publishSyntaxDiagnostics(uri string) error {
	snap, ok := s.snapshot(uri)
	if !ok {
		return nil
	}
	doc := refactor.ParseText(documentName(uri), snap.text)
	items := doc.Diagnostics()
	list := make([]lspDiagnostic, 0, len(items))
	for _, d := range items {
		list = append(list, lspDiagnostic{
			Range:    rangeForSpan(doc.File(), d.Primary),
			Severity: lspSeverity(d.Severity),
			Code:     d.Code.ID(),
			Source:   "localtofield",
			Message:  d.Message,
		})
	}
	return s.sendPublish(publishDiagnosticsParams{URI: uri, Version: snap.version, Diagnostics: list})
}

func lspSeverity(sev diag.Severity) int {
	switch sev {
	case diag.SevError:
		return 1
	case diag.SevWarning:
		return 2
	default:
		return 3
	}
}
