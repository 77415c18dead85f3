package lsp

import "localtofield/internal/source"

// applyChanges applies incremental or full-text edits in order.
func applyChanges(text string, changes []textDocumentContentChangeEvent) string {
	for _, change := range changes {
		if change.Range == nil {
			text = change.Text
			continue
		}
		sp := spanForRange(scratchFile(text), *change.Range)
		text = text[:sp.Start] + change.Text + text[sp.End:]
	}
	return text
}

func scratchFile(text string) *source.File {
	fileSet := source.NewFileSet()
	return fileSet.Get(fileSet.AddVirtual("", []byte(text)))
}
