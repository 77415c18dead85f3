package refactor

import (
	"localtofield/internal/diag"
	"localtofield/internal/source"
	"localtofield/internal/syntax"
)

// maxParseDiagnostics bounds the diagnostics kept per document.
const maxParseDiagnostics = 128

// Document is an immutable source text together with its syntax tree.
type Document struct {
	file  *source.File
	tree  *syntax.Tree
	diags *diag.Bag
}

// NewDocument parses file.
func NewDocument(file *source.File) *Document {
	bag := diag.NewBag(maxParseDiagnostics)
	tree := syntax.Parse(file, syntax.Options{
		Reporter:  diag.BagReporter{Bag: bag},
		MaxErrors: maxParseDiagnostics,
	})
	return &Document{file: file, tree: tree, diags: bag}
}

// ParseText builds a Document from in-memory text.
func ParseText(name, text string) *Document {
	fs := source.NewFileSetWithBase("")
	return NewDocument(fs.Get(fs.AddVirtual(name, []byte(text))))
}

// WithText returns a new Document for the same path holding text.
// The receiver is left untouched.
func (d *Document) WithText(text string) *Document {
	fs := source.NewFileSetWithBase("")
	id := fs.Add(d.file.Path, []byte(text), d.file.Flags&source.FileVirtual)
	return NewDocument(fs.Get(id))
}

// File returns the source file backing the document.
func (d *Document) File() *source.File { return d.file }

// Tree returns the parsed syntax tree.
func (d *Document) Tree() *syntax.Tree { return d.tree }

// Path returns the file path the document was loaded from.
func (d *Document) Path() string { return d.file.Path }

// Text returns the full document text.
func (d *Document) Text() string { return string(d.file.Content) }

// Len returns the document length in bytes.
func (d *Document) Len() uint32 { return d.file.Len() }

// HasParseErrors reports whether lexing or parsing produced an error.
func (d *Document) HasParseErrors() bool { return d.diags.HasErrors() }

// Diagnostics returns the lexer and parser diagnostics of the document.
func (d *Document) Diagnostics() []diag.Diagnostic {
	return d.diags.Items()
}
