// Package refactor implements "Introduce field": a local variable declaration
// inside a method body is removed and re-created as a private readonly field
// of the enclosing type, initialized in a generated parameterless constructor.
//
// The work is split in three steps that can be used on their own:
//
//   - FindDeclarations / FindDeclaration map a selection to local declarations.
//   - Decompose turns a declaration into a FieldDescriptor.
//   - Promote rewrites the document.
//
// Documents are immutable; every rewrite returns a new Document. Text outside
// the removed statement and the inserted block is preserved byte for byte.
package refactor
