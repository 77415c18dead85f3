package refactor

import (
	"context"
	"errors"

	"localtofield/internal/source"
	"localtofield/internal/syntax"
)

// ActionTitle is the label editors show for the refactoring.
const ActionTitle = "Introduce field"

// IntroduceField binds the refactoring to one document.
type IntroduceField struct {
	doc  *Document
	opts Options
}

// New binds the refactoring to doc.
func New(doc *Document, opts Options) *IntroduceField {
	return &IntroduceField{doc: doc, opts: opts}
}

// FindLocalDeclaration locates the single local declaration intersecting sel.
func (f *IntroduceField) FindLocalDeclaration(ctx context.Context, sel source.Span) (syntax.NodeID, bool, error) {
	if err := ctx.Err(); err != nil {
		return syntax.NoNode, false, err
	}
	id, ok, err := FindDeclaration(f.doc.Tree(), sel)
	if ok {
		name := f.doc.Tree().Text(id)
		f.opts.log().Log("found local declaration: " + name)
	}
	return id, ok, err
}

// FromLocal promotes node, which must come from FindLocalDeclaration on the
// same document.
func (f *IntroduceField) FromLocal(ctx context.Context, node syntax.NodeID) (*Document, error) {
	return Promote(ctx, f.doc, node, f.opts)
}

// CodeAction is a refactoring offered for a selection.
type CodeAction struct {
	Title  string
	Target source.Span // the declaration that will move
	apply  func(context.Context) (*Document, error)
}

// Apply runs the refactoring and returns the rewritten document.
func (a CodeAction) Apply(ctx context.Context) (*Document, error) {
	return a.apply(ctx)
}

// ComputeRefactorings offers zero or one "Introduce field" action for sel.
// No declaration at sel is not an error. An ambiguous selection or a
// declaration that cannot be promoted returns the *Error explaining why.
func ComputeRefactorings(ctx context.Context, doc *Document, sel source.Span, opts Options) ([]CodeAction, error) {
	f := New(doc, opts)
	node, ok, err := f.FindLocalDeclaration(ctx, sel)
	if err != nil || !ok {
		return nil, err
	}
	if _, err := Decompose(doc.Tree(), node); err != nil {
		return nil, err
	}
	if _, _, err := FindEnclosingType(doc.Tree(), node); err != nil {
		return nil, err
	}
	return []CodeAction{{
		Title:  ActionTitle,
		Target: doc.Tree().Span(node),
		apply: func(ctx context.Context) (*Document, error) {
			return f.FromLocal(ctx, node)
		},
	}}, nil
}

// IsDeclined reports whether err only means that no action applies at the
// selection. Editors hide such errors.
func IsDeclined(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrAmbiguousSelection) || errors.Is(err, ErrMalformedDeclaration)
}
