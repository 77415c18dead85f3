package refactor

import (
	"localtofield/internal/source"
	"localtofield/internal/syntax"
)

// FindDeclarations returns every local declaration statement whose span
// intersects sel, in document order. Span ends count as inside, so a caret
// placed right after ';' still selects the statement.
func FindDeclarations(tree *syntax.Tree, sel source.Span) []syntax.NodeID {
	var found []syntax.NodeID
	for id := range tree.Descendants(tree.Root) {
		if tree.Kind(id) != syntax.NodeLocalDeclaration {
			continue
		}
		if tree.Span(id).Intersects(sel) {
			found = append(found, id)
		}
	}
	return found
}

// FindDeclaration applies the exactly-one policy to FindDeclarations.
// No match yields ok == false and a nil error. More than one match is an
// *Error of kind KindAmbiguous listing the candidates.
func FindDeclaration(tree *syntax.Tree, sel source.Span) (syntax.NodeID, bool, error) {
	found := FindDeclarations(tree, sel)
	switch len(found) {
	case 0:
		return syntax.NoNode, false, nil
	case 1:
		return found[0], true, nil
	}
	candidates := make([]source.Span, len(found))
	for i, id := range found {
		candidates[i] = tree.Span(id)
	}
	return syntax.NoNode, false, &Error{
		Kind:       KindAmbiguous,
		Span:       sel,
		Msg:        "narrow the selection to a single declaration",
		Candidates: candidates,
	}
}
