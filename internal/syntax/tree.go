package syntax

import (
	"iter"
	"strings"

	"localtofield/internal/source"
	"localtofield/internal/token"
)

// Tree is the immutable result of parsing one file. Nodes keep no parent
// pointers; upward queries search from Root.
type Tree struct {
	File   *source.File
	Tokens []token.Token // always ends with EOF
	Nodes  *Arena[Node]
	Root   NodeID
}

// Node returns the node for id, or nil for NoNode.
func (t *Tree) Node(id NodeID) *Node {
	return t.Nodes.Get(uint32(id))
}

// Kind returns the kind of id, or NodeInvalid.
func (t *Tree) Kind(id NodeID) NodeKind {
	if n := t.Node(id); n != nil {
		return n.Kind
	}
	return NodeInvalid
}

// Token returns the token at index i.
func (t *Tree) Token(i TokIdx) token.Token {
	return t.Tokens[i]
}

// Span covers the node's tokens without surrounding trivia.
func (t *Tree) Span(id NodeID) source.Span {
	n := t.Node(id)
	return source.Span{
		File:  t.File.ID,
		Start: t.Tokens[n.First].Span.Start,
		End:   t.Tokens[n.Last].Span.End,
	}
}

// FullSpan covers the node's tokens together with the leading trivia of the
// first token and the trailing trivia of the last one.
func (t *Tree) FullSpan(id NodeID) source.Span {
	n := t.Node(id)
	return source.Span{
		File:  t.File.ID,
		Start: t.Tokens[n.First].FullSpan().Start,
		End:   t.Tokens[n.Last].FullSpan().End,
	}
}

// Text returns the source text of Span(id).
func (t *Tree) Text(id NodeID) string {
	sp := t.Span(id)
	return string(t.File.Content[sp.Start:sp.End])
}

// FullText returns the source text of FullSpan(id).
func (t *Tree) FullText(id NodeID) string {
	sp := t.FullSpan(id)
	return string(t.File.Content[sp.Start:sp.End])
}

// Children returns the direct children of id in source order.
func (t *Tree) Children(id NodeID) []NodeID {
	if n := t.Node(id); n != nil {
		return n.Children
	}
	return nil
}

// Child returns the first direct child of the given kind.
func (t *Tree) Child(id NodeID, kind NodeKind) NodeID {
	for _, c := range t.Children(id) {
		if t.Kind(c) == kind {
			return c
		}
	}
	return NoNode
}

// Descendants yields id and everything below it, depth first, pre-order.
// The order is document order.
func (t *Tree) Descendants(id NodeID) iter.Seq[NodeID] {
	return func(yield func(NodeID) bool) {
		t.walk(id, yield)
	}
}

func (t *Tree) walk(id NodeID, yield func(NodeID) bool) bool {
	n := t.Node(id)
	if n == nil {
		return true
	}
	if !yield(id) {
		return false
	}
	for _, c := range n.Children {
		if !t.walk(c, yield) {
			return false
		}
	}
	return true
}

// Ancestors yields the ancestors of id from the nearest to Root.
// The path is found by descending from Root through nodes whose token
// range covers the target.
func (t *Tree) Ancestors(id NodeID) iter.Seq[NodeID] {
	return func(yield func(NodeID) bool) {
		target := t.Node(id)
		if target == nil || id == t.Root {
			return
		}
		var path []NodeID
		if !t.pathTo(t.Root, id, target, &path) {
			return
		}
		// path is root..parent
		for i := len(path) - 1; i >= 0; i-- {
			if !yield(path[i]) {
				return
			}
		}
	}
}

func (t *Tree) pathTo(cur, id NodeID, target *Node, path *[]NodeID) bool {
	n := t.Node(cur)
	*path = append(*path, cur)
	for _, c := range n.Children {
		if c == id {
			return true
		}
		cn := t.Node(c)
		if cn.First > target.First || cn.Last < target.Last {
			continue
		}
		if t.pathTo(c, id, target, path) {
			return true
		}
	}
	*path = (*path)[:len(*path)-1]
	return false
}

// Parent returns the direct parent of id, or NoNode for Root.
func (t *Tree) Parent(id NodeID) NodeID {
	for a := range t.Ancestors(id) {
		return a
	}
	return NoNode
}

// FirstAncestor returns the nearest ancestor whose kind is one of kinds.
func (t *Tree) FirstAncestor(id NodeID, kinds ...NodeKind) NodeID {
	for a := range t.Ancestors(id) {
		k := t.Kind(a)
		for _, want := range kinds {
			if k == want {
				return a
			}
		}
	}
	return NoNode
}

// NameToken returns the identifier naming a declaration node.
func (t *Tree) NameToken(id NodeID) (token.Token, bool) {
	n := t.Node(id)
	if n == nil || !n.Name.IsValid() {
		return token.Token{}, false
	}
	return t.Tokens[n.Name], true
}

// OpenBrace returns the '{' opening the body of a type or namespace.
func (t *Tree) OpenBrace(id NodeID) (token.Token, bool) {
	n := t.Node(id)
	if n == nil || !n.Open.IsValid() {
		return token.Token{}, false
	}
	return t.Tokens[n.Open], true
}

// NodeTokens returns the tokens covered by id.
func (t *Tree) NodeTokens(id NodeID) []token.Token {
	n := t.Node(id)
	if n == nil {
		return nil
	}
	return t.Tokens[n.First : n.Last+1]
}

// Render reassembles the source from tokens and trivia. For any input it
// returns the original bytes.
func (t *Tree) Render() string {
	var b strings.Builder
	b.Grow(len(t.File.Content))
	for _, tok := range t.Tokens {
		for _, tv := range tok.Leading {
			b.WriteString(tv.Text)
		}
		b.WriteString(tok.Text)
		for _, tv := range tok.Trailing {
			b.WriteString(tv.Text)
		}
	}
	return b.String()
}
