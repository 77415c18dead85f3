package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"localtofield/internal/syntax"
)

// FormatTree prints the syntax tree as an indented outline:
//
//	CompilationUnit 1:1-9:2
//	  Class "Widget" 1:1-9:2
//	    Method "M" 3:5-8:6
func FormatTree(w io.Writer, tree *syntax.Tree) error {
	var sb strings.Builder
	writeNode(&sb, tree, tree.Root, 0)
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeNode(sb *strings.Builder, tree *syntax.Tree, id syntax.NodeID, depth int) {
	sp := tree.Span(id)
	start, end := tree.File.Position(sp.Start), tree.File.Position(sp.End)

	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString(tree.Kind(id).String())
	if name, ok := tree.NameToken(id); ok {
		fmt.Fprintf(sb, " %q", name.Text)
	}
	fmt.Fprintf(sb, " %d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
	children := tree.Children(id)
	if len(children) == 0 {
		fmt.Fprintf(sb, " %q", abbreviate(tree.Text(id), 40))
	}
	sb.WriteByte('\n')
	for _, c := range children {
		writeNode(sb, tree, c, depth+1)
	}
}

func abbreviate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
