package refactor

import (
	"context"
	"fmt"
	"strings"

	"localtofield/internal/diag"
	"localtofield/internal/fix"
	"localtofield/internal/syntax"
	"localtofield/internal/token"
)

// Options configures a refactoring.
type Options struct {
	Log     DebugLog // defaults to NopLog
	Newline Newline
}

func (o Options) log() DebugLog {
	if o.Log == nil {
		return NopLog{}
	}
	return o.Log
}

// EnclosingType is the type declaration that receives the field.
type EnclosingType struct {
	Node      syntax.NodeID
	Name      string
	OpenBrace token.Token
}

// FindEnclosingType returns the nearest type declaration around node.
// ok is false when node is not inside any type (top-level statements).
// A nearest type that cannot hold instance fields, such as an interface,
// is an error.
func FindEnclosingType(tree *syntax.Tree, node syntax.NodeID) (EnclosingType, bool, error) {
	for a := range tree.Ancestors(node) {
		kind := tree.Kind(a)
		if !kind.IsTypeDeclaration() {
			continue
		}
		name, hasName := tree.NameToken(a)
		brace, hasBody := tree.OpenBrace(a)
		if !kind.CanHoldFields() || !hasName || !hasBody {
			return EnclosingType{}, false, malformed(tree.Span(node), "enclosing %v cannot declare instance fields", kind)
		}
		return EnclosingType{Node: a, Name: name.Text, OpenBrace: brace}, true, nil
	}
	return EnclosingType{}, false, nil
}

// Promote removes the local declaration node and, when it sits inside a
// class, struct or record, inserts a readonly field and a constructor that
// initializes it right after the type's opening brace. Without an enclosing
// type the declaration is only removed.
func Promote(ctx context.Context, doc *Document, node syntax.NodeID, opts Options) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log := opts.log()
	tree := doc.Tree()

	field, err := Decompose(tree, node)
	if err != nil {
		return nil, err
	}
	owner, ok, err := FindEnclosingType(tree, node)
	if err != nil {
		return nil, err
	}

	remove := tree.FullSpan(node)
	log.Log(fmt.Sprintf("removing declaration of '%s' at [%d,%d)", field.LocalName, remove.Start, remove.End))

	var (
		insertAt uint32
		block    string
	)
	if ok {
		insertAt = owner.OpenBrace.FullSpan().End
		nl := opts.Newline.Sequence(doc.Text())
		block = generate(field, indentation(owner.OpenBrace), owner.Name, nl)
		removal := []diag.FixEdit{fix.Delete(remove, "")}
		log.Log(fmt.Sprintf("inserting field '%s' into '%s' at offset %d", field.FieldName, owner.Name, fix.MapOffset(removal, insertAt)))
	} else {
		log.Log("no enclosing type: declaration removed, no field generated")
	}

	text, err := fix.Splice(doc.Text(), remove, insertAt, block)
	if err != nil {
		return nil, fmt.Errorf("introduce field: %w", err)
	}
	return doc.WithText(text), nil
}

// indentation is the first whitespace run before the type's '{'.
func indentation(brace token.Token) string {
	for _, tv := range brace.Leading {
		if tv.Kind == token.TriviaSpace {
			return tv.Text
		}
	}
	return ""
}

// indentStep is one nesting level in the style of the base indent.
func indentStep(indent string) string {
	if strings.HasPrefix(indent, "\t") {
		return "\t"
	}
	return "    "
}

func generate(field FieldDescriptor, indent, typeName, nl string) string {
	step := indentStep(indent)
	member := indent + step
	body := member + step

	var sb strings.Builder
	sb.WriteString(member + "private readonly " + field.TypeText + " " + field.FieldName + ";" + nl)
	sb.WriteString(nl)
	sb.WriteString(member + "public " + typeName + "()" + nl)
	sb.WriteString(member + "{" + nl)
	sb.WriteString(body + field.FieldName + " = " + field.ValueText + ";" + nl)
	sb.WriteString(member + "}" + nl)
	sb.WriteString(nl)
	return sb.String()
}
