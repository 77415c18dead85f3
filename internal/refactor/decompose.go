package refactor

import (
	"strings"

	"localtofield/internal/source"
	"localtofield/internal/syntax"
	"localtofield/internal/token"
)

// FieldDescriptor is what a local declaration contributes to the new field.
type FieldDescriptor struct {
	LocalName string // as written, without a verbatim '@'
	FieldName string // "_" + LocalName
	TypeText  string // declared type, verbatim
	ValueText string // initializer, verbatim except for elided-type creations
}

// Decompose extracts the field name, type and initializer from a local
// declaration statement. The declaration must have exactly one declarator
// with an initializer; using and ref locals are rejected.
//
// A target-typed creation "new(args)" is rewritten to "new T(args)" so the
// initializer still compiles once moved into a constructor. A 'var' local
// takes its type from an explicit "new T(...)" initializer or from a single
// literal.
func Decompose(tree *syntax.Tree, node syntax.NodeID) (FieldDescriptor, error) {
	if tree.Kind(node) != syntax.NodeLocalDeclaration {
		return FieldDescriptor{}, malformed(spanOf(tree, node), "node is a %v, not a local declaration", tree.Kind(node))
	}
	sp := tree.Span(node)

	decl := tree.Child(node, syntax.NodeVariableDeclaration)
	typ := tree.Child(decl, syntax.NodeType)
	if typ == syntax.NoNode {
		return FieldDescriptor{}, malformed(sp, "declaration has no type")
	}
	for _, tok := range tree.Tokens[tree.Node(node).First:tree.Node(typ).First] {
		switch {
		case tok.Kind == token.KwUsing:
			return FieldDescriptor{}, malformed(sp, "using declarations own a disposable resource")
		case tok.Kind == token.KwRef, tok.IsContextual("scoped"):
			return FieldDescriptor{}, malformed(sp, "ref locals cannot become fields")
		}
	}

	var declarators []syntax.NodeID
	for _, c := range tree.Children(decl) {
		if tree.Kind(c) == syntax.NodeVariableDeclarator {
			declarators = append(declarators, c)
		}
	}
	if len(declarators) != 1 {
		return FieldDescriptor{}, malformed(sp, "expected exactly one declarator, found %d", len(declarators))
	}
	declarator := declarators[0]
	name, ok := tree.NameToken(declarator)
	if !ok {
		return FieldDescriptor{}, malformed(sp, "declarator has no name")
	}
	eq := tree.Child(declarator, syntax.NodeEqualsValue)
	if eq == syntax.NoNode || len(tree.Children(eq)) == 0 {
		return FieldDescriptor{}, malformed(sp, "'%s' has no initializer", name.Text)
	}
	value := tree.Children(eq)[0]

	typeText := tree.Text(typ)
	valueText := tree.FullText(value)

	switch tree.Kind(value) {
	case syntax.NodeImplicitObjectCreation:
		if typeText == "var" {
			return FieldDescriptor{}, malformed(sp, "'var' with a target-typed 'new' has no type")
		}
		valueText = explicitCreation(tree, value, creationType(tree, typ))
	case syntax.NodeObjectCreation:
		if typeText == "var" {
			typeText = tree.Text(tree.Child(value, syntax.NodeType))
		}
	}
	if typeText == "var" {
		inferred, ok := literalType(tree, value)
		if !ok {
			return FieldDescriptor{}, malformed(sp, "cannot infer the type of 'var %s'", name.Text)
		}
		typeText = inferred
	}

	local := name.ValueText()
	return FieldDescriptor{
		LocalName: local,
		FieldName: "_" + local,
		TypeText:  typeText,
		ValueText: valueText,
	}, nil
}

// explicitCreation renders "new(args) {init}" as "new T(args) {init}", keeping
// the leading trivia of 'new' and everything from '(' on verbatim.
func explicitCreation(tree *syntax.Tree, creation syntax.NodeID, typeText string) string {
	full := tree.FullSpan(creation)
	args := tree.Span(tree.Child(creation, syntax.NodeArgumentList))
	newTok := tree.Token(tree.Node(creation).First)
	text := tree.FullText(creation)

	var sb strings.Builder
	sb.WriteString(text[:newTok.Span.Start-full.Start])
	sb.WriteString("new ")
	sb.WriteString(typeText)
	sb.WriteString(text[args.Start-full.Start:])
	return sb.String()
}

// creationType is the declared type usable after 'new': a nullable
// annotation is dropped because "new T?()" does not compile.
func creationType(tree *syntax.Tree, typ syntax.NodeID) string {
	toks := tree.NodeTokens(typ)
	if len(toks) > 1 && toks[len(toks)-1].Kind == token.Question {
		sp := tree.Span(typ)
		return string(tree.File.Content[sp.Start:toks[len(toks)-2].Span.End])
	}
	return tree.Text(typ)
}

// literalType infers the type of a single literal initializer.
func literalType(tree *syntax.Tree, value syntax.NodeID) (string, bool) {
	toks := tree.NodeTokens(value)
	negative := false
	if len(toks) == 2 && toks[0].Kind == token.Minus {
		negative = true
		toks = toks[1:]
	}
	if len(toks) != 1 {
		return "", false
	}
	tok := toks[0]
	switch tok.Kind {
	case token.StringLit, token.InterpolatedStringLit:
		return "string", !negative
	case token.CharLit:
		return "char", !negative
	case token.KwTrue, token.KwFalse:
		return "bool", !negative
	case token.IntLit:
		return intLiteralType(tok.Text), true
	case token.RealLit:
		return realLiteralType(tok.Text), true
	}
	return "", false
}

func intLiteralType(text string) string {
	suffix := strings.ToLower(text[len(strings.TrimRight(text, "uUlL")):])
	switch suffix {
	case "u":
		return "uint"
	case "l":
		return "long"
	case "ul", "lu":
		return "ulong"
	}
	return "int"
}

func realLiteralType(text string) string {
	switch text[len(text)-1] {
	case 'f', 'F':
		return "float"
	case 'm', 'M':
		return "decimal"
	}
	return "double"
}

func spanOf(tree *syntax.Tree, id syntax.NodeID) source.Span {
	if tree.Node(id) == nil {
		return source.Span{File: tree.File.ID}
	}
	return tree.Span(id)
}
