package token_test

import (
	"testing"

	"localtofield/internal/source"
	"localtofield/internal/token"
)

func tok(k token.Kind) token.Token {
	return token.Token{Kind: k, Span: source.Span{Start: 0, End: 0}}
}

func TestIsLiteral(t *testing.T) {
	lits := []token.Kind{
		token.IntLit, token.RealLit, token.CharLit, token.StringLit,
		token.InterpolatedStringLit, token.KwTrue, token.KwFalse, token.KwNull,
	}
	for _, k := range lits {
		if !tok(k).IsLiteral() {
			t.Fatalf("%v should be literal", k)
		}
	}
	non := []token.Kind{token.Ident, token.KwNew, token.Plus, token.LParen}
	for _, k := range non {
		if tok(k).IsLiteral() {
			t.Fatalf("%v must NOT be literal", k)
		}
	}
}

func TestIsPunctOrOp(t *testing.T) {
	ops := []token.Kind{
		token.Plus, token.Assign, token.ShlAssign, token.Gt, token.GtEq,
		token.QuestionAssign, token.QuestionDot, token.FatArrow, token.Semicolon,
		token.LBrace, token.RBracket,
	}
	for _, k := range ops {
		if !tok(k).IsPunctOrOp() {
			t.Fatalf("%v should be punct/op", k)
		}
	}
	non := []token.Kind{token.Ident, token.KwIf, token.IntLit, token.EOF}
	for _, k := range non {
		if tok(k).IsPunctOrOp() {
			t.Fatalf("%v must NOT be punct/op", k)
		}
	}
}

func TestKindString(t *testing.T) {
	cases := map[token.Kind]string{
		token.KwClass:    "class",
		token.KwWhile:    "while",
		token.KwAbstract: "abstract",
		token.LBrace:     "{",
		token.ShlAssign:  "<<=",
		token.Ident:      "Ident",
		token.EOF:        "EOF",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", k, got, want)
		}
	}
	if got := token.Kind(250).String(); got != "Kind(250)" {
		t.Errorf("unknown kind = %q", got)
	}
}

func TestPredefinedTypesAndModifiers(t *testing.T) {
	if !token.KwInt.IsPredefinedType() || !token.KwString.IsPredefinedType() {
		t.Fatal("int and string are predefined types")
	}
	if token.KwClass.IsPredefinedType() {
		t.Fatal("class is not a type")
	}
	if !token.KwReadonly.IsModifier() || token.KwInt.IsModifier() {
		t.Fatal("modifier classification mismatch")
	}
}

func TestFullSpan(t *testing.T) {
	tk := token.Token{
		Kind: token.Ident,
		Span: source.Span{Start: 4, End: 7},
		Leading: []token.Trivia{
			{Kind: token.TriviaSpace, Span: source.Span{Start: 0, End: 4}},
		},
		Trailing: []token.Trivia{
			{Kind: token.TriviaSpace, Span: source.Span{Start: 7, End: 8}},
			{Kind: token.TriviaNewline, Span: source.Span{Start: 8, End: 9}},
		},
	}
	if got := tk.FullSpan(); got != (source.Span{Start: 0, End: 9}) {
		t.Fatalf("FullSpan() = %v", got)
	}
	bare := token.Token{Span: source.Span{Start: 3, End: 5}}
	if bare.FullSpan() != bare.Span {
		t.Fatal("FullSpan without trivia must equal Span")
	}
}

func TestValueText(t *testing.T) {
	if got := (token.Token{Kind: token.Ident, Text: "@class"}).ValueText(); got != "class" {
		t.Fatalf("ValueText() = %q", got)
	}
	if got := (token.Token{Kind: token.Ident, Text: "value"}).ValueText(); got != "value" {
		t.Fatalf("ValueText() = %q", got)
	}
	if !(token.Token{Kind: token.Ident, Text: "var"}).IsContextual("var") {
		t.Fatal("var should be contextual")
	}
}
