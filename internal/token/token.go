package token

import (
	"localtofield/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind     Kind
	Span     source.Span
	Text     string
	Leading  []Trivia
	Trailing []Trivia
}

// FullSpan covers the token together with its leading and trailing trivia.
func (t Token) FullSpan() source.Span {
	span := t.Span
	if len(t.Leading) > 0 {
		span.Start = t.Leading[0].Span.Start
	}
	if n := len(t.Trailing); n > 0 {
		span.End = t.Trailing[n-1].Span.End
	}
	return span
}

// IsLiteral reports whether the token is a numeric, character, string or constant literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, RealLit, CharLit, StringLit, InterpolatedStringLit, KwTrue, KwFalse, KwNull:
		return true
	default:
		return false
	}
}

// IsPunctOrOp reports whether the token is a punctuation or operator.
func (t Token) IsPunctOrOp() bool {
	return t.Kind >= Plus && t.Kind <= RBracket
}

// IsKeyword reports whether the token is a reserved keyword.
func (t Token) IsKeyword() bool { return t.Kind.IsKeyword() }

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsContextual reports whether the token is the identifier word, e.g. "var" or "record".
func (t Token) IsContextual(word string) bool {
	return t.Kind == Ident && t.Text == word
}

// ValueText returns the identifier without a leading '@'.
func (t Token) ValueText() string {
	if t.Kind == Ident && len(t.Text) > 1 && t.Text[0] == '@' {
		return t.Text[1:]
	}
	return t.Text
}
