package token

import (
	"testing"
)

func TestLookupKeyword_Positive(t *testing.T) {
	cases := map[string]Kind{
		"class":    KwClass,
		"struct":   KwStruct,
		"new":      KwNew,
		"readonly": KwReadonly,
		"private":  KwPrivate,
		"using":    KwUsing,
		"string":   KwString,
		"int":      KwInt,
		"true":     KwTrue,
		"null":     KwNull,
	}

	for lexeme, want := range cases {
		got, ok := LookupKeyword(lexeme)
		if !ok {
			t.Fatalf("LookupKeyword(%q) = !ok, want %v", lexeme, want)
		}
		if got != want {
			t.Fatalf("LookupKeyword(%q) = %v, want %v", lexeme, got, want)
		}
	}
}

func TestLookupKeyword_Negative(t *testing.T) {
	notKw := []string{
		"Class", "NEW", // case sensitive
		"var", "record", "partial", "where", "async", "await", "nameof", // contextual
		"Int32", "identifier",
	}
	for _, s := range notKw {
		if _, ok := LookupKeyword(s); ok {
			t.Fatalf("LookupKeyword(%q) returned ok=true, want false", s)
		}
	}
}

func TestEveryKeywordHasAName(t *testing.T) {
	for k := KwAbstract; k <= KwWhile; k++ {
		if kindNames[k] == "" {
			t.Fatalf("keyword kind %d has no spelling", k)
		}
	}
	if len(keywords) != int(KwWhile-KwAbstract)+1 {
		t.Fatalf("keyword table has %d entries, kinds span %d", len(keywords), KwWhile-KwAbstract+1)
	}
}
