package refactor

import (
	"errors"
	"strings"
	"testing"

	"localtofield/internal/source"
)

func decomposeStatement(t *testing.T, stmt string) (FieldDescriptor, error) {
	t.Helper()
	src := "class C\n{\n    void M()\n    {\n        " + stmt + "\n    }\n}\n"
	doc := ParseText("C.cs", src)
	if doc.HasParseErrors() {
		t.Fatalf("parse errors in %q: %v", stmt, doc.Diagnostics())
	}
	at := uint32(strings.Index(src, stmt))
	id, ok, err := FindDeclaration(doc.Tree(), source.Span{Start: at, End: at})
	if err != nil || !ok {
		t.Fatalf("no declaration for %q: %v", stmt, err)
	}
	return Decompose(doc.Tree(), id)
}

func TestDecompose(t *testing.T) {
	tests := []struct {
		stmt  string
		local string
		typ   string
		value string
	}{
		{`string name = "test";`, "name", "string", `"test"`},
		{`int n=42;`, "n", "int", "42"},
		{`Dictionary<string, List<int>> map = new Dictionary<string, List<int>>();`, "map", "Dictionary<string, List<int>>", "new Dictionary<string, List<int>>()"},
		{`Test t = new(1, "a");`, "t", "Test", `new Test(1, "a")`},
		{`Options? o = new() { Verbose = true };`, "o", "Options?", "new Options() { Verbose = true }"},
		{`var sb = new StringBuilder(16);`, "sb", "StringBuilder", "new StringBuilder(16)"},
		{`var text = "hi";`, "text", "string", `"hi"`},
		{`var c = 'x';`, "c", "char", "'x'"},
		{`var on = true;`, "on", "bool", "true"},
		{`var big = 10UL;`, "big", "ulong", "10UL"},
		{`var l = 3L;`, "l", "long", "3L"},
		{`var f = 1.5f;`, "f", "float", "1.5f"},
		{`var m = 2m;`, "m", "decimal", "2m"},
		{`var d = 1e3;`, "d", "double", "1e3"},
		{`int @class = 1;`, "class", "int", "1"},
		{`const int Limit = 10;`, "Limit", "int", "10"},
		{`int x = /* seed */ 7;`, "x", "int", "7"},
	}
	for _, tt := range tests {
		t.Run(tt.stmt, func(t *testing.T) {
			got, err := decomposeStatement(t, tt.stmt)
			if err != nil {
				t.Fatal(err)
			}
			want := FieldDescriptor{LocalName: tt.local, FieldName: "_" + tt.local, TypeText: tt.typ, ValueText: tt.value}
			if got != want {
				t.Errorf("got %+v\nwant %+v", got, want)
			}
		})
	}
}

func TestDecomposeRejects(t *testing.T) {
	tests := []struct {
		stmt string
		msg  string
	}{
		{`int a = 1, b = 2;`, "exactly one declarator, found 2"},
		{`int pending;`, "'pending' has no initializer"},
		{`using var s = Open();`, "using declarations"},
		{`ref int r = ref Slot();`, "ref locals"},
		{`var q = Compute();`, "cannot infer the type of 'var q'"},
		{`var t = new();`, "target-typed"},
	}
	for _, tt := range tests {
		t.Run(tt.stmt, func(t *testing.T) {
			_, err := decomposeStatement(t, tt.stmt)
			if !errors.Is(err, ErrMalformedDeclaration) {
				t.Fatalf("err = %v, want malformed", err)
			}
			if !strings.Contains(err.Error(), tt.msg) {
				t.Errorf("error %q does not mention %q", err, tt.msg)
			}
		})
	}
}

func TestIntLiteralType(t *testing.T) {
	for lit, want := range map[string]string{
		"1": "int", "1u": "uint", "1U": "uint", "1l": "long",
		"1ul": "ulong", "1LU": "ulong", "0xFFu": "uint",
	} {
		if got := intLiteralType(lit); got != want {
			t.Errorf("intLiteralType(%q) = %q, want %q", lit, got, want)
		}
	}
}
