package refactor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"localtofield/internal/source"
	"localtofield/internal/trace"
)

func promoteAt(t *testing.T, src, caret string, opts Options) (*Document, *Document, error) {
	t.Helper()
	doc := ParseText("C.cs", src)
	at := uint32(strings.Index(src, caret))
	id, ok, err := FindDeclaration(doc.Tree(), source.Span{Start: at, End: at})
	if err != nil || !ok {
		t.Fatalf("no declaration at %q: %v", caret, err)
	}
	out, err := Promote(context.Background(), doc, id, opts)
	return doc, out, err
}

func TestPromoteIndentation(t *testing.T) {
	tests := []struct {
		indent, step string
	}{
		{"", "    "},
		{"    ", "    "},
		{"        ", "    "},
		{"\t", "\t"},
		{"\t\t", "\t"},
	}
	for _, tt := range tests {
		indent, member := tt.indent, tt.indent+tt.step
		src := indent + "class C\n" + indent + "{\n" + member + "void M() { int n = 1; }\n" + indent + "}\n"
		_, out, err := promoteAt(t, src, "n = 1", Options{Newline: NewlineLF})
		if err != nil {
			t.Fatal(err)
		}
		want := indent + "class C\n" + indent + "{\n" +
			member + "private readonly int _n;\n\n" +
			member + "public C()\n" +
			member + "{\n" +
			member + tt.step + "_n = 1;\n" +
			member + "}\n\n" +
			member + "void M() { }\n" + indent + "}\n"
		if out.Text() != want {
			t.Errorf("indent %q:\ngot:\n%s\nwant:\n%s", indent, out.Text(), want)
		}
	}
}

func TestPromoteNewlineDocument(t *testing.T) {
	src := "class C\r\n{\r\n    void M()\r\n    {\r\n        int n = 1;\r\n    }\r\n}\r\n"
	_, out, err := promoteAt(t, src, "n = 1", Options{Newline: NewlineDocument})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Count(out.Text(), "\n") != strings.Count(out.Text(), "\r\n") {
		t.Errorf("mixed line endings:\n%q", out.Text())
	}
	if !strings.Contains(out.Text(), "    private readonly int _n;\r\n\r\n    public C()\r\n") {
		t.Errorf("unexpected output:\n%q", out.Text())
	}
}

// Removing the field and constructor again must restore everything except
// the declaration itself.
func TestPromotePreservesSurroundingText(t *testing.T) {
	const src = `namespace N
{
    // keep me
    public partial class Widget : Base
    {
        int count;

        void M()
        {
            Before();
            string label = "x";
            After();
        }
    }
}
`
	before, out, err := promoteAt(t, src, "label", Options{Newline: NewlineLF})
	if err != nil {
		t.Fatal(err)
	}
	block := "        private readonly string _label;\n\n" +
		"        public Widget()\n" +
		"        {\n" +
		"            _label = \"x\";\n" +
		"        }\n\n"
	if !strings.Contains(out.Text(), block) {
		t.Fatalf("generated block missing:\n%s", out.Text())
	}
	restored := strings.Replace(out.Text(), block, "", 1)
	want := strings.Replace(src, "            string label = \"x\";\n", "", 1)
	if restored != want {
		t.Errorf("surrounding text changed:\n%s", restored)
	}
	if before.Text() != src {
		t.Errorf("input document was modified")
	}
	if out.HasParseErrors() {
		t.Errorf("output does not parse: %v", out.Diagnostics())
	}
}

func TestPromoteInnermostType(t *testing.T) {
	const src = `class Outer
{
    class Inner
    {
        void M() { double rate = 0.5; }
    }
}
`
	_, out, err := promoteAt(t, src, "rate", Options{Newline: NewlineLF})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.Text(), "    class Inner\n    {\n        private readonly double _rate;") {
		t.Errorf("field not inserted into Inner:\n%s", out.Text())
	}
	if !strings.Contains(out.Text(), "        public Inner()\n") {
		t.Errorf("constructor not named after Inner:\n%s", out.Text())
	}
}

func TestPromoteRejectsInterface(t *testing.T) {
	const src = "interface I\n{\n    void M() { int n = 1; }\n}\n"
	before, out, err := promoteAt(t, src, "n = 1", Options{})
	if !errors.Is(err, ErrMalformedDeclaration) {
		t.Fatalf("err = %v", err)
	}
	if out != nil || before.Text() != src {
		t.Errorf("document changed on error")
	}
}

func TestPromoteWithoutType(t *testing.T) {
	var logged []string
	opts := Options{Newline: NewlineLF, Log: LogFunc(func(m string) { logged = append(logged, m) })}
	_, out, err := promoteAt(t, "int n = 1;\nSystem.Console.WriteLine(n);\n", "n = 1", opts)
	if err != nil {
		t.Fatal(err)
	}
	if out.Text() != "System.Console.WriteLine(n);\n" {
		t.Errorf("got %q", out.Text())
	}
	if len(logged) == 0 || !strings.Contains(logged[len(logged)-1], "no enclosing type") {
		t.Errorf("logged %q", logged)
	}
}

func TestPromoteCanceled(t *testing.T) {
	doc := ParseText("C.cs", "class C { void M() { int n = 1; } }")
	id, _, _ := FindDeclaration(doc.Tree(), source.Span{Start: 25, End: 25})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Promote(ctx, doc, id, Options{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v", err)
	}
}

func TestPromoteLogsThroughTracer(t *testing.T) {
	ring := trace.NewRingTracer(16, trace.LevelDebug)
	ctx := trace.WithTracer(context.Background(), ring)
	_, _, err := promoteAt(t, "class C\n{\n    void M() { int n = 1; }\n}\n", "n = 1", Options{Log: NewTraceLog(ctx)})
	if err != nil {
		t.Fatal(err)
	}
	var details []string
	for _, ev := range ring.Snapshot() {
		details = append(details, ev.Detail)
	}
	joined := strings.Join(details, "\n")
	if !strings.Contains(joined, "removing declaration of 'n'") || !strings.Contains(joined, "inserting field '_n' into 'C'") {
		t.Errorf("trace events: %q", details)
	}
}
