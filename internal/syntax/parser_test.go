package syntax_test

import (
	"fmt"
	"strings"
	"testing"

	"localtofield/internal/diag"
	"localtofield/internal/source"
	"localtofield/internal/syntax"
)

func parseSource(t *testing.T, src string) (*syntax.Tree, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSetWithBase("")
	fid := fs.AddVirtual("Test.cs", []byte(src))
	bag := diag.NewBag(64)
	tree := syntax.Parse(fs.Get(fid), syntax.Options{Reporter: diag.BagReporter{Bag: bag}, MaxErrors: 64})
	return tree, bag
}

func diagnosticsSummary(bag *diag.Bag) string {
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

func nodesOf(tree *syntax.Tree, kind syntax.NodeKind) []syntax.NodeID {
	var out []syntax.NodeID
	for id := range tree.Descendants(tree.Root) {
		if tree.Kind(id) == kind {
			out = append(out, id)
		}
	}
	return out
}

func mustParse(t *testing.T, src string) *syntax.Tree {
	t.Helper()
	tree, bag := parseSource(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(bag))
	}
	return tree
}

func TestLocalDeclarationInsideMethod(t *testing.T) {
	tree := mustParse(t, "class C\n{\n    void M()\n    {\n        int x = 5;\n    }\n}\n")

	locals := nodesOf(tree, syntax.NodeLocalDeclaration)
	if len(locals) != 1 {
		t.Fatalf("expected 1 local declaration, got %d", len(locals))
	}
	local := locals[0]
	if got := tree.Text(local); got != "int x = 5;" {
		t.Errorf("local text = %q", got)
	}

	decl := tree.Child(local, syntax.NodeVariableDeclaration)
	if got := tree.Text(tree.Child(decl, syntax.NodeType)); got != "int" {
		t.Errorf("type text = %q", got)
	}
	declarator := tree.Child(decl, syntax.NodeVariableDeclarator)
	name, ok := tree.NameToken(declarator)
	if !ok || name.Text != "x" {
		t.Errorf("declarator name = %q, %v", name.Text, ok)
	}
	eq := tree.Child(declarator, syntax.NodeEqualsValue)
	if got := tree.Text(tree.Children(eq)[0]); got != "5" {
		t.Errorf("initializer = %q", got)
	}

	class := tree.FirstAncestor(local, syntax.NodeClass, syntax.NodeStruct, syntax.NodeRecord)
	if tree.Kind(class) != syntax.NodeClass {
		t.Fatalf("expected enclosing class, got %v", tree.Kind(class))
	}
	if brace, ok := tree.OpenBrace(class); !ok || brace.Text != "{" {
		t.Errorf("open brace = %q, %v", brace.Text, ok)
	}
	if tree.Kind(tree.Parent(local)) != syntax.NodeBlock {
		t.Errorf("parent kind = %v", tree.Kind(tree.Parent(local)))
	}
}

func TestAncestorsNearestFirst(t *testing.T) {
	tree := mustParse(t, "namespace N { class C { void M() { if (ok) { var v = 1; } } } }")
	local := nodesOf(tree, syntax.NodeLocalDeclaration)[0]

	var kinds []string
	for a := range tree.Ancestors(local) {
		kinds = append(kinds, tree.Kind(a).String())
	}
	want := "Block If Block Method Class Namespace CompilationUnit"
	if got := strings.Join(kinds, " "); got != want {
		t.Errorf("ancestors = %s, want %s", got, want)
	}
}

func TestObjectCreationShapes(t *testing.T) {
	src := `class C {
    void M() {
        var a = new Foo(1) { A = 2 };
        Foo b = new(1, 2);
        var c = new int[3];
        var d = new { X = 1 };
        var e = new Foo(1).Bar();
        var f = new List<int> { 1 };
    }
}`
	tree := mustParse(t, src)
	locals := nodesOf(tree, syntax.NodeLocalDeclaration)
	if len(locals) != 6 {
		t.Fatalf("expected 6 locals, got %d", len(locals))
	}

	value := func(local syntax.NodeID) syntax.NodeID {
		decl := tree.Child(local, syntax.NodeVariableDeclaration)
		eq := tree.Child(tree.Child(decl, syntax.NodeVariableDeclarator), syntax.NodeEqualsValue)
		return tree.Children(eq)[0]
	}

	tests := []struct {
		kind syntax.NodeKind
		text string
	}{
		{syntax.NodeObjectCreation, "new Foo(1) { A = 2 }"},
		{syntax.NodeImplicitObjectCreation, "new(1, 2)"},
		{syntax.NodeExpression, "new int[3]"},
		{syntax.NodeExpression, "new { X = 1 }"},
		{syntax.NodeExpression, "new Foo(1).Bar()"},
		{syntax.NodeObjectCreation, "new List<int> { 1 }"},
	}
	for i, tt := range tests {
		v := value(locals[i])
		if tree.Kind(v) != tt.kind {
			t.Errorf("local %d: kind = %v, want %v", i, tree.Kind(v), tt.kind)
		}
		if got := tree.Text(v); got != tt.text {
			t.Errorf("local %d: text = %q, want %q", i, got, tt.text)
		}
	}

	creation := value(locals[0])
	if got := tree.Text(tree.Child(creation, syntax.NodeType)); got != "Foo" {
		t.Errorf("creation type = %q", got)
	}
	if got := tree.Text(tree.Child(creation, syntax.NodeArgumentList)); got != "(1)" {
		t.Errorf("creation args = %q", got)
	}
	if got := tree.Text(tree.Child(creation, syntax.NodeInitializer)); got != "{ A = 2 }" {
		t.Errorf("creation initializer = %q", got)
	}
	implicit := value(locals[1])
	if got := tree.Text(tree.Child(implicit, syntax.NodeArgumentList)); got != "(1, 2)" {
		t.Errorf("implicit args = %q", got)
	}
}

func TestMultipleDeclarators(t *testing.T) {
	tree := mustParse(t, "class C { void M() { int a = 1, b, c = 3; } }")
	decl := nodesOf(tree, syntax.NodeVariableDeclaration)[0]

	var names []string
	for _, c := range tree.Children(decl) {
		if tree.Kind(c) != syntax.NodeVariableDeclarator {
			continue
		}
		name, _ := tree.NameToken(c)
		names = append(names, name.Text)
	}
	if got := strings.Join(names, ","); got != "a,b,c" {
		t.Errorf("declarators = %s", got)
	}
}

func TestLambdaBodiesAreParsed(t *testing.T) {
	src := `class C {
    void M() {
        Action a = () => { int y = 1; };
        Func<int> f = delegate { var z = 2; return z; };
        Run(x => { string s = "q"; });
    }
}`
	tree := mustParse(t, src)
	locals := nodesOf(tree, syntax.NodeLocalDeclaration)

	var texts []string
	for _, l := range locals {
		texts = append(texts, tree.Text(l))
	}
	want := []string{
		"Action a = () => { int y = 1; };",
		"int y = 1;",
		"Func<int> f = delegate { var z = 2; return z; };",
		"var z = 2;",
		`string s = "q";`,
	}
	if strings.Join(texts, "|") != strings.Join(want, "|") {
		t.Fatalf("locals in document order:\n got %q\nwant %q", texts, want)
	}
	if tree.FirstAncestor(locals[1], syntax.NodeLambdaBody) == syntax.NoNode {
		t.Errorf("inner local should be inside a lambda body")
	}
	if tree.Kind(tree.FirstAncestor(locals[4], syntax.NodeClass)) != syntax.NodeClass {
		t.Errorf("lambda local should still see the enclosing class")
	}
}

func TestStatementsThatAreNotDeclarations(t *testing.T) {
	tree := mustParse(t, `class C {
    void M() {
        x = 5;
        Foo(bar);
        a.b = c < d;
        await Task.Delay(1);
        return;
    }
}`)
	if n := len(nodesOf(tree, syntax.NodeLocalDeclaration)); n != 0 {
		t.Errorf("expected no local declarations, got %d", n)
	}
	if n := len(nodesOf(tree, syntax.NodeExpressionStatement)); n != 4 {
		t.Errorf("expected 4 expression statements, got %d", n)
	}
}

func TestLocalModifiersAndFunctions(t *testing.T) {
	tree := mustParse(t, `class C {
    void M() {
        const int k = 1;
        using var s = Open();
        ref int r = ref arr[0];
        int Local(int v) { int inner = v; return inner; }
        static T Id<T>(T v) => v;
    }
}`)
	locals := nodesOf(tree, syntax.NodeLocalDeclaration)
	if len(locals) != 4 {
		t.Fatalf("expected 4 locals, got %d", len(locals))
	}
	if got := tree.Text(locals[1]); got != "using var s = Open();" {
		t.Errorf("using local = %q", got)
	}
	if n := len(nodesOf(tree, syntax.NodeLocalFunction)); n != 2 {
		t.Errorf("expected 2 local functions, got %d", n)
	}
	if tree.FirstAncestor(locals[3], syntax.NodeLocalFunction) == syntax.NoNode {
		t.Errorf("inner local should be inside the local function")
	}
}

func TestMemberKinds(t *testing.T) {
	tree := mustParse(t, `using System;
using static System.Math;
namespace N;

[Serializable]
public sealed partial class C<T> : Base, IFoo where T : new()
{
    private readonly int _a = 1, _b;
    public event EventHandler Changed;
    public C(int a) : base(a) { }
    ~C() { }
    public int P { get; private set; } = 3;
    public int Q => _a;
    public T this[int i] { get => default; set { } }
    int IFoo.Bar<U>(U u) { return 0; }
    public static C operator +(C a, C b) => a;
    public static implicit operator int(C c) => 0;
    enum E { A, B = 2 }
    struct S { }
    record R(int X);
    record struct RS { }
    delegate void D(int x);
}`)
	counts := map[syntax.NodeKind]int{}
	for id := range tree.Descendants(tree.Root) {
		counts[tree.Kind(id)]++
	}
	tests := []struct {
		kind syntax.NodeKind
		want int
	}{
		{syntax.NodeUsingDirective, 2},
		{syntax.NodeFileScopedNamespace, 1},
		{syntax.NodeAttributeList, 1},
		{syntax.NodeClass, 1},
		{syntax.NodeField, 2},
		{syntax.NodeConstructor, 1},
		{syntax.NodeProperty, 3},
		{syntax.NodeAccessor, 4},
		{syntax.NodeMethod, 4},
		{syntax.NodeEnum, 1},
		{syntax.NodeStruct, 1},
		{syntax.NodeRecord, 2},
		{syntax.NodeDelegate, 1},
		{syntax.NodeOtherMember, 0},
	}
	for _, tt := range tests {
		if counts[tt.kind] != tt.want {
			t.Errorf("%v: got %d, want %d", tt.kind, counts[tt.kind], tt.want)
		}
	}

	class := nodesOf(tree, syntax.NodeClass)[0]
	if name, _ := tree.NameToken(class); name.Text != "C" {
		t.Errorf("class name = %q", name.Text)
	}
	method := nodesOf(tree, syntax.NodeMethod)[1]
	if name, _ := tree.NameToken(method); name.Text != "Bar" {
		t.Errorf("explicit implementation name = %q", name.Text)
	}
}

func TestTopLevelStatements(t *testing.T) {
	tree := mustParse(t, "using System;\nint x = 1;\nConsole.WriteLine(x);\nclass C { }\n")
	local := nodesOf(tree, syntax.NodeLocalDeclaration)
	if len(local) != 1 {
		t.Fatalf("expected 1 local, got %d", len(local))
	}
	if tree.FirstAncestor(local[0], syntax.NodeClass, syntax.NodeStruct, syntax.NodeRecord) != syntax.NoNode {
		t.Errorf("top-level local must not have an enclosing type")
	}
	if tree.Parent(local[0]) != tree.Root {
		t.Errorf("top-level local should hang off the root")
	}
}

func TestControlFlowStatements(t *testing.T) {
	tree := mustParse(t, `class C {
    void M() {
        for (int i = 0; i < 3; i++) { int a = i; }
        foreach (var item in items) { int b = item; }
        while (run) { int c = 1; }
        do { int d = 1; } while (run);
        switch (k) { case 1: case 2: int e = 1; break; default: break; }
        try { int f = 1; } catch (Exception ex) when (ex != null) { int g = 1; } finally { int h = 1; }
        lock (gate) { int i2 = 1; }
        using (var r = Open()) { int j = 1; }
        checked { int k2 = 1; }
        label: int l = 1;
        if (a) int m = 1; else { int n = 1; }
    }
}`)
	var names []string
	for _, id := range nodesOf(tree, syntax.NodeVariableDeclarator) {
		name, _ := tree.NameToken(id)
		names = append(names, name.Text)
	}
	// loop headers are opaque: i, item and r are not declarators
	want := "a b c d e f g h i2 j k2 l m n"
	if got := strings.Join(names, " "); got != want {
		t.Errorf("declarators = %s, want %s", got, want)
	}
	if n := len(nodesOf(tree, syntax.NodeSwitchSection)); n != 2 {
		t.Errorf("switch sections = %d", n)
	}
}

func TestRenderRoundTrip(t *testing.T) {
	inputs := []string{
		"class C { void M() { int x = 5; } }",
		"\ufeff// header\r\nclass C\r\n{\r\n    #region r\r\n    void M() { var s = @\"a\"\"b\"; }\r\n    #endregion\r\n}\r\n",
		"class C { void M() { int x = ; } ",
		"}}} class { void",
		"/* unterminated",
		"var s = $\"{a} and {b:N2}\";\n",
		"",
	}
	for _, in := range inputs {
		tree, _ := parseSource(t, in)
		if got := tree.Render(); got != in {
			t.Errorf("render mismatch\n got %q\nwant %q", got, in)
		}
		root := tree.Node(tree.Root)
		if root.Kind != syntax.NodeCompilationUnit || int(root.Last) != len(tree.Tokens)-1 {
			t.Errorf("root must cover every token for %q", in)
		}
	}
}

func TestMalformedInputReportsAndRecovers(t *testing.T) {
	tree, bag := parseSource(t, "class C { void M() { int x = 5 } void N() { int y = 1; } }")
	if !bag.HasErrors() {
		t.Fatalf("expected diagnostics")
	}
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.SynExpectSemicolon {
			found = true
		}
	}
	if !found {
		t.Errorf("expected missing ';' diagnostic, got %s", diagnosticsSummary(bag))
	}
	if n := len(nodesOf(tree, syntax.NodeMethod)); n != 2 {
		t.Errorf("parser should recover both methods, got %d", n)
	}
}

func TestSpanAndFullSpan(t *testing.T) {
	src := "class C\n{\n    void M()\n    {\n        int x = 5; // five\n    }\n}\n"
	tree := mustParse(t, src)
	local := nodesOf(tree, syntax.NodeLocalDeclaration)[0]

	if got := tree.FullText(local); got != "        int x = 5; // five\n" {
		t.Errorf("full text = %q", got)
	}
	sp := tree.Span(local)
	if src[sp.Start:sp.End] != "int x = 5;" {
		t.Errorf("span text = %q", src[sp.Start:sp.End])
	}
}
