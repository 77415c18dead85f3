package refactor

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/tools/txtar"

	"localtofield/internal/source"
)

// Each testdata/*.txt archive holds input.cs and either want.cs or error.
// The comment selects the target with one of
//
//	caret: <text>         caret before the first occurrence of text
//	caret-after: <text>   caret right after it
//	select: <a> .. <b>    from the start of a to the end of b
func TestIntroduceFieldGolden(t *testing.T) {
	files, err := filepath.Glob("testdata/*.txt")
	if err != nil {
		t.Fatal(err)
	}
	if len(files) == 0 {
		t.Fatal("no test cases")
	}

	for _, file := range files {
		t.Run(strings.TrimSuffix(filepath.Base(file), ".txt"), func(t *testing.T) {
			ar, err := txtar.ParseFile(file)
			if err != nil {
				t.Fatal(err)
			}
			sections := map[string]string{}
			for _, f := range ar.Files {
				sections[f.Name] = string(f.Data)
			}
			input, ok := sections["input.cs"]
			if !ok {
				t.Fatal("missing input.cs")
			}

			doc := ParseText("input.cs", input)
			if doc.HasParseErrors() {
				t.Fatalf("input does not parse cleanly: %v", doc.Diagnostics())
			}
			sel := selection(t, string(ar.Comment), input)

			got, err := introduceAt(t, doc, sel)
			if wantErr, ok := sections["error"]; ok {
				wantErr = strings.TrimSpace(wantErr)
				if err == nil {
					t.Fatalf("expected error %q, got output:\n%s", wantErr, got)
				}
				if !strings.Contains(err.Error(), wantErr) {
					t.Fatalf("error = %q, want it to contain %q", err, wantErr)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if want := sections["want.cs"]; got != want {
				t.Errorf("output:\n%s", got)
				t.Errorf("want:\n%s", want)
			}
		})
	}
}

func introduceAt(t *testing.T, doc *Document, sel source.Span) (string, error) {
	t.Helper()
	ctx := context.Background()
	f := New(doc, Options{Newline: NewlineLF, Log: testLog(t)})
	node, ok, err := f.FindLocalDeclaration(ctx, sel)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrNotFound
	}
	out, err := f.FromLocal(ctx, node)
	if err != nil {
		return "", err
	}
	return out.Text(), nil
}

func selection(t *testing.T, comment, input string) source.Span {
	t.Helper()
	indexOf := func(s string) uint32 {
		i := strings.Index(input, s)
		if i < 0 {
			t.Fatalf("%q not found in input", s)
		}
		return uint32(i)
	}
	for _, line := range strings.Split(comment, "\n") {
		key, arg, ok := strings.Cut(line, ": ")
		if !ok {
			continue
		}
		switch key {
		case "caret":
			at := indexOf(arg)
			return source.Span{Start: at, End: at}
		case "caret-after":
			at := indexOf(arg) + uint32(len(arg))
			return source.Span{Start: at, End: at}
		case "select":
			from, to, ok := strings.Cut(arg, " .. ")
			if !ok {
				t.Fatalf("bad select %q", arg)
			}
			return source.Span{Start: indexOf(from), End: indexOf(to) + uint32(len(to))}
		}
	}
	t.Fatal("no caret or select line in comment")
	return source.Span{}
}

func testLog(t *testing.T) DebugLog {
	return LogFunc(func(message string) { t.Log(message) })
}
