package driver

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"localtofield/internal/diag"
	"localtofield/internal/refactor"
	"localtofield/internal/source"
	"localtofield/internal/trace"
)

// Declaration describes one local declaration found by ListAll.
type Declaration struct {
	Span       source.Span
	Start      source.LineCol
	Text       string
	Field      refactor.FieldDescriptor // zero when not promotable
	Enclosing  string                   // receiving type; empty for top-level code
	Promotable bool
	Reason     string // why not promotable
}

// Listing is the ListAll result for one file.
type Listing struct {
	Path         string
	File         *source.File
	Declarations []Declaration
	Diagnostics  []diag.Diagnostic // parse diagnostics
	Err          error
}

// ListAll reports every local declaration in files, in parallel. Results
// are in the order of files.
func ListAll(ctx context.Context, files []string, jobs int) ([]Listing, error) {
	ctx, span := trace.Start(ctx, trace.ScopeDriver, "list")
	defer span.End(fmt.Sprintf("%d files", len(files)))

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	results := make([]Listing, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(jobs, len(files))))
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = listOne(gctx, path)
			return nil
		})
	}
	return results, g.Wait()
}

func listOne(ctx context.Context, path string) Listing {
	_, span := trace.Start(ctx, trace.ScopeFile, path)
	defer span.End("")

	out := Listing{Path: path}
	doc, err := LoadDocument(path)
	if err != nil {
		out.Err = err
		return out
	}
	out.File = doc.File()
	out.Diagnostics = doc.Diagnostics()

	tree := doc.Tree()
	whole := source.Span{File: doc.File().ID, Start: 0, End: doc.Len()}
	for _, id := range refactor.FindDeclarations(tree, whole) {
		sp := tree.Span(id)
		d := Declaration{
			Span:  sp,
			Start: doc.File().Position(sp.Start),
			Text:  tree.Text(id),
		}
		field, err := refactor.Decompose(tree, id)
		if err == nil {
			var owner refactor.EnclosingType
			var ok bool
			owner, ok, err = refactor.FindEnclosingType(tree, id)
			if ok {
				d.Enclosing = owner.Name
			}
		}
		if err != nil {
			d.Reason = reason(err)
		} else {
			d.Field = field
			d.Promotable = true
		}
		out.Declarations = append(out.Declarations, d)
	}
	return out
}

func reason(err error) string {
	var rerr *refactor.Error
	if errors.As(err, &rerr) && rerr.Msg != "" {
		return rerr.Msg
	}
	return err.Error()
}
