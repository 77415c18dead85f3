package driver

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"localtofield/internal/diag"
	"localtofield/internal/fix"
	"localtofield/internal/journal"
	"localtofield/internal/refactor"
	"localtofield/internal/source"
	"localtofield/internal/trace"
)

var (
	// ErrParseErrors is returned for files that do not parse cleanly.
	ErrParseErrors = errors.New("file has syntax errors")
	// ErrDuplicateFile is returned when two targets of one run name the same file.
	ErrDuplicateFile = errors.New("file targeted more than once")
)

// PromoteOptions configures PromoteAll.
type PromoteOptions struct {
	Jobs     int // 0 = GOMAXPROCS
	Newline  refactor.Newline
	Write    bool
	Journal  *journal.Journal // records written files; may be nil
	Progress ProgressSink     // may be nil
}

// PromoteResult is the outcome for one target. Err holds per-target
// failures; Before is nil when the file could not be loaded.
type PromoteResult struct {
	Target Target
	Before *refactor.Document
	After  *refactor.Document
	Change *fix.FileChange
	Err    error
}

// Declined reports whether the target simply had nothing to promote.
func (r *PromoteResult) Declined() bool {
	return refactor.IsDeclined(r.Err)
}

// Diagnostic converts Err into a diagnostic. ok is false on success.
func (r *PromoteResult) Diagnostic() (diag.Diagnostic, bool) {
	if r.Err == nil {
		return diag.Diagnostic{}, false
	}
	var sp source.Span
	if r.Before != nil {
		sp = source.Span{File: r.Before.File().ID}
	}
	var rerr *refactor.Error
	switch {
	case errors.As(r.Err, &rerr):
		return rerr.Diagnostic(), true
	case errors.Is(r.Err, ErrParseErrors):
		d := diag.NewError(diag.RefParseErrors, sp, r.Err.Error())
		if r.Before != nil {
			for _, pd := range r.Before.Diagnostics() {
				d = d.WithNote(pd.Primary, pd.Message)
			}
		}
		return d, true
	case errors.Is(r.Err, fix.ErrStaleFile):
		return diag.NewError(diag.IOStaleFile, sp, r.Err.Error()), true
	case errors.Is(r.Err, fix.ErrConflict):
		return diag.NewError(diag.RefEditConflict, sp, r.Err.Error()), true
	case r.Before == nil:
		return diag.NewError(diag.IOReadFailed, sp, r.Err.Error()), true
	default:
		return diag.NewError(diag.IOWriteFailed, sp, r.Err.Error()), true
	}
}

// PromoteAll promotes every target in parallel. Results are returned in the
// order of targets. Only cancellation and journal failures are returned as
// errors; everything else is reported per result.
func PromoteAll(ctx context.Context, targets []Target, opts PromoteOptions) ([]PromoteResult, error) {
	if err := checkDuplicates(targets); err != nil {
		return nil, err
	}
	ctx, span := trace.Start(ctx, trace.ScopeDriver, "promote")
	defer span.End("")

	for _, t := range targets {
		emit(opts.Progress, Event{File: t.Path, Stage: StageLoad, Status: StatusQueued})
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]PromoteResult, len(targets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(jobs, len(targets))))
	for i, t := range targets {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = promoteOne(gctx, t, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}

	if opts.Write && opts.Journal != nil {
		var entries []journal.Entry
		for _, r := range results {
			if r.Change != nil {
				entries = append(entries, journal.NewEntry(*r.Change, r.Before.File().Content))
			}
		}
		if err := opts.Journal.Save(entries); err != nil {
			return results, fmt.Errorf("journal: %w", err)
		}
	}
	span.WithExtra("targets", fmt.Sprint(len(targets)))
	return results, nil
}

func checkDuplicates(targets []Target) error {
	seen := make(map[string]string, len(targets))
	for _, t := range targets {
		key := t.Path
		if abs, err := source.AbsolutePath(t.Path); err == nil {
			key = abs
		}
		if prev, ok := seen[key]; ok {
			return fmt.Errorf("%s and %s: %w", prev, t, ErrDuplicateFile)
		}
		seen[key] = t.String()
	}
	return nil
}

func promoteOne(ctx context.Context, t Target, opts PromoteOptions) (res PromoteResult) {
	res.Target = t
	ctx, span := trace.Start(ctx, trace.ScopeFile, t.Path)
	started := time.Now()
	stage := StageLoad
	defer func() {
		status := StatusDone
		switch {
		case res.Declined():
			status = StatusDeclined
		case res.Err != nil:
			status = StatusError
		}
		emit(opts.Progress, Event{File: t.Path, Stage: stage, Status: status, Err: res.Err, Elapsed: time.Since(started)})
		span.End(string(status))
	}()
	working := func(s Stage) {
		stage = s
		emit(opts.Progress, Event{File: t.Path, Stage: s, Status: StatusWorking})
	}

	working(StageLoad)
	doc, err := LoadDocument(t.Path)
	if err != nil {
		res.Err = err
		return res
	}
	res.Before = doc

	working(StageParse)
	if doc.HasParseErrors() {
		res.Err = fmt.Errorf("%s: %w", t.Path, ErrParseErrors)
		return res
	}

	working(StageLocate)
	sel, err := t.Selection(doc.File())
	if err != nil {
		res.Err = err
		return res
	}
	f := refactor.New(doc, refactor.Options{Log: refactor.NewTraceLog(ctx), Newline: opts.Newline})
	node, ok, err := f.FindLocalDeclaration(ctx, sel)
	if err == nil && !ok {
		err = &refactor.Error{Kind: refactor.KindNotFound, Span: sel, Msg: t.String()}
	}
	if err != nil {
		res.Err = err
		return res
	}

	working(StagePromote)
	after, err := f.FromLocal(ctx, node)
	if err != nil {
		res.Err = err
		return res
	}
	res.After = after

	if opts.Write {
		working(StageWrite)
		change, err := fix.WriteFile(doc.File(), after.File().Content)
		if err != nil {
			res.Err = err
			return res
		}
		res.Change = &change
	}
	return res
}
