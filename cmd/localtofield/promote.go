package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"localtofield/internal/diag"
	"localtofield/internal/diagfmt"
	"localtofield/internal/driver"
	"localtofield/internal/fix"
	"localtofield/internal/journal"
)

const appName = "localtofield"

var promoteCmd = &cobra.Command{
	Use:   "promote [flags] <file:line:col | file@offset[+len]>...",
	Short: "Promote the local declaration at each target to a field",
	Long: `Promote rewrites the local variable declaration at the given position into
a private field of the enclosing type. With a single target and no flags the
rewritten file is printed to stdout; --diff prints unified diffs and --write
rewrites the files in place (undo restores them).`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPromote,
}

func init() {
	promoteCmd.Flags().Bool("write", false, "rewrite files in place")
	promoteCmd.Flags().Bool("diff", false, "print unified diffs instead of rewritten files")
	promoteCmd.Flags().String("ui", "auto", "progress UI for --write (auto|on|off); overrides [run] ui")
	promoteCmd.Flags().Int("jobs", 0, "max parallel files (0=auto)")
	promoteCmd.Flags().String("newline", "native", "line terminator of generated code (native|lf|crlf|document)")
	promoteCmd.Flags().Bool("no-journal", false, "do not record written files for undo")
	promoteCmd.Flags().String("path-mode", "auto", "paths in diagnostics (auto|absolute|relative|basename)")
}

func runPromote(cmd *cobra.Command, args []string) error {
	targets := make([]driver.Target, 0, len(args))
	for _, arg := range args {
		t, err := driver.ParseTarget(arg)
		if err != nil {
			return err
		}
		targets = append(targets, t)
	}

	write, err := cmd.Flags().GetBool("write")
	if err != nil {
		return fmt.Errorf("failed to get write flag: %w", err)
	}
	showDiff, err := cmd.Flags().GetBool("diff")
	if err != nil {
		return fmt.Errorf("failed to get diff flag: %w", err)
	}
	if len(targets) > 1 && !write && !showDiff {
		return errors.New("several targets need --write or --diff")
	}
	pathModeValue, err := cmd.Flags().GetString("path-mode")
	if err != nil {
		return fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	pathMode, ok := diagfmt.ParsePathMode(pathModeValue)
	if !ok {
		return fmt.Errorf("invalid --path-mode value %q", pathModeValue)
	}
	colorOut, err := useColor(cmd, os.Stderr)
	if err != nil {
		return err
	}

	env, err := prepare(cmd)
	if err != nil {
		return err
	}
	defer env.Close(cmd)
	s := env.settings

	opts := driver.PromoteOptions{
		Jobs:    s.Jobs,
		Newline: s.Newline,
		Write:   write,
	}
	if write && s.Journal {
		j, err := journal.Open(appName)
		if err != nil {
			return fmt.Errorf("failed to open journal: %w", err)
		}
		opts.Journal = j
	}

	endPromote := env.timer.Begin("promote")
	var results []driver.PromoteResult
	if s.Progress.enabled(write, isQuiet(cmd), isTerminal(os.Stdout)) {
		results, err = runPromoteWithUI(cmd.Context(), "Promoting locals", targets, opts)
	} else {
		results, err = driver.PromoteAll(cmd.Context(), targets, opts)
	}
	endPromote(fmt.Sprintf("%d target(s)", len(targets)))
	if err != nil {
		return err
	}

	endReport := env.timer.Begin("report")
	defer endReport("")
	out := cmd.OutOrStdout()
	prettyOpts := diagfmt.PrettyOpts{Color: colorOut, Context: 1, PathMode: pathMode, ShowNotes: true}
	failed := 0
	for i := range results {
		r := &results[i]
		if r.Err != nil {
			failed++
			if err := reportFailure(cmd.ErrOrStderr(), r, prettyOpts); err != nil {
				return err
			}
			continue
		}
		if err := reportSuccess(cmd, out, r, showDiff, write); err != nil {
			return err
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d target(s) not promoted", failed, len(results))
	}
	return nil
}

func reportFailure(w io.Writer, r *driver.PromoteResult, opts diagfmt.PrettyOpts) error {
	d, ok := r.Diagnostic()
	if !ok {
		return nil
	}
	if r.Before == nil {
		_, err := fmt.Fprintf(w, "%s: %s %s: %s\n", r.Target.Path, d.Severity, d.Code.ID(), d.Message)
		return err
	}
	return diagfmt.Pretty(w, r.Before.File(), []diag.Diagnostic{d}, opts)
}

func reportSuccess(cmd *cobra.Command, out io.Writer, r *driver.PromoteResult, showDiff, write bool) error {
	switch {
	case showDiff:
		_, err := io.WriteString(out, fix.Diff(r.Target.Path, r.Before.Text(), r.After.Text()))
		return err
	case write:
		if isQuiet(cmd) {
			return nil
		}
		_, err := fmt.Fprintf(out, "promoted %s (%d bytes)\n", r.Target, r.Change.Bytes)
		return err
	default:
		_, err := io.WriteString(out, r.After.Text())
		return err
	}
}
