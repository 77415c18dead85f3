package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"localtofield/internal/journal"
)

var undoCmd = &cobra.Command{
	Use:   "undo",
	Short: "Restore the files rewritten by the last promote --write",
	Long: `Undo restores every file written by the last journaled run. Nothing is
restored if any of those files changed since the run.`,
	Args: cobra.NoArgs,
	RunE: runUndo,
}

func init() {
	undoCmd.Flags().Bool("dry-run", false, "show what would be restored")
}

func runUndo(cmd *cobra.Command, _ []string) error {
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return fmt.Errorf("failed to get dry-run flag: %w", err)
	}
	j, err := journal.Open(appName)
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}
	out := cmd.OutOrStdout()

	if dryRun {
		rec, ok, err := j.Last()
		if err != nil {
			return err
		}
		if !ok {
			return journal.ErrEmpty
		}
		fmt.Fprintf(out, "last run %s:\n", rec.Time.Format("2006-01-02 15:04:05"))
		for _, e := range rec.Entries {
			fmt.Fprintf(out, "  %s\n", e.Path)
		}
		return nil
	}

	changes, err := j.Undo()
	if err != nil {
		return fmt.Errorf("undo failed: %w", err)
	}
	if !isQuiet(cmd) {
		for _, c := range changes {
			fmt.Fprintf(out, "restored %s\n", c.Path)
		}
	}
	return nil
}
