package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"localtofield/internal/diagfmt"
	"localtofield/internal/driver"
)

var listCmd = &cobra.Command{
	Use:   "list [flags] <file.cs|directory>...",
	Short: "List local declarations and whether they can be promoted",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runList,
}

func init() {
	listCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	listCmd.Flags().Int("jobs", 0, "max parallel files (0=auto)")
	listCmd.Flags().String("path-mode", "relative", "paths in output (auto|absolute|relative|basename)")
}

func runList(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	pathModeValue, err := cmd.Flags().GetString("path-mode")
	if err != nil {
		return fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	pathMode, ok := diagfmt.ParsePathMode(pathModeValue)
	if !ok {
		return fmt.Errorf("invalid --path-mode value %q", pathModeValue)
	}

	env, err := prepare(cmd)
	if err != nil {
		return err
	}
	defer env.Close(cmd)

	files, err := driver.ListSourceFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return errors.New("no .cs files found")
	}
	endList := env.timer.Begin("list")
	listings, err := driver.ListAll(cmd.Context(), files, env.settings.Jobs)
	endList(fmt.Sprintf("%d file(s)", len(files)))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		return diagfmt.FormatListingsJSON(out, listings, pathMode)
	}
	colorOut, err := useColor(cmd, os.Stdout)
	if err != nil {
		return err
	}
	return diagfmt.FormatListingsPretty(out, listings, pathMode, textWidth(), colorOut)
}

// textWidth bounds the declaration column to what fits next to the
// position and field columns; 0 (unbounded) when stdout is not a terminal.
func textWidth() int {
	if !isTerminal(os.Stdout) {
		return 0
	}
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return 0
	}
	return max(w/2, 20)
}
