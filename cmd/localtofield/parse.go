package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"localtofield/internal/diag"
	"localtofield/internal/diagfmt"
	"localtofield/internal/refactor"
	"localtofield/internal/source"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.cs",
	Short: "Parse a C# source file and print its syntax tree",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "tree", "output format (tree|json|short)")
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	fileSet := source.NewFileSet()
	id, err := fileSet.Load(args[0])
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}
	doc := refactor.NewDocument(fileSet.Get(id))

	diags := doc.Diagnostics()
	if maxDiagnostics > 0 && len(diags) > maxDiagnostics {
		diags = diags[:maxDiagnostics]
	}

	switch format {
	case "tree":
		if len(diags) > 0 {
			colorOut, err := useColor(cmd, os.Stderr)
			if err != nil {
				return err
			}
			opts := diagfmt.PrettyOpts{Color: colorOut, Context: 2, ShowNotes: true}
			if err := diagfmt.Pretty(cmd.ErrOrStderr(), doc.File(), diags, opts); err != nil {
				return err
			}
		}
		if err := diagfmt.FormatTree(cmd.OutOrStdout(), doc.Tree()); err != nil {
			return err
		}
	case "short":
		if out := diag.FormatShortDiagnostics(diags, fileSet, true); out != "" {
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), out); err != nil {
				return err
			}
		}
	case "json":
		opts := diagfmt.JSONOpts{IncludePositions: true, IncludeNotes: true, Max: maxDiagnostics}
		if err := diagfmt.JSON(cmd.OutOrStdout(), doc.File(), diags, opts); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if doc.HasParseErrors() {
		return fmt.Errorf("%s: syntax errors", args[0])
	}
	return nil
}
