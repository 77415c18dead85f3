package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"localtofield/internal/lsp"
	"localtofield/internal/trace"
)

var lspCmd = &cobra.Command{
	Use:          "lsp",
	Short:        "Run the language server over stdio",
	Long:         `Run a language server that offers "Introduce field" as a code action on local declarations`,
	SilenceUsage: true,
	RunE:         runLSP,
}

func runLSP(cmd *cobra.Command, _ []string) error {
	env, err := prepare(cmd)
	if err != nil {
		return err
	}
	defer env.Close(cmd)

	opts := lsp.ServerOptions{
		Newline: env.settings.Newline,
		Trace:   trace.FromContext(cmd.Context()).Enabled(),
		Log:     os.Stderr,
	}
	server := lsp.NewServer(os.Stdin, os.Stdout, opts)
	if err := server.Run(cmd.Context()); err != nil {
		if errors.Is(err, lsp.ErrExit) {
			return nil
		}
		if errors.Is(err, lsp.ErrExitWithoutShutdown) {
			return fmt.Errorf("lsp exit without shutdown")
		}
		return err
	}
	return nil
}
