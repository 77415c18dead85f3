package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"localtofield/internal/driver"
	"localtofield/internal/ui"
)

type promoteOutcome struct {
	results []driver.PromoteResult
	err     error
}

// runPromoteWithUI runs PromoteAll behind the progress view. Quitting the
// view cancels the run.
func runPromoteWithUI(ctx context.Context, title string, targets []driver.Target, opts driver.PromoteOptions) ([]driver.PromoteResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	files := make([]string, len(targets))
	for i, t := range targets {
		files[i] = t.Path
	}

	events := make(chan driver.Event, 256)
	outcomeCh := make(chan promoteOutcome, 1)
	go func() {
		opts.Progress = driver.ChannelSink{Ch: events}
		res, err := driver.PromoteAll(ctx, targets, opts)
		outcomeCh <- promoteOutcome{results: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	cancel()
	// освобождаем отправителей, если UI завершился раньше
	for range events {
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
