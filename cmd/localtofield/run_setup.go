package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"localtofield/internal/observ"
	"localtofield/internal/prof"
)

// runEnv is what every working command sets up before doing anything:
// resolved settings, the tracer, profilers and the phase timer.
type runEnv struct {
	settings settings
	timer    *observ.Timer
	closers  []func()
}

// prepare loads settings, installs the tracer and starts profiling for cmd.
// Close must be called when the command finishes.
func prepare(cmd *cobra.Command) (*runEnv, error) {
	env := &runEnv{timer: observ.NewTimer()}
	endConfig := env.timer.Begin("config")
	s, err := commandSettings(cmd)
	if err != nil {
		return nil, err
	}
	env.settings = s
	endConfig(s.Path)

	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return nil, err
	}
	env.closers = append(env.closers, stopProfiling)

	cleanup, err := setupTracing(cmd, s.Trace)
	if err != nil {
		env.Close(cmd)
		return nil, err
	}
	env.closers = append(env.closers, cleanup)
	return env, nil
}

// Close releases everything in reverse order and prints timings if asked.
func (e *runEnv) Close(cmd *cobra.Command) {
	for i := len(e.closers) - 1; i >= 0; i-- {
		e.closers[i]()
	}
	e.closers = nil
	if timings, _ := cmd.Root().PersistentFlags().GetBool("timings"); timings {
		if err := e.timer.WriteSummary(cmd.ErrOrStderr()); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "timings: %v\n", err)
		}
	}
}

// setupProfiling starts the profilers named by the persistent flags.
func setupProfiling(cmd *cobra.Command) (func(), error) {
	root := cmd.Root()
	var opts prof.Options
	var err error
	if opts.CPU, err = root.PersistentFlags().GetString("cpu-profile"); err != nil {
		return nil, fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	if opts.Mem, err = root.PersistentFlags().GetString("mem-profile"); err != nil {
		return nil, fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	if opts.Trace, err = root.PersistentFlags().GetString("runtime-trace"); err != nil {
		return nil, fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	session, err := prof.Start(opts)
	if err != nil {
		return nil, err
	}
	return func() {
		if err := session.Stop(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "profiling: %v\n", err)
		}
	}, nil
}
