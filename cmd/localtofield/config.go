package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"localtofield/internal/refactor"
)

const configFileName = ".localtofield.toml"

type fileConfig struct {
	Format formatConfig `toml:"format"`
	Run    runConfig    `toml:"run"`
	Trace  traceConfig  `toml:"trace"`
}

type formatConfig struct {
	Newline string `toml:"newline"`
}

type runConfig struct {
	Jobs    int    `toml:"jobs"`
	Journal *bool  `toml:"journal"`
	UI      string `toml:"ui"`
}

type traceConfig struct {
	Level  string `toml:"level"`
	Output string `toml:"output"`
}

// settings is the resolved configuration: file values, then flag overrides.
type settings struct {
	Path     string // config file in use; "" when none was found
	Newline  refactor.Newline
	Jobs     int
	Journal  bool
	Progress progressMode
	Trace    traceConfig
}

func defaultSettings() settings {
	return settings{Newline: refactor.NewlineNative, Journal: true, Progress: progressAuto}
}

// progressMode selects the bubbletea progress view for promote --write.
type progressMode string

const (
	progressAuto progressMode = "auto"
	progressOn   progressMode = "on"
	progressOff  progressMode = "off"
)

func parseProgressMode(value string) (progressMode, error) {
	switch m := progressMode(strings.ToLower(strings.TrimSpace(value))); m {
	case "":
		return progressAuto, nil
	case progressAuto, progressOn, progressOff:
		return m, nil
	default:
		return "", fmt.Errorf("%q is not one of auto|on|off", value)
	}
}

// enabled reports whether a write run shows the progress view. Quiet runs
// and non-writing runs never do; auto follows whether stdout is a terminal.
func (m progressMode) enabled(write, quiet, tty bool) bool {
	if !write || quiet {
		return false
	}
	switch m {
	case progressOn:
		return true
	case progressOff:
		return false
	default:
		return tty
	}
}

// findConfig walks up from startDir looking for .localtofield.toml.
func findConfig(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, configFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// loadConfigFile decodes path on top of the defaults.
func loadConfigFile(path string) (settings, error) {
	s := defaultSettings()
	var cfg fileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return s, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return s, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	s.Path = path
	if cfg.Format.Newline != "" {
		nl, err := refactor.ParseNewline(cfg.Format.Newline)
		if err != nil {
			return s, fmt.Errorf("%s: [format] newline: %w", path, err)
		}
		s.Newline = nl
	}
	if cfg.Run.Jobs < 0 {
		return s, fmt.Errorf("%s: [run] jobs must not be negative", path)
	}
	s.Jobs = cfg.Run.Jobs
	if cfg.Run.Journal != nil {
		s.Journal = *cfg.Run.Journal
	}
	mode, err := parseProgressMode(cfg.Run.UI)
	if err != nil {
		return s, fmt.Errorf("%s: [run] ui: %w", path, err)
	}
	s.Progress = mode
	s.Trace = cfg.Trace
	return s, nil
}

// loadSettings resolves --config, or searches upward from startDir.
func loadSettings(explicit, startDir string) (settings, error) {
	if explicit != "" {
		return loadConfigFile(explicit)
	}
	path, ok, err := findConfig(startDir)
	if err != nil {
		return defaultSettings(), err
	}
	if !ok {
		return defaultSettings(), nil
	}
	return loadConfigFile(path)
}

// commandSettings loads the configuration for cmd and applies the
// flags the user set explicitly.
func commandSettings(cmd *cobra.Command) (settings, error) {
	explicit, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return defaultSettings(), fmt.Errorf("failed to get config flag: %w", err)
	}
	s, err := loadSettings(explicit, ".")
	if err != nil {
		return s, err
	}
	flags := cmd.Flags()
	if flags.Lookup("newline") != nil && flags.Changed("newline") {
		value, _ := flags.GetString("newline")
		nl, err := refactor.ParseNewline(value)
		if err != nil {
			return s, fmt.Errorf("invalid --newline: %w", err)
		}
		s.Newline = nl
	}
	if flags.Lookup("jobs") != nil && flags.Changed("jobs") {
		s.Jobs, _ = flags.GetInt("jobs")
	}
	if flags.Lookup("no-journal") != nil && flags.Changed("no-journal") {
		noJournal, _ := flags.GetBool("no-journal")
		s.Journal = !noJournal
	}
	if flags.Lookup("ui") != nil && flags.Changed("ui") {
		value, _ := flags.GetString("ui")
		mode, err := parseProgressMode(value)
		if err != nil {
			return s, fmt.Errorf("invalid --ui: %w", err)
		}
		s.Progress = mode
	}
	return s, nil
}
