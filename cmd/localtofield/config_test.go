package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"localtofield/internal/refactor"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, configFileName)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFindConfigWalksUp(t *testing.T) {
	root := t.TempDir()
	want := writeConfig(t, root, "")
	nested := filepath.Join(root, "src", "App")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	got, ok, err := findConfig(nested)
	if err != nil {
		t.Fatalf("findConfig: %v", err)
	}
	if !ok || got != want {
		t.Fatalf("findConfig = %q, %v; want %q", got, ok, want)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
[format]
newline = "crlf"

[run]
jobs = 3
journal = false
ui = "on"

[trace]
level = "detail"
output = "trace.ndjson"
`)
	s, err := loadConfigFile(path)
	if err != nil {
		t.Fatalf("loadConfigFile: %v", err)
	}
	if s.Newline != refactor.NewlineCRLF || s.Jobs != 3 || s.Journal || s.Progress != progressOn {
		t.Fatalf("unexpected settings: %+v", s)
	}
	if s.Trace.Level != "detail" || s.Trace.Output != "trace.ndjson" {
		t.Fatalf("unexpected trace section: %+v", s.Trace)
	}
	if s.Path != path {
		t.Fatalf("Path = %q, want %q", s.Path, path)
	}
}

func TestLoadConfigFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"bad newline", "[format]\nnewline = \"mac\"\n", "newline"},
		{"negative jobs", "[run]\njobs = -1\n", "jobs"},
		{"unknown key", "[run]\nworkers = 2\n", "unknown key"},
		{"bad ui", "[run]\nui = \"fancy\"\n", "[run] ui"},
		{"syntax", "[run\n", "failed to parse TOML"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tt.content)
			_, err := loadConfigFile(path)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadSettingsDefaults(t *testing.T) {
	s, err := loadSettings("", t.TempDir())
	if err != nil {
		t.Fatalf("loadSettings: %v", err)
	}
	if s != defaultSettings() {
		t.Fatalf("settings = %+v, want defaults", s)
	}
}

func newTestCommand() *cobra.Command {
	root := &cobra.Command{Use: "test"}
	root.PersistentFlags().String("config", "", "")
	child := &cobra.Command{Use: "child", RunE: func(*cobra.Command, []string) error { return nil }}
	child.Flags().String("newline", "native", "")
	child.Flags().Int("jobs", 0, "")
	child.Flags().Bool("no-journal", false, "")
	child.Flags().String("ui", "auto", "")
	root.AddCommand(child)
	return child
}

func TestCommandSettingsFlagsOverrideFile(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "[format]\nnewline = \"lf\"\n[run]\njobs = 2\n")

	cmd := newTestCommand()
	if err := cmd.Root().PersistentFlags().Set("config", path); err != nil {
		t.Fatal(err)
	}
	if err := cmd.Flags().Set("jobs", "8"); err != nil {
		t.Fatal(err)
	}
	if err := cmd.Flags().Set("no-journal", "true"); err != nil {
		t.Fatal(err)
	}

	s, err := commandSettings(cmd)
	if err != nil {
		t.Fatalf("commandSettings: %v", err)
	}
	if s.Newline != refactor.NewlineLF {
		t.Errorf("Newline = %v, want lf from the file", s.Newline)
	}
	if s.Jobs != 8 {
		t.Errorf("Jobs = %d, want 8 from the flag", s.Jobs)
	}
	if s.Journal {
		t.Errorf("Journal = true, want false from --no-journal")
	}
}

func TestCommandSettingsRejectsBadNewline(t *testing.T) {
	t.Chdir(t.TempDir())
	cmd := newTestCommand()
	if err := cmd.Flags().Set("newline", "cr"); err != nil {
		t.Fatal(err)
	}
	if _, err := commandSettings(cmd); err == nil {
		t.Fatal("expected an error for --newline cr")
	}
}

func TestParseProgressMode(t *testing.T) {
	tests := []struct {
		in   string
		want progressMode
		ok   bool
	}{
		{"", progressAuto, true},
		{"Auto", progressAuto, true},
		{" on ", progressOn, true},
		{"off", progressOff, true},
		{"sometimes", "", false},
	}
	for _, tt := range tests {
		got, err := parseProgressMode(tt.in)
		if (err == nil) != tt.ok || got != tt.want {
			t.Errorf("parseProgressMode(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestProgressModeEnabled(t *testing.T) {
	tests := []struct {
		mode              progressMode
		write, quiet, tty bool
		want              bool
	}{
		{progressAuto, true, false, true, true},
		{progressAuto, true, false, false, false},
		{progressOn, true, false, false, true},
		{progressOff, true, false, true, false},
		{progressOn, false, false, true, false},
		{progressOn, true, true, true, false},
	}
	for _, tt := range tests {
		if got := tt.mode.enabled(tt.write, tt.quiet, tt.tty); got != tt.want {
			t.Errorf("%s.enabled(write=%v, quiet=%v, tty=%v) = %v", tt.mode, tt.write, tt.quiet, tt.tty, got)
		}
	}
}

func TestProgressModeFromFileAndFlag(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "[run]\nui = \"off\"\n")

	cmd := newTestCommand()
	if err := cmd.Root().PersistentFlags().Set("config", path); err != nil {
		t.Fatal(err)
	}
	s, err := commandSettings(cmd)
	if err != nil {
		t.Fatalf("commandSettings: %v", err)
	}
	if s.Progress != progressOff {
		t.Fatalf("Progress = %q, want off from [run] ui", s.Progress)
	}

	if err := cmd.Flags().Set("ui", "on"); err != nil {
		t.Fatal(err)
	}
	if s, err = commandSettings(cmd); err != nil {
		t.Fatalf("commandSettings: %v", err)
	}
	if s.Progress != progressOn {
		t.Fatalf("Progress = %q, want on from --ui", s.Progress)
	}

	if err := cmd.Flags().Set("ui", "maybe"); err != nil {
		t.Fatal(err)
	}
	if _, err := commandSettings(cmd); err == nil || !strings.Contains(err.Error(), "--ui") {
		t.Fatalf("error = %v, want an invalid --ui error", err)
	}
}
