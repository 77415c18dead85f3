package version

import (
	"testing"

	"github.com/fatih/color"
)

func override(t *testing.T, v, commit, date string) {
	t.Helper()
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	Version, GitCommit, BuildDate = v, commit, date
	t.Cleanup(func() {
		Version, GitCommit, BuildDate = origVersion, origCommit, origDate
	})
}

func TestString(t *testing.T) {
	tests := []struct {
		version, commit, date string
		want                  string
	}{
		{"1.2.3", "", "", "localtofield 1.2.3"},
		{"0.1.0-dev", "abc123", "", "localtofield 0.1.0-dev (commit abc123)"},
		{"1.0.0", "1234567890abcdef1234", "2024-01-15T10:30:00Z", "localtofield 1.0.0 (commit 1234567890ab, built 2024-01-15T10:30:00Z)"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			override(t, tt.version, tt.commit, tt.date)
			if got := String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestColoredWithoutColor(t *testing.T) {
	override(t, "2.0.0-rc.1", "abc", "")
	orig := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = orig })

	if got, want := Colored(), "localtofield 2.0.0-rc.1 (commit abc)"; got != want {
		t.Errorf("Colored() = %q, want %q", got, want)
	}
}
