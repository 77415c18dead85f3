package ui

import (
	"strings"
	"testing"

	"localtofield/internal/driver"
)

func TestProgressModelTracksEvents(t *testing.T) {
	events := make(chan driver.Event)
	m := NewProgressModel("promote", []string{"A.cs", "B.cs"}, events).(*progressModel)

	m.Update(eventMsg{File: "A.cs", Stage: driver.StageParse, Status: driver.StatusWorking})
	if m.items[0].status != "parsing" || m.items[0].final {
		t.Fatalf("A = %+v", m.items[0])
	}
	m.Update(eventMsg{File: "A.cs", Stage: driver.StagePromote, Status: driver.StatusDone})
	m.Update(eventMsg{File: "B.cs", Stage: driver.StageLocate, Status: driver.StatusDeclined})
	m.Update(eventMsg{File: "unknown.cs", Stage: driver.StageLoad, Status: driver.StatusError})
	m.Update(doneMsg{})

	view := m.View()
	for _, want := range []string{"done: promote (1 promoted, 1 skipped, 0 failed)", "A.cs", "declined"} {
		if !strings.Contains(view, want) {
			t.Errorf("view lacks %q:\n%s", want, view)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short.cs", 20, "short.cs"},
		{"src/very/long/path/File.cs", 12, "src/ve..."},
		{"日本語.cs", 8, "日..."},
		{"abcdef", 2, "ab"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}
