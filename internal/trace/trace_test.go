package trace

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelPhase, ScopeDriver, true},
		{LevelPhase, ScopePass, true},
		{LevelPhase, ScopeFile, false},
		{LevelDetail, ScopeFile, true},
		{LevelDebug, ScopeFile, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Errorf("%v.ShouldEmit(%v) = %v, want %v", tt.level, tt.scope, got, tt.want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	for _, s := range []string{"off", "phase", "DETAIL", "debug", ""} {
		if _, err := ParseLevel(s); err != nil {
			t.Errorf("ParseLevel(%q): %v", s, err)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Errorf("expected error for unknown level")
	}
}

func TestStreamTracerText(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatText)
	ctx := WithTracer(context.Background(), tr)

	ctx, outer := Start(ctx, ScopeDriver, "promote")
	_, inner := Start(ctx, ScopeFile, "file:A.cs")
	inner.WithExtra("edits", "2").End("ok")
	outer.End("")

	out := buf.String()
	for _, want := range []string{"→ promote", "→ file:A.cs", "← file:A.cs (ok) {edits=2}", "← promote"} {
		if !strings.Contains(out, want) {
			t.Errorf("output misses %q:\n%s", want, out)
		}
	}
}

func TestInertSpanBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatNDJSON)
	sp := Begin(tr, ScopeFile, "file:A.cs", 0)
	sp.End("")
	if sp.ID() != 0 || buf.Len() != 0 {
		t.Errorf("file scope must be dropped at phase level, got %q", buf.String())
	}
	Point(tr, ScopePass, 0, "log", "ignored below debug")
	if buf.Len() != 0 {
		t.Errorf("points need debug level")
	}
}

func TestRingTracerWraps(t *testing.T) {
	r := NewRingTracer(2, LevelDebug)
	for _, name := range []string{"a", "b", "c"} {
		Point(r, ScopePass, 0, name, "")
	}
	events := r.Snapshot()
	if len(events) != 2 || events[0].Name != "b" || events[1].Name != "c" {
		t.Fatalf("snapshot = %+v", events)
	}
	var buf bytes.Buffer
	if err := r.Dump(&buf, FormatNDJSON); err != nil {
		t.Fatal(err)
	}
	if strings.Count(buf.String(), "\n") != 2 || !strings.Contains(buf.String(), `"name":"c"`) {
		t.Errorf("dump = %s", buf.String())
	}
}

func TestNewWithLevelOffIsNop(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil {
		t.Fatal(err)
	}
	if tr.Enabled() {
		t.Errorf("expected disabled tracer")
	}
}
