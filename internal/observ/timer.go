// Package observ measures the phases of one command run.
package observ

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Phase records the duration and metadata of one phase.
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
}

// Timer tracks phases in the order they began. It is safe for concurrent use.
type Timer struct {
	mu     sync.Mutex
	phases []Phase
	now    func() time.Time
}

// NewTimer creates a new empty Timer.
func NewTimer() *Timer {
	return &Timer{phases: make([]Phase, 0, 4), now: time.Now}
}

// Begin starts a phase; calling the returned func ends it. Only the first
// call counts.
func (t *Timer) Begin(name string) func(note string) {
	t.mu.Lock()
	idx := len(t.phases)
	t.phases = append(t.phases, Phase{Name: name, Start: t.now()})
	t.mu.Unlock()

	var once sync.Once
	return func(note string) {
		once.Do(func() {
			t.mu.Lock()
			defer t.mu.Unlock()
			p := &t.phases[idx]
			p.Dur = t.now().Sub(p.Start)
			p.Note = note
		})
	}
}

// Phases returns a copy of the recorded phases.
func (t *Timer) Phases() []Phase {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Phase(nil), t.phases...)
}

// Total sums the durations of finished phases.
func (t *Timer) Total() time.Duration {
	var total time.Duration
	for _, p := range t.Phases() {
		total += p.Dur
	}
	return total
}

// WriteSummary prints one line per phase followed by the total.
func (t *Timer) WriteSummary(w io.Writer) error {
	phases := t.Phases()
	if len(phases) == 0 {
		return nil
	}
	if _, err := io.WriteString(w, "timings:\n"); err != nil {
		return err
	}
	for _, p := range phases {
		line := fmt.Sprintf("  %-12s %8.2f ms", p.Name, toMillis(p.Dur))
		if p.Note != "" {
			line += "  // " + p.Note
		}
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "  %-12s %8.2f ms\n", "total", toMillis(t.Total()))
	return err
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
