package driver

import "time"

// Stage describes a phase of processing one file.
type Stage string

const (
	StageLoad    Stage = "load"
	StageParse   Stage = "parse"
	StageLocate  Stage = "locate"
	StagePromote Stage = "promote"
	StageWrite   Stage = "write"
)

// Status captures progress state within a stage.
type Status string

const (
	StatusQueued   Status = "queued"
	StatusWorking  Status = "working"
	StatusDone     Status = "done"
	StatusDeclined Status = "declined"
	StatusError    Status = "error"
)

// Event reports progress for a file (or for the whole run when File is empty).
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events. Events for different files may
// arrive from different goroutines.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

func emit(sink ProgressSink, ev Event) {
	if sink != nil {
		sink.OnEvent(ev)
	}
}
