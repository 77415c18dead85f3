package refactor

import (
	"context"

	"localtofield/internal/trace"
)

// DebugLog receives progress messages from a refactoring.
type DebugLog interface {
	Log(message string)
}

// NopLog discards messages.
type NopLog struct{}

func (NopLog) Log(string) {}

// LogFunc adapts a function to DebugLog.
type LogFunc func(message string)

func (f LogFunc) Log(message string) { f(message) }

// TraceLog forwards messages to the tracer in ctx as debug-level points.
type TraceLog struct {
	ctx context.Context
}

// NewTraceLog returns a DebugLog that emits debug points to the tracer in ctx.
func NewTraceLog(ctx context.Context) TraceLog {
	return TraceLog{ctx: ctx}
}

func (l TraceLog) Log(message string) {
	trace.Point(trace.FromContext(l.ctx), trace.ScopePass, trace.ParentID(l.ctx), "refactor", message)
}
