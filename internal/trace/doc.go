// Package trace records what a refactoring run did and how long it took.
//
// Enable it from the command line:
//
//	localtofield promote --trace=- --trace-level=detail Foo.cs:12:9
//
// Tracers:
//
//   - Nop: disabled, zero cost
//   - StreamTracer: writes each event as it happens (text or NDJSON)
//   - RingTracer: keeps the last N events in memory
//   - MultiTracer: fans out to several tracers
//
// Scopes, from coarse to fine: ScopeDriver (one CLI command or LSP request),
// ScopePass (lex, parse, locate, decompose, promote) and ScopeFile (one
// document in a batch). The level decides which scopes are kept.
//
// Tracers travel in a context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "parse", 0)
//	defer span.End("")
package trace
