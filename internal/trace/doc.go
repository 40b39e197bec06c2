// Package trace records what the compiler is doing and how long it takes.
//
// Enable it from the command line:
//
//	sysyc build --trace=- --trace-level=detail main.sy
//
// Tracers:
//
//   - Nop: disabled tracing, zero overhead
//   - StreamTracer: writes every event as it happens (text or NDJSON)
//   - RingTracer: keeps the last N events in memory
//   - MultiTracer: fans out to several tracers
//
// Events carry a Scope. The Level decides which scopes are emitted:
// LevelPhase shows the driver and each pass (lex, parse, lower, codegen),
// LevelDetail adds one span per function, LevelDebug adds per-statement events.
//
// Tracers travel through the pipeline in a context.Context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "parse", 0)
//	defer span.End("")
package trace
