// Package trace records what a demonstration run did and how long it took.
//
// It is the logging layer of cflclosure: stages of the run and every
// grammar generation open spans, and the stream tracer writes them as
// text or NDJSON.
//
// # Usage
//
// Enable tracing via command-line flags:
//
//	cflclosure --trace=- --trace-level=detail
//
// # Levels
//
//   - LevelOff: No tracing
//   - LevelError: Only failures
//   - LevelPhase: Run and stage boundaries
//   - LevelDetail: Per-grammar generation spans
//   - LevelDebug: Everything
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopeStage, "intersect", parentID)
//	defer span.End("")
package trace
