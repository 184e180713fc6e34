// Package trace provides a tracing subsystem for velac's resolution
// core.
//
// The trace package tracks a project resolve run's own phases —
// fanning out over modules, resolving a single module's functions and
// composites — to help diagnose slow or hung resolution runs, since
// resolving a genuinely cyclic where-clause or forwarding chain
// without the query engine's cycle guard could otherwise spin
// forever.
//
// # Usage
//
// Enable tracing via command-line flags:
//
//	velac resolve --trace=- --trace-level=phase
//
// # Architecture
//
// The package provides several tracer implementations:
//
//   - Nop: Zero-overhead no-op tracer when disabled
//   - StreamTracer: Immediate write to output (file/stderr)
//   - RingTracer: Circular buffer for crash dumps
//   - MultiTracer: Combines multiple tracers
//
// # Levels
//
// Tracing verbosity is controlled by levels:
//
//   - LevelOff: No tracing
//   - LevelError: No span events; tracers record only heartbeats
//   - LevelPhase: Driver and pass boundaries
//   - LevelDetail: Per-module resolution events
//   - LevelDebug: Everything, including per-expression resolution
//
// # Scopes
//
// Events are categorized by scope:
//
//   - ScopeDriver: The whole `velac resolve` run
//   - ScopeModule: One fixture module's resolution
//   - ScopePass: A resolution stage inside a module (candidates, instantiate, ...)
//   - ScopeNode: AST node level (future)
//
// # Context Propagation
//
// Tracers are propagated through the resolve run via context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopeModule, "module:S1", parentID)
//	defer span.End("")
package trace
