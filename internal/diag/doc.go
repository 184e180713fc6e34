// Package diag defines the diagnostic model shared by the resolution core.
//
// # Purpose
//
//   - Provide deterministic, serialisable data structures that capture
//     findings produced while resolving a module: unresolved symbols,
//     ambiguous overloads, forwarding cycles, and the like.
//   - Offer light-weight utilities (Reporter, Bag) that let the resolver
//     emit diagnostics without coupling to concrete storage or
//     formatting layers.
//   - Model fix suggestions as structured edits that a future CLI could
//     materialise and optionally apply, even though this core never
//     applies one itself.
//
// # Scope
//
// Package diag does not perform any formatting, IO, CLI integration, or
// interactive behaviour. Rendering responsibilities live in
// internal/diagfmt; per-module aggregation lives in internal/driver.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact, category-ranged identifier (see codes.go:
//     GEN#### for general/driver findings, RESN#### for name resolution,
//     RES#### for other resolution findings, RESG#### for generics and
//     instantiation, PRJ#### for project/manifest problems, OBS#### for
//     observability) with a stable string form.
//   - Message – human oriented text; keep it short and actionable.
//   - Primary span – the canonical source.Span pointing to the issue.
//   - Notes – optional secondary spans/messages for additional context.
//   - Fixes – optional Fix records describing how to address the problem.
//
// Notes should be used sparingly: each note must add new context (e.g. "other
// candidate declared here") rather than repeating the diagnostic message.
//
// # Fix suggestions
//
// Fix represents a possible automated correction. Each fix carries:
//
//   - Title – short label used in UI listings.
//   - Edits – concrete FixEdit records (a source Span plus its NewText).
//
// Fixes are data-only: there is no lazy construction and no applier in
// this package.
//
// # Emitting diagnostics
//
// Resolver code uses a diag.Reporter to decouple emission from storage:
// internal/resolve constructs a ReportBuilder via NewReportBuilder (or the
// helper functions ReportError/ReportWarning/ReportInfo) and chains WithNote /
// WithFixSuggestion before calling Emit.
//
// When no additional metadata is needed, callers may invoke Reporter.Report(...)
// directly. For convenience, diag.BagReporter aggregates diagnostics into a Bag,
// which supports sorting and deduplication.
//
// # Consumers
//
//   - internal/diagfmt: renders a module's Bag as pretty/summary output for the
//     CLI's resolve subcommand.
//   - internal/driver: collects one Bag per fixture module resolved and folds
//     error/warning counts into a ResolutionSummary that gets cached to disk.
//
// Keep the data model deterministic: any new fields should honour the
// package's layering constraints and avoid side effects, so the driver's disk
// cache and the CLI's tests can serialise and compare diagnostics reliably.
package diag
