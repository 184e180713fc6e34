// Package query implements the incremental, memoized query engine
// described in spec.md §4.A: every exported resolver function is a
// pure function of (context, key) that returns a reference-equal
// result for equal keys within a revision, detects reentrance so
// mutually recursive queries can break their own cycles, and lets a
// query store a result on behalf of another key it discovers only
// partway through its own body (the initializer provisional/final
// signature dance of spec.md §9).
//
// The engine is deliberately not safe for concurrent use from more
// than one goroutine at a time: spec.md §5 describes the resolution
// core as single-threaded cooperative, with all "concurrency" arising
// from query recursion. Callers that need to resolve independent
// modules in parallel (internal/driver) give each module its own
// Context.
package query

import "fmt"

// entry is the memo-table slot for one (queryID, key) pair.
type entry struct {
	revision uint64
	value    any
	running  bool
}

// Context owns every memo table the resolution core consults
// (interners live elsewhere, e.g. types.Interner). A Context's caches are only ever read and written during
// a query body; Run and StoreResult are the sole write paths.
type Context struct {
	revision uint64
	tables   map[string]map[any]*entry
}

// NewContext creates an empty query context at revision 1.
func NewContext() *Context {
	return &Context{
		revision: 1,
		tables:   make(map[string]map[any]*entry),
	}
}

// Revision returns the context's current revision number.
func (c *Context) Revision() uint64 { return c.revision }

// BumpRevision invalidates every cached query result. Per spec.md §5,
// "a revision change on the context logically invalidates all caches;
// no in-flight computation survives across revisions" — callers must
// not call BumpRevision while a query is executing.
func (c *Context) BumpRevision() {
	c.revision++
}

func (c *Context) table(queryID string) map[any]*entry {
	t, ok := c.tables[queryID]
	if !ok {
		t = make(map[any]*entry)
		c.tables[queryID] = t
	}
	return t
}

// IsRunning reports whether the query identified by (queryID, key) is
// currently on the call stack for this context. Genericity analysis
// (spec.md §4.C step 5) and body resolution with skipIfRunning
// (spec.md §4.F "Body-dependent finalization") use this to break
// recursion instead of overflowing the Go call stack.
func (c *Context) IsRunning(queryID string, key any) bool {
	e, ok := c.table(queryID)[key]
	return ok && e.running && e.revision == c.revision
}

// Run executes compute() and memoizes its result under (queryID, key)
// for the current revision, unless a result is already cached or the
// query is already running (in which case Run panics — callers must
// check IsRunning first, since the correct recovery differs per
// query and the engine cannot guess it).
//
// Re-running a query with the same inputs in the same revision is a
// side-effect-free lookup: compute is not invoked again.
func Run[T any](c *Context, queryID string, key any, compute func() T) T {
	tbl := c.table(queryID)
	if e, ok := tbl[key]; ok && e.revision == c.revision {
		if e.running {
			panic(fmt.Sprintf("query: reentrant call to %s without an IsRunning guard", queryID))
		}
		return e.value.(T)
	}
	tbl[key] = &entry{revision: c.revision, running: true}
	result := compute()
	// The query may have called StoreResult on itself (or another
	// query queried it recursively and it stored under a different
	// key); re-fetch the slot in case StoreResult already finalized it.
	if e := tbl[key]; e.revision == c.revision {
		e.value = result
		e.running = false
	} else {
		tbl[key] = &entry{revision: c.revision, value: result, running: false}
	}
	return result
}

// StoreResult explicitly records a result for (queryID, key), used by
// queries that discover the final answer to a *different* key than
// the one they were invoked under — the pattern spec.md §9 describes
// for initializer signatures: a provisional signature is cached first
// so recursive lookups terminate, then the body resolves and the
// final signature is stored under the same key, which every caller
// (including ones that already read the provisional value through
// IsRunning) reads through to see the final value.
func StoreResult[T any](c *Context, queryID string, key any, value T) {
	c.table(queryID)[key] = &entry{revision: c.revision, value: value, running: false}
}

// Peek returns the currently memoized value for (queryID, key) without
// running compute, reporting whether one exists in the current
// revision. Used by callers that want to distinguish "not yet
// computed" from "computed, now read the provisional value" (the
// initializer dance again).
func Peek[T any](c *Context, queryID string, key any) (T, bool) {
	var zero T
	e, ok := c.table(queryID)[key]
	if !ok || e.revision != c.revision {
		return zero, false
	}
	if e.value == nil {
		return zero, false
	}
	return e.value.(T), true
}
