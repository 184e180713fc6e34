// Package fixture builds small, named programs directly through
// internal/ast's builder API and hands them to the resolution core.
//
// spec.md §1 treats the parser as an external collaborator: this
// core consumes already-built ASTs, it never turns source text into
// one. Since no lexer/parser ships in this retrieval, there is no
// component that can turn a user's .sg file on disk into an
// ast.Tree. Rather than inventing one (which would mean guessing at
// a grammar no example in this pack shows), the driver and CLI work
// over a fixed registry of named modules built the same way
// internal/resolve's test suite builds them — the spec's own scenario
// seeds (§8), each pinned down as a runnable Go program instead of
// prose.
package fixture

import (
	"sort"

	"github.com/vela-lang/velac/internal/ast"
)

// Spec is one named, buildable module. Build receives a fresh builder
// of its own (the driver does not share one between modules, so no
// cross-module reference resolves), and returns the top-level item
// this module's contents were attached to.
type Spec struct {
	Name        string
	Description string
	Build       func(b *ast.Builder) ast.ItemID
}

var registry = map[string]Spec{}

func register(s Spec) {
	registry[s.Name] = s
}

// Lookup returns the named fixture and whether it exists.
func Lookup(name string) (Spec, bool) {
	s, ok := registry[name]
	return s, ok
}

// Names returns every registered fixture name, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
