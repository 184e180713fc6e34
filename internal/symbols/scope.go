package symbols

import (
	"github.com/vela-lang/velac/internal/ast"
	"github.com/vela-lang/velac/internal/source"
)

// ScopeKind enumerates the lexical scope categories the resolution
// core's name lookup walks through.
type ScopeKind uint8

const (
	ScopeInvalid ScopeKind = iota
	ScopeModule
	ScopeFunction
	ScopeComposite // fields/forwarding targets visible to method bodies
	ScopeBlock
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeModule:
		return "module"
	case ScopeFunction:
		return "function"
	case ScopeComposite:
		return "composite"
	case ScopeBlock:
		return "block"
	default:
		return "invalid"
	}
}

// Scope is a lexical scope: a name index over the symbols declared
// directly in it, plus a link to its lexical parent for the "parents"
// lookup direction spec.md §6 names.
type Scope struct {
	Kind      ScopeKind
	Parent    ScopeID
	Owner     ast.SymbolID // the ast symbol (module/function/composite) this scope belongs to
	Span      source.Span
	NameIndex map[source.StringID][]SymbolID
	Symbols   []SymbolID
	Children  []ScopeID
}
