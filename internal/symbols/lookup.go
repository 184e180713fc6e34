package symbols

import "github.com/vela-lang/velac/internal/source"

// LookupSet is the configuration bitset spec.md §6 names for
// lookupNameInScopeWithSet: {decls, import+use, parents, innermost,
// only-methods-fields, methods}. Candidate gathering (component G)
// composes these per call site — a plain identifier lookup wants
// Decls|ImportUse|Parents; a receiver-typed method call restricts to
// OnlyMethodsFields|Methods without walking lexical parents.
type LookupSet uint8

const (
	LookupDecls LookupSet = 1 << iota
	LookupImportUse
	LookupParents
	LookupInnermost
	LookupOnlyMethodsFields
	LookupMethods
)

func (s LookupSet) Has(flag LookupSet) bool { return s&flag != 0 }

// CheckedScopes deduplicates scope visits across a single search, the
// way spec.md §9 requires for forwarding sweeps: two composites that
// both forward into a third must not walk it twice.
type CheckedScopes struct {
	seen map[ScopeID]bool
}

func NewCheckedScopes() *CheckedScopes {
	return &CheckedScopes{seen: make(map[ScopeID]bool)}
}

// Visit reports whether id has already been visited, marking it
// visited as a side effect. The idiom is `if checked.Visit(id) { continue }`.
func (c *CheckedScopes) Visit(id ScopeID) bool {
	if c.seen[id] {
		return true
	}
	c.seen[id] = true
	return false
}

// LookupNameInScopeWithSet searches for name starting at scope,
// applying cfg's directions. If innermost is set, the search stops at
// the first scope with any match; otherwise it accumulates matches
// from every visited scope (used by overload candidate gathering,
// which wants every function named `f` visible from the call site,
// not just the closest one).
func LookupNameInScopeWithSet(t *Table, start ScopeID, name source.StringID, cfg LookupSet, checked *CheckedScopes) []SymbolID {
	if checked == nil {
		checked = NewCheckedScopes()
	}
	var out []SymbolID
	scope := start
	for scope.IsValid() {
		if checked.Visit(scope) {
			break
		}
		s := t.Scope(scope)
		if s == nil {
			break
		}
		for _, id := range s.NameIndex[name] {
			sym := t.Symbol(id)
			if sym == nil || !matchesSet(sym.Kind, cfg) {
				continue
			}
			out = append(out, id)
		}
		if len(out) > 0 && cfg.Has(LookupInnermost) {
			return out
		}
		if !cfg.Has(LookupParents) {
			break
		}
		scope = s.Parent
	}
	return out
}

func matchesSet(kind SymbolKind, cfg LookupSet) bool {
	if cfg.Has(LookupOnlyMethodsFields) {
		return kind == SymbolField || (kind == SymbolFunction && cfg.Has(LookupMethods))
	}
	switch kind {
	case SymbolImport:
		return cfg.Has(LookupImportUse)
	default:
		return cfg.Has(LookupDecls)
	}
}
