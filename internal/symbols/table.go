package symbols

import (
	"github.com/vela-lang/velac/internal/ast"
	"github.com/vela-lang/velac/internal/source"
)

// Table owns every Scope and Symbol the resolver knows about, plus
// the ast.SymbolID -> ScopeID index that answers scopeForId.
type Table struct {
	scopes  []Scope
	symbols []Symbol
	scopeOf map[ast.SymbolID]ScopeID
}

func NewTable(capHint int) *Table {
	return &Table{
		scopes:  make([]Scope, 0, capHint),
		symbols: make([]Symbol, 0, capHint*4),
		scopeOf: make(map[ast.SymbolID]ScopeID, capHint),
	}
}

func (t *Table) NewScope(s Scope) ScopeID {
	if s.NameIndex == nil {
		s.NameIndex = make(map[source.StringID][]SymbolID)
	}
	t.scopes = append(t.scopes, s)
	id := ScopeID(len(t.scopes))
	if s.Parent.IsValid() {
		parent := t.Scope(s.Parent)
		parent.Children = append(parent.Children, id)
	}
	return id
}

func (t *Table) Scope(id ScopeID) *Scope {
	if !id.IsValid() || int(id) > len(t.scopes) {
		return nil
	}
	return &t.scopes[id-1]
}

// BindOwner records that the ast symbol owner resolves to scope id,
// backing scopeForId.
func (t *Table) BindOwner(owner ast.SymbolID, id ScopeID) {
	t.scopeOf[owner] = id
}

// ScopeForOwner backs scopeForId.
func (t *Table) ScopeForOwner(owner ast.SymbolID) ScopeID {
	return t.scopeOf[owner]
}

func (t *Table) AddSymbol(scope ScopeID, sym Symbol) SymbolID {
	sym.Scope = scope
	t.symbols = append(t.symbols, sym)
	id := SymbolID(len(t.symbols))

	s := t.Scope(scope)
	s.Symbols = append(s.Symbols, id)
	s.NameIndex[sym.Name] = append(s.NameIndex[sym.Name], id)
	return id
}

func (t *Table) Symbol(id SymbolID) *Symbol {
	if !id.IsValid() || int(id) > len(t.symbols) {
		return nil
	}
	return &t.symbols[id-1]
}
