package symbols

import (
	"github.com/vela-lang/velac/internal/ast"
	"github.com/vela-lang/velac/internal/source"
)

// SymbolKind classifies what a name in a scope refers to.
type SymbolKind uint8

const (
	SymbolInvalid SymbolKind = iota
	SymbolModule
	SymbolFunction
	SymbolComposite
	SymbolField
	SymbolFormal
	SymbolImport
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolModule:
		return "module"
	case SymbolFunction:
		return "function"
	case SymbolComposite:
		return "composite"
	case SymbolField:
		return "field"
	case SymbolFormal:
		return "formal"
	case SymbolImport:
		return "import"
	default:
		return "invalid"
	}
}

// SymbolFlags carries quick-check attributes independent of Kind.
type SymbolFlags uint16

const (
	SymbolFlagPublic SymbolFlags = 1 << iota
	SymbolFlagMethod
	SymbolFlagParenless
)

// Decl points back at the AST construct a symbol names. Exactly one
// of Item/Field/Formal is meaningful, chosen by Kind.
type Decl struct {
	Item   ast.ItemID
	Field  ast.FieldID
	Formal ast.FormalID
}

// Symbol is one named entity visible in some Scope.
type Symbol struct {
	Name  source.StringID
	Kind  SymbolKind
	Scope ScopeID
	Span  source.Span
	Flags SymbolFlags
	Decl  Decl
}
