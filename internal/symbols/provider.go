package symbols

import "github.com/vela-lang/velac/internal/ast"

// Build walks tree (via its ast.Provider) and produces a Table with
// one Scope per module/function/composite symbol, populated with the
// declarations that construct visibly introduces: a module scope
// holds its member functions/composites/nested-modules by name, a
// function scope holds its formals, a composite scope holds its
// fields.
//
// Build does not attempt import resolution or `use` visibility
// filtering — those live in the external scope/visibility resolver
// spec.md §1 names as an out-of-scope collaborator; this is the
// reference implementation the resolution core is tested against.
func Build(tree *ast.Tree, ap *ast.Provider, roots []ast.ItemID) *Table {
	t := NewTable(64)
	for _, root := range roots {
		buildScope(t, tree, ap, root, NoScopeID)
	}
	return t
}

func buildScope(t *Table, tree *ast.Tree, ap *ast.Provider, item ast.ItemID, parent ScopeID) ScopeID {
	astSym := ap.SymbolOf(item)

	switch tree.Items.Tag(item) {
	case ast.TagModule:
		mod, _ := tree.Items.Module(item)
		scope := t.NewScope(Scope{Kind: ScopeModule, Parent: parent, Owner: astSym})
		t.BindOwner(astSym, scope)
		for _, member := range mod.Body {
			memberItem := tree.Items.Get(member)
			if memberItem == nil {
				continue
			}
			switch tree.Items.Tag(member) {
			case ast.TagFunction:
				t.AddSymbol(scope, Symbol{Name: memberItem.Name, Kind: SymbolFunction, Decl: Decl{Item: member}, Span: memberItem.Span})
				buildScope(t, tree, ap, member, scope)
			case ast.TagComposite:
				t.AddSymbol(scope, Symbol{Name: memberItem.Name, Kind: SymbolComposite, Decl: Decl{Item: member}, Span: memberItem.Span})
				buildScope(t, tree, ap, member, scope)
			case ast.TagModule:
				t.AddSymbol(scope, Symbol{Name: memberItem.Name, Kind: SymbolModule, Decl: Decl{Item: member}, Span: memberItem.Span})
				buildScope(t, tree, ap, member, scope)
			}
		}
		return scope

	case ast.TagFunction:
		fn, _ := tree.Items.Function(item)
		flags := SymbolFlags(0)
		if fn.IsMethod {
			flags |= SymbolFlagMethod
		}
		if fn.IsParenless {
			flags |= SymbolFlagParenless
		}
		scope := t.NewScope(Scope{Kind: ScopeFunction, Parent: parent, Owner: astSym})
		t.BindOwner(astSym, scope)
		for _, fid := range fn.Formals {
			f := tree.Items.Formal(fid)
			if f == nil {
				continue
			}
			t.AddSymbol(scope, Symbol{Name: f.Name, Kind: SymbolFormal, Decl: Decl{Formal: fid}, Span: f.Span, Flags: flags})
		}
		return scope

	case ast.TagComposite:
		c, _ := tree.Items.Composite(item)
		scope := t.NewScope(Scope{Kind: ScopeComposite, Parent: parent, Owner: astSym})
		t.BindOwner(astSym, scope)
		for _, fid := range c.Fields {
			f := tree.Items.Field(fid)
			if f == nil {
				continue
			}
			t.AddSymbol(scope, Symbol{Name: f.Name, Kind: SymbolField, Decl: Decl{Field: fid}, Span: f.Span})
		}
		return scope
	}
	return NoScopeID
}

// ScopeForID backs spec.md §6's scopeForId: given an AST handle, find
// the innermost scope it was resolved within. Callers that already
// know the owning ast.SymbolID should prefer Table.ScopeForOwner
// directly; ScopeForID exists for the common case of holding a full
// ast.ID (symbol + post-order position).
func ScopeForID(t *Table, id ast.ID) ScopeID {
	return t.ScopeForOwner(id.ParentSymbolID())
}
