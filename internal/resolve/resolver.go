// Package resolve implements the semantic resolution core: components
// C through H of spec.md §2 — genericity analysis, field/forwarding
// resolution, signature construction, generic instantiation,
// candidate gathering, and the call-resolution driver. Everything
// here is a query over an *ast.Tree/*ast.Provider/*symbols.Table
// triple, memoized through internal/query.
package resolve

import (
	"github.com/vela-lang/velac/internal/ast"
	"github.com/vela-lang/velac/internal/diag"
	"github.com/vela-lang/velac/internal/query"
	"github.com/vela-lang/velac/internal/source"
	"github.com/vela-lang/velac/internal/symbols"
	"github.com/vela-lang/velac/internal/types"
)

// Resolver bundles everything a query needs: the query context (memo
// tables + revision), the type interner, the AST it resolves over,
// and a diagnostic sink. One Resolver serves one compilation unit's
// worth of modules; internal/driver gives each parallel unit its own.
type Resolver struct {
	Ctx    *query.Context
	Types  *types.Interner
	Tree   *ast.Tree
	AST    *ast.Provider
	Scopes *symbols.Table
	Diags  diag.Reporter

	// Strings decodes source.StringID back to text, needed to
	// recognize compiler-generated methods by name (tuple accessors)
	// and the built-in special-form call names §4.H dispatches on
	// (owned/shared/borrowed/unmanaged/c_ptr/domain/atomic). It is
	// optional: a nil Strings degrades those two lookups to "not
	// found" rather than a name-based dispatch, since a Resolver built
	// purely over synthetic test ASTs has nothing to decode.
	Strings *source.Interner

	results map[ast.SymbolID]*ResolutionResultByPostorderID
}

func NewResolver(ctx *query.Context, in *types.Interner, tree *ast.Tree, ap *ast.Provider, scopes *symbols.Table, diags diag.Reporter) *Resolver {
	return &Resolver{
		Ctx:     ctx,
		Types:   in,
		Tree:    tree,
		AST:     ap,
		Scopes:  scopes,
		Diags:   diags,
		results: make(map[ast.SymbolID]*ResolutionResultByPostorderID),
	}
}

// declOf maps a composite's declaring item directly to a DeclID: the
// item's own arena index is already a stable per-declaration integer,
// so no separate registry is needed (spec.md §3: "Decl names the
// declaring construct").
func declOf(item ast.ItemID) types.DeclID { return types.DeclID(item) }

func declItem(decl types.DeclID) ast.ItemID { return ast.ItemID(decl) }
