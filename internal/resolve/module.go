package resolve

import (
	"github.com/vela-lang/velac/internal/ast"
	"github.com/vela-lang/velac/internal/symbols"
	"github.com/vela-lang/velac/internal/types"
)

// isExprTag reports whether a NodeRef's tag names one of ResolveExpr's
// own dispatch cases, as opposed to a declaration leaf (formal, field,
// forwarding) or a type-expression node §4.D/§4.E already resolve on
// their own path.
func isExprTag(tag ast.Tag) bool {
	switch tag {
	case ast.TagCallExpr, ast.TagIdentExpr, ast.TagLiteralExpr, ast.TagTupleExpr,
		ast.TagMemberExpr, ast.TagUnaryExpr, ast.TagNewExpr, ast.TagQuestionExpr:
		return true
	default:
		return false
	}
}

// resolveExprNodes resolves every expression node the AST provider
// numbered for sym, in the exact post-order it numbered them in
// (spec.md §3/§5: "filled left-to-right as the AST is traversed").
// Because that order places every child strictly before its parent,
// resolving nodes in this order and letting ResolveExpr recurse into
// still-unresolved children on demand never observes a partially-built
// result; recording happens once per node regardless.
func (r *Resolver) resolveExprNodes(sym ast.SymbolID, ctx ExprContext) {
	for _, ref := range r.AST.NodesOf(sym) {
		if !isExprTag(ref.Tag) {
			continue
		}
		id, ok := r.AST.IDOf(sym, ref)
		if !ok {
			continue
		}
		qt := r.ResolveExpr(ctx, ref.Expr)
		r.recordResult(id, ResolvedExpression{Type: qt, POIScope: ctx.Scope})
	}
}

// formalReceiverType evaluates a method's implicit "this" formal
// (spec.md §4.E: methods carry it as Formals[0]) under scope, giving
// resolveCallExpr's implicit-receiver retry something to try a failed
// free-standing call against.
func (r *Resolver) formalReceiverType(scope symbols.ScopeID, fn *ast.FunctionItem) types.QualifiedType {
	if !fn.IsMethod || len(fn.Formals) == 0 {
		return types.UnknownQT
	}
	f := r.Tree.Items.Formal(fn.Formals[0])
	if f == nil {
		return types.UnknownQT
	}
	return r.EvalTypeExpr(scope, f.TypeExpr)
}

// ResolveFunction is spec.md §6's resolveFunction/resolveConcreteFunction:
// resolve every statement of item's body in declaration order, each
// one recorded into item's own ResolutionResultByPostorderID.
// Type-constructor bodies and where clauses are handled by
// TypeConstructorInitial/evalWhereClause (component E) and are not
// re-walked here; this only covers the executable body §4.H's driver
// actually dispatches expressions from.
func (r *Resolver) ResolveFunction(item ast.ItemID) *ResolutionResultByPostorderID {
	sym := r.AST.SymbolOf(item)
	fn, ok := r.Tree.Items.Function(item)
	if !ok {
		return r.resultsFor(sym)
	}

	scope := r.Scopes.ScopeForOwner(sym)
	ctx := ExprContext{Scope: scope, Receiver: r.formalReceiverType(scope, fn)}
	r.resolveExprNodes(sym, ctx)
	return r.resultsFor(sym)
}

// ResolveInitializer is spec.md §6's resolveInitializer: an
// initializer body resolves exactly like an ordinary method body, with
// its receiver's fields already in scope through the composite's own
// scope (built by symbols.Build). No distinct AST shape exists for
// "initializer" versus "method" in this model beyond IsMethod, so this
// is a thin, named alias kept for API-surface parity with spec.md §6
// rather than a copy of ResolveFunction's logic.
func (r *Resolver) ResolveInitializer(item ast.ItemID) *ResolutionResultByPostorderID {
	return r.ResolveFunction(item)
}

// ResolveModule is spec.md §6's resolveModule(id): trigger resolution
// of every function and composite the module directly declares.
// Nested modules recurse. A module's own post-order sequence holds
// only declaration leaves (functions/composites), never expressions
// (numberSymbol never walks into a member's body when numbering the
// module itself), so there is nothing to record against the module's
// own ResolutionResultByPostorderID beyond triggering its members'
// resolution as a side effect; the module's own (always-empty) table
// is still returned for uniformity with resolveModuleStmt's return
// shape.
func (r *Resolver) ResolveModule(item ast.ItemID) *ResolutionResultByPostorderID {
	sym := r.AST.SymbolOf(item)
	mod, ok := r.Tree.Items.Module(item)
	if !ok {
		return r.resultsFor(sym)
	}
	for _, member := range mod.Body {
		switch r.Tree.Items.Tag(member) {
		case ast.TagFunction:
			r.ResolveFunction(member)
		case ast.TagComposite:
			r.FieldsForTypeDecl(member, PolicyUseDefaults)
		case ast.TagModule:
			r.ResolveModule(member)
		}
	}
	return r.resultsFor(sym)
}

// ResolveModuleStmt is spec.md §6's resolveModuleStmt(stmtId): resolve
// exactly one top-level declaration by re-entering the matching
// per-kind resolver, without re-walking the rest of the module. stmtId
// must name a Function or Composite item directly owned by a module
// (the only two module-statement shapes this AST models); anything
// else is a no-op returning the target symbol's (possibly still empty)
// results table.
func (r *Resolver) ResolveModuleStmt(stmtItem ast.ItemID) *ResolutionResultByPostorderID {
	switch r.Tree.Items.Tag(stmtItem) {
	case ast.TagFunction:
		return r.ResolveFunction(stmtItem)
	case ast.TagComposite:
		r.FieldsForTypeDecl(stmtItem, PolicyUseDefaults)
		return r.resultsFor(r.AST.SymbolOf(stmtItem))
	default:
		return r.resultsFor(r.AST.SymbolOf(stmtItem))
	}
}

// ScopeResolveModule is spec.md §6's scopeResolveModule(id): the
// declaration-only pass a `use`/import resolver needs before full type
// resolution can run. Since symbols.Build already constructs every
// module/function/composite scope eagerly and independently of body
// resolution (spec.md §1 treats scope-building as an out-of-scope
// external collaborator this core is handed, not one it drives), there
// is no separate declaration sweep left to perform here; this exists
// so the four-entry-point surface spec.md §6 names is complete, and
// simply confirms the module's scope already exists.
func (r *Resolver) ScopeResolveModule(item ast.ItemID) *ResolutionResultByPostorderID {
	sym := r.AST.SymbolOf(item)
	_ = r.Scopes.ScopeForOwner(sym)
	return r.resultsFor(sym)
}

// ScopeResolveModuleStmt is ScopeResolveModule's per-statement sibling.
func (r *Resolver) ScopeResolveModuleStmt(stmtItem ast.ItemID) *ResolutionResultByPostorderID {
	sym := r.AST.SymbolOf(stmtItem)
	_ = r.Scopes.ScopeForOwner(sym)
	return r.resultsFor(sym)
}
