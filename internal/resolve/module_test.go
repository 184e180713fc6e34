package resolve

import (
	"testing"

	"github.com/vela-lang/velac/internal/ast"
	"github.com/vela-lang/velac/internal/source"
	"github.com/vela-lang/velac/internal/types"
)

func TestResolveFunctionRecordsBodyExpressions(t *testing.T) {
	b := ast.NewBuilder(ast.Hints{})
	sp := source.Span{}
	strs := source.NewInterner()

	intIdent := strs.Intern("int")
	call := b.Exprs.NewCall(b.Exprs.NewIdent(intIdent, sp), nil, sp)
	fn := b.Items.NewFunction(strs.Intern("f"), ast.FunctionItem{Body: []ast.ExprID{call}}, sp)

	mod := b.Items.NewModule(strs.Intern("m"), false, sp)
	b.Items.AddMember(mod, fn)

	tree := b.Build()
	ap := ast.NewProvider(tree, []ast.ItemID{mod})
	r := newTestResolver(tree, ap, []ast.ItemID{mod})
	r.Strings = strs

	rr := r.ResolveFunction(fn)

	sym := ap.SymbolOf(fn)
	callRef := ast.NodeRef{Tag: ast.TagCallExpr, Expr: call}
	id, ok := ap.IDOf(sym, callRef)
	if !ok {
		t.Fatalf("expected the call expression to have an AST ID")
	}

	res, ok := rr.Get(id)
	if !ok {
		t.Fatalf("expected ResolveFunction to record a result for the call expression")
	}
	got, ok := r.Types.Lookup(res.Type.Type)
	if !ok || got.Kind != types.KindInt {
		t.Fatalf("expected the call to resolve to int, got %+v (ok=%v)", got, ok)
	}

	if same, ok := r.ResultFor(id); !ok || same.Type.Type != res.Type.Type {
		t.Fatalf("expected ResultFor to see what ResolveFunction recorded")
	}
}

func TestResolveModuleTriggersMemberResolution(t *testing.T) {
	b := ast.NewBuilder(ast.Hints{})
	sp := source.Span{}
	strs := source.NewInterner()

	intIdent := strs.Intern("int")
	call := b.Exprs.NewCall(b.Exprs.NewIdent(intIdent, sp), nil, sp)
	fn := b.Items.NewFunction(strs.Intern("f"), ast.FunctionItem{Body: []ast.ExprID{call}}, sp)

	intType := b.TypeExprs.NewPrimitive(types.KindInt, types.Width64, sp)
	field := b.Items.NewField(strs.Intern("x"), intType, ast.NoExprID, sp)
	composite := b.Items.NewComposite(strs.Intern("C"), ast.CompositeItem{Fields: []ast.FieldID{field}}, sp)

	mod := b.Items.NewModule(strs.Intern("m"), false, sp)
	b.Items.AddMember(mod, fn)
	b.Items.AddMember(mod, composite)

	tree := b.Build()
	ap := ast.NewProvider(tree, []ast.ItemID{mod})
	r := newTestResolver(tree, ap, []ast.ItemID{mod})
	r.Strings = strs

	r.ResolveModule(mod)

	sym := ap.SymbolOf(fn)
	callRef := ast.NodeRef{Tag: ast.TagCallExpr, Expr: call}
	id, ok := ap.IDOf(sym, callRef)
	if !ok {
		t.Fatalf("expected the call expression to have an AST ID")
	}
	if _, ok := r.ResultFor(id); !ok {
		t.Fatalf("expected ResolveModule to have resolved f's body as a side effect")
	}

	fields := r.FieldsForTypeDecl(composite, PolicyUseDefaults)
	if fields.IsGeneric || fields.IsGenericWithDefaults {
		t.Fatalf("expected C to be a concrete composite once ResolveModule has run, got %+v", fields)
	}
}

func TestResolveModuleStmtResolvesOnlyTheNamedStatement(t *testing.T) {
	b := ast.NewBuilder(ast.Hints{})
	sp := source.Span{}
	strs := source.NewInterner()

	intIdent := strs.Intern("int")
	callA := b.Exprs.NewCall(b.Exprs.NewIdent(intIdent, sp), nil, sp)
	fnA := b.Items.NewFunction(strs.Intern("a"), ast.FunctionItem{Body: []ast.ExprID{callA}}, sp)

	callB := b.Exprs.NewCall(b.Exprs.NewIdent(intIdent, sp), nil, sp)
	fnB := b.Items.NewFunction(strs.Intern("b"), ast.FunctionItem{Body: []ast.ExprID{callB}}, sp)

	mod := b.Items.NewModule(strs.Intern("m"), false, sp)
	b.Items.AddMember(mod, fnA)
	b.Items.AddMember(mod, fnB)

	tree := b.Build()
	ap := ast.NewProvider(tree, []ast.ItemID{mod})
	r := newTestResolver(tree, ap, []ast.ItemID{mod})
	r.Strings = strs

	r.ResolveModuleStmt(fnA)

	symA := ap.SymbolOf(fnA)
	idA, ok := ap.IDOf(symA, ast.NodeRef{Tag: ast.TagCallExpr, Expr: callA})
	if !ok {
		t.Fatalf("expected a's call expression to have an AST ID")
	}
	if _, ok := r.ResultFor(idA); !ok {
		t.Fatalf("expected ResolveModuleStmt(a) to resolve a's body")
	}

	symB := ap.SymbolOf(fnB)
	idB, ok := ap.IDOf(symB, ast.NodeRef{Tag: ast.TagCallExpr, Expr: callB})
	if !ok {
		t.Fatalf("expected b's call expression to have an AST ID")
	}
	if _, ok := r.ResultFor(idB); ok {
		t.Fatalf("expected ResolveModuleStmt(a) to leave b unresolved")
	}
}
