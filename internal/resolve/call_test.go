package resolve

import (
	"testing"

	"github.com/vela-lang/velac/internal/ast"
	"github.com/vela-lang/velac/internal/diag"
	"github.com/vela-lang/velac/internal/source"
	"github.com/vela-lang/velac/internal/types"
)

func TestResolveCallExprNumericConstructor(t *testing.T) {
	b := ast.NewBuilder(ast.Hints{})
	sp := source.Span{}
	strs := source.NewInterner()

	ident := b.Exprs.NewIdent(strs.Intern("int"), sp)
	width := b.Exprs.New(ast.Expr{Kind: ast.ExprLiteral, LiteralKind: ast.LiteralInt, IntVal: 32})
	call := b.Exprs.NewCall(ident, []ast.Arg{{Value: width}}, sp)

	tree := b.Build()
	ap := ast.NewProvider(tree, nil)
	r := newTestResolver(tree, ap, nil)
	r.Strings = strs

	qt := r.ResolveExpr(ExprContext{}, call)
	if qt.Kind != types.QualType {
		t.Fatalf("expected a type-valued result, got kind %v", qt.Kind)
	}
	got, ok := r.Types.Lookup(qt.Type)
	if !ok || got.Kind != types.KindInt || got.Width != types.Width32 {
		t.Fatalf("expected int(32), got %+v", got)
	}
}

func TestResolveCallExprNumericConstructorBareGeneric(t *testing.T) {
	b := ast.NewBuilder(ast.Hints{})
	sp := source.Span{}
	strs := source.NewInterner()

	ident := b.Exprs.NewIdent(strs.Intern("int"), sp)
	question := b.Exprs.NewQuestion(source.NoStringID, sp)
	call := b.Exprs.NewCall(ident, []ast.Arg{{Value: question}}, sp)

	tree := b.Build()
	ap := ast.NewProvider(tree, nil)
	r := newTestResolver(tree, ap, nil)
	r.Strings = strs

	qt := r.ResolveExpr(ExprContext{}, call)
	got, ok := r.Types.Lookup(qt.Type)
	if !ok || got.Kind != types.KindAnyInt {
		t.Fatalf("expected AnyInt bound, got %+v", got)
	}
}

func TestResolveCallExprClassManagementCombine(t *testing.T) {
	b := ast.NewBuilder(ast.Hints{})
	sp := source.Span{}
	strs := source.NewInterner()

	mod := b.Items.NewModule(strs.Intern("m"), false, sp)
	composite := b.Items.NewComposite(strs.Intern("MyClass"), ast.CompositeItem{Shape: ast.ShapeClass}, sp)
	b.Items.AddMember(mod, composite)
	classIdent := b.Exprs.NewIdent(strs.Intern("MyClass"), sp)
	ownedIdent := b.Exprs.NewIdent(strs.Intern("owned"), sp)
	call := b.Exprs.NewCall(ownedIdent, []ast.Arg{{Value: classIdent}}, sp)

	tree := b.Build()
	ap := ast.NewProvider(tree, []ast.ItemID{mod})
	r := newTestResolver(tree, ap, []ast.ItemID{mod})
	r.Strings = strs

	scope := r.Scopes.ScopeForOwner(ap.SymbolOf(mod))
	qt := r.ResolveExpr(ExprContext{Scope: scope}, call)
	if qt.Kind != types.QualType {
		t.Fatalf("expected a type-valued result, got kind %v", qt.Kind)
	}
	result, ok := r.Types.Lookup(qt.Type)
	if !ok || result.Kind != types.KindClass || result.Management != types.ManageOwned {
		t.Fatalf("expected owned MyClass, got %+v (ok=%v)", result, ok)
	}
}

func TestResolveTupleExprValueValued(t *testing.T) {
	b := ast.NewBuilder(ast.Hints{})

	a := b.Exprs.New(ast.Expr{Kind: ast.ExprLiteral, LiteralKind: ast.LiteralInt, IntVal: 1})
	c := b.Exprs.New(ast.Expr{Kind: ast.ExprLiteral, LiteralKind: ast.LiteralInt, IntVal: 2})
	tup := b.Exprs.NewTuple([]ast.ExprID{a, c}, false, source.Span{})

	tree := b.Build()
	ap := ast.NewProvider(tree, nil)
	r := newTestResolver(tree, ap, nil)

	qt := r.ResolveExpr(ExprContext{}, tup)
	if qt.Kind != types.QualVar {
		t.Fatalf("expected a value-valued tuple, got kind %v", qt.Kind)
	}
	got, ok := r.Types.Lookup(qt.Type)
	if !ok || got.Kind != types.KindTuple {
		t.Fatalf("expected a tuple type, got %+v", got)
	}
}

func TestResolveTupleExprMixedIsError(t *testing.T) {
	b := ast.NewBuilder(ast.Hints{})
	sp := source.Span{}
	strs := source.NewInterner()

	value := b.Exprs.New(ast.Expr{Kind: ast.ExprLiteral, LiteralKind: ast.LiteralInt, IntVal: 1})
	typeIdent := b.Exprs.NewIdent(strs.Intern("int"), sp)
	tup := b.Exprs.NewTuple([]ast.ExprID{value, typeIdent}, false, sp)

	tree := b.Build()
	ap := ast.NewProvider(tree, nil)
	r := newTestResolver(tree, ap, nil)
	r.Strings = strs

	qt := r.ResolveExpr(ExprContext{}, tup)
	if !qt.IsErroneous(r.Types) {
		t.Fatalf("expected an erroneous result for a mixed tuple, got %+v", qt)
	}
	reporter := r.Diags.(*recordingReporter)
	if !reporter.has(diag.ResMixedTupleElements) {
		t.Fatalf("expected ResMixedTupleElements to be reported, got %v", reporter.codes)
	}
}

// TestResolveCallExprFindsDeclaredMethod drives a genuine user-declared
// method (FunctionItem{IsMethod:true}) through resolveCallExpr as an
// unqualified call (`greet()`) that only resolves via the implicit-
// receiver retry, from a call-site scope that shares no lexical
// ancestry with the module declaring both the method and its receiver
// composite. symbols.Build never places a method symbol inside its
// receiver composite's own scope (only into the enclosing module's
// scope), so this can only succeed if lexicalCandidates still walks
// parent scopes for method lookups and gatherCandidates additionally
// searches a scope derived from the receiver's declared type, rather
// than relying on the unrelated call-site scope's own ancestry.
func TestResolveCallExprFindsDeclaredMethod(t *testing.T) {
	b := ast.NewBuilder(ast.Hints{})
	sp := source.Span{}
	strs := source.NewInterner()

	compositeName := strs.Intern("C")
	methodName := strs.Intern("greet")

	composite := b.Items.NewComposite(compositeName, ast.CompositeItem{}, sp)

	receiverType := b.TypeExprs.NewPath(compositeName, sp)
	receiverDefault := b.Exprs.New(ast.Expr{Kind: ast.ExprLiteral, LiteralKind: ast.LiteralInt, IntVal: 0})
	receiverFormal := b.Items.NewFormal(strs.Intern("this"), receiverType, receiverDefault, false, sp)
	method := b.Items.NewFunction(methodName, ast.FunctionItem{IsMethod: true, Formals: []ast.FormalID{receiverFormal}}, sp)

	mod := b.Items.NewModule(strs.Intern("M"), false, sp)
	b.Items.AddMember(mod, composite)
	b.Items.AddMember(mod, method)

	caller := b.Items.NewModule(strs.Intern("Caller"), false, sp)

	callExpr := b.Exprs.NewCall(b.Exprs.NewIdent(methodName, sp), nil, sp)

	tree := b.Build()
	ap := ast.NewProvider(tree, []ast.ItemID{mod, caller})
	r := newTestResolver(tree, ap, []ast.ItemID{mod, caller})
	r.Strings = strs

	callerScope := r.Scopes.ScopeForOwner(r.AST.SymbolOf(caller))
	recordID := r.Types.Intern(types.MakeComposite(types.CompositeRecord, declOf(composite), types.NoArgsID))

	ctx := ExprContext{Scope: callerScope, Receiver: types.NewVar(recordID)}
	qt := r.ResolveExpr(ctx, callExpr)
	if qt.Type == r.Types.Builtins().Erroneous {
		t.Fatalf("expected the declared method to resolve via the implicit receiver, got erroneous result %+v", qt)
	}

	call := CallInfo{Name: methodName, IsMethod: true, HasParens: true, Receiver: types.NewVar(recordID)}
	res := r.ResolveCall(call, callerScope, nil, false)
	if res.Best == nil {
		t.Fatalf("expected the declared method to be found from an unrelated call-site scope, got %+v", res)
	}
	if res.Best.Item != method {
		t.Fatalf("expected the resolved candidate to be the declared method, got item %v", res.Best.Item)
	}
}

func TestResolveIsCoercible(t *testing.T) {
	b := ast.NewBuilder(ast.Hints{})
	sp := source.Span{}
	strs := source.NewInterner()

	intIdent := strs.Intern("int")
	a := b.Exprs.NewCall(b.Exprs.NewIdent(intIdent, sp), nil, sp)
	bArg := b.Exprs.NewCall(b.Exprs.NewIdent(intIdent, sp), nil, sp)
	call := b.Exprs.NewCall(b.Exprs.NewIdent(strs.Intern("isCoercible"), sp), []ast.Arg{{Value: a}, {Value: bArg}}, sp)

	tree := b.Build()
	ap := ast.NewProvider(tree, nil)
	r := newTestResolver(tree, ap, nil)
	r.Strings = strs

	qt := r.ResolveExpr(ExprContext{}, call)
	if qt.Kind != types.QualParam || qt.Param.Kind != types.ParamBool {
		t.Fatalf("expected a param bool, got %+v", qt)
	}
	if !qt.Param.Bool() {
		t.Fatalf("expected isCoercible(int, int) to fold true")
	}
}
