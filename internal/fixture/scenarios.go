package fixture

import (
	"github.com/vela-lang/velac/internal/ast"
	"github.com/vela-lang/velac/internal/source"
	"github.com/vela-lang/velac/internal/types"
)

// strs is shared across every fixture's construction so that a name
// like "greet" or "int" interns to the same source.StringID no matter
// which fixture referenced it first. The driver hands the same
// *source.Interner to every fixture it builds in one run.
var strs = source.NewInterner()

// Strings returns the interner every fixture name is drawn from, so a
// caller (the CLI, diagfmt) can turn a resolved symbol's name back
// into text.
func Strings() *source.Interner { return strs }

func init() {
	register(Spec{
		Name:        "s1-numeric-ctor",
		Description: "spec.md S1: int(32) resolves to the 32-bit signed integer type",
		Build:       buildNumericCtor,
	})
	register(Spec{
		Name:        "s2-overload-exactness",
		Description: "spec.md S2 analog: f(3) selects the int overload; the real one cannot accept an int",
		Build:       buildOverloadOnParam,
	})
	register(Spec{
		Name:        "s3-where-clause",
		Description: "spec.md S3: a where-false candidate is never selected",
		Build:       buildWhereClause,
	})
	register(Spec{
		Name:        "s5-forwarding-cycle",
		Description: "spec.md S5: mutually forwarding records report exactly one cycle",
		Build:       buildForwardingCycle,
	})
}

func sp() source.Span { return source.Span{} }

// buildNumericCtor wraps `int(32)` in a module-level function body so
// the driver's ordinary function-resolution path exercises it (a bare
// top-level expression has no place to live in this AST's module
// shape, which only holds declaration items).
func buildNumericCtor(b *ast.Builder) ast.ItemID {
	intIdent := b.Exprs.NewIdent(strs.Intern("int"), sp())
	width := b.Exprs.New(ast.Expr{Kind: ast.ExprLiteral, LiteralKind: ast.LiteralInt, IntVal: 32})
	call := b.Exprs.NewCall(intIdent, []ast.Arg{{Value: width}}, sp())

	fn := b.Items.NewFunction(strs.Intern("useInt32"), ast.FunctionItem{Body: []ast.ExprID{call}}, sp())

	mod := b.Items.NewModule(strs.Intern("S1"), false, sp())
	b.Items.AddMember(mod, fn)
	return mod
}

// buildOverloadOnParam stands in for spec.md §8's S2 (`param x: int`
// vs `x: int` overloads): ast.Formal carries no param/const/var
// intent at all (that classification is intent resolution, an
// external collaborator per DESIGN.md's InferRefMaybeConstFormals
// note), so the param-vs-value distinction cannot be constructed
// here. What this model *can* exercise is two overloads of f
// differing by formal type — one int, one real — with a call whose
// actual is an int literal. canpass rejects int-to-real outright, so
// the real overload is not applicable and the int one is selected.
func buildOverloadOnParam(b *ast.Builder) ast.ItemID {
	intType := b.TypeExprs.NewPrimitive(types.KindInt, types.Width64, sp())
	realType := b.TypeExprs.NewPrimitive(types.KindReal, types.Width64, sp())

	exactFormal := b.Items.NewFormal(strs.Intern("x"), intType, ast.NoExprID, false, sp())
	coercedFormal := b.Items.NewFormal(strs.Intern("x"), realType, ast.NoExprID, false, sp())

	fExact := b.Items.NewFunction(strs.Intern("f"), ast.FunctionItem{Formals: []ast.FormalID{exactFormal}}, sp())
	fCoerced := b.Items.NewFunction(strs.Intern("f"), ast.FunctionItem{Formals: []ast.FormalID{coercedFormal}}, sp())

	arg := b.Exprs.New(ast.Expr{Kind: ast.ExprLiteral, LiteralKind: ast.LiteralInt, IntVal: 3})
	call := b.Exprs.NewCall(b.Exprs.NewIdent(strs.Intern("f"), sp()), []ast.Arg{{Value: arg}}, sp())
	caller := b.Items.NewFunction(strs.Intern("callF"), ast.FunctionItem{Body: []ast.ExprID{call}}, sp())

	mod := b.Items.NewModule(strs.Intern("S2"), false, sp())
	b.Items.AddMember(mod, fExact)
	b.Items.AddMember(mod, fCoerced)
	b.Items.AddMember(mod, caller)
	return mod
}

// buildWhereClause declares two overloads of g, one gated `where
// false`, and a caller whose body invokes g(1); resolveCall must
// reject the gated overload (WhereFalse) and select the other.
// internal/resolve/signature.go's evalWhereClause only folds literal
// bools (and their negation), so the where-clause body is a literal
// rather than spec.md §8's illustrative `isIntegral(T)` call.
func buildWhereClause(b *ast.Builder) ast.ItemID {
	intType := b.TypeExprs.NewPrimitive(types.KindInt, types.Width64, sp())
	gatedFormal := b.Items.NewFormal(strs.Intern("x"), intType, ast.NoExprID, false, sp())
	openFormal := b.Items.NewFormal(strs.Intern("x"), intType, ast.NoExprID, false, sp())

	falseLit := b.Exprs.New(ast.Expr{Kind: ast.ExprLiteral, LiteralKind: ast.LiteralBool, BoolValue: false})
	trueLit := b.Exprs.New(ast.Expr{Kind: ast.ExprLiteral, LiteralKind: ast.LiteralBool, BoolValue: true})

	gGated := b.Items.NewFunction(strs.Intern("g"), ast.FunctionItem{
		Formals:     []ast.FormalID{gatedFormal},
		WhereClause: falseLit,
	}, sp())
	gOpen := b.Items.NewFunction(strs.Intern("g"), ast.FunctionItem{
		Formals:     []ast.FormalID{openFormal},
		WhereClause: trueLit,
	}, sp())

	arg := b.Exprs.New(ast.Expr{Kind: ast.ExprLiteral, LiteralKind: ast.LiteralInt, IntVal: 1})
	call := b.Exprs.NewCall(b.Exprs.NewIdent(strs.Intern("g"), sp()), []ast.Arg{{Value: arg}}, sp())
	caller := b.Items.NewFunction(strs.Intern("callG"), ast.FunctionItem{Body: []ast.ExprID{call}}, sp())

	mod := b.Items.NewModule(strs.Intern("S3"), false, sp())
	b.Items.AddMember(mod, gGated)
	b.Items.AddMember(mod, gOpen)
	b.Items.AddMember(mod, caller)
	return mod
}

// buildForwardingCycle declares `record A { forwarding b: B; }` and
// `record B { forwarding a: A; }`; forwarding.go's cycle detector must
// report exactly one diag.ResForwardingCycle rather than looping.
func buildForwardingCycle(b *ast.Builder) ast.ItemID {
	pathB := b.TypeExprs.NewPath(strs.Intern("B"), sp())
	pathA := b.TypeExprs.NewPath(strs.Intern("A"), sp())

	fwdToB := b.Items.NewForwarding(pathB, ast.NoExprID, sp())
	fwdToA := b.Items.NewForwarding(pathA, ast.NoExprID, sp())

	recA := b.Items.NewComposite(strs.Intern("A"), ast.CompositeItem{Forwardings: []ast.ForwardingID{fwdToB}}, sp())
	recB := b.Items.NewComposite(strs.Intern("B"), ast.CompositeItem{Forwardings: []ast.ForwardingID{fwdToA}}, sp())

	mod := b.Items.NewModule(strs.Intern("S5"), false, sp())
	b.Items.AddMember(mod, recA)
	b.Items.AddMember(mod, recB)
	return mod
}
