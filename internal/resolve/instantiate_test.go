package resolve

import (
	"testing"

	"github.com/vela-lang/velac/internal/ast"
	"github.com/vela-lang/velac/internal/source"
	"github.com/vela-lang/velac/internal/types"
)

func buildOneFormalFn(t *testing.T, def func(b *ast.Builder) ast.FormalID) (*Resolver, *TypedFnSignature) {
	t.Helper()
	b := ast.NewBuilder(ast.Hints{})
	sp := source.Span{}

	formal := def(b)
	fn := b.Items.NewFunction(source.StringID(10), ast.FunctionItem{Formals: []ast.FormalID{formal}}, sp)
	mod := b.Items.NewModule(source.StringID(11), false, sp)
	b.Items.AddMember(mod, fn)

	tree := b.Build()
	ap := ast.NewProvider(tree, []ast.ItemID{mod})
	r := newTestResolver(tree, ap, []ast.ItemID{mod})
	return r, r.TypedSignatureInitial(fn)
}

func TestInstantiateSignatureConcreteMatch(t *testing.T) {
	r, sig := buildOneFormalFn(t, func(b *ast.Builder) ast.FormalID {
		intType := b.TypeExprs.NewPrimitive(types.KindInt, types.Width64, source.Span{})
		return b.Items.NewFormal(source.StringID(1), intType, ast.NoExprID, false, source.Span{})
	})

	actual := types.NewVar(sig.FormalTypes[0].Type)
	got, res := r.InstantiateSignature(sig, []ActualArg{{Kind: ActualValue, Type: actual}})
	if !res.OK {
		t.Fatalf("expected an applicable match, got failure at formal %d: %s", res.FailingFormal, res.Reason)
	}
	if got.NeedsInstantiation {
		t.Fatalf("a concrete int(64) argument against a concrete int(64) formal should not need instantiation")
	}
	if !got.Substituted[0] {
		t.Fatalf("expected formal 0 to be marked substituted")
	}
}

func TestInstantiateSignatureRejectsBadArgument(t *testing.T) {
	r, sig := buildOneFormalFn(t, func(b *ast.Builder) ast.FormalID {
		intType := b.TypeExprs.NewPrimitive(types.KindInt, types.Width64, source.Span{})
		return b.Items.NewFormal(source.StringID(1), intType, ast.NoExprID, false, source.Span{})
	})

	actual := types.NewVar(r.Types.Builtins().Bool)
	_, res := r.InstantiateSignature(sig, []ActualArg{{Kind: ActualValue, Type: actual}})
	if res.OK {
		t.Fatalf("expected a bool argument against an int(64) formal to be rejected")
	}
	if res.FailingFormal != 0 {
		t.Fatalf("expected the failure to name formal 0, got %d", res.FailingFormal)
	}
}

func TestInstantiateSignatureMissingRequiredArgument(t *testing.T) {
	r, sig := buildOneFormalFn(t, func(b *ast.Builder) ast.FormalID {
		intType := b.TypeExprs.NewPrimitive(types.KindInt, types.Width64, source.Span{})
		return b.Items.NewFormal(source.StringID(1), intType, ast.NoExprID, false, source.Span{})
	})

	_, res := r.InstantiateSignature(sig, nil)
	if res.OK {
		t.Fatalf("expected a missing required argument to fail applicability")
	}
}

func TestInstantiateSignatureUsesDefaultWhenOmitted(t *testing.T) {
	r, sig := buildOneFormalFn(t, func(b *ast.Builder) ast.FormalID {
		intType := b.TypeExprs.NewPrimitive(types.KindInt, types.Width64, source.Span{})
		def := b.Exprs.New(ast.Expr{Kind: ast.ExprLiteral, LiteralKind: ast.LiteralInt, Span: source.Span{}})
		return b.Items.NewFormal(source.StringID(1), intType, def, false, source.Span{})
	})

	got, res := r.InstantiateSignature(sig, nil)
	if !res.OK {
		t.Fatalf("a defaulted formal with no actual should be applicable, got failure: %s", res.Reason)
	}
	if got.NeedsInstantiation {
		t.Fatalf("a concrete defaulted formal should not need instantiation")
	}
}

func TestInstantiateSignatureVarargAccumulatesTuple(t *testing.T) {
	r, sig := buildOneFormalFn(t, func(b *ast.Builder) ast.FormalID {
		intType := b.TypeExprs.NewPrimitive(types.KindInt, types.Width64, source.Span{})
		return b.Items.NewFormal(source.StringID(1), intType, ast.NoExprID, true, source.Span{})
	})

	elemType := sig.FormalTypes[0].Type
	actuals := []ActualArg{
		{Kind: ActualValue, Type: types.NewVar(elemType)},
		{Kind: ActualValue, Type: types.NewVar(elemType)},
	}
	got, res := r.InstantiateSignature(sig, actuals)
	if !res.OK {
		t.Fatalf("expected two matching vararg actuals to be applicable, got failure: %s", res.Reason)
	}
	resultTy, ok := r.Types.Lookup(got.FormalTypes[0].Type)
	if !ok || resultTy.Kind != types.KindTuple {
		t.Fatalf("expected the vararg formal's instantiated type to be a tuple, got %+v", resultTy)
	}
	tupleInfo, ok := r.Types.LookupTuple(resultTy.Tuple)
	if !ok || len(r.Types.LookupArgs(tupleInfo.Elems)) != 2 {
		t.Fatalf("expected a two-element tuple, got %+v", tupleInfo)
	}
}

func TestInstantiateSignatureTooManyArguments(t *testing.T) {
	r, sig := buildOneFormalFn(t, func(b *ast.Builder) ast.FormalID {
		intType := b.TypeExprs.NewPrimitive(types.KindInt, types.Width64, source.Span{})
		return b.Items.NewFormal(source.StringID(1), intType, ast.NoExprID, false, source.Span{})
	})

	elemType := sig.FormalTypes[0].Type
	actuals := []ActualArg{
		{Kind: ActualValue, Type: types.NewVar(elemType)},
		{Kind: ActualValue, Type: types.NewVar(elemType)},
	}
	_, res := r.InstantiateSignature(sig, actuals)
	if res.OK {
		t.Fatalf("expected a second, unmatched argument to be rejected as arity mismatch")
	}
}
