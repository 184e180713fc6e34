package resolve

import (
	"testing"

	"github.com/vela-lang/velac/internal/ast"
	"github.com/vela-lang/velac/internal/source"
	"github.com/vela-lang/velac/internal/symbols"
	"github.com/vela-lang/velac/internal/types"
)

func buildFreeFunction(b *ast.Builder, name source.StringID, formalTypeKind types.Kind, width types.Width) ast.ItemID {
	typeExpr := b.TypeExprs.NewPrimitive(formalTypeKind, width, source.Span{})
	formal := b.Items.NewFormal(source.StringID(100), typeExpr, ast.NoExprID, false, source.Span{})
	return b.Items.NewFunction(name, ast.FunctionItem{Formals: []ast.FormalID{formal}}, source.Span{})
}

func TestResolveCallSingleLexicalCandidate(t *testing.T) {
	b := ast.NewBuilder(ast.Hints{})
	fnName := source.StringID(1)

	fn := buildFreeFunction(b, fnName, types.KindInt, types.Width64)
	mod := b.Items.NewModule(source.StringID(2), false, source.Span{})
	b.Items.AddMember(mod, fn)

	tree := b.Build()
	ap := ast.NewProvider(tree, []ast.ItemID{mod})
	r := newTestResolver(tree, ap, []ast.ItemID{mod})

	modScope := r.Scopes.ScopeForOwner(r.AST.SymbolOf(mod))
	sig := r.TypedSignatureInitial(fn)
	argType := types.NewVar(sig.FormalTypes[0].Type)

	call := CallInfo{
		Name:      fnName,
		Args:      []ActualArg{{Kind: ActualValue, Type: argType}},
		HasParens: true,
	}

	res := r.ResolveCall(call, modScope, nil, true)
	if res.Best == nil {
		t.Fatalf("expected a single applicable candidate, got %+v", res)
	}
	if res.Best.Item != fn {
		t.Fatalf("expected the resolved candidate to be the declared function, got item %v", res.Best.Item)
	}
	if len(res.Ambiguous) != 0 {
		t.Fatalf("expected no ambiguity, got %+v", res.Ambiguous)
	}
}

func TestResolveCallRejectsBadArgumentType(t *testing.T) {
	b := ast.NewBuilder(ast.Hints{})
	fnName := source.StringID(1)

	fn := buildFreeFunction(b, fnName, types.KindInt, types.Width64)
	mod := b.Items.NewModule(source.StringID(2), false, source.Span{})
	b.Items.AddMember(mod, fn)

	tree := b.Build()
	ap := ast.NewProvider(tree, []ast.ItemID{mod})
	r := newTestResolver(tree, ap, []ast.ItemID{mod})

	modScope := r.Scopes.ScopeForOwner(r.AST.SymbolOf(mod))
	argType := types.NewVar(r.Types.Builtins().Bool)

	call := CallInfo{
		Name:      fnName,
		Args:      []ActualArg{{Kind: ActualValue, Type: argType}},
		HasParens: true,
	}

	res := r.ResolveCall(call, modScope, nil, true)
	if res.Best != nil {
		t.Fatalf("expected a bool argument against an int(64) formal to be rejected, got %+v", res.Best)
	}
	if len(res.Rejections) != 1 {
		t.Fatalf("expected exactly one collected rejection, got %+v", res.Rejections)
	}
}

func TestResolveCallNoParensMismatchYieldsNoCandidate(t *testing.T) {
	b := ast.NewBuilder(ast.Hints{})
	fnName := source.StringID(1)

	fn := buildFreeFunction(b, fnName, types.KindInt, types.Width64)
	mod := b.Items.NewModule(source.StringID(2), false, source.Span{})
	b.Items.AddMember(mod, fn)

	tree := b.Build()
	ap := ast.NewProvider(tree, []ast.ItemID{mod})
	r := newTestResolver(tree, ap, []ast.ItemID{mod})

	modScope := r.Scopes.ScopeForOwner(r.AST.SymbolOf(mod))
	argType := types.NewVar(r.Types.Builtins().Int)

	call := CallInfo{
		Name:      fnName,
		Args:      []ActualArg{{Kind: ActualValue, Type: argType}},
		HasParens: false,
	}

	res := r.ResolveCall(call, modScope, nil, false)
	if res.Best != nil || len(res.Ambiguous) != 0 {
		t.Fatalf("a call with no parens against a non-parenless function should find no candidate, got %+v", res)
	}
}

func TestResolveCallAmbiguousTie(t *testing.T) {
	b := ast.NewBuilder(ast.Hints{})
	fnName := source.StringID(1)

	fnA := buildFreeFunction(b, fnName, types.KindInt, types.Width64)
	fnB := buildFreeFunction(b, fnName, types.KindInt, types.Width64)
	mod := b.Items.NewModule(source.StringID(2), false, source.Span{})
	b.Items.AddMember(mod, fnA)
	b.Items.AddMember(mod, fnB)

	tree := b.Build()
	ap := ast.NewProvider(tree, []ast.ItemID{mod})
	r := newTestResolver(tree, ap, []ast.ItemID{mod})

	modScope := r.Scopes.ScopeForOwner(r.AST.SymbolOf(mod))
	argType := types.NewVar(r.Types.Builtins().Int)

	call := CallInfo{
		Name:      fnName,
		Args:      []ActualArg{{Kind: ActualValue, Type: argType}},
		HasParens: true,
	}

	res := r.ResolveCall(call, modScope, nil, false)
	if res.Best != nil {
		t.Fatalf("expected two identical overloads to be ambiguous, got a unique best %+v", res.Best)
	}
	if len(res.Ambiguous) != 2 {
		t.Fatalf("expected both identical overloads reported ambiguous, got %+v", res.Ambiguous)
	}
}

func TestGatherCandidatesFallsThroughToPOIScope(t *testing.T) {
	b := ast.NewBuilder(ast.Hints{})
	fnName := source.StringID(1)

	fn := buildFreeFunction(b, fnName, types.KindInt, types.Width64)
	callerMod := b.Items.NewModule(source.StringID(2), false, source.Span{})
	poiMod := b.Items.NewModule(source.StringID(3), false, source.Span{})
	b.Items.AddMember(poiMod, fn)

	tree := b.Build()
	ap := ast.NewProvider(tree, []ast.ItemID{callerMod, poiMod})
	r := newTestResolver(tree, ap, []ast.ItemID{callerMod, poiMod})

	callerScope := r.Scopes.ScopeForOwner(r.AST.SymbolOf(callerMod))
	poiScope := r.Scopes.ScopeForOwner(r.AST.SymbolOf(poiMod))
	argType := types.NewVar(r.Types.Builtins().Int)

	call := CallInfo{
		Name:      fnName,
		Args:      []ActualArg{{Kind: ActualValue, Type: argType}},
		HasParens: true,
	}

	res := r.ResolveCall(call, callerScope, []symbols.ScopeID{poiScope}, false)
	if res.Best == nil {
		t.Fatalf("expected the point-of-instantiation scope to supply the candidate, got %+v", res)
	}
	if res.Best.Item != fn {
		t.Fatalf("expected the resolved candidate to be the POI-scope function, got item %v", res.Best.Item)
	}
}
