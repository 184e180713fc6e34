package resolve

import (
	"testing"

	"github.com/vela-lang/velac/internal/ast"
	"github.com/vela-lang/velac/internal/source"
	"github.com/vela-lang/velac/internal/types"
)

func TestTypedSignatureInitialConcreteFormal(t *testing.T) {
	b := ast.NewBuilder(ast.Hints{})
	sp := source.Span{}

	intType := b.TypeExprs.NewPrimitive(types.KindInt, types.Width64, sp)
	formal := b.Items.NewFormal(source.StringID(1), intType, ast.NoExprID, false, sp)
	fn := b.Items.NewFunction(source.StringID(2), ast.FunctionItem{Formals: []ast.FormalID{formal}}, sp)
	mod := b.Items.NewModule(source.StringID(3), false, sp)
	b.Items.AddMember(mod, fn)

	tree := b.Build()
	ap := ast.NewProvider(tree, []ast.ItemID{mod})
	r := newTestResolver(tree, ap, []ast.ItemID{mod})

	sig := r.TypedSignatureInitial(fn)
	if sig.NeedsInstantiation {
		t.Fatalf("a single concrete int(64) formal should not need instantiation, got %+v", sig)
	}
	if sig.Where != WhereNone {
		t.Fatalf("expected WhereNone with no where clause, got %v", sig.Where)
	}
}

func TestTypedSignatureInitialUndeclaredFormalNeedsInstantiation(t *testing.T) {
	b := ast.NewBuilder(ast.Hints{})
	sp := source.Span{}

	formal := b.Items.NewFormal(source.StringID(1), ast.NoTypeExprID, ast.NoExprID, false, sp)
	fn := b.Items.NewFunction(source.StringID(2), ast.FunctionItem{Formals: []ast.FormalID{formal}}, sp)
	mod := b.Items.NewModule(source.StringID(3), false, sp)
	b.Items.AddMember(mod, fn)

	tree := b.Build()
	ap := ast.NewProvider(tree, []ast.ItemID{mod})
	r := newTestResolver(tree, ap, []ast.ItemID{mod})

	sig := r.TypedSignatureInitial(fn)
	if !sig.NeedsInstantiation {
		t.Fatalf("an untyped formal should force needsInstantiation")
	}
}

func TestTypedSignatureInitialWhereClauseLiteral(t *testing.T) {
	b := ast.NewBuilder(ast.Hints{})
	sp := source.Span{}

	whereExpr := b.Exprs.New(ast.Expr{Kind: ast.ExprLiteral, LiteralKind: ast.LiteralBool, BoolValue: true, Span: sp})
	fn := b.Items.NewFunction(source.StringID(1), ast.FunctionItem{WhereClause: whereExpr}, sp)
	mod := b.Items.NewModule(source.StringID(2), false, sp)
	b.Items.AddMember(mod, fn)

	tree := b.Build()
	ap := ast.NewProvider(tree, []ast.ItemID{mod})
	r := newTestResolver(tree, ap, []ast.ItemID{mod})

	sig := r.TypedSignatureInitial(fn)
	if sig.Where != WhereTrue {
		t.Fatalf("expected a literal `true` where clause to resolve to WhereTrue, got %v", sig.Where)
	}
}

func TestTypeConstructorInitialIncludesGenericField(t *testing.T) {
	b := ast.NewBuilder(ast.Hints{})
	sp := source.Span{}

	field := b.Items.NewField(source.StringID(1), ast.NoTypeExprID, ast.NoExprID, sp)
	composite := b.Items.NewComposite(source.StringID(2), ast.CompositeItem{Fields: []ast.FieldID{field}}, sp)

	tree := b.Build()
	ap := ast.NewProvider(tree, []ast.ItemID{composite})
	r := newTestResolver(tree, ap, []ast.ItemID{composite})

	sig := r.TypeConstructorInitial(composite)
	if len(sig.Untyped.Formals) != 1 {
		t.Fatalf("expected the untyped, uninitialized field to become a type-constructor formal, got %d", len(sig.Untyped.Formals))
	}
	if !sig.NeedsInstantiation {
		t.Fatalf("a type constructor with a generic formal should need instantiation")
	}
}
