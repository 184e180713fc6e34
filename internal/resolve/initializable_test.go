package resolve

import (
	"testing"

	"github.com/vela-lang/velac/internal/ast"
	"github.com/vela-lang/velac/internal/source"
	"github.com/vela-lang/velac/internal/types"
)

func TestIsTypeDefaultInitializableConcrete(t *testing.T) {
	b := ast.NewBuilder(ast.Hints{})
	tree := b.Build()
	ap := ast.NewProvider(tree, nil)
	r := newTestResolver(tree, ap, nil)

	intID := r.Types.Intern(types.MakeInt(types.Width64))
	if !r.IsTypeDefaultInitializable(intID) {
		t.Fatalf("expected a concrete primitive to be default-initializable")
	}
}

func TestIsTypeDefaultInitializableGenericBound(t *testing.T) {
	b := ast.NewBuilder(ast.Hints{})
	tree := b.Build()
	ap := ast.NewProvider(tree, nil)
	r := newTestResolver(tree, ap, nil)

	anyIntID := r.Types.Intern(types.Type{Kind: types.KindAnyInt})
	if r.IsTypeDefaultInitializable(anyIntID) {
		t.Fatalf("expected a generic bound to not be default-initializable")
	}
}

func TestIsTypeDefaultInitializableConcreteComposite(t *testing.T) {
	b := ast.NewBuilder(ast.Hints{})
	sp := source.Span{}

	intType := b.TypeExprs.NewPrimitive(types.KindInt, types.Width64, sp)
	field := b.Items.NewField(source.StringID(1), intType, ast.NoExprID, sp)
	composite := b.Items.NewComposite(source.StringID(2), ast.CompositeItem{Fields: []ast.FieldID{field}}, sp)

	tree := b.Build()
	ap := ast.NewProvider(tree, []ast.ItemID{composite})
	r := newTestResolver(tree, ap, []ast.ItemID{composite})

	recordID := r.Types.Intern(types.MakeComposite(types.CompositeRecord, declOf(composite), types.NoArgsID))
	if !r.IsTypeDefaultInitializable(recordID) {
		t.Fatalf("expected a record with a fully-typed field to be default-initializable")
	}
}
