package resolve

import (
	"testing"

	"github.com/vela-lang/velac/internal/ast"
	"github.com/vela-lang/velac/internal/source"
	"github.com/vela-lang/velac/internal/types"
)

func TestResolveGeneratedCallTupleAccessor(t *testing.T) {
	b := ast.NewBuilder(ast.Hints{})
	tree := b.Build()
	ap := ast.NewProvider(tree, nil)
	r := newTestResolver(tree, ap, nil)
	strs := source.NewInterner()
	r.Strings = strs

	intT := r.Types.Builtins().Int
	realT := r.Types.Builtins().Real
	elems := r.Types.InternArgs([]types.TypeID{intT, realT})
	tupleType := r.Types.InternTuple(types.TupleInfo{Elems: elems})

	call := CallInfo{
		Name:     strs.Intern("1"),
		IsMethod: true,
		Receiver: types.NewVar(tupleType),
	}

	res := r.ResolveGeneratedCall(call)
	if res.Best == nil {
		t.Fatalf("expected the tuple accessor to resolve, got %+v", res)
	}
	got, ok := r.Types.Lookup(res.Best.Signature.ResultType.Type)
	if !ok || got.Kind != types.KindReal {
		t.Fatalf("expected t.1 to resolve to real, got %+v", got)
	}
}

func TestResolveGeneratedCallInMethodFillsReceiver(t *testing.T) {
	b := ast.NewBuilder(ast.Hints{})
	tree := b.Build()
	ap := ast.NewProvider(tree, nil)
	r := newTestResolver(tree, ap, nil)
	strs := source.NewInterner()
	r.Strings = strs

	intT := r.Types.Builtins().Int
	elems := r.Types.InternArgs([]types.TypeID{intT})
	tupleType := r.Types.InternTuple(types.TupleInfo{Elems: elems})

	call := CallInfo{Name: strs.Intern("0")}
	res := r.ResolveGeneratedCallInMethod(call, types.NewVar(tupleType))
	if res.Best == nil {
		t.Fatalf("expected the receiver-supplied call to resolve, got %+v", res)
	}
}

func TestFieldNameAndGenericityHelpers(t *testing.T) {
	b := ast.NewBuilder(ast.Hints{})
	sp := source.Span{}
	strs := source.NewInterner()

	fieldName := strs.Intern("x")
	intType := b.TypeExprs.NewPrimitive(types.KindInt, types.Width64, sp)
	field := b.Items.NewField(fieldName, intType, ast.NoExprID, sp)
	composite := b.Items.NewComposite(strs.Intern("C"), ast.CompositeItem{Fields: []ast.FieldID{field}}, sp)

	tree := b.Build()
	ap := ast.NewProvider(tree, []ast.ItemID{composite})
	r := newTestResolver(tree, ap, []ast.ItemID{composite})
	r.Strings = strs

	recordID := r.Types.Intern(types.MakeComposite(types.CompositeRecord, declOf(composite), types.NoArgsID))

	if !r.IsNameOfField(fieldName, recordID) {
		t.Fatalf("expected x to be a field of C")
	}
	if r.IsNameOfField(strs.Intern("y"), recordID) {
		t.Fatalf("expected y to not be a field of C")
	}

	qt := types.NewVar(recordID)
	if g := r.GetTypeGenericity(qt); g != types.Concrete {
		t.Fatalf("expected C to be concrete, got %v", g)
	}

	if r.TypeWithDefaults(qt) != qt {
		t.Fatalf("expected TypeWithDefaults to leave an already-concrete type unchanged")
	}
}
