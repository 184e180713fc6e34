package canpass

import (
	"testing"

	"github.com/vela-lang/velac/internal/types"
)

func TestExactMatchIsFree(t *testing.T) {
	in := types.NewInterner()
	intVar := types.NewVar(in.Builtins().Int)
	res := CanPass(in, intVar, intVar)
	if !res.OK || res.Cost != CostExact {
		t.Fatalf("expected free exact match, got %+v", res)
	}
}

func TestWideningIsAllowedButNotFree(t *testing.T) {
	in := types.NewInterner()
	i32 := in.Intern(types.MakeInt(types.Width32))
	i64 := in.Intern(types.MakeInt(types.Width64))
	res := CanPass(in, types.NewVar(i32), types.NewVar(i64))
	if !res.OK || res.Cost <= CostExact {
		t.Fatalf("expected a nonzero-cost widening conversion, got %+v", res)
	}
}

func TestNarrowingIsRejected(t *testing.T) {
	in := types.NewInterner()
	i64 := in.Intern(types.MakeInt(types.Width64))
	i32 := in.Intern(types.MakeInt(types.Width32))
	res := CanPass(in, types.NewVar(i64), types.NewVar(i32))
	if res.OK {
		t.Fatalf("expected narrowing without an explicit cast to be rejected")
	}
}

func TestAnyIntBoundAcceptsConcreteInt(t *testing.T) {
	in := types.NewInterner()
	i32 := in.Intern(types.MakeInt(types.Width32))
	anyInt := in.Intern(types.MakeAnyInt())
	res := CanPass(in, types.NewVar(i32), types.NewVar(anyInt))
	if !res.OK {
		t.Fatalf("expected int(32) to satisfy an any-int bound")
	}
}

func TestNilableCannotPassToNonNilFormal(t *testing.T) {
	in := types.NewInterner()
	decl := types.DeclID(1)
	nilableClass := in.Intern(types.MakeClass(decl, types.NoArgsID, types.ManageOwned, types.NilNilable))
	nonNilClass := in.Intern(types.MakeClass(decl, types.NoArgsID, types.ManageOwned, types.NilNonNil))
	res := CanPass(in, types.NewVar(nilableClass), types.NewVar(nonNilClass))
	if res.OK {
		t.Fatalf("expected passing a nilable actual to a non-nil formal to be rejected")
	}
}

func TestRefFormalRequiresExactType(t *testing.T) {
	in := types.NewInterner()
	i32 := in.Intern(types.MakeInt(types.Width32))
	i64 := in.Intern(types.MakeInt(types.Width64))
	actual := types.QualifiedType{Kind: types.QualRef, Type: i32}
	formal := types.QualifiedType{Kind: types.QualRef, Type: i64}
	res := CanPass(in, actual, formal)
	if res.OK {
		t.Fatalf("expected ref formal to reject a differently-typed actual even though widening would otherwise apply")
	}
}
