package mostspecific

import (
	"testing"

	"github.com/vela-lang/velac/internal/types"
)

func TestExactMatchBeatsWidening(t *testing.T) {
	in := types.NewInterner()
	i32 := in.Intern(types.MakeInt(types.Width32))
	i64 := in.Intern(types.MakeInt(types.Width64))

	exact := Candidate{Handle: "exact", Formals: []types.QualifiedType{types.NewVar(i32)}}
	widening := Candidate{Handle: "widening", Formals: []types.QualifiedType{types.NewVar(i64)}}

	res := FindMostSpecificCandidates(in, []Candidate{exact, widening}, []types.QualifiedType{types.NewVar(i32)})
	if res.Best == nil {
		t.Fatalf("expected a unique best candidate")
	}
	if res.Best.Handle != "exact" {
		t.Fatalf("expected the exact-match candidate to win, got %v", res.Best.Handle)
	}
}

func TestTiedCostsAreAmbiguous(t *testing.T) {
	in := types.NewInterner()
	i32 := in.Intern(types.MakeInt(types.Width32))

	a := Candidate{Handle: "a", Formals: []types.QualifiedType{types.NewVar(i32)}}
	b := Candidate{Handle: "b", Formals: []types.QualifiedType{types.NewVar(i32)}}

	res := FindMostSpecificCandidates(in, []Candidate{a, b}, []types.QualifiedType{types.NewVar(i32)})
	if res.Best != nil {
		t.Fatalf("expected no unique best candidate")
	}
	if len(res.Ambiguous) != 2 {
		t.Fatalf("expected both tied candidates reported, got %d", len(res.Ambiguous))
	}
}

func TestExactArityBeatsVariadic(t *testing.T) {
	in := types.NewInterner()
	i32 := in.Intern(types.MakeInt(types.Width32))

	exact := Candidate{Handle: "exact", Formals: []types.QualifiedType{types.NewVar(i32)}}
	variadic := Candidate{Handle: "variadic", Formals: []types.QualifiedType{types.NewVar(i32)}, Variadic: true}

	res := FindMostSpecificCandidates(in, []Candidate{variadic, exact}, []types.QualifiedType{types.NewVar(i32)})
	if res.Best == nil || res.Best.Handle != "exact" {
		t.Fatalf("expected the exact-arity candidate to beat the variadic one")
	}
}

func TestArgumentCountMismatchExcludesCandidate(t *testing.T) {
	in := types.NewInterner()
	i32 := in.Intern(types.MakeInt(types.Width32))

	oneArg := Candidate{Handle: "one", Formals: []types.QualifiedType{types.NewVar(i32)}}
	res := FindMostSpecificCandidates(in, []Candidate{oneArg}, []types.QualifiedType{types.NewVar(i32), types.NewVar(i32)})
	if res.Best != nil {
		t.Fatalf("expected arity mismatch to exclude the only candidate")
	}
}
