package types

import "testing"

func TestInternerBuiltins(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	if b.Bool == NoTypeID || b.Int == NoTypeID {
		t.Fatalf("builtins not initialized")
	}
	boolT, ok := in.Lookup(b.Bool)
	if !ok || boolT.Kind != KindBool {
		t.Fatalf("expected bool kind, got %v", boolT.Kind)
	}
}

func TestInternerDeduplicatesDescriptors(t *testing.T) {
	in := NewInterner()
	a1 := in.Intern(MakeInt(Width32))
	a2 := in.Intern(MakeInt(Width32))
	if a1 != a2 {
		t.Fatalf("int(32) should be deduplicated")
	}
	if a1 == in.Builtins().Int {
		t.Fatalf("generic-width int must differ from int(32)")
	}
}

func TestArrayIdentityDependsOnElemAndDomain(t *testing.T) {
	in := NewInterner()
	intT := in.Builtins().Int
	realT := in.Builtins().Real
	domain := in.Intern(MakeDomain(intT, 1))
	a1 := in.Intern(MakeArray(domain, intT))
	a2 := in.Intern(MakeArray(domain, intT))
	a3 := in.Intern(MakeArray(domain, realT))
	if a1 != a2 {
		t.Fatalf("identical arrays should be deduplicated")
	}
	if a1 == a3 {
		t.Fatalf("arrays with different element types must differ")
	}
}

func TestNominalTypeIdentityUsesDeclAndArgs(t *testing.T) {
	in := NewInterner()
	intT := in.Builtins().Int
	realT := in.Builtins().Real
	argsInt := in.InternArgs([]TypeID{intT})
	argsReal := in.InternArgs([]TypeID{realT})

	listA := in.Intern(MakeComposite(CompositeRecord, DeclID(1), argsInt))
	listA2 := in.Intern(MakeComposite(CompositeRecord, DeclID(1), argsInt))
	listB := in.Intern(MakeComposite(CompositeRecord, DeclID(1), argsReal))
	otherDecl := in.Intern(MakeComposite(CompositeRecord, DeclID(2), argsInt))

	if listA != listA2 {
		t.Fatalf("same decl+args must intern to the same TypeID")
	}
	if listA == listB {
		t.Fatalf("different generic args must produce different TypeIDs")
	}
	if listA == otherDecl {
		t.Fatalf("different declarations must never share a TypeID")
	}
}

func TestClassDecoratorAffectsIdentity(t *testing.T) {
	in := NewInterner()
	decl := DeclID(7)
	borrowed := in.Intern(MakeClass(decl, NoArgsID, ManageBorrowed, NilNonNil))
	owned := in.Intern(MakeClass(decl, NoArgsID, ManageOwned, NilNonNil))
	nilable := in.Intern(MakeClass(decl, NoArgsID, ManageBorrowed, NilNilable))
	if borrowed == owned {
		t.Fatalf("management must affect identity")
	}
	if borrowed == nilable {
		t.Fatalf("nilability must affect identity")
	}
}

func TestTupleInterning(t *testing.T) {
	in := NewInterner()
	intT := in.Builtins().Int
	realT := in.Builtins().Real
	elems := in.InternArgs([]TypeID{intT, realT})
	t1 := in.InternTuple(TupleInfo{Elems: elems, Referential: true})
	t2 := in.InternTuple(TupleInfo{Elems: elems, Referential: true})
	t3 := in.InternTuple(TupleInfo{Elems: elems, Referential: false})
	if t1 != t2 {
		t.Fatalf("identical tuples should be deduplicated")
	}
	if t1 == t3 {
		t.Fatalf("referential flag must affect identity")
	}
}

func TestCombineDecoratorsPrefersConcreteManagementAndNilability(t *testing.T) {
	mgmt, nilab := CombineDecorators(ManageUnspecified, ManageShared, NilNonNil, NilUnspecified)
	if mgmt != ManageShared {
		t.Fatalf("expected actual's concrete management to win, got %v", mgmt)
	}
	if nilab != NilNonNil {
		t.Fatalf("expected formal's concrete nilability to win, got %v", nilab)
	}
}
