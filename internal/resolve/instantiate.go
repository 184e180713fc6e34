package resolve

import (
	"github.com/vela-lang/velac/internal/ast"
	"github.com/vela-lang/velac/internal/canpass"
	"github.com/vela-lang/velac/internal/source"
	"github.com/vela-lang/velac/internal/types"
)

// SubstitutionsMap is a finite mapping from a formal's position in
// TypedFnSignature.FormalTypes to the QualifiedType it was bound to
// during instantiation. An empty map means "identity" (spec.md §3).
//
// spec.md keys substitutions by "formal-decl ID"; this resolver keys
// them by formal index instead, since a composite's type-constructor
// formals (built by TypeConstructorInitial) have no ast.FormalID to
// key on at all (they come from ast.FieldID) — the index is stable
// for both signature flavors and is exactly the same slot FormalTypes
// and Untyped.Formals already use.
type SubstitutionsMap map[int]types.QualifiedType

// ApplicabilityResult reports whether a candidate is applicable to a
// call: on failure it carries the reason and the index of the formal
// that rejected the actual (spec.md §4.F/§4.G), so a caller collecting
// diagnostics across many rejected candidates can point at the right
// argument.
type ApplicabilityResult struct {
	OK            bool
	FailingFormal int
	Reason        string
}

func applicabilityOK() ApplicabilityResult {
	return ApplicabilityResult{OK: true, FailingFormal: -1}
}

func applicabilityFailure(formalIdx int, reason string) ApplicabilityResult {
	return ApplicabilityResult{OK: false, FailingFormal: formalIdx, Reason: reason}
}

// ActualKind classifies one call-site argument as seen by the
// instantiation engine.
type ActualKind uint8

const (
	// ActualValue is an ordinary argument with a resolved type.
	ActualValue ActualKind = iota
	// ActualOmitted marks a formal position the call supplied no
	// argument for at all — the "use default" sentinel of spec.md
	// §4.F step 2 when the formal has a default.
	ActualOmitted
	// ActualQuestion marks an explicit `?` argument: the caller asks
	// to leave this formal's generic parameter unbound rather than
	// fall back to its default (spec.md §4.F step 2: "the call has no
	// `?` argument" is the condition that permits the default
	// substitution).
	ActualQuestion
)

// ActualArg is one call-site argument, positional or named.
type ActualArg struct {
	Name source.StringID // source.NoStringID for a positional actual
	Kind ActualKind
	Type types.QualifiedType
}

// formalMatch is one FormalActualMap entry: which actual (if any) an
// ordinary formal binds to, or the list of actual indices a vararg
// formal collects.
type formalMatch struct {
	kind        ActualKind
	actualIndex int // valid when kind == ActualValue and !vararg
	vararg      []int
}

// buildFormalActualMap implements spec.md §4.F's "positional + named
// matching, honoring default-valued formals and vararg formals":
// named actuals bind by name first, then remaining positional actuals
// fill remaining formals in declaration order, with a trailing vararg
// formal absorbing everything left over.
func buildFormalActualMap(formals []FormalDetail, actuals []ActualArg) ([]formalMatch, ApplicabilityResult) {
	matches := make([]formalMatch, len(formals))
	boundByName := make([]bool, len(formals))
	used := make([]bool, len(actuals))

	nameToFormal := make(map[source.StringID]int, len(formals))
	for i, f := range formals {
		if f.Name != source.NoStringID {
			nameToFormal[f.Name] = i
		}
	}

	for ai, a := range actuals {
		if a.Name == source.NoStringID {
			continue
		}
		fi, ok := nameToFormal[a.Name]
		if !ok {
			return nil, applicabilityFailure(-1, "no formal with this name")
		}
		if formals[fi].IsVarArgs {
			return nil, applicabilityFailure(fi, "vararg formal cannot be bound by name")
		}
		matches[fi] = formalMatch{kind: a.Kind, actualIndex: ai}
		used[ai] = true
		boundByName[fi] = true
	}

	nextPositional := 0
	advance := func() {
		for nextPositional < len(actuals) && (used[nextPositional] || actuals[nextPositional].Name != source.NoStringID) {
			nextPositional++
		}
	}

	for i, f := range formals {
		if boundByName[i] {
			continue
		}
		if f.IsVarArgs {
			var tail []int
			for ai := range actuals {
				if used[ai] || actuals[ai].Name != source.NoStringID {
					continue
				}
				used[ai] = true
				tail = append(tail, ai)
			}
			matches[i] = formalMatch{kind: ActualValue, vararg: tail}
			continue
		}

		advance()
		if nextPositional < len(actuals) {
			matches[i] = formalMatch{kind: actuals[nextPositional].Kind, actualIndex: nextPositional}
			used[nextPositional] = true
			nextPositional++
			continue
		}

		matches[i] = formalMatch{kind: ActualOmitted}
	}

	for ai := range actuals {
		if !used[ai] {
			return nil, applicabilityFailure(-1, "too many arguments")
		}
	}

	for i, f := range formals {
		if matches[i].kind == ActualOmitted && !f.HasDefault && !f.IsVarArgs {
			return nil, applicabilityFailure(i, "missing required argument")
		}
	}

	return matches, applicabilityOK()
}

// InstantiateSignature answers spec.md §4.F's instantiateSignature:
// given a signature with no actuals bound and the call's actual
// arguments, produce a new, more-concrete TypedFnSignature or a
// typed applicability failure.
//
// The two-pass "type query" re-visit spec.md §4.F describes (binding
// `type t = ?t; x : t` style constraints across multiple arguments by
// re-running canPass against query-annotated types with substitution
// lookup disabled for the formal under inspection) is not performed:
// it needs postorder type-query bindings, and call.go's call
// resolution keeps none. The single forward pass below
// still implements every other step: positional/named/vararg
// matching, forward-flowing substitution, decorated-class
// instantiation-type combination, and where-clause re-evaluation.
func (r *Resolver) InstantiateSignature(sig *TypedFnSignature, actuals []ActualArg) (*TypedFnSignature, ApplicabilityResult) {
	matches, res := buildFormalActualMap(sig.Untyped.Formals, actuals)
	if !res.OK {
		return nil, res
	}

	formalTypes := append([]types.QualifiedType(nil), sig.FormalTypes...)
	substituted := make([]bool, len(formalTypes))
	subs := make(SubstitutionsMap, len(formalTypes))
	needsInstantiation := false

	for i, fd := range sig.Untyped.Formals {
		m := matches[i]
		formalQT := r.reresolveFormalType(sig, i, subs)

		if fd.IsVarArgs {
			elems := make([]types.TypeID, 0, len(m.vararg))
			varargGeneric := false
			for _, ai := range m.vararg {
				a := actuals[ai]
				if a.Kind == ActualQuestion {
					continue
				}
				cpRes := canpass.CanPass(r.Types, a.Type, formalQT)
				if !cpRes.OK {
					return nil, applicabilityFailure(i, "argument cannot be passed to vararg formal")
				}
				instQT := r.computeInstantiationType(a.Type, formalQT)
				elems = append(elems, instQT.Type)
				if r.Genericity(instQT.Type, nil) != types.Concrete {
					varargGeneric = true
				}
			}
			tupleType := r.Types.InternTuple(types.TupleInfo{Elems: r.Types.InternArgs(elems), Star: true})
			varQT := types.NewVar(tupleType)
			formalTypes[i] = varQT
			substituted[i] = true
			subs[i] = varQT
			if varargGeneric || len(m.vararg) == 0 {
				needsInstantiation = true
			}
			continue
		}

		switch m.kind {
		case ActualOmitted, ActualQuestion:
			formalTypes[i] = formalQT
			subs[i] = formalQT
			if formalQT.IsUnknown() || r.Genericity(formalQT.Type, nil) != types.Concrete {
				needsInstantiation = true
			}
		default:
			actual := actuals[m.actualIndex].Type
			cpRes := canpass.CanPass(r.Types, actual, formalQT)
			if !cpRes.OK {
				return nil, applicabilityFailure(i, "argument cannot be passed to formal")
			}
			instQT := r.computeInstantiationType(actual, formalQT)
			resolved := types.QualifiedType{Kind: formalQT.Kind, Type: instQT.Type, Param: formalQT.Param}
			if !canpass.CanPass(r.Types, actual, resolved).OK {
				return nil, applicabilityFailure(i, "instantiated type no longer accepts the argument")
			}
			formalTypes[i] = resolved
			substituted[i] = true
			subs[i] = resolved
			if r.Genericity(resolved.Type, nil) != types.Concrete {
				needsInstantiation = true
			}
		}
	}

	where := sig.Where
	if sig.Untyped.WhereClause != ast.NoExprID {
		where = r.evalWhereClause(sig.Untyped.WhereClause)
		if where == WhereFalse {
			return nil, applicabilityFailure(-1, "where clause is false")
		}
		if needsInstantiation && where == WhereTrue {
			where = WhereTBD
		}
	}

	return &TypedFnSignature{
		Untyped:            sig.Untyped,
		FormalTypes:        formalTypes,
		Where:              where,
		NeedsInstantiation: needsInstantiation,
		InstantiatedFrom:   sig,
		ParentFn:           sig.ParentFn,
		Substituted:        substituted,
		// A type constructor's ResultType names the generic
		// declaration, not the freshly-inferred Args; re-deriving it
		// from the substitutions recorded above would need a
		// field-to-generic-arg-position map this resolver does not
		// build yet, so it is carried through unchanged.
		ResultType: sig.ResultType,
	}, applicabilityOK()
}

// reresolveFormalType returns the base type a formal should be
// checked against during instantiation, honoring any substitution
// already recorded for it this pass (spec.md §4.F step 1: "re-resolve
// the formal's type expression with the substitutions accumulated so
// far"). Substitutions that would change a *later* formal's type
// expression (one type parameter mentioned in another formal's
// declared type) require re-running EvalTypeExpr against a
// substitution-aware scope; this resolver has no such scope yet, so a
// formal whose own declared type is already concrete or unknown keeps
// its typedSignatureInitial type, and only a formal that already
// carries a substitution (i.e. this is a second look at the same
// formal, as instantiate-of-an-instantiated-signature would produce)
// sees the substituted value.
func (r *Resolver) reresolveFormalType(sig *TypedFnSignature, i int, subs SubstitutionsMap) types.QualifiedType {
	if qt, ok := subs[i]; ok {
		return qt
	}
	return sig.FormalTypes[i]
}

// computeInstantiationType implements spec.md §4.F step 3's
// decorated-class combination rules. Every other actual/formal
// pairing instantiates to the actual's own type unchanged: canPass
// already established the pairing is legal, and only the class case
// has decorators left to reconcile.
func (r *Resolver) computeInstantiationType(actual, formal types.QualifiedType) types.QualifiedType {
	actualTy, aok := r.Types.Lookup(actual.Type)
	formalTy, fok := r.Types.Lookup(formal.Type)
	if !aok || !fok || actualTy.Kind != types.KindClass {
		return actual
	}

	switch {
	case formalTy.Kind == types.KindClass:
		mgmt, nilab := types.CombineDecorators(formalTy.Management, actualTy.Management, formalTy.Nilability, actualTy.Nilability)
		decl, args := formalTy.Decl, formalTy.Args
		if decl == types.NoDeclID {
			decl, args = actualTy.Decl, actualTy.Args
		}
		result := types.MakeClass(decl, args, mgmt, nilab)
		return types.QualifiedType{Kind: actual.Kind, Type: r.Types.Intern(result), Param: actual.Param}
	case formalTy.Kind.IsAnyBound():
		if mgmt, ok := types.ManagementFromBound(formalTy.Kind); ok {
			result := types.MakeClass(actualTy.Decl, actualTy.Args, mgmt, actualTy.Nilability)
			return types.QualifiedType{Kind: actual.Kind, Type: r.Types.Intern(result), Param: actual.Param}
		}
		return actual
	default:
		return actual
	}
}
