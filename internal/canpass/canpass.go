// Package canpass implements the conversion/coercion oracle spec.md
// §1/§6 names as an external collaborator (`canPass`): given an
// actual argument's qualified type and a formal's qualified type, can
// the actual be passed to the formal, and at what cost?
//
// Grounded on the teacher's matchArgument/conversionCost pair in
// internal/sema/type_expr_call_inference.go: strip reference wrappers
// first, then rank the underlying conversion from exact match (cheap)
// through numeric widening and "any"-bound satisfaction (progressively
// more expensive), rejecting anything the type lattice does not
// permit at all.
package canpass

import "github.com/vela-lang/velac/internal/types"

// Cost tiers, cheapest first. Component G (candidate filtering) sums
// a call's per-argument costs and internal/mostspecific picks the
// candidate with the lowest total, so relative ordering matters more
// than the absolute values.
const (
	CostExact       = 0
	CostParamExact  = 0
	CostWidening    = 10
	CostBoundBind   = 20
	CostPromotion   = 30
	Rejected        = -1
)

// Result reports whether an actual can be passed to a formal and, if
// so, the conversion's cost.
type Result struct {
	OK   bool
	Cost int
}

func reject() Result { return Result{OK: false, Cost: Rejected} }

func ok(cost int) Result { return Result{OK: true, Cost: cost} }

// CanPass decides whether actual can be passed where formal is
// expected, per spec.md §4.B's decorator rules and the type lattice's
// widening/"any"-bound structure.
func CanPass(in *types.Interner, actual, formal types.QualifiedType) Result {
	if formal.IsUnknown() || actual.IsUnknown() {
		return reject()
	}
	if formal.IsErroneous(in) || actual.IsErroneous(in) {
		// Erroneous types are "unresolvable but benign" (spec.md §7):
		// let resolution continue rather than compounding the error.
		return ok(CostExact)
	}

	if formal.Kind.IsRefLike() {
		return canPassRef(in, actual, formal)
	}

	if actual.Type == formal.Type {
		return ok(exactCost(actual))
	}

	actualTy, ok1 := in.Lookup(actual.Type)
	formalTy, ok2 := in.Lookup(formal.Type)
	if !ok1 || !ok2 {
		return reject()
	}
	return canPassTypes(actualTy, formalTy, actual.Type, formal.Type)
}

func exactCost(actual types.QualifiedType) int {
	if actual.Kind == types.QualParam {
		return CostParamExact
	}
	return CostExact
}

// canPassRef requires the actual to have the identical interned type,
// decorators included; ref formals never accept an
// implicit conversion (spec.md §4.F.3: "ref requires exact type match").
func canPassRef(in *types.Interner, actual, formal types.QualifiedType) Result {
	if !actual.Kind.IsRefLike() && formal.Kind != types.QualOut {
		// `out` formals may bind a plain var actual (it is
		// write-only from the callee's perspective); other ref kinds
		// require the actual to already be a reference.
		return reject()
	}
	if actual.Type != formal.Type {
		return reject()
	}
	return ok(CostExact)
}

func canPassTypes(actual, formal types.Type, actualID, formalID types.TypeID) Result {
	if bound, isBound := numericBoundKind(formal.Kind); isBound {
		if matchesNumericFamily(actual.Kind, bound) {
			return ok(CostBoundBind)
		}
		return reject()
	}

	if isNumericKind(actual.Kind) && isNumericKind(formal.Kind) && sameNumericFamily(actual.Kind, formal.Kind) {
		if actual.Width == formal.Width {
			return ok(CostExact)
		}
		if formal.Width == types.WidthAny {
			return ok(CostWidening)
		}
		if actual.Width < formal.Width {
			return ok(CostWidening)
		}
		// Narrowing requires an explicit cast; passing wider-to-narrower
		// silently is a promotion in the other direction only for
		// literals, which callers indicate by pre-folding Param.
		return reject()
	}

	if actual.Kind == types.KindClass && formal.Kind == types.KindClass {
		return canPassClass(actual, formal)
	}

	if formal.Kind == types.KindAnyClass && actual.Kind == types.KindClass {
		return ok(CostBoundBind)
	}

	return reject()
}

func canPassClass(actual, formal types.Type) Result {
	if actual.Decl != formal.Decl || actual.Args != formal.Args {
		return reject()
	}
	if formal.Nilability == types.NilNonNil && actual.Nilability == types.NilNilable {
		return reject()
	}
	if formal.Management.Concrete() && actual.Management.Concrete() && formal.Management != actual.Management {
		return reject()
	}
	if formal.Management == actual.Management && formal.Nilability == actual.Nilability {
		return ok(CostExact)
	}
	return ok(CostWidening)
}

func numericBoundKind(k types.Kind) (types.Kind, bool) {
	switch k {
	case types.KindAnyInt, types.KindAnyUint, types.KindAnyReal, types.KindAnyImag, types.KindAnyComplex:
		return k, true
	default:
		return 0, false
	}
}

func matchesNumericFamily(actual, bound types.Kind) bool {
	switch bound {
	case types.KindAnyInt:
		return actual == types.KindInt
	case types.KindAnyUint:
		return actual == types.KindUint
	case types.KindAnyReal:
		return actual == types.KindReal
	case types.KindAnyImag:
		return actual == types.KindImag
	case types.KindAnyComplex:
		return actual == types.KindComplex
	default:
		return false
	}
}

func isNumericKind(k types.Kind) bool {
	switch k {
	case types.KindInt, types.KindUint, types.KindReal, types.KindImag, types.KindComplex:
		return true
	default:
		return false
	}
}

func sameNumericFamily(a, b types.Kind) bool { return a == b }
