// Package mostspecific implements the disambiguation tiebreaker
// spec.md §1/§6 names as an external collaborator
// (`findMostSpecificCandidates`): given a set of applicable overload
// candidates, rank them by total conversion cost and return the
// unique cheapest one, or the tied set as ambiguous. Candidates are
// ranked all together: return intents are not distinguished, so at
// most one best candidate comes back per call.
//
// Grounded on the teacher's selectBestCandidate in
// internal/sema/type_expr_call_inference.go: accumulate a cost per
// candidate via canpass.CanPass, keep the running minimum, and flag
// a tie as ambiguous rather than picking arbitrarily.
package mostspecific

import (
	"github.com/vela-lang/velac/internal/canpass"
	"github.com/vela-lang/velac/internal/types"
)

// Candidate is one overload under consideration: a signature's formal
// types in call order, paired with an opaque handle the caller uses
// to identify which declaration this candidate came from.
type Candidate struct {
	Handle interface{}
	Formals []types.QualifiedType
	Variadic bool
}

// Result is what component G reports back to component H: either a
// unique best candidate, no applicable candidate at all, or an
// ambiguous tie between two or more equally good ones.
type Result struct {
	Best      *Candidate
	Ambiguous []Candidate
}

// FindMostSpecificCandidates ranks candidates by their total argument
// conversion cost against actuals, returning the unique cheapest one.
// Candidates that reject any argument are dropped before ranking; a
// variadic candidate is penalized so an exact-arity overload always
// wins a tie against one that merely accepts the call via varargs
// (mirrors the teacher's "+1 + 2*len(args)" variadic penalty).
func FindMostSpecificCandidates(in *types.Interner, candidates []Candidate, actuals []types.QualifiedType) Result {
	bestCost := -1
	var best *Candidate
	var tied []Candidate

	for i := range candidates {
		c := &candidates[i]
		cost, ok := totalCost(in, c, actuals)
		if !ok {
			continue
		}
		switch {
		case bestCost == -1 || cost < bestCost:
			bestCost = cost
			best = c
			tied = tied[:0]
		case cost == bestCost:
			if len(tied) == 0 && best != nil {
				tied = append(tied, *best)
			}
			tied = append(tied, *c)
		}
	}

	if len(tied) > 0 {
		return Result{Ambiguous: tied}
	}
	return Result{Best: best}
}

func totalCost(in *types.Interner, c *Candidate, actuals []types.QualifiedType) (int, bool) {
	if !c.Variadic && len(c.Formals) != len(actuals) {
		return 0, false
	}
	if c.Variadic && len(actuals) < len(c.Formals)-1 {
		return 0, false
	}

	total := 0
	for i, actual := range actuals {
		formal := formalFor(c, i)
		res := canpass.CanPass(in, actual, formal)
		if !res.OK {
			return 0, false
		}
		total += res.Cost
	}
	if c.Variadic {
		total += 1 + 2*len(actuals)
	}
	return total, true
}

func formalFor(c *Candidate, argIndex int) types.QualifiedType {
	if !c.Variadic || argIndex < len(c.Formals)-1 {
		return c.Formals[argIndex]
	}
	return c.Formals[len(c.Formals)-1]
}
