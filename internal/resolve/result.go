package resolve

import (
	"github.com/vela-lang/velac/internal/ast"
	"github.com/vela-lang/velac/internal/symbols"
	"github.com/vela-lang/velac/internal/types"
)

// ResolvedExpression is spec.md §3's per-AST-node result: its
// QualifiedType, the callee(s) selected for it if it is a call
// (Best when unambiguous, Ambiguous otherwise), and the POI scope it
// was resolved under.
type ResolvedExpression struct {
	Type      types.QualifiedType
	Best      *Candidate
	Ambiguous []Candidate
	POIScope  symbols.ScopeID
}

// ResolutionResultByPostorderID is a dense array of ResolvedExpression
// indexed by post-order ID within one symbol, filled left-to-right as
// call.go's expression walk visits the symbol's body (spec.md §3).
type ResolutionResultByPostorderID struct {
	bySymbol ast.SymbolID
	entries  []ResolvedExpression
}

func newResolutionResult(sym ast.SymbolID, size int) *ResolutionResultByPostorderID {
	return &ResolutionResultByPostorderID{bySymbol: sym, entries: make([]ResolvedExpression, size)}
}

// at returns the slot for a 1-based post-order index, growing the
// dense array if the caller's traversal has not pre-sized it. Indices
// are always small (bounded by one symbol's own node count), so a
// linear grow-by-append here never becomes a hot path.
func (rr *ResolutionResultByPostorderID) at(postorder uint32) *ResolvedExpression {
	idx := int(postorder) - 1
	for idx >= len(rr.entries) {
		rr.entries = append(rr.entries, ResolvedExpression{})
	}
	return &rr.entries[idx]
}

// Get returns the resolved expression stored at id, or the zero value
// if id's symbol has never been visited or id falls past what has
// been filled so far.
func (rr *ResolutionResultByPostorderID) Get(id ast.ID) (ResolvedExpression, bool) {
	if rr == nil || !id.IsValid() || id.Symbol != rr.bySymbol {
		return ResolvedExpression{}, false
	}
	idx := int(id.PostOrder) - 1
	if idx < 0 || idx >= len(rr.entries) {
		return ResolvedExpression{}, false
	}
	return rr.entries[idx], true
}

// resultsFor returns the (creating on first use) resolution results
// for sym, the storage backing every ResolveExpr call made while
// walking that symbol's body.
func (r *Resolver) resultsFor(sym ast.SymbolID) *ResolutionResultByPostorderID {
	rr, ok := r.results[sym]
	if !ok {
		rr = newResolutionResult(sym, 0)
		r.results[sym] = rr
	}
	return rr
}

// recordResult fills in the resolved expression for id, per spec.md
// §5's "filled left-to-right as the AST is traversed" ordering
// guarantee; callers walk expressions in the same post-order the AST
// provider numbered them in, so no id is ever written out of order.
func (r *Resolver) recordResult(id ast.ID, res ResolvedExpression) {
	if !id.IsValid() {
		return
	}
	rr := r.resultsFor(id.Symbol)
	*rr.at(id.PostOrder) = res
}

// ResultFor is the public read side of the results table, letting a
// later query (e.g. re-visiting a type-query binding, or a caller
// asking what an already-resolved subexpression's type was) look up
// what call.go previously recorded for id.
func (r *Resolver) ResultFor(id ast.ID) (ResolvedExpression, bool) {
	rr, ok := r.results[id.Symbol]
	if !ok {
		return ResolvedExpression{}, false
	}
	return rr.Get(id)
}
