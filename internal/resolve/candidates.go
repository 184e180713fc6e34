package resolve

import (
	"strconv"

	"github.com/vela-lang/velac/internal/ast"
	"github.com/vela-lang/velac/internal/diag"
	"github.com/vela-lang/velac/internal/mostspecific"
	"github.com/vela-lang/velac/internal/source"
	"github.com/vela-lang/velac/internal/symbols"
	"github.com/vela-lang/velac/internal/types"
)

// CallInfo is one call site's shape, gathered by the caller (call.go's
// expression walk) before candidate search begins (spec.md §4.G).
type CallInfo struct {
	Name               source.StringID
	Args               []ActualArg
	IsMethod           bool
	HasParens          bool
	Receiver           types.QualifiedType // zero value for a free-function call
	InForwardingClause bool
}

// CandidateSource records which of spec.md §4.G's four candidate
// sources produced a candidate, so a forwarding candidate can carry
// the receiver type the call site must coerce through.
type CandidateSource uint8

const (
	SourceCompilerGenerated CandidateSource = iota
	SourceLexical
	SourcePOI
	SourceForwarding
)

// Candidate is one overload under consideration, before or after
// instantiation against a specific call's actuals.
type Candidate struct {
	Item              ast.ItemID
	Signature         *TypedFnSignature
	Source            CandidateSource
	ForwardedReceiver types.QualifiedType
}

// CallResolution is what resolveCall reports back to the call driver:
// a unique best candidate, an ambiguous tie, or nothing applicable at
// all (with the per-candidate rejections when the caller asked for
// them).
type CallResolution struct {
	Best       *Candidate
	Ambiguous  []Candidate
	Rejections []ApplicabilityResult
}

// ResolveCall answers spec.md §4.G's resolveCall: gather candidates
// through the staged source search, instantiate each against the
// call's actuals (§4.F), drop what a where-clause or canPass rejects,
// and disambiguate what remains.
func (r *Resolver) ResolveCall(call CallInfo, scope symbols.ScopeID, poiScopes []symbols.ScopeID, collectRejections bool) CallResolution {
	candidates := r.gatherCandidates(call, scope, poiScopes)
	if len(candidates) == 0 {
		return CallResolution{}
	}

	var applicable []Candidate
	var rejections []ApplicabilityResult
	for _, c := range candidates {
		instantiated, res := r.InstantiateSignature(c.Signature, call.Args)
		if !res.OK {
			if collectRejections {
				rejections = append(rejections, res)
			}
			continue
		}
		if instantiated.Where == WhereFalse {
			if collectRejections {
				rejections = append(rejections, applicabilityFailure(-1, "where clause is false"))
			}
			continue
		}
		c.Signature = instantiated
		applicable = append(applicable, c)
	}

	if len(applicable) == 0 {
		return CallResolution{Rejections: rejections}
	}
	if len(applicable) == 1 {
		best := applicable[0]
		return CallResolution{Best: &best, Rejections: rejections}
	}

	return r.disambiguate(applicable, call.Args, rejections)
}

// disambiguate delegates ranking to internal/mostspecific.
//
// mostspecific.FindMostSpecificCandidates compares one shared actuals
// vector against every candidate's formal list, which assumes every
// candidate has the same effective arity as what was actually
// supplied at the call site. That holds for the common case (no
// candidate leaned on a default-valued formal to answer this
// particular call) but not in general — a call that some overloads
// can only satisfy by filling in a default has, from mostspecific's
// point of view, "the wrong number of actuals" and is silently
// excluded from cost ranking rather than compared. When that leaves
// nothing to rank, this falls back to reporting the whole applicable
// set as ambiguous rather than guessing.
func (r *Resolver) disambiguate(applicable []Candidate, args []ActualArg, rejections []ApplicabilityResult) CallResolution {
	actuals := suppliedActualTypes(args)
	pool := make([]mostspecific.Candidate, len(applicable))
	for i, c := range applicable {
		formals := c.Signature.Untyped.Formals
		pool[i] = mostspecific.Candidate{
			Handle:   i,
			Formals:  c.Signature.FormalTypes,
			Variadic: len(formals) > 0 && formals[len(formals)-1].IsVarArgs,
		}
	}

	result := mostspecific.FindMostSpecificCandidates(r.Types, pool, actuals)
	switch {
	case result.Best != nil:
		best := applicable[result.Best.Handle.(int)]
		return CallResolution{Best: &best, Rejections: rejections}
	case len(result.Ambiguous) > 0:
		out := make([]Candidate, len(result.Ambiguous))
		for i, mc := range result.Ambiguous {
			out[i] = applicable[mc.Handle.(int)]
		}
		r.reportAmbiguity(out)
		return CallResolution{Ambiguous: out, Rejections: rejections}
	default:
		r.reportAmbiguity(applicable)
		return CallResolution{Ambiguous: applicable, Rejections: rejections}
	}
}

// reportAmbiguity distinguishes spec.md §4.G's two ambiguity
// diagnostics. Ordinary procs carry no ResultType here (return-type
// inference is its own external collaborator per spec.md §1, not yet
// built), so this can only detect a genuine return-type disagreement
// among candidates that structurally know their result already — a
// type constructor or a compiler-generated accessor. Anything else
// reports the plain ambiguous-call diagnostic.
func (r *Resolver) reportAmbiguity(candidates []Candidate) {
	if resultTypesDisagree(candidates) {
		r.Diags.Report(diag.ResAmbiguousReturnIntent, diag.SevError, source.Span{},
			"candidates disagree on return type after disambiguation", nil, nil)
		return
	}
	r.Diags.Report(diag.ResAmbiguousCall, diag.SevError, source.Span{}, "ambiguous call", nil, nil)
}

func resultTypesDisagree(candidates []Candidate) bool {
	var first types.QualifiedType
	seen := false
	for _, c := range candidates {
		if c.Signature.ResultType.IsUnknown() {
			return false
		}
		if !seen {
			first = c.Signature.ResultType
			seen = true
			continue
		}
		if first != c.Signature.ResultType {
			return true
		}
	}
	return false
}

func suppliedActualTypes(args []ActualArg) []types.QualifiedType {
	out := make([]types.QualifiedType, 0, len(args))
	for _, a := range args {
		if a.Kind != ActualValue {
			continue
		}
		out = append(out, a.Type)
	}
	return out
}

// gatherCandidates implements spec.md §4.G's staged search: try each
// source in order, stopping at the first that produces anything,
// except forwarding which is only consulted once the first three come
// up empty.
func (r *Resolver) gatherCandidates(call CallInfo, scope symbols.ScopeID, poiScopes []symbols.ScopeID) []Candidate {
	if c := r.compilerGeneratedCandidates(call); len(c) > 0 {
		return c
	}
	if c := r.lexicalCandidates(call, scope); len(c) > 0 {
		return c
	}
	if recvScope, ok := r.receiverDeclScope(call); ok {
		if c := r.lexicalCandidates(call, recvScope); len(c) > 0 {
			return c
		}
	}
	for _, poi := range poiScopes {
		if c := r.lexicalCandidates(call, poi); len(c) > 0 {
			return c
		}
	}
	if !call.InForwardingClause {
		return r.forwardingCandidates(call, scope, poiScopes, symbols.NewCheckedScopes(), 0)
	}
	return nil
}

// receiverDeclScope answers the ground truth's
// gatherReceiverAndParentScopesForType for the one receiver shape this
// model tracks (a composite or class instance): the call site's own
// scope (searched by lexicalCandidates above) has no guaranteed path
// to the module that declared the receiver's type, so a method call
// from an unrelated scope needs that module scope added explicitly.
// Per symbols.Build, a method lives in that module's scope, not in the
// receiver composite's own ScopeComposite, so this resolves to the
// composite scope's parent rather than the composite scope itself.
func (r *Resolver) receiverDeclScope(call CallInfo) (symbols.ScopeID, bool) {
	if !call.IsMethod || call.Receiver.IsUnknown() {
		return symbols.NoScopeID, false
	}
	recvTy, ok := r.Types.Lookup(call.Receiver.Type)
	if !ok {
		return symbols.NoScopeID, false
	}
	var recvItem ast.ItemID
	switch recvTy.Kind {
	case types.KindComposite, types.KindClass:
		recvItem = declItem(recvTy.Decl)
	default:
		return symbols.NoScopeID, false
	}
	ownScope := r.Scopes.ScopeForOwner(r.AST.SymbolOf(recvItem))
	s := r.Scopes.Scope(ownScope)
	if s == nil || !s.Parent.IsValid() {
		return symbols.NoScopeID, false
	}
	return s.Parent, true
}

// compilerGeneratedCandidates answers spec.md §4.G step 1: built-in
// methods a receiver type advertises without any declaration, e.g.
// tuple element accessors named by their positional index
// ("t.0", "t.1", ...). Auto-generated initializers are a separate,
// deeper concern (they interact with field-default resolution and
// §4.H's body-dependent finalization) and are deferred; this
// implements the one built-in method spec.md's own example names.
func (r *Resolver) compilerGeneratedCandidates(call CallInfo) []Candidate {
	if r.Strings == nil || !call.IsMethod || call.Receiver.IsUnknown() {
		return nil
	}
	recvTy, ok := r.Types.Lookup(call.Receiver.Type)
	if !ok || recvTy.Kind != types.KindTuple {
		return nil
	}
	name, ok := r.Strings.Lookup(call.Name)
	if !ok {
		return nil
	}
	idx, err := strconv.Atoi(name)
	if err != nil || idx < 0 {
		return nil
	}
	info, ok := r.Types.LookupTuple(recvTy.Tuple)
	if !ok {
		return nil
	}
	elems := r.Types.LookupArgs(info.Elems)
	if info.Star {
		if len(elems) == 0 {
			return nil
		}
		return []Candidate{r.tupleAccessorCandidate(elems[0])}
	}
	if idx >= len(elems) {
		return nil
	}
	return []Candidate{r.tupleAccessorCandidate(elems[idx])}
}

func (r *Resolver) tupleAccessorCandidate(elem types.TypeID) Candidate {
	untyped := &UntypedFnSignature{
		IsCompilerGenerated: true,
		IsMethod:            true,
		Kind:                ProcMethod,
	}
	sig := &TypedFnSignature{
		Untyped:     untyped,
		FormalTypes: nil,
		Where:       WhereNone,
		Substituted: nil,
		ResultType:  types.NewVar(elem),
	}
	return Candidate{Signature: sig, Source: SourceCompilerGenerated}
}

// lexicalCandidates answers spec.md §4.G step 2 (and, called again
// per POI scope, step 3): look up call.Name in scope, filtering by
// methods-only and parenless-ness per the call's shape.
//
// A method call narrows the symbol-kind filter to fields and methods
// (OnlyMethodsFields|Methods) but must still walk parent scopes:
// symbols.Build's buildScope only ever registers a function symbol —
// including a method — in its *enclosing module's* scope, never in
// the receiver composite's own ScopeComposite (that scope holds only
// its fields). A search that dropped LookupParents here could never
// reach the module scope a method actually lives in.
func (r *Resolver) lexicalCandidates(call CallInfo, scope symbols.ScopeID) []Candidate {
	cfg := symbols.LookupDecls | symbols.LookupImportUse | symbols.LookupParents
	if call.IsMethod {
		cfg |= symbols.LookupOnlyMethodsFields | symbols.LookupMethods
	}
	ids := symbols.LookupNameInScopeWithSet(r.Scopes, scope, call.Name, cfg, nil)

	var out []Candidate
	for _, id := range ids {
		sym := r.Scopes.Symbol(id)
		if sym == nil || sym.Kind != symbols.SymbolFunction {
			continue
		}
		item := sym.Decl.Item
		parenless := r.AST.IsParenlessFunction(r.AST.SymbolOf(item))
		if call.HasParens == parenless {
			continue
		}
		sig := r.TypedSignatureInitial(item)
		if sig == nil {
			continue
		}
		out = append(out, Candidate{Item: item, Signature: sig, Source: SourceLexical})
	}
	return out
}

// forwardingCandidates answers spec.md §4.G step 4: only consulted
// once steps 1-3 are empty, only when the receiver type forwards, and
// only outside a forwarding clause itself. Recursion is bounded the
// same way §4.D's cycle check is bounded — a shared CheckedScopes set
// — plus an explicit depth cap as a second backstop against a
// forwarding chain the cycle checker has not yet run over.
func (r *Resolver) forwardingCandidates(call CallInfo, scope symbols.ScopeID, poiScopes []symbols.ScopeID, checked *symbols.CheckedScopes, depth int) []Candidate {
	const maxForwardingDepth = 64
	if depth >= maxForwardingDepth || call.Receiver.IsUnknown() {
		return nil
	}
	recvTy, ok := r.Types.Lookup(call.Receiver.Type)
	if !ok {
		return nil
	}
	var recvItem ast.ItemID
	switch recvTy.Kind {
	case types.KindComposite, types.KindClass:
		recvItem = declItem(recvTy.Decl)
	default:
		return nil
	}
	if !r.AST.AggregateUsesForwarding(r.AST.SymbolOf(recvItem)) {
		return nil
	}

	var out []Candidate
	for _, target := range r.ResolveForwardingExprs(recvItem) {
		if target.IsUnknown() {
			continue
		}
		targetTy, ok := r.Types.Lookup(target.Type)
		if !ok {
			continue
		}
		var targetItem ast.ItemID
		switch targetTy.Kind {
		case types.KindComposite, types.KindClass:
			targetItem = declItem(targetTy.Decl)
		default:
			continue
		}
		targetScope := r.Scopes.ScopeForOwner(r.AST.SymbolOf(targetItem))
		if checked.Visit(targetScope) {
			continue
		}
		forwardedCall := call
		forwardedCall.Receiver = target
		found := r.lexicalCandidates(forwardedCall, targetScope)
		for _, poi := range poiScopes {
			if len(found) > 0 {
				break
			}
			found = r.lexicalCandidates(forwardedCall, poi)
		}
		if len(found) == 0 {
			found = r.forwardingCandidates(forwardedCall, targetScope, poiScopes, checked, depth+1)
		}
		for _, c := range found {
			c.Source = SourceForwarding
			c.ForwardedReceiver = target
			out = append(out, c)
		}
	}
	return out
}
