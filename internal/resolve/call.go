package resolve

import (
	"github.com/vela-lang/velac/internal/ast"
	"github.com/vela-lang/velac/internal/canpass"
	"github.com/vela-lang/velac/internal/diag"
	"github.com/vela-lang/velac/internal/source"
	"github.com/vela-lang/velac/internal/symbols"
	"github.com/vela-lang/velac/internal/types"
)

// ExprContext is everything ResolveExpr needs beyond the expression's
// own ID: the scope its identifiers resolve in, the point-of-
// instantiation scopes accumulated so far (spec.md §4.G step 3), and
// the implicit receiver in scope when resolving a method body (spec.md
// §4.H's "implicit receiver" retry).
type ExprContext struct {
	Scope     symbols.ScopeID
	POIScopes []symbols.ScopeID
	Receiver  types.QualifiedType
}

// ResolveExpr is spec.md §4.H's entry point: dispatch on an
// expression's shape and resolve it to a QualifiedType. It does not
// itself write to the ResolutionResultByPostorderID table — the body
// walker (module.go's resolveExprNodes) knows each
// expression's postorder ID from the AST provider's own traversal and
// calls recordResult once per node as it visits, in the same
// left-to-right order the provider numbered them in.
func (r *Resolver) ResolveExpr(ctx ExprContext, exprID ast.ExprID) types.QualifiedType {
	e := r.Tree.Exprs.Get(exprID)
	if e == nil {
		return types.UnknownQT
	}

	var qt types.QualifiedType
	switch e.Kind {
	case ast.ExprIdent:
		qt = r.resolveIdentExpr(ctx, e)
	case ast.ExprLiteral:
		qt = r.exprType(exprID)
	case ast.ExprUnary:
		qt = r.resolveUnaryExpr(ctx, e)
	case ast.ExprNew:
		qt = r.resolveNewExpr(ctx, e)
	case ast.ExprTuple:
		qt = r.resolveTupleExpr(ctx, e)
	case ast.ExprMember:
		qt = r.resolveMemberExpr(ctx, e)
	case ast.ExprCall:
		qt = r.resolveCallExpr(ctx, e)
	case ast.ExprQuestion:
		qt = types.UnknownQT
	default:
		qt = types.UnknownQT
	}

	return qt
}

// resolveIdentExpr looks up an identifier as a type or module name.
// Ordinary variable/field lookup is body-resolution's job (spec.md §1
// names it a separate external collaborator this core does not
// model); the one case call.go itself needs is recognizing that a
// call's callee expression names a type (step 4) or a module (the
// domain/atomic rewrites' qualified-call target). A name with no
// declaration that spells a numeric primitive (`int`, `real`, ...)
// names that primitive's generic-width type.
func (r *Resolver) resolveIdentExpr(ctx ExprContext, e *ast.Expr) types.QualifiedType {
	cfg := symbols.LookupDecls | symbols.LookupParents
	ids := symbols.LookupNameInScopeWithSet(r.Scopes, ctx.Scope, e.Name, cfg, nil)
	for _, scope := range ctx.POIScopes {
		if len(ids) > 0 {
			break
		}
		ids = symbols.LookupNameInScopeWithSet(r.Scopes, scope, e.Name, cfg, nil)
	}
	for _, id := range ids {
		sym := r.Scopes.Symbol(id)
		if sym == nil {
			continue
		}
		switch sym.Kind {
		case symbols.SymbolComposite:
			return types.NewType(r.declType(sym.Decl.Item, types.NoArgsID))
		case symbols.SymbolModule:
			return types.QualifiedType{Kind: types.QualModule, Type: types.TypeID(sym.Decl.Item)}
		}
	}
	if r.Strings != nil {
		if name, ok := r.Strings.Lookup(e.Name); ok {
			if kind, ok := numericCtorKind(name); ok {
				return types.NewType(r.Types.Intern(types.Type{Kind: kind}))
			}
		}
	}
	return types.UnknownQT
}

// resolveUnaryExpr folds `!` on a param bool (step 2) and postfix `?`
// applied to `new C(...)` (step 1): the expression type becomes the
// nilable version of whatever `new` produced.
func (r *Resolver) resolveUnaryExpr(ctx ExprContext, e *ast.Expr) types.QualifiedType {
	operand := r.ResolveExpr(ctx, e.Operand)
	switch e.Op {
	case "!":
		if operand.Kind == types.QualParam && operand.Param.Kind == types.ParamBool {
			return types.NewParam(operand.Type, operand.Param.Not())
		}
		return types.UnknownQT
	case "?":
		operandNode := r.Tree.Exprs.Get(e.Operand)
		if operandNode == nil || operandNode.Kind != ast.ExprNew {
			return types.UnknownQT
		}
		return r.withNilable(operand)
	default:
		return types.UnknownQT
	}
}

// withNilable rewrites a class-kinded qualified type to its nilable
// decoration, the effect a postfix `?` on `new C(...)` has (step 1).
// Anything that is not a class type passes through unchanged: `?` on
// a non-class result is a semantic error the type constructor itself
// already reported when producing operand.
func (r *Resolver) withNilable(qt types.QualifiedType) types.QualifiedType {
	t, ok := r.Types.Lookup(qt.Type)
	if !ok || t.Kind != types.KindClass {
		return qt
	}
	nilable := t.WithDecorator(t.Management, types.NilNilable)
	return qt.WithType(r.Types.Intern(nilable))
}

// resolveNewExpr delegates to the constructor call it wraps and
// converts the resulting type-valued qualification into a var: `new
// C(...)` produces a value of type C, not the type C itself.
func (r *Resolver) resolveNewExpr(ctx ExprContext, e *ast.Expr) types.QualifiedType {
	inner := r.ResolveExpr(ctx, e.Callee)
	if inner.Kind == types.QualType {
		return types.NewVar(inner.Type)
	}
	return inner
}

// resolveTupleExpr answers step 5 and Scenario Seed S6: every element
// must be uniformly type-valued or uniformly value-valued.
func (r *Resolver) resolveTupleExpr(ctx ExprContext, e *ast.Expr) types.QualifiedType {
	if len(e.Elems) == 0 {
		info := types.TupleInfo{Elems: types.NoArgsID, Star: e.Star}
		return types.NewVar(r.Types.InternTuple(info))
	}

	elemTypes := make([]types.QualifiedType, len(e.Elems))
	for i, elemID := range e.Elems {
		elemTypes[i] = r.ResolveExpr(ctx, elemID)
	}

	allTypeValued := true
	allValueValued := true
	for _, qt := range elemTypes {
		if qt.IsUnknown() {
			continue
		}
		if qt.Kind == types.QualType {
			allValueValued = false
		} else {
			allTypeValued = false
		}
	}

	if !allTypeValued && !allValueValued {
		r.Diags.Report(diag.ResMixedTupleElements, diag.SevError, e.Span,
			"tuple expression mixes type and value elements", nil, nil)
		return types.NewVar(r.Types.Builtins().Erroneous)
	}

	ids := make([]types.TypeID, len(elemTypes))
	for i, qt := range elemTypes {
		ids[i] = qt.Type
	}
	info := types.TupleInfo{Elems: r.Types.InternArgs(ids), Star: e.Star}
	tupleType := r.Types.InternTuple(info)
	if allTypeValued {
		return types.NewType(tupleType)
	}
	return types.NewVar(tupleType)
}

// resolveMemberExpr distinguishes a method-call receiver (handled by
// resolveCallExpr, which unwraps ExprMember itself when it is a
// call's callee) from a plain field access on a composite/class
// receiver, using the AST provider's field-membership hook.
func (r *Resolver) resolveMemberExpr(ctx ExprContext, e *ast.Expr) types.QualifiedType {
	recv := r.ResolveExpr(ctx, e.Receiver)
	if recv.IsUnknown() {
		return types.UnknownQT
	}
	recvTy, ok := r.Types.Lookup(recv.Type)
	if !ok {
		return types.UnknownQT
	}
	var recvItem ast.ItemID
	switch recvTy.Kind {
	case types.KindComposite, types.KindClass:
		recvItem = declItem(recvTy.Decl)
	default:
		return types.UnknownQT
	}
	fid, found := r.AST.ContainsFieldWithName(r.AST.SymbolOf(recvItem), e.Name)
	if !found {
		return types.UnknownQT
	}
	policy := PolicyUseDefaults
	fields := r.FieldsForTypeDecl(recvItem, policy)
	for _, f := range fields.Fields {
		if f.Decl == fid {
			return f.QualifiedType
		}
	}
	return types.UnknownQT
}

// resolveCallArgs walks a call's argument list into ActualArgs,
// special-casing a bare/named `?` as ActualQuestion per §4.F step 2's
// binding condition rather than resolving it as an ordinary value.
func (r *Resolver) resolveCallArgs(ctx ExprContext, args []ast.Arg) []ActualArg {
	out := make([]ActualArg, len(args))
	for i, a := range args {
		valueNode := r.Tree.Exprs.Get(a.Value)
		if valueNode != nil && valueNode.Kind == ast.ExprQuestion {
			out[i] = ActualArg{Name: a.Name, Kind: ActualQuestion}
			continue
		}
		out[i] = ActualArg{Name: a.Name, Kind: ActualValue, Type: r.ResolveExpr(ctx, a.Value)}
	}
	return out
}

// resolveCallExpr is the §4.H driver proper: try each built-in form in
// order, then a type-constructor callee, then ordinary §4.G
// resolution, retrying with an implicit receiver before conceding.
func (r *Resolver) resolveCallExpr(ctx ExprContext, e *ast.Expr) types.QualifiedType {
	calleeNode := r.Tree.Exprs.Get(e.Callee)
	if calleeNode == nil {
		return types.UnknownQT
	}

	name, isIdent := r.calleeName(calleeNode)
	if isIdent {
		if qt, handled := r.resolveBuiltinCall(ctx, name, e); handled {
			return qt
		}
	}

	// Step 4: a type-valued callee invokes the type-constructor path.
	if isIdent {
		if qt, ok := r.resolveTypeConstructorCall(ctx, name, e); ok {
			return qt
		}
	}

	isMethod := calleeNode.Kind == ast.ExprMember
	callName := name
	var receiver types.QualifiedType
	if isMethod {
		receiver = r.ResolveExpr(ctx, calleeNode.Receiver)
		callName = calleeNode.Name
	}

	args := r.resolveCallArgs(ctx, e.Args)
	call := CallInfo{
		Name:      callName,
		Args:      args,
		IsMethod:  isMethod,
		HasParens: true,
		Receiver:  receiver,
	}
	res := r.ResolveCall(call, ctx.Scope, ctx.POIScopes, false)
	if res.Best != nil {
		return callResultType(res.Best)
	}
	if len(res.Ambiguous) > 0 {
		// ResolveCall already reported the ambiguity diagnostic.
		return types.NewVar(r.Types.Builtins().Erroneous)
	}

	// Implicit receiver: a non-method, non-operator call that failed
	// to resolve retries as a method on the receiver currently being
	// resolved, if any.
	if !isMethod && !ctx.Receiver.IsUnknown() {
		retry := call
		retry.IsMethod = true
		retry.Receiver = ctx.Receiver
		retryRes := r.ResolveCall(retry, ctx.Scope, ctx.POIScopes, false)
		if retryRes.Best != nil {
			return callResultType(retryRes.Best)
		}
		if len(retryRes.Ambiguous) > 0 {
			return types.NewVar(r.Types.Builtins().Erroneous)
		}
	}

	if isIdent {
		r.Diags.Report(diag.ResNoApplicableCandidate, diag.SevError, e.Span,
			"no applicable candidate for this call", nil, nil)
	}
	return types.NewVar(r.Types.Builtins().Erroneous)
}

func callResultType(c *Candidate) types.QualifiedType {
	if c.Signature != nil && !c.Signature.ResultType.IsUnknown() {
		return c.Signature.ResultType
	}
	return types.UnknownQT
}

// calleeName recovers the plain name a call's callee expression names,
// when it is simple enough to be one of §4.H's built-in forms. Only a
// bare identifier qualifies; a module-qualified member
// (`_domain.static_type`) yields no name.
func (r *Resolver) calleeName(callee *ast.Expr) (source.StringID, bool) {
	switch callee.Kind {
	case ast.ExprIdent:
		return callee.Name, true
	default:
		return source.NoStringID, false
	}
}

// builtinName decodes a StringID back to text for name-based dispatch.
// Returns "", false when r.Strings is nil (a synthetic test tree) or
// the id does not resolve, in which case no built-in form applies.
func (r *Resolver) builtinName(id source.StringID) (string, bool) {
	if r.Strings == nil {
		return "", false
	}
	return r.Strings.Lookup(id)
}

// resolveBuiltinCall answers §4.H steps 2-3: comparisons, isCoercible,
// class-management constructors, primitive constructors, c_ptr, and
// the domain/atomic rewrites. The bool result reports whether name
// named a recognized built-in at all (a recognized-but-invalid use
// still returns true, with an erroneous type and a reported
// diagnostic, so the caller does not fall through to ordinary lookup).
func (r *Resolver) resolveBuiltinCall(ctx ExprContext, name source.StringID, call *ast.Expr) (types.QualifiedType, bool) {
	text, ok := r.builtinName(name)
	if !ok {
		return types.UnknownQT, false
	}

	switch text {
	case "isCoercible":
		return r.resolveIsCoercible(ctx, call), true
	case "==", "!=":
		if qt, handled := r.resolveTypeComparison(ctx, text, call); handled {
			return qt, true
		}
		return types.UnknownQT, false
	case "owned", "shared", "unmanaged", "borrowed":
		return r.resolveClassCtor(ctx, text, call), true
	case "int", "uint", "real", "imag", "complex":
		return r.resolveNumericCtor(ctx, text, call), true
	case "c_ptr":
		return r.resolveCPointerCtor(ctx, call), true
	case "domain":
		return r.resolveModuleQualifiedCall(ctx, "_domain", "static_type", call), true
	case "atomic":
		return r.resolveModuleQualifiedCall(ctx, "", "chpl__atomicType", call), true
	case "sync", "single":
		// spec.md §9: sync/single's lowering into resolveFnCallSpecialType
		// is an acknowledged open question upstream. Recognize the shape
		// and report it rather than guess a lowering.
		r.Diags.Report(diag.GenUnimplemented, diag.SevError, call.Span,
			text+" type constructor is not yet supported", nil, nil)
		return types.NewVar(r.Types.Builtins().Erroneous), true
	default:
		return types.UnknownQT, false
	}
}

// resolveIsCoercible folds `isCoercible(T, U)` to a param bool using
// canPass, per step 2.
func (r *Resolver) resolveIsCoercible(ctx ExprContext, call *ast.Expr) types.QualifiedType {
	if len(call.Args) != 2 {
		return types.UnknownQT
	}
	a := r.ResolveExpr(ctx, call.Args[0].Value)
	b := r.ResolveExpr(ctx, call.Args[1].Value)
	if a.IsUnknown() || b.IsUnknown() {
		return types.UnknownQT
	}
	res := canpass.CanPass(r.Types, types.NewVar(a.Type), types.NewVar(b.Type))
	return types.NewParam(r.Types.Builtins().Bool, types.ParamOfBool(r.Types.Builtins().Bool, res.OK))
}

// resolveTypeComparison folds `==`/`!=` on two type- or param-valued
// operands to a param bool per step 2 ("built-in comparisons on
// type/param values"). It only claims the comparison when both sides
// are actually type or param valued; an ordinary value-level `==`
// overload is a ordinary call and falls through to §4.G resolution.
func (r *Resolver) resolveTypeComparison(ctx ExprContext, op string, call *ast.Expr) (types.QualifiedType, bool) {
	if len(call.Args) != 2 {
		return types.UnknownQT, false
	}
	a := r.ResolveExpr(ctx, call.Args[0].Value)
	b := r.ResolveExpr(ctx, call.Args[1].Value)
	if !isTypeOrParamValued(a) || !isTypeOrParamValued(b) {
		return types.UnknownQT, false
	}
	equal := a == b
	if op == "!=" {
		equal = !equal
	}
	return types.NewParam(r.Types.Builtins().Bool, types.ParamOfBool(r.Types.Builtins().Bool, equal)), true
}

func isTypeOrParamValued(qt types.QualifiedType) bool {
	return qt.Kind == types.QualType || qt.Kind == types.QualParam
}

// classCtorAnyBound maps a class-management constructor name to the
// generic "any-" bound its bare `?` form yields (step 3, "the ? form
// yields the corresponding Any* generic").
var classCtorAnyBound = map[string]types.Kind{
	"owned": types.KindAnyOwned,
	"shared": types.KindAnyShared,
}

func classManagementFor(name string) (types.Management, bool) {
	switch name {
	case "owned":
		return types.ManageOwned, true
	case "shared":
		return types.ManageShared, true
	case "unmanaged":
		return types.ManageUnmanaged, true
	case "borrowed":
		return types.ManageBorrowed, true
	default:
		return types.ManageUnspecified, false
	}
}

// resolveClassCtor answers step 3's class-management constructors:
// owned(T), shared(T), unmanaged(T), borrowed(T) combine decorators
// and produce a ClassType; the bare `?` form yields the Any* bound
// where one exists (owned/shared only — unmanaged/borrowed have no
// "any-" bound in the lattice, spec.md §4.B).
func (r *Resolver) resolveClassCtor(ctx ExprContext, name string, call *ast.Expr) types.QualifiedType {
	mgmt, _ := classManagementFor(name)
	if len(call.Args) != 1 {
		r.Diags.Report(diag.ResInvalidClassCtor, diag.SevError, call.Span,
			"class management constructor takes exactly one argument", nil, nil)
		return types.NewVar(r.Types.Builtins().Erroneous)
	}

	argNode := r.Tree.Exprs.Get(call.Args[0].Value)
	if argNode != nil && argNode.Kind == ast.ExprQuestion {
		if bound, ok := classCtorAnyBound[name]; ok {
			return types.NewType(r.Types.Intern(types.Type{Kind: bound}))
		}
		r.Diags.Report(diag.ResInvalidClassCtor, diag.SevError, call.Span,
			"this class management has no generic bound form", nil, nil)
		return types.NewVar(r.Types.Builtins().Erroneous)
	}

	arg := r.ResolveExpr(ctx, call.Args[0].Value)
	argTy, ok := r.Types.Lookup(arg.Type)
	if arg.Kind != types.QualType || !ok || argTy.Kind != types.KindClass {
		r.Diags.Report(diag.ResInvalidClassCtor, diag.SevError, call.Span,
			"class management constructor requires a class type argument", nil, nil)
		return types.NewVar(r.Types.Builtins().Erroneous)
	}
	// The constructor call carries no nilability decoration of its own
	// (that comes from a trailing `?` handled by resolveUnaryExpr), so
	// only management is combined here; nilability passes through.
	combinedMgmt, _ := types.CombineDecorators(mgmt, argTy.Management, types.NilUnspecified, argTy.Nilability)
	result := types.MakeClass(argTy.Decl, argTy.Args, combinedMgmt, argTy.Nilability)
	return types.NewType(r.Types.Intern(result))
}

// numericCtorKind maps a primitive constructor's name to its Kind.
func numericCtorKind(name string) (types.Kind, bool) {
	switch name {
	case "int":
		return types.KindInt, true
	case "uint":
		return types.KindUint, true
	case "real":
		return types.KindReal, true
	case "imag":
		return types.KindImag, true
	case "complex":
		return types.KindComplex, true
	default:
		return types.KindInvalid, false
	}
}

// numericCtorAnyBound is the Any* bound a numeric constructor's bare
// `?` form yields.
func numericCtorAnyBound(name string) (types.Kind, bool) {
	switch name {
	case "int":
		return types.KindAnyInt, true
	case "uint":
		return types.KindAnyUint, true
	case "real":
		return types.KindAnyReal, true
	case "imag":
		return types.KindAnyImag, true
	case "complex":
		return types.KindAnyComplex, true
	default:
		return types.KindInvalid, false
	}
}

// resolveNumericCtor answers step 3's primitive type constructors:
// int(w)/uint(w)/real(w)/imag(w)/complex(w) with width in [0, 128];
// int(?) and int(?t) yield the generic bound. A named type-query
// (`int(?t)`) cannot bind `t` back into the caller's scope without
// the two-pass type-query re-visit instantiate.go documents as not
// performed, so it is accepted syntactically and treated like the bare
// `?` form.
func (r *Resolver) resolveNumericCtor(ctx ExprContext, name string, call *ast.Expr) types.QualifiedType {
	kind, _ := numericCtorKind(name)
	if len(call.Args) == 0 {
		return types.NewType(r.Types.Intern(types.Type{Kind: kind}))
	}
	if len(call.Args) != 1 {
		r.Diags.Report(diag.ResInvalidNumericWidth, diag.SevError, call.Span,
			"numeric type constructor takes at most one width argument", nil, nil)
		return types.NewVar(r.Types.Builtins().Erroneous)
	}

	argNode := r.Tree.Exprs.Get(call.Args[0].Value)
	if argNode != nil && argNode.Kind == ast.ExprQuestion {
		bound, _ := numericCtorAnyBound(name)
		return types.NewType(r.Types.Intern(types.Type{Kind: bound}))
	}

	width, ok := r.constWidthFromExpr(call.Args[0].Value)
	if !ok || !types.ValidNumericWidth(width) {
		r.Diags.Report(diag.ResInvalidNumericWidth, diag.SevError, call.Span,
			"numeric type constructor width must be a param int in [0, 128]", nil, nil)
		return types.NewVar(r.Types.Builtins().Erroneous)
	}
	return types.NewType(r.Types.Intern(types.Type{Kind: kind, Width: width}))
}

// constWidthFromExpr recovers a numeric literal's raw compile-time
// value, bypassing exprType's QualVar-only fold: a type constructor's
// width argument is read as data, not typed as an ordinary
// expression. Returns false for anything that is not a plain integer
// literal (a param-bound identifier would need the type-query
// machinery this resolver defers).
func (r *Resolver) constWidthFromExpr(id ast.ExprID) (types.Width, bool) {
	e := r.Tree.Exprs.Get(id)
	if e == nil || e.Kind != ast.ExprLiteral {
		return 0, false
	}
	switch e.LiteralKind {
	case ast.LiteralInt:
		if e.IntVal < 0 || e.IntVal > 128 {
			return 0, false
		}
		return types.Width(e.IntVal), true
	case ast.LiteralUint:
		if e.UintVal > 128 {
			return 0, false
		}
		return types.Width(e.UintVal), true
	default:
		return 0, false
	}
}

// resolveCPointerCtor answers step 3's c_ptr(T) and its bare `?`
// generic form.
func (r *Resolver) resolveCPointerCtor(ctx ExprContext, call *ast.Expr) types.QualifiedType {
	if len(call.Args) != 1 {
		r.Diags.Report(diag.ResInvalidPointerCtor, diag.SevError, call.Span,
			"c_ptr takes exactly one argument", nil, nil)
		return types.NewVar(r.Types.Builtins().Erroneous)
	}
	argNode := r.Tree.Exprs.Get(call.Args[0].Value)
	if argNode != nil && argNode.Kind == ast.ExprQuestion {
		return types.NewType(r.Types.Intern(types.Type{Kind: types.KindCPointer}))
	}
	arg := r.ResolveExpr(ctx, call.Args[0].Value)
	if arg.Kind != types.QualType {
		r.Diags.Report(diag.ResInvalidPointerCtor, diag.SevError, call.Span,
			"c_ptr requires a type argument", nil, nil)
		return types.NewVar(r.Types.Builtins().Erroneous)
	}
	return types.NewType(r.Types.Intern(types.MakeCPointer(arg.Type)))
}

// resolveModuleQualifiedCall implements the domain/atomic rewrites
// (step 3): `domain(args...)` becomes `_domain.static_type(args...)`,
// `atomic(T)` becomes `chpl__atomicType(T)` in the same scope. Both
// route through ordinary §4.G resolution once the target name is
// found; moduleName == "" means "look up funcName directly in scope"
// rather than through a module qualifier.
func (r *Resolver) resolveModuleQualifiedCall(ctx ExprContext, moduleName, funcName string, call *ast.Expr) types.QualifiedType {
	if r.Strings == nil {
		return types.UnknownQT
	}
	funcNameID := r.Strings.Intern(funcName)
	args := r.resolveCallArgs(ctx, call.Args)

	scope := ctx.Scope
	if moduleName != "" {
		modNameID := r.Strings.Intern(moduleName)
		ids := symbols.LookupNameInScopeWithSet(r.Scopes, ctx.Scope, modNameID,
			symbols.LookupDecls|symbols.LookupParents, nil)
		found := false
		for _, id := range ids {
			sym := r.Scopes.Symbol(id)
			if sym == nil || sym.Kind != symbols.SymbolModule {
				continue
			}
			scope = r.Scopes.ScopeForOwner(r.AST.SymbolOf(sym.Decl.Item))
			found = true
			break
		}
		if !found {
			return types.NewVar(r.Types.Builtins().Erroneous)
		}
	}

	res := r.ResolveCall(CallInfo{Name: funcNameID, Args: args, HasParens: true}, scope, ctx.POIScopes, false)
	if res.Best == nil {
		return types.NewVar(r.Types.Builtins().Erroneous)
	}
	return callResultType(res.Best)
}

// resolveTypeConstructorCall answers step 4: if callee names a
// composite type, invoke its type constructor and instantiate it
// against the call's actuals.
func (r *Resolver) resolveTypeConstructorCall(ctx ExprContext, name source.StringID, call *ast.Expr) (types.QualifiedType, bool) {
	ids := symbols.LookupNameInScopeWithSet(r.Scopes, ctx.Scope, name, symbols.LookupDecls|symbols.LookupParents, nil)
	for _, scope := range ctx.POIScopes {
		if len(ids) > 0 {
			break
		}
		ids = symbols.LookupNameInScopeWithSet(r.Scopes, scope, name, symbols.LookupDecls|symbols.LookupParents, nil)
	}
	for _, id := range ids {
		sym := r.Scopes.Symbol(id)
		if sym == nil || sym.Kind != symbols.SymbolComposite {
			continue
		}
		sig := r.TypeConstructorInitial(sym.Decl.Item)
		if sig == nil {
			return types.UnknownQT, true
		}
		args := r.resolveCallArgs(ctx, call.Args)
		instantiated, res := r.InstantiateSignature(sig, args)
		if !res.OK {
			r.Diags.Report(diag.ResInstantiationFailed, diag.SevError, call.Span,
				res.Reason, nil, nil)
			return types.NewVar(r.Types.Builtins().Erroneous), true
		}
		return instantiated.ResultType, true
	}
	return types.UnknownQT, false
}
