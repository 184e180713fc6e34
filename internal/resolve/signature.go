package resolve

import (
	"github.com/vela-lang/velac/internal/ast"
	"github.com/vela-lang/velac/internal/diag"
	"github.com/vela-lang/velac/internal/query"
	"github.com/vela-lang/velac/internal/source"
	"github.com/vela-lang/velac/internal/symbols"
	"github.com/vela-lang/velac/internal/types"
)

// ProcKind classifies the declaring construct a signature came from,
// mirroring UntypedFnSignature's "procedure kind" field (spec.md §3).
type ProcKind uint8

const (
	ProcFunction ProcKind = iota
	ProcMethod
	ProcTypeConstructor
	ProcInitializer
)

// FormalDetail is UntypedFnSignature's per-formal entry (spec.md §3).
type FormalDetail struct {
	Name       source.StringID
	HasDefault bool
	DeclAST    ast.FormalID
	IsVarArgs  bool
}

// UntypedFnSignature is the syntactic shape of a callable declaration,
// before any formal type has been evaluated (spec.md §3).
type UntypedFnSignature struct {
	Item                ast.ItemID
	Name                source.StringID
	IsMethod            bool
	IsTypeConstructor   bool
	IsCompilerGenerated bool
	Throws              bool
	Tag                 ast.Tag
	Kind                ProcKind
	Formals             []FormalDetail
	WhereClause         ast.ExprID
}

// WhereResult is the where-clause outcome TypedFnSignature carries.
type WhereResult uint8

const (
	WhereNone WhereResult = iota
	WhereTrue
	WhereFalse
	WhereTBD
)

// TypedFnSignature is UntypedFnSignature plus per-formal resolved
// types and the bookkeeping instantiation needs (spec.md §3). It is
// intended to be treated as immutable once built: instantiate.go
// produces new instances rather than mutating one in place, since a
// TypedFnSignature is "interned by its contents".
type TypedFnSignature struct {
	Untyped            *UntypedFnSignature
	FormalTypes        []types.QualifiedType
	Where              WhereResult
	NeedsInstantiation bool
	InstantiatedFrom   *TypedFnSignature
	ParentFn           *TypedFnSignature
	Substituted        []bool

	// ResultType is the callable's result, where it is known
	// structurally rather than inferred from a body. spec.md §1 names
	// return-type inference for ordinary procs as its own external
	// collaborator not modeled here, so this stays types.UnknownQT for
	// them; a composite's type constructor and a compiler-generated
	// accessor both know their result immediately and fill it in.
	ResultType types.QualifiedType
}

const untypedSignatureQuery = "resolve.untypedSignature"
const typedSignatureInitialQuery = "resolve.typedSignatureInitial"

// UntypedSignatureFor builds the syntactic signature for a function
// item, memoized since the same declaration is visited from many call
// sites once overload resolution starts fanning out.
func (r *Resolver) UntypedSignatureFor(item ast.ItemID) *UntypedFnSignature {
	return query.Run(r.Ctx, untypedSignatureQuery, item, func() *UntypedFnSignature {
		return r.buildUntypedSignature(item)
	})
}

func (r *Resolver) buildUntypedSignature(item ast.ItemID) *UntypedFnSignature {
	fn, ok := r.Tree.Items.Function(item)
	if !ok {
		return nil
	}
	fnItem := r.Tree.Items.Get(item)

	formals := make([]FormalDetail, 0, len(fn.Formals))
	for _, fid := range fn.Formals {
		f := r.Tree.Items.Formal(fid)
		if f == nil {
			continue
		}
		formals = append(formals, FormalDetail{
			Name:       f.Name,
			HasDefault: f.Default != ast.NoExprID,
			DeclAST:    fid,
			IsVarArgs:  f.IsVarArgs,
		})
	}

	kind := ProcFunction
	switch {
	case fn.IsTypeConstructor:
		kind = ProcTypeConstructor
	case fn.IsMethod:
		kind = ProcMethod
	}

	return &UntypedFnSignature{
		Item:                item,
		Name:                fnItem.Name,
		IsMethod:            fn.IsMethod,
		IsTypeConstructor:   fn.IsTypeConstructor,
		IsCompilerGenerated: fn.IsCompilerGenerated,
		Throws:              fn.Throws,
		Tag:                 ast.TagFunction,
		Kind:                kind,
		Formals:             formals,
		WhereClause:         fn.WhereClause,
	}
}

// TypedSignatureInitial answers spec.md §4.E's typedSignatureInitial:
// a TypedFnSignature for a function with no actuals bound yet.
func (r *Resolver) TypedSignatureInitial(item ast.ItemID) *TypedFnSignature {
	return query.Run(r.Ctx, typedSignatureInitialQuery, item, func() *TypedFnSignature {
		return r.computeTypedSignatureInitial(item)
	})
}

func (r *Resolver) computeTypedSignatureInitial(item ast.ItemID) *TypedFnSignature {
	untyped := r.UntypedSignatureFor(item)
	if untyped == nil {
		return nil
	}
	fn, _ := r.Tree.Items.Function(item)
	scope := r.Scopes.ScopeForOwner(r.AST.SymbolOf(item))

	// Step 1: locate the enclosing parent function, if nested, and
	// recursively obtain its typed signature.
	var parentFn *TypedFnSignature
	if fn.NestedParent != ast.NoItemID {
		parentFn = r.TypedSignatureInitial(fn.NestedParent)
	}

	// Step 2: traverse each formal's type and default under a resolver
	// that knows no substitutions yet.
	formalTypes := make([]types.QualifiedType, len(untyped.Formals))
	for i, fd := range untyped.Formals {
		f := r.Tree.Items.Formal(fd.DeclAST)
		if f == nil {
			formalTypes[i] = types.UnknownQT
			continue
		}
		if f.TypeExpr != ast.NoTypeExprID {
			formalTypes[i] = r.EvalTypeExpr(scope, f.TypeExpr)
		} else if f.Default != ast.NoExprID {
			formalTypes[i] = r.exprType(f.Default)
		} else {
			formalTypes[i] = types.UnknownQT
		}
	}

	// Step 3: needsInstantiation iff any formal's qualified type is
	// unknown or non-concrete.
	needsInstantiation := false
	for _, qt := range formalTypes {
		if qt.IsUnknown() {
			needsInstantiation = true
			break
		}
		if r.Genericity(qt.Type, nil) != types.Concrete {
			needsInstantiation = true
			break
		}
	}

	// Step 4: where-clause disposition.
	where := WhereNone
	if untyped.WhereClause != ast.NoExprID {
		switch {
		case needsInstantiation:
			where = WhereTBD
		default:
			where = r.evalWhereClause(untyped.WhereClause)
		}
	}

	// Step 5: a paren-less method whose name collides with a field on
	// the receiver type is an error. The receiver is formal 0 for a
	// method; its type names the composite whose fields we check.
	if untyped.IsMethod && r.AST.IsParenlessFunction(r.AST.SymbolOf(item)) && len(formalTypes) > 0 {
		r.checkParenlessFieldCollision(item, untyped, formalTypes[0])
	}

	return &TypedFnSignature{
		Untyped:            untyped,
		FormalTypes:        formalTypes,
		Where:              where,
		NeedsInstantiation: needsInstantiation,
		ParentFn:           parentFn,
		Substituted:        make([]bool, len(formalTypes)),
		ResultType:         types.UnknownQT,
	}
}

func (r *Resolver) checkParenlessFieldCollision(item ast.ItemID, untyped *UntypedFnSignature, receiver types.QualifiedType) {
	if receiver.IsUnknown() {
		return
	}
	t, ok := r.Types.Lookup(receiver.Type)
	if !ok {
		return
	}
	var receiverItem ast.ItemID
	switch t.Kind {
	case types.KindComposite, types.KindClass:
		receiverItem = declItem(t.Decl)
	default:
		return
	}
	if _, found := r.Tree.Items.ContainsFieldWithName(receiverItem, untyped.Name); found {
		fnItem := r.Tree.Items.Get(item)
		span := source.Span{}
		if fnItem != nil {
			span = fnItem.Span
		}
		r.Diags.Report(diag.ResParenlessFieldConflict, diag.SevError, span,
			"parenless method name collides with a field of the same name", nil, nil)
	}
}

// evalWhereClause traverses a where-clause expression under a
// resolver with no substitutions yet, folding boolean literals and
// their negation into a param bool. Anything else (a call, a
// comparison chain) is genuinely a call.go concern (§4.H's expression
// evaluation) and is reported as `tbd` here rather than guessed at.
func (r *Resolver) evalWhereClause(id ast.ExprID) WhereResult {
	e := r.Tree.Exprs.Get(id)
	if e == nil {
		return WhereTBD
	}
	switch e.Kind {
	case ast.ExprLiteral:
		if e.LiteralKind != ast.LiteralBool {
			r.Diags.Report(diag.ResWhereClauseNotBool, diag.SevError, e.Span,
				"where clause must be a param bool expression", nil, nil)
			return WhereTBD
		}
		if e.BoolValue {
			return WhereTrue
		}
		return WhereFalse
	case ast.ExprUnary:
		if e.Op != "!" {
			return WhereTBD
		}
		inner := r.evalWhereClause(e.Operand)
		switch inner {
		case WhereTrue:
			return WhereFalse
		case WhereFalse:
			return WhereTrue
		default:
			return inner
		}
	default:
		return WhereTBD
	}
}

// shouldIncludeFieldInTypeConstructor answers spec.md §4.E's
// predicate: a field appears in a composite's type-constructor
// signature iff it is `type`, `param` without a value, or a value
// field whose declared type is generic and which has no initializer.
func (r *Resolver) shouldIncludeFieldInTypeConstructor(scope symbols.ScopeID, f *ast.Field) bool {
	hasInit := f.Default != ast.NoExprID
	if f.TypeExpr == ast.NoTypeExprID {
		return !hasInit
	}
	qt := r.EvalTypeExpr(scope, f.TypeExpr)
	switch qt.Kind {
	case types.QualType, types.QualParam:
		return !hasInit
	default:
		if qt.IsUnknown() {
			return !hasInit
		}
		return !hasInit && r.Genericity(qt.Type, nil) != types.Concrete
	}
}

// TypeConstructorInitial answers spec.md §4.E's typeConstructorInitial:
// an analogous signature whose formals are the composite's generic
// fields, chosen by shouldIncludeFieldInTypeConstructor. Untyped,
// uninitialized value fields enter as `type: AnyType`, represented
// here by the unknown-type sentinel wrapped in a `type` qualified kind
// since this repo has no dedicated AnyType constant.
func (r *Resolver) TypeConstructorInitial(item ast.ItemID) *TypedFnSignature {
	c, ok := r.Tree.Items.Composite(item)
	if !ok {
		return nil
	}
	itemInfo := r.Tree.Items.Get(item)
	scope := r.Scopes.ScopeForOwner(r.AST.SymbolOf(item))

	var formals []FormalDetail
	var formalTypes []types.QualifiedType
	for _, fid := range c.Fields {
		f := r.Tree.Items.Field(fid)
		if f == nil || !r.shouldIncludeFieldInTypeConstructor(scope, f) {
			continue
		}
		formals = append(formals, FormalDetail{Name: f.Name, HasDefault: f.Default != ast.NoExprID, DeclAST: ast.NoFormalID})
		if f.TypeExpr != ast.NoTypeExprID {
			formalTypes = append(formalTypes, types.NewType(r.EvalTypeExpr(scope, f.TypeExpr).Type))
		} else {
			formalTypes = append(formalTypes, types.NewType(r.Types.Builtins().Unknown))
		}
	}

	untyped := &UntypedFnSignature{
		Item:              item,
		Name:              itemInfo.Name,
		IsTypeConstructor: true,
		Tag:               ast.TagComposite,
		Kind:              ProcTypeConstructor,
		Formals:           formals,
	}
	needsInstantiation := len(formalTypes) > 0
	return &TypedFnSignature{
		Untyped:            untyped,
		FormalTypes:        formalTypes,
		Where:              WhereNone,
		NeedsInstantiation: needsInstantiation,
		Substituted:        make([]bool, len(formalTypes)),
		ResultType:         types.NewType(r.declType(item, types.NoArgsID)),
	}
}
