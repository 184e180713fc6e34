package resolve

import (
	"github.com/vela-lang/velac/internal/ast"
	"github.com/vela-lang/velac/internal/query"
	"github.com/vela-lang/velac/internal/source"
	"github.com/vela-lang/velac/internal/types"
)

// DefaultsPolicy selects how fieldsForTypeDecl treats declared default
// initializers when resolving a composite's field types (spec.md §4.D).
type DefaultsPolicy uint8

const (
	// PolicyIgnoreDefaults treats every default initializer as absent;
	// a field with no declared type is generic.
	PolicyIgnoreDefaults DefaultsPolicy = iota
	// PolicyUseDefaultsOtherFields resolves field f's type using every
	// other field's default but never f's own, so f's genericity never
	// depends transitively on its own default expression.
	PolicyUseDefaultsOtherFields
	// PolicyUseDefaults resolves every field's type with all defaults
	// available, including the field's own.
	PolicyUseDefaults
)

// ResolvedField is one entry of ResolvedFields.
type ResolvedField struct {
	Name          source.StringID
	HasDefault    bool
	Decl          ast.FieldID
	QualifiedType types.QualifiedType
}

// ResolvedForwarding is one forwarding clause's resolved target type,
// in declaration order.
type ResolvedForwarding struct {
	Decl   ast.ForwardingID
	Target types.QualifiedType
}

// ResolvedFields is fieldsForTypeDecl's result: the ordered field
// list, the ordered forwarding-target list, and the summary genericity
// flags §4.C step 6 folds over without re-walking every field.
type ResolvedFields struct {
	Fields                []ResolvedField
	Forwardings           []ResolvedForwarding
	IsGeneric             bool
	IsGenericWithDefaults bool
}

const fieldsQuery = "resolve.fieldsForTypeDecl"

type fieldsKey struct {
	item   ast.ItemID
	policy DefaultsPolicy
}

// FieldsForTypeDecl answers spec.md §4.D's public entry point.
// USE_DEFAULTS callers are first served a USE_DEFAULTS_OTHER_FIELDS
// answer; only when that answer is generic-with-defaults does the
// engine recompute under the caller's actual policy, so the far more
// common OTHER_FIELDS callers (genericity analysis, most
// type-constructor candidate checks) share one memoized result.
func (r *Resolver) FieldsForTypeDecl(item ast.ItemID, policy DefaultsPolicy) ResolvedFields {
	if policy == PolicyIgnoreDefaults {
		return r.fieldsForTypeDecl(item, PolicyIgnoreDefaults)
	}
	other := r.fieldsForTypeDecl(item, PolicyUseDefaultsOtherFields)
	if policy == PolicyUseDefaultsOtherFields || !other.IsGenericWithDefaults {
		return other
	}
	return r.fieldsForTypeDecl(item, PolicyUseDefaults)
}

func (r *Resolver) fieldsForTypeDecl(item ast.ItemID, policy DefaultsPolicy) ResolvedFields {
	key := fieldsKey{item: item, policy: policy}
	if r.Ctx.IsRunning(fieldsQuery, key) {
		// Step 5 (via genericity's caller): this composite's own field
		// resolution is already on the stack. Report an empty, concrete
		// answer rather than recursing forever.
		return ResolvedFields{}
	}
	return query.Run(r.Ctx, fieldsQuery, key, func() ResolvedFields {
		return r.computeFields(item, policy)
	})
}

func (r *Resolver) computeFields(item ast.ItemID, policy DefaultsPolicy) ResolvedFields {
	c, ok := r.Tree.Items.Composite(item)
	if !ok {
		return ResolvedFields{}
	}
	scope := r.Scopes.ScopeForOwner(r.AST.SymbolOf(item))

	var out ResolvedFields
	combined := types.Concrete

	// Step 4: a basic class with a parent recurses into the parent
	// first, so inherited fields precede this decl's own in the
	// ordered list and its genericity folds in ahead of local fields.
	if c.Shape == ast.ShapeClass && c.ParentClass != ast.NoTypeExprID {
		if parentQT := r.EvalTypeExpr(scope, c.ParentClass); !parentQT.IsUnknown() {
			if parentType, ok := r.Types.Lookup(parentQT.Type); ok && parentType.Kind == types.KindClass {
				parent := r.FieldsForTypeDecl(declItem(parentType.Decl), policy)
				out.Fields = append(out.Fields, parent.Fields...)
				out.Forwardings = append(out.Forwardings, parent.Forwardings...)
				switch {
				case parent.IsGeneric:
					combined = types.Generic
				case parent.IsGenericWithDefaults:
					combined = types.GenericWithDefaults
				}
			}
		}
	}

	// USE_DEFAULTS_OTHER_FIELDS still forbids a field from resolving
	// its own type off its own default (that would make its genericity
	// depend on itself); only PolicyUseDefaults allows that fallback.
	useOwnDefault := policy == PolicyUseDefaults

	for _, fid := range c.Fields {
		f := r.Tree.Items.Field(fid)
		if f == nil {
			continue
		}
		hasDefault := f.Default != ast.NoExprID

		var qt types.QualifiedType
		switch {
		case f.TypeExpr != ast.NoTypeExprID:
			qt = r.EvalTypeExpr(scope, f.TypeExpr)
		case hasDefault && useOwnDefault:
			qt = r.exprType(f.Default)
		default:
			qt = types.UnknownQT
		}

		combined = types.Combine(combined, r.fieldGenericity(qt))
		out.Fields = append(out.Fields, ResolvedField{
			Name:          f.Name,
			HasDefault:    hasDefault,
			Decl:          fid,
			QualifiedType: qt,
		})
	}

	for _, fwid := range c.Forwardings {
		fw := r.Tree.Items.Forwarding(fwid)
		if fw == nil {
			continue
		}
		var target types.QualifiedType
		if fw.Target != ast.NoTypeExprID {
			target = r.EvalTypeExpr(scope, fw.Target)
		} else {
			target = r.exprType(fw.Expr)
		}
		out.Forwardings = append(out.Forwardings, ResolvedForwarding{Decl: fwid, Target: target})
	}

	out.IsGeneric = combined == types.Generic
	out.IsGenericWithDefaults = combined == types.GenericWithDefaults
	return out
}

func (r *Resolver) fieldGenericity(qt types.QualifiedType) types.Genericity {
	if qt.IsUnknown() {
		return types.Generic
	}
	return r.Genericity(qt.Type, nil)
}

// exprType covers the one expression shape fields.go needs standing
// on its own: a literal default value. General expression typing
// (calls, member access, idents) is the call-resolution driver's job
// (§4.H) and is not reachable from field-default position without it.
func (r *Resolver) exprType(id ast.ExprID) types.QualifiedType {
	e := r.Tree.Exprs.Get(id)
	if e == nil || e.Kind != ast.ExprLiteral {
		return types.UnknownQT
	}
	switch e.LiteralKind {
	case ast.LiteralBool:
		return types.NewVar(r.Types.Intern(types.MakeBool()))
	case ast.LiteralInt:
		return types.NewVar(r.Types.Intern(types.MakeInt(types.Width64)))
	case ast.LiteralUint:
		return types.NewVar(r.Types.Intern(types.MakeUint(types.Width64)))
	case ast.LiteralReal:
		return types.NewVar(r.Types.Intern(types.MakeReal(types.Width64)))
	case ast.LiteralString:
		return types.NewVar(r.Types.Intern(types.MakeString()))
	default:
		return types.UnknownQT
	}
}
