package resolve

import (
	"github.com/vela-lang/velac/internal/ast"
	"github.com/vela-lang/velac/internal/symbols"
	"github.com/vela-lang/velac/internal/types"
)

// EvalTypeExpr evaluates a type expression to a QualifiedType with no
// substitutions applied yet (spec.md §4.E step 2: "under a resolver
// that knows no substitutions yet"). Path names resolve through scope
// to a composite declaration; primitive, tuple, generic-apply and
// decorator forms build directly on the interner. Instantiation
// (§4.F) is what later rewrites a generic-apply's Args with concrete
// actuals; this function only establishes the provisional shape field
// and signature resolution both need before any call is in sight.
func (r *Resolver) EvalTypeExpr(scope symbols.ScopeID, te ast.TypeExprID) types.QualifiedType {
	if te == ast.NoTypeExprID {
		return types.UnknownQT
	}
	node := r.Tree.TypeExprs.Get(te)
	if node == nil {
		return types.UnknownQT
	}
	switch node.Kind {
	case ast.TypeExprPath:
		return r.evalPathType(scope, node)
	case ast.TypeExprPrimitive:
		return r.evalPrimitiveType(node)
	case ast.TypeExprTuple:
		return r.evalTupleType(scope, node)
	case ast.TypeExprGenericApply:
		return r.evalGenericApplyType(scope, node)
	case ast.TypeExprDecorator:
		return r.evalDecoratorType(scope, node)
	default:
		return types.UnknownQT
	}
}

func (r *Resolver) evalPathType(scope symbols.ScopeID, node *ast.TypeExpr) types.QualifiedType {
	ids := symbols.LookupNameInScopeWithSet(r.Scopes, scope, node.Name,
		symbols.LookupDecls|symbols.LookupParents, nil)
	for _, id := range ids {
		sym := r.Scopes.Symbol(id)
		if sym == nil || sym.Kind != symbols.SymbolComposite {
			continue
		}
		return types.NewType(r.declType(sym.Decl.Item, types.NoArgsID))
	}
	return types.UnknownQT
}

func (r *Resolver) evalPrimitiveType(node *ast.TypeExpr) types.QualifiedType {
	var t types.Type
	switch node.PrimitiveKind {
	case types.KindBool:
		t = types.MakeBool()
	case types.KindString:
		t = types.MakeString()
	case types.KindBytes:
		t = types.MakeBytes()
	case types.KindCString:
		t = types.MakeCString()
	case types.KindInt:
		t = types.MakeInt(node.Width)
	case types.KindUint:
		t = types.MakeUint(node.Width)
	case types.KindReal:
		t = types.MakeReal(node.Width)
	case types.KindImag:
		t = types.MakeImag(node.Width)
	case types.KindComplex:
		t = types.MakeComplex(node.Width)
	default:
		return types.UnknownQT
	}
	return types.NewType(r.Types.Intern(t))
}

func (r *Resolver) evalTupleType(scope symbols.ScopeID, node *ast.TypeExpr) types.QualifiedType {
	elems := make([]types.TypeID, 0, len(node.Args))
	for _, a := range node.Args {
		elems = append(elems, r.EvalTypeExpr(scope, a).Type)
	}
	info := types.TupleInfo{Elems: r.Types.InternArgs(elems), Star: node.Star}
	return types.NewType(r.Types.InternTuple(info))
}

func (r *Resolver) evalGenericApplyType(scope symbols.ScopeID, node *ast.TypeExpr) types.QualifiedType {
	base := r.EvalTypeExpr(scope, node.Base)
	if base.IsUnknown() {
		return types.UnknownQT
	}
	baseType, ok := r.Types.Lookup(base.Type)
	if !ok {
		return types.UnknownQT
	}
	args := make([]types.TypeID, 0, len(node.Args))
	for _, a := range node.Args {
		args = append(args, r.EvalTypeExpr(scope, a).Type)
	}
	argsID := r.Types.InternArgs(args)
	switch baseType.Kind {
	case types.KindComposite:
		return types.NewType(r.Types.Intern(types.MakeComposite(baseType.CompositeKind, baseType.Decl, argsID)))
	case types.KindClass:
		return types.NewType(r.Types.Intern(types.MakeClass(baseType.Decl, argsID, baseType.Management, baseType.Nilability)))
	default:
		return types.UnknownQT
	}
}

func (r *Resolver) evalDecoratorType(scope symbols.ScopeID, node *ast.TypeExpr) types.QualifiedType {
	base := r.EvalTypeExpr(scope, node.Base)
	baseType, ok := r.Types.Lookup(base.Type)
	if !ok {
		return types.UnknownQT
	}
	mgmt, nilab := types.CombineDecorators(node.Management, baseType.Management, node.Nilability, baseType.Nilability)
	return types.NewType(r.Types.Intern(baseType.WithDecorator(mgmt, nilab)))
}

// declType interns the nominal type a composite declaration names,
// with args as its generic instantiation actuals (NoArgsID for the
// bare, uninstantiated declaration).
func (r *Resolver) declType(item ast.ItemID, args types.ArgsID) types.TypeID {
	c, ok := r.Tree.Items.Composite(item)
	if !ok {
		return r.Types.Builtins().Erroneous
	}
	decl := declOf(item)
	switch c.Shape {
	case ast.ShapeClass:
		return r.Types.Intern(types.MakeClass(decl, args, types.ManageUnspecified, types.NilUnspecified))
	case ast.ShapeUnion:
		return r.Types.Intern(types.MakeComposite(types.CompositeUnion, decl, args))
	default:
		return r.Types.Intern(types.MakeComposite(types.CompositeRecord, decl, args))
	}
}
