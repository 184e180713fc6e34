package ast

import (
	"github.com/vela-lang/velac/internal/source"
	"github.com/vela-lang/velac/internal/types"
)

// TypeExprKind enumerates the syntactic type-expression shapes
// internal/resolve's signature construction (spec.md §4.E) evaluates
// into internal/types.QualifiedType values.
type TypeExprKind uint8

const (
	TypeExprInvalid TypeExprKind = iota
	TypeExprPath         // a bare name, e.g. `MyRecord`
	TypeExprPrimitive    // `int(32)`, `real`, `uint(?)` — width is explicit syntax, not a nested type
	TypeExprTuple        // `(T, U)` or `*(T, U)` (star tuple)
	TypeExprGenericApply // `List(int)`
	TypeExprDecorator    // `owned MyClass?`, `borrowed MyClass`
)

// TypeExpr is a single type-expression node. Path carries Name;
// Primitive carries PrimitiveKind + Width (WidthAny for the `?`-width
// generic form); GenericApply carries Base + Args; Tuple carries Args
// (+ Star); Decorator carries Base plus the management/nilability
// tokens spelled at the use site (spec.md §4.B).
type TypeExpr struct {
	Kind          TypeExprKind
	Name          source.StringID
	PrimitiveKind types.Kind
	Width         types.Width
	Base          TypeExprID
	Args          []TypeExprID
	Star          bool
	Management    types.Management
	Nilability    types.Nilability
	Span          source.Span
}

type TypeExprs struct {
	Arena *Arena[TypeExpr]
}

func NewTypeExprs(capHint int) *TypeExprs { return &TypeExprs{Arena: NewArena[TypeExpr](capHint)} }

func (t *TypeExprs) New(te TypeExpr) TypeExprID { return TypeExprID(t.Arena.Allocate(te)) }

func (t *TypeExprs) Get(id TypeExprID) *TypeExpr { return t.Arena.Get(uint32(id)) }

func (t *TypeExprs) NewPath(name source.StringID, span source.Span) TypeExprID {
	return t.New(TypeExpr{Kind: TypeExprPath, Name: name, Span: span})
}

func (t *TypeExprs) NewPrimitive(kind types.Kind, width types.Width, span source.Span) TypeExprID {
	return t.New(TypeExpr{Kind: TypeExprPrimitive, PrimitiveKind: kind, Width: width, Span: span})
}

func (t *TypeExprs) NewTuple(elems []TypeExprID, star bool, span source.Span) TypeExprID {
	return t.New(TypeExpr{Kind: TypeExprTuple, Args: append([]TypeExprID(nil), elems...), Star: star, Span: span})
}

func (t *TypeExprs) NewGenericApply(base TypeExprID, args []TypeExprID, span source.Span) TypeExprID {
	return t.New(TypeExpr{Kind: TypeExprGenericApply, Base: base, Args: append([]TypeExprID(nil), args...), Span: span})
}

func (t *TypeExprs) NewDecorator(base TypeExprID, mgmt types.Management, nilab types.Nilability, span source.Span) TypeExprID {
	return t.New(TypeExpr{Kind: TypeExprDecorator, Base: base, Management: mgmt, Nilability: nilab, Span: span})
}

func (t *TypeExprs) Tag(id TypeExprID) Tag {
	te := t.Get(id)
	if te == nil {
		return TagInvalid
	}
	switch te.Kind {
	case TypeExprPath:
		return TagTypePath
	case TypeExprPrimitive:
		return TagTypePrimitive
	case TypeExprTuple:
		return TagTypeTuple
	case TypeExprGenericApply:
		return TagTypeGenericApply
	case TypeExprDecorator:
		return TagTypeDecorator
	default:
		return TagInvalid
	}
}
