package ast

import "github.com/vela-lang/velac/internal/source"

// CompositeShape mirrors types.CompositeKind at the syntax level
// (record / union / class body), kept as a distinct type so the ast
// package has no dependency on internal/types.
type CompositeShape uint8

const (
	ShapeRecord CompositeShape = iota
	ShapeUnion
	ShapeClass
)

// CompositeItem is the untyped shape internal/resolve's field and
// forwarding resolution (spec.md §4.D) walks: an ordered field list,
// an ordered forwarding-declaration list, and for classes an optional
// parent-class type expression (spec.md §9 acknowledges only single
// inheritance is resolved end to end).
type CompositeItem struct {
	Shape       CompositeShape
	Fields      []FieldID
	Forwardings []ForwardingID
	ParentClass TypeExprID
}

// Field is one entry of ResolvedFields' input: a name, its declared
// type expression, and an optional default-value expression.
type Field struct {
	Name     source.StringID
	TypeExpr TypeExprID
	Default  ExprID
	Span     source.Span
}

// Forwarding is a `forwarding <expr>;` declaration inside a composite
// body. Target is set when the forwarded member is named directly by
// type (`forwarding this: T`); Expr is set when it forwards a field
// or accessor expression. Exactly one is populated.
type Forwarding struct {
	Target TypeExprID
	Expr   ExprID
	Span   source.Span
}

func (i *Items) NewField(name source.StringID, typeExpr TypeExprID, def ExprID, span source.Span) FieldID {
	return FieldID(i.Fields.Allocate(Field{Name: name, TypeExpr: typeExpr, Default: def, Span: span}))
}

func (i *Items) Field(id FieldID) *Field { return i.Fields.Get(uint32(id)) }

func (i *Items) NewForwarding(target TypeExprID, expr ExprID, span source.Span) ForwardingID {
	return ForwardingID(i.Forwardings.Allocate(Forwarding{Target: target, Expr: expr, Span: span}))
}

func (i *Items) Forwarding(id ForwardingID) *Forwarding { return i.Forwardings.Get(uint32(id)) }

func (i *Items) NewComposite(name source.StringID, c CompositeItem, span source.Span) ItemID {
	payload := i.Composites.Allocate(c)
	return ItemID(i.Arena.Allocate(Item{
		Kind:    ItemComposite,
		Name:    name,
		Payload: payload,
		Span:    span,
	}))
}

func (i *Items) Composite(id ItemID) (*CompositeItem, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemComposite {
		return nil, false
	}
	return i.Composites.Get(item.Payload), true
}

// IsField reports whether id names a field declaration, backing
// spec.md §6's idIsField provider hook. Fields do not have their own
// ItemID in this model (they live in the Fields arena addressed by
// FieldID), so this takes the field's owning composite and index.
func (i *Items) IsField(composite ItemID, field FieldID) bool {
	c, ok := i.Composite(composite)
	if !ok {
		return false
	}
	for _, f := range c.Fields {
		if f == field {
			return true
		}
	}
	return false
}

// ContainsFieldWithName backs spec.md §6's idContainsFieldWithName,
// used by forwarding target resolution to check for field/forwarding
// name conflicts (diag.ResParenlessFieldConflict and friends).
func (i *Items) ContainsFieldWithName(composite ItemID, name source.StringID) (FieldID, bool) {
	c, ok := i.Composite(composite)
	if !ok {
		return NoFieldID, false
	}
	for _, fid := range c.Fields {
		if f := i.Field(fid); f != nil && f.Name == name {
			return fid, true
		}
	}
	return NoFieldID, false
}
