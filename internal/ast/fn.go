package ast

import "github.com/vela-lang/velac/internal/source"

// FunctionItem is the untyped shape internal/resolve's signature
// construction (spec.md §4.E) walks to build an UntypedFnSignature:
// enough surface to know whether it is a method, a type constructor,
// parenless, variadic-capable, and whether it nests inside another
// function (NestedParent).
type FunctionItem struct {
	IsMethod           bool
	IsTypeConstructor  bool
	IsCompilerGenerated bool
	IsParenless        bool
	Throws             bool
	Formals            []FormalID
	WhereClause        ExprID
	ReturnType         TypeExprID
	NestedParent       ItemID
	Body               []ExprID
}

// Formal is one entry of UntypedFnSignature's FormalDetail list
// (spec.md §3): a name, whether it carries a default expression, the
// declaring type-expression AST, and whether it collects varargs.
type Formal struct {
	Name       source.StringID
	TypeExpr   TypeExprID
	Default    ExprID
	IsVarArgs  bool
	Span       source.Span
}

func (i *Items) NewFormal(name source.StringID, typeExpr TypeExprID, def ExprID, varArgs bool, span source.Span) FormalID {
	return FormalID(i.Formals.Allocate(Formal{
		Name:      name,
		TypeExpr:  typeExpr,
		Default:   def,
		IsVarArgs: varArgs,
		Span:      span,
	}))
}

func (i *Items) Formal(id FormalID) *Formal { return i.Formals.Get(uint32(id)) }

func (i *Items) NewFunction(name source.StringID, fn FunctionItem, span source.Span) ItemID {
	payload := i.Functions.Allocate(fn)
	return ItemID(i.Arena.Allocate(Item{
		Kind:    ItemFunction,
		Name:    name,
		Payload: payload,
		Span:    span,
	}))
}

func (i *Items) Function(id ItemID) (*FunctionItem, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemFunction {
		return nil, false
	}
	return i.Functions.Get(item.Payload), true
}

// IsParenlessFunction reports whether id names a parenless-function
// item, backing spec.md §6's idIsParenlessFunction provider hook.
func (i *Items) IsParenlessFunction(id ItemID) bool {
	fn, ok := i.Function(id)
	return ok && fn.IsParenless
}
