package ast

import "github.com/vela-lang/velac/internal/source"

// ExprKind enumerates the expression shapes the resolution core
// actually inspects. Everything not resolved eagerly (loop bodies,
// assignments, control flow) is out of scope per spec.md §1 and never
// gets its own node here; callers thread opaque ExprID values through
// for anything the core does not need to look inside.
type ExprKind uint8

const (
	ExprInvalid ExprKind = iota
	ExprIdent
	ExprLiteral
	ExprCall
	ExprTuple
	ExprMember
	ExprUnary
	// ExprNew is `new C(...)`: Callee is the constructor call being
	// new'd. A postfix `?` on it (spec.md §4.H step 1) is represented
	// by wrapping this node in an ExprUnary with Op "?".
	ExprNew
	// ExprQuestion is a bare `?` or named `?t` used as a call argument
	// to request a generic bound instead of a concrete instantiation
	// (spec.md §4.H step 3: `int(?)`, `int(?t)`). Name is
	// source.NoStringID for the bare form.
	ExprQuestion
)

// LiteralKind tags what a literal expression's compile-time value
// looks like, feeding Param construction in internal/types.
type LiteralKind uint8

const (
	LiteralNone LiteralKind = iota
	LiteralBool
	LiteralInt
	LiteralUint
	LiteralReal
	LiteralString
)

// Arg is one call-expression actual: a positional actual has an empty
// Name; a named actual (`f(x=1)`) carries it, feeding
// diag.ResNamedArgumentMismatch when a callee has no matching formal.
type Arg struct {
	Name  source.StringID
	Value ExprID
}

// Expr is a single expression node. Only the fields relevant to Kind
// are populated; the rest sit at their zero value.
type Expr struct {
	Kind        ExprKind
	Name        source.StringID // ident / member name
	Callee      ExprID          // call
	Args        []Arg           // call
	Elems       []ExprID        // tuple
	Star        bool            // tuple: `(...)`-style star tuple
	Receiver    ExprID          // member
	Operand     ExprID          // unary
	Op          string          // unary operator spelling, e.g. "!"
	LiteralKind LiteralKind
	BoolValue   bool   // LiteralBool only: the literal's compile-time value
	IntVal      int64  // LiteralInt only
	UintVal     uint64 // LiteralUint only
	Span        source.Span
}

// (ExprNew reuses Callee; ExprQuestion reuses Name for its optional
// type-query variable name, matching the "only relevant fields
// populated" convention above rather than adding dedicated fields.)

type Exprs struct {
	Arena *Arena[Expr]
}

func NewExprs(capHint int) *Exprs { return &Exprs{Arena: NewArena[Expr](capHint)} }

func (e *Exprs) New(expr Expr) ExprID { return ExprID(e.Arena.Allocate(expr)) }

func (e *Exprs) Get(id ExprID) *Expr { return e.Arena.Get(uint32(id)) }

func (e *Exprs) NewIdent(name source.StringID, span source.Span) ExprID {
	return e.New(Expr{Kind: ExprIdent, Name: name, Span: span})
}

func (e *Exprs) NewCall(callee ExprID, args []Arg, span source.Span) ExprID {
	return e.New(Expr{Kind: ExprCall, Callee: callee, Args: append([]Arg(nil), args...), Span: span})
}

func (e *Exprs) NewTuple(elems []ExprID, star bool, span source.Span) ExprID {
	return e.New(Expr{Kind: ExprTuple, Elems: append([]ExprID(nil), elems...), Star: star, Span: span})
}

func (e *Exprs) NewMember(receiver ExprID, name source.StringID, span source.Span) ExprID {
	return e.New(Expr{Kind: ExprMember, Receiver: receiver, Name: name, Span: span})
}

func (e *Exprs) NewUnary(op string, operand ExprID, span source.Span) ExprID {
	return e.New(Expr{Kind: ExprUnary, Op: op, Operand: operand, Span: span})
}

func (e *Exprs) NewNew(call ExprID, span source.Span) ExprID {
	return e.New(Expr{Kind: ExprNew, Callee: call, Span: span})
}

func (e *Exprs) NewQuestion(name source.StringID, span source.Span) ExprID {
	return e.New(Expr{Kind: ExprQuestion, Name: name, Span: span})
}

// Tag maps an expression node to its AST tag.
func (e *Exprs) Tag(id ExprID) Tag {
	expr := e.Get(id)
	if expr == nil {
		return TagInvalid
	}
	switch expr.Kind {
	case ExprIdent:
		return TagIdentExpr
	case ExprLiteral:
		return TagLiteralExpr
	case ExprCall:
		return TagCallExpr
	case ExprTuple:
		return TagTupleExpr
	case ExprMember:
		return TagMemberExpr
	case ExprUnary:
		return TagUnaryExpr
	case ExprNew:
		return TagNewExpr
	case ExprQuestion:
		return TagQuestionExpr
	default:
		return TagInvalid
	}
}
