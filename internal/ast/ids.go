package ast

// SymbolID identifies a declaration that owns its own post-order
// traversal sequence: a module, a function (including nested
// functions), or a composite type. Resolution results are indexed by
// (SymbolID, post-order index) per spec.md §3's ResolutionResultByPostorderID.
type SymbolID uint32

const NoSymbolID SymbolID = 0

// ID is the stable handle into the AST described in spec.md §3: a
// symbol path plus a post-order index within that symbol's traversal,
// plus the subtree's child count so a caller can copy a contiguous
// range of resolved expressions (e.g. when instantiating a generic
// body under a new POI scope).
type ID struct {
	Symbol     SymbolID
	PostOrder  uint32
	ChildCount uint32
}

// NoID is the zero handle; no real node is ever assigned it because
// post-order numbering starts at 1.
var NoID = ID{}

func (id ID) IsValid() bool { return id.Symbol != NoSymbolID && id.PostOrder != 0 }

func (id ID) ParentSymbolID() SymbolID { return id.Symbol }

func (id ID) PostOrderID() uint32 { return id.PostOrder }

// Tag classifies what kind of node an ID resolves to, mirroring the
// "AST tag of the declaring construct" spec.md §3 attaches to
// UntypedFnSignature.
type Tag uint8

const (
	TagInvalid Tag = iota
	TagModule
	TagFunction
	TagFormal
	TagComposite
	TagField
	TagForwarding
	TagCallExpr
	TagIdentExpr
	TagLiteralExpr
	TagTupleExpr
	TagMemberExpr
	TagUnaryExpr
	TagTypePath
	TagTypePrimitive
	TagTypeTuple
	TagTypeGenericApply
	TagTypeDecorator
	TagNewExpr
	TagQuestionExpr
)

func (t Tag) String() string {
	switch t {
	case TagModule:
		return "module"
	case TagFunction:
		return "function"
	case TagFormal:
		return "formal"
	case TagComposite:
		return "composite"
	case TagField:
		return "field"
	case TagForwarding:
		return "forwarding"
	case TagCallExpr:
		return "call"
	case TagIdentExpr:
		return "ident"
	case TagLiteralExpr:
		return "literal"
	case TagTupleExpr:
		return "tuple"
	case TagMemberExpr:
		return "member"
	case TagUnaryExpr:
		return "unary"
	case TagTypePath:
		return "type-path"
	case TagTypePrimitive:
		return "type-primitive"
	case TagTypeTuple:
		return "type-tuple"
	case TagTypeGenericApply:
		return "type-generic-apply"
	case TagTypeDecorator:
		return "type-decorator"
	case TagNewExpr:
		return "new"
	case TagQuestionExpr:
		return "question"
	default:
		return "invalid"
	}
}

// Arena-local ID types. Each is 1-based; zero means "absent" so a
// zero-valued struct field reads as "no node" without a separate flag.
type (
	ItemID       uint32
	FormalID     uint32
	FieldID      uint32
	ForwardingID uint32
	ExprID       uint32
	TypeExprID   uint32
)

const (
	NoItemID       ItemID       = 0
	NoFormalID     FormalID     = 0
	NoFieldID      FieldID      = 0
	NoForwardingID ForwardingID = 0
	NoExprID       ExprID       = 0
	NoTypeExprID   TypeExprID   = 0
)
