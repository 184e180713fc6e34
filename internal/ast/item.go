package ast

import "github.com/vela-lang/velac/internal/source"

// ItemKind discriminates the three declaration shapes the resolution
// core needs from the outer AST: modules, functions, and composite
// types. Everything else (imports, use statements, enums beyond their
// declaration id) is out of scope per spec.md §1.
type ItemKind uint8

const (
	ItemInvalid ItemKind = iota
	ItemModule
	ItemFunction
	ItemComposite
)

// Item is the shared envelope for every top-level or nested
// declaration. Kind-specific data lives in the matching payload
// arena, indexed by Payload; the envelope itself carries what every
// caller needs regardless of kind (name, span, lexical parent).
type Item struct {
	Kind    ItemKind
	Name    source.StringID
	Payload uint32
	Parent  ItemID
	Span    source.Span
}

type Items struct {
	Arena       *Arena[Item]
	Modules     *Arena[ModuleItem]
	Functions   *Arena[FunctionItem]
	Composites  *Arena[CompositeItem]
	Formals     *Arena[Formal]
	Fields      *Arena[Field]
	Forwardings *Arena[Forwarding]
}

func NewItems(capHint int) *Items {
	return &Items{
		Arena:       NewArena[Item](capHint),
		Modules:     NewArena[ModuleItem](capHint / 4),
		Functions:   NewArena[FunctionItem](capHint),
		Composites:  NewArena[CompositeItem](capHint / 4),
		Formals:     NewArena[Formal](capHint * 2),
		Fields:      NewArena[Field](capHint * 2),
		Forwardings: NewArena[Forwarding](capHint / 4),
	}
}

func (i *Items) Get(id ItemID) *Item { return i.Arena.Get(uint32(id)) }

// Tag maps an item to the AST tag its declaring construct carries,
// per UntypedFnSignature's "AST tag of the declaring construct" field
// (spec.md §3).
func (i *Items) Tag(id ItemID) Tag {
	item := i.Get(id)
	if item == nil {
		return TagInvalid
	}
	switch item.Kind {
	case ItemModule:
		return TagModule
	case ItemFunction:
		return TagFunction
	case ItemComposite:
		return TagComposite
	default:
		return TagInvalid
	}
}
