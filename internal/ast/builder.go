package ast

// Hints sizes the arenas' initial capacity; zero fields fall back to
// small defaults, since test ASTs built with Builder are typically a
// handful of nodes.
type Hints struct{ Items, Exprs, TypeExprs int }

// Builder assembles a Tree one declaration at a time. Production
// callers get their tree from the external AST provider (spec.md §1
// treats the parser/AST provider as an out-of-scope collaborator);
// Builder exists so internal/resolve's tests can construct small,
// realistic trees without a parser.
type Builder struct {
	Items     *Items
	Exprs     *Exprs
	TypeExprs *TypeExprs
}

func NewBuilder(h Hints) *Builder {
	if h.Items == 0 {
		h.Items = 64
	}
	if h.Exprs == 0 {
		h.Exprs = 128
	}
	if h.TypeExprs == 0 {
		h.TypeExprs = 128
	}
	return &Builder{
		Items:     NewItems(h.Items),
		Exprs:     NewExprs(h.Exprs),
		TypeExprs: NewTypeExprs(h.TypeExprs),
	}
}

// Build finalizes the builder into an immutable Tree. Called once
// construction is finished; NewProvider builds a Provider over it.
func (b *Builder) Build() *Tree {
	return &Tree{Items: b.Items, Exprs: b.Exprs, TypeExprs: b.TypeExprs}
}
