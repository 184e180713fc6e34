package ast

import "github.com/vela-lang/velac/internal/source"

// NodeRef is a tagged reference into one of the per-kind arenas.
// idToAst resolves an ID to one of these; callers switch on Tag to
// know which field is populated.
type NodeRef struct {
	Tag        Tag
	Item       ItemID
	Formal     FormalID
	Field      FieldID
	Forwarding ForwardingID
	Expr       ExprID
	TypeExpr   TypeExprID
	Span       source.Span
}

// Tree is the finished, immutable output of a Builder: every arena a
// Provider needs to answer the spec.md §6 AST-provider surface.
type Tree struct {
	Items     *Items
	Exprs     *Exprs
	TypeExprs *TypeExprs
}

type symbolInfo struct {
	owner    ItemID // the Function/Composite/Module item this symbol numbers
	postorder []NodeRef
	parent   []uint32 // 1-based index into postorder, 0 = no parent within this symbol
	children []uint32 // count of proper descendants, for the copy-range invariant
}

// Provider answers the exact AST-provider surface spec.md §6 and §3
// name: idToAst, idToTag, idToParentId, parentAst,
// aggregateUsesForwarding, idIsParenlessFunction, idIsField,
// idContainsFieldWithName, idIsInBundledModule. It is built once, over
// a finished Tree, by post-order-numbering every function body,
// composite body, and module body into its own symbol space.
type Provider struct {
	tree     *Tree
	symbolOf map[ItemID]SymbolID
	symbols  map[SymbolID]*symbolInfo
	next     SymbolID
}

// NewProvider builds a Provider over tree, treating roots as the
// top-level module items to number.
func NewProvider(tree *Tree, roots []ItemID) *Provider {
	p := &Provider{
		tree:     tree,
		symbolOf: make(map[ItemID]SymbolID),
		symbols:  make(map[SymbolID]*symbolInfo),
		next:     1,
	}
	for _, root := range roots {
		p.numberSymbol(root)
	}
	return p
}

func (p *Provider) allocSymbol(owner ItemID) SymbolID {
	id := p.next
	p.next++
	p.symbolOf[owner] = id
	p.symbols[id] = &symbolInfo{owner: owner}
	return id
}

// numberSymbol assigns a SymbolID to a Function/Composite/Module item
// and, for functions and composites, walks their body into a flat
// post-order array; nested Function/Composite items become their own
// symbols and are treated as leaves from their parent's point of view.
func (p *Provider) numberSymbol(item ItemID) SymbolID {
	sym := p.allocSymbol(item)
	info := p.symbols[sym]

	switch p.tree.Items.Tag(item) {
	case TagModule:
		mod, _ := p.tree.Items.Module(item)
		for _, member := range mod.Body {
			p.appendLeaf(info, NodeRef{Tag: p.tree.Items.Tag(member), Item: member})
			switch p.tree.Items.Tag(member) {
			case TagFunction, TagComposite:
				p.numberSymbol(member)
			}
		}
	case TagFunction:
		fn, _ := p.tree.Items.Function(item)
		for _, fid := range fn.Formals {
			p.walk(info, NodeRef{Tag: TagFormal, Formal: fid})
		}
		if fn.WhereClause != NoExprID {
			p.walk(info, NodeRef{Tag: p.tree.Exprs.Tag(fn.WhereClause), Expr: fn.WhereClause})
		}
		for _, eid := range fn.Body {
			p.walk(info, NodeRef{Tag: p.tree.Exprs.Tag(eid), Expr: eid})
		}
	case TagComposite:
		c, _ := p.tree.Items.Composite(item)
		for _, fid := range c.Fields {
			p.walk(info, NodeRef{Tag: TagField, Field: fid})
		}
		for _, fwd := range c.Forwardings {
			p.walk(info, NodeRef{Tag: TagForwarding, Forwarding: fwd})
		}
	}
	return sym
}

func (p *Provider) appendLeaf(info *symbolInfo, ref NodeRef) {
	info.postorder = append(info.postorder, ref)
	info.parent = append(info.parent, 0)
	info.children = append(info.children, 0)
}

// walk recursively visits ref's children before ref itself (true
// post-order). Each child's parent pointer is only knowable once ref
// itself has been appended, so walk back-patches info.parent for its
// direct children after computing its own final index. It returns
// ref's own 1-based postorder index and its proper-descendant count.
func (p *Provider) walk(info *symbolInfo, ref NodeRef) (selfIndex uint32, descendants uint32) {
	before := len(info.postorder)
	var childIndices []uint32
	for _, child := range p.childrenOf(ref) {
		idx, _ := p.walk(info, child)
		childIndices = append(childIndices, idx)
	}
	descendants = uint32(len(info.postorder) - before)

	info.postorder = append(info.postorder, ref)
	info.parent = append(info.parent, 0)
	info.children = append(info.children, descendants)
	selfIndex = uint32(len(info.postorder))

	for _, ci := range childIndices {
		info.parent[ci-1] = selfIndex
	}
	return selfIndex, descendants
}

func (p *Provider) childrenOf(ref NodeRef) []NodeRef {
	switch ref.Tag {
	case TagFormal:
		f := p.tree.Items.Formal(ref.Formal)
		if f == nil {
			return nil
		}
		var out []NodeRef
		if f.TypeExpr != NoTypeExprID {
			out = append(out, NodeRef{Tag: p.tree.TypeExprs.Tag(f.TypeExpr), TypeExpr: f.TypeExpr})
		}
		if f.Default != NoExprID {
			out = append(out, NodeRef{Tag: p.tree.Exprs.Tag(f.Default), Expr: f.Default})
		}
		return out
	case TagField:
		f := p.tree.Items.Field(ref.Field)
		if f == nil {
			return nil
		}
		var out []NodeRef
		if f.TypeExpr != NoTypeExprID {
			out = append(out, NodeRef{Tag: p.tree.TypeExprs.Tag(f.TypeExpr), TypeExpr: f.TypeExpr})
		}
		if f.Default != NoExprID {
			out = append(out, NodeRef{Tag: p.tree.Exprs.Tag(f.Default), Expr: f.Default})
		}
		return out
	case TagForwarding:
		fwd := p.tree.Items.Forwarding(ref.Forwarding)
		if fwd == nil {
			return nil
		}
		var out []NodeRef
		if fwd.Target != NoTypeExprID {
			out = append(out, NodeRef{Tag: p.tree.TypeExprs.Tag(fwd.Target), TypeExpr: fwd.Target})
		}
		if fwd.Expr != NoExprID {
			out = append(out, NodeRef{Tag: p.tree.Exprs.Tag(fwd.Expr), Expr: fwd.Expr})
		}
		return out
	case TagCallExpr:
		e := p.tree.Exprs.Get(ref.Expr)
		if e == nil {
			return nil
		}
		out := []NodeRef{{Tag: p.tree.Exprs.Tag(e.Callee), Expr: e.Callee}}
		for _, a := range e.Args {
			out = append(out, NodeRef{Tag: p.tree.Exprs.Tag(a.Value), Expr: a.Value})
		}
		return out
	case TagTupleExpr:
		e := p.tree.Exprs.Get(ref.Expr)
		if e == nil {
			return nil
		}
		var out []NodeRef
		for _, el := range e.Elems {
			out = append(out, NodeRef{Tag: p.tree.Exprs.Tag(el), Expr: el})
		}
		return out
	case TagMemberExpr:
		e := p.tree.Exprs.Get(ref.Expr)
		if e == nil {
			return nil
		}
		return []NodeRef{{Tag: p.tree.Exprs.Tag(e.Receiver), Expr: e.Receiver}}
	case TagUnaryExpr:
		e := p.tree.Exprs.Get(ref.Expr)
		if e == nil {
			return nil
		}
		return []NodeRef{{Tag: p.tree.Exprs.Tag(e.Operand), Expr: e.Operand}}
	case TagTypeTuple:
		te := p.tree.TypeExprs.Get(ref.TypeExpr)
		if te == nil {
			return nil
		}
		var out []NodeRef
		for _, a := range te.Args {
			out = append(out, NodeRef{Tag: p.tree.TypeExprs.Tag(a), TypeExpr: a})
		}
		return out
	case TagTypeGenericApply:
		te := p.tree.TypeExprs.Get(ref.TypeExpr)
		if te == nil {
			return nil
		}
		out := []NodeRef{{Tag: p.tree.TypeExprs.Tag(te.Base), TypeExpr: te.Base}}
		for _, a := range te.Args {
			out = append(out, NodeRef{Tag: p.tree.TypeExprs.Tag(a), TypeExpr: a})
		}
		return out
	case TagTypeDecorator:
		te := p.tree.TypeExprs.Get(ref.TypeExpr)
		if te == nil {
			return nil
		}
		return []NodeRef{{Tag: p.tree.TypeExprs.Tag(te.Base), TypeExpr: te.Base}}
	default:
		return nil
	}
}

// NodesOf returns sym's full post-order node sequence, in the exact
// order numberSymbol laid it out. Callers that need to visit every
// node a symbol owns (the body-resolution walker in
// internal/resolve/module.go) use this instead of re-deriving the
// traversal themselves, so the walk order and the ID numbering can
// never drift apart.
func (p *Provider) NodesOf(sym SymbolID) []NodeRef {
	info := p.symbols[sym]
	if info == nil {
		return nil
	}
	return append([]NodeRef(nil), info.postorder...)
}

// SymbolOf returns the SymbolID a Function/Composite/Module item was
// assigned, or NoSymbolID if item was never numbered.
func (p *Provider) SymbolOf(item ItemID) SymbolID {
	return p.symbolOf[item]
}

// IDOf finds the postorder ID a node occupies within a symbol,
// scanning that symbol's flat array. Used by callers that hold a
// NodeRef (e.g. from childrenOf) and need to look up its cached
// ResolvedExpression by ID.
func (p *Provider) IDOf(sym SymbolID, ref NodeRef) (ID, bool) {
	info := p.symbols[sym]
	if info == nil {
		return NoID, false
	}
	for i, n := range info.postorder {
		if n == ref {
			return ID{Symbol: sym, PostOrder: uint32(i + 1), ChildCount: info.children[i]}, true
		}
	}
	return NoID, false
}

// idToAst returns the AST node an ID names.
func (p *Provider) IDToAST(id ID) (NodeRef, bool) {
	info := p.symbols[id.Symbol]
	if info == nil || id.PostOrder == 0 || int(id.PostOrder) > len(info.postorder) {
		return NodeRef{}, false
	}
	return info.postorder[id.PostOrder-1], true
}

// idToTag returns the AST tag of the construct id names.
func (p *Provider) IDToTag(id ID) Tag {
	ref, ok := p.IDToAST(id)
	if !ok {
		return TagInvalid
	}
	return ref.Tag
}

// idToParentId returns id's parent within the same symbol's post-order
// sequence, or NoID at the symbol's root.
func (p *Provider) IDToParentID(id ID) ID {
	info := p.symbols[id.Symbol]
	if info == nil || id.PostOrder == 0 || int(id.PostOrder) > len(info.parent) {
		return NoID
	}
	parentIdx := info.parent[id.PostOrder-1]
	if parentIdx == 0 {
		return NoID
	}
	return ID{Symbol: id.Symbol, PostOrder: parentIdx, ChildCount: info.children[parentIdx-1]}
}

// ParentAST is idToParentId followed by idToAst, exposed separately
// because callers that already have a NodeRef (not an ID) still need
// a way to walk up: given the owning symbol and the node's ID, return
// its parent node directly.
func (p *Provider) ParentAST(id ID) (NodeRef, bool) {
	parent := p.IDToParentID(id)
	if parent == NoID {
		return NodeRef{}, false
	}
	return p.IDToAST(parent)
}

// AggregateUsesForwarding reports whether the composite item owning
// sym declares at least one forwarding clause. It only inspects the
// composite's own declarations; walking a forwarding chain across
// parent classes is internal/resolve's job (spec.md §4.D), which
// calls this once per composite it visits.
func (p *Provider) AggregateUsesForwarding(sym SymbolID) bool {
	info := p.symbols[sym]
	if info == nil {
		return false
	}
	c, ok := p.tree.Items.Composite(info.owner)
	return ok && len(c.Forwardings) > 0
}

// IsParenlessFunction backs idIsParenlessFunction.
func (p *Provider) IsParenlessFunction(sym SymbolID) bool {
	info := p.symbols[sym]
	if info == nil {
		return false
	}
	return p.tree.Items.IsParenlessFunction(info.owner)
}

// IsField backs idIsField: reports whether field belongs to the
// composite owning sym.
func (p *Provider) IsField(sym SymbolID, field FieldID) bool {
	info := p.symbols[sym]
	if info == nil {
		return false
	}
	return p.tree.Items.IsField(info.owner, field)
}

// ContainsFieldWithName backs idContainsFieldWithName.
func (p *Provider) ContainsFieldWithName(sym SymbolID, name source.StringID) (FieldID, bool) {
	info := p.symbols[sym]
	if info == nil {
		return NoFieldID, false
	}
	return p.tree.Items.ContainsFieldWithName(info.owner, name)
}

// IsInBundledModule backs idIsInBundledModule: walks the owner item's
// Parent chain looking for a bundled module.
func (p *Provider) IsInBundledModule(sym SymbolID) bool {
	info := p.symbols[sym]
	if info == nil {
		return false
	}
	item := info.owner
	for item != NoItemID {
		if mod, ok := p.tree.Items.Module(item); ok {
			if mod.Bundled {
				return true
			}
		}
		cur := p.tree.Items.Get(item)
		if cur == nil {
			break
		}
		item = cur.Parent
	}
	return false
}
