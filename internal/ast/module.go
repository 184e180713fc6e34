package ast

import "github.com/vela-lang/velac/internal/source"

// ModuleItem holds a module's direct member items. Bundled marks a
// "bundled" module per spec.md §6's idIsInBundledModule: a module
// whose contents are visible to its enclosing module without an
// explicit `use`, mirroring Chapel-family "bundled" modules.
type ModuleItem struct {
	Bundled bool
	Body    []ItemID
}

func (i *Items) NewModule(name source.StringID, bundled bool, span source.Span) ItemID {
	payload := i.Modules.Allocate(ModuleItem{Bundled: bundled})
	return ItemID(i.Arena.Allocate(Item{
		Kind:    ItemModule,
		Name:    name,
		Payload: payload,
		Span:    span,
	}))
}

func (i *Items) Module(id ItemID) (*ModuleItem, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemModule {
		return nil, false
	}
	return i.Modules.Get(item.Payload), true
}

// AddMember appends a child item to a module and records the parent
// link used by parentAst / idToParentId.
func (i *Items) AddMember(parent ItemID, child ItemID) {
	mod, ok := i.Module(parent)
	if !ok {
		return
	}
	mod.Body = append(mod.Body, child)
	if childItem := i.Get(child); childItem != nil {
		childItem.Parent = parent
	}
}
