package resolve

import (
	"github.com/vela-lang/velac/internal/ast"
	"github.com/vela-lang/velac/internal/diag"
	"github.com/vela-lang/velac/internal/source"
	"github.com/vela-lang/velac/internal/types"
)

// ResolveForwardingExprs answers spec.md §4.D's resolveForwardingExprs:
// the target types of ct's non-field forwardings, in declaration
// order (forwarded fields already appear in FieldsForTypeDecl's own
// field list and are not repeated here).
func (r *Resolver) ResolveForwardingExprs(item ast.ItemID) []types.QualifiedType {
	fields := r.FieldsForTypeDecl(item, PolicyUseDefaults)
	out := make([]types.QualifiedType, 0, len(fields.Forwardings))
	for _, fw := range fields.Forwardings {
		out = append(out, fw.Target)
	}
	return out
}

// CheckForwardingCycles DFS-visits composites reachable through
// forwarding, the way resolution-queries.cpp's checkForwardingCycles
// does: a small visited set keyed by declaration, re-visiting a node
// reports diag.ResForwardingCycle and terminates the walk. It reports
// whether a cycle was found; callers use that to suppress a forwarding
// sweep on ct rather than recurse forever.
func (r *Resolver) CheckForwardingCycles(item ast.ItemID) bool {
	return r.checkForwardingCycles(item, make(map[ast.ItemID]bool, 8))
}

func (r *Resolver) checkForwardingCycles(item ast.ItemID, visited map[ast.ItemID]bool) bool {
	if !r.AST.AggregateUsesForwarding(r.AST.SymbolOf(item)) {
		return false
	}
	if visited[item] {
		span := r.itemSpan(item)
		r.Diags.Report(diag.ResForwardingCycle, diag.SevError, span, "forwarding cycle detected", nil, nil)
		return true
	}
	visited[item] = true

	for _, target := range r.ResolveForwardingExprs(item) {
		if target.IsUnknown() {
			continue
		}
		t, ok := r.Types.Lookup(target.Type)
		if !ok {
			continue
		}
		var targetItem ast.ItemID
		switch t.Kind {
		case types.KindComposite, types.KindClass:
			targetItem = declItem(t.Decl)
		default:
			continue
		}
		if r.checkForwardingCycles(targetItem, visited) {
			return true
		}
	}
	return false
}

func (r *Resolver) itemSpan(item ast.ItemID) source.Span {
	i := r.Tree.Items.Get(item)
	if i == nil {
		return source.Span{}
	}
	return i.Span
}
