package resolve

import (
	"testing"

	"github.com/vela-lang/velac/internal/ast"
	"github.com/vela-lang/velac/internal/diag"
	"github.com/vela-lang/velac/internal/query"
	"github.com/vela-lang/velac/internal/source"
	"github.com/vela-lang/velac/internal/symbols"
	"github.com/vela-lang/velac/internal/types"
)

// buildForwardingPair builds two record composites, a forwarding to b
// (and, when cyclic, b forwarding back to a), both named so
// EvalTypeExpr's path lookup resolves them through the shared module
// scope regardless of declaration order.
func buildForwardingPair(t *testing.T, cyclic bool) (*Resolver, ast.ItemID, ast.ItemID) {
	t.Helper()
	b := ast.NewBuilder(ast.Hints{})
	sp := source.Span{}

	nameA := source.StringID(1)
	nameB := source.StringID(2)

	bTypeExpr := b.TypeExprs.NewPath(nameB, sp)
	fwdAtoB := b.Items.NewForwarding(bTypeExpr, ast.NoExprID, sp)
	aItem := b.Items.NewComposite(nameA, ast.CompositeItem{Forwardings: []ast.ForwardingID{fwdAtoB}}, sp)

	bComposite := ast.CompositeItem{}
	if cyclic {
		aTypeExpr := b.TypeExprs.NewPath(nameA, sp)
		fwdBtoA := b.Items.NewForwarding(aTypeExpr, ast.NoExprID, sp)
		bComposite.Forwardings = []ast.ForwardingID{fwdBtoA}
	}
	bItem := b.Items.NewComposite(nameB, bComposite, sp)

	modName := source.StringID(3)
	mod := b.Items.NewModule(modName, false, sp)
	b.Items.AddMember(mod, aItem)
	b.Items.AddMember(mod, bItem)

	tree := b.Build()
	ap := ast.NewProvider(tree, []ast.ItemID{mod})
	scopes := symbols.Build(tree, ap, []ast.ItemID{mod})
	r := NewResolver(query.NewContext(), types.NewInterner(), tree, ap, scopes, &recordingReporter{})
	return r, aItem, bItem
}

func TestResolveForwardingExprsFindsTarget(t *testing.T) {
	r, aItem, bItem := buildForwardingPair(t, false)

	targets := r.ResolveForwardingExprs(aItem)
	if len(targets) != 1 {
		t.Fatalf("expected one forwarding target, got %d", len(targets))
	}
	target, ok := r.Types.Lookup(targets[0].Type)
	if !ok || target.Kind != types.KindComposite {
		t.Fatalf("expected forwarding target to resolve to a composite type, got %+v", target)
	}
	if declItem(target.Decl) != bItem {
		t.Fatalf("expected forwarding target to be b's declaration")
	}
}

func TestCheckForwardingCyclesNoCycle(t *testing.T) {
	r, aItem, _ := buildForwardingPair(t, false)

	if r.CheckForwardingCycles(aItem) {
		t.Fatalf("a -> b with no cycle back to a should not report a cycle")
	}
	reporter := r.Diags.(*recordingReporter)
	if reporter.has(diag.ResForwardingCycle) {
		t.Fatalf("no cycle diagnostic expected, got %v", reporter.codes)
	}
}

func TestCheckForwardingCyclesDetectsCycle(t *testing.T) {
	r, aItem, _ := buildForwardingPair(t, true)

	if !r.CheckForwardingCycles(aItem) {
		t.Fatalf("a -> b -> a should report a cycle")
	}
	reporter := r.Diags.(*recordingReporter)
	if !reporter.has(diag.ResForwardingCycle) {
		t.Fatalf("expected a ResForwardingCycle diagnostic, got %v", reporter.codes)
	}
}
