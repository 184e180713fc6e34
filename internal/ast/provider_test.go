package ast

import (
	"testing"

	"github.com/vela-lang/velac/internal/source"
)

func TestProviderPostOrderAndChildCount(t *testing.T) {
	b := NewBuilder(Hints{})
	sp := source.Span{}

	name := source.StringID(1)
	arg := b.Exprs.NewIdent(source.StringID(2), sp)
	call := b.Exprs.NewCall(b.Exprs.NewIdent(source.StringID(3), sp), []Arg{{Value: arg}}, sp)

	fn := b.Items.NewFunction(name, FunctionItem{Body: []ExprID{call}}, sp)
	mod := b.Items.NewModule(source.StringID(4), false, sp)
	b.Items.AddMember(mod, fn)

	tree := b.Build()
	p := NewProvider(tree, []ItemID{mod})

	fnSym := p.SymbolOf(fn)
	if fnSym == NoSymbolID {
		t.Fatalf("expected function to be numbered as a symbol")
	}

	callRef, found := p.IDOf(fnSym, NodeRef{Tag: TagCallExpr, Expr: call})
	if !found {
		t.Fatalf("expected to find the call expression in the function's postorder")
	}
	if callRef.ChildCount == 0 {
		t.Fatalf("call expression should have descendants: callee + one arg")
	}

	ref, ok := p.IDToAST(callRef)
	if !ok || ref.Tag != TagCallExpr {
		t.Fatalf("idToAst should resolve back to the call node")
	}
}

func TestProviderBundledModuleMembership(t *testing.T) {
	b := NewBuilder(Hints{})
	sp := source.Span{}
	mod := b.Items.NewModule(source.StringID(1), true, sp)
	fn := b.Items.NewFunction(source.StringID(2), FunctionItem{}, sp)
	b.Items.AddMember(mod, fn)

	tree := b.Build()
	p := NewProvider(tree, []ItemID{mod})

	if !p.IsInBundledModule(p.SymbolOf(fn)) {
		t.Fatalf("expected function nested in a bundled module to report bundled")
	}
}

func TestProviderFieldLookup(t *testing.T) {
	b := NewBuilder(Hints{})
	sp := source.Span{}
	nameField := source.StringID(10)
	field := b.Items.NewField(nameField, NoTypeExprID, NoExprID, sp)
	composite := b.Items.NewComposite(source.StringID(11), CompositeItem{Fields: []FieldID{field}}, sp)

	tree := b.Build()
	p := NewProvider(tree, []ItemID{composite})
	sym := p.SymbolOf(composite)

	got, ok := p.ContainsFieldWithName(sym, nameField)
	if !ok || got != field {
		t.Fatalf("expected to find field by name")
	}
	if !p.IsField(sym, field) {
		t.Fatalf("expected IsField to report true for a declared field")
	}
}

func TestProviderAggregateUsesForwarding(t *testing.T) {
	b := NewBuilder(Hints{})
	sp := source.Span{}
	fwd := b.Items.NewForwarding(NoTypeExprID, b.Exprs.NewIdent(source.StringID(1), sp), sp)
	composite := b.Items.NewComposite(source.StringID(2), CompositeItem{Forwardings: []ForwardingID{fwd}}, sp)

	tree := b.Build()
	p := NewProvider(tree, []ItemID{composite})

	if !p.AggregateUsesForwarding(p.SymbolOf(composite)) {
		t.Fatalf("expected composite with a forwarding declaration to report true")
	}
}
