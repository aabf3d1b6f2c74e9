package symtab

import (
	"testing"

	"github.com/rirlang/rirc/internal/types"
)

func TestDeclareAndResolve(t *testing.T) {
	tab := New()
	id, err := tab.Declare("q", types.NewQubit(), Span{}, IONone)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sym, err := tab.Resolve("q")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if sym.ID != id {
		t.Fatalf("resolved id %d != declared id %d", sym.ID, id)
	}
}

func TestRedeclarationInSameScopeFails(t *testing.T) {
	tab := New()
	if _, err := tab.Declare("x", types.NewInt(nil, false), Span{}, IONone); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := tab.Declare("x", types.NewInt(nil, false), Span{}, IONone)
	if err == nil {
		t.Fatalf("expected RedeclarationInScope")
	}
	if e, ok := err.(*Error); !ok || e.Kind != "RedeclarationInScope" {
		t.Fatalf("wrong error kind: %v", err)
	}
}

func TestShadowingInInnerScopeIsAllowed(t *testing.T) {
	tab := New()
	if _, err := tab.Declare("x", types.NewInt(nil, false), Span{}, IONone); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tab.EnterScope()
	if _, err := tab.Declare("x", types.NewBool(false), Span{}, IONone); err != nil {
		t.Fatalf("shadowing should be allowed, got: %v", err)
	}
	sym, _ := tab.Resolve("x")
	if sym.Type.Kind() != types.KindBool {
		t.Fatalf("innermost declaration should win, got %v", sym.Type)
	}
	tab.ExitScope()
	sym, _ = tab.Resolve("x")
	if sym.Type.Kind() != types.KindInt {
		t.Fatalf("outer declaration should be visible again after ExitScope, got %v", sym.Type)
	}
}

func TestUndefinedLookupFails(t *testing.T) {
	tab := New()
	_, err := tab.Resolve("nope")
	if err == nil {
		t.Fatalf("expected Undefined error")
	}
	if e, ok := err.(*Error); !ok || e.Kind != "Undefined" {
		t.Fatalf("wrong error kind: %v", err)
	}
}

func TestExitGlobalScopePanics(t *testing.T) {
	tab := New()
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic exiting the global scope")
		}
	}()
	tab.ExitScope()
}

func TestGetInputGetOutputOrder(t *testing.T) {
	tab := New()
	aID, _ := tab.Declare("a", types.NewInt(nil, false), Span{}, IOInput)
	_, _ = tab.Declare("b", types.NewInt(nil, false), Span{}, IONone)
	bID, _ := tab.Declare("c", types.NewBit(false), Span{}, IOInput)
	outID, _ := tab.Declare("r", types.NewBit(false), Span{}, IOOutput)

	inputs := tab.GetInput()
	if len(inputs) != 2 || inputs[0].ID != aID || inputs[1].ID != bID {
		t.Fatalf("unexpected input order: %+v", inputs)
	}
	outputs := tab.GetOutput()
	if len(outputs) != 1 || outputs[0].ID != outID {
		t.Fatalf("unexpected output set: %+v", outputs)
	}
}

func TestSetConstValueIsIdempotent(t *testing.T) {
	tab := New()
	id, _ := tab.Declare("PI", types.NewFloat(nil, true), Span{}, IONone)
	tab.SetConstValue(id, 3.14)
	tab.SetConstValue(id, 3.14)
	sym, _ := tab.Resolve("PI")
	if sym.Const == nil || sym.Const.Value != 3.14 {
		t.Fatalf("expected cached const value 3.14, got %+v", sym.Const)
	}
}
