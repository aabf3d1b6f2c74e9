package partialeval

import (
	"testing"

	"github.com/rirlang/rirc/internal/symtab"
	"github.com/rirlang/rirc/internal/tt"
	"github.com/rirlang/rirc/internal/types"
)

func TestManagedQubitSemanticsReusesIdAfterReset(t *testing.T) {
	tab := symtab.New()
	q1, _ := tab.Declare("q1", types.NewQubit(), symtab.Span{}, symtab.IONone)
	q2, _ := tab.Declare("q2", types.NewQubit(), symtab.Span{}, symtab.IONone)

	prog := &tt.Program{Stmts: []tt.Stmt{
		&tt.QubitDecl{Symbol: q1},
		&tt.Reset{Qubit: ident(q1, "q1", types.NewQubit())},
		&tt.QubitDecl{Symbol: q2},
	}}

	d := NewDriver(tab)
	d.Cfg = Config{QubitSemantics: "Managed"}
	out, err := d.Compile(prog)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if out.NQubits != 1 {
		t.Fatalf("got NQubits %d, want 1 (q2 should reuse q1's freed id)", out.NQubits)
	}
	if d.qubitOf[q1] != d.qubitOf[q2] {
		t.Fatalf("expected q1 and q2 to share an id under Managed semantics")
	}
}

func TestUnmanagedQubitSemanticsNeverReusesId(t *testing.T) {
	tab := symtab.New()
	q1, _ := tab.Declare("q1", types.NewQubit(), symtab.Span{}, symtab.IONone)
	q2, _ := tab.Declare("q2", types.NewQubit(), symtab.Span{}, symtab.IONone)

	prog := &tt.Program{Stmts: []tt.Stmt{
		&tt.QubitDecl{Symbol: q1},
		&tt.Reset{Qubit: ident(q1, "q1", types.NewQubit())},
		&tt.QubitDecl{Symbol: q2},
	}}

	d := NewDriver(tab)
	out, err := d.Compile(prog)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if out.NQubits != 2 {
		t.Fatalf("got NQubits %d, want 2 (default Unmanaged semantics keeps every id distinct)", out.NQubits)
	}
}

func TestOperationNameOverridesEntryCallableName(t *testing.T) {
	tab := symtab.New()
	prog := &tt.Program{Stmts: []tt.Stmt{}}

	d := NewDriver(tab)
	d.Cfg = Config{OperationName: "Teleport"}
	out, err := d.Compile(prog)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	entry := out.GetCallable(out.Entry)
	if entry.Name != "Teleport" {
		t.Fatalf("got entry callable name %q, want Teleport", entry.Name)
	}
}
