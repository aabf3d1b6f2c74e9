package partialeval

import (
	"math/big"
	"testing"

	"github.com/rirlang/rirc/internal/rir"
	"github.com/rirlang/rirc/internal/symtab"
	"github.com/rirlang/rirc/internal/syntax"
	"github.com/rirlang/rirc/internal/tt"
	"github.com/rirlang/rirc/internal/types"
)

func ident(sym symtab.ID, name string, ty types.Type) *tt.Ident {
	return &tt.Ident{ExprBase: tt.NewExprBase(syntax.Span{}, ty, nil, false), Symbol: sym, Name: name}
}

func lit(v any, ty types.Type) *tt.Lit {
	return &tt.Lit{ExprBase: tt.NewExprBase(syntax.Span{}, ty, v, true), Value: v}
}

func countCalls(p *rir.Program, name string) int {
	var callableId rir.CallableId
	found := false
	for id, c := range p.Callables {
		if c.Name == name {
			callableId, found = id, true
		}
	}
	if !found {
		return 0
	}
	n := 0
	for _, b := range p.Blocks {
		for _, i := range b.Instructions {
			if i.Op == rir.OpCall && i.Callable == callableId {
				n++
			}
		}
	}
	return n
}

func TestCompileGateCallAndMeasureRecordsOutput(t *testing.T) {
	tab := symtab.New()
	qSym, _ := tab.Declare("q", types.NewQubit(), symtab.Span{}, symtab.IONone)
	cSym, _ := tab.Declare("c", types.NewBit(false), symtab.Span{}, symtab.IOOutput)

	prog := &tt.Program{Stmts: []tt.Stmt{
		&tt.QubitDecl{Symbol: qSym},
		&tt.GateCall{Name: "H", Symbol: qSym, QubitArgs: []tt.Expr{ident(qSym, "q", types.NewQubit())}},
		&tt.MeasureArrow{Qubit: ident(qSym, "q", types.NewQubit()), Target: cSym, HasTarget: true},
	}}

	d := NewDriver(tab)
	out, err := d.Compile(prog)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if out.NQubits != 1 {
		t.Fatalf("got NQubits %d, want 1", out.NQubits)
	}
	if countCalls(out, "__quantum__qis__h__body") != 1 {
		t.Fatalf("expected exactly one H call")
	}
	if countCalls(out, "__quantum__qis__m__body") != 1 {
		t.Fatalf("expected exactly one M call")
	}
	if countCalls(out, "__quantum__rt__bool_record_output") != 1 {
		t.Fatalf("expected one bool output recorded for the Output-declared bit")
	}
}

func TestCompileGateCallRejectsRepeatedQubitOperand(t *testing.T) {
	tab := symtab.New()
	qSym, _ := tab.Declare("q", types.NewQubit(), symtab.Span{}, symtab.IONone)

	prog := &tt.Program{Stmts: []tt.Stmt{
		&tt.QubitDecl{Symbol: qSym},
		&tt.GateCall{Name: "CNOT", Symbol: qSym, QubitArgs: []tt.Expr{
			ident(qSym, "q", types.NewQubit()),
			ident(qSym, "q", types.NewQubit()),
		}},
	}}

	d := NewDriver(tab)
	_, err := d.Compile(prog)
	if err == nil {
		t.Fatalf("expected a QubitUniqueness error")
	}
	pe, ok := err.(*Error)
	if !ok || pe.Kind != QubitUniqueness {
		t.Fatalf("got %v, want QubitUniqueness", err)
	}
}

func TestCompileForUnrollsClassicalRange(t *testing.T) {
	tab := symtab.New()
	qSym, _ := tab.Declare("q", types.NewQubit(), symtab.Span{}, symtab.IONone)
	iSym, _ := tab.Declare("i", types.NewInt(nil, false), symtab.Span{}, symtab.IONone)

	prog := &tt.Program{Stmts: []tt.Stmt{
		&tt.QubitDecl{Symbol: qSym},
		&tt.For{
			Symbol:   iSym,
			Iterable: &tt.RangeVal{ExprBase: tt.NewExprBase(syntax.Span{}, types.NewRange(), nil, false), End: lit(big.NewInt(2), types.NewInt(nil, true))},
			Body: &tt.Block{Stmts: []tt.Stmt{
				&tt.GateCall{Name: "X", Symbol: qSym, QubitArgs: []tt.Expr{ident(qSym, "q", types.NewQubit())}},
			}},
		},
	}}

	d := NewDriver(tab)
	out, err := d.Compile(prog)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if n := countCalls(out, "__quantum__qis__x__body"); n != 3 {
		t.Fatalf("got %d X calls, want 3 (range end is inclusive, default start 0 step 1)", n)
	}
}

func TestCompileWhileRejectsDynamicCondition(t *testing.T) {
	tab := symtab.New()
	qSym, _ := tab.Declare("q", types.NewQubit(), symtab.Span{}, symtab.IONone)
	cSym, _ := tab.Declare("c", types.NewBit(false), symtab.Span{}, symtab.IONone)

	prog := &tt.Program{Stmts: []tt.Stmt{
		&tt.QubitDecl{Symbol: qSym},
		&tt.MeasureArrow{Qubit: ident(qSym, "q", types.NewQubit()), Target: cSym, HasTarget: true},
		&tt.While{
			Cond: ident(cSym, "c", types.NewBit(false)),
			Body: &tt.Block{},
		},
	}}

	d := NewDriver(tab)
	_, err := d.Compile(prog)
	if err == nil {
		t.Fatalf("expected EvaluationFailed for a dynamic while condition")
	}
	pe, ok := err.(*Error)
	if !ok || pe.Kind != EvaluationFailed {
		t.Fatalf("got %v, want EvaluationFailed", err)
	}
}

func TestCompileIfWithDynamicConditionMergesReassignedVariable(t *testing.T) {
	tab := symtab.New()
	qSym, _ := tab.Declare("q", types.NewQubit(), symtab.Span{}, symtab.IONone)
	cSym, _ := tab.Declare("c", types.NewBit(false), symtab.Span{}, symtab.IONone)
	nSym, _ := tab.Declare("n", types.NewInt(nil, false), symtab.Span{}, symtab.IOOutput)

	prog := &tt.Program{Stmts: []tt.Stmt{
		&tt.QubitDecl{Symbol: qSym},
		&tt.ClassicalDecl{Symbol: nSym, Ty: types.NewInt(nil, false), Init: lit(big.NewInt(0), types.NewInt(nil, true))},
		&tt.MeasureArrow{Qubit: ident(qSym, "q", types.NewQubit()), Target: cSym, HasTarget: true},
		&tt.If{
			Cond: ident(cSym, "c", types.NewBit(false)),
			Then: &tt.Block{Stmts: []tt.Stmt{
				&tt.Assign{Symbol: nSym, Value: lit(big.NewInt(1), types.NewInt(nil, true))},
			}},
			Else: &tt.Block{Stmts: []tt.Stmt{
				&tt.Assign{Symbol: nSym, Value: lit(big.NewInt(2), types.NewInt(nil, true))},
			}},
		},
	}}

	d := NewDriver(tab)
	out, err := d.Compile(prog)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if countCalls(out, "__quantum__rt__integer_record_output") != 1 {
		t.Fatalf("expected the merged dynamic value of n to be recorded as an integer output")
	}
	if len(out.Blocks) < 4 {
		t.Fatalf("expected at least 4 blocks (entry, then, else, join), got %d", len(out.Blocks))
	}
}
