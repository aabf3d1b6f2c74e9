package semantic

import (
	"math/big"
	"testing"

	"github.com/rirlang/rirc/internal/diag"
	"github.com/rirlang/rirc/internal/symtab"
	"github.com/rirlang/rirc/internal/syntax"
	"github.com/rirlang/rirc/internal/tt"
	"github.com/rirlang/rirc/internal/types"
)

func intLit(v int64) *syntax.IntLiteral {
	return &syntax.IntLiteral{Value: v}
}

func TestLowerClassicalDeclCachesConstValue(t *testing.T) {
	a := New(Config{})
	decl := &syntax.ClassicalDeclStmt{
		Name:    &syntax.Identifier{Value: "n"},
		Ty:      syntax.TypeExpr{Name: "int"},
		Init:    intLit(5),
		IsConst: true,
	}
	stmt := a.lowerClassicalDecl(decl)
	cd, ok := stmt.(*tt.ClassicalDecl)
	if !ok {
		t.Fatalf("expected *tt.ClassicalDecl, got %T", stmt)
	}
	sym, err := a.Symbols.Resolve("n")
	if err != nil {
		t.Fatalf("resolve n: %v", err)
	}
	if sym.Const == nil {
		t.Fatalf("expected const value cached on symbol")
	}
	if !cd.IsConst {
		t.Fatalf("expected IsConst true on typed-tree node")
	}
}

func TestLowerAssignUndefinedSymbolReportsUndefined(t *testing.T) {
	a := New(Config{})
	stmt := &syntax.AssignStmt{
		Target: &syntax.Identifier{Value: "missing"},
		Value:  intLit(1),
	}
	a.lowerAssign(stmt)
	if !a.Diags.HasErrors() {
		t.Fatalf("expected a diagnostic for undefined symbol")
	}
	if a.Diags.Items()[0].Kind != diag.Undefined {
		t.Fatalf("got kind %v, want Undefined", a.Diags.Items()[0].Kind)
	}
}

func TestLowerQubitArrayDeclTracksQubitCount(t *testing.T) {
	a := New(Config{})
	decl := &syntax.QubitArrayDeclStmt{
		Name: &syntax.Identifier{Value: "qs"},
		Size: intLit(3),
	}
	a.lowerQubitArrayDecl(decl)
	if a.QubitCount() != 3 {
		t.Fatalf("got qubit count %d, want 3", a.QubitCount())
	}
}

func TestInsertImplicitCastRejectsIntToAngle(t *testing.T) {
	a := New(Config{})
	x := &tt.Lit{
		ExprBase: tt.NewExprBase(syntax.Span{}, types.NewInt(nil, true), big.NewInt(1), true),
		Value:    big.NewInt(1),
	}
	a.insertImplicitCast(x, types.NewAngle(nil, false), syntax.Span{})
	if !a.Diags.HasErrors() {
		t.Fatalf("expected UnsupportedCast diagnostic for int -> angle")
	}
	if a.Diags.Items()[0].Kind != diag.UnsupportedCast {
		t.Fatalf("got kind %v, want UnsupportedCast", a.Diags.Items()[0].Kind)
	}
}

func TestLowerGateCallCtrlModifierRequiresExtraQubits(t *testing.T) {
	a := New(Config{})
	call := &syntax.GateCallStmt{
		Name:      &syntax.Identifier{Value: "X"},
		Modifiers: []syntax.Modifier{{Kind: syntax.ModCtrl, Arg: intLit(2)}},
		QubitArgs: []syntax.Expr{&syntax.Identifier{Value: "q0"}},
	}
	a.Symbols.Declare("q0", types.NewQubit(), symtab.Span{}, symtab.IONone)
	a.lowerGateCall(call)
	if !a.Diags.HasErrors() {
		t.Fatalf("expected InvalidNumberOfQubitArgs: ctrl(2) @ X needs 3 qubits, got 1")
	}
	if a.Diags.Items()[0].Kind != diag.InvalidNumberOfQubitArgs {
		t.Fatalf("got kind %v", a.Diags.Items()[0].Kind)
	}
}

func TestLowerIfWrapsNonBoolConditionWithCast(t *testing.T) {
	a := New(Config{})
	stmt := &syntax.IfStmt{
		Cond: intLit(1),
		Then: &syntax.BlockStmt{},
	}
	out := a.lowerIf(stmt)
	ifStmt, ok := out.(*tt.If)
	if !ok {
		t.Fatalf("expected *tt.If, got %T", out)
	}
	if _, ok := ifStmt.Cond.(*tt.Cast); !ok {
		t.Fatalf("expected condition to be wrapped in a cast, got %T", ifStmt.Cond)
	}
}

func TestLowerBinaryConstFoldsAddition(t *testing.T) {
	a := New(Config{})
	expr := &syntax.BinaryExpr{Op: syntax.OpAdd, Left: intLit(2), Right: intLit(3)}
	out := a.lowerBinary(expr)
	cv, ok := out.ConstValue()
	if !ok {
		t.Fatalf("expected a const result")
	}
	bi, ok := cv.(*big.Int)
	if !ok || bi.Int64() != 5 {
		t.Fatalf("got %v, want 5", cv)
	}
}
