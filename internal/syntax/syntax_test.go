package syntax

import "testing"

func TestBlockStmtStringIncludesChildren(t *testing.T) {
	blk := &BlockStmt{Stmts: []Stmt{
		&BreakStmt{},
		&ContinueStmt{},
	}}
	out := blk.String()
	if out == "" {
		t.Fatalf("expected non-empty rendering")
	}
}

func TestGateCallStmtStringOrdersModifiersOutermostFirst(t *testing.T) {
	call := &GateCallStmt{
		Name: &Identifier{Value: "X"},
		Modifiers: []Modifier{
			{Kind: ModCtrl, Arg: &IntLiteral{Text: "2"}},
			{Kind: ModInv},
		},
		QubitArgs: []Expr{&Identifier{Value: "q0"}, &Identifier{Value: "q1"}, &Identifier{Value: "q2"}},
	}
	got := call.String()
	want := "ctrl(2) @ inv @ X q0, q1, q2;"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestRangeExprOmittedBoundsRenderEmpty(t *testing.T) {
	r := &RangeExpr{Step: &IntLiteral{Text: "2"}}
	if got := r.String(); got != "..2.." {
		t.Fatalf("got %q", got)
	}
}

func TestIndexedClassicalTypeAssignDistinctFromAssignStmt(t *testing.T) {
	var s1 Stmt = &AssignStmt{Target: &Identifier{Value: "x"}, Value: &IntLiteral{Text: "1"}}
	var s2 Stmt = &IndexedClassicalTypeAssign{
		Target: &IndexExpr{Base: &Identifier{Value: "xs"}, Index: &IntLiteral{Text: "0"}},
		Value:  &IntLiteral{Text: "1"},
	}
	if s1.String() == s2.String() {
		t.Fatalf("expected distinct renderings")
	}
}

func TestInterpStringConcatenatesPartsAndNests(t *testing.T) {
	inner := &InterpString{Parts: []InterpPart{{Text: "inner"}}}
	outer := &InterpString{Parts: []InterpPart{
		{Text: "a"},
		{Expr: inner},
		{Text: "b"},
	}}
	if got := outer.String(); got != "ainnerb" {
		t.Fatalf("got %q", got)
	}
}

func TestBitStringLiteralPreservesLeadingZeros(t *testing.T) {
	lit := &BitStringLiteral{Bits: []bool{false, false, true}}
	if got := lit.String(); got != "\"001\"" {
		t.Fatalf("got %q", got)
	}
}
