package semantic

import (
	"github.com/rirlang/rirc/internal/diag"
	"github.com/rirlang/rirc/internal/symtab"
	"github.com/rirlang/rirc/internal/syntax"
	"github.com/rirlang/rirc/internal/tt"
	"github.com/rirlang/rirc/internal/types"
)

func (a *Analyzer) lowerBlock(n *syntax.BlockStmt) *tt.Block {
	a.Symbols.EnterScope()
	defer a.Symbols.ExitScope()
	out := &tt.Block{StmtBase: tt.NewStmtBase(n.Span)}
	for _, s := range n.Stmts {
		out.Stmts = append(out.Stmts, a.lowerStmt(s))
	}
	return out
}

func (a *Analyzer) lowerIf(n *syntax.IfStmt) tt.Stmt {
	cond := a.lowerExpr(n.Cond)
	cond = a.insertImplicitCast(cond, types.NewBool(cond.Type().IsConst()), n.Cond.Pos())
	then := a.lowerStmt(n.Then)
	var els tt.Stmt
	if n.Else != nil {
		els = a.lowerStmt(n.Else)
	}
	return &tt.If{StmtBase: tt.NewStmtBase(n.Span), Cond: cond, Then: then, Else: els}
}

func (a *Analyzer) lowerWhile(n *syntax.WhileStmt) tt.Stmt {
	cond := a.lowerExpr(n.Cond)
	cond = a.insertImplicitCast(cond, types.NewBool(cond.Type().IsConst()), n.Cond.Pos())
	body := a.lowerStmt(n.Body)
	return &tt.While{StmtBase: tt.NewStmtBase(n.Span), Cond: cond, Body: body}
}

func (a *Analyzer) lowerFor(n *syntax.ForStmt) tt.Stmt {
	iter := a.lowerExpr(n.Iterable)
	a.Symbols.EnterScope()
	defer a.Symbols.ExitScope()
	elemTy := elementType(iter.Type())
	if iter.Type().Kind() == types.KindRange {
		elemTy = types.NewInt(nil, false)
	}
	id, err := a.Symbols.Declare(n.Var.Value, elemTy, declSpan(n.Var.Span), symtab.IONone)
	if err != nil {
		a.Diags.Errorf(diag.RedeclarationInScope, toDiagSpan(n.Span), "symbol %q already declared in this scope", n.Var.Value)
	}
	body := a.lowerStmt(n.Body)
	return &tt.For{StmtBase: tt.NewStmtBase(n.Span), Symbol: id, Iterable: iter, Body: body}
}

func (a *Analyzer) lowerSwitch(n *syntax.SwitchStmt) tt.Stmt {
	scrutinee := a.lowerExpr(n.Scrutinee)
	out := &tt.Switch{StmtBase: tt.NewStmtBase(n.Span), Scrutinee: scrutinee}
	for _, c := range n.Cases {
		labels := make([]tt.Expr, len(c.Labels))
		for i, l := range c.Labels {
			labels[i] = a.lowerExpr(l)
		}
		out.Cases = append(out.Cases, tt.SwitchCase{Labels: labels, Body: a.lowerStmt(c.Body)})
	}
	return out
}

func (a *Analyzer) lowerReturn(n *syntax.ReturnStmt) tt.Stmt {
	var v tt.Expr
	if n.Value != nil {
		v = a.lowerExpr(n.Value)
	}
	return &tt.Return{StmtBase: tt.NewStmtBase(n.Span), Value: v}
}

func (a *Analyzer) lowerMeasureArrow(n *syntax.MeasureArrowStmt) tt.Stmt {
	qubit := a.lowerExpr(n.Qubit)
	out := &tt.MeasureArrow{StmtBase: tt.NewStmtBase(n.Span), Qubit: qubit}
	if n.Target != nil {
		ident, ok := n.Target.(*syntax.Identifier)
		if !ok {
			a.Diags.Errorf(diag.NotSupported, toDiagSpan(n.Span), "measurement target must be a name")
			return out
		}
		sym, err := a.Symbols.Resolve(ident.Value)
		if err != nil {
			a.Diags.Errorf(diag.Undefined, toDiagSpan(n.Span), "symbol %q is not declared", ident.Value)
			return out
		}
		out.Target = sym.ID
		out.HasTarget = true
	}
	return out
}

func (a *Analyzer) lowerBarrier(n *syntax.BarrierStmt) tt.Stmt {
	qubits := make([]tt.Expr, len(n.Qubits))
	for i, q := range n.Qubits {
		qubits[i] = a.lowerExpr(q)
	}
	return &tt.Barrier{StmtBase: tt.NewStmtBase(n.Span), Qubits: qubits}
}
