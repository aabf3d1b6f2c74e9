package semantic

import (
	"github.com/rirlang/rirc/internal/diag"
	"github.com/rirlang/rirc/internal/gateset"
	"github.com/rirlang/rirc/internal/symtab"
	"github.com/rirlang/rirc/internal/syntax"
	"github.com/rirlang/rirc/internal/tt"
	"github.com/rirlang/rirc/internal/types"
)

// modifierQubitCost reports how many extra control-qubit operands a
// modifier stack consumes before the gate's own declared operands:
// Ctrl(n)/NegCtrl(n) each add n leading control qubits, Inv/Pow add none.
func (a *Analyzer) modifierQubitCost(mods []tt.Modifier) int {
	extra := 0
	for _, m := range mods {
		switch m.Kind {
		case tt.ModCtrl, tt.ModNegCtrl:
			if cv, ok := m.Arg.ConstValue(); ok {
				extra += asInt(cv)
			} else {
				extra++
			}
		}
	}
	return extra
}

func (a *Analyzer) lowerGateCall(n *syntax.GateCallStmt) tt.Stmt {
	base, declaredQubits := gateArity(n.Name.Value)
	symID, isUser := a.userGateSymbol(n.Name.Value)

	mods := make([]tt.Modifier, len(n.Modifiers))
	for i, m := range n.Modifiers {
		var arg tt.Expr
		if m.Arg != nil {
			arg = a.lowerExpr(m.Arg)
		}
		mods[i] = tt.Modifier{Kind: tt.ModifierKind(m.Kind), Arg: arg}
	}

	classicalArgs := make([]tt.Expr, len(n.ClassicalArgs))
	for i, c := range n.ClassicalArgs {
		classicalArgs[i] = a.lowerExpr(c)
	}
	qubitArgs := make([]tt.Expr, len(n.QubitArgs))
	for i, q := range n.QubitArgs {
		qubitArgs[i] = a.lowerExpr(q)
	}

	arity := base
	switch {
	case declaredQubits:
		// arity already set from the intrinsic registry.
	case isUser:
		if sym, err := a.Symbols.Resolve(n.Name.Value); err == nil {
			if g, ok := sym.Type.(types.Gate); ok {
				arity = g.NQuantum
			}
		}
	default:
		g := gateset.Fallback(n.Name.Value, len(classicalArgs), len(n.QubitArgs)-a.modifierQubitCost(mods))
		arity = g.Qubits
	}
	required := arity + a.modifierQubitCost(mods)
	if required != len(qubitArgs) {
		a.Diags.Errorf(diag.InvalidNumberOfQubitArgs, toDiagSpan(n.Span),
			"gate %q expects %d qubit operand(s), got %d", n.Name.Value, required, len(qubitArgs))
	}

	var duration tt.Expr
	if n.Duration != nil {
		duration = a.lowerExpr(n.Duration)
	}

	return &tt.GateCall{
		StmtBase:      tt.NewStmtBase(n.Span),
		Symbol:        symID,
		Name:          n.Name.Value,
		ClassicalArgs: classicalArgs,
		QubitArgs:     qubitArgs,
		QuantumArity:  arity,
		Modifiers:     mods,
		Duration:      duration,
	}
}

// userGateSymbol resolves a gate name against the symbol table; intrinsics
// recognized by internal/gateset need no prior declaration and resolve to
// the zero ID.
func (a *Analyzer) userGateSymbol(name string) (symtab.ID, bool) {
	sym, err := a.Symbols.Resolve(name)
	if err != nil {
		return 0, false
	}
	return sym.ID, true
}

func (a *Analyzer) lowerDef(n *syntax.DefStmt) tt.Stmt {
	kind := a.classifyCallable(n.Params, n.Annotations)

	params := make([]types.Type, len(n.Params))
	for i, p := range n.Params {
		params[i] = a.resolveTypeExpr(p.Ty)
	}
	retTy := types.Type(types.NewVoid())
	if n.ReturnTy != nil {
		retTy = a.resolveTypeExpr(*n.ReturnTy)
	}
	fnTy := types.Type(types.Function{Args: params, Return: retTy})

	id, err := a.Symbols.Declare(n.Name.Value, fnTy, declSpan(n.Span), symtab.IONone)
	if err != nil {
		a.Diags.Errorf(diag.RedeclarationInScope, toDiagSpan(n.Span), "symbol %q already declared in this scope", n.Name.Value)
	}

	a.Symbols.EnterScope()
	ttParams := make([]tt.Param, len(n.Params))
	for i, p := range n.Params {
		pid, perr := a.Symbols.Declare(p.Name.Value, params[i], declSpan(p.Name.Span), symtab.IONone)
		if perr != nil {
			a.Diags.Errorf(diag.RedeclarationInScope, toDiagSpan(n.Span), "parameter %q already declared", p.Name.Value)
		}
		ttParams[i] = tt.Param{Symbol: pid, Ty: params[i]}
	}
	body := a.lowerBlockStmts(n.Body)
	a.Symbols.ExitScope()

	a.applyPendingAnnotations(n.Annotations)

	return &tt.Def{
		StmtBase: tt.NewStmtBase(n.Span),
		Symbol:   id,
		Kind:     kind,
		Params:   ttParams,
		ReturnTy: retTy,
		Body:     body,
	}
}

func (a *Analyzer) lowerGateDef(n *syntax.QuantumGateDefinition) tt.Stmt {
	classicalTys := make([]types.Type, len(n.ClassicalParams))
	for i, p := range n.ClassicalParams {
		classicalTys[i] = a.resolveTypeExpr(p.Ty)
	}
	gateTy := types.Type(types.Gate{NClassical: len(n.ClassicalParams), NQuantum: len(n.QubitParams)})
	id, err := a.Symbols.Declare(n.Name.Value, gateTy, declSpan(n.Span), symtab.IONone)
	if err != nil {
		a.Diags.Errorf(diag.RedeclarationInScope, toDiagSpan(n.Span), "symbol %q already declared in this scope", n.Name.Value)
	}

	a.Symbols.EnterScope()
	classicalParams := make([]tt.Param, len(n.ClassicalParams))
	for i, p := range n.ClassicalParams {
		pid, perr := a.Symbols.Declare(p.Name.Value, classicalTys[i], declSpan(p.Name.Span), symtab.IONone)
		if perr != nil {
			a.Diags.Errorf(diag.RedeclarationInScope, toDiagSpan(n.Span), "parameter %q already declared", p.Name.Value)
		}
		classicalParams[i] = tt.Param{Symbol: pid, Ty: classicalTys[i]}
	}
	qubitParams := make([]symtab.ID, len(n.QubitParams))
	for i, q := range n.QubitParams {
		qid, qerr := a.Symbols.Declare(q.Value, types.NewQubit(), declSpan(q.Span), symtab.IONone)
		if qerr != nil {
			a.Diags.Errorf(diag.RedeclarationInScope, toDiagSpan(n.Span), "qubit parameter %q already declared", q.Value)
		}
		qubitParams[i] = qid
	}
	body := a.lowerBlockStmts(n.Body)
	a.Symbols.ExitScope()

	a.applyPendingAnnotations(n.Annotations)

	return &tt.QuantumGateDefinition{
		StmtBase:        tt.NewStmtBase(n.Span),
		Symbol:          id,
		ClassicalParams: classicalParams,
		QubitParams:     qubitParams,
		Body:            body,
	}
}

func (a *Analyzer) lowerBlockStmts(b *syntax.BlockStmt) *tt.Block {
	out := &tt.Block{StmtBase: tt.NewStmtBase(b.Span)}
	for _, s := range b.Stmts {
		out.Stmts = append(out.Stmts, a.lowerStmt(s))
	}
	return out
}

// classifyCallable decides Function vs Operation: any qubit-typed parameter,
// or a SimulatableIntrinsic annotation, makes it an Operation.
func (a *Analyzer) classifyCallable(params []syntax.Param, anns []syntax.Annotation) tt.CallableKind {
	for _, ann := range anns {
		if canonicalAnnotation(ann.Name) == "SimulatableIntrinsic" {
			return tt.KindOperation
		}
	}
	for _, p := range params {
		switch p.Ty.Name {
		case "qubit", "hwqubit":
			return tt.KindOperation
		}
	}
	return tt.KindFunction
}
