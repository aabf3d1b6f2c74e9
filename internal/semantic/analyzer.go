// Package semantic lowers a syntactic tree (internal/syntax) into a typed
// tree (internal/tt), resolving names against a symbol table, inserting
// explicit casts, folding constants, and validating gate arities and
// pragma/annotation usage. One file per statement kind mirrors how the
// lowering responsibilities are split here.
package semantic

import (
	"github.com/rirlang/rirc/internal/diag"
	"github.com/rirlang/rirc/internal/gateset"
	"github.com/rirlang/rirc/internal/symtab"
	"github.com/rirlang/rirc/internal/syntax"
	"github.com/rirlang/rirc/internal/tt"
	"github.com/rirlang/rirc/internal/types"
)

// Config carries the qubit-semantics and output-semantics options from
// internal/config. The analyzer keeps it in Analyzer.Cfg; no lowering
// decision in this package reads it.
type Config struct {
	QubitSemantics string // "Managed" | "Unmanaged"
	OutputSemantics string // "OpenQasm" | "Qiskit" | "ResourceEstimation"
}

// BoxHooks records the last-occurrence-wins qdk.box.open/close pragma
// targets collected while walking the tree.
type BoxHooks struct {
	Open  string
	Close string
}

// Analyzer holds the mutable state threaded through one compilation unit's
// lowering pass: the symbol table being built, the diagnostic bag, pending
// annotations waiting to attach to the next Def/GateDef, and recognized
// pragma state.
type Analyzer struct {
	Symbols *symtab.Table
	Diags   diag.Bag
	Cfg     Config

	pendingAnnotations []syntax.Annotation
	Box                BoxHooks
	Profile            string
	profileSet         bool

	qubitCounter int
}

// New creates an Analyzer with a fresh symbol table.
func New(cfg Config) *Analyzer {
	return &Analyzer{Symbols: symtab.New(), Cfg: cfg}
}

// Lower lowers an entire syntactic Program into a typed-tree Program. The
// returned Program is only valid for emission if a.Diags.HasErrors() is
// false.
func (a *Analyzer) Lower(p *syntax.Program) *tt.Program {
	out := &tt.Program{Span: p.Span}
	for _, s := range p.Statements {
		out.Stmts = append(out.Stmts, a.lowerStmt(s))
	}
	return out
}

func toDiagSpan(s syntax.Span) diag.Span {
	return diag.Span{Lo: s.Lo, Hi: s.Hi, Line: s.Line, Column: s.Column}
}

// QubitCount reports how many qubits were declared across the lowered
// program (single `use` decls plus array sizes), for callers that need an
// upfront allocation count before running the evaluator.
func (a *Analyzer) QubitCount() int { return a.qubitCounter }

// lowerStmt dispatches on the concrete syntax.Stmt type. Each case is
// implemented in its own file (decl.go, gatecall.go, pragma.go,
// annotation.go) to keep this switch a pure dispatch table.
func (a *Analyzer) lowerStmt(s syntax.Stmt) tt.Stmt {
	switch n := s.(type) {
	case *syntax.ExprStmt:
		return &tt.ExprStmt{X: a.lowerExpr(n.X)}
	case *syntax.ClassicalDeclStmt:
		return a.lowerClassicalDecl(n)
	case *syntax.QubitDeclStmt:
		return a.lowerQubitDecl(n)
	case *syntax.QubitArrayDeclStmt:
		return a.lowerQubitArrayDecl(n)
	case *syntax.InputDeclStmt:
		return a.lowerInputDecl(n)
	case *syntax.OutputDeclStmt:
		return a.lowerOutputDecl(n)
	case *syntax.AssignStmt:
		return a.lowerAssign(n)
	case *syntax.IndexedClassicalTypeAssign:
		return a.lowerIndexedAssign(n)
	case *syntax.AliasStmt:
		return a.lowerAlias(n)
	case *syntax.BlockStmt:
		return a.lowerBlock(n)
	case *syntax.IfStmt:
		return a.lowerIf(n)
	case *syntax.WhileStmt:
		return a.lowerWhile(n)
	case *syntax.ForStmt:
		return a.lowerFor(n)
	case *syntax.SwitchStmt:
		return a.lowerSwitch(n)
	case *syntax.BreakStmt:
		return &tt.Break{}
	case *syntax.ContinueStmt:
		return &tt.Continue{}
	case *syntax.EndStmt:
		return &tt.End{}
	case *syntax.ReturnStmt:
		return a.lowerReturn(n)
	case *syntax.MeasureArrowStmt:
		return a.lowerMeasureArrow(n)
	case *syntax.ResetStmt:
		return &tt.Reset{Qubit: a.lowerExpr(n.Qubit)}
	case *syntax.BarrierStmt:
		return a.lowerBarrier(n)
	case *syntax.BoxStmt:
		return a.lowerBox(n)
	case *syntax.GateCallStmt:
		return a.lowerGateCall(n)
	case *syntax.DefStmt:
		return a.lowerDef(n)
	case *syntax.QuantumGateDefinition:
		return a.lowerGateDef(n)
	case *syntax.PragmaStmt:
		return a.lowerPragma(n)
	case *syntax.IncludeStmt:
		return &tt.Err{} // external collaborator's concern; nothing to lower
	case *syntax.DelayStmt:
		a.Diags.Errorf(diag.NotSupported, toDiagSpan(n.Span), "delay is not supported")
		return &tt.Delay{}
	case *syntax.ExternStmt:
		a.Diags.Errorf(diag.NotSupported, toDiagSpan(n.Span), "extern declarations are not supported")
		return &tt.Extern{}
	case *syntax.ErrStmt:
		return &tt.Err{}
	default:
		a.Diags.Errorf(diag.Unimplemented, diag.Span{}, "unhandled statement kind %T", n)
		return &tt.Err{}
	}
}

// lowerExpr dispatches on the concrete syntax.Expr type, resolving
// identifiers, computing result types via the cast/promotion tables, and
// folding constants where every operand is const (const_fold.go).
func (a *Analyzer) lowerExpr(e syntax.Expr) tt.Expr {
	switch n := e.(type) {
	case *syntax.Identifier:
		sym, err := a.Symbols.Resolve(n.Value)
		if err != nil {
			a.Diags.Errorf(diag.Undefined, toDiagSpan(n.Span), "symbol %q is not declared", n.Value)
			return errExpr(n.Span)
		}
		isConst := sym.Const != nil
		var cv any
		if isConst {
			cv = sym.Const.Value
		}
		return &tt.Ident{
			ExprBase: exprBaseOf(n.Span, sym.Type, cv, isConst),
			Symbol:   sym.ID,
			Name:     n.Value,
		}
	case *syntax.IntLiteral:
		return a.lowerIntLiteral(n)
	case *syntax.FloatLiteral:
		return &tt.Lit{ExprBase: exprBaseOf(n.Span, types.NewFloat(nil, true), n.Value, true), Value: n.Value}
	case *syntax.BoolLiteral:
		return &tt.Lit{ExprBase: exprBaseOf(n.Span, types.NewBool(true), n.Value, true), Value: n.Value}
	case *syntax.BitStringLiteral:
		ty := types.NewBitArray(len(n.Bits), true)
		return &tt.Lit{ExprBase: exprBaseOf(n.Span, ty, n.Bits, true), Value: n.Bits}
	case *syntax.ResultLiteral:
		return &tt.Lit{ExprBase: exprBaseOf(n.Span, types.NewBit(true), n.Value == syntax.ResultOne, true), Value: n.Value}
	case *syntax.BinaryExpr:
		return a.lowerBinary(n)
	case *syntax.UnaryExpr:
		return a.lowerUnary(n)
	case *syntax.TernaryExpr:
		return a.lowerTernary(n)
	case *syntax.RangeExpr:
		return a.lowerRange(n)
	case *syntax.IndexExpr:
		return a.lowerIndex(n)
	case *syntax.MultiIndexExpr:
		return a.lowerMultiIndex(n)
	case *syntax.CallExpr:
		return a.lowerCall(n)
	case *syntax.ExplicitCastExpr:
		return a.lowerExplicitCast(n)
	case *syntax.ArrayLiteral:
		return a.lowerArrayLiteral(n)
	case *syntax.InterpString:
		return a.lowerInterpString(n)
	default:
		a.Diags.Errorf(diag.Unimplemented, diag.Span{}, "unhandled expression kind %T", n)
		return errExpr(syntax.Span{})
	}
}

func exprBaseOf(span syntax.Span, ty types.Type, cv any, isConst bool) tt.ExprBase {
	return tt.NewExprBase(span, ty, cv, isConst)
}

func errExpr(span syntax.Span) tt.Expr {
	return tt.NewErrExpr(span, types.NewErr())
}

func gateArity(name string) (int, bool) {
	if g, ok := gateset.Lookup(name); ok {
		return g.Qubits, true
	}
	return 0, false
}
