package semantic

import (
	"math/big"
	"strings"

	"github.com/rirlang/rirc/internal/diag"
	"github.com/rirlang/rirc/internal/syntax"
	"github.com/rirlang/rirc/internal/tt"
	"github.com/rirlang/rirc/internal/types"
)

func (a *Analyzer) lowerIntLiteral(n *syntax.IntLiteral) tt.Expr {
	var ty types.Type
	var width *int
	if n.Width != nil {
		width = types.WithWidth(*n.Width)
	}
	if n.Uns {
		ty = types.NewUInt(width, true)
	} else {
		ty = types.NewInt(width, true)
	}
	if n.Big != "" {
		bi, ok := new(big.Int).SetString(n.Big, 10)
		if !ok {
			a.Diags.Errorf(diag.NotSupported, toDiagSpan(n.Span), "malformed big integer literal %q", n.Text)
			return errExpr(n.Span)
		}
		return &tt.Lit{ExprBase: exprBaseOf(n.Span, ty, bi, true), Value: bi}
	}
	return &tt.Lit{ExprBase: exprBaseOf(n.Span, ty, n.Value, true), Value: n.Value}
}

func (a *Analyzer) lowerBinary(n *syntax.BinaryExpr) tt.Expr {
	left := a.lowerExpr(n.Left)
	right := a.lowerExpr(n.Right)
	resultTy := types.Promote(left.Type(), right.Type())
	if types.IsErr(resultTy) && !types.IsErr(left.Type()) && !types.IsErr(right.Type()) {
		a.Diags.Errorf(diag.TypeMismatch, toDiagSpan(n.Span),
			"incompatible operand types %s and %s for %s", left.Type().Kind(), right.Type().Kind(), n.Op)
	}
	switch n.Op {
	case syntax.OpEq, syntax.OpNe, syntax.OpLt, syntax.OpLe, syntax.OpGt, syntax.OpGe, syntax.OpAnd, syntax.OpOr:
		resultTy = types.NewBool(resultTy.IsConst())
	}
	cv, isConst := foldBinary(n.Op, left, right)
	return &tt.BinOp{
		ExprBase: exprBaseOf(n.Span, resultTy, cv, isConst),
		Op:       n.Op,
		Left:     left,
		Right:    right,
	}
}

func (a *Analyzer) lowerUnary(n *syntax.UnaryExpr) tt.Expr {
	x := a.lowerExpr(n.X)
	ty := x.Type()
	if n.Op == syntax.UnaryNot {
		ty = types.NewBool(ty.IsConst())
	}
	cv, isConst := foldUnary(n.Op, x)
	return &tt.UnOp{ExprBase: exprBaseOf(n.Span, ty, cv, isConst), Op: n.Op, X: x}
}

func (a *Analyzer) lowerTernary(n *syntax.TernaryExpr) tt.Expr {
	cond := a.lowerExpr(n.Cond)
	then := a.lowerExpr(n.Then)
	els := a.lowerExpr(n.Else)
	resultTy := types.Promote(then.Type(), els.Type())
	var cv any
	isConst := false
	if cc, ok := cond.ConstValue(); ok {
		if cb, ok := cc.(bool); ok {
			if cb {
				cv, isConst = then.ConstValue()
			} else {
				cv, isConst = els.ConstValue()
			}
		}
	}
	return &tt.Ternary{
		ExprBase: exprBaseOf(n.Span, resultTy, cv, isConst),
		Cond:     cond,
		Then:     then,
		Else:     els,
	}
}

func (a *Analyzer) lowerRange(n *syntax.RangeExpr) tt.Expr {
	var start, step, end tt.Expr
	if n.Start != nil {
		start = a.lowerExpr(n.Start)
	}
	if n.Step != nil {
		step = a.lowerExpr(n.Step)
	}
	if n.End != nil {
		end = a.lowerExpr(n.End)
	}
	return &tt.RangeVal{
		ExprBase: exprBaseOf(n.Span, types.NewRange(), nil, false),
		Start:    start,
		Step:     step,
		End:      end,
	}
}

func (a *Analyzer) lowerIndex(n *syntax.IndexExpr) tt.Expr {
	base := a.lowerExpr(n.Base)
	idx := a.lowerExpr(n.Index)
	ty := elementType(base.Type())
	return &tt.Index{ExprBase: exprBaseOf(n.Span, ty, nil, false), Base: base, Index: idx}
}

func (a *Analyzer) lowerMultiIndex(n *syntax.MultiIndexExpr) tt.Expr {
	base := a.lowerExpr(n.Base)
	indices := make([]tt.Expr, len(n.Indices))
	for i, ix := range n.Indices {
		indices[i] = a.lowerExpr(ix)
	}
	ty := base.Type()
	for range indices {
		ty = elementType(ty)
	}
	return &tt.MultiIndex{ExprBase: exprBaseOf(n.Span, ty, nil, false), Base: base, Indices: indices}
}

// elementType unwraps one dimension of an indexable composite type. A
// non-indexable operand types to Err; the caller has already reported
// the underlying mistake that produced it.
func elementType(t types.Type) types.Type {
	switch t.Kind() {
	case types.KindBitArray:
		return types.NewBit(t.IsConst())
	case types.KindQubitArray:
		return types.NewQubit()
	case types.KindArray:
		if arr, ok := t.(types.Array); ok {
			if len(arr.Dims) <= 1 {
				return arr.Base
			}
			return types.NewArray(arr.Base, arr.Dims[1:])
		}
	}
	return types.NewErr()
}

func (a *Analyzer) lowerCall(n *syntax.CallExpr) tt.Expr {
	sym, err := a.Symbols.Resolve(n.Name.Value)
	if err != nil {
		a.Diags.Errorf(diag.Undefined, toDiagSpan(n.Span), "symbol %q is not declared", n.Name.Value)
		return errExpr(n.Span)
	}
	args := make([]tt.Expr, len(n.Args))
	for i, arg := range n.Args {
		args[i] = a.lowerExpr(arg)
	}
	ty := sym.Type
	if fn, ok := ty.(types.Function); ok {
		ty = fn.Return
	}
	return &tt.Call{
		ExprBase: exprBaseOf(n.Span, ty, nil, false),
		Symbol:   sym.ID,
		Name:     n.Name.Value,
		Args:     args,
	}
}

func (a *Analyzer) lowerExplicitCast(n *syntax.ExplicitCastExpr) tt.Expr {
	want := a.resolveTypeExpr(n.TargetTy)
	x := a.lowerExpr(n.X)
	from := x.Type()
	if types.IsErr(from) || types.IsErr(want) {
		return x
	}
	legal, _ := types.CheckCast(from.Kind(), want.Kind())
	if !legal {
		a.Diags.Errorf(diag.UnsupportedCast, toDiagSpan(n.Span),
			"cannot cast %s to %s", from.Kind(), want.Kind())
		return x
	}
	cv, isConst := convertConst(x, want)
	return &tt.Cast{
		ExprBase: exprBaseOf(n.Span, want, cv, isConst),
		Kind:     types.CastExplicit,
		X:        x,
	}
}

// convertConst applies the runtime conversion rules to a constant operand so
// the cast's own constant value is available to later constant folding
// (e.g. `int[8](3.0)` inside an array size expression).
func convertConst(x tt.Expr, want types.Type) (any, bool) {
	cv, ok := x.ConstValue()
	if !ok {
		return nil, false
	}
	if want.Kind() == types.KindBool {
		if bi, ok := toBig(cv); ok {
			return types.IntToBool(bi), true
		}
	}
	return cv, true
}

func (a *Analyzer) lowerArrayLiteral(n *syntax.ArrayLiteral) tt.Expr {
	elems := make([]tt.Expr, len(n.Elements))
	allConst := len(elems) > 0
	var elemTy types.Type = types.NewErr()
	for i, e := range n.Elements {
		elems[i] = a.lowerExpr(e)
		if i == 0 {
			elemTy = elems[i].Type()
		}
		if _, ok := elems[i].ConstValue(); !ok {
			allConst = false
		}
	}
	ty := types.NewArray(elemTy, []int{len(elems)})
	return &tt.ArrayLit{ExprBase: exprBaseOf(n.Span, ty, nil, allConst), Elements: elems}
}

// lowerInterpString folds an interpolated string to a plain string when
// every interpolant is const; a dynamic interpolant still lowers each part
// (for diagnostics) but the node itself is not const.
func (a *Analyzer) lowerInterpString(n *syntax.InterpString) tt.Expr {
	allConst := true
	var sb strings.Builder
	for _, p := range n.Parts {
		if p.Expr == nil {
			sb.WriteString(p.Text)
			continue
		}
		lowered := a.lowerExpr(p.Expr)
		cv, ok := lowered.ConstValue()
		if !ok {
			allConst = false
			continue
		}
		sb.WriteString(stringifyConst(cv))
	}
	return &tt.Lit{
		ExprBase: exprBaseOf(n.Span, types.NewVoid(), sb.String(), allConst),
		Value:    sb.String(),
	}
}

func stringifyConst(v any) string {
	switch x := v.(type) {
	case *big.Int:
		return x.String()
	case bool:
		if x {
			return "true"
		}
		return "false"
	case string:
		return x
	default:
		return ""
	}
}
