package semantic

import (
	"math/big"

	"github.com/rirlang/rirc/internal/syntax"
	"github.com/rirlang/rirc/internal/tt"
	"github.com/rirlang/rirc/internal/types"
)

// asInt coerces a constant value produced by const folding (int64, *big.Int,
// or float64 from a sizeof-style builtin) into a plain int for use as an
// array dimension or width. Out-of-range values are not clamped (a
// *big.Int goes through Int64, a float64 through a plain conversion),
// since callers only use this for small structural sizes.
func asInt(v any) int {
	switch n := v.(type) {
	case int64:
		return int(n)
	case int:
		return n
	case *big.Int:
		return int(n.Int64())
	case float64:
		return int(n)
	default:
		return 0
	}
}

func toBig(v any) (*big.Int, bool) {
	switch n := v.(type) {
	case int64:
		return big.NewInt(n), true
	case *big.Int:
		return n, true
	default:
		return nil, false
	}
}

// lowerBinaryValues folds or rebuilds a binary operation from two already
// lowered operands, used by compound assignment (`x += 1`) where the
// left-hand side is re-read rather than reparsed.
func (a *Analyzer) lowerBinaryValues(span syntax.Span, op syntax.BinaryOp, left, right tt.Expr) tt.Expr {
	resultTy := types.Promote(left.Type(), right.Type())
	cv, isConst := foldBinary(op, left, right)
	return &tt.BinOp{
		ExprBase: exprBaseOf(span, resultTy, cv, isConst),
		Op:       op,
		Left:     left,
		Right:    right,
	}
}

// foldBinary attempts compile-time evaluation of a binary operation whose
// operands are both constant. Non-const operands, or operand kinds this
// folder does not recognize, simply report isConst=false so the node stays
// dynamic for the evaluator/partial-eval driver to handle later.
func foldBinary(op syntax.BinaryOp, left, right tt.Expr) (any, bool) {
	lv, lok := left.ConstValue()
	rv, rok := right.ConstValue()
	if !lok || !rok {
		return nil, false
	}
	if lb, ok := lv.(bool); ok {
		if rb, ok := rv.(bool); ok {
			switch op {
			case syntax.OpAnd:
				return lb && rb, true
			case syntax.OpOr:
				return lb || rb, true
			case syntax.OpEq:
				return lb == rb, true
			case syntax.OpNe:
				return lb != rb, true
			}
		}
	}
	if lf, ok := lv.(float64); ok {
		if rf, ok := rv.(float64); ok {
			return foldFloat(op, lf, rf)
		}
	}
	li, lok2 := toBig(lv)
	ri, rok2 := toBig(rv)
	if lok2 && rok2 {
		return foldBig(op, li, ri)
	}
	return nil, false
}

func foldFloat(op syntax.BinaryOp, l, r float64) (any, bool) {
	switch op {
	case syntax.OpAdd:
		return l + r, true
	case syntax.OpSub:
		return l - r, true
	case syntax.OpMul:
		return l * r, true
	case syntax.OpDiv:
		if r == 0 {
			return nil, false
		}
		return l / r, true
	case syntax.OpEq:
		return l == r, true
	case syntax.OpNe:
		return l != r, true
	case syntax.OpLt:
		return l < r, true
	case syntax.OpLe:
		return l <= r, true
	case syntax.OpGt:
		return l > r, true
	case syntax.OpGe:
		return l >= r, true
	default:
		return nil, false
	}
}

func foldBig(op syntax.BinaryOp, l, r *big.Int) (any, bool) {
	z := new(big.Int)
	switch op {
	case syntax.OpAdd:
		return z.Add(l, r), true
	case syntax.OpSub:
		return z.Sub(l, r), true
	case syntax.OpMul:
		return z.Mul(l, r), true
	case syntax.OpDiv:
		if r.Sign() == 0 {
			return nil, false
		}
		return z.Quo(l, r), true
	case syntax.OpMod:
		if r.Sign() == 0 {
			return nil, false
		}
		return z.Rem(l, r), true
	case syntax.OpBAnd:
		return z.And(l, r), true
	case syntax.OpBOr:
		return z.Or(l, r), true
	case syntax.OpBXor:
		return z.Xor(l, r), true
	case syntax.OpShl:
		return z.Lsh(l, uint(r.Int64())), true
	case syntax.OpShr:
		return z.Rsh(l, uint(r.Int64())), true
	case syntax.OpPow:
		if r.Sign() < 0 {
			return nil, false
		}
		return z.Exp(l, r, nil), true
	case syntax.OpEq:
		return l.Cmp(r) == 0, true
	case syntax.OpNe:
		return l.Cmp(r) != 0, true
	case syntax.OpLt:
		return l.Cmp(r) < 0, true
	case syntax.OpLe:
		return l.Cmp(r) <= 0, true
	case syntax.OpGt:
		return l.Cmp(r) > 0, true
	case syntax.OpGe:
		return l.Cmp(r) >= 0, true
	default:
		return nil, false
	}
}

func foldUnary(op syntax.UnaryOp, x tt.Expr) (any, bool) {
	xv, ok := x.ConstValue()
	if !ok {
		return nil, false
	}
	switch v := xv.(type) {
	case bool:
		if op == syntax.UnaryNot {
			return !v, true
		}
	case float64:
		switch op {
		case syntax.UnaryMinus:
			return -v, true
		case syntax.UnaryPlus:
			return v, true
		}
	default:
		if bi, ok := toBig(xv); ok {
			switch op {
			case syntax.UnaryMinus:
				return new(big.Int).Neg(bi), true
			case syntax.UnaryPlus:
				return bi, true
			case syntax.UnaryBitNot:
				return new(big.Int).Not(bi), true
			}
		}
	}
	return nil, false
}
