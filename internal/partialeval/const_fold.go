package partialeval

import (
	"math/big"

	"github.com/rirlang/rirc/internal/syntax"
)

// foldBinary mirrors internal/semantic's constant folder, but operates
// directly on already-classified classical values rather than typed-tree
// nodes: the driver needs to re-fold an operation whose operands only
// became classical once a loop was unrolled, something the semantic
// analyzer could never see ahead of time.
func foldBinary(op syntax.BinaryOp, l, r any) (any, bool) {
	lb, lok := asBigInt(l)
	rb, rok := asBigInt(r)
	if lok && rok {
		return foldBig(op, lb, rb)
	}
	lf, lok := asFloat(l)
	rf, rok := asFloat(r)
	if lok && rok {
		return foldFloat(op, lf, rf)
	}
	lBool, lok := l.(bool)
	rBool, rok := r.(bool)
	if lok && rok {
		switch op {
		case syntax.OpAnd:
			return lBool && rBool, true
		case syntax.OpOr:
			return lBool || rBool, true
		case syntax.OpEq:
			return lBool == rBool, true
		case syntax.OpNe:
			return lBool != rBool, true
		}
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
	switch op {
	case syntax.OpAdd:
		return new(big.Int).Add(l, r), true
	case syntax.OpSub:
		return new(big.Int).Sub(l, r), true
	case syntax.OpMul:
		return new(big.Int).Mul(l, r), true
	case syntax.OpDiv:
		if r.Sign() == 0 {
			return nil, false
		}
		return new(big.Int).Quo(l, r), true
	case syntax.OpMod:
		if r.Sign() == 0 {
			return nil, false
		}
		return new(big.Int).Rem(l, r), true
	case syntax.OpBAnd:
		return new(big.Int).And(l, r), true
	case syntax.OpBOr:
		return new(big.Int).Or(l, r), true
	case syntax.OpBXor:
		return new(big.Int).Xor(l, r), true
	case syntax.OpShl:
		return new(big.Int).Lsh(l, uint(r.Int64())), true
	case syntax.OpShr:
		return new(big.Int).Rsh(l, uint(r.Int64())), true
	case syntax.OpPow:
		if r.Sign() < 0 {
			return nil, false
		}
		return new(big.Int).Exp(l, r, nil), true
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
