package types

// Promote computes the type of a binary operation over a and b: combining
// two sized numeric types yields the maximum width; combining sized with
// unsized yields unsized; const propagates only when both operands are
// const.
func Promote(a, b Type) Type {
	if IsErr(a) || IsErr(b) {
		return NewErr()
	}
	cnst := a.IsConst() && b.IsConst()

	if a.Kind() != b.Kind() {
		// Mixed-kind promotion follows the numeric rank order; non-numeric
		// mixes are not promotable and type to Err (the analyzer should
		// have already inserted an explicit cast before reaching here).
		ra, oka := numericRank(a.Kind())
		rb, okb := numericRank(b.Kind())
		if !oka || !okb {
			return NewErr()
		}
		if ra > rb {
			return rebuildWidth(a, widthOrNil(a), cnst)
		}
		return rebuildWidth(b, widthOrNil(b), cnst)
	}

	wa, hasA := WidthOf(a)
	wb, hasB := WidthOf(b)
	var w *int
	switch {
	case hasA && hasB:
		if wa >= wb {
			w = withWidth(wa)
		} else {
			w = withWidth(wb)
		}
	case hasA || hasB:
		w = nil // sized combined with unsized => unsized
	default:
		w = nil
	}
	return rebuildWidth(a, w, cnst)
}

// numericRank orders the numeric kinds so that a mixed binary op promotes
// toward the "richer" operand (e.g. Int + Float => Float).
func numericRank(k Kind) (int, bool) {
	switch k {
	case KindBit:
		return 0, true
	case KindBool:
		return 1, true
	case KindInt:
		return 2, true
	case KindUInt:
		return 2, true
	case KindAngle:
		return 3, true
	case KindFloat:
		return 4, true
	case KindComplex:
		return 5, true
	default:
		return 0, false
	}
}

func widthOrNil(t Type) *int {
	w, ok := WidthOf(t)
	if !ok {
		return nil
	}
	return withWidth(w)
}

func rebuildWidth(like Type, w *int, cnst bool) Type {
	switch like.Kind() {
	case KindInt:
		return NewInt(w, cnst)
	case KindUInt:
		return NewUInt(w, cnst)
	case KindFloat:
		return NewFloat(w, cnst)
	case KindAngle:
		return NewAngle(w, cnst)
	case KindComplex:
		return NewComplex(w, cnst)
	case KindBit:
		return NewBit(cnst)
	case KindBool:
		return NewBool(cnst)
	default:
		return like
	}
}
