package partialeval

import (
	"math/big"

	"github.com/rirlang/rirc/internal/rir"
	"github.com/rirlang/rirc/internal/syntax"
	"github.com/rirlang/rirc/internal/types"
)

// valueTypeOf maps a classical lattice type to the narrower RIR value type
// carried by a runtime Variable. Composite and big-width types fall back to
// Pointer: the driver never arithmetic-folds them at runtime, only at
// compile time while they stay Classical.
func valueTypeOf(t types.Type) rir.ValueType {
	switch t.Kind() {
	case types.KindBit, types.KindBool:
		return rir.Boolean
	case types.KindInt, types.KindUInt:
		if types.IsBig(t) {
			return rir.Pointer
		}
		return rir.Integer
	case types.KindFloat, types.KindAngle:
		return rir.Double
	case types.KindQubit, types.KindHardwareQubit:
		return rir.Pointer
	default:
		return rir.Pointer
	}
}

// asBool coerces a classical value to bool, for condition evaluation.
func asBool(v any) (bool, bool) {
	switch x := v.(type) {
	case bool:
		return x, true
	case *big.Int:
		return x.Sign() != 0, true
	default:
		return false, false
	}
}

// asBigInt coerces a classical value to *big.Int.
func asBigInt(v any) (*big.Int, bool) {
	switch x := v.(type) {
	case *big.Int:
		return x, true
	case int64:
		return big.NewInt(x), true
	default:
		return nil, false
	}
}

// isResultLiteral reports whether v is the raw Result literal value the
// semantic analyzer attaches to `zero`/`one` (internal/semantic/analyzer.go
// sets a ResultLiteral's Lit.Value to syntax.ResultLiteralValue, distinct
// from the Bit's own folded bool const). A Result literal never went
// through a measurement, so it can't be output-recorded as a bit: a
// program that returns or outputs one is trying to record a constant that
// was never read off a qubit.
func isResultLiteral(v any) bool {
	_, ok := v.(syntax.ResultLiteralValue)
	return ok
}

// asFloat coerces a classical value to float64.
func asFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case *big.Int:
		f := new(big.Float).SetInt(x)
		r, _ := f.Float64()
		return r, true
	default:
		return 0, false
	}
}
