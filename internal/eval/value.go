// Package eval holds the runtime value representation and variable
// environment shared by the partial-evaluation driver: every value flowing
// through a compilation is either Classical (known at compile time, folded
// directly) or Dynamic (backed by an RIR variable, resolved only once the
// program runs).
package eval

import (
	"math/big"

	"github.com/rirlang/rirc/internal/rir"
	"github.com/rirlang/rirc/internal/types"
)

// Kind distinguishes a compile-time value from one that only exists once
// the emitted program runs.
type Kind int

const (
	KindClassical Kind = iota
	KindDynamic
)

// Value is the tagged union the evaluator operates on. Exactly one of
// Classical/Var is meaningful, selected by Kind.
type Value struct {
	Kind      Kind
	Classical any          // bool, *big.Int, float64, []bool, []Value, ...
	Var       rir.Variable // meaningful when Kind == KindDynamic
	Ty        types.Type
}

// Classical wraps a compile-time constant with its static type.
func Classical(v any, ty types.Type) Value {
	return Value{Kind: KindClassical, Classical: v, Ty: ty}
}

// Dynamic wraps a reference to an RIR variable that will hold this value at
// runtime.
func Dynamic(v rir.Variable, ty types.Type) Value {
	return Value{Kind: KindDynamic, Var: v, Ty: ty}
}

func (v Value) IsClassical() bool { return v.Kind == KindClassical }
func (v Value) IsDynamic() bool   { return v.Kind == KindDynamic }

// ToRIR lowers v to the rir.Value the instruction builder should reference:
// a literal for a classical value, a variable read for a dynamic one.
func (v Value) ToRIR() rir.Value {
	if v.Kind == KindDynamic {
		return rir.VarValue(v.Var)
	}
	return classicalToRIR(v.Classical, v.Ty)
}

func classicalToRIR(v any, ty types.Type) rir.Value {
	switch x := v.(type) {
	case bool:
		return rir.BoolValue(x)
	case float64:
		return rir.DoubleValue(x)
	case int64:
		return rir.IntValue(x)
	case *big.Int:
		return rir.IntValue(x.Int64())
	default:
		return rir.BoolValue(false)
	}
}
