package partialeval

import (
	"math/big"

	"github.com/rirlang/rirc/internal/eval"
	"github.com/rirlang/rirc/internal/tt"
	"github.com/rirlang/rirc/internal/types"
)

func (d *Driver) compileClassicalDecl(n *tt.ClassicalDecl) error {
	var v eval.Value
	if n.Init != nil {
		var err error
		v, err = d.evalExpr(n.Init)
		if err != nil {
			return err
		}
	} else {
		v = eval.Classical(zeroValue(n.Ty), n.Ty)
	}
	d.env.Define(n.Symbol, v)
	return nil
}

func zeroValue(ty types.Type) any {
	switch ty.Kind() {
	case types.KindBit, types.KindBool:
		return false
	case types.KindFloat, types.KindAngle:
		return 0.0
	case types.KindBitArray:
		sz := 0
		if s, ok := ty.(interface{ Size() int }); ok {
			sz = s.Size()
		}
		return make([]bool, sz)
	default:
		return big.NewInt(0)
	}
}

// compileInputDecl binds an Input-declared symbol to a fresh Variable: its
// value is only known once the compiled program runs, supplied by whatever
// the entry callable's parameter list at that position feeds in.
func (d *Driver) compileInputDecl(n *tt.InputDecl) error {
	v := d.newVar(n.Ty)
	d.env.Define(n.Symbol, eval.Dynamic(v, n.Ty))
	return nil
}

func (d *Driver) compileAssign(n *tt.Assign) error {
	v, err := d.evalExpr(n.Value)
	if err != nil {
		return err
	}
	if !d.env.Set(n.Symbol, v) {
		d.env.Define(n.Symbol, v)
	}
	return nil
}

func (d *Driver) compileIndexedAssign(n *tt.IndexedAssign) error {
	base, ok := d.env.Get(n.Symbol)
	if !ok {
		return d.fail(Unexpected, "assignment target has no bound value")
	}
	if base.IsDynamic() {
		return d.fail(Unexpected, "cannot assign into an element of a runtime-valued array")
	}
	value, err := d.evalExpr(n.Value)
	if err != nil {
		return err
	}
	if value.IsDynamic() {
		return d.fail(Unexpected, "cannot assign a runtime value into a classical array element")
	}
	idxs := make([]int, len(n.Indices))
	for i, ie := range n.Indices {
		iv, err := d.evalExpr(ie)
		if err != nil {
			return err
		}
		if iv.IsDynamic() {
			return d.fail(Unexpected, "array index must be classical to assign into it at compile time")
		}
		bi, ok := asBigInt(iv.Classical)
		if !ok {
			return d.fail(Unexpected, "array index did not evaluate to an integer")
		}
		idx := int(bi.Int64())
		if idx < 0 {
			return d.fail(InvalidNegativeInt, "array index must not be negative")
		}
		idxs[i] = idx
	}
	updated, err := setElement(base.Classical, idxs, value.Classical, d)
	if err != nil {
		return err
	}
	base.Classical = updated
	d.env.Set(n.Symbol, base)
	return nil
}

func setElement(container any, idxs []int, value any, d *Driver) (any, error) {
	if len(idxs) == 0 {
		return value, nil
	}
	switch c := container.(type) {
	case []bool:
		if idxs[0] < 0 || idxs[0] >= len(c) {
			return nil, d.fail(IndexOutOfRange, "bit array index %d out of range [0, %d)", idxs[0], len(c))
		}
		out := append([]bool(nil), c...)
		b, ok := value.(bool)
		if !ok {
			if bi, ok2 := asBigInt(value); ok2 {
				b = bi.Sign() != 0
			}
		}
		out[idxs[0]] = b
		return out, nil
	case []any:
		if idxs[0] < 0 || idxs[0] >= len(c) {
			return nil, d.fail(IndexOutOfRange, "array index %d out of range [0, %d)", idxs[0], len(c))
		}
		out := append([]any(nil), c...)
		elem, err := setElement(out[idxs[0]], idxs[1:], value, d)
		if err != nil {
			return nil, err
		}
		out[idxs[0]] = elem
		return out, nil
	default:
		return nil, d.fail(Unexpected, "value is not indexable")
	}
}

// compileAlias folds an alias declaration's concatenated sources into a
// single classical bit array; a dynamic source cannot be aliased this way
// since the alias symbol's whole value must exist at compile time.
func (d *Driver) compileAlias(n *tt.Alias) error {
	var out []bool
	for _, src := range n.Sources {
		v, err := d.evalExpr(src)
		if err != nil {
			return err
		}
		if v.IsDynamic() {
			return d.fail(Unexpected, "alias source must be classical")
		}
		bits, ok := v.Classical.([]bool)
		if !ok {
			return d.fail(Unexpected, "alias source must be a bit array")
		}
		out = append(out, bits...)
	}
	d.env.Define(n.Symbol, eval.Classical(out, types.NewBitArray(len(out), false)))
	return nil
}
