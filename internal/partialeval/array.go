package partialeval

import (
	"github.com/rirlang/rirc/internal/eval"
	"github.com/rirlang/rirc/internal/rir"
	"github.com/rirlang/rirc/internal/tt"
)

func (d *Driver) evalIndex(n *tt.Index) (eval.Value, error) {
	if cv, ok := n.ConstValue(); ok {
		return eval.Classical(cv, n.Type()), nil
	}
	idx, err := d.evalExpr(n.Index)
	if err != nil {
		return eval.Value{}, err
	}
	if idx.IsDynamic() {
		return eval.Value{}, d.fail(Unexpected, "array indices must be classical; dynamic indexing is not supported")
	}
	i, ok := asBigInt(idx.Classical)
	if !ok {
		return eval.Value{}, d.fail(Unexpected, "array index did not evaluate to an integer")
	}
	idxInt := int(i.Int64())
	if idxInt < 0 {
		return eval.Value{}, d.fail(InvalidNegativeInt, "array index must not be negative")
	}

	base, err := d.evalExpr(n.Base)
	if err != nil {
		return eval.Value{}, err
	}
	if base.IsDynamic() {
		return eval.Value{}, d.fail(Unexpected, "cannot index a runtime-valued array")
	}
	elem, err := getElement(base.Classical, idxInt, d)
	if err != nil {
		return eval.Value{}, err
	}
	return eval.Classical(elem, n.Type()), nil
}

func getElement(container any, idx int, d *Driver) (any, error) {
	switch c := container.(type) {
	case []bool:
		if idx < 0 || idx >= len(c) {
			return nil, d.fail(IndexOutOfRange, "bit array index %d out of range [0, %d)", idx, len(c))
		}
		return c[idx], nil
	case []any:
		if idx < 0 || idx >= len(c) {
			return nil, d.fail(IndexOutOfRange, "array index %d out of range [0, %d)", idx, len(c))
		}
		return c[idx], nil
	default:
		return nil, d.fail(Unexpected, "value is not indexable")
	}
}

func (d *Driver) evalMultiIndex(n *tt.MultiIndex) (eval.Value, error) {
	if cv, ok := n.ConstValue(); ok {
		return eval.Classical(cv, n.Type()), nil
	}
	base, err := d.evalExpr(n.Base)
	if err != nil {
		return eval.Value{}, err
	}
	if base.IsDynamic() {
		return eval.Value{}, d.fail(Unexpected, "cannot index a runtime-valued array")
	}
	cur := base.Classical
	for _, ie := range n.Indices {
		idx, err := d.evalExpr(ie)
		if err != nil {
			return eval.Value{}, err
		}
		if idx.IsDynamic() {
			return eval.Value{}, d.fail(Unexpected, "array indices must be classical")
		}
		i, ok := asBigInt(idx.Classical)
		if !ok {
			return eval.Value{}, d.fail(Unexpected, "array index did not evaluate to an integer")
		}
		cur, err = getElement(cur, int(i.Int64()), d)
		if err != nil {
			return eval.Value{}, err
		}
	}
	return eval.Classical(cur, n.Type()), nil
}

// resolveQubit resolves a qubit-typed expression (an Identifier naming a
// single qubit, or an Index into a qubit array) to the RIR QubitId backing
// it. Qubits never flow through eval.Value: they are always classical
// identities known at compile time, per the symbol table's own qubit
// accounting.
func (d *Driver) resolveQubit(e tt.Expr) (rir.QubitId, error) {
	switch n := e.(type) {
	case *tt.Ident:
		if id, ok := d.qubitOf[n.Symbol]; ok {
			return id, nil
		}
		return 0, d.fail(Unexpected, "symbol %q does not refer to a single qubit", n.Name)
	case *tt.Index:
		base, ok := n.Base.(*tt.Ident)
		if !ok {
			return 0, d.fail(Unexpected, "qubit array base must be a plain identifier")
		}
		ids, ok := d.qubitArrayOf[base.Symbol]
		if !ok {
			return 0, d.fail(Unexpected, "symbol %q is not a qubit array", base.Name)
		}
		idx, err := d.evalExpr(n.Index)
		if err != nil {
			return 0, err
		}
		if idx.IsDynamic() {
			return 0, d.fail(Unexpected, "qubit array index must be classical")
		}
		bi, ok := asBigInt(idx.Classical)
		if !ok {
			return 0, d.fail(Unexpected, "qubit array index did not evaluate to an integer")
		}
		i := int(bi.Int64())
		if i < 0 || i >= len(ids) {
			return 0, d.fail(IndexOutOfRange, "qubit array index %d out of range [0, %d)", i, len(ids))
		}
		return ids[i], nil
	default:
		return 0, d.fail(Unexpected, "unsupported qubit operand kind %T", n)
	}
}
