package partialeval

import (
	"github.com/rirlang/rirc/internal/eval"
	"github.com/rirlang/rirc/internal/gateset"
	"github.com/rirlang/rirc/internal/rir"
	"github.com/rirlang/rirc/internal/tt"
	"github.com/rirlang/rirc/internal/types"
)

func (d *Driver) compileMeasureArrow(n *tt.MeasureArrow) error {
	qid, err := d.resolveQubit(n.Qubit)
	if err != nil {
		return err
	}
	m, _ := gateset.Lookup("M")
	handle := rir.Variable{Id: d.ids.NextVarId(), Type: rir.Pointer}
	d.emit(rir.Call(&handle, d.callableFor(m), rir.QubitValue(qid)).WithSpan(d.curSpan()))
	d.ids.NextResultId()

	boolVar := d.newVar(types.NewBit(false))
	d.emit(rir.Call(&boolVar, d.readoutCallable(), rir.VarValue(handle)).WithSpan(d.curSpan()))

	if n.HasTarget {
		v := eval.Dynamic(boolVar, types.NewBit(false))
		if !d.env.Set(n.Target, v) {
			d.env.Define(n.Target, v)
		}
	}
	return nil
}

func (d *Driver) compileReset(n *tt.Reset) error {
	qid, err := d.resolveQubit(n.Qubit)
	if err != nil {
		return err
	}
	g, _ := gateset.Lookup("Reset")
	d.emit(rir.Call(nil, d.callableFor(g), rir.QubitValue(qid)).WithSpan(d.curSpan()))

	// Under Managed qubit semantics a plain (non-array) qubit's id becomes
	// reusable by a later `use` declaration once it's been reset. Array
	// elements stay pinned: freeing one slot out of an array would let a
	// later scalar `use` alias into the middle of it. Deleting the symbol
	// from qubitOf also tells releaseScopeQubits this one is already
	// freed, so scope exit doesn't return it to the pool a second time.
	if ident, ok := n.Qubit.(*tt.Ident); ok {
		d.freeQubit(qid)
		delete(d.qubitOf, ident.Symbol)
	}
	return nil
}

// modifierQubitCost sums the extra control-qubit operands a ctrl/negctrl
// modifier stack demands, evaluating each modifier's classical repeat
// count (ctrl(n) consumes n leading qubit operands as controls).
func (d *Driver) modifierQubitCost(mods []tt.Modifier) (int, error) {
	total := 0
	for _, m := range mods {
		if m.Kind != tt.ModCtrl && m.Kind != tt.ModNegCtrl {
			continue
		}
		n := 1
		if m.Arg != nil {
			v, err := d.evalExpr(m.Arg)
			if err != nil {
				return 0, err
			}
			if v.IsClassical() {
				if bi, ok := asBigInt(v.Classical); ok {
					n = int(bi.Int64())
				}
			}
		}
		total += n
	}
	return total, nil
}

func (d *Driver) compileGateCall(n *tt.GateCall) error {
	qids := make([]rir.QubitId, len(n.QubitArgs))
	seen := make(map[rir.QubitId]bool, len(qids))
	for i, qe := range n.QubitArgs {
		qid, err := d.resolveQubit(qe)
		if err != nil {
			return err
		}
		if seen[qid] {
			return d.fail(QubitUniqueness, "gate %q's qubit operands must all be distinct", n.Name)
		}
		seen[qid] = true
		qids[i] = qid
	}

	classicalVals := make([]eval.Value, len(n.ClassicalArgs))
	for i, ce := range n.ClassicalArgs {
		v, err := d.evalExpr(ce)
		if err != nil {
			return err
		}
		classicalVals[i] = v
	}

	if gd, ok := d.gateDefs[n.Symbol]; ok {
		if len(n.Modifiers) > 0 {
			return d.fail(Unexpected, "modifiers on a user-defined gate are not supported")
		}
		return d.inlineGate(gd, classicalVals, qids)
	}

	ctrlCount, err := d.modifierQubitCost(n.Modifiers)
	if err != nil {
		return err
	}
	g, ok := gateset.Lookup(n.Name)
	if !ok {
		g = gateset.Fallback(n.Name, len(n.ClassicalArgs), len(qids)-ctrlCount)
	}
	if ctrlCount > 0 {
		g.RuntimeName += "__ctl"
	}

	args := make([]rir.Value, 0, len(qids)+len(classicalVals))
	for _, v := range classicalVals {
		args = append(args, v.ToRIR())
	}
	for _, q := range qids {
		args = append(args, rir.QubitValue(q))
	}
	d.emit(rir.Call(nil, d.callableFor(g), args...).WithSpan(d.curSpan()))
	return nil
}

// inlineGate runs a user-defined gate's body with its classical parameters
// bound to classicalVals and its qubit parameters resolved to qids, in
// call order. Like inlineCall, a user gate never becomes a runtime Call of
// its own: its body's own gate calls are what eventually reach the
// runtime, so inlining just re-walks the body against the caller's actual
// qubits.
func (d *Driver) inlineGate(gd *tt.QuantumGateDefinition, classicalVals []eval.Value, qids []rir.QubitId) error {
	savedEnv := d.env
	d.env = eval.NewEnclosedEnvironment(savedEnv)
	for i, p := range gd.ClassicalParams {
		if i < len(classicalVals) {
			d.env.Define(p.Symbol, classicalVals[i])
		}
	}
	for i, paramSym := range gd.QubitParams {
		if i < len(qids) {
			d.qubitOf[paramSym] = qids[i]
		}
	}
	_, err := d.compileBlock(gd.Body)
	d.env = savedEnv
	return err
}

// buildEntryCallable registers the program's entry point: a Regular
// callable whose InputType list mirrors every Input-declared symbol, in
// declaration order, matching the order Input variables were bound to
// fresh Variables while compiling the body.
func (d *Driver) buildEntryCallable(body rir.BlockId) error {
	ins := d.Symbols.GetInput()
	inputTypes := make([]rir.ValueType, len(ins))
	for i, s := range ins {
		inputTypes[i] = valueTypeOf(s.Type)
	}

	name := d.Cfg.OperationName
	if name == "" {
		name = "main"
	}

	id := d.ids.NextCallableId()
	d.prog.AddCallable(&rir.Callable{
		Id:        id,
		Name:      name,
		CallType:  rir.CallRegular,
		InputType: inputTypes,
		Body:      &body,
	})
	d.prog.Entry = id
	return nil
}

// recordOutputs emits one output-recording Call per Output-declared symbol,
// in declaration order, right before the entry callable's terminator.
func (d *Driver) recordOutputs() error {
	for _, s := range d.Symbols.GetOutput() {
		v, ok := d.env.Get(s.ID)
		if !ok {
			continue
		}
		if v.IsClassical() && isResultLiteral(v.Classical) {
			return d.fail(OutputResultLiteral, "output %q is a literal Result, not a measured one", s.Name)
		}
		name := recordOutputName(s.Type)
		id, known := d.callables[name]
		if !known {
			id = d.ids.NextCallableId()
			d.prog.AddCallable(&rir.Callable{Id: id, Name: name, CallType: rir.CallOutputRecording, IsIntrinsic: true})
			d.callables[name] = id
		}
		call := rir.Call(nil, id, v.ToRIR(), rir.PointerValue())
		if n := len(d.blk.Instructions); n > 0 && d.blk.Instructions[n-1].IsTerminator() {
			insertBeforeTerminator(d.blk, call)
		} else {
			d.emit(call)
		}
	}
	return nil
}

func recordOutputName(ty types.Type) string {
	switch ty.Kind() {
	case types.KindBit, types.KindBool:
		return "__quantum__rt__bool_record_output"
	case types.KindInt, types.KindUInt:
		return "__quantum__rt__integer_record_output"
	case types.KindFloat, types.KindAngle:
		return "__quantum__rt__double_record_output"
	default:
		return "__quantum__rt__tuple_record_output"
	}
}
