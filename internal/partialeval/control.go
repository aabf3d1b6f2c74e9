package partialeval

import (
	"math/big"
	"reflect"

	"github.com/rirlang/rirc/internal/eval"
	"github.com/rirlang/rirc/internal/rir"
	"github.com/rirlang/rirc/internal/symtab"
	"github.com/rirlang/rirc/internal/tt"
	"github.com/rirlang/rirc/internal/types"
)

// maxUnroll bounds a while/for loop's iteration count; a classical bound
// that exceeds it is almost certainly a runaway loop rather than an
// intentional large but finite one, so compilation fails rather than
// hanging.
const maxUnroll = 1 << 20

func (d *Driver) compileIf(n *tt.If) (signal, error) {
	cond, err := d.evalExpr(n.Cond)
	if err != nil {
		return sigNone, err
	}
	if cond.IsClassical() {
		b, _ := asBool(cond.Classical)
		if b {
			return d.compileStmt(n.Then)
		}
		if n.Else != nil {
			return d.compileStmt(n.Else)
		}
		return sigNone, nil
	}
	return d.compileDynamicIf(n, cond)
}

// compileDynamicIf materializes a real Branch/Jump diamond for a condition
// that only resolves at runtime. Any symbol reassigned along one arm but
// not the other needs its value joined back together at the merge block;
// this driver does that by storing each arm's final value into a fresh
// merge variable right before that arm's Jump, the same "other-branch
// store" trick a block-structured IR without phi nodes always falls back
// to.
func (d *Driver) compileDynamicIf(n *tt.If, cond eval.Value) (signal, error) {
	before := d.env.Snapshot()

	thenBlk := d.prog.AddBlock()
	elseBlk := d.prog.AddBlock()
	joinBlk := d.prog.AddBlock()
	d.emit(rir.Branch(cond.ToRIR(), thenBlk.Id, elseBlk.Id).WithSpan(d.curSpan()))

	d.blk = thenBlk
	thenSig, err := d.compileStmt(n.Then)
	if err != nil {
		return sigNone, err
	}
	thenAfter, thenEnd := d.env.Snapshot(), d.blk
	if thenSig == sigNone {
		d.emit(rir.Jump(joinBlk.Id))
	}

	d.blk = elseBlk
	elseAfter, elseSig := before, sigNone
	if n.Else != nil {
		elseSig, err = d.compileStmt(n.Else)
		if err != nil {
			return sigNone, err
		}
		elseAfter = d.env.Snapshot()
	}
	elseEnd := d.blk
	if elseSig == sigNone {
		d.emit(rir.Jump(joinBlk.Id))
	}

	d.blk = joinBlk
	d.mergeBranches(before, thenAfter, thenEnd, thenSig, elseAfter, elseEnd, elseSig)

	if thenSig != sigNone && thenSig == elseSig {
		return thenSig, nil
	}
	return sigNone, nil
}

func (d *Driver) mergeBranches(
	before, thenAfter map[symtab.ID]eval.Value, thenEnd *rir.Block, thenSig signal,
	elseAfter map[symtab.ID]eval.Value, elseEnd *rir.Block, elseSig signal,
) {
	changed := map[symtab.ID]types.Type{}
	if thenSig == sigNone {
		for id, v := range thenAfter {
			if !sameValue(v, before[id]) {
				changed[id] = v.Ty
			}
		}
	}
	if elseSig == sigNone {
		for id, v := range elseAfter {
			if !sameValue(v, before[id]) {
				changed[id] = v.Ty
			}
		}
	}
	for id, ty := range changed {
		mv := d.newVar(ty)
		if thenSig == sigNone {
			tv := thenAfter[id]
			insertBeforeTerminator(thenEnd, rir.Store(mv, tv.ToRIR()).WithSpan(d.curSpan()))
		}
		if elseSig == sigNone {
			ev := elseAfter[id]
			insertBeforeTerminator(elseEnd, rir.Store(mv, ev.ToRIR()).WithSpan(d.curSpan()))
		}
		d.env.Set(id, eval.Dynamic(mv, ty))
	}
}

func insertBeforeTerminator(b *rir.Block, instr rir.Instruction) {
	n := len(b.Instructions)
	if n == 0 {
		b.Instructions = append(b.Instructions, instr)
		return
	}
	last := b.Instructions[n-1]
	b.Instructions[n-1] = instr
	b.Instructions = append(b.Instructions, last)
}

func sameValue(a, b eval.Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	if a.Kind == eval.KindDynamic {
		return a.Var.Id == b.Var.Id
	}
	return reflect.DeepEqual(a.Classical, b.Classical)
}

// compileWhile only supports a condition that folds to a compile-time
// constant on every iteration: RIR has no backward jump, so a while loop
// is compiled by unrolling it, never by emitting a loop-carried Branch.
func (d *Driver) compileWhile(n *tt.While) (signal, error) {
	for i := 0; i < maxUnroll; i++ {
		cond, err := d.evalExpr(n.Cond)
		if err != nil {
			return sigNone, err
		}
		if cond.IsDynamic() {
			return sigNone, d.fail(EvaluationFailed, "while condition depends on a runtime value; only a classical condition can be unrolled")
		}
		b, _ := asBool(cond.Classical)
		if !b {
			return sigNone, nil
		}
		sig, err := d.compileStmt(n.Body)
		if err != nil {
			return sigNone, err
		}
		switch sig {
		case sigBreak:
			return sigNone, nil
		case sigReturn:
			return sigReturn, nil
		}
	}
	return sigNone, d.fail(EvaluationFailed, "while loop did not terminate within the unrolling limit")
}

// compileFor unrolls a range-bounded for loop; the range's start/step/end
// must each fold to a classical Int, since the loop variable's value at
// every iteration becomes part of the compile-time unrolled program text.
func (d *Driver) compileFor(n *tt.For) (signal, error) {
	rv, ok := n.Iterable.(*tt.RangeVal)
	if !ok {
		return sigNone, d.fail(Unexpected, "for-loop iterable must be a range")
	}
	start, step, end, err := d.evalRangeBounds(rv)
	if err != nil {
		return sigNone, err
	}
	if step.Sign() == 0 {
		return sigNone, d.fail(RangeStepZero, "for-loop range step must not be zero")
	}
	loopTy := types.NewInt(nil, false)
	cur := new(big.Int).Set(start)
	for i := 0; i < maxUnroll; i++ {
		if step.Sign() > 0 && cur.Cmp(end) > 0 {
			return sigNone, nil
		}
		if step.Sign() < 0 && cur.Cmp(end) < 0 {
			return sigNone, nil
		}
		saved := d.env
		d.env = eval.NewEnclosedEnvironment(saved)
		d.env.Define(n.Symbol, eval.Classical(new(big.Int).Set(cur), loopTy))
		sig, err := d.compileStmt(n.Body)
		d.env = saved
		if err != nil {
			return sigNone, err
		}
		switch sig {
		case sigBreak:
			return sigNone, nil
		case sigReturn:
			return sigReturn, nil
		}
		cur = new(big.Int).Add(cur, step)
	}
	return sigNone, d.fail(EvaluationFailed, "for loop did not terminate within the unrolling limit")
}

func (d *Driver) evalRangeBounds(rv *tt.RangeVal) (start, step, end *big.Int, err error) {
	start = big.NewInt(0)
	step = big.NewInt(1)
	if rv.Start != nil {
		v, e := d.evalExpr(rv.Start)
		if e != nil {
			return nil, nil, nil, e
		}
		if v.IsDynamic() {
			return nil, nil, nil, d.fail(EvaluationFailed, "for-loop range start must be classical")
		}
		start, _ = asBigInt(v.Classical)
	}
	if rv.Step != nil {
		v, e := d.evalExpr(rv.Step)
		if e != nil {
			return nil, nil, nil, e
		}
		if v.IsDynamic() {
			return nil, nil, nil, d.fail(EvaluationFailed, "for-loop range step must be classical")
		}
		step, _ = asBigInt(v.Classical)
	}
	if rv.End == nil {
		return nil, nil, nil, d.fail(Unexpected, "for-loop range is missing an end bound")
	}
	v, e := d.evalExpr(rv.End)
	if e != nil {
		return nil, nil, nil, e
	}
	if v.IsDynamic() {
		return nil, nil, nil, d.fail(EvaluationFailed, "for-loop range end must be classical")
	}
	end, _ = asBigInt(v.Classical)
	return start, step, end, nil
}

func (d *Driver) compileSwitch(n *tt.Switch) (signal, error) {
	scrut, err := d.evalExpr(n.Scrutinee)
	if err != nil {
		return sigNone, err
	}
	if scrut.IsDynamic() {
		return sigNone, d.fail(EvaluationFailed, "switch scrutinee must be classical; dynamic switches are not supported")
	}
	for _, c := range n.Cases {
		for _, lbl := range c.Labels {
			lv, err := d.evalExpr(lbl)
			if err != nil {
				return sigNone, err
			}
			if lv.IsClassical() && classicalEqual(scrut.Classical, lv.Classical) {
				return d.compileStmt(c.Body)
			}
		}
	}
	return sigNone, nil
}

func classicalEqual(a, b any) bool {
	if ab, ok := asBigInt(a); ok {
		if bb, ok2 := asBigInt(b); ok2 {
			return ab.Cmp(bb) == 0
		}
	}
	return reflect.DeepEqual(a, b)
}

func (d *Driver) compileReturn(n *tt.Return) (signal, error) {
	if n.Value == nil {
		d.returnValue = nil
		return sigReturn, nil
	}
	v, err := d.evalExpr(n.Value)
	if err != nil {
		return sigNone, err
	}
	if v.IsClassical() && isResultLiteral(v.Classical) {
		return sigNone, d.fail(OutputResultLiteral, "a literal Result cannot be returned as program output")
	}
	d.returnValue = &v
	return sigReturn, nil
}
