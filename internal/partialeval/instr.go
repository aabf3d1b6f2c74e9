package partialeval

import (
	"math/big"

	"github.com/rirlang/rirc/internal/eval"
	"github.com/rirlang/rirc/internal/rir"
	"github.com/rirlang/rirc/internal/syntax"
	"github.com/rirlang/rirc/internal/tt"
	"github.com/rirlang/rirc/internal/types"
)

// evalExpr partially evaluates x: a Classical result is returned directly
// without touching the instruction stream; a Dynamic result has already
// had whatever instructions it needs appended to the current block.
func (d *Driver) evalExpr(x tt.Expr) (eval.Value, error) {
	switch n := x.(type) {
	case *tt.Ident:
		return d.evalIdent(n)
	case *tt.Lit:
		return eval.Classical(n.Value, n.Type()), nil
	case *tt.Cast:
		return d.evalCast(n)
	case *tt.BinOp:
		return d.evalBinOp(n)
	case *tt.UnOp:
		return d.evalUnOp(n)
	case *tt.Ternary:
		return d.evalTernary(n)
	case *tt.RangeVal:
		return eval.Value{}, d.fail(Unexpected, "a range value cannot be used outside a for-loop iterable")
	case *tt.Index:
		return d.evalIndex(n)
	case *tt.MultiIndex:
		return d.evalMultiIndex(n)
	case *tt.Call:
		return d.evalCall(n)
	case *tt.ArrayLit:
		return d.evalArrayLit(n)
	case *tt.ErrExpr:
		return eval.Value{}, d.fail(Unexpected, "expression failed type analysis")
	default:
		return eval.Value{}, d.fail(Unexpected, "unhandled expression kind %T", n)
	}
}

func (d *Driver) evalIdent(n *tt.Ident) (eval.Value, error) {
	if cv, ok := n.ConstValue(); ok {
		return eval.Classical(cv, n.Type()), nil
	}
	if v, ok := d.env.Get(n.Symbol); ok {
		return v, nil
	}
	return eval.Value{}, d.fail(Unexpected, "symbol %q has no bound value at this point", n.Name)
}

func (d *Driver) evalCast(n *tt.Cast) (eval.Value, error) {
	if cv, ok := n.ConstValue(); ok {
		return eval.Classical(cv, n.Type()), nil
	}
	x, err := d.evalExpr(n.X)
	if err != nil {
		return eval.Value{}, err
	}
	if x.IsClassical() {
		cv, ok := convertClassical(x.Classical, n.Type())
		if !ok {
			return eval.Value{}, d.fail(Unexpected, "cannot convert constant %v to %s", x.Classical, n.Type())
		}
		return eval.Classical(cv, n.Type()), nil
	}
	// Dynamic: same bit pattern, reinterpreted under the destination's RIR
	// value type. Boolean<->Integer reinterpretation is the only cast this
	// evaluator needs at runtime (angle/float casts never apply to a
	// qubit-derived Boolean).
	dst := d.newVar(n.Type())
	d.emit(rir.Store(dst, x.ToRIR()).WithSpan(d.curSpan()))
	return eval.Dynamic(dst, n.Type()), nil
}

func convertClassical(v any, want types.Type) (any, bool) {
	switch want.Kind() {
	case types.KindBool:
		switch x := v.(type) {
		case *big.Int:
			return x.Sign() != 0, true
		case bool:
			return x, true
		}
	case types.KindInt, types.KindUInt:
		switch x := v.(type) {
		case bool:
			if x {
				return big.NewInt(1), true
			}
			return big.NewInt(0), true
		case *big.Int:
			return x, true
		case float64:
			return big.NewInt(int64(x)), true
		}
	case types.KindFloat, types.KindAngle:
		if f, ok := asFloat(v); ok {
			return f, true
		}
	}
	return nil, false
}

func (d *Driver) evalBinOp(n *tt.BinOp) (eval.Value, error) {
	if cv, ok := n.ConstValue(); ok {
		return eval.Classical(cv, n.Type()), nil
	}
	// Short-circuit Boolean laws: `false and X` / `true or X` never need X
	// evaluated, matching how a hardware-bound evaluator must avoid
	// emitting instructions for a branch that can never execute.
	if n.Op == syntax.OpAnd || n.Op == syntax.OpOr {
		return d.evalShortCircuit(n)
	}
	if n.Op == syntax.OpPow {
		return d.evalPow(n)
	}
	l, err := d.evalExpr(n.Left)
	if err != nil {
		return eval.Value{}, err
	}
	r, err := d.evalExpr(n.Right)
	if err != nil {
		return eval.Value{}, err
	}
	if (n.Op == syntax.OpDiv || n.Op == syntax.OpMod) && r.IsClassical() && isZero(r.Classical) {
		if l.IsClassical() {
			return eval.Value{}, d.fail(DivZero, "division by zero")
		}
		return eval.Value{}, d.fail(EvaluationFailed, "division by zero")
	}
	if l.IsClassical() && r.IsClassical() {
		if cv, ok := foldBinary(n.Op, l.Classical, r.Classical); ok {
			return eval.Classical(cv, n.Type()), nil
		}
	}
	return d.emitBinary(n.Op, n.Type(), l, r)
}

func isZero(v any) bool {
	if bi, ok := asBigInt(v); ok {
		return bi.Sign() == 0
	}
	if f, ok := asFloat(v); ok {
		return f == 0
	}
	return false
}

// evalPow lowers x^n. The exponent must resolve to a classical integer:
// n<0 fails (exponentiation by a negative power has no integer result),
// and a dynamic exponent can never be unrolled into a fixed instruction
// count. n==0 folds to the constant 1 without evaluating x at all, even
// when x is dynamic — the identity holds regardless of x's value. For
// n>0 a classical base folds away entirely; a dynamic base unrolls into n
// multiplications accumulating from the constant 1, the same "no
// backward jump" unrolling compileFor already relies on.
func (d *Driver) evalPow(n *tt.BinOp) (eval.Value, error) {
	r, err := d.evalExpr(n.Right)
	if err != nil {
		return eval.Value{}, err
	}
	if !r.IsClassical() {
		return eval.Value{}, d.fail(Unexpected, "exponent must be a classical integer")
	}
	exp, ok := asBigInt(r.Classical)
	if !ok {
		return eval.Value{}, d.fail(Unexpected, "exponent must be a classical integer")
	}
	if exp.Sign() < 0 {
		return eval.Value{}, d.fail(EvaluationFailed, "exponent must be non-negative")
	}
	if exp.Sign() == 0 {
		return eval.Classical(big.NewInt(1), n.Type()), nil
	}

	l, err := d.evalExpr(n.Left)
	if err != nil {
		return eval.Value{}, err
	}
	if l.IsClassical() {
		if base, ok := asBigInt(l.Classical); ok {
			return eval.Classical(new(big.Int).Exp(base, exp, nil), n.Type()), nil
		}
	}

	acc := eval.Classical(big.NewInt(1), n.Type())
	for i, count := int64(0), exp.Int64(); i < count; i++ {
		v, err := d.emitBinary(syntax.OpMul, n.Type(), acc, l)
		if err != nil {
			return eval.Value{}, err
		}
		acc = v
	}
	return acc, nil
}

func (d *Driver) evalShortCircuit(n *tt.BinOp) (eval.Value, error) {
	l, err := d.evalExpr(n.Left)
	if err != nil {
		return eval.Value{}, err
	}
	if l.IsClassical() {
		lb, _ := asBool(l.Classical)
		if (n.Op == syntax.OpAnd && !lb) || (n.Op == syntax.OpOr && lb) {
			return eval.Classical(lb, types.NewBool(true)), nil
		}
		return d.evalExpr(n.Right)
	}
	return d.compileDynamicShortCircuit(n, l)
}

// compileDynamicShortCircuit materializes the Branch/Jump diamond a
// dynamic `and`/`or` needs: the right operand, and whatever side effects
// evaluating it carries (a measurement, say), is only emitted on the arm
// where it can actually change the result. Mirrors the then/else/join
// shape compileDynamicIf already builds for an `if` with a dynamic
// condition, just with the "then" arm fixed to the short-circuit constant
// instead of a source statement.
func (d *Driver) compileDynamicShortCircuit(n *tt.BinOp, l eval.Value) (eval.Value, error) {
	evalBlk := d.prog.AddBlock()
	shortBlk := d.prog.AddBlock()
	joinBlk := d.prog.AddBlock()

	if n.Op == syntax.OpAnd {
		d.emit(rir.Branch(l.ToRIR(), evalBlk.Id, shortBlk.Id).WithSpan(d.curSpan()))
	} else {
		d.emit(rir.Branch(l.ToRIR(), shortBlk.Id, evalBlk.Id).WithSpan(d.curSpan()))
	}

	dst := d.newVar(n.Type())

	d.blk = shortBlk
	d.emit(rir.Store(dst, rir.BoolValue(n.Op == syntax.OpOr)).WithSpan(d.curSpan()))
	d.emit(rir.Jump(joinBlk.Id))

	d.blk = evalBlk
	r, err := d.evalExpr(n.Right)
	if err != nil {
		return eval.Value{}, err
	}
	d.emit(rir.Store(dst, r.ToRIR()).WithSpan(d.curSpan()))
	d.emit(rir.Jump(joinBlk.Id))

	d.blk = joinBlk
	return eval.Dynamic(dst, n.Type()), nil
}

func (d *Driver) emitBinary(op syntax.BinaryOp, resultTy types.Type, l, r eval.Value) (eval.Value, error) {
	rirOp, ok := binOpFor(op, resultTy, l.Ty)
	if !ok {
		return eval.Value{}, d.fail(Unexpected, "operator %s has no runtime instruction", op)
	}
	dst := d.newVar(resultTy)
	d.emit(rir.Binary(rirOp, dst, l.ToRIR(), r.ToRIR()).WithSpan(d.curSpan()))
	return eval.Dynamic(dst, resultTy), nil
}

// binOpFor maps a source operator plus its operand type to the RIR opcode
// used when at least one operand is dynamic.
func binOpFor(op syntax.BinaryOp, resultTy, operandTy types.Type) (rir.Op, bool) {
	isFloat := operandTy != nil && (operandTy.Kind() == types.KindFloat || operandTy.Kind() == types.KindAngle)
	switch op {
	case syntax.OpAdd:
		if isFloat {
			return rir.OpFadd, true
		}
		return rir.OpAdd, true
	case syntax.OpSub:
		if isFloat {
			return rir.OpFsub, true
		}
		return rir.OpSub, true
	case syntax.OpMul:
		if isFloat {
			return rir.OpFmul, true
		}
		return rir.OpMul, true
	case syntax.OpDiv:
		if isFloat {
			return rir.OpFdiv, true
		}
		return rir.OpSdiv, true
	case syntax.OpMod:
		return rir.OpSrem, true
	case syntax.OpShl:
		return rir.OpShl, true
	case syntax.OpShr:
		return rir.OpAshr, true
	case syntax.OpBAnd:
		return rir.OpBitwiseAnd, true
	case syntax.OpBOr:
		return rir.OpBitwiseOr, true
	case syntax.OpBXor:
		return rir.OpBitwiseXor, true
	case syntax.OpEq:
		if isFloat {
			return rir.OpFcmp, true
		}
		return rir.OpIcmpEq, true
	case syntax.OpNe:
		return rir.OpIcmpNe, true
	case syntax.OpLt:
		return rir.OpIcmpSlt, true
	case syntax.OpLe:
		return rir.OpIcmpSle, true
	case syntax.OpGt:
		return rir.OpIcmpSgt, true
	case syntax.OpGe:
		return rir.OpIcmpSge, true
	default:
		return 0, false
	}
}

func (d *Driver) evalUnOp(n *tt.UnOp) (eval.Value, error) {
	if cv, ok := n.ConstValue(); ok {
		return eval.Classical(cv, n.Type()), nil
	}
	x, err := d.evalExpr(n.X)
	if err != nil {
		return eval.Value{}, err
	}
	if x.IsClassical() {
		switch c := x.Classical.(type) {
		case bool:
			if n.Op == syntax.UnaryNot {
				return eval.Classical(!c, n.Type()), nil
			}
		case float64:
			if n.Op == syntax.UnaryMinus {
				return eval.Classical(-c, n.Type()), nil
			}
		}
		if bi, ok := asBigInt(x.Classical); ok && n.Op == syntax.UnaryMinus {
			return eval.Classical(new(big.Int).Neg(bi), n.Type()), nil
		}
	}
	var rirOp rir.Op
	switch n.Op {
	case syntax.UnaryNot:
		rirOp = rir.OpLogicalNot
	case syntax.UnaryBitNot:
		rirOp = rir.OpBitwiseNot
	case syntax.UnaryMinus:
		dst := d.newVar(n.Type())
		if n.Type().Kind() == types.KindFloat || n.Type().Kind() == types.KindAngle {
			d.emit(rir.Binary(rir.OpFsub, dst, rir.DoubleValue(0), x.ToRIR()).WithSpan(d.curSpan()))
		} else {
			d.emit(rir.Binary(rir.OpMul, dst, rir.IntValue(-1), x.ToRIR()).WithSpan(d.curSpan()))
		}
		return eval.Dynamic(dst, n.Type()), nil
	case syntax.UnaryPlus:
		return x, nil
	default:
		return eval.Value{}, d.fail(Unexpected, "operator %s has no runtime instruction", n.Op)
	}
	dst := d.newVar(n.Type())
	d.emit(rir.Unary(rirOp, dst, x.ToRIR()).WithSpan(d.curSpan()))
	return eval.Dynamic(dst, n.Type()), nil
}

func (d *Driver) evalTernary(n *tt.Ternary) (eval.Value, error) {
	if cv, ok := n.ConstValue(); ok {
		return eval.Classical(cv, n.Type()), nil
	}
	cond, err := d.evalExpr(n.Cond)
	if err != nil {
		return eval.Value{}, err
	}
	if cond.IsClassical() {
		b, _ := asBool(cond.Classical)
		if b {
			return d.evalExpr(n.Then)
		}
		return d.evalExpr(n.Else)
	}
	return eval.Value{}, d.fail(Unexpected, "a ternary with a dynamic condition must be lowered through an if-statement, not inline")
}

func (d *Driver) evalCall(n *tt.Call) (eval.Value, error) {
	def, ok := d.defs[n.Symbol]
	if !ok {
		return eval.Value{}, d.fail(Unexpected, "call to %q does not resolve to a known function", n.Name)
	}
	args := make([]eval.Value, len(n.Args))
	for i, a := range n.Args {
		v, err := d.evalExpr(a)
		if err != nil {
			return eval.Value{}, err
		}
		args[i] = v
	}
	return d.inlineCall(def, args)
}

// inlineCall evaluates a classical function's body in a fresh, enclosed
// environment with its parameters bound to args, capturing whatever value
// the function's Return statement produces. Functions are never emitted as
// a runtime Call: RIR's Call instruction only ever targets a gate/readout
// intrinsic, so evaluating a user function means simulating it at the call
// site, the same way partial evaluation simulates any other block.
func (d *Driver) inlineCall(def *tt.Def, args []eval.Value) (eval.Value, error) {
	saved := d.env
	d.env = eval.NewEnclosedEnvironment(saved)
	for i, p := range def.Params {
		if i < len(args) {
			d.env.Define(p.Symbol, args[i])
		}
	}
	savedReturn := d.returnValue
	d.returnValue = nil

	_, err := d.compileBlock(def.Body)

	result := d.returnValue
	d.env = saved
	d.returnValue = savedReturn
	if err != nil {
		return eval.Value{}, err
	}
	if result == nil {
		return eval.Classical(nil, types.NewVoid()), nil
	}
	return *result, nil
}

func (d *Driver) evalArrayLit(n *tt.ArrayLit) (eval.Value, error) {
	if cv, ok := n.ConstValue(); ok {
		return eval.Classical(cv, n.Type()), nil
	}
	return eval.Value{}, d.fail(Unexpected, "an array literal with a dynamic element cannot be represented at runtime")
}

func (d *Driver) curSpan() rir.Span {
	if len(d.stack) == 0 {
		return rir.Span{}
	}
	s := d.stack[len(d.stack)-1]
	return rir.Span{Lo: s.Lo, Hi: s.Hi}
}
