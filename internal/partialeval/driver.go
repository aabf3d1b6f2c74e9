// Package partialeval walks a typed tree (internal/tt) and partially
// evaluates it into an internal/rir.Program: every expression whose
// operands are all compile-time constant is folded away, and every
// expression that depends on a qubit measurement or an Input declaration
// is lowered to RIR instructions operating on a runtime Variable. This
// mirrors how a tree-walking bytecode compiler walks a syntax tree
// statement-by-statement while threading a single mutable compiler state
// (scopes, constant folding, a growing instruction stream) through the
// whole pass.
package partialeval

import (
	"github.com/rirlang/rirc/internal/eval"
	"github.com/rirlang/rirc/internal/gateset"
	"github.com/rirlang/rirc/internal/rir"
	"github.com/rirlang/rirc/internal/symtab"
	"github.com/rirlang/rirc/internal/tt"
	"github.com/rirlang/rirc/internal/types"
)

// signal reports why a statement sequence stopped executing early: a loop
// control statement, or a return out of the callable currently being
// compiled. Mirrors the flag-based control-flow signaling a tree-walking
// interpreter typically uses (exitSignal/continueSignal/breakSignal)
// rather than Go's own panic/recover.
type signal int

const (
	sigNone signal = iota
	sigBreak
	sigContinue
	sigReturn
)

// Config carries the handful of internal/config options that affect how
// the driver assigns qubit ids and names the entry callable. Kept as
// plain strings rather than importing internal/config, the same way
// internal/semantic.Config does: this package stays usable on its own,
// without the CLI's config-loading machinery.
type Config struct {
	OperationName  string
	QubitSemantics string // "Managed" | "Unmanaged"
}

// Driver holds the mutable state threaded through one compilation: the
// program being assembled, the id allocator backing it, the current
// variable environment, and the block instructions are currently being
// appended to.
type Driver struct {
	Symbols *symtab.Table
	Cfg     Config

	prog *rir.Program
	ids  *rir.IDAllocator
	env  *eval.Environment
	blk  *rir.Block

	stack []Span

	qubitOf      map[symtab.ID]rir.QubitId
	qubitArrayOf map[symtab.ID][]rir.QubitId
	nextQ        rir.QubitId
	freeQubits   []rir.QubitId

	defs     map[symtab.ID]*tt.Def
	gateDefs map[symtab.ID]*tt.QuantumGateDefinition

	callables map[string]rir.CallableId // runtime name -> callable, memoized

	returnValue *eval.Value
}

// NewDriver creates a Driver ready to compile a single lowered program
// against symbols (the same table the semantic analyzer built).
func NewDriver(symbols *symtab.Table) *Driver {
	return &Driver{
		Symbols:   symbols,
		ids:       rir.NewIDAllocator(),
		env:          eval.NewEnvironment(),
		qubitOf:      make(map[symtab.ID]rir.QubitId),
		qubitArrayOf: make(map[symtab.ID][]rir.QubitId),
		defs:         make(map[symtab.ID]*tt.Def),
		gateDefs:     make(map[symtab.ID]*tt.QuantumGateDefinition),
		callables:    make(map[string]rir.CallableId),
	}
}

// Compile lowers prog into a complete RIR program: its entry callable plus
// every user-defined function/gate reachable from it.
func (d *Driver) Compile(prog *tt.Program) (*rir.Program, error) {
	d.prog = rir.NewProgram(d.ids)
	d.registerDefs(prog.Stmts)

	entry := d.prog.AddBlock()
	d.blk = entry

	for _, s := range prog.Stmts {
		sig, err := d.compileStmt(s)
		if err != nil {
			return nil, err
		}
		if sig != sigNone {
			break
		}
	}
	if err := d.recordOutputs(); err != nil {
		return nil, err
	}
	d.terminateIfOpen()

	if err := d.buildEntryCallable(entry.Id); err != nil {
		return nil, err
	}
	d.prog.NQubits = int(d.nextQ)
	d.prog.NResults = d.ids.NResults()
	return d.prog, nil
}

// registerDefs hoists every top-level function/gate definition before
// executing any statement, so a call site need not textually follow its
// definition.
func (d *Driver) registerDefs(stmts []tt.Stmt) {
	for _, s := range stmts {
		switch n := s.(type) {
		case *tt.Def:
			d.defs[n.Symbol] = n
		case *tt.QuantumGateDefinition:
			d.gateDefs[n.Symbol] = n
		}
	}
}

func (d *Driver) terminateIfOpen() {
	if len(d.blk.Instructions) == 0 || !d.blk.Instructions[len(d.blk.Instructions)-1].IsTerminator() {
		d.emit(rir.Return())
	}
}

// emit appends i to the block currently being built.
func (d *Driver) emit(i rir.Instruction) {
	d.blk.Instructions = append(d.blk.Instructions, i)
}

func (d *Driver) newVar(ty types.Type) rir.Variable {
	return rir.Variable{Id: d.ids.NextVarId(), Type: valueTypeOf(ty)}
}

func (d *Driver) pushSpan(n tt.Node) {
	s := n.Pos()
	d.stack = append(d.stack, Span{Lo: s.Lo, Hi: s.Hi})
}

func (d *Driver) popSpan() {
	if len(d.stack) > 0 {
		d.stack = d.stack[:len(d.stack)-1]
	}
}

func (d *Driver) fail(kind Kind, format string, args ...any) error {
	return newError(kind, d.stack, format, args...)
}

// callableFor memoizes a gateset.Gate as an RIR Callable, registering it at
// most once per runtime name.
func (d *Driver) callableFor(g gateset.Gate) rir.CallableId {
	if id, ok := d.callables[g.RuntimeName]; ok {
		return id
	}
	id := d.ids.NextCallableId()
	var out *rir.ValueType
	if g.HasOutput {
		ot := g.OutputType
		out = &ot
	}
	d.prog.AddCallable(&rir.Callable{
		Id:          id,
		Name:        g.RuntimeName,
		CallType:    g.CallType,
		OutputType:  out,
		IsIntrinsic: true,
	})
	d.callables[g.RuntimeName] = id
	return id
}

func (d *Driver) readoutCallable() rir.CallableId {
	if id, ok := d.callables[gateset.ReadoutName]; ok {
		return id
	}
	id := d.ids.NextCallableId()
	out := rir.Boolean
	d.prog.AddCallable(&rir.Callable{
		Id:          id,
		Name:        gateset.ReadoutName,
		CallType:    rir.CallReadout,
		OutputType:  &out,
		IsIntrinsic: true,
	})
	d.callables[gateset.ReadoutName] = id
	return id
}

// compileStmt dispatches on the concrete tt.Stmt type; each case either
// handles the statement inline or delegates to a helper in a sibling file
// (control.go, assign.go, array.go, entry.go).
func (d *Driver) compileStmt(s tt.Stmt) (signal, error) {
	d.pushSpan(s)
	defer d.popSpan()

	switch n := s.(type) {
	case *tt.ExprStmt:
		_, err := d.evalExpr(n.X)
		return sigNone, err
	case *tt.ClassicalDecl:
		return sigNone, d.compileClassicalDecl(n)
	case *tt.QubitDecl:
		d.allocQubit(n.Symbol)
		return sigNone, nil
	case *tt.QubitArrayDecl:
		ids := make([]rir.QubitId, n.Size)
		for i := 0; i < n.Size; i++ {
			id := d.nextQ
			d.nextQ++
			ids[i] = id
		}
		d.qubitArrayOf[n.Symbol] = ids
		return sigNone, nil
	case *tt.InputDecl:
		return sigNone, d.compileInputDecl(n)
	case *tt.OutputDecl:
		return sigNone, nil // recorded at entry assembly time from symtab.GetOutput
	case *tt.Assign:
		return sigNone, d.compileAssign(n)
	case *tt.IndexedAssign:
		return sigNone, d.compileIndexedAssign(n)
	case *tt.Alias:
		return sigNone, d.compileAlias(n)
	case *tt.Block:
		return d.compileBlock(n)
	case *tt.If:
		return d.compileIf(n)
	case *tt.While:
		return d.compileWhile(n)
	case *tt.For:
		return d.compileFor(n)
	case *tt.Switch:
		return d.compileSwitch(n)
	case *tt.Break:
		return sigBreak, nil
	case *tt.Continue:
		return sigContinue, nil
	case *tt.End:
		d.emit(rir.Return())
		return sigReturn, nil
	case *tt.Return:
		return d.compileReturn(n)
	case *tt.MeasureArrow:
		return sigNone, d.compileMeasureArrow(n)
	case *tt.Reset:
		return sigNone, d.compileReset(n)
	case *tt.Barrier:
		return sigNone, nil // no runtime effect in this IR's instruction set
	case *tt.Box:
		return d.compileBlock(n.Body)
	case *tt.GateCall:
		return sigNone, d.compileGateCall(n)
	case *tt.Def:
		return sigNone, nil // hoisted by registerDefs
	case *tt.QuantumGateDefinition:
		return sigNone, nil // hoisted by registerDefs
	case *tt.Pragma:
		return sigNone, nil // box/profile pragmas are consumed at analysis time
	case *tt.Delay, *tt.Extern:
		return sigNone, nil
	case *tt.Err:
		return sigNone, nil
	default:
		return sigNone, d.fail(Unexpected, "unhandled statement kind %T", n)
	}
}

// compileBlock runs b's statements in a freshly enclosed environment, so a
// declaration local to the block never leaks into the scope surrounding
// it — mirroring the semantic analyzer's own EnterScope/ExitScope pairing
// around a block, just one layer lower in the pipeline.
func (d *Driver) compileBlock(b *tt.Block) (signal, error) {
	saved := d.env
	d.env = eval.NewEnclosedEnvironment(saved)
	defer func() { d.env = saved }()

	for _, s := range b.Stmts {
		sig, err := d.compileStmt(s)
		if err != nil {
			return sigNone, err
		}
		if sig != sigNone {
			d.releaseScopeQubits(b)
			return sig, nil
		}
	}
	d.releaseScopeQubits(b)
	return sigNone, nil
}

// releaseScopeQubits returns every scalar qubit b declared directly to the
// Managed free pool on scope exit, whether the block ran to completion or
// left early on a break/continue/return. A qubit already freed by an explicit Reset
// earlier in the block is skipped: compileReset deletes the symbol's
// entry from qubitOf, so it no longer matches here and isn't freed
// twice. Qubit-array elements are left alone, same as compileReset: an
// array's slots never return to the pool since a later scalar `use`
// could alias into the middle of it.
func (d *Driver) releaseScopeQubits(b *tt.Block) {
	for _, s := range b.Stmts {
		decl, ok := s.(*tt.QubitDecl)
		if !ok {
			continue
		}
		if id, ok := d.qubitOf[decl.Symbol]; ok {
			d.freeQubit(id)
			delete(d.qubitOf, decl.Symbol)
		}
	}
}

func (d *Driver) allocQubit(sym symtab.ID) rir.QubitId {
	if d.Cfg.QubitSemantics == "Managed" && len(d.freeQubits) > 0 {
		id := d.freeQubits[len(d.freeQubits)-1]
		d.freeQubits = d.freeQubits[:len(d.freeQubits)-1]
		d.qubitOf[sym] = id
		return id
	}
	id := d.nextQ
	d.nextQ++
	d.qubitOf[sym] = id
	return id
}

// freeQubit returns id to the free pool under Managed qubit semantics, so
// a later `use` declaration can reuse the physical position a Reset just
// vacated. Under Unmanaged semantics every declared qubit keeps a distinct
// id for the program's lifetime and this is a no-op.
func (d *Driver) freeQubit(id rir.QubitId) {
	if d.Cfg.QubitSemantics == "Managed" {
		d.freeQubits = append(d.freeQubits, id)
	}
}
