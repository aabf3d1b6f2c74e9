// Package rir implements a quantum intermediate representation: typed
// SSA-style instructions, basic blocks, and labeled callables suitable for
// submission to quantum backends.
package rir

import "fmt"

// CallableId, BlockId and VarId are dense integer ids allocated by
// IDAllocator. They are distinct types so a Block's successor list can
// never be confused with a variable reference at compile time.
type CallableId int
type BlockId int
type VarId int

// QubitId and ResultId identify quantum registers and measurement results.
// Both form contiguous prefixes starting at 0 within a compilation unit.
type QubitId int
type ResultId int

// CallType classifies a Callable: a regular classical/quantum callable, a
// measurement, a readout (Result -> Boolean), or an output-recording sink.
type CallType int

const (
	CallRegular CallType = iota
	CallMeasurement
	CallReadout
	CallOutputRecording
)

func (c CallType) String() string {
	switch c {
	case CallRegular:
		return "Regular"
	case CallMeasurement:
		return "Measurement"
	case CallReadout:
		return "Readout"
	case CallOutputRecording:
		return "OutputRecording"
	default:
		return "Unknown"
	}
}

// ValueType is the RIR-level type of a typed Variable: Boolean, Integer,
// Double, or Pointer. RIR does not carry the full
// classical lattice of internal/types — only what the instruction set
// needs to distinguish.
type ValueType int

const (
	Boolean ValueType = iota
	Integer
	Double
	Pointer
)

func (v ValueType) String() string {
	switch v {
	case Boolean:
		return "Boolean"
	case Integer:
		return "Integer"
	case Double:
		return "Double"
	case Pointer:
		return "Pointer"
	default:
		return "Unknown"
	}
}

// Variable is a dense integer id paired with its RIR value type.
type Variable struct {
	Id   VarId
	Type ValueType
}

func (v Variable) String() string {
	return fmt.Sprintf("Variable(%d, %s)", v.Id, v.Type)
}

// Value is either a compile-time literal or a reference to a Variable.
// Exactly one of the fields is meaningful, selected by Kind.
type ValueKind int

const (
	ValBool ValueKind = iota
	ValInteger
	ValDouble
	ValQubit
	ValResult
	ValPointer
	ValVariable
)

type Value struct {
	Kind ValueKind
	Bool bool
	Int  int64
	Dbl  float64
	Q    QubitId
	R    ResultId
	Var  Variable
}

func BoolValue(b bool) Value       { return Value{Kind: ValBool, Bool: b} }
func IntValue(i int64) Value       { return Value{Kind: ValInteger, Int: i} }
func DoubleValue(d float64) Value  { return Value{Kind: ValDouble, Dbl: d} }
func QubitValue(q QubitId) Value   { return Value{Kind: ValQubit, Q: q} }
func ResultValue(r ResultId) Value { return Value{Kind: ValResult, R: r} }
func PointerValue() Value          { return Value{Kind: ValPointer} }
func VarValue(v Variable) Value    { return Value{Kind: ValVariable, Var: v} }

func (v Value) String() string {
	switch v.Kind {
	case ValBool:
		return fmt.Sprintf("Bool(%t)", v.Bool)
	case ValInteger:
		return fmt.Sprintf("Integer(%d)", v.Int)
	case ValDouble:
		return fmt.Sprintf("Double(%v)", v.Dbl)
	case ValQubit:
		return fmt.Sprintf("Qubit(%d)", v.Q)
	case ValResult:
		return fmt.Sprintf("Result(%d)", v.R)
	case ValPointer:
		return "Pointer"
	case ValVariable:
		return v.Var.String()
	default:
		return "<invalid value>"
	}
}

// Span is a debug source-span attached to an instruction, printed as
// `!dbg package_id=P span=[lo-hi]` by the canonical text form.
type Span struct {
	PackageId int
	Lo, Hi    int
}

// Op enumerates the RIR instruction opcodes.
type Op int

const (
	OpStore Op = iota
	OpAdd
	OpSub
	OpMul
	OpSdiv
	OpSrem
	OpShl
	OpAshr
	OpBitwiseAnd
	OpBitwiseOr
	OpBitwiseXor
	OpBitwiseNot
	OpFadd
	OpFsub
	OpFmul
	OpFdiv
	OpIcmpEq
	OpIcmpNe
	OpIcmpSgt
	OpIcmpSge
	OpIcmpSlt
	OpIcmpSle
	OpFcmp
	OpLogicalNot
	OpCall
	// terminators
	OpJump
	OpBranch
	OpReturn
)

// Instruction is one RIR instruction. Not every field is meaningful for
// every Op; see the constructors below for the canonical shape of each.
type Instruction struct {
	Op Op

	// Store/unary/binary/compare operands.
	Dest     Variable // target of Store/arithmetic/compare/call-with-result
	HasDest  bool
	Operands []Value

	// Call.
	Callable CallableId
	Args     []Value

	// Terminators.
	Target  BlockId // Jump
	Cond    Value   // Branch
	Then    BlockId // Branch
	Else    BlockId // Branch

	Span    Span
	HasSpan bool
}

func Store(dest Variable, v Value) Instruction {
	return Instruction{Op: OpStore, Dest: dest, HasDest: true, Operands: []Value{v}}
}

func Binary(op Op, dest Variable, lhs, rhs Value) Instruction {
	return Instruction{Op: op, Dest: dest, HasDest: true, Operands: []Value{lhs, rhs}}
}

func Unary(op Op, dest Variable, v Value) Instruction {
	return Instruction{Op: op, Dest: dest, HasDest: true, Operands: []Value{v}}
}

func Call(dest *Variable, callable CallableId, args ...Value) Instruction {
	i := Instruction{Op: OpCall, Callable: callable, Args: args}
	if dest != nil {
		i.Dest = *dest
		i.HasDest = true
	}
	return i
}

func Jump(target BlockId) Instruction        { return Instruction{Op: OpJump, Target: target} }
func Branch(cond Value, then, els BlockId) Instruction {
	return Instruction{Op: OpBranch, Cond: cond, Then: then, Else: els}
}
func Return() Instruction { return Instruction{Op: OpReturn} }

// IsTerminator reports whether i is a block terminator (Jump/Branch/Return).
func (i Instruction) IsTerminator() bool {
	switch i.Op {
	case OpJump, OpBranch, OpReturn:
		return true
	default:
		return false
	}
}

// WithSpan attaches a debug span to the instruction and returns it.
func (i Instruction) WithSpan(s Span) Instruction {
	i.Span = s
	i.HasSpan = true
	return i
}

// Block is an ordered list of instructions, always ending in exactly one
// terminator.
type Block struct {
	Id           BlockId
	Instructions []Instruction
}

// Callable describes one callable in the program: a gate/operation/
// function definition or a runtime intrinsic (body absent).
type Callable struct {
	Id         CallableId
	Name       string
	CallType   CallType
	InputType  []ValueType
	OutputType *ValueType // nil means <VOID>
	Body       *BlockId   // nil for intrinsics with no body
	IsIntrinsic bool
}

// Program is the top-level RIR artifact: callables and blocks indexed by
// id, register counts, and the entry callable.
type Program struct {
	Callables map[CallableId]*Callable
	Blocks    map[BlockId]*Block
	NQubits   int
	NResults  int
	Entry     CallableId

	ids *IDAllocator
}

// NewProgram creates an empty program backed by alloc (see IDAllocator).
func NewProgram(alloc *IDAllocator) *Program {
	return &Program{
		Callables: make(map[CallableId]*Callable),
		Blocks:    make(map[BlockId]*Block),
		ids:       alloc,
	}
}

func (p *Program) GetBlock(id BlockId) *Block       { return p.Blocks[id] }
func (p *Program) GetCallable(id CallableId) *Callable { return p.Callables[id] }

// AddBlock creates and registers a new, empty block.
func (p *Program) AddBlock() *Block {
	b := &Block{Id: p.ids.NextBlockId()}
	p.Blocks[b.Id] = b
	return b
}

// AddCallable registers c under its own Id field (which must already be
// set, typically via IDAllocator.NextCallableId).
func (p *Program) AddCallable(c *Callable) {
	p.Callables[c.Id] = c
}

// IDAllocator hands out monotonically increasing ids for one compilation
// unit: each kind of id is a separate monotonic counter local to the unit.
type IDAllocator struct {
	nextBlock    BlockId
	nextCallable CallableId
	nextVar      VarId
	nextQubit    QubitId
	nextResult   ResultId
}

func NewIDAllocator() *IDAllocator { return &IDAllocator{} }

func (a *IDAllocator) NextBlockId() BlockId {
	id := a.nextBlock
	a.nextBlock++
	return id
}

func (a *IDAllocator) NextCallableId() CallableId {
	id := a.nextCallable
	a.nextCallable++
	return id
}

func (a *IDAllocator) NextVarId() VarId {
	id := a.nextVar
	a.nextVar++
	return id
}

func (a *IDAllocator) NextQubitId() QubitId {
	id := a.nextQubit
	a.nextQubit++
	return id
}

func (a *IDAllocator) NextResultId() ResultId {
	id := a.nextResult
	a.nextResult++
	return id
}

func (a *IDAllocator) NQubits() int  { return int(a.nextQubit) }
func (a *IDAllocator) NResults() int { return int(a.nextResult) }
