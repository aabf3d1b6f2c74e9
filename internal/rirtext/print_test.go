package rirtext

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/rirlang/rirc/internal/rir"
)

// buildMResetZSample reproduces the canonical shape of a dynamic int
// chosen by a MResetZ-backed conditional, returned unary-plus (a no-op, so
// no instruction is generated for the unary operator itself).
func buildMResetZSample() *rir.Program {
	alloc := rir.NewIDAllocator()
	p := rir.NewProgram(alloc)

	mresetz := &rir.Callable{
		Id: alloc.NextCallableId(), Name: "__quantum__qis__mresetz__body",
		CallType: rir.CallMeasurement, InputType: []rir.ValueType{rir.Pointer, rir.Pointer},
	}
	p.AddCallable(mresetz)
	readout := &rir.Callable{
		Id: alloc.NextCallableId(), Name: "__quantum__qis__read_result__body",
		CallType: rir.CallReadout, InputType: []rir.ValueType{rir.Pointer},
	}
	outType := rir.Boolean
	readout.OutputType = &outType
	p.AddCallable(readout)

	intOut := rir.Integer
	recording := &rir.Callable{
		Id: alloc.NextCallableId(), Name: "__quantum__rt__int_record_output",
		CallType: rir.CallOutputRecording, InputType: []rir.ValueType{rir.Integer, rir.Pointer},
	}
	_ = intOut
	p.AddCallable(recording)

	b0 := p.AddBlock()
	b1 := p.AddBlock()
	b2 := p.AddBlock()
	b3 := p.AddBlock()

	v0 := rir.Variable{Id: 0, Type: rir.Boolean}
	v1 := rir.Variable{Id: 1, Type: rir.Boolean}
	v2 := rir.Variable{Id: 2, Type: rir.Integer}

	b0.Instructions = []rir.Instruction{
		rir.Call(nil, mresetz.Id, rir.QubitValue(0), rir.ResultValue(0)),
		rir.Call(&v0, readout.Id, rir.ResultValue(0)),
		rir.Binary(rir.OpIcmpEq, v1, rir.VarValue(v0), rir.BoolValue(false)),
		rir.Branch(rir.VarValue(v1), b2.Id, b3.Id),
	}
	b1.Instructions = []rir.Instruction{
		rir.Call(nil, recording.Id, rir.VarValue(v2), rir.PointerValue()),
		rir.Return(),
	}
	b2.Instructions = []rir.Instruction{
		rir.Store(v2, rir.IntValue(0)),
		rir.Jump(b1.Id),
	}
	b3.Instructions = []rir.Instruction{
		rir.Store(v2, rir.IntValue(1)),
		rir.Jump(b1.Id),
	}
	return p
}

func TestProgramCanonicalTextSnapshot(t *testing.T) {
	p := buildMResetZSample()
	snaps.MatchSnapshot(t, Program(p))
}

func TestCallableTextForm(t *testing.T) {
	p := buildMResetZSample()
	got := Callable(p.GetCallable(0))
	want := "Callable:\n" +
		"    name: __quantum__qis__mresetz__body\n" +
		"    call_type: Measurement\n" +
		"    input_type:\n" +
		"        [0]: Pointer\n" +
		"        [1]: Pointer\n" +
		"    output_type: <VOID>\n" +
		"    body: <NONE>"
	if got != want {
		t.Fatalf("Callable() mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestBlockTextFormMatchesCanonicalExample(t *testing.T) {
	p := buildMResetZSample()
	got := Block(p.GetBlock(2))
	want := "Block 2:Block:\n" +
		"    Variable(2, Integer) = Store Integer(0)\n" +
		"    Jump(1)"
	if got != want {
		t.Fatalf("Block() mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestInstructionDebugSpanSuffix(t *testing.T) {
	v := rir.Variable{Id: 0, Type: rir.Boolean}
	instr := rir.Store(v, rir.BoolValue(true)).WithSpan(rir.Span{PackageId: 2, Lo: 140, Hi: 141})
	got := Instruction(instr)
	want := "Variable(0, Boolean) = Store Bool(true) !dbg package_id=2 span=[140-141]"
	if got != want {
		t.Fatalf("Instruction() = %q, want %q", got, want)
	}
}
