// Package gateset maps named gate calls to the RIR callable shape they
// lower to. A small set of intrinsic gates is recognized by name; anything
// else becomes a same-named intrinsic callable the partial-eval driver
// calls directly, consistent with an open gate set.
package gateset

import "github.com/rirlang/rirc/internal/rir"

// Gate describes one intrinsic's RIR shape: how many classical angle/float
// arguments it takes, how many qubit operands, and the runtime callable
// name emitted into the RIR program.
type Gate struct {
	RuntimeName   string
	ClassicalArgs int
	Qubits        int
	CallType      rir.CallType
	OutputType    rir.ValueType
	HasOutput     bool
}

// Intrinsics is the fixed registry of gates this compiler recognizes by
// name without requiring a user-written gate definition.
var Intrinsics = map[string]Gate{
	"X":       {RuntimeName: "__quantum__qis__x__body", Qubits: 1, CallType: rir.CallRegular},
	"Y":       {RuntimeName: "__quantum__qis__y__body", Qubits: 1, CallType: rir.CallRegular},
	"Z":       {RuntimeName: "__quantum__qis__z__body", Qubits: 1, CallType: rir.CallRegular},
	"H":       {RuntimeName: "__quantum__qis__h__body", Qubits: 1, CallType: rir.CallRegular},
	"S":       {RuntimeName: "__quantum__qis__s__body", Qubits: 1, CallType: rir.CallRegular},
	"T":       {RuntimeName: "__quantum__qis__t__body", Qubits: 1, CallType: rir.CallRegular},
	"SWAP":    {RuntimeName: "__quantum__qis__swap__body", Qubits: 2, CallType: rir.CallRegular},
	"CNOT":    {RuntimeName: "__quantum__qis__cnot__body", Qubits: 2, CallType: rir.CallRegular},
	"Rx":      {RuntimeName: "__quantum__qis__rx__body", ClassicalArgs: 1, Qubits: 1, CallType: rir.CallRegular},
	"Ry":      {RuntimeName: "__quantum__qis__ry__body", ClassicalArgs: 1, Qubits: 1, CallType: rir.CallRegular},
	"Rz":      {RuntimeName: "__quantum__qis__rz__body", ClassicalArgs: 1, Qubits: 1, CallType: rir.CallRegular},
	"Reset":   {RuntimeName: "__quantum__qis__reset__body", Qubits: 1, CallType: rir.CallRegular},
	"M": {
		RuntimeName: "__quantum__qis__m__body", Qubits: 1,
		CallType: rir.CallMeasurement, OutputType: rir.Pointer, HasOutput: true,
	},
	"MResetZ": {
		RuntimeName: "__quantum__qis__mresetz__body", Qubits: 1,
		CallType: rir.CallMeasurement, OutputType: rir.Pointer, HasOutput: true,
	},
}

// ReadoutName is the fixed runtime callable that converts a measured
// Result into a Boolean. The partial-eval driver registers this callable
// once per program and reads a measurement's Result when the measurement is
// compiled; readout calls are not cached per block.
const ReadoutName = "__quantum__qis__read_result__body"

// Lookup resolves a gate by its surface name. ok is false for a
// user-defined gate or an unrecognized name, either of which the analyzer
// resolves through the symbol table instead.
func Lookup(name string) (Gate, bool) {
	g, ok := Intrinsics[name]
	return g, ok
}

// Fallback builds the intrinsic shape for a gate name not present in
// Intrinsics: same-named runtime callable, arity taken from the call site.
func Fallback(name string, classicalArgs, qubits int) Gate {
	return Gate{
		RuntimeName:   "__quantum__qis__" + name + "__body",
		ClassicalArgs: classicalArgs,
		Qubits:        qubits,
		CallType:      rir.CallRegular,
	}
}
