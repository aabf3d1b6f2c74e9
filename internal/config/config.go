// Package config holds the recognized compiler options (the "compiler
// config" of the host's external interface) and loads them from YAML,
// the same way a go-dws CLI subcommand reads its flags before handing a
// typed struct down into the analyzer and evaluator.
package config

import "fmt"

// ProgramType selects how the entry point is wrapped on emission.
type ProgramType string

const (
	ProgramFile      ProgramType = "File"
	ProgramOperation ProgramType = "Operation"
	ProgramFragments ProgramType = "Fragments"
)

// OutputSemantics selects the entry return-shape rule applied when
// recording outputs.
type OutputSemantics string

const (
	OutputOpenQasm           OutputSemantics = "OpenQasm"
	OutputQiskit             OutputSemantics = "Qiskit"
	OutputResourceEstimation OutputSemantics = "ResourceEstimation"
)

// QubitSemantics selects whether qubit ids are reused after a Reset
// (Managed) or remain allocated for the lifetime of the program
// (Unmanaged).
type QubitSemantics string

const (
	QubitManaged   QubitSemantics = "Managed"
	QubitUnmanaged QubitSemantics = "Unmanaged"
)

// Options is the full set of recognized compiler options. Zero-value
// Options is not valid configuration: callers should start from Default()
// and override only what they need.
type Options struct {
	ProgramType     ProgramType     `yaml:"program_ty"`
	OutputSemantics OutputSemantics `yaml:"output_semantics"`
	QubitSemantics  QubitSemantics  `yaml:"qubit_semantics"`
	OperationName   string          `yaml:"operation_name"`
	Namespace       string          `yaml:"namespace"`
}

// Default returns the options a bare `rirc compile` invocation assumes
// absent a --config file: a single bare operation, OpenQASM output shape,
// and unmanaged qubits (every qubit id is distinct for the program's
// lifetime).
func Default() Options {
	return Options{
		ProgramType:     ProgramOperation,
		OutputSemantics: OutputOpenQasm,
		QubitSemantics:  QubitUnmanaged,
		OperationName:   "main",
	}
}

// Validate rejects an Options whose enum-valued fields hold anything
// other than one of their recognized values.
func (o Options) Validate() error {
	switch o.ProgramType {
	case ProgramFile, ProgramOperation, ProgramFragments:
	default:
		return fmt.Errorf("config: unrecognized program_ty %q", o.ProgramType)
	}
	switch o.OutputSemantics {
	case OutputOpenQasm, OutputQiskit, OutputResourceEstimation:
	default:
		return fmt.Errorf("config: unrecognized output_semantics %q", o.OutputSemantics)
	}
	switch o.QubitSemantics {
	case QubitManaged, QubitUnmanaged:
	default:
		return fmt.Errorf("config: unrecognized qubit_semantics %q", o.QubitSemantics)
	}
	if o.ProgramType != ProgramFile && o.Namespace != "" {
		return fmt.Errorf("config: namespace is only meaningful in File mode")
	}
	return nil
}
