package rir

import "encoding/json"

// ToJSON serializes a Program as plain JSON for external inspection (the
// `rirc inspect` subcommand queries this shape with gjson/sjson paths).
// It is a dump of the data model, not the canonical text form
// internal/rirtext renders - field names and nesting may change as the
// model grows, the same way go-dws keeps its bytecode serialization
// format distinct from its disassembler's text output.
func ToJSON(p *Program) ([]byte, error) {
	return json.MarshalIndent(p, "", "  ")
}
