package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultValidates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default() should validate, got %v", err)
	}
}

func TestValidateRejectsUnrecognizedEnum(t *testing.T) {
	o := Default()
	o.OutputSemantics = "Bogus"
	if err := o.Validate(); err == nil {
		t.Fatalf("expected an error for an unrecognized output_semantics")
	}
}

func TestValidateRejectsNamespaceOutsideFileMode(t *testing.T) {
	o := Default()
	o.Namespace = "Example"
	if err := o.Validate(); err == nil {
		t.Fatalf("expected an error: namespace is only meaningful in File mode")
	}
}

func TestLoadOverridesOnlyMentionedFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rirc.yaml")
	content := "output_semantics: Qiskit\noperation_name: Teleport\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	opts, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if opts.OutputSemantics != OutputQiskit {
		t.Fatalf("got OutputSemantics %q, want Qiskit", opts.OutputSemantics)
	}
	if opts.OperationName != "Teleport" {
		t.Fatalf("got OperationName %q, want Teleport", opts.OperationName)
	}
	if opts.QubitSemantics != QubitUnmanaged {
		t.Fatalf("got QubitSemantics %q, want the Default() value Unmanaged to survive", opts.QubitSemantics)
	}
}

func TestLoadRejectsInvalidResult(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rirc.yaml")
	if err := os.WriteFile(path, []byte("program_ty: Nonsense\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected Load to reject an unrecognized program_ty")
	}
}
