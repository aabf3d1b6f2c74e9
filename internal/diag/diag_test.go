package diag

import (
	"strings"
	"testing"
)

func TestBagAccumulatesAndReportsErrors(t *testing.T) {
	var bag Bag
	if bag.HasErrors() {
		t.Fatalf("empty bag should report no errors")
	}
	bag.Errorf(Undefined, Span{Line: 3, Column: 5}, "symbol %q is not declared", "q")
	bag.Errorf(TypeMismatch, Span{Line: 4, Column: 1}, "expected %s, found %s", "Int", "Bool")

	if !bag.HasErrors() {
		t.Fatalf("bag with entries should report errors")
	}
	if len(bag.Items()) != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", len(bag.Items()))
	}
	if bag.Items()[0].Kind != Undefined {
		t.Fatalf("unexpected kind: %s", bag.Items()[0].Kind)
	}
}

func TestFormatIncludesSourceLineAndCaret(t *testing.T) {
	src := "let i = 1\nlet j = undefined_name\n"
	d := New(Undefined, Span{Line: 2, Column: 9}, "symbol %q is not declared", "undefined_name")
	out := d.Format(src, false)
	if !strings.Contains(out, "let j = undefined_name") {
		t.Fatalf("expected source line in output, got:\n%s", out)
	}
	if !strings.Contains(out, "^") {
		t.Fatalf("expected caret in output, got:\n%s", out)
	}
	if !strings.Contains(out, "Undefined:") {
		t.Fatalf("expected kind prefix in output, got:\n%s", out)
	}
}

func TestFormatWithoutSourceOmitsContextLines(t *testing.T) {
	d := New(RedeclarationInScope, Span{Line: 1, Column: 1}, "symbol %q already declared", "q")
	out := d.Format("", false)
	if strings.Contains(out, "^") {
		t.Fatalf("should not emit a caret line without source text")
	}
}
