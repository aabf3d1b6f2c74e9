// Package diag renders compiler diagnostics with source context and a
// caret indicator. It also defines the semantic-error taxonomy as a closed
// set of Kind values so the analyzer can accumulate diagnostics without
// refusing to keep going after the first one, surfacing more diagnostics
// in one pass.
package diag

import (
	"fmt"
	"strings"
)

// Kind is one of the semantic error kinds the analyzer can report. Parse
// errors are out of scope (an external collaborator's concern); partial-eval
// errors have their own fatal-error type in internal/partialeval.
type Kind string

const (
	Undefined                 Kind = "Undefined"
	RedeclarationInScope      Kind = "RedeclarationInScope"
	TypeMismatch              Kind = "TypeMismatch"
	UnsupportedCast           Kind = "UnsupportedCast"
	InvalidNumberOfQubitArgs  Kind = "InvalidNumberOfQubitArgs"
	InvalidAnnotationTarget   Kind = "InvalidAnnotationTarget"
	UnknownAnnotation         Kind = "UnknownAnnotation"
	InvalidBoxPragmaTarget    Kind = "InvalidBoxPragmaTarget"
	MissingBoxPragmaTarget    Kind = "MissingBoxPragmaTarget"
	InvalidProfilePragmaTarget Kind = "InvalidProfilePragmaTarget"
	NotSupported              Kind = "NotSupported"
	Unimplemented             Kind = "Unimplemented"
	QiskitEntryPointMissingOutput Kind = "QiskitEntryPointMissingOutput"
)

// Span is a half-open byte range into the source text, carried by every
// syntax and typed-tree node.
type Span struct {
	Lo, Hi int
	Line   int
	Column int
}

// Diagnostic is one accumulated semantic error.
type Diagnostic struct {
	Kind    Kind
	Message string
	Span    Span
	File    string
}

// New builds a Diagnostic whose Message is the formatted detail only;
// Format adds the `Kind: ` prefix when the diagnostic is rendered.
func New(kind Kind, span Span, format string, args ...any) *Diagnostic {
	return &Diagnostic{Kind: kind, Message: fmt.Sprintf(format, args...), Span: span}
}

func (d *Diagnostic) Error() string { return d.Format("", false) }

// Format renders the diagnostic with a source-context line and a caret,
// optionally in color.
func (d *Diagnostic) Format(source string, color bool) string {
	var sb strings.Builder
	if d.File != "" {
		fmt.Fprintf(&sb, "Error in %s:%d:%d\n", d.File, d.Span.Line, d.Span.Column)
	} else {
		fmt.Fprintf(&sb, "Error at line %d:%d\n", d.Span.Line, d.Span.Column)
	}
	fmt.Fprintf(&sb, "%s: %s\n", d.Kind, d.Message)

	line := sourceLine(source, d.Span.Line)
	if line != "" {
		lineNumStr := fmt.Sprintf("%4d | ", d.Span.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+max(d.Span.Column-1, 0)))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
	}
	return sb.String()
}

func sourceLine(source string, line int) string {
	if source == "" || line <= 0 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if line > len(lines) {
		return ""
	}
	return lines[line-1]
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Bag accumulates diagnostics across a compile. A Bag with any entries
// means the program must not be emitted.
type Bag struct {
	items []*Diagnostic
}

func (b *Bag) Add(d *Diagnostic)    { b.items = append(b.items, d) }
func (b *Bag) HasErrors() bool      { return len(b.items) > 0 }
func (b *Bag) Items() []*Diagnostic { return b.items }

func (b *Bag) Errorf(kind Kind, span Span, format string, args ...any) {
	b.Add(New(kind, span, format, args...))
}
