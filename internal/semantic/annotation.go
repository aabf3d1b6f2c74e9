package semantic

import (
	"github.com/rirlang/rirc/internal/diag"
	"github.com/rirlang/rirc/internal/syntax"
)

// canonicalAnnotation maps a raw annotation name as written in source to
// the name the rest of the compiler recognizes it by. Anything not listed
// here passes through unchanged so the caller can still report
// UnknownAnnotation.
func canonicalAnnotation(raw string) string {
	switch raw {
	case "qdk.qir.intrinsic":
		return "SimulatableIntrinsic"
	case "qdk.qir.profile":
		return "Config"
	case "SimulatableIntrinsic", "Config":
		return raw
	default:
		return raw
	}
}

var knownAnnotations = map[string]bool{
	"SimulatableIntrinsic": true,
	"Config":               true,
	"EntryPoint":           true,
}

// applyPendingAnnotations validates that every annotation preceding a
// Def/QuantumGateDefinition is recognized and attached to a callable (the
// only legal target). Unrecognized names are reported but otherwise
// ignored; they do not change how the callable lowers.
func (a *Analyzer) applyPendingAnnotations(anns []syntax.Annotation) {
	for _, ann := range anns {
		name := canonicalAnnotation(ann.Name)
		if !knownAnnotations[name] {
			a.Diags.Errorf(diag.UnknownAnnotation, toDiagSpan(ann.Span), "unknown annotation %q", ann.Name)
		}
	}
}
