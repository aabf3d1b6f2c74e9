package semantic

import (
	"github.com/rirlang/rirc/internal/diag"
	"github.com/rirlang/rirc/internal/syntax"
	"github.com/rirlang/rirc/internal/tt"
	"github.com/rirlang/rirc/internal/types"
)

// insertImplicitCast checks whether x's type can be implicitly converted
// to want; if x already has that type it is returned unchanged, otherwise
// an explicit tt.Cast node wraps it. A cast that is legal only in its
// explicit form, or not legal at all, reports UnsupportedCast and returns
// x unchanged so lowering can continue.
func (a *Analyzer) insertImplicitCast(x tt.Expr, want types.Type, span syntax.Span) tt.Expr {
	from := x.Type()
	if types.IsErr(from) || types.IsErr(want) {
		return x
	}
	if sameKind(from, want) {
		return x
	}
	legal, requiresExplicit := types.CheckCast(from.Kind(), want.Kind())
	if !legal || requiresExplicit {
		a.Diags.Errorf(diag.UnsupportedCast, toDiagSpan(span),
			"cannot implicitly convert %s to %s", from.Kind(), want.Kind())
		return x
	}
	cv, isConst := x.ConstValue()
	return &tt.Cast{
		ExprBase: exprBaseOf(span, want, cv, isConst),
		Kind:     types.CastImplicit,
		X:        x,
	}
}

func sameKind(a, b types.Type) bool {
	return a.Kind() == b.Kind()
}
