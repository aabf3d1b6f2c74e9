package semantic

import (
	"github.com/rirlang/rirc/internal/diag"
	"github.com/rirlang/rirc/internal/syntax"
	"github.com/rirlang/rirc/internal/tt"
)

// lowerPragma recognizes the fixed set of pragmas this compiler interprets
// directly; anything else is recorded as an opaque tt.Pragma for later
// stages (e.g. backend-specific hints) to inspect.
func (a *Analyzer) lowerPragma(n *syntax.PragmaStmt) tt.Stmt {
	switch n.Name {
	case "qdk.box.open":
		a.Box.Open = n.Value // last occurrence wins
	case "qdk.box.close":
		a.Box.Close = n.Value
	case "qdk.qir.profile":
		if a.profileSet {
			a.Diags.Errorf(diag.InvalidProfilePragmaTarget, toDiagSpan(n.Span),
				"qdk.qir.profile may only be set once per program")
			break
		}
		a.Profile = n.Value
		a.profileSet = true
	}
	return &tt.Pragma{StmtBase: tt.NewStmtBase(n.Span), Name: n.Name, Value: n.Value}
}

// lowerBox requires both a qdk.box.open and qdk.box.close pragma to have
// been seen before the box body; a box with neither hook registered has no
// defined runtime behavior.
func (a *Analyzer) lowerBox(n *syntax.BoxStmt) tt.Stmt {
	if a.Box.Open == "" || a.Box.Close == "" {
		a.Diags.Errorf(diag.MissingBoxPragmaTarget, toDiagSpan(n.Span),
			"box statement requires both qdk.box.open and qdk.box.close pragmas")
	}
	body := a.lowerBlockStmts(n.Body)
	return &tt.Box{StmtBase: tt.NewStmtBase(n.Span), Body: body}
}
