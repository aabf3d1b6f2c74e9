// Package syntax is the thin stand-in for the external lexer/parser
// collaborator: the lexer/parser produces a syntactic tree, and the
// semantic analyzer rewrites it. This package only defines the node
// shapes that tree must have — no grammar, no tokenizer — using a
// tagged-interface node shape (Node/Statement/Expression marker methods, a
// Pos() accessor, spans carried per-node).
package syntax

import "fmt"

// Span is a half-open [Lo, Hi) byte range plus the line/column of Lo, set
// by the external collaborator when it builds the tree.
type Span struct {
	Lo, Hi int
	Line   int
	Column int
}

func (s Span) String() string { return fmt.Sprintf("[%d-%d]", s.Lo, s.Hi) }

// Node is the root interface implemented by every syntax-tree node.
type Node interface {
	Pos() Span
	String() string
}

// Stmt is implemented by every statement-kind node the syntactic tree may
// contain.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is implemented by every expression node. Expressions do not carry a
// resolved Type yet — that is exactly what the semantic analyzer adds when
// it produces the typed tree (internal/tt).
type Expr interface {
	Node
	exprNode()
}

// Program is the root of one compilation unit's syntactic tree.
type Program struct {
	Span       Span
	Statements []Stmt
}

func (p *Program) Pos() Span { return p.Span }
func (p *Program) String() string {
	out := ""
	for _, s := range p.Statements {
		out += s.String() + "\n"
	}
	return out
}

// Modifier is one element of a GateCall's modifier stack: evaluated
// right-to-left, outermost first in source order.
type ModifierKind int

const (
	ModInv ModifierKind = iota
	ModPow
	ModCtrl
	ModNegCtrl
)

type Modifier struct {
	Kind ModifierKind
	// Pow carries the power expression; Ctrl/NegCtrl carry N as a
	// constant-foldable expression (often simply an IntLiteral).
	Arg Expr
}
