package syntax

import (
	"fmt"
	"strings"
)

// Identifier is a name reference, resolved to a symbol by the analyzer.
type Identifier struct {
	Span  Span
	Value string
}

func (i *Identifier) exprNode()    {}
func (i *Identifier) Pos() Span    { return i.Span }
func (i *Identifier) String() string { return i.Value }

// IntLiteral is a sized or unsized integer literal. Underscore separators
// are removed by the external collaborator before this node is
// constructed; Text preserves the original digits for diagnostics.
type IntLiteral struct {
	Span  Span
	Text  string
	Value int64 // valid when Big is nil
	Big   string // decimal digits, set instead of Value when the literal overflows int64
	Width *int
	Uns   bool // true => UInt literal
}

func (l *IntLiteral) exprNode()      {}
func (l *IntLiteral) Pos() Span      { return l.Span }
func (l *IntLiteral) String() string { return l.Text }

type FloatLiteral struct {
	Span  Span
	Text  string
	Value float64
}

func (l *FloatLiteral) exprNode()      {}
func (l *FloatLiteral) Pos() Span      { return l.Span }
func (l *FloatLiteral) String() string { return l.Text }

type BoolLiteral struct {
	Span  Span
	Value bool
}

func (l *BoolLiteral) exprNode()      {}
func (l *BoolLiteral) Pos() Span      { return l.Span }
func (l *BoolLiteral) String() string { return fmt.Sprintf("%t", l.Value) }

// BitStringLiteral preserves leading zeros: length is always
// len(Bits), big-endian.
type BitStringLiteral struct {
	Span Span
	Bits []bool
}

func (l *BitStringLiteral) exprNode() {}
func (l *BitStringLiteral) Pos() Span { return l.Span }
func (l *BitStringLiteral) String() string {
	var sb strings.Builder
	sb.WriteString("\"")
	for _, b := range l.Bits {
		if b {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	sb.WriteString("\"")
	return sb.String()
}

// ResultLiteralValue distinguishes the two result literals, `Zero`/`One`.
type ResultLiteralValue int

const (
	ResultZero ResultLiteralValue = iota
	ResultOne
)

type ResultLiteral struct {
	Span  Span
	Value ResultLiteralValue
}

func (l *ResultLiteral) exprNode() {}
func (l *ResultLiteral) Pos() Span { return l.Span }
func (l *ResultLiteral) String() string {
	if l.Value == ResultZero {
		return "Zero"
	}
	return "One"
}

// InterpString concatenates literal text chunks and interpolated
// expressions; nesting (an interpolant that is itself an InterpString) is
// permitted to arbitrary depth.
type InterpString struct {
	Span  Span
	Parts []InterpPart
}

type InterpPart struct {
	Text string // used when Expr == nil
	Expr Expr
}

func (s *InterpString) exprNode() {}
func (s *InterpString) Pos() Span { return s.Span }
func (s *InterpString) String() string {
	var sb strings.Builder
	for _, p := range s.Parts {
		if p.Expr != nil {
			sb.WriteString(p.Expr.String())
		} else {
			sb.WriteString(p.Text)
		}
	}
	return sb.String()
}

// BinaryOp enumerates the binary operators the parser may produce.
type BinaryOp string

const (
	OpAdd    BinaryOp = "+"
	OpSub    BinaryOp = "-"
	OpMul    BinaryOp = "*"
	OpDiv    BinaryOp = "/"
	OpMod    BinaryOp = "%"
	OpPow    BinaryOp = "**"
	OpShl    BinaryOp = "<<"
	OpShr    BinaryOp = ">>"
	OpBAnd   BinaryOp = "&"
	OpBOr    BinaryOp = "|"
	OpBXor   BinaryOp = "^"
	OpAnd    BinaryOp = "and"
	OpOr     BinaryOp = "or"
	OpEq     BinaryOp = "=="
	OpNe     BinaryOp = "!="
	OpLt     BinaryOp = "<"
	OpLe     BinaryOp = "<="
	OpGt     BinaryOp = ">"
	OpGe     BinaryOp = ">="
	OpConcat BinaryOp = "++" // alias/array concatenation
)

type BinaryExpr struct {
	Span  Span
	Op    BinaryOp
	Left  Expr
	Right Expr
}

func (b *BinaryExpr) exprNode() {}
func (b *BinaryExpr) Pos() Span { return b.Span }
func (b *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left, b.Op, b.Right)
}

type UnaryOp string

const (
	UnaryPlus   UnaryOp = "+"
	UnaryMinus  UnaryOp = "-"
	UnaryNot    UnaryOp = "!"
	UnaryBitNot UnaryOp = "~"
)

type UnaryExpr struct {
	Span Span
	Op   UnaryOp
	X    Expr
}

func (u *UnaryExpr) exprNode()      {}
func (u *UnaryExpr) Pos() Span      { return u.Span }
func (u *UnaryExpr) String() string { return fmt.Sprintf("(%s%s)", u.Op, u.X) }

// TernaryExpr is the `cond ? then | else` conditional expression used for
// dynamic value selection.
type TernaryExpr struct {
	Span Span
	Cond Expr
	Then Expr
	Else Expr
}

func (t *TernaryExpr) exprNode() {}
func (t *TernaryExpr) Pos() Span { return t.Span }
func (t *TernaryExpr) String() string {
	return fmt.Sprintf("(%s ? %s | %s)", t.Cond, t.Then, t.Else)
}

// RangeExpr is `start..step..end`; any part may be nil, meaning "bind to
// array bounds at use site".
type RangeExpr struct {
	Span             Span
	Start, Step, End Expr
}

func (r *RangeExpr) exprNode() {}
func (r *RangeExpr) Pos() Span { return r.Span }
func (r *RangeExpr) String() string {
	parts := []string{exprOrEmpty(r.Start)}
	if r.Step != nil {
		parts = append(parts, r.Step.String())
	}
	parts = append(parts, exprOrEmpty(r.End))
	return strings.Join(parts, "..")
}

func exprOrEmpty(e Expr) string {
	if e == nil {
		return ""
	}
	return e.String()
}

// IndexExpr is `base[index]`, where index may be a single expression
// (possibly negative) or a Range for slicing.
type IndexExpr struct {
	Span  Span
	Base  Expr
	Index Expr
}

func (i *IndexExpr) exprNode()      {}
func (i *IndexExpr) Pos() Span      { return i.Span }
func (i *IndexExpr) String() string { return fmt.Sprintf("%s[%s]", i.Base, i.Index) }

// MultiIndexExpr is `base[i][j]...` for arrays of more than one dimension.
type MultiIndexExpr struct {
	Span    Span
	Base    Expr
	Indices []Expr
}

func (m *MultiIndexExpr) exprNode() {}
func (m *MultiIndexExpr) Pos() Span { return m.Span }
func (m *MultiIndexExpr) String() string {
	s := m.Base.String()
	for _, ix := range m.Indices {
		s += fmt.Sprintf("[%s]", ix)
	}
	return s
}

// CallExpr is a classical function call `name(args...)`.
type CallExpr struct {
	Span Span
	Name *Identifier
	Args []Expr
}

func (c *CallExpr) exprNode() {}
func (c *CallExpr) Pos() Span { return c.Span }
func (c *CallExpr) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", c.Name, strings.Join(parts, ", "))
}

// ExplicitCastExpr is a user-written cast, e.g. `int[32](x)`.
type ExplicitCastExpr struct {
	Span      Span
	TargetTy  TypeExpr
	X         Expr
}

func (c *ExplicitCastExpr) exprNode() {}
func (c *ExplicitCastExpr) Pos() Span { return c.Span }
func (c *ExplicitCastExpr) String() string {
	return fmt.Sprintf("%s(%s)", c.TargetTy, c.X)
}

// ArrayLiteral is `{e0, e1, ...}`.
type ArrayLiteral struct {
	Span     Span
	Elements []Expr
}

func (a *ArrayLiteral) exprNode() {}
func (a *ArrayLiteral) Pos() Span { return a.Span }
func (a *ArrayLiteral) String() string {
	parts := make([]string, len(a.Elements))
	for i, e := range a.Elements {
		parts[i] = e.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// TypeExpr is the syntactic representation of a type annotation, e.g.
// `int[32]`, `qubit[4]`, `bit`. The semantic analyzer resolves this into an
// internal/types.Type.
type TypeExpr struct {
	Span  Span
	Name  string // "int", "uint", "float", "angle", "bit", "bool", "qubit", ...
	Width Expr   // nil when unsized; must const-fold to a non-negative int
	Size  Expr   // array/bitarray/qubit-array size, nil when not applicable
	Dims  []Expr // extra dimensions for multi-dimensional arrays
}

func (t TypeExpr) String() string {
	s := t.Name
	if t.Width != nil {
		s += fmt.Sprintf("[%s]", t.Width)
	}
	if t.Size != nil {
		s += fmt.Sprintf("(%s)", t.Size)
	}
	return s
}

// GateModifierExpr is a classical argument to `pow` / `ctrl` / `negctrl`.
type GateModifierExpr = Expr
