// Package types defines the classical type lattice used throughout the
// compiler: the typed tree, the symbol table, and the partial-evaluation
// driver all share this representation.
package types

import "fmt"

// Kind discriminates the classical type universe. Kind values form the rows
// and columns of the cast table in cast.go.
type Kind int

const (
	KindErr Kind = iota
	KindVoid
	KindBit
	KindBool
	KindInt
	KindUInt
	KindFloat
	KindAngle
	KindComplex
	KindDuration
	KindStretch
	KindBitArray
	KindQubit
	KindHardwareQubit
	KindQubitArray
	KindRange
	KindArray
	KindStaticArrayRef
	KindDynArrayRef
	KindFunction
	KindGate
)

func (k Kind) String() string {
	switch k {
	case KindErr:
		return "Err"
	case KindVoid:
		return "Void"
	case KindBit:
		return "Bit"
	case KindBool:
		return "Bool"
	case KindInt:
		return "Int"
	case KindUInt:
		return "UInt"
	case KindFloat:
		return "Float"
	case KindAngle:
		return "Angle"
	case KindComplex:
		return "Complex"
	case KindDuration:
		return "Duration"
	case KindStretch:
		return "Stretch"
	case KindBitArray:
		return "BitArray"
	case KindQubit:
		return "Qubit"
	case KindHardwareQubit:
		return "HardwareQubit"
	case KindQubitArray:
		return "QubitArray"
	case KindRange:
		return "Range"
	case KindArray:
		return "Array"
	case KindStaticArrayRef:
		return "StaticArrayRef"
	case KindDynArrayRef:
		return "DynArrayRef"
	case KindFunction:
		return "Function"
	case KindGate:
		return "Gate"
	default:
		return "Unknown"
	}
}

// MaxArrayDims is the highest number of dimensions an Array type may carry;
// arrays declared with more dimensions are rejected.
const MaxArrayDims = 7

// Type is the common interface implemented by every member of the lattice.
// Types are immutable values; two types are equal when Equal reports true,
// not necessarily when compared with ==  (Array and Function are compared
// structurally).
type Type interface {
	Kind() Kind
	// IsConst reports whether values of this type are compile-time constant.
	IsConst() bool
	// String renders the type the way diagnostics and the RIR text printer
	// expect to see it.
	String() string
	// Equal reports structural equality, ignoring const-ness.
	Equal(other Type) bool
}

// Sized is implemented by the numeric types that carry an optional bit
// width (nil width means "unsized", i.e. platform/default width).
type Sized interface {
	Type
	Width() *int // nil => unsized
}

// base is embedded by the simple (non-composite) members of the lattice.
type base struct {
	kind  Kind
	width *int
	cnst  bool
}

func (b base) Kind() Kind    { return b.kind }
func (b base) IsConst() bool { return b.cnst }
func (b base) Width() *int   { return b.width }

func (b base) String() string {
	name := b.kind.String()
	if b.width != nil {
		name = fmt.Sprintf("%s[%d]", name, *b.width)
	}
	if b.cnst {
		name = "const " + name
	}
	return name
}

func (b base) Equal(other Type) bool {
	o, ok := other.(base)
	if !ok {
		return false
	}
	if b.kind != o.kind {
		return false
	}
	return widthEqual(b.width, o.width)
}

func widthEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func newBase(kind Kind, width *int, cnst bool) base {
	return base{kind: kind, width: width, cnst: cnst}
}

func withWidth(w int) *int { return &w }

// Constructors. A nil width means "unsized". Passing const=true yields a
// compile-time-constant-flavored type, used to propagate constness through
// expressions built from const operands.

func NewBit(cnst bool) Type                 { return newBase(KindBit, nil, cnst) }
func NewBool(cnst bool) Type                { return newBase(KindBool, nil, cnst) }
func NewVoid() Type                         { return newBase(KindVoid, nil, false) }
func NewErr() Type                          { return newBase(KindErr, nil, false) }
func NewDuration(cnst bool) Type            { return newBase(KindDuration, nil, cnst) }
func NewStretch(cnst bool) Type             { return newBase(KindStretch, nil, cnst) }
func NewQubit() Type                        { return newBase(KindQubit, nil, false) }
func NewHardwareQubit() Type                { return newBase(KindHardwareQubit, nil, false) }
func NewRange() Type                        { return newBase(KindRange, nil, false) }

func NewInt(width *int, cnst bool) Type     { return newBase(KindInt, width, cnst) }
func NewUInt(width *int, cnst bool) Type    { return newBase(KindUInt, width, cnst) }
func NewFloat(width *int, cnst bool) Type   { return newBase(KindFloat, width, cnst) }
func NewAngle(width *int, cnst bool) Type   { return newBase(KindAngle, width, cnst) }
func NewComplex(width *int, cnst bool) Type { return newBase(KindComplex, width, cnst) }

// sizedBase carries an integer size (array length, bit-array length,
// qubit-array length) in addition to a width/const flag.
type sizedBase struct {
	base
	size int
}

func (s sizedBase) Size() int { return s.size }

func (s sizedBase) String() string {
	return fmt.Sprintf("%s(%d)", s.base.String(), s.size)
}

func (s sizedBase) Equal(other Type) bool {
	o, ok := other.(sizedBase)
	if !ok {
		return false
	}
	return s.base.kind == o.base.kind && s.size == o.size
}

func NewBitArray(size int, cnst bool) Type {
	return sizedBase{base: newBase(KindBitArray, nil, cnst), size: size}
}

func NewQubitArray(size int) Type {
	return sizedBase{base: newBase(KindQubitArray, nil, false), size: size}
}

// Array is a composite type of up to MaxArrayDims dimensions over a base
// element type. An Array with more than MaxArrayDims dims types to Err.
type Array struct {
	Base Type
	Dims []int // one entry per dimension; -1 means "unspecified length"
}

func NewArray(elem Type, dims []int) Type {
	if len(dims) == 0 || len(dims) > MaxArrayDims {
		return NewErr()
	}
	return Array{Base: elem, Dims: append([]int(nil), dims...)}
}

func (a Array) Kind() Kind    { return KindArray }
func (a Array) IsConst() bool { return a.Base != nil && a.Base.IsConst() }

func (a Array) String() string {
	s := a.Base.String()
	for range a.Dims {
		s += "[]"
	}
	return "array of " + s
}

func (a Array) Equal(other Type) bool {
	o, ok := other.(Array)
	if !ok || len(a.Dims) != len(o.Dims) {
		return false
	}
	for i := range a.Dims {
		if a.Dims[i] != o.Dims[i] {
			return false
		}
	}
	return a.Base.Equal(o.Base)
}

// StaticArrayRef and DynArrayRef model `array[N] T &` / `array[] T &`
// by-reference parameter types.
type StaticArrayRef struct {
	Base Type
	Size int
}

func (r StaticArrayRef) Kind() Kind    { return KindStaticArrayRef }
func (r StaticArrayRef) IsConst() bool { return false }
func (r StaticArrayRef) String() string {
	return fmt.Sprintf("array[%d] %s &", r.Size, r.Base.String())
}
func (r StaticArrayRef) Equal(other Type) bool {
	o, ok := other.(StaticArrayRef)
	return ok && r.Size == o.Size && r.Base.Equal(o.Base)
}

type DynArrayRef struct {
	Base Type
}

func (r DynArrayRef) Kind() Kind      { return KindDynArrayRef }
func (r DynArrayRef) IsConst() bool   { return false }
func (r DynArrayRef) String() string  { return "array[] " + r.Base.String() + " &" }
func (r DynArrayRef) Equal(other Type) bool {
	o, ok := other.(DynArrayRef)
	return ok && r.Base.Equal(o.Base)
}

// Function is the type of a classical callable: an ordered argument list and
// a single return type.
type Function struct {
	Args   []Type
	Return Type
}

func (f Function) Kind() Kind    { return KindFunction }
func (f Function) IsConst() bool { return false }

func (f Function) String() string {
	s := "def("
	for i, a := range f.Args {
		if i > 0 {
			s += ", "
		}
		s += a.String()
	}
	return s + ") -> " + f.Return.String()
}

func (f Function) Equal(other Type) bool {
	o, ok := other.(Function)
	if !ok || len(f.Args) != len(o.Args) {
		return false
	}
	for i := range f.Args {
		if !f.Args[i].Equal(o.Args[i]) {
			return false
		}
	}
	return f.Return.Equal(o.Return)
}

// Gate is the type of a quantum gate definition: the number of classical
// parameters and the number of base quantum operands it expects (before any
// modifier is applied).
type Gate struct {
	NClassical int
	NQuantum   int
}

func (g Gate) Kind() Kind    { return KindGate }
func (g Gate) IsConst() bool { return false }
func (g Gate) String() string {
	return fmt.Sprintf("gate(%d, %d)", g.NClassical, g.NQuantum)
}
func (g Gate) Equal(other Type) bool {
	o, ok := other.(Gate)
	return ok && g.NClassical == o.NClassical && g.NQuantum == o.NQuantum
}

// IsErr reports whether t is the bottom type of the lattice.
func IsErr(t Type) bool { return t == nil || t.Kind() == KindErr }

// IsNumeric reports whether t is one of Int/UInt/Float/Angle/Complex.
func IsNumeric(t Type) bool {
	switch t.Kind() {
	case KindInt, KindUInt, KindFloat, KindAngle, KindComplex:
		return true
	default:
		return false
	}
}

// WidthOf returns the bit width of a sized type, or (0, false) if t is
// unsized or not a Sized type at all.
func WidthOf(t Type) (int, bool) {
	s, ok := t.(Sized)
	if !ok {
		return 0, false
	}
	w := s.Width()
	if w == nil {
		return 0, false
	}
	return *w, true
}

// WithWidth returns a pointer suitable for the width field of a sized
// constructor; exported so callers outside the package can build sized
// types without reaching into unexported helpers.
func WithWidth(w int) *int { return withWidth(w) }

// IsBig reports whether a sized Int/UInt type requires a big-integer
// representation downstream (width > 64).
func IsBig(t Type) bool {
	w, ok := WidthOf(t)
	return ok && w > 64
}
