package types

// CastKind distinguishes a cast the user wrote from one the analyzer
// materialized on their behalf (typed-tree Cast nodes carry this, see
// internal/tt).
type CastKind int

const (
	CastImplicit CastKind = iota
	CastExplicit
)

// castAllowed is the implicit-cast table: rows are source kinds, columns
// are target kinds. Only the seven kinds in the written table participate;
// anything else must go through an explicit cast and is rejected here with
// ok=false, which the analyzer reports as UnsupportedCast.
var castAllowed = map[Kind]map[Kind]bool{
	KindBool: {
		KindInt: true, KindUInt: true, KindFloat: true,
		KindBit: true, KindBitArray: true,
	},
	KindInt: {
		KindBool: true, KindUInt: true, KindFloat: true,
		KindBit: true, KindBitArray: true, KindComplex: true,
	},
	KindUInt: {
		KindBool: true, KindInt: true, KindFloat: true,
		KindBit: true, KindBitArray: true, KindComplex: true,
	},
	KindFloat: {
		KindBool: true, KindInt: true, KindUInt: true, KindAngle: true,
		KindBit: true, KindComplex: true,
	},
	KindAngle: {
		KindBool: true, KindAngle: true, KindBit: true, KindBitArray: true,
	},
	KindBit: {
		KindBool: true, KindInt: true, KindUInt: true, KindFloat: true,
		KindAngle: true, KindBitArray: true,
	},
	KindBitArray: {
		KindBool: true, KindInt: true, KindUInt: true,
		KindAngle: true, KindBitArray: true,
	},
}

// ImplicitCastAllowed reports whether an implicit cast from `from` to `to`
// is permitted by the table above. int→angle is deliberately absent: this
// module resolves that case as NOT allowed — callers must go through an
// explicit int→float→angle chain.
func ImplicitCastAllowed(from, to Kind) bool {
	if from == to {
		return true
	}
	row, ok := castAllowed[from]
	if !ok {
		return false
	}
	return row[to]
}

// CastError is returned by CheckCast when a cast is not supported at all
// (neither implicitly nor explicitly), corresponding to the semantic
// UnsupportedCast diagnostic.
type CastError struct {
	From, To Kind
}

func (e *CastError) Error() string {
	return "unsupported cast from " + e.From.String() + " to " + e.To.String()
}

// explicitOnly holds casts that are legal only when written explicitly,
// e.g. narrowing bitarr<->int/uint/angle conversions of a specific width
// and angle width-adjustment.
var explicitOnly = map[Kind]map[Kind]bool{
	KindBitArray: {KindInt: true, KindUInt: true, KindAngle: true},
	KindInt:      {KindBitArray: true},
	KindUInt:     {KindBitArray: true},
	KindAngle:    {KindBitArray: true, KindBool: true, KindBit: true},
}

// CheckCast reports whether a cast from `from` to `to` is legal at all
// (implicit OR explicit), and if so, whether it requires an explicit cast
// keyword. A false, false result means the cast should diagnose
// UnsupportedCast.
func CheckCast(from, to Kind) (legal bool, requiresExplicit bool) {
	if from == to {
		return true, false
	}
	if ImplicitCastAllowed(from, to) {
		return true, false
	}
	if row, ok := explicitOnly[from]; ok && row[to] {
		return true, true
	}
	return false, false
}
