package types

import (
	"math/big"
	"testing"
)

func TestBaseTypeString(t *testing.T) {
	tests := []struct {
		name string
		typ  Type
		want string
	}{
		{"bool", NewBool(false), "Bool"},
		{"const bool", NewBool(true), "const Bool"},
		{"sized int", NewInt(WithWidth(32), false), "Int[32]"},
		{"unsized uint", NewUInt(nil, false), "UInt"},
		{"void", NewVoid(), "Void"},
		{"err", NewErr(), "Err"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.typ.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConstPropagation(t *testing.T) {
	a := NewInt(WithWidth(32), true)
	b := NewInt(WithWidth(32), true)
	if !Promote(a, b).IsConst() {
		t.Fatalf("const op const should be const")
	}
	c := NewInt(WithWidth(32), false)
	if Promote(a, c).IsConst() {
		t.Fatalf("const op non-const should not be const")
	}
}

func TestWidthPromotionMonotone(t *testing.T) {
	narrow := NewInt(WithWidth(8), false)
	wide := NewInt(WithWidth(32), false)
	got := Promote(narrow, wide)
	w, ok := WidthOf(got)
	if !ok || w != 32 {
		t.Fatalf("expected promoted width 32, got %v ok=%v", w, ok)
	}
}

func TestSizedWithUnsizedYieldsUnsized(t *testing.T) {
	sized := NewInt(WithWidth(8), false)
	unsized := NewInt(nil, false)
	got := Promote(sized, unsized)
	if _, ok := WidthOf(got); ok {
		t.Fatalf("sized combined with unsized should be unsized")
	}
}

func TestArrayDimsBeyondSevenIsErr(t *testing.T) {
	dims := make([]int, 8)
	got := NewArray(NewInt(nil, false), dims)
	if !IsErr(got) {
		t.Fatalf("8-dim array should type to Err")
	}
}

func TestArrayUpToSevenDimsOK(t *testing.T) {
	dims := make([]int, MaxArrayDims)
	got := NewArray(NewInt(nil, false), dims)
	if IsErr(got) {
		t.Fatalf("7-dim array should be legal")
	}
}

func TestImplicitCastTable(t *testing.T) {
	cases := []struct {
		from, to Kind
		want     bool
	}{
		{KindBool, KindInt, true},
		{KindInt, KindAngle, false}, // open question resolved: forbidden
		{KindFloat, KindAngle, true},
		{KindBit, KindBitArray, true},
		{KindBitArray, KindBool, true},
		{KindAngle, KindInt, false},
	}
	for _, c := range cases {
		if got := ImplicitCastAllowed(c.from, c.to); got != c.want {
			t.Errorf("ImplicitCastAllowed(%s, %s) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestBitArrayBigEndianRoundTrip(t *testing.T) {
	bits := []bool{true, false, true, true} // 1011 = 11, MSB first
	got := BitArrayToInt(bits)
	want := big.NewInt(11)
	if got.Cmp(want) != 0 {
		t.Fatalf("BitArrayToInt(%v) = %v, want %v", bits, got, want)
	}
	back := IntToBitArray(want, 4)
	for i := range bits {
		if back[i] != bits[i] {
			t.Fatalf("IntToBitArray round-trip mismatch at %d: got %v, want %v", i, back, bits)
		}
	}
}

func TestAngleWidthAdjustWidensWithoutTruncation(t *testing.T) {
	bits := big.NewInt(0b101)
	adj, err := AngleWidthAdjust(bits, 3, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := big.NewInt(0b10100)
	if adj.Cmp(want) != 0 {
		t.Fatalf("AngleWidthAdjust = %v, want %v", adj, want)
	}
}

func TestAngleWidthAdjustNarrowingOutOfRangeErrors(t *testing.T) {
	bits := big.NewInt(0b10101)
	_, err := AngleWidthAdjust(bits, 5, 3)
	if err == nil {
		t.Fatalf("expected error narrowing a non-representable angle")
	}
}

func TestIsBig(t *testing.T) {
	if !IsBig(NewInt(WithWidth(128), false)) {
		t.Fatalf("width 128 should require big-integer representation")
	}
	if IsBig(NewInt(WithWidth(32), false)) {
		t.Fatalf("width 32 should not require big-integer representation")
	}
}
