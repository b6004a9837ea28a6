package isa

import "testing"

// TestHeaderByteRoundTrip verifies opcode/mode packing is reversible for
// every valid (opcode, mode) pair, independent of whether the ISA's
// mode table actually allows that combination.
func TestHeaderByteRoundTrip(t *testing.T) {
	for op := Opcode(0); op < opcodeCount; op++ {
		for mode := Mode(0); mode < 8; mode++ {
			b := HeaderByte(op, mode)
			gotOp, gotMode := SplitHeader(b)
			if gotOp != op || gotMode != mode {
				t.Errorf("HeaderByte(%d,%d)=%#x, SplitHeader back = (%d,%d)", op, mode, b, gotOp, gotMode)
			}
		}
	}
}

// TestKnownHeaderBytes pins the header encoding against the worked
// examples in the specification (S1 scenario).
func TestKnownHeaderBytes(t *testing.T) {
	cases := []struct {
		op   Opcode
		mode Mode
		want byte
	}{
		{MOVE, ModeRegImm8, 0x14},
		{ADD, ModeRegReg, 0x2B},
		{HALT, ModeNone, 0xF0},
	}
	for _, c := range cases {
		if got := HeaderByte(c.op, c.mode); got != c.want {
			t.Errorf("HeaderByte(%d,%d) = %#x, want %#x", c.op, c.mode, got, c.want)
		}
	}
}

func TestTrailingBytes(t *testing.T) {
	cases := []struct {
		mode Mode
		want int
	}{
		{ModeNone, 0},
		{ModeReg, 1},
		{ModeImm8, 2},
		{ModeRegReg, 1},
		{ModeRegImm8, 2},
		{ModeRegAddr16, 3},
		{ModeRegPair, 1},
		{ModeAddr16, 3},
	}
	for _, c := range cases {
		if got := c.mode.TrailingBytes(); got != c.want {
			t.Errorf("%s.TrailingBytes() = %d, want %d", c.mode, got, c.want)
		}
	}
}
