package isa

import "testing"

func TestLookupCaseInsensitive(t *testing.T) {
	for _, name := range []string{"move", "MOVE", "Move"} {
		op, ok := Lookup(name)
		if !ok || op != MOVE {
			t.Errorf("Lookup(%q) = (%d,%v), want (MOVE,true)", name, op, ok)
		}
	}
}

func TestLookupUnknown(t *testing.T) {
	if _, ok := Lookup("FROB"); ok {
		t.Error("Lookup(\"FROB\") should fail")
	}
}

func TestAllowsMode(t *testing.T) {
	if !ADD.AllowsMode(ModeRegReg) {
		t.Error("ADD should allow ModeRegReg")
	}
	if ADD.AllowsMode(ModeAddr16) {
		t.Error("ADD should not allow ModeAddr16")
	}
}

func TestEveryOpcodeHasMnemonic(t *testing.T) {
	for op := Opcode(0); op < opcodeCount; op++ {
		if Catalog[op].Mnemonic == "" {
			t.Errorf("opcode %d has no catalog entry", op)
		}
	}
}

func TestIsJump(t *testing.T) {
	for _, op := range []Opcode{JMP, JZ, JNZ, JC, JNC} {
		if !op.IsJump() {
			t.Errorf("%v should be a jump", op)
		}
	}
	if ADD.IsJump() {
		t.Error("ADD should not be a jump")
	}
}

func TestDisassemble(t *testing.T) {
	cases := []struct {
		d    Decoded
		want string
	}{
		{Decoded{Op: HALT, Mode: ModeNone}, "HALT"},
		{Decoded{Op: MOVE, Mode: ModeRegImm8, Reg1: A, Imm8: 5}, "MOVE A, 0x05"},
		{Decoded{Op: ADD, Mode: ModeRegReg, Reg1: A, Reg2: B}, "ADD A, B"},
		{Decoded{Op: JMP, Mode: ModeAddr16, Addr16: 0x1234}, "JMP 0x1234"},
	}
	for _, c := range cases {
		if got := Disassemble(c.d); got != c.want {
			t.Errorf("Disassemble(%+v) = %q, want %q", c.d, got, c.want)
		}
	}
}
