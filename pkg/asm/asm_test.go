package asm

import (
	"testing"

	"github.com/jasm-vm/jasm/pkg/asm/parser"
	"github.com/jasm-vm/jasm/pkg/isa"
)

func mustParse(t *testing.T, src string) parser.Program {
	t.Helper()
	prog, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return prog
}

func TestValidateAcceptsS1Program(t *testing.T) {
	prog := mustParse(t, "MOVE A, 0x05\nMOVE B, 3\nADD A, B\nHALT\n")
	if err := ValidateProgram(prog); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

func TestValidateRejectsUnknownMnemonic(t *testing.T) {
	prog := mustParse(t, "FROB A, B\n")
	if err := ValidateProgram(prog); err == nil {
		t.Fatal("expected an error for an unknown mnemonic")
	}
}

func TestValidateRejectsWrongOperandCount(t *testing.T) {
	prog := mustParse(t, "HALT A\n")
	if err := ValidateProgram(prog); err == nil {
		t.Fatal("expected an error: HALT takes no operands")
	}
}

func TestValidateRejectsSpecialRegisterOperand(t *testing.T) {
	prog := mustParse(t, "MOVE PC, A\n")
	if err := ValidateProgram(prog); err == nil {
		t.Fatal("expected an error: PC is not a general-purpose register")
	}
}

func TestValidateRejectsNonAdjacentPair(t *testing.T) {
	prog := mustParse(t, "LOAD A, A:C\n")
	if err := ValidateProgram(prog); err == nil {
		t.Fatal("expected an error: A:C is not an adjacent register pair")
	}
}

func TestSizeMatchesEncodedLength(t *testing.T) {
	prog := mustParse(t, "MOVE A, 0x05\nADD A, B\nHALT\nLOAD A, 0x1000\n")
	want := []int{3, 2, 1, 4}
	for i, line := range prog.Lines {
		got, err := Size(line)
		if err != nil {
			t.Fatalf("Size(%q) error: %v", line.Mnemonic, err)
		}
		if got != want[i] {
			t.Errorf("Size(line %d) = %d, want %d", i, got, want[i])
		}
	}
}

func TestResolveLabelsComputesAddresses(t *testing.T) {
	src := "start:\nMOVE A, 0x05\nloop:\nADD A, B\nJMP loop\n"
	prog := mustParse(t, src)
	labels, err := ResolveLabels(prog)
	if err != nil {
		t.Fatalf("ResolveLabels error: %v", err)
	}
	if labels["start"] != 0 {
		t.Errorf("start = %#x, want 0", labels["start"])
	}
	if labels["loop"] != 3 {
		t.Errorf("loop = %#x, want 3", labels["loop"])
	}
}

func TestResolveLabelsRejectsDuplicate(t *testing.T) {
	prog := mustParse(t, "foo:\nNOP\nfoo:\nNOP\n")
	if _, err := ResolveLabels(prog); err == nil {
		t.Fatal("expected an error for a redefined label")
	}
}

// TestAssembleS1 reproduces the specification's S1 worked scenario:
// MOVE A,5; MOVE B,3; ADD A,B; HALT should encode to a byte stream that
// decodes back to exactly those four instructions. The machine state the
// scenario ends in is checked by pkg/machine's TestScenarioS1.
func TestAssembleS1(t *testing.T) {
	prog := mustParse(t, "MOVE A, 0x05\nMOVE B, 3\nADD A, B\nHALT\n")
	data, err := Assemble(prog)
	if err != nil {
		t.Fatalf("Assemble error: %v", err)
	}

	read := isa.SliceReader(data)
	want := []isa.Decoded{
		{Op: isa.MOVE, Mode: isa.ModeRegImm8, Reg1: isa.A, Imm8: 5},
		{Op: isa.MOVE, Mode: isa.ModeRegImm8, Reg1: isa.B, Imm8: 3},
		{Op: isa.ADD, Mode: isa.ModeRegReg, Reg1: isa.A, Reg2: isa.B},
		{Op: isa.HALT, Mode: isa.ModeNone},
	}
	for i, w := range want {
		got, err := isa.Decode(read)
		if err != nil {
			t.Fatalf("decode instruction %d: %v", i, err)
		}
		if got != w {
			t.Errorf("instruction %d = %+v, want %+v", i, got, w)
		}
	}
}

func TestAssembleResolvesForwardLabel(t *testing.T) {
	prog := mustParse(t, "JMP done\nNOP\ndone:\nHALT\n")
	data, err := Assemble(prog)
	if err != nil {
		t.Fatalf("Assemble error: %v", err)
	}
	d, err := isa.Decode(isa.SliceReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if d.Op != isa.JMP || d.Mode != isa.ModeAddr16 || d.Addr16 != 5 {
		t.Errorf("JMP done = %+v, want Addr16=5", d)
	}
}

func TestAssembleOutbOperandOrder(t *testing.T) {
	prog := mustParse(t, "OUTB 0x10, A\n")
	data, err := Assemble(prog)
	if err != nil {
		t.Fatalf("Assemble error: %v", err)
	}
	d, err := isa.Decode(isa.SliceReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if d.Op != isa.OUTB || d.Mode != isa.ModeRegImm8 || d.Reg1 != isa.A || d.Imm8 != 0x10 {
		t.Errorf("OUTB 0x10, A = %+v, want Reg1=A Imm8=0x10", d)
	}
}

func TestAssembleRegisterPairLoad(t *testing.T) {
	prog := mustParse(t, "LOAD A, X:Y\n")
	data, err := Assemble(prog)
	if err != nil {
		t.Fatalf("Assemble error: %v", err)
	}
	d, err := isa.Decode(isa.SliceReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if d.Op != isa.LOAD || d.Mode != isa.ModeRegPair || d.Reg1 != isa.A || d.PairBase != isa.X {
		t.Errorf("LOAD A, X:Y = %+v, want Reg1=A PairBase=X", d)
	}
}

func TestAssembleUndefinedLabel(t *testing.T) {
	prog := mustParse(t, "JMP nowhere\n")
	if _, err := Assemble(prog); err == nil {
		t.Fatal("expected an error for an undefined label")
	}
}
