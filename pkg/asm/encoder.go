package asm

import (
	"github.com/jasm-vm/jasm/pkg/asm/parser"
	"github.com/jasm-vm/jasm/pkg/isa"
)

// Encode is assembler pass 2: it walks the already-validated program and
// emits the final byte stream, resolving any label-name operand against
// the addresses ResolveLabels computed in pass 1. The instruction-level
// shape decisions (which mode a line encodes to, which operand fills
// which field) are the same ones Validate and Size already made, via
// selectMode and buildDecoded, so pass 1's sizes and pass 2's bytes can
// never drift apart.
func Encode(prog parser.Program, labels map[string]uint16) ([]byte, error) {
	var out []byte
	for _, line := range prog.Lines {
		if line.Kind != parser.LineInstr {
			continue
		}
		op, ok := isa.Lookup(line.Mnemonic)
		if !ok {
			return nil, errf(line.Num, 0, "unknown mnemonic %q", line.Mnemonic)
		}
		mode, err := selectMode(op, line)
		if err != nil {
			return nil, err
		}
		d, err := buildDecoded(op, mode, line, labels)
		if err != nil {
			return nil, err
		}
		out = append(out, isa.Encode(d)...)
	}
	return out, nil
}

// Assemble runs the full pipeline over already-parsed source: validate
// every line, resolve labels, then encode. cmd/jasm runs these three
// steps itself instead, because its --dump output needs the label table.
func Assemble(prog parser.Program) ([]byte, error) {
	if err := ValidateProgram(prog); err != nil {
		return nil, err
	}
	labels, err := ResolveLabels(prog)
	if err != nil {
		return nil, err
	}
	return Encode(prog, labels)
}

func buildDecoded(op isa.Opcode, mode isa.Mode, line parser.Line, labels map[string]uint16) (isa.Decoded, error) {
	d := isa.Decoded{Op: op, Mode: mode}
	ops := line.Operands

	switch mode {
	case isa.ModeNone:
		// no operands

	case isa.ModeReg:
		d.Reg1 = ops[0].Reg

	case isa.ModeImm8:
		imm, err := operandImm8(ops[0], line.Num, 1)
		if err != nil {
			return d, err
		}
		d.Imm8 = imm

	case isa.ModeRegReg:
		if op == isa.OUTB {
			d.Reg1 = ops[1].Reg // source register
			d.Reg2 = ops[0].Reg // port register
		} else {
			d.Reg1 = ops[0].Reg
			d.Reg2 = ops[1].Reg
		}

	case isa.ModeRegImm8:
		if op == isa.OUTB {
			d.Reg1 = ops[1].Reg // source register
			imm, err := operandImm8(ops[0], line.Num, 1)
			if err != nil {
				return d, err
			}
			d.Imm8 = imm
		} else {
			d.Reg1 = ops[0].Reg
			imm, err := operandImm8(ops[1], line.Num, 2)
			if err != nil {
				return d, err
			}
			d.Imm8 = imm
		}

	case isa.ModeRegAddr16:
		d.Reg1 = ops[0].Reg
		addr, err := operandAddr16(ops[1], line.Num, 2, labels)
		if err != nil {
			return d, err
		}
		d.Addr16 = addr

	case isa.ModeRegPair:
		if op.IsJump() {
			d.PairBase = ops[0].Reg
		} else {
			d.Reg1 = ops[0].Reg
			d.PairBase = ops[1].Reg
		}

	case isa.ModeAddr16:
		addr, err := operandAddr16(ops[0], line.Num, 1, labels)
		if err != nil {
			return d, err
		}
		d.Addr16 = addr
	}

	return d, nil
}

func operandImm8(o parser.Operand, lineNum, pos int) (uint8, error) {
	if o.Number < -128 || o.Number > 255 {
		return 0, errf(lineNum, pos, "immediate %d out of 8-bit range", o.Number)
	}
	return uint8(o.Number), nil
}

func operandAddr16(o parser.Operand, lineNum, pos int, labels map[string]uint16) (uint16, error) {
	if o.Kind == parser.KindLabelName {
		addr, ok := labels[o.Label]
		if !ok {
			return 0, errf(lineNum, pos, "undefined label %q", o.Label)
		}
		return addr, nil
	}
	if o.Number < -32768 || o.Number > 65535 {
		return 0, errf(lineNum, pos, "address %d out of 16-bit range", o.Number)
	}
	return uint16(o.Number), nil
}
