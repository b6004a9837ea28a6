package asm

import (
	"github.com/jasm-vm/jasm/pkg/asm/parser"
	"github.com/jasm-vm/jasm/pkg/isa"
)

// selectMode picks the one addressing mode that matches the operand
// shape a line's operands present, for a given opcode. It is the single
// place that encodes every mnemonic's operand grammar, shared by the
// validator, sizer, and encoder so the three can never disagree about
// what a line means.
//
// Most mnemonics follow the "register first" convention: operand 0 is
// the register the mode table calls "register" and operand 1 (if any)
// is the register-or-immediate or address/pair. OUTB is the one
// exception the specification calls out explicitly: its first operand
// is the port (register or immediate) and its second is the source
// register.
func selectMode(op isa.Opcode, line parser.Line) (isa.Mode, error) {
	ops := line.Operands
	switch op {
	case isa.SEC, isa.CLC, isa.CLZ, isa.NOP, isa.HALT:
		if len(ops) != 0 {
			return 0, errf(line.Num, 0, "%s takes no operands", line.Mnemonic)
		}
		return isa.ModeNone, nil

	case isa.POP, isa.INC, isa.DEC, isa.NOT:
		if len(ops) != 1 {
			return 0, errf(line.Num, 0, "%s takes exactly one operand", line.Mnemonic)
		}
		if ops[0].Kind != parser.KindRegister {
			return 0, errf(line.Num, 1, "%s expects a register", line.Mnemonic)
		}
		return isa.ModeReg, nil

	case isa.PUSH:
		if len(ops) != 1 {
			return 0, errf(line.Num, 0, "PUSH takes exactly one operand")
		}
		switch ops[0].Kind {
		case parser.KindRegister:
			return isa.ModeReg, nil
		case parser.KindNumber:
			return isa.ModeImm8, nil
		}
		return 0, errf(line.Num, 1, "PUSH expects a register or an immediate")

	case isa.INT:
		if len(ops) != 1 {
			return 0, errf(line.Num, 0, "INT takes exactly one operand")
		}
		if ops[0].Kind != parser.KindNumber {
			return 0, errf(line.Num, 1, "INT expects an immediate vector number")
		}
		return isa.ModeImm8, nil

	case isa.MOVE, isa.ADD, isa.ADDC, isa.SUB, isa.SUBB,
		isa.SHL, isa.SHR, isa.AND, isa.OR, isa.NOR, isa.XOR,
		isa.CMP, isa.INB:
		if len(ops) != 2 {
			return 0, errf(line.Num, 0, "%s takes exactly two operands", line.Mnemonic)
		}
		if ops[0].Kind != parser.KindRegister {
			return 0, errf(line.Num, 1, "%s expects a register", line.Mnemonic)
		}
		switch ops[1].Kind {
		case parser.KindRegister:
			return isa.ModeRegReg, nil
		case parser.KindNumber:
			return isa.ModeRegImm8, nil
		}
		return 0, errf(line.Num, 2, "%s expects a register or an immediate", line.Mnemonic)

	case isa.OUTB:
		if len(ops) != 2 {
			return 0, errf(line.Num, 0, "OUTB takes exactly two operands")
		}
		if ops[1].Kind != parser.KindRegister {
			return 0, errf(line.Num, 2, "OUTB expects a source register")
		}
		switch ops[0].Kind {
		case parser.KindRegister:
			return isa.ModeRegReg, nil
		case parser.KindNumber:
			return isa.ModeRegImm8, nil
		}
		return 0, errf(line.Num, 1, "OUTB expects a port register or an immediate")

	case isa.LOAD, isa.STORE:
		if len(ops) != 2 {
			return 0, errf(line.Num, 0, "%s takes exactly two operands", line.Mnemonic)
		}
		if ops[0].Kind != parser.KindRegister {
			return 0, errf(line.Num, 1, "%s expects a register", line.Mnemonic)
		}
		switch ops[1].Kind {
		case parser.KindRegisterPair:
			return isa.ModeRegPair, nil
		case parser.KindNumber, parser.KindLabelName:
			return isa.ModeRegAddr16, nil
		}
		return 0, errf(line.Num, 2, "%s expects an address or a register pair", line.Mnemonic)

	case isa.JMP, isa.JZ, isa.JNZ, isa.JC, isa.JNC:
		if len(ops) != 1 {
			return 0, errf(line.Num, 0, "%s takes exactly one operand", line.Mnemonic)
		}
		switch ops[0].Kind {
		case parser.KindRegisterPair:
			return isa.ModeRegPair, nil
		case parser.KindNumber, parser.KindLabelName:
			return isa.ModeAddr16, nil
		}
		return 0, errf(line.Num, 1, "%s expects an address or a register pair", line.Mnemonic)
	}

	return 0, errf(line.Num, 0, "unhandled opcode %v", op)
}

// checkGPROperands rejects operands that name a register but don't name
// a general-purpose one: the special-register tokens SP, PC, Z, F, MB,
// STS are valid lexer tokens (see isa.IsSpecialRegisterName) but no JASM
// instruction ever addresses them as an operand slot. It also enforces
// that a written-out register pair ("X:Y") names an adjacent pair: the
// hardware encoding has room for only one 4-bit base register per the
// RegPair mode byte, so the second name must equal base+1 (mod 16); the
// written-out low name is a readability aid, not an independent field.
func checkGPROperands(line parser.Line) error {
	for i, o := range line.Operands {
		switch o.Kind {
		case parser.KindRegister:
			if !o.Reg.Valid() {
				return errf(line.Num, i+1, "%q is not a general-purpose register", o.Text)
			}
		case parser.KindRegisterPair:
			if !o.Reg.Valid() || !o.RegLo.Valid() {
				return errf(line.Num, i+1, "%q is not a valid register pair", o.Text)
			}
			if o.RegLo != isa.Register((uint8(o.Reg)+1)&0x0F) {
				return errf(line.Num, i+1, "%q is not an adjacent register pair", o.Text)
			}
		}
	}
	return nil
}
