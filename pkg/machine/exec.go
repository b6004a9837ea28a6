package machine

import (
	"fmt"

	"github.com/jasm-vm/jasm/pkg/isa"
)

// Step decodes and executes one instruction. If the CPU is already
// halted, Step is a no-op that reports SignalHalted again, so a debug
// shell's `cont` loop can call Step in a tight loop without special
// casing the halted state itself.
func (c *CPU) Step() (Signal, error) {
	if c.halted() {
		return SignalHalted, nil
	}

	d, newPC, err := Decode(c.Bus, c.PC)
	if err != nil {
		return SignalRunning, fmt.Errorf("decode at %#04x: %w", c.PC, err)
	}
	c.PC = newPC

	if err := c.execute(d); err != nil {
		return SignalRunning, err
	}
	if c.halted() {
		return SignalHalted, nil
	}
	return SignalRunning, nil
}

// execute dispatches one decoded instruction. One exhaustive switch
// over isa.Opcode, grounded on the teacher's cpu.Exec — same shape
// (switch per opcode, small execXxx helpers carrying the flag logic),
// narrowed from 406 Z80 opcodes to JASM's 32.
func (c *CPU) execute(d isa.Decoded) error {
	switch d.Op {
	case isa.LOAD:
		c.setReg(d.Reg1, c.Bus.ReadU8(c.operandAddr(d)))
	case isa.STORE:
		c.Bus.WriteU8(c.operandAddr(d), c.reg(d.Reg1))

	case isa.MOVE:
		c.setReg(d.Reg1, c.rhs(d))

	case isa.PUSH:
		c.SP--
		c.Bus.WriteU8(c.SP, c.pushValue(d))
	case isa.POP:
		v := c.Bus.ReadU8(c.SP)
		c.SP++
		c.setReg(d.Reg1, v)

	case isa.ADD:
		c.setReg(d.Reg1, execAdd(c, c.reg(d.Reg1), c.rhs(d)))
	case isa.ADDC:
		c.setReg(d.Reg1, execAddc(c, c.reg(d.Reg1), c.rhs(d)))
	case isa.SUB:
		c.setReg(d.Reg1, execSub(c, c.reg(d.Reg1), c.rhs(d)))
	case isa.SUBB:
		c.setReg(d.Reg1, execSubb(c, c.reg(d.Reg1), c.rhs(d)))
	case isa.INC:
		c.setReg(d.Reg1, execInc(c, c.reg(d.Reg1)))
	case isa.DEC:
		c.setReg(d.Reg1, execDec(c, c.reg(d.Reg1)))
	case isa.SHL:
		c.setReg(d.Reg1, execShl(c, c.reg(d.Reg1), c.rhs(d)))
	case isa.SHR:
		c.setReg(d.Reg1, execShr(c, c.reg(d.Reg1), c.rhs(d)))
	case isa.AND:
		c.setReg(d.Reg1, execAnd(c, c.reg(d.Reg1), c.rhs(d)))
	case isa.OR:
		c.setReg(d.Reg1, execOr(c, c.reg(d.Reg1), c.rhs(d)))
	case isa.NOR:
		c.setReg(d.Reg1, execNor(c, c.reg(d.Reg1), c.rhs(d)))
	case isa.NOT:
		c.setReg(d.Reg1, execNot(c, c.reg(d.Reg1)))
	case isa.XOR:
		c.setReg(d.Reg1, execXor(c, c.reg(d.Reg1), c.rhs(d)))
	case isa.CMP:
		cmpFlags(c, c.reg(d.Reg1), c.rhs(d)) // Z, N, C only; never touches V

	case isa.INB:
		c.setReg(d.Reg1, c.Bus.ReadPort(c.rhs(d)))
	case isa.OUTB:
		c.Bus.WritePort(c.portOperand(d), c.reg(d.Reg1))

	case isa.SEC:
		c.setFlag(isa.FlagC, true)
	case isa.CLC:
		c.setFlag(isa.FlagC, false)
	case isa.CLZ:
		c.setFlag(isa.FlagZ, false)

	case isa.JMP:
		c.PC = c.jumpTarget(d)
	case isa.JZ:
		if c.flag(isa.FlagZ) {
			c.PC = c.jumpTarget(d)
		}
	case isa.JNZ:
		if !c.flag(isa.FlagZ) {
			c.PC = c.jumpTarget(d)
		}
	case isa.JC:
		if c.flag(isa.FlagC) {
			c.PC = c.jumpTarget(d)
		}
	case isa.JNC:
		if !c.flag(isa.FlagC) {
			c.PC = c.jumpTarget(d)
		}

	case isa.INT:
		c.STS |= isa.StsInt
		c.PendingVector = d.Imm8

	case isa.HALT:
		c.STS |= isa.StsHalt

	case isa.NOP:
		// nothing

	default:
		return fmt.Errorf("unimplemented opcode %v", d.Op)
	}
	return nil
}

// rhs reads the "other operand" for a two-operand ALU/load-ish
// instruction: Reg2 in register-register mode, Imm8 in register-
// immediate mode. OUTB's RegImm8/RegReg encodings already pack
// differently (see pkg/asm's encoder), so OUTB never calls rhs.
func (c *CPU) rhs(d isa.Decoded) uint8 {
	if d.Mode == isa.ModeRegReg {
		return c.reg(d.Reg2)
	}
	return d.Imm8
}

// portOperand returns OUTB's port number: Reg2 when the port was named
// as a register, Imm8 when it was an immediate (see pkg/asm/encoder.go
// for how the two syntax operands land in these fields).
func (c *CPU) portOperand(d isa.Decoded) uint8 {
	if d.Mode == isa.ModeRegReg {
		return c.reg(d.Reg2)
	}
	return d.Imm8
}

// pushValue returns what PUSH writes to the stack: the register's
// value in ModeReg, the raw immediate in ModeImm8.
func (c *CPU) pushValue(d isa.Decoded) uint8 {
	if d.Mode == isa.ModeReg {
		return c.reg(d.Reg1)
	}
	return d.Imm8
}

// operandAddr resolves LOAD/STORE's address operand: the absolute
// address in RegAddr16 mode, or the value of the two registers named by
// the pair in RegPair mode.
func (c *CPU) operandAddr(d isa.Decoded) uint16 {
	if d.Mode == isa.ModeRegPair {
		return isa.PairAddress(c.reg, d.PairBase)
	}
	return d.Addr16
}

// jumpTarget resolves a jump's target: the literal address in Addr16
// mode, or the pair-addressed value in RegPair mode.
func (c *CPU) jumpTarget(d isa.Decoded) uint16 {
	if d.Mode == isa.ModeRegPair {
		return isa.PairAddress(c.reg, d.PairBase)
	}
	return d.Addr16
}
