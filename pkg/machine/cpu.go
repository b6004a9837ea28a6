package machine

import "github.com/jasm-vm/jasm/pkg/isa"

// CPU is the full architectural state of a JASM machine: the six
// general-purpose registers, program counter, stack pointer, flags and
// status bytes, and the bus they all operate over.
type CPU struct {
	Regs [isa.NumGPR]uint8
	PC   uint16
	SP   uint16
	F    uint8
	STS  uint8

	Bus *Bus

	// PendingVector records the operand of the most recent INT; this
	// machine has no interrupt controller to dispatch it to, so INT's
	// only observable effect is the STS_INT bit and this value (see
	// DESIGN.md).
	PendingVector uint8
}

// NewCPU returns a CPU with SP initialized to 0xFEFF, as spec.md
// requires, and every other register at zero.
func NewCPU(bus *Bus) *CPU {
	return &CPU{SP: 0xFEFF, Bus: bus}
}

func (c *CPU) reg(r isa.Register) uint8 {
	if !r.Valid() {
		return 0
	}
	return c.Regs[r]
}

func (c *CPU) setReg(r isa.Register, v uint8) {
	if !r.Valid() {
		return
	}
	c.Regs[r] = v
}

func (c *CPU) flag(mask uint8) bool {
	return c.F&mask != 0
}

func (c *CPU) setFlag(mask uint8, v bool) {
	if v {
		c.F |= mask
	} else {
		c.F &^= mask
	}
}

func (c *CPU) halted() bool {
	return c.STS&isa.StsHalt != 0
}
