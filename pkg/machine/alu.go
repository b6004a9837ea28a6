package machine

import "github.com/jasm-vm/jasm/pkg/isa"

// execAdd adds rhs into a, updating C, Z, N, V and returning the result.
// Grounded on the teacher's execAdd(s *State, val uint8) in
// pkg/cpu/exec.go, narrowed to JASM's four-flag model.
func execAdd(c *CPU, a, rhs uint8) uint8 {
	sum := uint16(a) + uint16(rhs)
	result := uint8(sum)
	c.setFlag(isa.FlagC, sum > 0xFF)
	c.setFlag(isa.FlagV, addOverflows(a, rhs, result))
	c.setZN(result)
	return result
}

func execAddc(c *CPU, a, rhs uint8) uint8 {
	carryIn := uint16(0)
	if c.flag(isa.FlagC) {
		carryIn = 1
	}
	sum := uint16(a) + uint16(rhs) + carryIn
	result := uint8(sum)
	c.setFlag(isa.FlagC, sum > 0xFF)
	c.setFlag(isa.FlagV, addOverflows(a, uint8(uint16(rhs)+carryIn), result))
	c.setZN(result)
	return result
}

// execSub computes a-rhs. C is a borrow flag: set when rhs > a
// (unsigned), so CMP a,a always clears it, per spec invariant 6.
func execSub(c *CPU, a, rhs uint8) uint8 {
	result := subFlagsCZN(c, a, rhs)
	c.setFlag(isa.FlagV, subOverflows(a, rhs, result))
	return result
}

// cmpFlags computes a-rhs for CMP: Z, N, and C (borrow) only, per
// spec.md's CMP row — unlike SUB, CMP never touches V.
func cmpFlags(c *CPU, a, rhs uint8) {
	subFlagsCZN(c, a, rhs)
}

func subFlagsCZN(c *CPU, a, rhs uint8) uint8 {
	diff := int16(a) - int16(rhs)
	result := uint8(diff)
	c.setFlag(isa.FlagC, rhs > a)
	c.setZN(result)
	return result
}

// execSubb subtracts rhs and an incoming borrow (C) from a. The
// borrow-in convention (b' = rhs + C_in) is the one spec.md's source
// material uses, per the open-question resolution in DESIGN.md.
func execSubb(c *CPU, a, rhs uint8) uint8 {
	borrowIn := uint16(0)
	if c.flag(isa.FlagC) {
		borrowIn = 1
	}
	rhsExt := uint16(rhs) + borrowIn
	diff := int32(a) - int32(rhsExt)
	result := uint8(diff)
	c.setFlag(isa.FlagC, rhsExt > uint16(a))
	c.setFlag(isa.FlagV, subOverflows(a, uint8(rhsExt), result))
	c.setZN(result)
	return result
}

func execAnd(c *CPU, a, rhs uint8) uint8 {
	result := a & rhs
	c.setZN(result)
	return result
}

func execOr(c *CPU, a, rhs uint8) uint8 {
	result := a | rhs
	c.setZN(result)
	return result
}

func execNor(c *CPU, a, rhs uint8) uint8 {
	result := ^(a | rhs)
	c.setZN(result)
	return result
}

func execXor(c *CPU, a, rhs uint8) uint8 {
	result := a ^ rhs
	c.setZN(result)
	return result
}

func execNot(c *CPU, a uint8) uint8 {
	result := ^a
	c.setZN(result)
	return result
}

func execInc(c *CPU, a uint8) uint8 {
	result := a + 1
	c.setZN(result)
	return result
}

func execDec(c *CPU, a uint8) uint8 {
	result := a - 1
	c.setZN(result)
	return result
}

// execShl shifts a left by the low 3 bits of count (no count==8 special
// case), per spec.md §9's reference choice. No flag side-effects beyond
// Z/N on the result; the bit shifted out of bit 7 is not latched anywhere.
func execShl(c *CPU, a, count uint8) uint8 {
	n := count & 0x07
	result := a << n
	c.setZN(result)
	return result
}

// execShr shifts a right by the low 3 bits of count. No flag
// side-effects beyond Z/N on the result.
func execShr(c *CPU, a, count uint8) uint8 {
	n := count & 0x07
	result := a >> n
	c.setZN(result)
	return result
}

func (c *CPU) setZN(result uint8) {
	c.F = c.F&^(isa.FlagZ|isa.FlagN) | isa.ZNTable[result]&(isa.FlagZ|isa.FlagN)
}

func addOverflows(a, b, result uint8) bool {
	return (^(a ^ b) & (a ^ result) & 0x80) != 0
}

func subOverflows(a, b, result uint8) bool {
	return ((a ^ b) & (a ^ result) & 0x80) != 0
}
