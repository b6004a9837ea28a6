package asm

import (
	"github.com/jasm-vm/jasm/pkg/asm/parser"
	"github.com/jasm-vm/jasm/pkg/isa"
)

// Validate checks one instruction line for semantic correctness: known
// mnemonic, legal operand count and kinds for some mode the opcode
// allows, and (for register operands) that the name is actually a
// general-purpose register. It does not resolve labels or compute size;
// callers that need those call Size and ResolveLabels separately.
func Validate(line parser.Line) error {
	if line.Kind != parser.LineInstr {
		return nil
	}

	op, ok := isa.Lookup(line.Mnemonic)
	if !ok {
		return errf(line.Num, 0, "unknown mnemonic %q", line.Mnemonic)
	}

	if err := checkGPROperands(line); err != nil {
		return err
	}

	mode, err := selectMode(op, line)
	if err != nil {
		return err
	}

	if !op.AllowsMode(mode) {
		return errf(line.Num, 0, "%s does not support this operand form", line.Mnemonic)
	}

	return nil
}

// ValidateProgram validates every instruction line in prog, returning the
// first error encountered.
func ValidateProgram(prog parser.Program) error {
	for _, line := range prog.Lines {
		if err := Validate(line); err != nil {
			return err
		}
	}
	return nil
}
