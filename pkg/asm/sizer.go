package asm

import (
	"github.com/jasm-vm/jasm/pkg/asm/parser"
	"github.com/jasm-vm/jasm/pkg/isa"
)

// Size returns the encoded byte length of one instruction line: a pure
// function of the mnemonic and the operand kinds, independent of
// whatever a label eventually resolves to. Pass 1 calls this once per
// instruction line to lay out label addresses before any label is
// actually resolved.
func Size(line parser.Line) (int, error) {
	op, ok := isa.Lookup(line.Mnemonic)
	if !ok {
		return 0, errf(line.Num, 0, "unknown mnemonic %q", line.Mnemonic)
	}
	mode, err := selectMode(op, line)
	if err != nil {
		return 0, err
	}
	return 1 + mode.TrailingBytes(), nil
}
