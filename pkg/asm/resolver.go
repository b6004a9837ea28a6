package asm

import "github.com/jasm-vm/jasm/pkg/asm/parser"

// ResolveLabels is assembler pass 1: it walks the program computing each
// instruction's address (by summing Size over every instruction line
// that precedes it) and records the address a label line names. JASM
// binaries are always linked to load at address 0x0000, so addresses
// start there; there is no ORG directive in this ISA.
func ResolveLabels(prog parser.Program) (map[string]uint16, error) {
	labels := make(map[string]uint16)
	var addr uint16

	for _, line := range prog.Lines {
		switch line.Kind {
		case parser.LineLabel:
			if _, dup := labels[line.Name]; dup {
				return nil, errf(line.Num, 0, "label %q redefined", line.Name)
			}
			labels[line.Name] = addr
		case parser.LineInstr:
			n, err := Size(line)
			if err != nil {
				return nil, err
			}
			addr += uint16(n)
		}
	}
	return labels, nil
}
