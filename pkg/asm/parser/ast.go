// Package parser implements the line-oriented JASM assembly grammar:
// blank lines, comments, labels, and instructions. This is the external
// collaborator spec.md places out of the core's scope ("lexing/parsing
// of the assembly text... provided by any standard grammar-driven
// parser producing a labeled AST") — implemented here as a hand-rolled
// scanner, not a grammar framework, because the language is a single
// flat line grammar with no nesting; see DESIGN.md for why no pack
// parser-combinator library was reached for.
package parser

import "github.com/jasm-vm/jasm/pkg/isa"

// OperandKind tags what kind of token an operand is.
type OperandKind int

const (
	KindRegister OperandKind = iota
	KindRegisterPair
	KindNumber
	KindLabelName
)

func (k OperandKind) String() string {
	switch k {
	case KindRegister:
		return "REGISTER"
	case KindRegisterPair:
		return "REGISTER_PAIR"
	case KindNumber:
		return "NUMBER"
	case KindLabelName:
		return "LABELNAME"
	default:
		return "?"
	}
}

// Operand is one parsed operand token.
type Operand struct {
	Kind OperandKind
	Text string // original source text, for error messages

	Reg   isa.Register // valid when Kind == KindRegister or KindRegisterPair (high/dest)
	RegLo isa.Register // valid when Kind == KindRegisterPair (low/src)
	Number int64       // valid when Kind == KindNumber
	Label string       // valid when Kind == KindLabelName
}

// LineKind tags what a source line turned out to be.
type LineKind int

const (
	LineBlank LineKind = iota
	LineComment
	LineLabel
	LineInstr
)

// Line is one parsed source line. Blank and comment lines carry no
// further data; a label line carries Name; an instruction line carries
// Mnemonic and Operands.
type Line struct {
	Kind LineKind
	Num  int // 1-based source line number, for diagnostics

	Name string // LineKind == LineLabel

	Mnemonic string    // LineKind == LineInstr
	Operands []Operand // LineKind == LineInstr
}

// Program is a fully parsed source file: one Line per physical line.
type Program struct {
	Lines []Line
}
