package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jasm-vm/jasm/pkg/isa"
)

// Error is a parse-time diagnostic, carrying the offending source line.
type Error struct {
	Line int
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// Parse scans JASM assembly source into a Program. Mnemonics and
// register names are case-insensitive; ";" starts a line comment that
// runs to end of line; a line ending in ":" is a label definition.
func Parse(src string) (Program, error) {
	var prog Program
	lines := strings.Split(src, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		// A trailing newline ends the last line; it does not start a new one.
		lines = lines[:n-1]
	}
	for i, raw := range lines {
		lineNum := i + 1
		text := stripComment(raw)
		text = strings.TrimSpace(text)

		if text == "" {
			prog.Lines = append(prog.Lines, Line{Kind: LineBlank, Num: lineNum})
			continue
		}

		if strings.HasSuffix(text, ":") {
			name := strings.TrimSpace(strings.TrimSuffix(text, ":"))
			if name == "" {
				return prog, &Error{Line: lineNum, Msg: "empty label name"}
			}
			prog.Lines = append(prog.Lines, Line{Kind: LineLabel, Num: lineNum, Name: name})
			continue
		}

		line, err := parseInstr(text, lineNum)
		if err != nil {
			return prog, err
		}
		prog.Lines = append(prog.Lines, line)
	}
	return prog, nil
}

func stripComment(line string) string {
	if idx := strings.IndexByte(line, ';'); idx >= 0 {
		return line[:idx]
	}
	return line
}

func parseInstr(text string, lineNum int) (Line, error) {
	fields := strings.SplitN(text, " ", 2)
	mnemonic := strings.ToUpper(strings.TrimSpace(fields[0]))

	line := Line{Kind: LineInstr, Num: lineNum, Mnemonic: mnemonic}
	if len(fields) == 1 {
		return line, nil
	}

	rest := strings.TrimSpace(fields[1])
	if rest == "" {
		return line, nil
	}

	for _, tok := range strings.Split(rest, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			return line, &Error{Line: lineNum, Msg: "empty operand"}
		}
		operand, err := parseOperand(tok, lineNum)
		if err != nil {
			return line, err
		}
		line.Operands = append(line.Operands, operand)
	}
	return line, nil
}

func parseOperand(tok string, lineNum int) (Operand, error) {
	if hi, lo, ok := splitPair(tok); ok {
		hiReg, hiOK := isa.LookupRegister(hi)
		loReg, loOK := isa.LookupRegister(lo)
		if !hiOK || !loOK {
			return Operand{}, &Error{Line: lineNum, Msg: fmt.Sprintf("invalid register pair %q", tok)}
		}
		return Operand{Kind: KindRegisterPair, Text: tok, Reg: hiReg, RegLo: loReg}, nil
	}

	if reg, ok := isa.LookupRegister(tok); ok {
		return Operand{Kind: KindRegister, Text: tok, Reg: reg}, nil
	}
	if isa.IsSpecialRegisterName(tok) {
		return Operand{Kind: KindRegister, Text: tok, Reg: isa.Register(0xFF)}, nil
	}

	if n, ok, err := parseNumber(tok); ok || err != nil {
		if err != nil {
			return Operand{}, &Error{Line: lineNum, Msg: err.Error()}
		}
		return Operand{Kind: KindNumber, Text: tok, Number: n}, nil
	}

	if !isIdentifier(tok) {
		return Operand{}, &Error{Line: lineNum, Msg: fmt.Sprintf("invalid operand %q", tok)}
	}
	return Operand{Kind: KindLabelName, Text: tok, Label: tok}, nil
}

func splitPair(tok string) (hi, lo string, ok bool) {
	idx := strings.IndexByte(tok, ':')
	if idx < 0 {
		return "", "", false
	}
	return tok[:idx], tok[idx+1:], true
}

// parseNumber recognizes "0x..." hex, "b..." binary, and plain decimal.
// The third return value distinguishes "not a number" (false, nil) from
// "looked like a number but failed to parse" (true is meaningless, err set).
func parseNumber(tok string) (int64, bool, error) {
	upper := strings.ToUpper(tok)
	switch {
	case strings.HasPrefix(upper, "0X"):
		v, err := strconv.ParseInt(tok[2:], 16, 64)
		if err != nil {
			return 0, true, fmt.Errorf("invalid hex number %q", tok)
		}
		return v, true, nil
	case len(tok) > 1 && (tok[0] == 'b' || tok[0] == 'B') && isBinaryDigits(tok[1:]):
		v, err := strconv.ParseInt(tok[1:], 2, 64)
		if err != nil {
			return 0, true, fmt.Errorf("invalid binary number %q", tok)
		}
		return v, true, nil
	case isDecimalDigits(tok):
		v, err := strconv.ParseInt(tok, 10, 64)
		if err != nil {
			return 0, true, fmt.Errorf("invalid decimal number %q", tok)
		}
		return v, true, nil
	}
	return 0, false, nil
}

func isBinaryDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] != '0' && s[i] != '1' {
			return false
		}
	}
	return true
}

func isDecimalDigits(s string) bool {
	if s == "" {
		return false
	}
	start := 0
	if s[0] == '-' {
		start = 1
	}
	if start == len(s) {
		return false
	}
	for i := start; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		isAlnum := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_'
		if !isAlnum {
			return false
		}
	}
	return true
}
