// Package debug implements the interactive cycle-stepping debugger that
// drives pkg/machine: a line-oriented REPL in the spirit of
// KTStephano-GVM's ExecProgramDebugMode (bufio.Reader + command-word
// dispatch, map-based breakpoint toggle), wrapped the way the teacher
// wraps its own command loops in a single cobra RunE.
package debug

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jasm-vm/jasm/pkg/isa"
	"github.com/jasm-vm/jasm/pkg/machine"
)

// Shell is the interactive debug loop: it owns a CPU, a breakpoint set
// keyed by address, and the input/output streams the REPL talks over.
type Shell struct {
	CPU         *machine.CPU
	Breakpoints map[uint16]struct{}

	in  *bufio.Reader
	out io.Writer
}

// NewShell wraps cpu in a REPL reading commands from in and writing
// output to out.
func NewShell(cpu *machine.CPU, in io.Reader, out io.Writer) *Shell {
	return &Shell{
		CPU:         cpu,
		Breakpoints: make(map[uint16]struct{}),
		in:          bufio.NewReader(in),
		out:         out,
	}
}

// Loop runs the REPL until "quit" or EOF on the input stream.
func (s *Shell) Loop() {
	fmt.Fprintln(s.out, "jemu debug shell — type 'help' for commands")
	s.printState()
	for {
		fmt.Fprint(s.out, "\n(jemu) ")
		line, err := s.in.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		cmd, args := strings.ToLower(fields[0]), fields[1:]

		switch cmd {
		case "step", "s":
			s.step()
		case "cont", "run", "c", "r":
			s.cont()
		case "break", "b":
			s.toggleBreak(args)
		case "regs", "reg":
			s.printState()
		case "mem", "m":
			s.dumpMem(args)
		case "disasm", "d":
			s.disasm(args)
		case "list", "prog", "l":
			s.list(args)
		case "ports", "p":
			s.dumpPorts()
		case "load":
			s.load(args)
		case "help", "h", "?":
			s.help()
		case "quit", "q", "exit":
			return
		default:
			fmt.Fprintf(s.out, "unknown command %q (try 'help')\n", cmd)
		}
	}
}

// step executes one instruction unless the CPU is sitting on a
// breakpoint, in which case it reports the hit and refuses to advance —
// breakpoints are checked before decode, the same guard cont() uses, so
// the two commands never disagree about where execution may proceed.
func (s *Shell) step() {
	if _, hit := s.Breakpoints[s.CPU.PC]; hit {
		fmt.Fprintf(s.out, "breakpoint at %#04x\n", s.CPU.PC)
		s.printState()
		return
	}
	sig, err := s.CPU.Step()
	if err != nil {
		fmt.Fprintf(s.out, "error: %v\n", err)
		return
	}
	s.printState()
	if sig == machine.SignalHalted {
		fmt.Fprintln(s.out, "halted")
	}
}

// cont runs until HALT, an execute error, or a breakpoint address is
// reached — a bare address already in the set is what "break" toggles
// off, matching KTStephano's breakAtLines toggle semantics.
func (s *Shell) cont() {
	for {
		if _, hit := s.Breakpoints[s.CPU.PC]; hit {
			fmt.Fprintf(s.out, "breakpoint at %#04x\n", s.CPU.PC)
			s.printState()
			return
		}
		sig, err := s.CPU.Step()
		if err != nil {
			fmt.Fprintf(s.out, "error: %v\n", err)
			s.printState()
			return
		}
		if sig == machine.SignalHalted {
			fmt.Fprintln(s.out, "halted")
			s.printState()
			return
		}
	}
}

func (s *Shell) toggleBreak(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.out, "usage: break <hex address>")
		return
	}
	addr, err := parseHex(args[0])
	if err != nil {
		fmt.Fprintf(s.out, "bad address %q: %v\n", args[0], err)
		return
	}
	if _, set := s.Breakpoints[addr]; set {
		delete(s.Breakpoints, addr)
		fmt.Fprintf(s.out, "breakpoint at %#04x removed\n", addr)
	} else {
		s.Breakpoints[addr] = struct{}{}
		fmt.Fprintf(s.out, "breakpoint at %#04x set\n", addr)
	}
}

func (s *Shell) printState() {
	c := s.CPU
	fmt.Fprintf(s.out, "PC=%#04x SP=%#04x F=%#02x STS=%#02x  A=%#02x B=%#02x C=%#02x D=%#02x X=%#02x Y=%#02x\n",
		c.PC, c.SP, c.F, c.STS,
		c.Regs[isa.A], c.Regs[isa.B], c.Regs[isa.C], c.Regs[isa.D], c.Regs[isa.X], c.Regs[isa.Y])
}

func (s *Shell) dumpMem(args []string) {
	start, n, err := parseRange(args, 16)
	if err != nil {
		fmt.Fprintln(s.out, err)
		return
	}
	for i := 0; i < n; i += 16 {
		fmt.Fprintf(s.out, "%#04x:", start+uint16(i))
		for j := i; j < i+16 && j < n; j++ {
			fmt.Fprintf(s.out, " %02x", s.CPU.Bus.ReadU8(start+uint16(j)))
		}
		fmt.Fprintln(s.out)
	}
}

func (s *Shell) dumpPorts() {
	for i := 0; i < 256; i += 16 {
		fmt.Fprintf(s.out, "%#02x:", i)
		for j := i; j < i+16; j++ {
			fmt.Fprintf(s.out, " %02x", s.CPU.Bus.ReadPort(uint8(j)))
		}
		fmt.Fprintln(s.out)
	}
}

func (s *Shell) disasm(args []string) {
	addr := s.CPU.PC
	if len(args) == 1 {
		a, err := parseHex(args[0])
		if err != nil {
			fmt.Fprintf(s.out, "bad address %q: %v\n", args[0], err)
			return
		}
		addr = a
	}
	d, _, err := machine.Decode(s.CPU.Bus, addr)
	if err != nil {
		fmt.Fprintf(s.out, "error: %v\n", err)
		return
	}
	fmt.Fprintf(s.out, "%#04x: %s\n", addr, isa.Disassemble(d))
}

// list disassembles a contiguous run of instructions starting at PC (or
// the given address) — the dual of disasm for many instructions at
// once. This is a convenience carried over from KTStephano's
// printProgram, not a spec-required operation.
func (s *Shell) list(args []string) {
	addr := s.CPU.PC
	count := 10
	if len(args) >= 1 {
		if a, err := parseHex(args[0]); err == nil {
			addr = a
		}
	}
	if len(args) >= 2 {
		if n, err := strconv.Atoi(args[1]); err == nil {
			count = n
		}
	}
	for i := 0; i < count; i++ {
		d, next, err := machine.Decode(s.CPU.Bus, addr)
		if err != nil {
			fmt.Fprintf(s.out, "error: %v\n", err)
			return
		}
		marker := "  "
		if addr == s.CPU.PC {
			marker = "->"
		}
		fmt.Fprintf(s.out, "%s %#04x: %s\n", marker, addr, isa.Disassemble(d))
		addr = next
	}
}

func (s *Shell) load(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.out, "usage: load <file>")
		return
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(s.out, "error: %v\n", err)
		return
	}
	*s.CPU.Bus = machine.Bus{}
	if err := s.CPU.Bus.Load(data, 0); err != nil {
		fmt.Fprintf(s.out, "error: %v\n", err)
		return
	}
	s.CPU.PC, s.CPU.SP, s.CPU.F, s.CPU.STS = 0, 0xFEFF, 0, 0
	s.CPU.Regs = [isa.NumGPR]uint8{}
	fmt.Fprintf(s.out, "loaded %d bytes from %s\n", len(data), args[0])
}

func (s *Shell) help() {
	fmt.Fprint(s.out, `commands:
  step (s)            execute one instruction
  cont/run (c/r)       run until halt, error, or breakpoint
  break (b) <hex>      set or remove a breakpoint at an address
  regs                 print register and flag state
  mem (m) <hex> [n]    dump n bytes of memory starting at an address
  disasm (d) [hex]     disassemble one instruction at PC or an address
  list/prog (l) [hex] [n]   disassemble n instructions starting at PC or an address
  ports (p)            dump the port address space
  load <file>          load a new binary image, resetting the machine
  help (h/?)           this text
  quit (q/exit)        leave the shell
`)
}

func parseHex(s string) (uint16, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	v, err := strconv.ParseUint(s, 16, 16)
	return uint16(v), err
}

func parseRange(args []string, defaultLen int) (uint16, int, error) {
	if len(args) < 1 {
		return 0, 0, fmt.Errorf("usage: mem <hex address> [length]")
	}
	start, err := parseHex(args[0])
	if err != nil {
		return 0, 0, fmt.Errorf("bad address %q: %w", args[0], err)
	}
	n := defaultLen
	if len(args) >= 2 {
		v, err := strconv.Atoi(args[1])
		if err != nil {
			return 0, 0, fmt.Errorf("bad length %q: %w", args[1], err)
		}
		n = v
	}
	return start, n, nil
}
