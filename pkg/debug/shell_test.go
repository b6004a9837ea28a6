package debug

import (
	"strings"
	"testing"

	"github.com/jasm-vm/jasm/pkg/asm"
	"github.com/jasm-vm/jasm/pkg/asm/parser"
	"github.com/jasm-vm/jasm/pkg/machine"
)

func assembleOrFail(t *testing.T, src string) []byte {
	t.Helper()
	prog, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	data, err := asm.Assemble(prog)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	return data
}

func TestShellStepAndQuit(t *testing.T) {
	bus := &machine.Bus{}
	if err := bus.Load(assembleOrFail(t, "MOVE A, 0x05\nHALT\n"), 0); err != nil {
		t.Fatalf("load: %v", err)
	}
	cpu := machine.NewCPU(bus)

	var out strings.Builder
	sh := NewShell(cpu, strings.NewReader("step\nregs\nquit\n"), &out)
	sh.Loop()

	if !strings.Contains(out.String(), "A=0x05") {
		t.Errorf("output missing register state after step:\n%s", out.String())
	}
}

func TestShellStepRefusesAtBreakpoint(t *testing.T) {
	bus := &machine.Bus{}
	if err := bus.Load(assembleOrFail(t, "NOP\nHALT\n"), 0); err != nil {
		t.Fatalf("load: %v", err)
	}
	cpu := machine.NewCPU(bus)

	var out strings.Builder
	sh := NewShell(cpu, strings.NewReader("step\nquit\n"), &out)
	sh.toggleBreak([]string{"0x0"})
	sh.Loop()

	if !strings.Contains(out.String(), "breakpoint at 0x0") {
		t.Errorf("output missing breakpoint refusal:\n%s", out.String())
	}
	if cpu.PC != 0 {
		t.Errorf("PC = %#04x, want 0x0000; step must not execute at a breakpoint", cpu.PC)
	}
}

func TestShellBreakpointToggle(t *testing.T) {
	bus := &machine.Bus{}
	if err := bus.Load(assembleOrFail(t, "NOP\nHALT\n"), 0); err != nil {
		t.Fatalf("load: %v", err)
	}
	cpu := machine.NewCPU(bus)

	var out strings.Builder
	sh := NewShell(cpu, strings.NewReader(""), &out)
	sh.toggleBreak([]string{"0x1"})
	if _, set := sh.Breakpoints[1]; !set {
		t.Fatal("expected breakpoint at 0x1 to be set")
	}
	sh.toggleBreak([]string{"0x1"})
	if _, set := sh.Breakpoints[1]; set {
		t.Fatal("expected breakpoint at 0x1 to be removed on second toggle")
	}
}
