// Command jemu loads a JASM binary and either runs it to completion in
// batch mode or drops into the interactive debug shell.
package main

import (
	"fmt"
	"os"

	"github.com/jasm-vm/jasm/pkg/debug"
	"github.com/jasm-vm/jasm/pkg/isa"
	"github.com/jasm-vm/jasm/pkg/machine"
	"github.com/spf13/cobra"
)

func main() {
	var batch bool

	rootCmd := &cobra.Command{
		Use:   "jemu [file.bin]",
		Short: "Run or debug a JASM binary image",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			return run(path, batch)
		},
	}
	rootCmd.Flags().BoolVar(&batch, "batch", false, "run to completion non-interactively and print the final register state")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(path string, batch bool) error {
	bus := &machine.Bus{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if err := bus.Load(data, 0); err != nil {
			return err
		}
	}
	cpu := machine.NewCPU(bus)

	if !batch {
		debug.NewShell(cpu, os.Stdin, os.Stdout).Loop()
		return nil
	}

	for {
		sig, err := cpu.Step()
		if err != nil {
			printRegs(cpu)
			return err
		}
		if sig == machine.SignalHalted {
			printRegs(cpu)
			return nil
		}
	}
}

func printRegs(c *machine.CPU) {
	fmt.Printf("PC=%#04x SP=%#04x F=%#02x STS=%#02x  A=%#02x B=%#02x C=%#02x D=%#02x X=%#02x Y=%#02x\n",
		c.PC, c.SP, c.F, c.STS,
		c.Regs[isa.A], c.Regs[isa.B], c.Regs[isa.C], c.Regs[isa.D], c.Regs[isa.X], c.Regs[isa.Y])
}
