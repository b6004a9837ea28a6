// Command jasm assembles JASM source into a raw binary image.
package main

import (
	"fmt"
	"os"

	"github.com/jasm-vm/jasm/pkg/asm"
	"github.com/jasm-vm/jasm/pkg/asm/parser"
	"github.com/jasm-vm/jasm/pkg/isa"
	"github.com/jasm-vm/jasm/pkg/machine"
	"github.com/spf13/cobra"
)

func main() {
	var output string
	var dump bool

	rootCmd := &cobra.Command{
		Use:   "jasm <file.asm>",
		Short: "Assemble JASM source into a raw binary image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return assemble(args[0], output, dump)
		},
	}
	rootCmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: input name with .bin extension)")
	rootCmd.Flags().BoolVarP(&dump, "dump", "d", false, "print the label table and a disassembly listing")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func assemble(path, output string, dump bool) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	prog, err := parser.Parse(string(src))
	if err != nil {
		return err
	}
	if err := asm.ValidateProgram(prog); err != nil {
		return err
	}
	labels, err := asm.ResolveLabels(prog)
	if err != nil {
		return err
	}
	image, err := asm.Encode(prog, labels)
	if err != nil {
		return err
	}

	if dump {
		printDump(prog, labels, image)
	}

	if output == "" {
		output = outputName(path)
	}
	return os.WriteFile(output, image, 0o644)
}

func outputName(path string) string {
	for i := len(path) - 1; i >= 0 && path[i] != '/'; i-- {
		if path[i] == '.' {
			return path[:i] + ".bin"
		}
	}
	return path + ".bin"
}

func printDump(prog parser.Program, labels map[string]uint16, image []byte) {
	fmt.Println("labels:")
	for name, addr := range labels {
		fmt.Printf("  %-16s %#04x\n", name, addr)
	}

	fmt.Println("disassembly:")
	bus := &machine.Bus{}
	_ = bus.Load(image, 0)
	var pc uint16
	for int(pc) < len(image) {
		d, next, err := machine.Decode(bus, pc)
		if err != nil {
			fmt.Printf("  %#04x: <%v>\n", pc, err)
			break
		}
		fmt.Printf("  %#04x: %s\n", pc, isa.Disassemble(d))
		pc = next
	}
}
