package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/loxvm/lox/lang/compiler"
	"github.com/loxvm/lox/lang/debug"
	"github.com/loxvm/lox/lang/heap"
)

// Disassemble is the `lox disassemble <path>...` debug subcommand: it
// compiles each file and prints the bytecode disassembly of its top-level
// script chunk, as rendered by lang/debug.DisassembleChunk.
func (c *Cmd) Disassemble(ctx context.Context, stdio mainer.Stdio, args []string) error {
	for _, path := range args {
		if err := disassembleFile(stdio, path); err != nil {
			return err
		}
	}
	return nil
}

func disassembleFile(stdio mainer.Stdio, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("disassemble: %w", err)
	}

	fn, err := compiler.Compile(heap.New(), src)
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}
	fmt.Fprint(stdio.Stdout, debug.DisassembleChunk(&fn.Chunk, path))
	return nil
}
