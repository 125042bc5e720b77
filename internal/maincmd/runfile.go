package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/loxvm/lox/lang/heap"
	"github.com/loxvm/lox/lang/machine"
)

// runFile implements the one-argument CLI mode: read path fully, interpret
// it, and translate the outcome into the spec's fixed exit codes.
func runFile(ctx context.Context, stdio mainer.Stdio, path string) mainer.ExitCode {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "%s: %s\n", binName, err)
		return ExitIOError
	}

	h := heap.New()
	vm := machine.New(h)
	defer vm.Close()
	vm.Stdout = stdio.Stdout
	vm.Stderr = stdio.Stderr

	result, _ := vm.Interpret(src)
	switch result {
	case machine.ResultCompileError:
		return ExitCompileError
	case machine.ResultRuntimeError:
		return ExitRuntimeError
	default:
		return ExitOK
	}
}
