package maincmd

import (
	"context"
	"fmt"

	"github.com/mna/mainer"

	"github.com/loxvm/lox/lang/heap"
	"github.com/loxvm/lox/lang/machine"
)

// replReadSize is the read-buffer cap, the literal analog of the reference
// implementation's REPL calling fgets(line, 1024, stdin).
const replReadSize = 1024

// runREPL implements the zero-argument CLI mode: a prompt, a line of
// source, an Interpret call, looped until the input stream closes. Errors
// within a single line never end the session; only EOF does.
func runREPL(ctx context.Context, stdio mainer.Stdio) mainer.ExitCode {
	h := heap.New()
	vm := machine.New(h)
	defer vm.Close()
	vm.Stdout = stdio.Stdout
	vm.Stderr = stdio.Stderr

	buf := make([]byte, replReadSize)
	for {
		select {
		case <-ctx.Done():
			return ExitOK
		default:
		}

		fmt.Fprint(stdio.Stdout, "> ")
		n, err := stdio.Stdin.Read(buf)
		if n > 0 {
			vm.Interpret(buf[:n])
		}
		if err != nil {
			fmt.Fprintln(stdio.Stdout)
			return ExitOK
		}
	}
}
