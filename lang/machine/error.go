package machine

import "fmt"

// RuntimeError is returned by Interpret when the program raised an error
// while running rather than while compiling. Its Error text is the message
// line already written to the VM's Stderr; Trace holds the call-stack lines
// written after it, innermost frame first.
type RuntimeError struct {
	Message string
	Trace   []string
}

func (e *RuntimeError) Error() string { return e.Message }

// runtimeError formats msg, writes it and a full call-stack trace to
// Stderr (innermost frame first, matching the reference implementation),
// and resets the stacks so a REPL can keep accepting input afterward.
func (vm *VM) runtimeError(format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	rerr := &RuntimeError{Message: msg}

	fmt.Fprintln(vm.Stderr, msg)
	for i := vm.frameCount - 1; i >= 0; i-- {
		frame := &vm.frames[i]
		fn := frame.closure.Function
		line := fn.Chunk.Lines[frame.ip-1]

		name := "script"
		if fn.Name != nil {
			name = fn.Name.Chars + "()"
		}
		line1 := fmt.Sprintf("[line %d] in %s", line, name)
		rerr.Trace = append(rerr.Trace, line1)
		fmt.Fprintln(vm.Stderr, line1)
	}

	vm.resetStack()
	return rerr
}
