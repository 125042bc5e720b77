// Package machine implements the stack-based bytecode virtual machine: a
// fixed-capacity call-frame stack and value stack, a fetch-decode-execute
// loop over every compiler.Op, and the runtime semantics for calls,
// closures, classes and globals that the compiler's bytecode assumes.
package machine

import (
	"fmt"
	"io"
	"os"

	"github.com/loxvm/lox/lang/compiler"
	"github.com/loxvm/lox/lang/heap"
	"github.com/loxvm/lox/lang/value"
)

// FramesMax is the maximum call depth: exceeding it is a runtime "stack
// overflow" error rather than a panic.
const FramesMax = 64

// StackMax is the value stack's fixed capacity. Locals are addressed as
// stack slots, so a deeply recursive or deeply nested program exhausts this
// before it exhausts FramesMax in pathological cases, but in practice the
// frame limit is reached first.
const StackMax = FramesMax * 256

// Result mirrors the reference implementation's Interpret_Result: the
// outcome of one top-level Interpret call, used by cmd/lox to choose an
// exit code.
type Result int

const (
	ResultOK Result = iota
	ResultCompileError
	ResultRuntimeError
)

// callFrame is one activation record: the closure being executed, the
// index of the next instruction in its chunk, and the base of its window
// into the VM's value stack (slot 0 is the callee itself, or the receiver
// for a bound/invoked method).
type callFrame struct {
	closure   *value.Closure
	ip        int
	slotsBase int
}

// VM executes compiled Lox bytecode. It owns nothing across calls to
// Interpret except what the embedding program wants to persist (globals,
// the open-upvalue list should in practice always be empty between calls,
// since every call's frames unwind to zero): a fresh VM is cheap, but reuse
// is supported so a REPL can keep global state across lines.
type VM struct {
	heap *heap.Heap

	stack [StackMax]value.Value
	sp    int

	frames     [FramesMax]callFrame
	frameCount int

	// openUpvalues and openSlots are kept in parallel, sorted by descending
	// slot (the Go analog of the reference implementation's
	// descending-by-stack-address linked list): openSlots[i] is the stack
	// slot that openUpvalues[i] still points at while open. NextOpen on
	// each Upvalue mirrors this same order, so anything walking the linked
	// list the field documents sees the identical sequence.
	openUpvalues []*value.Upvalue
	openSlots    []int

	globals    *value.Table
	initString *value.String

	Stdout io.Writer
	Stderr io.Writer
}

// New returns a VM backed by h, with clock() and every other built-in
// native function registered.
func New(h *heap.Heap) *VM {
	vm := &VM{
		heap:    h,
		globals: value.NewTable(),
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}
	vm.initString = h.InternString("init")
	h.RegisterRoot(vm)
	registerNatives(h, vm.globals)
	return vm
}

// Close releases vm's claim on its Heap's root list and runs a final
// collection, which sweeps every object only this VM kept alive. Call it
// once the VM will no longer run, so a long-lived Heap shared with other VMs
// does not keep tracing a dead one's stack.
func (vm *VM) Close() {
	vm.heap.UnregisterRoot(vm)
	vm.heap.Collect()
}

// Interpret compiles and runs source to completion, returning which of the
// three reference-implementation outcomes applies. A non-nil error gives
// the diagnostic text already written to vm.Stderr, for callers (tests,
// mainly) that want it without re-reading the stream.
func (vm *VM) Interpret(source []byte) (Result, error) {
	fn, err := compiler.Compile(vm.heap, source)
	if err != nil {
		fmt.Fprintln(vm.Stderr, err)
		return ResultCompileError, err
	}

	closure := vm.heap.NewClosure(fn)
	vm.push(value.Obj(closure))
	if err := vm.call(closure, 0); err != nil {
		return ResultRuntimeError, err
	}

	if err := vm.run(); err != nil {
		return ResultRuntimeError, err
	}
	return ResultOK, nil
}

// MarkRoots implements heap.RootMarker: every live value on the stack,
// every frame's closure, every still-open upvalue, every global (key and
// value), and the pre-interned "init" string.
func (vm *VM) MarkRoots(mark func(value.Object)) {
	for i := 0; i < vm.sp; i++ {
		if vm.stack[i].IsObject() {
			mark(vm.stack[i].AsObject())
		}
	}
	for i := 0; i < vm.frameCount; i++ {
		mark(vm.frames[i].closure)
	}
	for _, uv := range vm.openUpvalues {
		mark(uv)
	}
	vm.globals.Each(func(e value.Entry) {
		mark(e.Key)
		if e.Value.IsObject() {
			mark(e.Value.AsObject())
		}
	})
	if vm.initString != nil {
		mark(vm.initString)
	}
}

func (vm *VM) push(v value.Value) { vm.stack[vm.sp] = v; vm.sp++ }

func (vm *VM) pop() value.Value {
	vm.sp--
	return vm.stack[vm.sp]
}

func (vm *VM) peek(distance int) value.Value { return vm.stack[vm.sp-1-distance] }

func (vm *VM) resetStack() {
	vm.sp = 0
	vm.frameCount = 0
	vm.openUpvalues = nil
	vm.openSlots = nil
}
