package machine

import (
	"time"

	"github.com/loxvm/lox/lang/heap"
	"github.com/loxvm/lox/lang/value"
)

// registerNatives defines every built-in native function on h and installs
// each one directly into globals, the same way the reference
// implementation's defineNative pushes the native straight into vm.globals
// rather than relying on some later, separate lookup path. It is safe to
// call more than once against the same Heap (DefineNative simply overwrites
// the registry entry), which matters for a REPL that constructs a fresh VM
// per session against a shared Heap.
func registerNatives(h *heap.Heap, globals *value.Table) {
	defineNative(h, globals, "clock", nativeClock)
}

func defineNative(h *heap.Heap, globals *value.Table, name string, fn value.NativeFn) {
	// Intern the name first: nothing roots the native until globals.Set, so
	// no allocation may run between creating it and storing it.
	key := h.InternString(name)
	h.DefineNative(name, fn)
	n, _ := h.LookupNative(name)
	globals.Set(key, value.Obj(n))
}

// nativeClock returns the number of seconds since the Unix epoch, the same
// signature and purpose as the reference implementation's clock() native,
// used by scripts to measure their own running time.
func nativeClock(argCount int, args []value.Value) (value.Value, error) {
	return value.Number(float64(time.Now().UnixNano()) / 1e9), nil
}
