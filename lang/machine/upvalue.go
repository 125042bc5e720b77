package machine

import "github.com/loxvm/lox/lang/value"

// captureUpvalue returns the open Upvalue for stack slot, reusing one
// already open over the same slot so that two closures capturing the same
// local share mutations through it.
func (vm *VM) captureUpvalue(slot int) *value.Upvalue {
	for i, s := range vm.openSlots {
		if s == slot {
			return vm.openUpvalues[i]
		}
	}

	uv := vm.heap.NewUpvalue(&vm.stack[slot])
	vm.openUpvalues = append(vm.openUpvalues, uv)
	vm.openSlots = append(vm.openSlots, slot)
	vm.sortOpenUpvalues()
	return uv
}

// closeUpvalues closes every open upvalue pointing at boundary or higher,
// lifting its value off the stack and onto the Upvalue itself before the
// frame that owned that stack region is discarded.
func (vm *VM) closeUpvalues(boundary int) {
	i := 0
	for i < len(vm.openSlots) && vm.openSlots[i] >= boundary {
		vm.openUpvalues[i].Close()
		i++
	}
	vm.openUpvalues = vm.openUpvalues[i:]
	vm.openSlots = vm.openSlots[i:]
	vm.relinkOpenUpvalues()
}

// sortOpenUpvalues keeps openUpvalues/openSlots ordered by descending slot
// (insertion sort: the list is short and almost always already ordered,
// since captures happen as the compiler walks scopes outward).
func (vm *VM) sortOpenUpvalues() {
	for i := len(vm.openSlots) - 1; i > 0 && vm.openSlots[i] > vm.openSlots[i-1]; i-- {
		vm.openSlots[i], vm.openSlots[i-1] = vm.openSlots[i-1], vm.openSlots[i]
		vm.openUpvalues[i], vm.openUpvalues[i-1] = vm.openUpvalues[i-1], vm.openUpvalues[i]
	}
	vm.relinkOpenUpvalues()
}

// relinkOpenUpvalues rewrites each Upvalue's NextOpen field to mirror the
// current slice order, so anything walking the documented linked list sees
// the same sequence as vm.openUpvalues.
func (vm *VM) relinkOpenUpvalues() {
	for i, uv := range vm.openUpvalues {
		if i+1 < len(vm.openUpvalues) {
			uv.NextOpen = vm.openUpvalues[i+1]
		} else {
			uv.NextOpen = nil
		}
	}
}
