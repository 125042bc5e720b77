package machine

import "github.com/loxvm/lox/lang/value"

// callValue dispatches a CALL or the class/method/native cases an INVOKE
// falls back to: a Closure pushes a new frame, a Class manufactures an
// Instance and runs its initializer if it has one, a BoundMethod rebinds
// its receiver into slot 0 and calls through to its Closure, and a Native
// runs immediately without consuming a frame.
func (vm *VM) callValue(callee value.Value, argCount int) error {
	if callee.IsObject() {
		switch callee := callee.AsObject().(type) {
		case *value.Closure:
			return vm.call(callee, argCount)

		case *value.Class:
			vm.setCallee(argCount, value.Obj(vm.heap.NewInstance(callee)))
			if initializer, ok := callee.Methods.Get(vm.initString); ok {
				return vm.call(initializer.AsObject().(*value.Closure), argCount)
			}
			if argCount != 0 {
				return vm.runtimeError("Expected 0 arguments but got %d.", argCount)
			}
			return nil

		case *value.BoundMethod:
			vm.setCallee(argCount, callee.Receiver)
			return vm.call(callee.Method, argCount)

		case *value.Native:
			args := vm.stack[vm.sp-argCount : vm.sp]
			result, err := callee.Fn(argCount, args)
			if err != nil {
				return vm.runtimeError("%s", err.Error())
			}
			vm.sp -= argCount + 1
			vm.push(result)
			return nil
		}
	}
	return vm.runtimeError("Can only call functions and classes.")
}

// call pushes a new frame over closure, checking its declared arity and the
// frame-stack depth limit first.
func (vm *VM) call(closure *value.Closure, argCount int) error {
	if argCount != closure.Function.Arity {
		return vm.runtimeError("Expected %d arguments but got %d.", closure.Function.Arity, argCount)
	}
	if vm.frameCount >= FramesMax {
		return vm.runtimeError("Stack overflow.")
	}

	vm.frames[vm.frameCount] = callFrame{
		closure:   closure,
		slotsBase: vm.sp - argCount - 1,
	}
	vm.frameCount++
	return nil
}

// setCallee overwrites the stack slot the callee occupied (argCount below
// the current top) with v, the Go rendition of the reference
// implementation writing through `stack_top[-arg_count - 1]` before a
// class-instantiation or bound-method call reuses that slot as the new
// receiver.
func (vm *VM) setCallee(argCount int, v value.Value) {
	vm.stack[vm.sp-argCount-1] = v
}

// invoke implements the fused GET_PROPERTY+CALL instruction: a field that
// happens to hold a callable still wins over a method of the same name (see
// spec'd property semantics), falling back to an ordinary method dispatch
// otherwise.
func (vm *VM) invoke(name *value.String, argCount int) error {
	receiver := vm.peek(argCount)
	if !receiver.Is(value.ObjInstanceKind) {
		return vm.runtimeError("Only instances have methods.")
	}
	instance := receiver.AsObject().(*value.Instance)

	if field, ok := instance.Fields.Get(name); ok {
		vm.setCallee(argCount, field)
		return vm.callValue(field, argCount)
	}
	return vm.invokeFromClass(instance.Class, name, argCount)
}

func (vm *VM) invokeFromClass(class *value.Class, name *value.String, argCount int) error {
	method, ok := class.Methods.Get(name)
	if !ok {
		return vm.runtimeError("Undefined property '%s'.", name.Chars)
	}
	return vm.call(method.AsObject().(*value.Closure), argCount)
}

// bindMethod resolves name on class into a BoundMethod over the receiver
// already sitting on top of the stack, replacing it there. Used by
// GET_PROPERTY once a field lookup misses.
func (vm *VM) bindMethod(class *value.Class, name *value.String) error {
	method, ok := class.Methods.Get(name)
	if !ok {
		return vm.runtimeError("Undefined property '%s'.", name.Chars)
	}
	bound := vm.heap.NewBoundMethod(vm.peek(0), method.AsObject().(*value.Closure))
	vm.pop()
	vm.push(value.Obj(bound))
	return nil
}
