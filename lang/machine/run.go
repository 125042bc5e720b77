package machine

import (
	"fmt"

	"github.com/loxvm/lox/lang/compiler"
	"github.com/loxvm/lox/lang/value"
)

func (vm *VM) readByte(frame *callFrame) byte {
	b := frame.closure.Function.Chunk.Code[frame.ip]
	frame.ip++
	return b
}

func (vm *VM) readShort(frame *callFrame) uint16 {
	hi := vm.readByte(frame)
	lo := vm.readByte(frame)
	return uint16(hi)<<8 | uint16(lo)
}

func (vm *VM) readConstant(frame *callFrame) value.Value {
	return frame.closure.Function.Chunk.Constants[vm.readByte(frame)]
}

func (vm *VM) readString(frame *callFrame) *value.String {
	return vm.readConstant(frame).AsObject().(*value.String)
}

// run is the fetch-decode-execute loop. The active frame is re-fetched at
// the top of every iteration rather than cached across instructions: CALL,
// INVOKE and RETURN all push or pop frames, and re-deriving the pointer
// unconditionally is simpler than threading a refresh through every place
// that could invalidate it.
func (vm *VM) run() error {
	for {
		frame := &vm.frames[vm.frameCount-1]
		op := compiler.Op(vm.readByte(frame))

		switch op {
		case compiler.CONSTANT:
			vm.push(vm.readConstant(frame))

		case compiler.NIL:
			vm.push(value.Nil)
		case compiler.TRUE:
			vm.push(value.Bool(true))
		case compiler.FALSE:
			vm.push(value.Bool(false))
		case compiler.POP:
			vm.pop()

		case compiler.GET_LOCAL:
			slot := vm.readByte(frame)
			vm.push(vm.stack[frame.slotsBase+int(slot)])
		case compiler.SET_LOCAL:
			slot := vm.readByte(frame)
			vm.stack[frame.slotsBase+int(slot)] = vm.peek(0)

		case compiler.GET_GLOBAL:
			name := vm.readString(frame)
			v, ok := vm.globals.Get(name)
			if !ok {
				return vm.runtimeError("Undefined variable '%s'.", name.Chars)
			}
			vm.push(v)
		case compiler.DEFINE_GLOBAL:
			name := vm.readString(frame)
			vm.globals.Set(name, vm.peek(0))
			vm.pop()
		case compiler.SET_GLOBAL:
			name := vm.readString(frame)
			if vm.globals.Set(name, vm.peek(0)) {
				// Set just created a fresh entry, meaning the name was never
				// DEFINE_GLOBAL'd: undo the insertion and report the error.
				vm.globals.Delete(name)
				return vm.runtimeError("Undefined variable '%s'.", name.Chars)
			}

		case compiler.GET_UPVALUE:
			slot := vm.readByte(frame)
			vm.push(*frame.closure.Upvalues[slot].Location)
		case compiler.SET_UPVALUE:
			slot := vm.readByte(frame)
			*frame.closure.Upvalues[slot].Location = vm.peek(0)

		case compiler.GET_PROPERTY:
			if err := vm.getProperty(frame); err != nil {
				return err
			}
		case compiler.SET_PROPERTY:
			if err := vm.setProperty(frame); err != nil {
				return err
			}

		case compiler.EQUAL:
			b, a := vm.pop(), vm.pop()
			vm.push(value.Bool(value.Equal(a, b)))
		case compiler.GREATER, compiler.LESS, compiler.SUBTRACT, compiler.MULTIPLY, compiler.DIVIDE:
			if err := vm.binaryNumeric(op); err != nil {
				return err
			}
		case compiler.ADD:
			if err := vm.add(); err != nil {
				return err
			}
		case compiler.NOT:
			vm.push(value.Bool(!value.Truthy(vm.pop())))
		case compiler.NEGATE:
			if !vm.peek(0).IsNumber() {
				return vm.runtimeError("Operand must be a number.")
			}
			vm.push(value.Number(-vm.pop().AsNumber()))

		case compiler.PRINT:
			fmt.Fprintln(vm.Stdout, vm.pop().String())

		case compiler.JUMP:
			offset := vm.readShort(frame)
			frame.ip += int(offset)
		case compiler.JUMP_IF_FALSE:
			offset := vm.readShort(frame)
			if !value.Truthy(vm.peek(0)) {
				frame.ip += int(offset)
			}
		case compiler.LOOP:
			offset := vm.readShort(frame)
			frame.ip -= int(offset)

		case compiler.CALL:
			argCount := int(vm.readByte(frame))
			if err := vm.callValue(vm.peek(argCount), argCount); err != nil {
				return err
			}
		case compiler.INVOKE:
			name := vm.readString(frame)
			argCount := int(vm.readByte(frame))
			if err := vm.invoke(name, argCount); err != nil {
				return err
			}

		case compiler.CLOSURE:
			fn := vm.readConstant(frame).AsObject().(*value.Function)
			closure := vm.heap.NewClosure(fn)
			vm.push(value.Obj(closure))
			for i := 0; i < fn.UpvalueCount; i++ {
				isLocal := vm.readByte(frame)
				index := vm.readByte(frame)
				if isLocal != 0 {
					closure.Upvalues[i] = vm.captureUpvalue(frame.slotsBase + int(index))
				} else {
					closure.Upvalues[i] = frame.closure.Upvalues[index]
				}
			}
		case compiler.CLOSE_UPVALUE:
			vm.closeUpvalues(vm.sp - 1)
			vm.pop()

		case compiler.RETURN:
			result := vm.pop()
			vm.closeUpvalues(frame.slotsBase)
			vm.frameCount--
			if vm.frameCount == 0 {
				vm.pop()
				return nil
			}
			vm.sp = frame.slotsBase
			vm.push(result)

		case compiler.CLASS:
			name := vm.readString(frame)
			vm.push(value.Obj(vm.heap.NewClass(name)))
		case compiler.METHOD:
			vm.defineMethod(vm.readString(frame))

		default:
			return vm.runtimeError("Unknown opcode %s.", op)
		}
	}
}

func (vm *VM) getProperty(frame *callFrame) error {
	name := vm.readString(frame)
	receiver := vm.peek(0)
	if !receiver.Is(value.ObjInstanceKind) {
		return vm.runtimeError("Only instances have properties.")
	}
	instance := receiver.AsObject().(*value.Instance)
	if v, ok := instance.Fields.Get(name); ok {
		vm.pop()
		vm.push(v)
		return nil
	}
	return vm.bindMethod(instance.Class, name)
}

func (vm *VM) setProperty(frame *callFrame) error {
	name := vm.readString(frame)
	receiver := vm.peek(1)
	if !receiver.Is(value.ObjInstanceKind) {
		return vm.runtimeError("Only instances have fields.")
	}
	instance := receiver.AsObject().(*value.Instance)
	instance.Fields.Set(name, vm.peek(0))

	v := vm.pop()
	vm.pop()
	vm.push(v)
	return nil
}

func (vm *VM) defineMethod(name *value.String) {
	method := vm.peek(0)
	class := vm.peek(1).AsObject().(*value.Class)
	class.Methods.Set(name, method)
	vm.pop()
}

// add implements OP_ADD's two overloads: number+number and string+string
// (concatenation, which always goes through the interner so the result
// participates in identity equality like any other string).
func (vm *VM) add() error {
	b, a := vm.peek(0), vm.peek(1)
	switch {
	case a.Is(value.ObjStringKind) && b.Is(value.ObjStringKind):
		bs := vm.pop().AsObject().(*value.String)
		as := vm.pop().AsObject().(*value.String)
		vm.push(value.Obj(vm.heap.InternString(as.Chars + bs.Chars)))
	case a.IsNumber() && b.IsNumber():
		bv := vm.pop().AsNumber()
		av := vm.pop().AsNumber()
		vm.push(value.Number(av + bv))
	default:
		return vm.runtimeError("Operands must be two numbers or two strings.")
	}
	return nil
}

func (vm *VM) binaryNumeric(op compiler.Op) error {
	if !vm.peek(0).IsNumber() || !vm.peek(1).IsNumber() {
		return vm.runtimeError("Operands must be numbers.")
	}
	b := vm.pop().AsNumber()
	a := vm.pop().AsNumber()
	switch op {
	case compiler.GREATER:
		vm.push(value.Bool(a > b))
	case compiler.LESS:
		vm.push(value.Bool(a < b))
	case compiler.SUBTRACT:
		vm.push(value.Number(a - b))
	case compiler.MULTIPLY:
		vm.push(value.Number(a * b))
	case compiler.DIVIDE:
		vm.push(value.Number(a / b))
	}
	return nil
}
