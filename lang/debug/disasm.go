// Package debug implements the bytecode disassembler behind the
// `lox disassemble` debug subcommand.
package debug

import (
	"fmt"
	"strings"

	"github.com/loxvm/lox/lang/compiler"
	"github.com/loxvm/lox/lang/value"
)

// DisassembleChunk renders every instruction in chunk, labeled with name,
// the way the reference implementation's chunk_disassemble does.
func DisassembleChunk(chunk *value.Chunk, name string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "== %s ==\n", name)
	for offset := 0; offset < len(chunk.Code); {
		var line string
		line, offset = DisassembleInstruction(chunk, offset)
		b.WriteString(line)
	}
	return b.String()
}

// DisassembleInstruction renders the single instruction at offset, returning
// its text and the offset of the next instruction.
func DisassembleInstruction(chunk *value.Chunk, offset int) (string, int) {
	var b strings.Builder
	fmt.Fprintf(&b, "%04d ", offset)

	if offset > 0 && chunk.Lines[offset] == chunk.Lines[offset-1] {
		b.WriteString("   | ")
	} else {
		fmt.Fprintf(&b, "%4d ", chunk.Lines[offset])
	}

	op := compiler.Op(chunk.Code[offset])
	switch op {
	case compiler.CONSTANT, compiler.GET_GLOBAL, compiler.DEFINE_GLOBAL, compiler.SET_GLOBAL,
		compiler.CLASS, compiler.METHOD, compiler.GET_PROPERTY, compiler.SET_PROPERTY:
		next := constantInstruction(&b, op, chunk, offset)
		return b.String(), next

	case compiler.GET_LOCAL, compiler.SET_LOCAL, compiler.GET_UPVALUE, compiler.SET_UPVALUE, compiler.CALL:
		next := byteInstruction(&b, op, chunk, offset)
		return b.String(), next

	case compiler.INVOKE:
		next := invokeInstruction(&b, op, chunk, offset)
		return b.String(), next

	case compiler.JUMP, compiler.JUMP_IF_FALSE:
		next := jumpInstruction(&b, op, 1, chunk, offset)
		return b.String(), next

	case compiler.LOOP:
		next := jumpInstruction(&b, op, -1, chunk, offset)
		return b.String(), next

	case compiler.CLOSURE:
		next := closureInstruction(&b, chunk, offset)
		return b.String(), next

	default:
		next := simpleInstruction(&b, op, offset)
		return b.String(), next
	}
}

func simpleInstruction(b *strings.Builder, op compiler.Op, offset int) int {
	fmt.Fprintf(b, "%s\n", op)
	return offset + 1
}

func constantInstruction(b *strings.Builder, op compiler.Op, chunk *value.Chunk, offset int) int {
	idx := chunk.Code[offset+1]
	fmt.Fprintf(b, "%-16s %4d '%s'\n", op, idx, chunk.Constants[idx])
	return offset + 2
}

func byteInstruction(b *strings.Builder, op compiler.Op, chunk *value.Chunk, offset int) int {
	slot := chunk.Code[offset+1]
	fmt.Fprintf(b, "%-16s %4d\n", op, slot)
	return offset + 2
}

func jumpInstruction(b *strings.Builder, op compiler.Op, sign int, chunk *value.Chunk, offset int) int {
	jump := int(chunk.Code[offset+1])<<8 | int(chunk.Code[offset+2])
	fmt.Fprintf(b, "%-16s %4d -> %d\n", op, offset, offset+3+sign*jump)
	return offset + 3
}

func invokeInstruction(b *strings.Builder, op compiler.Op, chunk *value.Chunk, offset int) int {
	idx := chunk.Code[offset+1]
	argCount := chunk.Code[offset+2]
	fmt.Fprintf(b, "%-16s (%d args) %4d '%s'\n", op, argCount, idx, chunk.Constants[idx])
	return offset + 3
}

func closureInstruction(b *strings.Builder, chunk *value.Chunk, offset int) int {
	offset++
	idx := chunk.Code[offset]
	offset++
	fmt.Fprintf(b, "%-16s %4d '%s'\n", compiler.CLOSURE, idx, chunk.Constants[idx])

	fn, ok := chunk.Constants[idx].AsObject().(*value.Function)
	if !ok {
		return offset
	}
	for i := 0; i < fn.UpvalueCount; i++ {
		isLocal := chunk.Code[offset]
		index := chunk.Code[offset+1]
		offset += 2
		kind := "upvalue"
		if isLocal != 0 {
			kind = "local"
		}
		fmt.Fprintf(b, "%04d      |                     %s %d\n", offset-2, kind, index)
	}
	return offset
}
