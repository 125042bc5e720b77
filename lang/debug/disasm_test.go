package debug_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/loxvm/lox/lang/compiler"
	"github.com/loxvm/lox/lang/debug"
	"github.com/loxvm/lox/lang/heap"
	"github.com/loxvm/lox/lang/value"
)

func compile(t *testing.T, src string) *value.Function {
	t.Helper()
	fn, err := compiler.Compile(heap.New(), []byte(src))
	require.NoError(t, err)
	return fn
}

func TestDisassembleArithmetic(t *testing.T) {
	fn := compile(t, "print 1 + 2 * 3;")
	got := debug.DisassembleChunk(&fn.Chunk, "script")

	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	require.Equal(t, "== script ==", lines[0])

	wantOps := []string{
		"OP_CONSTANT", "OP_CONSTANT", "OP_CONSTANT", "OP_MULTIPLY",
		"OP_ADD", "OP_PRINT", "OP_NIL", "OP_RETURN",
	}
	require.Len(t, lines, len(wantOps)+1)
	for i, op := range wantOps {
		require.Contains(t, lines[i+1], op)
	}

	// every instruction after the first that shares its line keeps the
	// compressed "|" marker instead of repeating the source line number.
	require.Contains(t, lines[2], "|")
	require.Contains(t, lines[1], "1 OP_CONSTANT")
}

func TestDisassembleJumpsAreResolved(t *testing.T) {
	fn := compile(t, "if (true) { print 1; } else { print 2; }")
	got := debug.DisassembleChunk(&fn.Chunk, "script")

	require.Contains(t, got, "OP_JUMP_IF_FALSE")
	require.Contains(t, got, "OP_JUMP")
	require.Contains(t, got, "->")
}

func TestDisassembleClosureListsUpvalues(t *testing.T) {
	fn := compile(t, `
		fun outer() {
			var x = 1;
			fun inner() { return x; }
			return inner;
		}
	`)
	// inner's CLOSURE, with its upvalue descriptors, is emitted into outer's
	// chunk; the captured x sits in outer's local slot 1 (slot 0 is reserved).
	var outer *value.Function
	for _, c := range fn.Chunk.Constants {
		if f, ok := c.AsObject().(*value.Function); ok {
			outer = f
		}
	}
	require.NotNil(t, outer)
	got := debug.DisassembleChunk(&outer.Chunk, "outer")
	require.Contains(t, got, "OP_CLOSURE")
	require.Contains(t, got, "local 1")
}
