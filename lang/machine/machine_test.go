package machine_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/loxvm/lox/lang/heap"
	"github.com/loxvm/lox/lang/machine"
)

func run(t *testing.T, src string) (string, string, machine.Result) {
	t.Helper()
	h := heap.New()
	vm := machine.New(h)
	defer vm.Close()

	var stdout, stderr bytes.Buffer
	vm.Stdout = &stdout
	vm.Stderr = &stderr

	result, _ := vm.Interpret([]byte(src))
	return stdout.String(), stderr.String(), result
}

func TestArithmeticPrecedence(t *testing.T) {
	out, _, result := run(t, "print 1 + 2 * 3;")
	require.Equal(t, machine.ResultOK, result)
	require.Equal(t, "7\n", out)
}

func TestStringConcatenation(t *testing.T) {
	out, _, result := run(t, `var a = "Hi"; print a + ", world";`)
	require.Equal(t, machine.ResultOK, result)
	require.Equal(t, "Hi, world\n", out)
}

func TestRecursiveFibonacci(t *testing.T) {
	out, _, result := run(t, `fun f(n){ if (n<2) return n; return f(n-1)+f(n-2); } print f(10);`)
	require.Equal(t, machine.ResultOK, result)
	require.Equal(t, "55\n", out)
}

func TestClosureCapturesSharedMutableState(t *testing.T) {
	out, _, result := run(t, `fun mk(){ var x=0; fun inc(){ x=x+1; return x; } return inc; } var c=mk(); print c(); print c(); print c();`)
	require.Equal(t, machine.ResultOK, result)
	require.Equal(t, "1\n2\n3\n", out)
}

func TestClassInitAndMethod(t *testing.T) {
	out, _, result := run(t, `class Pair{ init(a,b){ this.a=a; this.b=b; } sum(){ return this.a+this.b; } } print Pair(3,4).sum();`)
	require.Equal(t, machine.ResultOK, result)
	require.Equal(t, "7\n", out)
}

func TestWhileLoop(t *testing.T) {
	out, _, result := run(t, `var i=0; while(i<3){ print i; i=i+1; }`)
	require.Equal(t, machine.ResultOK, result)
	require.Equal(t, "0\n1\n2\n", out)
}

func TestCallingNonCallableIsRuntimeError(t *testing.T) {
	_, errOut, result := run(t, "1();")
	require.Equal(t, machine.ResultRuntimeError, result)
	require.Contains(t, errOut, "Can only call functions and classes.")
}

func TestAssigningMissingExpressionIsCompileError(t *testing.T) {
	_, _, result := run(t, "var a; a = ;")
	require.Equal(t, machine.ResultCompileError, result)
}

func TestReadingUndefinedGlobalIsRuntimeError(t *testing.T) {
	_, errOut, result := run(t, "print x;")
	require.Equal(t, machine.ResultRuntimeError, result)
	require.Contains(t, errOut, "Undefined variable 'x'.")
}

func TestClockNativeIsCallableAsAGlobal(t *testing.T) {
	out, errOut, result := run(t, `print clock() >= 0;`)
	require.Equal(t, machine.ResultOK, result, errOut)
	require.Equal(t, "true\n", out)
}

func TestStringInterningIdentityAfterConcat(t *testing.T) {
	out, _, result := run(t, `print ("a" + "bc") == ("ab" + "c");`)
	require.Equal(t, machine.ResultOK, result)
	require.Equal(t, "true\n", out)
}

func TestStackAndFrameEmptyAfterInterpret(t *testing.T) {
	h := heap.New()
	vm := machine.New(h)
	defer vm.Close()
	var stdout bytes.Buffer
	vm.Stdout = &stdout

	result, err := vm.Interpret([]byte(`fun f(n){ if (n<2) return n; return f(n-1)+f(n-2); } print f(6);`))
	require.NoError(t, err)
	require.Equal(t, machine.ResultOK, result)

	// a second, independent program on the same VM must start from a clean
	// stack: if the previous run leaked stack slots or frames this would
	// either panic or print the wrong value.
	stdout.Reset()
	result, err = vm.Interpret([]byte(`print 1;`))
	require.NoError(t, err)
	require.Equal(t, machine.ResultOK, result)
	require.Equal(t, "1\n", stdout.String())
}

func TestGCStressModeProducesIdenticalOutput(t *testing.T) {
	src := `
		class Node {
			init(value) { this.value = value; this.next = nil; }
		}
		fun sum(n) {
			var total = 0;
			while (n != nil) {
				total = total + n.value;
				n = n.next;
			}
			return total;
		}
		var head = Node(1);
		head.next = Node(2);
		head.next.next = Node(3);
		print sum(head);
	`

	h1 := heap.New()
	vm1 := machine.New(h1)
	defer vm1.Close()
	var out1 bytes.Buffer
	vm1.Stdout = &out1
	_, err := vm1.Interpret([]byte(src))
	require.NoError(t, err)

	h2 := heap.New()
	h2.StressGC = true
	vm2 := machine.New(h2)
	defer vm2.Close()
	var out2 bytes.Buffer
	vm2.Stdout = &out2
	_, err = vm2.Interpret([]byte(src))
	require.NoError(t, err)

	require.Equal(t, out1.String(), out2.String())
}
