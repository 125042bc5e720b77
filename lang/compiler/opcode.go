package compiler

import "fmt"

// Op is a single bytecode instruction. Most take no operand; those that do
// (commented per instruction below) are followed by one or more operand
// bytes written directly into the Chunk alongside the opcode itself.
type Op uint8

const ( //nolint:revive
	CONSTANT Op = iota //   - CONSTANT<constant>  value
	NIL                //   - NIL                 nil
	TRUE               //   - TRUE                true
	FALSE              //   - FALSE               false
	POP                //   v POP                 -

	GET_LOCAL     //        - GET_LOCAL<slot>      value
	SET_LOCAL     //    value SET_LOCAL<slot>      -
	GET_GLOBAL    //        - GET_GLOBAL<name>     value
	DEFINE_GLOBAL //    value DEFINE_GLOBAL<name>  -
	SET_GLOBAL    //    value SET_GLOBAL<name>     -
	GET_UPVALUE   //        - GET_UPVALUE<slot>    value
	SET_UPVALUE   //    value SET_UPVALUE<slot>    -
	GET_PROPERTY  //  recv.  GET_PROPERTY<name>    value
	SET_PROPERTY  // recv v  SET_PROPERTY<name>    v

	EQUAL    //    a b EQUAL     bool
	GREATER  //    a b GREATER   bool
	LESS     //    a b LESS      bool
	ADD      //    a b ADD       value
	SUBTRACT //    a b SUBTRACT  number
	MULTIPLY //    a b MULTIPLY  number
	DIVIDE   //    a b DIVIDE    number
	NOT      //      v NOT       bool
	NEGATE   //      v NEGATE    number

	PRINT //         v PRINT         -

	JUMP          //           - JUMP<offset>           -        (unconditional, forward)
	JUMP_IF_FALSE //       cond JUMP_IF_FALSE<offset>    cond     (does not pop; POP follows in each branch)
	LOOP          //           - LOOP<offset>            -        (unconditional, backward)

	CALL   //   fn a1..aN CALL<argCount>          result
	INVOKE // recv a1..aN INVOKE<name><argCount>  result   (fused GET_PROPERTY + CALL)

	CLOSURE       //           - CLOSURE<function>[upvalue descriptors] closure
	CLOSE_UPVALUE //           v CLOSE_UPVALUE              -
	RETURN        //           v RETURN                     -        (returns from the current frame)

	CLASS  //  - CLASS<name>          class
	METHOD //  class closure METHOD<name>  class

	opMax
)

var opNames = [...]string{
	CONSTANT:      "OP_CONSTANT",
	NIL:           "OP_NIL",
	TRUE:          "OP_TRUE",
	FALSE:         "OP_FALSE",
	POP:           "OP_POP",
	GET_LOCAL:     "OP_GET_LOCAL",
	SET_LOCAL:     "OP_SET_LOCAL",
	GET_GLOBAL:    "OP_GET_GLOBAL",
	DEFINE_GLOBAL: "OP_DEFINE_GLOBAL",
	SET_GLOBAL:    "OP_SET_GLOBAL",
	GET_UPVALUE:   "OP_GET_UPVALUE",
	SET_UPVALUE:   "OP_SET_UPVALUE",
	GET_PROPERTY:  "OP_GET_PROPERTY",
	SET_PROPERTY:  "OP_SET_PROPERTY",
	EQUAL:         "OP_EQUAL",
	GREATER:       "OP_GREATER",
	LESS:          "OP_LESS",
	ADD:           "OP_ADD",
	SUBTRACT:      "OP_SUBTRACT",
	MULTIPLY:      "OP_MULTIPLY",
	DIVIDE:        "OP_DIVIDE",
	NOT:           "OP_NOT",
	NEGATE:        "OP_NEGATE",
	PRINT:         "OP_PRINT",
	JUMP:          "OP_JUMP",
	JUMP_IF_FALSE: "OP_JUMP_IF_FALSE",
	LOOP:          "OP_LOOP",
	CALL:          "OP_CALL",
	INVOKE:        "OP_INVOKE",
	CLOSURE:       "OP_CLOSURE",
	CLOSE_UPVALUE: "OP_CLOSE_UPVALUE",
	RETURN:        "OP_RETURN",
	CLASS:         "OP_CLASS",
	METHOD:        "OP_METHOD",
}

func (op Op) String() string {
	if op < opMax {
		if name := opNames[op]; name != "" {
			return name
		}
	}
	return fmt.Sprintf("illegal op (%d)", op)
}
