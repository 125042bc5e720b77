package value

import "fmt"

// Function is a compiled function: its arity, how many upvalues its
// closures capture, an optional name (nil for the top-level script), and
// the Chunk of bytecode the compiler wrote into it.
type Function struct {
	header
	Arity        int
	UpvalueCount int
	Name         *String
	Chunk        Chunk
}

// NewFunction returns an empty, unnamed Function ready for the compiler to
// fill in. Name is set separately once it is known (top-level scripts and
// anonymous-at-parse-time functions are named after the fact, if at all).
func NewFunction() *Function {
	f := &Function{}
	f.kind = ObjFunctionKind
	return f
}

func (f *Function) String() string {
	if f.Name == nil {
		return "<script>"
	}
	return fmt.Sprintf("<fn %s>", f.Name.Chars)
}
