package value

// Closure pairs a Function with the dense array of Upvalue handles it
// captured, one per free variable referenced by the function (length equals
// Function.UpvalueCount).
type Closure struct {
	header
	Function *Function
	Upvalues []*Upvalue
}

// NewClosure returns a Closure over fn with a freshly allocated, nil-filled
// Upvalues array.
func NewClosure(fn *Function) *Closure {
	c := &Closure{Function: fn, Upvalues: make([]*Upvalue, fn.UpvalueCount)}
	c.kind = ObjClosureKind
	return c
}

func (c *Closure) String() string { return c.Function.String() }
