package value

// Upvalue is a handle to a captured variable. While open, Location points
// into a live VM stack slot; NextOpen threads it into the VM's open-upvalues
// list, kept sorted by descending stack address, which is a separate
// intrusive list from the GC's sweep list (header.Next). Once closed,
// Location is redirected to &u.Closed, which owns the value from then on.
type Upvalue struct {
	header
	Location *Value
	Closed   Value
	NextOpen *Upvalue
}

// NewUpvalue returns an open Upvalue pointing at slot.
func NewUpvalue(slot *Value) *Upvalue {
	u := &Upvalue{Location: slot}
	u.kind = ObjUpvalueKind
	return u
}

// IsOpen reports whether the upvalue still refers to a live stack slot.
func (u *Upvalue) IsOpen() bool { return u.Location != &u.Closed }

// Close lifts the captured value onto the heap and redirects Location to the
// Upvalue's own cell.
func (u *Upvalue) Close() {
	u.Closed = *u.Location
	u.Location = &u.Closed
}

func (u *Upvalue) String() string { return "upvalue" }
