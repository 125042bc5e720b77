package value

import "fmt"

// ObjKind tags the dynamic variant of a heap Object, the Go analog of the
// reference implementation's ObjType discriminant.
type ObjKind uint8

const (
	ObjStringKind ObjKind = iota
	ObjFunctionKind
	ObjClosureKind
	ObjUpvalueKind
	ObjClassKind
	ObjInstanceKind
	ObjBoundMethodKind
	ObjNativeKind
)

var objKindNames = [...]string{
	ObjStringKind:      "string",
	ObjFunctionKind:    "function",
	ObjClosureKind:     "closure",
	ObjUpvalueKind:     "upvalue",
	ObjClassKind:       "class",
	ObjInstanceKind:    "instance",
	ObjBoundMethodKind: "bound method",
	ObjNativeKind:      "native function",
}

func (k ObjKind) String() string {
	if int(k) < len(objKindNames) {
		return objKindNames[k]
	}
	return "unknown object"
}

// Object is implemented by every heap-allocated value variant. Code that
// treats variants differently (GC tracing, calls, property access) switches
// on the concrete type or on the Kind() tag; the interface gives every
// variant a uniform handle, a String method and a uniform header surface,
// the Go analog of the reference implementation's shared
// `{type, isMarked, next}` struct header.
type Object interface {
	fmt.Stringer

	Kind() ObjKind

	// Marked/SetMarked track the GC's tri-color mark bit.
	Marked() bool
	SetMarked(bool)

	// Next/SetNext link the object into the heap's single intrusive sweep
	// list.
	Next() Object
	SetNext(Object)
}

// header is embedded by value in every concrete Object variant. Its pointer
// methods promote to each embedder, giving every variant the header surface
// without subclassing.
type header struct {
	kind   ObjKind
	marked bool
	next   Object
}

func (h *header) Kind() ObjKind    { return h.kind }
func (h *header) Marked() bool     { return h.marked }
func (h *header) SetMarked(m bool) { h.marked = m }
func (h *header) Next() Object     { return h.next }
func (h *header) SetNext(o Object) { h.next = o }
