package heap

import "github.com/loxvm/lox/lang/value"

// InternString returns the canonical *value.String for chars, allocating
// and tracking a new one only the first time chars is seen. Equal contents
// always yield the same pointer, which is what lets Value equality and
// Table lookups compare strings by identity instead of by content.
func (h *Heap) InternString(chars string) *value.String {
	hash := value.HashString(chars)
	if existing := h.strings.FindString(chars, hash); existing != nil {
		return existing
	}

	s := value.NewString(chars)
	h.track(s)
	h.protect(value.Obj(s), func() {
		h.strings.Set(s, value.Nil)
		h.maybeCollect()
	})
	return s
}

// NewFunction allocates an empty Function, to be filled in by the compiler
// as it emits the function's bytecode.
func (h *Heap) NewFunction() *value.Function {
	f := value.NewFunction()
	h.track(f)
	h.protect(value.Obj(f), h.maybeCollect)
	return f
}

// NewClosure allocates a Closure over fn, with an Upvalues slice sized to
// fn's declared upvalue count.
func (h *Heap) NewClosure(fn *value.Function) *value.Closure {
	c := value.NewClosure(fn)
	h.track(c)
	h.protect(value.Obj(c), h.maybeCollect)
	return c
}

// NewUpvalue allocates an open Upvalue pointing at slot, a live stack cell.
func (h *Heap) NewUpvalue(slot *value.Value) *value.Upvalue {
	u := value.NewUpvalue(slot)
	h.track(u)
	h.protect(value.Obj(u), h.maybeCollect)
	return u
}

// NewClass allocates an empty Class named name, with no methods yet.
func (h *Heap) NewClass(name *value.String) *value.Class {
	c := value.NewClass(name)
	h.track(c)
	h.protect(value.Obj(c), h.maybeCollect)
	return c
}

// NewInstance allocates an Instance of class, with no fields set.
func (h *Heap) NewInstance(class *value.Class) *value.Instance {
	i := value.NewInstance(class)
	h.track(i)
	h.protect(value.Obj(i), h.maybeCollect)
	return i
}

// NewBoundMethod allocates a BoundMethod pairing receiver with method.
func (h *Heap) NewBoundMethod(receiver value.Value, method *value.Closure) *value.BoundMethod {
	b := value.NewBoundMethod(receiver, method)
	h.track(b)
	h.protect(value.Obj(b), h.maybeCollect)
	return b
}

// DefineNative registers a native function under name in the native
// registry, backed by a swiss.Map rather than the hand-rolled Table: the
// registry is a flat, append-mostly set of globals fixed at startup, with
// none of the tombstone or weak-reference bookkeeping the core Table exists
// for, so there is no reason not to reach for the off-the-shelf hash map
// here.
func (h *Heap) DefineNative(name string, fn value.NativeFn) {
	n := value.NewNative(name, fn)
	h.track(n)
	h.natives.Put(name, n)
}

// LookupNative returns the native function registered under name, if any.
func (h *Heap) LookupNative(name string) (*value.Native, bool) {
	return h.natives.Get(name)
}
