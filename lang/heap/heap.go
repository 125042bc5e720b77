// Package heap implements the allocator and the precise mark-sweep garbage
// collector shared by the compiler and the virtual machine. Every heap
// object lives on one intrusive sweep list owned by a Heap; the GC is
// triggered from inside the allocator itself once the allocation watermark
// is crossed (or always, in stress mode), and it must be able to reach
// roots held by whichever of the VM and the active Compiler are alive at
// the time.
package heap

import (
	"github.com/dolthub/swiss"

	"github.com/loxvm/lox/lang/value"
)

// HeapGrowFactor is the multiplier applied to bytesAllocated after a
// collection to compute the next watermark.
const HeapGrowFactor = 2

// initialNextGC is the first allocation watermark, chosen so that a typical
// script's constant pool and a handful of objects can be created before the
// very first collection fires.
const initialNextGC = 1 << 20

// RootMarker is implemented by anything that can contribute GC roots: the
// VM (its value stack, call frames, open upvalues, globals, init string)
// and the Compiler (the chain of in-progress Function objects). Both are
// registered with the Heap for however long they are alive; unlike the
// reference implementation's single global vm/compiler pointers, a Heap can
// have any number of registered root providers, since nothing here assumes
// a process-wide singleton VM.
type RootMarker interface {
	MarkRoots(mark func(value.Object))
}

// Heap owns every heap-allocated Object, the string-interning Table, the
// native-function registry, and the allocation watermarks that drive
// collection.
type Heap struct {
	objects value.Object // head of the intrusive sweep list
	strings *value.Table // intern set; values are unused placeholders

	natives *swiss.Map[string, *value.Native]

	bytesAllocated int64
	nextGC         int64

	gray []value.Object

	// tempRoots protects objects that are fully linked onto the sweep list
	// but not yet reachable from any permanent root, for the brief window
	// between allocation and being stored somewhere a root walk will find.
	tempRoots []value.Value

	roots []RootMarker

	// StressGC forces a collection on every allocation, for exercising GC
	// soundness in tests.
	StressGC bool
}

// New returns an empty Heap.
func New() *Heap {
	return &Heap{
		strings: value.NewTable(),
		natives: swiss.NewMap[string, *value.Native](8), // small fixed registry of builtins
		nextGC:  initialNextGC,
	}
}

// RegisterRoot adds r as a GC root source. Callers must UnregisterRoot once
// r is no longer alive (e.g. the Compiler, once compilation finishes).
func (h *Heap) RegisterRoot(r RootMarker) {
	h.roots = append(h.roots, r)
}

// UnregisterRoot removes a previously registered root source.
func (h *Heap) UnregisterRoot(r RootMarker) {
	for i, x := range h.roots {
		if x == r {
			h.roots = append(h.roots[:i], h.roots[i+1:]...)
			return
		}
	}
}

// BytesAllocated reports the current allocation accounting total.
func (h *Heap) BytesAllocated() int64 { return h.bytesAllocated }

// protect pushes v onto the temporary-protection stack for the duration of
// fn, so that any collection triggered while fn runs cannot reclaim v even
// though it may not yet be reachable from a permanent root. This is the Go
// rendition of the reference implementation's "push the half-built object
// on the VM stack" trick, generalized so it does not require a VM to exist
// (the Compiler alone, with no VM yet constructed, relies on this too).
func (h *Heap) protect(v value.Value, fn func()) {
	h.tempRoots = append(h.tempRoots, v)
	defer func() { h.tempRoots = h.tempRoots[:len(h.tempRoots)-1] }()
	fn()
}

// track links a freshly constructed object onto the sweep list and its
// estimated size into the allocation accounting. It must run before any
// further allocation performed as part of constructing the object (e.g.
// interning), so that a nested collection can still find it via the sweep
// list once combined with temporary protection.
func (h *Heap) track(o value.Object) {
	o.SetNext(h.objects)
	h.objects = o
	h.bytesAllocated += sizeOf(o)
}

func (h *Heap) maybeCollect() {
	if h.StressGC || h.bytesAllocated > h.nextGC {
		h.Collect()
	}
}

// Collect runs one full mark-sweep cycle: mark every registered root and
// the temporary-protection stack, trace until the gray worklist is empty,
// drop weak references to unmarked strings from the intern table, then
// sweep the object list.
func (h *Heap) Collect() {
	h.gray = h.gray[:0]

	for _, r := range h.roots {
		r.MarkRoots(h.Mark)
	}
	for _, v := range h.tempRoots {
		h.MarkValue(v)
	}

	for len(h.gray) > 0 {
		n := len(h.gray) - 1
		obj := h.gray[n]
		h.gray = h.gray[:n]
		h.blacken(obj)
	}

	h.strings.DeleteIf(func(s *value.String) bool { return !s.Marked() })

	h.sweep()
	h.nextGC = h.bytesAllocated * HeapGrowFactor
}

// Mark marks a single object gray (queues it for tracing). It is a no-op
// for a nil interface or an already-marked object. Because Object is an
// interface, a nil *value.String wrapped in a non-nil Object interface
// value would not compare equal to a bare nil — callers must never pass a
// typed nil pointer converted to Object; Function.Name and similar optional
// references are always guarded with an explicit nil check before marking.
func (h *Heap) Mark(o value.Object) {
	if o == nil || o.Marked() {
		return
	}
	o.SetMarked(true)
	h.gray = append(h.gray, o)
}

// MarkValue marks v's object, if it holds one.
func (h *Heap) MarkValue(v value.Value) {
	if v.IsObject() {
		h.Mark(v.AsObject())
	}
}

func (h *Heap) blacken(o value.Object) {
	switch obj := o.(type) {
	case *value.String, *value.Native:
		// no outgoing references

	case *value.Upvalue:
		h.MarkValue(obj.Closed) // safe even while open: Closed holds the nil zero Value

	case *value.Function:
		if obj.Name != nil {
			h.Mark(obj.Name)
		}
		for _, c := range obj.Chunk.Constants {
			h.MarkValue(c)
		}

	case *value.Closure:
		h.Mark(obj.Function)
		for _, u := range obj.Upvalues {
			if u != nil {
				h.Mark(u)
			}
		}

	case *value.Class:
		h.Mark(obj.Name)
		obj.Methods.Each(func(e value.Entry) {
			h.Mark(e.Key)
			h.MarkValue(e.Value)
		})

	case *value.Instance:
		h.Mark(obj.Class)
		obj.Fields.Each(func(e value.Entry) {
			h.Mark(e.Key)
			h.MarkValue(e.Value)
		})

	case *value.BoundMethod:
		h.MarkValue(obj.Receiver)
		h.Mark(obj.Method)
	}
}

func (h *Heap) sweep() {
	var prev value.Object
	obj := h.objects
	for obj != nil {
		if obj.Marked() {
			obj.SetMarked(false)
			prev = obj
			obj = obj.Next()
			continue
		}

		unreached := obj
		obj = obj.Next()
		if prev != nil {
			prev.SetNext(obj)
		} else {
			h.objects = obj
		}
		h.bytesAllocated -= sizeOf(unreached)
		unlink(unreached)
	}
}

// unlink drops every reference an unreached object held, so the host
// runtime's own collector can reclaim the memory once nothing else points
// to it; this module's sweep list was the last (simulated) owner.
func unlink(o value.Object) {
	o.SetNext(nil)
	switch obj := o.(type) {
	case *value.Function:
		obj.Chunk = value.Chunk{}
	case *value.Closure:
		obj.Upvalues = nil
	case *value.Class:
		obj.Methods = nil
	case *value.Instance:
		obj.Fields = nil
	}
}

// sizeOf estimates the number of bytes an object occupies, for the
// allocation-watermark accounting. These are deliberately approximate: the
// GC's correctness never depends on the exact figure, only on the
// allocate/free bookkeeping being internally consistent.
func sizeOf(o value.Object) int64 {
	switch v := o.(type) {
	case *value.String:
		return int64(32 + len(v.Chars))
	case *value.Function:
		return 64
	case *value.Closure:
		return int64(24 + 8*len(v.Upvalues))
	case *value.Upvalue:
		return 32
	case *value.Class:
		return 40
	case *value.Instance:
		return 40
	case *value.BoundMethod:
		return 32
	case *value.Native:
		return 32
	default:
		return 16
	}
}
