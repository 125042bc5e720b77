// Package value implements the dynamic Value representation, the heap
// object variants it can point to, the bytecode Chunk that owns constant
// pools, and the open-addressed Table used for globals, fields, methods and
// string interning. These four components are mutually referential (Class
// and Instance hold Tables of Values; Table keys are interned Strings) so
// they share one package rather than being split across several with import
// cycles.
package value

import (
	"math"
	"strconv"
)

// Kind is the dynamic type tag of a Value.
type Kind uint8

const (
	KindNil Kind = iota
	KindBool
	KindNumber
	KindObject
)

// Value is a dynamically-typed Lox value: nil, a bool, an IEEE-754 double, or
// a pointer to a heap Object. A tagged struct is the idiomatic Go rendition
// of the reference implementation's tagged union / NaN-boxed word; NaN-boxing
// is an optimization, not a requirement.
type Value struct {
	kind   Kind
	b      bool
	n      float64
	obj    Object
}

// Nil is the singular nil value.
var Nil = Value{kind: KindNil}

// Bool returns a boolean Value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number returns a numeric Value.
func Number(n float64) Value { return Value{kind: KindNumber, n: n} }

// Obj returns a Value wrapping a heap Object. Passing a nil Object panics:
// callers should use value.Nil instead of an object.Value wrapping a typed
// nil pointer, the same discipline the reference VM's NIL_VAL macro enforces.
func Obj(o Object) Value {
	if o == nil {
		panic("value: Obj called with nil Object")
	}
	return Value{kind: KindObject, obj: o}
}

func (v Value) IsNil() bool    { return v.kind == KindNil }
func (v Value) IsBool() bool   { return v.kind == KindBool }
func (v Value) IsNumber() bool { return v.kind == KindNumber }
func (v Value) IsObject() bool { return v.kind == KindObject }

func (v Value) AsBool() bool      { return v.b }
func (v Value) AsNumber() float64 { return v.n }
func (v Value) AsObject() Object  { return v.obj }

// Is reports whether v is an object of the given kind.
func (v Value) Is(k ObjKind) bool {
	return v.kind == KindObject && v.obj.Kind() == k
}

// Truthy implements Lox truthiness: nil and false are falsey, everything
// else (including the number zero) is truthy.
func Truthy(v Value) bool {
	if v.IsNil() {
		return false
	}
	if v.IsBool() {
		return v.b
	}
	return true
}

// Equal implements Lox's by-type equality: booleans and nil compare by
// identity of their discriminant, numbers with the Go == operator on the
// double (so NaN != NaN, matching IEEE-754), and objects by pointer identity
// (sound because strings are interned).
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNil:
		return true
	case KindBool:
		return a.b == b.b
	case KindNumber:
		return a.n == b.n
	case KindObject:
		return a.obj == b.obj
	default:
		return false
	}
}

// String renders v the way the `print` statement and string concatenation
// do.
func (v Value) String() string {
	switch v.kind {
	case KindNil:
		return "nil"
	case KindBool:
		if v.b {
			return "true"
		}
		return "false"
	case KindNumber:
		return formatNumber(v.n)
	case KindObject:
		return v.obj.String()
	default:
		return "?"
	}
}

// TypeName returns a short string describing v's dynamic type.
func (v Value) TypeName() string {
	switch v.kind {
	case KindNil:
		return "nil"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindObject:
		return v.obj.Kind().String()
	default:
		return "?"
	}
}

func formatNumber(n float64) string {
	if math.IsNaN(n) {
		return "nan"
	}
	if math.IsInf(n, 1) {
		return "inf"
	}
	if math.IsInf(n, -1) {
		return "-inf"
	}
	return strconv.FormatFloat(n, 'g', -1, 64)
}
