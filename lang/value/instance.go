package value

import "fmt"

// Instance is an instance of a Class, with its own Table of fields. Field
// tables may grow unboundedly; there is no fixed shape per class.
type Instance struct {
	header
	Class  *Class
	Fields *Table
}

// NewInstance returns an Instance of class with an empty field Table.
func NewInstance(class *Class) *Instance {
	i := &Instance{Class: class, Fields: NewTable()}
	i.kind = ObjInstanceKind
	return i
}

func (i *Instance) String() string { return fmt.Sprintf("%s instance", i.Class.Name.Chars) }
