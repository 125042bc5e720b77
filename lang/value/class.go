package value

// Class is a Lox class: a name and a Table of methods keyed by method-name
// String, whose values are always Closures.
type Class struct {
	header
	Name    *String
	Methods *Table
}

// NewClass returns an empty Class with an initialized, empty method Table.
func NewClass(name *String) *Class {
	c := &Class{Name: name, Methods: NewTable()}
	c.kind = ObjClassKind
	return c
}

func (c *Class) String() string { return c.Name.Chars }
