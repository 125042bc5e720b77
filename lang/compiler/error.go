package compiler

import (
	"fmt"
	"strings"
)

// CompileError is a single diagnostic produced while compiling, tied to the
// source line it was reported against.
type CompileError struct {
	Line int
	Msg  string
}

func (e CompileError) Error() string {
	// Msg begins with "at '<lexeme>': " or "at end: ", except for diagnostics
	// raised from a scanner error token, which carry no location.
	if strings.HasPrefix(e.Msg, "at ") {
		return fmt.Sprintf("[line %d] Error %s", e.Line, e.Msg)
	}
	return fmt.Sprintf("[line %d] Error: %s", e.Line, e.Msg)
}

// ErrorList collects every diagnostic from one compilation, in report order.
// It is styled after the standard library's go/scanner.ErrorList: a nil
// Err() when there were no problems, otherwise an error whose message lists
// every diagnostic.
type ErrorList []CompileError

func (list ErrorList) Error() string {
	switch len(list) {
	case 0:
		return "no errors"
	case 1:
		return list[0].Error()
	default:
		s := list[0].Error()
		return fmt.Sprintf("%s (and %d more errors)", s, len(list)-1)
	}
}

// Err returns nil if list is empty, else list itself as an error.
func (list ErrorList) Err() error {
	if len(list) == 0 {
		return nil
	}
	return list
}
