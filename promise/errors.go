package promise

import "fmt"

// Code categorizes a promise error.
type Code string

const (
	// CodeDoubleResolve means Resolve was called twice on the same
	// promise (spec §7 DoubleResolve). Fatal.
	CodeDoubleResolve Code = "double_resolve"
	// CodeDoubleAttach means Then/ThenVoid was called twice on the same
	// promise (spec §7 DoubleAttach). Fatal.
	CodeDoubleAttach Code = "double_attach"
)

// Error is the structured error type this package raises via fault.Halt.
type Error struct {
	Op   string
	Code Code
}

func (e *Error) Error() string {
	return fmt.Sprintf("promise: %s: %s", e.Op, e.Code)
}

func (e *Error) Is(target error) bool {
	te, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == te.Code
}
