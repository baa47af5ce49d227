package scheduler

import "fmt"

// Code categorizes a scheduler error, mirroring the teacher's pattern of a
// small string-enum error code alongside a structured *Error.
type Code string

const (
	// CodeCapacityExceeded means the task heap or the pending-additions
	// ring is full (spec §7 CapacityExceeded). Fatal.
	CodeCapacityExceeded Code = "capacity_exceeded"
	// CodeUnknownTaskID means Cancel targeted an id this scheduler never
	// issued (spec §7 UnknownTaskId). Fatal.
	CodeUnknownTaskID Code = "unknown_task_id"
)

// Error is the structured error type returned and (for fatal codes) passed
// to fault.Halt by this package.
type Error struct {
	Op    string
	Code  Code
	Inner error
}

func (e *Error) Error() string {
	if e.Inner != nil {
		return fmt.Sprintf("scheduler: %s: %s: %v", e.Op, e.Code, e.Inner)
	}
	return fmt.Sprintf("scheduler: %s: %s", e.Op, e.Code)
}

func (e *Error) Unwrap() error {
	return e.Inner
}

func (e *Error) Is(target error) bool {
	te, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == te.Code
}
