package promise

// Executor is "post work to run soon, not inline" (spec §4.4). Defined
// locally rather than imported from package scheduler so that promise has
// no hard dependency on the scheduler's concrete types for its core
// chaining logic — any scheduler.Executor satisfies this interface
// structurally.
type Executor interface {
	Post(callable func())
}
