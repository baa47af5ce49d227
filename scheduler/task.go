package scheduler

import "github.com/fernhollow/rangerd/clock"

// TaskID identifies one scheduled task for the lifetime of its scheduler.
// IDs are assigned from a monotone counter; wraparound is tolerated (ids
// are never compared for ordering, only equality).
type TaskID uint32

// Task is one scheduled unit of work: a due time, an optional period (0
// means one-shot), and the callable to run. Owned exclusively by the
// scheduler's task heap and pending ring; never shared.
type Task struct {
	ID          TaskID
	Due         clock.Instant
	Period      clock.Duration // 0 = one-shot
	Callable    func()
	Description string

	seq uint64 // insertion sequence, used only to break Due ties (FIFO)
}
