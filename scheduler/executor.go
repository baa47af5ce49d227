package scheduler

import "github.com/fernhollow/rangerd/clock"

// SchedulerExecutor adapts a Scheduler to the Executor interface by posting
// a zero-delay one-shot task (spec §4.4).
type SchedulerExecutor struct {
	s *Scheduler
}

// NewExecutor returns an Executor backed by s.
func NewExecutor(s *Scheduler) *SchedulerExecutor {
	return &SchedulerExecutor{s: s}
}

// Post runs callable asynchronously, in main context, on the next loop
// iteration. FIFO among posts made from the same context at the same
// instant; no other ordering is guaranteed between main- and ISR-origin
// posts.
func (e *SchedulerExecutor) Post(callable func()) {
	e.s.RunAfter(clock.Duration(0), callable)
}

var _ Executor = (*SchedulerExecutor)(nil)
