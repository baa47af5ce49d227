package scheduler

import "github.com/fernhollow/rangerd/clock"

// TestScheduler wraps a Scheduler with the deterministic-termination hooks
// spec §6 asks test code for: Stop() and a bounded LoopFor(duration) that
// schedules its own stop, instead of relying on the queue draining to
// empty (which a periodic task, by construction, never does on its own).
type TestScheduler struct {
	*Scheduler
}

// NewTestScheduler wraps s.
func NewTestScheduler(s *Scheduler) *TestScheduler {
	return &TestScheduler{Scheduler: s}
}

// Stop requests that the currently running LoopFor/LoopUntilStop return
// after the in-flight task, if any, completes.
func (t *TestScheduler) Stop() {
	t.stop = true
}

// LoopUntilStop runs tasks until Stop is called, or until neither the heap
// nor the pending ring holds a task.
func (t *TestScheduler) LoopUntilStop() {
	t.stop = false
	t.state = Running
	for !t.stop {
		t.mergePending()
		if t.heap.Len() == 0 && t.pending.Len() == 0 {
			// Nothing left and nobody will ever call Stop from here: bail
			// out rather than spin forever in a test.
			break
		}
		if t.heap.Len() == 0 {
			continue
		}
		t.tick()
	}
	t.state = Idle
}

// LoopFor runs tasks for (approximately) duration of fake-clock time, then
// stops, by scheduling its own Stop call.
func (t *TestScheduler) LoopFor(duration clock.Duration) {
	t.RunAfter(duration, t.Stop)
	t.LoopUntilStop()
}

// TestExecutor runs posted jobs inline with the wrapped TestScheduler's own
// loop (via RunAfter(0, ...)), so "posted, not inline" still holds — it
// simply gives tests a single stepping mechanism instead of a second
// concurrent executor to manage.
type TestExecutor = SchedulerExecutor
