package promise

import (
	"github.com/fernhollow/rangerd/clock"
	"github.com/fernhollow/rangerd/scheduler"
)

// After and RunEveryUntilResolved live in this package rather than on
// *scheduler.Scheduler itself, the same way the original firmware split
// Scheduler::AfterMicros() into "os/scheduler-promise.h", included only
// after promise.h, to break the circular dependency
// Scheduler -> Promise -> SchedulerExecutor -> Scheduler (spec §4.3, §9).

// After returns a promise resolved once delay has elapsed on s.
func After(s *scheduler.Scheduler, delay clock.Duration) Promise[Unit] {
	p, r := New[Unit]()
	s.RunAfter(delay, func() { r.Resolve(Unit{}) })
	return p
}

// RunEveryUntilResolved runs producer every period until it returns a
// value alongside true, at which point the periodic task cancels itself
// and the returned promise resolves with that value.
func RunEveryUntilResolved[T any](s *scheduler.Scheduler, period clock.Duration, producer func() (T, bool)) Promise[T] {
	p, r := New[T]()
	s.RunEveryUntil(period, func() bool {
		if v, ok := producer(); ok {
			r.Resolve(v)
			return true
		}
		return false
	})
	return p
}

// RunEveryUntilResolvedBool is the Unit-result overload of
// RunEveryUntilResolved, for a bool-returning producer (spec §4.3).
func RunEveryUntilResolvedBool(s *scheduler.Scheduler, period clock.Duration, producer func() bool) Promise[Unit] {
	return RunEveryUntilResolved(s, period, func() (Unit, bool) {
		return Unit{}, producer()
	})
}
