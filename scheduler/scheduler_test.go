package scheduler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fernhollow/rangerd/clock"
	"github.com/fernhollow/rangerd/scheduler"
)

func newTestScheduler(t *testing.T) (*scheduler.TestScheduler, *clock.Fake) {
	t.Helper()
	fc := clock.NewFake()
	s := scheduler.New(fc, scheduler.DefaultConfig())
	return scheduler.NewTestScheduler(s), fc
}

// S1: order & timing.
func TestLoopUntilEmpty_OrdersByDueTime(t *testing.T) {
	s, fc := newTestScheduler(t)

	var order []clock.Duration
	var fireTimes []clock.Instant
	for _, d := range []clock.Duration{200, 100, 400, 300} {
		d := d
		s.RunAfter(d, func() {
			order = append(order, d)
			fireTimes = append(fireTimes, fc.Now())
		})
	}

	s.LoopUntilEmpty()

	require.Equal(t, []clock.Duration{100, 200, 300, 400}, order)
	for i, d := range order {
		got := fireTimes[i].Sub(0)
		assert.GreaterOrEqual(t, got, int32(d))
		assert.Less(t, got, int32(d)+5)
	}
}

// S2: periodic task with a cancel scheduled mid-stream.
func TestRunEvery_CancelStopsFutureFirings(t *testing.T) {
	s, fc := newTestScheduler(t)

	var fireTimes []clock.Instant
	id := s.RunEvery(100, func() {
		fireTimes = append(fireTimes, fc.Now())
	})
	s.RunAfter(250, func() { s.Cancel(id) })

	s.LoopFor(400)

	require.Len(t, fireTimes, 2)
	assert.GreaterOrEqual(t, fireTimes[0].Sub(0), int32(100))
	assert.Less(t, fireTimes[0].Sub(0), int32(105))
	assert.GreaterOrEqual(t, fireTimes[1].Sub(0), int32(200))
	assert.Less(t, fireTimes[1].Sub(0), int32(205))
}

func TestCancel_AlreadyFiredOneShotIsNoOp(t *testing.T) {
	s, _ := newTestScheduler(t)

	ran := false
	id := s.RunAfter(10, func() { ran = true })
	s.LoopUntilEmpty()
	require.True(t, ran)

	assert.NotPanics(t, func() { s.Cancel(id) })
}

func TestCancel_NeverIssuedIDIsFatal(t *testing.T) {
	s, _ := newTestScheduler(t)
	assert.Panics(t, func() { s.Cancel(scheduler.TaskID(999)) })
}

func TestRunEveryUntil_StopsOnPredicate(t *testing.T) {
	s, _ := newTestScheduler(t)

	count := 0
	s.RunEveryUntil(10, func() bool {
		count++
		return count == 3
	})
	s.LoopUntilEmpty()

	assert.Equal(t, 3, count)
}

func TestExecutor_NeverRunsInline(t *testing.T) {
	s, _ := newTestScheduler(t)
	ex := scheduler.NewExecutor(s.Scheduler)

	ran := false
	ex.Post(func() { ran = true })
	assert.False(t, ran, "Post must not run the job inline")

	s.LoopUntilEmpty()
	assert.True(t, ran)
}
