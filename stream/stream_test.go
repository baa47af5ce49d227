package stream_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fernhollow/rangerd/clock"
	"github.com/fernhollow/rangerd/scheduler"
	"github.com/fernhollow/rangerd/stream"
)

func newExecutor(t *testing.T) (*scheduler.TestScheduler, scheduler.Executor) {
	t.Helper()
	s := scheduler.New(clock.NewFake(), scheduler.DefaultConfig())
	ts := scheduler.NewTestScheduler(s)
	return ts, scheduler.NewExecutor(s)
}

func TestOnEach_ReceivesPostedValues(t *testing.T) {
	ts, ex := newExecutor(t)
	s, w := stream.New[int]()

	var got []int
	s.OnEach(func(v int) { got = append(got, v) })

	w.Put(ex, 1)
	w.Put(ex, 2)
	ts.LoopFor(10)

	assert.Equal(t, []int{1, 2}, got)
}

// S7: a value posted with no sink attached is dropped, not queued for a
// sink attached later.
func TestPut_WithNoSinkAttached_IsDropped(t *testing.T) {
	ts, ex := newExecutor(t)
	s, w := stream.New[int]()

	w.Put(ex, 1)

	var got []int
	s.OnEach(func(v int) { got = append(got, v) })
	ts.LoopFor(10)

	assert.Empty(t, got)
}

func TestOnEach_DoubleAttachIsFatal(t *testing.T) {
	s, _ := stream.New[int]()
	s.OnEach(func(int) {})
	assert.Panics(t, func() {
		s.OnEach(func(int) {})
	})
}

func TestPut_NeverRunsInline(t *testing.T) {
	_, ex := newExecutor(t)
	s, w := stream.New[int]()

	ran := false
	s.OnEach(func(int) { ran = true })
	w.Put(ex, 1)

	assert.False(t, ran, "sink must not run before a loop step")
}
