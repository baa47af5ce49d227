package promise_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fernhollow/rangerd/clock"
	"github.com/fernhollow/rangerd/promise"
	"github.com/fernhollow/rangerd/scheduler"
)

func newExecutor(t *testing.T) (*scheduler.TestScheduler, scheduler.Executor) {
	t.Helper()
	s := scheduler.New(clock.NewFake(), scheduler.DefaultConfig())
	ts := scheduler.NewTestScheduler(s)
	return ts, scheduler.NewExecutor(s)
}

// S3: promise chain a.then(f).then_void(g).
func TestThen_ChainsInOrder(t *testing.T) {
	ts, ex := newExecutor(t)
	p, r := promise.New[int]()

	out := 0
	child := promise.Then(p, ex, func(x int) int { return x + 1 })
	promise.ThenVoid(child, ex, func(y int) { out = y })

	r.Resolve(1)
	ts.LoopFor(10)

	assert.Equal(t, 2, out)
}

// S4: flattening — then() handler returns a nested promise.
func TestThenFlat_ResolvesWithInnerValue(t *testing.T) {
	ts, ex := newExecutor(t)
	p1, r1 := promise.New[int]()
	p2, r2 := promise.New[int]()

	out := 0
	child := promise.ThenFlat(p1, ex, func(int) promise.Promise[int] { return p2 })
	promise.ThenVoid(child, ex, func(y int) { out = y })

	r1.Resolve(-1)
	ts.LoopFor(10)
	require.Equal(t, 0, out, "resolving the outer promise alone must not resolve the chain")

	r2.Resolve(2)
	ts.LoopFor(10)
	assert.Equal(t, 2, out)
}

// S5: attaching to an already-resolved promise still posts through the
// executor rather than running inline.
func TestThenVoid_AlreadyResolved_NeverRunsInline(t *testing.T) {
	ts, ex := newExecutor(t)

	out := 0
	p := promise.Resolved(1)
	promise.ThenVoid(p, ex, func(x int) { out = x })

	require.Equal(t, 0, out, "handler must not run before a loop step")

	ts.LoopFor(10)
	assert.Equal(t, 1, out)
}

// S8: a second attach is fatal.
func TestThenVoid_DoubleAttachIsFatal(t *testing.T) {
	_, ex := newExecutor(t)
	p, _ := promise.New[int]()
	promise.ThenVoid(p, ex, func(int) {})
	assert.Panics(t, func() {
		promise.ThenVoid(p, ex, func(int) {})
	})
}

func TestResolve_DoubleResolveIsFatal(t *testing.T) {
	_, r := promise.New[int]()
	r.Resolve(1)
	assert.Panics(t, func() {
		r.Resolve(2)
	})
}

func TestAfter_ResolvesAfterDelay(t *testing.T) {
	s := scheduler.New(clock.NewFake(), scheduler.DefaultConfig())
	ts := scheduler.NewTestScheduler(s)
	ex := scheduler.NewExecutor(s)

	p := promise.After(s, 50)
	done := false
	promise.ThenVoid(p, ex, func(promise.Unit) { done = true })

	ts.LoopFor(100)
	assert.True(t, done)
}
