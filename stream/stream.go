// Package stream implements an unbuffered broadcast-of-one channel
// (spec §4.6), re-expressing original_source/lib/stream.h's Stream<T> /
// StreamWriter<T> pair as one generic state shared between a read-only
// Stream[T] and a write-only Writer[T].
//
// Unlike promise, a stream has no terminal state and no queue: Put
// captures whichever sink is attached at post time, and a value posted
// with no sink attached is simply dropped (spec's S7 scenario).
package stream

import (
	"sync"

	"github.com/fernhollow/rangerd/internal/fault"
	"github.com/fernhollow/rangerd/scheduler"
)

type state[T any] struct {
	mu       sync.Mutex
	attached bool
	sink     func(T)
}

// Stream is a read-only handle a consumer attaches a sink to.
type Stream[T any] struct {
	s *state[T]
}

// Writer is the write-only counterpart used at the stream's source to
// post values.
type Writer[T any] struct {
	s *state[T]
}

// New returns a fresh, unattached stream/writer pair.
func New[T any]() (Stream[T], Writer[T]) {
	s := &state[T]{}
	return Stream[T]{s}, Writer[T]{s}
}

// Put posts v through ex to whichever sink is attached to the stream at
// the moment Put is called, not at the moment the posted closure runs.
// If no sink is attached at post time, v is dropped silently.
func (w Writer[T]) Put(ex scheduler.Executor, v T) {
	w.s.mu.Lock()
	sink := w.s.sink
	w.s.mu.Unlock()

	if sink == nil {
		return
	}
	ex.Post(func() { sink(v) })
}

// OnEach attaches f as the stream's sink. At most one sink per stream; a
// second call is fatal (CodeDoubleAttach).
func (s Stream[T]) OnEach(f func(T)) {
	s.s.mu.Lock()
	defer s.s.mu.Unlock()
	if s.s.attached {
		fault.Halt(&Error{Op: "OnEach", Code: CodeDoubleAttach})
		return
	}
	s.s.attached = true
	s.s.sink = f
}
