// Package scheduler implements the cooperative single-threaded task
// scheduler the rest of the runtime (promise, stream, pinmonitor) is built
// on: a min-heap of due-time-ordered tasks, run in the caller's thread. Every
// schedule call, from main or ISR context alike, goes through a
// fixed-capacity pending ring that the loop merges into the heap
// (spec §4.3, §4.4, §5).
package scheduler

import (
	"container/heap"
	"time"

	"github.com/fernhollow/rangerd/clock"
	"github.com/fernhollow/rangerd/internal/critical"
	"github.com/fernhollow/rangerd/internal/fault"
	"github.com/fernhollow/rangerd/internal/ring"
)

// State is the scheduler's coarse lifecycle state (spec §4.3).
type State int

const (
	Idle State = iota
	Running
	Stopping
)

// Executor is "post work to run soon, not inline" — the seam promise and
// stream chain through instead of depending on *Scheduler directly.
type Executor interface {
	Post(callable func())
}

// Scheduler maintains the set of future tasks and runs them in due-time
// order in the caller's thread. It is not safe to construct the zero
// value; use New.
type Scheduler struct {
	clock  clock.Clock
	logger Logger
	metrics *Metrics

	heap    taskHeap
	pending *ring.Ring[Task]
	cap     int

	nextID TaskID
	issued uint64 // count of ids ever handed out, for UnknownTaskID detection
	seq    uint64

	state State
	stop  bool
}

// New constructs a Scheduler reading time from clk, with the given config.
func New(clk clock.Clock, cfg Config) *Scheduler {
	return &Scheduler{
		clock:   clk,
		logger:  cfg.Logger,
		metrics: cfg.Metrics,
		heap:    make(taskHeap, 0, cfg.TaskCapacity),
		pending: ring.New[Task](cfg.PendingCapacity),
		cap:     cfg.TaskCapacity,
	}
}

// RunAfter schedules callable to run once, at clock.Now()+delay.
func (s *Scheduler) RunAfter(delay clock.Duration, callable func()) TaskID {
	return s.schedule(delay, 0, callable, "")
}

// RunEvery schedules callable to run every period, first at
// clock.Now()+period.
func (s *Scheduler) RunEvery(period clock.Duration, callable func()) TaskID {
	return s.schedule(period, period, callable, "")
}

// RunEveryUntil schedules predicate to run every period until it returns
// true, at which point the task cancels itself.
func (s *Scheduler) RunEveryUntil(period clock.Duration, predicate func() bool) TaskID {
	var id TaskID
	id = s.schedule(period, period, func() {
		if predicate() {
			s.Cancel(id)
		}
	}, "")
	return id
}

// Cancel removes a pending task. A task that has already fired (one-shot)
// or already canceled itself is a no-op (spec §9's open question, resolved
// here). An id this scheduler never issued is fatal (spec §7
// UnknownTaskId).
func (s *Scheduler) Cancel(id TaskID) {
	s.mergePending()
	if uint64(id) >= s.issued {
		fault.Halt(&Error{Op: "Cancel", Code: CodeUnknownTaskID})
		return
	}
	for i, t := range s.heap {
		if t.ID == id {
			heap.Remove(&s.heap, i)
			return
		}
	}
	// Already fired or already canceled: no-op.
}

// LoopUntilEmpty runs scheduled tasks, including further tasks they
// schedule, until both the heap and the pending ring are empty. At least
// one task must be scheduled before calling this, or it returns
// immediately (spec §4.3).
func (s *Scheduler) LoopUntilEmpty() {
	s.state = Running
	for !s.empty() {
		s.mergePending()
		if s.heap.Len() == 0 {
			continue
		}
		s.tick()
	}
	s.state = Idle
}

func (s *Scheduler) empty() bool {
	return s.heap.Len() == 0 && s.pending.Len() == 0
}

// tick runs the due top-of-heap task, if any, requeuing it if periodic.
func (s *Scheduler) tick() {
	top := s.heap[0]
	now := s.clock.Now()
	if top.Due.Sub(now) > 0 {
		return // not due yet
	}
	task := heap.Pop(&s.heap).(*Task)
	if task.Period != 0 {
		task.Due = task.Due.Add(task.Period)
		heap.Push(&s.heap, task)
	}

	start := time.Now()
	task.Callable()
	if s.metrics != nil {
		s.metrics.observeFired(s.heap.Len(), time.Since(start))
	}
}

func (s *Scheduler) schedule(delay, period clock.Duration, callable func(), desc string) TaskID {
	due := s.clock.Now().Add(delay)
	var id TaskID
	var overflow bool
	critical.Run(func() {
		id = s.nextID
		s.nextID++
		s.issued++
		s.seq++
		task := Task{ID: id, Due: due, Period: period, Callable: callable, Description: desc, seq: s.seq}
		if err := s.pending.Push(task); err != nil {
			overflow = true
		}
	})
	if overflow {
		if s.metrics != nil {
			s.metrics.observeDropped()
		}
		fault.Halt(&Error{Op: "schedule", Code: CodeCapacityExceeded})
		return id
	}
	if s.logger != nil {
		s.logger.Debugf("scheduler: queued task=%d due=%s period=%d", id, due, period)
	}
	return id
}

// mergePending drains the pending ring into the heap. The whole drain
// happens under one critical section so a concurrent ISR-context Push
// cannot be torn by the drain reading it.
func (s *Scheduler) mergePending() {
	if s.pending.Len() == 0 {
		return
	}
	var drained []Task
	critical.Run(func() {
		drained = s.pending.Drain(drained)
	})
	for i := range drained {
		t := drained[i]
		if s.heap.Len() >= s.cap {
			fault.Halt(&Error{Op: "mergePending", Code: CodeCapacityExceeded})
			return
		}
		tc := t
		heap.Push(&s.heap, &tc)
	}
}

// State reports the scheduler's current lifecycle state.
func (s *Scheduler) State() State {
	return s.state
}
