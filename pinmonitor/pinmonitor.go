// Package pinmonitor turns pin-change interrupts into main-context
// callbacks and promises, grounded on original_source/os/pin_monitor.h.
// The ISR path never touches the callback table directly: it only
// snapshots hardware state and posts a mainline task, the same split the
// original firmware enforces by moving all table mutation into
// HandlePinStateSnapshot, invoked exclusively via the executor.
package pinmonitor

import (
	"sync"

	"github.com/fernhollow/rangerd/clock"
	"github.com/fernhollow/rangerd/hal"
	"github.com/fernhollow/rangerd/internal/critical"
	"github.com/fernhollow/rangerd/internal/fault"
	"github.com/fernhollow/rangerd/scheduler"
)

// MaxPins bounds how many pins a single Monitor can watch, mirroring the
// original firmware's fixed-size PinStateSnapshot.
const MaxPins = 4

type snapshot struct {
	at    clock.Instant
	state [MaxPins]hal.PinState
}

// Monitor watches a fixed set of pins for changes and dispatches one-shot
// callbacks on the scheduler's mainline.
type Monitor struct {
	hal     hal.HAL
	clk     clock.Clock
	sched   *scheduler.Scheduler
	ex      scheduler.Executor
	metrics *Metrics

	mu        sync.Mutex
	pins      []hal.PinID
	lastState []hal.PinState
	callbacks []func(hal.PinState, clock.Instant)
}

// New returns a Monitor with no pins registered yet; call Init to start
// watching.
func New(h hal.HAL, clk clock.Clock, sched *scheduler.Scheduler) *Monitor {
	return &Monitor{
		hal:   h,
		clk:   clk,
		sched: sched,
		ex:    scheduler.NewExecutor(sched),
	}
}

// WithMetrics attaches m so every observed pin change increments its
// counters. Passing nil disables metrics again.
func (m *Monitor) WithMetrics(metrics *Metrics) *Monitor {
	m.metrics = metrics
	return m
}

// Init sets each pin to input mode, takes an initial level snapshot under
// a critical section so the first observed level is never reported as a
// change, and registers the pins as monitored. Platform-specific
// pin-change-interrupt enable is the caller's responsibility (spec §6:
// ISR binding is platform glue, not portable).
func (m *Monitor) Init(pins ...hal.PinID) {
	if len(pins) > MaxPins {
		fault.Halt(&Error{Op: "Init", Code: CodeUnmonitoredPin})
		return
	}
	for _, p := range pins {
		m.hal.SetPinMode(p, hal.Input)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.pins = append([]hal.PinID(nil), pins...)
	m.lastState = make([]hal.PinState, len(pins))
	m.callbacks = make([]func(hal.PinState, clock.Instant), len(pins))
	critical.Run(func() {
		for i, p := range m.pins {
			m.lastState[i] = m.hal.ReadPin(p)
		}
	})
}

func (m *Monitor) pinIndex(pin hal.PinID) int {
	for i, p := range m.pins {
		if p == pin {
			return i
		}
	}
	return -1
}

// HandlePinChangeInterrupt is the ISR entry point: it captures the current
// time and the level of every monitored pin into a stack-local snapshot,
// then posts the comparison-and-dispatch step to the mainline. It must
// only be called from interrupt context with the thread indicator already
// set.
func (m *Monitor) HandlePinChangeInterrupt() {
	snap := snapshot{at: m.clk.Now()}
	for i, p := range m.pins {
		snap.state[i] = m.hal.ReadPin(p)
	}
	m.ex.Post(func() { m.handleSnapshot(snap) })
}

// handleSnapshot compares the snapshotted states against the last known
// states, firing and clearing any registered one-shot callback for each
// pin that changed.
func (m *Monitor) handleSnapshot(snap snapshot) {
	m.mu.Lock()
	n := len(m.pins)
	changed := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if snap.state[i] != m.lastState[i] {
			changed = append(changed, i)
			m.lastState[i] = snap.state[i]
		}
	}
	fired := make([]func(hal.PinState, clock.Instant), 0, len(changed))
	states := make([]hal.PinState, 0, len(changed))
	for _, i := range changed {
		cb := m.callbacks[i]
		m.callbacks[i] = nil
		fired = append(fired, cb)
		states = append(states, snap.state[i])
	}
	m.mu.Unlock()

	m.metrics.observeChanged(len(changed))

	for i, cb := range fired {
		if cb != nil {
			cb(states[i], snap.at)
		}
	}
}

// onceChange registers f as the one-shot callback for pin, firing the
// next time its state is observed to differ from lastState. Fatal if a
// callback is already registered for this pin.
func (m *Monitor) onceChange(pin hal.PinID, f func(hal.PinState, clock.Instant)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.pinIndex(pin)
	if i < 0 {
		fault.Halt(&Error{Op: "OnceChanges", Code: CodeUnmonitoredPin, Pin: uint8(pin)})
		return
	}
	if m.callbacks[i] != nil {
		fault.Halt(&Error{Op: "OnceChanges", Code: CodeDoubleAttach, Pin: uint8(pin)})
		return
	}
	m.callbacks[i] = f
}

func (m *Monitor) stateOf(pin hal.PinID) hal.PinState {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.pinIndex(pin)
	if i < 0 {
		fault.Halt(&Error{Op: "stateOf", Code: CodeUnmonitoredPin, Pin: uint8(pin)})
		return hal.Low
	}
	return m.lastState[i]
}
