package hal

import (
	"sync"

	"github.com/fernhollow/rangerd/clock"
)

// Write records a single WritePin call with the time it occurred, letting
// tests assert on an exact sequence of timestamped pin transitions (spec §8
// scenario S6's trig-pin write log). Mirrors the teacher's MockBackend
// call-recording pattern, specialized to pin writes instead of byte I/O.
type Write struct {
	At    clock.Instant
	Pin   PinID
	State PinState
}

// Fake is a settable-state, call-recording HAL for deterministic tests.
type Fake struct {
	clock clock.Clock

	mu     sync.Mutex
	modes  map[PinID]PinMode
	reads  map[PinID]PinState
	writes []Write
}

// NewFake returns a Fake HAL driven by clk for write timestamps.
func NewFake(clk clock.Clock) *Fake {
	return &Fake{
		clock: clk,
		modes: make(map[PinID]PinMode),
		reads: make(map[PinID]PinState),
	}
}

func (f *Fake) SetPinMode(pin PinID, mode PinMode) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.modes[pin] = mode
}

func (f *Fake) ReadPin(pin PinID) PinState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reads[pin]
}

func (f *Fake) WritePin(pin PinID, state PinState) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes = append(f.writes, Write{At: f.clock.Now(), Pin: pin, State: state})
}

// SetReadValue lets test code impose the value the next ReadPin(pin) call
// (and any after it, until changed again) observes.
func (f *Fake) SetReadValue(pin PinID, state PinState) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads[pin] = state
}

// ModeOf reports the mode last set for pin via SetPinMode.
func (f *Fake) ModeOf(pin PinID) PinMode {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.modes[pin]
}

// Writes returns a copy of every WritePin call recorded so far, in order.
func (f *Fake) Writes() []Write {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Write, len(f.writes))
	copy(out, f.writes)
	return out
}

var _ HAL = (*Fake)(nil)
