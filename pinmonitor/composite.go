package pinmonitor

import (
	"github.com/fernhollow/rangerd/clock"
	"github.com/fernhollow/rangerd/hal"
	"github.com/fernhollow/rangerd/internal/fault"
	"github.com/fernhollow/rangerd/promise"
)

// OnceHigh resolves a Promise[clock.Instant] the next time pin reads
// high. Fatal if pin is already high (spec §7 Precondition).
func (m *Monitor) OnceHigh(pin hal.PinID) promise.Promise[clock.Instant] {
	return m.onceState(pin, hal.High, "OnceHigh")
}

// OnceLow is OnceHigh's symmetric counterpart.
func (m *Monitor) OnceLow(pin hal.PinID) promise.Promise[clock.Instant] {
	return m.onceState(pin, hal.Low, "OnceLow")
}

func (m *Monitor) onceState(pin hal.PinID, want hal.PinState, op string) promise.Promise[clock.Instant] {
	if m.stateOf(pin) == want {
		fault.Halt(&Error{Op: op, Code: CodePrecondition, Pin: uint8(pin)})
		return promise.Promise[clock.Instant]{}
	}
	p, r := promise.New[clock.Instant]()
	m.onceChange(pin, func(state hal.PinState, at clock.Instant) {
		if state == want {
			r.Resolve(at)
		}
	})
	return p
}

// OnceSpikes resolves the duration, in microseconds, between the next
// high edge and the following low edge on pin — once_high then once_low,
// per spec §4.7.
func (m *Monitor) OnceSpikes(pin hal.PinID) promise.Promise[clock.Duration] {
	p, r := promise.New[clock.Duration]()
	high := m.OnceHigh(pin)
	ex := m.ex
	promise.ThenVoid(high, ex, func(highAt clock.Instant) {
		low := m.OnceLow(pin)
		promise.ThenVoid(low, ex, func(lowAt clock.Instant) {
			r.Resolve(clock.Duration(lowAt.Sub(highAt)))
		})
	})
	return p
}

// PollUntilHigh is the polling fallback for pins without interrupt
// support (spec §4.7), used by the HC-SR04 driver's echo pin.
func (m *Monitor) PollUntilHigh(period clock.Duration, pin hal.PinID) promise.Promise[promise.Unit] {
	return promise.RunEveryUntilResolvedBool(m.sched, period, func() bool {
		return m.hal.ReadPin(pin) == hal.High
	})
}

// PollUntilLow is PollUntilHigh's symmetric counterpart.
func (m *Monitor) PollUntilLow(period clock.Duration, pin hal.PinID) promise.Promise[promise.Unit] {
	return promise.RunEveryUntilResolvedBool(m.sched, period, func() bool {
		return m.hal.ReadPin(pin) == hal.Low
	})
}

// PollOnceSpikes is OnceSpikes's polling counterpart: it measures the
// high-to-low duration on pin by polling every period instead of relying
// on a pin-change interrupt, for pins the platform cannot wire to an
// interrupt vector (the HC-SR04 driver's echo pin, per spec §4.7).
func (m *Monitor) PollOnceSpikes(period clock.Duration, pin hal.PinID) promise.Promise[clock.Duration] {
	p, r := promise.New[clock.Duration]()
	high := m.PollUntilHigh(period, pin)
	promise.ThenVoid(high, m.ex, func(promise.Unit) {
		highAt := m.clk.Now()
		low := m.PollUntilLow(period, pin)
		promise.ThenVoid(low, m.ex, func(promise.Unit) {
			lowAt := m.clk.Now()
			r.Resolve(clock.Duration(lowAt.Sub(highAt)))
		})
	})
	return p
}
