//go:build tinygo

package clock

import (
	"machine"

	"github.com/fernhollow/rangerd/internal/critical"
)

// Hardware reads the AVR's free-running timer through TinyGo's machine
// package, the real idiomatic way to ship Go firmware on an 8-bit AVR part.
type Hardware struct{}

// NewHardware returns a Clock backed by the microcontroller's timer.
func NewHardware() *Hardware {
	return &Hardware{}
}

// Now returns microseconds since the timer started. The read is wrapped in
// a critical section because on AVR it is composed of two 8-bit timer
// register reads that can otherwise tear across a timer overflow interrupt.
func (h *Hardware) Now() Instant {
	var now Instant
	critical.Run(func() {
		now = Instant(uint32(machine.Time() / 1000))
	})
	return now
}
