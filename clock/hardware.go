//go:build !tinygo

package clock

import (
	"time"

	"github.com/fernhollow/rangerd/internal/critical"
)

// Hardware is the development-host stand-in for the real AVR timer backend
// (see hw_tinygo.go for the build actually flashed to a board). It derives
// microsecond Instants from a monotonic time.Time baseline captured at
// construction, the same role the teacher's queue runner gives a captured
// start time for latency accounting.
//
// Now() is routed through a scoped critical section even though a single
// time.Since() read cannot tear, to keep the call site identical to the
// hardware backend and document the invariant that composite timer reads
// must be critical-section-protected.
type Hardware struct {
	start time.Time
}

// NewHardware returns a Clock backed by the host's monotonic clock.
func NewHardware() *Hardware {
	return &Hardware{start: time.Now()}
}

// Now returns microseconds elapsed since this Hardware clock was created,
// truncated to the 32-bit wraparound the firmware target exhibits.
func (h *Hardware) Now() Instant {
	var now Instant
	critical.Run(func() {
		now = Instant(uint32(time.Since(h.start).Microseconds()))
	})
	return now
}
