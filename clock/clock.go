// Package clock provides the monotonic microsecond time source shared by the
// scheduler, the pin monitor, and every client built on top of them.
package clock

import "fmt"

// Instant is a point in time expressed as microseconds since boot. It wraps
// every 2^32 microseconds (~71.6 minutes); all comparisons must go through
// Sub/Before rather than raw integer comparison.
type Instant uint32

// Duration is an unsigned microsecond interval.
type Duration uint32

// Add returns the instant d microseconds after a. Wraps silently, matching
// the hardware counter it models.
func (a Instant) Add(d Duration) Instant {
	return a + Instant(d)
}

// Sub returns the signed microsecond difference a-b, correctly handling a
// single wraparound in either direction. This is the only safe way to order
// two Instants: plain `a < b` breaks across a wrap.
func (a Instant) Sub(b Instant) int32 {
	return int32(a - b)
}

// Before reports whether a occurred strictly before b, wrap-safe.
func (a Instant) Before(b Instant) bool {
	return a.Sub(b) < 0
}

// After reports whether a occurred strictly after b, wrap-safe.
func (a Instant) After(b Instant) bool {
	return a.Sub(b) > 0
}

func (a Instant) String() string {
	return fmt.Sprintf("%dus", uint32(a))
}

// Clock exposes the current time. Implementations must be monotone
// non-decreasing (modulo the documented wraparound) and safe to call from
// both main and interrupt context.
type Clock interface {
	Now() Instant
}
