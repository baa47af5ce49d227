// Package log implements the on-device telemetry pipeline: structured
// records serialized through a binary or text codec into a double-
// buffered sink, grounded on original_source/lib/{log_interface,
// binary_log,text_log,buffered_log}.h. It is a client of the core
// runtime (spec §1), not part of it — a sketch wires a Logger to its own
// clock, thread indicator, and transport.
package log

import (
	"github.com/fernhollow/rangerd/clock"
)

// Severity mirrors the original firmware's two-level severity enum.
type Severity uint8

const (
	SeverityFatal Severity = 1
	SeverityInfo  Severity = 2
)

func (s Severity) String() string {
	switch s {
	case SeverityFatal:
		return "F"
	case SeverityInfo:
		return "I"
	default:
		return "?"
	}
}

// Record is one structured log entry: a header plus a flat argument list,
// the Go analogue of the original's MessageHeader + Message<Ts...>.
type Record struct {
	Severity Severity
	Micros   clock.Instant
	Thread   string // "main" or "interrupt", per thread.Context.String()
	File     string
	Line     uint16
	Args     []any
}

// Sink receives encoded records. Implementations must not block the
// caller for long: the main-context caller may be inside a fatal-error
// path.
type Sink interface {
	Write(Record)
}
