package log

import (
	"runtime"

	"github.com/fernhollow/rangerd/clock"
	"github.com/fernhollow/rangerd/internal/fault"
	"github.com/fernhollow/rangerd/thread"
)

// Logger builds Records and routes them to one of two sinks, following
// the logging client contract of spec §6: a fatal report, or any report
// from main context, writes synchronously; a non-fatal report from
// interrupt context is handed to an async sink instead, mirroring the
// original LOG(severity) macro's BeginMessage/BeginAsyncMessage split.
type Logger struct {
	clk   clock.Clock
	sync  Sink
	async Sink
}

// NewLogger returns a Logger that writes synchronously to sync and
// non-fatal interrupt-context reports to async. Passing the same Sink
// for both is valid for sinks that are themselves safe to call from
// either context (e.g. a BufferedSink).
func NewLogger(clk clock.Clock, sync, async Sink) *Logger {
	return &Logger{clk: clk, sync: sync, async: async}
}

func (l *Logger) record(sev Severity, args []any) Record {
	// Skip record -> write -> Info/Fatal to land on the actual call site.
	_, file, line, ok := runtime.Caller(3)
	if !ok {
		file, line = "unknown", 0
	}
	return Record{
		Severity: sev,
		Micros:   l.clk.Now(),
		Thread:   thread.Current().String(),
		File:     file,
		Line:     uint16(line),
		Args:     args,
	}
}

func (l *Logger) write(sev Severity, args []any) {
	r := l.record(sev, args)
	if sev == SeverityFatal || !thread.IsInterrupt() {
		l.sync.Write(r)
		return
	}
	l.async.Write(r)
}

// Info logs a non-fatal informational record.
func (l *Logger) Info(args ...any) {
	l.write(SeverityInfo, args)
}

// Fatal logs a fatal record synchronously, then halts (spec §7: fatal
// errors log if possible, then trap).
func (l *Logger) Fatal(args ...any) {
	l.write(SeverityFatal, args)
	fault.Halt(&Error{Op: "Fatal"})
}
