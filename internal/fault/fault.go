// Package fault implements the core runtime's single fatal-error path
// (spec §7): every unrecoverable condition — queue overflow, double
// resolve, double attach, an unknown task id — funnels through Halt rather
// than an error return, because none of these conditions have a sane
// recovery on a device with no supervisor to restart the process.
//
// The default handler logs the error through the standard log package;
// Halt then panics, which on a desktop/test build unwinds the goroutine and
// fails the test. No handler in this module disables interrupts or spins
// forever, and nothing calls SetHandler: every build, firmware included,
// ends a fatal condition in that panic unless a caller installs a handler
// that never returns.
package fault

import (
	"log"
	"sync"
)

// Handler is called with every fatal condition raised via Halt.
type Handler func(err error)

var (
	mu      sync.Mutex
	handler Handler = defaultHandler
)

// SetHandler overrides the process-wide fatal handler, letting tests
// observe the fatal condition before Halt panics. A handler that returns
// does not prevent the panic; tests capture it via require.Panics. Passing
// nil restores the default handler.
func SetHandler(h Handler) {
	mu.Lock()
	defer mu.Unlock()
	if h == nil {
		h = defaultHandler
	}
	handler = h
}

// Halt reports a fatal, unrecoverable error. It does not return.
func Halt(err error) {
	mu.Lock()
	h := handler
	mu.Unlock()
	h(err)
	panic(err)
}

func defaultHandler(err error) {
	log.Printf("[FATAL] %v", err)
}
