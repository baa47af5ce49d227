//go:build !tinygo

// Package critical provides the scoped interrupt-disable primitive the rest
// of the runtime uses to protect state shared between main and ISR context
// (spec: "all such regions must be bounded in constant time").
//
// On the development/test build there is no real interrupt controller, so
// the critical section degenerates to a single global mutex: main-context
// callers serialize against each other, and the fake ISR injection used by
// tests takes the same lock before mutating shared state.
// critical_tinygo.go supplies the real AVR implementation via runtime/interrupt.
package critical

import "sync"

var mu sync.Mutex

// Run executes f with interrupts disabled (simulated as mutual exclusion on
// this build). f must be short and must not block.
func Run(f func()) {
	mu.Lock()
	defer mu.Unlock()
	f()
}
