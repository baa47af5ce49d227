//go:build tinygo

package critical

import "runtime/interrupt"

// Run executes f with AVR interrupts disabled, restoring the prior interrupt
// state on return even if f panics.
func Run(f func()) {
	state := interrupt.Disable()
	defer interrupt.Restore(state)
	f()
}
