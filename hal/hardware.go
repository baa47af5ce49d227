//go:build !tinygo

package hal

// Hardware is the development-host stand-in for real GPIO access. It has no
// physical pins to drive, so writes and mode changes are no-ops and reads
// always report Low; it exists so code that takes a hal.HAL compiles and
// runs identically on a developer's machine, the same role the teacher's
// linux-amd64 build of its io_uring backend plays relative to the kernel
// driver it wraps.
type Hardware struct{}

// NewHardware returns a no-op HAL for non-embedded builds.
func NewHardware() *Hardware {
	return &Hardware{}
}

func (h *Hardware) SetPinMode(pin PinID, mode PinMode) {}

func (h *Hardware) ReadPin(pin PinID) PinState {
	return Low
}

func (h *Hardware) WritePin(pin PinID, state PinState) {}
