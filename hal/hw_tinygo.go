//go:build tinygo

package hal

import "machine"

// Hardware drives real digital pins through TinyGo's machine package.
type Hardware struct{}

// NewHardware returns a HAL backed by the board's GPIO pins.
func NewHardware() *Hardware {
	return &Hardware{}
}

func (h *Hardware) SetPinMode(pin PinID, mode PinMode) {
	p := machine.Pin(pin)
	switch mode {
	case Output:
		p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	case InputPullup:
		p.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	default:
		p.Configure(machine.PinConfig{Mode: machine.PinInput})
	}
}

func (h *Hardware) ReadPin(pin PinID) PinState {
	return PinState(machine.Pin(pin).Get())
}

func (h *Hardware) WritePin(pin PinID, state PinState) {
	machine.Pin(pin).Set(bool(state))
}
