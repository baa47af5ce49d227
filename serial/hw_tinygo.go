//go:build tinygo

package serial

import (
	"context"
	"errors"

	"machine"
)

type uartTransport struct {
	uart *machine.UART
}

func (t *uartTransport) Read(p []byte) (int, error)  { return t.uart.Read(p) }
func (t *uartTransport) Write(p []byte) (int, error) { return t.uart.Write(p) }
func (t *uartTransport) Close() error                { return nil }

// Open configures the board's default UART at baud. path is accepted for
// interface symmetry with the desktop-dev build but is otherwise unused:
// on AVR the UART is a fixed peripheral, not a device node to search for.
func Open(ctx context.Context, path string, baud int) (Transport, error) {
	uart := machine.Serial
	if err := uart.Configure(machine.UARTConfig{BaudRate: uint32(baud)}); err != nil {
		return nil, errors.New("serial: configure uart: " + err.Error())
	}
	return &uartTransport{uart: &uart}, nil
}
