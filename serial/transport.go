// Package serial provides the transport the firmware streams logs and
// sensor readings over. It is a client of the core runtime (spec §1),
// not part of it.
package serial

import "io"

// Transport is a full-duplex byte stream to the host, either a real tty
// or an in-memory fake for tests.
type Transport interface {
	io.ReadWriteCloser
}
