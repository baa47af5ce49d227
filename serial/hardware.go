//go:build !tinygo

package serial

import (
	"context"
	"fmt"
	"os"

	"github.com/cenkalti/backoff/v5"
	"golang.org/x/sys/unix"
)

// baudRates maps a requested baud rate to the termios speed constant.
// Only the rates the original firmware's hardware serial config actually
// uses are covered; an unlisted rate is an error rather than a silent
// fallback.
var baudRates = map[int]uint32{
	9600:   unix.B9600,
	19200:  unix.B19200,
	38400:  unix.B38400,
	57600:  unix.B57600,
	115200: unix.B115200,
}

type fdTransport struct {
	f  *os.File
	fd int
}

func (t *fdTransport) Read(p []byte) (int, error)  { return t.f.Read(p) }
func (t *fdTransport) Write(p []byte) (int, error) { return t.f.Write(p) }
func (t *fdTransport) Close() error                { return t.f.Close() }

// Open opens the tty at path configured for raw, 8N1 I/O at baud,
// retrying while the device node does not yet exist — the same
// device-not-yet-present race the teacher retries against /dev/ublkcN
// after ADD_DEV, here driven by backoff.Retry instead of a hand-rolled
// sleep loop.
func Open(ctx context.Context, path string, baud int) (Transport, error) {
	speed, ok := baudRates[baud]
	if !ok {
		return nil, fmt.Errorf("serial: unsupported baud rate %d", baud)
	}

	fd, err := backoff.Retry(ctx, func() (int, error) {
		fd, err := unix.Open(path, unix.O_RDWR|unix.O_NOCTTY, 0)
		if err != nil {
			if err == unix.ENOENT {
				return 0, err
			}
			return 0, backoff.Permanent(err)
		}
		return fd, nil
	}, backoff.WithBackOff(backoff.NewExponentialBackOff()), backoff.WithMaxTries(50))
	if err != nil {
		return nil, err
	}

	if err := configureRaw(fd, speed); err != nil {
		unix.Close(fd)
		return nil, err
	}

	return &fdTransport{f: os.NewFile(uintptr(fd), path), fd: fd}, nil
}

func configureRaw(fd int, speed uint32) error {
	t, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		return err
	}

	t.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.PARMRK | unix.ISTRIP |
		unix.INLCR | unix.IGNCR | unix.ICRNL | unix.IXON
	t.Oflag &^= unix.OPOST
	t.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.ISIG | unix.IEXTEN
	t.Cflag &^= unix.CSIZE | unix.PARENB
	t.Cflag |= unix.CS8 | unix.CREAD | unix.CLOCAL
	t.Cc[unix.VMIN] = 1
	t.Cc[unix.VTIME] = 0
	t.Ispeed = speed
	t.Ospeed = speed

	return unix.IoctlSetTermios(fd, unix.TCSETS, t)
}
