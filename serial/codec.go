package serial

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	telemlog "github.com/fernhollow/rangerd/telemetry/log"
)

// LineCodec frames encoded log records over a Transport, either as
// newline-delimited text (for a human watching a terminal) or as
// length-prefixed binary frames (for a host-side decoder reading
// telemlog.BinaryCodec output back out).
type LineCodec struct {
	Transport Transport
	Codec     telemlog.Codec
	Binary    bool
}

// WriteRecord encodes r and frames it onto the transport.
func (c LineCodec) WriteRecord(r telemlog.Record) error {
	data, err := c.Codec.Encode(r)
	if err != nil {
		return err
	}
	if !c.Binary {
		_, err := c.Transport.Write(data)
		return err
	}
	var lenPrefix [2]byte
	if len(data) > 0xFFFF {
		return fmt.Errorf("serial: frame too large: %d bytes", len(data))
	}
	binary.BigEndian.PutUint16(lenPrefix[:], uint16(len(data)))
	if _, err := c.Transport.Write(lenPrefix[:]); err != nil {
		return err
	}
	_, err = c.Transport.Write(data)
	return err
}

// ReadRecord reads one length-prefixed binary frame and decodes it. Only
// valid when Binary is true; text mode has no defined read-back format
// since it is meant for a human, not a host tool.
func (c LineCodec) ReadRecord(r *bufio.Reader) (telemlog.Record, error) {
	var lenPrefix [2]byte
	if _, err := io.ReadFull(r, lenPrefix[:]); err != nil {
		return telemlog.Record{}, err
	}
	n := binary.BigEndian.Uint16(lenPrefix[:])
	data := make([]byte, n)
	if _, err := io.ReadFull(r, data); err != nil {
		return telemlog.Record{}, err
	}
	bc, ok := c.Codec.(telemlog.BinaryCodec)
	if !ok {
		return telemlog.Record{}, fmt.Errorf("serial: ReadRecord requires a BinaryCodec")
	}
	return bc.Decode(data)
}
