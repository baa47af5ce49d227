package log

import (
	"fmt"

	"github.com/near/borsh-go"

	"github.com/fernhollow/rangerd/clock"
)

// Codec turns a Record into bytes a Sink can hand to a transport.
type Codec interface {
	Encode(Record) ([]byte, error)
}

// ValueType tags an argument's wire representation, mirroring the
// original firmware's ValueType enum (binary_log.h).
type ValueType uint8

const (
	ValueUint8  ValueType = 1
	ValueUint16 ValueType = 2
	ValueUint32 ValueType = 3
	ValueString ValueType = 4
)

// value is a tagged union of the argument types the original binary
// log's BinaryValue specializations support, flattened into one
// borsh-serializable struct since Go has no template specialization to
// pick the wire shape per type.
type value struct {
	Type ValueType
	U32  uint32
	Str  string
}

func valueOf(v any) value {
	switch t := v.(type) {
	case uint8:
		return value{Type: ValueUint8, U32: uint32(t)}
	case uint16:
		return value{Type: ValueUint16, U32: uint32(t)}
	case uint32:
		return value{Type: ValueUint32, U32: t}
	case int:
		return value{Type: ValueUint32, U32: uint32(t)}
	case string:
		return value{Type: ValueString, Str: t}
	default:
		return value{Type: ValueString, Str: fmt.Sprint(t)}
	}
}

func (v value) any() any {
	switch v.Type {
	case ValueUint8:
		return uint8(v.U32)
	case ValueUint16:
		return uint16(v.U32)
	case ValueUint32:
		return v.U32
	default:
		return v.Str
	}
}

// wireRecord is the borsh-serialized shape of a Record.
type wireRecord struct {
	Severity uint8
	Micros   uint32
	Thread   string
	File     string
	Line     uint16
	Values   []value
}

// BinaryCodec encodes records with borsh, the compact binary format the
// original firmware hand-rolled per-type WriteBinaryToStream overloads
// for (binary_log.h).
type BinaryCodec struct{}

func (BinaryCodec) Encode(r Record) ([]byte, error) {
	values := make([]value, len(r.Args))
	for i, a := range r.Args {
		values[i] = valueOf(a)
	}
	wire := wireRecord{
		Severity: uint8(r.Severity),
		Micros:   uint32(r.Micros),
		Thread:   r.Thread,
		File:     r.File,
		Line:     r.Line,
		Values:   values,
	}
	return borsh.Serialize(wire)
}

// Decode reverses Encode, for tooling that reads the serial transport's
// binary log stream back into Records.
func (BinaryCodec) Decode(data []byte) (Record, error) {
	var wire wireRecord
	if err := borsh.Deserialize(&wire, data); err != nil {
		return Record{}, err
	}
	args := make([]any, len(wire.Values))
	for i, v := range wire.Values {
		args[i] = v.any()
	}
	return Record{
		Severity: Severity(wire.Severity),
		Micros:   clock.Instant(wire.Micros),
		Thread:   wire.Thread,
		File:     wire.File,
		Line:     wire.Line,
		Args:     args,
	}, nil
}

// TextCodec formats records the way the original TextFormat/TextStream
// pair rendered them to a hardware serial stream: severity char, a
// zero-padded seconds.micros timestamp, a thread marker, file:line, then
// space-joined args.
type TextCodec struct{}

func (TextCodec) Encode(r Record) ([]byte, error) {
	threadMark := ' '
	if r.Thread == "interrupt" {
		threadMark = '*'
	}
	s := fmt.Sprintf("%s%04d.%06d%c %s:%d: ",
		r.Severity, uint32(r.Micros)/1000000, uint32(r.Micros)%1000000, threadMark, r.File, r.Line)
	for i, a := range r.Args {
		if i > 0 {
			s += " "
		}
		s += fmt.Sprint(a)
	}
	return []byte(s + "\n"), nil
}
