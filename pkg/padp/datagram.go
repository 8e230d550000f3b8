// Package padp implements the Packet Assembly/Disassembly Protocol: a
// stop-and-wait ARQ that turns a stream of SLP datagrams into a reliable,
// fragmented message channel.
package padp

import (
	"encoding/binary"
	"fmt"
)

// Type is the PADP sub-type carried inside an SLP datagram whose SLP Type
// is slp.TypePADP.
type Type uint8

const (
	TypeData   Type = 1
	TypeAck    Type = 2
	TypeTickle Type = 3
	TypeAbort  Type = 4
)

func (t Type) String() string {
	switch t {
	case TypeData:
		return "DATA"
	case TypeAck:
		return "ACK"
	case TypeTickle:
		return "TICKLE"
	case TypeAbort:
		return "ABORT"
	default:
		return fmt.Sprintf("Type(%d)", uint8(t))
	}
}

// Datagram is one PADP-layer datagram: the payload of an SLP frame whose
// SLP Type is TypePADP. SizeOrOffset holds the total message size on the
// first DATA fragment of a message, and the count of bytes already
// delivered on every later fragment.
type Datagram struct {
	Type         Type
	First        bool
	Last         bool
	ErrMemory    bool
	LongForm     bool
	SizeOrOffset uint32
	Data         []byte
}

const (
	flagFirst     = 1 << 7
	flagLast      = 1 << 6
	flagErrMemory = 1 << 5
	flagLongForm  = 1 << 4
)

// Encode serializes d to its wire form: type byte, flags byte, a 2-byte
// (short form) or 4-byte (long form) SizeOrOffset, then Data.
func (d *Datagram) Encode() []byte {
	var flags byte
	if d.First {
		flags |= flagFirst
	}
	if d.Last {
		flags |= flagLast
	}
	if d.ErrMemory {
		flags |= flagErrMemory
	}
	if d.LongForm {
		flags |= flagLongForm
	}

	var buf []byte
	if d.LongForm {
		buf = make([]byte, 2+4, 2+4+len(d.Data))
		binary.BigEndian.PutUint32(buf[2:6], d.SizeOrOffset)
	} else {
		buf = make([]byte, 2+2, 2+2+len(d.Data))
		binary.BigEndian.PutUint16(buf[2:4], uint16(d.SizeOrOffset))
	}
	buf[0] = byte(d.Type)
	buf[1] = flags
	buf = append(buf, d.Data...)
	return buf
}

// Decode parses a PADP datagram from raw bytes (the payload of an SLP
// datagram).
func Decode(raw []byte) (*Datagram, error) {
	if len(raw) < 2 {
		return nil, fmt.Errorf("padp: datagram too short: %d bytes", len(raw))
	}
	d := &Datagram{Type: Type(raw[0])}
	flags := raw[1]
	d.First = flags&flagFirst != 0
	d.Last = flags&flagLast != 0
	d.ErrMemory = flags&flagErrMemory != 0
	d.LongForm = flags&flagLongForm != 0

	if d.LongForm {
		if len(raw) < 6 {
			return nil, fmt.Errorf("padp: long-form datagram too short: %d bytes", len(raw))
		}
		d.SizeOrOffset = binary.BigEndian.Uint32(raw[2:6])
		d.Data = raw[6:]
	} else {
		if len(raw) < 4 {
			return nil, fmt.Errorf("padp: short-form datagram too short: %d bytes", len(raw))
		}
		d.SizeOrOffset = uint32(binary.BigEndian.Uint16(raw[2:4]))
		d.Data = raw[4:]
	}
	return d, nil
}
