// Package slp implements the Serial Link Protocol: the lowest framed layer
// of the HotSync stack, giving checksummed, CRC-protected datagrams with
// socket ids, a type, and a transaction id over a raw byte stream.
package slp

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/palmsync/hotsync/internal/crc"
	"github.com/sirupsen/logrus"
)

// ErrMalformedFrame is returned for a bad signature, header checksum, or
// trailing CRC. It is fatal to the stream: the caller must tear the
// connection down rather than retry at this layer.
var ErrMalformedFrame = errors.New("slp: malformed frame")

var signature = [3]byte{0xBE, 0xEF, 0xED}

// Type identifies the payload carried by a datagram.
type Type uint8

const (
	TypeSystem   Type = 1
	TypePADP     Type = 2
	TypeLoopback Type = 3
)

func (t Type) String() string {
	switch t {
	case TypeSystem:
		return "SYSTEM"
	case TypePADP:
		return "PADP"
	case TypeLoopback:
		return "LOOPBACK"
	default:
		return fmt.Sprintf("Type(%d)", uint8(t))
	}
}

// Datagram is one SLP frame: a 10-byte header (signature, sockets, type,
// payload length, xid, header checksum), the payload, and a trailing
// 16-bit CRC computed by Framer — callers never set or read the checksum
// or CRC fields directly.
type Datagram struct {
	DestSocket byte
	SrcSocket  byte
	Type       Type
	XID        byte
	Payload    []byte
}

const headerLen = 9 // signature(3) + dest(1) + src(1) + type(1) + len(2) + xid(1)

func (d *Datagram) header() []byte {
	h := make([]byte, headerLen)
	copy(h[0:3], signature[:])
	h[3] = d.DestSocket
	h[4] = d.SrcSocket
	h[5] = byte(d.Type)
	binary.BigEndian.PutUint16(h[6:8], uint16(len(d.Payload)))
	h[8] = d.XID
	return h
}

// Framer turns a raw byte stream into a sequence of SLP datagrams.
//
// The first frame may be preceded by arbitrary garbage (the framer scans
// forward for the signature, preserving any partial prefix across read
// boundaries). Every subsequent frame must begin immediately after the
// previous frame's CRC; any desync past that point is a fatal
// ErrMalformedFrame, not something the framer resynchronizes from.
type Framer struct {
	r      *bufio.Reader
	w      io.Writer
	synced bool
	log    *logrus.Entry
}

// NewFramer wraps rw for SLP framing. logger may be nil, in which case the
// standard logger is used.
func NewFramer(rw io.ReadWriter, logger *logrus.Entry) *Framer {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Framer{r: bufio.NewReader(rw), w: rw, log: logger.WithField("component", "slp")}
}

// ReadOne reads and validates the next datagram from the stream.
func (f *Framer) ReadOne() (*Datagram, error) {
	if err := f.syncToSignature(); err != nil {
		return nil, err
	}

	rest := make([]byte, headerLen-3)
	if _, err := io.ReadFull(f.r, rest); err != nil {
		return nil, err
	}
	header := append(append([]byte{}, signature[:]...), rest...)

	checksumByte, err := f.r.ReadByte()
	if err != nil {
		return nil, err
	}
	if crc.HeaderChecksum(header) != checksumByte {
		f.log.Warn("header checksum mismatch")
		return nil, ErrMalformedFrame
	}
	fullHeader := append(header, checksumByte)

	payloadLen := binary.BigEndian.Uint16(header[6:8])
	payload := make([]byte, payloadLen)
	if _, err := io.ReadFull(f.r, payload); err != nil {
		return nil, err
	}

	crcBytes := make([]byte, 2)
	if _, err := io.ReadFull(f.r, crcBytes); err != nil {
		return nil, err
	}
	wantCRC := binary.BigEndian.Uint16(crcBytes)
	gotCRC := crc.Compute(append(append([]byte{}, fullHeader...), payload...))
	if wantCRC != gotCRC {
		f.log.Warn("crc mismatch")
		return nil, ErrMalformedFrame
	}

	f.synced = true
	return &Datagram{
		DestSocket: header[3],
		SrcSocket:  header[4],
		Type:       Type(header[5]),
		XID:        header[8],
		Payload:    payload,
	}, nil
}

// syncToSignature consumes bytes until the 3-byte signature has just been
// read. Before the first successful frame it scans forward over garbage;
// once synced, a mismatch here means the stream desynchronized and is a
// fatal error.
func (f *Framer) syncToSignature() error {
	if f.synced {
		var got [3]byte
		if _, err := io.ReadFull(f.r, got[:]); err != nil {
			return err
		}
		if got != signature {
			f.log.Error("stream desynchronized after a previously valid frame")
			return ErrMalformedFrame
		}
		return nil
	}

	var window [3]byte
	filled := 0
	for {
		b, err := f.r.ReadByte()
		if err != nil {
			return err
		}
		if filled < 3 {
			window[filled] = b
			filled++
		} else {
			window[0], window[1], window[2] = window[1], window[2], b
		}
		if filled == 3 && window == signature {
			return nil
		}
	}
}

// WriteOne computes the header checksum and trailing CRC and writes d as a
// single SLP frame.
func (f *Framer) WriteOne(d *Datagram) error {
	header := d.header()
	checksum := crc.HeaderChecksum(header)
	full := append(header, checksum)
	trailerInput := append(append([]byte{}, full...), d.Payload...)
	c := crc.Compute(trailerInput)

	buf := make([]byte, 0, len(full)+len(d.Payload)+2)
	buf = append(buf, full...)
	buf = append(buf, d.Payload...)
	buf = binary.BigEndian.AppendUint16(buf, c)

	_, err := f.w.Write(buf)
	return err
}
