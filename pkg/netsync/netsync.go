// Package netsync implements the alternate NetSync framing used over TCP
// and USB bulk endpoints in place of SLP/PADP: a fixed header with no
// per-frame ACK, CRC, or fragmentation, preceded once per connection by a
// fixed three-step magic-byte handshake.
package netsync

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// constByte is the fixed first header byte of every NetSync frame.
const constByte = 0x01

const headerLen = 6 // const(1) + xid(1) + payload_len(4)

var ErrMalformedFrame = errors.New("netsync: malformed frame")

// Frame is one NetSync-framed message.
type Frame struct {
	XID     byte
	Payload []byte
}

// Framer reads and writes NetSync frames over a stream transport (a TCP
// socket or a USB bulk endpoint pair).
type Framer struct {
	r io.Reader
	w io.Writer
}

func NewFramer(rw io.ReadWriter) *Framer {
	return &Framer{r: rw, w: rw}
}

func (f *Framer) ReadOne() (*Frame, error) {
	header := make([]byte, headerLen)
	if _, err := io.ReadFull(f.r, header); err != nil {
		return nil, err
	}
	if header[0] != constByte {
		return nil, fmt.Errorf("%w: bad const byte 0x%02x", ErrMalformedFrame, header[0])
	}
	payloadLen := binary.BigEndian.Uint32(header[2:6])
	payload := make([]byte, payloadLen)
	if _, err := io.ReadFull(f.r, payload); err != nil {
		return nil, err
	}
	return &Frame{XID: header[1], Payload: payload}, nil
}

func (f *Framer) WriteOne(frame *Frame) error {
	header := make([]byte, headerLen, headerLen+len(frame.Payload))
	header[0] = constByte
	header[1] = frame.XID
	binary.BigEndian.PutUint32(header[2:6], uint32(len(frame.Payload)))
	header = append(header, frame.Payload...)
	_, err := f.w.Write(header)
	return err
}

// request1Len, response1Len are the declared lengths of the first two
// handshake legs (spec.md §6). Only the leading bytes of each are given
// literally; the remainder is reserved/zero-filled, matching how the
// handshake is treated as an opaque capability exchange by everything
// downstream of it.
const (
	request1Len  = 22
	response1Len = 50
	request2Len  = 6 // only the literal prefix is specified; body length is
	// otherwise unconstrained, so the minimal 6-byte prefix is read and
	// the handshake proceeds without requiring a fixed total length here.
	response2Len = 6
)

var (
	request1Prefix  = []byte{0x90, 0x01, 0x00, 0x00}
	response1Prefix = []byte{0x12, 0x01}
	request2Prefix  = []byte{0x92, 0x01}
	response2Prefix = []byte{0x13, 0x01}
	request3        = []byte{0x93, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
)

// ErrHandshakeMismatch is returned when a peer's handshake message does not
// begin with the literal prefix mandated by spec.md §6.
var ErrHandshakeMismatch = errors.New("netsync: handshake prefix mismatch")

// ServerHandshake runs the host side of the three-step magic-byte
// handshake that must precede every NetSync connection: read request 1,
// write response 1, read request 2, write response 2, read request 3.
// After it returns without error, rw carries ordinary framed DLP traffic.
func ServerHandshake(rw io.ReadWriter) error {
	req1 := make([]byte, request1Len)
	if _, err := io.ReadFull(rw, req1); err != nil {
		return err
	}
	if !hasPrefix(req1, request1Prefix) {
		return fmt.Errorf("%w: request 1", ErrHandshakeMismatch)
	}

	resp1 := make([]byte, response1Len)
	copy(resp1, response1Prefix)
	if _, err := rw.Write(resp1); err != nil {
		return err
	}

	req2 := make([]byte, request2Len)
	if _, err := io.ReadFull(rw, req2); err != nil {
		return err
	}
	if !hasPrefix(req2, request2Prefix) {
		return fmt.Errorf("%w: request 2", ErrHandshakeMismatch)
	}

	resp2 := make([]byte, response2Len)
	copy(resp2, response2Prefix)
	if _, err := rw.Write(resp2); err != nil {
		return err
	}

	req3 := make([]byte, len(request3))
	if _, err := io.ReadFull(rw, req3); err != nil {
		return err
	}
	for i, b := range request3 {
		if req3[i] != b {
			return fmt.Errorf("%w: request 3", ErrHandshakeMismatch)
		}
	}
	return nil
}

// ClientHandshake runs the device/client side of the same handshake, for
// tests and for the USB/TCP client role.
func ClientHandshake(rw io.ReadWriter) error {
	req1 := make([]byte, request1Len)
	copy(req1, request1Prefix)
	if _, err := rw.Write(req1); err != nil {
		return err
	}

	resp1 := make([]byte, response1Len)
	if _, err := io.ReadFull(rw, resp1); err != nil {
		return err
	}
	if !hasPrefix(resp1, response1Prefix) {
		return fmt.Errorf("%w: response 1", ErrHandshakeMismatch)
	}

	req2 := make([]byte, request2Len)
	copy(req2, request2Prefix)
	if _, err := rw.Write(req2); err != nil {
		return err
	}

	resp2 := make([]byte, response2Len)
	if _, err := io.ReadFull(rw, resp2); err != nil {
		return err
	}
	if !hasPrefix(resp2, response2Prefix) {
		return fmt.Errorf("%w: response 2", ErrHandshakeMismatch)
	}

	_, err := rw.Write(request3)
	return err
}

func hasPrefix(b, prefix []byte) bool {
	if len(b) < len(prefix) {
		return false
	}
	for i, p := range prefix {
		if b[i] != p {
			return false
		}
	}
	return true
}
