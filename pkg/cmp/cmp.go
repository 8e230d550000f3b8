// Package cmp implements the Connection Management Protocol: the baud-rate
// and feature negotiation handshake run once, over PADP, at the start of a
// serial HotSync session.
package cmp

import (
	"encoding/binary"
	"fmt"

	"github.com/palmsync/hotsync/pkg/padp"
	"github.com/sirupsen/logrus"
)

// HandshakeXID is the fixed xid used for the host's INIT reply (spec.md
// §4.3: "0xFF is the CMP handshake sentinel").
const HandshakeXID = 0xFF

type Type uint8

const (
	TypeWakeUp Type = 0
	TypeInit   Type = 1
	TypeAbort  Type = 2
)

const wireLen = 10 // type(1) + flags(1) + major(1) + minor(1) + pad(2) + baud(4)

const (
	flagChangeBaud        = 1 << 7
	flagLongFormSupported = 1 << 6
)

// Datagram is a CMP handshake message.
type Datagram struct {
	Type              Type
	ChangeBaud        bool
	LongFormSupported bool
	MajorVersion      byte
	MinorVersion      byte
	BaudRate          uint32
}

func (d *Datagram) Encode() []byte {
	buf := make([]byte, wireLen)
	buf[0] = byte(d.Type)
	var flags byte
	if d.ChangeBaud {
		flags |= flagChangeBaud
	}
	if d.LongFormSupported {
		flags |= flagLongFormSupported
	}
	buf[1] = flags
	buf[2] = d.MajorVersion
	buf[3] = d.MinorVersion
	binary.BigEndian.PutUint32(buf[6:10], d.BaudRate)
	return buf
}

func Decode(raw []byte) (*Datagram, error) {
	if len(raw) < wireLen {
		return nil, fmt.Errorf("cmp: datagram too short: %d bytes", len(raw))
	}
	d := &Datagram{
		Type:              Type(raw[0]),
		ChangeBaud:        raw[1]&flagChangeBaud != 0,
		LongFormSupported: raw[1]&flagLongFormSupported != 0,
		MajorVersion:      raw[2],
		MinorVersion:      raw[3],
		BaudRate:          binary.BigEndian.Uint32(raw[6:10]),
	}
	return d, nil
}

// BaudSwitcher is the narrow collaborator that actually changes the
// physical line rate once the host and device have agreed on one. The
// concrete implementation lives in pkg/transport, wired to termios ioctls.
type BaudSwitcher interface {
	SetBaud(rate uint32) error
}

// Result is the outcome of a successful handshake.
type Result struct {
	NegotiatedBaud uint32
	DeviceMajor    byte
	DeviceMinor    byte
}

// Negotiate runs the host side of the CMP handshake over t: it waits for
// the device's WAKEUP, discarding extra WAKEUPs that arrive before our
// reply is ACKed, replies with INIT at min(device baud, hostMaxBaud), and
// switches the physical baud rate only after that reply has been ACKed.
//
// A hostMaxBaud of 0 means "accept whatever the device proposes".
func Negotiate(t *padp.Transport, switcher BaudSwitcher, hostMaxBaud uint32, log *logrus.Entry) (*Result, error) {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	log = log.WithField("component", "cmp")

	var wake *Datagram
	for {
		msg, _, err := t.Receive(nil)
		if err != nil {
			return nil, err
		}
		d, err := Decode(msg)
		if err != nil {
			return nil, err
		}
		if d.Type != TypeWakeUp {
			log.WithField("type", d.Type).Warn("discarding non-WAKEUP datagram before handshake reply")
			continue
		}
		wake = d
		break
	}

	negotiated := wake.BaudRate
	if hostMaxBaud != 0 && negotiated > hostMaxBaud {
		negotiated = hostMaxBaud
	}

	reply := &Datagram{
		Type:              TypeInit,
		ChangeBaud:        negotiated != 9600,
		LongFormSupported: true,
		BaudRate:          negotiated,
	}
	if err := t.SendReply(HandshakeXID, reply.Encode()); err != nil {
		return nil, err
	}

	if reply.ChangeBaud && switcher != nil {
		if err := switcher.SetBaud(negotiated); err != nil {
			return nil, fmt.Errorf("cmp: switching baud to %d: %w", negotiated, err)
		}
	}

	log.WithField("baud", negotiated).Info("cmp handshake complete")
	return &Result{
		NegotiatedBaud: negotiated,
		DeviceMajor:    wake.MajorVersion,
		DeviceMinor:    wake.MinorVersion,
	}, nil
}
