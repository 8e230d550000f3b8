// Package transport defines the shared abstraction over PADP (serial) and
// NetSync (TCP/USB) message channels, plus the concrete collaborators that
// carry bytes to and from a real device: a termios-driven serial port, a
// TCP listener, and a narrow interface for a USB bulk endpoint pair.
package transport

import (
	"io"
	"net"

	"github.com/palmsync/hotsync/pkg/cmp"
	"github.com/palmsync/hotsync/pkg/netsync"
	"github.com/palmsync/hotsync/pkg/padp"
	"github.com/palmsync/hotsync/pkg/slp"
	"github.com/sirupsen/logrus"
)

// Transport is the session-facing message channel, abstracting over
// whether the wire underneath is PADP-over-SLP (serial) or NetSync
// (TCP/USB). The DLP layer and the session orchestrator speak only this
// interface.
type Transport interface {
	// Send reliably delivers msg and returns the xid it was sent under.
	Send(msg []byte) (xid byte, err error)
	// Receive returns the next complete message and its xid.
	Receive() (msg []byte, xid byte, err error)
	Close() error
}

// padpTransport adapts a *padp.Transport (itself wrapping a *slp.Framer)
// to the Transport interface.
type padpTransport struct {
	t      *padp.Transport
	closer io.Closer
}

// NewSerial builds a PADP/SLP transport over rw, running the CMP handshake
// to agree on a baud rate before returning. rw must already be open at the
// device's default 9600 baud (spec.md §6); switcher is nil-able if baud
// switching is not supported by the underlying port.
func NewSerial(rw io.ReadWriteCloser, switcher cmp.BaudSwitcher, hostMaxBaud uint32, log *logrus.Entry) (Transport, *cmp.Result, error) {
	framer := slp.NewFramer(rw, log)
	pt := padp.NewTransport(framer, log)

	result, err := cmp.Negotiate(pt, switcher, hostMaxBaud, log)
	if err != nil {
		return nil, nil, err
	}
	return &padpTransport{t: pt, closer: rw}, result, nil
}

func (p *padpTransport) Send(msg []byte) (byte, error)  { return p.t.Send(msg) }
func (p *padpTransport) Receive() ([]byte, byte, error) { return p.t.Receive(nil) }
func (p *padpTransport) Close() error                   { return p.closer.Close() }

// netsyncTransport adapts a *netsync.Framer to the Transport interface.
type netsyncTransport struct {
	f       *netsync.Framer
	closer  io.Closer
	nextXID byte
}

// NewNetSync runs the three-step magic-byte handshake over rw (as the
// host/server side) and returns a framed transport ready for DLP traffic.
func NewNetSync(rw io.ReadWriteCloser) (Transport, error) {
	if err := netsync.ServerHandshake(rw); err != nil {
		return nil, err
	}
	return &netsyncTransport{f: netsync.NewFramer(rw), closer: rw, nextXID: 1}, nil
}

func (n *netsyncTransport) Send(msg []byte) (byte, error) {
	xid := n.nextXID
	if n.nextXID == 254 {
		n.nextXID = 1
	} else {
		n.nextXID++
	}
	if err := n.f.WriteOne(&netsync.Frame{XID: xid, Payload: msg}); err != nil {
		return 0, err
	}
	return xid, nil
}

func (n *netsyncTransport) Receive() ([]byte, byte, error) {
	frame, err := n.f.ReadOne()
	if err != nil {
		return nil, 0, err
	}
	return frame.Payload, frame.XID, nil
}

func (n *netsyncTransport) Close() error { return n.closer.Close() }

// Listener wraps a net.Listener, handing out NetSync Transports for each
// accepted connection. Port 14238 is the well-known HotSync TCP port
// (spec.md §6).
type Listener struct {
	ln net.Listener
}

const DefaultTCPPort = 14238

func ListenTCP(addr string) (*Listener, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &Listener{ln: ln}, nil
}

func (l *Listener) Accept() (Transport, error) {
	conn, err := l.ln.Accept()
	if err != nil {
		return nil, err
	}
	return NewNetSync(conn)
}

func (l *Listener) Close() error { return l.ln.Close() }

// USBEndpoints is the narrow interface a USB bulk in/out endpoint pair
// must satisfy to carry NetSync traffic. Device enumeration, vendor
// control requests, and endpoint discovery (spec.md §6) are external
// collaborator responsibilities outside this module's scope; this
// interface is the only contract the rest of the module depends on.
type USBEndpoints interface {
	io.ReadWriteCloser
}

// NewUSB wraps an already-discovered USB bulk endpoint pair running the
// NetSync stack.
func NewUSB(ep USBEndpoints) (Transport, error) {
	return NewNetSync(ep)
}
