package padp

import (
	"bytes"
	"errors"
	"time"

	"github.com/palmsync/hotsync/internal/fifo"
	"github.com/palmsync/hotsync/pkg/slp"
	"github.com/sirupsen/logrus"
)

// FragmentSize caps each DATA fragment at 512 bytes rather than the
// protocol's theoretical 1024-byte maximum, trading a few extra round
// trips for tighter ACK latency under interleaved traffic (spec.md
// §9, open question (a)).
const FragmentSize = 512

// MaxAttempts is the number of times a fragment is (re)transmitted before
// the message send fails with ErrRetryExhausted.
const MaxAttempts = 10

// DefaultAckTimeout is how long Send waits for an ACK before retransmitting.
const DefaultAckTimeout = 2000 * time.Millisecond

// MaxMessageSize is the largest message PADP will fragment.
const MaxMessageSize = 64 * 1024

var (
	ErrOutOfOrderFragment = errors.New("padp: out-of-order fragment")
	ErrRetryExhausted     = errors.New("padp: retry budget exhausted")
	ErrMessageTooLarge    = errors.New("padp: message exceeds 64 KiB")
	ErrAborted            = errors.New("padp: peer aborted transfer")
)

// Transport turns a slp.Framer into a reliable message channel. It is not
// safe for concurrent use: per spec.md §5, a connection carries at most
// one outstanding request at a time.
type Transport struct {
	framer     *slp.Framer
	log        *logrus.Entry
	ackTimeout time.Duration
	nextXID    byte

	// Receive-side dedup: the most recently ACKed DATA fragment's raw
	// encoded bytes, so a retransmit that missed our ACK is recognized
	// and re-ACKed without being delivered twice.
	lastAckedXID  byte
	lastAckedRaw  []byte
	haveLastAcked bool

	// A DATA fragment that arrived while Send was awaiting an ACK (the
	// peer's reply lost our ACK window) is treated as an implicit ACK
	// and stashed here for the next Receive call on the same xid.
	pending *pendingFragment
}

type pendingFragment struct {
	xid byte
	pd  *Datagram
}

// NewTransport wraps framer for reliable messaging. logger may be nil.
func NewTransport(framer *slp.Framer, logger *logrus.Entry) *Transport {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Transport{
		framer:     framer,
		log:        logger.WithField("component", "padp"),
		ackTimeout: DefaultAckTimeout,
		nextXID:    1,
	}
}

// SetAckTimeout overrides DefaultAckTimeout, mainly for tests.
func (t *Transport) SetAckTimeout(d time.Duration) { t.ackTimeout = d }

// allocXID returns the next transaction id in 1..=254, wrapping around
// (0 and 255 are reserved; 255 is the CMP handshake sentinel).
func (t *Transport) allocXID() byte {
	xid := t.nextXID
	if t.nextXID == 254 {
		t.nextXID = 1
	} else {
		t.nextXID++
	}
	return xid
}

// Send fragments msg and reliably delivers it, returning the xid used so
// the caller can correlate a response carrying the same xid.
func (t *Transport) Send(msg []byte) (byte, error) {
	if len(msg) > MaxMessageSize {
		return 0, ErrMessageTooLarge
	}
	xid := t.allocXID()
	return xid, t.sendWithXID(xid, msg)
}

// SendReply sends msg using an explicit xid, for the CMP handshake's
// xid=0xFF reply and for a DLP server replying with the request's xid.
func (t *Transport) SendReply(xid byte, msg []byte) error {
	return t.sendWithXID(xid, msg)
}

func (t *Transport) sendWithXID(xid byte, msg []byte) error {
	total := uint32(len(msg))
	longForm := total > 0xFFFF
	delivered := uint32(0)

	fragments := splitFragments(msg, FragmentSize)
	if len(fragments) == 0 {
		fragments = [][]byte{{}}
	}

	for i, frag := range fragments {
		first := i == 0
		last := i == len(fragments)-1
		sizeOrOffset := delivered
		if first {
			sizeOrOffset = total
		}
		dg := &Datagram{
			Type:         TypeData,
			First:        first,
			Last:         last,
			LongForm:     longForm,
			SizeOrOffset: sizeOrOffset,
			Data:         frag,
		}

		if err := t.sendFragmentWithRetry(xid, dg); err != nil {
			return err
		}
		delivered += uint32(len(frag))
	}
	return nil
}

func splitFragments(msg []byte, size int) [][]byte {
	var out [][]byte
	for len(msg) > 0 {
		n := size
		if n > len(msg) {
			n = len(msg)
		}
		out = append(out, msg[:n])
		msg = msg[n:]
	}
	return out
}

// sendFragmentWithRetry transmits dg under xid, retrying up to MaxAttempts
// times until a matching ACK arrives (or is implied by an incoming DATA
// fragment under the same xid).
func (t *Transport) sendFragmentWithRetry(xid byte, dg *Datagram) error {
	slpDg := &slp.Datagram{Type: slp.TypePADP, XID: xid}

	for attempt := 0; attempt < MaxAttempts; attempt++ {
		slpDg.Payload = dg.Encode()
		if err := t.framer.WriteOne(slpDg); err != nil {
			return err
		}

		ok, err := t.awaitAck(xid, dg.SizeOrOffset)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		t.log.WithFields(logrus.Fields{"xid": xid, "attempt": attempt + 1}).Warn("ack timeout, retransmitting fragment")
	}
	return ErrRetryExhausted
}

// awaitAck blocks until a matching ACK, an implicit ACK (peer DATA with
// the same xid, stashed for the next Receive), or the ACK timeout.
func (t *Transport) awaitAck(xid byte, sizeOrOffset uint32) (bool, error) {
	deadline := time.Now().Add(t.ackTimeout)
	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return false, nil
		}
		d, pd, err := t.readPADPWithDeadline(deadline)
		if err == errTimedOut {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		if d == nil {
			continue // dropped (loopback/tickle)
		}
		switch pd.Type {
		case TypeAck:
			if d.XID == xid && pd.SizeOrOffset == sizeOrOffset {
				return true, nil
			}
		case TypeData:
			if d.XID == xid {
				t.pending = &pendingFragment{xid: xid, pd: pd}
				return true, nil
			}
		case TypeAbort:
			return false, ErrAborted
		}
	}
}

var errTimedOut = errors.New("padp: internal timeout sentinel")

// readPADPWithDeadline reads SLP datagrams until one carrying a PADP
// payload is found, silently dropping SLP-level LOOPBACK frames and
// PADP-level TICKLE frames, or the deadline passes.
//
// The underlying framer has no native read deadline; callers run over an
// in-memory or already-deadlined io.Reader in tests, and production
// transports (pkg/transport) apply a deadline at the net.Conn/serial-port
// level before bytes ever reach the framer.
func (t *Transport) readPADPWithDeadline(deadline time.Time) (*slp.Datagram, *Datagram, error) {
	if time.Now().After(deadline) {
		return nil, nil, errTimedOut
	}
	d, err := t.framer.ReadOne()
	if err != nil {
		return nil, nil, err
	}
	if d.Type == slp.TypeLoopback {
		return nil, nil, nil
	}
	if d.Type != slp.TypePADP {
		return nil, nil, nil
	}
	pd, err := Decode(d.Payload)
	if err != nil {
		return nil, nil, err
	}
	if pd.Type == TypeTickle {
		return nil, nil, nil
	}
	return d, pd, nil
}

// Receive reassembles the next message. If expectXID is non-nil, only
// fragments carrying that xid are accepted (others are dropped); this is
// used when awaiting a DLP response. If nil, the xid of the first DATA
// fragment seen is adopted, used by the CMP handshake to read the
// device's unsolicited first datagram.
func (t *Transport) Receive(expectXID *byte) ([]byte, byte, error) {
	var ring *fifo.Fifo
	var xid byte
	var total uint32
	haveTotal := false
	delivered := uint32(0)

	drain := func() []byte {
		out := make([]byte, ring.Occupied())
		ring.Read(out)
		return out
	}

	// consume reports whether pd's bytes were added to the message; a
	// dropped fragment (foreign xid or already-ACKed retransmit) is not.
	consume := func(rxXID byte, pd *Datagram) (bool, error) {
		if t.haveLastAcked && t.lastAckedXID == rxXID && bytes.Equal(pd.Encode(), t.lastAckedRaw) {
			t.ackFragment(rxXID, pd)
			return false, nil // device retransmit of an already-ACKed fragment
		}
		if !haveTotal {
			if !pd.First {
				return false, ErrOutOfOrderFragment
			}
			total = pd.SizeOrOffset
			haveTotal = true
			xid = rxXID
			// Capacity is total+1: Fifo reserves one slot to distinguish
			// full from empty, so usable space is exactly total bytes.
			ring = fifo.New(int(total) + 1)
		} else {
			if rxXID != xid {
				return false, nil // not part of this message; drop
			}
			if pd.SizeOrOffset != delivered {
				return false, ErrOutOfOrderFragment
			}
		}
		ring.Write(pd.Data, nil)
		delivered += uint32(len(pd.Data))
		t.ackFragment(xid, pd)
		t.lastAckedXID = xid
		t.lastAckedRaw = pd.Encode()
		t.haveLastAcked = true
		return true, nil
	}

	if t.pending != nil && (expectXID == nil || t.pending.xid == *expectXID) {
		p := t.pending
		t.pending = nil
		added, err := consume(p.xid, p.pd)
		if err != nil {
			return nil, 0, err
		}
		if added && p.pd.Last {
			return drain(), xid, nil
		}
	}

	for {
		d, pd, err := t.framer.ReadOne()
		if err != nil {
			return nil, 0, err
		}
		if d.Type == slp.TypeLoopback || d.Type != slp.TypePADP {
			continue
		}
		parsed, err := Decode(d.Payload)
		if err != nil {
			return nil, 0, err
		}
		pd = parsed
		switch pd.Type {
		case TypeTickle:
			continue
		case TypeAbort:
			return nil, 0, ErrAborted
		case TypeAck:
			continue // stray ack, not relevant to a Receive call
		case TypeData:
			if expectXID != nil && haveTotal == false && d.XID != *expectXID {
				continue
			}
			added, err := consume(d.XID, pd)
			if err != nil {
				return nil, 0, err
			}
			if added && pd.Last {
				return drain(), xid, nil
			}
		}
	}
}

// ackFragment sends a PADP ACK mirroring the received fragment's
// SizeOrOffset and SLP xid.
func (t *Transport) ackFragment(xid byte, pd *Datagram) error {
	ack := &Datagram{Type: TypeAck, LongForm: pd.LongForm, SizeOrOffset: pd.SizeOrOffset}
	return t.framer.WriteOne(&slp.Datagram{Type: slp.TypePADP, XID: xid, Payload: ack.Encode()})
}
