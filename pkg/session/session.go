// Package session implements the session orchestrator (spec.md §4.8): it
// owns one connection's handshake, caches ReadSysInfo/ReadUserInfo, hands
// the connection to the caller's sync logic, and issues EndOfSync on the
// way out. Grounded on the teacher's pkg/gateway.BaseGateway: a thin
// orchestration layer over constructor-injected collaborators, with debug
// logging bracketing each step rather than its own protocol logic.
package session

import (
	"fmt"
	"io"

	"github.com/palmsync/hotsync/pkg/cmp"
	"github.com/palmsync/hotsync/pkg/dlp"
	"github.com/palmsync/hotsync/pkg/transport"
	"github.com/sirupsen/logrus"
)

// Stats is the supplemented per-session summary surfaced from End, the
// concrete-return-value analogue of spec.md §7's "nonzero count is
// surfaced to the orchestrator" rule.
type Stats struct {
	DatabasesOpened    int
	RecordsTransferred int
	// Failures maps database name to its per-database sync failure count.
	Failures map[string]int
}

// Session is one device connection, from handshake through EndOfSync.
type Session struct {
	transport transport.Transport
	client    *dlp.Client
	log       *logrus.Entry

	SysInfo  *dlp.SysInfo
	UserInfo *dlp.UserInfo

	stats Stats
}

func newSession(t transport.Transport, log *logrus.Entry) *Session {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Session{
		transport: t,
		client:    dlp.NewClient(t),
		log:       log.WithField("component", "session"),
		stats:     Stats{Failures: map[string]int{}},
	}
}

// OpenSerial runs the CMP handshake over rw, then the ReadSysInfo/
// ReadUserInfo exchange, and returns a ready Session (spec.md §4.8, §6).
func OpenSerial(rw io.ReadWriteCloser, switcher cmp.BaudSwitcher, hostMaxBaud uint32, log *logrus.Entry) (*Session, error) {
	t, _, err := transport.NewSerial(rw, switcher, hostMaxBaud, log)
	if err != nil {
		return nil, fmt.Errorf("session: serial handshake: %w", err)
	}
	return New(t, log)
}

// OpenNetSync runs the NetSync magic-byte handshake over rw (TCP or USB
// bulk endpoints), then the ReadSysInfo/ReadUserInfo exchange.
func OpenNetSync(rw io.ReadWriteCloser, log *logrus.Entry) (*Session, error) {
	t, err := transport.NewNetSync(rw)
	if err != nil {
		return nil, fmt.Errorf("session: netsync handshake: %w", err)
	}
	return New(t, log)
}

// New wraps an already-handshaken transport.Transport (e.g. one handed
// out by transport.Listener.Accept, which has already run the NetSync
// handshake) and runs the DLP-level ReadSysInfo/ReadUserInfo exchange.
func New(t transport.Transport, log *logrus.Entry) (*Session, error) {
	s := newSession(t, log)
	if err := s.handshake(); err != nil {
		t.Close()
		return nil, err
	}
	return s, nil
}

// handshake issues ReadSysInfo and ReadUserInfo and caches the results on
// s, per spec.md §4.8.
func (s *Session) handshake() error {
	s.log.Debug("issuing ReadSysInfo")
	resp, err := s.client.Execute(dlp.ReadSysInfoRequest(1, 4), nil)
	if err != nil {
		return fmt.Errorf("session: ReadSysInfo: %w", err)
	}
	info, err := dlp.ParseSysInfo(resp)
	if err != nil {
		return fmt.Errorf("session: parsing ReadSysInfo response: %w", err)
	}
	s.SysInfo = info

	s.log.Debug("issuing ReadUserInfo")
	resp, err = s.client.Execute(dlp.ReadUserInfoRequest(), nil)
	if err != nil {
		return fmt.Errorf("session: ReadUserInfo: %w", err)
	}
	user, err := dlp.ParseUserInfo(resp)
	if err != nil {
		return fmt.Errorf("session: parsing ReadUserInfo response: %w", err)
	}
	s.UserInfo = user
	s.log.WithField("user_name", user.UserName).Debug("handshake complete")
	return nil
}

// Client exposes the raw DLP client for callers that need catalog rows
// beyond the handful this package wraps directly.
func (s *Session) Client() *dlp.Client { return s.client }

// OpenDatabase marks the conduit boundary and opens name on cardNo,
// tracking it in the session's stats (spec.md §4.8, §5 "opened database
// handles are owned by the DLP session").
func (s *Session) OpenDatabase(cardNo, mode byte, name string) (byte, error) {
	if _, err := s.client.Execute(dlp.OpenConduitRequest(), nil); err != nil {
		return 0, fmt.Errorf("session: OpenConduit for %s: %w", name, err)
	}
	resp, err := s.client.Execute(dlp.OpenDBRequest(cardNo, mode, name), nil)
	if err != nil {
		return 0, fmt.Errorf("session: OpenDB %s: %w", name, err)
	}
	handle, err := dlp.ParseOpenDBResponse(resp)
	if err != nil {
		return 0, err
	}
	s.stats.DatabasesOpened++
	s.log.WithField("database", name).Debug("opened database")
	return handle, nil
}

// CloseDatabase closes a handle opened by OpenDatabase. Every open handle
// must be closed before End (spec.md §5).
func (s *Session) CloseDatabase(handle byte) error {
	_, err := s.client.Execute(dlp.CloseDBRequest(handle), nil)
	return err
}

// RecordSyncFailures accumulates name's per-database failure count into
// the session's stats; a zero count is a no-op.
func (s *Session) RecordSyncFailures(name string, count int) {
	if count == 0 {
		return
	}
	s.stats.Failures[name] += count
	s.log.WithField("database", name).WithField("failures", count).Warn("database sync finished with failures")
}

// AddRecordsTransferred adds n to the running records-transferred total.
func (s *Session) AddRecordsTransferred(n int) {
	s.stats.RecordsTransferred += n
}

// Stats returns a copy of the session's accumulated summary.
func (s *Session) Stats() Stats { return s.stats }

// End issues EndOfSync with status (0 = normal termination) and closes
// the transport, returning the accumulated Stats regardless of whether
// EndOfSync itself succeeded — a failed EndOfSync still tears the
// connection down (spec.md §7).
func (s *Session) End(status uint16) (Stats, error) {
	s.log.WithField("status", status).Debug("issuing EndOfSync")
	if _, err := s.client.Execute(dlp.EndOfSyncRequest(status), nil); err != nil {
		s.log.WithError(err).Warn("EndOfSync failed")
	}
	if err := s.transport.Close(); err != nil {
		return s.stats, fmt.Errorf("session: closing transport: %w", err)
	}
	return s.stats, nil
}
