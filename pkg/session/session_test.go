package session

import (
	"encoding/binary"
	"testing"

	"github.com/palmsync/hotsync/pkg/dlp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTransport replays a fixed queue of encoded DLP responses in order,
// ignoring which request triggered them — the direct analogue of the
// teacher's virtual loopback bus, scoped to the narrower dlp/transport
// interface this package depends on.
type fakeTransport struct {
	responses [][]byte
	sent      [][]byte
	closed    bool
}

func (f *fakeTransport) Send(msg []byte) (byte, error) {
	f.sent = append(f.sent, msg)
	return 1, nil
}

func (f *fakeTransport) Receive() ([]byte, byte, error) {
	resp := f.responses[0]
	f.responses = f.responses[1:]
	return resp, 1, nil
}

func (f *fakeTransport) Close() error {
	f.closed = true
	return nil
}

func sysInfoResponse() []byte {
	fixed := make([]byte, 9)
	binary.BigEndian.PutUint32(fixed[0:4], 0x01020304)
	binary.BigEndian.PutUint32(fixed[4:8], 0x00000409)
	fixed[8] = 1 // product id length
	fixed = append(fixed, 'P')

	ext := make([]byte, 8)
	ext[0], ext[1], ext[2], ext[3] = 1, 4, 1, 0
	binary.BigEndian.PutUint32(ext[4:8], 0xFFFF)

	resp := &dlp.Response{FuncID: byte(dlp.FuncReadSysInfo), Args: []dlp.Arg{
		{ID: 0x20, Data: fixed},
		{ID: 0x21, Data: ext},
	}}
	return resp.Encode()
}

func userInfoResponse() []byte {
	fixed := make([]byte, 30)
	binary.BigEndian.PutUint32(fixed[0:4], 1)
	fixed[28] = 3 // name length
	fixed[29] = 0 // password length

	resp := &dlp.Response{FuncID: byte(dlp.FuncReadUserInfo), Args: []dlp.Arg{
		{ID: 0x20, Data: fixed},
		{ID: 0x21, Data: []byte("bob")},
	}}
	return resp.Encode()
}

func okResponse(id dlp.FuncID, args ...dlp.Arg) []byte {
	return (&dlp.Response{FuncID: byte(id), Args: args}).Encode()
}

func TestHandshakeCachesSysInfoAndUserInfo(t *testing.T) {
	ft := &fakeTransport{responses: [][]byte{sysInfoResponse(), userInfoResponse()}}
	s := newSession(ft, nil)

	require.NoError(t, s.handshake())
	require.NotNil(t, s.SysInfo)
	assert.Equal(t, "P", s.SysInfo.ProductID)
	assert.Equal(t, byte(1), s.SysInfo.DLPMajor)
	require.NotNil(t, s.UserInfo)
	assert.Equal(t, uint32(1), s.UserInfo.UserID)
	assert.Equal(t, "bob", s.UserInfo.UserName)
}

func TestOpenAndCloseDatabaseTracksStats(t *testing.T) {
	ft := &fakeTransport{responses: [][]byte{
		okResponse(dlp.FuncOpenConduit),
		okResponse(dlp.FuncOpenDB, dlp.Arg{ID: 0x20, Data: []byte{9}}),
		okResponse(dlp.FuncCloseDB),
	}}
	s := newSession(ft, nil)

	handle, err := s.OpenDatabase(0, 0x80, "MemoDB")
	require.NoError(t, err)
	assert.Equal(t, byte(9), handle)
	assert.Equal(t, 1, s.Stats().DatabasesOpened)

	require.NoError(t, s.CloseDatabase(handle))
}

func TestEndIssuesEndOfSyncAndClosesTransport(t *testing.T) {
	ft := &fakeTransport{responses: [][]byte{okResponse(dlp.FuncEndOfSync)}}
	s := newSession(ft, nil)
	s.AddRecordsTransferred(5)
	s.RecordSyncFailures("MemoDB", 2)

	stats, err := s.End(0)
	require.NoError(t, err)
	assert.True(t, ft.closed)
	assert.Equal(t, 5, stats.RecordsTransferred)
	assert.Equal(t, 2, stats.Failures["MemoDB"])
}

func TestRecordSyncFailuresIgnoresZero(t *testing.T) {
	s := newSession(&fakeTransport{}, nil)
	s.RecordSyncFailures("MemoDB", 0)
	assert.Empty(t, s.Stats().Failures)
}
