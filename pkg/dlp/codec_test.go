package dlp

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeArgsConcreteByteSequence(t *testing.T) {
	req := &Request{
		FuncID: 0x10,
		Args: []Arg{
			{ID: 0x20, Data: []byte{0x42}},
			{ID: 0x21, Data: bytes.Repeat([]byte{0x00}, 300)},
		},
	}
	encoded := req.Encode()

	want := []byte{0x10, 2, 0x20, 0x01, 0x42, 0xA1, 0x00, 0x01, 0x2C}
	want = append(want, bytes.Repeat([]byte{0x00}, 300)...)
	assert.Equal(t, want, encoded)
}

func TestResponseWithZeroArgcAndNonzeroErrCodeParses(t *testing.T) {
	resp := &Response{FuncID: 0x10, ErrCode: ErrNotFound}
	raw := resp.Encode()

	out, err := DecodeResponse(raw, 0x10)
	require.NoError(t, err)
	assert.Equal(t, ErrNotFound, out.ErrCode)
	assert.Empty(t, out.Args)
}

func TestResponseWithArgsAndNonzeroErrCodeRejected(t *testing.T) {
	raw := []byte{0x90, 1, 0x00, 0x05, 0x20, 0x01, 0x42}
	_, err := DecodeResponse(raw, 0x10)
	assert.ErrorIs(t, err, ErrArgShapeMismatch)
}

func TestFuncIDMismatchRejected(t *testing.T) {
	resp := &Response{FuncID: 0x11, ErrCode: ErrNone}
	raw := resp.Encode()
	_, err := DecodeResponse(raw, 0x10)
	assert.ErrorIs(t, err, ErrProtocolMismatch)
}

func TestArgRoundTrip(t *testing.T) {
	args := []Arg{
		{ID: 0x20, Data: []byte("short")},
		{ID: 0x21, Data: bytes.Repeat([]byte{0xAB}, 70000)}, // forces LONG form
	}
	encoded := EncodeArgs(args)
	decoded, err := DecodeArgs(encoded, len(args))
	require.NoError(t, err)
	require.Len(t, decoded, 2)
	assert.Equal(t, args[0].Data, decoded[0].Data)
	assert.Equal(t, args[1].Data, decoded[1].Data)
}

func TestDateTimeZeroMapsToEpoch(t *testing.T) {
	got, err := DecodeDateTime(EncodeDateTime(time.Time{}))
	require.NoError(t, err)
	assert.Equal(t, 1904, got.Year())
}

func TestDateTimeRoundTrip(t *testing.T) {
	in := time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC)
	out, err := DecodeDateTime(EncodeDateTime(in))
	require.NoError(t, err)
	assert.Equal(t, in.Year(), out.Year())
	assert.Equal(t, in.Month(), out.Month())
	assert.Equal(t, in.Day(), out.Day())
	assert.Equal(t, in.Hour(), out.Hour())
	assert.Equal(t, in.Minute(), out.Minute())
}
