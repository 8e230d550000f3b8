package slp

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	buf := &bytes.Buffer{}
	f := NewFramer(buf, nil)

	in := &Datagram{DestSocket: 3, SrcSocket: 3, Type: TypePADP, XID: 42, Payload: []byte("hello")}
	require.NoError(t, f.WriteOne(in))

	out, err := f.ReadOne()
	require.NoError(t, err)
	assert.Equal(t, in.DestSocket, out.DestSocket)
	assert.Equal(t, in.SrcSocket, out.SrcSocket)
	assert.Equal(t, in.Type, out.Type)
	assert.Equal(t, in.XID, out.XID)
	assert.Equal(t, in.Payload, out.Payload)
}

func TestScansPastGarbagePrefix(t *testing.T) {
	buf := &bytes.Buffer{}
	buf.Write([]byte{0x00, 0x11, 0x22, 0xBE}) // junk, including a partial signature prefix

	d := &Datagram{DestSocket: 1, SrcSocket: 2, Type: TypeSystem, XID: 7, Payload: []byte{1, 2, 3}}
	require.NoError(t, NewFramer(buf, nil).WriteOne(d))

	f := NewFramer(buf, nil)
	out, err := f.ReadOne()
	require.NoError(t, err)
	assert.Equal(t, d.Payload, out.Payload)
}

func TestDesyncAfterFirstFrameIsFatal(t *testing.T) {
	buf := &bytes.Buffer{}
	f := NewFramer(buf, nil)
	require.NoError(t, f.WriteOne(&Datagram{Type: TypePADP, Payload: []byte("a")}))
	_, err := f.ReadOne()
	require.NoError(t, err)

	buf.Write([]byte{0x01, 0x02, 0x03}) // garbage instead of the next signature
	_, err = f.ReadOne()
	assert.ErrorIs(t, err, ErrMalformedFrame)
}

func TestBadHeaderChecksumRejected(t *testing.T) {
	buf := &bytes.Buffer{}
	d := &Datagram{DestSocket: 1, SrcSocket: 2, Type: TypeSystem, XID: 9, Payload: []byte("x")}
	header := d.header()
	raw := append(append([]byte{}, header...), 0xFF) // wrong checksum byte
	raw = append(raw, d.Payload...)
	raw = append(raw, 0, 0) // CRC irrelevant, checksum fails first
	buf.Write(raw)

	f := NewFramer(buf, nil)
	_, err := f.ReadOne()
	assert.ErrorIs(t, err, ErrMalformedFrame)
}

func TestBadCRCRejected(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, NewFramer(buf, nil).WriteOne(&Datagram{Type: TypePADP, Payload: []byte("abc")}))
	raw := buf.Bytes()
	raw[len(raw)-1] ^= 0xFF // flip a bit in the trailing CRC
	corrupted := bytes.NewBuffer(raw)

	_, err := NewFramer(corrupted, nil).ReadOne()
	assert.ErrorIs(t, err, ErrMalformedFrame)
}
