package transport

import (
	"net"
	"testing"

	"github.com/palmsync/hotsync/pkg/netsync"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTCPRoundTrip(t *testing.T) {
	ln, err := ListenTCP("127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	addr := ln.ln.Addr().String()

	serverDone := make(chan error, 1)
	serverTransportCh := make(chan Transport, 1)
	go func() {
		tr, err := ln.Accept()
		serverTransportCh <- tr
		serverDone <- err
	}()

	clientConn, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	require.NoError(t, netsync.ClientHandshake(clientConn))

	require.NoError(t, <-serverDone)
	serverTransport := <-serverTransportCh
	require.NotNil(t, serverTransport)
	defer serverTransport.Close()

	clientFramer := netsync.NewFramer(clientConn)
	done := make(chan error, 1)
	go func() {
		_, err := serverTransport.Send([]byte("ping"))
		done <- err
	}()

	frame, err := clientFramer.ReadOne()
	require.NoError(t, err)
	require.NoError(t, <-done)
	assert.Equal(t, []byte("ping"), frame.Payload)
}
