package fifo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteReadRoundTrip(t *testing.T) {
	f := New(8)
	n := f.Write([]byte{1, 2, 3, 4}, nil)
	assert.Equal(t, 4, n)
	assert.Equal(t, 4, f.Occupied())

	out := make([]byte, 4)
	got := f.Read(out)
	assert.Equal(t, 4, got)
	assert.Equal(t, []byte{1, 2, 3, 4}, out)
	assert.Equal(t, 0, f.Occupied())
}

func TestWriteStopsWhenFull(t *testing.T) {
	f := New(4) // 3 usable bytes
	n := f.Write([]byte{1, 2, 3, 4, 5}, nil)
	assert.Equal(t, 3, n)
	assert.Equal(t, 0, f.Space())
}

func TestWrapsAround(t *testing.T) {
	f := New(4)
	f.Write([]byte{1, 2, 3}, nil)
	out := make([]byte, 2)
	f.Read(out)
	n := f.Write([]byte{4, 5}, nil)
	assert.Equal(t, 2, n)
	rest := make([]byte, 3)
	got := f.Read(rest)
	assert.Equal(t, 3, got)
	assert.Equal(t, []byte{3, 4, 5}, rest)
}
