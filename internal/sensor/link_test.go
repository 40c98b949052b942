// internal/sensor/link_test.go
package sensor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rwindey/a02yyuw-mqtt/internal/frame"
	"github.com/rwindey/a02yyuw-mqtt/internal/status"
)

func TestReadFrame_Aligned(t *testing.T) {
	port := &ScriptedPort{}
	f := frame.Encode(300)
	port.Data.Write(f[:])

	link := NewLink(port)
	got, err := link.ReadFrame(100 * time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, f, got)
}

func TestReadFrame_ResyncsPastGarbage(t *testing.T) {
	port := &ScriptedPort{}
	port.Data.Write([]byte{0x12, 0x00, 0xAB}) // mid-frame garbage
	f := frame.Encode(1234)
	port.Data.Write(f[:])

	link := NewLink(port)
	got, err := link.ReadFrame(100 * time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, f, got)
}

func TestReadFrame_ByteAtATimeDelivery(t *testing.T) {
	port := &ScriptedPort{ChunkSize: 1}
	f := frame.Encode(4500)
	port.Data.Write(f[:])

	link := NewLink(port)
	got, err := link.ReadFrame(100 * time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, f, got)
}

func TestReadFrame_Timeout(t *testing.T) {
	link := NewLink(&ScriptedPort{})
	_, err := link.ReadFrame(20 * time.Millisecond)
	assert.ErrorIs(t, err, ErrReadTimeout)
}

func TestReadFrame_PartialFrame(t *testing.T) {
	port := &ScriptedPort{}
	port.Data.Write([]byte{frame.Header, 0x01}) // header + one byte, then silence

	link := NewLink(port)
	_, err := link.ReadFrame(20 * time.Millisecond)
	assert.ErrorIs(t, err, ErrPartialFrame)
}

func TestReadFrame_AfterClose(t *testing.T) {
	port := &ScriptedPort{}
	link := NewLink(port)
	require.NoError(t, link.Close())

	_, err := link.ReadFrame(20 * time.Millisecond)
	assert.ErrorIs(t, err, ErrClosed)
	assert.Equal(t, status.LinkClosed, link.State())
	assert.True(t, port.Closed)
}

func TestClose_Idempotent(t *testing.T) {
	link := NewLink(&ScriptedPort{})
	require.NoError(t, link.Close())
	require.NoError(t, link.Close())
}
