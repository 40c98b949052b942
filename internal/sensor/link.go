// internal/sensor/link.go
//
// Package sensor owns the serial connection to the ranging sensor and reads
// frame-sized byte windows from it, resynchronizing on misaligned streams.
package sensor

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rwindey/a02yyuw-mqtt/internal/frame"
	"github.com/rwindey/a02yyuw-mqtt/internal/status"
)

var (
	// ErrReadTimeout means no aligned frame arrived within the timeout.
	ErrReadTimeout = errors.New("sensor: read timeout, no frame available")

	// ErrPartialFrame means a header arrived but the frame tail did not.
	ErrPartialFrame = errors.New("sensor: partial frame before timeout")

	// ErrClosed means the link was closed.
	ErrClosed = errors.New("sensor: link closed")
)

// Link is the open serial connection. One instance per process.
type Link struct {
	mu    sync.Mutex
	port  Port
	state atomic.Int32
}

// NewLink wraps an already-open port.
func NewLink(port Port) *Link {
	l := &Link{port: port}
	l.state.Store(int32(status.LinkOpen))
	return l
}

// State reports the link connection state.
func (l *Link) State() status.Link {
	return status.Link(l.state.Load())
}

// ReadFrame reads exactly one frame-length window within the timeout.
//
// The byte stream may be mid-frame when reading starts, so the link scans
// forward for the header byte and discards everything before it. Both
// ErrReadTimeout and ErrPartialFrame are recoverable: the caller just tries
// again on the next cycle.
func (l *Link) ReadFrame(timeout time.Duration) ([frame.Size]byte, error) {
	var buf [frame.Size]byte

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.State() != status.LinkOpen {
		return buf, ErrClosed
	}

	deadline := time.Now().Add(timeout)
	have := 0

	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			if have > 0 {
				return buf, ErrPartialFrame
			}
			return buf, ErrReadTimeout
		}
		if err := l.port.SetReadTimeout(remaining); err != nil {
			return buf, fmt.Errorf("sensor: set read timeout: %w", err)
		}

		if have == 0 {
			// Scan for the header one byte at a time; discard garbage.
			var one [1]byte
			n, err := l.port.Read(one[:])
			if err != nil {
				return buf, fmt.Errorf("sensor: read: %w", err)
			}
			if n == 0 {
				return buf, ErrReadTimeout
			}
			if one[0] != frame.Header {
				continue
			}
			buf[0] = one[0]
			have = 1
			continue
		}

		n, err := l.port.Read(buf[have:])
		if err != nil {
			return buf, fmt.Errorf("sensor: read: %w", err)
		}
		if n == 0 {
			return buf, ErrPartialFrame
		}
		have += n
		if have == frame.Size {
			return buf, nil
		}
	}
}

// Close releases the OS handle. Safe to call mid-read: reads are bounded by
// their timeout and the driver unblocks on close.
func (l *Link) Close() error {
	if !l.state.CompareAndSwap(int32(status.LinkOpen), int32(status.LinkClosed)) {
		return nil
	}
	return l.port.Close()
}
