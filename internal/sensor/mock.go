// internal/sensor/mock.go
package sensor

import (
	"bytes"
	"sync"
	"time"
)

// ScriptedPort implements Port with scripted behaviour for testing.
// Read drains Data one chunk at a time; once drained, Read reports n == 0,
// mimicking a driver-level read timeout.
type ScriptedPort struct {
	mu sync.Mutex

	// Data holds the bytes the "sensor" will emit.
	Data bytes.Buffer

	// ChunkSize caps how many bytes each Read returns. 0 means no cap.
	ChunkSize int

	// ReadErr, if set, is returned by every Read.
	ReadErr error

	// CloseErr, if set, is returned by Close.
	CloseErr error

	// Closed records whether Close was called.
	Closed bool

	// ReadCalls counts Read invocations.
	ReadCalls int

	// LastTimeout records the most recent SetReadTimeout value.
	LastTimeout time.Duration
}

func (p *ScriptedPort) Read(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.ReadCalls++
	if p.ReadErr != nil {
		return 0, p.ReadErr
	}
	if p.Data.Len() == 0 {
		return 0, nil // driver timeout
	}
	limit := len(b)
	if p.ChunkSize > 0 && p.ChunkSize < limit {
		limit = p.ChunkSize
	}
	return p.Data.Read(b[:limit])
}

func (p *ScriptedPort) Write(b []byte) (int, error) {
	return len(b), nil
}

func (p *ScriptedPort) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Closed = true
	return p.CloseErr
}

func (p *ScriptedPort) SetReadTimeout(timeout time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.LastTimeout = timeout
	return nil
}
