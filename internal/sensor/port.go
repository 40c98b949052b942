// internal/sensor/port.go
package sensor

import (
	"io"
	"time"

	"go.bug.st/serial"
)

// Port is the minimal serial-port surface the link needs.
// Satisfied by go.bug.st/serial.Port; mocked in tests.
type Port interface {
	io.ReadWriteCloser
	// SetReadTimeout bounds the next Read calls. A timed-out Read returns
	// n == 0 with a nil error.
	SetReadTimeout(timeout time.Duration) error
}

// Open opens the sensor's serial device. Failure here is fatal at startup:
// the process must not run without its sensor.
func Open(path string, baudRate int) (*Link, error) {
	mode := &serial.Mode{
		BaudRate: baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	port, err := serial.Open(path, mode)
	if err != nil {
		return nil, err
	}

	return NewLink(port), nil
}
