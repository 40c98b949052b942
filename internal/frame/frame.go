// internal/frame/frame.go
//
// Package frame implements the A02YYUW 4-byte wire format.
//
// A frame is [header, high, low, checksum] with header fixed at 0xFF and
// checksum = (header + high + low) mod 256. The distance is the big-endian
// 16-bit value of the high/low bytes, in millimetres.
package frame

import "errors"

const (
	// Size is the fixed frame length in bytes.
	Size = 4

	// Header is the byte that starts every frame.
	Header = 0xFF
)

var (
	ErrMisaligned       = errors.New("frame: first byte is not the header")
	ErrChecksumMismatch = errors.New("frame: checksum mismatch")
)

// Decode validates a frame-sized byte window and returns the distance in mm.
// Pure function: no side effects, no partial results on error.
func Decode(b [Size]byte) (uint16, error) {
	if b[0] != Header {
		return 0, ErrMisaligned
	}
	if checksum(b[0], b[1], b[2]) != b[3] {
		return 0, ErrChecksumMismatch
	}
	return uint16(b[1])<<8 | uint16(b[2]), nil
}

// Encode builds a valid frame for the given distance.
// Inverse of Decode; used by tests and the mock sensor.
func Encode(distanceMm uint16) [Size]byte {
	hi := byte(distanceMm >> 8)
	lo := byte(distanceMm)
	return [Size]byte{Header, hi, lo, checksum(Header, hi, lo)}
}

func checksum(header, hi, lo byte) byte {
	return byte(uint16(header) + uint16(hi) + uint16(lo))
}
