// internal/measure/measure.go
//
// Package measure holds the measurement value type and the acceptance filter.
// Pure logic: no I/O, no clocks of its own.
package measure

import (
	"errors"
	"fmt"
	"time"
)

// ErrOutOfRange marks distances outside the valid physical range.
var ErrOutOfRange = errors.New("measure: distance out of range")

// Measurement is one accepted distance sample. Immutable once created;
// consumed by exactly one publish attempt.
type Measurement struct {
	DistanceMm uint16
	CapturedAt time.Time
}

// Filter rejects distances outside the sensor's valid physical range.
// Both bounds are inclusive.
type Filter struct {
	MinMm uint16
	MaxMm uint16
}

// Accept applies the range test and stamps the measurement.
func (f Filter) Accept(distanceMm uint16, at time.Time) (Measurement, error) {
	if distanceMm < f.MinMm {
		return Measurement{}, fmt.Errorf("%w: %d mm below lower limit %d mm",
			ErrOutOfRange, distanceMm, f.MinMm)
	}
	if distanceMm > f.MaxMm {
		return Measurement{}, fmt.Errorf("%w: %d mm above upper limit %d mm",
			ErrOutOfRange, distanceMm, f.MaxMm)
	}
	return Measurement{DistanceMm: distanceMm, CapturedAt: at}, nil
}
