// internal/broker/backoff.go
package broker

import "time"

// Backoff is the reconnect delay state machine: start at Initial, double per
// attempt, never exceed Max. Plain data so it is testable without a broker.
type Backoff struct {
	Initial time.Duration
	Max     time.Duration

	attempt int
}

// Next returns the delay before the upcoming attempt and advances the state.
func (b *Backoff) Next() time.Duration {
	d := b.Initial
	for i := 0; i < b.attempt; i++ {
		d *= 2
		if d >= b.Max {
			d = b.Max
			break
		}
	}
	b.attempt++
	if d > b.Max {
		d = b.Max
	}
	return d
}

// Reset rewinds to the initial delay after a successful connect.
func (b *Backoff) Reset() {
	b.attempt = 0
}

// Attempts reports how many delays have been handed out since the last reset.
func (b *Backoff) Attempts() int {
	return b.attempt
}
