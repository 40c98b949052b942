// internal/scheduler/scheduler.go
//
// Package scheduler reconciles the periodic publish timer with the
// asynchronously-delivered read trigger. At most one cycle runs at a time.
package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"time"
)

// Cause says what requested a cycle.
type Cause int

const (
	CauseTick Cause = iota
	CauseTrigger
)

func (c Cause) String() string {
	switch c {
	case CauseTick:
		return "tick"
	case CauseTrigger:
		return "trigger"
	default:
		return "unknown"
	}
}

// State is the scheduler's cycle state.
type State int32

const (
	Idle State = iota
	Armed
	Reading
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Armed:
		return "armed"
	case Reading:
		return "reading"
	default:
		return "unknown"
	}
}

// Scheduler drives cycles from two sources: an anchored periodic ticker and a
// capacity-1 trigger slot. Trigger arrivals while a cycle is in flight
// coalesce into the slot instead of queueing.
type Scheduler struct {
	interval time.Duration
	trigger  chan struct{}
	state    atomic.Int32
}

// New creates a scheduler with a fixed publish interval.
func New(interval time.Duration) (*Scheduler, error) {
	if interval <= 0 {
		return nil, errors.New("scheduler: interval must be > 0")
	}
	return &Scheduler{
		interval: interval,
		trigger:  make(chan struct{}, 1),
	}, nil
}

// State reports the current cycle state.
func (s *Scheduler) State() State {
	return State(s.state.Load())
}

// Trigger requests one out-of-schedule cycle. Safe to call from any
// goroutine; it never blocks. Returns false if a request was already pending,
// in which case this arrival coalesced into it.
func (s *Scheduler) Trigger() bool {
	select {
	case s.trigger <- struct{}{}:
		return true
	default:
		return false
	}
}

// Run drives cycles until ctx is cancelled. The ticker stays anchored to its
// start schedule: variable cycle latency and trigger consumption never move
// the next tick, and ticks missed during a long cycle are dropped, not
// queued.
func (s *Scheduler) Run(ctx context.Context, cycle func(Cause)) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runCycle(CauseTick, cycle)
		case <-s.trigger:
			s.runCycle(CauseTrigger, cycle)
		}
	}
}

func (s *Scheduler) runCycle(cause Cause, cycle func(Cause)) {
	// Armed is momentary: the cycle starts as soon as a request is accepted.
	s.state.Store(int32(Armed))
	s.state.Store(int32(Reading))
	cycle(cause)
	s.state.Store(int32(Idle))
}
