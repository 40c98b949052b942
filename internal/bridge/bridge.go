// internal/bridge/bridge.go
//
// Package bridge wires the serial link, frame codec, filter, and broker
// client into the measurement loop.
package bridge

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/rwindey/a02yyuw-mqtt/internal/frame"
	"github.com/rwindey/a02yyuw-mqtt/internal/measure"
	"github.com/rwindey/a02yyuw-mqtt/internal/scheduler"
	"github.com/rwindey/a02yyuw-mqtt/internal/sensor"
)

// FrameReader is the serial side of a cycle.
type FrameReader interface {
	ReadFrame(timeout time.Duration) ([frame.Size]byte, error)
}

// Publisher is the bus side of a cycle.
type Publisher interface {
	PublishDistance(m measure.Measurement) error
	PublishTriggerAck() error
}

// Config is the immutable runtime config the bridge needs.
type Config struct {
	ReadTimeout time.Duration
	Filter      measure.Filter
}

// Bridge runs the read-decode-filter-publish cycle on the scheduler's clock.
type Bridge struct {
	cfg   Config
	link  FrameReader
	pub   Publisher
	sched *scheduler.Scheduler

	now func() time.Time
}

// New creates a bridge. The scheduler decides when cycles run; the bridge
// decides what one cycle does.
func New(cfg Config, link FrameReader, pub Publisher, sched *scheduler.Scheduler) *Bridge {
	return &Bridge{
		cfg:   cfg,
		link:  link,
		pub:   pub,
		sched: sched,
		now:   time.Now,
	}
}

// Run blocks until ctx is cancelled. An in-flight cycle finishes before Run
// returns; serial and broker teardown happen afterwards, in the caller.
func (b *Bridge) Run(ctx context.Context) {
	b.sched.Run(ctx, b.RunCycle)
}

// RunCycle performs exactly one measurement cycle: read, decode, filter,
// publish, strictly in that order. Every failure is logged and
// short-circuits the rest of the cycle; nothing recoverable escapes.
func (b *Bridge) RunCycle(cause scheduler.Cause) {
	window, err := b.link.ReadFrame(b.cfg.ReadTimeout)
	if err != nil {
		switch {
		case errors.Is(err, sensor.ErrReadTimeout):
			slog.Error("serial read timeout", "cause", cause, "timeout", b.cfg.ReadTimeout)
		case errors.Is(err, sensor.ErrPartialFrame):
			slog.Error("partial frame from sensor", "cause", cause)
		default:
			slog.Error("serial read failed", "cause", cause, "error", err)
		}
		return
	}

	distanceMm, err := frame.Decode(window)
	if err != nil {
		slog.Error("frame decode failed", "cause", cause, "error", err)
		return
	}

	m, err := b.cfg.Filter.Accept(distanceMm, b.now())
	if err != nil {
		// No stale value is republished; the cycle just produces nothing.
		slog.Warn("measurement rejected", "cause", cause, "error", err)
		return
	}

	slog.Debug("distance read", "distance_mm", m.DistanceMm, "cause", cause)

	if err := b.pub.PublishDistance(m); err != nil {
		// Dropped, never queued: the next cycle makes its own measurement.
		slog.Error("publish failed, measurement dropped",
			"distance_mm", m.DistanceMm, "error", err)
		return
	}

	if cause == scheduler.CauseTrigger {
		if err := b.pub.PublishTriggerAck(); err != nil {
			slog.Warn("trigger ack failed", "error", err)
		}
	}
}
