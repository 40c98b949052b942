// internal/bridge/bridge_test.go
package bridge

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rwindey/a02yyuw-mqtt/internal/frame"
	"github.com/rwindey/a02yyuw-mqtt/internal/measure"
	"github.com/rwindey/a02yyuw-mqtt/internal/scheduler"
	"github.com/rwindey/a02yyuw-mqtt/internal/sensor"
)

type fakeReader struct {
	window [frame.Size]byte
	err    error
	calls  int
}

func (f *fakeReader) ReadFrame(time.Duration) ([frame.Size]byte, error) {
	f.calls++
	return f.window, f.err
}

type fakePublisher struct {
	published  []measure.Measurement
	publishErr error
	acks       int
	ackErr     error
}

func (f *fakePublisher) PublishDistance(m measure.Measurement) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.published = append(f.published, m)
	return nil
}

func (f *fakePublisher) PublishTriggerAck() error {
	f.acks++
	return f.ackErr
}

func newBridge(t *testing.T, link FrameReader, pub Publisher) *Bridge {
	t.Helper()
	sched, err := scheduler.New(time.Hour)
	require.NoError(t, err)
	return New(Config{
		ReadTimeout: 50 * time.Millisecond,
		Filter:      measure.Filter{MinMm: 30, MaxMm: 4500},
	}, link, pub, sched)
}

func TestRunCycle_ValidFramePublishesOnce(t *testing.T) {
	link := &fakeReader{window: frame.Encode(300)}
	pub := &fakePublisher{}

	b := newBridge(t, link, pub)
	b.RunCycle(scheduler.CauseTick)

	require.Len(t, pub.published, 1)
	assert.Equal(t, uint16(300), pub.published[0].DistanceMm)
	assert.False(t, pub.published[0].CapturedAt.IsZero())
	assert.Equal(t, 0, pub.acks, "tick cycles do not ack the trigger topic")
}

func TestRunCycle_RepeatsPublishIndependently(t *testing.T) {
	link := &fakeReader{window: frame.Encode(300)}
	pub := &fakePublisher{}

	b := newBridge(t, link, pub)
	b.RunCycle(scheduler.CauseTick)
	b.RunCycle(scheduler.CauseTick)

	// identical consecutive values are not deduplicated
	assert.Len(t, pub.published, 2)
}

func TestRunCycle_ChecksumMismatchSkipsPublish(t *testing.T) {
	link := &fakeReader{window: [frame.Size]byte{0xFF, 0x01, 0x2C, 0x00}}
	pub := &fakePublisher{}

	newBridge(t, link, pub).RunCycle(scheduler.CauseTick)

	assert.Empty(t, pub.published)
}

func TestRunCycle_OutOfRangeSkipsPublish(t *testing.T) {
	link := &fakeReader{window: frame.Encode(20)} // below 30 mm
	pub := &fakePublisher{}

	newBridge(t, link, pub).RunCycle(scheduler.CauseTick)

	assert.Empty(t, pub.published)
}

func TestRunCycle_ReadTimeoutRecovers(t *testing.T) {
	link := &fakeReader{err: sensor.ErrReadTimeout}
	pub := &fakePublisher{}

	b := newBridge(t, link, pub)
	b.RunCycle(scheduler.CauseTick)
	assert.Empty(t, pub.published)

	// next cycle proceeds as if nothing happened
	link.err = nil
	link.window = frame.Encode(450)
	b.RunCycle(scheduler.CauseTick)
	assert.Len(t, pub.published, 1)
}

func TestRunCycle_PublishFailureDropsMeasurement(t *testing.T) {
	link := &fakeReader{window: frame.Encode(300)}
	pub := &fakePublisher{publishErr: assert.AnError}

	b := newBridge(t, link, pub)
	b.RunCycle(scheduler.CauseTrigger)

	assert.Empty(t, pub.published)
	assert.Equal(t, 0, pub.acks, "no ack when the publish never happened")
}

func TestRunCycle_TriggerCycleAcks(t *testing.T) {
	link := &fakeReader{window: frame.Encode(300)}
	pub := &fakePublisher{}

	newBridge(t, link, pub).RunCycle(scheduler.CauseTrigger)

	require.Len(t, pub.published, 1)
	assert.Equal(t, 1, pub.acks)
}
