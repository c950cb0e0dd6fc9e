package sim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTickerClockDispatchesAndStops(t *testing.T) {
	calls := make(chan func(), 16)
	clock := NewTickerClock(5*time.Millisecond, func(fn func()) { calls <- fn })
	ticks := 0
	clock.OnTick(func() { ticks++ })

	clock.Start()
	deadline := time.After(2 * time.Second)
	for ticks < 3 {
		select {
		case fn := <-calls:
			fn()
		case <-deadline:
			t.Fatalf("only %d ticks before deadline", ticks)
		}
	}

	clock.Stop()
	clock.Stop()
	assert.False(t, clock.Running())
	stopped := ticks

	drain := time.After(30 * time.Millisecond)
	for done := false; !done; {
		select {
		case fn := <-calls:
			fn()
		case <-drain:
			done = true
		}
	}
	assert.Equal(t, stopped, ticks)
}

func TestTickerClockRestartDropsStaleTicks(t *testing.T) {
	calls := make(chan func(), 16)
	clock := NewTickerClock(time.Millisecond, func(fn func()) { calls <- fn })
	ticks := 0
	clock.OnTick(func() { ticks++ })

	clock.Start()
	stale := <-calls
	clock.Start()
	stale()
	assert.Equal(t, 0, ticks)
	clock.Stop()
	assert.False(t, clock.Running())
}

func TestFrameClockFiresDueTicks(t *testing.T) {
	clock := NewFrameClock(300 * time.Millisecond)
	ticks := 0
	clock.OnTick(func() { ticks++ })

	assert.Equal(t, 0, clock.Advance(time.Second))

	clock.Start()
	assert.Equal(t, 0, clock.Advance(200*time.Millisecond))
	assert.Equal(t, 2, clock.Advance(450*time.Millisecond))
	assert.Equal(t, 2, ticks)
	assert.InDelta(t, 50.0/300.0, clock.Progress(), 1e-9)
}

func TestFrameClockStopEndsBatch(t *testing.T) {
	clock := NewFrameClock(100 * time.Millisecond)
	ticks := 0
	clock.OnTick(func() {
		ticks++
		clock.Stop()
	})
	clock.Start()

	assert.Equal(t, 1, clock.Advance(time.Second))
	assert.Equal(t, 1, ticks)
	assert.Equal(t, 0, clock.Advance(time.Second))
}

func TestManualClockStopIsIdempotent(t *testing.T) {
	clock := &ManualClock{}
	ticks := 0
	clock.OnTick(func() { ticks++ })

	clock.Stop()
	assert.False(t, clock.Step())
	clock.Start()
	assert.Equal(t, 3, clock.Advance(3))
	clock.Stop()
	clock.Stop()
	assert.False(t, clock.Step())
	assert.Equal(t, 3, ticks)
}
