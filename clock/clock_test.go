package clock

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/retroenv/retrogolib/assert"
)

// countingMachine records calls and a simple delay timer.
type countingMachine struct {
	steps int
	ticks int
	delay byte

	// events is "s" for a step and "t" for a tick, in call order.
	events string
}

func (m *countingMachine) Step() {
	m.steps++
	m.events += "s"
}

func (m *countingMachine) TickTimers() {
	m.ticks++
	m.events += "t"
	if m.delay > 0 {
		m.delay--
	}
}

func TestAdvanceRates(t *testing.T) {
	m := &countingMachine{}
	frames := 0
	d := New(m, 600, func() { frames++ })

	for i := 0; i < 10; i++ {
		d.Advance(100 * time.Millisecond)
	}

	assert.Equal(t, 600, m.steps)
	assert.Equal(t, 60, m.ticks)
	assert.Equal(t, 60, frames)
	assert.Equal(t, uint64(600), d.Cycles())
	assert.Equal(t, uint64(60), d.Ticks())
}

func TestHugeCycleRateIsClamped(t *testing.T) {
	m := &countingMachine{}
	d := New(m, 2_000_000_000, nil)

	d.Advance(time.Millisecond)
	assert.Equal(t, MaxCycleRate/1000, m.steps)
	assert.Equal(t, 0, m.ticks)
}

func TestAdvanceInterleaves(t *testing.T) {
	m := &countingMachine{}
	d := New(m, 120, nil)

	// cycles land at 1/120s intervals and ticks at 1/60s, a cycle goes
	// first when both are due at the same moment.
	d.Advance(time.Second / 30)
	assert.Equal(t, "sstsst", m.events)
}

func TestAdvanceAccumulatesSmallSteps(t *testing.T) {
	m := &countingMachine{}
	d := New(m, 1000, nil)

	for i := 0; i < 10; i++ {
		d.Advance(100 * time.Microsecond)
	}
	assert.Equal(t, 1, m.steps)
	assert.Equal(t, 0, m.ticks)
}

func TestAdvanceCapsCatchUp(t *testing.T) {
	m := &countingMachine{}
	d := New(m, 1000, nil)

	d.Advance(time.Hour)
	assert.Equal(t, 250, m.steps)
	assert.Equal(t, 15, m.ticks)
}

func TestDefaultCycleRate(t *testing.T) {
	m := &countingMachine{}
	d := New(m, 0, nil)

	d.Advance(100 * time.Millisecond)
	assert.Equal(t, DefaultCycleRate/10, m.steps)
}

func TestDelayTimerReachesZero(t *testing.T) {
	m := &countingMachine{delay: 10}
	d := New(m, DefaultCycleRate, nil)

	assert.NoError(t, d.RunFor(context.Background(), 9))
	assert.Equal(t, byte(1), m.delay)
	assert.NoError(t, d.RunFor(context.Background(), 1))
	assert.Equal(t, byte(0), m.delay)
	assert.NoError(t, d.RunFor(context.Background(), 5))
	assert.Equal(t, byte(0), m.delay)
	assert.Equal(t, uint64(15), d.Ticks())
}

func TestRunStopsOnCancel(t *testing.T) {
	m := &countingMachine{}
	d := New(m, DefaultCycleRate, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := d.Run(ctx, 0)
	assert.True(t, errors.Is(err, context.Canceled))

	err = d.RunFor(ctx, 10)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 0, m.ticks)
}

func TestRunFrames(t *testing.T) {
	m := &countingMachine{}
	d := New(m, DefaultCycleRate, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	assert.NoError(t, d.Run(ctx, 3))
	assert.True(t, d.Ticks() >= 3)
}
