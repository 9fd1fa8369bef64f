// Package clock paces a Chip-8 cpu against wall time.
//
// The cpu runs at a configurable number of cycles per second while the
// timers and the screen refresh always run at 60hz. Both are derived from
// the elapsed time handed to Advance, on the caller's goroutine, so nothing
// here ever runs concurrently with the cpu.
package clock

import (
	"context"
	"time"
)

// TimerRate is the frequency of the delay and sound timers, and of frames.
const TimerRate = 60

// DefaultCycleRate is the number of instructions executed per second.
const DefaultCycleRate = 500

// MaxCycleRate is the fastest cpu a Driver will run. Faster rates are clamped.
const MaxCycleRate = 1_000_000

// maxCatchUp bounds how much elapsed time a single Advance will replay, so a
// stalled host does not make the cpu sprint afterwards.
const maxCatchUp = 250 * time.Millisecond

// Machine is what the clock drives.
type Machine interface {
	// Step performs one cpu cycle.
	Step()
	// TickTimers decrements the 60hz timers.
	TickTimers()
}

// Driver converts elapsed time into cpu cycles, timer ticks and frames.
type Driver struct {
	machine Machine

	cycleInterval time.Duration
	timerInterval time.Duration

	cycleDebt time.Duration
	timerDebt time.Duration

	// frame is called once per timer tick, after the tick.
	frame func()

	cycles uint64
	ticks  uint64
}

// New returns a driver that runs machine at cycleRate cycles per second.
// A cycleRate of zero or less selects DefaultCycleRate and one above
// MaxCycleRate is clamped to it. frame may be nil.
func New(machine Machine, cycleRate int, frame func()) *Driver {
	switch {
	case cycleRate <= 0:
		cycleRate = DefaultCycleRate
	case cycleRate > MaxCycleRate:
		cycleRate = MaxCycleRate
	}
	return &Driver{
		machine:       machine,
		cycleInterval: time.Second / time.Duration(cycleRate),
		timerInterval: time.Second / TimerRate,
		frame:         frame,
	}
}

// Advance runs every cycle and timer tick that falls within elapsed. Cycles
// and ticks are interleaved in time order, so a timer set by an instruction
// starts counting from the next tick boundary.
func (d *Driver) Advance(elapsed time.Duration) {
	if elapsed > maxCatchUp {
		elapsed = maxCatchUp
	}
	d.cycleDebt += elapsed
	d.timerDebt += elapsed

	for d.cycleDebt >= d.cycleInterval || d.timerDebt >= d.timerInterval {
		// whichever is further behind goes first.
		if d.cycleDebt-d.cycleInterval >= d.timerDebt-d.timerInterval {
			d.cycleDebt -= d.cycleInterval
			d.machine.Step()
			d.cycles++
		} else {
			d.timerDebt -= d.timerInterval
			d.machine.TickTimers()
			d.ticks++
			if d.frame != nil {
				d.frame()
			}
		}
	}
}

// Cycles returns the number of cpu cycles run so far.
func (d *Driver) Cycles() uint64 {
	return d.cycles
}

// Ticks returns the number of timer ticks run so far.
func (d *Driver) Ticks() uint64 {
	return d.ticks
}

// Run advances the driver in real time until ctx is done or, when frames is
// positive, until that many frames have been produced. It only ever stops
// between two cycles.
func (d *Driver) Run(ctx context.Context, frames uint64) error {
	ticker := time.NewTicker(d.timerInterval)
	defer ticker.Stop()

	last := time.Now()
	for frames == 0 || d.ticks < frames {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			d.Advance(now.Sub(last))
			last = now
		}
	}
	return nil
}

// RunFor advances the driver by frames timer ticks without waiting on the
// wall clock. It is useful for headless runs where speed does not matter.
func (d *Driver) RunFor(ctx context.Context, frames uint64) error {
	target := d.ticks + frames
	for d.ticks < target {
		if err := ctx.Err(); err != nil {
			return err
		}
		d.Advance(d.timerInterval)
	}
	return nil
}
