package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/retroenv/retrogolib/log"

	"github.com/mpingram/chip8/clock"
	"github.com/mpingram/chip8/config"
	"github.com/mpingram/chip8/cpu"
	"github.com/mpingram/chip8/display"
	"github.com/mpingram/chip8/keypad"
)

// machine ties the cpu to its screen, keyboard and clock. The host only
// talks to the machine.
type machine struct {
	logger *log.Logger
	cpu    *cpu.Chip8
	screen *display.Screen
	keys   *keypad.Latch
	driver *clock.Driver

	paused bool
}

// newMachine builds a machine and loads program into it. speaker may be nil.
// frame is called after every 60hz timer tick and may be nil.
func newMachine(logger *log.Logger, opts config.Options, program []byte, speaker cpu.Speaker, frame func()) (*machine, error) {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	m := &machine{
		logger: logger,
		screen: display.New(),
		keys:   keypad.New(),
	}

	options := []cpu.Option{cpu.WithRand(rand.New(rand.NewSource(seed)))}
	if speaker != nil {
		options = append(options, cpu.WithSpeaker(speaker))
	}
	m.cpu = cpu.New(logger, m.screen, m.keys, options...)
	if err := m.cpu.Load(program); err != nil {
		return nil, fmt.Errorf("loading program: %w", err)
	}
	m.driver = clock.New(m.cpu, opts.CycleRate, frame)
	return m, nil
}

// advance runs the machine for elapsed wall time unless it is paused.
func (m *machine) advance(elapsed time.Duration) {
	if m.paused {
		return
	}
	m.driver.Advance(elapsed)
}

func (m *machine) Pause() {
	if !m.paused {
		m.logger.Info("paused")
	}
	m.paused = true
}

func (m *machine) Resume() {
	if m.paused {
		m.logger.Info("resumed")
	}
	m.paused = false
}

// Step executes a single cycle of a paused machine. A running machine is
// left alone to avoid a double step.
func (m *machine) Step() {
	if m.paused {
		m.cpu.Step()
	}
}

// DumpState returns the registers and the screen as text.
func (m *machine) DumpState() string {
	state := m.cpu.Snapshot()
	frame := m.screen.Snapshot()

	dump := fmt.Sprintf("PC:%04X I:%04X SP:%04X DT:%02X ST:%02X waiting:%t\n",
		state.PC, state.I, state.SP, state.DT, state.ST, state.WaitingKey)
	for n, v := range state.V {
		dump += fmt.Sprintf("V%X:%02X ", n, v)
	}
	dump += "\n" + frame.String()
	return dump
}
