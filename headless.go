package main

import (
	"context"
	"fmt"
	"os"

	"github.com/retroenv/retrogolib/log"
	"golang.org/x/term"

	"github.com/mpingram/chip8/config"
)

// runHeadless runs the program for the configured number of frames as fast
// as possible, then prints the screen digest. The screen itself is only
// printed when stdout is a terminal.
func runHeadless(ctx context.Context, logger *log.Logger, opts config.Options, program []byte) error {
	m, err := newMachine(logger, opts, program, nil, nil)
	if err != nil {
		return err
	}

	if err := m.driver.RunFor(ctx, opts.Frames); err != nil {
		return fmt.Errorf("running headless: %w", err)
	}

	frame := m.screen.Snapshot()
	logger.Info("headless run finished",
		log.Int("frames", int(m.driver.Ticks())),
		log.Int("cycles", int(m.driver.Cycles())))

	if term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Print(m.DumpState())
	}
	fmt.Printf("digest: %s\n", frame.Digest())
	return nil
}
