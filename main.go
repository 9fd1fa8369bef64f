// Package main runs Chip-8 programs in a window, or headless in a terminal.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/go-gl/glfw/v3.2/glfw"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"

	"github.com/mpingram/chip8/config"
	"github.com/mpingram/chip8/cpu"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func init() {
	// openGL requires this to render properly
	runtime.LockOSThread()
}

func main() {
	opts, err := config.Parse(os.Args[1:], os.Stderr)
	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	if err != nil {
		var usageErr *config.UsageError
		if errors.As(err, &usageErr) {
			printBanner(opts)
			fmt.Fprintf(os.Stderr, "%s\n\n", err)
			usageErr.ShowUsage()
		} else {
			logger.Error("parsing options failed", err)
		}
		os.Exit(1)
	}

	printBanner(opts)

	program, err := os.ReadFile(opts.ROM)
	if err != nil {
		logger.Fatal("reading rom failed", log.Err(err))
	}

	if opts.Headless {
		// ctrl-c ends a headless run early and still prints the screen.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		err = runHeadless(ctx, logger, opts, program)
		stop()
	} else {
		err = runWindow(logger, opts, program)
	}
	if err != nil {
		logger.Fatal("running rom failed", log.String("rom", opts.ROM), log.Err(err))
	}
}

func printBanner(opts config.Options) {
	if !opts.Quiet {
		fmt.Println("[-----------------------------]")
		fmt.Println("[ chip8 - Chip-8 interpreter  ]")
		fmt.Printf("[-----------------------------]\n\n")
		fmt.Printf("version: %s\n\n", buildinfo.Version(version, commit, date))
	}
}

// runWindow opens a window and runs the program until the window is closed.
func runWindow(logger *log.Logger, opts config.Options, program []byte) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("initializing glfw: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.ContextVersionMajor, 2)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)

	width, height := opts.WindowSize()
	window, err := glfw.CreateWindow(width, height, "Chip-8", nil, nil)
	if err != nil {
		return fmt.Errorf("creating window: %w", err)
	}
	defer window.Destroy()
	window.MakeContextCurrent()
	glfw.SwapInterval(1)

	renderer, err := NewOpenGLRenderer(window)
	if err != nil {
		return err
	}

	var speaker *OtoSpeaker
	if !opts.Mute {
		speaker, err = NewOtoSpeaker()
		if err != nil {
			logger.Warn("sound disabled", log.Err(err))
		} else {
			defer speaker.Close()
		}
	}

	// the screen is copied out once per 60hz frame, not once per instruction.
	var m *machine
	m, err = newMachine(logger, opts, program, speakerOrNil(speaker), func() {
		renderer.Update(m.screen)
	})
	if err != nil {
		return err
	}
	NewGLFWKeyboardInput(window, m)

	logger.Info("running",
		log.String("rom", opts.ROM),
		log.Int("hz", opts.CycleRate))

	last := time.Now()
	for !window.ShouldClose() {
		glfw.PollEvents()

		now := time.Now()
		m.advance(now.Sub(last))
		last = now

		renderer.Render()
	}
	return nil
}

// speakerOrNil keeps a nil *OtoSpeaker from becoming a non-nil interface.
func speakerOrNil(s *OtoSpeaker) cpu.Speaker {
	if s == nil {
		return nil
	}
	return s
}
