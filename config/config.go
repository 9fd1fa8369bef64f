// Package config handles command line options and logger setup.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/retroenv/retrogolib/log"

	"github.com/mpingram/chip8/clock"
	"github.com/mpingram/chip8/display"
)

// Options holds everything the command line can change.
type Options struct {
	ROM string

	CycleRate int
	Scale     int
	Seed      int64

	Headless bool
	Frames   uint64

	Mute  bool
	Debug bool
	Quiet bool
}

// UsageError is returned by Parse when the command line is not usable.
// The caller should print the usage text.
type UsageError struct {
	flags *flag.FlagSet
	err   error
}

func (e *UsageError) Error() string {
	return e.err.Error()
}

func (e *UsageError) Unwrap() error {
	return e.err
}

// ShowUsage prints the flag defaults to the flag set's output.
func (e *UsageError) ShowUsage() {
	fmt.Fprintf(e.flags.Output(), "usage: chip8 [options] <rom file>\n\n")
	e.flags.PrintDefaults()
}

// ErrNoROM is returned by Parse when no program was named.
var ErrNoROM = errors.New("no rom file given")

// Parse reads options from args, which should not include the program name.
func Parse(args []string, output io.Writer) (Options, error) {
	flags := flag.NewFlagSet("chip8", flag.ContinueOnError)
	flags.SetOutput(output)

	opts := Options{}
	flags.StringVar(&opts.ROM, "rom", "", "path of the rom file to run")
	flags.IntVar(&opts.CycleRate, "hz", clock.DefaultCycleRate, "instructions executed per second")
	flags.IntVar(&opts.Scale, "scale", 10, "window pixels per chip-8 pixel")
	flags.Int64Var(&opts.Seed, "seed", 0, "seed for the random number generator, 0 picks one from the clock")
	flags.BoolVar(&opts.Headless, "headless", false, "run without a window and print the final screen")
	flags.Uint64Var(&opts.Frames, "frames", 600, "number of 60hz frames to run in headless mode")
	flags.BoolVar(&opts.Mute, "mute", false, "do not play the buzzer")
	flags.BoolVar(&opts.Debug, "debug", false, "log every executed instruction")
	flags.BoolVar(&opts.Quiet, "q", false, "only log errors")

	if err := flags.Parse(args); err != nil {
		return opts, &UsageError{flags: flags, err: err}
	}
	if opts.ROM == "" && flags.NArg() > 0 {
		opts.ROM = flags.Arg(0)
	}
	if err := opts.validate(); err != nil {
		return opts, &UsageError{flags: flags, err: err}
	}
	return opts, nil
}

func (o Options) validate() error {
	if o.ROM == "" {
		return ErrNoROM
	}
	if o.CycleRate <= 0 || o.CycleRate > clock.MaxCycleRate {
		return fmt.Errorf("cycle rate must be between 1 and %d, got %d", clock.MaxCycleRate, o.CycleRate)
	}
	if o.Scale <= 0 {
		return fmt.Errorf("scale must be positive, got %d", o.Scale)
	}
	if _, err := display.Scale(o.WindowSize()); err != nil {
		return err
	}
	return nil
}

// WindowSize returns the window size in pixels for the configured scale.
func (o Options) WindowSize() (int, int) {
	return display.Width * o.Scale, display.Height * o.Scale
}

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}
