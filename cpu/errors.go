package cpu

import "errors"

// ErrRomTooLarge is returned by Load when a program does not fit in the
// memory after ProgramStart.
var ErrRomTooLarge = errors.New("rom too large")
