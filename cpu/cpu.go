// Package cpu implements the Chip-8 virtual machine: memory, registers, the
// call stack, the two 60hz timers and the fetch/decode/execute cycle.
//
// The cpu owns no screen and no keyboard. A Display and a Keypad are attached
// with New and everything the program draws or reads goes through them.
package cpu

import (
	"fmt"
	"math/rand"

	"github.com/retroenv/retrogolib/log"
)

const (
	// MemorySize is the number of addressable bytes. Every 16 bit address is valid.
	MemorySize = 0x10000
	// ProgramStart is where a ROM is loaded and where the program counter starts.
	ProgramStart uint16 = 0x200
	// FontAddress is where the hexadecimal digit sprites live.
	FontAddress uint16 = 0x40
	// StackAddress is the base of the call stack. The stack pointer counts
	// bytes pushed from here. The stack grows towards FontAddress, so nesting
	// more than 32 calls overwrites the font sprites.
	StackAddress uint16 = 0x000

	// CarryRegister is the index of VF, the status register.
	CarryRegister = 0xF
)

// Display is the part of the screen the cpu needs: it can be cleared and
// it can have sprites XORed onto it.
type Display interface {
	Clear()
	// Draw XORs sprite onto the screen at x,y and reports whether any lit
	// pixel was turned off.
	Draw(x, y byte, sprite []byte) bool
}

// Keypad is the Chip-8 hexadecimal keyboard as seen from the cpu.
type Keypad interface {
	IsHeld(key byte) bool
	// Await forgets any key press seen so far. The next Pressed call only
	// reports presses that happen after Await.
	Await()
	// Pressed returns the first key pressed since the last Await.
	Pressed() (byte, bool)
}

// The Speaker interface represents the Chip8 speaker, which acts as a simple
// buzzer. The cpu calls StartSound when the sound timer is set to a nonzero
// value and StopSound once it runs down to zero.
type Speaker interface {
	StartSound()
	StopSound()
}

// Chip8 represents an emulated Chip-8 CPU and its RAM.
type Chip8 struct {
	// program counter
	pc uint16
	// address register
	i uint16
	// data registers
	v [16]byte
	// delay and sound timers.
	// Both delay and sound timers are registers that are decremented at 60hz once set.
	dt byte
	st byte

	// stack pointer, in bytes pushed
	sp     uint16
	memory [MemorySize]byte

	// waitKey is the register that receives the next key press while the
	// cpu is blocked on LD Vx,K. It is -1 when the cpu is not waiting.
	waitKey int

	logger  *log.Logger
	rnd     *rand.Rand
	display Display
	keypad  Keypad
	speaker Speaker
}

// Option configures optional collaborators of a Chip8.
type Option func(*Chip8)

// WithSpeaker attaches a buzzer that follows the sound timer.
func WithSpeaker(speaker Speaker) Option {
	return func(c *Chip8) {
		c.speaker = speaker
	}
}

// WithRand sets the random source used by RND.
func WithRand(rnd *rand.Rand) Option {
	return func(c *Chip8) {
		c.rnd = rnd
	}
}

// New returns an initialized Chip8 with no program loaded.
func New(logger *log.Logger, display Display, keypad Keypad, options ...Option) *Chip8 {
	c := &Chip8{
		logger:  logger,
		display: display,
		keypad:  keypad,
		rnd:     rand.New(rand.NewSource(1)),
	}
	for _, option := range options {
		option(c)
	}
	c.Reset()
	return c
}

// Reset clears memory and registers, reloads the font and puts the program
// counter back to the start of program memory. The display and keypad stay
// attached but the display is not cleared.
func (c *Chip8) Reset() {
	c.pc = ProgramStart
	c.i = 0
	c.v = [16]byte{}
	c.dt = 0
	c.st = 0
	c.sp = 0
	c.memory = [MemorySize]byte{}
	c.waitKey = -1

	copy(c.memory[FontAddress:], fontSprites[:])
}

// Load copies a program into memory at ProgramStart. The program is
// rejected with ErrRomTooLarge if it does not fit.
func (c *Chip8) Load(program []byte) error {
	available := MemorySize - int(ProgramStart)
	if len(program) > available {
		return fmt.Errorf("%w: %d bytes, %d available", ErrRomTooLarge, len(program), available)
	}
	copy(c.memory[ProgramStart:], program)
	c.logger.Debug("program loaded",
		log.Int("size", len(program)),
		log.Uint16("address", ProgramStart))
	return nil
}

// Waiting returns true while the cpu is blocked on a key press.
func (c *Chip8) Waiting() bool {
	return c.waitKey >= 0
}

// Step performs one cycle. Normally that is fetching and executing one
// instruction. While the cpu waits for a key press it only polls the keypad.
func (c *Chip8) Step() {
	if c.Waiting() {
		key, ok := c.keypad.Pressed()
		if !ok {
			return
		}
		c.v[c.waitKey] = key
		c.logger.Debug("key wait satisfied",
			log.Int("register", c.waitKey),
			log.Uint8("key", key))
		c.waitKey = -1
		return
	}

	opcode := c.readOpcode(c.pc)
	c.pc += 2
	c.exec(Decode(opcode))
}

// TickTimers decrements the delay and sound timers by one. The caller is
// expected to call it at 60hz regardless of how fast the cpu runs.
func (c *Chip8) TickTimers() {
	if c.dt > 0 {
		c.dt--
	}
	if c.st > 0 {
		c.st--
		// tell the speaker to stop playing if we reached
		// the end of the sound timer on this tick.
		if c.st == 0 && c.speaker != nil {
			c.speaker.StopSound()
		}
	}
}

// Chip8State is a read-only snapshot of the cpu registers and memory.
type Chip8State struct {
	PC     uint16
	I      uint16
	V      [16]byte
	DT     byte
	ST     byte
	SP     uint16
	Stack  []byte
	Memory [MemorySize]byte

	// WaitingKey is true while the cpu is blocked on LD Vx,K.
	WaitingKey bool
}

// Snapshot returns a static copy of the Chip8 at the moment the method is called.
func (c *Chip8) Snapshot() Chip8State {
	stack := make([]byte, c.sp)
	for n := range stack {
		stack[n] = c.memory[StackAddress+uint16(n)]
	}
	return Chip8State{
		PC:         c.pc,
		I:          c.i,
		V:          c.v,
		DT:         c.dt,
		ST:         c.st,
		SP:         c.sp,
		Stack:      stack,
		Memory:     c.memory,
		WaitingKey: c.Waiting(),
	}
}

func (c *Chip8) stackPush(addr uint16) {
	c.memory[StackAddress+c.sp] = byte(addr >> 8)
	c.memory[StackAddress+c.sp+1] = byte(addr)
	c.sp += 2
}

// stackPop returns false when the stack is empty.
func (c *Chip8) stackPop() (uint16, bool) {
	if c.sp < 2 {
		return 0, false
	}
	c.sp -= 2
	high := c.memory[StackAddress+c.sp]
	low := c.memory[StackAddress+c.sp+1]
	return uint16(high)<<8 | uint16(low), true
}

func (c *Chip8) readOpcode(addr uint16) uint16 {
	// the opcode we want to read is the next two bytes,
	// stored big-endian.
	high := c.memory[addr]
	low := c.memory[addr+1]
	return uint16(high)<<8 | uint16(low)
}
