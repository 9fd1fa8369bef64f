// Package keypad tracks the state of the 16 key Chip-8 hexadecimal keyboard.
//
// The host feeds it key down and key up events. The cpu asks it whether a key
// is held, and for LD Vx,K whether a key was pressed since it started waiting.
package keypad

// KeyCount is the number of keys, 0x0 through 0xF.
const KeyCount = 16

// Latch stores which keys are held and the first key to go down since the
// last call to Await.
type Latch struct {
	held [KeyCount]bool

	pressed    byte
	hasPressed bool
}

// New returns a latch with every key released.
func New() *Latch {
	return &Latch{}
}

// KeyDown records a key going down. Keys outside 0x0-0xF are ignored, as are
// repeated key downs for a key that is already held.
func (l *Latch) KeyDown(key byte) {
	if key >= KeyCount || l.held[key] {
		return
	}
	l.held[key] = true
	if !l.hasPressed {
		l.pressed = key
		l.hasPressed = true
	}
}

// KeyUp records a key being released.
func (l *Latch) KeyUp(key byte) {
	if key >= KeyCount {
		return
	}
	l.held[key] = false
}

// IsHeld returns true if key is currently down.
func (l *Latch) IsHeld(key byte) bool {
	if key >= KeyCount {
		return false
	}
	return l.held[key]
}

// Await drops any remembered press, so only keys that go down from now on
// are reported by Pressed.
func (l *Latch) Await() {
	l.hasPressed = false
	l.pressed = 0
}

// Pressed returns the first key that went down since Await and forgets it.
func (l *Latch) Pressed() (byte, bool) {
	if !l.hasPressed {
		return 0, false
	}
	key := l.pressed
	l.Await()
	return key, true
}

// Reset releases every key.
func (l *Latch) Reset() {
	l.held = [KeyCount]bool{}
	l.Await()
}
