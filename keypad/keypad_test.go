package keypad

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestHeld(t *testing.T) {
	l := New()
	assert.False(t, l.IsHeld(0xa))

	l.KeyDown(0xa)
	assert.True(t, l.IsHeld(0xa))
	assert.False(t, l.IsHeld(0xb))

	l.KeyUp(0xa)
	assert.False(t, l.IsHeld(0xa))

	// out of range keys are never held.
	l.KeyDown(0x10)
	assert.False(t, l.IsHeld(0x10))
}

func TestPressedAfterAwait(t *testing.T) {
	l := New()
	l.Await()

	_, ok := l.Pressed()
	assert.False(t, ok)

	l.KeyUp(0x3)
	_, ok = l.Pressed()
	assert.False(t, ok)

	l.KeyDown(0x3)
	l.KeyDown(0x4)
	key, ok := l.Pressed()
	assert.True(t, ok)
	assert.Equal(t, byte(0x3), key)

	// reported once only.
	_, ok = l.Pressed()
	assert.False(t, ok)
}

func TestAwaitDropsEarlierPress(t *testing.T) {
	l := New()
	l.KeyDown(0x1)
	l.Await()

	_, ok := l.Pressed()
	assert.False(t, ok)

	// a repeated key down while held is not a new press.
	l.KeyDown(0x1)
	_, ok = l.Pressed()
	assert.False(t, ok)

	l.KeyUp(0x1)
	l.KeyDown(0x1)
	key, ok := l.Pressed()
	assert.True(t, ok)
	assert.Equal(t, byte(0x1), key)
}

func TestReset(t *testing.T) {
	l := New()
	l.KeyDown(0xf)
	l.Reset()

	assert.False(t, l.IsHeld(0xf))
	_, ok := l.Pressed()
	assert.False(t, ok)
}
