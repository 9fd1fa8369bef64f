package main

import (
	"fmt"

	"github.com/go-gl/glfw/v3.2/glfw"
)

// keyMap maps the left hand side of a qwerty keyboard onto the Chip-8
// hexadecimal keypad:
//
//	1 2 3 4        1 2 3 C
//	Q W E R   ->   4 5 6 D
//	A S D F        7 8 9 E
//	Z X C V        A 0 B F
var keyMap = map[glfw.Key]byte{
	glfw.Key1: 0x1, glfw.Key2: 0x2, glfw.Key3: 0x3, glfw.Key4: 0xC,
	glfw.KeyQ: 0x4, glfw.KeyW: 0x5, glfw.KeyE: 0x6, glfw.KeyR: 0xD,
	glfw.KeyA: 0x7, glfw.KeyS: 0x8, glfw.KeyD: 0x9, glfw.KeyF: 0xE,
	glfw.KeyZ: 0xA, glfw.KeyX: 0x0, glfw.KeyC: 0xB, glfw.KeyV: 0xF,
}

// GLFWKeyboardInput forwards window key events to the machine.
//
// Besides the keypad there are a few control keys:
//
//	Escape  power off
//	P       pause
//	[       unpause
//	]       step one cycle while paused
//	O       dump state to stdout
type GLFWKeyboardInput struct {
	window  *glfw.Window
	machine *machine
}

// NewGLFWKeyboardInput installs key and focus callbacks on window that drive m.
func NewGLFWKeyboardInput(window *glfw.Window, m *machine) *GLFWKeyboardInput {
	input := &GLFWKeyboardInput{window: window, machine: m}
	window.SetKeyCallback(input.onKey)
	// key up events are lost while the window is in the background.
	window.SetFocusCallback(func(_ *glfw.Window, focused bool) {
		if !focused {
			m.keys.Reset()
		}
	})
	return input
}

// onKey runs inside glfw.PollEvents, on the same goroutine that drives the cpu.
func (input *GLFWKeyboardInput) onKey(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	if chipKey, ok := keyMap[key]; ok {
		switch action {
		case glfw.Press:
			input.machine.keys.KeyDown(chipKey)
		case glfw.Release:
			input.machine.keys.KeyUp(chipKey)
		}
		return
	}

	if action != glfw.Press {
		return
	}
	switch key {
	case glfw.KeyEscape:
		input.window.SetShouldClose(true)
	case glfw.KeyP:
		input.machine.Pause()
	case glfw.KeyLeftBracket:
		input.machine.Resume()
	case glfw.KeyRightBracket:
		input.machine.Step()
	case glfw.KeyO:
		fmt.Print(input.machine.DumpState())
	}
}
