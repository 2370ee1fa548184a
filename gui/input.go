package gui

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/ezrec/chip8/chip8"
)

// keyMap lays the 4x4 CHIP-8 keypad over the left side of a QWERTY
// keyboard:
//
//	1 2 3 4      1 2 3 C
//	q w e r  ->  4 5 6 D
//	a s d f      7 8 9 E
//	z x c v      A 0 B F
var keyMap = map[sdl.Scancode]uint8{
	sdl.SCANCODE_1: 0x1, sdl.SCANCODE_2: 0x2, sdl.SCANCODE_3: 0x3, sdl.SCANCODE_4: 0xc,
	sdl.SCANCODE_Q: 0x4, sdl.SCANCODE_W: 0x5, sdl.SCANCODE_E: 0x6, sdl.SCANCODE_R: 0xd,
	sdl.SCANCODE_A: 0x7, sdl.SCANCODE_S: 0x8, sdl.SCANCODE_D: 0x9, sdl.SCANCODE_F: 0xe,
	sdl.SCANCODE_Z: 0xa, sdl.SCANCODE_X: 0x0, sdl.SCANCODE_C: 0xb, sdl.SCANCODE_V: 0xf,
}

// Keyboard maps the host keyboard onto the CHIP-8 keypad.
type Keyboard struct{}

// Poll implements interpreter.Input. It snapshots the host keyboard
// state; the event queue must be pumped elsewhere for the snapshot to
// advance.
func (kb *Keyboard) Poll() (keys chip8.Keypad) {
	state := sdl.GetKeyboardState()
	for scancode, key := range keyMap {
		if state[scancode] != 0 {
			keys.Press(key)
		}
	}

	return keys
}
