// Package frontend defines the presentation surface and input source that
// the driver connects to the machine.
package frontend

import (
	"context"
	"time"

	"github.com/retroenv/retrochip8/internal/machine"
)

// Frontend presents the framebuffer and reports the keypad state.
type Frontend interface {
	// Start prepares the frontend for output, for example by opening a window.
	Start() error
	// Close releases all resources and restores the environment.
	Close() error
	// Present outputs the framebuffer. The pitch is the row stride in bytes.
	Present(video []uint32, pitch int) error
	// Poll updates the keypad state from the input source and returns
	// whether the user requested to quit.
	Poll(keypad *[machine.KeyCount]bool) (quit bool)
}

// TickFunc advances the emulation to the given point in time and returns
// whether the run is finished.
type TickFunc func(now time.Time) (done bool, err error)

// LoopRunner is implemented by frontends that need to own the main loop of
// the process, the driver hands its tick function over to them.
type LoopRunner interface {
	RunLoop(ctx context.Context, tick TickFunc) error
}

// Keymap lists the keyboard keys that map to the keypad keys 0x0 to 0xF.
//
// Keyboard:   Keypad:
//
//	1 2 3 4    1 2 3 C
//	q w e r    4 5 6 D
//	a s d f    7 8 9 E
//	z x c v    A 0 B F
const Keymap = "x123qweasdzc4rfv"

// QuitKey is the keyboard key that ends the run.
const QuitKey = 0x1b // escape

// KeypadKey returns the keypad key that the keyboard character maps to.
func KeypadKey(r rune) (byte, bool) {
	if r >= 'A' && r <= 'Z' {
		r += 'a' - 'A'
	}
	for i, key := range Keymap {
		if key == r {
			return byte(i), true
		}
	}
	return 0, false
}

// IsLit returns whether the framebuffer cell is lit.
func IsLit(pixel uint32) bool {
	return pixel != machine.PixelOff
}
