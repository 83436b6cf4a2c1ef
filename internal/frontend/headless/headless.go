// Package headless provides a frontend without any output device, used for
// batch runs and tests.
package headless

import (
	"sync"

	"github.com/retroenv/retrochip8/internal/machine"
)

// Frontend counts presented frames and keeps a copy of the last one.
// Keypad state and quit requests can be scripted.
type Frontend struct {
	mu      sync.Mutex
	started bool
	frames  uint64
	frame   [machine.VideoWidth * machine.VideoHeight]uint32
	keypad  [machine.KeyCount]bool
	quit    bool
}

// New returns a new headless frontend.
func New() *Frontend {
	return &Frontend{}
}

// Start marks the frontend as started.
func (f *Frontend) Start() error {
	f.mu.Lock()
	f.started = true
	f.mu.Unlock()
	return nil
}

// Close marks the frontend as stopped.
func (f *Frontend) Close() error {
	f.mu.Lock()
	f.started = false
	f.mu.Unlock()
	return nil
}

// IsStarted returns whether the frontend is started.
func (f *Frontend) IsStarted() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.started
}

// Present stores a copy of the framebuffer.
func (f *Frontend) Present(video []uint32, pitch int) error {
	width := pitch / 4

	f.mu.Lock()
	defer f.mu.Unlock()

	for y := range machine.VideoHeight {
		for x := range machine.VideoWidth {
			offset := y*width + x
			if offset < len(video) {
				f.frame[y*machine.VideoWidth+x] = video[offset]
			}
		}
	}
	f.frames++
	return nil
}

// Poll copies the scripted keypad state.
func (f *Frontend) Poll(keypad *[machine.KeyCount]bool) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	*keypad = f.keypad
	return f.quit
}

// SetKey scripts the state of a keypad key.
func (f *Frontend) SetKey(key byte, pressed bool) {
	f.mu.Lock()
	f.keypad[key&0xF] = pressed
	f.mu.Unlock()
}

// Quit makes the next poll report a quit request.
func (f *Frontend) Quit() {
	f.mu.Lock()
	f.quit = true
	f.mu.Unlock()
}

// FrameCount returns the number of presented frames.
func (f *Frontend) FrameCount() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.frames
}

// Pixel returns whether the cell of the last presented frame is lit.
func (f *Frontend) Pixel(x, y int) bool {
	if x < 0 || x >= machine.VideoWidth || y < 0 || y >= machine.VideoHeight {
		return false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.frame[y*machine.VideoWidth+x] != machine.PixelOff
}
