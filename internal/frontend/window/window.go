// Package window provides a desktop window frontend based on ebiten.
package window

import (
	"context"
	"fmt"
	"image/color"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrogolib/log"
)

const title = "retrochip8"

var (
	foreground = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	background = color.RGBA{A: 0xFF}
)

// keys maps the keypad keys 0x0 to 0xF to the physical keys of frontend.Keymap.
var keys = [machine.KeyCount]ebiten.Key{
	ebiten.KeyX, ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3,
	ebiten.KeyQ, ebiten.KeyW, ebiten.KeyE, ebiten.KeyA,
	ebiten.KeyS, ebiten.KeyD, ebiten.KeyZ, ebiten.KeyC,
	ebiten.KeyDigit4, ebiten.KeyR, ebiten.KeyF, ebiten.KeyV,
}

// Frontend renders the framebuffer scaled into a window. Ebiten owns the
// main loop, the driver tick is called from the game update function.
type Frontend struct {
	logger *log.Logger
	scale  int

	mu     sync.Mutex
	pixels []byte // RGBA
	image  *ebiten.Image
	frames uint64

	ctx  context.Context
	tick frontend.TickFunc
}

// New returns a new window frontend with the given scale factor.
func New(logger *log.Logger, scale int) *Frontend {
	return &Frontend{
		logger: logger,
		scale:  max(scale, 1),
		pixels: make([]byte, machine.VideoWidth*machine.VideoHeight*4),
	}
}

// Start configures the window.
func (f *Frontend) Start() error {
	f.mu.Lock()
	convertFrame(f.pixels, nil, machine.VideoPitch)
	f.mu.Unlock()

	ebiten.SetWindowSize(machine.VideoWidth*f.scale, machine.VideoHeight*f.scale)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizable(true)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetRunnableOnUnfocused(true)

	f.logger.Debug("Window configured",
		log.Int("width", machine.VideoWidth*f.scale),
		log.Int("height", machine.VideoHeight*f.scale))
	return nil
}

// Close is a no-op, ebiten closes the window when the game loop ends.
func (f *Frontend) Close() error {
	return nil
}

// Present converts the framebuffer to RGBA pixels for the next draw.
func (f *Frontend) Present(video []uint32, pitch int) error {
	f.mu.Lock()
	convertFrame(f.pixels, video, pitch)
	f.frames++
	f.mu.Unlock()
	return nil
}

// Poll reads the keyboard state. Escape and closing the window quit.
func (f *Frontend) Poll(keypad *[machine.KeyCount]bool) bool {
	for i, key := range keys {
		keypad[i] = ebiten.IsKeyPressed(key)
	}
	return ebiten.IsKeyPressed(ebiten.KeyEscape) || ebiten.IsWindowBeingClosed()
}

// RunLoop runs the ebiten game loop on the calling goroutine until the tick
// function reports that the run is done, the context is cancelled or an error occurs.
func (f *Frontend) RunLoop(ctx context.Context, tick frontend.TickFunc) error {
	f.ctx = ctx
	f.tick = tick

	if err := ebiten.RunGame(&game{frontend: f}); err != nil {
		return fmt.Errorf("running game loop: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("game loop stopped: %w", err)
	}
	return nil
}

// game implements ebiten.Game for the frontend.
type game struct {
	frontend *Frontend
}

func (g *game) Update() error {
	f := g.frontend
	if f.ctx.Err() != nil {
		return ebiten.Termination
	}

	done, err := f.tick(time.Now())
	switch {
	case err != nil:
		return err
	case done:
		return ebiten.Termination
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	f := g.frontend
	if f.image == nil {
		f.image = ebiten.NewImage(machine.VideoWidth, machine.VideoHeight)
	}

	f.mu.Lock()
	f.image.WritePixels(f.pixels)
	f.mu.Unlock()
	screen.DrawImage(f.image, nil)
}

func (g *game) Layout(_, _ int) (int, int) {
	return machine.VideoWidth, machine.VideoHeight
}

// convertFrame converts the framebuffer cells to RGBA pixels. A nil video
// buffer clears the pixels to the background color.
func convertFrame(dst []byte, video []uint32, pitch int) {
	width := pitch / 4
	for y := range machine.VideoHeight {
		for x := range machine.VideoWidth {
			c := background
			offset := y*width + x
			if offset < len(video) && frontend.IsLit(video[offset]) {
				c = foreground
			}

			i := (y*machine.VideoWidth + x) * 4
			dst[i] = c.R
			dst[i+1] = c.G
			dst[i+2] = c.B
			dst[i+3] = c.A
		}
	}
}

// FrameCount returns the number of presented frames.
func (f *Frontend) FrameCount() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.frames
}
