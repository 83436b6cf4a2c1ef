// Package terminal provides a text terminal frontend that renders the
// framebuffer with half block characters and reads keys from a raw mode stdin.
package terminal

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/term"
)

// Terminals only report key presses, a key counts as held for this duration
// after its last press or auto repeat.
const keyHoldDuration = 150 * time.Millisecond

const (
	ctrlC = 0x03

	cursorHome  = "\x1b[H"
	clearScreen = "\x1b[2J"
	hideCursor  = "\x1b[?25l"
	showCursor  = "\x1b[?25h"
	resetColors = "\x1b[0m"
)

// Frontend renders into a terminal.
type Frontend struct {
	logger *log.Logger
	in     io.Reader
	out    io.Writer
	fd     int
	now    func() time.Time

	oldState *term.State
	input    chan byte
	started  sync.Once
	closer   io.Closer     // stops the reader, nil for the process stdin
	done     chan struct{} // closed when the reader returned

	held      [machine.KeyCount]time.Time
	lastFrame string
}

// New returns a terminal frontend for the process stdin and stdout.
func New(logger *log.Logger) *Frontend {
	f := newFrontend(logger, os.Stdin, os.Stdout)
	f.fd = int(os.Stdin.Fd())
	f.closer = nil
	return f
}

func newFrontend(logger *log.Logger, in io.Reader, out io.Writer) *Frontend {
	f := &Frontend{
		logger: logger,
		in:     in,
		out:    out,
		fd:     -1,
		now:    time.Now,
		input:  make(chan byte, 64),
		done:   make(chan struct{}),
	}
	if closer, ok := in.(io.Closer); ok {
		f.closer = closer
	}
	return f
}

// Start switches the terminal into raw mode and starts reading key presses.
func (f *Frontend) Start() error {
	if f.fd >= 0 && term.IsTerminal(f.fd) {
		oldState, err := term.MakeRaw(f.fd)
		if err != nil {
			return fmt.Errorf("setting terminal raw mode: %w", err)
		}
		f.oldState = oldState
	} else {
		f.logger.Debug("Input is not a terminal, raw mode disabled")
	}

	f.started.Do(func() {
		go f.readInput()
	})

	if _, err := io.WriteString(f.out, hideCursor+clearScreen); err != nil {
		return fmt.Errorf("initializing terminal: %w", err)
	}
	return nil
}

// Close restores the terminal state and closes a closable input to stop the
// reader. The reader of the process stdin can not be interrupted and stays
// blocked in Read until the process exits.
func (f *Frontend) Close() error {
	_, err := io.WriteString(f.out, resetColors+showCursor+"\r\n")

	if f.closer != nil {
		if closeErr := f.closer.Close(); closeErr != nil {
			f.logger.Debug("Closing terminal input failed", log.Err(closeErr))
		}
	}

	if f.oldState != nil {
		if restoreErr := term.Restore(f.fd, f.oldState); restoreErr != nil {
			return fmt.Errorf("restoring terminal state: %w", restoreErr)
		}
		f.oldState = nil
	}
	if err != nil {
		return fmt.Errorf("resetting terminal: %w", err)
	}
	return nil
}

// readInput forwards the read key bytes to the input channel until the reader
// fails. Bytes are dropped while the channel is full.
func (f *Frontend) readInput() {
	defer close(f.done)

	buf := make([]byte, 16)
	for {
		n, err := f.in.Read(buf)
		for _, b := range keyBytes(buf[:n]) {
			select {
			case f.input <- b:
			default:
			}
		}
		if err != nil {
			if err != io.EOF {
				f.logger.Debug("Reading terminal input failed", log.Err(err))
			}
			return
		}
	}
}

// keyBytes removes the escape sequences of cursor and function keys from the
// read bytes, filtering in place. The escape key is reported as a lone escape
// byte at the end of a read or one that is followed by another escape.
// A sequence that is split across two reads leaks its tail as key bytes.
func keyBytes(data []byte) []byte {
	keys := data[:0]
	for i := 0; i < len(data); i++ {
		b := data[i]
		if b != frontend.QuitKey || i+1 == len(data) {
			keys = append(keys, b)
			continue
		}

		switch data[i+1] {
		case '[': // CSI: parameter and intermediate bytes up to the final byte
			i += 2
			for i < len(data) && (data[i] < 0x40 || data[i] > 0x7E) {
				i++
			}
		case 'O': // SS3: a single final byte
			i += 2
		case frontend.QuitKey:
			keys = append(keys, b)
		default:
			// Alt+key, the key itself is kept
		}
	}
	return keys
}

// Poll processes all pending key presses and releases keys whose hold
// duration expired. Escape and Ctrl+C quit.
func (f *Frontend) Poll(keypad *[machine.KeyCount]bool) bool {
	now := f.now()
	quit := false

	for pending := true; pending; {
		select {
		case b := <-f.input:
			switch b {
			case frontend.QuitKey, ctrlC:
				quit = true
			default:
				if key, ok := frontend.KeypadKey(rune(b)); ok {
					f.held[key] = now.Add(keyHoldDuration)
				}
			}
		default:
			pending = false
		}
	}

	for key, until := range f.held {
		keypad[key] = now.Before(until)
	}
	return quit
}

// Present draws the framebuffer if it changed since the last call.
func (f *Frontend) Present(video []uint32, pitch int) error {
	frame := render(video, pitch)
	if frame == f.lastFrame {
		return nil
	}
	f.lastFrame = frame

	if _, err := io.WriteString(f.out, cursorHome+frame); err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}
	return nil
}

// render converts the framebuffer to text, every character covers two
// pixel rows.
func render(video []uint32, pitch int) string {
	width := pitch / 4
	lit := func(x, y int) bool {
		offset := y*width + x
		return offset < len(video) && frontend.IsLit(video[offset])
	}

	var sb strings.Builder
	sb.Grow(machine.VideoHeight / 2 * (machine.VideoWidth*3 + 2))

	for y := 0; y < machine.VideoHeight; y += 2 {
		for x := range machine.VideoWidth {
			top, bottom := lit(x, y), lit(x, y+1)
			switch {
			case top && bottom:
				sb.WriteRune('█')
			case top:
				sb.WriteRune('▀')
			case bottom:
				sb.WriteRune('▄')
			default:
				sb.WriteByte(' ')
			}
		}
		sb.WriteString("\r\n")
	}
	return sb.String()
}
