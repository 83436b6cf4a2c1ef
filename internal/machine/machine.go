// Package machine contains the CHIP-8 machine state that the execution core operates on.
package machine

import (
	"errors"
	"fmt"
)

// CHIP-8 memory layout constants.
//
// CHIP-8 memory map (4KB total):
//
//	0x000-0x04F: Built-in hexadecimal glyph table (16 glyphs of 5 bytes)
//	0x050-0x1FF: Reserved interpreter area
//	0x200-0xFFF: Program image (3584 bytes)
const (
	// MemorySize is the number of addressable bytes.
	MemorySize = 0x1000

	// AddressMask limits an address to the 12 bit address space.
	AddressMask = MemorySize - 1

	// ProgramStart is the memory address where program images are loaded and execution begins.
	ProgramStart = 0x200

	// MaxImageSize is the largest program image that fits between ProgramStart and the end of memory.
	MaxImageSize = MemorySize - ProgramStart

	// GlyphTableStart is the memory address of the first glyph.
	GlyphTableStart = 0x000

	// GlyphSize is the number of bytes per glyph, one byte per row.
	GlyphSize = 5

	// GlyphTableSize is the size of the complete glyph table in bytes.
	GlyphTableSize = 16 * GlyphSize
)

// Register, stack and input dimensions.
const (
	RegisterCount = 16
	FlagRegister  = 0xF
	StackSize     = 16
	KeyCount      = 16
)

// Framebuffer constants.
const (
	VideoWidth  = 64
	VideoHeight = 32

	// PixelOn is the sentinel value of a lit cell.
	PixelOn uint32 = 0xFFFFFFFF
	// PixelOff is the sentinel value of an unlit cell.
	PixelOff uint32 = 0

	// VideoPitch is the row stride of the framebuffer in bytes.
	VideoPitch = VideoWidth * 4
)

var (
	// ErrEmptyImage is returned when a program image without any bytes is loaded.
	ErrEmptyImage = errors.New("empty program image")
	// ErrImageTooLarge is returned when a program image does not fit into program memory.
	ErrImageTooLarge = errors.New("program image too large")
)

// Machine holds the complete state of a CHIP-8 virtual machine.
// It is not safe for concurrent use, all access has to happen from the
// goroutine that executes the cycles.
type Machine struct {
	Memory    [MemorySize]byte
	Registers [RegisterCount]byte

	Index uint16 // memory address register I
	PC    uint16 // address of the next instruction to fetch

	Stack [StackSize]uint16
	SP    uint8 // number of stack entries in use

	DelayTimer uint8
	SoundTimer uint8

	Video  [VideoWidth * VideoHeight]uint32
	Keypad [KeyCount]bool

	Opcode uint16 // most recently fetched instruction word
}

// New returns a machine with zeroed state, the glyph table installed
// and the program counter set to the program start address.
func New() *Machine {
	m := &Machine{
		PC: ProgramStart,
	}
	copy(m.Memory[GlyphTableStart:], glyphs[:])
	return m
}

// LoadImage copies the program image into memory starting at ProgramStart.
// The image is validated before any memory is modified. Registers, stack
// and timers are not reset.
func (m *Machine) LoadImage(image []byte) error {
	switch {
	case len(image) == 0:
		return ErrEmptyImage
	case len(image) > MaxImageSize:
		return fmt.Errorf("%w: %d bytes exceed the maximum of %d bytes", ErrImageTooLarge, len(image), MaxImageSize)
	}

	copy(m.Memory[ProgramStart:], image)
	return nil
}

// ReadByte returns the byte at the given address, the address wraps around at the end of memory.
func (m *Machine) ReadByte(address uint16) byte {
	return m.Memory[address&AddressMask]
}

// ReadWord returns the big-endian word at the given address.
func (m *Machine) ReadWord(address uint16) uint16 {
	return uint16(m.ReadByte(address))<<8 | uint16(m.ReadByte(address+1))
}

// WriteByte writes a byte to the given address, the address wraps around at the end of memory.
// Writes into the glyph table are ignored as the table is read-only at runtime.
func (m *Machine) WriteByte(address uint16, value byte) {
	address &= AddressMask
	if address < GlyphTableStart+GlyphTableSize {
		return
	}
	m.Memory[address] = value
}

// GlyphAddress returns the memory address of the glyph for the given hex digit.
// Only the low nibble of the digit is used.
func GlyphAddress(digit byte) uint16 {
	return GlyphTableStart + GlyphSize*uint16(digit&0x0F)
}

// ClearVideo turns all pixels of the framebuffer off.
func (m *Machine) ClearVideo() {
	for i := range m.Video {
		m.Video[i] = PixelOff
	}
}

// Pixel returns whether the pixel at the given coordinates is lit.
// Coordinates wrap around the framebuffer edges.
func (m *Machine) Pixel(x, y int) bool {
	return m.Video[videoOffset(x, y)] == PixelOn
}

// TogglePixel inverts the pixel at the given coordinates and returns
// whether the pixel was lit before. Coordinates wrap around the framebuffer edges.
func (m *Machine) TogglePixel(x, y int) bool {
	offset := videoOffset(x, y)
	wasLit := m.Video[offset] == PixelOn
	m.Video[offset] ^= PixelOn
	return wasLit
}

func videoOffset(x, y int) int {
	x %= VideoWidth
	if x < 0 {
		x += VideoWidth
	}
	y %= VideoHeight
	if y < 0 {
		y += VideoHeight
	}
	return y*VideoWidth + x
}

// SetKey sets the pressed state of a keypad key, only the low nibble of the key is used.
func (m *Machine) SetKey(key byte, pressed bool) {
	m.Keypad[key&0x0F] = pressed
}

// KeyPressed returns whether the keypad key is pressed, only the low nibble of the key is used.
func (m *Machine) KeyPressed(key byte) bool {
	return m.Keypad[key&0x0F]
}

// PressedKey returns the lowest numbered key that is currently pressed.
func (m *Machine) PressedKey() (byte, bool) {
	for key, pressed := range m.Keypad {
		if pressed {
			return byte(key), true
		}
	}
	return 0, false
}

// DecrementTimers decrements both timers by one if they are not zero yet.
func (m *Machine) DecrementTimers() {
	if m.DelayTimer > 0 {
		m.DelayTimer--
	}
	if m.SoundTimer > 0 {
		m.SoundTimer--
	}
}
