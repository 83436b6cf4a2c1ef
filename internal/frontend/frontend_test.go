package frontend

import (
	"testing"

	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrogolib/assert"
)

func TestKeypadKey(t *testing.T) {
	tests := []struct {
		char rune
		key  byte
	}{
		{'x', 0x0},
		{'1', 0x1},
		{'3', 0x3},
		{'q', 0x4},
		{'E', 0x6},
		{'a', 0x7},
		{'z', 0xA},
		{'c', 0xB},
		{'4', 0xC},
		{'r', 0xD},
		{'f', 0xE},
		{'V', 0xF},
	}

	for _, tt := range tests {
		key, ok := KeypadKey(tt.char)
		assert.True(t, ok, "key %c", tt.char)
		assert.Equal(t, tt.key, key, "key %c", tt.char)
	}

	for _, char := range "05yp \x1b" {
		_, ok := KeypadKey(char)
		assert.False(t, ok, "key %q", char)
	}
}

func TestKeymapCoversKeypad(t *testing.T) {
	assert.Equal(t, machine.KeyCount, len(Keymap))

	seen := map[rune]bool{}
	for _, char := range Keymap {
		assert.False(t, seen[char], "duplicate key %c", char)
		seen[char] = true
	}
}

func TestIsLit(t *testing.T) {
	assert.True(t, IsLit(machine.PixelOn))
	assert.True(t, IsLit(0x00FF00FF))
	assert.False(t, IsLit(machine.PixelOff))
}
