package cpu

import (
	"testing"

	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrogolib/assert"
)

func TestClearScreen(t *testing.T) {
	c, m := newTestCPU(t, 0x00E0)
	for i := range m.Video {
		m.Video[i] = machine.PixelOn
	}

	step(t, c, 1)
	for _, pixel := range m.Video {
		assert.Equal(t, machine.PixelOff, pixel)
	}
}

func TestDrawCollision(t *testing.T) {
	c, m := newTestCPU(t,
		0x00E0, // cls
		0xA300, // ld I, $300
		0xD011, // drw V0, V1, 1
		0xD011, // drw V0, V1, 1
	)
	m.Memory[0x300] = 0xFF

	step(t, c, 3)
	assert.Equal(t, byte(0), m.Registers[machine.FlagRegister])
	for x := range 8 {
		assert.True(t, m.Pixel(x, 0), "pixel %d", x)
	}
	assert.False(t, m.Pixel(8, 0))

	step(t, c, 1)
	assert.Equal(t, byte(1), m.Registers[machine.FlagRegister])
	for _, pixel := range m.Video {
		assert.Equal(t, machine.PixelOff, pixel)
	}
}

func TestDrawResetsFlag(t *testing.T) {
	c, m := newTestCPU(t, 0xD011)
	m.Index = 0x300
	m.Memory[0x300] = 0x80
	m.Registers[machine.FlagRegister] = 1

	step(t, c, 1)
	assert.Equal(t, byte(0), m.Registers[machine.FlagRegister])
	assert.True(t, m.Pixel(0, 0))
}

func TestDrawGlyph(t *testing.T) {
	c, m := newTestCPU(t,
		0xF029, // ld F, V0
		0xD125, // drw V1, V2, 5
	)
	m.Registers[0] = 0x1
	m.Registers[1] = 10
	m.Registers[2] = 3

	step(t, c, 2)

	// glyph 1: 0x20, 0x60, 0x20, 0x20, 0x70
	expected := []string{
		"..#.....",
		".##.....",
		"..#.....",
		"..#.....",
		".###....",
	}
	for row, line := range expected {
		for col, ch := range line {
			assert.Equal(t, ch == '#', m.Pixel(10+col, 3+row), "pixel %d,%d", col, row)
		}
	}
}

func TestDrawWrapsAround(t *testing.T) {
	t.Run("origin wraps", func(t *testing.T) {
		c, m := newTestCPU(t, 0xD011)
		m.Index = 0x300
		m.Memory[0x300] = 0x80
		m.Registers[0] = machine.VideoWidth + 5
		m.Registers[1] = machine.VideoHeight + 7

		step(t, c, 1)
		assert.True(t, m.Pixel(5, 7))
	})

	t.Run("sprite pixels wrap at the edges", func(t *testing.T) {
		c, m := newTestCPU(t, 0xD012)
		m.Index = 0x300
		m.Memory[0x300] = 0xFF
		m.Memory[0x301] = 0xFF
		m.Registers[0] = machine.VideoWidth - 4
		m.Registers[1] = machine.VideoHeight - 1

		step(t, c, 1)
		for col := range 8 {
			x := (machine.VideoWidth - 4 + col) % machine.VideoWidth
			assert.True(t, m.Pixel(x, machine.VideoHeight-1), "bottom row pixel %d", x)
			assert.True(t, m.Pixel(x, 0), "wrapped top row pixel %d", x)
		}

		lit := 0
		for _, pixel := range m.Video {
			if pixel == machine.PixelOn {
				lit++
			}
		}
		assert.Equal(t, 16, lit)
	})

	t.Run("wrapped pixels collide", func(t *testing.T) {
		c, m := newTestCPU(t, 0xD011)
		m.Index = 0x300
		m.Memory[0x300] = 0x01
		m.Registers[0] = machine.VideoWidth - 1
		m.Video[6] = machine.PixelOn

		step(t, c, 1)
		assert.Equal(t, byte(1), m.Registers[machine.FlagRegister])
		assert.False(t, m.Pixel(6, 0))
	})
}

func TestDrawZeroHeight(t *testing.T) {
	c, m := newTestCPU(t, 0xD010)
	m.Index = 0x300
	m.Memory[0x300] = 0xFF
	m.Registers[machine.FlagRegister] = 1

	step(t, c, 1)
	assert.Equal(t, byte(0), m.Registers[machine.FlagRegister])
	for _, pixel := range m.Video {
		assert.Equal(t, machine.PixelOff, pixel)
	}
}

func TestSkipKeyInstructions(t *testing.T) {
	tests := []struct {
		name    string
		opcode  uint16
		pressed bool
		wantPC  uint16
	}{
		{"skp pressed", 0xE39E, true, 0x204},
		{"skp released", 0xE39E, false, 0x202},
		{"sknp pressed", 0xE3A1, true, 0x202},
		{"sknp released", 0xE3A1, false, 0x204},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, m := newTestCPU(t, tt.opcode)
			m.Registers[3] = 0xC
			m.Keypad[0xC] = tt.pressed

			step(t, c, 1)
			assert.Equal(t, tt.wantPC, m.PC)
		})
	}
}

func TestWaitForKey(t *testing.T) {
	c, m := newTestCPU(t, 0xF00A)
	m.DelayTimer = 3

	step(t, c, 1)
	assert.Equal(t, uint16(0x200), m.PC)
	assert.Equal(t, uint8(2), m.DelayTimer, "timers keep running while waiting")

	step(t, c, 1)
	assert.Equal(t, uint16(0x200), m.PC)

	m.Keypad[3] = true
	m.Keypad[9] = true
	step(t, c, 1)
	assert.Equal(t, byte(3), m.Registers[0])
	assert.Equal(t, uint16(0x202), m.PC)
}
