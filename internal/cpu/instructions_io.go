package cpu

import "github.com/retroenv/retrochip8/internal/machine"

// spriteWidth is the fixed width of a sprite row in pixels.
const spriteWidth = 8

// clearScreen 00E0: turn all pixels off.
func (c *CPU) clearScreen(_ opcode) error {
	c.m.ClearVideo()
	return nil
}

// draw Dxyn: draw the n bytes high sprite stored at I at the coordinates in
// Vx and Vy. Sprite pixels are XORed onto the framebuffer, VF is set when a
// lit pixel gets turned off. The origin wraps around the screen and every
// pixel of the sprite wraps around the screen edges.
func (c *CPU) draw(op opcode) error {
	m := c.m
	originX := int(m.Registers[op.x()]) % machine.VideoWidth
	originY := int(m.Registers[op.y()]) % machine.VideoHeight
	height := int(op.n())

	m.Registers[machine.FlagRegister] = 0

	for row := range height {
		sprite := m.ReadByte(m.Index + uint16(row))

		for col := range spriteWidth {
			if sprite&(0x80>>col) == 0 {
				continue
			}
			if m.TogglePixel(originX+col, originY+row) {
				m.Registers[machine.FlagRegister] = 1
			}
		}
	}
	return nil
}

// skipKeyPressed Ex9E: skip the next instruction if the key in Vx is pressed.
func (c *CPU) skipKeyPressed(op opcode) error {
	c.skipIf(c.m.KeyPressed(c.m.Registers[op.x()]))
	return nil
}

// skipKeyNotPressed ExA1: skip the next instruction if the key in Vx is not pressed.
func (c *CPU) skipKeyNotPressed(op opcode) error {
	c.skipIf(!c.m.KeyPressed(c.m.Registers[op.x()]))
	return nil
}

// loadDelayTimer Fx07: Vx = delay timer.
func (c *CPU) loadDelayTimer(op opcode) error {
	c.m.Registers[op.x()] = c.m.DelayTimer
	return nil
}

// waitForKey Fx0A: wait for a key press and store the key in Vx.
// While no key is pressed the program counter is moved back to this
// instruction so that it gets executed again in the next cycle.
func (c *CPU) waitForKey(op opcode) error {
	key, ok := c.m.PressedKey()
	if !ok {
		c.m.PC -= 2
		return nil
	}
	c.m.Registers[op.x()] = key
	return nil
}

// setDelayTimer Fx15: delay timer = Vx.
func (c *CPU) setDelayTimer(op opcode) error {
	c.m.DelayTimer = c.m.Registers[op.x()]
	return nil
}

// setSoundTimer Fx18: sound timer = Vx.
func (c *CPU) setSoundTimer(op opcode) error {
	c.m.SoundTimer = c.m.Registers[op.x()]
	return nil
}
