package cpu

import "github.com/retroenv/retrochip8/internal/machine"

// loadIndex Annn: I = nnn.
func (c *CPU) loadIndex(op opcode) error {
	c.m.Index = op.nnn()
	return nil
}

// addIndex Fx1E: I = I + Vx.
func (c *CPU) addIndex(op opcode) error {
	c.m.Index += uint16(c.m.Registers[op.x()])
	return nil
}

// loadGlyph Fx29: I = address of the glyph for the hex digit in Vx.
func (c *CPU) loadGlyph(op opcode) error {
	c.m.Index = machine.GlyphAddress(c.m.Registers[op.x()])
	return nil
}

// storeBCD Fx33: store the decimal digits of Vx at I, I+1 and I+2.
func (c *CPU) storeBCD(op opcode) error {
	m := c.m
	value := m.Registers[op.x()]
	m.WriteByte(m.Index, value/100)
	m.WriteByte(m.Index+1, value/10%10)
	m.WriteByte(m.Index+2, value%10)
	return nil
}

// storeRegisters Fx55: store V0 through Vx in memory starting at I.
func (c *CPU) storeRegisters(op opcode) error {
	m := c.m
	for i := uint16(0); i <= uint16(op.x()); i++ {
		m.WriteByte(m.Index+i, m.Registers[i])
	}
	return nil
}

// loadRegisters Fx65: read V0 through Vx from memory starting at I.
func (c *CPU) loadRegisters(op opcode) error {
	m := c.m
	for i := uint16(0); i <= uint16(op.x()); i++ {
		m.Registers[i] = m.ReadByte(m.Index + i)
	}
	return nil
}
