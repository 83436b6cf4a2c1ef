package cpu

import "github.com/retroenv/retrochip8/internal/machine"

// loadImmediate 6xkk: Vx = kk.
func (c *CPU) loadImmediate(op opcode) error {
	c.m.Registers[op.x()] = op.kk()
	return nil
}

// addImmediate 7xkk: Vx = Vx + kk, the flag register is not affected.
func (c *CPU) addImmediate(op opcode) error {
	c.m.Registers[op.x()] += op.kk()
	return nil
}

// loadRegister 8xy0: Vx = Vy.
func (c *CPU) loadRegister(op opcode) error {
	c.m.Registers[op.x()] = c.m.Registers[op.y()]
	return nil
}

// or 8xy1: Vx = Vx OR Vy.
func (c *CPU) or(op opcode) error {
	c.m.Registers[op.x()] |= c.m.Registers[op.y()]
	return nil
}

// and 8xy2: Vx = Vx AND Vy.
func (c *CPU) and(op opcode) error {
	c.m.Registers[op.x()] &= c.m.Registers[op.y()]
	return nil
}

// xor 8xy3: Vx = Vx XOR Vy.
func (c *CPU) xor(op opcode) error {
	c.m.Registers[op.x()] ^= c.m.Registers[op.y()]
	return nil
}

// addRegister 8xy4: Vx = Vx + Vy, VF = carry.
func (c *CPU) addRegister(op opcode) error {
	vx, vy := c.m.Registers[op.x()], c.m.Registers[op.y()]
	sum := uint16(vx) + uint16(vy)
	c.setWithFlag(op.x(), byte(sum), sum > 0xFF)
	return nil
}

// subtract 8xy5: Vx = Vx - Vy, VF = NOT borrow.
func (c *CPU) subtract(op opcode) error {
	vx, vy := c.m.Registers[op.x()], c.m.Registers[op.y()]
	c.setWithFlag(op.x(), vx-vy, vx > vy)
	return nil
}

// shiftRight 8xy6: VF = least significant bit of Vx, Vx = Vx >> 1.
func (c *CPU) shiftRight(op opcode) error {
	vx := c.m.Registers[op.x()]
	c.setWithFlag(op.x(), vx>>1, vx&0x01 != 0)
	return nil
}

// subtractReverse 8xy7: Vx = Vy - Vx, VF = NOT borrow.
func (c *CPU) subtractReverse(op opcode) error {
	vx, vy := c.m.Registers[op.x()], c.m.Registers[op.y()]
	c.setWithFlag(op.x(), vy-vx, vy > vx)
	return nil
}

// shiftLeft 8xyE: VF = most significant bit of Vx, Vx = Vx << 1.
func (c *CPU) shiftLeft(op opcode) error {
	vx := c.m.Registers[op.x()]
	c.setWithFlag(op.x(), vx<<1, vx&0x80 != 0)
	return nil
}

// randomMasked Cxkk: Vx = random byte AND kk.
func (c *CPU) randomMasked(op opcode) error {
	c.m.Registers[op.x()] = c.random() & op.kk()
	return nil
}

// setWithFlag writes the result register first and the flag register last,
// an instruction that targets VF ends up with the flag value in VF.
func (c *CPU) setWithFlag(register uint8, value byte, flag bool) {
	c.m.Registers[register] = value
	c.m.Registers[machine.FlagRegister] = flagValue(flag)
}

func flagValue(flag bool) byte {
	if flag {
		return 1
	}
	return 0
}
