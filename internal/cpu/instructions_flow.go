package cpu

// returnFromSubroutine 00EE: pop the return address from the stack.
func (c *CPU) returnFromSubroutine(_ opcode) error {
	m := c.m
	if m.SP == 0 {
		return ErrStackUnderflow
	}
	m.SP--
	m.PC = m.Stack[m.SP]
	return nil
}

// jump 1nnn: jump to address nnn.
func (c *CPU) jump(op opcode) error {
	c.m.PC = op.nnn()
	return nil
}

// call 2nnn: push the return address and jump to the subroutine at nnn.
func (c *CPU) call(op opcode) error {
	m := c.m
	if int(m.SP) >= len(m.Stack) {
		return ErrStackOverflow
	}
	m.Stack[m.SP] = m.PC
	m.SP++
	m.PC = op.nnn()
	return nil
}

// skipEqualImmediate 3xkk: skip the next instruction if Vx == kk.
func (c *CPU) skipEqualImmediate(op opcode) error {
	c.skipIf(c.m.Registers[op.x()] == op.kk())
	return nil
}

// skipNotEqualImmediate 4xkk: skip the next instruction if Vx != kk.
func (c *CPU) skipNotEqualImmediate(op opcode) error {
	c.skipIf(c.m.Registers[op.x()] != op.kk())
	return nil
}

// skipEqualRegister 5xy0: skip the next instruction if Vx == Vy.
func (c *CPU) skipEqualRegister(op opcode) error {
	c.skipIf(c.m.Registers[op.x()] == c.m.Registers[op.y()])
	return nil
}

// skipNotEqualRegister 9xy0: skip the next instruction if Vx != Vy.
func (c *CPU) skipNotEqualRegister(op opcode) error {
	c.skipIf(c.m.Registers[op.x()] != c.m.Registers[op.y()])
	return nil
}

// jumpOffset Bnnn: jump to address nnn + V0.
func (c *CPU) jumpOffset(op opcode) error {
	c.m.PC = op.nnn() + uint16(c.m.Registers[0])
	return nil
}

func (c *CPU) skipIf(condition bool) {
	if condition {
		c.m.PC += 2
	}
}
