package cpu

// opcode is a fetched 16 bit instruction word with accessors for its fields.
//
//	F000: family
//	0F00: x register index
//	00F0: y register index
//	000F: n, low nibble
//	00FF: kk, 8 bit immediate
//	0FFF: nnn, 12 bit address
type opcode uint16

func (o opcode) family() int {
	return int(o >> 12)
}

func (o opcode) x() uint8 {
	return uint8(o>>8) & 0x0F
}

func (o opcode) y() uint8 {
	return uint8(o>>4) & 0x0F
}

func (o opcode) n() uint8 {
	return uint8(o) & 0x0F
}

func (o opcode) kk() uint8 {
	return uint8(o)
}

func (o opcode) nnn() uint16 {
	return uint16(o) & 0x0FFF
}
