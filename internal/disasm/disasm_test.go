package disasm

import (
	"bytes"
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
	"github.com/retroenv/retrogolib/assert"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name        string
		word        uint16
		instruction *chip8.Instruction
	}{
		{"cls", 0x00E0, chip8.ClsInst},
		{"ret", 0x00EE, chip8.RetInst},
		{"jp", 0x1234, chip8.JpInst},
		{"call", 0x2345, chip8.CallInst},
		{"se immediate", 0x3A05, chip8.SeInst},
		{"sne immediate", 0x4A05, chip8.SneInst},
		{"ld immediate", 0x6A05, chip8.LdInst},
		{"add immediate", 0x7A05, chip8.AddInst},
		{"or", 0x8121, chip8.OrInst},
		{"and", 0x8122, chip8.AndInst},
		{"xor", 0x8123, chip8.XorInst},
		{"sub", 0x8125, chip8.SubInst},
		{"shr", 0x8126, chip8.ShrInst},
		{"subn", 0x8127, chip8.SubnInst},
		{"shl", 0x812E, chip8.ShlInst},
		{"ld index", 0xA123, chip8.LdInst},
		{"jp offset", 0xB123, chip8.JpInst},
		{"rnd", 0xC1FF, chip8.RndInst},
		{"drw", 0xD125, chip8.DrwInst},
		{"skp", 0xE19E, chip8.SkpInst},
		{"sknp", 0xE1A1, chip8.SknpInst},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op, ok := Decode(tt.word)
			assert.True(t, ok)
			assert.Equal(t, tt.instruction.Name, op.Instruction.Name)
			assert.Equal(t, tt.instruction.Name, Name(tt.word))
		})
	}
}

func TestDecodeUnknown(t *testing.T) {
	_, ok := Decode(0xF0FF)
	assert.False(t, ok)
	assert.Equal(t, "", Name(0xF0FF))
	assert.Equal(t, ".word $F0FF", Format(0xF0FF))
}

func TestFormat(t *testing.T) {
	tests := []struct {
		word     uint16
		expected string
	}{
		{0x00E0, chip8.ClsName},
		{0x00EE, chip8.RetName},
		{0x1234, chip8.JpName + " $234"},
		{0xB234, chip8.JpName + " V0, $234"},
		{0x2345, chip8.CallName + " $345"},
		{0x3A05, chip8.SeName + " VA, $05"},
		{0x9AB0, chip8.SneName + " VA, VB"},
		{0x6A0F, chip8.LdName + " VA, $0F"},
		{0x8AB0, chip8.LdName + " VA, VB"},
		{0xA123, chip8.LdName + " I, $123"},
		{0x7A01, chip8.AddName + " VA, $01"},
		{0x8AB4, chip8.AddName + " VA, VB"},
		{0x8AB3, chip8.XorName + " VA, VB"},
		{0x8A06, chip8.ShrName + " VA"},
		{0xC30F, chip8.RndName + " V3, $0F"},
		{0xD125, chip8.DrwName + " V1, V2, $5"},
		{0xE19E, chip8.SkpName + " V1"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, Format(tt.word))
		})
	}
}

func TestFormatLoadSpecial(t *testing.T) {
	tests := []struct {
		selector uint16
		expected string
	}{
		{0x07, "V5, DT"},
		{0x0A, "V5, K"},
		{0x15, "DT, V5"},
		{0x18, "ST, V5"},
		{0x29, "F, V5"},
		{0x33, "B, V5"},
		{0x55, "[I], V5"},
		{0x65, "V5, [I]"},
		{0x99, ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, formatLoadSpecialInstruction(5, tt.selector))
	}
	assert.Equal(t, "I, V5", formatAddInstruction(0xF51E))
}

func TestListing(t *testing.T) {
	image := []byte{
		0x22, 0x06, // 200: call $206
		0x12, 0x04, // 202: jp $202
		0x12, 0x04, // 204: jp $204
		0x00, 0xEE, // 206: ret
		0xF0, 0xFF, // 208: unknown
		0xAB, //       20A: trailing byte
	}

	var buf bytes.Buffer
	err := Listing(&buf, image, Options{HexComments: true, OffsetComments: true})
	assert.NoError(t, err)

	output := buf.String()
	lines := strings.Split(strings.TrimSpace(output), "\n")

	assert.Equal(t, "Start:", lines[0])
	assert.Contains(t, output, chip8.CallName+" _func_0206")
	assert.Contains(t, output, chip8.JpName+" _label_0204")
	assert.Contains(t, output, "_label_0204:\n")
	assert.Contains(t, output, "_func_0206:\n")
	assert.Contains(t, output, ".word $F0FF")
	assert.Contains(t, output, ".byte $AB")
	assert.Contains(t, output, "; $0200 22 06")
	assert.Contains(t, output, "; $020A AB")
}

func TestListingWithoutComments(t *testing.T) {
	var buf bytes.Buffer
	err := Listing(&buf, []byte{0x00, 0xE0, 0x13, 0x00}, Options{})
	assert.NoError(t, err)

	output := buf.String()
	assert.False(t, strings.Contains(output, ";"))
	// the jump target is outside of the image and keeps its address
	assert.Contains(t, output, chip8.JpName+" $300")
}
