// Package cpu implements the CHIP-8 execution core that fetches, decodes and
// executes instructions on a machine state.
package cpu

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/retroenv/retrochip8/internal/machine"
)

var (
	// ErrStackOverflow is returned when a subroutine call exceeds the stack size.
	ErrStackOverflow = errors.New("stack overflow")
	// ErrStackUnderflow is returned when returning from a subroutine with an empty stack.
	ErrStackUnderflow = errors.New("stack underflow")
)

// handler executes a decoded instruction. Handlers that return an error
// must not have modified the machine state.
type handler func(c *CPU, op opcode) error

// Tracer gets called before every instruction execution with the address
// and the fetched instruction word.
type Tracer func(address, opcode uint16)

// RandomSource returns a uniformly distributed random byte.
type RandomSource func() byte

// Option configures a CPU.
type Option func(*CPU)

// WithRandom sets the random byte source used by the RND instruction.
func WithRandom(random RandomSource) Option {
	return func(c *CPU) {
		c.random = random
	}
}

// WithTracer sets a tracer that is called for every executed instruction.
func WithTracer(tracer Tracer) Option {
	return func(c *CPU) {
		c.tracer = tracer
	}
}

// CPU is the execution core. It owns the instruction dispatch tables and
// operates on the referenced machine state.
type CPU struct {
	m      *machine.Machine
	random RandomSource
	tracer Tracer

	families [16]handler  // indexed by the top nibble
	system   [16]handler  // 0x0 family, indexed by the low nibble
	alu      [16]handler  // 0x8 family, indexed by the low nibble
	keys     [16]handler  // 0xE family, indexed by the low nibble
	misc     [256]handler // 0xF family, indexed by the low byte
}

// New returns a new execution core for the given machine.
func New(m *machine.Machine, options ...Option) *CPU {
	c := &CPU{
		m:      m,
		random: defaultRandom,
	}
	for _, option := range options {
		option(c)
	}
	c.initializeDispatch()
	return c
}

func defaultRandom() byte {
	return byte(rand.UintN(256))
}

// Machine returns the machine state that the CPU operates on.
func (c *CPU) Machine() *machine.Machine {
	return c.m
}

// Step executes a single cycle: fetch the instruction at the program counter,
// advance the program counter, execute the instruction and decrement the timers.
// If the instruction fails, the cycle is rolled back and the machine state
// stays unchanged. A failed cycle does not count as a cycle, the timers are
// not decremented.
func (c *CPU) Step() error {
	m := c.m
	address := m.PC
	previous := m.Opcode

	m.Opcode = m.ReadWord(address)
	m.PC += 2

	if c.tracer != nil {
		c.tracer(address, m.Opcode)
	}

	if err := c.execute(opcode(m.Opcode)); err != nil {
		op := m.Opcode
		m.PC = address
		m.Opcode = previous
		return fmt.Errorf("executing opcode %04X at address %03X: %w", op, address, err)
	}

	m.DecrementTimers()
	return nil
}

// execute dispatches the instruction to its handler, instructions without
// a handler are ignored.
func (c *CPU) execute(op opcode) error {
	h := c.families[op.family()]
	if h == nil {
		return nil
	}
	return h(c, op)
}

// initializeDispatch builds the dispatch tables of all instruction families.
func (c *CPU) initializeDispatch() {
	c.families = [16]handler{
		0x0: dispatchTable(c.system[:], opcode.n),
		0x1: (*CPU).jump,
		0x2: (*CPU).call,
		0x3: (*CPU).skipEqualImmediate,
		0x4: (*CPU).skipNotEqualImmediate,
		0x5: (*CPU).skipEqualRegister,
		0x6: (*CPU).loadImmediate,
		0x7: (*CPU).addImmediate,
		0x8: dispatchTable(c.alu[:], opcode.n),
		0x9: (*CPU).skipNotEqualRegister,
		0xA: (*CPU).loadIndex,
		0xB: (*CPU).jumpOffset,
		0xC: (*CPU).randomMasked,
		0xD: (*CPU).draw,
		0xE: dispatchTable(c.keys[:], opcode.n),
		0xF: dispatchTable(c.misc[:], opcode.kk),
	}

	c.system[0x0] = (*CPU).clearScreen
	c.system[0xE] = (*CPU).returnFromSubroutine

	c.alu[0x0] = (*CPU).loadRegister
	c.alu[0x1] = (*CPU).or
	c.alu[0x2] = (*CPU).and
	c.alu[0x3] = (*CPU).xor
	c.alu[0x4] = (*CPU).addRegister
	c.alu[0x5] = (*CPU).subtract
	c.alu[0x6] = (*CPU).shiftRight
	c.alu[0x7] = (*CPU).subtractReverse
	c.alu[0xE] = (*CPU).shiftLeft

	c.keys[0x1] = (*CPU).skipKeyNotPressed
	c.keys[0xE] = (*CPU).skipKeyPressed

	c.misc[0x07] = (*CPU).loadDelayTimer
	c.misc[0x0A] = (*CPU).waitForKey
	c.misc[0x15] = (*CPU).setDelayTimer
	c.misc[0x18] = (*CPU).setSoundTimer
	c.misc[0x1E] = (*CPU).addIndex
	c.misc[0x29] = (*CPU).loadGlyph
	c.misc[0x33] = (*CPU).storeBCD
	c.misc[0x55] = (*CPU).storeRegisters
	c.misc[0x65] = (*CPU).loadRegisters
}

// dispatchTable returns a handler that dispatches to the handler of the given
// table, selected by the given opcode field.
func dispatchTable(table []handler, selector func(opcode) uint8) handler {
	return func(c *CPU, op opcode) error {
		h := table[selector(op)]
		if h == nil {
			return nil
		}
		return h(c, op)
	}
}
