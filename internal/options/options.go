// Package options contains the program options.
package options

import (
	"time"

	"github.com/retroenv/retrochip8/internal/disasm"
)

// Frontend names.
const (
	FrontendAuto     = "auto"
	FrontendWindow   = "window"
	FrontendTerminal = "terminal"
	FrontendHeadless = "headless"
)

// Default values of the flags.
const (
	DefaultScale      = 10
	DefaultCycleDelay = time.Millisecond
)

// Parameters contains file path options.
type Parameters struct {
	Input string `flag:"i" usage:"input program image file"`
}

// Flags contains behavior options.
type Flags struct {
	Frontend   string        `flag:"f" usage:"frontend: auto, window, terminal, headless" default:"auto"`
	Scale      int           `flag:"scale" usage:"window scale factor" default:"10"`
	CycleDelay time.Duration `flag:"delay" usage:"minimum delay between cycles" default:"1ms"`
	Cycles     uint64        `flag:"cycles" usage:"stop after the given number of cycles, 0 runs until quit"`
	Disasm     bool          `flag:"disasm" usage:"output a disassembly listing instead of running the program"`
	Trace      bool          `flag:"trace" usage:"log every executed instruction"`
	Debug      bool          `flag:"debug" usage:"enable debug logging"`
	Quiet      bool          `flag:"q" usage:"quiet mode"`
}

// OutputFlags contains listing formatting options.
type OutputFlags struct {
	NoHexComments bool `flag:"nohexcomments" usage:"omit hex opcode bytes in comments"`
	NoOffsets     bool `flag:"nooffsets" usage:"omit addresses in comments"`
}

// Program options of the interpreter.
type Program struct {
	Parameters
	Flags
	OutputFlags
}

// NewProgram returns program options with the default flag values set.
func NewProgram() Program {
	return Program{
		Flags: Flags{
			Frontend:   FrontendAuto,
			Scale:      DefaultScale,
			CycleDelay: DefaultCycleDelay,
		},
	}
}

// Listing returns the disassembly listing options.
func (p Program) Listing() disasm.Options {
	return disasm.Options{
		HexComments:    !p.NoHexComments,
		OffsetComments: !p.NoOffsets,
	}
}
