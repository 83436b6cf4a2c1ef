// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/retroenv/retrochip8/internal/options"
)

var validFrontends = []string{
	options.FrontendAuto,
	options.FrontendWindow,
	options.FrontendTerminal,
	options.FrontendHeadless,
}

// ParseFlags parses the command line flags of the process and returns the program options.
func ParseFlags() (options.Program, error) {
	return Parse(os.Args[0], os.Args[1:])
}

// Parse parses the given command line arguments and returns the program options.
func Parse(name string, arguments []string) (options.Program, error) {
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	opts := options.NewProgram()
	readOptionFlags(flags, &opts)

	err := flags.Parse(arguments)
	if err != nil {
		return opts, &UsageError{flags: flags, msg: err.Error()}
	}

	args := flags.Args()
	switch {
	case len(args) == 0 && opts.Input == "":
		return opts, &UsageError{flags: flags}
	case len(args) > 0 && opts.Input != "":
		return opts, &UsageError{flags: flags, msg: "input file given both as -i flag and as argument"}
	}

	if err := validateArgs(flags, args); err != nil {
		return opts, err
	}
	if len(args) > 0 {
		opts.Input = args[0]
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, err
	}
	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the usage information and all flag defaults.
func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: retrochip8 [options] <program image>\n\n")
	if e.flags != nil {
		e.flags.SetOutput(os.Stdout)
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(flags *flag.FlagSet, args []string) error {
	for i, arg := range args {
		if i > 0 && arg != "" && arg[0] == '-' {
			return &UsageError{
				flags: flags,
				msg:   fmt.Sprintf("Potential argument %s found after program image, please pass the program image as last argument", arg),
			}
		}
	}
	if len(args) > 1 {
		return &UsageError{flags: flags, msg: "only one program image can be run"}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	opts.Frontend = strings.ToLower(strings.TrimSpace(opts.Frontend))
	if opts.Frontend == "" {
		opts.Frontend = options.FrontendAuto
	}
	if !slices.Contains(validFrontends, opts.Frontend) {
		return fmt.Errorf("unsupported frontend: %s. Valid options: %s",
			opts.Frontend, strings.Join(validFrontends, ", "))
	}

	if opts.Scale < 1 {
		return fmt.Errorf("invalid scale factor %d, must be at least 1", opts.Scale)
	}
	if opts.CycleDelay < 0 {
		return fmt.Errorf("invalid cycle delay %s, must not be negative", opts.CycleDelay)
	}
	if opts.Trace {
		opts.Debug = true
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Input, "i", "", "name of the input program image file")
	flags.StringVar(&opts.Frontend, "f", opts.Frontend, "frontend to use (auto/window/terminal/headless)")
	flags.IntVar(&opts.Scale, "scale", opts.Scale, "window scale factor of the 64x32 display")
	flags.DurationVar(&opts.CycleDelay, "delay", opts.CycleDelay, "minimum delay between two CPU cycles")
	flags.Uint64Var(&opts.Cycles, "cycles", 0, "stop after the given number of CPU cycles, 0 runs until quit")
	flags.BoolVar(&opts.Disasm, "disasm", false, "output a disassembly listing of the program image instead of running it")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction, implies -debug")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
	flags.BoolVar(&opts.NoHexComments, "nohexcomments", false, "do not output opcode bytes as hex values in listing comments")
	flags.BoolVar(&opts.NoOffsets, "nooffsets", false, "do not output addresses in listing comments")
}
