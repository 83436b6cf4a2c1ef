// Package pipeline orchestrates the load and run workflow stages.
package pipeline

import (
	"context"
	"fmt"
	"io"

	"github.com/retroenv/retrochip8/internal/app"
	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/cpu"
	"github.com/retroenv/retrochip8/internal/detector"
	"github.com/retroenv/retrochip8/internal/disasm"
	"github.com/retroenv/retrochip8/internal/driver"
	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// FrontendConstructor creates the frontend of the given name.
type FrontendConstructor func(logger *log.Logger, name string, scale int) (frontend.Frontend, error)

// Pipeline orchestrates the complete workflow from loading a program image
// to running it or outputting its listing.
type Pipeline struct {
	logger         *log.Logger
	detector       *detector.Detector
	loader         *loader.Loader
	createFrontend FrontendConstructor
}

// New creates a new pipeline.
func New(logger *log.Logger) *Pipeline {
	return &Pipeline{
		logger:         logger,
		detector:       detector.New(logger),
		loader:         loader.New(),
		createFrontend: config.CreateFrontend,
	}
}

// Execute runs the complete pipeline. The listing of the -disasm option is
// written to the given writer.
func (p *Pipeline) Execute(ctx context.Context, opts options.Program, writer io.Writer) error {
	image, err := p.loader.Load(opts.Input)
	if err != nil {
		return fmt.Errorf("loading program image: %w", err)
	}

	if opts.Disasm {
		app.PrintInfo(p.logger, opts, "", len(image))
		if err := disasm.Listing(writer, image, opts.Listing()); err != nil {
			return fmt.Errorf("writing listing: %w", err)
		}
		return nil
	}

	frontendName := p.detector.Detect(opts)
	app.PrintInfo(p.logger, opts, frontendName, len(image))

	return p.ExecuteWithImage(ctx, image, opts, frontendName)
}

// ExecuteWithImage runs an already loaded program image with the given frontend.
func (p *Pipeline) ExecuteWithImage(ctx context.Context, image []byte, opts options.Program, frontendName string) error {
	m := machine.New()
	if err := m.LoadImage(image); err != nil {
		return fmt.Errorf("loading program image into memory: %w", err)
	}

	var cpuOptions []cpu.Option
	if opts.Trace {
		cpuOptions = append(cpuOptions, cpu.WithTracer(p.traceInstruction))
	}
	c := cpu.New(m, cpuOptions...)

	fe, err := p.createFrontend(p.logger, frontendName, opts.Scale)
	if err != nil {
		return fmt.Errorf("creating frontend: %w", err)
	}

	d := driver.New(p.logger, m, c, fe, driver.Options{
		CycleDelay: opts.CycleDelay,
		MaxCycles:  opts.Cycles,
	})
	if err := d.Run(ctx); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

func (p *Pipeline) traceInstruction(address, opcode uint16) {
	p.logger.Debug("Executing instruction",
		log.Hex("pc", address),
		log.Hex("opcode", opcode),
		log.String("instruction", disasm.Format(opcode)))
}
