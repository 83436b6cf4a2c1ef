// Package driver paces the execution core and connects it to a frontend.
package driver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/retroenv/retrochip8/internal/cpu"
	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrogolib/log"
)

const (
	// maxBurst limits the cycles executed by a single tick. A backlog
	// beyond it, for example after the process was suspended, is dropped.
	maxBurst = 64

	// frameInterval is the longest time between two ticks of the own loop.
	frameInterval = time.Second / 60
)

// Options controls the pacing of the driver.
type Options struct {
	CycleDelay time.Duration // minimum delay between two cycles, 0 runs bursts of cycles per tick
	MaxCycles  uint64        // stop after this many cycles, 0 runs until quit
}

// Driver runs the execution core in paced cycles, feeds the frontend input
// into the machine keypad and presents the framebuffer.
type Driver struct {
	logger   *log.Logger
	machine  *machine.Machine
	cpu      *cpu.CPU
	frontend frontend.Frontend
	options  Options

	last   time.Time
	cycles uint64
}

// New returns a new driver.
func New(logger *log.Logger, m *machine.Machine, c *cpu.CPU, fe frontend.Frontend, options Options) *Driver {
	return &Driver{
		logger:   logger,
		machine:  m,
		cpu:      c,
		frontend: fe,
		options:  options,
	}
}

// Cycles returns the number of executed cycles.
func (d *Driver) Cycles() uint64 {
	return d.cycles
}

// Tick polls the input, runs all cycles that are due at the given time and
// presents the framebuffer. It returns whether the run is finished, either
// because a quit was requested or the cycle limit was reached.
func (d *Driver) Tick(now time.Time) (bool, error) {
	if d.frontend.Poll(&d.machine.Keypad) {
		d.logger.Debug("Quit requested", log.Int("cycles", int(d.cycles)))
		return true, nil
	}

	for range d.dueCycles(now) {
		if d.limitReached() {
			break
		}
		if err := d.cpu.Step(); err != nil {
			return true, fmt.Errorf("running cycle %d: %w", d.cycles, err)
		}
		d.cycles++
	}

	if err := d.frontend.Present(d.machine.Video[:], machine.VideoPitch); err != nil {
		return true, fmt.Errorf("presenting frame: %w", err)
	}
	return d.limitReached(), nil
}

// dueCycles returns the number of cycles to run at the given time and
// advances the pacing reference time. The first tick only sets the reference.
func (d *Driver) dueCycles(now time.Time) int {
	if d.last.IsZero() {
		d.last = now
		return 0
	}

	delay := d.options.CycleDelay
	if delay <= 0 {
		d.last = now
		return maxBurst
	}

	elapsed := now.Sub(d.last)
	if elapsed < delay {
		return 0
	}

	due := elapsed / delay
	if due > maxBurst {
		d.last = now
		return maxBurst
	}
	d.last = d.last.Add(due * delay)
	return int(due)
}

func (d *Driver) limitReached() bool {
	return d.options.MaxCycles > 0 && d.cycles >= d.options.MaxCycles
}

// Run starts the frontend and ticks the driver until the run is finished or
// the context is cancelled. Frontends that own the main loop drive the ticks
// themselves.
func (d *Driver) Run(ctx context.Context) (err error) {
	if err := d.frontend.Start(); err != nil {
		return fmt.Errorf("starting frontend: %w", err)
	}
	defer func() {
		if closeErr := d.frontend.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("closing frontend: %w", closeErr))
		}
	}()

	d.logger.Debug("Starting run",
		log.Stringer("cycle_delay", d.options.CycleDelay),
		log.Int("max_cycles", int(d.options.MaxCycles)))

	if runner, ok := d.frontend.(frontend.LoopRunner); ok {
		err = runner.RunLoop(ctx, d.Tick)
	} else {
		err = d.loop(ctx)
	}

	d.logger.Debug("Run finished", log.Int("cycles", int(d.cycles)))
	return err
}

func (d *Driver) loop(ctx context.Context) error {
	interval := min(max(d.options.CycleDelay, time.Millisecond), frameInterval)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("run stopped: %w", err)
		}

		done, err := d.Tick(time.Now())
		if err != nil || done {
			return err
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("run stopped: %w", ctx.Err())
		case <-ticker.C:
		}
	}
}
