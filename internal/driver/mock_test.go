package driver

import (
	"context"
	"time"

	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrochip8/internal/frontend/headless"
)

// loopFrontend is a headless frontend that owns the main loop and advances
// the time by one millisecond per tick.
type loopFrontend struct {
	*headless.Frontend
	ticks int
}

func (f *loopFrontend) RunLoop(ctx context.Context, tick frontend.TickFunc) error {
	now := start
	for ctx.Err() == nil {
		f.ticks++
		done, err := tick(now)
		if err != nil || done {
			return err
		}
		now = now.Add(time.Millisecond)
	}
	return ctx.Err()
}
