package status

import (
	"context"
	"time"

	"lumen/internal/clock"
)

// poller runs a sample function at a fixed cadence and publishes each
// result into a cell. The first sample happens immediately so a
// source is populated before the first display tick.
type poller[T any] struct {
	clk      clock.Clock
	interval time.Duration
	cell     Cell[T]
	sample   func(context.Context) T
}

func (p *poller[T]) run(ctx context.Context) {
	p.cell.Put(p.sample(ctx), p.clk.Now())
	t := p.clk.NewTicker(p.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			p.cell.Put(p.sample(ctx), p.clk.Now())
		}
	}
}

// maxAge is how long a published value counts as fresh. Three missed
// polls in a row turn a source stale.
func (p *poller[T]) maxAge() time.Duration {
	return 3 * p.interval
}
