// Package engine drives the device: every tick it samples status,
// dispatches buttons, renders the active screen and pushes the
// changed part of the frame to the panel. It is the only goroutine
// that touches the display or the navigation stack.
package engine

import (
	"context"
	"log/slog"
	"time"

	"lumen/hal"
	"lumen/input"
	"lumen/internal/clock"
	"lumen/status"
	"lumen/ui"
)

// EventSource drains the debounced button events queued since the
// last tick.
type EventSource interface {
	Poll() []input.Event
}

// Snapshotter returns the latest status values without blocking.
type Snapshotter interface {
	Snapshot() status.Snapshot
}

type Config struct {
	// Tick is the loop cadence.
	Tick time.Duration
	// FullRedraw bounds how long the panel goes without a full
	// flush, changed or not.
	FullRedraw time.Duration
}

type Engine struct {
	clk    clock.Clock
	log    *slog.Logger
	disp   hal.Display
	events EventSource
	stats  Snapshotter

	nav    *navStack
	fb     *hal.Framebuffer
	render *ui.Renderer

	tick      time.Duration
	fullEvery time.Duration

	// lastFlushed tracks what the panel actually shows. It advances
	// only on successful flushes, so a failed write is retried on the
	// next tick without extra bookkeeping.
	lastFlushed  ui.Frame
	haveFrame    bool
	lastFull     time.Time
	flushFailing bool
}

func New(clk clock.Clock, log *slog.Logger, disp hal.Display, events EventSource, stats Snapshotter, root ui.Screen, cfg Config) *Engine {
	if cfg.Tick <= 0 {
		cfg.Tick = 250 * time.Millisecond
	}
	if cfg.FullRedraw <= 0 {
		cfg.FullRedraw = 30 * time.Second
	}
	fb := disp.Framebuffer()
	return &Engine{
		clk:       clk,
		log:       log,
		disp:      disp,
		events:    events,
		stats:     stats,
		nav:       newNavStack(root),
		fb:        fb,
		render:    ui.NewRenderer(fb),
		tick:      cfg.Tick,
		fullEvery: cfg.FullRedraw,
	}
}

// Run paints the first frame, then ticks until ctx is cancelled.
// Shutdown happens between ticks; a tick in progress always finishes.
func (e *Engine) Run(ctx context.Context) error {
	e.log.Info("engine running",
		"screen", e.nav.top().Name(),
		"tick", e.tick,
		"full_redraw", e.fullEvery)

	e.step()
	t := e.clk.NewTicker(e.tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			e.log.Info("engine stopped")
			return nil
		case <-t.C:
			e.step()
		}
	}
}

func (e *Engine) step() {
	snap := e.stats.Snapshot()

	for _, ev := range e.events.Poll() {
		tr := e.nav.top().HandleInput(ev)
		e.nav.apply(tr)
		if tr.Kind != ui.TransStay {
			e.log.Debug("screen changed",
				"screen", e.nav.top().Name(),
				"depth", e.nav.depth())
		}
	}

	frame := e.nav.top().Render(snap)

	now := e.clk.Now()
	fullDue := now.Sub(e.lastFull) >= e.fullEvery
	if e.haveFrame && !fullDue && frame.Equal(e.lastFlushed) {
		return
	}

	e.render.Draw(frame)
	region := e.fb.Bounds()
	if e.haveFrame && !fullDue {
		region = ui.Diff(e.lastFlushed, frame).Intersect(e.fb.Bounds())
		if region.Empty() {
			// Ops differ but no pixel does (degenerate boxes).
			e.lastFlushed = frame
			return
		}
	}

	if err := e.disp.Flush(region); err != nil {
		if e.flushFailing {
			e.log.Debug("flush failed", "region", region, "err", err)
		} else {
			e.log.Warn("flush failed", "region", region, "err", err)
			e.flushFailing = true
		}
		return
	}
	if e.flushFailing {
		e.log.Info("flush recovered")
		e.flushFailing = false
	}

	e.lastFlushed = frame
	e.haveFrame = true
	if region == e.fb.Bounds() {
		e.lastFull = now
	}
}
