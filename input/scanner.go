package input

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"lumen/hal"
	"lumen/internal/clock"
)

// eventQueueCap bounds the undrained event backlog. The runtime
// drains every tick, so the queue only fills if the loop stalls;
// overflow drops the newest event and counts it.
const eventQueueCap = 16

// Binding ties a logical button to its pin.
type Binding struct {
	Button Button
	Pin    hal.Pin
}

// Bind lays out the standard bindings for a device's button set.
func Bind(b hal.ButtonPins) []Binding {
	return []Binding{
		{BtnUp, b.Up},
		{BtnDown, b.Down},
		{BtnLeft, b.Left},
		{BtnRight, b.Right},
		{BtnSelect, b.Select},
		{BtnBack, b.Back},
		{BtnAux2, b.Aux2},
		{BtnAux3, b.Aux3},
	}
}

// Scanner samples the bound pins on a fixed cadence, runs each line
// through its Debouncer, and queues committed events. Poll drains the
// queue without blocking.
type Scanner struct {
	clk       clock.Clock
	log       *slog.Logger
	scanEvery time.Duration
	bindings  []Binding
	debs      []*Debouncer
	readBad   []bool // last Read errored; gates repeat logging
	events    chan Event
	dropped   atomic.Uint64
}

// NewScanner wires the bindings with a shared stable duration.
// Buttons are active-low, so the debouncers invert.
func NewScanner(clk clock.Clock, log *slog.Logger, bindings []Binding, stableFor, scanEvery time.Duration) *Scanner {
	debs := make([]*Debouncer, len(bindings))
	for i := range bindings {
		debs[i] = NewDebouncer(stableFor, true)
	}
	return &Scanner{
		clk:       clk,
		log:       log,
		scanEvery: scanEvery,
		bindings:  bindings,
		debs:      debs,
		readBad:   make([]bool, len(bindings)),
		events:    make(chan Event, eventQueueCap),
	}
}

// Run scans until ctx is canceled. It is the only goroutine touching
// the debouncers.
func (s *Scanner) Run(ctx context.Context) {
	t := s.clk.NewTicker(s.scanEvery)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.scan()
		}
	}
}

func (s *Scanner) scan() {
	now := s.clk.Now()
	for i, b := range s.bindings {
		if b.Pin == nil {
			continue
		}
		level, err := b.Pin.Read()
		if err != nil {
			if !s.readBad[i] {
				s.readBad[i] = true
				s.log.Warn("button pin read failed", "button", b.Button.String(), "err", err)
			}
			continue
		}
		s.readBad[i] = false

		kind, ok := s.debs[i].Sample(level, now)
		if !ok {
			continue
		}
		select {
		case s.events <- Event{Button: b.Button, Kind: kind}:
		default:
			s.dropped.Add(1)
		}
	}
}

// Poll drains the queued events. It never blocks and returns nil when
// nothing happened since the last drain.
func (s *Scanner) Poll() []Event {
	var out []Event
	for {
		select {
		case ev := <-s.events:
			out = append(out, ev)
		default:
			return out
		}
	}
}

// Dropped reports how many events overflowed the queue.
func (s *Scanner) Dropped() uint64 { return s.dropped.Load() }
