package hal

import (
	"sync/atomic"
	"time"
)

// MemPin is an in-memory Pin whose level is set programmatically. The
// simulator drives one per button from keyboard state; tests script
// them directly. Safe for concurrent Set/Read.
type MemPin struct {
	name  string
	level atomic.Bool
}

// NewMemPin returns a MemPin at the given initial level. Buttons are
// active-low, so an idle button pin starts high.
func NewMemPin(name string, level bool) *MemPin {
	p := &MemPin{name: name}
	p.level.Store(level)
	return p
}

func (p *MemPin) Name() string { return p.name }

func (p *MemPin) Read() (bool, error) { return p.level.Load(), nil }

// Set updates the electrical level.
func (p *MemPin) Set(level bool) { p.level.Store(level) }

// WavePin is a Pin following a square wave against an injected clock:
// high for the first high duration of every period, low for the rest.
// Tests use it as a deterministic contact-bounce source.
type WavePin struct {
	name   string
	t0     time.Time
	now    func() time.Time
	period time.Duration
	high   time.Duration
}

// NewWavePin returns a WavePin phased from the clock's current time.
func NewWavePin(name string, period, high time.Duration, now func() time.Time) *WavePin {
	if now == nil {
		now = time.Now
	}
	if period <= 0 {
		period = time.Second
	}
	if high < 0 {
		high = 0
	}
	if high > period {
		high = period
	}
	return &WavePin{
		name:   name,
		t0:     now(),
		now:    now,
		period: period,
		high:   high,
	}
}

func (p *WavePin) Name() string { return p.name }

func (p *WavePin) Read() (bool, error) {
	elapsed := p.now().Sub(p.t0)
	if elapsed < 0 {
		elapsed = -elapsed
	}
	phase := elapsed % p.period
	return phase < p.high, nil
}
