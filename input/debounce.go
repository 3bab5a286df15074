package input

import "time"

// Debouncer commits a level change only after the line holds the new
// level for the stable duration. Shorter excursions are contact
// bounce and vanish without a trace.
//
// It is a plain state machine fed (level, now) pairs; the caller owns
// the sampling cadence, which must be comfortably shorter than the
// stable duration.
type Debouncer struct {
	stableFor time.Duration
	invert    bool // active-low wiring: electrical low means pressed

	primed    bool // first sample seeds state without emitting
	pressed   bool // committed logical state
	candidate bool
	since     time.Time
	pending   bool
}

// NewDebouncer returns a Debouncer requiring stableFor of hold time.
// invert maps electrical low to logical pressed.
func NewDebouncer(stableFor time.Duration, invert bool) *Debouncer {
	return &Debouncer{stableFor: stableFor, invert: invert}
}

// Sample feeds one pin reading. ok reports whether this sample
// committed a transition; kind is its direction.
func (d *Debouncer) Sample(level bool, now time.Time) (kind EventKind, ok bool) {
	logical := level
	if d.invert {
		logical = !level
	}

	if !d.primed {
		d.primed = true
		d.pressed = logical
		return 0, false
	}

	if logical == d.pressed {
		d.pending = false
		return 0, false
	}

	if !d.pending || d.candidate != logical {
		d.candidate = logical
		d.since = now
		d.pending = true
		return 0, false
	}

	if now.Sub(d.since) < d.stableFor {
		return 0, false
	}

	d.pressed = logical
	d.pending = false
	if logical {
		return Pressed, true
	}
	return Released, true
}

// Pressed reports the committed logical state.
func (d *Debouncer) Pressed() bool { return d.pressed }
