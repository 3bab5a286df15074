package input

import (
	"testing"
	"time"
)

var t0 = time.Date(2024, 6, 1, 14, 5, 0, 0, time.UTC)

// feed runs samples through d at 5 ms spacing starting from t0 and
// returns the committed events. Levels are electrical (active-low).
func feed(d *Debouncer, levels []bool) []EventKind {
	var out []EventKind
	for i, level := range levels {
		now := t0.Add(time.Duration(i) * 5 * time.Millisecond)
		if kind, ok := d.Sample(level, now); ok {
			out = append(out, kind)
		}
	}
	return out
}

func TestDebounceCleanPressAndRelease(t *testing.T) {
	d := NewDebouncer(25*time.Millisecond, true)

	// Idle high, press held for 30 ms, release held for 30 ms.
	levels := []bool{
		true,                                     // prime
		false, false, false, false, false, false, // 0..25 ms held low
		true, true, true, true, true, true, // released, held high
	}
	got := feed(d, levels)
	if len(got) != 2 || got[0] != Pressed || got[1] != Released {
		t.Fatalf("events = %v, want [pressed released]", got)
	}
}

func TestDebounceDropsShortBounce(t *testing.T) {
	d := NewDebouncer(25*time.Millisecond, true)

	// Every excursion reverts within 5-10 ms: all bounce.
	levels := []bool{
		true, // prime
		false, true,
		false, false, true,
		false, true, true,
		true, true, true,
	}
	if got := feed(d, levels); len(got) != 0 {
		t.Fatalf("bounce produced events %v, want none", got)
	}
}

func TestDebounceBouncyPressCommitsOnce(t *testing.T) {
	d := NewDebouncer(25*time.Millisecond, true)

	// Chatter on contact, then a solid hold: exactly one Pressed.
	levels := []bool{
		true, // prime
		false, true, false, true,
		false, false, false, false, false, false, false,
	}
	got := feed(d, levels)
	if len(got) != 1 || got[0] != Pressed {
		t.Fatalf("events = %v, want exactly [pressed]", got)
	}
}

func TestDebouncePairingUnderChatter(t *testing.T) {
	d := NewDebouncer(25*time.Millisecond, true)

	levels := []bool{
		true, // prime
		// Press with leading chatter.
		false, true, false, false, false, false, false, false,
		// Release with trailing chatter.
		true, false, true, true, true, true, true, true,
		// Second clean press.
		false, false, false, false, false, false,
	}
	got := feed(d, levels)
	if len(got) == 0 {
		t.Fatal("no events committed")
	}
	want := Pressed
	for i, kind := range got {
		if kind != want {
			t.Fatalf("event %d = %v, want %v (kinds must alternate)", i, kind, want)
		}
		if want == Pressed {
			want = Released
		} else {
			want = Pressed
		}
	}
	if got[0] != Pressed {
		t.Fatalf("first event = %v, want pressed", got[0])
	}
}

func TestDebouncePrimingEmitsNothing(t *testing.T) {
	d := NewDebouncer(25*time.Millisecond, true)

	// Button already held at startup: the first observation seeds
	// state silently.
	if kind, ok := d.Sample(false, t0); ok {
		t.Fatalf("priming sample emitted %v", kind)
	}
	if !d.Pressed() {
		t.Fatal("priming sample did not seed the held state")
	}
}

func TestDebounceWithoutInvert(t *testing.T) {
	d := NewDebouncer(25*time.Millisecond, false)

	// Active-high: rising edge held long enough commits Pressed.
	levels := []bool{
		false, // prime
		true, true, true, true, true, true,
	}
	got := feed(d, levels)
	if len(got) != 1 || got[0] != Pressed {
		t.Fatalf("events = %v, want [pressed]", got)
	}
}
