package status

import (
	"context"
	"errors"
	"math"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stratoberry/go-gpsd"

	"lumen/internal/clock"
)

type fakeSession struct {
	mu       sync.Mutex
	filters  map[string]gpsd.Filter
	done     chan bool
	watching chan struct{}
	closed   bool
}

func newFakeSession() *fakeSession {
	return &fakeSession{
		filters:  map[string]gpsd.Filter{},
		done:     make(chan bool),
		watching: make(chan struct{}),
	}
}

func (f *fakeSession) AddFilter(class string, fn gpsd.Filter) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.filters[class] = fn
}

func (f *fakeSession) Watch() chan bool {
	close(f.watching)
	return f.done
}

func (f *fakeSession) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeSession) report(class string, r interface{}) {
	f.mu.Lock()
	fn := f.filters[class]
	f.mu.Unlock()
	if fn != nil {
		fn(r)
	}
}

func TestGPSReportMapping(t *testing.T) {
	clk := clock.Fake(t0)
	g := NewGPSProvider(clk, testLogger(), "")
	if g.addr != gpsd.DefaultAddress {
		t.Fatalf("addr = %q, want default", g.addr)
	}

	g.onTPV(&gpsd.TPVReport{Mode: 1})
	if st := g.Status(clk.Now()); st.State != GPSSearching {
		t.Fatalf("mode 1 state = %v, want searching", st.State)
	}

	g.onSKY(&gpsd.SKYReport{Satellites: []gpsd.Satellite{
		{PRN: 3, Used: true},
		{PRN: 7, Used: true},
		{PRN: 12, Used: false},
	}})
	g.onTPV(&gpsd.TPVReport{
		Mode:  3,
		Lat:   52.52,
		Lon:   13.405,
		Alt:   34.5,
		Speed: 10,
		Track: 90,
		Time:  t0,
	})
	st := g.Status(clk.Now())
	if st.State != GPSFix3D {
		t.Fatalf("mode 3 state = %v, want 3D fix", st.State)
	}
	if st.Fix.Lat != 52.52 || st.Fix.Lon != 13.405 {
		t.Fatalf("fix position = %+v", st.Fix)
	}
	if math.Abs(st.Fix.SpeedKmh-36) > 1e-9 {
		t.Fatalf("speed = %v km/h, want 36", st.Fix.SpeedKmh)
	}
	if st.Fix.Sats != 2 {
		t.Fatalf("sats = %d, want 2 (used only)", st.Fix.Sats)
	}

	g.onTPV(&gpsd.TPVReport{Mode: 2, Lat: 1, Lon: 2})
	if st := g.Status(clk.Now()); st.State != GPSFix2D {
		t.Fatalf("mode 2 state = %v, want 2D fix", st.State)
	}
}

func TestGPSStatusDecayWhenReportsStop(t *testing.T) {
	clk := clock.Fake(t0)
	g := NewGPSProvider(clk, testLogger(), "")

	if st := g.Status(clk.Now()); st.State != GPSOff {
		t.Fatalf("empty state = %v, want off", st.State)
	}

	g.onTPV(&gpsd.TPVReport{Mode: 3, Lat: 1, Lon: 2})
	if st := g.Status(clk.Now()); st.State != GPSFix3D {
		t.Fatalf("state = %v, want 3D fix", st.State)
	}

	// Reports stop but the session stays up: the fix is gone, the
	// receiver is not.
	clk.Advance(gpsStaleAfter + time.Second)
	if st := g.Status(clk.Now()); st.State != GPSSearching {
		t.Fatalf("stale state = %v, want searching", st.State)
	}

	// An ended session puts an explicit off value, which staleness
	// does not overrule.
	g.cell.Put(GPSStatus{}, clk.Now())
	clk.Advance(gpsStaleAfter + time.Second)
	if st := g.Status(clk.Now()); st.State != GPSOff {
		t.Fatalf("state after session end = %v, want off", st.State)
	}
}

func TestGPSRunRedialsAfterFailure(t *testing.T) {
	clk := clock.Fake(t0)
	g := NewGPSProvider(clk, testLogger(), "test:0")

	sess := newFakeSession()
	var fail atomic.Bool
	fail.Store(true)
	dials := make(chan struct{}, 8)
	g.dial = func(string) (gpsSession, error) {
		dials <- struct{}{}
		if fail.Load() {
			return nil, errors.New("connection refused")
		}
		return sess, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		g.Run(ctx)
		close(done)
	}()

	<-dials
	clk.WaitForWaiters(1) // parked on backoff
	if st := g.Status(clk.Now()); st.State != GPSOff {
		t.Fatalf("state after failed dial = %v, want off", st.State)
	}

	fail.Store(false)
	clk.Advance(time.Second)
	<-dials
	<-sess.watching // filters are registered before Watch

	sess.report("SKY", &gpsd.SKYReport{Satellites: []gpsd.Satellite{{Used: true}}})
	sess.report("TPV", &gpsd.TPVReport{Mode: 3, Lat: 48.2, Lon: 16.37})
	st := g.Status(clk.Now())
	if st.State != GPSFix3D || st.Fix.Sats != 1 {
		t.Fatalf("state after reports = %+v", st)
	}

	// gpsd drops the session: state falls back and Run waits to redial.
	close(sess.done)
	clk.WaitForWaiters(1)
	if st := g.Status(clk.Now()); st.State != GPSOff {
		t.Fatalf("state after session end = %v, want off", st.State)
	}
	sess.mu.Lock()
	closed := sess.closed
	sess.mu.Unlock()
	if !closed {
		t.Fatal("session not closed after watch ended")
	}

	cancel()
	<-done
}

func TestGPSRunClosesSessionOnShutdown(t *testing.T) {
	clk := clock.Fake(t0)
	g := NewGPSProvider(clk, testLogger(), "test:0")
	sess := newFakeSession()
	g.dial = func(string) (gpsSession, error) { return sess, nil }

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		g.Run(ctx)
		close(done)
	}()

	<-sess.watching
	cancel()
	<-done

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if !sess.closed {
		t.Fatal("session left open on shutdown")
	}
}
