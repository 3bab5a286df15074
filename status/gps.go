package status

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/stratoberry/go-gpsd"

	"lumen/internal/clock"
)

// gpsStaleAfter bounds how long the last gpsd report stays valid. A
// healthy receiver streams TPV at 1 Hz, so a silent quarter minute
// means the position source is effectively gone.
const gpsStaleAfter = 15 * time.Second

// gpsSession is the slice of *gpsd.Session the provider consumes.
type gpsSession interface {
	AddFilter(class string, f gpsd.Filter)
	Watch() chan bool
	Close() error
}

// GPSProvider keeps a watch session against gpsd and publishes the
// receiver state as reports arrive. Lost connections are redialed
// with capped backoff; while gpsd is unreachable the state is GPSOff.
type GPSProvider struct {
	clk  clock.Clock
	log  *slog.Logger
	addr string
	dial func(addr string) (gpsSession, error)
	cell Cell[GPSStatus]
	sats atomic.Int64
	seen atomic.Int32 // last published GPSState, for transition logging
}

// NewGPSProvider returns a provider for the gpsd at addr. An empty
// addr means the daemon's default port on localhost.
func NewGPSProvider(clk clock.Clock, log *slog.Logger, addr string) *GPSProvider {
	if addr == "" {
		addr = gpsd.DefaultAddress
	}
	return &GPSProvider{
		clk:  clk,
		log:  log,
		addr: addr,
		dial: func(addr string) (gpsSession, error) { return gpsd.Dial(addr) },
	}
}

// Run dials and watches gpsd until ctx is cancelled.
func (g *GPSProvider) Run(ctx context.Context) {
	backoff := time.Second
	for {
		if ctx.Err() != nil {
			return
		}
		sess, err := g.dial(g.addr)
		if err != nil {
			g.publish(GPSStatus{})
			g.log.Debug("gpsd unreachable", "addr", g.addr, "err", err)
		} else {
			backoff = time.Second
			g.publish(GPSStatus{State: GPSSearching})
			sess.AddFilter("TPV", g.onTPV)
			sess.AddFilter("SKY", g.onSKY)
			done := sess.Watch()
			select {
			case <-ctx.Done():
				sess.Close()
				return
			case <-done:
				sess.Close()
				g.publish(GPSStatus{})
				g.log.Debug("gpsd session ended", "addr", g.addr)
			}
		}
		select {
		case <-ctx.Done():
			return
		case <-g.clk.After(backoff):
		}
		backoff *= 2
		if backoff > 30*time.Second {
			backoff = 30 * time.Second
		}
	}
}

// Status returns the freshest receiver state. When reports stop
// flowing on a session that was never torn down the receiver shows as
// searching; a torn-down or never-started session reads as off, since
// the run loop puts an explicit off value on every session end.
func (g *GPSProvider) Status(now time.Time) GPSStatus {
	st, fresh := g.cell.Get(now, gpsStaleAfter)
	if fresh {
		return st
	}
	if last, ok := g.cell.Get(now, 0); ok && last.State != GPSOff {
		return GPSStatus{State: GPSSearching}
	}
	return GPSStatus{}
}

// publish stores the new status and logs receiver state transitions.
// Reports arrive on the gpsd client goroutine while dial results
// arrive on the run loop, so the last seen state is an atomic.
func (g *GPSProvider) publish(st GPSStatus) {
	if prev := GPSState(g.seen.Swap(int32(st.State))); prev != st.State {
		g.log.Info("gps state changed", "state", st.State.String())
	}
	g.cell.Put(st, g.clk.Now())
}

func (g *GPSProvider) onTPV(r interface{}) {
	tpv, ok := r.(*gpsd.TPVReport)
	if !ok {
		return
	}
	st := GPSStatus{State: GPSSearching}
	if tpv.Mode >= 2 {
		state := GPSFix2D
		if tpv.Mode >= 3 {
			state = GPSFix3D
		}
		st = GPSStatus{
			State: state,
			Fix: Fix{
				Lat:      tpv.Lat,
				Lon:      tpv.Lon,
				AltM:     tpv.Alt,
				SpeedKmh: tpv.Speed * 3.6,
				TrackDeg: tpv.Track,
				Sats:     int(g.sats.Load()),
				Time:     tpv.Time,
			},
		}
	}
	g.publish(st)
}

func (g *GPSProvider) onSKY(r interface{}) {
	sky, ok := r.(*gpsd.SKYReport)
	if !ok {
		return
	}
	used := 0
	for _, sat := range sky.Satellites {
		if sat.Used {
			used++
		}
	}
	g.sats.Store(int64(used))
}
