// Package status collects connectivity, position and system health
// readings in the background and serves the latest value of each
// without blocking. Every source writes into a single-slot cell; a
// reader gets the newest value and a freshness verdict, never a wait.
package status

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"lumen/internal/clock"
)

// ConnectivityState is the coarse link state of a radio. The zero
// value is Unknown so a source that has not reported yet, or whose
// last report has gone stale, naturally reads as such.
type ConnectivityState uint8

const (
	Unknown ConnectivityState = iota
	Disconnected
	Connected
)

func (s ConnectivityState) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case Connected:
		return "connected"
	default:
		return "unknown"
	}
}

// WifiStatus carries the link state and, when associated, the SSID.
type WifiStatus struct {
	State ConnectivityState
	SSID  string
}

// GPSState tracks the receiver from unreachable through searching to a
// fix. The zero value is GPSOff.
type GPSState uint8

const (
	GPSOff GPSState = iota
	GPSSearching
	GPSFix2D
	GPSFix3D
)

func (s GPSState) String() string {
	switch s {
	case GPSSearching:
		return "searching"
	case GPSFix2D:
		return "2D fix"
	case GPSFix3D:
		return "3D fix"
	default:
		return "off"
	}
}

// Fix is a position solution as reported by the receiver.
type Fix struct {
	Lat      float64
	Lon      float64
	AltM     float64
	SpeedKmh float64
	TrackDeg float64
	Sats     int
	Time     time.Time
}

// GPSStatus is the receiver state plus the current fix. Fix is only
// meaningful when State is GPSFix2D or better.
type GPSStatus struct {
	State GPSState
	Fix   Fix
}

// CPUHistoryLen is the number of downsampled load points a snapshot
// carries for the sparkline.
const CPUHistoryLen = 60

// SysStats is one reading of host health.
type SysStats struct {
	CPUPercent  float64
	CPUHistory  [CPUHistoryLen]float64
	Load1       float64
	MemUsedMB   uint64
	MemTotalMB  uint64
	MemPercent  float64
	DiskUsedGB  float64
	DiskTotalGB float64
	DiskPercent float64
	TempC       float64
	UptimeSec   uint64
	Hostname    string
}

// Snapshot is everything the screens need for one frame, read at a
// single instant. Stale or missing sources appear as their zero
// values; SysOK distinguishes real zeros from an absent reading.
type Snapshot struct {
	Now       time.Time
	Wifi      WifiStatus
	Bluetooth ConnectivityState
	GPS       GPSStatus
	Sys       SysStats
	SysOK     bool
}

// Providers bundles the background sources the runtime samples every
// tick. Any field may be nil; its snapshot slot then stays at the
// zero value.
type Providers struct {
	clk       clock.Clock
	Wifi      *WifiProvider
	Bluetooth *BluetoothProvider
	GPS       *GPSProvider
	Sys       *SysProvider
}

// NewProviders wires the sources to a shared clock.
func NewProviders(clk clock.Clock, wifi *WifiProvider, bt *BluetoothProvider, gps *GPSProvider, sys *SysProvider) *Providers {
	return &Providers{clk: clk, Wifi: wifi, Bluetooth: bt, GPS: gps, Sys: sys}
}

// Run drives all sources until ctx is cancelled.
func (p *Providers) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	if p.Wifi != nil {
		g.Go(func() error { p.Wifi.Run(ctx); return nil })
	}
	if p.Bluetooth != nil {
		g.Go(func() error { p.Bluetooth.Run(ctx); return nil })
	}
	if p.GPS != nil {
		g.Go(func() error { p.GPS.Run(ctx); return nil })
	}
	if p.Sys != nil {
		g.Go(func() error { p.Sys.Run(ctx); return nil })
	}
	return g.Wait()
}

// Snapshot assembles the latest value of every source. It never
// blocks and never touches hardware.
func (p *Providers) Snapshot() Snapshot {
	now := p.clk.Now()
	snap := Snapshot{Now: now}
	if p.Wifi != nil {
		snap.Wifi = p.Wifi.Status(now)
	}
	if p.Bluetooth != nil {
		snap.Bluetooth = p.Bluetooth.Status(now)
	}
	if p.GPS != nil {
		snap.GPS = p.GPS.Status(now)
	}
	if p.Sys != nil {
		snap.Sys, snap.SysOK = p.Sys.Status(now)
	}
	return snap
}
