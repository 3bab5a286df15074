package ui

import (
	"fmt"

	"lumen/input"
	"lumen/status"
)

// GPSView shows the receiver state and, with a fix, the position
// solution. Rows keep their place when there is no fix so the frame
// shape stays constant.
type GPSView struct{}

func NewGPSView() *GPSView { return &GPSView{} }

func (g *GPSView) Name() string { return "gps" }

func (g *GPSView) Render(snap status.Snapshot) Frame {
	ops := make([]Op, 0, 18)
	ops = append(ops, FillRect(0, 0, ScreenW, ScreenH, ColorBG))
	ops = append(ops, titleBar("GPS")...)

	stateColor := ColorDim
	switch snap.GPS.State {
	case status.GPSFix2D, status.GPSFix3D:
		stateColor = ColorFG
	case status.GPSSearching:
		stateColor = ColorAccent
	}
	ops = append(ops, kvRow(60, "State", snap.GPS.State.String(), stateColor)...)

	lat, lon, alt := "--", "--", "--"
	speed, track, sats, at := "--", "--", "--", "--"
	if snap.GPS.State == status.GPSFix2D || snap.GPS.State == status.GPSFix3D {
		fix := snap.GPS.Fix
		lat = fmt.Sprintf("%.5f", fix.Lat)
		lon = fmt.Sprintf("%.5f", fix.Lon)
		if snap.GPS.State == status.GPSFix3D {
			alt = fmt.Sprintf("%.0f m", fix.AltM)
		}
		speed = fmt.Sprintf("%.1f km/h", fix.SpeedKmh)
		track = fmt.Sprintf("%.0f", fix.TrackDeg)
		sats = fmt.Sprintf("%d", fix.Sats)
		if !fix.Time.IsZero() {
			at = fix.Time.Format("15:04:05")
		}
	}
	ops = append(ops, kvRow(88, "Lat", lat, ColorFG)...)
	ops = append(ops, kvRow(112, "Lon", lon, ColorFG)...)
	ops = append(ops, kvRow(136, "Alt", alt, ColorFG)...)
	ops = append(ops, kvRow(160, "Speed", speed, ColorFG)...)
	ops = append(ops, kvRow(184, "Track", track, ColorFG)...)
	ops = append(ops, kvRow(208, "Sats", sats, ColorFG)...)
	ops = append(ops, kvRow(232, "Fix time", at, ColorDim)...)
	return Frame{Ops: ops}
}

func (g *GPSView) HandleInput(ev input.Event) Transition {
	tr, _ := popOnBack(ev)
	return tr
}
