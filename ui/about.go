package ui

import (
	"lumen/input"
	"lumen/internal/buildinfo"
	"lumen/status"
)

// About shows the build identity and host basics.
type About struct{}

func NewAbout() *About { return &About{} }

func (a *About) Name() string { return "about" }

func (a *About) Render(snap status.Snapshot) Frame {
	ops := make([]Op, 0, 12)
	ops = append(ops, FillRect(0, 0, ScreenW, ScreenH, ColorBG))
	ops = append(ops, titleBar("About")...)

	host, uptime := "--", "--"
	if snap.SysOK {
		if snap.Sys.Hostname != "" {
			host = truncate(snap.Sys.Hostname, 14)
		}
		uptime = formatUptime(snap.Sys.UptimeSec)
	}

	ops = append(ops, Centered(FontBody, 72, buildinfo.Name, ColorAccent))
	ops = append(ops, Centered(FontSmall, 92, buildinfo.Short(), ColorDim))
	ops = append(ops, kvRow(132, "Host", host, ColorFG)...)
	ops = append(ops, kvRow(160, "Uptime", uptime, ColorFG)...)
	ops = append(ops, kvRow(188, "Built", buildinfo.Date, ColorDim)...)
	return Frame{Ops: ops}
}

func (a *About) HandleInput(ev input.Event) Transition {
	tr, _ := popOnBack(ev)
	return tr
}
