package ui

import (
	"fmt"

	"lumen/input"
	"lumen/status"
)

// Storage shows root filesystem usage.
type Storage struct{}

func NewStorage() *Storage { return &Storage{} }

func (s *Storage) Name() string { return "storage" }

func (s *Storage) Render(snap status.Snapshot) Frame {
	ops := make([]Op, 0, 12)
	ops = append(ops, FillRect(0, 0, ScreenW, ScreenH, ColorBG))
	ops = append(ops, titleBar("Storage")...)

	used, free, pct := "--", "--", "--"
	var usedPct float64
	if snap.SysOK {
		used = fmt.Sprintf("%.1f / %.1f GB", snap.Sys.DiskUsedGB, snap.Sys.DiskTotalGB)
		free = fmt.Sprintf("%.1f GB", snap.Sys.DiskTotalGB-snap.Sys.DiskUsedGB)
		pct = fmt.Sprintf("%.0f%%", snap.Sys.DiskPercent)
		usedPct = snap.Sys.DiskPercent
	}

	barColor := ColorAccent
	if usedPct >= 90 {
		barColor = ColorAlert
	}
	ops = append(ops, kvRow(68, "Used", used, ColorFG)...)
	ops = append(ops, gauge(contentX, 84, ScreenW-2*contentX, 14, usedPct, barColor)...)
	ops = append(ops, kvRow(130, "Free", free, ColorFG)...)
	ops = append(ops, kvRow(158, "Usage", pct, ColorFG)...)
	return Frame{Ops: ops}
}

func (s *Storage) HandleInput(ev input.Event) Transition {
	tr, _ := popOnBack(ev)
	return tr
}
