package ui

import (
	"fmt"

	"lumen/input"
	"lumen/status"
)

const (
	sparkCols       = status.CPUHistoryLen
	sparkColW int16 = 3
	sparkH    int16 = 40
)

// System shows live host health: CPU percentage with a ten minute
// sparkline, load, memory, temperature and the associated network.
type System struct{}

func NewSystem() *System { return &System{} }

func (s *System) Name() string { return "system" }

func (s *System) Render(snap status.Snapshot) Frame {
	ops := make([]Op, 0, 16+sparkCols)
	ops = append(ops, FillRect(0, 0, ScreenW, ScreenH, ColorBG))
	ops = append(ops, titleBar("System")...)

	cpu, load, memv, temp := "--", "--", "--", "--"
	var hist [status.CPUHistoryLen]float64
	var memPct float64
	if snap.SysOK {
		cpu = fmt.Sprintf("%.0f%%", snap.Sys.CPUPercent)
		load = fmt.Sprintf("%.2f", snap.Sys.Load1)
		memv = fmt.Sprintf("%d / %d MB", snap.Sys.MemUsedMB, snap.Sys.MemTotalMB)
		temp = fmt.Sprintf("%.1f C", snap.Sys.TempC)
		hist = snap.Sys.CPUHistory
		memPct = snap.Sys.MemPercent
	}

	ops = append(ops, kvRow(56, "CPU", cpu, ColorFG)...)
	ops = append(ops, sparkline(30, 64, hist)...)
	ops = append(ops, kvRow(128, "Load", load, ColorFG)...)
	ops = append(ops, kvRow(152, "Memory", memv, ColorFG)...)
	ops = append(ops, gauge(contentX, 160, ScreenW-2*contentX, 8, memPct, ColorAccent)...)

	tempColor := ColorFG
	if snap.SysOK && snap.Sys.TempC >= 70 {
		tempColor = ColorAlert
	}
	ops = append(ops, kvRow(190, "Temp", temp, tempColor)...)

	wifi := snap.Wifi.State.String()
	if snap.Wifi.State == status.Connected {
		wifi = truncate(snap.Wifi.SSID, 14)
	}
	ops = append(ops, kvRow(214, "Wi-Fi", wifi, ColorFG)...)
	return Frame{Ops: ops}
}

func (s *System) HandleInput(ev input.Event) Transition {
	tr, _ := popOnBack(ev)
	return tr
}

// sparkline draws one column per history bucket, newest on the right.
// Zero-height columns stay in the op list so the frame shape is
// constant.
func sparkline(x, y int16, hist [status.CPUHistoryLen]float64) []Op {
	ops := make([]Op, 0, sparkCols+1)
	ops = append(ops, FillRect(x, y, sparkCols*sparkColW, sparkH, ColorFaint))
	for i, v := range hist {
		if v < 0 {
			v = 0
		}
		if v > 100 {
			v = 100
		}
		h := int16(float64(sparkH-2) * v / 100)
		ops = append(ops, FillRect(x+int16(i)*sparkColW, y+sparkH-1-h, sparkColW-1, h, ColorAccent))
	}
	return ops
}
