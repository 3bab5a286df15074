package ui

import (
	"lumen/input"
	"lumen/status"
)

const (
	iconY        int16 = 3
	clockBase    int16 = 132
	dateBase     int16 = 172
	weekdayBase  int16 = 194
	ssidBaseline int16 = 19
)

// Home is the idle screen: status bar on top, large clock and date
// centered below. The clock's colon blinks on second parity, done as
// a cover op so the time text itself is always part of the frame.
type Home struct{}

func NewHome() *Home { return &Home{} }

func (h *Home) Name() string { return "home" }

func (h *Home) Render(snap status.Snapshot) Frame {
	ops := make([]Op, 0, 11)
	ops = append(ops, FillRect(0, 0, ScreenW, ScreenH, ColorBG))
	ops = append(ops, wifiIcon(snap.Wifi.State, 4))
	ops = append(ops, btIcon(snap.Bluetooth, 36))
	ops = append(ops, gpsIcon(snap.GPS.State, 68))

	ssid := ""
	if snap.Wifi.State == status.Connected {
		ssid = truncate(snap.Wifi.SSID, 18)
	}
	ops = append(ops, rightLabel(FontSmall, ScreenW-6, ssidBaseline, ssid, ColorDim))
	ops = append(ops, FillRect(0, statusBarH, ScreenW, 1, ColorFaint))

	clock := snap.Now.Format("15:04")
	cw, _ := Measure(FontClock, clock)
	cx := (ScreenW - cw) / 2
	ops = append(ops, Label(FontClock, cx, clockBase, clock, ColorFG))
	ops = append(ops, Centered(FontBody, dateBase, snap.Now.Format("Jan 2"), ColorFG))
	ops = append(ops, Centered(FontSmall, weekdayBase, snap.Now.Format("Monday"), ColorDim))

	if snap.Now.Second()%2 == 1 {
		pw, _ := Measure(FontClock, clock[:2])
		colW, _ := Measure(FontClock, ":")
		face := faceOf(FontClock)
		ops = append(ops, FillRect(cx+pw, clockBase-face.ascent, colW, face.ascent+face.descent, ColorBG))
	}
	return Frame{Ops: ops}
}

func (h *Home) HandleInput(ev input.Event) Transition {
	if ev.Kind == input.Pressed && ev.Button == input.BtnSelect {
		return Push(NewMenu())
	}
	return Stay()
}

func wifiIcon(st status.ConnectivityState, x int16) Op {
	switch st {
	case status.Connected:
		return IconAt(IconWifiFilled, x, iconY, ColorFG)
	case status.Disconnected:
		return IconAt(IconWifiOutline, x, iconY, ColorDim)
	default:
		return IconAt(IconWifiOutline, x, iconY, ColorFaint)
	}
}

func btIcon(st status.ConnectivityState, x int16) Op {
	switch st {
	case status.Connected:
		return IconAt(IconBTFilled, x, iconY, ColorFG)
	case status.Disconnected:
		return IconAt(IconBTOutline, x, iconY, ColorDim)
	default:
		return IconAt(IconBTOutline, x, iconY, ColorFaint)
	}
}

func gpsIcon(st status.GPSState, x int16) Op {
	switch st {
	case status.GPSFix2D, status.GPSFix3D:
		return IconAt(IconGPSFilled, x, iconY, ColorFG)
	case status.GPSSearching:
		return IconAt(IconGPSOutline, x, iconY, ColorDim)
	default:
		return IconAt(IconGPSOutline, x, iconY, ColorFaint)
	}
}
