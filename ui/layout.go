package ui

import (
	"fmt"
	"image/color"
)

// Shared layout constants. The status bar and row grid follow the
// panel's 240 px width; each screen keeps a fixed op count per frame
// so positional frame diffs stay tight.
const (
	statusBarH int16 = 30
	titleBarH  int16 = 32
	contentX   int16 = 12
)

// titleBar emits the header strip detail screens share.
func titleBar(title string) []Op {
	return []Op{
		FillRect(0, 0, ScreenW, titleBarH, ColorFaint),
		Label(FontBody, contentX, 22, title, ColorFG),
	}
}

// rightLabel builds a text op whose right edge sits at x.
func rightLabel(id FontID, x, baseline int16, s string, c color.RGBA) Op {
	w, _ := Measure(id, s)
	return Label(id, x-w, baseline, s, c)
}

// kvRow emits a dim label on the left and its value on the right.
func kvRow(baseline int16, label, value string, valueColor color.RGBA) []Op {
	return []Op{
		Label(FontBody, contentX, baseline, label, ColorDim),
		rightLabel(FontBody, ScreenW-contentX, baseline, value, valueColor),
	}
}

// gauge emits a horizontal bar: a full-width track and a fill scaled
// by pct (0..100). The fill op is always present so the frame shape
// never changes.
func gauge(x, y, w, h int16, pct float64, fill color.RGBA) []Op {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	used := int16(float64(w) * pct / 100)
	return []Op{
		FillRect(x, y, w, h, ColorFaint),
		FillRect(x, y, used, h, fill),
	}
}

// truncate shortens s to at most n runes, marking the cut.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n < 3 {
		return string(r[:n])
	}
	return string(r[:n-2]) + ".."
}

func formatUptime(sec uint64) string {
	days := sec / 86400
	hours := sec % 86400 / 3600
	mins := sec % 3600 / 60
	if days > 0 {
		return fmt.Sprintf("%dd %02d:%02d", days, hours, mins)
	}
	return fmt.Sprintf("%02d:%02d", hours, mins)
}
