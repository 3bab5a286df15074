package ui

import (
	"image"
	"testing"

	"lumen/hal"
)

func pixelAt(fb *hal.Framebuffer, x, y int) uint16 {
	row := fb.Row(y, x, x+1)
	return uint16(row[0]) | uint16(row[1])<<8
}

func litPixels(fb *hal.Framebuffer) []image.Point {
	var pts []image.Point
	for y := 0; y < fb.Height(); y++ {
		for x := 0; x < fb.Width(); x++ {
			if pixelAt(fb, x, y) != 0 {
				pts = append(pts, image.Pt(x, y))
			}
		}
	}
	return pts
}

func TestRendererFillAndOrder(t *testing.T) {
	fb := hal.NewFramebuffer(32, 32)
	r := NewRenderer(fb)
	r.Draw(Frame{Ops: []Op{
		FillRect(0, 0, 32, 32, ColorFG),
		FillRect(8, 8, 16, 16, ColorBG),
	}})

	if got := pixelAt(fb, 0, 0); got != hal.RGB565(ColorFG.R, ColorFG.G, ColorFG.B) {
		t.Fatalf("corner pixel = %04x, want foreground", got)
	}
	if got := pixelAt(fb, 16, 16); got != 0 {
		t.Fatalf("inner pixel = %04x, want later op to win", got)
	}
}

func TestRendererIconMatchesMask(t *testing.T) {
	fb := hal.NewFramebuffer(int(IconSize), int(IconSize))
	r := NewRenderer(fb)
	r.Draw(Frame{Ops: []Op{IconAt(IconWifiFilled, 0, 0, ColorFG)}})

	m := maskOf(IconWifiFilled)
	for y := int16(0); y < m.h; y++ {
		for x := int16(0); x < m.w; x++ {
			lit := pixelAt(fb, int(x), int(y)) != 0
			if lit != m.set(x, y) {
				t.Fatalf("pixel (%d,%d) lit=%v, mask=%v", x, y, lit, m.set(x, y))
			}
		}
	}
}

func TestRendererTextStaysInsideCoverBox(t *testing.T) {
	cases := []struct {
		font FontID
		text string
	}{
		{FontClock, "14:05"},
		{FontBody, "Jun 1"},
		{FontBody, "412 / 926 MB"},
		{FontSmall, "Saturday"},
	}
	for _, tc := range cases {
		op := Label(tc.font, 60, 120, tc.text, ColorFG)
		fb := hal.NewFramebuffer(int(ScreenW), int(ScreenH))
		NewRenderer(fb).Draw(Frame{Ops: []Op{op}})

		box := op.Bounds()
		pts := litPixels(fb)
		if len(pts) == 0 {
			t.Fatalf("%q in font %d drew nothing", tc.text, tc.font)
		}
		for _, pt := range pts {
			if !pt.In(box) {
				t.Fatalf("%q in font %d: pixel %v outside cover box %v", tc.text, tc.font, pt, box)
			}
		}
	}
}

func TestRendererEqualFramesRasterizeIdentically(t *testing.T) {
	snap := sysSnapshot()
	a := hal.NewFramebuffer(int(ScreenW), int(ScreenH))
	b := hal.NewFramebuffer(int(ScreenW), int(ScreenH))
	NewRenderer(a).Draw(NewSystem().Render(snap))
	NewRenderer(b).Draw(NewSystem().Render(snap))

	ab, bb := a.Buffer(), b.Buffer()
	for i := range ab {
		if ab[i] != bb[i] {
			t.Fatalf("buffers differ at byte %d", i)
		}
	}
}
