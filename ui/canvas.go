package ui

import (
	"image/color"

	"tinygo.org/x/drivers"

	"lumen/hal"
)

// canvas adapts the staging framebuffer to drivers.Displayer so
// tinyfont can draw glyphs into it.
type canvas struct {
	fb *hal.Framebuffer
}

var _ drivers.Displayer = (*canvas)(nil)

func (c *canvas) Size() (x, y int16) {
	if c.fb == nil {
		return 0, 0
	}
	return int16(c.fb.Width()), int16(c.fb.Height())
}

func (c *canvas) SetPixel(x, y int16, col color.RGBA) {
	if c.fb == nil {
		return
	}
	c.fb.SetRGBA(int(x), int(y), col)
}

// Display is a no-op; the runtime decides when the panel is flushed.
func (c *canvas) Display() error { return nil }
