package ui

import (
	"image/color"

	"tinygo.org/x/tinyfont"

	"lumen/hal"
)

// Palette. Black background with white foreground matches the panel's
// strengths; the amber accent marks selection and live values.
var (
	ColorBG     = color.RGBA{A: 0xFF}
	ColorFG     = color.RGBA{R: 0xF2, G: 0xF2, B: 0xF2, A: 0xFF}
	ColorDim    = color.RGBA{R: 0x70, G: 0x70, B: 0x70, A: 0xFF}
	ColorFaint  = color.RGBA{R: 0x38, G: 0x38, B: 0x38, A: 0xFF}
	ColorAccent = color.RGBA{R: 0xFF, G: 0x9F, B: 0x1C, A: 0xFF}
	ColorAlert  = color.RGBA{R: 0xE5, G: 0x48, B: 0x3B, A: 0xFF}
)

// Renderer rasterizes frames into a staging framebuffer.
type Renderer struct {
	fb *hal.Framebuffer
	cv canvas
}

func NewRenderer(fb *hal.Framebuffer) *Renderer {
	return &Renderer{fb: fb, cv: canvas{fb: fb}}
}

// Draw rasterizes the whole frame in op order.
func (r *Renderer) Draw(f Frame) {
	for _, op := range f.Ops {
		r.drawOp(op)
	}
}

func (r *Renderer) drawOp(op Op) {
	switch op.Kind {
	case OpFill:
		r.fb.FillRect(op.Bounds(), op.Color)
	case OpText:
		tinyfont.WriteLine(&r.cv, faceOf(op.Font).font, op.X+textPad, op.Base, op.Text, op.Color)
	case OpIcon:
		r.drawIcon(op)
	}
}

func (r *Renderer) drawIcon(op Op) {
	m := maskOf(op.Icon)
	for y := int16(0); y < m.h; y++ {
		row := m.rows[y]
		if row == 0 {
			continue
		}
		for x := int16(0); x < m.w; x++ {
			if row>>uint(x)&1 == 1 {
				r.fb.SetRGBA(int(op.X+x), int(op.Y+y), op.Color)
			}
		}
	}
}
