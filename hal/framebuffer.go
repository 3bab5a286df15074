package hal

import (
	"image"
	"image/color"
)

// Framebuffer is an RGB565 staging buffer. Pixels are stored
// little-endian, two bytes each, row-major with stride = width*2.
// It is owned by the runtime loop goroutine and needs no locking.
type Framebuffer struct {
	width  int
	height int
	stride int
	buf    []byte
}

// NewFramebuffer returns a zeroed (black) width x height buffer.
func NewFramebuffer(width, height int) *Framebuffer {
	stride := width * 2
	return &Framebuffer{
		width:  width,
		height: height,
		stride: stride,
		buf:    make([]byte, stride*height),
	}
}

func (f *Framebuffer) Width() int { return f.width }

func (f *Framebuffer) Height() int { return f.height }

func (f *Framebuffer) StrideBytes() int { return f.stride }

func (f *Framebuffer) Buffer() []byte { return f.buf }

// Bounds reports the buffer extent as a rectangle at the origin.
func (f *Framebuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, f.width, f.height)
}

// SetRGBA writes one pixel, ignoring coordinates outside the buffer.
func (f *Framebuffer) SetRGBA(x, y int, c color.RGBA) {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return
	}
	p := RGB565(c.R, c.G, c.B)
	off := y*f.stride + x*2
	f.buf[off] = byte(p)
	f.buf[off+1] = byte(p >> 8)
}

// Fill paints the whole buffer with one color.
func (f *Framebuffer) Fill(c color.RGBA) {
	p := RGB565(c.R, c.G, c.B)
	lo := byte(p)
	hi := byte(p >> 8)
	for i := 0; i < len(f.buf); i += 2 {
		f.buf[i] = lo
		f.buf[i+1] = hi
	}
}

// FillRect paints r clipped to the buffer.
func (f *Framebuffer) FillRect(r image.Rectangle, c color.RGBA) {
	r = r.Intersect(f.Bounds())
	if r.Empty() {
		return
	}
	p := RGB565(c.R, c.G, c.B)
	lo := byte(p)
	hi := byte(p >> 8)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		off := y*f.stride + r.Min.X*2
		for x := r.Min.X; x < r.Max.X; x++ {
			f.buf[off] = lo
			f.buf[off+1] = hi
			off += 2
		}
	}
}

// Row returns the raw bytes of row y restricted to columns [x0, x1).
func (f *Framebuffer) Row(y, x0, x1 int) []byte {
	off := y * f.stride
	return f.buf[off+x0*2 : off+x1*2]
}

// RGB565 packs an 8-bit RGB triple into rrrrrggggggbbbbb.
func RGB565(r, g, b uint8) uint16 {
	rr := uint16(r>>3) & 0x1F
	gg := uint16(g>>2) & 0x3F
	bb := uint16(b>>3) & 0x1F
	return (rr << 11) | (gg << 5) | bb
}

// RGB888From565 expands a packed RGB565 pixel back to 8-bit channels.
func RGB888From565(p uint16) (r, g, b uint8) {
	rr := (p >> 11) & 0x1F
	gg := (p >> 5) & 0x3F
	bb := p & 0x1F

	r = uint8((rr * 255) / 31)
	g = uint8((gg * 255) / 63)
	b = uint8((bb * 255) / 31)
	return r, g, b
}
