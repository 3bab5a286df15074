//go:build sim

package hal

import (
	"image"
	"sync"
)

// SimDisplay renders the staging framebuffer into a desktop window.
// Flush converts only the committed region into the visible image, so
// the partial-redraw behavior of the real panel is reproduced: pixels
// drawn but never flushed stay invisible.
type SimDisplay struct {
	fb *Framebuffer

	mu  sync.Mutex
	pix []byte // visible RGBA image, guarded by mu
}

// NewSimDisplay returns a SimDisplay with a width x height panel.
func NewSimDisplay(width, height int) *SimDisplay {
	return &SimDisplay{
		fb:  NewFramebuffer(width, height),
		pix: make([]byte, width*height*4),
	}
}

func (d *SimDisplay) Bounds() image.Rectangle { return d.fb.Bounds() }

func (d *SimDisplay) Framebuffer() *Framebuffer { return d.fb }

func (d *SimDisplay) Flush(region image.Rectangle) error {
	region = region.Intersect(d.fb.Bounds())
	if region.Empty() {
		return nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	w := d.fb.Width()
	for y := region.Min.Y; y < region.Max.Y; y++ {
		row := d.fb.Row(y, region.Min.X, region.Max.X)
		for i := 0; i < len(row); i += 2 {
			r, g, b := RGB888From565(uint16(row[i]) | uint16(row[i+1])<<8)
			j := (y*w + region.Min.X + i/2) * 4
			d.pix[j+0] = r
			d.pix[j+1] = g
			d.pix[j+2] = b
			d.pix[j+3] = 0xFF
		}
	}
	return nil
}

func (d *SimDisplay) Close() error { return nil }

func (d *SimDisplay) snapshot(dst []byte) {
	d.mu.Lock()
	defer d.mu.Unlock()
	copy(dst, d.pix)
}
