// Package ui turns status snapshots into frame descriptions and
// rasterizes them. A frame is a flat list of draw ops; because ops are
// plain comparable values, two frames can be compared cheaply and the
// changed area reduced to a single dirty rectangle for the panel.
package ui

import (
	"image"
	"image/color"
	"slices"
)

// Panel geometry of the 1.3" HAT the layouts target.
const (
	ScreenW int16 = 240
	ScreenH int16 = 240
)

type OpKind uint8

const (
	OpFill OpKind = iota
	OpText
	OpIcon
)

// Op is one draw instruction. X, Y, W, H are the bounding box; text
// baselines and measured sizes are fixed when the op is built so that
// equal ops always rasterize to equal pixels.
type Op struct {
	Kind  OpKind
	X, Y  int16
	W, H  int16
	Base  int16 // text baseline, absolute
	Color color.RGBA
	Font  FontID
	Icon  IconID
	Text  string
}

// Bounds returns the op's bounding box.
func (o Op) Bounds() image.Rectangle {
	return image.Rect(int(o.X), int(o.Y), int(o.X+o.W), int(o.Y+o.H))
}

// Frame is a complete description of one screen image. Ops rasterize
// in order, so later ops paint over earlier ones.
type Frame struct {
	Ops []Op
}

// Equal reports whether two frames rasterize identically.
func (f Frame) Equal(g Frame) bool {
	return slices.Equal(f.Ops, g.Ops)
}

// Diff returns the region that changes between two frames: the union
// of the boxes of every op pair that differs position for position,
// plus any tail the longer frame has. Reordered ops are over-counted,
// never missed.
func Diff(old, cur Frame) image.Rectangle {
	var r image.Rectangle
	n := min(len(old.Ops), len(cur.Ops))
	for i := 0; i < n; i++ {
		if old.Ops[i] != cur.Ops[i] {
			r = r.Union(old.Ops[i].Bounds()).Union(cur.Ops[i].Bounds())
		}
	}
	for _, op := range old.Ops[n:] {
		r = r.Union(op.Bounds())
	}
	for _, op := range cur.Ops[n:] {
		r = r.Union(op.Bounds())
	}
	return r
}

// FillRect builds a filled rectangle op.
func FillRect(x, y, w, h int16, c color.RGBA) Op {
	return Op{Kind: OpFill, X: x, Y: y, W: w, H: h, Color: c}
}

// textPad grows every text cover box. Glyphs may overhang their
// advance box by a pixel or two; the box must contain every pixel the
// rasterizer touches or partial flushes would leave stale glyph edges
// on the panel.
const textPad int16 = 2

// Label builds a text op with its left edge at x and the given
// baseline. The bounding box comes from the font metrics plus the
// safety pad; the renderer compensates when painting.
func Label(id FontID, x, baseline int16, s string, c color.RGBA) Op {
	w, _ := Measure(id, s)
	face := faceOf(id)
	return Op{
		Kind:  OpText,
		X:     x - textPad,
		Y:     baseline - face.ascent - textPad,
		W:     w + 2*textPad,
		H:     face.ascent + face.descent + 2*textPad,
		Base:  baseline,
		Color: c,
		Font:  id,
		Text:  s,
	}
}

// Centered builds a text op centered horizontally on the panel.
func Centered(id FontID, baseline int16, s string, c color.RGBA) Op {
	w, _ := Measure(id, s)
	return Label(id, (ScreenW-w)/2, baseline, s, c)
}

// IconAt builds an icon op at the given origin.
func IconAt(id IconID, x, y int16, c color.RGBA) Op {
	m := maskOf(id)
	return Op{Kind: OpIcon, X: x, Y: y, W: m.w, H: m.h, Color: c, Icon: id}
}
