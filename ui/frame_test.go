package ui

import (
	"image"
	"testing"
)

func TestFrameEqual(t *testing.T) {
	a := Frame{Ops: []Op{
		FillRect(0, 0, 240, 240, ColorBG),
		Label(FontBody, 10, 50, "hello", ColorFG),
	}}
	b := Frame{Ops: []Op{
		FillRect(0, 0, 240, 240, ColorBG),
		Label(FontBody, 10, 50, "hello", ColorFG),
	}}
	if !a.Equal(b) {
		t.Fatal("identical frames not equal")
	}
	b.Ops[1] = Label(FontBody, 10, 50, "hallo", ColorFG)
	if a.Equal(b) {
		t.Fatal("frames with different text compare equal")
	}
}

func TestDiffEqualFramesIsEmpty(t *testing.T) {
	f := Frame{Ops: []Op{FillRect(0, 0, 240, 240, ColorBG)}}
	if d := Diff(f, f); !d.Empty() {
		t.Fatalf("diff of equal frames = %v", d)
	}
}

func TestDiffCoversChangedOp(t *testing.T) {
	old := Frame{Ops: []Op{
		FillRect(0, 0, 240, 240, ColorBG),
		FillRect(10, 10, 20, 20, ColorFG),
		FillRect(100, 100, 30, 30, ColorAccent),
	}}
	cur := Frame{Ops: []Op{
		FillRect(0, 0, 240, 240, ColorBG),
		FillRect(10, 10, 20, 20, ColorFG),
		FillRect(150, 150, 30, 30, ColorAccent),
	}}
	d := Diff(old, cur)
	want := image.Rect(100, 100, 180, 180)
	if d != want {
		t.Fatalf("diff = %v, want %v", d, want)
	}
}

func TestDiffCoversTailOps(t *testing.T) {
	old := Frame{Ops: []Op{FillRect(0, 0, 240, 240, ColorBG)}}
	cur := Frame{Ops: []Op{
		FillRect(0, 0, 240, 240, ColorBG),
		FillRect(200, 220, 10, 10, ColorFG),
	}}
	d := Diff(old, cur)
	if !image.Rect(200, 220, 210, 230).In(d) {
		t.Fatalf("diff %v does not cover the added op", d)
	}
	// And the other direction: removing the op dirties its area too.
	if d2 := Diff(cur, old); !image.Rect(200, 220, 210, 230).In(d2) {
		t.Fatalf("reverse diff %v does not cover the removed op", d2)
	}
}

func TestOpBounds(t *testing.T) {
	op := FillRect(5, 6, 10, 20, ColorFG)
	if got := op.Bounds(); got != image.Rect(5, 6, 15, 26) {
		t.Fatalf("bounds = %v", got)
	}
}

func TestLabelBoxContainsBaselineSpan(t *testing.T) {
	op := Label(FontBody, 40, 100, "value", ColorFG)
	b := op.Bounds()
	if b.Min.Y >= 100 || b.Max.Y <= 100 {
		t.Fatalf("baseline 100 outside box %v", b)
	}
	if b.Min.X > 40-int(textPad) {
		t.Fatalf("box %v does not pad left of x=40", b)
	}
	if op.W <= 0 || op.H <= 0 {
		t.Fatalf("degenerate box %+v", op)
	}
}

func TestCenteredIsCentered(t *testing.T) {
	op := Centered(FontClock, 132, "14:05", ColorFG)
	paintX := int(op.X + textPad)
	w := int(op.W - 2*textPad)
	if off := 2*paintX + w - int(ScreenW); off < -1 || off > 1 {
		t.Fatalf("text not centered: x=%d w=%d (off %d)", paintX, w, off)
	}
}
