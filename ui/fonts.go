package ui

import (
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freesans"
	"tinygo.org/x/tinyfont/proggy"
)

// FontID selects one of the baked-in faces.
type FontID uint8

const (
	FontClock FontID = iota // large time digits
	FontBody                // dates, menu rows, detail values
	FontSmall               // captions and footers
)

// fontFace pairs a face with cover-box metrics. Ascent and descent
// are deliberately generous; a text op's box must contain every glyph
// pixel or partial flushes would leave droppings behind.
type fontFace struct {
	font    tinyfont.Fonter
	ascent  int16
	descent int16
}

var faces = [...]fontFace{
	FontClock: {&freesans.Bold24pt7b, 36, 11},
	FontBody:  {&freesans.Regular9pt7b, 14, 5},
	FontSmall: {&proggy.TinySZ8pt7b, 8, 3},
}

func faceOf(id FontID) fontFace {
	if int(id) >= len(faces) {
		return faces[FontBody]
	}
	return faces[id]
}

// Measure returns the cover-box size of s in the given face.
func Measure(id FontID, s string) (w, h int16) {
	face := faceOf(id)
	_, outbox := tinyfont.LineWidth(face.font, s)
	return int16(outbox), face.ascent + face.descent
}

// LineHeight is the row advance for the given face.
func LineHeight(id FontID) int16 {
	face := faceOf(id)
	return face.ascent + face.descent
}
