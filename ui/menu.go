package ui

import (
	"lumen/input"
	"lumen/status"
)

const (
	menuRowY int16 = 52
	menuRowH int16 = 42
)

type menuEntry struct {
	title string
	open  func() Screen
}

// Menu lists the detail screens. The cursor wraps in both directions.
type Menu struct {
	cursor  int
	entries []menuEntry
}

func NewMenu() *Menu {
	return &Menu{entries: []menuEntry{
		{"System", func() Screen { return NewSystem() }},
		{"GPS", func() Screen { return NewGPSView() }},
		{"Storage", func() Screen { return NewStorage() }},
		{"About", func() Screen { return NewAbout() }},
	}}
}

func (m *Menu) Name() string { return "menu" }

func (m *Menu) Render(snap status.Snapshot) Frame {
	ops := make([]Op, 0, 3+2*len(m.entries)+1)
	ops = append(ops, FillRect(0, 0, ScreenW, ScreenH, ColorBG))
	ops = append(ops, titleBar("Menu")...)
	for i, e := range m.entries {
		rowY := menuRowY + int16(i)*menuRowH
		rowColor := ColorBG
		textColor := ColorFG
		if i == m.cursor {
			rowColor = ColorAccent
			textColor = ColorBG
		}
		ops = append(ops, FillRect(8, rowY, ScreenW-16, menuRowH-6, rowColor))
		ops = append(ops, Label(FontBody, 24, rowY+25, e.title, textColor))
	}
	ops = append(ops, Centered(FontSmall, ScreenH-8, "press open   left back", ColorDim))
	return Frame{Ops: ops}
}

func (m *Menu) HandleInput(ev input.Event) Transition {
	if ev.Kind != input.Pressed {
		return Stay()
	}
	switch ev.Button {
	case input.BtnDown:
		m.cursor = (m.cursor + 1) % len(m.entries)
	case input.BtnUp:
		m.cursor = (m.cursor + len(m.entries) - 1) % len(m.entries)
	case input.BtnSelect, input.BtnRight:
		return Push(m.entries[m.cursor].open())
	case input.BtnBack, input.BtnLeft:
		return Pop()
	}
	return Stay()
}
