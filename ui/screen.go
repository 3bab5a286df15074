package ui

import (
	"lumen/input"
	"lumen/status"
)

// Screen is one member of the closed navigation set. Render must not
// mutate the screen; all state changes go through HandleInput, which
// the runtime calls strictly between renders.
type Screen interface {
	Name() string
	Render(snap status.Snapshot) Frame
	HandleInput(ev input.Event) Transition
}

type TransitionKind uint8

const (
	TransStay TransitionKind = iota
	TransPush
	TransPop
	TransReplace
)

// Transition tells the runtime what to do with the navigation stack
// after an input event.
type Transition struct {
	Kind TransitionKind
	To   Screen
}

func Stay() Transition            { return Transition{Kind: TransStay} }
func Push(s Screen) Transition    { return Transition{Kind: TransPush, To: s} }
func Pop() Transition             { return Transition{Kind: TransPop} }
func Replace(s Screen) Transition { return Transition{Kind: TransReplace, To: s} }

// popOnBack is the shared detail-screen gesture: joystick left or the
// back key returns to the previous screen.
func popOnBack(ev input.Event) (Transition, bool) {
	if ev.Kind != input.Pressed {
		return Stay(), false
	}
	if ev.Button == input.BtnBack || ev.Button == input.BtnLeft {
		return Pop(), true
	}
	return Stay(), false
}
