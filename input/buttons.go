// Package input turns the raw button lines into debounced logical
// events. A background scanner samples the pins well below the
// debounce window; the runtime drains the queued events once per tick.
package input

// Button identifies one physical control: the five-way joystick and
// the three side keys. Identities are fixed by wiring.
type Button uint8

const (
	BtnUp Button = iota
	BtnDown
	BtnLeft
	BtnRight
	BtnSelect
	BtnBack
	BtnAux2
	BtnAux3
)

func (b Button) String() string {
	switch b {
	case BtnUp:
		return "up"
	case BtnDown:
		return "down"
	case BtnLeft:
		return "left"
	case BtnRight:
		return "right"
	case BtnSelect:
		return "select"
	case BtnBack:
		return "back"
	case BtnAux2:
		return "aux2"
	case BtnAux3:
		return "aux3"
	default:
		return "unknown"
	}
}

// EventKind says whether a button went down or came back up.
type EventKind uint8

const (
	Pressed EventKind = iota
	Released
)

func (k EventKind) String() string {
	if k == Pressed {
		return "pressed"
	}
	return "released"
}

// Event is one debounced button transition. Each physical press
// yields exactly one Pressed and, later, exactly one Released.
type Event struct {
	Button Button
	Kind   EventKind
}
