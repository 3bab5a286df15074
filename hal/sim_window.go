//go:build sim

package hal

import (
	"context"

	"github.com/hajimehoshi/ebiten/v2"

	"lumen/internal/buildinfo"
)

// SimConfig sizes the simulator window.
type SimConfig struct {
	Width  int
	Height int
	Scale  int
}

// RunSim opens the simulator window and runs fn with a Device whose
// display is the window and whose button pins follow the keyboard:
// arrows for the joystick, Enter for Select, Escape or 1 for Back,
// 2 and 3 for the remaining side keys. It blocks until fn returns or
// the window is closed, whichever comes first.
func RunSim(ctx context.Context, cfg SimConfig, fn func(ctx context.Context, dev *Device) error) error {
	if cfg.Width <= 0 {
		cfg.Width = 240
	}
	if cfg.Height <= 0 {
		cfg.Height = 240
	}
	if cfg.Scale <= 0 {
		cfg.Scale = 2
	}

	disp := NewSimDisplay(cfg.Width, cfg.Height)

	// Idle button lines sit high; a held key pulls them low.
	pins := simPins{
		up:    NewMemPin("sim-up", true),
		down:  NewMemPin("sim-down", true),
		left:  NewMemPin("sim-left", true),
		right: NewMemPin("sim-right", true),
		sel:   NewMemPin("sim-select", true),
		back:  NewMemPin("sim-back", true),
		aux2:  NewMemPin("sim-aux2", true),
		aux3:  NewMemPin("sim-aux3", true),
	}
	dev := &Device{
		Display: disp,
		Buttons: ButtonPins{
			Up:     pins.up,
			Down:   pins.down,
			Left:   pins.left,
			Right:  pins.right,
			Select: pins.sel,
			Back:   pins.back,
			Aux2:   pins.aux2,
			Aux3:   pins.aux3,
		},
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	g := &simGame{
		disp: disp,
		pins: pins,
		done: make(chan error, 1),
	}
	go func() { g.done <- fn(runCtx, dev) }()

	ebiten.SetWindowTitle(buildinfo.Name + " (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(cfg.Width*cfg.Scale, cfg.Height*cfg.Scale)
	ebiten.SetTPS(60)
	err := ebiten.RunGame(g)

	cancel()
	ferr := g.err
	if !g.finished {
		ferr = <-g.done
	}
	if ferr != nil {
		return ferr
	}
	return err
}

type simGame struct {
	disp *SimDisplay
	pins simPins
	done chan error

	finished bool
	err      error

	fbImg   *ebiten.Image
	scratch []byte
}

func (g *simGame) Update() error {
	select {
	case g.err = <-g.done:
		g.finished = true
		return ebiten.Termination
	default:
	}
	g.pins.poll()
	return nil
}

func (g *simGame) Draw(screen *ebiten.Image) {
	fb := g.disp.fb
	if g.fbImg == nil {
		g.fbImg = ebiten.NewImage(fb.Width(), fb.Height())
		g.scratch = make([]byte, fb.Width()*fb.Height()*4)
	}
	g.disp.snapshot(g.scratch)
	g.fbImg.WritePixels(g.scratch)
	screen.DrawImage(g.fbImg, nil)
}

func (g *simGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.disp.fb.Width(), g.disp.fb.Height()
}

type simPins struct {
	up, down, left, right *MemPin
	sel, back, aux2, aux3 *MemPin
}

func (p simPins) poll() {
	level := func(pin *MemPin, pressed bool) { pin.Set(!pressed) }
	level(p.up, ebiten.IsKeyPressed(ebiten.KeyArrowUp))
	level(p.down, ebiten.IsKeyPressed(ebiten.KeyArrowDown))
	level(p.left, ebiten.IsKeyPressed(ebiten.KeyArrowLeft))
	level(p.right, ebiten.IsKeyPressed(ebiten.KeyArrowRight))
	level(p.sel, ebiten.IsKeyPressed(ebiten.KeyEnter))
	level(p.back, ebiten.IsKeyPressed(ebiten.KeyEscape) || ebiten.IsKeyPressed(ebiten.KeyDigit1))
	level(p.aux2, ebiten.IsKeyPressed(ebiten.KeyDigit2))
	level(p.aux3, ebiten.IsKeyPressed(ebiten.KeyDigit3))
}
