package hal

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

// DeviceConfig names the bus and pins the hardware hangs off. Pin
// names are periph registry names ("GPIO27", "22", ...).
type DeviceConfig struct {
	SPIPort  string // empty selects the first registered port
	SpeedMHz int

	ResetPin     string
	DCPin        string
	BacklightPin string // empty disables backlight control

	Panel   PanelConfig
	Buttons ButtonPinNames
}

// ButtonPinNames maps each button to its GPIO line.
type ButtonPinNames struct {
	Up     string
	Down   string
	Left   string
	Right  string
	Select string
	Back   string
	Aux2   string
	Aux3   string
}

// Open initializes the periph host, brings up the panel over SPI, and
// configures the button lines with pull-ups. The returned Device owns
// the SPI port; Close releases everything.
func Open(cfg DeviceConfig) (*Device, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("hal: host init: %w", err)
	}

	port, err := spireg.Open(cfg.SPIPort)
	if err != nil {
		return nil, fmt.Errorf("hal: open spi port %q: %w", cfg.SPIPort, err)
	}

	speed := cfg.SpeedMHz
	if speed <= 0 {
		speed = 32
	}
	conn, err := port.Connect(physic.Frequency(speed)*physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		port.Close()
		return nil, fmt.Errorf("hal: spi connect: %w", err)
	}

	dc, err := outputPin(cfg.DCPin)
	if err != nil {
		port.Close()
		return nil, err
	}
	rst, err := outputPin(cfg.ResetPin)
	if err != nil {
		port.Close()
		return nil, err
	}
	var bl outPin
	if cfg.BacklightPin != "" {
		bl, err = outputPin(cfg.BacklightPin)
		if err != nil {
			port.Close()
			return nil, err
		}
	}

	panel, err := newST7789(conn, dc, rst, bl, cfg.Panel)
	if err != nil {
		port.Close()
		return nil, err
	}

	buttons, err := openButtons(cfg.Buttons)
	if err != nil {
		panel.Close()
		port.Close()
		return nil, err
	}

	dev := &Device{Display: panel, Buttons: buttons}
	dev.close = func() error {
		err := panel.Close()
		if cerr := port.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("hal: close spi port: %w", cerr)
		}
		return err
	}
	return dev, nil
}

func outputPin(name string) (gpio.PinIO, error) {
	if name == "" {
		return nil, fmt.Errorf("hal: output pin name empty")
	}
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("hal: no gpio pin %q", name)
	}
	if err := p.Out(gpio.Low); err != nil {
		return nil, fmt.Errorf("hal: configure output %q: %w", name, err)
	}
	return p, nil
}

func openButtons(names ButtonPinNames) (ButtonPins, error) {
	var firstErr error
	open := func(name string) Pin {
		if firstErr != nil {
			return nil
		}
		if name == "" {
			firstErr = fmt.Errorf("hal: button pin name empty")
			return nil
		}
		p := gpioreg.ByName(name)
		if p == nil {
			firstErr = fmt.Errorf("hal: no gpio pin %q", name)
			return nil
		}
		if err := p.In(gpio.PullUp, gpio.NoEdge); err != nil {
			firstErr = fmt.Errorf("hal: configure input %q: %w", name, err)
			return nil
		}
		return gpioPin{pin: p}
	}

	b := ButtonPins{
		Up:     open(names.Up),
		Down:   open(names.Down),
		Left:   open(names.Left),
		Right:  open(names.Right),
		Select: open(names.Select),
		Back:   open(names.Back),
		Aux2:   open(names.Aux2),
		Aux3:   open(names.Aux3),
	}
	return b, firstErr
}

// gpioPin adapts a periph input pin to the Pin interface.
type gpioPin struct {
	pin gpio.PinIn
}

func (p gpioPin) Name() string { return p.pin.Name() }

func (p gpioPin) Read() (bool, error) { return bool(p.pin.Read()), nil }
