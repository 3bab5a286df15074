package hal

import (
	"errors"
	"image"
	"time"

	"periph.io/x/conn/v3/gpio"
)

// spiTx is the slice of the SPI connection the panel driver needs.
// spi.Conn from periph satisfies it.
type spiTx interface {
	Tx(w, r []byte) error
}

// outPin is the slice of a GPIO output the panel driver needs.
type outPin interface {
	Out(l gpio.Level) error
}

// PanelConfig describes the LCD geometry and mounting. The 240x240
// panels sit in a 240x320 controller RAM; rotated mounts need the
// unused 80 rows skipped via RowOffset/ColumnOffset.
type PanelConfig struct {
	Width        int
	Height       int
	ColumnOffset int
	RowOffset    int
	Rotation     int // degrees clockwise: 0, 90, 180, 270
}

// st7789 drives a Sitronix ST7789V panel over SPI with a shared
// chip-select handled by the bus and a dedicated data/command line.
type st7789 struct {
	tx  spiTx
	dc  outPin
	rst outPin
	bl  outPin // optional backlight, may be nil

	fb    *Framebuffer
	geom  PanelConfig
	chunk []byte // spidev transfers cap out at 4096 bytes
	sleep func(time.Duration)
}

func newST7789(tx spiTx, dc, rst, bl outPin, geom PanelConfig) (*st7789, error) {
	if tx == nil || dc == nil || rst == nil {
		return nil, &DriverError{Op: "init", Err: errors.New("missing spi conn or control pin")}
	}
	if geom.Width <= 0 || geom.Height <= 0 {
		return nil, &DriverError{Op: "init", Err: errors.New("invalid panel geometry")}
	}

	d := &st7789{
		tx:    tx,
		dc:    dc,
		rst:   rst,
		bl:    bl,
		fb:    NewFramebuffer(geom.Width, geom.Height),
		geom:  geom,
		chunk: make([]byte, 4096),
		sleep: time.Sleep,
	}
	if err := d.start(); err != nil {
		return nil, err
	}
	return d, nil
}

// start resets the controller, programs the register sequence, and
// lights the backlight.
func (d *st7789) start() error {
	if err := d.reset(); err != nil {
		return &DriverError{Op: "init", Err: err}
	}
	if err := d.initRegisters(); err != nil {
		return &DriverError{Op: "init", Err: err}
	}
	if d.bl != nil {
		if err := d.bl.Out(gpio.High); err != nil {
			return &DriverError{Op: "init", Err: err}
		}
	}
	return nil
}

func (d *st7789) Bounds() image.Rectangle { return d.fb.Bounds() }

func (d *st7789) Framebuffer() *Framebuffer { return d.fb }

func (d *st7789) reset() error {
	if err := d.rst.Out(gpio.High); err != nil {
		return err
	}
	d.sleep(10 * time.Millisecond)
	if err := d.rst.Out(gpio.Low); err != nil {
		return err
	}
	d.sleep(50 * time.Millisecond)
	if err := d.rst.Out(gpio.High); err != nil {
		return err
	}
	d.sleep(120 * time.Millisecond)
	return nil
}

func (d *st7789) initRegisters() error {
	if err := d.cmd(0x11); err != nil { // SLPOUT
		return err
	}
	d.sleep(120 * time.Millisecond)

	seq := []struct {
		cmd  byte
		data []byte
	}{
		{0x3A, []byte{0x05}},                         // COLMOD: 16bpp
		{0x36, []byte{d.madctl()}},                   // MADCTL
		{0xB2, []byte{0x0C, 0x0C, 0x00, 0x33, 0x33}}, // PORCTRL
		{0xB7, []byte{0x35}},                         // GCTRL
		{0xBB, []byte{0x19}},                         // VCOMS
		{0xC0, []byte{0x2C}},                         // LCMCTRL
		{0xC2, []byte{0x01}},                         // VDVVRHEN
		{0xC3, []byte{0x12}},                         // VRHS
		{0xC4, []byte{0x20}},                         // VDVS
		{0xC6, []byte{0x0F}},                         // FRCTRL2: 60Hz
		{0xD0, []byte{0xA4, 0xA1}},                   // PWCTRL1
		{0xE0, []byte{0xD0, 0x04, 0x0D, 0x11, 0x13, 0x2B, 0x3F, 0x54,
			0x4C, 0x18, 0x0D, 0x0B, 0x1F, 0x23}}, // PVGAMCTRL
		{0xE1, []byte{0xD0, 0x04, 0x0C, 0x11, 0x13, 0x2C, 0x3F, 0x44,
			0x51, 0x2F, 0x1F, 0x1F, 0x20, 0x23}}, // NVGAMCTRL
		{0x21, nil}, // INVON: these panels expect inversion
		{0x13, nil}, // NORON
		{0x29, nil}, // DISPON
	}
	for _, r := range seq {
		if err := d.cmd(r.cmd, r.data...); err != nil {
			return err
		}
	}
	d.sleep(20 * time.Millisecond)
	return nil
}

func (d *st7789) madctl() byte {
	// MY=0x80 MX=0x40 MV=0x20; RGB panel order.
	switch d.geom.Rotation {
	case 90:
		return 0x60
	case 180:
		return 0xC0
	case 270:
		return 0xA0
	default:
		return 0x00
	}
}

// cmd writes a command byte with DC low, then its parameters with DC
// high. Chip select is held by the kernel SPI device.
func (d *st7789) cmd(c byte, data ...byte) error {
	if err := d.dc.Out(gpio.Low); err != nil {
		return err
	}
	if err := d.tx.Tx([]byte{c}, nil); err != nil {
		return err
	}
	if err := d.dc.Out(gpio.High); err != nil {
		return err
	}
	if len(data) > 0 {
		return d.tx.Tx(data, nil)
	}
	return nil
}

func (d *st7789) setWindow(x0, y0, x1, y1 int) error {
	x0 += d.geom.ColumnOffset
	x1 += d.geom.ColumnOffset
	y0 += d.geom.RowOffset
	y1 += d.geom.RowOffset

	if err := d.cmd(0x2A, // CASET
		byte(x0>>8), byte(x0),
		byte(x1>>8), byte(x1),
	); err != nil {
		return err
	}
	if err := d.cmd(0x2B, // RASET
		byte(y0>>8), byte(y0),
		byte(y1>>8), byte(y1),
	); err != nil {
		return err
	}
	return d.cmd(0x2C) // RAMWR
}

// Flush commits a region of the staging buffer to the panel. The
// framebuffer stores RGB565 little-endian; the panel wants big-endian,
// so bytes swap on the way out.
func (d *st7789) Flush(region image.Rectangle) error {
	region = region.Intersect(d.fb.Bounds())
	if region.Empty() {
		return nil
	}

	if err := d.setWindow(region.Min.X, region.Min.Y, region.Max.X-1, region.Max.Y-1); err != nil {
		return &DriverError{Op: "flush", Err: err}
	}

	fill := 0
	for y := region.Min.Y; y < region.Max.Y; y++ {
		row := d.fb.Row(y, region.Min.X, region.Max.X)
		for i := 0; i < len(row); i += 2 {
			if fill == len(d.chunk) {
				if err := d.tx.Tx(d.chunk, nil); err != nil {
					return &DriverError{Op: "flush", Err: err}
				}
				fill = 0
			}
			d.chunk[fill] = row[i+1]
			d.chunk[fill+1] = row[i]
			fill += 2
		}
	}
	if fill > 0 {
		if err := d.tx.Tx(d.chunk[:fill], nil); err != nil {
			return &DriverError{Op: "flush", Err: err}
		}
	}
	return nil
}

// Close blanks the panel and cuts the backlight. The SPI port itself
// is closed by the Device that opened it.
func (d *st7789) Close() error {
	var first error
	if err := d.cmd(0x28); err != nil && first == nil { // DISPOFF
		first = err
	}
	if err := d.cmd(0x10); err != nil && first == nil { // SLPIN
		first = err
	}
	if d.bl != nil {
		if err := d.bl.Out(gpio.Low); err != nil && first == nil {
			first = err
		}
	}
	if first != nil {
		return &DriverError{Op: "close", Err: first}
	}
	return nil
}
