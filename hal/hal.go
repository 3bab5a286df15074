// Package hal owns the handheld's hardware: the SPI LCD panel behind a
// CPU-side staging framebuffer, and the GPIO lines the buttons hang off.
// The runtime draws into the framebuffer and commits regions with Flush,
// so bus traffic stays proportional to what actually changed on screen.
package hal

import (
	"fmt"
	"image"
)

// Display is a panel behind a staging framebuffer. Callers draw into
// Framebuffer() and then Flush a region; the display never repaints on
// its own.
type Display interface {
	// Bounds reports the panel size as a rectangle at the origin.
	Bounds() image.Rectangle

	// Framebuffer returns the staging buffer.
	Framebuffer() *Framebuffer

	// Flush commits the given region of the staging buffer to the
	// panel. An empty region is a no-op.
	Flush(region image.Rectangle) error

	// Close blanks the panel and releases the hardware.
	Close() error
}

// Pin is a digital input line.
type Pin interface {
	Name() string
	Read() (level bool, err error)
}

// ButtonPins collects the device's button lines: the five-way joystick
// plus the three side keys. Buttons are wired active-low.
type ButtonPins struct {
	Up     Pin
	Down   Pin
	Left   Pin
	Right  Pin
	Select Pin
	Back   Pin
	Aux2   Pin
	Aux3   Pin
}

// Device bundles the hardware handed to the runtime at startup.
type Device struct {
	Display Display
	Buttons ButtonPins

	close func() error
}

// Close releases the display and the underlying bus handles.
func (d *Device) Close() error {
	if d.close != nil {
		return d.close()
	}
	if d.Display != nil {
		return d.Display.Close()
	}
	return nil
}

// DriverError wraps a display hardware failure with the operation that
// hit it. Flush errors are logged and retried by the runtime; only
// initialization failures are fatal.
type DriverError struct {
	Op  string
	Err error
}

func (e *DriverError) Error() string { return fmt.Sprintf("display %s: %v", e.Op, e.Err) }
func (e *DriverError) Unwrap() error { return e.Err }

// NopDisplay is a Display with no panel behind it, for headless runs
// and smoke tests.
type NopDisplay struct {
	fb *Framebuffer
}

// NewNopDisplay returns a NopDisplay with a width x height framebuffer.
func NewNopDisplay(width, height int) *NopDisplay {
	return &NopDisplay{fb: NewFramebuffer(width, height)}
}

func (d *NopDisplay) Bounds() image.Rectangle { return d.fb.Bounds() }

func (d *NopDisplay) Framebuffer() *Framebuffer { return d.fb }

func (d *NopDisplay) Flush(image.Rectangle) error { return nil }

func (d *NopDisplay) Close() error { return nil }
