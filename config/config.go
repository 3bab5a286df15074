// Package config loads the runtime configuration from a TOML file
// layered over compiled-in defaults for the Waveshare 1.3" LCD HAT.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Log     Log     `toml:"log"`
	Display Display `toml:"display"`
	Buttons Buttons `toml:"buttons"`
	Input   Input   `toml:"input"`
	Loop    Loop    `toml:"loop"`
	Status  Status  `toml:"status"`
}

type Log struct {
	Level string `toml:"level"`
}

// SlogLevel maps the configured name to a slog level. Unknown names
// fall back to info; validation rejects them before this is consulted.
func (l Log) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Display names the SPI bus and control pins of the panel. Pin names
// are periph registry names.
type Display struct {
	SPIPort      string `toml:"spi_port"`
	SpeedMHz     int    `toml:"speed_mhz"`
	ResetPin     string `toml:"reset_pin"`
	DCPin        string `toml:"dc_pin"`
	BacklightPin string `toml:"backlight_pin"`
	Width        int    `toml:"width"`
	Height       int    `toml:"height"`
	ColumnOffset int    `toml:"column_offset"`
	RowOffset    int    `toml:"row_offset"`
	Rotation     int    `toml:"rotation"`
}

// Buttons maps each logical button to its GPIO line.
type Buttons struct {
	Up     string `toml:"up"`
	Down   string `toml:"down"`
	Left   string `toml:"left"`
	Right  string `toml:"right"`
	Select string `toml:"select"`
	Back   string `toml:"back"`
	Aux2   string `toml:"aux2"`
	Aux3   string `toml:"aux3"`
}

type Input struct {
	Debounce Duration `toml:"debounce"`
	Scan     Duration `toml:"scan"`
}

type Loop struct {
	Tick       Duration `toml:"tick"`
	FullRedraw Duration `toml:"full_redraw"`
}

type Status struct {
	WifiInterval      Duration `toml:"wifi_interval"`
	BluetoothInterval Duration `toml:"bluetooth_interval"`
	ProbeTimeout      Duration `toml:"probe_timeout"`
	GPSDAddress       string   `toml:"gpsd_address"`
	SysInterval       Duration `toml:"sys_interval"`
	DiskPath          string   `toml:"disk_path"`
}

// Default returns the configuration for a stock Waveshare 1.3" LCD
// HAT on a Raspberry Pi.
func Default() Config {
	return Config{
		Log: Log{Level: "info"},
		Display: Display{
			SPIPort:      "",
			SpeedMHz:     32,
			ResetPin:     "GPIO27",
			DCPin:        "GPIO25",
			BacklightPin: "GPIO24",
			Width:        240,
			Height:       240,
		},
		Buttons: Buttons{
			Up:     "GPIO6",
			Down:   "GPIO19",
			Left:   "GPIO5",
			Right:  "GPIO26",
			Select: "GPIO13",
			Back:   "GPIO21",
			Aux2:   "GPIO20",
			Aux3:   "GPIO16",
		},
		Input: Input{
			Debounce: Duration(25 * time.Millisecond),
			Scan:     Duration(5 * time.Millisecond),
		},
		Loop: Loop{
			Tick:       Duration(250 * time.Millisecond),
			FullRedraw: Duration(30 * time.Second),
		},
		Status: Status{
			WifiInterval:      Duration(3 * time.Second),
			BluetoothInterval: Duration(3 * time.Second),
			ProbeTimeout:      Duration(200 * time.Millisecond),
			GPSDAddress:       "localhost:2947",
			SysInterval:       Duration(1 * time.Second),
			DiskPath:          "/",
		},
	}
}

// Load reads path over the defaults. An empty path returns the
// defaults untouched. Keys absent from the file keep their default.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		meta, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return Config{}, fmt.Errorf("config: %w", err)
		}
		if undec := meta.Undecoded(); len(undec) > 0 {
			return Config{}, fmt.Errorf("config: unknown key %q", undec[0].String())
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the runtime cannot work with. GPSDAddress
// may be empty; that disables the GPS provider.
func (c Config) Validate() error {
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log level %q", c.Log.Level)
	}

	d := c.Display
	if d.Width <= 0 || d.Height <= 0 {
		return fmt.Errorf("config: display %dx%d invalid", d.Width, d.Height)
	}
	if d.SpeedMHz <= 0 || d.SpeedMHz > 125 {
		return fmt.Errorf("config: spi speed %d MHz out of range", d.SpeedMHz)
	}
	switch d.Rotation {
	case 0, 90, 180, 270:
	default:
		return fmt.Errorf("config: rotation %d not a quarter turn", d.Rotation)
	}
	if d.ResetPin == "" || d.DCPin == "" {
		return fmt.Errorf("config: reset and dc pins required")
	}

	for _, p := range []struct {
		name, pin string
	}{
		{"up", c.Buttons.Up}, {"down", c.Buttons.Down},
		{"left", c.Buttons.Left}, {"right", c.Buttons.Right},
		{"select", c.Buttons.Select}, {"back", c.Buttons.Back},
		{"aux2", c.Buttons.Aux2}, {"aux3", c.Buttons.Aux3},
	} {
		if p.pin == "" {
			return fmt.Errorf("config: button %s has no pin", p.name)
		}
	}

	if c.Input.Debounce.Std() <= 0 {
		return fmt.Errorf("config: debounce must be positive")
	}
	if c.Input.Scan.Std() <= 0 {
		return fmt.Errorf("config: scan cadence must be positive")
	}
	if c.Input.Scan.Std() > c.Input.Debounce.Std() {
		return fmt.Errorf("config: scan cadence %s exceeds debounce %s",
			c.Input.Scan.Std(), c.Input.Debounce.Std())
	}

	if t := c.Loop.Tick.Std(); t < 200*time.Millisecond || t > time.Second {
		return fmt.Errorf("config: tick %s outside 200ms..1s", t)
	}
	if c.Loop.FullRedraw.Std() < c.Loop.Tick.Std() {
		return fmt.Errorf("config: full redraw interval %s below tick %s",
			c.Loop.FullRedraw.Std(), c.Loop.Tick.Std())
	}

	s := c.Status
	if s.WifiInterval.Std() <= 0 || s.BluetoothInterval.Std() <= 0 || s.SysInterval.Std() <= 0 {
		return fmt.Errorf("config: status intervals must be positive")
	}
	if s.ProbeTimeout.Std() <= 0 {
		return fmt.Errorf("config: probe timeout must be positive")
	}
	if s.DiskPath == "" {
		return fmt.Errorf("config: disk path required")
	}
	return nil
}
