package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lumen.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultValidates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg != Default() {
		t.Fatalf("got %+v, want defaults", cfg)
	}
}

func TestLoadLayersFileOverDefaults(t *testing.T) {
	path := writeFile(t, `
[log]
level = "debug"

[loop]
tick = "500ms"

[status]
gpsd_address = ""
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level = %q, want debug", cfg.Log.Level)
	}
	if got := cfg.Loop.Tick.Std(); got != 500*time.Millisecond {
		t.Errorf("tick = %v, want 500ms", got)
	}
	if cfg.Status.GPSDAddress != "" {
		t.Errorf("gpsd address = %q, want empty", cfg.Status.GPSDAddress)
	}
	if cfg.Display.ResetPin != "GPIO27" {
		t.Errorf("reset pin = %q, want untouched default", cfg.Display.ResetPin)
	}
	if got := cfg.Loop.FullRedraw.Std(); got != 30*time.Second {
		t.Errorf("full redraw = %v, want untouched default", got)
	}
}

func TestLoadRejectsUnknownKey(t *testing.T) {
	path := writeFile(t, `
[loop]
tck = "100ms"
`)
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "unknown key") {
		t.Fatalf("err = %v, want unknown key", err)
	}
}

func TestLoadRejectsNegativeDuration(t *testing.T) {
	path := writeFile(t, `
[loop]
tick = "-1s"
`)
	if _, err := Load(path); err == nil {
		t.Fatal("want error for negative duration")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Fatal("want error for missing file")
	}
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }},
		{"zero width", func(c *Config) { c.Display.Width = 0 }},
		{"spi too fast", func(c *Config) { c.Display.SpeedMHz = 200 }},
		{"diagonal rotation", func(c *Config) { c.Display.Rotation = 45 }},
		{"missing dc pin", func(c *Config) { c.Display.DCPin = "" }},
		{"missing button pin", func(c *Config) { c.Buttons.Back = "" }},
		{"zero debounce", func(c *Config) { c.Input.Debounce = 0 }},
		{"scan slower than debounce", func(c *Config) { c.Input.Scan = Duration(time.Second) }},
		{"zero tick", func(c *Config) { c.Loop.Tick = 0 }},
		{"tick too fast", func(c *Config) { c.Loop.Tick = Duration(50 * time.Millisecond) }},
		{"tick too slow", func(c *Config) { c.Loop.Tick = Duration(2 * time.Second) }},
		{"full redraw below tick", func(c *Config) { c.Loop.FullRedraw = Duration(time.Millisecond) }},
		{"zero wifi interval", func(c *Config) { c.Status.WifiInterval = 0 }},
		{"zero probe timeout", func(c *Config) { c.Status.ProbeTimeout = 0 }},
		{"empty disk path", func(c *Config) { c.Status.DiskPath = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("want validation error")
			}
		})
	}
}

func TestValidateAllowsEmptyGPSD(t *testing.T) {
	cfg := Default()
	cfg.Status.GPSDAddress = ""
	if err := cfg.Validate(); err != nil {
		t.Fatalf("empty gpsd address should be allowed: %v", err)
	}
}

func TestDurationText(t *testing.T) {
	var d Duration
	if err := d.UnmarshalText([]byte("250ms")); err != nil {
		t.Fatal(err)
	}
	if d.Std() != 250*time.Millisecond {
		t.Fatalf("got %v", d.Std())
	}
	if err := d.UnmarshalText([]byte("banana")); err == nil {
		t.Fatal("want parse error")
	}
	if err := d.UnmarshalText([]byte("-5s")); err == nil {
		t.Fatal("want negative rejected")
	}
	out, err := Duration(30 * time.Second).MarshalText()
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "30s" {
		t.Fatalf("marshal = %q", out)
	}
}

func TestSlogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"Warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"":      slog.LevelInfo,
	}
	for name, want := range cases {
		if got := (Log{Level: name}).SlogLevel(); got != want {
			t.Errorf("level %q = %v, want %v", name, got, want)
		}
	}
}
