//go:build !sim

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lumen/app"
	"lumen/config"
	"lumen/hal"
	"lumen/internal/buildinfo"
)

func main() {
	var (
		cfgPath  = flag.String("config", "", "Path to a TOML config file (defaults apply when empty).")
		headless = flag.Bool("headless", false, "Run without hardware, against a discarded framebuffer.")
		ticks    = flag.Uint64("ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
		version  = flag.Bool("version", false, "Print version and exit.")
	)
	flag.Parse()

	if *version {
		fmt.Println(buildinfo.Name, buildinfo.Short())
		return
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.Log.SlogLevel(),
	}))

	if err := run(cfg, log, *headless, *ticks); err != nil {
		log.Error("exiting", "err", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger, headless bool, ticks uint64) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var dev *hal.Device
	if headless {
		dev = headlessDevice(cfg)
		if ticks > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, time.Duration(ticks)*cfg.Loop.Tick.Std())
			defer cancel()
		}
	} else {
		var err error
		dev, err = hal.Open(deviceConfig(cfg))
		if err != nil {
			return err
		}
	}
	defer func() {
		if cerr := dev.Close(); cerr != nil {
			log.Warn("device close failed", "err", cerr)
		}
	}()

	log.Info("starting", "name", buildinfo.Name, "version", buildinfo.Short(), "headless", headless)
	return app.Run(ctx, log, cfg, dev)
}

func deviceConfig(cfg config.Config) hal.DeviceConfig {
	return hal.DeviceConfig{
		SPIPort:      cfg.Display.SPIPort,
		SpeedMHz:     cfg.Display.SpeedMHz,
		ResetPin:     cfg.Display.ResetPin,
		DCPin:        cfg.Display.DCPin,
		BacklightPin: cfg.Display.BacklightPin,
		Panel: hal.PanelConfig{
			Width:        cfg.Display.Width,
			Height:       cfg.Display.Height,
			ColumnOffset: cfg.Display.ColumnOffset,
			RowOffset:    cfg.Display.RowOffset,
			Rotation:     cfg.Display.Rotation,
		},
		Buttons: hal.ButtonPinNames{
			Up:     cfg.Buttons.Up,
			Down:   cfg.Buttons.Down,
			Left:   cfg.Buttons.Left,
			Right:  cfg.Buttons.Right,
			Select: cfg.Buttons.Select,
			Back:   cfg.Buttons.Back,
			Aux2:   cfg.Buttons.Aux2,
			Aux3:   cfg.Buttons.Aux3,
		},
	}
}

// headlessDevice is a full device with nothing behind it: flushes are
// accepted and dropped, buttons idle high and never press.
func headlessDevice(cfg config.Config) *hal.Device {
	pin := func(name string) hal.Pin { return hal.NewMemPin(name, true) }
	return &hal.Device{
		Display: hal.NewNopDisplay(cfg.Display.Width, cfg.Display.Height),
		Buttons: hal.ButtonPins{
			Up:     pin("up"),
			Down:   pin("down"),
			Left:   pin("left"),
			Right:  pin("right"),
			Select: pin("select"),
			Back:   pin("back"),
			Aux2:   pin("aux2"),
			Aux3:   pin("aux3"),
		},
	}
}
