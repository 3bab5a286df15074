// Package app assembles the runtime: status providers, button
// scanner and the tick engine, wired to an opened device. Hardware
// setup stays with the caller so the same wiring serves the panel,
// the simulator window and headless runs.
package app

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"lumen/config"
	"lumen/engine"
	"lumen/hal"
	"lumen/input"
	"lumen/internal/clock"
	"lumen/status"
	"lumen/ui"
)

// Run wires everything onto dev and blocks until ctx is cancelled or
// a component fails. The caller owns dev and closes it afterwards.
func Run(ctx context.Context, log *slog.Logger, cfg config.Config, dev *hal.Device) error {
	return run(ctx, clock.Real(), log, cfg, dev)
}

func run(ctx context.Context, clk clock.Clock, log *slog.Logger, cfg config.Config, dev *hal.Device) error {
	wifi := status.NewWifiProvider(clk, log,
		cfg.Status.WifiInterval.Std(), cfg.Status.ProbeTimeout.Std())
	bt := status.NewBluetoothProvider(clk, log,
		cfg.Status.BluetoothInterval.Std(), cfg.Status.ProbeTimeout.Std())
	sys := status.NewSysProvider(clk, log,
		cfg.Status.SysInterval.Std(), cfg.Status.DiskPath)

	var gps *status.GPSProvider
	if cfg.Status.GPSDAddress != "" {
		gps = status.NewGPSProvider(clk, log, cfg.Status.GPSDAddress)
	} else {
		log.Info("gps disabled by config")
	}
	providers := status.NewProviders(clk, wifi, bt, gps, sys)

	scanner := input.NewScanner(clk, log, input.Bind(dev.Buttons),
		cfg.Input.Debounce.Std(), cfg.Input.Scan.Std())

	eng := engine.New(clk, log, dev.Display, scanner, providers, ui.NewHome(), engine.Config{
		Tick:       cfg.Loop.Tick.Std(),
		FullRedraw: cfg.Loop.FullRedraw.Std(),
	})

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return providers.Run(ctx) })
	g.Go(func() error { scanner.Run(ctx); return nil })
	g.Go(func() error { return eng.Run(ctx) })
	return g.Wait()
}
