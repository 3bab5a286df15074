//go:build sim

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"lumen/app"
	"lumen/config"
	"lumen/hal"
	"lumen/internal/buildinfo"
)

func main() {
	var (
		cfgPath = flag.String("config", "", "Path to a TOML config file (defaults apply when empty).")
		scale   = flag.Int("scale", 2, "Window scale factor.")
		version = flag.Bool("version", false, "Print version and exit.")
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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("starting simulator", "name", buildinfo.Name, "version", buildinfo.Short())
	sim := hal.SimConfig{Width: cfg.Display.Width, Height: cfg.Display.Height, Scale: *scale}
	err = hal.RunSim(ctx, sim, func(ctx context.Context, dev *hal.Device) error {
		return app.Run(ctx, log, cfg, dev)
	})
	if err != nil {
		log.Error("exiting", "err", err)
		os.Exit(1)
	}
}
