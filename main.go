//go:generate go run ./cmd/mkmoon -out assets/moon.png

package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"skyline/app"
	"skyline/hal"
	"skyline/internal/buildinfo"
	"skyline/internal/config"
	"skyline/internal/metrics"
)

func main() {
	def := config.Default()

	configPath := flag.String("config", "", "Config file (toml, yaml or json).")
	flag.Bool("headless", def.Headless, "Run without a window and write a PNG snapshot.")
	flag.Int("hz", def.Hz, "Tick rate in headless mode.")
	flag.Uint64("ticks", def.Ticks, "Stop after N ticks in headless mode (0 = run until interrupted).")
	flag.String("out", def.Out, "Snapshot path in headless mode.")
	flag.Float64("hour", def.Hour, "Initial hour of day (negative = intro toward the wall clock).")
	flag.String("cursor", def.Cursor, "Scripted pointer position \"x,y\" in window pixels.")
	flag.Uint64("seed", def.Seed, "Satellite seed (0 = wall clock).")
	flag.Int("satellites", def.Satellites, "Number of satellites.")
	flag.Bool("cpu", def.CPU, "Shade the sky on the CPU instead of the GPU.")
	flag.Bool("grain", def.Grain, "Film grain post pass.")
	flag.String("moon", def.Moon, "Moon texture path or URL.")
	flag.String("metrics-addr", def.MetricsAddr, "Serve prometheus metrics on this address.")
	flag.String("log-level", def.LogLevel, "debug|info|warn|error.")
	flag.Int("width", def.Width, "Window or snapshot width.")
	flag.Int("height", def.Height, "Window or snapshot height.")
	flag.Float64("quality", def.Quality, "Drawable scale relative to the device pixels (0..1].")
	flag.Int("max-width", def.MaxWidth, "Upper bound of the drawable width.")
	flag.Int("workers", def.Workers, "CPU shading workers (0 = GOMAXPROCS).")
	flag.Parse()

	overrides := map[string]any{}
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "config" {
			return
		}
		if g, ok := f.Value.(flag.Getter); ok {
			overrides[config.Key(f.Name)] = g.Get()
		}
	})

	cfg, err := config.Load(*configPath, overrides)
	if err != nil {
		slog.Error("config", "error", err)
		os.Exit(2)
	}
	level, _ := cfg.Level()
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)
	log.Info("starting", buildinfo.Attr(), "headless", cfg.Headless, "cpu", cfg.CPU)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()
	if cfg.MetricsAddr != "" {
		go func() {
			if err := m.Serve(ctx, cfg.MetricsAddr, log); err != nil {
				log.Error("metrics server", "addr", cfg.MetricsAddr, "error", err)
			}
		}()
	}

	if err := run(ctx, cfg, log, m); err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		log.Error("exit", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger, m *metrics.Collector) error {
	scene := app.Config{
		Seed:       cfg.Seed,
		Satellites: cfg.Satellites,
		Hour:       cfg.Hour,
		Moon:       cfg.Moon,
		Grain:      cfg.Grain,
		Quality:    cfg.Quality,
		MaxWidth:   cfg.MaxWidth,
	}
	if x, y, ok, _ := cfg.CursorPos(); ok {
		scene.Cursor = true
		scene.CursorX, scene.CursorY = float32(x), float32(y)
	}
	newApp := func(h hal.HAL) func() error {
		return app.New(ctx, h, scene)
	}
	opts := hal.Options{Logger: log, Metrics: m, Workers: cfg.Workers}

	if cfg.Headless {
		return hal.RunHeadless(ctx, newApp, hal.HeadlessConfig{
			Hz:     cfg.Hz,
			Ticks:  cfg.Ticks,
			Width:  cfg.Width,
			Height: cfg.Height,
			Out:    cfg.Out,
		}, opts)
	}
	return hal.RunWindow(ctx, newApp, hal.WindowConfig{
		Width:  cfg.Width,
		Height: cfg.Height,
		CPU:    cfg.CPU,
	}, opts)
}
