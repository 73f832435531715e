// Package config loads runtime settings from defaults, an optional config
// file, SKYLINE_* environment variables and explicit overrides, in that
// order of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"skyline/sky/orbit"
	"skyline/sky/view"
)

const EnvPrefix = "SKYLINE"

// AutoHour selects the intro animation toward the wall clock.
const AutoHour = -1

var ErrInvalid = errors.New("invalid config")

type Config struct {
	Headless    bool    `mapstructure:"headless"`
	Hz          int     `mapstructure:"hz"`
	Ticks       uint64  `mapstructure:"ticks"`
	Out         string  `mapstructure:"out"`
	Hour        float64 `mapstructure:"hour"`
	Cursor      string  `mapstructure:"cursor"`
	Seed        uint64  `mapstructure:"seed"`
	Satellites  int     `mapstructure:"satellites"`
	CPU         bool    `mapstructure:"cpu"`
	Grain       bool    `mapstructure:"grain"`
	Moon        string  `mapstructure:"moon"`
	MetricsAddr string  `mapstructure:"metrics_addr"`
	LogLevel    string  `mapstructure:"log_level"`
	Width       int     `mapstructure:"width"`
	Height      int     `mapstructure:"height"`
	Quality     float64 `mapstructure:"quality"`
	MaxWidth    int     `mapstructure:"max_width"`
	Workers     int     `mapstructure:"workers"`
}

var defaults = map[string]any{
	"headless":     false,
	"hz":           60,
	"ticks":        0,
	"out":          "frame.png",
	"hour":         AutoHour,
	"cursor":       "",
	"seed":         0,
	"satellites":   2,
	"cpu":          false,
	"grain":        true,
	"moon":         "assets/moon.png",
	"metrics_addr": "",
	"log_level":    "info",
	"width":        1280,
	"height":       720,
	"quality":      view.DefaultQuality,
	"max_width":    view.DefaultMaxWidth,
	"workers":      0,
}

// Default returns the built-in settings, ignoring the environment.
func Default() Config {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		panic(err)
	}
	return c
}

// Load reads path (if not empty) and the environment, applies overrides
// keyed by setting name and validates the result.
func Load(path string, overrides map[string]any) (Config, error) {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	for k, val := range overrides {
		v.Set(Key(k), val)
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Key maps a command-line flag name to its setting name.
func Key(flagName string) string {
	return strings.ReplaceAll(flagName, "-", "_")
}

func (c Config) Validate() error {
	switch {
	case c.Hz <= 0 || c.Hz > 1000:
		return fmt.Errorf("%w: hz %d out of range (1..1000)", ErrInvalid, c.Hz)
	case c.Hour >= 24:
		return fmt.Errorf("%w: hour %v must be below 24", ErrInvalid, c.Hour)
	case c.Satellites < 0 || c.Satellites > orbit.MaxSatellites:
		return fmt.Errorf("%w: satellites %d out of range (0..%d)", ErrInvalid, c.Satellites, orbit.MaxSatellites)
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: size %dx%d", ErrInvalid, c.Width, c.Height)
	case c.Quality <= 0 || c.Quality > 1:
		return fmt.Errorf("%w: quality %v out of range (0..1]", ErrInvalid, c.Quality)
	case c.MaxWidth <= 0:
		return fmt.Errorf("%w: max_width %d", ErrInvalid, c.MaxWidth)
	case c.Workers < 0:
		return fmt.Errorf("%w: workers %d", ErrInvalid, c.Workers)
	case c.Headless && c.Out == "":
		return fmt.Errorf("%w: headless mode needs an output path", ErrInvalid)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if _, _, _, err := c.CursorPos(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("%w: log_level %q", ErrInvalid, c.LogLevel)
	}
	return l, nil
}

// AutoHour reports whether the clock should play the intro.
func (c Config) AutoHour() bool { return c.Hour < 0 }

// CursorPos parses the scripted pointer position "x,y" in window pixels.
// ok is false when none is configured.
func (c Config) CursorPos() (x, y float64, ok bool, err error) {
	if strings.TrimSpace(c.Cursor) == "" {
		return 0, 0, false, nil
	}
	xs, ys, found := strings.Cut(c.Cursor, ",")
	if !found {
		return 0, 0, false, fmt.Errorf("%w: cursor %q, want x,y", ErrInvalid, c.Cursor)
	}
	x, errX := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	y, errY := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err := errors.Join(errX, errY); err != nil {
		return 0, 0, false, fmt.Errorf("%w: cursor %q: %w", ErrInvalid, c.Cursor, err)
	}
	return x, y, true, nil
}
