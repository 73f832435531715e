package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	c := Default()
	if c.Quality != 0.7 || c.MaxWidth != 2000 {
		t.Fatalf("quality=%v max_width=%v", c.Quality, c.MaxWidth)
	}
	if c.Satellites != 2 {
		t.Fatalf("satellites=%d", c.Satellites)
	}
	if !c.AutoHour() {
		t.Fatal("default hour should play the intro")
	}
	if l, _ := c.Level(); l != slog.LevelInfo {
		t.Fatalf("level=%v", l)
	}
	if c.Moon != "assets/moon.png" || c.Hz != 60 || !c.Grain {
		t.Fatalf("unexpected defaults: %+v", c)
	}
}

func TestFileEnvAndOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skyline.yaml")
	body := "hour: 21.5\nsatellites: 4\nlog_level: debug\nwidth: 800\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	t.Setenv("SKYLINE_SATELLITES", "5")
	t.Setenv("SKYLINE_METRICS_ADDR", ":9100")

	c, err := Load(path, map[string]any{"width": 640, "log-level": "warn"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Hour != 21.5 {
		t.Fatalf("hour=%v", c.Hour)
	}
	if c.Satellites != 5 {
		t.Fatalf("satellites=%d, env should win over file", c.Satellites)
	}
	if c.MetricsAddr != ":9100" {
		t.Fatalf("metrics_addr=%q", c.MetricsAddr)
	}
	if c.Width != 640 {
		t.Fatalf("width=%d, override should win", c.Width)
	}
	if c.LogLevel != "warn" {
		t.Fatalf("log_level=%q", c.LogLevel)
	}
}

func TestMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"), nil)
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		mod  func(*Config)
	}{
		{"hz", func(c *Config) { c.Hz = 0 }},
		{"hour", func(c *Config) { c.Hour = 24 }},
		{"satellites", func(c *Config) { c.Satellites = 11 }},
		{"quality", func(c *Config) { c.Quality = 1.5 }},
		{"size", func(c *Config) { c.Width = 0 }},
		{"level", func(c *Config) { c.LogLevel = "loud" }},
		{"cursor", func(c *Config) { c.Cursor = "12" }},
		{"cursor number", func(c *Config) { c.Cursor = "a,b" }},
		{"headless out", func(c *Config) { c.Headless = true; c.Out = "" }},
	}
	for _, tc := range cases {
		c := Default()
		tc.mod(&c)
		if err := c.Validate(); !errors.Is(err, ErrInvalid) {
			t.Fatalf("%s: err=%v, want ErrInvalid", tc.name, err)
		}
	}
}

func TestCursorPos(t *testing.T) {
	c := Default()
	if _, _, ok, err := c.CursorPos(); ok || err != nil {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	c.Cursor = " 640, 120.5 "
	x, y, ok, err := c.CursorPos()
	if err != nil || !ok || x != 640 || y != 120.5 {
		t.Fatalf("x=%v y=%v ok=%v err=%v", x, y, ok, err)
	}
}

func TestKey(t *testing.T) {
	if got := Key("metrics-addr"); got != "metrics_addr" {
		t.Fatalf("Key=%q", got)
	}
}
