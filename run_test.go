package ggblit

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gogpu/gg"
)

// captureLog routes the package logger into a buffer for the test.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	return &buf
}

func testConfig(t *testing.T) Config {
	t.Helper()
	cfg := DefaultConfig()
	cfg.URL = writeTemp(t, "src.png", gradientPNG(t, 8, 8))
	cfg.ModeWidth, cfg.ModeHeight = 24, 16
	cfg.Settle = 0
	cfg.BenchDuration = 10 * time.Millisecond
	return cfg
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.ModeWidth != 640 || cfg.ModeHeight != 480 {
		t.Errorf("mode = %dx%d, want 640x480", cfg.ModeWidth, cfg.ModeHeight)
	}
	if cfg.BenchDuration != DefaultBenchDuration || cfg.Settle != DefaultBenchSettle {
		t.Errorf("durations = %v %v", cfg.BenchDuration, cfg.Settle)
	}
	if cfg.Hold != 0 || cfg.Benchmark || cfg.Resize || cfg.URL != "" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestConfigBlitMode(t *testing.T) {
	tests := []struct {
		scale, tile bool
		want        string
	}{
		{false, false, "blit"},
		{true, false, "stretch"},
		{false, true, "tile"},
		{true, true, "tile"},
	}
	for _, tt := range tests {
		c := Config{Scale: tt.scale, Tile: tt.tile}
		if got := c.blitMode(); got != tt.want {
			t.Errorf("blitMode(scale=%v, tile=%v) = %q, want %q", tt.scale, tt.tile, got, tt.want)
		}
	}
}

func TestRunVariants(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		src    string
		dst    string
	}{
		{"blit", func(c *Config) {}, "Source is 8x8 using RGBAPremul", "Destination is 24x16 using RGBAPremul"},
		{"resize", func(c *Config) { c.Resize = true }, "Source is 8x8", "Destination is 8x8"},
		{"stretch", func(c *Config) { c.Scale = true }, "Source is 8x8", "Destination is 24x16"},
		{"tile", func(c *Config) { c.Tile = true }, "Source is 8x8", "Destination is 24x16"},
		{"translate", func(c *Config) { c.MatrixTranslate = true }, "Source is 8x8", "Destination is 24x16"},
		{"rotate", func(c *Config) { c.MatrixRotate = true; c.Scale = true }, "Source is 8x8", "Destination is 24x16"},
		{"shear", func(c *Config) { c.MatrixShear = true; c.Tile = true }, "Source is 8x8", "Destination is 24x16"},
		{"smooth", func(c *Config) { c.Smooth = true; c.Scale = true }, "Source is 8x8", "Destination is 24x16"},
		{
			"formats",
			func(c *Config) {
				c.SourceFormat, c.SourceFormatSet = gg.FormatGray8, true
				c.DestFormat, c.DestFormatSet = gg.FormatBGRA8, true
			},
			"Source is 8x8 using Gray8",
			"Destination is 24x16 using BGRA8",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := captureLog(t)
			cfg := testConfig(t)
			tt.modify(&cfg)

			var out bytes.Buffer
			if err := Run(context.Background(), cfg, &out); err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if out.Len() != 0 {
				t.Errorf("non-benchmark run wrote %q", out.String())
			}
			for _, want := range []string{tt.src, tt.dst} {
				if !strings.Contains(log.String(), want) {
					t.Errorf("log missing %q:\n%s", want, log.String())
				}
			}
		})
	}
}

func TestRunBenchmark(t *testing.T) {
	log := captureLog(t)
	cfg := testConfig(t)
	cfg.Benchmark = true
	cfg.Rerender = true
	cfg.Output = filepath.Join(t.TempDir(), "frame.bmp")

	var out bytes.Buffer
	if err := Run(context.Background(), cfg, &out); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	line := strings.TrimSpace(out.String())
	if !strings.HasPrefix(line, "Speed is ") || !strings.Contains(line, "(24x16 x ") {
		t.Errorf("result = %q", line)
	}
	if !strings.Contains(log.String(), "Benchmarking...") {
		t.Errorf("log missing benchmark start:\n%s", log.String())
	}
	if _, err := os.Stat(cfg.Output); err != nil {
		t.Errorf("frame not saved: %v", err)
	}
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   string
	}{
		{"missing image", func(c *Config) { c.URL = filepath.Join(filepath.Dir(c.URL), "nope.png") }, "create image provider for '"},
		{"bad mode", func(c *Config) { c.ModeWidth = 0 }, "create display surface"},
		{"bad output", func(c *Config) { c.Output = filepath.Join(filepath.Dir(c.URL), "frame.xyz") }, "save frame"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			captureLog(t)
			cfg := testConfig(t)
			tt.modify(&cfg)
			err := Run(context.Background(), cfg, &bytes.Buffer{})
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Run() error = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestRunCancelledHold(t *testing.T) {
	captureLog(t)
	cfg := testConfig(t)
	cfg.Hold = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := Run(ctx, cfg, &bytes.Buffer{}); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}
