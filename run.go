package ggblit

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/gogpu/gg"
)

// Config holds the settings of one blitting test run.
type Config struct {
	// URL is the image to load: a path, file:// or http(s):// URL.
	URL string

	// SourceFormat forces the source surface format when SourceFormatSet.
	SourceFormat    PixelFormat
	SourceFormatSet bool

	// DestFormat forces the display format when DestFormatSet.
	DestFormat    PixelFormat
	DestFormatSet bool

	// Resize sizes the display from the source image.
	Resize bool
	// Scale uses a stretch blit instead of a plain blit.
	Scale bool
	// Tile uses a tile blit. It takes precedence over Scale.
	Tile bool

	MatrixTranslate bool
	MatrixRotate    bool
	MatrixShear     bool

	// Benchmark runs the timed stretch-blit loop after the first flip.
	Benchmark bool
	// Rerender decodes the image again before every benchmark blit.
	Rerender bool

	// ModeWidth and ModeHeight are the display size when not resizing.
	ModeWidth  int
	ModeHeight int

	// Smooth selects bicubic filtering for scaled blits.
	Smooth bool

	BenchDuration time.Duration
	Settle        time.Duration

	// Hold keeps the display up after a non-benchmark run.
	Hold time.Duration

	// Output, if set, receives the flipped frame.
	Output string

	// CPU disables the GPU accelerator.
	CPU bool
}

// DefaultConfig returns the configuration used when no flags are given.
func DefaultConfig() Config {
	return Config{
		ModeWidth:     DefaultModeWidth,
		ModeHeight:    DefaultModeHeight,
		BenchDuration: DefaultBenchDuration,
		Settle:        DefaultBenchSettle,
	}
}

// blitMode names the blit variant for logging.
func (c Config) blitMode() string {
	switch {
	case c.Tile:
		return "tile"
	case c.Scale:
		return "stretch"
	default:
		return "blit"
	}
}

// Run loads the image, creates the source and display surfaces, blits
// once, flips and, if requested, benchmarks stretch blits. The benchmark
// result line is written to out. Every acquired resource is released
// before Run returns.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	log := Logger()

	if cfg.CPU {
		gg.CloseAccelerator()
		log.Debug("GPU accelerator disabled")
	}

	provider, err := OpenProvider(ctx, cfg.URL)
	if err != nil {
		return fmt.Errorf("create image provider for '%s': %w", cfg.URL, err)
	}
	defer provider.Release()

	desc, err := provider.SurfaceDescription()
	if err != nil {
		return fmt.Errorf("get surface description: %w", err)
	}
	if cfg.SourceFormatSet {
		desc.PixelFormat = cfg.SourceFormat
	}

	log.Info(fmt.Sprintf("Source is %dx%d using %s", desc.Width, desc.Height, FormatName(desc.PixelFormat)))

	source, err := CreateSurface(desc)
	if err != nil {
		return fmt.Errorf("create source surface: %w", err)
	}
	defer source.Release()

	if err := provider.RenderTo(source); err != nil {
		return fmt.Errorf("render to source: %w", err)
	}

	ddesc := SurfaceDescription{
		Flags: DescCaps,
		Caps:  CapsPrimary | CapsFlipping,
	}
	if cfg.DestFormatSet {
		ddesc.Flags |= DescPixelFormat
		ddesc.PixelFormat = cfg.DestFormat
	}
	if cfg.Resize {
		ddesc.Flags |= DescWidth | DescHeight
		ddesc.Width, ddesc.Height = desc.Width, desc.Height
	}

	opts := []DisplayOption{WithMode(cfg.ModeWidth, cfg.ModeHeight)}
	if cfg.Smooth {
		opts = append(opts, WithInterpolation(gg.InterpBicubic))
	}
	display, err := CreateDisplay(ddesc, opts...)
	if err != nil {
		return fmt.Errorf("create display surface: %w", err)
	}
	defer func() {
		if err := display.Release(); err != nil {
			log.Warn("release display", "err", err)
		}
	}()

	dw, dh := display.Size()
	log.Info(fmt.Sprintf("Destination is %dx%d using %s", dw, dh, FormatName(display.PixelFormat())))

	m := SelectMatrix(cfg.MatrixRotate, cfg.MatrixTranslate, cfg.MatrixShear)
	if err := display.SetMatrix(m); err != nil {
		return fmt.Errorf("set matrix: %w", err)
	}

	log.Debug("blitting", "mode", cfg.blitMode(), "matrix", m.Name())
	switch {
	case cfg.Tile:
		display.TileBlit(source, 0, 0)
	case cfg.Scale:
		display.StretchBlit(source)
	default:
		display.Blit(source, 0, 0)
	}

	if err := display.Flip(); err != nil {
		return fmt.Errorf("flip: %w", err)
	}

	if cfg.Output != "" {
		if err := display.Save(cfg.Output); err != nil {
			return fmt.Errorf("save frame: %w", err)
		}
		log.Info("frame saved", "path", cfg.Output)
	}

	if !cfg.Benchmark {
		return sleep(ctx, cfg.Hold)
	}

	bench := NewBenchmark()
	bench.Duration = cfg.BenchDuration
	bench.Settle = cfg.Settle
	if cfg.Rerender {
		bench.Rerender = func() error {
			if err := provider.RenderTo(source); err != nil {
				return fmt.Errorf("render to source: %w", err)
			}
			return nil
		}
	}

	res, err := bench.Run(ctx, display, source)
	if err != nil {
		return fmt.Errorf("benchmark: %w", err)
	}
	_, err = fmt.Fprintln(out, res.String())
	return err
}
