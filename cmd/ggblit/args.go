package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gogpu/ggblit"
)

// Parse outcomes that are not failures.
var (
	errHelp    = errors.New("help requested")
	errVersion = errors.New("version requested")
)

// errUsage is returned for command lines that cannot be run.
var errUsage = errors.New("invalid command line")

// options is the parsed command line.
type options struct {
	ggblit.Config
	debug bool
}

// formatValue is a flag.Value for -s and -d.
type formatValue struct {
	stderr io.Writer
	format *ggblit.PixelFormat
	set    *bool
}

func (v formatValue) String() string {
	if v.format == nil || v.set == nil || !*v.set {
		return ""
	}
	return ggblit.FormatName(*v.format)
}

func (v formatValue) Set(s string) error {
	f, err := ggblit.ParseFormat(s)
	if err != nil {
		fmt.Fprint(v.stderr, "\nInvalid format specified!\n\n")
		return err
	}
	*v.format = f
	*v.set = true
	return nil
}

// modeValue is a flag.Value for WIDTHxHEIGHT display modes.
type modeValue struct {
	width, height *int
}

func (v modeValue) String() string {
	if v.width == nil || v.height == nil {
		return ""
	}
	return fmt.Sprintf("%dx%d", *v.width, *v.height)
}

func (v modeValue) Set(s string) error {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return fmt.Errorf("mode %q is not WIDTHxHEIGHT", s)
	}
	w, err := strconv.Atoi(ws)
	if err != nil || w <= 0 {
		return fmt.Errorf("invalid mode width %q", ws)
	}
	h, err := strconv.Atoi(hs)
	if err != nil || h <= 0 {
		return fmt.Errorf("invalid mode height %q", hs)
	}
	*v.width, *v.height = w, h
	return nil
}

// parseArgs scans the command line. Flags may come before or after the
// image URL. errHelp and errVersion are returned after printing the
// requested text; any other error means usage was printed.
func parseArgs(prog string, args []string, stderr io.Writer) (options, error) {
	opts := options{Config: ggblit.DefaultConfig()}
	cfg := &opts.Config

	var help, version bool

	fs := flag.NewFlagSet(prog, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { printUsage(stderr, prog) }

	both := func(short, long string, p *bool) {
		fs.BoolVar(p, short, false, "")
		fs.BoolVar(p, long, false, "")
	}
	both("h", "help", &help)
	both("v", "version", &version)
	both("r", "resize", &cfg.Resize)
	both("x", "scale", &cfg.Scale)
	both("b", "benchmark", &cfg.Benchmark)
	both("R", "rerender", &cfg.Rerender)
	both("t", "tile", &cfg.Tile)
	both("X", "matrix-translate", &cfg.MatrixTranslate)
	both("O", "matrix-rotate", &cfg.MatrixRotate)
	both("S", "matrix-shear", &cfg.MatrixShear)
	both("C", "cpu", &cfg.CPU)
	both("D", "debug", &opts.debug)
	fs.BoolVar(&cfg.Smooth, "smooth", false, "")

	src := formatValue{stderr: stderr, format: &cfg.SourceFormat, set: &cfg.SourceFormatSet}
	dst := formatValue{stderr: stderr, format: &cfg.DestFormat, set: &cfg.DestFormatSet}
	fs.Var(src, "s", "")
	fs.Var(src, "source", "")
	fs.Var(dst, "d", "")
	fs.Var(dst, "dest", "")

	mode := modeValue{width: &cfg.ModeWidth, height: &cfg.ModeHeight}
	fs.Var(mode, "m", "")
	fs.Var(mode, "mode", "")

	fs.StringVar(&cfg.Output, "o", "", "")
	fs.StringVar(&cfg.Output, "output", "", "")
	fs.DurationVar(&cfg.BenchDuration, "duration", cfg.BenchDuration, "")
	fs.DurationVar(&cfg.Settle, "settle", cfg.Settle, "")
	fs.DurationVar(&cfg.Hold, "hold", cfg.Hold, "")

	rest := args
	for {
		if err := fs.Parse(rest); err != nil {
			if errors.Is(err, flag.ErrHelp) {
				return opts, errHelp
			}
			return opts, fmt.Errorf("%w: %w", errUsage, err)
		}
		rest = fs.Args()
		if len(rest) == 0 {
			break
		}
		if cfg.URL != "" {
			printUsage(stderr, prog)
			return opts, fmt.Errorf("%w: unexpected argument %q", errUsage, rest[0])
		}
		cfg.URL = rest[0]
		rest = rest[1:]
	}

	if help {
		printUsage(stderr, prog)
		return opts, errHelp
	}
	if version {
		fmt.Fprintf(stderr, "%s version %s\n", prog, ggblit.LibraryVersion())
		return opts, errVersion
	}
	if cfg.URL == "" {
		printUsage(stderr, prog)
		return opts, fmt.Errorf("%w: no image url", errUsage)
	}
	return opts, nil
}

// usageOptions is the option list printed by printUsage.
var usageOptions = []struct{ flags, help string }{
	{"-h, --help", "Show this help message"},
	{"-v, --version", "Print version information"},
	{"-s, --source    <pixelformat>", "Source pixel format"},
	{"-d, --dest      <pixelformat>", "Destination pixel format"},
	{"-r, --resize", "Set destination from source size"},
	{"-x, --scale", "Scale from source to destination"},
	{"-b, --benchmark", "Enable benchmarking mode"},
	{"-R, --rerender", "Rerender before every blit (benchmark)"},
	{"-t, --tile", "Perform a tile blit"},
	{"-X, --matrix-translate", "Enable Matrix translation during blit"},
	{"-O, --matrix-rotate", "Enable Matrix rotation during blit"},
	{"-S, --matrix-shear", "Enable Matrix shear during blit"},
	{"-m, --mode      <WxH>", "Display mode without --resize (default 640x480)"},
	{"-o, --output    <file>", "Save the flipped frame (png, jpg, bmp, tif)"},
	{"    --smooth", "Bicubic filtering for scaled blits"},
	{"    --duration  <time>", "Benchmark duration (default 2.3s)"},
	{"    --settle    <time>", "Pause before benchmarking (default 1s)"},
	{"    --hold      <time>", "Keep the display up after a normal run"},
	{"-C, --cpu", "Disable GPU acceleration"},
	{"-D, --debug", "Enable debug logging"},
}

func printUsage(w io.Writer, prog string) {
	fmt.Fprintf(w, "\n== gg Blitting Test (version %s) ==\n\n", ggblit.LibraryVersion())
	fmt.Fprintf(w, "Known pixel formats:\n")
	ggblit.WriteFormatTable(w)
	fmt.Fprintf(w, "\n\nUsage: %s [options] <url>\n\n", prog)
	fmt.Fprintf(w, "Options:\n")
	for _, o := range usageOptions {
		fmt.Fprintf(w, "  %-34s%s\n", o.flags, o.help)
	}
}
