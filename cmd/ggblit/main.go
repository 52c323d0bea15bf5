// Command ggblit blits an image onto a display surface with the gg 2D
// graphics library and optionally benchmarks stretch-blit throughput.
//
// Usage:
//
//	ggblit [options] <url>
//
// Examples:
//
//	ggblit -r photo.png                       # plain blit, display sized to the image
//	ggblit -x -O -o out.png photo.jpg         # rotated stretch blit saved to out.png
//	ggblit -b -s RGB8 -d BGRAPremul photo.png # benchmark with format conversion
package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gogpu/gg"
	"github.com/gogpu/ggblit"
)

// Exit codes.
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	prog := "ggblit"
	if len(args) > 0 {
		prog = filepath.Base(args[0])
		args = args[1:]
	}

	opts, err := parseArgs(prog, args, stderr)
	switch {
	case errors.Is(err, errHelp), errors.Is(err, errVersion):
		return exitOK
	case err != nil:
		return exitUsage
	}

	level := slog.LevelInfo
	if opts.debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	if opts.debug {
		ggblit.SetLibraryLogger(logger)
	} else {
		ggblit.SetLogger(logger)
	}
	defer gg.CloseAccelerator()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := ggblit.Run(ctx, opts.Config, stdout); err != nil {
		logger.Error(prog+" failed", "err", err)
		return exitFailure
	}
	return exitOK
}
