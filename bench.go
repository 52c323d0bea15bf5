package ggblit

import (
	"context"
	"fmt"
	"time"
)

// Benchmark defaults.
const (
	DefaultBenchDuration = 2300 * time.Millisecond
	DefaultBenchSettle   = time.Second
)

// clockCheckMask sets how often the loop reads the clock: every
// clockCheckMask+1 blits.
const clockCheckMask = 7

// Benchmark measures stretch-blit throughput.
type Benchmark struct {
	// Duration is how long the measurement loop runs.
	Duration time.Duration

	// Settle is a pause before measuring so earlier work can drain.
	Settle time.Duration

	// Rerender, if set, is called before every blit (e.g. to decode the
	// source image again).
	Rerender func() error

	now func() time.Time
}

// NewBenchmark returns a Benchmark with the default duration and settle
// time.
func NewBenchmark() *Benchmark {
	return &Benchmark{
		Duration: DefaultBenchDuration,
		Settle:   DefaultBenchSettle,
	}
}

// BenchResult is the outcome of a benchmark run.
type BenchResult struct {
	Frames  int
	Width   int
	Height  int
	Elapsed time.Duration
}

// Pixels returns the number of destination pixels written.
func (r BenchResult) Pixels() int64 {
	return int64(r.Frames) * int64(r.Width) * int64(r.Height)
}

// elapsedMillis is the elapsed time in whole milliseconds, at least 1.
func (r BenchResult) elapsedMillis() int64 {
	ms := r.Elapsed.Milliseconds()
	if ms < 1 {
		ms = 1
	}
	return ms
}

// PixelsPerMilli returns the throughput in pixels per millisecond, which
// is also kilopixels per second.
func (r BenchResult) PixelsPerMilli() int64 {
	return r.Pixels() / r.elapsedMillis()
}

// PixelsPerSecond returns the throughput in pixels per second.
func (r BenchResult) PixelsPerSecond() float64 {
	return float64(r.Pixels()) / r.Elapsed.Seconds()
}

// String formats the result as
// "Speed is M.mmm MPixel/sec (WxH x N in S.sss sec)".
func (r BenchResult) String() string {
	speed := r.PixelsPerMilli()
	ms := r.elapsedMillis()
	return fmt.Sprintf("Speed is %d.%03d MPixel/sec (%dx%d x %d in %d.%03d sec)",
		speed/1000, speed%1000, r.Width, r.Height, r.Frames, ms/1000, ms%1000)
}

func (b *Benchmark) clock() time.Time {
	if b.now != nil {
		return b.now()
	}
	return time.Now()
}

// Run repeatedly stretch-blits src onto d until Duration has passed.
// The clock is read every eighth blit, so the frame count is always a
// multiple of eight. If ctx is cancelled the partial result is returned
// with ctx's error.
func (b *Benchmark) Run(ctx context.Context, d *Display, src *Surface) (BenchResult, error) {
	w, h := d.Size()
	res := BenchResult{Width: w, Height: h}

	if err := sleep(ctx, b.Settle); err != nil {
		return res, err
	}

	d.StretchBlit(src)

	Logger().Info("Benchmarking...", "duration", b.Duration, "rerender", b.Rerender != nil)

	if err := d.WaitIdle(); err != nil {
		return res, err
	}

	start := b.clock()
	num := 0
	for {
		if b.Rerender != nil {
			if err := b.Rerender(); err != nil {
				res.Frames, res.Elapsed = num, b.clock().Sub(start)
				return res, fmt.Errorf("ggblit: rerender: %w", err)
			}
		}

		d.StretchBlit(src)
		num++

		if num&clockCheckMask != 0 {
			continue
		}
		diff := b.clock().Sub(start)
		if err := ctx.Err(); err != nil {
			res.Frames, res.Elapsed = num, diff
			return res, err
		}
		if diff >= b.Duration {
			break
		}
	}

	if err := d.WaitIdle(); err != nil {
		return res, err
	}

	res.Frames = num
	res.Elapsed = b.clock().Sub(start)
	Logger().Info(res.String())
	return res, nil
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
