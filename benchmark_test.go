package ggblit

import (
	"image/color"
	"testing"

	"github.com/gogpu/gg"
)

var benchSizes = []struct {
	name          string
	width, height int
}{
	{"320x240", 320, 240},
	{"640x480", 640, 480},
	{"1280x720", 1280, 720},
}

func newBenchDisplay(b *testing.B, w, h int, format PixelFormat) *Display {
	b.Helper()
	d, err := CreateDisplay(SurfaceDescription{
		Flags:       DescWidth | DescHeight | DescPixelFormat,
		Width:       w,
		Height:      h,
		PixelFormat: format,
	})
	if err != nil {
		b.Fatal(err)
	}
	b.Cleanup(func() { _ = d.Release() })
	return d
}

// BenchmarkStretchBlit measures the blit the throughput loop repeats.
func BenchmarkStretchBlit(b *testing.B) {
	src := newSolidSurface(b, 256, 256, gg.FormatRGBA8, color.NRGBA{R: 200, G: 90, B: 10, A: 255})
	for _, size := range benchSizes {
		b.Run(size.name, func(b *testing.B) {
			d := newBenchDisplay(b, size.width, size.height, gg.FormatRGBAPremul)
			b.SetBytes(int64(size.width * size.height * 4))
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				d.StretchBlit(src)
			}
		})
	}
}

func BenchmarkBlit(b *testing.B) {
	src := newSolidSurface(b, 256, 256, gg.FormatRGBA8, color.NRGBA{G: 255, A: 255})
	d := newBenchDisplay(b, 640, 480, gg.FormatRGBAPremul)
	b.SetBytes(256 * 256 * 4)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		d.Blit(src, 32, 32)
	}
}

func BenchmarkTileBlit(b *testing.B) {
	src := newSolidSurface(b, 64, 64, gg.FormatRGBA8, color.NRGBA{B: 255, A: 255})
	d := newBenchDisplay(b, 640, 480, gg.FormatRGBAPremul)
	b.SetBytes(640 * 480 * 4)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		d.TileBlit(src, 0, 0)
	}
}

// BenchmarkFlip compares the row copy path with per-pixel conversion.
func BenchmarkFlip(b *testing.B) {
	for _, format := range []PixelFormat{gg.FormatRGBAPremul, gg.FormatBGRA8, gg.FormatRGB8, gg.FormatGray8} {
		b.Run(FormatName(format), func(b *testing.B) {
			d := newBenchDisplay(b, 640, 480, format)
			b.SetBytes(640 * 480 * 4)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if err := d.Flip(); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkSurfaceWrite(b *testing.B) {
	img := solidImage(256, 256, color.NRGBA{R: 1, G: 2, B: 3, A: 128})
	for _, format := range []PixelFormat{gg.FormatRGBA8, gg.FormatRGBAPremul, gg.FormatBGRAPremul} {
		b.Run(FormatName(format), func(b *testing.B) {
			s := newSolidSurface(b, 256, 256, format, color.NRGBA{})
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if err := s.write(img); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
