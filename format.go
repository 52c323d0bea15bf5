package ggblit

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"strings"

	"github.com/gogpu/gg"
)

// PixelFormat is a surface storage format of the graphics library.
type PixelFormat = gg.ImageFormat

// ErrInvalidFormat is returned by ParseFormat for unknown format names.
var ErrInvalidFormat = errors.New("ggblit: invalid pixel format")

// formats lists the known pixel formats in the order they are presented.
var formats = []PixelFormat{
	gg.FormatGray8,
	gg.FormatGray16,
	gg.FormatRGB8,
	gg.FormatRGBA8,
	gg.FormatRGBAPremul,
	gg.FormatBGRA8,
	gg.FormatBGRAPremul,
}

// Formats returns the known pixel formats.
func Formats() []PixelFormat {
	out := make([]PixelFormat, len(formats))
	copy(out, formats)
	return out
}

// FormatName returns the name used on the command line for f.
func FormatName(f PixelFormat) string {
	return f.String()
}

// BitsPerPixel returns the storage size of one pixel in bits.
func BitsPerPixel(f PixelFormat) int {
	return f.BytesPerPixel() * 8
}

// ParseFormat looks up a pixel format by name, ignoring case.
func ParseFormat(name string) (PixelFormat, error) {
	for _, f := range formats {
		if strings.EqualFold(name, FormatName(f)) {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, name)
}

// WriteFormatTable writes one line per known format with its size and
// attributes.
func WriteFormatTable(w io.Writer) {
	for _, f := range formats {
		var sb strings.Builder
		fmt.Fprintf(&sb, "   %-12s %2d bits, %d bytes", FormatName(f), BitsPerPixel(f), f.BytesPerPixel())
		if f.HasAlpha() {
			sb.WriteString("   ALPHA")
		}
		if f.IsPremultiplied() {
			sb.WriteString("   PREMULTIPLIED")
		}
		if f.IsGrayscale() {
			sb.WriteString("   GRAYSCALE")
		}
		sb.WriteByte('\n')
		_, _ = io.WriteString(w, sb.String())
	}
}

// FormatForModel returns the pixel format that best preserves images of
// the given color model.
func FormatForModel(m color.Model) PixelFormat {
	switch m {
	case color.GrayModel:
		return gg.FormatGray8
	case color.Gray16Model:
		return gg.FormatGray16
	case color.NRGBAModel, color.NRGBA64Model:
		return gg.FormatRGBA8
	case color.YCbCrModel, color.CMYKModel:
		return gg.FormatRGB8
	case color.RGBAModel, color.RGBA64Model, color.AlphaModel, color.Alpha16Model:
		return gg.FormatRGBAPremul
	}
	if p, ok := m.(color.Palette); ok {
		for _, c := range p {
			if _, _, _, a := c.RGBA(); a != 0xffff {
				return gg.FormatRGBA8
			}
		}
		return gg.FormatRGB8
	}
	return gg.FormatRGBAPremul
}
