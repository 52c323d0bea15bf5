package ggblit

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/gogpu/gg"
	"golang.org/x/image/draw"
)

// DescriptionFlags tells which fields of a SurfaceDescription are set.
type DescriptionFlags uint8

const (
	DescCaps DescriptionFlags = 1 << iota
	DescWidth
	DescHeight
	DescPixelFormat
)

// SurfaceCaps are surface capabilities.
type SurfaceCaps uint8

const (
	// CapsPrimary marks the surface shown on the display.
	CapsPrimary SurfaceCaps = 1 << iota
	// CapsFlipping adds a back buffer that Flip makes visible.
	CapsFlipping
)

// SurfaceDescription describes a surface to create.
type SurfaceDescription struct {
	Flags       DescriptionFlags
	Caps        SurfaceCaps
	Width       int
	Height      int
	PixelFormat PixelFormat
}

// Has reports whether every flag in f is set.
func (d SurfaceDescription) Has(f DescriptionFlags) bool {
	return d.Flags&f == f
}

// Surface errors.
var (
	ErrInvalidDimensions = errors.New("ggblit: invalid surface dimensions")
	ErrReleased          = errors.New("ggblit: surface released")
)

// Surface is an off-screen pixel buffer owned by the graphics library.
type Surface struct {
	buf    *gg.ImageBuf
	format PixelFormat
}

// CreateSurface allocates an off-screen surface. Width and height must be
// set; the pixel format defaults to RGBAPremul.
func CreateSurface(desc SurfaceDescription) (*Surface, error) {
	if !desc.Has(DescWidth|DescHeight) || desc.Width <= 0 || desc.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, desc.Width, desc.Height)
	}
	format := gg.FormatRGBAPremul
	if desc.Has(DescPixelFormat) {
		format = desc.PixelFormat
	}
	buf, err := gg.NewImageBuf(desc.Width, desc.Height, format)
	if err != nil {
		return nil, fmt.Errorf("ggblit: create surface: %w", err)
	}
	return &Surface{buf: buf, format: format}, nil
}

// Size returns the surface dimensions.
func (s *Surface) Size() (width, height int) {
	if s.buf == nil {
		return 0, 0
	}
	return s.buf.Bounds()
}

// PixelFormat returns the storage format.
func (s *Surface) PixelFormat() PixelFormat {
	return s.format
}

// Buffer returns the library buffer holding the pixels.
func (s *Surface) Buffer() *gg.ImageBuf {
	return s.buf
}

// Image returns a copy of the surface contents as a standard image.
func (s *Surface) Image() image.Image {
	if s.buf == nil {
		return image.NewRGBA(image.Rectangle{})
	}
	return s.buf.ToStdImage()
}

// Release drops the pixel buffer. Releasing twice is a no-op.
func (s *Surface) Release() {
	s.buf = nil
}

// write replaces the surface contents with img, which must have the
// surface's size. A new library buffer is allocated so that its generation
// ID changes and cached GPU textures of the old contents are not reused.
func (s *Surface) write(img image.Image) error {
	if s.buf == nil {
		return ErrReleased
	}
	w, h := s.buf.Bounds()
	buf, err := gg.NewImageBuf(w, h, s.format)
	if err != nil {
		return fmt.Errorf("ggblit: allocate surface buffer: %w", err)
	}
	load(buf, img)
	s.buf = buf
	return nil
}

// load copies img into buf converting to the buffer's format. img's
// bounds are mapped onto the buffer starting at its minimum point.
func load(buf *gg.ImageBuf, img image.Image) {
	w, h := buf.Bounds()
	rect := image.Rect(0, 0, w, h)
	origin := img.Bounds().Min

	switch buf.Format() {
	case gg.FormatRGBAPremul:
		rgba, ok := img.(*image.RGBA)
		if !ok || rgba.Bounds() != rect {
			rgba = image.NewRGBA(rect)
			draw.Draw(rgba, rect, img, origin, draw.Src)
		}
		for y := 0; y < h; y++ {
			copy(buf.RowBytes(y), rgba.Pix[y*rgba.Stride:y*rgba.Stride+w*4])
		}
		buf.InvalidatePremulCache()
		return

	case gg.FormatRGBA8:
		nrgba, ok := img.(*image.NRGBA)
		if !ok || nrgba.Bounds() != rect {
			nrgba = image.NewNRGBA(rect)
			draw.Draw(nrgba, rect, img, origin, draw.Src)
		}
		for y := 0; y < h; y++ {
			copy(buf.RowBytes(y), nrgba.Pix[y*nrgba.Stride:y*nrgba.Stride+w*4])
		}
		buf.InvalidatePremulCache()
		return
	}

	premul := buf.Format().IsPremultiplied()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := img.At(origin.X+x, origin.Y+y)
			if premul {
				r, g, b, a := c.RGBA()
				_ = buf.SetRGBA(x, y, uint8(r>>8), uint8(g>>8), uint8(b>>8), uint8(a>>8))
				continue
			}
			n := color.NRGBAModel.Convert(c).(color.NRGBA)
			_ = buf.SetRGBA(x, y, n.R, n.G, n.B, n.A)
		}
	}
}
