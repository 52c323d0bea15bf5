package ggblit

import (
	"fmt"
	"image"

	"github.com/gogpu/gg"
	"github.com/gogpu/ggblit/internal/rowpool"
)

// Display is the primary flipping surface. Blits render into a back
// buffer owned by a gg.Context; Flip converts the back buffer into the
// front buffer, which is stored in the destination pixel format.
type Display struct {
	dc     *gg.Context
	back   *gg.Pixmap
	front  *gg.ImageBuf
	rows   *rowpool.Pool
	matrix Matrix
	interp gg.InterpolationMode
	frames int
}

// CreateDisplay creates the primary surface. Width and height come from
// desc when both flags are set, otherwise from the display mode. A pixel
// format in desc selects the front buffer format.
func CreateDisplay(desc SurfaceDescription, opts ...DisplayOption) (*Display, error) {
	o := defaultDisplayOptions()
	for _, opt := range opts {
		opt(&o)
	}

	w, h := o.width, o.height
	if desc.Has(DescWidth | DescHeight) {
		w, h = desc.Width, desc.Height
	}
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, w, h)
	}

	format := gg.FormatRGBAPremul
	if desc.Has(DescPixelFormat) {
		format = desc.PixelFormat
	}
	front, err := gg.NewImageBuf(w, h, format)
	if err != nil {
		return nil, fmt.Errorf("ggblit: create front buffer: %w", err)
	}

	back := gg.NewPixmap(w, h)
	d := &Display{
		dc:     gg.NewContext(w, h, gg.WithPixmap(back)),
		back:   back,
		front:  front,
		rows:   rowpool.New(0),
		matrix: IdentityMatrix,
		interp: o.interp,
	}
	Logger().Debug("display created", "width", w, "height", h, "format", FormatName(format))
	return d, nil
}

// Size returns the display resolution.
func (d *Display) Size() (width, height int) {
	return d.back.Width(), d.back.Height()
}

// PixelFormat returns the front buffer format.
func (d *Display) PixelFormat() PixelFormat {
	return d.front.Format()
}

// Matrix returns the transform applied to blits.
func (d *Display) Matrix() Matrix {
	return d.matrix
}

// SetMatrix sets the transform applied to subsequent blits.
func (d *Display) SetMatrix(m Matrix) error {
	if err := m.Validate(); err != nil {
		return err
	}
	d.matrix = m
	d.dc.SetTransform(m.Affine())
	Logger().Debug("matrix set", "matrix", m.Name())
	return nil
}

// Blit copies src unscaled to (x, y).
func (d *Display) Blit(src *Surface, x, y int) {
	d.dc.DrawImageEx(src.Buffer(), gg.DrawImageOptions{
		X:             float64(x),
		Y:             float64(y),
		Interpolation: d.interp,
		Opacity:       1,
		BlendMode:     gg.BlendNormal,
	})
}

// StretchBlit scales the whole of src onto the whole display.
func (d *Display) StretchBlit(src *Surface) {
	w, h := d.Size()
	d.dc.DrawImageEx(src.Buffer(), gg.DrawImageOptions{
		DstWidth:      float64(w),
		DstHeight:     float64(h),
		Interpolation: d.interp,
		Opacity:       1,
		BlendMode:     gg.BlendNormal,
	})
}

// TileBlit repeats src over the whole display with one tile corner at
// (x, y). The tiling follows the current matrix.
func (d *Display) TileBlit(src *Surface, x, y int) {
	w, h := d.Size()
	sw, sh := src.Size()

	pattern := d.dc.CreateImagePattern(src.Buffer(), 0, 0, sw, sh)
	if ip, ok := pattern.(*gg.ImagePattern); ok {
		ip.SetTransform(d.matrix.Affine().Multiply(gg.Translate(float64(x), float64(y))))
	}

	// The pattern carries the matrix; the fill itself must cover the
	// untransformed display.
	d.dc.Push()
	d.dc.Identity()
	d.dc.SetFillPattern(pattern)
	d.dc.DrawRectangle(0, 0, float64(w), float64(h))
	_ = d.dc.Fill()
	d.dc.Pop()
}

// Clear fills the back buffer with transparent black.
func (d *Display) Clear() {
	d.dc.Clear()
}

// WaitIdle blocks until the accelerator has finished all queued work.
func (d *Display) WaitIdle() error {
	if err := d.dc.FlushGPU(); err != nil {
		return fmt.Errorf("ggblit: wait idle: %w", err)
	}
	return nil
}

// Flip makes the back buffer visible by converting it into the front
// buffer's pixel format.
func (d *Display) Flip() error {
	if err := d.WaitIdle(); err != nil {
		return err
	}

	w, h := d.Size()
	data := d.back.Data()
	stride := w * 4

	format := d.front.Format()
	premul := format.IsPremultiplied()
	d.rows.Rows(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			row := data[y*stride : (y+1)*stride]
			if format == gg.FormatRGBAPremul {
				copy(d.front.RowBytes(y), row)
				continue
			}
			for x := 0; x < w; x++ {
				r, g, b, a := row[x*4], row[x*4+1], row[x*4+2], row[x*4+3]
				if !premul {
					r, g, b = unpremultiply(r, a), unpremultiply(g, a), unpremultiply(b, a)
				}
				_ = d.front.SetRGBA(x, y, r, g, b, a)
			}
		}
	})
	d.front.InvalidatePremulCache()

	d.frames++
	Logger().Debug("flip", "frame", d.frames)
	return nil
}

// Frames returns the number of completed flips.
func (d *Display) Frames() int {
	return d.frames
}

// Front returns a copy of the visible frame.
func (d *Display) Front() image.Image {
	return d.front.ToStdImage()
}

// Save writes the visible frame to path. The extension selects the file
// format.
func (d *Display) Save(path string) error {
	return SaveImage(path, d.Front())
}

// Release frees the back buffer's rendering state and stops the
// conversion workers.
func (d *Display) Release() error {
	d.rows.Close()
	return d.dc.Close()
}

func unpremultiply(c, a uint8) uint8 {
	switch a {
	case 0:
		return 0
	case 0xff:
		return c
	}
	v := (uint32(c)*0xff + uint32(a)/2) / uint32(a)
	if v > 0xff {
		v = 0xff
	}
	return uint8(v)
}
