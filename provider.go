package ggblit

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif" // register GIF decoder
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp" // register BMP, TIFF and WebP decoders
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Provider errors.
var (
	ErrEmptyImage      = errors.New("ggblit: empty image data")
	ErrUnsupportedURL  = errors.New("ggblit: unsupported url scheme")
	ErrProviderClosed  = errors.New("ggblit: image provider released")
	errUnexpectedReply = errors.New("unexpected HTTP status")
)

// ImageProvider decodes an image resource into surfaces. The encoded
// bytes are fetched once, so rendering again does not touch the source.
type ImageProvider struct {
	url  string
	data []byte
}

// OpenProvider creates an image provider for a file path, a file:// URL
// or an http(s):// URL.
func OpenProvider(ctx context.Context, rawURL string) (*ImageProvider, error) {
	data, err := fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrEmptyImage
	}
	Logger().Debug("image fetched", "url", rawURL, "bytes", len(data))
	return &ImageProvider{url: rawURL, data: data}, nil
}

// NewProvider creates an image provider over already encoded image data.
func NewProvider(name string, data []byte) (*ImageProvider, error) {
	if len(data) == 0 {
		return nil, ErrEmptyImage
	}
	return &ImageProvider{url: name, data: data}, nil
}

func fetch(ctx context.Context, rawURL string) ([]byte, error) {
	scheme, rest, found := strings.Cut(rawURL, "://")
	if !found {
		return readFile(rawURL)
	}

	switch strings.ToLower(scheme) {
	case "file":
		u, err := url.Parse(rawURL)
		if err != nil {
			return nil, fmt.Errorf("ggblit: parse url: %w", err)
		}
		path := u.Path
		if path == "" {
			path = rest
		}
		return readFile(path)

	case "http", "https":
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
		if err != nil {
			return nil, fmt.Errorf("ggblit: build request: %w", err)
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("ggblit: fetch %s: %w", rawURL, err)
		}
		defer func() { _ = resp.Body.Close() }()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("ggblit: fetch %s: %w: %s", rawURL, errUnexpectedReply, resp.Status)
		}
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("ggblit: read %s: %w", rawURL, err)
		}
		return data, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedURL, scheme)
	}
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("ggblit: open image: %w", err)
	}
	return data, nil
}

// URL returns the location the provider was opened with.
func (p *ImageProvider) URL() string {
	return p.url
}

// SurfaceDescription returns the size and natural pixel format of the
// image without decoding the pixels.
func (p *ImageProvider) SurfaceDescription() (SurfaceDescription, error) {
	if p.data == nil {
		return SurfaceDescription{}, ErrProviderClosed
	}
	cfg, name, err := image.DecodeConfig(bytes.NewReader(p.data))
	if err != nil {
		return SurfaceDescription{}, fmt.Errorf("ggblit: decode config: %w", err)
	}
	desc := SurfaceDescription{
		Flags:       DescWidth | DescHeight | DescPixelFormat,
		Width:       cfg.Width,
		Height:      cfg.Height,
		PixelFormat: FormatForModel(cfg.ColorModel),
	}
	Logger().Debug("image description", "codec", name,
		"width", desc.Width, "height", desc.Height, "format", FormatName(desc.PixelFormat))
	return desc, nil
}

// RenderTo decodes the image into s, converting to the surface's pixel
// format. The image is scaled when its size differs from the surface.
func (p *ImageProvider) RenderTo(s *Surface) error {
	if p.data == nil {
		return ErrProviderClosed
	}
	if s.Buffer() == nil {
		return ErrReleased
	}
	img, _, err := image.Decode(bytes.NewReader(p.data))
	if err != nil {
		return fmt.Errorf("ggblit: decode: %w", err)
	}

	w, h := s.Size()
	if b := img.Bounds(); b.Dx() != w || b.Dy() != h {
		rect := image.Rect(0, 0, w, h)
		scaled := image.NewNRGBA(rect)
		draw.BiLinear.Scale(scaled, rect, img, b, draw.Src, nil)
		img = scaled
	}
	return s.write(img)
}

// Release drops the encoded image data.
func (p *ImageProvider) Release() {
	p.data = nil
}
