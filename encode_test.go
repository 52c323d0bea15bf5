package ggblit

import (
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

// decodeFile decodes the image stored at path.
func decodeFile(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return img
}

func TestSaveImage(t *testing.T) {
	src := solidImage(6, 3, color.NRGBA{R: 10, G: 200, B: 30, A: 255})
	dir := t.TempDir()

	for _, name := range []string{"a.png", "b.jpg", "c.JPEG", "d.bmp", "e.tif", "f.tiff"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := SaveImage(path, src); err != nil {
				t.Fatalf("SaveImage() error = %v", err)
			}
			img := decodeFile(t, path)
			if b := img.Bounds(); b.Dx() != 6 || b.Dy() != 3 {
				t.Errorf("bounds = %v, want 6x3", b)
			}
			_, g, _, _ := img.At(3, 1).RGBA()
			if g>>8 < 190 {
				t.Errorf("green = %d, want about 200", g>>8)
			}
		})
	}
}

func TestSaveImageUnsupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.gif")
	err := SaveImage(path, solidImage(1, 1, color.NRGBA{A: 255}))
	if !errors.Is(err, ErrUnsupportedOutput) {
		t.Errorf("SaveImage() error = %v, want ErrUnsupportedOutput", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("file created for unsupported format")
	}
}

func TestSaveImageBadDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "frame.png")
	if err := SaveImage(path, solidImage(1, 1, color.NRGBA{A: 255})); err == nil {
		t.Error("SaveImage() into missing directory succeeded")
	}
}
