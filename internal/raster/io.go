package raster

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/imgio"
	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const JPEGQuality = 95

var (
	ErrDecode          = errors.New("failed to decode image")
	ErrUnsupportedType = errors.New("unsupported image type")
)

// Decode reads any registered format (png, jpeg, bmp, tiff, webp).
func Decode(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return img, nil
}

func Open(filename string) (image.Image, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := f.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to close %s: %v\n", filename, err)
		}
	}()

	img, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return img, nil
}

// Save picks the encoder from the file extension; jpg output uses JPEGQuality.
func Save(filename string, img image.Image) error {
	return SaveAs(filename, filepath.Ext(filename), img)
}

// SaveAs writes img to filename in the format named by ext (".png", ".jpg"...)
// whatever the file is called.
func SaveAs(filename, ext string, img image.Image) error {
	encoder, err := encoderFor(ext)
	if err != nil {
		return fmt.Errorf("%w: %s", err, filename)
	}
	return imgio.Save(filename, img, encoder)
}

func encoderFor(ext string) (imgio.Encoder, error) {
	switch strings.ToLower("." + strings.TrimPrefix(ext, ".")) {
	case ".png":
		return imgio.PNGEncoder(), nil
	case ".jpg", ".jpeg":
		return imgio.JPEGEncoder(JPEGQuality), nil
	case ".bmp":
		return imgio.BMPEncoder(), nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnsupportedType, ext)
}

// IsImageFile reports whether the name carries one of the extensions the
// batch commands pick up from a directory.
func IsImageFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png", ".jpg", ".jpeg":
		return true
	}
	return false
}

// ToNRGBA copies img into a fresh zero-origin NRGBA buffer so callers never
// alias the source pixels.
func ToNRGBA(img image.Image) *image.NRGBA {
	bounds := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))

	// straight row copies keep translucent pixels bit-exact
	if src, ok := img.(*image.NRGBA); ok {
		rowLen := 4 * bounds.Dx()
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			i := src.PixOffset(bounds.Min.X, y)
			copy(out.Pix[(y-bounds.Min.Y)*out.Stride:], src.Pix[i:i+rowLen])
		}
		return out
	}

	draw.Draw(out, out.Bounds(), img, bounds.Min, draw.Src)
	return out
}
