// Package sampler turns images into colour readings.
//
// A reading is taken the way a phone camera game does it: a small cross of
// pixels around the point of interest is averaged, which smooths out sensor
// noise and single-pixel edges before the nearest palette colour is found.
package sampler

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/vovakirdan/chroma-arcade/internal/color"
)

// ErrEmptyImage is returned when an image has no pixels to sample.
var ErrEmptyImage = errors.New("sampler: image has no pixels")

// crossOffsets are the pixel offsets sampled along each axis.
var crossOffsets = [...]int{-20, -10, 0, 10, 20}

// CrossSize is the number of samples Cross returns.
const CrossSize = 2 * len(crossOffsets)

// Cross samples img along a horizontal and a vertical line through
// (cx, cy). Coordinates falling outside the image are clamped to its edge.
func Cross(img image.Image, cx, cy int) []color.RGB {
	b := img.Bounds()
	if b.Empty() {
		return nil
	}

	out := make([]color.RGB, 0, CrossSize)
	for _, d := range crossOffsets {
		out = append(out, pixel(img, b, cx+d, cy))
		out = append(out, pixel(img, b, cx, cy+d))
	}
	return out
}

// CrossAverage returns the averaged cross reading at the centre of img.
func CrossAverage(img image.Image) (color.RGB, error) {
	b := img.Bounds()
	if b.Empty() {
		return color.RGB{}, ErrEmptyImage
	}
	cx := b.Min.X + b.Dx()/2
	cy := b.Min.Y + b.Dy()/2
	return color.Average(Cross(img, cx, cy)), nil
}

// ReadingAt returns the averaged cross reading at (x, y).
func ReadingAt(img image.Image, x, y int) color.RGB {
	return color.Average(Cross(img, x, y))
}

func pixel(img image.Image, b image.Rectangle, x, y int) color.RGB {
	x = clamp(x, b.Min.X, b.Max.X-1)
	y = clamp(y, b.Min.Y, b.Max.Y-1)

	// MakeColor fails only for fully transparent pixels; they read as black.
	c, ok := colorful.MakeColor(img.At(x, y))
	if !ok {
		return color.RGB{}
	}
	r, g, bl := c.RGB255()
	return color.RGB{R: r, G: g, B: bl}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// LoadImage decodes a PNG, JPEG or GIF file.
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("sampler: open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("sampler: decode %s: %w", path, err)
	}
	return img, nil
}
