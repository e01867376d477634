// Package color provides the colour model shared by every mini-game:
// RGB samples, named palettes, nearest-colour matching and warm/cool
// bucket classification. It has no knowledge of rendering or timing.
package color

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	// ErrEmptyPalette is returned when a palette is built without colours.
	ErrEmptyPalette = errors.New("color: palette is empty")

	// ErrDuplicateColor is returned when two palette entries share a name.
	ErrDuplicateColor = errors.New("color: duplicate color name")
)

// RGB is an 8-bit per channel colour sample.
type RGB struct {
	R, G, B uint8
}

// Hex returns the #rrggbb form of the sample.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// String implements fmt.Stringer.
func (c RGB) String() string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
}

// ParseHex parses a #rrggbb (or #rgb) string into an RGB sample.
func ParseHex(s string) (RGB, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, fmt.Errorf("color: invalid hex %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}, nil
}

// Color is a named palette entry.
type Color struct {
	Name string
	RGB  RGB
}

// Hex returns the #rrggbb form of the colour.
func (c Color) Hex() string {
	return c.RGB.Hex()
}

// MustColor builds a Color from a hex literal. Panics on malformed input,
// so it is only meant for compiled-in palettes.
func MustColor(name, hex string) Color {
	rgb, err := ParseHex(hex)
	if err != nil {
		panic(err)
	}
	return Color{Name: name, RGB: rgb}
}

// Distance returns the Euclidean distance between two samples in RGB space.
func Distance(a, b RGB) float64 {
	dr := float64(a.R) - float64(b.R)
	dg := float64(a.G) - float64(b.G)
	db := float64(a.B) - float64(b.B)
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// Average returns the per-channel mean of the samples, rounded half-up.
// An empty slice yields black.
func Average(samples []RGB) RGB {
	if len(samples) == 0 {
		return RGB{}
	}
	var r, g, b int
	for _, s := range samples {
		r += int(s.R)
		g += int(s.G)
		b += int(s.B)
	}
	n := len(samples)
	return RGB{
		R: uint8((2*r + n) / (2 * n)),
		G: uint8((2*g + n) / (2 * n)),
		B: uint8((2*b + n) / (2 * n)),
	}
}
