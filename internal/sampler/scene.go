package sampler

import (
	"image"
	stdcolor "image/color"

	"github.com/vovakirdan/chroma-arcade/internal/color"
)

// Scene is a synthetic camera view: a grid of coloured patches with
// per-pixel noise and a movable viewfinder. It implements image.Image, so
// readings under the viewfinder go through the same Cross sampling as a
// real photo.
type Scene struct {
	cols, rows int
	patch      int // patch side in pixels
	noise      int // max per-channel deviation
	seed       uint64
	patches    []color.Color

	viewX, viewY int
}

// SceneOptions controls scene layout.
type SceneOptions struct {
	Cols, Rows int
	PatchSize  int // pixels per patch side; defaults to 48
	Noise      int // per-channel noise amplitude, 0 for flat patches
	Seed       int64
}

// NewScene lays patches out row by row. Missing patches (fewer colours
// than cells) repeat from the start of the list.
func NewScene(patches []color.Color, opts SceneOptions) *Scene {
	if opts.PatchSize <= 0 {
		opts.PatchSize = 48
	}
	if opts.Cols <= 0 {
		opts.Cols = 1
	}
	if opts.Rows <= 0 {
		opts.Rows = 1
	}
	if opts.Noise < 0 {
		opts.Noise = 0
	}

	cells := make([]color.Color, opts.Cols*opts.Rows)
	for i := range cells {
		if len(patches) > 0 {
			cells[i] = patches[i%len(patches)]
		}
	}

	s := &Scene{
		cols:    opts.Cols,
		rows:    opts.Rows,
		patch:   opts.PatchSize,
		noise:   opts.Noise,
		seed:    uint64(opts.Seed),
		patches: cells,
	}
	s.Center()
	return s
}

// ColorModel implements image.Image.
func (s *Scene) ColorModel() stdcolor.Model {
	return stdcolor.RGBAModel
}

// Bounds implements image.Image.
func (s *Scene) Bounds() image.Rectangle {
	return image.Rect(0, 0, s.cols*s.patch, s.rows*s.patch)
}

// At implements image.Image.
func (s *Scene) At(x, y int) stdcolor.Color {
	if !(image.Point{X: x, Y: y}.In(s.Bounds())) {
		return stdcolor.RGBA{A: 0xff}
	}
	c := s.patches[(y/s.patch)*s.cols+x/s.patch].RGB
	if s.noise == 0 {
		return stdcolor.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
	}

	h := mix(uint64(x), uint64(y), s.seed)
	return stdcolor.RGBA{
		R: jitter(c.R, byte(h), s.noise),
		G: jitter(c.G, byte(h>>8), s.noise),
		B: jitter(c.B, byte(h>>16), s.noise),
		A: 0xff,
	}
}

// mix is a splitmix64 finaliser over the pixel coordinates.
func mix(x, y, seed uint64) uint64 {
	h := x*0x9e3779b97f4a7c15 ^ y*0xc2b2ae3d27d4eb4f ^ seed
	h ^= h >> 33
	h *= 0xff51afd7ed558ccd
	h ^= h >> 33
	h *= 0xc4ceb9fe1a85ec53
	h ^= h >> 33
	return h
}

func jitter(v, r byte, amp int) uint8 {
	d := int(r)%(2*amp+1) - amp
	return uint8(clamp(int(v)+d, 0, 255))
}

// Cols returns the number of patch columns.
func (s *Scene) Cols() int { return s.cols }

// Rows returns the number of patch rows.
func (s *Scene) Rows() int { return s.rows }

// PatchSize returns the patch side in pixels.
func (s *Scene) PatchSize() int { return s.patch }

// Patch returns the colour of the patch at (col, row).
func (s *Scene) Patch(col, row int) color.Color {
	col = clamp(col, 0, s.cols-1)
	row = clamp(row, 0, s.rows-1)
	return s.patches[row*s.cols+col]
}

// Viewfinder returns the viewfinder centre in pixels.
func (s *Scene) Viewfinder() (int, int) {
	return s.viewX, s.viewY
}

// ViewfinderPatch returns the patch under the viewfinder centre.
func (s *Scene) ViewfinderPatch() (col, row int) {
	return s.viewX / s.patch, s.viewY / s.patch
}

// Center moves the viewfinder to the middle of the scene.
func (s *Scene) Center() {
	b := s.Bounds()
	s.viewX = b.Dx() / 2
	s.viewY = b.Dy() / 2
}

// Move shifts the viewfinder by (dx, dy) pixels, staying inside the scene.
func (s *Scene) Move(dx, dy int) {
	b := s.Bounds()
	s.viewX = clamp(s.viewX+dx, 0, b.Dx()-1)
	s.viewY = clamp(s.viewY+dy, 0, b.Dy()-1)
}

// Sample returns the averaged cross reading under the viewfinder.
func (s *Scene) Sample() color.RGB {
	return ReadingAt(s, s.viewX, s.viewY)
}
