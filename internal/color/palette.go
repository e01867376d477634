package color

import "fmt"

// Palette is an ordered, non-empty list of uniquely named colours.
// The zero value is not usable; build palettes with NewPalette.
type Palette struct {
	colors []Color
	index  map[string]int
}

// NewPalette validates and builds a palette. Order is preserved and is the
// tie-break order used by Nearest.
func NewPalette(colors ...Color) (Palette, error) {
	if len(colors) == 0 {
		return Palette{}, ErrEmptyPalette
	}

	p := Palette{
		colors: make([]Color, len(colors)),
		index:  make(map[string]int, len(colors)),
	}
	for i, c := range colors {
		if _, dup := p.index[c.Name]; dup {
			return Palette{}, fmt.Errorf("%w: %q", ErrDuplicateColor, c.Name)
		}
		p.colors[i] = c
		p.index[c.Name] = i
	}
	return p, nil
}

// MustPalette is NewPalette for compiled-in palettes. Panics on error.
func MustPalette(colors ...Color) Palette {
	p, err := NewPalette(colors...)
	if err != nil {
		panic(err)
	}
	return p
}

// Len returns the number of colours.
func (p Palette) Len() int {
	return len(p.colors)
}

// At returns the colour at index i.
func (p Palette) At(i int) Color {
	return p.colors[i]
}

// Colors returns a copy of the palette entries.
func (p Palette) Colors() []Color {
	out := make([]Color, len(p.colors))
	copy(out, p.colors)
	return out
}

// Names returns the colour names in palette order.
func (p Palette) Names() []string {
	names := make([]string, len(p.colors))
	for i, c := range p.colors {
		names[i] = c.Name
	}
	return names
}

// Lookup finds a colour by name.
func (p Palette) Lookup(name string) (Color, bool) {
	i, ok := p.index[name]
	if !ok {
		return Color{}, false
	}
	return p.colors[i], true
}

// Without returns a palette with the named colours removed.
// Fails with ErrEmptyPalette if nothing is left.
func (p Palette) Without(names ...string) (Palette, error) {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		drop[n] = true
	}
	kept := make([]Color, 0, len(p.colors))
	for _, c := range p.colors {
		if !drop[c.Name] {
			kept = append(kept, c)
		}
	}
	return NewPalette(kept...)
}

// Nearest returns the palette entry closest to sample.
// Ties go to the earliest entry. Panics on a zero Palette.
func Nearest(sample RGB, p Palette) Color {
	_, c := NearestIndex(sample, p)
	return c
}

// NearestIndex is Nearest that also reports the index of the match.
func NearestIndex(sample RGB, p Palette) (int, Color) {
	if len(p.colors) == 0 {
		panic("color: Nearest called with empty palette")
	}

	best := 0
	bestDist := Distance(sample, p.colors[0].RGB)
	for i := 1; i < len(p.colors); i++ {
		// strict < keeps the first minimum
		if d := Distance(sample, p.colors[i].RGB); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, p.colors[best]
}
