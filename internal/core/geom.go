// Package core provides the types shared by games and the platform: the
// screen buffer, input frames and layout helpers. It has no terminal
// dependency so game logic stays pure and testable.
package core

// Rect is an axis-aligned area of the screen.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate just past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate just past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Inset shrinks the rectangle by n on every side.
func (r Rect) Inset(n int) Rect {
	out := Rect{X: r.X + n, Y: r.Y + n, W: r.W - 2*n, H: r.H - 2*n}
	if out.W < 0 {
		out.W = 0
	}
	if out.H < 0 {
		out.H = 0
	}
	return out
}

// Grid splits area into cols x rows equal cells separated by gap columns
// horizontally and gap/2 rows vertically (terminal cells are about twice
// as tall as they are wide). Cells are returned row by row.
func Grid(area Rect, cols, rows, gap int) []Rect {
	if cols <= 0 || rows <= 0 {
		return nil
	}
	vgap := gap / 2
	w := (area.W - gap*(cols-1)) / cols
	h := (area.H - vgap*(rows-1)) / rows
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	out := make([]Rect, 0, cols*rows)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			out = append(out, Rect{
				X: area.X + col*(w+gap),
				Y: area.Y + row*(h+vgap),
				W: w,
				H: h,
			})
		}
	}
	return out
}

// Clamp restricts a value to be within [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// Wrap maps val into [0, n) cyclically.
func Wrap(val, n int) int {
	if n <= 0 {
		return 0
	}
	val %= n
	if val < 0 {
		val += n
	}
	return val
}
