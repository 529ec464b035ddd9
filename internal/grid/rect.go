package grid

import "fmt"

// Rect is a key region in grid units. Right and Bottom are exclusive edges,
// so a region spanning the whole grid is {0, 0, denominator, denominator}.
type Rect struct {
	Left   int
	Top    int
	Right  int
	Bottom int
}

// NewRect creates a region from its four edges.
func NewRect(left, top, right, bottom int) Rect {
	return Rect{Left: left, Top: top, Right: right, Bottom: bottom}
}

// Width returns Right-Left. It is not clamped, so a degenerate or inverted
// region reports zero or a negative width.
func (r Rect) Width() int {
	return r.Right - r.Left
}

// Height returns Bottom-Top, unclamped like Width.
func (r Rect) Height() int {
	return r.Bottom - r.Top
}

// IsDegenerate reports whether the region has no interior.
func (r Rect) IsDegenerate() bool {
	return r.Left >= r.Right || r.Top >= r.Bottom
}

// Area returns the number of grid cells the region covers.
func (r Rect) Area() int {
	if r.IsDegenerate() {
		return 0
	}
	return r.Width() * r.Height()
}

// Intersect returns the common part of two regions. The result is the zero
// Rect when they do not overlap.
func (r Rect) Intersect(other Rect) Rect {
	out := Rect{
		Left:   max(r.Left, other.Left),
		Top:    max(r.Top, other.Top),
		Right:  min(r.Right, other.Right),
		Bottom: min(r.Bottom, other.Bottom),
	}
	if out.IsDegenerate() {
		return Rect{}
	}
	return out
}

// Overlaps reports whether the two regions share any cell.
func (r Rect) Overlaps(other Rect) bool {
	return r.Intersect(other).Area() > 0
}

// Contains reports whether the grid point (x, y) lies inside the region.
func (r Rect) Contains(x, y int) bool {
	return x >= r.Left && x < r.Right && y >= r.Top && y < r.Bottom
}

func (r Rect) String() string {
	return fmt.Sprintf("{(%d,%d),(%d,%d)}", r.Left, r.Top, r.Right, r.Bottom)
}
