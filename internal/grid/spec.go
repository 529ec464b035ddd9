package grid

import "fmt"

// Spec is the coordinate system of a layout.
type Spec struct {
	// Denominator subdivides both axes. Must be positive.
	Denominator int

	// Columns and Rows are the logical axis counts the layout was drawn
	// for. They are optional; when set, Denominator must be a multiple of
	// each so that every column and row boundary lands on a whole unit.
	Columns int
	Rows    int
}

// NewSpec creates a spec with the given denominator and no axis counts.
func NewSpec(denominator int) Spec {
	return Spec{Denominator: denominator}
}

// WithAxes returns a copy of the spec with logical column and row counts.
func (s Spec) WithAxes(columns, rows int) Spec {
	s.Columns = columns
	s.Rows = rows
	return s
}

// problems returns the reasons the spec itself is unusable.
func (s Spec) problems() []string {
	var out []string
	if s.Denominator <= 0 {
		out = append(out, fmt.Sprintf("denominator %d must be positive", s.Denominator))
		return out
	}
	if s.Columns < 0 {
		out = append(out, fmt.Sprintf("columns %d must not be negative", s.Columns))
	} else if s.Columns > 0 && s.Denominator%s.Columns != 0 {
		out = append(out, fmt.Sprintf("denominator %d is not a multiple of columns %d", s.Denominator, s.Columns))
	}
	if s.Rows < 0 {
		out = append(out, fmt.Sprintf("rows %d must not be negative", s.Rows))
	} else if s.Rows > 0 && s.Denominator%s.Rows != 0 {
		out = append(out, fmt.Sprintf("denominator %d is not a multiple of rows %d", s.Denominator, s.Rows))
	}
	return out
}

// Interpolate maps a grid position onto an axis of the given extent.
// Positions are floored, so neighbouring regions that share a grid edge
// also share a screen edge and tiled layouts never leave gaps.
func (s Spec) Interpolate(pos, extent int) int {
	if s.Denominator <= 0 {
		return 0
	}
	return pos * extent / s.Denominator
}

// Scale maps a region onto a canvas of width x height cells or pixels.
func (s Spec) Scale(r Rect, width, height int) ScreenRect {
	return ScreenRect{
		Left:   s.Interpolate(r.Left, width),
		Top:    s.Interpolate(r.Top, height),
		Right:  s.Interpolate(r.Right, width),
		Bottom: s.Interpolate(r.Bottom, height),
	}
}

// ScreenRect is a region in canvas coordinates. Right and Bottom are
// exclusive.
type ScreenRect struct {
	Left   int
	Top    int
	Right  int
	Bottom int
}

// Width returns the width of the rectangle.
func (r ScreenRect) Width() int {
	if r.Right <= r.Left {
		return 0
	}
	return r.Right - r.Left
}

// Height returns the height of the rectangle.
func (r ScreenRect) Height() int {
	if r.Bottom <= r.Top {
		return 0
	}
	return r.Bottom - r.Top
}

// IsEmpty returns true if the rectangle has no area.
func (r ScreenRect) IsEmpty() bool {
	return r.Width() == 0 || r.Height() == 0
}

// Contains returns true if (x, y) is within the rectangle.
func (r ScreenRect) Contains(x, y int) bool {
	return x >= r.Left && x < r.Right && y >= r.Top && y < r.Bottom
}
