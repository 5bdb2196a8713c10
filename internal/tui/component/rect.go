package component

// Rect is a rectangular screen region in cells.
type Rect struct {
	X, Y, Width, Height int
}

// IsEmpty reports whether the region has no cells.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Right is the first column past the region.
func (r Rect) Right() int {
	return r.X + r.Width
}

// Bottom is the first row past the region.
func (r Rect) Bottom() int {
	return r.Y + r.Height
}

// Contains reports whether the cell (x, y) lies inside the region.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Inner shrinks the region by one cell on every side, the space left inside
// a border.
func (r Rect) Inner() Rect {
	return r.Margin(1, 1)
}

// Margin shrinks the region by h columns left and right and v rows top and
// bottom.
func (r Rect) Margin(h, v int) Rect {
	out := Rect{X: r.X + h, Y: r.Y + v, Width: r.Width - 2*h, Height: r.Height - 2*v}
	if out.Width < 0 {
		out.Width = 0
	}
	if out.Height < 0 {
		out.Height = 0
	}

	return out
}

// Below returns the region left after consuming rows from the top.
func (r Rect) Below(rows int) Rect {
	if rows > r.Height {
		rows = r.Height
	}

	return Rect{X: r.X, Y: r.Y + rows, Width: r.Width, Height: r.Height - rows}
}

// SplitLeft cuts a column of the given width off the left edge.
func (r Rect) SplitLeft(width int) (left, rest Rect) {
	if width > r.Width {
		width = r.Width
	}

	left = Rect{X: r.X, Y: r.Y, Width: width, Height: r.Height}
	rest = Rect{X: r.X + width, Y: r.Y, Width: r.Width - width, Height: r.Height}

	return left, rest
}

// Intersect returns the overlap of r and o.
func (r Rect) Intersect(o Rect) Rect {
	x0, y0 := max(r.X, o.X), max(r.Y, o.Y)
	x1, y1 := min(r.Right(), o.Right()), min(r.Bottom(), o.Bottom())
	if x1 <= x0 || y1 <= y0 {
		return Rect{X: x0, Y: y0}
	}

	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Centered returns a width×height region centered inside r, clipped to r.
func (r Rect) Centered(width, height int) Rect {
	width, height = min(width, r.Width), min(height, r.Height)

	return Rect{
		X:      r.X + (r.Width-width)/2,
		Y:      r.Y + (r.Height-height)/2,
		Width:  width,
		Height: height,
	}
}
