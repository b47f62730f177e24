package engine

// Bounds is an axis-aligned rectangle in meters, anchored at its lower
// left corner.
type Bounds struct {
	X, Y          float64
	Width, Height float64
}

// Intersects reports whether the two rectangles overlap.
func (b Bounds) Intersects(other Bounds) bool {
	return b.X < other.X+other.Width &&
		b.X+b.Width > other.X &&
		b.Y < other.Y+other.Height &&
		b.Y+b.Height > other.Y
}

// Contains reports whether the point lies inside the rectangle.
func (b Bounds) Contains(p Vector) bool {
	return p.X >= b.X && p.X <= b.X+b.Width &&
		p.Y >= b.Y && p.Y <= b.Y+b.Height
}

// Center returns the center point of the rectangle.
func (b Bounds) Center() Vector {
	return NewVector(b.X+b.Width/2, b.Y+b.Height/2)
}

// clampInto moves the point the least distance needed to lie inside the
// rectangle.
func (b Bounds) clampInto(p Vector) Vector {
	if p.X < b.X {
		p.X = b.X
	}
	if p.X > b.X+b.Width {
		p.X = b.X + b.Width
	}
	if p.Y < b.Y {
		p.Y = b.Y
	}
	if p.Y > b.Y+b.Height {
		p.Y = b.Y + b.Height
	}
	return p
}
