package geo

// Bounds is an axis-aligned rectangle in the XZ plane.
type Bounds struct {
	Min Point2D `json:"min" yaml:"min"`
	Max Point2D `json:"max" yaml:"max"`
}

// NewBounds creates a Bounds from two corners, normalizing the order.
func NewBounds(a, b Point2D) Bounds {
	bd := Bounds{Min: a, Max: b}
	if bd.Min.X > bd.Max.X {
		bd.Min.X, bd.Max.X = bd.Max.X, bd.Min.X
	}
	if bd.Min.Z > bd.Max.Z {
		bd.Min.Z, bd.Max.Z = bd.Max.Z, bd.Min.Z
	}
	return bd
}

// Width returns the extent along X.
func (b Bounds) Width() float64 {
	return b.Max.X - b.Min.X
}

// Depth returns the extent along Z.
func (b Bounds) Depth() float64 {
	return b.Max.Z - b.Min.Z
}

// Area returns the rectangle area.
func (b Bounds) Area() float64 {
	return b.Width() * b.Depth()
}

// IsDegenerate reports whether the rectangle encloses no area.
func (b Bounds) IsDegenerate() bool {
	return b.Width() <= 0 || b.Depth() <= 0
}

// Contains reports whether pt lies inside the rectangle. Points on the min
// edges are inside; points on the max edges are outside, so adjacent bounds
// tile without double-counting.
func (b Bounds) Contains(pt Point2D) bool {
	return pt.X >= b.Min.X && pt.X < b.Max.X && pt.Z >= b.Min.Z && pt.Z < b.Max.Z
}

// Center returns the rectangle midpoint.
func (b Bounds) Center() Point2D {
	return b.Min.Lerp(b.Max, 0.5)
}

// Clamp returns pt moved to the nearest point inside the rectangle.
func (b Bounds) Clamp(pt Point2D) Point2D {
	if pt.X < b.Min.X {
		pt.X = b.Min.X
	}
	if pt.X > b.Max.X {
		pt.X = b.Max.X
	}
	if pt.Z < b.Min.Z {
		pt.Z = b.Min.Z
	}
	if pt.Z > b.Max.Z {
		pt.Z = b.Max.Z
	}
	return pt
}
