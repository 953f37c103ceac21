package geo

import "math"

// Circle is a disk in the XZ plane, used for circular exclusion zones.
type Circle struct {
	Center Point2D `json:"center" yaml:"center"`
	Radius float64 `json:"radius" yaml:"radius"`
}

// Contains reports whether pt lies inside the disk (boundary inclusive).
func (c Circle) Contains(pt Point2D) bool {
	return c.Center.DistanceSq(pt) <= c.Radius*c.Radius
}

// Polygon is a closed polygon defined by its vertices in order. Used for
// irregular exclusion zones.
type Polygon struct {
	Vertices []Point2D `json:"vertices" yaml:"vertices"`
}

// NewPolygon creates a polygon from a list of vertices.
func NewPolygon(pts ...Point2D) Polygon {
	return Polygon{Vertices: pts}
}

// IsEmpty returns true if the polygon has fewer than 3 vertices.
func (p Polygon) IsEmpty() bool {
	return len(p.Vertices) < 3
}

// Area returns the unsigned area using the shoelace formula.
func (p Polygon) Area() float64 {
	n := len(p.Vertices)
	if n < 3 {
		return 0
	}
	area := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += p.Vertices[i].X * p.Vertices[j].Z
		area -= p.Vertices[j].X * p.Vertices[i].Z
	}
	return math.Abs(area / 2)
}

// BoundingBox returns the axis-aligned bounding box of the polygon.
func (p Polygon) BoundingBox() Bounds {
	if len(p.Vertices) == 0 {
		return Bounds{}
	}
	bb := Bounds{Min: p.Vertices[0], Max: p.Vertices[0]}
	for _, v := range p.Vertices[1:] {
		if v.X < bb.Min.X {
			bb.Min.X = v.X
		}
		if v.Z < bb.Min.Z {
			bb.Min.Z = v.Z
		}
		if v.X > bb.Max.X {
			bb.Max.X = v.X
		}
		if v.Z > bb.Max.Z {
			bb.Max.Z = v.Z
		}
	}
	return bb
}

// Contains returns true if the point is inside the polygon using ray casting.
func (p Polygon) Contains(pt Point2D) bool {
	n := len(p.Vertices)
	if n < 3 {
		return false
	}
	inside := false
	j := n - 1
	for i := 0; i < n; i++ {
		vi := p.Vertices[i]
		vj := p.Vertices[j]
		if (vi.Z > pt.Z) != (vj.Z > pt.Z) &&
			pt.X < (vj.X-vi.X)*(pt.Z-vi.Z)/(vj.Z-vi.Z)+vi.X {
			inside = !inside
		}
		j = i
	}
	return inside
}
