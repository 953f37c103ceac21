package geo

import (
	"math"
	"testing"
)

func TestPointDistance(t *testing.T) {
	a := Pt(0, 0)
	b := Pt(3, 4)
	if d := a.Distance(b); math.Abs(d-5) > 1e-9 {
		t.Errorf("distance = %v, want 5", d)
	}
	if d := a.DistanceSq(b); math.Abs(d-25) > 1e-9 {
		t.Errorf("distance squared = %v, want 25", d)
	}
}

func TestBoundsNormalization(t *testing.T) {
	b := NewBounds(Pt(10, 20), Pt(-5, 5))
	if b.Min.X != -5 || b.Min.Z != 5 || b.Max.X != 10 || b.Max.Z != 20 {
		t.Errorf("bounds not normalized: %+v", b)
	}
	if got := b.Area(); math.Abs(got-15*15) > 1e-9 {
		t.Errorf("area = %v, want 225", got)
	}
}

func TestBoundsContainsHalfOpen(t *testing.T) {
	b := NewBounds(Pt(0, 0), Pt(10, 10))
	if !b.Contains(Pt(0, 0)) {
		t.Error("min corner should be inside")
	}
	if b.Contains(Pt(10, 10)) {
		t.Error("max corner should be outside")
	}
	if !b.Contains(Pt(5, 5)) {
		t.Error("center should be inside")
	}
}

func TestBoundsClamp(t *testing.T) {
	b := NewBounds(Pt(0, 0), Pt(10, 10))
	got := b.Clamp(Pt(-3, 15))
	if got != Pt(0, 10) {
		t.Errorf("clamp = %+v, want (0,10)", got)
	}
}

func TestCircleContains(t *testing.T) {
	c := Circle{Center: Pt(5, 5), Radius: 2}
	if !c.Contains(Pt(6, 5)) {
		t.Error("point inside radius should be contained")
	}
	if !c.Contains(Pt(7, 5)) {
		t.Error("boundary point should be contained")
	}
	if c.Contains(Pt(8, 5)) {
		t.Error("point outside radius should not be contained")
	}
}

func TestPolygonContains(t *testing.T) {
	square := NewPolygon(Pt(0, 0), Pt(10, 0), Pt(10, 10), Pt(0, 10))
	if !square.Contains(Pt(5, 5)) {
		t.Error("center should be inside")
	}
	if square.Contains(Pt(15, 5)) {
		t.Error("point to the right should be outside")
	}
	if got := square.Area(); math.Abs(got-100) > 1e-9 {
		t.Errorf("area = %v, want 100", got)
	}
}

func TestPolygonDegenerate(t *testing.T) {
	line := NewPolygon(Pt(0, 0), Pt(1, 1))
	if !line.IsEmpty() {
		t.Error("two-vertex polygon should be empty")
	}
	if line.Contains(Pt(0.5, 0.5)) {
		t.Error("degenerate polygon contains nothing")
	}
}
