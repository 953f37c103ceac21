package spatial

import (
	"testing"

	"github.com/pochu0083/blender-terrain-gen/pkg/geo"
)

func testIndex() *Index {
	return NewIndex(geo.NewBounds(geo.Pt(0, 0), geo.Pt(100, 100)), 4)
}

func TestInsertAndQuery(t *testing.T) {
	ix := testIndex()
	ix.Insert(Item{Ref: 0, Position: geo.Pt(10, 10), Radius: 1})
	ix.Insert(Item{Ref: 1, Position: geo.Pt(12, 10), Radius: 1})
	ix.Insert(Item{Ref: 2, Position: geo.Pt(90, 90), Radius: 1})

	if ix.Len() != 3 {
		t.Fatalf("len = %d, want 3", ix.Len())
	}

	near := ix.QueryRadius(geo.Pt(11, 10), 3)
	found := map[int]bool{}
	for _, it := range near {
		found[it.Ref] = true
	}
	if !found[0] || !found[1] {
		t.Errorf("expected refs 0 and 1 near (11,10), got %v", found)
	}
	if found[2] {
		t.Error("ref 2 at (90,90) should not appear for a radius-3 query at (11,10)")
	}
}

func TestQueryIsSuperset(t *testing.T) {
	// Grid queries return cell candidates; every item actually within the
	// radius must be among them.
	ix := testIndex()
	pts := []geo.Point2D{
		geo.Pt(5, 5), geo.Pt(6, 6), geo.Pt(7, 9), geo.Pt(3.9, 4.1),
		geo.Pt(50, 50), geo.Pt(99, 1),
	}
	for i, pt := range pts {
		ix.Insert(Item{Ref: i, Position: pt})
	}

	center := geo.Pt(5, 5)
	radius := 5.0
	got := map[int]bool{}
	for _, it := range ix.QueryRadius(center, radius) {
		got[it.Ref] = true
	}
	for i, pt := range pts {
		if center.Distance(pt) <= radius && !got[i] {
			t.Errorf("item %d at %v within radius %v missing from query", i, pt, radius)
		}
	}
}

func TestQueryOutsideBounds(t *testing.T) {
	// Points near or past the bounds edge still hash to cells consistently.
	ix := testIndex()
	ix.Insert(Item{Ref: 0, Position: geo.Pt(0.1, 0.1)})

	got := ix.QueryRadius(geo.Pt(-1, -1), 3)
	if len(got) != 1 {
		t.Errorf("edge query returned %d items, want 1", len(got))
	}
}

func TestRemove(t *testing.T) {
	ix := testIndex()
	ix.Insert(Item{Ref: 7, Position: geo.Pt(20, 20)})
	ix.Insert(Item{Ref: 8, Position: geo.Pt(21, 20)})

	if !ix.Remove(7, geo.Pt(20, 20)) {
		t.Fatal("remove of existing item failed")
	}
	if ix.Remove(7, geo.Pt(20, 20)) {
		t.Fatal("second remove of same item should fail")
	}
	if ix.Len() != 1 {
		t.Errorf("len = %d, want 1", ix.Len())
	}

	remaining := ix.QueryRadius(geo.Pt(20, 20), 5)
	if len(remaining) != 1 || remaining[0].Ref != 8 {
		t.Errorf("expected only ref 8 remaining, got %v", remaining)
	}
}

func TestQueryEmptyIndex(t *testing.T) {
	ix := testIndex()
	if got := ix.QueryRadius(geo.Pt(50, 50), 10); len(got) != 0 {
		t.Errorf("empty index query returned %d items", len(got))
	}
	if got := ix.QueryRadius(geo.Pt(50, 50), -1); got != nil {
		t.Errorf("negative radius should return nil, got %v", got)
	}
}
