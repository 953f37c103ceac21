package analytics

import (
	"math"
	"testing"

	"github.com/pochu0083/blender-terrain-gen/pkg/geo"
	"github.com/pochu0083/blender-terrain-gen/pkg/planner"
	"github.com/pochu0083/blender-terrain-gen/pkg/profile"
	"github.com/pochu0083/blender-terrain-gen/pkg/terrain"
)

func feasibleRequest() planner.Request {
	return planner.Request{
		Bounds:     geo.NewBounds(geo.Pt(0, 0), geo.Pt(100, 100)),
		Resolution: 2,
		Seed:       1,
		Source:     terrain.FlatSource{},
		Profiles:   profile.DefaultSet(),
		Categories: []planner.CategoryConfig{
			{Category: profile.CategoryRocks, Target: 20},
			{Category: profile.CategoryTrees, Target: 40},
		},
	}
}

func TestResolveFeasible(t *testing.T) {
	req := feasibleRequest()
	params, report := Resolve(req)
	if !report.Valid {
		t.Fatalf("feasible request rejected: %s", report.Summary)
	}

	if params.AreaTotal != 10000 {
		t.Errorf("area total = %.0f, want 10000", params.AreaTotal)
	}
	if params.AreaUsable != params.AreaTotal {
		t.Errorf("usable area = %.0f with no exclusions, want %.0f", params.AreaUsable, params.AreaTotal)
	}
	if params.GridCols != 51 || params.GridRows != 51 {
		t.Errorf("grid = %dx%d, want 51x51", params.GridCols, params.GridRows)
	}
	if params.TotalTarget != 60 {
		t.Errorf("total target = %d, want 60", params.TotalTarget)
	}

	if len(params.Categories) != 2 {
		t.Fatalf("categories = %d, want 2", len(params.Categories))
	}
	rocks := params.Categories[0]
	if rocks.Category != profile.CategoryRocks {
		t.Fatalf("categories[0] = %s, want rocks", rocks.Category)
	}
	// rock_boulder: radius 1.5, min_spacing 0.5 -> self spacing 1.5.
	if math.Abs(rocks.TightestSpacing-1.5) > 1e-9 {
		t.Errorf("rocks tightest spacing = %.3f, want 1.5", rocks.TightestSpacing)
	}
	wantBound := int(2.0 / math.Sqrt(3) * 10000 / (1.5 * 1.5))
	if rocks.PackingBound != wantBound {
		t.Errorf("rocks packing bound = %d, want %d", rocks.PackingBound, wantBound)
	}
	if rocks.SaturationEstimate >= rocks.PackingBound {
		t.Error("saturation estimate should sit below the packing bound")
	}
	if rocks.ExpectedCoverage <= 0 {
		t.Error("expected coverage should be positive")
	}
}

func TestResolveOverpackedTarget(t *testing.T) {
	req := feasibleRequest()
	// tree_conifer self spacing is 1.5*(2+2)=6, so the 100x100 area holds
	// at most ~320 trees. Ask for far more.
	req.Categories = []planner.CategoryConfig{
		{Category: profile.CategoryTrees, Target: 5000},
	}

	_, report := Resolve(req)
	if report.Valid {
		t.Fatal("target above the packing bound should be an error")
	}
}

func TestResolveSaturationWarning(t *testing.T) {
	req := feasibleRequest()
	// Between the saturation estimate (~176) and the hex bound (~320).
	req.Categories = []planner.CategoryConfig{
		{Category: profile.CategoryTrees, Target: 250},
	}

	_, report := Resolve(req)
	if !report.Valid {
		t.Fatalf("target below the packing bound should not be an error: %s", report.Summary)
	}
	if len(report.Warnings) == 0 {
		t.Error("expected a saturation warning")
	}
}

func TestResolveExclusionArea(t *testing.T) {
	req := feasibleRequest()
	req.ExclusionCircles = []geo.Circle{{Center: geo.Pt(50, 50), Radius: 20}}
	req.ExclusionPolys = []geo.Polygon{
		geo.NewPolygon(geo.Pt(0, 0), geo.Pt(40, 0), geo.Pt(40, 40), geo.Pt(0, 40)),
	}

	params, _ := Resolve(req)
	want := math.Pi*400 + 1600
	if math.Abs(params.AreaExcluded-want) > 1e-6 {
		t.Errorf("excluded area = %.1f, want %.1f", params.AreaExcluded, want)
	}
	if params.AreaUsable >= params.AreaTotal {
		t.Error("usable area should shrink with exclusions")
	}
}

func TestResolveFullyExcluded(t *testing.T) {
	req := feasibleRequest()
	req.ExclusionCircles = []geo.Circle{{Center: geo.Pt(50, 50), Radius: 100}}

	_, report := Resolve(req)
	if report.Valid {
		t.Error("fully excluded area should be an error")
	}
}

func TestResolveSpacingScale(t *testing.T) {
	req := feasibleRequest()
	req.Categories = []planner.CategoryConfig{
		{Category: profile.CategoryTrees, Target: 10, SpacingScale: 2},
	}

	params, _ := Resolve(req)
	if math.Abs(params.Categories[0].TightestSpacing-12) > 1e-9 {
		t.Errorf("scaled spacing = %.1f, want 12", params.Categories[0].TightestSpacing)
	}
}
