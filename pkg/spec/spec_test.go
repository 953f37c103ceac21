package spec

import (
	"testing"

	"github.com/pochu0083/blender-terrain-gen/pkg/geo"
	"github.com/pochu0083/blender-terrain-gen/pkg/profile"
	"github.com/pochu0083/blender-terrain-gen/pkg/terrain"
)

func TestLoadProject(t *testing.T) {
	s, err := LoadProject("../../examples/default-scene")
	if err != nil {
		t.Fatalf("LoadProject failed: %v", err)
	}

	if s.SpecVersion != "0.1.0" {
		t.Errorf("spec_version = %q, want %q", s.SpecVersion, "0.1.0")
	}
	if s.Name != "rolling-meadow" {
		t.Errorf("name = %q, want %q", s.Name, "rolling-meadow")
	}
	if s.Seed != 42 {
		t.Errorf("seed = %d, want 42", s.Seed)
	}

	// Terrain
	if s.Terrain.SizeX != 200 || s.Terrain.SizeZ != 200 {
		t.Errorf("size = %vx%v, want 200x200", s.Terrain.SizeX, s.Terrain.SizeZ)
	}
	if s.Terrain.Source != "noise" {
		t.Errorf("source = %q, want %q", s.Terrain.Source, "noise")
	}
	if s.Terrain.WaterHeight != -1.5 {
		t.Errorf("water_height = %v, want -1.5", s.Terrain.WaterHeight)
	}
	if s.Terrain.Octaves != 4 {
		t.Errorf("octaves = %d, want 4", s.Terrain.Octaves)
	}

	// Categories
	if len(s.Categories) != 4 {
		t.Fatalf("categories count = %d, want 4", len(s.Categories))
	}
	if s.Categories[1].Category != "trees" || s.Categories[1].Target != 120 {
		t.Errorf("categories[1] = %s/%d, want trees/120", s.Categories[1].Category, s.Categories[1].Target)
	}
	if s.Categories[2].MinScore != 0.15 {
		t.Errorf("grass min_score = %v, want 0.15", s.Categories[2].MinScore)
	}
	if !s.Categories[3].OrientToPOI {
		t.Error("animals should orient to points of interest")
	}

	// Exclusions and POIs
	if len(s.Exclusions.Circles) != 1 || s.Exclusions.Circles[0].Radius != 12 {
		t.Errorf("exclusion circles = %+v, want one with radius 12", s.Exclusions.Circles)
	}
	if len(s.Exclusions.Polygons) != 1 || len(s.Exclusions.Polygons[0]) != 4 {
		t.Error("expected one 4-vertex exclusion polygon")
	}
	if len(s.POIs) != 1 {
		t.Errorf("points_of_interest count = %d, want 1", len(s.POIs))
	}
}

func TestLoadProjectMissing(t *testing.T) {
	_, err := LoadProject("/nonexistent/path")
	if err == nil {
		t.Error("expected error for missing project directory")
	}
}

func TestToRequest(t *testing.T) {
	s, err := LoadProject("../../examples/default-scene")
	if err != nil {
		t.Fatalf("LoadProject failed: %v", err)
	}
	profiles, err := profile.LoadProject("../../examples/default-scene")
	if err != nil {
		t.Fatalf("loading profiles: %v", err)
	}

	req, err := s.ToRequest(profiles)
	if err != nil {
		t.Fatalf("ToRequest failed: %v", err)
	}

	if req.Bounds.Width() != 200 || req.Bounds.Depth() != 200 {
		t.Errorf("bounds = %vx%v, want 200x200", req.Bounds.Width(), req.Bounds.Depth())
	}
	if _, ok := req.Source.(*terrain.NoiseSource); !ok {
		t.Errorf("source = %T, want *terrain.NoiseSource", req.Source)
	}
	if len(req.Categories) != 4 {
		t.Errorf("categories = %d, want 4", len(req.Categories))
	}
	if len(req.ExclusionCircles) != 1 || len(req.ExclusionPolys) != 1 {
		t.Fatal("exclusion geometry not carried into the request")
	}
	poly := req.ExclusionPolys[0]
	if !poly.Contains(geo.Pt(15, 12)) {
		t.Error("point inside the declared exclusion polygon not contained")
	}
	if poly.Contains(geo.Pt(50, 50)) {
		t.Error("point outside the declared exclusion polygon contained")
	}
	if len(req.PointsOfInterest) != 1 {
		t.Error("points of interest not carried into the request")
	}

	if report := req.Validate(); !report.Valid {
		t.Errorf("converted request should validate: %s", report.Summary)
	}
}

func TestToRequestUnknownSource(t *testing.T) {
	s := &ScatterSpec{Terrain: TerrainDef{Source: "volcano", SizeX: 10, SizeZ: 10, Resolution: 1}}
	if _, err := s.ToRequest(profile.DefaultSet()); err == nil {
		t.Error("expected error for unknown terrain source")
	}
}
