package sampler

import (
	"math/rand"
	"testing"

	"github.com/pochu0083/blender-terrain-gen/pkg/geo"
	"github.com/pochu0083/blender-terrain-gen/pkg/profile"
	"github.com/pochu0083/blender-terrain-gen/pkg/suitability"
	"github.com/pochu0083/blender-terrain-gen/pkg/terrain"
)

func testRegion() geo.Bounds {
	return geo.NewBounds(geo.Pt(0, 0), geo.Pt(100, 100))
}

func testProfile() *profile.AssetProfile {
	return &profile.AssetProfile{
		ID: "tree", Category: profile.CategoryTrees,
		Radius: 2, Height: 8,
		MinSlope: 0, MaxSlope: 30,
		Clustering: profile.ClusterGrouped, MinSpacing: 1.5,
	}
}

func flatField(t testing.TB) *terrain.Field {
	t.Helper()
	f, err := terrain.Build(terrain.FlatSource{Height: 1}, terrain.Config{
		Bounds:      testRegion(),
		Resolution:  2,
		WaterHeight: -10,
	})
	if err != nil {
		t.Fatalf("building flat field: %v", err)
	}
	return f
}

func drain(s Sampler, max int) []Candidate {
	var out []Candidate
	for len(out) < max {
		c, ok := s.Next()
		if !ok {
			break
		}
		out = append(out, c)
	}
	return out
}

func TestPoissonMinDistance(t *testing.T) {
	cfg := Config{
		Region:  testRegion(),
		Profile: testProfile(),
		Target:  200,
		Budget:  4000,
		Spacing: 5,
		Rng:     rand.New(rand.NewSource(42)),
	}
	s, err := New(MethodPoisson, cfg)
	if err != nil {
		t.Fatal(err)
	}
	pts := drain(s, 4000)
	if len(pts) == 0 {
		t.Fatal("no candidates emitted")
	}

	for i := 0; i < len(pts); i++ {
		for j := i + 1; j < len(pts); j++ {
			if d := pts[i].Position.Distance(pts[j].Position); d < 5 {
				t.Fatalf("candidates %d and %d are %.2f apart, want >= 5", i, j, d)
			}
		}
	}
}

func TestPoissonPackingDensity(t *testing.T) {
	cfg := Config{
		Region:  testRegion(),
		Profile: testProfile(),
		Target:  10000,
		Budget:  10000,
		Spacing: 5,
		Rng:     rand.New(rand.NewSource(7)),
	}
	s, _ := New(MethodPoisson, cfg)
	pts := drain(s, 10000)

	// For minimum spacing r over area A, count is bounded above by the
	// hexagonal packing limit ~1.155*A/r^2 and a saturated Bridson run
	// lands well above a third of it.
	area := testRegion().Area()
	r := 5.0
	upper := 1.155 * area / (r * r)
	lower := 0.3 * area / (r * r)
	if float64(len(pts)) > upper {
		t.Errorf("count %d exceeds packing bound %.0f", len(pts), upper)
	}
	if float64(len(pts)) < lower {
		t.Errorf("count %d below saturation floor %.0f", len(pts), lower)
	}
	t.Logf("poisson filled %d points (bounds %.0f..%.0f)", len(pts), lower, upper)
}

func TestPoissonDeterminism(t *testing.T) {
	run := func() []Candidate {
		s, _ := New(MethodPoisson, Config{
			Region:  testRegion(),
			Profile: testProfile(),
			Target:  100,
			Budget:  2000,
			Spacing: 4,
			Rng:     rand.New(rand.NewSource(99)),
		})
		return drain(s, 2000)
	}
	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("runs differ in length: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Position != b[i].Position {
			t.Fatalf("candidate %d differs: %v vs %v", i, a[i].Position, b[i].Position)
		}
	}
}

func TestPoissonStaysInRegion(t *testing.T) {
	region := geo.NewBounds(geo.Pt(20, 30), geo.Pt(60, 80))
	s, _ := New(MethodPoisson, Config{
		Region:  region,
		Profile: testProfile(),
		Target:  500,
		Budget:  2000,
		Spacing: 3,
		Rng:     rand.New(rand.NewSource(3)),
	})
	for _, c := range drain(s, 2000) {
		if !region.Contains(c.Position) {
			t.Fatalf("candidate %v outside region", c.Position)
		}
	}
}

func TestWeightedRandomRespectsWeights(t *testing.T) {
	field := flatField(t)
	// Exclusion over the left half forces all weight to the right half.
	eval := suitability.New(nil, []geo.Polygon{
		geo.NewPolygon(geo.Pt(0, 0), geo.Pt(50, 0), geo.Pt(50, 100), geo.Pt(0, 100)),
	}, -10)

	s, _ := New(MethodWeighted, Config{
		Region:  testRegion(),
		Profile: testProfile(),
		Target:  100,
		Budget:  500,
		Spacing: 4,
		Rng:     rand.New(rand.NewSource(11)),
		Field:   field,
		Eval:    eval,
	})

	pts := drain(s, 500)
	if len(pts) == 0 {
		t.Fatal("no candidates emitted")
	}
	for _, c := range pts {
		// Cells centered in the excluded half carry zero weight; jitter can
		// push a point at most one cell width past the boundary.
		if c.Position.X < 46 {
			t.Fatalf("candidate %v drawn from zero-weight region", c.Position)
		}
	}
}

func TestWeightedRandomZeroWeightStops(t *testing.T) {
	field := flatField(t)
	// Exclude everything.
	eval := suitability.New(nil, []geo.Polygon{
		geo.NewPolygon(geo.Pt(-1, -1), geo.Pt(101, -1), geo.Pt(101, 101), geo.Pt(-1, 101)),
	}, -10)

	s, _ := New(MethodWeighted, Config{
		Region:  testRegion(),
		Profile: testProfile(),
		Target:  100,
		Budget:  500,
		Spacing: 4,
		Rng:     rand.New(rand.NewSource(11)),
		Field:   field,
		Eval:    eval,
	})
	if pts := drain(s, 10); len(pts) != 0 {
		t.Fatalf("fully excluded region emitted %d candidates", len(pts))
	}
}

func TestClusteringAssignsClusterIDs(t *testing.T) {
	s, _ := New(MethodCluster, Config{
		Region:  testRegion(),
		Profile: testProfile(), // grouped
		Target:  60,
		Budget:  600,
		Spacing: 3,
		Rng:     rand.New(rand.NewSource(5)),
	})

	pts := drain(s, 600)
	if len(pts) == 0 {
		t.Fatal("no candidates emitted")
	}

	perCluster := map[int]int{}
	for _, c := range pts {
		if c.ClusterID == 0 {
			t.Fatal("clustering candidates must carry a cluster id")
		}
		perCluster[c.ClusterID]++
	}
	if len(perCluster) < 2 {
		t.Errorf("expected multiple clusters, got %d", len(perCluster))
	}

	multi := 0
	for _, n := range perCluster {
		if n > 1 {
			multi++
		}
	}
	if multi == 0 {
		t.Error("grouped clustering should produce multi-member clusters")
	}
}

func TestClusteringSolitary(t *testing.T) {
	prof := testProfile()
	prof.Clustering = profile.ClusterSolitary

	s, _ := New(MethodCluster, Config{
		Region:  testRegion(),
		Profile: prof,
		Target:  20,
		Budget:  200,
		Spacing: 3,
		Rng:     rand.New(rand.NewSource(5)),
	})

	perCluster := map[int]int{}
	for _, c := range drain(s, 200) {
		perCluster[c.ClusterID]++
	}
	for id, n := range perCluster {
		if n != 1 {
			t.Errorf("solitary cluster %d has %d members, want 1", id, n)
		}
	}
}

func TestNoiseModulatedDeterministicAndBounded(t *testing.T) {
	run := func() []Candidate {
		s, _ := New(MethodNoise, Config{
			Region:  testRegion(),
			Profile: testProfile(),
			Target:  80,
			Budget:  1000,
			Spacing: 4,
			Rng:     rand.New(rand.NewSource(21)),
		})
		return drain(s, 1000)
	}

	a, b := run(), run()
	if len(a) == 0 {
		t.Fatal("no candidates emitted")
	}
	if len(a) != len(b) {
		t.Fatalf("runs differ in length: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Position != b[i].Position {
			t.Fatalf("candidate %d differs", i)
		}
		if !testRegion().Contains(a[i].Position) {
			t.Fatalf("candidate %v outside region", a[i].Position)
		}
	}
}

func TestNewRejectsUnknownMethod(t *testing.T) {
	_, err := New(Method("fibonacci"), Config{
		Region:  testRegion(),
		Profile: testProfile(),
		Rng:     rand.New(rand.NewSource(1)),
	})
	if err == nil {
		t.Fatal("unknown method should error")
	}
}
