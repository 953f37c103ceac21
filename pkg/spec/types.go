package spec

import (
	"fmt"

	"github.com/pochu0083/blender-terrain-gen/pkg/geo"
	"github.com/pochu0083/blender-terrain-gen/pkg/planner"
	"github.com/pochu0083/blender-terrain-gen/pkg/profile"
	"github.com/pochu0083/blender-terrain-gen/pkg/sampler"
	"github.com/pochu0083/blender-terrain-gen/pkg/terrain"
)

// ScatterSpec is the top-level specification for a scatter scene.
type ScatterSpec struct {
	SpecVersion string        `yaml:"spec_version" json:"spec_version"`
	Name        string        `yaml:"name" json:"name"`
	Seed        int64         `yaml:"seed" json:"seed"`
	Terrain     TerrainDef    `yaml:"terrain" json:"terrain"`
	Categories  []CategoryDef `yaml:"categories" json:"categories"`
	Exclusions  ExclusionsDef `yaml:"exclusions" json:"exclusions"`
	POIs        []PointDef    `yaml:"points_of_interest" json:"points_of_interest"`
}

// TerrainDef describes the working area and the height source.
type TerrainDef struct {
	SizeX       float64 `yaml:"size_x" json:"size_x"`
	SizeZ       float64 `yaml:"size_z" json:"size_z"`
	Resolution  float64 `yaml:"resolution" json:"resolution"`
	WaterHeight float64 `yaml:"water_height" json:"water_height"`

	// Source selects the height source: "flat" or "noise".
	Source    string  `yaml:"source" json:"source"`
	Amplitude float64 `yaml:"amplitude" json:"amplitude"`
	Frequency float64 `yaml:"frequency" json:"frequency"`
	Octaves   int     `yaml:"octaves" json:"octaves"`
}

// CategoryDef is the per-category density block of a scatter spec.
type CategoryDef struct {
	Category     string  `yaml:"category" json:"category"`
	Target       int     `yaml:"target" json:"target"`
	Method       string  `yaml:"method,omitempty" json:"method,omitempty"`
	MinScore     float64 `yaml:"min_score,omitempty" json:"min_score,omitempty"`
	SpacingScale float64 `yaml:"spacing_scale,omitempty" json:"spacing_scale,omitempty"`
	MaxSlopeDeg  float64 `yaml:"max_slope_deg,omitempty" json:"max_slope_deg,omitempty"`
	MaxYawDeg    float64 `yaml:"max_yaw_deg,omitempty" json:"max_yaw_deg,omitempty"`
	ScaleJitter  float64 `yaml:"scale_jitter,omitempty" json:"scale_jitter,omitempty"`
	OrientToPOI  bool    `yaml:"orient_to_poi,omitempty" json:"orient_to_poi,omitempty"`
	Attempts     int     `yaml:"attempts,omitempty" json:"attempts,omitempty"`
}

// ExclusionsDef lists keep-out geometry.
type ExclusionsDef struct {
	Circles  []CircleDef  `yaml:"circles,omitempty" json:"circles,omitempty"`
	Polygons [][]PointDef `yaml:"polygons,omitempty" json:"polygons,omitempty"`
}

// CircleDef is a circular keep-out zone.
type CircleDef struct {
	X      float64 `yaml:"x" json:"x"`
	Z      float64 `yaml:"z" json:"z"`
	Radius float64 `yaml:"radius" json:"radius"`
}

// PointDef is a 2D point on the ground plane.
type PointDef struct {
	X float64 `yaml:"x" json:"x"`
	Z float64 `yaml:"z" json:"z"`
}

func (p PointDef) point() geo.Point2D {
	return geo.Pt(p.X, p.Z)
}

// ToRequest converts the spec into a planner request bound to the given
// profile set. Structural problems the planner cannot express (an unknown
// height source) error here; everything else is left to request validation.
func (s *ScatterSpec) ToRequest(profiles *profile.Set) (planner.Request, error) {
	var src terrain.HeightSource
	switch s.Terrain.Source {
	case "", "flat":
		src = terrain.FlatSource{}
	case "noise":
		amp := s.Terrain.Amplitude
		if amp == 0 {
			amp = 10
		}
		freq := s.Terrain.Frequency
		if freq == 0 {
			freq = 0.02
		}
		oct := s.Terrain.Octaves
		if oct == 0 {
			oct = 4
		}
		src = terrain.NewNoiseSource(s.Seed, amp, freq, oct)
	default:
		return planner.Request{}, fmt.Errorf("unknown terrain source %q", s.Terrain.Source)
	}

	req := planner.Request{
		Bounds:      geo.NewBounds(geo.Pt(0, 0), geo.Pt(s.Terrain.SizeX, s.Terrain.SizeZ)),
		Resolution:  s.Terrain.Resolution,
		WaterHeight: s.Terrain.WaterHeight,
		Seed:        s.Seed,
		Source:      src,
		Profiles:    profiles,
	}

	for _, cd := range s.Categories {
		req.Categories = append(req.Categories, planner.CategoryConfig{
			Category:     profile.Category(cd.Category),
			Target:       cd.Target,
			Method:       sampler.Method(cd.Method),
			MinScore:     cd.MinScore,
			SpacingScale: cd.SpacingScale,
			MaxSlopeDeg:  cd.MaxSlopeDeg,
			MaxYawDeg:    cd.MaxYawDeg,
			ScaleJitter:  cd.ScaleJitter,
			OrientToPOI:  cd.OrientToPOI,
			Attempts:     cd.Attempts,
		})
	}

	for _, c := range s.Exclusions.Circles {
		req.ExclusionCircles = append(req.ExclusionCircles, geo.Circle{
			Center: geo.Pt(c.X, c.Z),
			Radius: c.Radius,
		})
	}
	for _, poly := range s.Exclusions.Polygons {
		pts := make([]geo.Point2D, len(poly))
		for i, p := range poly {
			pts[i] = p.point()
		}
		req.ExclusionPolys = append(req.ExclusionPolys, geo.NewPolygon(pts...))
	}
	for _, p := range s.POIs {
		req.PointsOfInterest = append(req.PointsOfInterest, p.point())
	}

	return req, nil
}
