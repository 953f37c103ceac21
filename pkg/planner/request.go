package planner

import (
	"fmt"

	"github.com/pochu0083/blender-terrain-gen/pkg/geo"
	"github.com/pochu0083/blender-terrain-gen/pkg/profile"
	"github.com/pochu0083/blender-terrain-gen/pkg/sampler"
	"github.com/pochu0083/blender-terrain-gen/pkg/terrain"
	"github.com/pochu0083/blender-terrain-gen/pkg/validation"
)

// Default tuning for category configs that leave fields zero.
const (
	DefaultMinScore    = 0.2
	DefaultMaxYawDeg   = 360.0
	DefaultScaleJitter = 0.1
	defaultAttempts    = 20 // attempt budget per requested object
)

// CategoryConfig holds the per-category density target, distribution method,
// and override knobs for one run.
type CategoryConfig struct {
	Category profile.Category `json:"category" yaml:"category"`
	Target   int              `json:"target" yaml:"target"`
	Method   sampler.Method   `json:"method" yaml:"method"`

	// MinScore is the suitability threshold below which candidates are
	// discarded. Zero means DefaultMinScore.
	MinScore float64 `json:"min_score,omitempty" yaml:"min_score,omitempty"`

	// SpacingScale multiplies the pairwise spacing rule. Zero means 1.
	SpacingScale float64 `json:"spacing_scale,omitempty" yaml:"spacing_scale,omitempty"`

	// MaxSlopeDeg tightens every profile's slope ceiling for this category.
	// Zero means no override.
	MaxSlopeDeg float64 `json:"max_slope_deg,omitempty" yaml:"max_slope_deg,omitempty"`

	// MaxYawDeg bounds the random rotation. Zero means DefaultMaxYawDeg.
	MaxYawDeg float64 `json:"max_yaw_deg,omitempty" yaml:"max_yaw_deg,omitempty"`

	// ScaleJitter is the uniform jitter fraction applied on top of the
	// profile's variant scale. Negative disables jitter; zero means
	// DefaultScaleJitter.
	ScaleJitter float64 `json:"scale_jitter,omitempty" yaml:"scale_jitter,omitempty"`

	// OrientToPOI attaches a face_point behavior toward the nearest point
	// of interest to each committed record.
	OrientToPOI bool `json:"orient_to_poi,omitempty" yaml:"orient_to_poi,omitempty"`

	// Attempts caps candidate pulls for the category. Zero derives the
	// budget from the target.
	Attempts int `json:"attempts,omitempty" yaml:"attempts,omitempty"`
}

// Request is the complete input for one generation run. The caller owns all
// referenced data; the planner holds no state across runs.
type Request struct {
	Bounds      geo.Bounds
	Resolution  float64
	WaterHeight float64
	Seed        int64
	Workers     int

	Source   terrain.HeightSource
	Profiles *profile.Set

	Categories       []CategoryConfig
	ExclusionCircles []geo.Circle
	ExclusionPolys   []geo.Polygon
	PointsOfInterest []geo.Point2D

	// CellSizeFactor scales the spatial index cell edge relative to the
	// largest footprint radius. Zero means 2.
	CellSizeFactor float64
}

// Validate performs schema-level validation of the request and its profile
// set. Errors here reject the run before any terrain or placement work.
func (r *Request) Validate() *validation.Report {
	rep := validation.NewReport()

	if r.Bounds.IsDegenerate() {
		rep.AddError(validation.Result{
			Level:       validation.LevelSchema,
			Message:     "bounds enclose no area",
			Path:        "bounds",
			ActualValue: fmt.Sprintf("%.1fx%.1f", r.Bounds.Width(), r.Bounds.Depth()),
			Expected:    "positive width and depth",
		})
	}
	if r.Resolution <= 0 {
		rep.AddError(validation.Result{
			Level:       validation.LevelSchema,
			Message:     "resolution must be > 0",
			Path:        "resolution",
			ActualValue: r.Resolution,
			Expected:    "> 0",
		})
	}
	if r.Source == nil {
		rep.AddError(validation.Result{
			Level:    validation.LevelSchema,
			Message:  "height source is required",
			Path:     "source",
			Expected: "non-nil terrain.HeightSource",
		})
	}
	if r.Profiles == nil || r.Profiles.Len() == 0 {
		rep.AddError(validation.Result{
			Level:    validation.LevelSchema,
			Message:  "profile set is empty",
			Path:     "profiles",
			Expected: "at least one profile",
		})
	} else {
		rep.Merge(profile.ValidateSet(r.Profiles))
	}

	seen := make(map[profile.Category]bool)
	for i, cc := range r.Categories {
		path := fmt.Sprintf("categories[%d]", i)
		if !cc.Category.Valid() {
			rep.AddError(validation.Result{
				Level:       validation.LevelSchema,
				Message:     fmt.Sprintf("unknown category %q", cc.Category),
				Path:        path + ".category",
				ActualValue: string(cc.Category),
				Expected:    "rocks | trees | grass | animals",
			})
		} else if seen[cc.Category] {
			rep.AddError(validation.Result{
				Level:    validation.LevelSchema,
				Message:  fmt.Sprintf("category %s configured twice", cc.Category),
				Path:     path + ".category",
				Expected: "one config per category",
			})
		}
		seen[cc.Category] = true

		if cc.Target < 0 {
			rep.AddError(validation.Result{
				Level:       validation.LevelSchema,
				Message:     fmt.Sprintf("category %s: target must be >= 0", cc.Category),
				Path:        path + ".target",
				ActualValue: cc.Target,
				Expected:    ">= 0",
			})
		}
		if cc.Method != "" && !cc.Method.Valid() {
			rep.AddError(validation.Result{
				Level:       validation.LevelSchema,
				Message:     fmt.Sprintf("category %s: unknown method %q", cc.Category, cc.Method),
				Path:        path + ".method",
				ActualValue: string(cc.Method),
				Expected:    "poisson | weighted | cluster | noise",
			})
		}
		if cc.SpacingScale < 0 {
			rep.AddError(validation.Result{
				Level:       validation.LevelSchema,
				Message:     fmt.Sprintf("category %s: spacing_scale must be >= 0", cc.Category),
				Path:        path + ".spacing_scale",
				ActualValue: cc.SpacingScale,
				Expected:    ">= 0",
			})
		}
		if cc.MinScore < 0 || cc.MinScore > 1 {
			rep.AddError(validation.Result{
				Level:       validation.LevelSchema,
				Message:     fmt.Sprintf("category %s: min_score must be in [0,1]", cc.Category),
				Path:        path + ".min_score",
				ActualValue: cc.MinScore,
				Expected:    "0..1",
			})
		}
	}

	for i, c := range r.ExclusionCircles {
		if c.Radius < 0 {
			rep.AddError(validation.Result{
				Level:       validation.LevelSchema,
				Message:     "exclusion circle radius must be >= 0",
				Path:        fmt.Sprintf("exclusion_circles[%d].radius", i),
				ActualValue: c.Radius,
				Expected:    ">= 0",
			})
		}
	}

	return rep
}

// defaultMethod returns the distribution strategy used when the config names
// none, derived from the profile's clustering mode.
func defaultMethod(mode profile.Clustering) sampler.Method {
	switch mode {
	case profile.ClusterGrouped:
		return sampler.MethodCluster
	case profile.ClusterSolitary:
		return sampler.MethodWeighted
	default:
		return sampler.MethodPoisson
	}
}
