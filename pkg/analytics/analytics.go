// Package analytics performs pre-placement feasibility analysis: given a
// generation request it estimates how many objects each category can actually
// hold and flags density targets the spacing rules make unreachable, before
// any terrain or placement work is spent.
package analytics

import (
	"math"

	"github.com/pochu0083/blender-terrain-gen/pkg/planner"
	"github.com/pochu0083/blender-terrain-gen/pkg/profile"
	"github.com/pochu0083/blender-terrain-gen/pkg/validation"
)

const (
	// hexPackingFactor is the density of the optimal hexagonal circle
	// packing, the hard ceiling for points with a minimum pairwise
	// distance: 2/sqrt(3) points per spacing^2 of area.
	hexPackingFactor = 2.0 / 1.7320508075688772

	// saturationFactor scales the hex ceiling down to what random
	// dart-throwing placement reaches before saturating (random
	// sequential adsorption levels off near 55% of the lattice bound).
	saturationFactor = 0.55

	// coverageWarnFraction is the ground-coverage fraction beyond which
	// the scene starts reading as overgrown.
	coverageWarnFraction = 0.5

	// maxGridSamples caps the terrain grid before memory use becomes a
	// problem for interactive runs.
	maxGridSamples = 4 << 20
)

// CategoryFeasibility holds the capacity analysis for one category.
type CategoryFeasibility struct {
	Category           profile.Category `json:"category"`
	Target             int              `json:"target"`
	ProfileCount       int              `json:"profile_count"`
	TightestSpacing    float64          `json:"tightest_spacing"`
	PackingBound       int              `json:"packing_bound"`
	SaturationEstimate int              `json:"saturation_estimate"`
	ExpectedCoverage   float64          `json:"expected_coverage_fraction"`
}

// ResolvedParameters holds the computed values from analytical resolution.
type ResolvedParameters struct {
	AreaTotal    float64 `json:"area_total"`
	AreaExcluded float64 `json:"area_excluded"`
	AreaUsable   float64 `json:"area_usable"`

	GridCols    int `json:"grid_cols"`
	GridRows    int `json:"grid_rows"`
	SampleCount int `json:"sample_count"`
	TotalTarget int `json:"total_target"`

	Categories       []CategoryFeasibility `json:"categories"`
	ExpectedCoverage float64               `json:"expected_coverage_fraction"`
}

// Resolve runs feasibility analysis on a generation request. It computes the
// usable area, the terrain grid dimensions, and per-category packing bounds,
// and returns the resolved parameters with a validation report.
func Resolve(req planner.Request) (*ResolvedParameters, *validation.Report) {
	report := validation.NewReport()

	areaTotal := req.Bounds.Area()
	areaExcluded := exclusionArea(req)
	areaUsable := areaTotal - areaExcluded
	if areaUsable < 0 {
		areaUsable = 0
	}

	params := &ResolvedParameters{
		AreaTotal:    areaTotal,
		AreaExcluded: areaExcluded,
		AreaUsable:   areaUsable,
	}

	if req.Resolution > 0 {
		params.GridCols = int(req.Bounds.Width()/req.Resolution) + 1
		params.GridRows = int(req.Bounds.Depth()/req.Resolution) + 1
		params.SampleCount = params.GridCols * params.GridRows
	}

	for _, cc := range req.Categories {
		cf := resolveCategory(cc, req.Profiles, areaUsable)
		params.Categories = append(params.Categories, cf)
		params.TotalTarget += cc.Target
		params.ExpectedCoverage += cf.ExpectedCoverage
	}

	validateAnalytical(params, report)
	return params, report
}

// resolveCategory computes packing bounds for one category. The bound uses
// the tightest self-spacing among the category's profiles, so it is the most
// permissive estimate the spacing rules allow.
func resolveCategory(cc planner.CategoryConfig, set *profile.Set, areaUsable float64) CategoryFeasibility {
	cf := CategoryFeasibility{Category: cc.Category, Target: cc.Target}
	if set == nil {
		return cf
	}

	profiles := set.Category(cc.Category)
	cf.ProfileCount = len(profiles)
	if len(profiles) == 0 || areaUsable <= 0 {
		return cf
	}

	spacingScale := cc.SpacingScale
	if spacingScale == 0 {
		spacingScale = 1
	}

	tightest := math.MaxFloat64
	for _, p := range profiles {
		if s := spacingScale * p.SpacingTo(p); s < tightest {
			tightest = s
		}
	}
	cf.TightestSpacing = tightest

	if tightest > 0 {
		bound := hexPackingFactor * areaUsable / (tightest * tightest)
		cf.PackingBound = int(bound)
		cf.SaturationEstimate = int(saturationFactor * bound)
	}

	// Expected footprint coverage at the requested target, split evenly
	// across the category's profiles.
	share := float64(cc.Target) / float64(len(profiles))
	for _, p := range profiles {
		r := p.Radius * meanVariantScale(p)
		cf.ExpectedCoverage += share * math.Pi * r * r / areaUsable
	}
	return cf
}

// meanVariantScale is the weight-averaged scale of a profile's variant
// table, or 1.0 when no variants are defined.
func meanVariantScale(p *profile.AssetProfile) float64 {
	if len(p.Variants) == 0 {
		return 1
	}
	total, weighted := 0.0, 0.0
	for _, v := range p.Variants {
		total += v.Weight
		weighted += v.Weight * v.Scale
	}
	if total <= 0 {
		return 1
	}
	return weighted / total
}

// exclusionArea sums the declared keep-out areas. Overlapping zones are
// counted twice, so the estimate errs toward caution.
func exclusionArea(req planner.Request) float64 {
	area := 0.0
	for _, c := range req.ExclusionCircles {
		area += math.Pi * c.Radius * c.Radius
	}
	for _, p := range req.ExclusionPolys {
		area += p.Area()
	}
	return area
}
