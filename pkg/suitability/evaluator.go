// Package suitability scores how well a position matches an asset profile's
// terrain and proximity preferences.
package suitability

import (
	"math"

	"github.com/pochu0083/blender-terrain-gen/pkg/geo"
	"github.com/pochu0083/blender-terrain-gen/pkg/profile"
	"github.com/pochu0083/blender-terrain-gen/pkg/terrain"
)

// Score weights. Slope fit dominates; tag match and water proximity shade
// the result within the accepted band.
const (
	slopeWeight = 0.7
	tagWeight   = 0.15
	waterWeight = 0.15

	// waterFalloff is the height above the water plane at which the
	// water-proximity term reaches zero for water-seeking profiles.
	waterFalloff = 12.0
)

// Evaluator scores candidate positions. It holds only run-constant data
// (exclusion zones, the water plane); scoring is a pure function of its
// inputs, so identical inputs always produce identical output.
type Evaluator struct {
	exclusionCircles []geo.Circle
	exclusionPolys   []geo.Polygon
	waterHeight      float64
}

// New creates an evaluator for a run.
func New(circles []geo.Circle, polys []geo.Polygon, waterHeight float64) *Evaluator {
	return &Evaluator{
		exclusionCircles: circles,
		exclusionPolys:   polys,
		waterHeight:      waterHeight,
	}
}

// Excluded reports whether the position lies inside any declared exclusion
// zone.
func (e *Evaluator) Excluded(pos geo.Point2D) bool {
	for _, c := range e.exclusionCircles {
		if c.Contains(pos) {
			return true
		}
	}
	for _, p := range e.exclusionPolys {
		if p.Contains(pos) {
			return true
		}
	}
	return false
}

// Score evaluates a candidate position for a profile against its terrain
// sample. It returns a suitability score in [0,1] and a hard accept/reject
// decision; a rejected candidate always scores 0.
func (e *Evaluator) Score(pos geo.Point2D, prof *profile.AssetProfile, s terrain.Sample) (float64, bool) {
	// Hard rejects first: slope bounds, missing required feature tag,
	// exclusion zones, unwalkable ground.
	if s.SlopeDeg < prof.MinSlope || s.SlopeDeg > prof.MaxSlope {
		return 0, false
	}
	if len(prof.TerrainTags) > 0 && !prof.HasTag(profile.TerrainTag(s.Feature)) {
		return 0, false
	}
	if !s.Walkable {
		return 0, false
	}
	if e.Excluded(pos) {
		return 0, false
	}

	score := slopeWeight*slopeFit(s.SlopeDeg, prof) +
		tagWeight*tagFit(s.Feature, prof) +
		waterWeight*e.waterFit(s, prof)
	return clamp01(score), true
}

// slopeFit is 1.0 at the profile's ideal slope (the range midpoint) and
// decays smoothly to 0 toward the range edges.
func slopeFit(slopeDeg float64, prof *profile.AssetProfile) float64 {
	half := (prof.MaxSlope - prof.MinSlope) / 2
	if half <= 0 {
		return 1
	}
	ideal := prof.MinSlope + half
	d := math.Abs(slopeDeg-ideal) / half
	if d >= 1 {
		return 0
	}
	return 0.5 * (1 + math.Cos(math.Pi*d))
}

// tagFit grants the full bonus when the sampled feature matches a declared
// preference. Profiles with no tags are indifferent and take the full term.
func tagFit(f terrain.Feature, prof *profile.AssetProfile) float64 {
	if len(prof.TerrainTags) == 0 {
		return 1
	}
	if prof.HasTag(profile.TerrainTag(f)) {
		return 1
	}
	return 0
}

// waterFit rewards proximity to the water plane for water-seeking profiles
// (shoreline or valley preferences); other profiles take the full term.
func (e *Evaluator) waterFit(s terrain.Sample, prof *profile.AssetProfile) float64 {
	if !prof.HasTag(profile.TagShoreline) && !prof.HasTag(profile.TagValley) {
		return 1
	}
	above := s.Height - e.waterHeight
	if above <= 0 {
		return 1
	}
	return clamp01(1 - above/waterFalloff)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
