// Package planner orchestrates a generation run: terrain analysis, the
// per-category placement loop, and result assembly. It is the only writer of
// the spatial index.
package planner

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/pochu0083/blender-terrain-gen/pkg/geo"
	"github.com/pochu0083/blender-terrain-gen/pkg/profile"
	"github.com/pochu0083/blender-terrain-gen/pkg/sampler"
	"github.com/pochu0083/blender-terrain-gen/pkg/spatial"
	"github.com/pochu0083/blender-terrain-gen/pkg/suitability"
	"github.com/pochu0083/blender-terrain-gen/pkg/terrain"
	"github.com/pochu0083/blender-terrain-gen/pkg/validation"
)

// ConfigError reports an invalid request or profile set. The run is rejected
// before any terrain or placement work begins.
type ConfigError struct {
	Report *validation.Report
}

func (e *ConfigError) Error() string {
	return "invalid generation request: " + e.Report.Summary
}

// Generate runs the full placement pipeline for one request. On success (or
// cooperative cancellation) it returns an internally consistent result; a
// structural failure returns a nil result and an error carrying diagnostic
// context.
func Generate(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()

	// Pending -> validation gate.
	schemaReport := req.Validate()
	if !schemaReport.Valid {
		return nil, &ConfigError{Report: schemaReport}
	}

	// Analyzing: build the terrain field. Failure here means there is no
	// baseline terrain to reason about, so no partial result exists.
	field, err := terrain.Build(req.Source, terrain.Config{
		Bounds:      req.Bounds,
		Resolution:  req.Resolution,
		WaterHeight: req.WaterHeight,
		Workers:     req.Workers,
	})
	if err != nil {
		return nil, fmt.Errorf("terrain analysis: %w", err)
	}

	run := &run{
		req:    req,
		field:  field,
		eval:   suitability.New(req.ExclusionCircles, req.ExclusionPolys, req.WaterHeight),
		index:  spatial.NewIndex(req.Bounds, cellSize(req)),
		report: schemaReport,
		result: &Result{State: StatePlacing, Seed: req.Seed},
	}

	// Placing: categories in fixed ecological precedence order.
	cancelled := run.placeAll(ctx)

	// Finalizing.
	run.result.State = StateFinalizing
	run.result.finalizeCoverage(req.Bounds.Area(), req.Profiles)
	run.report.AddInfo(validation.Result{
		Level: validation.LevelSpatial,
		Message: fmt.Sprintf("placed %d objects across %d categories (%.1f%% candidate acceptance)",
			len(run.result.Records), len(run.result.Categories), run.result.Coverage.AcceptancePc),
	})
	run.result.Report = run.report
	run.result.Elapsed = time.Since(start)

	if cancelled {
		run.result.State = StateCancelled
	} else {
		run.result.State = StateDone
	}
	return run.result, nil
}

// cellSize derives the spatial index cell edge from the largest active
// footprint radius.
func cellSize(req Request) float64 {
	factor := req.CellSizeFactor
	if factor <= 0 {
		factor = 2
	}
	size := factor * req.Profiles.MaxRadius()
	if size <= 0 {
		size = 1
	}
	return size
}

// run carries the mutable state of one generation run.
type run struct {
	req    Request
	field  *terrain.Field
	eval   *suitability.Evaluator
	index  *spatial.Index
	report *validation.Report
	result *Result
}

// placeAll walks the fixed category order. Returns true if the run was
// cancelled; committed records are preserved either way.
func (r *run) placeAll(ctx context.Context) bool {
	for catIdx, cat := range profile.PlacementOrder {
		cfg, ok := r.configFor(cat)
		if !ok || cfg.Target <= 0 {
			continue
		}
		if ctx.Err() != nil {
			return true
		}
		if cancelled := r.placeCategory(ctx, catIdx, cfg); cancelled {
			return true
		}
	}
	return false
}

func (r *run) configFor(cat profile.Category) (CategoryConfig, bool) {
	for _, cc := range r.req.Categories {
		if cc.Category == cat {
			return cc, true
		}
	}
	return CategoryConfig{}, false
}

// placeCategory distributes the category target across its profiles and runs
// the candidate loop for each. Returns true on cancellation.
func (r *run) placeCategory(ctx context.Context, catIdx int, cfg CategoryConfig) bool {
	profiles := r.req.Profiles.Category(cfg.Category)
	stats := CategoryStats{Category: cfg.Category, Target: cfg.Target}

	if len(profiles) == 0 {
		r.report.AddWarning(validation.Result{
			Level:    validation.LevelSpatial,
			Category: string(cfg.Category),
			Message:  fmt.Sprintf("category %s requested but no profiles are loaded for it", cfg.Category),
		})
		r.result.Categories = append(r.result.Categories, stats)
		return false
	}

	cancelled := false
	for profIdx, prof := range profiles {
		share := cfg.Target / len(profiles)
		if profIdx < cfg.Target%len(profiles) {
			share++
		}
		if share == 0 {
			continue
		}
		if r.placeProfile(ctx, catIdx, profIdx, prof, cfg, share, &stats) {
			cancelled = true
			break
		}
	}

	if !cancelled && stats.Placed < cfg.Target {
		stats.Saturated = true
		r.report.AddWarning(validation.Result{
			Level:       validation.LevelSpatial,
			Category:    string(cfg.Category),
			Message:     fmt.Sprintf("category %s saturated: placed %d of %d within the attempt budget", cfg.Category, stats.Placed, cfg.Target),
			ActualValue: stats.Placed,
			Expected:    fmt.Sprintf("%d", cfg.Target),
		})
	}

	r.result.Categories = append(r.result.Categories, stats)
	return cancelled
}

// placeProfile pulls candidates for one profile until its share is met, the
// sampler is exhausted, or the attempt budget runs out. Returns true on
// cancellation.
func (r *run) placeProfile(ctx context.Context, catIdx, profIdx int, prof *profile.AssetProfile, cfg CategoryConfig, share int, stats *CategoryStats) bool {
	rng := rand.New(rand.NewSource(streamSeed(r.req.Seed, catIdx, profIdx)))

	budget := cfg.Attempts
	if budget <= 0 {
		budget = share * defaultAttempts
	}

	method := cfg.Method
	if method == "" {
		method = defaultMethod(prof.Clustering)
	}

	spacingScale := cfg.SpacingScale
	if spacingScale == 0 {
		spacingScale = 1
	}

	s, err := sampler.New(method, sampler.Config{
		Region:  r.req.Bounds,
		Profile: prof,
		Target:  share,
		Budget:  budget,
		Spacing: spacingScale * prof.SpacingTo(prof),
		Rng:     rng,
		Field:   r.field,
		Eval:    r.eval,
		Index:   r.index,
	})
	if err != nil {
		// Method validity is checked at request validation; this guards
		// future strategies.
		r.report.AddWarning(validation.Result{
			Level:    validation.LevelSpatial,
			Category: string(cfg.Category),
			Message:  err.Error(),
		})
		return false
	}

	minScore := cfg.MinScore
	if minScore == 0 {
		minScore = DefaultMinScore
	}

	// The widest possible spacing against any committed record bounds the
	// index query radius.
	queryRadius := spacingScale * maxSpacingMult(r.req.Profiles, prof) * (prof.Radius + r.req.Profiles.MaxRadius())

	placed, pulled := 0, 0
	for placed < share && pulled < budget {
		if ctx.Err() != nil {
			return true
		}

		cand, ok := s.Next()
		if !ok {
			break
		}
		pulled++
		stats.CandidatesPulled++

		ts := r.field.Sample(cand.Position.X, cand.Position.Z)

		score, accept := r.eval.Score(cand.Position, prof, ts)
		if !accept {
			stats.RejectedSuitability++
			continue
		}
		if cfg.MaxSlopeDeg > 0 && ts.SlopeDeg > cfg.MaxSlopeDeg {
			stats.RejectedSuitability++
			continue
		}
		if score < minScore {
			stats.RejectedLowScore++
			continue
		}
		if r.collides(cand.Position, prof, spacingScale, queryRadius) {
			stats.RejectedCollision++
			continue
		}

		r.commit(cand, prof, cfg, ts, score, rng)
		placed++
		stats.Placed++
	}
	return false
}

// collides performs the exact pairwise spacing check against index
// candidates near the position.
func (r *run) collides(pos geo.Point2D, prof *profile.AssetProfile, spacingScale, queryRadius float64) bool {
	for _, it := range r.index.QueryRadius(pos, queryRadius) {
		other := r.req.Profiles.ByID(it.ProfileID)
		required := spacingScale * prof.SpacingTo(other)
		if pos.Distance(it.Position) < required {
			return true
		}
	}
	return false
}

// commit finalizes a candidate: snap to the terrain surface, draw rotation
// and scale from the seeded stream, insert into the index, and append to the
// ordered result.
func (r *run) commit(cand sampler.Candidate, prof *profile.AssetProfile, cfg CategoryConfig, ts terrain.Sample, score float64, rng *rand.Rand) {
	id := len(r.result.Records)

	maxYaw := cfg.MaxYawDeg
	if maxYaw == 0 {
		maxYaw = DefaultMaxYawDeg
	}
	yaw := rng.Float64() * maxYaw

	scale := variantScale(prof, rng)
	jitter := cfg.ScaleJitter
	if jitter == 0 {
		jitter = DefaultScaleJitter
	}
	if jitter > 0 {
		scale *= 1 + (rng.Float64()*2-1)*jitter
	}

	rec := PlacementRecord{
		ID:        id,
		Category:  prof.Category,
		ProfileID: prof.ID,
		Position:  cand.Position,
		Height:    r.field.HeightAt(cand.Position.X, cand.Position.Z),
		Normal:    ts.Normal,
		YawDeg:    yaw,
		Scale:     scale,
		SlopeDeg:  ts.SlopeDeg,
		Score:     score,
		ClusterID: cand.ClusterID,
	}

	if cfg.OrientToPOI && len(r.req.PointsOfInterest) > 0 {
		target := nearestPoint(cand.Position, r.req.PointsOfInterest)
		rec.YawDeg = target.Sub(cand.Position).Angle() * 180 / math.Pi
		rec.Behavior = &Behavior{Kind: BehaviorFacePoint, Target: target}
	}

	r.index.Insert(spatial.Item{
		Ref:        id,
		Position:   cand.Position,
		Radius:     prof.Radius,
		SpacingMul: prof.MinSpacing,
		Category:   string(prof.Category),
		ProfileID:  prof.ID,
	})
	r.result.Records = append(r.result.Records, rec)
}

// variantScale draws a scale from the profile's weighted variant table, or
// 1.0 when the profile defines none.
func variantScale(prof *profile.AssetProfile, rng *rand.Rand) float64 {
	if len(prof.Variants) == 0 {
		return 1
	}
	total := 0.0
	for _, v := range prof.Variants {
		total += v.Weight
	}
	if total <= 0 {
		return 1
	}
	u := rng.Float64() * total
	for _, v := range prof.Variants {
		u -= v.Weight
		if u <= 0 {
			return v.Scale
		}
	}
	return prof.Variants[len(prof.Variants)-1].Scale
}

// maxSpacingMult returns the largest spacing multiplier that could pair with
// prof across the whole set.
func maxSpacingMult(set *profile.Set, prof *profile.AssetProfile) float64 {
	max := prof.MinSpacing
	for _, p := range set.All() {
		if p.MinSpacing > max {
			max = p.MinSpacing
		}
	}
	return max
}

// nearestPoint returns the point of interest closest to pos.
func nearestPoint(pos geo.Point2D, pts []geo.Point2D) geo.Point2D {
	best := pts[0]
	bestD := pos.DistanceSq(best)
	for _, p := range pts[1:] {
		if d := pos.DistanceSq(p); d < bestD {
			best = p
			bestD = d
		}
	}
	return best
}

// streamSeed derives a deterministic per-(category, profile) seed from the
// run seed, keeping each placement stream independent of the others.
func streamSeed(seed int64, catIdx, profIdx int) int64 {
	return seed + int64(catIdx)*1_000_003 + int64(profIdx)*7919
}
