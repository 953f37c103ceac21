package sampler

import (
	"sort"

	"github.com/pochu0083/blender-terrain-gen/pkg/geo"
)

// weightedRandom precomputes a suitability-weighted density grid over the
// region, then draws cells proportional to weight and jitters within the
// chosen cell.
type weightedRandom struct {
	cfg        Config
	cellSize   float64
	cols, rows int
	cumulative []float64 // running sum of cell weights, len cols*rows
	total      float64
	emitted    int
}

func newWeightedRandom(cfg Config) *weightedRandom {
	cellSize := cfg.Spacing
	if cellSize <= 0 {
		cellSize = 2 * cfg.Profile.Radius
	}
	if cfg.Field != nil && cellSize < cfg.Field.Resolution() {
		cellSize = cfg.Field.Resolution()
	}

	w := &weightedRandom{
		cfg:      cfg,
		cellSize: cellSize,
		cols:     int(cfg.Region.Width()/cellSize) + 1,
		rows:     int(cfg.Region.Depth()/cellSize) + 1,
	}

	w.cumulative = make([]float64, w.cols*w.rows)
	running := 0.0
	for row := 0; row < w.rows; row++ {
		for col := 0; col < w.cols; col++ {
			center := geo.Pt(
				cfg.Region.Min.X+(float64(col)+0.5)*cellSize,
				cfg.Region.Min.Z+(float64(row)+0.5)*cellSize,
			)
			weight := 0.0
			if cfg.Region.Contains(center) && cfg.Eval != nil && cfg.Field != nil {
				s := cfg.Field.Sample(center.X, center.Z)
				if score, ok := cfg.Eval.Score(center, cfg.Profile, s); ok {
					weight = score
				}
			}
			running += weight
			w.cumulative[row*w.cols+col] = running
		}
	}
	w.total = running
	return w
}

// Next implements Sampler.
func (w *weightedRandom) Next() (Candidate, bool) {
	if w.emitted >= w.cfg.Budget || w.total <= 0 {
		return Candidate{}, false
	}

	u := w.cfg.Rng.Float64() * w.total
	i := sort.SearchFloat64s(w.cumulative, u)
	if i >= len(w.cumulative) {
		i = len(w.cumulative) - 1
	}
	col := i % w.cols
	row := i / w.cols

	pt := geo.Pt(
		w.cfg.Region.Min.X+(float64(col)+w.cfg.Rng.Float64())*w.cellSize,
		w.cfg.Region.Min.Z+(float64(row)+w.cfg.Rng.Float64())*w.cellSize,
	)
	pt = w.cfg.Region.Clamp(pt)

	w.emitted++
	return Candidate{Position: pt, Profile: w.cfg.Profile}, true
}
