package planner

import (
	"math"
	"time"

	"github.com/pochu0083/blender-terrain-gen/pkg/profile"
	"github.com/pochu0083/blender-terrain-gen/pkg/validation"
)

// State is the planner's lifecycle position. Pending through Done is the
// normal path; Cancelled and Failed are alternative terminals.
type State string

const (
	StatePending    State = "pending"
	StateAnalyzing  State = "analyzing"
	StatePlacing    State = "placing"
	StateFinalizing State = "finalizing"
	StateDone       State = "done"
	StateCancelled  State = "cancelled"
	StateFailed     State = "failed"
)

// CategoryStats summarizes one category's placement outcome.
type CategoryStats struct {
	Category            profile.Category `json:"category"`
	Target              int              `json:"target"`
	Placed              int              `json:"placed"`
	CandidatesPulled    int              `json:"candidates_pulled"`
	RejectedSuitability int              `json:"rejected_suitability"`
	RejectedLowScore    int              `json:"rejected_low_score"`
	RejectedCollision   int              `json:"rejected_collision"`
	Saturated           bool             `json:"saturated"`
	Density             float64          `json:"density_per_unit_area"`
	CoverageFraction    float64          `json:"coverage_fraction"`
}

// Coverage aggregates footprint coverage over the working area.
type Coverage struct {
	AreaTotal    float64 `json:"area_total"`
	AreaCovered  float64 `json:"area_covered"`
	Fraction     float64 `json:"fraction"`
	TotalPlaced  int     `json:"total_placed"`
	TotalPulled  int     `json:"total_candidates"`
	AcceptancePc float64 `json:"acceptance_pct"`
}

// Result is the completed output of a generation run: the ordered placement
// records plus the generation report.
type Result struct {
	State      State              `json:"state"`
	Seed       int64              `json:"seed"`
	Records    []PlacementRecord  `json:"records"`
	Categories []CategoryStats    `json:"categories"`
	Coverage   Coverage           `json:"coverage"`
	Report     *validation.Report `json:"report"`
	Elapsed    time.Duration      `json:"elapsed_ns"`
}

// finalizeCoverage fills the aggregate coverage block from the per-category
// stats and the committed records.
func (res *Result) finalizeCoverage(area float64, set *profile.Set) {
	covered := 0.0
	for _, rec := range res.Records {
		p := set.ByID(rec.ProfileID)
		if p == nil {
			continue
		}
		r := p.Radius * rec.Scale
		covered += math.Pi * r * r
	}

	pulled := 0
	for i := range res.Categories {
		cs := &res.Categories[i]
		pulled += cs.CandidatesPulled
		if area > 0 {
			cs.Density = float64(cs.Placed) / area
		}
		catCovered := 0.0
		for _, rec := range res.Records {
			if rec.Category != cs.Category {
				continue
			}
			if p := set.ByID(rec.ProfileID); p != nil {
				r := p.Radius * rec.Scale
				catCovered += math.Pi * r * r
			}
		}
		if area > 0 {
			cs.CoverageFraction = catCovered / area
		}
	}

	res.Coverage = Coverage{
		AreaTotal:   area,
		AreaCovered: covered,
		TotalPlaced: len(res.Records),
		TotalPulled: pulled,
	}
	if area > 0 {
		res.Coverage.Fraction = covered / area
	}
	if pulled > 0 {
		res.Coverage.AcceptancePc = 100 * float64(len(res.Records)) / float64(pulled)
	}
}
