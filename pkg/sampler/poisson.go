package sampler

import (
	"math"

	"github.com/pochu0083/blender-terrain-gen/pkg/geo"
)

// poissonAttempts is the number of candidate draws around an active point
// before the point is retired.
const poissonAttempts = 30

// poissonDisk implements Bridson's algorithm: maintain an active list seeded
// from a random point, draw candidates in the annulus [r, 2r] around active
// points, and accept those that keep the minimum distance to every previously
// accepted point. Produces blue-noise coverage.
type poissonDisk struct {
	cfg      Config
	r        float64
	cellSize float64
	grid     map[[2]int]geo.Point2D
	active   []geo.Point2D
	emitted  int
	started  bool
}

func newPoissonDisk(cfg Config) *poissonDisk {
	r := cfg.Spacing
	if r <= 0 {
		r = 2 * cfg.Profile.Radius
	}
	return &poissonDisk{
		cfg:      cfg,
		r:        r,
		cellSize: r / math.Sqrt2,
		grid:     make(map[[2]int]geo.Point2D),
	}
}

func (p *poissonDisk) key(pt geo.Point2D) [2]int {
	return [2]int{
		int(math.Floor((pt.X - p.cfg.Region.Min.X) / p.cellSize)),
		int(math.Floor((pt.Z - p.cfg.Region.Min.Z) / p.cellSize)),
	}
}

// farEnough checks the candidate against previously emitted points (own grid)
// and against records already committed to the spatial index.
func (p *poissonDisk) farEnough(pt geo.Point2D) bool {
	k := p.key(pt)
	for dr := -2; dr <= 2; dr++ {
		for dc := -2; dc <= 2; dc++ {
			q, ok := p.grid[[2]int{k[0] + dc, k[1] + dr}]
			if ok && pt.Distance(q) < p.r {
				return false
			}
		}
	}
	if p.cfg.Index != nil {
		for _, it := range p.cfg.Index.QueryRadius(pt, p.r) {
			if pt.Distance(it.Position) < p.r {
				return false
			}
		}
	}
	return true
}

func (p *poissonDisk) accept(pt geo.Point2D) Candidate {
	p.grid[p.key(pt)] = pt
	p.active = append(p.active, pt)
	p.emitted++
	return Candidate{Position: pt, Profile: p.cfg.Profile}
}

// Next implements Sampler.
func (p *poissonDisk) Next() (Candidate, bool) {
	if p.emitted >= p.cfg.Budget {
		return Candidate{}, false
	}

	if !p.started {
		p.started = true
		// Seed the active list with a random point; retry a bounded number
		// of times in case the first draws land on committed footprints.
		for i := 0; i < poissonAttempts; i++ {
			pt := geo.Pt(
				p.cfg.Region.Min.X+p.cfg.Rng.Float64()*p.cfg.Region.Width(),
				p.cfg.Region.Min.Z+p.cfg.Rng.Float64()*p.cfg.Region.Depth(),
			)
			if p.farEnough(pt) {
				return p.accept(pt), true
			}
		}
		return Candidate{}, false
	}

	for len(p.active) > 0 {
		idx := p.cfg.Rng.Intn(len(p.active))
		base := p.active[idx]

		for i := 0; i < poissonAttempts; i++ {
			angle := 2 * math.Pi * p.cfg.Rng.Float64()
			dist := p.r * (1 + p.cfg.Rng.Float64())
			pt := geo.Pt(base.X+dist*math.Cos(angle), base.Z+dist*math.Sin(angle))

			if !p.cfg.Region.Contains(pt) {
				continue
			}
			if p.farEnough(pt) {
				return p.accept(pt), true
			}
		}

		// No candidate survived around this point; retire it.
		p.active[idx] = p.active[len(p.active)-1]
		p.active = p.active[:len(p.active)-1]
	}
	return Candidate{}, false
}
