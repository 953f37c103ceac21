package sampler

import (
	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/pochu0083/blender-terrain-gen/pkg/geo"
)

// noiseFrequency is the spatial frequency of the density field. Low enough
// that density gradients span a meaningful fraction of typical regions.
const noiseFrequency = 0.03

// noiseModulated evaluates a coherent, seed-derived noise field over the
// region and emits a grid point as a candidate when the local noise value
// exceeds a density threshold, yielding biome-like density gradients.
type noiseModulated struct {
	cfg        Config
	noise      opensimplex.Noise
	step       float64
	threshold  float64
	cols, rows int
	cursor     int
	emitted    int
}

func newNoiseModulated(cfg Config) *noiseModulated {
	step := cfg.Spacing
	if step <= 0 {
		step = 2 * cfg.Profile.Radius
	}

	cols := int(cfg.Region.Width()/step) + 1
	rows := int(cfg.Region.Depth()/step) + 1

	// Pick the threshold from the requested density: emitting target points
	// out of cols*rows grid cells needs roughly that fraction of the
	// normalized noise range above the cutoff.
	fraction := 0.5
	if cfg.Target > 0 && cols*rows > 0 {
		fraction = float64(cfg.Target) / float64(cols*rows)
		if fraction > 0.9 {
			fraction = 0.9
		}
		if fraction < 0.05 {
			fraction = 0.05
		}
	}

	return &noiseModulated{
		cfg:       cfg,
		noise:     opensimplex.NewNormalized(cfg.Rng.Int63()),
		step:      step,
		threshold: 1 - fraction,
		cols:      cols,
		rows:      rows,
	}
}

// Next implements Sampler. Grid points are visited in row-major order so the
// sequence is deterministic for a given seed stream.
func (n *noiseModulated) Next() (Candidate, bool) {
	for n.emitted < n.cfg.Budget && n.cursor < n.cols*n.rows {
		col := n.cursor % n.cols
		row := n.cursor / n.cols
		n.cursor++

		x := n.cfg.Region.Min.X + float64(col)*n.step
		z := n.cfg.Region.Min.Z + float64(row)*n.step

		if n.noise.Eval2(x*noiseFrequency, z*noiseFrequency) < n.threshold {
			continue
		}

		// Jitter within the cell so rows don't read as a lattice.
		pt := geo.Pt(
			x+(n.cfg.Rng.Float64()-0.5)*n.step,
			z+(n.cfg.Rng.Float64()-0.5)*n.step,
		)
		if !n.cfg.Region.Contains(pt) {
			continue
		}
		n.emitted++
		return Candidate{Position: pt, Profile: n.cfg.Profile}, true
	}
	return Candidate{}, false
}
