package sampler

import (
	"math"

	"github.com/pochu0083/blender-terrain-gen/pkg/geo"
	"github.com/pochu0083/blender-terrain-gen/pkg/profile"
)

// clusterSizes returns the offspring count range for a clustering mode.
func clusterSizes(mode profile.Clustering) (min, spread int) {
	switch mode {
	case profile.ClusterGrouped:
		return 4, 8
	case profile.ClusterScattered:
		return 2, 4
	default: // solitary
		return 1, 0
	}
}

// clustering selects a sparse set of cluster centers via a coarse Poisson
// draw, then emits a variable-count set of offspring per center from a radial
// falloff distribution, denser near the center.
type clustering struct {
	cfg           Config
	centers       []geo.Point2D
	counts        []int
	clusterRadius float64
	centerIdx     int
	offspringLeft int
	emitted       int
}

func newClustering(cfg Config) *clustering {
	spacing := cfg.Spacing
	if spacing <= 0 {
		spacing = 2 * cfg.Profile.Radius
	}

	c := &clustering{
		cfg:           cfg,
		clusterRadius: spacing * 3,
	}

	minSize, spread := clusterSizes(cfg.Profile.Clustering)
	avgSize := float64(minSize) + float64(spread)/2
	numCenters := int(math.Ceil(float64(cfg.Target) / avgSize))
	if numCenters < 1 {
		numCenters = 1
	}

	// Coarse Poisson draw for centers: rejection-sample against previously
	// chosen centers at 2x the cluster radius.
	centerSpacing := 2 * c.clusterRadius
	for len(c.centers) < numCenters {
		placed := false
		for attempt := 0; attempt < poissonAttempts; attempt++ {
			pt := geo.Pt(
				cfg.Region.Min.X+cfg.Rng.Float64()*cfg.Region.Width(),
				cfg.Region.Min.Z+cfg.Rng.Float64()*cfg.Region.Depth(),
			)
			ok := true
			for _, q := range c.centers {
				if pt.Distance(q) < centerSpacing {
					ok = false
					break
				}
			}
			if ok {
				c.centers = append(c.centers, pt)
				n := minSize
				if spread > 0 {
					n += cfg.Rng.Intn(spread + 1)
				}
				c.counts = append(c.counts, n)
				placed = true
				break
			}
		}
		if !placed {
			break // region saturated with centers
		}
	}

	if len(c.counts) > 0 {
		c.offspringLeft = c.counts[0]
	}
	return c
}

// Next implements Sampler.
func (c *clustering) Next() (Candidate, bool) {
	for c.emitted < c.cfg.Budget && c.centerIdx < len(c.centers) {
		if c.offspringLeft <= 0 {
			c.centerIdx++
			if c.centerIdx >= len(c.centers) {
				break
			}
			c.offspringLeft = c.counts[c.centerIdx]
			continue
		}
		c.offspringLeft--

		center := c.centers[c.centerIdx]
		// Radial falloff: squaring the unit draw biases offspring toward
		// the center.
		u := c.cfg.Rng.Float64()
		dist := c.clusterRadius * u * u
		angle := 2 * math.Pi * c.cfg.Rng.Float64()
		pt := geo.Pt(center.X+dist*math.Cos(angle), center.Z+dist*math.Sin(angle))

		if !c.cfg.Region.Contains(pt) {
			continue
		}
		c.emitted++
		return Candidate{Position: pt, Profile: c.cfg.Profile, ClusterID: c.centerIdx + 1}, true
	}
	return Candidate{}, false
}
