// Package sampler provides the candidate-generation strategies used during
// placement: Poisson-disk, weighted-random, clustering, and noise-modulated
// distributions. Every strategy draws exclusively from a seeded generator and
// produces a lazy, finite candidate sequence.
package sampler

import (
	"fmt"
	"math/rand"

	"github.com/pochu0083/blender-terrain-gen/pkg/geo"
	"github.com/pochu0083/blender-terrain-gen/pkg/profile"
	"github.com/pochu0083/blender-terrain-gen/pkg/spatial"
	"github.com/pochu0083/blender-terrain-gen/pkg/suitability"
	"github.com/pochu0083/blender-terrain-gen/pkg/terrain"
)

// Method selects a distribution strategy.
type Method string

const (
	MethodPoisson  Method = "poisson"
	MethodWeighted Method = "weighted"
	MethodCluster  Method = "cluster"
	MethodNoise    Method = "noise"
)

// Valid reports whether m names a known strategy.
func (m Method) Valid() bool {
	switch m {
	case MethodPoisson, MethodWeighted, MethodCluster, MethodNoise:
		return true
	}
	return false
}

// Candidate is a proposed position for one profile. The planner either
// promotes it to a placement record or discards it.
type Candidate struct {
	Position  geo.Point2D
	Profile   *profile.AssetProfile
	ClusterID int // 0 when the candidate belongs to no cluster
}

// Sampler produces candidates one at a time. Next returns false when the
// sequence is exhausted.
type Sampler interface {
	Next() (Candidate, bool)
}

// Config carries everything a strategy needs: the region, density parameters,
// the profile, the seeded random stream, and read access to the terrain
// field, evaluator, and spatial index.
type Config struct {
	Region  geo.Bounds
	Profile *profile.AssetProfile
	Target  int     // requested object count
	Budget  int     // maximum candidates to emit before giving up
	Spacing float64 // minimum center distance between same-profile instances

	Rng   *rand.Rand
	Field *terrain.Field
	Eval  *suitability.Evaluator
	Index *spatial.Index
}

// New constructs the strategy named by method.
func New(method Method, cfg Config) (Sampler, error) {
	if cfg.Budget <= 0 {
		cfg.Budget = cfg.Target * defaultBudgetFactor
	}
	switch method {
	case MethodPoisson:
		return newPoissonDisk(cfg), nil
	case MethodWeighted:
		return newWeightedRandom(cfg), nil
	case MethodCluster:
		return newClustering(cfg), nil
	case MethodNoise:
		return newNoiseModulated(cfg), nil
	default:
		return nil, fmt.Errorf("unknown distribution method %q", method)
	}
}

// defaultBudgetFactor bounds how many candidates a strategy may emit relative
// to the requested count before the category is declared saturated.
const defaultBudgetFactor = 20
