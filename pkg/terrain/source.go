package terrain

import (
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// HeightFunc adapts a plain function to the HeightSource interface.
type HeightFunc func(x, z float64) (float64, bool)

// HeightAt implements HeightSource.
func (fn HeightFunc) HeightAt(x, z float64) (float64, bool) {
	return fn(x, z)
}

// FlatSource is a constant-height surface, useful for tests and previews.
type FlatSource struct {
	Height float64
}

// HeightAt implements HeightSource.
func (s FlatSource) HeightAt(x, z float64) (float64, bool) {
	return s.Height, true
}

// NoiseSource is a seeded fractal-noise surface for standalone runs where the
// host supplies no terrain of its own.
type NoiseSource struct {
	noise     opensimplex.Noise
	Amplitude float64 // peak-to-valley height range
	Frequency float64 // base spatial frequency
	Octaves   int
}

// NewNoiseSource creates a deterministic noise surface from a seed.
func NewNoiseSource(seed int64, amplitude, frequency float64, octaves int) *NoiseSource {
	if octaves < 1 {
		octaves = 1
	}
	return &NoiseSource{
		noise:     opensimplex.NewNormalized(seed),
		Amplitude: amplitude,
		Frequency: frequency,
		Octaves:   octaves,
	}
}

// HeightAt implements HeightSource. Layers octaves of simplex noise, each at
// double the frequency and half the amplitude of the previous one.
func (s *NoiseSource) HeightAt(x, z float64) (float64, bool) {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0
	freq := s.Frequency

	for i := 0; i < s.Octaves; i++ {
		total += s.noise.Eval2(x*freq, z*freq) * amplitude
		maxVal += amplitude
		amplitude *= 0.5
		freq *= 2
	}
	return total / maxVal * s.Amplitude, true
}

// RampSource is a planar surface with a constant gradient, useful for slope
// tests. The height rises along +X at the given grade (rise over run).
type RampSource struct {
	Grade float64
}

// HeightAt implements HeightSource.
func (s RampSource) HeightAt(x, z float64) (float64, bool) {
	return x * s.Grade, true
}

// SlopeDeg returns the constant slope angle of the ramp in degrees.
func (s RampSource) SlopeDeg() float64 {
	return math.Atan(s.Grade) * 180 / math.Pi
}
