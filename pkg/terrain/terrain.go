// Package terrain samples height, slope, normal, and feature classification
// over a bounded working area from a host-supplied height source.
package terrain

import (
	"errors"
	"fmt"
	"math"
	"runtime"
	"sync"

	"github.com/pochu0083/blender-terrain-gen/pkg/geo"
)

// Terrain construction failures. Both abort a generation run: without a
// baseline terrain there is nothing to place against.
var (
	ErrEmptySource    = errors.New("height source yielded no samples inside bounds")
	ErrDegenerateGrid = errors.New("resolution produces a degenerate grid")
)

// Feature is the derived classification of a terrain sample.
type Feature string

const (
	FeatureFlat      Feature = "flat"
	FeatureSlope     Feature = "slope"
	FeatureValley    Feature = "valley"
	FeatureRidge     Feature = "ridge"
	FeatureShoreline Feature = "shoreline"
)

// Sample is one analyzed point of the terrain. Immutable once computed.
type Sample struct {
	Position geo.Point2D `json:"position"`
	Height   float64     `json:"height"`
	SlopeDeg float64     `json:"slope_deg"`
	Normal   [3]float64  `json:"normal"` // x, y (up), z
	Feature  Feature     `json:"feature"`
	Walkable bool        `json:"walkable"`
}

// HeightSource supplies raw heights over the working area. Implementations
// return ok=false where no surface exists (for example a raycast miss).
type HeightSource interface {
	HeightAt(x, z float64) (height float64, ok bool)
}

// Config controls terrain analysis.
type Config struct {
	Bounds      geo.Bounds
	Resolution  float64 // grid step in world units
	WaterHeight float64 // height of the declared water plane
	Workers     int     // 0 means GOMAXPROCS
}

// Field is the analyzed terrain grid for one run. Read-only after Build.
type Field struct {
	cfg     Config
	cols    int
	rows    int
	samples []Sample // row-major, rows along Z
}

const (
	maxWalkableSlopeDeg = 45.0
	slopeFeatureDeg     = 15.0
	shorelineBand       = 0.75 // height band around the water plane
	featureWindow       = 3    // neighborhood half-width in cells
	featureDeviation    = 1.2  // standard deviations from window mean
)

// Build samples the height source over the bounds at the configured
// resolution and derives slope, normal, and feature classification for every
// grid point. Analysis is parallel across rows and complete when Build
// returns, so the returned Field is safe for concurrent readers.
func Build(src HeightSource, cfg Config) (*Field, error) {
	if cfg.Resolution <= 0 {
		return nil, fmt.Errorf("%w: resolution %.3f", ErrDegenerateGrid, cfg.Resolution)
	}
	if cfg.Bounds.IsDegenerate() {
		return nil, fmt.Errorf("%w: bounds %.1fx%.1f", ErrDegenerateGrid, cfg.Bounds.Width(), cfg.Bounds.Depth())
	}

	cols := int(cfg.Bounds.Width()/cfg.Resolution) + 1
	rows := int(cfg.Bounds.Depth()/cfg.Resolution) + 1
	if cols < 2 || rows < 2 {
		return nil, fmt.Errorf("%w: %dx%d cells", ErrDegenerateGrid, cols, rows)
	}

	f := &Field{
		cfg:     cfg,
		cols:    cols,
		rows:    rows,
		samples: make([]Sample, cols*rows),
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	// Pass 1: raw heights.
	heights := make([]float64, cols*rows)
	valid := make([]bool, cols*rows)
	f.parallelRows(workers, func(row int) {
		z := cfg.Bounds.Min.Z + float64(row)*cfg.Resolution
		for col := 0; col < cols; col++ {
			x := cfg.Bounds.Min.X + float64(col)*cfg.Resolution
			h, ok := src.HeightAt(x, z)
			i := row*cols + col
			heights[i] = h
			valid[i] = ok
		}
	})

	validCount := 0
	for _, ok := range valid {
		if ok {
			validCount++
		}
	}
	if validCount == 0 {
		return nil, ErrEmptySource
	}
	// Patch missing samples with the nearest valid neighbor along the row so
	// the derivative passes have a full grid to work with.
	patchMissing(heights, valid, cols, rows)

	// Pass 2: slope and normal from central finite differences.
	f.parallelRows(workers, func(row int) {
		z := cfg.Bounds.Min.Z + float64(row)*cfg.Resolution
		for col := 0; col < cols; col++ {
			x := cfg.Bounds.Min.X + float64(col)*cfg.Resolution
			i := row*cols + col

			dhdx := gradient(heights, cols, rows, col, row, 1, 0, cfg.Resolution)
			dhdz := gradient(heights, cols, rows, col, row, 0, 1, cfg.Resolution)

			nx, ny, nz := -dhdx, 1.0, -dhdz
			l := math.Sqrt(nx*nx + ny*ny + nz*nz)
			nx, ny, nz = nx/l, ny/l, nz/l

			slope := math.Acos(clamp(ny, -1, 1)) * 180 / math.Pi

			f.samples[i] = Sample{
				Position: geo.Pt(x, z),
				Height:   heights[i],
				SlopeDeg: slope,
				Normal:   [3]float64{nx, ny, nz},
			}
		}
	})

	// Pass 3: feature classification against the local neighborhood.
	f.parallelRows(workers, func(row int) {
		for col := 0; col < cols; col++ {
			i := row*cols + col
			s := &f.samples[i]
			s.Feature = classify(heights, cols, rows, col, row, s.SlopeDeg, s.Height, cfg.WaterHeight)
			s.Walkable = s.SlopeDeg <= maxWalkableSlopeDeg && s.Height > cfg.WaterHeight
		}
	})

	return f, nil
}

// parallelRows runs fn over every row using the given number of workers and
// waits for completion.
func (f *Field) parallelRows(workers int, fn func(row int)) {
	if workers > f.rows {
		workers = f.rows
	}
	var wg sync.WaitGroup
	rowCh := make(chan int)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for row := range rowCh {
				fn(row)
			}
		}()
	}
	for row := 0; row < f.rows; row++ {
		rowCh <- row
	}
	close(rowCh)
	wg.Wait()
}

// Bounds returns the working area the field was built over.
func (f *Field) Bounds() geo.Bounds {
	return f.cfg.Bounds
}

// Resolution returns the grid step.
func (f *Field) Resolution() float64 {
	return f.cfg.Resolution
}

// WaterHeight returns the declared water plane height.
func (f *Field) WaterHeight() float64 {
	return f.cfg.WaterHeight
}

// Sample returns the analyzed sample nearest to (x, z). Positions outside the
// bounds clamp to the edge of the grid.
func (f *Field) Sample(x, z float64) Sample {
	col := int(math.Round((x - f.cfg.Bounds.Min.X) / f.cfg.Resolution))
	row := int(math.Round((z - f.cfg.Bounds.Min.Z) / f.cfg.Resolution))
	col = clampInt(col, 0, f.cols-1)
	row = clampInt(row, 0, f.rows-1)
	return f.samples[row*f.cols+col]
}

// BatchSample returns analyzed samples for each of the given points.
func (f *Field) BatchSample(pts []geo.Point2D) []Sample {
	out := make([]Sample, len(pts))
	for i, pt := range pts {
		out[i] = f.Sample(pt.X, pt.Z)
	}
	return out
}

// HeightAt returns the bilinearly interpolated height at (x, z), used when
// snapping placements to the surface.
func (f *Field) HeightAt(x, z float64) float64 {
	fx := (x - f.cfg.Bounds.Min.X) / f.cfg.Resolution
	fz := (z - f.cfg.Bounds.Min.Z) / f.cfg.Resolution
	c0 := clampInt(int(math.Floor(fx)), 0, f.cols-1)
	r0 := clampInt(int(math.Floor(fz)), 0, f.rows-1)
	c1 := clampInt(c0+1, 0, f.cols-1)
	r1 := clampInt(r0+1, 0, f.rows-1)
	tx := clamp(fx-float64(c0), 0, 1)
	tz := clamp(fz-float64(r0), 0, 1)

	h00 := f.samples[r0*f.cols+c0].Height
	h10 := f.samples[r0*f.cols+c1].Height
	h01 := f.samples[r1*f.cols+c0].Height
	h11 := f.samples[r1*f.cols+c1].Height

	top := h00 + (h10-h00)*tx
	bot := h01 + (h11-h01)*tx
	return top + (bot-top)*tz
}

// gradient computes the central difference along (dc, dr), falling back to a
// one-sided difference at the grid edges.
func gradient(heights []float64, cols, rows, col, row, dc, dr int, res float64) float64 {
	c0, r0 := col-dc, row-dr
	c1, r1 := col+dc, row+dr
	span := 2.0
	if c0 < 0 || r0 < 0 {
		c0, r0 = col, row
		span = 1.0
	}
	if c1 >= cols || r1 >= rows {
		c1, r1 = col, row
		span = 1.0
	}
	if c0 == c1 && r0 == r1 {
		return 0
	}
	return (heights[r1*cols+c1] - heights[r0*cols+c0]) / (span * res)
}

// classify derives the feature tag for one grid point from its neighborhood
// height statistics and local slope.
func classify(heights []float64, cols, rows, col, row int, slopeDeg, height, waterHeight float64) Feature {
	if math.Abs(height-waterHeight) <= shorelineBand {
		return FeatureShoreline
	}

	mean, std := windowStats(heights, cols, rows, col, row)
	if std > 1e-6 {
		if height < mean-featureDeviation*std {
			return FeatureValley
		}
		if height > mean+featureDeviation*std {
			return FeatureRidge
		}
	}
	if slopeDeg > slopeFeatureDeg {
		return FeatureSlope
	}
	return FeatureFlat
}

// windowStats computes mean and standard deviation of heights in the fixed
// window around (col, row).
func windowStats(heights []float64, cols, rows, col, row int) (mean, std float64) {
	sum, sumSq := 0.0, 0.0
	n := 0
	for r := row - featureWindow; r <= row+featureWindow; r++ {
		if r < 0 || r >= rows {
			continue
		}
		for c := col - featureWindow; c <= col+featureWindow; c++ {
			if c < 0 || c >= cols {
				continue
			}
			h := heights[r*cols+c]
			sum += h
			sumSq += h * h
			n++
		}
	}
	if n == 0 {
		return 0, 0
	}
	mean = sum / float64(n)
	variance := sumSq/float64(n) - mean*mean
	if variance < 0 {
		variance = 0
	}
	return mean, math.Sqrt(variance)
}

// patchMissing fills invalid grid points with the nearest valid height along
// the row, scanning forward then backward.
func patchMissing(heights []float64, valid []bool, cols, rows int) {
	for row := 0; row < rows; row++ {
		base := row * cols
		last := math.NaN()
		for col := 0; col < cols; col++ {
			i := base + col
			if valid[i] {
				last = heights[i]
			} else if !math.IsNaN(last) {
				heights[i] = last
				valid[i] = true
			}
		}
		last = math.NaN()
		for col := cols - 1; col >= 0; col-- {
			i := base + col
			if valid[i] {
				last = heights[i]
			} else if !math.IsNaN(last) {
				heights[i] = last
				valid[i] = true
			}
		}
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
