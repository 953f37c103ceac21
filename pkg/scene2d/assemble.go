package scene2d

import (
	"fmt"
	"math"
	"time"

	"github.com/pochu0083/blender-terrain-gen/pkg/planner"
	"github.com/pochu0083/blender-terrain-gen/pkg/profile"
)

// previewGridMax caps the preview height grid; the full analysis grid can be
// orders of magnitude finer than a browser needs.
const previewGridMax = 64

// Assemble2D converts a generation result into the top-down preview scene.
// Markers preserve placement order; the terrain is resampled from the
// request's height source onto a coarse preview grid.
func Assemble2D(name string, req planner.Request, res *planner.Result, profiles *profile.Set) *Scene2D {
	s := &Scene2D{
		Metadata: Metadata{
			Name:        name,
			Seed:        res.Seed,
			SizeX:       req.Bounds.Width(),
			SizeZ:       req.Bounds.Depth(),
			TotalPlaced: len(res.Records),
			GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		},
		Terrain: assembleTerrain(req),
	}

	for _, rec := range res.Records {
		radius := 0.0
		if p := profiles.ByID(rec.ProfileID); p != nil {
			radius = p.Radius * rec.Scale
		}
		s.Markers = append(s.Markers, Marker{
			ID:       fmt.Sprintf("%s_%04d", rec.ProfileID, rec.ID),
			Category: string(rec.Category),
			Profile:  rec.ProfileID,
			Position: [2]float64{rec.Position.X, rec.Position.Z},
			Radius:   radius,
			Cluster:  rec.ClusterID,
		})
	}

	for _, c := range req.ExclusionCircles {
		s.Exclusions.Circles = append(s.Exclusions.Circles, Circle2D{
			Center: [2]float64{c.Center.X, c.Center.Z},
			Radius: c.Radius,
		})
	}
	for _, poly := range req.ExclusionPolys {
		ring := make([][2]float64, len(poly.Vertices))
		for i, v := range poly.Vertices {
			ring[i] = [2]float64{v.X, v.Z}
		}
		s.Exclusions.Polygons = append(s.Exclusions.Polygons, ring)
	}
	for _, p := range req.PointsOfInterest {
		s.POIs = append(s.POIs, [2]float64{p.X, p.Z})
	}

	for _, cs := range res.Categories {
		s.Categories = append(s.Categories, CategoryRow{
			Category: string(cs.Category),
			Target:   cs.Target,
			Placed:   cs.Placed,
		})
	}

	return s
}

// assembleTerrain resamples the height source onto a grid of at most
// previewGridMax cells per axis.
func assembleTerrain(req planner.Request) TerrainSummary {
	w, d := req.Bounds.Width(), req.Bounds.Depth()
	cell := math.Max(w, d) / previewGridMax
	if req.Resolution > cell {
		cell = req.Resolution
	}
	if cell <= 0 {
		return TerrainSummary{WaterHeight: req.WaterHeight}
	}

	cols := int(w/cell) + 1
	rows := int(d/cell) + 1
	ts := TerrainSummary{
		Cols:        cols,
		Rows:        rows,
		CellSize:    cell,
		WaterHeight: req.WaterHeight,
		MinHeight:   math.MaxFloat64,
		MaxHeight:   -math.MaxFloat64,
	}

	for row := 0; row < rows; row++ {
		line := make([]float64, cols)
		z := req.Bounds.Min.Z + float64(row)*cell
		for col := 0; col < cols; col++ {
			x := req.Bounds.Min.X + float64(col)*cell
			h, ok := req.Source.HeightAt(x, z)
			if !ok {
				h = 0
			}
			line[col] = h
			if h < ts.MinHeight {
				ts.MinHeight = h
			}
			if h > ts.MaxHeight {
				ts.MaxHeight = h
			}
		}
		ts.Heights = append(ts.Heights, line)
	}
	return ts
}
