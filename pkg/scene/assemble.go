package scene

import (
	"fmt"
	"math"
	"time"

	"github.com/pochu0083/blender-terrain-gen/pkg/planner"
	"github.com/pochu0083/blender-terrain-gen/pkg/profile"
)

// Assemble converts a completed generation result into a scene graph.
// Entity order follows the record order, so the graph inherits the run's
// determinism.
func Assemble(specVersion, name string, res *planner.Result, profiles *profile.Set) *Graph {
	g := NewGraph()

	for _, rec := range res.Records {
		prof := profiles.ByID(rec.ProfileID)
		if prof == nil {
			continue
		}

		meta := map[string]any{
			"score":     rec.Score,
			"slope_deg": rec.SlopeDeg,
		}
		if rec.Behavior != nil {
			meta["behavior"] = string(rec.Behavior.Kind)
			meta["behavior_target"] = [2]float64{rec.Behavior.Target.X, rec.Behavior.Target.Z}
		}

		e := Entity{
			ID:      fmt.Sprintf("%s_%04d", rec.ProfileID, rec.ID),
			Type:    TypeForCategory(rec.Category),
			Profile: rec.ProfileID,
			Position: Vec3{
				X: rec.Position.X,
				Y: rec.Height,
				Z: rec.Position.Z,
			},
			Dimensions: Vec3{
				X: 2 * prof.Radius * rec.Scale,
				Y: prof.Height * rec.Scale,
				Z: 2 * prof.Radius * rec.Scale,
			},
			Rotation: yawQuat(rec.YawDeg * math.Pi / 180),
			Scale:    rec.Scale,
			Normal:   rec.Normal,
			Metadata: meta,
		}
		if rec.ClusterID > 0 {
			e.Cluster = fmt.Sprintf("%s_cluster_%d", rec.Category, rec.ClusterID)
		}
		addEntity(g, e)
	}

	g.Metadata = Metadata{
		SpecVersion: specVersion,
		Name:        name,
		Seed:        res.Seed,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		SceneBounds: computeBounds(g.Entities),
	}

	return g
}

// addEntity appends an entity and updates all group indices.
func addEntity(g *Graph, e Entity) {
	g.Entities = append(g.Entities, e)
	id := e.ID

	g.Groups.Types[e.Type] = append(g.Groups.Types[e.Type], id)
	g.Groups.Profiles[e.Profile] = append(g.Groups.Profiles[e.Profile], id)
	if e.Cluster != "" {
		g.Groups.Clusters[e.Cluster] = append(g.Groups.Clusters[e.Cluster], id)
	}
}

// computeBounds calculates the AABB of all entities.
func computeBounds(entities []Entity) BoundingBox {
	if len(entities) == 0 {
		return BoundingBox{}
	}
	minV := Vec3{X: math.MaxFloat64, Y: math.MaxFloat64, Z: math.MaxFloat64}
	maxV := Vec3{X: -math.MaxFloat64, Y: -math.MaxFloat64, Z: -math.MaxFloat64}

	for _, e := range entities {
		halfX := e.Dimensions.X / 2
		halfZ := e.Dimensions.Z / 2

		loX := e.Position.X - halfX
		hiX := e.Position.X + halfX
		loY := e.Position.Y
		hiY := e.Position.Y + e.Dimensions.Y
		loZ := e.Position.Z - halfZ
		hiZ := e.Position.Z + halfZ

		if loX < minV.X {
			minV.X = loX
		}
		if hiX > maxV.X {
			maxV.X = hiX
		}
		if loY < minV.Y {
			minV.Y = loY
		}
		if hiY > maxV.Y {
			maxV.Y = hiY
		}
		if loZ < minV.Z {
			minV.Z = loZ
		}
		if hiZ > maxV.Z {
			maxV.Z = hiZ
		}
	}
	return BoundingBox{Min: minV, Max: maxV}
}

func yawQuat(angle float64) [4]float64 {
	half := angle / 2
	return [4]float64{0, math.Sin(half), 0, math.Cos(half)}
}
