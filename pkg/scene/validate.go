package scene

import (
	"fmt"

	"github.com/pochu0083/blender-terrain-gen/pkg/validation"
)

// ValidateGraph performs structural validation on a scene graph output.
// It checks entity integrity, group index consistency, and bounds enclosure.
func ValidateGraph(g *Graph) *validation.Report {
	r := validation.NewReport()

	if g == nil {
		r.AddError(validation.Result{
			Level:   validation.LevelSpatial,
			Message: "scene graph is nil",
		})
		return r
	}

	validateEntityIDs(g, r)
	validateGroupIndices(g, r)
	validateGroupMembership(g, r)
	validateBoundsEnclosure(g, r)
	validateEntityDimensions(g, r)

	return r
}

func validateEntityIDs(g *Graph, r *validation.Report) {
	seen := make(map[string]int, len(g.Entities))

	for i, e := range g.Entities {
		if e.ID == "" {
			r.AddError(validation.Result{
				Level:       validation.LevelSpatial,
				Message:     fmt.Sprintf("entity at index %d has empty ID", i),
				Path:        fmt.Sprintf("entities[%d].id", i),
				ActualValue: "",
				Expected:    "non-empty string",
			})
			continue
		}
		if prev, exists := seen[e.ID]; exists {
			r.AddError(validation.Result{
				Level:       validation.LevelSpatial,
				Message:     fmt.Sprintf("duplicate entity ID %q at indices %d and %d", e.ID, prev, i),
				Path:        fmt.Sprintf("entities[%d].id", i),
				ActualValue: e.ID,
			})
		}
		seen[e.ID] = i
	}
}

func validateGroupIndices(g *Graph, r *validation.Report) {
	entityIDs := make(map[string]bool, len(g.Entities))
	for _, e := range g.Entities {
		entityIDs[e.ID] = true
	}

	checkGroup := func(groupType, groupName string, ids []string) {
		for _, id := range ids {
			if !entityIDs[id] {
				r.AddError(validation.Result{
					Level:       validation.LevelSpatial,
					Message:     fmt.Sprintf("group %s.%s references non-existent entity %q", groupType, groupName, id),
					Path:        fmt.Sprintf("groups.%s.%s", groupType, groupName),
					ActualValue: id,
					Expected:    "existing entity ID",
				})
			}
		}
	}

	for name, ids := range g.Groups.Types {
		checkGroup("types", string(name), ids)
	}
	for name, ids := range g.Groups.Profiles {
		checkGroup("profiles", name, ids)
	}
	for name, ids := range g.Groups.Clusters {
		checkGroup("clusters", name, ids)
	}
}

func validateGroupMembership(g *Graph, r *validation.Report) {
	typeMembers := memberIndex(g.Groups.Types)
	profileMembers := make(map[string]map[string]bool, len(g.Groups.Profiles))
	for name, ids := range g.Groups.Profiles {
		m := make(map[string]bool, len(ids))
		for _, id := range ids {
			m[id] = true
		}
		profileMembers[name] = m
	}
	clusterMembers := make(map[string]map[string]bool, len(g.Groups.Clusters))
	for name, ids := range g.Groups.Clusters {
		m := make(map[string]bool, len(ids))
		for _, id := range ids {
			m[id] = true
		}
		clusterMembers[name] = m
	}

	for _, e := range g.Entities {
		if e.ID == "" {
			continue
		}

		if tm, ok := typeMembers[e.Type]; ok {
			if !tm[e.ID] {
				r.AddError(validation.Result{
					Level:       validation.LevelSpatial,
					Message:     fmt.Sprintf("entity %q has type %q but is not in types group", e.ID, e.Type),
					Path:        fmt.Sprintf("groups.types.%s", e.Type),
					ActualValue: e.ID,
				})
			}
		} else if e.Type != "" {
			r.AddError(validation.Result{
				Level:       validation.LevelSpatial,
				Message:     fmt.Sprintf("entity %q has type %q but no such types group exists", e.ID, e.Type),
				Path:        "groups.types",
				ActualValue: string(e.Type),
			})
		}

		if pm, ok := profileMembers[e.Profile]; ok {
			if !pm[e.ID] {
				r.AddError(validation.Result{
					Level:       validation.LevelSpatial,
					Message:     fmt.Sprintf("entity %q has profile %q but is not in profiles group", e.ID, e.Profile),
					Path:        fmt.Sprintf("groups.profiles.%s", e.Profile),
					ActualValue: e.ID,
				})
			}
		} else if e.Profile != "" {
			r.AddError(validation.Result{
				Level:       validation.LevelSpatial,
				Message:     fmt.Sprintf("entity %q has profile %q but no such profiles group exists", e.ID, e.Profile),
				Path:        "groups.profiles",
				ActualValue: e.Profile,
			})
		}

		if e.Cluster != "" {
			if cm, ok := clusterMembers[e.Cluster]; ok {
				if !cm[e.ID] {
					r.AddError(validation.Result{
						Level:       validation.LevelSpatial,
						Message:     fmt.Sprintf("entity %q has cluster %q but is not in clusters group", e.ID, e.Cluster),
						Path:        fmt.Sprintf("groups.clusters.%s", e.Cluster),
						ActualValue: e.ID,
					})
				}
			} else {
				r.AddError(validation.Result{
					Level:       validation.LevelSpatial,
					Message:     fmt.Sprintf("entity %q has cluster %q but no such clusters group exists", e.ID, e.Cluster),
					Path:        "groups.clusters",
					ActualValue: e.Cluster,
				})
			}
		}
	}
}

func memberIndex(groups map[EntityType][]string) map[EntityType]map[string]bool {
	out := make(map[EntityType]map[string]bool, len(groups))
	for t, ids := range groups {
		m := make(map[string]bool, len(ids))
		for _, id := range ids {
			m[id] = true
		}
		out[t] = m
	}
	return out
}

func validateBoundsEnclosure(g *Graph, r *validation.Report) {
	bounds := g.Metadata.SceneBounds
	tolerance := 1.0

	for _, e := range g.Entities {
		halfX := e.Dimensions.X / 2
		halfZ := e.Dimensions.Z / 2

		if e.Position.X-halfX < bounds.Min.X-tolerance ||
			e.Position.X+halfX > bounds.Max.X+tolerance ||
			e.Position.Z-halfZ < bounds.Min.Z-tolerance ||
			e.Position.Z+halfZ > bounds.Max.Z+tolerance {
			r.AddError(validation.Result{
				Level:       validation.LevelSpatial,
				Message:     fmt.Sprintf("entity %q extends outside scene bounds", e.ID),
				Path:        "metadata.scene_bounds",
				ActualValue: fmt.Sprintf("(%.1f, %.1f)", e.Position.X, e.Position.Z),
			})
		}
	}
}

func validateEntityDimensions(g *Graph, r *validation.Report) {
	for _, e := range g.Entities {
		if e.Dimensions.X <= 0 || e.Dimensions.Y <= 0 || e.Dimensions.Z <= 0 {
			r.AddError(validation.Result{
				Level:       validation.LevelSpatial,
				Message:     fmt.Sprintf("entity %q has non-positive dimensions", e.ID),
				Path:        "entities",
				ActualValue: fmt.Sprintf("%.2fx%.2fx%.2f", e.Dimensions.X, e.Dimensions.Y, e.Dimensions.Z),
				Expected:    "positive dimensions",
			})
		}
		if e.Scale <= 0 {
			r.AddError(validation.Result{
				Level:       validation.LevelSpatial,
				Message:     fmt.Sprintf("entity %q has non-positive scale %.3f", e.ID, e.Scale),
				Path:        "entities",
				ActualValue: e.Scale,
				Expected:    "> 0",
			})
		}
	}
}
