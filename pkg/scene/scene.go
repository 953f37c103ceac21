package scene

import "github.com/pochu0083/blender-terrain-gen/pkg/profile"

// EntityType identifies the kind of entity. Types mirror the placement
// categories one to one.
type EntityType string

const (
	EntityRock   EntityType = "rock"
	EntityTree   EntityType = "tree"
	EntityGrass  EntityType = "grass"
	EntityAnimal EntityType = "animal"
)

// TypeForCategory maps a placement category to its entity type.
func TypeForCategory(c profile.Category) EntityType {
	switch c {
	case profile.CategoryRocks:
		return EntityRock
	case profile.CategoryTrees:
		return EntityTree
	case profile.CategoryGrass:
		return EntityGrass
	case profile.CategoryAnimals:
		return EntityAnimal
	}
	return ""
}

// Vec3 is a 3D vector. Y is up.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// BoundingBox defines an axis-aligned bounding box.
type BoundingBox struct {
	Min Vec3 `json:"min"`
	Max Vec3 `json:"max"`
}

// Entity is a single element in the scene graph.
type Entity struct {
	ID         string         `json:"id"`
	Type       EntityType     `json:"type"`
	Profile    string         `json:"profile"`
	Position   Vec3           `json:"position"`
	Dimensions Vec3           `json:"dimensions"`
	Rotation   [4]float64     `json:"rotation"` // quaternion [x, y, z, w]
	Scale      float64        `json:"scale"`
	Normal     [3]float64     `json:"normal"`
	Cluster    string         `json:"cluster,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// Graph is the complete scene graph output from a generation run.
type Graph struct {
	Metadata Metadata `json:"metadata"`
	Entities []Entity `json:"entities"`
	Groups   Groups   `json:"groups"`
}

// Metadata holds scene-level information.
type Metadata struct {
	SpecVersion string      `json:"spec_version"`
	Name        string      `json:"name"`
	Seed        int64       `json:"seed"`
	GeneratedAt string      `json:"generated_at"`
	SceneBounds BoundingBox `json:"scene_bounds"`
}

// Groups organizes entity IDs by various axes for fast filtering.
type Groups struct {
	Types    map[EntityType][]string `json:"types"`
	Profiles map[string][]string     `json:"profiles"`
	Clusters map[string][]string     `json:"clusters"`
}

// NewGraph creates an empty scene graph.
func NewGraph() *Graph {
	return &Graph{
		Entities: []Entity{},
		Groups: Groups{
			Types:    make(map[EntityType][]string),
			Profiles: make(map[string][]string),
			Clusters: make(map[string][]string),
		},
	}
}
