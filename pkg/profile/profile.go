package profile

// Category identifies an asset category. Categories are placed in ecological
// precedence order: structural elements first, so smaller and mobile
// categories respect their footprints.
type Category string

const (
	CategoryRocks   Category = "rocks"
	CategoryTrees   Category = "trees"
	CategoryGrass   Category = "grass"
	CategoryAnimals Category = "animals"
)

// PlacementOrder is the fixed category processing order.
var PlacementOrder = []Category{CategoryRocks, CategoryTrees, CategoryGrass, CategoryAnimals}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	switch c {
	case CategoryRocks, CategoryTrees, CategoryGrass, CategoryAnimals:
		return true
	}
	return false
}

// Clustering controls whether instances of an asset tend to group, spread
// independently, or appear singly.
type Clustering string

const (
	ClusterSolitary  Clustering = "solitary"
	ClusterGrouped   Clustering = "grouped"
	ClusterScattered Clustering = "scattered"
)

// Valid reports whether c is a known clustering mode.
func (c Clustering) Valid() bool {
	switch c {
	case ClusterSolitary, ClusterGrouped, ClusterScattered:
		return true
	}
	return false
}

// TerrainTag is a closed enumeration of terrain-feature preferences an asset
// can declare. Tags mirror the features the terrain analysis derives.
type TerrainTag string

const (
	TagFlat      TerrainTag = "flat"
	TagSlope     TerrainTag = "slope"
	TagValley    TerrainTag = "valley"
	TagRidge     TerrainTag = "ridge"
	TagShoreline TerrainTag = "shoreline"
)

// Valid reports whether t is a known terrain tag.
func (t TerrainTag) Valid() bool {
	switch t {
	case TagFlat, TagSlope, TagValley, TagRidge, TagShoreline:
		return true
	}
	return false
}

// SizeVariant is one entry of a profile's weighted size-variant table.
type SizeVariant struct {
	Scale  float64 `json:"scale" yaml:"scale"`
	Weight float64 `json:"weight" yaml:"weight"`
}

// AssetProfile describes one placeable asset. Profiles are immutable once
// loaded and identified by a stable ID.
type AssetProfile struct {
	ID          string        `json:"id" yaml:"id"`
	Category    Category      `json:"category" yaml:"category"`
	Radius      float64       `json:"radius" yaml:"radius"`
	Height      float64       `json:"height" yaml:"height"`
	MinSlope    float64       `json:"min_slope" yaml:"min_slope"`
	MaxSlope    float64       `json:"max_slope" yaml:"max_slope"`
	Clustering  Clustering    `json:"clustering" yaml:"clustering"`
	MinSpacing  float64       `json:"min_spacing" yaml:"min_spacing"`
	TerrainTags []TerrainTag  `json:"terrain_tags,omitempty" yaml:"terrain_tags,omitempty"`
	Variants    []SizeVariant `json:"variants,omitempty" yaml:"variants,omitempty"`
}

// HasTag reports whether the profile declares the given terrain tag.
func (p *AssetProfile) HasTag(tag TerrainTag) bool {
	for _, t := range p.TerrainTags {
		if t == tag {
			return true
		}
	}
	return false
}

// SpacingTo returns the required center distance between an instance of p and
// an instance of q. Within a category the profile's own multiplier applies;
// across categories the larger of the two multipliers wins, since the source
// material leaves cross-category spacing undefined.
func (p *AssetProfile) SpacingTo(q *AssetProfile) float64 {
	mult := p.MinSpacing
	if q.MinSpacing > mult {
		mult = q.MinSpacing
	}
	return mult * (p.Radius + q.Radius)
}
