package planner

import (
	"github.com/pochu0083/blender-terrain-gen/pkg/geo"
	"github.com/pochu0083/blender-terrain-gen/pkg/profile"
)

// BehaviorKind tags an optional per-record behavior descriptor.
type BehaviorKind string

const (
	// BehaviorFacePoint orients the record's yaw toward a point of interest.
	BehaviorFacePoint BehaviorKind = "face_point"
)

// Behavior is an explicitly tagged behavior descriptor carried by a record.
// It keeps the planner category-agnostic: categories with special needs
// (animals orienting toward a point of interest) declare them through
// configuration rather than subclassing.
type Behavior struct {
	Kind   BehaviorKind `json:"kind"`
	Target geo.Point2D  `json:"target"`
}

// PlacementRecord is a finalized placement. Immutable once committed; the
// ordered record sequence is the run's primary output.
type PlacementRecord struct {
	ID        int              `json:"id"`
	Category  profile.Category `json:"category"`
	ProfileID string           `json:"profile_id"`
	Position  geo.Point2D      `json:"position"`
	Height    float64          `json:"height"` // snapped to the terrain surface
	Normal    [3]float64       `json:"normal"`
	YawDeg    float64          `json:"yaw_deg"`
	Scale     float64          `json:"scale"`
	SlopeDeg  float64          `json:"slope_deg"`
	Score     float64          `json:"score"`
	ClusterID int              `json:"cluster_id,omitempty"`
	Behavior  *Behavior        `json:"behavior,omitempty"`
}
