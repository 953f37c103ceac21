package scene

import (
	"testing"
)

func validGraph() *Graph {
	g := NewGraph()
	addEntity(g, Entity{
		ID: "rock_boulder_0000", Type: EntityRock, Profile: "rock_boulder",
		Position: Vec3{X: 10, Y: 0, Z: 10}, Dimensions: Vec3{X: 3, Y: 1.2, Z: 3},
		Rotation: [4]float64{0, 0, 0, 1}, Scale: 1,
	})
	addEntity(g, Entity{
		ID: "tree_conifer_0001", Type: EntityTree, Profile: "tree_conifer",
		Position: Vec3{X: 30, Y: 0, Z: 40}, Dimensions: Vec3{X: 4, Y: 9, Z: 4},
		Rotation: [4]float64{0, 0, 0, 1}, Scale: 1, Cluster: "trees_cluster_1",
	})
	g.Metadata.SceneBounds = computeBounds(g.Entities)
	return g
}

func TestValidateGraphClean(t *testing.T) {
	g := validGraph()
	r := ValidateGraph(g)
	if !r.Valid {
		t.Fatalf("clean graph rejected: %s", r.Summary)
	}
	t.Logf("validated %d entities: %s", len(g.Entities), r.Summary)
}

func TestValidateGraphNil(t *testing.T) {
	if r := ValidateGraph(nil); r.Valid {
		t.Error("nil graph accepted")
	}
}

func TestValidateDuplicateIDs(t *testing.T) {
	g := validGraph()
	dup := g.Entities[0]
	addEntity(g, dup)
	if r := ValidateGraph(g); r.Valid {
		t.Error("duplicate entity ID not detected")
	}
}

func TestValidateDanglingGroupReference(t *testing.T) {
	g := validGraph()
	g.Groups.Types[EntityRock] = append(g.Groups.Types[EntityRock], "no_such_entity")
	if r := ValidateGraph(g); r.Valid {
		t.Error("dangling group reference not detected")
	}
}

func TestValidateMissingGroupMembership(t *testing.T) {
	g := validGraph()
	g.Groups.Types[EntityRock] = nil
	if r := ValidateGraph(g); r.Valid {
		t.Error("entity missing from its type group not detected")
	}
}

func TestValidateBoundsEnclosure(t *testing.T) {
	g := validGraph()
	g.Metadata.SceneBounds.Max.X = 5 // tighter than the rock at x=10
	if r := ValidateGraph(g); r.Valid {
		t.Error("entity outside scene bounds not detected")
	}
}

func TestValidateDimensions(t *testing.T) {
	g := validGraph()
	g.Entities[0].Dimensions.Y = 0
	if r := ValidateGraph(g); r.Valid {
		t.Error("non-positive dimensions not detected")
	}
}
