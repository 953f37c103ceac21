package profile

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema/profiles.schema.json
var profilesSchema string

// Set holds the asset profiles for a run, grouped by category in load order.
type Set struct {
	byCategory map[Category][]*AssetProfile
	byID       map[string]*AssetProfile
	ordered    []*AssetProfile
}

// NewSet builds a Set from a list of profiles. Ordering within a category is
// preserved from the input.
func NewSet(profiles []AssetProfile) *Set {
	s := &Set{
		byCategory: make(map[Category][]*AssetProfile),
		byID:       make(map[string]*AssetProfile),
	}
	for i := range profiles {
		p := &profiles[i]
		s.byCategory[p.Category] = append(s.byCategory[p.Category], p)
		s.byID[p.ID] = p
		s.ordered = append(s.ordered, p)
	}
	return s
}

// Category returns the profiles in the given category, in load order.
func (s *Set) Category(c Category) []*AssetProfile {
	return s.byCategory[c]
}

// ByID returns the profile with the given id, or nil.
func (s *Set) ByID(id string) *AssetProfile {
	return s.byID[id]
}

// All returns every profile in load order.
func (s *Set) All() []*AssetProfile {
	return s.ordered
}

// Len returns the number of profiles in the set.
func (s *Set) Len() int {
	return len(s.ordered)
}

// MaxRadius returns the largest footprint radius among all profiles,
// or 0 for an empty set. The spatial index cell size derives from it.
func (s *Set) MaxRadius() float64 {
	max := 0.0
	for _, p := range s.ordered {
		if p.Radius > max {
			max = p.Radius
		}
	}
	return max
}

type setFile struct {
	Profiles []AssetProfile `json:"profiles"`
}

// LoadSet reads an asset profile set from a JSON file, validating it against
// the embedded profile schema before decoding.
func LoadSet(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile set: %w", err)
	}
	return ParseSet(data)
}

// ParseSet decodes and schema-validates a JSON profile set document.
func ParseSet(data []byte) (*Set, error) {
	schema, err := jsonschema.CompileString("profiles.schema.json", profilesSchema)
	if err != nil {
		return nil, fmt.Errorf("compiling profile schema: %w", err)
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing profile set JSON: %w", err)
	}
	if err := schema.Validate(raw); err != nil {
		return nil, fmt.Errorf("profile set schema: %w", err)
	}

	var f setFile
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decoding profile set: %w", err)
	}
	return NewSet(f.Profiles), nil
}

// LoadProject loads a profile set from a project directory. It looks for
// profiles.json in the given directory; when the file is absent the default
// set is returned, and any category the file leaves empty is backfilled with
// the built-in profile for that category.
func LoadProject(projectDir string) (*Set, error) {
	path := filepath.Join(projectDir, "profiles.json")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultSet(), nil
	}
	set, err := LoadSet(path)
	if err != nil {
		return nil, err
	}
	merged := make([]AssetProfile, 0, set.Len())
	for _, p := range set.All() {
		merged = append(merged, *p)
	}
	for _, p := range DefaultSet().All() {
		if len(set.Category(p.Category)) == 0 {
			merged = append(merged, *p)
		}
	}
	if len(merged) > set.Len() {
		set = NewSet(merged)
	}
	return set, nil
}

// DefaultSet returns the built-in profiles: one representative asset per
// category with the stock placement preferences.
func DefaultSet() *Set {
	return NewSet([]AssetProfile{
		{
			ID: "rock_boulder", Category: CategoryRocks,
			Radius: 1.5, Height: 1.2,
			MinSlope: 0, MaxSlope: 90,
			Clustering: ClusterScattered, MinSpacing: 0.5,
			Variants: []SizeVariant{{Scale: 0.6, Weight: 3}, {Scale: 1.0, Weight: 5}, {Scale: 1.8, Weight: 1}},
		},
		{
			ID: "tree_conifer", Category: CategoryTrees,
			Radius: 2.0, Height: 9.0,
			MinSlope: 0, MaxSlope: 30,
			Clustering: ClusterGrouped, MinSpacing: 1.5,
			TerrainTags: []TerrainTag{TagFlat, TagSlope, TagValley},
			Variants:    []SizeVariant{{Scale: 0.8, Weight: 2}, {Scale: 1.0, Weight: 6}, {Scale: 1.3, Weight: 2}},
		},
		{
			ID: "grass_patch", Category: CategoryGrass,
			Radius: 0.5, Height: 0.3,
			MinSlope: 0, MaxSlope: 45,
			Clustering: ClusterScattered, MinSpacing: 0.5,
			Variants: []SizeVariant{{Scale: 0.7, Weight: 4}, {Scale: 1.0, Weight: 4}, {Scale: 1.4, Weight: 2}},
		},
		{
			ID: "animal_grazer", Category: CategoryAnimals,
			Radius: 1.0, Height: 1.5,
			MinSlope: 0, MaxSlope: 25,
			Clustering: ClusterGrouped, MinSpacing: 1.0,
			TerrainTags: []TerrainTag{TagFlat, TagValley},
		},
	})
}
