package profile

import (
	"fmt"

	"github.com/pochu0083/blender-terrain-gen/pkg/validation"
)

// ValidateSet performs schema-level validation on a profile set. It catches
// configuration errors before any terrain or placement work begins.
func ValidateSet(s *Set) *validation.Report {
	r := validation.NewReport()

	seen := make(map[string]bool)
	for i, p := range s.All() {
		path := fmt.Sprintf("profiles[%d]", i)

		if p.ID == "" {
			r.AddError(validation.Result{
				Level:    validation.LevelSchema,
				Message:  "profile id must not be empty",
				Path:     path + ".id",
				Expected: "non-empty string",
			})
		} else if seen[p.ID] {
			r.AddError(validation.Result{
				Level:       validation.LevelSchema,
				Message:     fmt.Sprintf("duplicate profile id %q", p.ID),
				Path:        path + ".id",
				ActualValue: p.ID,
				Expected:    "unique id",
			})
		}
		seen[p.ID] = true

		if !p.Category.Valid() {
			r.AddError(validation.Result{
				Level:       validation.LevelSchema,
				Message:     fmt.Sprintf("profile %s: unknown category %q", p.ID, p.Category),
				Path:        path + ".category",
				ActualValue: string(p.Category),
				Expected:    "rocks | trees | grass | animals",
			})
		}
		if p.Radius <= 0 {
			r.AddError(validation.Result{
				Level:       validation.LevelSchema,
				Message:     fmt.Sprintf("profile %s: radius must be > 0", p.ID),
				Path:        path + ".radius",
				ActualValue: p.Radius,
				Expected:    "> 0",
			})
		}
		if p.Height <= 0 {
			r.AddError(validation.Result{
				Level:       validation.LevelSchema,
				Message:     fmt.Sprintf("profile %s: height must be > 0", p.ID),
				Path:        path + ".height",
				ActualValue: p.Height,
				Expected:    "> 0",
			})
		}
		if p.MinSlope > p.MaxSlope {
			r.AddError(validation.Result{
				Level:       validation.LevelSchema,
				Message:     fmt.Sprintf("profile %s: min_slope (%.1f) exceeds max_slope (%.1f)", p.ID, p.MinSlope, p.MaxSlope),
				Path:        path + ".min_slope",
				ActualValue: p.MinSlope,
				Expected:    fmt.Sprintf("<= %.1f", p.MaxSlope),
			})
		}
		if p.MinSpacing < 0 {
			r.AddError(validation.Result{
				Level:       validation.LevelSchema,
				Message:     fmt.Sprintf("profile %s: min_spacing must be >= 0", p.ID),
				Path:        path + ".min_spacing",
				ActualValue: p.MinSpacing,
				Expected:    ">= 0",
			})
		}
		if !p.Clustering.Valid() {
			r.AddError(validation.Result{
				Level:       validation.LevelSchema,
				Message:     fmt.Sprintf("profile %s: unknown clustering mode %q", p.ID, p.Clustering),
				Path:        path + ".clustering",
				ActualValue: string(p.Clustering),
				Expected:    "solitary | grouped | scattered",
			})
		}
		for _, tag := range p.TerrainTags {
			if !tag.Valid() {
				r.AddError(validation.Result{
					Level:       validation.LevelSchema,
					Message:     fmt.Sprintf("profile %s: unknown terrain tag %q", p.ID, tag),
					Path:        path + ".terrain_tags",
					ActualValue: string(tag),
					Expected:    "flat | slope | valley | ridge | shoreline",
				})
			}
		}

		totalWeight := 0.0
		for j, v := range p.Variants {
			if v.Scale <= 0 {
				r.AddError(validation.Result{
					Level:       validation.LevelSchema,
					Message:     fmt.Sprintf("profile %s: variant scale must be > 0", p.ID),
					Path:        fmt.Sprintf("%s.variants[%d].scale", path, j),
					ActualValue: v.Scale,
					Expected:    "> 0",
				})
			}
			if v.Weight < 0 {
				r.AddError(validation.Result{
					Level:       validation.LevelSchema,
					Message:     fmt.Sprintf("profile %s: variant weight must be >= 0", p.ID),
					Path:        fmt.Sprintf("%s.variants[%d].weight", path, j),
					ActualValue: v.Weight,
					Expected:    ">= 0",
				})
			}
			totalWeight += v.Weight
		}
		if len(p.Variants) > 0 && totalWeight <= 0 {
			r.AddError(validation.Result{
				Level:    validation.LevelSchema,
				Message:  fmt.Sprintf("profile %s: variant weights sum to zero", p.ID),
				Path:     path + ".variants",
				Expected: "at least one positive weight",
			})
		}
	}

	return r
}
