package analytics

import (
	"fmt"

	"github.com/pochu0083/blender-terrain-gen/pkg/validation"
)

// validateAnalytical runs the feasibility checks on resolved parameters.
func validateAnalytical(p *ResolvedParameters, report *validation.Report) {
	validateUsableArea(p, report)
	validateGridSize(p, report)
	for _, cf := range p.Categories {
		validateCategoryCapacity(cf, report)
	}
	validateTotalCoverage(p, report)
}

func validateUsableArea(p *ResolvedParameters, report *validation.Report) {
	if p.AreaTotal > 0 && p.AreaUsable <= 0 {
		report.AddError(validation.Result{
			Level:       validation.LevelAnalytic,
			Message:     "exclusion zones cover the entire working area",
			Path:        "exclusions",
			ActualValue: p.AreaExcluded,
			Expected:    fmt.Sprintf("< %.0f (total area)", p.AreaTotal),
			Suggestions: []string{"Shrink or remove exclusion zones", "Enlarge the working area"},
		})
		return
	}
	if p.AreaTotal > 0 && p.AreaExcluded/p.AreaTotal > 0.5 {
		report.AddWarning(validation.Result{
			Level:       validation.LevelAnalytic,
			Message:     fmt.Sprintf("exclusion zones cover %.0f%% of the working area", 100*p.AreaExcluded/p.AreaTotal),
			Path:        "exclusions",
			ActualValue: p.AreaExcluded,
		})
	}
}

func validateGridSize(p *ResolvedParameters, report *validation.Report) {
	if p.SampleCount > maxGridSamples {
		report.AddWarning(validation.Result{
			Level:       validation.LevelAnalytic,
			Message:     fmt.Sprintf("terrain grid has %d samples (%dx%d); analysis will be slow", p.SampleCount, p.GridCols, p.GridRows),
			Path:        "terrain.resolution",
			ActualValue: p.SampleCount,
			Expected:    fmt.Sprintf("<= %d", maxGridSamples),
			Suggestions: []string{"Increase terrain.resolution to coarsen the grid"},
		})
	}
}

func validateCategoryCapacity(cf CategoryFeasibility, report *validation.Report) {
	if cf.Target <= 0 || cf.PackingBound == 0 {
		return
	}
	if cf.Target > cf.PackingBound {
		report.AddError(validation.Result{
			Level:       validation.LevelAnalytic,
			Category:    string(cf.Category),
			Message:     fmt.Sprintf("category %s: target %d exceeds the packing bound %d at %.1f spacing", cf.Category, cf.Target, cf.PackingBound, cf.TightestSpacing),
			Path:        "categories",
			ActualValue: cf.Target,
			Expected:    fmt.Sprintf("<= %d", cf.PackingBound),
			Suggestions: []string{
				"Reduce the target",
				"Lower min_spacing on the category's profiles",
				"Enlarge the working area",
			},
		})
		return
	}
	if cf.Target > cf.SaturationEstimate {
		report.AddWarning(validation.Result{
			Level:       validation.LevelAnalytic,
			Category:    string(cf.Category),
			Message:     fmt.Sprintf("category %s: target %d is above the saturation estimate %d; the run will likely fall short", cf.Category, cf.Target, cf.SaturationEstimate),
			Path:        "categories",
			ActualValue: cf.Target,
			Expected:    fmt.Sprintf("<= %d", cf.SaturationEstimate),
		})
	}
}

func validateTotalCoverage(p *ResolvedParameters, report *validation.Report) {
	if p.ExpectedCoverage > coverageWarnFraction {
		report.AddWarning(validation.Result{
			Level:       validation.LevelAnalytic,
			Message:     fmt.Sprintf("expected footprint coverage %.0f%% of usable area", 100*p.ExpectedCoverage),
			Path:        "categories",
			ActualValue: p.ExpectedCoverage,
			Expected:    fmt.Sprintf("<= %.0f%%", 100*coverageWarnFraction),
			Suggestions: []string{"Reduce category targets for a sparser scene"},
		})
	}
}
