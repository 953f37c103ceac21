package main

import (
	"fmt"
	"strings"

	"github.com/pochu0083/blender-terrain-gen/pkg/profile"
	"github.com/pochu0083/blender-terrain-gen/pkg/validation"
)

func printValidationReport(r *validation.Report) {
	if len(r.Errors) > 0 {
		fmt.Printf("ERRORS (%d):\n", len(r.Errors))
		for _, e := range r.Errors {
			fmt.Printf("  [%s] %s\n", e.Level, e.Message)
			if e.Path != "" {
				fmt.Printf("    -> %s = %v\n", e.Path, e.ActualValue)
			}
			if e.Expected != "" {
				fmt.Printf("    expected: %s\n", e.Expected)
			}
			for _, s := range e.Suggestions {
				fmt.Printf("    * %s\n", s)
			}
		}
		fmt.Println()
	}

	if len(r.Warnings) > 0 {
		fmt.Printf("WARNINGS (%d):\n", len(r.Warnings))
		for _, w := range r.Warnings {
			fmt.Printf("  [%s] %s\n", w.Level, w.Message)
			if w.Path != "" {
				fmt.Printf("    -> %s = %v\n", w.Path, w.ActualValue)
			}
			if w.Expected != "" {
				fmt.Printf("    expected: %s\n", w.Expected)
			}
			for _, s := range w.Suggestions {
				fmt.Printf("    * %s\n", s)
			}
		}
		fmt.Println()
	}

	if len(r.Info) > 0 {
		fmt.Printf("INFO (%d):\n", len(r.Info))
		for _, i := range r.Info {
			fmt.Printf("  [%s] %s\n", i.Level, i.Message)
		}
		fmt.Println()
	}

	if r.Valid {
		fmt.Printf("Result: VALID (%s)\n", r.Summary)
	} else {
		fmt.Printf("Result: INVALID (%s)\n", r.Summary)
	}
}

func printProfileTable(set *profile.Set) {
	fmt.Printf("%-16s %-8s %7s %7s %11s %9s %-10s %s\n",
		"ID", "Category", "Radius", "Height", "Slope", "Spacing", "Clustering", "Tags")
	fmt.Println(strings.Repeat("-", 88))

	for _, cat := range profile.PlacementOrder {
		for _, p := range set.Category(cat) {
			tags := make([]string, len(p.TerrainTags))
			for i, t := range p.TerrainTags {
				tags[i] = string(t)
			}
			tagCol := "-"
			if len(tags) > 0 {
				tagCol = strings.Join(tags, ",")
			}
			fmt.Printf("%-16s %-8s %7.2f %7.2f %4.0f-%3.0f deg %9.2f %-10s %s\n",
				p.ID, p.Category, p.Radius, p.Height,
				p.MinSlope, p.MaxSlope, p.MinSpacing, p.Clustering, tagCol)
		}
	}
	fmt.Printf("\n%d profiles\n", set.Len())
}
