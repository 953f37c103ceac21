package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/pochu0083/blender-terrain-gen/internal/logger"
	"github.com/pochu0083/blender-terrain-gen/pkg/analytics"
	"github.com/pochu0083/blender-terrain-gen/pkg/planner"
	"github.com/pochu0083/blender-terrain-gen/pkg/profile"
	"github.com/pochu0083/blender-terrain-gen/pkg/scene"
	"github.com/pochu0083/blender-terrain-gen/pkg/spec"
	"github.com/pochu0083/blender-terrain-gen/pkg/validation"
)

// loadProject loads the scatter spec and profile set and converts them into
// a planner request.
func loadProject(projectPath string) (*spec.ScatterSpec, planner.Request, error) {
	scatterSpec, err := spec.LoadProject(projectPath)
	if err != nil {
		return nil, planner.Request{}, fmt.Errorf("loading spec: %w", err)
	}
	profiles, err := profile.LoadProject(projectPath)
	if err != nil {
		return nil, planner.Request{}, fmt.Errorf("loading profiles: %w", err)
	}
	req, err := scatterSpec.ToRequest(profiles)
	if err != nil {
		return nil, planner.Request{}, err
	}
	return scatterSpec, req, nil
}

func runValidate(projectPath string) error {
	_, req, err := loadProject(projectPath)
	if err != nil {
		return err
	}

	report := req.Validate()
	if report.Valid {
		_, analyticsReport := analytics.Resolve(req)
		report.Merge(analyticsReport)
	}

	printValidationReport(report)
	if !report.Valid {
		os.Exit(1)
	}
	return nil
}

func runProfiles(projectPath string) error {
	profiles, err := profile.LoadProject(projectPath)
	if err != nil {
		return fmt.Errorf("loading profiles: %w", err)
	}

	report := profile.ValidateSet(profiles)
	printProfileTable(profiles)
	if !report.Valid {
		fmt.Println()
		printValidationReport(report)
		os.Exit(1)
	}
	return nil
}

func runGenerate(ctx context.Context, projectPath, output string) error {
	scatterSpec, req, err := loadProject(projectPath)
	if err != nil {
		return err
	}

	params, analyticsReport := analytics.Resolve(req)
	if !analyticsReport.Valid {
		printValidationReport(analyticsReport)
		return fmt.Errorf("feasibility analysis failed")
	}
	logger.Debug("feasibility resolved",
		zap.Float64("usable_area", params.AreaUsable),
		zap.Int("total_target", params.TotalTarget))

	result, err := planner.Generate(ctx, req)
	if err != nil {
		var cfgErr *planner.ConfigError
		if errors.As(err, &cfgErr) {
			printValidationReport(cfgErr.Report)
		}
		return err
	}
	logger.Info("generation complete",
		zap.Int("placed", len(result.Records)),
		zap.String("state", string(result.State)),
		zap.Duration("elapsed", result.Elapsed))

	if len(analyticsReport.Warnings) > 0 || len(result.Report.Warnings) > 0 {
		merged := validation.NewReport()
		merged.Merge(analyticsReport)
		merged.Merge(result.Report)
		printValidationReport(merged)
	}

	graph := scene.Assemble(scatterSpec.SpecVersion, scatterSpec.Name, result, req.Profiles)
	if output != "" {
		if err := scene.Export(output, graph); err != nil {
			return err
		}
		logger.Info("scene written", zap.String("path", output), zap.Int("entities", len(graph.Entities)))
		return nil
	}
	return scene.Write(os.Stdout, graph)
}
