// Package server hosts the local development server used to iterate on
// scatter specs: it runs generations on demand and serves the scene graph,
// the 2D preview, and validation output to a browser-based viewer.
package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"go.uber.org/zap"

	"github.com/pochu0083/blender-terrain-gen/internal/logger"
	"github.com/pochu0083/blender-terrain-gen/pkg/analytics"
	"github.com/pochu0083/blender-terrain-gen/pkg/planner"
	"github.com/pochu0083/blender-terrain-gen/pkg/profile"
	"github.com/pochu0083/blender-terrain-gen/pkg/scene"
	"github.com/pochu0083/blender-terrain-gen/pkg/scene2d"
	"github.com/pochu0083/blender-terrain-gen/pkg/spec"
)

// Server is the local development server for interactive scatter design.
type Server struct {
	projectPath string
	port        int

	mu      sync.RWMutex
	lastRun *runState
}

// runState holds the outputs of the most recent generation.
type runState struct {
	spec     *spec.ScatterSpec
	profiles *profile.Set
	result   *planner.Result
	graph    *scene.Graph
	preview  *scene2d.Scene2D
}

// New creates a server for the given project directory.
func New(projectPath string, port int) *Server {
	return &Server{
		projectPath: projectPath,
		port:        port,
	}
}

// Start launches the HTTP server.
func (s *Server) Start() error {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/scene", s.handleScene)
	mux.HandleFunc("GET /api/preview", s.handlePreview)
	mux.HandleFunc("GET /api/validation", s.handleValidation)
	mux.HandleFunc("GET /api/stats", s.handleStats)
	mux.HandleFunc("POST /api/generate", s.handleGenerate)
	mux.HandleFunc("GET /api/spec", s.handleSpec)
	mux.HandleFunc("GET /api/profiles", s.handleProfiles)
	mux.HandleFunc("GET /", s.handleIndex)

	addr := fmt.Sprintf(":%d", s.port)
	logger.Info("dev server starting",
		zap.String("addr", "http://localhost"+addr),
		zap.String("project", s.projectPath))

	return http.ListenAndServe(addr, mux)
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	fmt.Fprint(w, `<!DOCTYPE html>
<html><head><title>terrascatter</title></head>
<body style="margin:0;background:#111;color:#fff;font-family:system-ui;display:flex;align-items:center;justify-content:center;height:100vh">
<div style="text-align:center">
<h1>terrascatter</h1>
<p>Viewer not yet embedded. POST to <code>/api/generate</code>, then fetch <code>/api/preview</code>.</p>
</div>
</body></html>`)
}

// handleGenerate loads the project spec and profiles, runs a generation, and
// caches the outputs for the read endpoints.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	scatterSpec, err := spec.LoadProject(s.projectPath)
	if err != nil {
		s.fail(w, http.StatusBadRequest, "loading spec", err)
		return
	}
	profiles, err := profile.LoadProject(s.projectPath)
	if err != nil {
		s.fail(w, http.StatusBadRequest, "loading profiles", err)
		return
	}

	req, err := scatterSpec.ToRequest(profiles)
	if err != nil {
		s.fail(w, http.StatusBadRequest, "building request", err)
		return
	}

	if _, report := analytics.Resolve(req); !report.Valid {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(report)
		return
	}

	result, err := planner.Generate(r.Context(), req)
	if err != nil {
		s.fail(w, http.StatusUnprocessableEntity, "generation", err)
		return
	}
	logger.Info("generation complete",
		zap.Int("placed", len(result.Records)),
		zap.Duration("elapsed", result.Elapsed),
		zap.String("state", string(result.State)))

	state := &runState{
		spec:     scatterSpec,
		profiles: profiles,
		result:   result,
		graph:    scene.Assemble(scatterSpec.SpecVersion, scatterSpec.Name, result, profiles),
		preview:  scene2d.Assemble2D(scatterSpec.Name, req, result, profiles),
	}
	s.mu.Lock()
	s.lastRun = state
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"state":    result.State,
		"placed":   len(result.Records),
		"coverage": result.Coverage,
	})
}

func (s *Server) handleScene(w http.ResponseWriter, _ *http.Request) {
	run, ok := s.run()
	if !ok {
		s.notGenerated(w)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(run.graph)
}

func (s *Server) handlePreview(w http.ResponseWriter, _ *http.Request) {
	run, ok := s.run()
	if !ok {
		s.notGenerated(w)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(run.preview)
}

func (s *Server) handleValidation(w http.ResponseWriter, _ *http.Request) {
	run, ok := s.run()
	if !ok {
		s.notGenerated(w)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(run.result.Report)
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	run, ok := s.run()
	if !ok {
		s.notGenerated(w)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"categories": run.result.Categories,
		"coverage":   run.result.Coverage,
		"elapsed_ms": run.result.Elapsed.Milliseconds(),
	})
}

func (s *Server) handleSpec(w http.ResponseWriter, _ *http.Request) {
	scatterSpec, err := spec.LoadProject(s.projectPath)
	if err != nil {
		s.fail(w, http.StatusNotFound, "loading spec", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(scatterSpec)
}

func (s *Server) handleProfiles(w http.ResponseWriter, _ *http.Request) {
	profiles, err := profile.LoadProject(s.projectPath)
	if err != nil {
		s.fail(w, http.StatusNotFound, "loading profiles", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"profiles": profiles.All()})
}

func (s *Server) run() (*runState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastRun, s.lastRun != nil
}

func (s *Server) notGenerated(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	json.NewEncoder(w).Encode(map[string]string{"error": "no generation yet; POST /api/generate first"})
}

func (s *Server) fail(w http.ResponseWriter, code int, stage string, err error) {
	logger.Warn("request failed", zap.String("stage", stage), zap.Error(err))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": fmt.Sprintf("%s: %v", stage, err)})
}
