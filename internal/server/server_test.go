package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func testServer() *Server {
	return New("../../examples/default-scene", 0)
}

func TestGenerateThenRead(t *testing.T) {
	s := testServer()

	rec := httptest.NewRecorder()
	s.handleGenerate(rec, httptest.NewRequest(http.MethodPost, "/api/generate", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("generate status = %d: %s", rec.Code, rec.Body.String())
	}

	var gen struct {
		State  string `json:"state"`
		Placed int    `json:"placed"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &gen); err != nil {
		t.Fatalf("decoding generate response: %v", err)
	}
	if gen.State != "done" || gen.Placed == 0 {
		t.Fatalf("generate response = %+v", gen)
	}

	rec = httptest.NewRecorder()
	s.handlePreview(rec, httptest.NewRequest(http.MethodGet, "/api/preview", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("preview status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	s.handleScene(rec, httptest.NewRequest(http.MethodGet, "/api/scene", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("scene status = %d", rec.Code)
	}
	var graph struct {
		Entities []json.RawMessage `json:"entities"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &graph); err != nil {
		t.Fatalf("decoding scene: %v", err)
	}
	if len(graph.Entities) != gen.Placed {
		t.Errorf("scene entities = %d, want %d", len(graph.Entities), gen.Placed)
	}

	rec = httptest.NewRecorder()
	s.handleValidation(rec, httptest.NewRequest(http.MethodGet, "/api/validation", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("validation status = %d", rec.Code)
	}
}

func TestReadBeforeGenerate(t *testing.T) {
	s := testServer()
	rec := httptest.NewRecorder()
	s.handleScene(rec, httptest.NewRequest(http.MethodGet, "/api/scene", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("scene before generate: status = %d, want 404", rec.Code)
	}
}

func TestSpecAndProfilesEndpoints(t *testing.T) {
	s := testServer()

	rec := httptest.NewRecorder()
	s.handleSpec(rec, httptest.NewRequest(http.MethodGet, "/api/spec", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("spec status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	s.handleProfiles(rec, httptest.NewRequest(http.MethodGet, "/api/profiles", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("profiles status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	badServer := New("/nonexistent/project", 0)
	badServer.handleSpec(rec, httptest.NewRequest(http.MethodGet, "/api/spec", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing project spec: status = %d, want 404", rec.Code)
	}
}
