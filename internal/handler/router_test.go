package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"pdf-toolbox/internal/config"
	"pdf-toolbox/internal/domain"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	t.Setenv("UPLOAD_PATH", t.TempDir())
	t.Setenv("ALLOWED_ORIGINS", "http://localhost:5173")
	container := config.NewContainer()
	return NewRouter(container)
}

func TestRouterHealthCheck(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if rec.Body.String() != "OK" {
		t.Errorf("unexpected health body %q", rec.Body.String())
	}
}

func TestRouterMergedPDFsRoute(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/merged-pdfs", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var artifacts []domain.StoredArtifact
	if err := json.NewDecoder(rec.Body).Decode(&artifacts); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(artifacts) != 0 {
		t.Errorf("expected no artifacts on a fresh store, got %v", artifacts)
	}
}

func TestRouterDownloadAliasAndAPI(t *testing.T) {
	router := newTestRouter(t)

	for _, target := range []string{"/download", "/api/download"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s without file param: expected status 400, got %d", target, rec.Code)
		}
	}
}

func TestRouterUnknownRoute(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestRouterMethodNotAllowed(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/merge-pdfs", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status 405, got %d", rec.Code)
	}
}

func TestRouterCORSPreflight(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/merge-pdfs", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("expected allowed origin echoed, got %q", got)
	}
}

func TestRouterCORSRejectsUnknownOrigin(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/merge-pdfs", nil)
	req.Header.Set("Origin", "http://evil.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("expected no allow-origin header for unknown origin, got %q", got)
	}
}
