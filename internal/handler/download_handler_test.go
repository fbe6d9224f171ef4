package handler

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"pdf-toolbox/internal/repository"
)

func newDownloadHandler(t *testing.T) (*DownloadHandler, string) {
	t.Helper()
	root := t.TempDir()
	store := repository.NewFileArtifactStore(root, nopLogger{})
	return NewDownloadHandler(store, nopLogger{}), root
}

func TestDownloadMissingParam(t *testing.T) {
	handler, _ := newDownloadHandler(t)

	rec := httptest.NewRecorder()
	handler.Download(rec, httptest.NewRequest(http.MethodGet, "/api/download", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestDownloadUnknownFile(t *testing.T) {
	handler, _ := newDownloadHandler(t)

	rec := httptest.NewRecorder()
	handler.Download(rec, httptest.NewRequest(http.MethodGet, "/api/download?file=missing.pdf", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestDownloadServesStoredFile(t *testing.T) {
	handler, root := newDownloadHandler(t)
	content := []byte("stored artifact bytes")
	if err := os.WriteFile(filepath.Join(root, "merged-100.pdf"), content, 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	rec := httptest.NewRecorder()
	handler.Download(rec, httptest.NewRequest(http.MethodGet, "/api/download?file=merged-100.pdf", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if rec.Body.String() != string(content) {
		t.Errorf("unexpected body %q", rec.Body.String())
	}
	disposition := rec.Header().Get("Content-Disposition")
	if disposition != `attachment; filename="merged-100.pdf"` {
		t.Errorf("unexpected Content-Disposition %q", disposition)
	}
}

func TestDownloadNeverEscapesRoot(t *testing.T) {
	handler, root := newDownloadHandler(t)

	outside := filepath.Join(filepath.Dir(root), "outside.txt")
	if err := os.WriteFile(outside, []byte("secret"), 0o644); err != nil {
		t.Fatalf("failed to write outside file: %v", err)
	}
	defer os.Remove(outside)

	for _, ref := range []string{
		"../outside.txt",
		"..%2Foutside.txt",
		"foo/../../outside.txt",
	} {
		rec := httptest.NewRecorder()
		handler.Download(rec, httptest.NewRequest(http.MethodGet, "/api/download?file="+ref, nil))
		if rec.Code != http.StatusNotFound {
			t.Errorf("ref %q: expected status 404, got %d", ref, rec.Code)
		}
	}
}

func TestDownloadResolvesBasenameOfForeignPath(t *testing.T) {
	handler, root := newDownloadHandler(t)
	if err := os.WriteFile(filepath.Join(root, "compressed-100.pdf"), []byte("pdf"), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	rec := httptest.NewRecorder()
	handler.Download(rec, httptest.NewRequest(http.MethodGet,
		"/api/download?file=%2Fsrv%2Fother%2Fcompressed-100.pdf", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}

func TestServeUploadsForcesPDFHeaders(t *testing.T) {
	handler, root := newDownloadHandler(t)
	if err := os.WriteFile(filepath.Join(root, "merged-100.pdf"), []byte("pdf"), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	rec := httptest.NewRecorder()
	handler.ServeUploads().ServeHTTP(rec,
		httptest.NewRequest(http.MethodGet, "/merged-100.pdf", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("expected application/pdf content type, got %q", ct)
	}
	if cc := rec.Header().Get("Cache-Control"); cc != "no-store" {
		t.Errorf("expected no-store cache control, got %q", cc)
	}
}
