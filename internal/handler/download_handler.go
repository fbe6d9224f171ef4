package handler

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"pdf-toolbox/internal/domain"
)

// DownloadHandler streams artifacts back to clients
type DownloadHandler struct {
	store  domain.ArtifactStore
	logger domain.Logger
}

// NewDownloadHandler creates a new download handler instance
func NewDownloadHandler(store domain.ArtifactStore, logger domain.Logger) *DownloadHandler {
	return &DownloadHandler{
		store:  store,
		logger: logger,
	}
}

// Download handles GET /api/download?file=... and its /download alias. The
// reference is resolved safely inside the store root and streamed as an
// attachment named after its basename.
func (h *DownloadHandler) Download(w http.ResponseWriter, r *http.Request) {
	ref := r.URL.Query().Get("file")
	if ref == "" {
		writeError(w, http.StatusBadRequest, "file query parameter is required")
		return
	}

	path, err := h.store.Resolve(ref)
	if err != nil {
		if errors.Is(err, domain.ErrArtifactNotFound) {
			writeError(w, http.StatusNotFound, "file not found")
			return
		}
		h.logger.Error("Download resolution failed", err, "ref", ref)
		respondError(w, err)
		return
	}

	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", filepath.Base(path)))
	http.ServeFile(w, r, path)
}

// ServeUploads serves the store root under /uploads/, forcing the PDF
// content type and no-store caching for .pdf artifacts.
func (h *DownloadHandler) ServeUploads() http.Handler {
	fs := http.FileServer(http.Dir(h.store.Root()))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(strings.ToLower(r.URL.Path), ".pdf") {
			w.Header().Set("Content-Type", "application/pdf")
			w.Header().Set("Cache-Control", "no-store")
		}
		fs.ServeHTTP(w, r)
	})
}
