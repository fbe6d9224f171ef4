package service

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"pdf-toolbox/internal/domain"
	apperrors "pdf-toolbox/pkg/errors"
)

// maxFormMemory bounds the in-memory portion of multipart parsing; larger
// parts spill to temp files.
const maxFormMemory = 32 << 20

// MultipartIntake persists multipart uploads into the artifact store under
// generated names. Implements domain.UploadIntake.
type MultipartIntake struct {
	store       domain.ArtifactStore
	maxFileSize int64
	logger      domain.Logger
}

// NewUploadIntake creates a new intake instance
func NewUploadIntake(store domain.ArtifactStore, maxFileSize int64, logger domain.Logger) *MultipartIntake {
	return &MultipartIntake{
		store:       store,
		maxFileSize: maxFileSize,
		logger:      logger,
	}
}

// SaveUploads stores every file submitted under field and returns one part
// per file. Storage names combine the field name, a nanosecond timestamp and
// the original extension, so concurrent uploads in the same millisecond
// cannot collide. On any failure mid-way, already-saved parts are removed.
func (m *MultipartIntake) SaveUploads(r *http.Request, field string) ([]domain.UploadedPart, error) {
	if r.MultipartForm == nil {
		if err := r.ParseMultipartForm(maxFormMemory); err != nil {
			return nil, apperrors.NewValidationError("invalid multipart form", err.Error())
		}
	}

	headers := r.MultipartForm.File[field]
	if len(headers) == 0 {
		return nil, apperrors.NewValidationError(fmt.Sprintf("no file uploaded for field %q", field))
	}

	var total int64
	for _, fh := range headers {
		if fh.Size > m.maxFileSize {
			return nil, apperrors.NewValidationError(
				fmt.Sprintf("file %q exceeds the maximum allowed size", fh.Filename))
		}
		total += fh.Size
	}
	if total > m.maxFileSize {
		return nil, apperrors.NewValidationError("uploaded form exceeds the maximum allowed size")
	}

	if err := m.store.EnsureRoot(); err != nil {
		return nil, apperrors.NewStorageError("failed to prepare upload directory", err)
	}

	parts := make([]domain.UploadedPart, 0, len(headers))
	for _, fh := range headers {
		src, err := fh.Open()
		if err != nil {
			m.discard(parts)
			return nil, apperrors.NewStorageError("failed to open uploaded file", err)
		}

		name := storageName(field, fh.Filename)
		path, err := m.store.Save(name, src)
		src.Close()
		if err != nil {
			m.discard(parts)
			return nil, apperrors.NewStorageError("failed to store uploaded file", err)
		}

		parts = append(parts, domain.UploadedPart{
			FieldName:    field,
			OriginalName: fh.Filename,
			MIMEType:     fh.Header.Get("Content-Type"),
			Size:         fh.Size,
			Path:         path,
		})
	}

	return parts, nil
}

// OrderIndices resolves the order_N form values for n files. A missing or
// invalid index falls back to the file's arrival position.
func (m *MultipartIntake) OrderIndices(r *http.Request, n int) []int {
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
		if v := r.FormValue(fmt.Sprintf("order_%d", i)); v != "" {
			if idx, err := strconv.Atoi(v); err == nil && idx >= 0 {
				indices[i] = idx
			}
		}
	}
	return indices
}

// discard removes already-saved parts after a mid-upload failure.
func (m *MultipartIntake) discard(parts []domain.UploadedPart) {
	for _, p := range parts {
		if err := m.store.Delete(p.Path); err != nil {
			m.logger.Warn("Failed to remove partial upload", "path", p.Path, "error", err)
		}
	}
}

// storageName builds the unique storage name for an uploaded part.
func storageName(field, originalName string) string {
	base := strings.TrimSuffix(field, "[]")
	ext := strings.ToLower(filepath.Ext(originalName))
	return fmt.Sprintf("%s-%d%s", base, time.Now().UnixNano(), ext)
}
