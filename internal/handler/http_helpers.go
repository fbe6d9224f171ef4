// Package handler provides HTTP handlers for the API.
package handler

import (
	"encoding/json"
	"net/http"

	"pdf-toolbox/internal/domain"
	apperrors "pdf-toolbox/pkg/errors"
)

// writeJSON writes a JSON response (helper function)
func writeJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError writes an error response (helper function)
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

// respondError maps a service error to its HTTP status and writes it out.
func respondError(w http.ResponseWriter, err error) {
	status := apperrors.GetStatusCode(err)
	if appErr, ok := err.(*apperrors.AppError); ok {
		msg := appErr.Message
		if appErr.Details != "" {
			msg += ": " + appErr.Details
		}
		writeError(w, status, msg)
		return
	}
	writeError(w, status, err.Error())
}

// removeParts deletes uploaded inputs synchronously, before the response is
// written. Runs on success and failure paths alike; a cleanup failure is
// logged and never becomes the request's error.
func removeParts(store domain.ArtifactStore, logger domain.Logger, parts []domain.UploadedPart) {
	for _, p := range parts {
		if err := store.Delete(p.Path); err != nil {
			logger.Warn("Failed to remove uploaded input", "path", p.Path, "error", err)
		}
	}
}

// requirePDFs validates that every part declares the PDF MIME type.
func requirePDFs(parts []domain.UploadedPart) error {
	for _, p := range parts {
		if !p.IsPDF() {
			return apperrors.NewValidationError(
				"only PDF files are accepted", "got "+p.MIMEType+" for "+p.OriginalName)
		}
	}
	return nil
}

// requireImages validates that every part declares an image MIME type.
func requireImages(parts []domain.UploadedPart) error {
	for _, p := range parts {
		if !p.IsImage() {
			return apperrors.NewValidationError(
				"only image files are accepted", "got "+p.MIMEType+" for "+p.OriginalName)
		}
	}
	return nil
}
