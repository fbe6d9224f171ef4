package handler

import (
	"net/http"

	"pdf-toolbox/internal/domain"
)

// OCRHandler handles text-extraction uploads
type OCRHandler struct {
	intake    domain.UploadIntake
	extractor domain.TextExtractor
	store     domain.ArtifactStore
	logger    domain.Logger
}

// NewOCRHandler creates a new OCR handler
func NewOCRHandler(intake domain.UploadIntake, extractor domain.TextExtractor, store domain.ArtifactStore, logger domain.Logger) *OCRHandler {
	return &OCRHandler{
		intake:    intake,
		extractor: extractor,
		store:     store,
		logger:    logger,
	}
}

// ExtractText handles POST /upload: accepts one image or PDF and returns its
// text content. The uploaded input is always removed before responding.
func (h *OCRHandler) ExtractText(w http.ResponseWriter, r *http.Request) {
	parts, err := h.intake.SaveUploads(r, "file")
	if err != nil {
		respondError(w, err)
		return
	}
	part := parts[0]

	if !part.IsPDF() && !part.IsImage() {
		removeParts(h.store, h.logger, parts)
		writeError(w, http.StatusBadRequest, "only PDF and image files are supported")
		return
	}

	text, err := h.extractor.ExtractText(part, r.FormValue("language"))
	removeParts(h.store, h.logger, parts)
	if err != nil {
		h.logger.Error("Text extraction failed", err,
			"file", part.OriginalName, "size", part.Size, "type", part.MIMEType)
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Text extracted successfully",
		"text":    text,
	})
}
