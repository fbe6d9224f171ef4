package handler

import (
	"net/http"

	"pdf-toolbox/internal/domain"
)

// ConvertHandler handles image-to-PDF and PDF-to-image conversions
type ConvertHandler struct {
	intake    domain.UploadIntake
	converter domain.Converter
	store     domain.ArtifactStore
	logger    domain.Logger
}

// NewConvertHandler creates a new conversion handler instance
func NewConvertHandler(intake domain.UploadIntake, converter domain.Converter, store domain.ArtifactStore, logger domain.Logger) *ConvertHandler {
	return &ConvertHandler{
		intake:    intake,
		converter: converter,
		store:     store,
		logger:    logger,
	}
}

// ImageToPDF handles POST /api/image-to-pdf. Images arrive under images[]
// with optional order_N fields; page order follows the resolved indices.
func (h *ConvertHandler) ImageToPDF(w http.ResponseWriter, r *http.Request) {
	parts, err := h.intake.SaveUploads(r, "images[]")
	if err != nil {
		respondError(w, err)
		return
	}
	if err := requireImages(parts); err != nil {
		removeParts(h.store, h.logger, parts)
		respondError(w, err)
		return
	}

	ordered := domain.OrderParts(parts, h.intake.OrderIndices(r, len(parts)))
	paths := make([]string, len(ordered))
	for i, p := range ordered {
		paths[i] = p.Path
	}

	out, err := h.converter.ImagesToPDF(paths, r.FormValue("pageSize"), r.FormValue("orientation"))
	removeParts(h.store, h.logger, parts)
	if err != nil {
		h.logger.Error("Image to PDF conversion failed", err, "images", len(parts))
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"fullPath": out.Path,
		"url":      out.URL,
		"message":  "Images converted to PDF successfully",
		"details": map[string]interface{}{
			"totalPages":  out.TotalPages,
			"fileCount":   out.FileCount,
			"pageSize":    out.PageSize,
			"orientation": out.Orientation,
		},
	})
}

// PDFToImage handles POST /api/pdf-to-image
func (h *ConvertHandler) PDFToImage(w http.ResponseWriter, r *http.Request) {
	parts, err := h.intake.SaveUploads(r, "pdf")
	if err != nil {
		respondError(w, err)
		return
	}
	part := parts[0]
	if err := requirePDFs(parts); err != nil {
		removeParts(h.store, h.logger, parts)
		respondError(w, err)
		return
	}

	format := r.FormValue("imageFormat")
	if format == "" {
		format = "png"
	}
	quality := r.FormValue("imageQuality")
	if quality == "" {
		quality = "medium"
	}

	out, err := h.converter.PDFToImages(part.Path, format, quality)
	removeParts(h.store, h.logger, parts)
	if err != nil {
		h.logger.Error("PDF to image conversion failed", err,
			"file", part.OriginalName, "format", format, "quality", quality)
		respondError(w, err)
		return
	}

	message := "PDF converted to images successfully"
	if out.Note != "" {
		message = out.Note
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"message":      message,
		"images":       out.Images,
		"zipUrl":       out.ZipURL,
		"format":       format,
		"quality":      quality,
		"originalFile": part.OriginalName,
	})
}
