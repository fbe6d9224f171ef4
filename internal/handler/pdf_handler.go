package handler

import (
	"net/http"

	"pdf-toolbox/internal/domain"
)

// PDFHandler handles merge, split, compress and listing of PDF artifacts
type PDFHandler struct {
	intake domain.UploadIntake
	pdfOps domain.PDFOperations
	store  domain.ArtifactStore
	logger domain.Logger
}

// NewPDFHandler creates a new PDF handler instance
func NewPDFHandler(intake domain.UploadIntake, pdfOps domain.PDFOperations, store domain.ArtifactStore, logger domain.Logger) *PDFHandler {
	return &PDFHandler{
		intake: intake,
		pdfOps: pdfOps,
		store:  store,
		logger: logger,
	}
}

// ListMerged handles GET /api/merged-pdfs
func (h *PDFHandler) ListMerged(w http.ResponseWriter, r *http.Request) {
	artifacts, err := h.pdfOps.ListMerged()
	if err != nil {
		h.logger.Error("Failed to list merged PDFs", err)
		respondError(w, err)
		return
	}
	if artifacts == nil {
		artifacts = make([]domain.StoredArtifact, 0)
	}
	writeJSON(w, http.StatusOK, artifacts)
}

// MergePDFs handles POST /api/merge-pdfs. Inputs arrive under pdfs[] with
// optional order_N fields; output order follows the resolved indices, not
// upload order.
func (h *PDFHandler) MergePDFs(w http.ResponseWriter, r *http.Request) {
	parts, err := h.intake.SaveUploads(r, "pdfs[]")
	if err != nil {
		respondError(w, err)
		return
	}
	if len(parts) < 2 {
		removeParts(h.store, h.logger, parts)
		writeError(w, http.StatusBadRequest, "at least two PDF files are required to merge")
		return
	}
	if err := requirePDFs(parts); err != nil {
		removeParts(h.store, h.logger, parts)
		respondError(w, err)
		return
	}

	ordered := domain.OrderParts(parts, h.intake.OrderIndices(r, len(parts)))
	paths := make([]string, len(ordered))
	for i, p := range ordered {
		paths[i] = p.Path
	}

	out, err := h.pdfOps.Merge(paths)
	removeParts(h.store, h.logger, parts)
	if err != nil {
		h.logger.Error("Merge failed", err, "files", len(parts))
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"mergedPdfPath": out.Path,
		"url":           out.URL,
		"message":       "PDFs merged successfully",
		"details": map[string]interface{}{
			"totalPages": out.TotalPages,
			"fileCount":  out.FileCount,
		},
	})
}

// SplitPDF handles POST /api/split-pdf
func (h *PDFHandler) SplitPDF(w http.ResponseWriter, r *http.Request) {
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

	out, err := h.pdfOps.Split(part.Path, part.OriginalName)
	removeParts(h.store, h.logger, parts)
	if err != nil {
		h.logger.Error("Split failed", err, "file", part.OriginalName, "size", part.Size)
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"message":      "PDF split successfully",
		"pages":        out.Pages,
		"originalFile": out.OriginalFile,
	})
}

// CompressPDF handles POST /api/compress-pdf
func (h *PDFHandler) CompressPDF(w http.ResponseWriter, r *http.Request) {
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

	level := r.FormValue("compressionLevel")
	if level == "" {
		level = "medium"
	}

	out, err := h.pdfOps.Compress(part.Path, level)
	removeParts(h.store, h.logger, parts)
	if err != nil {
		h.logger.Error("Compression failed", err, "file", part.OriginalName, "level", level)
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":          true,
		"message":          "PDF compressed successfully",
		"originalSize":     out.OriginalSize,
		"compressedSize":   out.CompressedSize,
		"compressionRatio": out.Ratio,
		"url":              out.URL,
		"fullPath":         out.Path,
	})
}
