package handler

import (
	"net/http"

	"pdf-toolbox/internal/domain"
)

// ProtectHandler handles PDF password protection and removal
type ProtectHandler struct {
	intake    domain.UploadIntake
	protector domain.Protector
	store     domain.ArtifactStore
	logger    domain.Logger
}

// NewProtectHandler creates a new protection handler instance
func NewProtectHandler(intake domain.UploadIntake, protector domain.Protector, store domain.ArtifactStore, logger domain.Logger) *ProtectHandler {
	return &ProtectHandler{
		intake:    intake,
		protector: protector,
		store:     store,
		logger:    logger,
	}
}

// ProtectPDF handles POST /api/protect-pdf
func (h *ProtectHandler) ProtectPDF(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, "protected", h.protector.Protect)
}

// UnprotectPDF handles POST /api/unprotect-pdf. A tool failure identified as
// a password problem is answered with 401.
func (h *ProtectHandler) UnprotectPDF(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, "unprotected", h.protector.Unprotect)
}

func (h *ProtectHandler) run(
	w http.ResponseWriter,
	r *http.Request,
	verb string,
	op func(path, password string) (*domain.ProtectOutput, error),
) {
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

	password := r.FormValue("password")
	if password == "" {
		removeParts(h.store, h.logger, parts)
		writeError(w, http.StatusBadRequest, "password is required")
		return
	}

	out, err := op(part.Path, password)
	removeParts(h.store, h.logger, parts)
	if err != nil {
		h.logger.Error("Protection operation failed", err, "file", part.OriginalName)
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"message":      "PDF " + verb + " successfully",
		"originalFile": part.OriginalName,
		"fullPath":     out.Path,
		"url":          out.URL,
	})
}
