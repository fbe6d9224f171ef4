package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"pdf-toolbox/internal/domain"
	apperrors "pdf-toolbox/pkg/errors"
)

// PDFService implements the page-level PDF transformations: merge, split and
// compress. Implements domain.PDFOperations.
type PDFService struct {
	store          domain.ArtifactStore
	scheduler      domain.CleanupScheduler
	splitRetention time.Duration
	logger         domain.Logger
}

// NewPDFService creates a new PDF service instance
func NewPDFService(
	store domain.ArtifactStore,
	scheduler domain.CleanupScheduler,
	splitRetention time.Duration,
	logger domain.Logger,
) *PDFService {
	return &PDFService{
		store:          store,
		scheduler:      scheduler,
		splitRetention: splitRetention,
		logger:         logger,
	}
}

// Merge concatenates the given PDFs, in order, into one retained output.
// All-or-nothing: a partial merge would be a correctness violation, so any
// input that fails to parse or has zero pages aborts the whole request and
// removes whatever partial output was written.
func (s *PDFService) Merge(paths []string) (*domain.MergeOutput, error) {
	totalPages := 0
	for _, path := range paths {
		count, err := api.PageCountFile(path)
		if err != nil {
			return nil, apperrors.NewProcessingError(
				fmt.Sprintf("failed to read PDF %q", filepath.Base(path)), err)
		}
		if count == 0 {
			return nil, apperrors.NewProcessingError(
				fmt.Sprintf("PDF %q has no pages", filepath.Base(path)), nil)
		}
		totalPages += count
	}

	name := fmt.Sprintf("merged-%d.pdf", time.Now().UnixMilli())
	outPath := filepath.Join(s.store.Root(), name)

	if err := api.MergeCreateFile(paths, outPath, false, nil); err != nil {
		if delErr := s.store.Delete(name); delErr != nil {
			s.logger.Warn("Failed to remove partial merge output", "name", name, "error", delErr)
		}
		return nil, apperrors.NewProcessingError("failed to merge PDFs", err)
	}

	s.logger.Info("Merged PDFs", "files", len(paths), "pages", totalPages, "output", name)
	return &domain.MergeOutput{
		Name:       name,
		Path:       outPath,
		URL:        "/uploads/" + name,
		TotalPages: totalPages,
		FileCount:  len(paths),
	}, nil
}

// Split produces one single-page PDF per page of the input. Inputs with a
// single page are rejected. A page that fails to extract is skipped; the
// request only fails when no page succeeds. Outputs are transient and are
// scheduled for deletion after the configured retention.
func (s *PDFService) Split(path, originalName string) (*domain.SplitOutput, error) {
	count, err := api.PageCountFile(path)
	if err != nil {
		return nil, apperrors.NewProcessingError("failed to read PDF", err)
	}
	if count < 2 {
		return nil, apperrors.NewValidationError("PDF must have more than one page to split")
	}

	ts := time.Now().UnixMilli()
	pages := make([]domain.PageArtifact, 0, count)
	for pageNum := 1; pageNum <= count; pageNum++ {
		name := fmt.Sprintf("split-page-%d-%d.pdf", pageNum, ts)
		outPath := filepath.Join(s.store.Root(), name)
		if err := api.TrimFile(path, outPath, []string{strconv.Itoa(pageNum)}, nil); err != nil {
			s.logger.Warn("Failed to extract page", "page", pageNum, "total", count, "error", err)
			continue
		}
		info, err := os.Stat(outPath)
		if err != nil {
			s.logger.Warn("Failed to stat split output", "name", name, "error", err)
			continue
		}
		s.scheduler.ScheduleDelete(outPath, s.splitRetention)
		pages = append(pages, domain.PageArtifact{
			FullPath:   outPath,
			PageNumber: pageNum,
			Filename:   name,
			URL:        "/uploads/" + name,
			Size:       info.Size(),
		})
	}

	if len(pages) == 0 {
		return nil, apperrors.NewProcessingError("failed to split PDF: no pages could be extracted", nil)
	}
	s.logger.Info("Split PDF", "pages", len(pages), "of", count)
	return &domain.SplitOutput{
		Pages:        pages,
		OriginalFile: originalName,
	}, nil
}

// Compress applies library-level stream compaction and metadata stripping.
// When no strategy produces a smaller file, the original bytes are kept under
// the new name: lack of shrinkage is never reported as a failure.
func (s *PDFService) Compress(path, level string) (*domain.CompressOutput, error) {
	origInfo, err := os.Stat(path)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to read input PDF", err)
	}
	origSize := origInfo.Size()

	name := fmt.Sprintf("compressed-%d.pdf", time.Now().UnixMilli())
	outPath := filepath.Join(s.store.Root(), name)

	if err := api.OptimizeFile(path, outPath, nil); err != nil {
		s.logger.Warn("Optimization failed; keeping original bytes", "level", level, "error", err)
		if err := s.copyOriginal(path, name); err != nil {
			return nil, err
		}
	}

	outInfo, err := os.Stat(outPath)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to stat compressed output", err)
	}
	compressedSize := outInfo.Size()
	if compressedSize >= origSize {
		// Optimization grew the file; fall back to an uncompressed copy.
		if err := s.copyOriginal(path, name); err != nil {
			return nil, err
		}
		compressedSize = origSize
	}

	ratio := 0.0
	if origSize > 0 && compressedSize < origSize {
		ratio = float64(origSize-compressedSize) / float64(origSize) * 100
	}

	s.logger.Info("Compressed PDF", "level", level, "original", origSize, "compressed", compressedSize)
	return &domain.CompressOutput{
		Name:           name,
		Path:           outPath,
		URL:            "/uploads/" + name,
		OriginalSize:   origSize,
		CompressedSize: compressedSize,
		Ratio:          ratio,
	}, nil
}

// ListMerged enumerates retained merge outputs.
func (s *PDFService) ListMerged() ([]domain.StoredArtifact, error) {
	artifacts, err := s.store.ListBySuffix(".pdf", "merged-")
	if err != nil {
		return nil, apperrors.NewStorageError("failed to list merged PDFs", err)
	}
	return artifacts, nil
}

func (s *PDFService) copyOriginal(path, name string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return apperrors.NewStorageError("failed to read input PDF", err)
	}
	if _, err := s.store.Put(name, data); err != nil {
		return apperrors.NewStorageError("failed to write output PDF", err)
	}
	return nil
}
