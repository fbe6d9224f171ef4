package service

import (
	"fmt"
	"strings"

	"github.com/gen2brain/go-fitz"
	"github.com/otiai10/gosseract/v2"

	"pdf-toolbox/internal/domain"
	apperrors "pdf-toolbox/pkg/errors"
)

// OCRService extracts plain text from uploaded documents: native extraction
// for PDFs, OCR for images. Implements domain.TextExtractor.
type OCRService struct {
	logger domain.Logger
}

// NewOCRService creates a new OCR service instance
func NewOCRService(logger domain.Logger) *OCRService {
	return &OCRService{logger: logger}
}

// ExtractText returns the text content of an uploaded part. PDFs go through
// the rendering library's text layer; everything else is treated as an image
// and handed to the OCR engine.
func (s *OCRService) ExtractText(part domain.UploadedPart, language string) (string, error) {
	if part.IsPDF() {
		return s.extractPDFText(part.Path)
	}
	return s.recognizeImage(part.Path, language)
}

func (s *OCRService) extractPDFText(path string) (string, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return "", apperrors.NewProcessingError("failed to open PDF", err)
	}
	defer doc.Close()

	numPages := doc.NumPage()
	pages := make([]string, 0, numPages)
	for pageNum := 0; pageNum < numPages; pageNum++ {
		text, err := doc.Text(pageNum)
		if err != nil {
			s.logger.Warn("Failed to extract text from page", "page_num", pageNum+1, "total", numPages, "error", err)
			continue
		}
		if text = strings.TrimSpace(text); text != "" {
			pages = append(pages, text)
		}
	}
	return strings.Join(pages, "\n\n"), nil
}

func (s *OCRService) recognizeImage(path, language string) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if language != "" {
		if err := client.SetLanguage(language); err != nil {
			return "", apperrors.NewValidationError(fmt.Sprintf("unsupported OCR language %q", language), err.Error())
		}
	}
	if err := client.SetImage(path); err != nil {
		return "", apperrors.NewProcessingError("failed to load image for OCR", err)
	}
	text, err := client.Text()
	if err != nil {
		return "", apperrors.NewProcessingError("OCR engine failed", err)
	}
	return strings.TrimSpace(text), nil
}
