package domain

import (
	"sort"
	"strings"
	"time"
)

// UploadedPart represents one file submitted through a multipart form,
// already persisted into the artifact store under a generated name.
type UploadedPart struct {
	FieldName    string `json:"field_name"`
	OriginalName string `json:"original_name"`
	MIMEType     string `json:"mime_type"`
	Size         int64  `json:"size"`
	Path         string `json:"path"`
}

// IsPDF reports whether the part's declared MIME type is a PDF.
func (p UploadedPart) IsPDF() bool {
	return p.MIMEType == "application/pdf"
}

// IsImage reports whether the part's declared MIME type is an image family type.
func (p UploadedPart) IsImage() bool {
	return strings.HasPrefix(p.MIMEType, "image/")
}

// OrderParts reorders parts by their resolved order indices. The sort is
// stable, so files sharing an index keep their arrival order.
func OrderParts(parts []UploadedPart, indices []int) []UploadedPart {
	if len(parts) != len(indices) {
		return parts
	}
	type keyed struct {
		part UploadedPart
		key  int
	}
	keyedParts := make([]keyed, len(parts))
	for i, p := range parts {
		keyedParts[i] = keyed{part: p, key: indices[i]}
	}
	sort.SliceStable(keyedParts, func(i, j int) bool {
		return keyedParts[i].key < keyedParts[j].key
	})
	out := make([]UploadedPart, len(parts))
	for i, kp := range keyedParts {
		out[i] = kp.part
	}
	return out
}

// StoredArtifact is a retained output listed back to clients.
type StoredArtifact struct {
	Name string    `json:"name"`
	URL  string    `json:"url"`
	Date time.Time `json:"date"`
}

// MergeOutput describes a completed merge operation.
type MergeOutput struct {
	Name       string `json:"name"`
	Path       string `json:"path"`
	URL        string `json:"url"`
	TotalPages int    `json:"totalPages"`
	FileCount  int    `json:"fileCount"`
}

// PageArtifact is a single-page output produced by splitting a PDF.
type PageArtifact struct {
	FullPath   string `json:"fullPath"`
	PageNumber int    `json:"pageNumber"`
	Filename   string `json:"filename"`
	URL        string `json:"url"`
	Size       int64  `json:"size"`
}

// SplitOutput describes a completed split operation.
type SplitOutput struct {
	Pages        []PageArtifact `json:"pages"`
	OriginalFile string         `json:"originalFile"`
}

// CompressOutput describes a completed compression operation. CompressedSize
// never exceeds OriginalSize: when no strategy shrank the file, the original
// bytes are kept under the new name and the ratio is reported as zero.
type CompressOutput struct {
	Name           string  `json:"name"`
	Path           string  `json:"path"`
	URL            string  `json:"url"`
	OriginalSize   int64   `json:"originalSize"`
	CompressedSize int64   `json:"compressedSize"`
	Ratio          float64 `json:"compressionRatio"`
}

// ImagesToPDFOutput describes a completed image-to-PDF conversion.
type ImagesToPDFOutput struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	URL         string `json:"url"`
	TotalPages  int    `json:"totalPages"`
	FileCount   int    `json:"fileCount"`
	PageSize    string `json:"pageSize"`
	Orientation string `json:"orientation"`
}

// ImageArtifact is one rasterized page from a PDF-to-image conversion.
type ImageArtifact struct {
	Filename   string `json:"filename"`
	URL        string `json:"url"`
	PageNumber int    `json:"pageNumber"`
	Size       int64  `json:"size"`
}

// PDFToImagesOutput describes a completed rasterization batch. The individual
// images and their zip live in a timestamped batch grouping and are removed
// together by the cleanup scheduler.
type PDFToImagesOutput struct {
	Images  []ImageArtifact `json:"images"`
	ZipName string          `json:"zipName"`
	ZipURL  string          `json:"zipUrl"`
	Note    string          `json:"note,omitempty"`
}

// ProtectOutput describes a completed protect or unprotect operation.
type ProtectOutput struct {
	Name string `json:"name"`
	Path string `json:"path"`
	URL  string `json:"url"`
}
