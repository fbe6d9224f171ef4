package domain

import (
	"io"
	"net/http"
	"time"
)

// ArtifactStore is the shared upload directory: a flat namespace of files
// addressed by generated names, plus timestamped batch subdirectories for
// multi-output operations. All paths resolve against one configured root and
// no operation writes outside it.
type ArtifactStore interface {
	// Root returns the absolute store root directory.
	Root() string
	// EnsureRoot creates the root if absent. Safe under concurrent first-use.
	EnsureRoot() error
	// Save streams r into a file named name under the root and returns its full path.
	Save(name string, r io.Reader) (string, error)
	// Put writes data to a file named name under the root and returns its full path.
	Put(name string, data []byte) (string, error)
	// Read returns the contents of name, or ErrArtifactNotFound.
	Read(name string) ([]byte, error)
	// ListBySuffix enumerates direct entries of the root matching suffix, and
	// prefix when non-empty. Entries deleted concurrently are skipped.
	ListBySuffix(suffix, prefix string) ([]StoredArtifact, error)
	// Delete removes name. Missing files are not an error.
	Delete(name string) error
	// MkdirBatch creates a batch subdirectory and returns its full path.
	MkdirBatch(name string) (string, error)
	// Resolve maps a client-supplied file reference to a readable path inside
	// the root, or returns ErrArtifactNotFound. References pointing outside
	// the root never resolve outside it.
	Resolve(ref string) (string, error)
}

// CleanupScheduler deletes artifacts after a delay, independent of any
// request lifecycle. Deletion failures are logged, never escalated.
type CleanupScheduler interface {
	// ScheduleDelete removes the file or directory at path after delay.
	// Directories are removed recursively. Fire-and-forget.
	ScheduleDelete(path string, delay time.Duration)
}

// UploadIntake persists multipart form files into the artifact store.
type UploadIntake interface {
	// SaveUploads stores every file under the given form field and returns one
	// part per file. Returns a validation error when the field is absent.
	SaveUploads(r *http.Request, field string) ([]UploadedPart, error)
	// OrderIndices resolves the order_N form values for n files, falling back
	// to arrival position for missing or invalid indices.
	OrderIndices(r *http.Request, n int) []int
}

// TextExtractor produces plain text from an uploaded document: OCR for
// images, native text extraction for PDFs.
type TextExtractor interface {
	ExtractText(part UploadedPart, language string) (string, error)
}

// PDFOperations covers the page-level PDF transformations.
type PDFOperations interface {
	Merge(paths []string) (*MergeOutput, error)
	Split(path, originalName string) (*SplitOutput, error)
	Compress(path, level string) (*CompressOutput, error)
	ListMerged() ([]StoredArtifact, error)
}

// Converter covers format conversions between images and PDFs.
type Converter interface {
	ImagesToPDF(paths []string, pageSize, orientation string) (*ImagesToPDFOutput, error)
	PDFToImages(path, format, quality string) (*PDFToImagesOutput, error)
}

// Protector applies and removes password protection via the external tool.
type Protector interface {
	Protect(path, password string) (*ProtectOutput, error)
	Unprotect(path, password string) (*ProtectOutput, error)
}

// Logger defines the interface for logging operations
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
}

// Config defines the interface for configuration management
type Config interface {
	GetServerPort() string
	GetUploadPath() string
	GetMaxFileSize() int64
	GetLogLevel() string
	GetQPDFPath() string
	GetAllowedOrigins() []string
	GetSplitRetention() time.Duration
	GetBatchRetention() time.Duration
}
