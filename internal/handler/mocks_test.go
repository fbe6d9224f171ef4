package handler

import (
	"io"
	"net/http"
	"sync"

	"pdf-toolbox/internal/domain"
)

// Mock implementations for handler testing

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})         {}
func (nopLogger) Error(string, error, ...interface{}) {}
func (nopLogger) Debug(string, ...interface{})        {}
func (nopLogger) Warn(string, ...interface{})         {}

type mockIntake struct {
	parts   []domain.UploadedPart
	err     error
	indices []int
}

func (m *mockIntake) SaveUploads(r *http.Request, field string) ([]domain.UploadedPart, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.parts, nil
}

func (m *mockIntake) OrderIndices(r *http.Request, n int) []int {
	if m.indices != nil {
		return m.indices
	}
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	return indices
}

// mockStore records deletions; everything else is inert.
type mockStore struct {
	mu      sync.Mutex
	deleted []string
}

func (m *mockStore) Root() string                       { return "/tmp/mock-uploads" }
func (m *mockStore) EnsureRoot() error                  { return nil }
func (m *mockStore) Save(string, io.Reader) (string, error) { return "", nil }
func (m *mockStore) Put(string, []byte) (string, error) { return "", nil }
func (m *mockStore) Read(string) ([]byte, error)        { return nil, domain.ErrArtifactNotFound }
func (m *mockStore) ListBySuffix(string, string) ([]domain.StoredArtifact, error) {
	return nil, nil
}
func (m *mockStore) MkdirBatch(string) (string, error) { return "", nil }
func (m *mockStore) Resolve(string) (string, error)    { return "", domain.ErrArtifactNotFound }

func (m *mockStore) Delete(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, name)
	return nil
}

func (m *mockStore) deletedPaths() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.deleted...)
}

type mockExtractor struct {
	text string
	err  error
	part domain.UploadedPart
	lang string
}

func (m *mockExtractor) ExtractText(part domain.UploadedPart, language string) (string, error) {
	m.part = part
	m.lang = language
	return m.text, m.err
}

type mockPDFOps struct {
	mergeOut   *domain.MergeOutput
	mergeErr   error
	mergePaths []string

	splitOut *domain.SplitOutput
	splitErr error

	compressOut   *domain.CompressOutput
	compressErr   error
	compressLevel string

	listed  []domain.StoredArtifact
	listErr error
}

func (m *mockPDFOps) Merge(paths []string) (*domain.MergeOutput, error) {
	m.mergePaths = paths
	return m.mergeOut, m.mergeErr
}

func (m *mockPDFOps) Split(path, originalName string) (*domain.SplitOutput, error) {
	return m.splitOut, m.splitErr
}

func (m *mockPDFOps) Compress(path, level string) (*domain.CompressOutput, error) {
	m.compressLevel = level
	return m.compressOut, m.compressErr
}

func (m *mockPDFOps) ListMerged() ([]domain.StoredArtifact, error) {
	return m.listed, m.listErr
}

type mockConverter struct {
	imagesOut   *domain.ImagesToPDFOutput
	imagesErr   error
	imagePaths  []string
	pageSize    string
	orientation string

	pdfOut  *domain.PDFToImagesOutput
	pdfErr  error
	format  string
	quality string
}

func (m *mockConverter) ImagesToPDF(paths []string, pageSize, orientation string) (*domain.ImagesToPDFOutput, error) {
	m.imagePaths = paths
	m.pageSize = pageSize
	m.orientation = orientation
	return m.imagesOut, m.imagesErr
}

func (m *mockConverter) PDFToImages(path, format, quality string) (*domain.PDFToImagesOutput, error) {
	m.format = format
	m.quality = quality
	return m.pdfOut, m.pdfErr
}

type mockProtector struct {
	out      *domain.ProtectOutput
	err      error
	password string
}

func (m *mockProtector) Protect(path, password string) (*domain.ProtectOutput, error) {
	m.password = password
	return m.out, m.err
}

func (m *mockProtector) Unprotect(path, password string) (*domain.ProtectOutput, error) {
	m.password = password
	return m.out, m.err
}

func pdfPart(name, path string) domain.UploadedPart {
	return domain.UploadedPart{
		FieldName:    "pdf",
		OriginalName: name,
		MIMEType:     "application/pdf",
		Size:         1024,
		Path:         path,
	}
}

func imagePart(name, path string) domain.UploadedPart {
	return domain.UploadedPart{
		FieldName:    "images[]",
		OriginalName: name,
		MIMEType:     "image/png",
		Size:         512,
		Path:         path,
	}
}
