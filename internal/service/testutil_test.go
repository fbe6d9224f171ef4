package service

import (
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/jung-kurt/gofpdf"

	"pdf-toolbox/internal/repository"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})         {}
func (nopLogger) Error(string, error, ...interface{}) {}
func (nopLogger) Debug(string, ...interface{})        {}
func (nopLogger) Warn(string, ...interface{})         {}

// recordingScheduler captures schedule calls without deleting anything.
type recordingScheduler struct {
	mu    sync.Mutex
	paths []string
}

func (r *recordingScheduler) ScheduleDelete(path string, delay time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, path)
}

func (r *recordingScheduler) scheduled() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.paths...)
}

func newServiceStore(t *testing.T) *repository.FileArtifactStore {
	t.Helper()
	store := repository.NewFileArtifactStore(t.TempDir(), nopLogger{})
	if err := store.EnsureRoot(); err != nil {
		t.Fatalf("EnsureRoot: %v", err)
	}
	return store
}

// writeTestPDF creates a valid PDF with the given number of pages.
func writeTestPDF(t *testing.T, dir, name string, pages int) string {
	t.Helper()
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetFont("Helvetica", "", 12)
	for i := 0; i < pages; i++ {
		pdf.AddPage()
		pdf.Cell(0, 20, "test page")
	}
	path := filepath.Join(dir, name)
	if err := pdf.OutputFileAndClose(path); err != nil {
		t.Fatalf("write test pdf: %v", err)
	}
	return path
}

// writeTestImage creates a small PNG or JPEG with the given pixel dimensions.
func writeTestImage(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create test image: %v", err)
	}
	defer f.Close()
	switch filepath.Ext(name) {
	case ".jpg", ".jpeg":
		err = jpeg.Encode(f, img, nil)
	default:
		err = png.Encode(f, img)
	}
	if err != nil {
		t.Fatalf("encode test image: %v", err)
	}
	return path
}
