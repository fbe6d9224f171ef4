package service

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	apperrors "pdf-toolbox/pkg/errors"
)

func multipartRequest(t *testing.T, field string, files map[string][]byte, values map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for name, content := range files {
		part, err := w.CreateFormFile(field, name)
		if err != nil {
			t.Fatalf("CreateFormFile: %v", err)
		}
		if _, err := part.Write(content); err != nil {
			t.Fatalf("write part: %v", err)
		}
	}
	for k, v := range values {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("WriteField: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	r := httptest.NewRequest(http.MethodPost, "/api/merge-pdfs", &body)
	r.Header.Set("Content-Type", w.FormDataContentType())
	return r
}

func TestSaveUploadsStoresParts(t *testing.T) {
	store := newServiceStore(t)
	intake := NewUploadIntake(store, 1<<20, nopLogger{})

	r := multipartRequest(t, "pdfs[]", map[string][]byte{
		"a.pdf": []byte("%PDF-a"),
		"b.pdf": []byte("%PDF-b"),
	}, nil)

	parts, err := intake.SaveUploads(r, "pdfs[]")
	if err != nil {
		t.Fatalf("SaveUploads: %v", err)
	}
	if len(parts) != 2 {
		t.Fatalf("expected 2 parts, got %d", len(parts))
	}
	seen := map[string]bool{}
	for _, p := range parts {
		if p.FieldName != "pdfs[]" {
			t.Fatalf("unexpected field name %s", p.FieldName)
		}
		base := strings.TrimSuffix(p.Path[strings.LastIndex(p.Path, "/")+1:], ".pdf")
		if !strings.HasPrefix(base, "pdfs-") {
			t.Fatalf("storage name missing field prefix: %s", p.Path)
		}
		if seen[p.Path] {
			t.Fatalf("duplicate storage path %s", p.Path)
		}
		seen[p.Path] = true
		if _, err := os.Stat(p.Path); err != nil {
			t.Fatalf("part not on disk: %v", err)
		}
		if p.Size <= 0 {
			t.Fatalf("expected positive size, got %d", p.Size)
		}
	}
}

func TestSaveUploadsMissingField(t *testing.T) {
	store := newServiceStore(t)
	intake := NewUploadIntake(store, 1<<20, nopLogger{})

	r := multipartRequest(t, "other", map[string][]byte{"a.pdf": []byte("x")}, nil)

	_, err := intake.SaveUploads(r, "pdf")
	if err == nil {
		t.Fatal("expected missing field to be rejected")
	}
	if !apperrors.IsType(err, apperrors.ErrorTypeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSaveUploadsEnforcesSizeLimit(t *testing.T) {
	store := newServiceStore(t)
	intake := NewUploadIntake(store, 10, nopLogger{})

	r := multipartRequest(t, "pdf", map[string][]byte{
		"big.pdf": bytes.Repeat([]byte("x"), 64),
	}, nil)

	_, err := intake.SaveUploads(r, "pdf")
	if err == nil {
		t.Fatal("expected oversized upload to be rejected")
	}
	if !apperrors.IsType(err, apperrors.ErrorTypeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	// Nothing may be left behind after a rejected upload.
	entries, err := os.ReadDir(store.Root())
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty store after rejection, found %d entries", len(entries))
	}
}

func TestOrderIndices(t *testing.T) {
	store := newServiceStore(t)
	intake := NewUploadIntake(store, 1<<20, nopLogger{})

	r := multipartRequest(t, "pdfs[]", map[string][]byte{"a.pdf": []byte("x")}, map[string]string{
		"order_0": "2",
		"order_1": "0",
		"order_2": "not-a-number",
	})
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		t.Fatalf("ParseMultipartForm: %v", err)
	}

	indices := intake.OrderIndices(r, 4)
	want := []int{2, 0, 2, 3} // order_2 invalid -> position, order_3 missing -> position
	for i, idx := range indices {
		if idx != want[i] {
			t.Fatalf("index %d: expected %d, got %d (all: %v)", i, want[i], idx, indices)
		}
	}
}
