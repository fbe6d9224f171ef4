// Package repository provides the filesystem-backed artifact store.
package repository

import (
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"pdf-toolbox/internal/domain"
)

// FileArtifactStore implements domain.ArtifactStore on top of a single
// configured root directory. Every name resolves against the root; nothing
// is ever written outside it.
type FileArtifactStore struct {
	root   string
	logger domain.Logger
}

// NewFileArtifactStore creates a store rooted at root. A relative root is
// made absolute so that download resolution can compare paths reliably.
func NewFileArtifactStore(root string, logger domain.Logger) *FileArtifactStore {
	abs, err := filepath.Abs(root)
	if err != nil {
		// Keep the configured value; EnsureRoot will surface the problem.
		abs = filepath.Clean(root)
	}
	return &FileArtifactStore{
		root:   abs,
		logger: logger,
	}
}

// Root returns the absolute store root directory.
func (s *FileArtifactStore) Root() string {
	return s.root
}

// EnsureRoot creates the root directory if absent. MkdirAll is idempotent,
// so concurrent first-use is safe.
func (s *FileArtifactStore) EnsureRoot() error {
	return os.MkdirAll(s.root, 0o755)
}

// Save streams r into a file named name under the root.
func (s *FileArtifactStore) Save(name string, r io.Reader) (string, error) {
	if err := s.EnsureRoot(); err != nil {
		return "", err
	}
	path, err := s.join(name)
	if err != nil {
		return "", err
	}
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		_ = os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", err
	}
	return path, nil
}

// Put writes data to a file named name under the root.
func (s *FileArtifactStore) Put(name string, data []byte) (string, error) {
	if err := s.EnsureRoot(); err != nil {
		return "", err
	}
	path, err := s.join(name)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// Read returns the contents of name, or domain.ErrArtifactNotFound.
func (s *FileArtifactStore) Read(name string) ([]byte, error) {
	path, err := s.join(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, domain.ErrArtifactNotFound
	}
	return data, err
}

// ListBySuffix enumerates direct entries of the root matching suffix, and
// prefix when non-empty. Entries removed while enumerating are skipped:
// another request or the cleanup scheduler may delete concurrently.
func (s *FileArtifactStore) ListBySuffix(suffix, prefix string) ([]domain.StoredArtifact, error) {
	entries, err := os.ReadDir(s.root)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	artifacts := make([]domain.StoredArtifact, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, suffix) {
			continue
		}
		if prefix != "" && !strings.HasPrefix(name, prefix) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		artifacts = append(artifacts, domain.StoredArtifact{
			Name: name,
			URL:  "/uploads/" + name,
			Date: info.ModTime(),
		})
	}
	return artifacts, nil
}

// Delete removes name, which may be a bare name or a full path inside the
// root. Missing files are not an error.
func (s *FileArtifactStore) Delete(name string) error {
	path, err := s.join(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// MkdirBatch creates a batch subdirectory under the root.
func (s *FileArtifactStore) MkdirBatch(name string) (string, error) {
	path, err := s.join(name)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return "", err
	}
	return path, nil
}

// Resolve maps a client-supplied file reference to a readable path inside the
// root. Absolute references already inside the root are honored as-is; an
// absolute reference outside the root is reduced to its basename joined to
// the root, which keeps legacy absolute URLs working while defeating path
// traversal. Relative references join directly to the root. When the
// candidate is not readable, the root's direct entries are scanned for a
// basename match before giving up.
func (s *FileArtifactStore) Resolve(ref string) (string, error) {
	if decoded, err := url.QueryUnescape(ref); err == nil {
		ref = decoded
	}
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", domain.ErrArtifactNotFound
	}

	var candidate string
	if filepath.IsAbs(ref) {
		clean := filepath.Clean(ref)
		if s.contains(clean) {
			candidate = clean
		} else {
			candidate = filepath.Join(s.root, filepath.Base(clean))
		}
	} else {
		candidate = filepath.Join(s.root, ref)
		if !s.contains(candidate) {
			candidate = filepath.Join(s.root, filepath.Base(ref))
		}
	}

	if isReadableFile(candidate) {
		return candidate, nil
	}

	// Fallback scan: the reference may carry a stale directory component.
	base := filepath.Base(ref)
	entries, err := os.ReadDir(s.root)
	if err == nil {
		for _, entry := range entries {
			if !entry.IsDir() && entry.Name() == base {
				return filepath.Join(s.root, base), nil
			}
		}
	}
	return "", domain.ErrArtifactNotFound
}

// join resolves name against the root, accepting full paths already inside
// the root and rejecting anything that would escape it.
func (s *FileArtifactStore) join(name string) (string, error) {
	var path string
	if filepath.IsAbs(name) {
		path = filepath.Clean(name)
	} else {
		path = filepath.Join(s.root, name)
	}
	if !s.contains(path) {
		return "", domain.ErrInvalidFile
	}
	return path, nil
}

func (s *FileArtifactStore) contains(path string) bool {
	rel, err := filepath.Rel(s.root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func isReadableFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
