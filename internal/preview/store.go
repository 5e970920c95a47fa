// Package preview keeps the local spool of optimistic profile-image
// previews. A selected image is copied here and shown immediately,
// independent of whether the upstream upload succeeds.
package preview

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

type Store struct {
	dir string
}

// NewStore opens (creating if needed) the spool directory.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create preview dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the spool directory for read-only serving.
func (s *Store) Dir() string {
	return s.dir
}

// Save writes the image under a fresh random name and returns that
// name. The original extension is kept so the file server can infer a
// content type.
func (s *Store) Save(originalName string, r io.Reader) (string, error) {
	name := uuid.New().String() + filepath.Ext(originalName)
	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create preview file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("write preview file: %w", err)
	}
	return name, nil
}

// Purge removes spool files older than the given age and reports how
// many were deleted.
func (s *Store) Purge(olderThan time.Duration) (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, fmt.Errorf("read preview dir: %w", err)
	}

	cutoff := time.Now().Add(-olderThan)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(s.dir, entry.Name())); err == nil {
				removed++
			}
		}
	}
	return removed, nil
}
