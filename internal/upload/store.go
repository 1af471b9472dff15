// Package upload stores listing images on local disk.
package upload

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// DiskStore writes uploaded images into a single directory. Stored
// names are generated, so a client-supplied filename can never escape
// the directory.
type DiskStore struct {
	dir string
}

// NewDiskStore ensures dir exists and returns a store over it.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

// Save writes r to a new file and returns the stored file name. Only
// the extension of the original filename is kept.
func (s *DiskStore) Save(filename string, r io.Reader) (string, error) {
	name := uuid.NewString() + filepath.Ext(filename)
	path := filepath.Join(s.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("write image file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("close image file: %w", err)
	}
	return name, nil
}

// Remove deletes a previously stored file by name.
func (s *DiskStore) Remove(name string) error {
	return os.Remove(filepath.Join(s.dir, filepath.Base(name)))
}

// Dir returns the directory files are stored under.
func (s *DiskStore) Dir() string {
	return s.dir
}
