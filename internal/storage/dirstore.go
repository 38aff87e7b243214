// Package storage provides the on-disk side of the asset tree. Content
// lives under a single root directory whose layout mirrors the folder
// hierarchy recorded in the database.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"lempek/internal/domain"
)

// DirStore manages files and directories beneath a fixed root.
// All paths passed to its methods are relative to that root.
type DirStore struct {
	root string
}

// NewDirStore creates the root directory if needed and returns a store
// rooted at it.
func NewDirStore(root string) (*DirStore, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve storage root: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	return &DirStore{root: abs}, nil
}

// Root returns the absolute root directory
func (s *DirStore) Root() string {
	return s.root
}

func (s *DirStore) abs(rel string) string {
	return filepath.Join(s.root, filepath.FromSlash(rel))
}

// CreateDir creates a single directory. The parent must already exist.
func (s *DirStore) CreateDir(rel string) error {
	if err := os.Mkdir(s.abs(rel), 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w: %v", rel, domain.ErrStorage, err)
	}
	return nil
}

// CreateAll creates a directory along with any missing parents
func (s *DirStore) CreateAll(rel string) error {
	if err := os.MkdirAll(s.abs(rel), 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w: %v", rel, domain.ErrStorage, err)
	}
	return nil
}

// Rename moves a file or directory to a new relative path
func (s *DirStore) Rename(oldRel, newRel string) error {
	if err := os.Rename(s.abs(oldRel), s.abs(newRel)); err != nil {
		return fmt.Errorf("rename %q: %w: %v", oldRel, domain.ErrStorage, err)
	}
	return nil
}

// RemoveAll deletes a directory and everything beneath it
func (s *DirStore) RemoveAll(rel string) error {
	if err := os.RemoveAll(s.abs(rel)); err != nil {
		return fmt.Errorf("remove directory %q: %w: %v", rel, domain.ErrStorage, err)
	}
	return nil
}

// RemoveFile deletes a single file. A missing file is not an error.
func (s *DirStore) RemoveFile(rel string) error {
	if err := os.Remove(s.abs(rel)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove file %q: %w: %v", rel, domain.ErrStorage, err)
	}
	return nil
}

// Exists reports whether a file or directory exists at the path
func (s *DirStore) Exists(rel string) bool {
	_, err := os.Stat(s.abs(rel))
	return err == nil
}

// WriteFile streams content to the path and returns the number of bytes
// written. A partially written file is removed on failure.
func (s *DirStore) WriteFile(rel string, content io.Reader) (int64, error) {
	abs := s.abs(rel)

	f, err := os.Create(abs)
	if err != nil {
		return 0, fmt.Errorf("create file %q: %w: %v", rel, domain.ErrStorage, err)
	}

	size, err := io.Copy(f, content)
	if err != nil {
		f.Close()
		os.Remove(abs)
		return 0, fmt.Errorf("write file %q: %w: %v", rel, domain.ErrStorage, err)
	}

	if err := f.Close(); err != nil {
		os.Remove(abs)
		return 0, fmt.Errorf("write file %q: %w: %v", rel, domain.ErrStorage, err)
	}

	if err := os.Chmod(abs, 0o644); err != nil {
		os.Remove(abs)
		return 0, fmt.Errorf("chmod file %q: %w: %v", rel, domain.ErrStorage, err)
	}

	return size, nil
}
