package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// DirStore reads the build output from a local directory.
type DirStore struct {
	root string
	fsys fs.FS
}

// NewDirStore creates a store rooted at dir. The directory must exist.
func NewDirStore(dir string) (*DirStore, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("stat build dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("build path %s is not a directory", dir)
	}

	return &DirStore{root: dir, fsys: os.DirFS(dir)}, nil
}

// Open opens key relative to the store root.
func (s *DirStore) Open(_ context.Context, key string) (io.ReadCloser, error) {
	name, err := cleanKey(key)
	if err != nil {
		return nil, err
	}

	f, err := s.fsys.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("open %s: %w", name, ErrNotExist)
		}
		return nil, fmt.Errorf("open %s: %w", name, err)
	}

	return f, nil
}

// FS returns the underlying filesystem.
func (s *DirStore) FS() fs.FS {
	return s.fsys
}

// Root returns the directory the store reads from.
func (s *DirStore) Root() string {
	return s.root
}
