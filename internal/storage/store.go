// Package storage gives read access to an exported build, either from a local
// directory or from an S3-compatible bucket.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/jhaveripatric/ota-gateway/internal/config"
)

// ErrNotExist is returned when the requested object does not exist.
var ErrNotExist = errors.New("object does not exist")

// Store opens objects of the build output by slash-separated key.
type Store interface {
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// FileSystemStore is implemented by stores backed by a filesystem that can be
// handed to http.FileServer directly.
type FileSystemStore interface {
	Store
	FS() fs.FS
}

// New builds the store selected by cfg.
func New(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.Storage.Driver {
	case config.StorageDir, "":
		return NewDirStore(cfg.Build.Dir)
	case config.StorageS3:
		return NewS3Store(ctx, cfg.Storage.S3)
	default:
		return nil, fmt.Errorf("unknown storage driver: %q", cfg.Storage.Driver)
	}
}

// ReadAll opens key and reads it fully.
func ReadAll(ctx context.Context, s Store, key string) ([]byte, error) {
	rc, err := s.Open(ctx, key)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}

	return data, nil
}

// cleanKey normalises key and rejects anything escaping the root.
func cleanKey(key string) (string, error) {
	key = strings.TrimPrefix(path.Clean("/"+key), "/")
	if key == "" || !fs.ValidPath(key) {
		return "", fmt.Errorf("invalid key %q: %w", key, ErrNotExist)
	}

	return key, nil
}
