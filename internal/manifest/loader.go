package manifest

import (
	"context"

	"github.com/jhaveripatric/ota-gateway/internal/storage"
)

// Loader reads build metadata from a store. Every call goes to the store so
// a fresh export is picked up without a restart.
type Loader struct {
	store storage.Store
	key   string
}

// NewLoader creates a loader reading key from store.
func NewLoader(store storage.Store, key string) *Loader {
	return &Loader{store: store, key: key}
}

// Load reads and parses the metadata document. Failures are KindInfrastructure.
func (l *Loader) Load(ctx context.Context) (*BuildMetadata, error) {
	data, err := storage.ReadAll(ctx, l.store, l.key)
	if err != nil {
		return nil, newInfrastructureError("read metadata "+l.key, err)
	}

	metadata, err := Parse(data)
	if err != nil {
		return nil, newInfrastructureError("parse metadata "+l.key, err)
	}

	return metadata, nil
}
