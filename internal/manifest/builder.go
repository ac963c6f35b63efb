package manifest

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TimeFormat is the ISO-8601 layout of Manifest.CreatedAt.
const TimeFormat = "2006-01-02T15:04:05.000Z"

// Builder turns build metadata into manifests. The zero value is not usable;
// create one with NewBuilder.
type Builder struct {
	now   func() time.Time
	newID func(platform string) string
}

// Option configures a Builder.
type Option func(*Builder)

// WithClock sets the clock used for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) {
		b.now = now
	}
}

// WithIDFunc sets the generator used for manifest ids.
func WithIDFunc(fn func(platform string) string) Option {
	return func(b *Builder) {
		b.newID = fn
	}
}

// NewBuilder creates a builder using the wall clock and random UUIDs.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		now:   time.Now,
		newID: newID,
	}
	for _, opt := range opts {
		opt(b)
	}

	return b
}

var defaultBuilder = NewBuilder()

// Build derives the manifest for platform from metadata using the default builder.
func Build(metadata *BuildMetadata, platform, runtimeVersion, baseURL string) (*Manifest, error) {
	return defaultBuilder.Build(metadata, platform, runtimeVersion, baseURL)
}

// Build derives the manifest for platform from metadata. Asset URLs are
// baseURL joined with the asset path. runtimeVersion is echoed verbatim.
func (b *Builder) Build(metadata *BuildMetadata, platform, runtimeVersion, baseURL string) (*Manifest, error) {
	if metadata == nil {
		return nil, newInfrastructureError("build metadata", errors.New("metadata is nil"))
	}

	entry, ok := metadata.FileMetadata[platform]
	if !ok {
		return nil, newPlatformNotFound(platform)
	}
	if entry.Bundle == "" {
		return nil, newInfrastructureError("platform "+platform, errors.New("no launch bundle in metadata"))
	}

	assets := make([]Asset, 0, len(entry.Assets))
	for _, a := range entry.Assets {
		assets = append(assets, newAsset(a.Path, ContentType(a.Ext), baseURL))
	}

	return &Manifest{
		ID:             b.newID(platform),
		CreatedAt:      b.now().UTC().Format(TimeFormat),
		RuntimeVersion: runtimeVersion,
		Assets:         assets,
		LaunchAsset:    newAsset(entry.Bundle, ContentTypeJavaScript, baseURL),
	}, nil
}

func newAsset(path, contentType, baseURL string) Asset {
	return Asset{
		Hash:        HashFromPath(path),
		Key:         path,
		ContentType: contentType,
		URL:         baseURL + "/" + path,
	}
}

// HashFromPath returns the part of the last path segment before its first dot.
// Export tools name files after their content hash; nothing here checks that.
func HashFromPath(path string) string {
	name := path[strings.LastIndex(path, "/")+1:]
	if i := strings.IndexByte(name, '.'); i >= 0 {
		name = name[:i]
	}

	return name
}

func newID(platform string) string {
	return platform + "-" + uuid.NewString()
}
