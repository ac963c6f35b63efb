package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/require"

	"github.com/jhaveripatric/ota-gateway/internal/config"
)

func TestDirStore_Open(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "assets"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "assets", "abc.png"), []byte("png"), 0o600))

	store, err := NewDirStore(dir)
	require.NoError(t, err)
	require.Equal(t, dir, store.Root())

	data, err := ReadAll(context.Background(), store, "assets/abc.png")
	require.NoError(t, err)
	require.Equal(t, "png", string(data))

	data, err = ReadAll(context.Background(), store, "/assets/../assets/abc.png")
	require.NoError(t, err)
	require.Equal(t, "png", string(data))

	_, err = store.Open(context.Background(), "assets/missing.png")
	require.ErrorIs(t, err, ErrNotExist)

	_, err = store.Open(context.Background(), "")
	require.ErrorIs(t, err, ErrNotExist)
}

func TestNewDirStore_Invalid(t *testing.T) {
	t.Parallel()

	_, err := NewDirStore(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)

	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0o600))
	_, err = NewDirStore(file)
	require.Error(t, err)
}

type fakeGetter struct {
	objects map[string]string
	err     error
	keys    []string
}

func (f *fakeGetter) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.keys = append(f.keys, *in.Key)
	if f.err != nil {
		return nil, f.err
	}
	body, ok := f.objects[*in.Key]
	if !ok {
		return nil, &s3types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(body))}, nil
}

func TestS3Store_Open(t *testing.T) {
	t.Parallel()

	api := &fakeGetter{objects: map[string]string{
		"prod/metadata.json": "{}",
	}}
	store := newS3Store(api, "bundles", "/prod/")

	data, err := ReadAll(context.Background(), store, "metadata.json")
	require.NoError(t, err)
	require.Equal(t, "{}", string(data))

	_, err = store.Open(context.Background(), "assets/x.png")
	require.ErrorIs(t, err, ErrNotExist)

	require.Equal(t, []string{"prod/metadata.json", "prod/assets/x.png"}, api.keys)
}

func TestS3Store_OpenError(t *testing.T) {
	t.Parallel()

	boom := errors.New("connection refused")
	store := newS3Store(&fakeGetter{err: boom}, "bundles", "")

	_, err := store.Open(context.Background(), "metadata.json")
	require.ErrorIs(t, err, boom)
	require.NotErrorIs(t, err, ErrNotExist)
}

func TestNew_Dir(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		Build:   config.BuildConfig{Dir: t.TempDir()},
		Storage: config.StorageConfig{Driver: config.StorageDir},
	}

	store, err := New(context.Background(), cfg)
	require.NoError(t, err)
	require.IsType(t, &DirStore{}, store)

	_, ok := store.(FileSystemStore)
	require.True(t, ok)
}
