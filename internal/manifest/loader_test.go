package manifest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jhaveripatric/ota-gateway/internal/storage"
)

const exampleMetadata = `{
  "version": 0,
  "bundler": "metro",
  "fileMetadata": {
    "android": {
      "bundle": "bundles/abc123.hbc",
      "assets": [{"path": "assets/def456.png", "ext": "png"}]
    }
  }
}`

func newTestLoader(t *testing.T, contents string) (*Loader, string) {
	t.Helper()

	dir := t.TempDir()
	if contents != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "metadata.json"), []byte(contents), 0o600))
	}

	store, err := storage.NewDirStore(dir)
	require.NoError(t, err)

	return NewLoader(store, "metadata.json"), dir
}

func TestLoader_Load(t *testing.T) {
	t.Parallel()

	loader, _ := newTestLoader(t, exampleMetadata)

	md, err := loader.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, "metro", md.Bundler)
	require.Equal(t, PlatformMetadata{
		Bundle: "bundles/abc123.hbc",
		Assets: []AssetMetadata{{Path: "assets/def456.png", Ext: "png"}},
	}, md.FileMetadata["android"])
}

func TestLoader_ReadsFreshEveryTime(t *testing.T) {
	t.Parallel()

	loader, dir := newTestLoader(t, exampleMetadata)

	_, err := loader.Load(context.Background())
	require.NoError(t, err)

	updated := `{"fileMetadata": {"ios": {"bundle": "bundles/new.hbc", "assets": []}}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "metadata.json"), []byte(updated), 0o600))

	md, err := loader.Load(context.Background())
	require.NoError(t, err)
	require.Contains(t, md.FileMetadata, "ios")
	require.NotContains(t, md.FileMetadata, "android")
}

func TestLoader_Missing(t *testing.T) {
	t.Parallel()

	loader, _ := newTestLoader(t, "")

	md, err := loader.Load(context.Background())
	require.Nil(t, md)
	require.Equal(t, KindInfrastructure, KindOf(err))
	require.ErrorIs(t, err, storage.ErrNotExist)
	require.False(t, IsNotFound(err))
}

func TestLoader_Malformed(t *testing.T) {
	t.Parallel()

	loader, _ := newTestLoader(t, "{not json")

	_, err := loader.Load(context.Background())
	require.Equal(t, KindInfrastructure, KindOf(err))
	require.Contains(t, err.Error(), "parse metadata metadata.json")
}

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid", input: exampleMetadata},
		{name: "empty platforms", input: `{"fileMetadata": {}}`},
		{name: "missing fileMetadata", input: `{"version": 0}`, wantErr: true},
		{name: "missing bundle", input: `{"fileMetadata": {"android": {"assets": []}}}`},
		{name: "wrong type", input: `{"fileMetadata": []}`, wantErr: true},
		{name: "not json", input: `<html>`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Parse([]byte(tt.input))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}
