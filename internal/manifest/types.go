package manifest

// BuildMetadata is the metadata.json document written by the bundle export.
type BuildMetadata struct {
	Version      int                         `json:"version,omitempty"`
	Bundler      string                      `json:"bundler,omitempty"`
	FileMetadata map[string]PlatformMetadata `json:"fileMetadata"`
}

// PlatformMetadata lists the launch bundle and assets exported for one platform.
type PlatformMetadata struct {
	Bundle string          `json:"bundle"`
	Assets []AssetMetadata `json:"assets"`
}

// AssetMetadata describes one exported asset. Ext carries no leading dot.
type AssetMetadata struct {
	Path string `json:"path"`
	Ext  string `json:"ext"`
}

// Manifest is the update document returned to clients.
type Manifest struct {
	ID             string  `json:"id"`
	CreatedAt      string  `json:"createdAt"`
	RuntimeVersion string  `json:"runtimeVersion"`
	Assets         []Asset `json:"assets"`
	LaunchAsset    Asset   `json:"launchAsset"`
}

// Asset is a downloadable file referenced by a manifest.
type Asset struct {
	Hash        string `json:"hash"`
	Key         string `json:"key"`
	ContentType string `json:"contentType"`
	URL         string `json:"url"`
}
