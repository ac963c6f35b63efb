package manifest

const (
	// ContentTypeJavaScript is used for the launch bundle regardless of its extension.
	ContentTypeJavaScript = "application/javascript"
	// ContentTypeOctetStream is the fallback for unknown extensions.
	ContentTypeOctetStream = "application/octet-stream"
)

var contentTypes = map[string]string{
	"png":   "image/png",
	"jpg":   "image/jpeg",
	"jpeg":  "image/jpeg",
	"gif":   "image/gif",
	"ttf":   "font/ttf",
	"woff":  "font/woff",
	"woff2": "font/woff2",
	"json":  "application/json",
	"js":    ContentTypeJavaScript,
	"hbc":   ContentTypeJavaScript,
}

// ContentType maps an asset extension (without dot) to its MIME type.
func ContentType(ext string) string {
	if ct, ok := contentTypes[ext]; ok {
		return ct
	}

	return ContentTypeOctetStream
}
