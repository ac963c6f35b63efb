package server

import (
	"errors"
	"io"
	"io/fs"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/jhaveripatric/ota-gateway/internal/logger"
	"github.com/jhaveripatric/ota-gateway/internal/manifest"
	"github.com/jhaveripatric/ota-gateway/internal/storage"
)

const indexFile = "index.html"

// staticHandler serves the build output. Local directories go through
// http.FileServer; remote stores are streamed object by object.
func (s *Server) staticHandler() http.Handler {
	if fsStore, ok := s.store.(storage.FileSystemStore); ok {
		return withObjectContentType(http.FileServer(http.FS(noListingFS{fsStore.FS()})))
	}
	return http.HandlerFunc(s.serveObject)
}

// withObjectContentType presets Content-Type so the file server types
// files the same way as serveObject instead of sniffing them.
func withObjectContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := strings.TrimPrefix(r.URL.Path, "/")
		if key == "" || strings.HasSuffix(key, "/") {
			key += indexFile
		}
		w.Header().Set("Content-Type", objectContentType(key))
		next.ServeHTTP(w, r)
	})
}

func (s *Server) serveObject(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimPrefix(r.URL.Path, "/")
	if key == "" || strings.HasSuffix(key, "/") {
		key += indexFile
	}

	body, err := s.store.Open(r.Context(), key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotExist) {
			logger.ErrorKV(r.Context(), "open static object", "key", key, "error", err)
		}
		http.NotFound(w, r)
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", objectContentType(key))
	if r.Method == http.MethodHead {
		return
	}
	if _, err := io.Copy(w, body); err != nil {
		logger.WarnKV(r.Context(), "stream static object", "key", key, "error", err)
	}
}

// objectContentType prefers the update asset table and falls back to the
// system MIME registry for everything else in the export (html, css, map).
func objectContentType(key string) string {
	ext := path.Ext(key)
	if ct := manifest.ContentType(strings.TrimPrefix(ext, ".")); ct != manifest.ContentTypeOctetStream {
		return ct
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return manifest.ContentTypeOctetStream
}

// noListingFS hides directories without an index.html so the file server
// answers 404 instead of rendering a listing.
type noListingFS struct {
	fsys fs.FS
}

func (n noListingFS) Open(name string) (fs.File, error) {
	f, err := n.fsys.Open(name)
	if err != nil {
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if info.IsDir() {
		index, err := n.fsys.Open(path.Join(name, indexFile))
		if err != nil {
			f.Close()
			return nil, fs.ErrNotExist
		}
		index.Close()
	}

	return f, nil
}
