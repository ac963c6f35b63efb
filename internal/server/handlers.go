package server

import (
	"net/http"
	"strings"

	"github.com/jhaveripatric/ota-gateway/internal/logger"
	"github.com/jhaveripatric/ota-gateway/internal/manifest"
	"github.com/jhaveripatric/ota-gateway/internal/metrics"
)

const (
	defaultPlatform       = "android"
	defaultRuntimeVersion = "1.0.0"

	errPlatformNotFound = "Platform not found"
	errManifestFailed   = "Failed to generate manifest"
)

func (s *Server) healthHandler(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// readyHandler reports whether the build metadata can currently be loaded.
func (s *Server) readyHandler(w http.ResponseWriter, r *http.Request) {
	if _, err := s.loader.Load(r.Context()); err != nil {
		respondJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status":  "unavailable",
			"message": err.Error(),
		})
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) manifestHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	platform := requestParam(r, "platform", "expo-platform", defaultPlatform)
	runtimeVersion := requestParam(r, "runtimeVersion", "expo-runtime-version", defaultRuntimeVersion)

	metadata, err := s.loader.Load(ctx)
	if err != nil {
		logger.ErrorKV(ctx, "load build metadata", "platform", platform, "error", err)
		s.metrics.ObserveManifest("unknown", metrics.ResultError)
		respondError(w, http.StatusInternalServerError, errManifestFailed, err.Error())
		return
	}

	m, err := s.builder.Build(metadata, platform, runtimeVersion, s.baseURL(r))
	switch {
	case manifest.IsNotFound(err):
		logger.WarnKV(ctx, "manifest requested for unknown platform", "platform", platform)
		s.metrics.ObserveManifest("unknown", metrics.ResultNotFound)
		respondError(w, http.StatusNotFound, errPlatformNotFound, "")
		return
	case err != nil:
		logger.ErrorKV(ctx, "build manifest", "platform", platform, "error", err)
		s.metrics.ObserveManifest(platform, metrics.ResultError)
		respondError(w, http.StatusInternalServerError, errManifestFailed, err.Error())
		return
	}

	s.metrics.ObserveManifest(platform, metrics.ResultServed)
	logger.Debugf(ctx, "manifest %s for %s runtime %s (%d assets)",
		m.ID, platform, runtimeVersion, len(m.Assets))

	w.Header().Set("Cache-Control", "private, max-age=0")
	respondJSON(w, http.StatusOK, m)
}

// requestParam reads a query parameter, falling back to the matching
// update-client header and then to def.
func requestParam(r *http.Request, query, header, def string) string {
	if v := r.URL.Query().Get(query); v != "" {
		return v
	}
	if v := strings.TrimSpace(r.Header.Get(header)); v != "" {
		return v
	}
	return def
}

// baseURL returns the origin clients should download assets from.
func (s *Server) baseURL(r *http.Request) string {
	if s.cfg.Server.PublicURL != "" {
		return s.cfg.Server.PublicURL
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	host := r.Host

	if s.cfg.Server.TrustProxyHeaders {
		if proto := firstValue(r.Header.Get("X-Forwarded-Proto")); proto == "http" || proto == "https" {
			scheme = proto
		}
		if fwd := firstValue(r.Header.Get("X-Forwarded-Host")); fwd != "" {
			host = fwd
		}
	}

	return scheme + "://" + host
}

func firstValue(header string) string {
	v, _, _ := strings.Cut(header, ",")
	return strings.TrimSpace(v)
}
