package middleware

import (
	"net/http"
	"time"

	"github.com/jhaveripatric/ota-gateway/internal/logger"
)

// StatusRecorder captures the status code and body size written by a handler.
type StatusRecorder struct {
	http.ResponseWriter
	Status int
	Bytes  int
}

// NewStatusRecorder wraps w, defaulting the status to 200.
func NewStatusRecorder(w http.ResponseWriter) *StatusRecorder {
	return &StatusRecorder{ResponseWriter: w, Status: http.StatusOK}
}

func (sr *StatusRecorder) WriteHeader(code int) {
	sr.Status = code
	sr.ResponseWriter.WriteHeader(code)
}

func (sr *StatusRecorder) Write(p []byte) (int, error) {
	n, err := sr.ResponseWriter.Write(p)
	sr.Bytes += n
	return n, err
}

// Unwrap exposes the wrapped writer to http.ResponseController.
func (sr *StatusRecorder) Unwrap() http.ResponseWriter {
	return sr.ResponseWriter
}

// Logger writes one access log line per request.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := NewStatusRecorder(w)
		next.ServeHTTP(rec, r)

		logger.InfoKV(r.Context(), "http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.Status,
			"bytes", rec.Bytes,
			"duration", time.Since(start),
			"remote", r.RemoteAddr,
		)
	})
}
