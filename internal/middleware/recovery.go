package middleware

import (
	"encoding/json"
	"net/http"
	"runtime/debug"

	"github.com/jhaveripatric/ota-gateway/internal/logger"
)

// Recovery recovers from panics and returns a JSON 500.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				reqID := GetRequestID(r.Context())
				logger.ErrorKV(r.Context(), "panic while serving request",
					"panic", rec,
					"path", r.URL.Path,
					"stack", string(debug.Stack()),
				)

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_ = json.NewEncoder(w).Encode(map[string]string{
					"error":      "internal server error",
					"request_id": reqID,
				})
			}
		}()
		next.ServeHTTP(w, r)
	})
}
