package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/cors"
	"github.com/stretchr/testify/require"
)

func TestRequestID(t *testing.T) {
	t.Parallel()

	var seen string
	h := RequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NotEmpty(t, seen)
	require.Equal(t, seen, rec.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "client-id")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, "client-id", seen)
	require.Equal(t, "client-id", rec.Header().Get(RequestIDHeader))
}

func TestRecovery(t *testing.T) {
	t.Parallel()

	h := RequestID(Recovery(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/manifest", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "internal server error", body["error"])
	require.Equal(t, rec.Header().Get(RequestIDHeader), body["request_id"])
}

func TestExpoHeaders(t *testing.T) {
	t.Parallel()

	h := ExpoHeaders(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))

	require.Equal(t, "1", rec.Header().Get(ProtocolVersionHeader))
	require.Equal(t, "0", rec.Header().Get(SFVVersionHeader))
}

func TestLogger_RecordsStatus(t *testing.T) {
	t.Parallel()

	var recorded *StatusRecorder
	h := Logger(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		recorded = w.(*StatusRecorder)
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short"))
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusTeapot, recorded.Status)
	require.Equal(t, 5, recorded.Bytes)
}

func TestCORSOptions(t *testing.T) {
	t.Parallel()

	open := CORSOptions([]string{"*"})
	require.False(t, open.AllowCredentials)

	h := cors.Handler(open)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	req := httptest.NewRequest(http.MethodGet, "/manifest", nil)
	req.Header.Set("Origin", "https://anywhere.example")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	strict := CORSOptions([]string{"https://app.example.com"})
	require.True(t, strict.AllowCredentials)
}
