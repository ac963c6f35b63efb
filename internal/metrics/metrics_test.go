package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMiddleware_CountsByRoute(t *testing.T) {
	t.Parallel()

	m := New()
	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/manifest", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for range 3 {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/manifest", nil))
	}

	require.InDelta(t, 3, testutil.ToFloat64(m.requests.WithLabelValues("/manifest", "GET", "404")), 0)
}

func TestObserveManifest(t *testing.T) {
	t.Parallel()

	m := New()
	m.ObserveManifest("ios", ResultServed)
	m.ObserveManifest("ios", ResultServed)
	m.ObserveManifest("other", ResultNotFound)

	require.InDelta(t, 2, testutil.ToFloat64(m.manifests.WithLabelValues("ios", ResultServed)), 0)
	require.InDelta(t, 1, testutil.ToFloat64(m.manifests.WithLabelValues("other", ResultNotFound)), 0)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "ota_gateway_manifests_total")
}
