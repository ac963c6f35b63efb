package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/jhaveripatric/ota-gateway/internal/config"
	"github.com/jhaveripatric/ota-gateway/internal/logger"
	"github.com/jhaveripatric/ota-gateway/internal/manifest"
	"github.com/jhaveripatric/ota-gateway/internal/metrics"
	"github.com/jhaveripatric/ota-gateway/internal/middleware"
	"github.com/jhaveripatric/ota-gateway/internal/storage"
)

// Server is the OTA update HTTP server.
type Server struct {
	cfg     *config.Config
	store   storage.Store
	loader  *manifest.Loader
	builder *manifest.Builder
	metrics *metrics.Metrics
	tracing func(http.Handler) http.Handler
	router  chi.Router
}

// Option customises a Server.
type Option func(*Server)

// WithBuilder replaces the manifest builder.
func WithBuilder(b *manifest.Builder) Option {
	return func(s *Server) {
		s.builder = b
	}
}

// WithMetrics sets the collectors used by the server.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// WithTracing wraps the router with a tracing middleware.
func WithTracing(mw func(http.Handler) http.Handler) Option {
	return func(s *Server) {
		s.tracing = mw
	}
}

// New creates a server serving the build output found in store.
func New(cfg *config.Config, store storage.Store, opts ...Option) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if store == nil {
		return nil, errors.New("store is required")
	}

	s := &Server{
		cfg:    cfg,
		store:  store,
		loader: manifest.NewLoader(store, cfg.Build.MetadataFile),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.builder == nil {
		s.builder = manifest.NewBuilder()
	}
	if s.metrics == nil {
		s.metrics = metrics.New()
	}

	s.router = s.buildRouter()
	return s, nil
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware stack (order matters)
	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Recovery)
	r.Use(cors.Handler(middleware.CORSOptions(s.cfg.Server.CORS.AllowedOrigins)))
	r.Use(middleware.ExpoHeaders)
	r.Use(middleware.Logger)
	r.Use(s.metrics.Middleware)

	r.Get("/health", s.healthHandler)
	r.Get("/readyz", s.readyHandler)
	r.Get("/manifest", s.manifestHandler)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	static := s.staticHandler()
	r.Get("/*", static.ServeHTTP)
	r.Head("/*", static.ServeHTTP)

	return r
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	if s.tracing != nil {
		return s.tracing(s.router)
	}
	return s.router
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr(),
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof(ctx, "OTA server listening on %s, build output %s (%s)",
			srv.Addr, s.cfg.Build.Dir, s.cfg.Storage.Driver)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()

	logger.Infof(ctx, "shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}
