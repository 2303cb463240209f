package api

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/platinummonkey/pslint/pkg/httputil"
	"github.com/platinummonkey/pslint/pkg/linter"
	"github.com/platinummonkey/pslint/pkg/observability"
)

// Server represents the lint API server
type Server struct {
	registry *linter.Registry
	runner   *linter.Runner
	router   *mux.Router
	logger   *observability.Logger
	metrics  *observability.Metrics

	workspace    string
	maxBodyBytes int64
}

// ServerOption configures a Server
type ServerOption func(*Server)

// WithMetrics attaches prometheus metrics to the server's handlers.
func WithMetrics(m *observability.Metrics) ServerOption {
	return func(s *Server) { s.metrics = m }
}

// WithWorkspace restricts path-based lint requests to the given directory.
func WithWorkspace(dir string) ServerOption {
	return func(s *Server) { s.workspace = dir }
}

// WithMaxBodyBytes caps the size of POSTed script content.
func WithMaxBodyBytes(n int64) ServerOption {
	return func(s *Server) { s.maxBodyBytes = n }
}

// NewServer creates a new API server
func NewServer(registry *linter.Registry, runner *linter.Runner, logger *observability.Logger, opts ...ServerOption) *Server {
	s := &Server{
		registry:     registry,
		runner:       runner,
		router:       mux.NewRouter(),
		logger:       logger,
		workspace:    ".",
		maxBodyBytes: 10 * 1024 * 1024,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all the API routes
func (s *Server) setupRoutes() {
	s.router.HandleFunc("/api/v1/lint", s.lint).Methods("POST")
	s.router.HandleFunc("/api/v1/rules", s.listRules).Methods("GET")
	s.router.HandleFunc("/api/v1/rules/{name}", s.getRule).Methods("GET")
}

// Handler returns the fully wrapped HTTP handler: middleware chain plus
// OpenTelemetry instrumentation around the router.
func (s *Server) Handler() http.Handler {
	chain := httputil.Chain(
		httputil.RecoveryMiddleware,
		httputil.RequestIDMiddleware,
		httputil.LoggingMiddleware,
		httputil.ContentTypeMiddleware,
		httputil.MaxBytesMiddleware(s.maxBodyBytes),
		httputil.TimeoutMiddleware(60*time.Second),
	)
	handler := chain(s.router)
	if s.metrics != nil {
		handler = observability.HTTPMetricsMiddleware(s.metrics)(handler)
	}
	return otelhttp.NewHandler(handler, "pslint-api")
}
