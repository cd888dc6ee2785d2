package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/matside/pkg/dispatch"
	"github.com/m-mizutani/matside/pkg/metrics"
	"github.com/m-mizutani/matside/pkg/model"
	"github.com/m-mizutani/matside/pkg/usecase/tracking"
	"github.com/m-mizutani/matside/pkg/utils/logging"
)

const DefaultRequestTimeout = 3 * time.Minute

// UseCase is the set of operations served over HTTP
type UseCase interface {
	Record(ctx context.Context, category model.Category, data map[string]any) (*tracking.RecordResult, error)
	History(ctx context.Context, category model.Category) ([]*model.Record, error)
	Analysis(ctx context.Context, category model.Category) (*tracking.AnalysisResult, error)
	Alerts(ctx context.Context) ([]*model.Alert, error)
}

// Config holds server configuration
type Config struct {
	Addr    string
	UseCase UseCase
	// Metrics is optional; /metrics is served only when set
	Metrics *metrics.Metrics
	// QueueStats is optional and reported by /health
	QueueStats func() dispatch.Stats
	// RequestTimeout bounds the wait of one API request. The queued call
	// itself is not cancelled when it expires.
	RequestTimeout time.Duration
	Logger         *slog.Logger
}

// Server represents the HTTP server
type Server struct {
	router     *chi.Mux
	server     *http.Server
	logger     *slog.Logger
	uc         UseCase
	metrics    *metrics.Metrics
	queueStats func() dispatch.Stats
	timeout    time.Duration
	startedAt  time.Time
}

// New creates a new HTTP server
func New(cfg Config) *Server {
	s := &Server{
		router:     chi.NewRouter(),
		logger:     cfg.Logger,
		uc:         cfg.UseCase,
		metrics:    cfg.Metrics,
		queueStats: cfg.QueueStats,
		timeout:    cfg.RequestTimeout,
		startedAt:  time.Now(),
	}
	if s.logger == nil {
		s.logger = logging.Default()
	}
	s.logger = s.logger.With("component", "server")
	if s.timeout <= 0 {
		s.timeout = DefaultRequestTimeout
	}

	s.setupMiddleware()
	s.setupRoutes()

	s.server = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       30 * time.Second,
		// leave room to write the 504 after the request deadline
		WriteTimeout: s.timeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)

	// the web client is served from another origin
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)
	if s.metrics != nil {
		s.router.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/history/{type}", s.handleHistory)
		r.Get("/analysis/{type}", s.handleAnalysis)
		r.Get("/alerts", s.handleAlerts)
		r.Post("/{category}", s.handleRecord)
	})
}

// Handler returns the router, e.g. for httptest
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens and serves until Shutdown is called
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", "addr", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return goerr.Wrap(err, "HTTP server stopped", goerr.V("addr", s.server.Addr))
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	if err := s.server.Shutdown(ctx); err != nil {
		return goerr.Wrap(err, "failed to shutdown HTTP server")
	}
	return nil
}

// loggingMiddleware attaches a request scoped logger to the context, then
// logs and measures the request
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		logger := s.logger.With("request_id", middleware.GetReqID(r.Context()))
		r = r.WithContext(logging.With(r.Context(), logger))

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		duration := time.Since(start)
		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}

		if s.metrics != nil {
			s.metrics.RecordHTTPRequest(route, r.Method, ww.Status(), duration)
		}

		logger.Info("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", duration,
		)
	})
}
