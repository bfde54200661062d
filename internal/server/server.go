package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"github.com/me/taskplan/internal/config"
	"github.com/me/taskplan/internal/scheduler"
	"github.com/me/taskplan/internal/ui"
)

// Version is reported by the health and discovery endpoints.
const Version = "0.1.0"

// Server is the taskplan HTTP server: JSON API under /api/v1 and the HTML
// UI at the root.
type Server struct {
	router    chi.Router
	logger    *slog.Logger
	config    config.ServerConfig
	startTime time.Time
	sched     *scheduler.Shared
	limiter   *rate.Limiter // nil when throttling is off
	ui        *ui.UI
}

// Option configures optional Server dependencies.
type Option func(*Server)

// WithLimiter overrides the limiter built from the config.
func WithLimiter(l *rate.Limiter) Option {
	return func(s *Server) {
		s.limiter = l
	}
}

// New creates a new Server with all routes registered.
func New(cfg config.ServerConfig, sched *scheduler.Shared, logger *slog.Logger, opts ...Option) *Server {
	s := &Server{
		router:    chi.NewRouter(),
		logger:    logger.With("component", "server"),
		config:    cfg,
		startTime: time.Now(),
		sched:     sched,
	}
	if cfg.RatePerSec > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSec), cfg.RateBurst)
	}
	for _, opt := range opts {
		opt(s)
	}

	s.ui = ui.New(sched, logger)

	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Handler returns the http.Handler for this server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() {
	r := s.router

	// Global middleware
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(s.logger))

	// UI routes (HTML). Form posts share the API throttle.
	r.Group(func(r chi.Router) {
		r.Use(s.throttleWrites)
		s.ui.RegisterRoutes(r)
	})

	// API routes (JSON)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/", s.handleDiscovery)
		r.Get("/health", s.handleHealth)

		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", s.handleListTasks)
			r.With(s.throttle).Post("/", s.handleAddTask)
			r.Route("/{name}", func(r chi.Router) {
				r.Get("/", s.handleGetTask)
				r.With(s.throttle).Delete("/", s.handleDeleteTask)
			})
		})

		r.Get("/order", s.handleOrder)
		r.Get("/schedule", s.handleSchedule)
	})
}
