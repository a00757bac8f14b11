// Package httpapi serves the saved trips collection over a local JSON API
// for a browser front end.
package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/jacksmith/trips/internal/auth"
	"github.com/jacksmith/trips/internal/notify"
	"github.com/jacksmith/trips/internal/ops"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// Server holds dependencies for HTTP handlers.
type Server struct {
	manager *ops.Manager
	session *auth.Session
	notices *notify.Buffer
	logger  *slog.Logger
	origins []string
	router  *chi.Mux
}

// Option configures a Server.
type Option func(*Server)

// WithAllowedOrigins sets the origins allowed by CORS. By default only
// local development origins are allowed.
func WithAllowedOrigins(origins ...string) Option {
	return func(s *Server) { s.origins = origins }
}

// NewServer creates a Server with all routes configured.
func NewServer(manager *ops.Manager, session *auth.Session, notices *notify.Buffer, logger *slog.Logger, opts ...Option) *Server {
	if notices == nil {
		notices = notify.NewBuffer(1)
	}
	s := &Server{
		manager: manager,
		session: session,
		notices: notices,
		logger:  logger,
		origins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		router:  chi.NewRouter(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.requestLogger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))
	s.router.Use(middleware.RequestSize(maxBodyBytes))
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Route("/trips", func(r chi.Router) {
			r.Get("/", s.handleListTrips)
			r.Post("/", s.handleCreateTrip)
			r.Get("/{id}", s.handleGetTrip)
			r.Put("/{id}", s.handleSaveTrip)
			r.Delete("/{id}", s.handleDeleteTrip)
			r.Post("/{id}/favorite", s.handleToggleFavorite)
		})

		r.Get("/session", s.handleGetSession)
		r.Post("/session", s.handleLogin)
		r.Delete("/session", s.handleLogout)

		r.Get("/notices", s.handleNotices)
	})
}

// requestLogger logs one line per request.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.logger.InfoContext(r.Context(), "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// ListenAndServe serves on addr until ctx is done, then shuts down gracefully.
// The collection starts loading in the background first.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	s.manager.Start(ctx)

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
