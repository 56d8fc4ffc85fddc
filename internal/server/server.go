// Package server hosts headless carousels behind a JSON HTTP API.
//
// Each carousel is created from a deck file and addressed by a UUID:
//
//	POST   /carousels                 deck TOML body, ?viewport=&container=
//	GET    /carousels/{id}            current state
//	POST   /carousels/{id}/next       step forward
//	POST   /carousels/{id}/prev       step backward
//	POST   /carousels/{id}/to/{index} jump to an index
//	POST   /carousels/{id}/resize     {"viewport": 700, "container": 700}
//	DELETE /carousels/{id}            drop the carousel
//
// Transition requests block until the move completes. A request arriving
// while another transition runs is dropped by the carousel and answered
// with the unchanged state.
package server

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/swiper/pkg/observability"
)

const (
	// DefaultWidth is the viewport and container width assumed when a
	// create request does not carry one.
	DefaultWidth = 1024

	maxDeckBytes = 1 << 20

	shutdownTimeout = 5 * time.Second
)

// Server serves the carousel API.
type Server struct {
	logger    *log.Logger
	store     *store
	instant   bool
	frameRate int
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger for request and carousel logs.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithInstant makes every hosted carousel move without animating.
func WithInstant(instant bool) Option {
	return func(s *Server) {
		s.instant = instant
	}
}

// WithFrameRate sets the frame rate of hosted tracks.
func WithFrameRate(fps int) Option {
	return func(s *Server) {
		s.frameRate = fps
	}
}

// New creates a server with an empty carousel store.
func New(opts ...Option) *Server {
	s := &Server{
		logger: log.NewWithOptions(io.Discard, log.Options{}),
		store:  newStore(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the API router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/version", s.handleVersion)

	r.Route("/carousels", func(r chi.Router) {
		r.Post("/", s.handleCreate)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGet)
			r.Delete("/", s.handleDelete)
			r.Post("/next", s.handleNext)
			r.Post("/prev", s.handlePrev)
			r.Post("/to/{index}", s.handleSlideTo)
			r.Post("/resize", s.handleResize)
		})
	})

	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	}
}

// observe reports every request to the HTTP hooks.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		observability.HTTP().OnRequest(r.Context(), r.Method, r.URL.Path)

		next.ServeHTTP(ww, r)

		path := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			path = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		observability.HTTP().OnResponse(r.Context(), r.Method, path, status, time.Since(start))
	})
}
