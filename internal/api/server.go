// Package api serves layouts and rendered designs over HTTP.
//
// Routes:
//
//	GET    /healthz                   build info
//	GET    /api/parameters/default    default parameter set
//	POST   /api/layout                pack a room, reply with the layout document
//	POST   /api/designs?format=png    render and store a design for download
//	GET    /api/designs/{id}          fetch a stored design
//	DELETE /api/designs/{id}          drop a stored design
//
// Request bodies for the layout and design routes are pipeline options in
// JSON. Parameters missing from the body keep their defaults. Errors are
// returned as {"code": ..., "message": ...} with a status derived from the
// error code.
package api

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/cafeplan/pkg/design"
	"github.com/matzehuels/cafeplan/pkg/errors"
	"github.com/matzehuels/cafeplan/pkg/pipeline"
)

// Defaults for [Config].
const (
	DefaultMaxBody         = 1 << 20
	DefaultRequestTimeout  = 30 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
	DefaultDesignFormat    = "png"
)

// Config configures a [Server].
type Config struct {
	// Runner computes and renders layouts. Required.
	Runner *pipeline.Runner

	// Store keeps rendered designs. Required.
	Store design.Store

	// DesignTTL is how long a design stays downloadable.
	// Zero uses design.DefaultTTL.
	DesignTTL time.Duration

	// BaseURL prefixes the download links returned for new designs.
	// Empty yields relative links.
	BaseURL string

	MaxBody        int64
	RequestTimeout time.Duration
	Logger         *log.Logger
}

// Server is the HTTP API.
type Server struct {
	runner  *pipeline.Runner
	store   design.Store
	ttl     time.Duration
	baseURL string
	maxBody int64
	timeout time.Duration
	logger  *log.Logger
	router  chi.Router
}

// New builds a server and its routes.
func New(cfg Config) *Server {
	s := &Server{
		runner:  cfg.Runner,
		store:   cfg.Store,
		ttl:     cfg.DesignTTL,
		baseURL: cfg.BaseURL,
		maxBody: cfg.MaxBody,
		timeout: cfg.RequestTimeout,
		logger:  cfg.Logger,
	}
	if s.ttl <= 0 {
		s.ttl = design.DefaultTTL
	}
	if s.maxBody <= 0 {
		s.maxBody = DefaultMaxBody
	}
	if s.timeout <= 0 {
		s.timeout = DefaultRequestTimeout
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.timeout))

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/parameters/default", s.handleDefaultParameters)
		r.Post("/layout", s.handleLayout)
		r.Route("/designs", func(r chi.Router) {
			r.Post("/", s.handleCreateDesign)
			r.Get("/{id}", s.handleGetDesign)
			r.Delete("/{id}", s.handleDeleteDesign)
		})
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.fail(w, r, errors.New(errors.ErrCodeNotFound, "no route for %s", r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, apiError{Code: "METHOD_NOT_ALLOWED", Message: r.Method + " " + r.URL.Path})
	})
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return ctx.Err()
}
