package api

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"stpaul-crime/api/handlers"
	"stpaul-crime/config"
	"stpaul-crime/core/store"
	"stpaul-crime/core/utils"
)

// BackgroundWorker runs alongside the HTTP listener for the server lifetime.
type BackgroundWorker interface {
	StartWithContext(ctx context.Context) error
	StopWithContext(ctx context.Context) error
}

type ServerDeps struct {
	DB            *sql.DB
	Codes         store.CodesStore
	Neighborhoods store.NeighborhoodsStore
	Incidents     store.IncidentsStore
	Workers       []BackgroundWorker
}

type Server struct {
	cfg           *config.AppConfig
	db            *sql.DB
	codes         store.CodesStore
	neighborhoods store.NeighborhoodsStore
	incidents     store.IncidentsStore
	workers       []BackgroundWorker
	logger        *utils.Logger
	httpServer    *http.Server
}

func NewServer(cfg *config.AppConfig, deps ServerDeps, logger *utils.Logger) *Server {
	s := &Server{
		cfg:           cfg,
		db:            deps.DB,
		codes:         deps.Codes,
		neighborhoods: deps.Neighborhoods,
		incidents:     deps.Incidents,
		workers:       deps.Workers,
		logger:        logger,
	}
	s.httpServer = &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(s.requestIDMiddleware)
	r.Use(s.recoverMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.corsMiddleware())
	r.Use(s.rateLimitMiddleware())
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	})
	s.registerRoutes(r, s.newRouteHandlers())
	return r
}

// Start blocks until the listener stops. Workers are started first and a
// worker failure aborts startup.
func (s *Server) Start(ctx context.Context) error {
	for _, w := range s.workers {
		if err := w.StartWithContext(ctx); err != nil {
			return err
		}
	}
	s.logger.Printf("listening on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	var firstErr error
	for _, w := range s.workers {
		if err := w.StopWithContext(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if err := s.httpServer.Shutdown(ctx); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

func (s *Server) newRouteHandlers() routeHandlers {
	return routeHandlers{
		crime:  handlers.NewCrimeHandler(s.cfg, s.codes, s.neighborhoods, s.incidents, s.logger),
		health: handlers.NewHealthHandler(pingerOrNil(s.db)),
	}
}

func pingerOrNil(db *sql.DB) handlers.Pinger {
	if db == nil {
		return nil
	}
	return db
}
