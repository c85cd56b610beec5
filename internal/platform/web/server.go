// Package web serves the leaderboard API and the live event feed over HTTP.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"

	"github.com/vovakirdan/sats-skater/internal/config"
	"github.com/vovakirdan/sats-skater/internal/storage"
)

const maxLimit = 100

// Server exposes stored runs and the event hub.
type Server struct {
	addr   string
	store  *storage.Store
	hub    *Hub
	logger *log.Logger
	router chi.Router
}

// NewServer creates a server for the given address. The store may be nil,
// in which case the API reports it as unavailable.
func NewServer(addr string, store *storage.Store, hub *Hub) *Server {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "skater-http",
	})
	if hub == nil {
		hub = NewHub(logger)
	}

	s := &Server{
		addr:   addr,
		store:  store,
		hub:    hub,
		logger: logger,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/scores", s.handleScores)
		r.Get("/stats", s.handleStats)
		r.Get("/runs/{id}", s.handleRun)
	})
	r.Handle("/ws/events", s.hub)
	return r
}

// requestLogger logs each request with the server's logger.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"took", time.Since(start),
			"id", middleware.GetReqID(r.Context()),
		)
	})
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// Hub returns the event hub fed by hosted runs.
func (s *Server) Hub() *Hub { return s.hub }

// Serve listens until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "address", s.addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("web: http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	s.hub.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"storage": s.store != nil,
		"clients": s.hub.Clients(),
	})
}

// handleScores serves GET /api/scores?difficulty=&limit=.
func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}

	difficulty := r.URL.Query().Get("difficulty")
	if difficulty != "" && config.ParsePreset(difficulty) == "" && difficulty != "custom" {
		s.writeError(w, http.StatusBadRequest, "unknown difficulty")
		return
	}

	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			s.writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxLimit)
	}

	runs, err := s.store.TopScores(difficulty, limit)
	if err != nil {
		s.logger.Error("cannot load scores", "error", err)
		s.writeError(w, http.StatusInternalServerError, "cannot load scores")
		return
	}
	if runs == nil {
		runs = []storage.RunResult{}
	}
	s.writeJSON(w, http.StatusOK, runs)
}

// handleStats serves GET /api/stats, keyed by difficulty.
func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	if !s.requireStore(w) {
		return
	}
	stats, err := s.store.GetAllStats()
	if err != nil {
		s.logger.Error("cannot load stats", "error", err)
		s.writeError(w, http.StatusInternalServerError, "cannot load stats")
		return
	}
	s.writeJSON(w, http.StatusOK, stats)
}

// handleRun serves GET /api/runs/{id}.
func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	run, err := s.store.RunByID(chi.URLParam(r, "id"))
	if errors.Is(err, storage.ErrRunNotFound) {
		s.writeError(w, http.StatusNotFound, "run not found")
		return
	}
	if err != nil {
		s.logger.Error("cannot load run", "error", err)
		s.writeError(w, http.StatusInternalServerError, "cannot load run")
		return
	}
	s.writeJSON(w, http.StatusOK, run)
}

func (s *Server) requireStore(w http.ResponseWriter) bool {
	if s.store == nil {
		s.writeError(w, http.StatusServiceUnavailable, "storage unavailable")
		return false
	}
	return true
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("cannot write response", "error", err)
	}
}
