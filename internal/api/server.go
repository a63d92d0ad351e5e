// Package api exposes a study session and its store over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/rcliao/vocab-drill/internal/model"
	"github.com/rcliao/vocab-drill/internal/session"
	"github.com/rcliao/vocab-drill/internal/store"
)

// Backend is the read side the handlers need beyond the session.
type Backend interface {
	Preferences(ctx context.Context) (model.Preferences, error)
	SavePreferences(ctx context.Context, p model.Preferences) error
	ListRecords(ctx context.Context, p store.ListParams) ([]store.RecordRow, error)
	Search(ctx context.Context, p store.SearchParams) ([]model.Word, error)
	Stats(ctx context.Context, dbPath string, now time.Time) (*store.Stats, error)
}

// Server serves the JSON API.
type Server struct {
	sess   *session.Session
	db     Backend
	dbPath string
	now    func() time.Time
	logger *zap.Logger
}

// New creates a Server. dbPath is reported by the stats endpoint.
func New(sess *session.Session, db Backend, dbPath string, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{sess: sess, db: db, dbPath: dbPath, now: time.Now, logger: logger}
}

// Handler returns the router with middleware installed.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	s.RegisterHTTP(r)
	return r
}

// RegisterHTTP mounts the API routes on r.
func (s *Server) RegisterHTTP(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/batch", s.handleCurrent)
		r.Post("/batch", s.handleRefresh)

		r.Post("/words/{id}/master", s.handleMaster)
		r.Post("/words/{id}/favorite", s.handleFavorite)

		r.Get("/records", s.handleRecords)
		r.Get("/search", s.handleSearch)
		r.Get("/stats", s.handleStats)

		r.Get("/preferences", s.handleGetPreferences)
		r.Put("/preferences", s.handlePutPreferences)
	})
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}
