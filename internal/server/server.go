package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"contentfilter/internal/filter"
)

type Options struct {
	Addr         string
	StorePath    string
	Username     string
	PasswordHash string
}

// Server exposes a filter store over a JSON HTTP API.
type Server struct {
	store  *filter.Store
	opts   Options
	saveMu sync.Mutex
	now    func() time.Time
}

func New(store *filter.Store, opts Options) *Server {
	return &Server{store: store, opts: opts, now: time.Now}
}

// Handler returns the routed API with request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", s.handleHealth)

	mux.HandleFunc("GET /api/modes", s.requireAuth(s.handleListModes))
	mux.HandleFunc("GET /api/modes/{mode}", s.requireAuth(s.handleGetMode))
	mux.HandleFunc("POST /api/modes/{mode}/sort", s.requireAuth(s.handleSort))
	mux.HandleFunc("POST /api/modes/{mode}/clear", s.requireAuth(s.handleClear))
	mux.HandleFunc("GET /api/modes/{mode}/stats", s.requireAuth(s.handleStats))
	mux.HandleFunc("GET /api/modes/{mode}/export", s.requireAuth(s.handleExport))
	mux.HandleFunc("POST /api/modes/{mode}/import", s.requireAuth(s.handleImport))
	mux.HandleFunc("POST /api/modes/{mode}/{kind}", s.requireAuth(s.handleAdd))
	mux.HandleFunc("DELETE /api/modes/{mode}/{kind}/{item}", s.requireAuth(s.handleRemove))

	mux.HandleFunc("POST /api/check", s.requireAuth(s.handleCheck))
	mux.HandleFunc("POST /api/store/save", s.requireAuth(s.handleSave))

	return logRequests(mux)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("dashboard listening", "addr", s.opts.Addr, "auth", s.opts.PasswordHash != "")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	slog.Info("dashboard shutting down")
	return srv.Shutdown(shutdownCtx)
}
