package watch

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/vango-dev/routegen/internal/logger"
	"github.com/vango-dev/routegen/internal/metrics"
)

// ReloadPath is the WebSocket endpoint dev clients connect to.
const ReloadPath = "/__routegen/reload"

// ServerOptions configures the watch-mode HTTP server.
type ServerOptions struct {
	Addr    string
	Reload  *ReloadServer
	Metrics *metrics.Metrics
	Logger  *zap.Logger
}

// Server exposes health, metrics and live reload while watching.
type Server struct {
	opts   ServerOptions
	log    *zap.Logger
	router chi.Router

	mu      sync.RWMutex
	lastRun RunStatus
}

// RunStatus is the health report of the last generation run.
type RunStatus struct {
	Status string    `json:"status"`
	At     time.Time `json:"at"`
	Error  string    `json:"error,omitempty"`
}

// NewServer creates the watch-mode HTTP server.
func NewServer(opts ServerOptions) *Server {
	s := &Server{
		opts:    opts,
		log:     logger.OrNop(opts.Logger),
		lastRun: RunStatus{Status: "pending"},
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", s.handleHealth)
	if opts.Metrics != nil {
		r.Handle("/metrics", opts.Metrics.Handler())
	}
	if opts.Reload != nil {
		r.Get(ReloadPath, opts.Reload.HandleWebSocket)
	}
	s.router = r
	return s
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// RecordRun updates the status reported by /healthz.
func (s *Server) RecordRun(status string, err error) {
	run := RunStatus{Status: status, At: time.Now()}
	if err != nil {
		run.Error = err.Error()
	}
	s.mu.Lock()
	s.lastRun = run
	s.mu.Unlock()
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	run := s.lastRun
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(run)
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("watch server listening", zap.String("addr", s.opts.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
		if s.opts.Reload != nil {
			s.opts.Reload.Close()
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
