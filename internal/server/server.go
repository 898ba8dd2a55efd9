// Package server exposes fit metrics over HTTP for Prometheus scraping
// during long-running batch executions.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"fitkit/internal/logging"
	"fitkit/internal/metrics"
)

// ShutdownTimeout bounds the graceful shutdown of the metrics endpoint.
const ShutdownTimeout = 5 * time.Second

// Server serves the /metrics and /healthz endpoints on a dedicated listener.
type Server struct {
	addr    string
	logger  logging.Logger
	metrics *metrics.FitMetrics
	httpSrv *http.Server
}

// New creates a metrics server bound to the given address.
//
// Parameters:
//   - addr: The listen address (e.g. "127.0.0.1:9090").
//   - m: The fit metrics to expose.
//   - logger: The logger for lifecycle events; nil falls back to a no-op.
//
// Returns:
//   - *Server: The configured, unstarted server.
func New(addr string, m *metrics.FitMetrics, logger logging.Logger) *Server {
	if logger == nil {
		logger = logging.NopLogger{}
	}
	s := &Server{addr: addr, logger: logger, metrics: m}

	mux := http.NewServeMux()
	mux.HandleFunc("/metrics", s.handleMetrics)
	mux.HandleFunc("/healthz", s.handleHealth)
	s.httpSrv = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Start runs the server until ctx is canceled, then shuts it down gracefully.
// It blocks; run it in its own goroutine.
//
// Returns:
//   - error: A listener failure; context cancellation is not an error.
func (s *Server) Start(ctx context.Context) error {
	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("metrics endpoint listening", logging.String("addr", s.addr))
		if err := s.httpSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		if err := s.httpSrv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("metrics endpoint shutdown failed", err)
			return err
		}
		s.logger.Debug("metrics endpoint stopped")
		return nil
	}
}

// handleMetrics serves the Prometheus exposition format. Only GET is allowed.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.logger.Warn("rejected metrics request", logging.String("method", r.Method))
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.metrics.WritePrometheus(w, r)
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
