package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/jakechorley/sparkleflow-dispatch/pkg/metrics"
)

// maxBodyBytes caps request bodies
const maxBodyBytes = 8 << 20

// Server exposes the dispatch engine over HTTP.
// It is stateless: every request carries the snapshot it is evaluated against.
type Server struct {
	logger   *zap.Logger
	recorder metrics.Recorder
	gatherer prometheus.Gatherer
	validate *validator.Validate
}

// NewServer creates a Server.
//
// Parameters:
//   - logger: request and error logging
//   - recorder: engine and request metrics (metrics.NewNop() to disable)
//   - gatherer: source for /metrics (uses prometheus.DefaultGatherer if nil)
func NewServer(logger *zap.Logger, recorder metrics.Recorder, gatherer prometheus.Gatherer) *Server {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return &Server{
		logger:   logger,
		recorder: recorder,
		gatherer: gatherer,
		validate: validator.New(),
	}
}

// Handler returns the routed API
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.handle(mux, "POST /v1/candidates", s.handleCandidates)
	s.handle(mux, "POST /v1/dispatch", s.handleDispatch)
	s.handle(mux, "GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	return mux
}

// ListenAndServe serves the API on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting API server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return nil
}

// handle registers h under pattern with request logging and latency metrics
func (s *Server) handle(mux *http.ServeMux, pattern string, h http.HandlerFunc) {
	mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		h(sw, r)

		elapsed := time.Since(start)
		s.recorder.ObserveRequest(pattern, sw.status, elapsed.Seconds())
		s.logger.Debug("Handled request",
			zap.String("route", pattern),
			zap.Int("status", sw.status),
			zap.Duration("duration", elapsed))
	})
}

// statusWriter captures the response status for logging
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
