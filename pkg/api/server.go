// Package api exposes the remeshing pipeline as an HTTP service.
package api

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"rematching/pkg/config"
)

// NewServer creates an HTTP server with all routes and middleware.
func NewServer(cfg *config.Server, log *zap.Logger, handlers *Handlers) *http.Server {
	mux := http.NewServeMux()

	// Concurrency limiter: remeshing is CPU-bound, so in-flight work is
	// capped rather than queued without bound.
	sem := make(chan struct{}, cfg.MaxConcurrent)

	mux.HandleFunc("POST /api/v1/remesh", withMiddleware(handlers.HandleRemesh, sem, log))
	mux.HandleFunc("GET /api/v1/health", withMiddleware(handlers.HandleHealth, sem, log))
	mux.HandleFunc("GET /api/v1/stats", withMiddleware(handlers.HandleStats, sem, log))

	return &http.Server{
		Addr:         cfg.Addr,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout(),
		WriteTimeout: cfg.WriteTimeout(),
	}
}

// ListenAndServe starts the server and blocks until a shutdown signal.
func ListenAndServe(srv *http.Server, log *zap.Logger) error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT)

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		log.Info("shutting down", zap.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}

// withMiddleware wraps a handler with panic recovery, request logging
// and concurrency limiting.
func withMiddleware(handler http.HandlerFunc, sem chan struct{}, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		select {
		case sem <- struct{}{}:
			defer func() { <-sem }()
		default:
			writeError(w, http.StatusServiceUnavailable, "server_busy", "")
			return
		}

		defer func() {
			if rec := recover(); rec != nil {
				log.Error("handler panic", zap.Any("panic", rec), zap.String("path", r.URL.Path))
				writeError(w, http.StatusInternalServerError, "internal_error", "")
			}
		}()

		start := time.Now()
		handler(w, r)
		log.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("elapsed", time.Since(start)),
		)
	}
}
