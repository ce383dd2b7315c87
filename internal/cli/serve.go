package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	httpAdapter "github.com/aretw0/actor/pkg/adapters/http"
	"github.com/aretw0/actor/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
)

const shutdownTimeout = 5 * time.Second

// NewServer builds the HTTP server exposing the catalog's checkers, with their
// metrics on /metrics.
func NewServer(addr string, c *Catalog, logger *slog.Logger) (*http.Server, error) {
	reg := prometheus.NewRegistry()
	metrics, err := observability.NewMetrics(reg)
	if err != nil {
		return nil, err
	}
	engine := createEngine(logger, metrics.Hooks())
	handler := httpAdapter.NewHandler(engine, c.Registry,
		httpAdapter.WithLogger(logger),
		httpAdapter.WithMetrics(reg),
	)
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}, nil
}

// Serve runs srv until ctx is cancelled, then shuts it down gracefully.
func Serve(ctx context.Context, srv *http.Server, logger *slog.Logger) error {
	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", srv.Addr)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown did not complete", "timeout", shutdownTimeout, "error", err)
			return srv.Close()
		}
		return nil
	}
}
