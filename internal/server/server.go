// Package server owns the http.Server lifecycle: timeouts, start and graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/reminder-admin/internal/config"
	"github.com/maxviazov/reminder-admin/internal/handler"
	"github.com/maxviazov/reminder-admin/internal/middleware"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/metric"
)

// NewEngine builds the gin engine with the middleware stack and all routes.
func NewEngine(cfg *config.Config, logger zerolog.Logger, mp metric.MeterProvider, deps handler.Deps) *gin.Engine {
	if cfg.App.Env == "prod" || cfg.App.Env == "staging" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Recovery(logger),
		otelgin.Middleware(cfg.Telemetry.ServiceName),
		middleware.Metrics(mp),
		middleware.RequestLogger(logger),
	)
	handler.Register(r, deps)
	return r
}

type Server struct {
	cfg        config.HTTPConfig
	logger     zerolog.Logger
	httpServer *http.Server
}

func New(cfg *config.Config, h http.Handler, logger zerolog.Logger) *Server {
	return &Server{
		cfg:    cfg.HTTP,
		logger: logger,
		httpServer: &http.Server{
			Addr:         net.JoinHostPort("", strconv.Itoa(cfg.App.Port)),
			Handler:      h,
			ReadTimeout:  cfg.HTTP.ReadTimeout,
			WriteTimeout: cfg.HTTP.WriteTimeout,
			IdleTimeout:  cfg.HTTP.IdleTimeout,
		},
	}
}

// Run serves until ctx is cancelled, then drains in-flight requests for at
// most the configured shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", ln.Addr().String()).Msg("starting server")
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info().Dur("timeout", s.cfg.ShutdownTimeout).Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}
	return <-errCh
}
