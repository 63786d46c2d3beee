package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gastos-labs/gastos-gateway/engine/assistant"
	"github.com/gastos-labs/gastos-gateway/pkg/config"
	"github.com/gastos-labs/gastos-gateway/pkg/logger"
	"github.com/gin-gonic/gin"
)

const (
	serviceName          = "Gastos Tracker API"
	httpReadTimeout      = 15 * time.Second
	httpWriteTimeout     = 15 * time.Second
	httpIdleTimeout      = 60 * time.Second
	shutdownTimeout      = 5 * time.Second
	dispatchDrainTimeout = 10 * time.Second
)

// Server hosts the HTTP surface of the gateway.
type Server struct {
	cfg        *config.Config
	log        logger.Logger
	assistant  *assistant.Service
	router     *gin.Engine
	httpServer *http.Server
}

// New builds the gin engine with its middleware chain and registers routes.
func New(cfg *config.Config, svc *assistant.Service, log logger.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(
		gin.Recovery(),
		LoggerMiddleware(log),
		CORSMiddleware(cfg.Server.AllowedOrigins),
	)
	s := &Server{cfg: cfg, log: log, assistant: svc, router: router}
	s.registerRoutes()
	return s
}

// Router exposes the gin engine, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run serves until the context is canceled, then shuts down gracefully:
// stop accepting requests, then drain in-flight webhook dispatches with a
// bounded grace period.
func (s *Server) Run(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  httpReadTimeout,
		WriteTimeout: httpWriteTimeout,
		IdleTimeout:  httpIdleTimeout,
	}
	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	s.log.Info("server started",
		"addr", addr,
		"model", s.cfg.Groq.Model,
		"environment", s.cfg.Runtime.Environment,
		"webhooks_configured", s.cfg.Webhooks.Configured(),
	)
	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.log.Error("server shutdown failed", "error", err)
	}
	drainCtx, cancelDrain := context.WithTimeout(context.Background(), dispatchDrainTimeout)
	defer cancelDrain()
	if err := s.assistant.Drain(drainCtx); err != nil {
		s.log.Warn("webhook dispatches still in flight at shutdown", "error", err)
	}
	s.log.Info("server stopped")
	return nil
}
