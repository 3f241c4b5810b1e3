// Package httpserver assembles the gin engine and runs the HTTP server
// with graceful shutdown.
package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/datle/datle-api/internal/api"
	"github.com/datle/datle-api/internal/config"
	"github.com/datle/datle-api/internal/logger"
	"github.com/datle/datle-api/internal/middleware"
)

// Server timeouts.
const (
	readTimeout     = 30 * time.Second
	writeTimeout    = 30 * time.Second
	idleTimeout     = 60 * time.Second
	shutdownTimeout = 30 * time.Second
)

// HealthChecker reports whether a dependency is reachable.
type HealthChecker func() error

// NewEngine builds the gin engine with the standard middleware chain:
// recovery, request logging, CORS, then rate limiting ahead of the routes.
func NewEngine(cfg *config.Config, log logger.Logger, handlers api.Handlers, dbCheck HealthChecker, done <-chan struct{}) *gin.Engine {
	if cfg.Service.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(log))
	router.Use(CORS(cfg.Service.CORSOrigins))
	router.Use(middleware.RateLimiter(cfg.RateLimit.MaxRequests, cfg.RateLimit.Window, done))

	router.GET("/health", func(c *gin.Context) {
		status := "ok"
		code := http.StatusOK
		if dbCheck != nil {
			if err := dbCheck(); err != nil {
				status = "degraded"
				code = http.StatusServiceUnavailable
			}
		}

		c.JSON(code, gin.H{
			"status":  status,
			"service": cfg.Service.Name,
			"version": cfg.Service.Version,
		})
	})

	api.SetupRoutes(router, handlers, cfg.Auth.JWTSecret)

	return router
}

// New creates the HTTP server for the engine.
func New(cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Service.Port),
		Handler:      handler,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}
}

// RunWithGracefulShutdown runs the server until SIGINT, SIGTERM, or context
// cancellation, then drains in-flight requests before returning.
func RunWithGracefulShutdown(ctx context.Context, srv *http.Server, log logger.Logger) error {
	errCh := make(chan error, 1)

	go func() {
		log.Info("starting HTTP server", logger.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigCh:
		log.Info("shutdown signal received", logger.String("signal", sig.String()))
	case <-ctx.Done():
		log.Info("context cancelled, shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	log.Info("shutting down HTTP server", logger.Duration("timeout", shutdownTimeout))
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	log.Info("HTTP server stopped gracefully")
	return nil
}
