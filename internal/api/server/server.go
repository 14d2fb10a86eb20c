package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/feral-file/ff-crm/internal/api/middleware"
	"github.com/feral-file/ff-crm/internal/api/rest"
	"github.com/feral-file/ff-crm/internal/api/shared/executor"
	"github.com/feral-file/ff-crm/internal/config"
	"github.com/feral-file/ff-crm/internal/logger"
	"github.com/feral-file/ff-crm/internal/ratelimit"
)

// Server wraps the HTTP server
type Server struct {
	debug         bool
	config        config.ServerConfig
	executor      executor.Executor
	authenticator *middleware.Authenticator
	// limiter is nil when rate limiting is disabled
	limiter    ratelimit.Limiter
	httpServer *http.Server
}

// New creates a new API server
func New(debug bool, cfg config.ServerConfig, exec executor.Executor, authenticator *middleware.Authenticator, limiter ratelimit.Limiter) *Server {
	return &Server{
		debug:         debug,
		config:        cfg,
		executor:      exec,
		authenticator: authenticator,
		limiter:       limiter,
	}
}

// Router builds the gin engine with middleware and routes
func (s *Server) Router() *gin.Engine {
	// Set Gin mode based on debug flag
	if s.debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.SetupCORS(s.config.AllowedOrigins))

	protected := []gin.HandlerFunc{middleware.Auth(s.authenticator)}
	if s.limiter != nil {
		protected = append(protected, middleware.RateLimit(s.limiter))
	}

	rest.SetupRoutes(router, rest.NewHandler(s.executor), protected...)
	return router
}

// Start initializes and starts the HTTP server. It blocks until the server
// stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.Router(),
		ReadTimeout:  time.Duration(s.config.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.config.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.config.IdleTimeout) * time.Second,
	}

	logger.Info("Starting API server",
		zap.String("address", addr),
	)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	logger.Info("Shutting down API server")

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}
	}

	return nil
}
