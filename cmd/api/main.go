package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/feral-file/ff-crm/internal/adapter"
	"github.com/feral-file/ff-crm/internal/api/middleware"
	"github.com/feral-file/ff-crm/internal/api/server"
	"github.com/feral-file/ff-crm/internal/api/shared/executor"
	"github.com/feral-file/ff-crm/internal/config"
	"github.com/feral-file/ff-crm/internal/document"
	"github.com/feral-file/ff-crm/internal/logger"
	"github.com/feral-file/ff-crm/internal/ratelimit"
	"github.com/feral-file/ff-crm/internal/rbac"
	"github.com/feral-file/ff-crm/internal/store"
	"github.com/feral-file/ff-crm/internal/store/schema"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "crm-api",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Feral File CRM API")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{
		Logger: logger.NewGormLogger(cfg.Database.SlowThreshold),
	})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err))
	}
	if readDSN := cfg.Database.ReadDSN(); readDSN != "" {
		if err := store.RegisterReadReplicas(db, postgres.Open(readDSN)); err != nil {
			logger.FatalCtx(ctx, "Failed to register read replica", zap.Error(err))
		}
		logger.InfoCtx(ctx, "Registered read replica", zap.String("host", cfg.Database.ReadHost))
	}

	// Configure connection pool
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)

	// Initialize store and repositories
	storeOpts := []store.Option{store.WithSessionRole(cfg.RLS.SessionRole)}
	dataStore := store.NewPGStore(db, storeOpts...)
	leads := store.NewRepository[schema.CRMLead](db, storeOpts...)
	opportunities := store.NewRepository[schema.CRMOpportunity](db, storeOpts...)

	// Initialize adapters
	clock := adapter.NewClock()
	jsonAdapter := adapter.NewJSON()

	// Redis backs the permission cache and the rate limiter when configured
	var permissionCache rbac.Cache
	var limiter ratelimit.Limiter
	if cfg.Redis.Addr != "" {
		redisClient := adapter.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		defer redisClient.Close() //nolint:errcheck

		pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
		if err := redisClient.Ping(pingCtx); err != nil {
			logger.WarnCtx(ctx, "Redis unreachable at startup", zap.Error(err))
		}
		pingCancel()

		permissionCache = rbac.NewRedisCache(redisClient, jsonAdapter)
		if cfg.Server.RateLimit.RequestsPerMinute > 0 {
			limiter, err = ratelimit.NewLimiter(cfg.Server.RateLimit, redisClient.NewRateLimiter(), clock)
			if err != nil {
				logger.FatalCtx(ctx, "Failed to create rate limiter", zap.Error(err))
			}
		}
		logger.InfoCtx(ctx, "Connected to Redis", zap.String("addr", cfg.Redis.Addr))
	} else {
		logger.WarnCtx(ctx, "Redis not configured, permission cache and rate limiting are disabled")
	}

	evaluator := rbac.NewEvaluator(cfg.RBAC, dataStore, permissionCache, clock)
	documents := document.NewRegistry(cfg.Documents, dataStore, adapter.NewFileSystem(), adapter.NewIO())
	exec := executor.NewExecutor(dataStore, leads, opportunities, evaluator, documents)

	authenticator, err := middleware.NewAuthenticator(cfg.Auth)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create authenticator", zap.Error(err))
	}

	// Create and start server
	srv := server.New(cfg.Debug, cfg.Server, exec, authenticator, limiter)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
		cancel()
	}

	// Create shutdown context with timeout (don't use canceled ctx)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.FatalCtx(shutdownCtx, "Server forced to shutdown", zap.Error(err))
	}

	// Use non-context logger for final message since original ctx is canceled
	logger.Info("API server stopped")
}
