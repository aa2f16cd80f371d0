package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/store-rating/internal/audit"
	"github.com/BruksfildServices01/store-rating/internal/config"
	dbpkg "github.com/BruksfildServices01/store-rating/internal/db"
	infraRepo "github.com/BruksfildServices01/store-rating/internal/infra/repository"
	"github.com/BruksfildServices01/store-rating/internal/logging"
	"github.com/BruksfildServices01/store-rating/internal/metrics"
	"github.com/BruksfildServices01/store-rating/internal/ratelimit"
	"github.com/BruksfildServices01/store-rating/internal/routes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := dbpkg.Open(cfg)
	if err != nil {
		return err
	}
	defer dbpkg.Close(db) //nolint:errcheck

	limiter, err := newLimiter(ctx, cfg, logger)
	if err != nil {
		return err
	}
	if c, ok := limiter.(io.Closer); ok {
		defer func() {
			if err := c.Close(); err != nil {
				logger.Warn("close rate limiter", zap.Error(err))
			}
		}()
	}

	dispatcher := audit.NewDispatcher(audit.New(infraRepo.NewAuditGormRepository(db)), logger)

	deps := routes.Deps{
		DB:      db,
		Config:  cfg,
		Logger:  logger,
		Metrics: metrics.New(),
		Limiter: limiter,
		Audit:   dispatcher,
	}
	if cfg.EmailDomainCheck {
		deps.Resolver = net.DefaultResolver
	}

	gin.SetMode(cfg.GinMode)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           routes.NewEngine(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		logger.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", zap.Error(err))
	}
	if err := dispatcher.Close(shutdownCtx); err != nil {
		logger.Warn("audit queue not drained", zap.Error(err))
	}
	return nil
}

// newLimiter uses redis when REDIS_URL is set so every replica shares the
// same counters.
func newLimiter(ctx context.Context, cfg *config.Config, logger *zap.Logger) (ratelimit.Limiter, error) {
	if cfg.RedisURL != "" {
		client, err := ratelimit.Connect(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		logger.Info("rate limiting with redis")
		return ratelimit.NewRedisFromRate(client, cfg.RateLimitRPS, cfg.RateLimitBurst), nil
	}

	mem := ratelimit.NewMemory(cfg.RateLimitRPS, cfg.RateLimitBurst)
	mem.StartCleanup(ctx, time.Minute, 10*time.Minute)
	return mem, nil
}
